package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"perf-service/internal/session/models"
	"perf-service/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// PostgresStore persists sessions in postgres. A session and its metrics are
// written inside one transaction so metrics are never partially attached.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Save(ctx context.Context, session *models.Session) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin session tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO training_sessions (id, athlete_id, routine_assignment_id, start_time, end_time, rpe_score)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		session.ID, session.AthleteID, session.RoutineAssignmentID,
		session.StartTime, session.EndTime, session.RPEScore,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("session %s: %w", session.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert session: %w", err)
	}

	if len(session.Metrics) > 0 {
		rows := make([][]any, 0, len(session.Metrics))
		for _, m := range session.Metrics {
			rows = append(rows, []any{m.ID, session.ID, m.Type, m.Value, m.Unit, m.MeasuredAt})
		}
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"session_metrics"},
			[]string{"id", "session_id", "type", "value", "unit", "measured_at"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("insert session metrics: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) FindByAthleteID(ctx context.Context, athleteID uuid.UUID) ([]models.Session, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, athlete_id, routine_assignment_id, start_time, end_time, rpe_score
		FROM training_sessions
		WHERE athlete_id = $1
		ORDER BY start_time DESC`,
		athleteID,
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.Session
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var session models.Session
		if err := rows.Scan(
			&session.ID, &session.AthleteID, &session.RoutineAssignmentID,
			&session.StartTime, &session.EndTime, &session.RPEScore,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		index[session.ID] = len(sessions)
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	if len(sessions) == 0 {
		return sessions, nil
	}

	metricRows, err := s.pool.Query(ctx, `
		SELECT m.id, m.session_id, m.type, m.value, m.unit, m.measured_at
		FROM session_metrics m
		JOIN training_sessions t ON t.id = m.session_id
		WHERE t.athlete_id = $1`,
		athleteID,
	)
	if err != nil {
		return nil, fmt.Errorf("query session metrics: %w", err)
	}
	defer metricRows.Close()

	for metricRows.Next() {
		var (
			m         models.Metric
			sessionID uuid.UUID
		)
		if err := metricRows.Scan(&m.ID, &sessionID, &m.Type, &m.Value, &m.Unit, &m.MeasuredAt); err != nil {
			return nil, fmt.Errorf("scan session metric: %w", err)
		}
		if i, ok := index[sessionID]; ok {
			sessions[i].Metrics = append(sessions[i].Metrics, m)
		}
	}
	if err := metricRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session metrics: %w", err)
	}
	return sessions, nil
}
