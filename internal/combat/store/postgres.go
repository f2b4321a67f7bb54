package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"perf-service/internal/combat/models"
)

// PostgresStore persists combat events in postgres.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Save(ctx context.Context, event *models.Event) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO combat_events (id, athlete_id, event_type, event_date, opponent_name, result)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		event.ID, event.AthleteID, event.EventType, event.Date, event.OpponentName, event.Result,
	)
	if err != nil {
		return fmt.Errorf("insert combat event: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByAthleteID(ctx context.Context, athleteID uuid.UUID) ([]models.Event, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, athlete_id, event_type, event_date, opponent_name, result
		FROM combat_events
		WHERE athlete_id = $1
		ORDER BY event_date DESC`,
		athleteID,
	)
	if err != nil {
		return nil, fmt.Errorf("query combat events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(
			&event.ID, &event.AthleteID, &event.EventType, &event.Date,
			&event.OpponentName, &event.Result,
		); err != nil {
			return nil, fmt.Errorf("scan combat event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate combat events: %w", err)
	}
	return events, nil
}
