package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"perf-service/internal/attendance/models"
)

// PostgresStore persists attendance records in postgres. A unique constraint
// on (athlete_id, date) backs the skip-on-conflict writes.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// SaveAll writes the batch in one transaction, skipping athletes already
// marked present on the same day, and reports how many rows were written.
func (s *PostgresStore) SaveAll(ctx context.Context, records []*models.Record) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin attendance tx: %w", err)
	}
	defer tx.Rollback(ctx)

	written := 0
	for _, record := range records {
		tag, err := tx.Exec(ctx, `
			INSERT INTO attendance_records (id, athlete_id, date, recorded_by_id)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (athlete_id, date) DO NOTHING`,
			record.ID, record.AthleteID, record.Date, record.RecordedByID,
		)
		if err != nil {
			return 0, fmt.Errorf("insert attendance record: %w", err)
		}
		written += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit attendance tx: %w", err)
	}
	return written, nil
}

// FindByAthleteID returns the athlete's attendance history, newest first.
func (s *PostgresStore) FindByAthleteID(ctx context.Context, athleteID uuid.UUID) ([]*models.Record, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, athlete_id, date, recorded_by_id
		FROM attendance_records
		WHERE athlete_id = $1
		ORDER BY date DESC`,
		athleteID,
	)
	if err != nil {
		return nil, fmt.Errorf("query attendance records: %w", err)
	}
	defer rows.Close()

	var records []*models.Record
	for rows.Next() {
		var record models.Record
		if err := rows.Scan(&record.ID, &record.AthleteID, &record.Date, &record.RecordedByID); err != nil {
			return nil, fmt.Errorf("scan attendance record: %w", err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance records: %w", err)
	}
	return records, nil
}
