package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"perf-service/internal/testresult/models"
	"perf-service/pkg/platform/sentinel"
)

const foreignKeyViolation = "23503"

// PostgresStore persists test results and joins the physical_tests catalog
// for the enriched read.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// SaveAll writes the batch inside one transaction. A result referencing a
// test missing from the catalog surfaces as sentinel.ErrNotFound.
func (s *PostgresStore) SaveAll(ctx context.Context, results []*models.TestResult) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin test results tx: %w", err)
	}
	defer tx.Rollback(ctx)

	rows := make([][]any, 0, len(results))
	for _, r := range results {
		rows = append(rows, []any{r.ID, r.AthleteID, r.TestID, r.TestDate, r.ResultValue, r.NormalizedScore})
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"test_results"},
		[]string{"id", "athlete_id", "test_id", "test_date", "result_value", "normalized_score"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return fmt.Errorf("test catalog: %w", sentinel.ErrNotFound)
		}
		return fmt.Errorf("insert test results: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) FindByAthleteID(ctx context.Context, athleteID uuid.UUID) ([]models.Enriched, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.id, r.athlete_id, r.test_id, r.test_date, r.result_value, r.normalized_score,
		       COALESCE(t.name, ''), COALESCE(t.unit, '')
		FROM test_results r
		LEFT JOIN physical_tests t ON t.id = r.test_id
		WHERE r.athlete_id = $1
		ORDER BY r.test_date DESC`,
		athleteID,
	)
	if err != nil {
		return nil, fmt.Errorf("query test results: %w", err)
	}
	defer rows.Close()

	var results []models.Enriched
	for rows.Next() {
		var e models.Enriched
		if err := rows.Scan(
			&e.ID, &e.AthleteID, &e.TestID, &e.TestDate, &e.ResultValue, &e.NormalizedScore,
			&e.TestName, &e.TestUnit,
		); err != nil {
			return nil, fmt.Errorf("scan test result: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate test results: %w", err)
	}
	return results, nil
}
