//go:build integration

// Package containers provides shared test containers for integration tests.
package containers

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// PostgresContainer wraps a testcontainers postgres instance with an open
// pool and the service schema applied.
type PostgresContainer struct {
	Container *tcpostgres.PostgresContainer
	DB        *pgxpool.Pool
}

const schema = `
CREATE TABLE IF NOT EXISTS training_sessions (
	id                    UUID PRIMARY KEY,
	athlete_id            UUID NOT NULL,
	routine_assignment_id UUID,
	start_time            TIMESTAMPTZ NOT NULL,
	end_time              TIMESTAMPTZ,
	rpe_score             INT
);
CREATE INDEX IF NOT EXISTS idx_training_sessions_athlete ON training_sessions (athlete_id);

CREATE TABLE IF NOT EXISTS session_metrics (
	id          UUID PRIMARY KEY,
	session_id  UUID NOT NULL REFERENCES training_sessions (id) ON DELETE CASCADE,
	type        TEXT NOT NULL,
	value       TEXT NOT NULL,
	unit        TEXT NOT NULL,
	measured_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS physical_tests (
	id   UUID PRIMARY KEY,
	name TEXT NOT NULL,
	unit TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS test_results (
	id               UUID PRIMARY KEY,
	athlete_id       UUID NOT NULL,
	test_id          UUID NOT NULL REFERENCES physical_tests (id),
	test_date        TIMESTAMPTZ NOT NULL,
	result_value     TEXT NOT NULL,
	normalized_score DOUBLE PRECISION
);
CREATE INDEX IF NOT EXISTS idx_test_results_athlete ON test_results (athlete_id);

CREATE TABLE IF NOT EXISTS combat_events (
	id            UUID PRIMARY KEY,
	athlete_id    UUID NOT NULL,
	event_type    TEXT NOT NULL,
	event_date    TIMESTAMPTZ NOT NULL,
	opponent_name TEXT,
	result        TEXT
);
CREATE INDEX IF NOT EXISTS idx_combat_events_athlete ON combat_events (athlete_id);

CREATE TABLE IF NOT EXISTS attendance_records (
	id             UUID PRIMARY KEY,
	athlete_id     UUID NOT NULL,
	date           TIMESTAMPTZ NOT NULL,
	recorded_by_id UUID NOT NULL,
	UNIQUE (athlete_id, date)
);
`

// NewPostgresContainer starts a postgres container, opens a pool and applies
// the schema. The container is terminated through t.Cleanup.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("perf"),
		tcpostgres.WithUsername("perf"),
		tcpostgres.WithPassword("perf"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to open postgres pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, schema); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	return &PostgresContainer{Container: container, DB: pool}
}

// TruncateTables clears the given tables between tests.
func (c *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	_, err := c.DB.Exec(ctx, fmt.Sprintf("TRUNCATE %s CASCADE", strings.Join(tables, ", ")))
	return err
}
