// Package testutil starts throwaway databases for integration tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const postgresImage = "postgres:16-alpine"

// StartPostgres runs a PostgreSQL container for the duration of the test and returns its
// connection string. The test is skipped under -short or when no container runtime is
// reachable.
func StartPostgres(ctx context.Context, t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}

	container, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase("sqlcompat"),
		postgres.WithUsername("sqlcompat"),
		postgres.WithPassword("sqlcompat"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("PostgreSQL container unavailable: %v", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	})

	dataSource, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to read PostgreSQL connection string: %v", err)
	}

	return dataSource
}

// Schema mirrors the table the query fixtures are written against.
const Schema = `CREATE TABLE sqlc_test (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT
)`
