// Package testutil provides shared test helpers: a throwaway PostgreSQL
// container for the PostgreSQL querier and ready-made statement fixtures.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/enix403/gen-sql-pdf/internal/parser"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// PostgresImage is the Docker image used for PostgreSQL test containers
	PostgresImage = "docker.io/postgres:16-alpine"

	// Default test database credentials
	TestDatabase = "testdb"
	TestUsername = "testuser"
	TestPassword = "testpass"
)

// SetupPostgresContainer starts a PostgreSQL container and returns a connection
// string and cleanup function. The test is skipped in -short mode.
func SetupPostgresContainer(t *testing.T) (string, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping PostgreSQL container test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		PostgresImage,
		postgres.WithDatabase(TestDatabase),
		postgres.WithUsername(TestUsername),
		postgres.WithPassword(TestPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("PostgreSQL container not available: %v", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	connString := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port.Port(), TestUsername, TestPassword, TestDatabase)

	cleanup := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return connString, cleanup
}

// Statements splits sql the way the CLI does and returns the statements.
func Statements(t *testing.T, sql string) []*parser.Statement {
	t.Helper()
	stmts := parser.ParseStatements(sql)
	if len(stmts) == 0 {
		t.Fatalf("no statements in %q", sql)
	}
	return stmts
}
