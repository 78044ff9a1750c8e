// Package dbtest opens throwaway databases for repository tests.
package dbtest

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"quotes-api/internal/infrastructure/database"
)

// PostgresDSNEnv names the variable that enables the PostgreSQL suites.
const PostgresDSNEnv = "QUOTES_TEST_POSTGRES_DSN"

// SQLite opens a private in-memory SQLite database with the schema applied.
func SQLite(t *testing.T) *database.SQLiteDB {
	t.Helper()
	db, err := database.OpenSQLite(context.Background(), database.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Postgres connects to the database named by QUOTES_TEST_POSTGRES_DSN and
// empties both tables. The test is skipped when the variable is unset.
func Postgres(t *testing.T) *database.PostgresDB {
	t.Helper()
	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", PostgresDSNEnv)
	}

	db := database.NewPostgresDB(&database.DBConfig{URL: dsn, MaxConns: 4, MaxRetries: 1})
	require.NoError(t, db.Connect(context.Background()))
	t.Cleanup(func() { _ = db.Close() })

	_, err := db.Pool.Exec(context.Background(), `TRUNCATE quotes, authors RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return db
}
