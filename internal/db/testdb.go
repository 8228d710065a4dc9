package db

import (
	"database/sql"
	"testing"
)

// NewTestDB returns an empty site database for one test: in memory, on a
// single connection, with every table created. It is closed when the test
// ends.
func NewTestDB(tb testing.TB) *sql.DB {
	tb.Helper()

	database, err := Open(":memory:")
	if err != nil {
		tb.Fatalf("opening test database: %v", err)
	}
	tb.Cleanup(func() { database.Close() })

	if err := EnsureSchema(database); err != nil {
		tb.Fatalf("creating site schema: %v", err)
	}
	return database
}
