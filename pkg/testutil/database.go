package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"nhplus/internal/platform/config"
	"nhplus/internal/platform/database"
)

// OpenSQLite returns a migrated in-memory SQLite database that is closed
// when the test ends.
func OpenSQLite(t testing.TB) *database.DB {
	t.Helper()
	db, err := database.Open(context.Background(), config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Migrate()
	require.NoError(t, err)
	return db
}
