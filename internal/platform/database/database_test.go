package database_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nhplus/internal/platform/config"
	"nhplus/internal/platform/database"
	"nhplus/pkg/platform/tx"
	"nhplus/pkg/testutil"
)

func TestRebind(t *testing.T) {
	query := "UPDATE patients SET archived_on = ? WHERE id = ?"

	sqlite := &database.DB{Dialect: database.DialectSQLite}
	assert.Equal(t, query, sqlite.Rebind(query))

	pg := &database.DB{Dialect: database.DialectPostgres}
	assert.Equal(t, "UPDATE patients SET archived_on = $1 WHERE id = $2", pg.Rebind(query))
}

func TestOpen(t *testing.T) {
	t.Run("rejects non-SQL drivers", func(t *testing.T) {
		_, err := database.Open(context.Background(), config.DatabaseConfig{Driver: config.DriverMemory})
		require.Error(t, err)
	})
}

func TestMigrate(t *testing.T) {
	db := testutil.OpenSQLite(t)

	for _, table := range []string{"patients", "caregivers", "treatments", "medicines", "users"} {
		var n int
		err := db.SQL.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n)
		require.NoError(t, err, "table %s should exist", table)
		assert.Zero(t, n)
	}

	applied, err := db.Migrate()
	require.NoError(t, err)
	assert.Zero(t, applied, "second run applies nothing")
}

func TestInTx(t *testing.T) {
	db := testutil.OpenSQLite(t)
	ctx := context.Background()

	t.Run("rolls back when fn fails", func(t *testing.T) {
		err := db.InTx(ctx, func(ctx context.Context) error {
			_, err := db.Executor(ctx).ExecContext(ctx,
				"INSERT INTO medicines (name, storage_location, expiration_date) VALUES (?, ?, ?)",
				"Ibuprofen", "Shelf B", "2027-01-01")
			require.NoError(t, err)
			return sql.ErrTxDone
		})
		require.ErrorIs(t, err, sql.ErrTxDone)

		var n int
		require.NoError(t, db.SQL.QueryRow("SELECT COUNT(*) FROM medicines").Scan(&n))
		assert.Zero(t, n)
	})

	t.Run("executor uses the context transaction", func(t *testing.T) {
		err := db.InTx(ctx, func(ctx context.Context) error {
			_, ok := tx.From(ctx)
			assert.True(t, ok)
			_, isTx := db.Executor(ctx).(*sql.Tx)
			assert.True(t, isTx)
			return nil
		})
		require.NoError(t, err)

		_, isPool := db.Executor(ctx).(*sql.DB)
		assert.True(t, isPool)
	})
}

func TestDateValues(t *testing.T) {
	d := time.Date(2013, time.June, 3, 0, 0, 0, 0, time.UTC)

	ns := database.NullDate(&d)
	assert.Equal(t, sql.NullString{String: "2013-06-03", Valid: true}, ns)

	back, err := database.DateFromNull(ns)
	require.NoError(t, err)
	require.NotNil(t, back)
	assert.True(t, back.Equal(d))

	none, err := database.DateFromNull(database.NullDate(nil))
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = database.DateFromNull(sql.NullString{String: "03.06.2013", Valid: true})
	assert.Error(t, err)

	assert.False(t, database.NullID(0).Valid)
	assert.Equal(t, int64(4), database.NullID(4).Int64)
}
