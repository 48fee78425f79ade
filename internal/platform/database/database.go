package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	migrate "github.com/rubenv/sql-migrate"

	"nhplus/internal/platform/config"
	"nhplus/pkg/platform/tx"
)

//go:embed migrations
var migrations embed.FS

// Dialect names the SQL flavour a store must speak.
type Dialect string

const (
	DialectSQLite   Dialect = config.DriverSQLite
	DialectPostgres Dialect = config.DriverPostgres
)

// Executor is satisfied by both *sql.DB and *sql.Tx.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB couples a connection pool with its dialect so stores can write
// portable queries with '?' placeholders.
type DB struct {
	SQL     *sql.DB
	Dialect Dialect
}

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	var dialect Dialect
	switch cfg.Driver {
	case config.DriverSQLite:
		dialect = DialectSQLite
	case config.DriverPostgres:
		dialect = DialectPostgres
	default:
		return nil, fmt.Errorf("unsupported SQL driver %q", cfg.Driver)
	}

	sqlDB, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}
	if dialect == DialectSQLite {
		// SQLite serialises writers anyway, and a second connection to an
		// in-memory DSN would see a different empty database.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s database: %w", cfg.Driver, err)
	}
	return &DB{SQL: sqlDB, Dialect: dialect}, nil
}

// Migrate applies all pending migrations for the dialect and returns how
// many were applied.
func (db *DB) Migrate() (int, error) {
	src := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrations,
		Root:       "migrations/" + string(db.Dialect),
	}
	n, err := migrate.Exec(db.SQL, string(db.Dialect), src, migrate.Up)
	if err != nil {
		return n, fmt.Errorf("apply migrations: %w", err)
	}
	return n, nil
}

// Close releases the pool.
func (db *DB) Close() error {
	return db.SQL.Close()
}

// Executor returns the transaction carried by ctx, or the pool.
func (db *DB) Executor(ctx context.Context) Executor {
	if sqlTx, ok := tx.From(ctx); ok {
		return sqlTx
	}
	return db.SQL
}

// InTx runs fn in a transaction, joining one already present in ctx.
func (db *DB) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return tx.Run(ctx, db.SQL, fn)
}

// Rebind rewrites '?' placeholders into the dialect's bind syntax.
func (db *DB) Rebind(query string) string {
	if db.Dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
