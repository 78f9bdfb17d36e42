package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"starline-salvage/internal/shared/config"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect names a supported SQL backend. Its value is also the database/sql
// driver name.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

type DB struct {
	*sql.DB
	Dialect Dialect
}

// PoolConfig bounds the connection pool.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Connect opens the database selected by the global configuration.
func Connect() (*DB, error) {
	cfg := config.GlobalConfig

	switch Dialect(cfg.Store.Backend) {
	case DialectPostgres:
		return Open(DialectPostgres, cfg.ConnectionString(), PoolConfig{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
	case DialectSQLite:
		return Open(DialectSQLite, SQLiteDSN(cfg.SQLite.Path), PoolConfig{})
	default:
		return nil, fmt.Errorf("store backend %q is not a SQL database", cfg.Store.Backend)
	}
}

// SQLiteDSN builds a DSN for a SQLite file. ":memory:" is passed through.
func SQLiteDSN(path string) string {
	if path == ":memory:" {
		return path
	}
	return filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
}

// Open opens and pings a database. SQLite is limited to one connection so
// writers queue instead of failing with SQLITE_BUSY, and so an in-memory
// database is shared by every caller.
func Open(dialect Dialect, dsn string, pool PoolConfig) (*DB, error) {
	logger := slog.With("component", "database", "operation", "connect", "dialect", dialect)
	logger.Debug("Initializing database connection")

	sqlDB, err := sql.Open(string(dialect), dsn)
	if err != nil {
		logger.Error("Failed to open database connection", "error", err)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	switch dialect {
	case DialectSQLite:
		sqlDB.SetMaxOpenConns(1)
	default:
		if pool.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
		}
		if pool.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
		}
		if pool.ConnMaxLifetime > 0 {
			sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Debug("Testing database connection with ping")
	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Error("Failed to ping database", "error", err)
		if closeErr := sqlDB.Close(); closeErr != nil {
			logger.Error("Failed to close database after ping failure", "close_error", closeErr, "ping_error", err)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established successfully",
		"max_open_conns", pool.MaxOpenConns)

	return &DB{DB: sqlDB, Dialect: dialect}, nil
}

// Rebind rewrites $N placeholders for dialects that only understand "?".
// Queries are written with $N; literals never contain a '$'.
func (db *DB) Rebind(query string) string {
	if db.Dialect != DialectSQLite {
		return query
	}

	var b strings.Builder
	b.Grow(len(query))
	for i := 0; i < len(query); i++ {
		if query[i] != '$' {
			b.WriteByte(query[i])
			continue
		}
		j := i + 1
		for j < len(query) && query[j] >= '0' && query[j] <= '9' {
			j++
		}
		if j == i+1 {
			b.WriteByte('$')
			continue
		}
		b.WriteByte('?')
		i = j - 1
	}
	return b.String()
}

// LockClause returns the row-locking suffix for a SELECT inside a
// transaction. SQLite already serializes writers through its single
// connection.
func (db *DB) LockClause() string {
	if db.Dialect == DialectPostgres {
		return " FOR UPDATE"
	}
	return ""
}
