package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options selects the driver and connection behavior for New.
type Options struct {
	Driver          string
	DSN             string
	ConnectAttempts uint
	ConnectDelay    time.Duration
}

// DB wraps the sql.DB for connection management
type DB struct {
	conn   *sql.DB
	driver string
	logger *slog.Logger
}

// New opens a connection pool and pings it, retrying up to
// opts.ConnectAttempts times. For sqlite, foreign key enforcement is
// switched on for every connection.
func New(ctx context.Context, opts Options, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Driver == "" {
		opts.Driver = DriverSQLite
	}
	if opts.ConnectAttempts == 0 {
		opts.ConnectAttempts = 1
	}

	dsn := opts.DSN
	switch opts.Driver {
	case DriverSQLite:
		dsn = sqliteDSN(dsn)
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported driver %q", opts.Driver)
	}

	conn, err := sql.Open(opts.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if opts.Driver == DriverSQLite && strings.Contains(dsn, "memory") {
		// every pooled connection to a private in-memory database is a new database
		conn.SetMaxOpenConns(1)
	}

	err = retry.Do(
		func() error { return conn.PingContext(ctx) },
		retry.Attempts(opts.ConnectAttempts),
		retry.Delay(opts.ConnectDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("db ping failed, retrying", "attempt", n+1, "driver", opts.Driver, "err", err)
		}),
	)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	logger.Info("db connected", "driver", opts.Driver)
	return &DB{conn: conn, driver: opts.Driver, logger: logger}, nil
}

// sqliteDSN appends the foreign_keys pragma unless the caller already set one.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// Close closes the DB connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Driver reports the database/sql driver name in use.
func (db *DB) Driver() string {
	return db.driver
}

// Exec executes a query
func (db *DB) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.conn.ExecContext(ctx, query, args...)
}

// QueryRow executes a query that is expected to return at most one row
func (db *DB) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.conn.QueryRowContext(ctx, query, args...)
}

// QueryRows executes a query returning any number of rows
func (db *DB) QueryRows(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.conn.QueryContext(ctx, query, args...)
}

// GetConn returns the underlying sql.DB
func (db *DB) GetConn() *sql.DB {
	return db.conn
}
