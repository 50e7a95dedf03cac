package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/mattn/go-sqlite3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DB is a database/sql handle plus the dialect needed to build queries for it.
type DB struct {
	SQL    *sql.DB
	Driver string

	pool *pgxpool.Pool
}

// Open connects using the named driver.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	switch driver {
	case DriverPostgres:
		return OpenPostgres(ctx, dsn)
	case DriverSQLite:
		return OpenSQLite(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// NewPool creates a new pgx connection pool using the provided DSN.
// It pings the database to ensure the connection is valid.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	// Use a short-lived context for the initial ping.
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// OpenPostgres exposes a pgx pool through database/sql.
func OpenPostgres(ctx context.Context, dsn string) (*DB, error) {
	pool, err := NewPool(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &DB{
		SQL:    stdlib.OpenDBFromPool(pool),
		Driver: DriverPostgres,
		pool:   pool,
	}, nil
}

// OpenSQLite opens an sqlite database. A single connection is used so that
// in-memory databases stay alive and writes are serialized.
func OpenSQLite(ctx context.Context, dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{SQL: conn, Driver: DriverSQLite}, nil
}

// Builder returns a squirrel builder using this dialect's placeholders.
func (d *DB) Builder() squirrel.StatementBuilderType {
	if d.Driver == DriverPostgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// CaseInsensitiveLike returns the dialect's case-insensitive LIKE condition.
// Backslash is the escape character in pattern; see EscapeLike.
func (d *DB) CaseInsensitiveLike(column, pattern string) squirrel.Sqlizer {
	if d.Driver == DriverPostgres {
		return squirrel.Expr(column+` ILIKE ? ESCAPE '\'`, pattern)
	}
	// sqlite LIKE is case-insensitive for ASCII; lower() covers the rest.
	return squirrel.Expr("lower("+column+`) LIKE lower(?) ESCAPE '\'`, pattern)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// EscapeLike quotes LIKE wildcards in s so it matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (d *DB) Close() error {
	err := d.SQL.Close()
	if d.pool != nil {
		d.pool.Close()
	}
	return err
}

// IsUniqueViolation reports whether err is a unique constraint failure.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// IsForeignKeyViolation reports whether err is a foreign key constraint failure.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.ForeignKeyViolation
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
