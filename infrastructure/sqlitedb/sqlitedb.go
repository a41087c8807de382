// Package sqlitedb provides support for access to a SQLite database file
// through database/sql and the pure Go modernc.org/sqlite driver.
package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/jrazmi/taskmanagement/sdk/environment"
)

// Set of error variables for CRUD operations.
var (
	ErrDBNotFound        = sql.ErrNoRows
	ErrDBDuplicatedEntry = errors.New("duplicated entry")
	ErrDBForeignKey      = errors.New("foreign key violation")
	ErrDBNotNull         = errors.New("not null violation")
)

// DB is the handle returned by Open.
type DB = sql.DB

// Querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Options represents the exportable database configuration. With the default
// single connection, transactions run one at a time.
type Options struct {
	Path         string        `env:"SQLITE_PATH" default:"tasks.db"`
	MaxOpenConns int           `env:"SQLITE_MAX_OPEN_CONNS" default:"1"`
	BusyTimeout  time.Duration `env:"SQLITE_BUSY_TIMEOUT" default:"5s"`
}

// NewFromEnv opens the database described by prefixed environment variables.
func NewFromEnv(prefix string) (*sql.DB, error) {
	var cfg Options
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing sqlite config: %w", err)
	}
	return Open(cfg)
}

// NewTestDB opens a private in-memory database.
func NewTestDB() (*sql.DB, error) {
	return Open(Options{Path: ":memory:", MaxOpenConns: 1})
}

// Open opens the database at cfg.Path with foreign keys enforced on every
// connection. An in-memory database lives as long as its single connection,
// so MaxOpenConns is forced to 1 for ":memory:".
func Open(cfg Options) (*sql.DB, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is empty")
	}

	db, err := sql.Open("sqlite", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	maxConns := cfg.MaxOpenConns
	if maxConns < 1 || cfg.Path == ":memory:" {
		maxConns = 1
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func dsn(cfg Options) string {
	params := []string{"_pragma=foreign_keys(1)"}
	if cfg.BusyTimeout > 0 {
		params = append(params, fmt.Sprintf("_pragma=busy_timeout(%d)", cfg.BusyTimeout.Milliseconds()))
	}

	sep := "?"
	if strings.Contains(cfg.Path, "?") {
		sep = "&"
	}
	return cfg.Path + sep + strings.Join(params, "&")
}

// StatusCheck returns nil if it can successfully talk to the database
func StatusCheck(ctx context.Context, db *sql.DB) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Second)
		defer cancel()
	}
	return db.PingContext(ctx)
}

// HandleSQLiteError converts driver errors to application errors. Constraint
// violations keep the driver message so callers can report it verbatim.
func HandleSQLiteError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ErrDBNotFound
	}

	var serr *sqlite.Error
	if errors.As(err, &serr) {
		switch serr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%w: %s", ErrDBForeignKey, serr.Error())
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %s", ErrDBDuplicatedEntry, serr.Error())
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return fmt.Errorf("%w: %s", ErrDBNotNull, serr.Error())
		}
	}

	return err
}
