// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// Every mutating method runs inside one transaction opened by withTx.
// Constraint failures reported by SQLite are translated into the
// storage sentinels (ErrConflict, ErrOwnerNotFound) so handlers never
// see driver-specific errors.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aanand-mishra/campus-api/internal/config"
	"github.com/aanand-mishra/campus-api/internal/storage"

	// Importing the driver registers "sqlite3" with database/sql and
	// exposes its extended error codes used by classify.
	"github.com/mattn/go-sqlite3"
)

// dsnOptions are appended to the database path.
//
//	_foreign_keys  enforce REFERENCES (off by default in SQLite)
//	_busy_timeout  concurrent writers wait up to 5s for the lock
//	_journal_mode  WAL, readers proceed while a write is in flight
//	_txlock        BEGIN IMMEDIATE, read-then-write transactions hold the
//	               write lock from the start
const dsnOptions = "?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate"

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT    NOT NULL,
	email      TEXT    NOT NULL,
	age        INTEGER NOT NULL,
	student_id TEXT    NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS projects (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT    NOT NULL,
	description TEXT,
	owner_id    INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_projects_owner_id ON projects (owner_id);

CREATE TABLE IF NOT EXISTS courses (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	code    TEXT    NOT NULL UNIQUE,
	name    TEXT    NOT NULL,
	credits INTEGER NOT NULL
);
`

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB, which is a connection pool managed by database/sql
// and safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Storage = (*SQLite)(nil)

// querier is satisfied by both *sql.DB and *sql.Tx, so read helpers can
// run either standalone or inside a write transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// New opens the SQLite database at cfg.StoragePath.
func New(cfg *config.Config) (*SQLite, error) {
	return Open(cfg.StoragePath)
}

// Open opens (creating if needed) the database file at path, creates the
// tables if they do not already exist, and returns a ready-to-use *SQLite.
func Open(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite.Open: create dir: %w", err)
	}

	// sql.Open does NOT open a real connection yet; it only validates the
	// driver name. The first connection is made by the schema Exec below.
	db, err := sql.Open("sqlite3", path+dsnOptions)
	if err != nil {
		return nil, fmt.Errorf("sqlite.Open: open db: %w", err)
	}

	// CREATE ... IF NOT EXISTS is idempotent, safe to run on every startup.
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.Open: create schema: %w", err)
	}

	return &SQLite{Db: db}, nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.Db.PingContext(ctx)
}

func (s *SQLite) Close() error {
	return s.Db.Close()
}

// withTx runs fn inside a transaction. The transaction is committed only
// if fn returns nil; on every other exit path it is rolled back.
func (s *SQLite) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.Db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	// Rollback after a successful Commit is a no-op returning ErrTxDone.
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, classify(err))
	}
	return nil
}

// classify maps SQLite constraint failures onto storage sentinels.
// Any other error is returned unchanged.
func classify(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return fmt.Errorf("%w: %v", storage.ErrConflict, err)
	case sqlite3.ErrConstraintForeignKey:
		return fmt.Errorf("%w: %v", storage.ErrOwnerNotFound, err)
	default:
		return err
	}
}

// mustAffect turns a zero-row UPDATE/DELETE into storage.ErrNotFound.
func mustAffect(res sql.Result, op string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: id %d: %w", op, id, storage.ErrNotFound)
	}
	return nil
}
