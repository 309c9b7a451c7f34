package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS users (
	email      TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// SQLite stores each record as a JSON column keyed by email.
type SQLite struct {
	db *sql.DB
}

var _ Repo = (*SQLite)(nil)

// OpenSQLite connects to the SQLite database at dsn, applies the
// recommended pragmas and creates the schema.
func OpenSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection serialises the read-modify-write merges.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLite{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *SQLite) DB() *sql.DB {
	return s.db
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Get(ctx context.Context, email string) (Record, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM users WHERE email = ?`, email).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", email, err)
	}
	rec, err := decode([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", email, err)
	}
	return rec, nil
}

func (s *SQLite) Put(ctx context.Context, email string, patch Record) error {
	return s.tx(ctx, func(tx *sql.Tx) error {
		base, err := getTx(ctx, tx, email)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		return upsertTx(ctx, tx, email, Merge(base, patch))
	})
}

func (s *SQLite) Create(ctx context.Context, email string) (Record, bool, error) {
	var (
		rec     Record
		created bool
	)
	err := s.tx(ctx, func(tx *sql.Tx) error {
		existing, err := getTx(ctx, tx, email)
		if err == nil {
			rec = existing
			return nil
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		rec, created = NewRecord(), true
		return upsertTx(ctx, tx, email, rec)
	})
	if err != nil {
		return nil, false, err
	}
	return rec, created, nil
}

func (s *SQLite) Emails(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT email FROM users ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("list emails: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, fmt.Errorf("scan email: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLite) tx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func getTx(ctx context.Context, tx *sql.Tx, email string) (Record, error) {
	var data string
	err := tx.QueryRowContext(ctx, `SELECT data FROM users WHERE email = ?`, email).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", email, err)
	}
	return decode([]byte(data))
}

func upsertTx(ctx context.Context, tx *sql.Tx, email string, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s: %w", email, err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (email, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(email) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		email, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("put %s: %w", email, err)
	}
	return nil
}

// applyPragmas configures SQLite for a single-process service.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}
