// Package localstore is the client's durable local storage: a small
// key-value table in a SQLite database. It holds the persisted session
// (token, user), the Q&A transcript, and the recent-search list.
//
// There is no locking around reads and writes because all writes originate
// from the single interactive loop.
package localstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/kbcli/internal/client/migrations"
	"github.com/dmitrijs2005/kbcli/internal/dbx"
	"github.com/pressly/goose/v3"
)

// Store is the key-value storage API used by the services layer.
// Get returns (nil, nil) for a missing key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
}

// SQLiteStore implements Store on top of a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Open opens (creating if needed) the state database at dsn and applies
// pending migrations.
func Open(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open state db: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return NewSQLiteStore(db), nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get state[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	return set(ctx, s.db, key, value)
}

// SetMany writes all pairs in one transaction, so related keys (for
// example token and user) are never persisted half-updated.
func (s *SQLiteStore) SetMany(ctx context.Context, values map[string][]byte) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for k, v := range values {
			if err := set(ctx, tx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set state[%s]: %w", key, err)
	}
	return nil
}

// Delete removes the given keys. Missing keys are not an error, so the
// call is idempotent.
func (s *SQLiteStore) Delete(ctx context.Context, keys ...string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, key := range keys {
			if _, err := tx.ExecContext(ctx, `DELETE FROM state WHERE key = ?`, key); err != nil {
				return fmt.Errorf("failed to delete state[%s]: %w", key, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM state`); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}
