// Package sqlite persists client state in a local SQLite file, the storefront
// console's equivalent of browser local storage.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/99minutos/storefront/internal/core/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS session_tokens (
	name       TEXT PRIMARY KEY,
	token      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS carts (
	identity_id TEXT PRIMARY KEY,
	items       TEXT NOT NULL,
	updated_at  INTEGER NOT NULL
);`

// tokenName is the single row the bearer token lives in.
const tokenName = "bearer"

type Store struct {
	db *sqlx.DB
}

// Open opens (or creates) the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	// One connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) LoadToken(ctx context.Context) (string, error) {
	var token string
	err := s.db.GetContext(ctx, &token, `SELECT token FROM session_tokens WHERE name = ?`, tokenName)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return token, nil
}

func (s *Store) SaveToken(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session_tokens (name, token, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at`,
		tokenName, token, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *Store) DeleteToken(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_tokens WHERE name = ?`, tokenName); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (s *Store) LoadCart(ctx context.Context, identityID string) ([]domain.LineItem, error) {
	var raw string
	err := s.db.GetContext(ctx, &raw, `SELECT items FROM carts WHERE identity_id = ?`, identityID)
	if errors.Is(err, sql.ErrNoRows) {
		return []domain.LineItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var items []domain.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return items, nil
}

func (s *Store) SaveCart(ctx context.Context, identityID string, items []domain.LineItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO carts (identity_id, items, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(identity_id) DO UPDATE SET items = excluded.items, updated_at = excluded.updated_at`,
		identityID, string(raw), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *Store) DeleteCart(ctx context.Context, identityID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM carts WHERE identity_id = ?`, identityID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
