package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/fwojciec/csc"
)

// Compile-time interface verification.
var _ csc.CartStorage = (*CartStorage)(nil)

// CartStorage implements csc.CartStorage as a JSON value under one key of
// the kv table.
type CartStorage struct {
	db  *DB
	key string
}

// NewCartStorage creates a new CartStorage for the given store key.
func NewCartStorage(db *DB, key string) *CartStorage {
	return &CartStorage{db: db, key: key}
}

// Load returns the persisted cart.
func (s *CartStorage) Load(ctx context.Context) (csc.Cart, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, s.key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, csc.Errorf(csc.ENOTFOUND, "cart not found")
	}
	if err != nil {
		return nil, err
	}

	var cart csc.Cart
	if err := json.Unmarshal([]byte(value), &cart); err != nil {
		return nil, csc.Errorf(csc.EINVALID, "stored cart is not valid: %v", err)
	}
	return cart, nil
}

// Save replaces the persisted cart.
func (s *CartStorage) Save(ctx context.Context, cart csc.Cart) error {
	if cart == nil {
		cart = csc.Cart{}
	}
	value, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, s.key, string(value), time.Now().UTC().Format(time.RFC3339))

	return err
}
