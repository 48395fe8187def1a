package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fwojciec/csc"
)

// Ensure CartStorage implements csc.CartStorage at compile time.
var _ csc.CartStorage = (*CartStorage)(nil)

// CartStorage implements csc.CartStorage on a JSON file holding an object
// of key-value pairs. The cart is the value under the configured key; other
// keys in the file are preserved on save.
type CartStorage struct {
	path string
	key  string
}

// NewCartStorage creates a new CartStorage for the file at path.
func NewCartStorage(path, key string) *CartStorage {
	return &CartStorage{path: path, key: key}
}

func (s *CartStorage) readStore() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read cart file: %w", err)
	}

	store := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, csc.Errorf(csc.EINVALID, "malformed cart file %s: %v", s.path, err)
	}
	return store, nil
}

// Load returns the cart stored under the key.
// Returns ENOTFOUND if the file or the key does not exist.
func (s *CartStorage) Load(_ context.Context) (csc.Cart, error) {
	store, err := s.readStore()
	if err != nil {
		return nil, err
	}

	raw, ok := store[s.key]
	if !ok {
		return nil, csc.Errorf(csc.ENOTFOUND, "cart %q not found", s.key)
	}

	var cart csc.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, csc.Errorf(csc.EINVALID, "malformed cart %q: %v", s.key, err)
	}
	return cart, nil
}

// Save replaces the cart stored under the key.
func (s *CartStorage) Save(_ context.Context, cart csc.Cart) error {
	store, err := s.readStore()
	if err != nil {
		return err
	}

	if cart == nil {
		cart = csc.Cart{}
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	store[s.key] = raw

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cart file: %w", err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("failed to write cart file: %w", err)
	}
	return nil
}
