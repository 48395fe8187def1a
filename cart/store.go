// Package cart implements the cart state manager: the Cart Store that owns
// the persisted cart, the renderer that projects it into page markup, and
// the handler that turns page interactions into store calls.
package cart

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/fwojciec/csc"
)

// Compile-time interface verification.
var _ csc.CartService = (*Store)(nil)

// Store implements csc.CartService on top of a csc.CartStorage.
// Every mutation loads the cart, applies the change, saves it, and then
// notifies the observer synchronously.
//
// Store is not safe for concurrent use. Two processes sharing the same
// storage race with last-writer-wins semantics.
type Store struct {
	storage  csc.CartStorage
	observer csc.CartObserver
	logger   *slog.Logger
}

// NewStore creates a new Store. A nil observer or logger disables
// notifications or diagnostics respectively.
func NewStore(storage csc.CartStorage, observer csc.CartObserver, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{storage: storage, observer: observer, logger: logger}
}

// load returns the persisted cart. The bool result is false if no cart has
// been saved yet, in which case the returned cart is empty.
func (s *Store) load(ctx context.Context) (csc.Cart, bool, error) {
	cart, err := s.storage.Load(ctx)
	if csc.ErrorCode(err) == csc.ENOTFOUND {
		return csc.Cart{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		cart = csc.Cart{}
	}
	return cart, true, nil
}

func (s *Store) save(ctx context.Context, cart csc.Cart) error {
	if err := s.storage.Save(ctx, cart); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// AddItem adds line to the cart or increases the quantity of the line with
// the same SKU, re-sorts the cart by name, and updates the badge.
func (s *Store) AddItem(ctx context.Context, line csc.CartLine) error {
	if err := line.Validate(); err != nil {
		return err
	}

	cart, _, err := s.load(ctx)
	if err != nil {
		return err
	}

	if i := cart.Index(line.SKU); i >= 0 {
		cart[i].Qty += line.Qty
	} else {
		cart = append(cart, line)
	}
	cart.SortByName()

	if err := s.save(ctx, cart); err != nil {
		return err
	}
	return s.badgeChanged(ctx, len(cart))
}

// RemoveItem removes the line with the given SKU, then refreshes the cart
// view and the badge. Nothing happens if no cart has been saved yet.
func (s *Store) RemoveItem(ctx context.Context, sku string) error {
	cart, ok, err := s.load(ctx)
	if err != nil || !ok {
		return err
	}

	cart = slices.DeleteFunc(cart, func(l csc.CartLine) bool { return l.SKU == sku })

	if err := s.save(ctx, cart); err != nil {
		return err
	}
	if err := s.cartChanged(ctx, cart); err != nil {
		return err
	}
	return s.badgeChanged(ctx, len(cart))
}

// UpdateItemQty sets the quantity of the line with the given SKU and
// refreshes the cart view. Negative quantities are stored as zero. An
// unknown SKU is logged and the cart is saved unchanged. Nothing happens if
// no cart has been saved yet. The cart is not re-sorted.
func (s *Store) UpdateItemQty(ctx context.Context, sku string, qty int) error {
	cart, ok, err := s.load(ctx)
	if err != nil || !ok {
		return err
	}

	qty = max(qty, 0)

	if i := cart.Index(sku); i >= 0 {
		cart[i].Qty = qty
	} else {
		s.logger.Warn("sku not in cart", "sku", sku)
	}

	if err := s.save(ctx, cart); err != nil {
		return err
	}
	return s.cartChanged(ctx, cart)
}

// Clear replaces the cart with an empty one, then refreshes the cart view
// and the badge.
func (s *Store) Clear(ctx context.Context) error {
	cart := csc.Cart{}
	if err := s.save(ctx, cart); err != nil {
		return err
	}
	if err := s.cartChanged(ctx, cart); err != nil {
		return err
	}
	return s.badgeChanged(ctx, 0)
}

// BadgeCount returns the number of distinct lines in the cart.
func (s *Store) BadgeCount(ctx context.Context) (int, error) {
	cart, _, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(cart), nil
}

// Cart returns the current cart, empty if none has been saved.
func (s *Store) Cart(ctx context.Context) (csc.Cart, error) {
	cart, _, err := s.load(ctx)
	return cart, err
}

func (s *Store) cartChanged(ctx context.Context, cart csc.Cart) error {
	if s.observer == nil {
		return nil
	}
	if err := s.observer.CartChanged(ctx, cart); err != nil {
		return fmt.Errorf("failed to refresh cart view: %w", err)
	}
	return nil
}

func (s *Store) badgeChanged(ctx context.Context, count int) error {
	if s.observer == nil {
		return nil
	}
	if err := s.observer.BadgeChanged(ctx, count); err != nil {
		return fmt.Errorf("failed to update cart badge: %w", err)
	}
	return nil
}
