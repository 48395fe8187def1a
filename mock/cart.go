package mock

import (
	"context"

	"github.com/fwojciec/csc"
)

var _ csc.CartStorage = (*CartStorage)(nil)

// CartStorage is a mock implementation of csc.CartStorage.
type CartStorage struct {
	LoadFn func(ctx context.Context) (csc.Cart, error)
	SaveFn func(ctx context.Context, cart csc.Cart) error
}

func (s *CartStorage) Load(ctx context.Context) (csc.Cart, error) {
	return s.LoadFn(ctx)
}

func (s *CartStorage) Save(ctx context.Context, cart csc.Cart) error {
	return s.SaveFn(ctx, cart)
}

var _ csc.CartService = (*CartService)(nil)

// CartService is a mock implementation of csc.CartService.
type CartService struct {
	AddItemFn       func(ctx context.Context, line csc.CartLine) error
	RemoveItemFn    func(ctx context.Context, sku string) error
	UpdateItemQtyFn func(ctx context.Context, sku string, qty int) error
	ClearFn         func(ctx context.Context) error
	BadgeCountFn    func(ctx context.Context) (int, error)
	CartFn          func(ctx context.Context) (csc.Cart, error)
}

func (s *CartService) AddItem(ctx context.Context, line csc.CartLine) error {
	return s.AddItemFn(ctx, line)
}

func (s *CartService) RemoveItem(ctx context.Context, sku string) error {
	return s.RemoveItemFn(ctx, sku)
}

func (s *CartService) UpdateItemQty(ctx context.Context, sku string, qty int) error {
	return s.UpdateItemQtyFn(ctx, sku, qty)
}

func (s *CartService) Clear(ctx context.Context) error {
	return s.ClearFn(ctx)
}

func (s *CartService) BadgeCount(ctx context.Context) (int, error) {
	return s.BadgeCountFn(ctx)
}

func (s *CartService) Cart(ctx context.Context) (csc.Cart, error) {
	return s.CartFn(ctx)
}

var _ csc.CartObserver = (*CartObserver)(nil)

// CartObserver is a mock implementation of csc.CartObserver.
type CartObserver struct {
	CartChangedFn  func(ctx context.Context, cart csc.Cart) error
	BadgeChangedFn func(ctx context.Context, count int) error
}

func (o *CartObserver) CartChanged(ctx context.Context, cart csc.Cart) error {
	return o.CartChangedFn(ctx, cart)
}

func (o *CartObserver) BadgeChanged(ctx context.Context, count int) error {
	return o.BadgeChangedFn(ctx, count)
}
