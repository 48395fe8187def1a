package cart

import (
	"context"
	"strconv"

	"github.com/fwojciec/csc"
)

// Compile-time interface verification.
var _ csc.CartObserver = (*UI)(nil)

// UI keeps the cart page regions and the badge in step with the cart.
// Both notifications are idempotent.
type UI struct {
	page     csc.Page
	renderer *Renderer
}

// NewUI creates a new UI writing into page.
func NewUI(page csc.Page, renderer *Renderer) *UI {
	return &UI{page: page, renderer: renderer}
}

// CartChanged re-renders the cart line container and the total display.
// Pages without a cart line container are left untouched.
func (u *UI) CartChanged(_ context.Context, cart csc.Cart) error {
	if !u.page.Has(csc.RoleCartItems) {
		return nil
	}

	markup, err := u.renderer.Render(cart)
	if err != nil {
		return err
	}

	u.page.SetHTML(csc.RoleCartItems, markup.Items)
	u.page.SetText(csc.RoleCartTotal, markup.Total)
	return nil
}

// BadgeChanged hides the badge when the cart is empty and shows the
// number of distinct lines otherwise.
func (u *UI) BadgeChanged(_ context.Context, count int) error {
	if count == 0 {
		u.page.SetVisible(csc.RoleCartBadge, false)
		return nil
	}
	u.page.SetText(csc.RoleCartBadge, strconv.Itoa(count))
	u.page.SetVisible(csc.RoleCartBadge, true)
	return nil
}

// Refresh brings the page up to date with the stored cart, as on page load.
func (u *UI) Refresh(ctx context.Context, cart csc.CartService) error {
	c, err := cart.Cart(ctx)
	if err != nil {
		return err
	}
	if err := u.BadgeChanged(ctx, len(c)); err != nil {
		return err
	}
	return u.CartChanged(ctx, c)
}
