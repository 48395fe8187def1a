package cart

import (
	"context"

	"github.com/fwojciec/csc"
)

// Handler translates cart interactions into Cart Store calls.
type Handler struct {
	cart csc.CartService
	page csc.Page
}

// NewHandler creates a new Handler. The page may be nil when there is no
// page to write into.
func NewHandler(cart csc.CartService, page csc.Page) *Handler {
	return &Handler{cart: cart, page: page}
}

// Handle applies a single interaction. Decrement and increment are relative
// to the quantity displayed in the row, which ev.Qty carries.
func (h *Handler) Handle(ctx context.Context, ev csc.CartEvent) error {
	switch ev.Action {
	case csc.CartActionAdd:
		return h.cart.AddItem(ctx, ev.Line)
	case csc.CartActionSetQty:
		return h.cart.UpdateItemQty(ctx, ev.SKU, ev.Qty)
	case csc.CartActionDecrement:
		return h.cart.UpdateItemQty(ctx, ev.SKU, ev.Qty-1)
	case csc.CartActionIncrement:
		return h.cart.UpdateItemQty(ctx, ev.SKU, ev.Qty+1)
	case csc.CartActionRemove:
		return h.cart.RemoveItem(ctx, ev.SKU)
	case csc.CartActionEmpty:
		if err := h.cart.Clear(ctx); err != nil {
			return err
		}
		if h.page != nil {
			h.page.SetText(csc.RoleCartTotal, "")
		}
		return nil
	default:
		return csc.Errorf(csc.EINVALID, "unknown cart action %q", ev.Action)
	}
}
