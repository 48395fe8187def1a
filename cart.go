package csc

import (
	"bytes"
	"context"
	"encoding/json"
	"slices"
	"strconv"
	"strings"
)

// DefaultCartKey is the store key the cart is persisted under.
const DefaultCartKey = "csc-cart"

// CartLine represents one product in the cart.
type CartLine struct {
	SKU       string  `json:"sku"`
	Qty       int     `json:"qty"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Image     string  `json:"image"`
}

// Validate returns an error if the line cannot be added to a cart.
func (l *CartLine) Validate() error {
	if l.SKU == "" {
		return Errorf(EINVALID, "cart line SKU required")
	}
	if l.UnitPrice < 0 {
		return Errorf(EINVALID, "cart line unit price must not be negative")
	}
	if l.Qty < 0 {
		return Errorf(EINVALID, "cart line quantity must not be negative")
	}
	return nil
}

// Total returns the line total in credits.
func (l CartLine) Total() float64 {
	return float64(l.Qty) * l.UnitPrice
}

// UnmarshalJSON decodes a cart line. The unit price may be a JSON number or
// a numeric string, since carts saved by the catalog page script store the
// price as read from the page's data attribute.
func (l *CartLine) UnmarshalJSON(data []byte) error {
	type line CartLine
	aux := struct {
		*line
		UnitPrice json.RawMessage `json:"unitPrice"`
	}{line: (*line)(l)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	price, err := parseAmount("unit price", aux.UnitPrice)
	if err != nil {
		return err
	}
	l.UnitPrice = price
	return nil
}

// parseAmount decodes a JSON number or numeric string. Empty and null are zero.
func parseAmount(field string, raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}

	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
	}

	price, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, Errorf(EINVALID, "invalid %s %q", field, s)
	}
	return price, nil
}

// Cart is the ordered sequence of lines a shopper has selected.
// A cart holds at most one line per SKU.
type Cart []CartLine

// Index returns the position of the line with the given SKU, or -1.
func (c Cart) Index(sku string) int {
	return slices.IndexFunc(c, func(l CartLine) bool { return l.SKU == sku })
}

// SortByName orders lines by name, byte-wise ascending. Lines with equal
// names keep their relative order.
func (c Cart) SortByName() {
	slices.SortStableFunc(c, func(a, b CartLine) int {
		return strings.Compare(a.Name, b.Name)
	})
}

// Total returns the sum of all line totals in credits.
func (c Cart) Total() float64 {
	var total float64
	for _, l := range c {
		total += l.Total()
	}
	return total
}

// CartStorage persists the cart under a single store key.
// Only the Cart Store may write through it.
type CartStorage interface {
	// Load returns the persisted cart.
	// Returns ENOTFOUND if no cart has been saved yet.
	Load(ctx context.Context) (Cart, error)

	// Save replaces the persisted cart.
	Save(ctx context.Context, cart Cart) error
}

// CartService represents the operations that mutate or read the cart.
type CartService interface {
	// AddItem adds line to the cart, or increases the quantity of the
	// existing line with the same SKU. The cart is re-sorted by name.
	AddItem(ctx context.Context, line CartLine) error

	// RemoveItem removes the line with the given SKU.
	// Removing an unknown SKU is not an error.
	RemoveItem(ctx context.Context, sku string) error

	// UpdateItemQty sets the quantity of the line with the given SKU.
	// Negative quantities are stored as zero.
	UpdateItemQty(ctx context.Context, sku string, qty int) error

	// Clear replaces the cart with an empty one.
	Clear(ctx context.Context) error

	// BadgeCount returns the number of distinct lines in the cart.
	BadgeCount(ctx context.Context) (int, error)

	// Cart returns the current cart, empty if none has been saved.
	Cart(ctx context.Context) (Cart, error)
}

// CartObserver is notified synchronously after the cart is persisted.
type CartObserver interface {
	// CartChanged re-renders the cart view.
	CartChanged(ctx context.Context, cart Cart) error

	// BadgeChanged updates the cart badge with the number of distinct lines.
	BadgeChanged(ctx context.Context, count int) error
}

// CartAction identifies a shopper interaction with the cart.
type CartAction string

// CartAction constants for CartEvent.
const (
	CartActionAdd       CartAction = "add"
	CartActionSetQty    CartAction = "set-qty"
	CartActionDecrement CartAction = "decrement"
	CartActionIncrement CartAction = "increment"
	CartActionRemove    CartAction = "remove"
	CartActionEmpty     CartAction = "empty"
)

// CartEvent is a typed cart interaction resolved from the page.
type CartEvent struct {
	Action CartAction

	// SKU of the row the interaction happened in.
	SKU string

	// Qty is the entered quantity for CartActionSetQty and the currently
	// displayed quantity for CartActionDecrement and CartActionIncrement.
	Qty int

	// Line is the product being added for CartActionAdd.
	Line CartLine
}

// CartMarkup is a rendered cart.
type CartMarkup struct {
	// Items is the markup of the cart line container.
	Items string

	// Total is the text of the cart total display. Empty for an empty cart.
	Total string
}
