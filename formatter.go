package csc

import (
	"fmt"
	"strings"
)

// FormatCart formats the cart as plain text, one line per product followed
// by the total. An empty cart yields a single notice line.
func FormatCart(cart Cart) string {
	if len(cart) == 0 {
		return "No items in cart"
	}

	parts := make([]string, 0, len(cart)+1)
	for _, l := range cart {
		parts = append(parts, fmt.Sprintf("%s  %s  x%d  %s", l.SKU, l.Name, l.Qty, FormatUnits(l.Total(), false)))
	}
	parts = append(parts, "Total: "+FormatUnits(cart.Total(), false))

	return strings.Join(parts, "\n")
}
