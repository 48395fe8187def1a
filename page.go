package csc

// Role identifies an element of the catalog page by the selector the page
// templates give it.
type Role string

// Page roles the cart and search renderers depend on.
const (
	RoleProductImage  Role = "#prod-img"
	RoleUnitPrice     Role = "#unit-price"
	RoleProductName   Role = "#product-name"
	RoleProductQty    Role = "#product-qty"
	RoleAddToCart     Role = "#add-to-cart"
	RoleCartItems     Role = ".cart-items-container"
	RoleCartTotal     Role = ".cart-total"
	RoleCartBadge     Role = "#cart-badge"
	RoleEmptyCart     Role = "#empty-cart"
	RoleContentRegion Role = ".departments-container"
)

// Page is the host page renderers write into. Writes to a role the page
// does not contain are ignored.
type Page interface {
	// Has reports whether the page contains an element with the role.
	Has(role Role) bool

	// SetHTML replaces the inner markup of the element.
	SetHTML(role Role, html string)

	// SetText replaces the text content of the element.
	SetText(role Role, text string)

	// SetVisible shows or hides the element.
	SetVisible(role Role, visible bool)
}
