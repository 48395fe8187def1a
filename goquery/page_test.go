package goquery_test

import (
	"context"
	"testing"

	"github.com/fwojciec/csc"
	"github.com/fwojciec/csc/cart"
	"github.com/fwojciec/csc/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productPage = `<html><body>
<img id="prod-img" src="/img/products/wpn-001.png">
<h1 id="product-name" data-sku="WPN-001"> Laser Rifle </h1>
<span id="unit-price" data-unitprice="1250">1.25 KCr</span>
<input id="product-qty" type="number" value="2">
<button id="add-to-cart">Add</button>
<span id="cart-badge" style="color: red; display: none">0</span>
</body></html>`

const cartPage = `<html><body>
<div class="cart-items-container"></div>
<div class="cart-total"></div>
<a id="empty-cart">Empty</a>
</body></html>`

func TestPage(t *testing.T) {
	t.Parallel()

	t.Run("reports roles present on the page", func(t *testing.T) {
		t.Parallel()

		p, err := goquery.NewPage(cartPage)
		require.NoError(t, err)

		assert.True(t, p.Has(csc.RoleCartItems))
		assert.True(t, p.Has(csc.RoleEmptyCart))
		assert.False(t, p.Has(csc.RoleAddToCart))
		assert.False(t, p.Has(csc.RoleContentRegion))
	})

	t.Run("writes markup and text into roles", func(t *testing.T) {
		t.Parallel()

		p, err := goquery.NewPage(cartPage)
		require.NoError(t, err)

		p.SetHTML(csc.RoleCartItems, `<div class="product-row">row</div>`)
		p.SetText(csc.RoleCartTotal, "Total: <5 Cr>")

		html, err := p.HTML()
		require.NoError(t, err)
		assert.Contains(t, html, `<div class="cart-items-container"><div class="product-row">row</div></div>`)
		assert.Contains(t, html, `<div class="cart-total">Total: &lt;5 Cr&gt;</div>`)
	})

	t.Run("reads back inner markup of a role", func(t *testing.T) {
		t.Parallel()

		p, err := goquery.NewPage(cartPage)
		require.NoError(t, err)

		p.SetHTML(csc.RoleCartItems, `<p>row</p>`)

		html, err := p.InnerHTML(csc.RoleCartItems)
		require.NoError(t, err)
		assert.Equal(t, `<p>row</p>`, html)

		_, err = p.InnerHTML(csc.RoleContentRegion)
		assert.Equal(t, csc.ENOTFOUND, csc.ErrorCode(err))
	})

	t.Run("ignores writes to missing roles", func(t *testing.T) {
		t.Parallel()

		p, err := goquery.NewPage(cartPage)
		require.NoError(t, err)
		before, err := p.HTML()
		require.NoError(t, err)

		p.SetHTML(csc.RoleContentRegion, "<p>results</p>")
		p.SetVisible(csc.RoleCartBadge, true)

		after, err := p.HTML()
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("toggles display while keeping other styles", func(t *testing.T) {
		t.Parallel()

		p, err := goquery.NewPage(productPage)
		require.NoError(t, err)

		p.SetVisible(csc.RoleCartBadge, true)
		html, err := p.HTML()
		require.NoError(t, err)
		assert.Contains(t, html, `style="color: red; display: block"`)

		p.SetVisible(csc.RoleCartBadge, false)
		html, err = p.HTML()
		require.NoError(t, err)
		assert.Contains(t, html, `style="color: red; display: none"`)
	})

	t.Run("adds display to unstyled elements", func(t *testing.T) {
		t.Parallel()

		p, err := goquery.NewPage(`<span id="cart-badge">3</span>`)
		require.NoError(t, err)

		p.SetVisible(csc.RoleCartBadge, false)

		html, err := p.HTML()
		require.NoError(t, err)
		assert.Contains(t, html, `<span id="cart-badge" style="display: none">3</span>`)
	})
}

func TestParseProductPage(t *testing.T) {
	t.Parallel()

	t.Run("reads add-to-cart inputs", func(t *testing.T) {
		t.Parallel()

		line, err := goquery.ParseProductPage(productPage)

		require.NoError(t, err)
		assert.Equal(t, csc.CartLine{
			SKU:       "WPN-001",
			Name:      "Laser Rifle",
			UnitPrice: 1250,
			Qty:       2,
			Image:     "/img/products/wpn-001.png",
		}, line)
	})

	t.Run("returns not found without add-to-cart control", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.ParseProductPage(cartPage)

		assert.Equal(t, csc.ENOTFOUND, csc.ErrorCode(err))
	})

	t.Run("rejects missing sku", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.ParseProductPage(`<h1 id="product-name">X</h1>
<span id="unit-price" data-unitprice="1"></span><button id="add-to-cart"></button>`)

		assert.Equal(t, csc.EINVALID, csc.ErrorCode(err))
	})

	t.Run("rejects non-numeric price", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.ParseProductPage(`<h1 id="product-name" data-sku="A">X</h1>
<span id="unit-price" data-unitprice="cheap"></span><button id="add-to-cart"></button>`)

		assert.Equal(t, csc.EINVALID, csc.ErrorCode(err))
	})

	t.Run("rejects non-numeric quantity", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.ParseProductPage(`<h1 id="product-name" data-sku="A">X</h1>
<span id="unit-price" data-unitprice="1"></span>
<input id="product-qty" value="two"><button id="add-to-cart"></button>`)

		assert.Equal(t, csc.EINVALID, csc.ErrorCode(err))
	})

	t.Run("treats empty quantity as zero", func(t *testing.T) {
		t.Parallel()

		line, err := goquery.ParseProductPage(`<h1 id="product-name" data-sku="A">X</h1>
<span id="unit-price" data-unitprice="1"></span>
<input id="product-qty" value=""><button id="add-to-cart"></button>`)

		require.NoError(t, err)
		assert.Equal(t, 0, line.Qty)
		assert.Empty(t, line.Image)
	})
}

// renderedCart renders cart into the cart page the way the cart view does.
func renderedCart(t *testing.T, c csc.Cart) *goquery.Page {
	t.Helper()

	p, err := goquery.NewPage(cartPage)
	require.NoError(t, err)
	ui := cart.NewUI(p, cart.NewRenderer("/shop"))
	require.NoError(t, ui.CartChanged(context.Background(), c))
	return p
}

func TestPage_CartRows(t *testing.T) {
	t.Parallel()

	t.Run("reads rendered rows in order", func(t *testing.T) {
		t.Parallel()

		p := renderedCart(t, csc.Cart{
			{SKU: "A", Name: "Alpha", UnitPrice: 1, Qty: 3},
			{SKU: "B", Name: "Beta", UnitPrice: 2, Qty: 1},
		})

		rows, err := p.CartRows()

		require.NoError(t, err)
		assert.Equal(t, []goquery.Row{{SKU: "A", Qty: 3}, {SKU: "B", Qty: 1}}, rows)
	})

	t.Run("returns no rows for empty cart", func(t *testing.T) {
		t.Parallel()

		p := renderedCart(t, csc.Cart{})

		rows, err := p.CartRows()

		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestPage_CartEvent(t *testing.T) {
	t.Parallel()

	c := csc.Cart{
		{SKU: "A", Name: "Alpha", UnitPrice: 1, Qty: 3},
		{SKU: "B", Name: "Beta", UnitPrice: 2, Qty: 1},
	}

	tests := []struct {
		name    string
		row     int
		control goquery.Control
		entered string
		want    csc.CartEvent
	}{
		{"decrement", 0, goquery.ControlDecrement, "", csc.CartEvent{Action: csc.CartActionDecrement, SKU: "A", Qty: 3}},
		{"increment", 1, goquery.ControlIncrement, "", csc.CartEvent{Action: csc.CartActionIncrement, SKU: "B", Qty: 1}},
		{"remove", 1, goquery.ControlRemove, "", csc.CartEvent{Action: csc.CartActionRemove, SKU: "B", Qty: 1}},
		{"entered quantity", 0, goquery.ControlQty, "7", csc.CartEvent{Action: csc.CartActionSetQty, SKU: "A", Qty: 7}},
		{"cleared quantity", 0, goquery.ControlQty, "", csc.CartEvent{Action: csc.CartActionSetQty, SKU: "A", Qty: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := renderedCart(t, c)

			ev, err := p.CartEvent(tt.row, tt.control, tt.entered)

			require.NoError(t, err)
			assert.Equal(t, tt.want, ev)
		})
	}

	t.Run("returns not found for missing row", func(t *testing.T) {
		t.Parallel()

		p := renderedCart(t, c)

		_, err := p.CartEvent(2, goquery.ControlIncrement, "")

		assert.Equal(t, csc.ENOTFOUND, csc.ErrorCode(err))
	})

	t.Run("returns not found for missing control", func(t *testing.T) {
		t.Parallel()

		p := renderedCart(t, c)

		_, err := p.CartEvent(0, goquery.Control(".fa-star"), "")

		assert.Equal(t, csc.ENOTFOUND, csc.ErrorCode(err))
	})

	t.Run("rejects non-numeric entered quantity", func(t *testing.T) {
		t.Parallel()

		p := renderedCart(t, c)

		_, err := p.CartEvent(0, goquery.ControlQty, "lots")

		assert.Equal(t, csc.EINVALID, csc.ErrorCode(err))
	})
}

func TestEventFromControl(t *testing.T) {
	t.Parallel()

	p := renderedCart(t, csc.Cart{{SKU: "A", Name: "Alpha", UnitPrice: 1, Qty: 3}})
	html, err := p.HTML()
	require.NoError(t, err)

	rows, err := goquery.ParseCartRows(html)
	require.NoError(t, err)
	assert.Equal(t, []goquery.Row{{SKU: "A", Qty: 3}}, rows)

	ev, err := goquery.EventFromControl(html, 0, goquery.ControlIncrement, "")
	require.NoError(t, err)
	assert.Equal(t, csc.CartEvent{Action: csc.CartActionIncrement, SKU: "A", Qty: 3}, ev)
}
