package cart

import (
	"html/template"
	"strings"

	"github.com/fwojciec/csc"
)

// EmptyCartHTML is rendered into the cart line container for an empty cart.
const EmptyCartHTML = `<div class="row">
  <h5 class="center">No items in cart</h5>
</div>`

var rowsTemplate = template.Must(template.New("cart").Parse(`{{range .}}
<div class="row product-row">
  <div class="prod-img col s3 m2 l2">
    <a href="#"><img src="{{.Image}}" class="responsive-img" alt="{{.Name}}"></a>
  </div>
  <div class="col s9 m10">
    <div class="row">
      <div class="prod-title col s8">
        <a href="{{.Link}}" data-sku="{{.SKU}}" class="item-name">{{.Name}}</a>
      </div>
      <div class="prod-total col s4 right-align right">{{.Total}}</div>
    </div>
    <div class="row">
      <div class="col s12 prod-qty">
        <button><i class="fa fa-minus subtract-btn"></i></button>
        <input type="number" class="qty" value="{{.Qty}}">
        <button><i class="fa fa-plus add-btn"></i></button>
        <button class="remove-item"><i class="fa fa-trash"></i></button>
      </div>
    </div>
  </div>
</div>
{{end}}`))

// row is the template view of one cart line.
type row struct {
	SKU   string
	Name  string
	Image string
	Link  string
	Qty   int
	Total string
}

// Renderer renders a cart into markup for the cart page.
type Renderer struct {
	// BasePath prefixes product links, e.g. "/central-supply-catalog".
	BasePath string
}

// NewRenderer creates a new Renderer.
func NewRenderer(basePath string) *Renderer {
	return &Renderer{BasePath: strings.TrimSuffix(basePath, "/")}
}

// Render returns the line container markup and the total text for cart.
// Line and cart totals use unshortened unit labels. An empty cart renders
// the empty-state message and no total.
func (r *Renderer) Render(cart csc.Cart) (csc.CartMarkup, error) {
	if len(cart) == 0 {
		return csc.CartMarkup{Items: EmptyCartHTML}, nil
	}

	rows := make([]row, 0, len(cart))
	for _, l := range cart {
		rows = append(rows, row{
			SKU:   l.SKU,
			Name:  l.Name,
			Image: l.Image,
			Link:  r.BasePath + "/products/" + l.SKU,
			Qty:   l.Qty,
			Total: csc.FormatUnits(l.Total(), false),
		})
	}

	var b strings.Builder
	if err := rowsTemplate.Execute(&b, rows); err != nil {
		return csc.CartMarkup{}, csc.Errorf(csc.EINTERNAL, "failed to render cart: %v", err)
	}

	return csc.CartMarkup{
		Items: b.String(),
		Total: "Total: " + csc.FormatUnits(cart.Total(), false),
	}, nil
}
