// Package goquery implements the catalog page DOM contract on parsed HTML
// documents using goquery.
package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/csc"
)

// Ensure Page implements csc.Page at compile time.
var _ csc.Page = (*Page)(nil)

// Page is a catalog page parsed into a document that renderers write into.
type Page struct {
	doc *goquery.Document
}

// NewPage parses an HTML page.
func NewPage(html string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, csc.Errorf(csc.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Page{doc: doc}, nil
}

// HTML returns the page markup including all writes made so far.
func (p *Page) HTML() (string, error) {
	return p.doc.Html()
}

// InnerHTML returns the inner markup of the first element with the role.
// Returns ENOTFOUND if the page has no such element.
func (p *Page) InnerHTML(role csc.Role) (string, error) {
	sel := p.doc.Find(string(role)).First()
	if sel.Length() == 0 {
		return "", csc.Errorf(csc.ENOTFOUND, "page has no %s element", role)
	}
	return sel.Html()
}

// Has reports whether the page contains an element with the role.
func (p *Page) Has(role csc.Role) bool {
	return p.doc.Find(string(role)).Length() > 0
}

// SetHTML replaces the inner markup of the elements with the role.
func (p *Page) SetHTML(role csc.Role, html string) {
	p.doc.Find(string(role)).SetHtml(html)
}

// SetText replaces the text content of the elements with the role.
func (p *Page) SetText(role csc.Role, text string) {
	p.doc.Find(string(role)).SetText(text)
}

var displayDecl = regexp.MustCompile(`(?i)\s*display\s*:[^;]*;?`)

// SetVisible sets the display style of the elements with the role.
func (p *Page) SetVisible(role csc.Role, visible bool) {
	display := "display: none"
	if visible {
		display = "display: block"
	}

	p.doc.Find(string(role)).Each(func(_ int, sel *goquery.Selection) {
		style := strings.TrimSpace(displayDecl.ReplaceAllString(sel.AttrOr("style", ""), ""))
		if style != "" && !strings.HasSuffix(style, ";") {
			style += ";"
		}
		if style != "" {
			style += " "
		}
		sel.SetAttr("style", style+display)
	})
}

// ParseProductPage reads the add-to-cart inputs of a product page: image,
// unit price, name, SKU and the quantity field.
func ParseProductPage(html string) (csc.CartLine, error) {
	p, err := NewPage(html)
	if err != nil {
		return csc.CartLine{}, err
	}
	return p.ProductLine()
}

// ProductLine reads the add-to-cart inputs of the page.
// Returns ENOTFOUND if the page has no add-to-cart control.
func (p *Page) ProductLine() (csc.CartLine, error) {
	if !p.Has(csc.RoleAddToCart) {
		return csc.CartLine{}, csc.Errorf(csc.ENOTFOUND, "page has no add-to-cart control")
	}

	name := p.doc.Find(string(csc.RoleProductName)).First()
	sku, ok := name.Attr("data-sku")
	if !ok || sku == "" {
		return csc.CartLine{}, csc.Errorf(csc.EINVALID, "product name has no data-sku")
	}

	rawPrice, ok := p.doc.Find(string(csc.RoleUnitPrice)).First().Attr("data-unitprice")
	if !ok {
		return csc.CartLine{}, csc.Errorf(csc.EINVALID, "unit price has no data-unitprice")
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(rawPrice), 64)
	if err != nil {
		return csc.CartLine{}, csc.Errorf(csc.EINVALID, "invalid unit price %q", rawPrice)
	}

	qty, err := parseQty(p.doc.Find(string(csc.RoleProductQty)).First().AttrOr("value", ""))
	if err != nil {
		return csc.CartLine{}, err
	}

	image, _ := p.doc.Find(string(csc.RoleProductImage)).First().Attr("src")

	return csc.CartLine{
		SKU:       sku,
		Name:      strings.TrimSpace(name.Text()),
		UnitPrice: price,
		Qty:       qty,
		Image:     image,
	}, nil
}

// parseQty parses a quantity field value. An empty field is zero.
func parseQty(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	qty, err := strconv.Atoi(value)
	if err != nil {
		return 0, csc.Errorf(csc.EINVALID, "invalid quantity %q", value)
	}
	return qty, nil
}
