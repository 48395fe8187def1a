package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/csc"
)

// Control identifies a quantity or delete control inside a rendered cart row.
type Control string

// Cart row controls, as rendered by cart.Renderer.
const (
	ControlQty       Control = "input.qty"
	ControlDecrement Control = ".fa-minus"
	ControlIncrement Control = ".fa-plus"
	ControlRemove    Control = ".fa-trash"
)

// Row is the displayed state of one rendered cart row.
type Row struct {
	SKU string
	Qty int
}

const (
	rowSelector  = ".product-row"
	nameSelector = ".item-name"
)

// CartRows returns the SKU and displayed quantity of each rendered cart row
// in page order.
func (p *Page) CartRows() ([]Row, error) {
	var rows []Row
	var err error
	p.doc.Find(rowSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var r Row
		r, err = readRow(sel)
		if err != nil {
			return false
		}
		rows = append(rows, r)
		return true
	})
	return rows, err
}

// CartEvent resolves an interaction with a control of the row at index
// into a typed cart event. The SKU comes from the row's name link; the
// quantity is entered for ControlQty and the displayed quantity otherwise.
// Returns ENOTFOUND if the row or control does not exist.
func (p *Page) CartEvent(index int, control Control, entered string) (csc.CartEvent, error) {
	rows := p.doc.Find(rowSelector)
	if index < 0 || index >= rows.Length() {
		return csc.CartEvent{}, csc.Errorf(csc.ENOTFOUND, "cart row %d not found", index)
	}
	sel := rows.Eq(index)
	if sel.Find(string(control)).Length() == 0 {
		return csc.CartEvent{}, csc.Errorf(csc.ENOTFOUND, "control %q not found in cart row %d", control, index)
	}

	row, err := readRow(sel)
	if err != nil {
		return csc.CartEvent{}, err
	}

	ev := csc.CartEvent{SKU: row.SKU, Qty: row.Qty}
	switch control {
	case ControlQty:
		ev.Action = csc.CartActionSetQty
		if ev.Qty, err = parseQty(entered); err != nil {
			return csc.CartEvent{}, err
		}
	case ControlDecrement:
		ev.Action = csc.CartActionDecrement
	case ControlIncrement:
		ev.Action = csc.CartActionIncrement
	case ControlRemove:
		ev.Action = csc.CartActionRemove
	default:
		return csc.CartEvent{}, csc.Errorf(csc.EINVALID, "unknown control %q", control)
	}
	return ev, nil
}

func readRow(sel *goquery.Selection) (Row, error) {
	sku, ok := sel.Find(nameSelector).First().Attr("data-sku")
	if !ok {
		return Row{}, csc.Errorf(csc.EINVALID, "cart row has no data-sku")
	}
	qty, err := parseQty(sel.Find(string(ControlQty)).First().AttrOr("value", ""))
	if err != nil {
		return Row{}, err
	}
	return Row{SKU: sku, Qty: qty}, nil
}

// ParseCartRows parses a rendered cart page and returns its rows.
func ParseCartRows(html string) ([]Row, error) {
	p, err := NewPage(html)
	if err != nil {
		return nil, err
	}
	return p.CartRows()
}

// EventFromControl parses a rendered cart page and resolves an interaction
// with one of its row controls. See Page.CartEvent.
func EventFromControl(html string, index int, control Control, entered string) (csc.CartEvent, error) {
	p, err := NewPage(html)
	if err != nil {
		return csc.CartEvent{}, err
	}
	return p.CartEvent(index, control, entered)
}
