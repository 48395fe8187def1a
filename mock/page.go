package mock

import "github.com/fwojciec/csc"

var _ csc.Page = (*Page)(nil)

// Page is a mock implementation of csc.Page.
type Page struct {
	HasFn        func(role csc.Role) bool
	SetHTMLFn    func(role csc.Role, html string)
	SetTextFn    func(role csc.Role, text string)
	SetVisibleFn func(role csc.Role, visible bool)
}

func (p *Page) Has(role csc.Role) bool {
	return p.HasFn(role)
}

func (p *Page) SetHTML(role csc.Role, html string) {
	p.SetHTMLFn(role, html)
}

func (p *Page) SetText(role csc.Role, text string) {
	p.SetTextFn(role, text)
}

func (p *Page) SetVisible(role csc.Role, visible bool) {
	p.SetVisibleFn(role, visible)
}
