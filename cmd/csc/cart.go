package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/csc"
	"github.com/fwojciec/csc/cart"
	"github.com/fwojciec/csc/goquery"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	pf, err := openPage(c.Page)
	if err != nil {
		return fail(deps, err)
	}

	line, err := c.line()
	if err != nil {
		return fail(deps, err)
	}

	store := deps.cartStore(pf.Page())
	ev := csc.CartEvent{Action: csc.CartActionAdd, SKU: line.SKU, Qty: line.Qty, Line: line}
	if err := cart.NewHandler(store, pf.Page()).Handle(deps.Ctx, ev); err != nil {
		return fail(deps, err)
	}
	if err := pf.Save(); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Added %d x %s\n", line.Qty, line.SKU)
	return nil
}

// line returns the product to add, read from the product page file when
// one is given and from the flags otherwise.
func (c *AddCmd) line() (csc.CartLine, error) {
	if c.FromPage != "" {
		data, err := os.ReadFile(c.FromPage)
		if err != nil {
			return csc.CartLine{}, fmt.Errorf("failed to read product page: %w", err)
		}
		return goquery.ParseProductPage(string(data))
	}

	if c.SKU == "" {
		return csc.CartLine{}, csc.Errorf(csc.EINVALID, "SKU required. Pass it as an argument or use --from-page")
	}
	return csc.CartLine{
		SKU:       c.SKU,
		Name:      c.Name,
		UnitPrice: c.Price,
		Qty:       c.Qty,
		Image:     c.Image,
	}, nil
}

// Run executes the remove command.
func (c *RemoveCmd) Run(deps *Dependencies) error {
	return handle(deps, c.Page, csc.CartEvent{Action: csc.CartActionRemove, SKU: c.SKU})
}

// Run executes the qty command.
func (c *QtyCmd) Run(deps *Dependencies) error {
	return handle(deps, c.Page, csc.CartEvent{Action: csc.CartActionSetQty, SKU: c.SKU, Qty: c.Qty})
}

// Run executes the inc command.
func (c *IncCmd) Run(deps *Dependencies) error {
	return step(deps, c.Page, c.SKU, goquery.ControlIncrement)
}

// Run executes the dec command.
func (c *DecCmd) Run(deps *Dependencies) error {
	return step(deps, c.Page, c.SKU, goquery.ControlDecrement)
}

// Run executes the clear command.
func (c *ClearCmd) Run(deps *Dependencies) error {
	pf, err := openPage(c.Page)
	if err != nil {
		return fail(deps, err)
	}

	store := deps.cartStore(pf.Page())
	if err := cart.NewHandler(store, pf.Page()).Handle(deps.Ctx, csc.CartEvent{Action: csc.CartActionEmpty}); err != nil {
		return fail(deps, err)
	}
	if err := pf.Save(); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintln(deps.Stdout, "Cart emptied")
	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	pf, err := openPage(c.Page)
	if err != nil {
		return fail(deps, err)
	}

	store := deps.cartStore(nil)
	items, err := store.Cart(deps.Ctx)
	if err != nil {
		return fail(deps, err)
	}

	if pf != nil {
		ui := cart.NewUI(pf.Page(), cart.NewRenderer(deps.Config.BasePath))
		if err := ui.Refresh(deps.Ctx, store); err != nil {
			return fail(deps, err)
		}
		if err := pf.Save(); err != nil {
			return fail(deps, err)
		}
	}

	fmt.Fprintln(deps.Stdout, csc.FormatCart(items))
	return nil
}

// Run executes the badge command.
func (c *BadgeCmd) Run(deps *Dependencies) error {
	pf, err := openPage(c.Page)
	if err != nil {
		return fail(deps, err)
	}

	store := deps.cartStore(nil)
	count, err := store.BadgeCount(deps.Ctx)
	if err != nil {
		return fail(deps, err)
	}

	if pf != nil {
		ui := cart.NewUI(pf.Page(), cart.NewRenderer(deps.Config.BasePath))
		if err := ui.BadgeChanged(deps.Ctx, count); err != nil {
			return fail(deps, err)
		}
		if err := pf.Save(); err != nil {
			return fail(deps, err)
		}
	}

	fmt.Fprintln(deps.Stdout, count)
	return nil
}

// handle applies ev to the cart, renders into the page file if given and
// prints the resulting line.
func handle(deps *Dependencies, pagePath string, ev csc.CartEvent) error {
	pf, err := openPage(pagePath)
	if err != nil {
		return fail(deps, err)
	}

	store := deps.cartStore(pf.Page())
	if err := cart.NewHandler(store, pf.Page()).Handle(deps.Ctx, ev); err != nil {
		return fail(deps, err)
	}
	if err := pf.Save(); err != nil {
		return fail(deps, err)
	}
	return printLine(deps, store, ev.SKU)
}

// step raises or lowers the quantity of sku by one relative to the
// displayed quantity: the page's cart row when the page shows one, the
// stored line otherwise.
func step(deps *Dependencies, pagePath, sku string, control goquery.Control) error {
	pf, err := openPage(pagePath)
	if err != nil {
		return fail(deps, err)
	}

	store := deps.cartStore(pf.Page())
	ev, err := displayedEvent(deps, pf, store, sku, control)
	if err != nil {
		return fail(deps, err)
	}

	if err := cart.NewHandler(store, pf.Page()).Handle(deps.Ctx, ev); err != nil {
		return fail(deps, err)
	}
	if err := pf.Save(); err != nil {
		return fail(deps, err)
	}
	return printLine(deps, store, sku)
}

func displayedEvent(deps *Dependencies, pf *pageFile, store *cart.Store, sku string, control goquery.Control) (csc.CartEvent, error) {
	if pf != nil {
		rows, err := pf.page.CartRows()
		if err != nil {
			return csc.CartEvent{}, err
		}
		for i, r := range rows {
			if r.SKU == sku {
				return pf.page.CartEvent(i, control, "")
			}
		}
	}

	items, err := store.Cart(deps.Ctx)
	if err != nil {
		return csc.CartEvent{}, err
	}
	ev := csc.CartEvent{Action: csc.CartActionIncrement, SKU: sku}
	if control == goquery.ControlDecrement {
		ev.Action = csc.CartActionDecrement
	}
	if i := items.Index(sku); i >= 0 {
		ev.Qty = items[i].Qty
	}
	return ev, nil
}

func printLine(deps *Dependencies, store *cart.Store, sku string) error {
	items, err := store.Cart(deps.Ctx)
	if err != nil {
		return fail(deps, err)
	}
	if i := items.Index(sku); i >= 0 {
		fmt.Fprintf(deps.Stdout, "%s  x%d\n", sku, items[i].Qty)
		return nil
	}
	fmt.Fprintf(deps.Stdout, "%s not in cart\n", sku)
	return nil
}
