package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/csc"
	"github.com/fwojciec/csc/goquery"
	"github.com/fwojciec/csc/search"
)

// resultsPage is the page search results are rendered into when no page
// file is given.
const resultsPage = `<html><body><div class="departments-container"></div></body></html>`

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	query, err := c.query()
	if err != nil {
		return fail(deps, err)
	}

	pf, err := openPage(c.Page)
	if err != nil {
		return fail(deps, err)
	}
	var page *goquery.Page
	if pf != nil {
		page = pf.page
	} else if page, err = goquery.NewPage(resultsPage); err != nil {
		return fail(deps, err)
	}

	renderer := search.NewRenderer(deps.Config.BasePath, deps.Config.PlaceholderImage, deps.Sanitizer)
	pipeline := search.NewPipeline(deps.Source, deps.Index, renderer, page, deps.Logger)
	pipeline.Limit = deps.Config.SearchLimit

	results, err := pipeline.Search(deps.Ctx, query)
	if err != nil {
		return fail(deps, err)
	}

	if pf != nil {
		if err := pf.Save(); err != nil {
			return fail(deps, err)
		}
		fmt.Fprintf(deps.Stdout, "Rendered %d results for %q into %s\n", len(results), query, pf.path)
		return nil
	}

	html, err := page.InnerHTML(csc.RoleContentRegion)
	if err != nil {
		return fail(deps, err)
	}
	md, err := deps.Converter.Convert(html)
	if err != nil {
		return fail(deps, err)
	}
	fmt.Fprintln(deps.Stdout, md)
	return nil
}

// query returns the search terms, or the query carried by --url when no
// terms are given.
func (c *SearchCmd) query() (string, error) {
	if len(c.Query) > 0 {
		return strings.Join(c.Query, " "), nil
	}
	if c.URL != "" {
		q, ok := csc.ParseSearchQuery(c.URL)
		if !ok {
			return "", csc.Errorf(csc.EINVALID, "URL %q has no %s parameter", c.URL, csc.SearchParam)
		}
		return q, nil
	}
	return "", csc.Errorf(csc.EINVALID, "search terms required. Pass them as arguments or use --url")
}
