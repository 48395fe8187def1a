// Package search runs site searches: it loads the prebuilt index, indexes
// it for full-text search, queries it with prefix matching and renders the
// ranked results into the page's content region.
package search

import (
	"context"
	"log/slog"

	"github.com/fwojciec/csc"
)

// Pipeline runs a search from the index source through to the page.
type Pipeline struct {
	source   csc.IndexSource
	index    csc.SearchIndex
	renderer *Renderer
	page     csc.Page
	logger   *slog.Logger

	// Limit caps the number of rendered results. Zero means no limit.
	Limit int
}

// NewPipeline creates a new Pipeline. A nil logger discards diagnostics.
func NewPipeline(source csc.IndexSource, index csc.SearchIndex, renderer *Renderer, page csc.Page, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{
		source:   source,
		index:    index,
		renderer: renderer,
		page:     page,
		logger:   logger,
	}
}

// OnPageLoad searches for the query carried by pageURL, if any. Failures
// are logged and leave the page unchanged. It reports whether a search
// was attempted.
func (p *Pipeline) OnPageLoad(ctx context.Context, pageURL string) bool {
	query, ok := csc.ParseSearchQuery(pageURL)
	if !ok {
		return false
	}
	_, _ = p.Search(ctx, query)
	return true
}

// Search loads and indexes the catalog, runs query with prefix matching and
// replaces the content region with the rendered results. If any stage
// fails the error is logged and returned and the content region is left as
// it was.
func (p *Pipeline) Search(ctx context.Context, query string) ([]*csc.SearchResult, error) {
	results, markup, err := p.run(ctx, query)
	if err != nil {
		p.logger.Error("search failed", "query", query, "err", err)
		return nil, err
	}

	p.page.SetHTML(csc.RoleContentRegion, markup)
	return results, nil
}

func (p *Pipeline) run(ctx context.Context, query string) ([]*csc.SearchResult, string, error) {
	docs, err := p.source.LoadIndex(ctx)
	if err != nil {
		return nil, "", err
	}

	if err := p.index.Index(ctx, docs); err != nil {
		return nil, "", err
	}

	results, err := p.index.Search(ctx, query, csc.SearchOptions{Prefix: true, Limit: p.Limit})
	if err != nil {
		return nil, "", err
	}

	markup, err := p.renderer.Render(query, results)
	if err != nil {
		return nil, "", err
	}
	return results, markup, nil
}
