package search_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/csc"
	"github.com/fwojciec/csc/goquery"
	"github.com/fwojciec/csc/mock"
	"github.com/fwojciec/csc/search"
	"github.com/fwojciec/csc/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const homePage = `<html><body><div class="departments-container"><p>Departments</p></div></body></html>`

func catalog() []*csc.SearchDocument {
	return []*csc.SearchDocument{
		{SKU: "WPN-001", Name: "Laser Rifle", Description: "<p>A rifle that fires laser pulses.</p>", Cost: 1250},
		{SKU: "WPN-002", Name: "Laser Pistol", Description: "<p>Sidearm.</p>", Cost: 800, Image: "/img/products/wpn-002.png"},
		{SKU: "VEH-010", Name: "Grav Sled", Description: "Cargo hauler", Cost: 4_500_000},
	}
}

func newPage(t *testing.T) *goquery.Page {
	t.Helper()

	p, err := goquery.NewPage(homePage)
	require.NoError(t, err)
	return p
}

func region(t *testing.T, p *goquery.Page) string {
	t.Helper()

	html, err := p.InnerHTML(csc.RoleContentRegion)
	require.NoError(t, err)
	return html
}

func newIndex(t *testing.T) *sqlite.SearchIndex {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	return sqlite.NewSearchIndex(db)
}

func staticSource(docs []*csc.SearchDocument) *mock.IndexSource {
	return &mock.IndexSource{
		LoadIndexFn: func(ctx context.Context) ([]*csc.SearchDocument, error) {
			return docs, nil
		},
	}
}

func TestPipeline_Search(t *testing.T) {
	t.Parallel()

	t.Run("renders prefix matches into content region", func(t *testing.T) {
		t.Parallel()

		page := newPage(t)
		p := search.NewPipeline(staticSource(catalog()), newIndex(t), search.NewRenderer("", "", nil), page, nil)

		results, err := p.Search(context.Background(), "las")

		require.NoError(t, err)
		require.Len(t, results, 2)
		html := region(t, page)
		assert.Contains(t, html, "Search found 2 results for: las")
		assert.Contains(t, html, "Laser Rifle")
		assert.Contains(t, html, "Laser Pistol")
		assert.NotContains(t, html, "Departments")
		assert.NotContains(t, html, "Grav Sled")
	})

	t.Run("replaces region with zero results", func(t *testing.T) {
		t.Parallel()

		page := newPage(t)
		p := search.NewPipeline(staticSource(catalog()), newIndex(t), search.NewRenderer("", "", nil), page, nil)

		results, err := p.Search(context.Background(), "zzz")

		require.NoError(t, err)
		assert.Empty(t, results)
		assert.Contains(t, region(t, page), "Search found 0 results for: zzz")
	})

	t.Run("requests prefix search with limit", func(t *testing.T) {
		t.Parallel()

		var gotQuery string
		var gotOpts csc.SearchOptions
		var indexed []*csc.SearchDocument
		index := &mock.SearchIndex{
			IndexFn: func(ctx context.Context, docs []*csc.SearchDocument) error {
				indexed = docs
				return nil
			},
			SearchFn: func(ctx context.Context, query string, opts csc.SearchOptions) ([]*csc.SearchResult, error) {
				gotQuery, gotOpts = query, opts
				return nil, nil
			},
		}
		p := search.NewPipeline(staticSource(catalog()), index, search.NewRenderer("", "", nil), newPage(t), nil)
		p.Limit = 5

		_, err := p.Search(context.Background(), "laser rifle")

		require.NoError(t, err)
		assert.Len(t, indexed, 3)
		assert.Equal(t, "laser rifle", gotQuery)
		assert.Equal(t, csc.SearchOptions{Prefix: true, Limit: 5}, gotOpts)
	})

	t.Run("leaves region unrendered when index fetch fails", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		page := newPage(t)
		source := &mock.IndexSource{
			LoadIndexFn: func(ctx context.Context) ([]*csc.SearchDocument, error) {
				return nil, errors.New("connection refused")
			},
		}
		p := search.NewPipeline(source, newIndex(t), search.NewRenderer("", "", nil), page, logger)

		_, err := p.Search(context.Background(), "laser")

		require.Error(t, err)
		assert.Equal(t, "<p>Departments</p>", region(t, page))
		assert.Contains(t, buf.String(), `msg="search failed"`)
		assert.Contains(t, buf.String(), "query=laser")
		assert.Contains(t, buf.String(), "connection refused")
	})

	t.Run("leaves region unrendered when indexing fails", func(t *testing.T) {
		t.Parallel()

		page := newPage(t)
		index := &mock.SearchIndex{
			IndexFn: func(ctx context.Context, docs []*csc.SearchDocument) error {
				return csc.Errorf(csc.EINVALID, "bad document")
			},
		}
		p := search.NewPipeline(staticSource(catalog()), index, search.NewRenderer("", "", nil), page, nil)

		_, err := p.Search(context.Background(), "laser")

		assert.Equal(t, csc.EINVALID, csc.ErrorCode(err))
		assert.Equal(t, "<p>Departments</p>", region(t, page))
	})
}

func TestPipeline_OnPageLoad(t *testing.T) {
	t.Parallel()

	t.Run("searches decoded query parameter", func(t *testing.T) {
		t.Parallel()

		page := newPage(t)
		p := search.NewPipeline(staticSource(catalog()), newIndex(t), search.NewRenderer("", "", nil), page, nil)

		ran := p.OnPageLoad(context.Background(), "https://example.com/?s=grav+sled")

		assert.True(t, ran)
		html := region(t, page)
		assert.Contains(t, html, "Search found 1 results for: grav sled")
		assert.Contains(t, html, `<h6 class="right-align">4.500 MCr</h6>`)
	})

	t.Run("does nothing without query parameter", func(t *testing.T) {
		t.Parallel()

		page := newPage(t)
		index := &mock.SearchIndex{}
		source := &mock.IndexSource{}
		p := search.NewPipeline(source, index, search.NewRenderer("", "", nil), page, nil)

		ran := p.OnPageLoad(context.Background(), "https://example.com/products/WPN-001")

		assert.False(t, ran)
		assert.Equal(t, "<p>Departments</p>", region(t, page))
	})

	t.Run("swallows failures", func(t *testing.T) {
		t.Parallel()

		page := newPage(t)
		source := &mock.IndexSource{
			LoadIndexFn: func(ctx context.Context) ([]*csc.SearchDocument, error) {
				return nil, csc.Errorf(csc.ENOTFOUND, "search index not found")
			},
		}
		p := search.NewPipeline(source, newIndex(t), search.NewRenderer("", "", nil), page, nil)

		ran := p.OnPageLoad(context.Background(), "https://example.com/?s=laser")

		assert.True(t, ran)
		assert.Equal(t, "<p>Departments</p>", region(t, page))
	})

	t.Run("searches empty query parameter", func(t *testing.T) {
		t.Parallel()

		page := newPage(t)
		p := search.NewPipeline(staticSource(catalog()), newIndex(t), search.NewRenderer("", "", nil), page, nil)

		ran := p.OnPageLoad(context.Background(), "https://example.com/?s=")

		assert.True(t, ran)
		assert.Contains(t, region(t, page), "Search found 0 results for: ")
	})
}
