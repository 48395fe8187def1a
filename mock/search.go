package mock

import (
	"context"

	"github.com/fwojciec/csc"
)

var _ csc.SearchIndex = (*SearchIndex)(nil)

// SearchIndex is a mock implementation of csc.SearchIndex.
type SearchIndex struct {
	IndexFn  func(ctx context.Context, docs []*csc.SearchDocument) error
	SearchFn func(ctx context.Context, query string, opts csc.SearchOptions) ([]*csc.SearchResult, error)
}

func (i *SearchIndex) Index(ctx context.Context, docs []*csc.SearchDocument) error {
	return i.IndexFn(ctx, docs)
}

func (i *SearchIndex) Search(ctx context.Context, query string, opts csc.SearchOptions) ([]*csc.SearchResult, error) {
	return i.SearchFn(ctx, query, opts)
}

var _ csc.IndexSource = (*IndexSource)(nil)

// IndexSource is a mock implementation of csc.IndexSource.
type IndexSource struct {
	LoadIndexFn func(ctx context.Context) ([]*csc.SearchDocument, error)
}

func (s *IndexSource) LoadIndex(ctx context.Context) ([]*csc.SearchDocument, error) {
	return s.LoadIndexFn(ctx)
}
