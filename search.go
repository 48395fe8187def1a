package csc

import (
	"context"
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
)

// SearchParam is the page URL query parameter carrying the search query.
const SearchParam = "s"

// DefaultIndexPath is the location of the search index relative to the
// site root.
const DefaultIndexPath = "_data/searchindex.idx"

// SearchDocument represents one catalog entry as indexed for search.
type SearchDocument struct {
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
	Image       string  `json:"image,omitempty"`
}

// UnmarshalJSON decodes a search document. The cost may be a JSON number or
// a numeric string.
func (d *SearchDocument) UnmarshalJSON(data []byte) error {
	type document SearchDocument
	aux := struct {
		*document
		Cost json.RawMessage `json:"cost"`
	}{document: (*document)(d)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	cost, err := parseAmount("cost", aux.Cost)
	if err != nil {
		return err
	}
	d.Cost = cost
	return nil
}

// SearchResult is a document ranked by relevance to a query.
type SearchResult struct {
	SearchDocument

	// Score is the relevance reported by the index. Higher is better.
	Score float64
}

// SearchOptions configures a search.
type SearchOptions struct {
	// Prefix lets each query term match any indexed term it is a prefix of.
	Prefix bool

	// Limit caps the number of results. Zero means no limit.
	Limit int
}

// SearchIndex is a full-text index over sku, name, description and cost.
// Ranking is left to the implementation.
type SearchIndex interface {
	// Index replaces the indexed document set.
	Index(ctx context.Context, docs []*SearchDocument) error

	// Search returns documents matching query, most relevant first.
	Search(ctx context.Context, query string, opts SearchOptions) ([]*SearchResult, error)
}

// IndexSource loads the prebuilt search index documents.
type IndexSource interface {
	LoadIndex(ctx context.Context) ([]*SearchDocument, error)
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// SearchURL returns the search page URL for a value typed into the search
// field. Runs of whitespace become a single "+".
func SearchURL(origin, input string) string {
	return strings.TrimSuffix(origin, "/") + "/?" + SearchParam + "=" + whitespaceRun.ReplaceAllString(input, "+")
}

// ParseSearchQuery returns the decoded search query carried by a page URL.
// The bool result is false when the URL has no search parameter.
func ParseSearchQuery(pageURL string) (string, bool) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", false
	}
	values, err := url.ParseQuery(u.RawQuery)
	if err != nil && len(values) == 0 {
		return "", false
	}
	if !values.Has(SearchParam) {
		return "", false
	}
	return values.Get(SearchParam), true
}
