// Package http provides an HTTP implementation of csc.IndexSource for
// fetching the search index from a deployed catalog site.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/csc"
)

// IndexContentType is sent with index requests.
const IndexContentType = "application/json;charset=UTF-8"

// Ensure IndexSource implements csc.IndexSource at compile time.
var _ csc.IndexSource = (*IndexSource)(nil)

// IndexSource fetches the prebuilt search index over HTTP.
type IndexSource struct {
	url     string
	client  *http.Client
	timeout time.Duration
}

// Option configures an IndexSource.
type Option func(*IndexSource)

// WithTimeout sets the timeout for index requests.
// There is no timeout by default; the request is bounded only by its context.
func WithTimeout(d time.Duration) Option {
	return func(s *IndexSource) {
		s.timeout = d
	}
}

// WithClient sets the HTTP client used for index requests.
func WithClient(c *http.Client) Option {
	return func(s *IndexSource) {
		s.client = c
	}
}

// NewIndexSource creates a new IndexSource for the index at indexURL.
func NewIndexSource(indexURL string, opts ...Option) *IndexSource {
	s := &IndexSource{url: indexURL}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = &http.Client{}
	}
	return s
}

// ResolveIndexURL resolves the index path against the URL of the page
// requesting it, the way a browser resolves a relative fetch.
func ResolveIndexURL(pageURL, indexPath string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", csc.Errorf(csc.EINVALID, "invalid page URL %q", pageURL)
	}
	ref, err := url.Parse(indexPath)
	if err != nil {
		return "", csc.Errorf(csc.EINVALID, "invalid index path %q", indexPath)
	}
	return base.ResolveReference(ref).String(), nil
}

// LoadIndex fetches and decodes the index.
// Returns ENOTFOUND if the server responds 404.
func (s *IndexSource) LoadIndex(ctx context.Context) ([]*csc.SearchDocument, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, csc.Errorf(csc.EINVALID, "invalid index URL %q", s.url)
	}
	req.Header.Set("Content-Type", IndexContentType)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch search index: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, csc.Errorf(csc.ENOTFOUND, "search index %s not found", s.url)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, s.url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search index: %w", err)
	}

	var docs []*csc.SearchDocument
	if err := json.Unmarshal(body, &docs); err != nil {
		return nil, csc.Errorf(csc.EINVALID, "malformed search index %s: %v", s.url, err)
	}
	return docs, nil
}
