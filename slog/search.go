package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/csc"
)

// Ensure LoggingIndexSource implements csc.IndexSource.
var _ csc.IndexSource = (*LoggingIndexSource)(nil)

// LoggingIndexSource wraps an IndexSource with debug logging.
type LoggingIndexSource struct {
	next   csc.IndexSource
	logger *slog.Logger
}

// NewLoggingIndexSource creates a new LoggingIndexSource.
func NewLoggingIndexSource(next csc.IndexSource, logger *slog.Logger) *LoggingIndexSource {
	return &LoggingIndexSource{next: next, logger: logger}
}

// LoadIndex delegates to the wrapped source and logs the operation.
func (s *LoggingIndexSource) LoadIndex(ctx context.Context) (docs []*csc.SearchDocument, err error) {
	defer func(begin time.Time) {
		s.logger.Info("index load",
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LoadIndex(ctx)
}

// Ensure LoggingSearchIndex implements csc.SearchIndex.
var _ csc.SearchIndex = (*LoggingSearchIndex)(nil)

// LoggingSearchIndex wraps a SearchIndex with debug logging.
type LoggingSearchIndex struct {
	next   csc.SearchIndex
	logger *slog.Logger
}

// NewLoggingSearchIndex creates a new LoggingSearchIndex.
func NewLoggingSearchIndex(next csc.SearchIndex, logger *slog.Logger) *LoggingSearchIndex {
	return &LoggingSearchIndex{next: next, logger: logger}
}

// Index delegates to the wrapped index and logs the operation.
func (s *LoggingSearchIndex) Index(ctx context.Context, docs []*csc.SearchDocument) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("index build",
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Index(ctx, docs)
}

// Search delegates to the wrapped index and logs the query.
func (s *LoggingSearchIndex) Search(ctx context.Context, query string, opts csc.SearchOptions) (results []*csc.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"query", query,
			"prefix", opts.Prefix,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, opts)
}
