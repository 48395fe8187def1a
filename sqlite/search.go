package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/csc"
)

// Compile-time interface verification.
var _ csc.SearchIndex = (*SearchIndex)(nil)

// SearchIndex implements csc.SearchIndex with an FTS5 table. Results are
// ranked by bm25.
type SearchIndex struct {
	db *DB
}

// NewSearchIndex creates a new SearchIndex.
func NewSearchIndex(db *DB) *SearchIndex {
	return &SearchIndex{db: db}
}

// Index replaces the indexed documents. If the document set is identical
// to the one indexed last, the index is left as is. Two documents with the
// same SKU are rejected with ECONFLICT and the previous index is kept.
func (i *SearchIndex) Index(ctx context.Context, docs []*csc.SearchDocument) error {
	seen := make(map[string]bool, len(docs))
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if seen[doc.SKU] {
			return csc.Errorf(csc.ECONFLICT, "duplicate SKU %q in search index", doc.SKU)
		}
		seen[doc.SKU] = true
	}

	fp := fingerprint(docs)

	var current string
	err := i.db.QueryRowContext(ctx, `SELECT fingerprint FROM search_meta WHERE id = 1`).Scan(&current)
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	if current == fp {
		return nil
	}

	tx, err := i.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM search_documents`); err != nil {
		return fmt.Errorf("failed to clear search index: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO search_documents (sku, name, description, cost, image)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	count := 0
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if _, err := stmt.ExecContext(ctx, doc.SKU, doc.Name, doc.Description, formatCost(doc.Cost), doc.Image); err != nil {
			return fmt.Errorf("failed to index %q: %w", doc.SKU, err)
		}
		count++
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO search_meta (id, fingerprint, document_count, indexed_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			fingerprint = excluded.fingerprint,
			document_count = excluded.document_count,
			indexed_at = excluded.indexed_at
	`, fp, count, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	return tx.Commit()
}

// Search returns documents matching any term of query, best match first.
// A query without terms returns no results.
func (i *SearchIndex) Search(ctx context.Context, query string, opts csc.SearchOptions) ([]*csc.SearchResult, error) {
	match := MatchExpression(query, opts.Prefix)
	if match == "" {
		return []*csc.SearchResult{}, nil
	}

	var q strings.Builder
	args := []any{match}
	q.WriteString(`
		SELECT sku, name, description, cost, image, bm25(search_documents) AS score
		FROM search_documents
		WHERE search_documents MATCH ?
		ORDER BY score`)
	if opts.Limit > 0 {
		q.WriteString(" LIMIT ?")
		args = append(args, opts.Limit)
	}

	rows, err := i.db.QueryContext(ctx, q.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer rows.Close()

	results := []*csc.SearchResult{}
	for rows.Next() {
		var r csc.SearchResult
		var cost string
		var score float64
		if err := rows.Scan(&r.SKU, &r.Name, &r.Description, &cost, &r.Image, &score); err != nil {
			return nil, err
		}
		r.Cost, err = strconv.ParseFloat(cost, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse cost of %q: %w", r.SKU, err)
		}
		// bm25 is negative, lower is better.
		r.Score = -score
		results = append(results, &r)
	}

	return results, rows.Err()
}

// MatchExpression builds an FTS5 query matching any term of query. Terms
// are runs of letters and digits; each is quoted, and with prefix set each
// also matches indexed terms it is a prefix of.
func MatchExpression(query string, prefix bool) string {
	terms := strings.FieldsFunc(query, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		p := `"` + term + `"`
		if prefix {
			p += "*"
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " OR ")
}

func formatCost(cost float64) string {
	return strconv.FormatFloat(cost, 'f', -1, 64)
}

// fingerprint hashes the indexed fields of docs in order.
func fingerprint(docs []*csc.SearchDocument) string {
	h := xxhash.New()
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		for _, field := range []string{doc.SKU, doc.Name, doc.Description, formatCost(doc.Cost), doc.Image} {
			_, _ = h.WriteString(field)
			_, _ = h.Write([]byte{0})
		}
	}
	return fmt.Sprintf("%x", h.Sum64())
}
