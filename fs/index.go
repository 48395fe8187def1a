package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fwojciec/csc"
)

// Ensure IndexSource implements csc.IndexSource at compile time.
var _ csc.IndexSource = (*IndexSource)(nil)

// IndexSource reads the search index from a built site on disk.
type IndexSource struct {
	path string
}

// NewIndexSource creates a new IndexSource for the index file at path.
func NewIndexSource(path string) *IndexSource {
	return &IndexSource{path: path}
}

// LoadIndex reads and decodes the index file.
// Returns ENOTFOUND if the file does not exist.
func (s *IndexSource) LoadIndex(_ context.Context) ([]*csc.SearchDocument, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, csc.Errorf(csc.ENOTFOUND, "search index %s not found", s.path)
	} else if err != nil {
		return nil, fmt.Errorf("failed to read search index: %w", err)
	}

	var docs []*csc.SearchDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, csc.Errorf(csc.EINVALID, "malformed search index %s: %v", s.path, err)
	}
	return docs, nil
}
