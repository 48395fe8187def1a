package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/csc"
	"github.com/fwojciec/csc/cart"
	"github.com/fwojciec/csc/goquery"
	cscslog "github.com/fwojciec/csc/slog"
)

// pageFile is an HTML page on disk that a command renders into.
type pageFile struct {
	path string
	page *goquery.Page
}

// openPage reads the page at path. An empty path yields a nil pageFile.
func openPage(path string) (*pageFile, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page: %w", err)
	}
	page, err := goquery.NewPage(string(data))
	if err != nil {
		return nil, err
	}
	return &pageFile{path: path, page: page}, nil
}

// Page returns the page as a csc.Page, or nil when there is no page file.
func (f *pageFile) Page() csc.Page {
	if f == nil {
		return nil
	}
	return f.page
}

// Save writes the rendered page back to its file.
func (f *pageFile) Save() error {
	if f == nil {
		return nil
	}

	html, err := f.page.HTML()
	if err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}
	return nil
}

// cartStore builds the Cart Store. When page is non-nil the store keeps the
// page's cart regions and badge in step with every change.
func (d *Dependencies) cartStore(page csc.Page) *cart.Store {
	var observer csc.CartObserver
	if page != nil {
		observer = cart.NewUI(page, cart.NewRenderer(d.Config.BasePath))
		if d.Verbose {
			observer = cscslog.NewLoggingCartObserver(observer, d.Logger)
		}
	}
	return cart.NewStore(d.Storage, observer, d.Logger)
}

// fail prints the error message to stderr and returns err.
func fail(d *Dependencies, err error) error {
	fmt.Fprintf(d.Stderr, "error: %s\n", csc.ErrorMessage(err))
	return err
}
