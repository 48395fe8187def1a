package csc

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}

// Sanitizer removes unsafe markup from catalog HTML before it is
// written into a page.
type Sanitizer interface {
	Sanitize(html string) string
}
