// Package htmltomarkdown converts rendered catalog markup to Markdown for
// terminal output.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/fwojciec/csc"
)

var _ csc.Converter = (*Converter)(nil)

// Converter renders search result and cart markup as Markdown.
type Converter struct {
	conv    *converter.Converter
	siteURL string
}

// Option configures a Converter.
type Option func(*Converter)

// WithSiteURL resolves relative links and image sources, such as
// /products/<sku>, against the site origin.
func WithSiteURL(siteURL string) Option {
	return func(c *Converter) {
		c.siteURL = strings.TrimSuffix(siteURL, "/")
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms HTML content into Markdown with surrounding blank
// lines trimmed.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", csc.Errorf(csc.EINVALID, "empty HTML input")
	}

	var result string
	var err error
	if c.siteURL != "" {
		result, err = c.conv.ConvertString(html, converter.WithDomain(c.siteURL))
	} else {
		result, err = c.conv.ConvertString(html)
	}
	if err != nil {
		return "", csc.Errorf(csc.EINVALID, "failed to convert HTML: %v", err)
	}

	return strings.TrimSpace(result), nil
}
