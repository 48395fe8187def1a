package fs

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/csc"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapWriter writes a sitemap of product pages for the indexed catalog.
type SitemapWriter struct {
	siteURL  string
	basePath string
}

// NewSitemapWriter creates a new SitemapWriter. Product page locations are
// siteURL + basePath + "/products/<sku>".
func NewSitemapWriter(siteURL, basePath string) *SitemapWriter {
	return &SitemapWriter{
		siteURL:  strings.TrimSuffix(siteURL, "/"),
		basePath: strings.TrimSuffix(basePath, "/"),
	}
}

// Loc returns the product page location for sku.
func (w *SitemapWriter) Loc(sku string) string {
	return w.siteURL + w.basePath + "/products/" + url.PathEscape(sku)
}

// Document builds the urlset with one entry per distinct SKU in index order.
func (w *SitemapWriter) Document(docs []*csc.SearchDocument) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", sitemapNamespace)

	seen := make(map[string]bool, len(docs))
	for _, d := range docs {
		if d == nil || d.SKU == "" || seen[d.SKU] {
			continue
		}
		seen[d.SKU] = true
		urlset.CreateElement("url").CreateElement("loc").SetText(w.Loc(d.SKU))
	}

	doc.Indent(2)
	return doc
}

// WriteSitemap writes the sitemap XML for docs to dst.
func (w *SitemapWriter) WriteSitemap(dst io.Writer, docs []*csc.SearchDocument) error {
	if _, err := w.Document(docs).WriteTo(dst); err != nil {
		return fmt.Errorf("failed to write sitemap: %w", err)
	}
	return nil
}

// WriteFile atomically writes the sitemap XML for docs to path.
func (w *SitemapWriter) WriteFile(path string, docs []*csc.SearchDocument) error {
	data, err := w.Document(docs).WriteToBytes()
	if err != nil {
		return fmt.Errorf("failed to encode sitemap: %w", err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("failed to write sitemap: %w", err)
	}
	return nil
}
