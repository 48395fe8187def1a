package main

import (
	"fmt"

	"github.com/fwojciec/csc"
	"github.com/fwojciec/csc/fs"
)

// Run executes the sitemap command.
func (c *SitemapCmd) Run(deps *Dependencies) error {
	if deps.Config.SiteURL == "" {
		return fail(deps, csc.Errorf(csc.EINVALID, "site URL required. Set url in the [site] section of the config"))
	}

	docs, err := deps.Source.LoadIndex(deps.Ctx)
	if err != nil {
		return fail(deps, err)
	}

	w := fs.NewSitemapWriter(deps.Config.SiteURL, deps.Config.BasePath)
	if c.Output == "-" {
		if err := w.WriteSitemap(deps.Stdout, docs); err != nil {
			return fail(deps, err)
		}
		return nil
	}

	if err := w.WriteFile(c.Output, docs); err != nil {
		return fail(deps, err)
	}
	fmt.Fprintf(deps.Stdout, "Wrote sitemap of %d products to %s\n", len(docs), c.Output)
	return nil
}
