package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/csc"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    csc.Config
	Logger    *slog.Logger
	Verbose   bool
	Storage   csc.CartStorage
	Source    csc.IndexSource
	Index     csc.SearchIndex
	Sanitizer csc.Sanitizer
	Converter csc.Converter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log storage and search operations to stderr"`

	Add     AddCmd     `cmd:"" help:"Add a product to the cart"`
	Remove  RemoveCmd  `cmd:"" help:"Remove a product from the cart"`
	Qty     QtyCmd     `cmd:"" help:"Set the quantity of a product in the cart"`
	Inc     IncCmd     `cmd:"" help:"Increase the quantity of a product by one"`
	Dec     DecCmd     `cmd:"" help:"Decrease the quantity of a product by one"`
	Clear   ClearCmd   `cmd:"" help:"Empty the cart"`
	Show    ShowCmd    `cmd:"" help:"Show the cart contents"`
	Badge   BadgeCmd   `cmd:"" help:"Show the number of distinct products in the cart"`
	Search  SearchCmd  `cmd:"" help:"Search the catalog"`
	Sitemap SitemapCmd `cmd:"" help:"Write a sitemap of the catalog product pages"`
}

// PageFlag names an HTML page file a command renders its result into.
type PageFlag struct {
	Page string `type:"path" help:"HTML page file to render the cart into"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	PageFlag `embed:""`

	SKU      string  `arg:"" optional:"" help:"Product SKU"`
	Name     string  `short:"n" help:"Product name"`
	Price    float64 `short:"p" help:"Unit price in credits"`
	Qty      int     `short:"q" default:"1" help:"Quantity to add"`
	Image    string  `help:"Product image URL"`
	FromPage string  `type:"existingfile" help:"Read the product from a product page file"`
}

// RemoveCmd is the "remove" subcommand.
type RemoveCmd struct {
	PageFlag `embed:""`

	SKU string `arg:"" help:"Product SKU"`
}

// QtyCmd is the "qty" subcommand.
type QtyCmd struct {
	PageFlag `embed:""`

	SKU string `arg:"" help:"Product SKU"`
	Qty int    `arg:"" help:"New quantity; negative values become zero"`
}

// IncCmd is the "inc" subcommand.
type IncCmd struct {
	PageFlag `embed:""`

	SKU string `arg:"" help:"Product SKU"`
}

// DecCmd is the "dec" subcommand.
type DecCmd struct {
	PageFlag `embed:""`

	SKU string `arg:"" help:"Product SKU"`
}

// ClearCmd is the "clear" subcommand.
type ClearCmd struct {
	PageFlag `embed:""`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	PageFlag `embed:""`
}

// BadgeCmd is the "badge" subcommand.
type BadgeCmd struct {
	PageFlag `embed:""`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query   []string      `arg:"" optional:"" help:"Search terms"`
	URL     string        `help:"Search page URL carrying the query in its s parameter"`
	Page    string        `type:"path" help:"HTML page file to render the results into"`
	Timeout time.Duration `help:"Timeout for fetching the search index"`
}

// SitemapCmd is the "sitemap" subcommand.
type SitemapCmd struct {
	Output string `short:"o" default:"-" help:"Output file, or - for stdout"`
}
