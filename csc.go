// Package csc provides the shopping cart and site search behind a static
// catalog website. The cart lives in a local key-value store and is mutated
// only through the Cart Store; search runs a prebuilt JSON index through a
// full-text index and renders the ranked results into the page.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, bluemonday/).
package csc
