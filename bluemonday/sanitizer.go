// Package bluemonday sanitizes catalog HTML before it is rendered into
// search results.
package bluemonday

import (
	"strings"

	"github.com/fwojciec/csc"
	"github.com/microcosm-cc/bluemonday"
)

// Ensure Sanitizer implements csc.Sanitizer at compile time.
var _ csc.Sanitizer = (*Sanitizer)(nil)

// Sanitizer strips scripts, event handlers and other unsafe markup from
// product summaries while keeping ordinary formatting.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a new Sanitizer based on the user generated content
// policy.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return &Sanitizer{policy: p}
}

// Sanitize returns html with unsafe markup removed and surrounding
// whitespace trimmed.
func (s *Sanitizer) Sanitize(html string) string {
	return strings.TrimSpace(s.policy.Sanitize(html))
}
