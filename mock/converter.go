package mock

import "github.com/fwojciec/csc"

var _ csc.Converter = (*Converter)(nil)

// Converter is a mock implementation of csc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ csc.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of csc.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(html string) string
}

func (s *Sanitizer) Sanitize(html string) string {
	return s.SanitizeFn(html)
}
