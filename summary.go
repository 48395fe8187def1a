package csc

import "strings"

// summaryDelimiters are tried in order by ExtractSummary.
var summaryDelimiters = []struct {
	start string
	end   string
}{
	{start: "<!-- Summary Start -->", end: "<!-- Summary End -->"},
	{start: "<p>", end: "</p>"},
}

// ExtractSummary returns the trimmed text between the first delimiter pair
// found in text: an explicit summary marker pair, then the first paragraph.
// The bool result is false when no pair is fully present.
//
// Both markers are located by their first occurrence in the whole text. If
// the end marker comes before the start marker the bounds are swapped and
// the result spans the text between them. Known limitation, kept as is.
func ExtractSummary(text string) (string, bool) {
	for _, d := range summaryDelimiters {
		start := strings.Index(text, d.start)
		end := strings.Index(text, d.end)
		if start == -1 || end == -1 {
			continue
		}

		from := start + len(d.start)
		if from > end {
			from, end = end, from
		}
		return strings.TrimSpace(text[from:end]), true
	}
	return "", false
}
