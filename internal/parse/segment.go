// Package parse implements the rule-based extractors that read a bureau
// report's flattened text: section segmentation, header-driven table
// parsing, and the targeted pattern extractors for score, enquiries, DPD
// and anchor totals.
package parse

import "strings"

// Segment isolates the section of text between startMarker and the earliest
// of endMarkers. Matching is case-insensitive substring search. An absent
// startMarker returns "" and means "section not present", never an error.
// Nearest end wins so one section's extractor cannot swallow the next
// section when markers appear out of the expected order.
func Segment(text, startMarker string, endMarkers []string) string {
	lower := strings.ToLower(text)
	start := strings.Index(lower, strings.ToLower(startMarker))
	if start < 0 {
		return ""
	}
	rest := lower[start:]
	end := len(rest)
	for _, marker := range endMarkers {
		if marker == "" {
			continue
		}
		// search after the start marker itself
		idx := strings.Index(rest[len(startMarker):], strings.ToLower(marker))
		if idx >= 0 && idx+len(startMarker) < end {
			end = idx + len(startMarker)
		}
	}
	return text[start : start+end]
}
