package parse

import (
	"regexp"

	"github.com/creditlens/bureau-extract/internal/normalize"
	"github.com/creditlens/bureau-extract/internal/reconcile"
)

// Anchor phrases are aggregate labels a bureau prints exactly once as
// ground truth. Their adjoining number outranks any resummation of rows.
var anchorPatterns = map[string][]*regexp.Regexp{
	reconcile.FieldLoanSanctioned: {
		regexp.MustCompile(`(?i)total\s+sanc(?:tioned)?\.?\s*(?:amt|amount)[^0-9]{0,20}([\d,]+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)total\s+high(?:est)?\s+credit[^0-9]{0,20}([\d,]+(?:\.\d+)?)`),
	},
	reconcile.FieldLoanOutstanding: {
		regexp.MustCompile(`(?i)total\s+current\s+bal\.?\s*(?:amt|amount)?[^0-9]{0,20}([\d,]+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)total\s+outstanding(?:\s+balance)?[^0-9]{0,20}([\d,]+(?:\.\d+)?)`),
	},
	reconcile.FieldCardLimit: {
		regexp.MustCompile(`(?i)total\s+credit\s+limit[^0-9]{0,20}([\d,]+(?:\.\d+)?)`),
	},
	reconcile.FieldCardOutstanding: {
		regexp.MustCompile(`(?i)total\s+card\s+(?:outstanding|balance)[^0-9]{0,20}([\d,]+(?:\.\d+)?)`),
	},
}

// AnchorTotals scans the whole document for anchor phrases and returns one
// candidate per total field that has one. Fields without an anchor are
// simply absent from the map.
func AnchorTotals(text string) map[string]float64 {
	out := make(map[string]float64, len(anchorPatterns))
	for field, patterns := range anchorPatterns {
		for _, p := range patterns {
			if m := p.FindStringSubmatch(text); m != nil {
				out[field] = normalize.Amount(m[1])
				break
			}
		}
	}
	return out
}
