package parse

import (
	"fmt"
	"strings"

	"github.com/creditlens/bureau-extract/internal/report"
)

// DPDClean is the delinquency summary for a report with nothing overdue.
const DPDClean = "0 - Clean"

// dpdLookahead is how far past a delinquency token the bucket search reads.
const dpdLookahead = 300

var (
	dpdTokens = []string{"dpd", "days past due", "payment history"}

	// literal substrings on purpose: bureau histories print buckets as
	// "030"/"090" and the whole check is documented as approximate
	dpdBuckets = []string{"30", "60", "90", "120", "150", "180"}

	dpdReviewSuffix = "possible DPD of 30+ days - manual review advised"
)

// DPDSummary builds the delinquency summary line. Accounts with money
// overdue produce a count-based phrase. Separately, a windowed search after
// the first DPD-ish token looks for bucket numbers; a hit appends a manual-
// review flag. The bucket search is a coarse heuristic, approximate by
// nature, and is never treated as authoritative.
func DPDSummary(text string, loans []report.LoanAccount) string {
	overdue := 0
	for _, l := range loans {
		if l.Details.AmountOverdue > 0 {
			overdue++
		}
	}

	summary := DPDClean
	if overdue > 0 {
		summary = fmt.Sprintf("Overdues in %d account(s)", overdue)
	}

	if hasDelinquencyWindow(text) {
		summary += "; " + dpdReviewSuffix
	}
	return summary
}

func hasDelinquencyWindow(text string) bool {
	lower := strings.ToLower(text)
	for _, token := range dpdTokens {
		idx := strings.Index(lower, token)
		if idx < 0 {
			continue
		}
		end := idx + len(token) + dpdLookahead
		if end > len(lower) {
			end = len(lower)
		}
		window := lower[idx:end]
		for _, bucket := range dpdBuckets {
			if strings.Contains(window, bucket) {
				return true
			}
		}
	}
	return false
}
