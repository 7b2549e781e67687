package parse

import (
	"log/slog"
	"regexp"
	"strconv"

	"github.com/creditlens/bureau-extract/internal/report"
)

var totalEnquiriesPattern = regexp.MustCompile(`(?i)total\s+(?:number\s+of\s+)?enquir(?:y|ies)[^0-9]{0,20}(\d+)`)

// Enquiry section markers across the four bureau layouts.
var (
	enquiryStartMarkers = []string{
		"enquiry information",
		"enquiries",
		"enquiry details",
		"credit enquiries",
	}
	enquiryEndMarkers = []string{
		"end of report",
		"disclaimer",
		"legend",
		"glossary",
	}
)

// Enquiries segments and parses the enquiry table. An absent section yields
// an empty list, never an error.
func Enquiries(text string, logger *slog.Logger) []report.EnquiryRecord {
	for _, start := range enquiryStartMarkers {
		block := Segment(text, start, enquiryEndMarkers)
		if block == "" {
			continue
		}
		if rows := ExtractEnquiryRows(block, logger); len(rows) > 0 {
			return rows
		}
	}
	return nil
}

// EnquiryCount prefers the bureau's printed "total enquiries" summary,
// falls back to counting parsed enquiry rows, and reports 0 otherwise.
func EnquiryCount(text string, enquiries []report.EnquiryRecord) int {
	if m := totalEnquiriesPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 0 {
			return n
		}
	}
	return len(enquiries)
}
