package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sectionedDoc = `PERSONAL INFORMATION
Name: A Kumar

ACCOUNT INFORMATION
Lender  Status
HDFC    Active

ENQUIRY INFORMATION
Member  Date
SBI     01-02-2024

END OF REPORT`

func TestSegmentReturnsSection(t *testing.T) {
	got := Segment(sectionedDoc, "account information", []string{"enquiry information", "end of report"})
	assert.Contains(t, got, "ACCOUNT INFORMATION")
	assert.Contains(t, got, "HDFC")
	assert.NotContains(t, got, "ENQUIRY")
	assert.NotContains(t, got, "SBI")
}

func TestSegmentMissingMarker(t *testing.T) {
	assert.Equal(t, "", Segment(sectionedDoc, "MISSING MARKER", []string{"end of report"}))
}

func TestSegmentNearestEndWins(t *testing.T) {
	// both end markers exist; the earlier one must bound the section even
	// though it is listed second
	got := Segment(sectionedDoc, "account information", []string{"end of report", "enquiry information"})
	assert.NotContains(t, got, "SBI")
}

func TestSegmentNoEndMarkerRunsToEOF(t *testing.T) {
	got := Segment(sectionedDoc, "enquiry information", []string{"no such marker"})
	assert.Contains(t, got, "END OF REPORT")
}

func TestSegmentCaseInsensitive(t *testing.T) {
	got := Segment(sectionedDoc, "Account Information", []string{"Enquiry Information"})
	assert.Contains(t, got, "HDFC")
}
