package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/creditlens/bureau-extract/internal/report"
)

func loanWithOverdue(overdue float64) report.LoanAccount {
	return report.LoanAccount{
		Details: report.LoanDetails{AmountOverdue: overdue},
	}
}

func TestDPDSummaryClean(t *testing.T) {
	got := DPDSummary("nothing delinquent here", []report.LoanAccount{loanWithOverdue(0)})
	assert.Equal(t, DPDClean, got)
}

func TestDPDSummaryOverdueAccounts(t *testing.T) {
	loans := []report.LoanAccount{loanWithOverdue(5000), loanWithOverdue(0), loanWithOverdue(1200)}
	got := DPDSummary("no delinquency tokens", loans)
	assert.Equal(t, "Overdues in 2 account(s)", got)
}

func TestDPDSummaryWindowFlag(t *testing.T) {
	text := "Payment History: 000 000 030 000 across the last year"
	got := DPDSummary(text, nil)
	assert.Contains(t, got, DPDClean)
	assert.Contains(t, got, "manual review")
}

func TestDPDSummaryWindowFlagWithOverdues(t *testing.T) {
	text := "DPD 90 in recent months"
	got := DPDSummary(text, []report.LoanAccount{loanWithOverdue(100)})
	assert.Contains(t, got, "Overdues in 1 account(s)")
	assert.Contains(t, got, "manual review")
}

func TestDPDSummaryTokenBeyondWindow(t *testing.T) {
	// the bucket number sits past the 300-char lookahead, so no flag
	filler := make([]byte, 400)
	for i := range filler {
		filler[i] = 'x'
	}
	text := "payment history " + string(filler) + " 90"
	assert.Equal(t, DPDClean, DPDSummary(text, nil))
}
