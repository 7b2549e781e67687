package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/creditlens/bureau-extract/internal/report"
)

func TestWorkbookBytes(t *testing.T) {
	score := 742
	result := &report.ExtractionResult{
		Score:        &score,
		EnquiryCount: 2,
		DPD:          "0 - Clean",
		Totals:       report.Totals{LoanSanctioned: 750000, LoanOutstanding: 320000},
		Loans: []report.LoanAccount{
			{
				Type:   "Home Loan",
				Status: "Active",
				Line:   "HDFC Bank | Home Loan | Active",
				Details: report.LoanDetails{
					Lender:         "HDFC Bank",
					SanctionAmount: 750000,
					CurrentBalance: 320000,
				},
			},
		},
		Enquiries: []report.EnquiryRecord{
			{Institution: "SBI", EnquiryType: "Personal Loan", Date: "01-03-2024", Amount: 200000},
			{Institution: "Axis Bank", EnquiryType: "Credit Card", Date: "15-04-2024"},
		},
	}

	raw, err := NewService(nil).WorkbookBytes("report.pdf", result)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Summary", "Accounts", "Enquiries"}, f.GetSheetList())

	cell, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "742", cell)

	cell, err = f.GetCellValue("Accounts", "A2")
	require.NoError(t, err)
	assert.Equal(t, "HDFC Bank", cell)

	rows, err := f.GetRows("Enquiries")
	require.NoError(t, err)
	assert.Len(t, rows, 3) // header plus two enquiries
}

func TestWorkbookBytesNoScore(t *testing.T) {
	raw, err := NewService(nil).WorkbookBytes("empty.pdf", &report.ExtractionResult{DPD: "0 - Clean"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	cell, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "not found", cell)
}
