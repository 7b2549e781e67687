// Package export renders an extraction result as an XLSX workbook with
// Summary, Accounts and Enquiries sheets.
package export

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/creditlens/bureau-extract/internal/report"
)

type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// WorkbookBytes renders the whole result into a new workbook.
func (s *Service) WorkbookBytes(docName string, r *report.ExtractionResult) ([]byte, error) {
	f := excelize.NewFile()

	if err := s.writeSummary(f, docName, r); err != nil {
		return nil, err
	}
	if err := s.writeAccounts(f, r); err != nil {
		return nil, err
	}
	if err := s.writeEnquiries(f, r); err != nil {
		return nil, err
	}

	// drop the default sheet excelize creates
	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Info("export.workbook.ok", "doc", docName, "bytes", buf.Len())
	return buf.Bytes(), nil
}

func (s *Service) writeSummary(f *excelize.File, docName string, r *report.ExtractionResult) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	score := "not found"
	if r.Score != nil {
		score = fmt.Sprintf("%d", *r.Score)
	}
	rows := [][]any{
		{"Document", docName},
		{"Credit Score", score},
		{"Delinquency", r.DPD},
		{"Enquiries", r.EnquiryCount},
		{"Loan Sanctioned Total", r.Totals.LoanSanctioned},
		{"Loan Outstanding Total", r.Totals.LoanOutstanding},
		{"Card Limit Total", r.Totals.CardLimit},
		{"Card Outstanding Total", r.Totals.CardOutstanding},
	}
	for i, row := range rows {
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) writeAccounts(f *excelize.File, r *report.ExtractionResult) error {
	const sheet = "Accounts"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := []any{
		"Lender", "Type", "Status", "Account No", "Ownership",
		"Opened", "Reported", "Closed",
		"Sanctioned", "Balance", "Overdue", "EMI",
		"DPD History", "Summary",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, l := range r.Loans {
		d := l.Details
		row := []any{
			d.Lender, l.Type, string(l.Status), d.AccountNumber, d.Ownership,
			d.DateOpened, d.DateReported, d.DateClosed,
			d.SanctionAmount, d.CurrentBalance, d.AmountOverdue, d.EMIAmount,
			d.DPDHistory, l.Line,
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) writeEnquiries(f *excelize.File, r *report.ExtractionResult) error {
	const sheet = "Enquiries"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := []any{"Institution", "Type", "Date", "Amount", "Status"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, e := range r.Enquiries {
		row := []any{e.Institution, e.EnquiryType, e.Date, e.Amount, e.Status}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}
