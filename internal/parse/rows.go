package parse

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/creditlens/bureau-extract/constants"
	"github.com/creditlens/bureau-extract/internal/normalize"
	"github.com/creditlens/bureau-extract/internal/report"
)

var (
	headerLenderToken  = regexp.MustCompile(`(?i)lender|member|bank|institution`)
	headerAccountToken = regexp.MustCompile(`(?i)account|acct|status|type`)

	// Headings that mean the account table is over and another section has
	// begun. A line starting with "total" is the table's own summary row and
	// terminates it the same way.
	nextSectionHeading = regexp.MustCompile(`(?i)^\s*(enquir|personal\s+information|contact\s+information|consumer\s+information|account\s+information|summary|score|end\s+of\s+report|disclaimer)`)

	enquiryHeaderToken = regexp.MustCompile(`(?i)date|purpose|type`)
)

// isHeaderLine applies the two-token rule: a real table header names both a
// lender-like and an account/status-like column. Narrative text rarely does
// both in one line, which keeps header detection from firing on prose.
func isHeaderLine(line string) bool {
	return headerLenderToken.MatchString(line) && headerAccountToken.MatchString(line)
}

func isTerminatorLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(strings.ToLower(trimmed), "total") {
		return true
	}
	return nextSectionHeading.MatchString(trimmed)
}

func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

// ExtractAccountRows walks a segmented account block row by row. The header
// is located with the two-token rule, every following line is split like the
// header and read through the column map, and rows contributing no usable
// lender, type or amount are dropped silently (page breaks and footers
// intrude into flattened tables all the time).
func ExtractAccountRows(block string, logger *slog.Logger) []report.LoanAccount {
	if logger == nil {
		logger = slog.Default()
	}
	lines := strings.Split(block, "\n")

	headerIdx := -1
	var cm ColumnMap
	for i, line := range lines {
		if isHeaderLine(line) && len(SplitColumns(line)) >= 3 {
			headerIdx = i
			cm = MapAccountColumns(line, logger)
			break
		}
	}
	if headerIdx < 0 {
		logger.Debug("parse.rows.no_header", "lines", len(lines))
		return nil
	}

	var loans []report.LoanAccount
	for _, line := range lines[headerIdx+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if isTerminatorLine(line) {
			break
		}
		cells := SplitColumns(line)
		loan, ok := buildLoan(cells, cm)
		if !ok {
			logger.Debug("parse.rows.skip", "line", strings.TrimSpace(line))
			continue
		}
		loans = append(loans, loan)
	}
	return loans
}

func buildLoan(cells []string, cm ColumnMap) (report.LoanAccount, bool) {
	// a single cell cannot be a data row in a multi-column table; page
	// numbers and footers land here
	if len(cells) < 2 {
		return report.LoanAccount{}, false
	}
	d := report.LoanDetails{
		Lender:               cellAt(cells, cm.Index(FieldLender)),
		AccountType:          cellAt(cells, cm.Index(FieldAccountType)),
		AccountNumber:        cellAt(cells, cm.Index(FieldAccountNumber)),
		Ownership:            cellAt(cells, cm.Index(FieldOwnership)),
		AccountStatus:        cellAt(cells, cm.Index(FieldAccountStatus)),
		DateOpened:           cellAt(cells, cm.Index(FieldDateOpened)),
		DateReported:         cellAt(cells, cm.Index(FieldDateReported)),
		DateClosed:           cellAt(cells, cm.Index(FieldDateClosed)),
		SecurityOrCollateral: cellAt(cells, cm.Index(FieldSecurity)),
		DPDHistory:           cellAt(cells, cm.Index(FieldDPDHistory)),
	}
	d.SanctionAmount = normalize.Amount(cellAt(cells, cm.Index(FieldSanctionAmount)))
	d.CurrentBalance = normalize.Amount(cellAt(cells, cm.Index(FieldCurrentBalance)))
	d.AmountOverdue = normalize.Amount(cellAt(cells, cm.Index(FieldAmountOverdue)))
	d.EMIAmount = normalize.Amount(cellAt(cells, cm.Index(FieldEMIAmount)))

	if raw := cellAt(cells, cm.Index(FieldInterestRate)); raw != "" {
		if rate := normalize.Amount(raw); rate > 0 {
			d.RateOfInterest = &rate
		}
	}
	if raw := cellAt(cells, cm.Index(FieldTenure)); raw != "" {
		if months, ok := normalize.TenureMonths(raw); ok {
			d.RepaymentTenure = report.Tenure{Months: months, Raw: raw, Valid: true}
		} else {
			d.RepaymentTenure = report.Tenure{Raw: raw}
		}
	}

	// A row with no lender, no type and no money in it is stray text.
	if d.Lender == "" && d.AccountType == "" &&
		d.SanctionAmount == 0 && d.CurrentBalance == 0 {
		return report.LoanAccount{}, false
	}

	status, _ := constants.CanonicalizeStatus(d.AccountStatus)
	typ, _ := constants.ClassifyLoanType(d.AccountType)

	return report.LoanAccount{
		Type:    typeLabel(typ, d.AccountType),
		Status:  status,
		Line:    SummaryLine(d),
		Details: d,
	}, true
}

// typeLabel prefers the bureau's own wording when the classifier only
// reached the catch-all.
func typeLabel(typ constants.LoanType, raw string) string {
	if typ == constants.OtherLoan && strings.TrimSpace(raw) != "" {
		return strings.TrimSpace(raw)
	}
	return string(typ)
}

// SummaryLine renders the one-line human summary that doubles as the
// deduplication key.
func SummaryLine(d report.LoanDetails) string {
	parts := make([]string, 0, 5)
	if d.Lender != "" {
		parts = append(parts, d.Lender)
	}
	if d.AccountType != "" {
		parts = append(parts, d.AccountType)
	}
	if d.AccountStatus != "" {
		parts = append(parts, d.AccountStatus)
	}
	if d.SanctionAmount > 0 {
		parts = append(parts, fmt.Sprintf("sanctioned %s", normalize.AmountString(d.SanctionAmount)))
	}
	if d.CurrentBalance > 0 {
		parts = append(parts, fmt.Sprintf("balance %s", normalize.AmountString(d.CurrentBalance)))
	}
	return strings.Join(parts, " | ")
}

// ExtractEnquiryRows walks a segmented enquiry block the same way
// ExtractAccountRows walks the account block.
func ExtractEnquiryRows(block string, logger *slog.Logger) []report.EnquiryRecord {
	if logger == nil {
		logger = slog.Default()
	}
	lines := strings.Split(block, "\n")

	headerIdx := -1
	var cm ColumnMap
	for i, line := range lines {
		if headerLenderToken.MatchString(line) &&
			enquiryHeaderToken.MatchString(line) &&
			len(SplitColumns(line)) >= 2 {
			headerIdx = i
			cm = MapEnquiryColumns(line, logger)
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	var enquiries []report.EnquiryRecord
	for _, line := range lines[headerIdx+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if isTerminatorLine(line) {
			break
		}
		cells := SplitColumns(line)
		e := report.EnquiryRecord{
			Institution: cellAt(cells, cm.Index(FieldInstitution)),
			EnquiryType: cellAt(cells, cm.Index(FieldEnquiryType)),
			Date:        cellAt(cells, cm.Index(FieldEnquiryDate)),
			Amount:      normalize.Amount(cellAt(cells, cm.Index(FieldAmount))),
			Status:      cellAt(cells, cm.Index(FieldStatus)),
		}
		if e.Institution == "" && e.Date == "" {
			continue
		}
		enquiries = append(enquiries, e)
	}
	return enquiries
}
