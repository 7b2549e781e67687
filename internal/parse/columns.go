package parse

import (
	"log/slog"
	"regexp"
)

// Field is a canonical column name in a bureau account or enquiry table.
type Field string

const (
	FieldLender         Field = "lender"
	FieldAccountType    Field = "accountType"
	FieldAccountNumber  Field = "accountNumber"
	FieldOwnership      Field = "ownership"
	FieldAccountStatus  Field = "accountStatus"
	FieldDateOpened     Field = "dateOpened"
	FieldDateReported   Field = "dateReported"
	FieldDateClosed     Field = "dateClosed"
	FieldSanctionAmount Field = "sanctionAmount"
	FieldCurrentBalance Field = "currentBalance"
	FieldAmountOverdue  Field = "amountOverdue"
	FieldEMIAmount      Field = "emiAmount"
	FieldSecurity       Field = "securityOrCollateral"
	FieldDPDHistory     Field = "dpdHistory"
	FieldInterestRate   Field = "rateOfInterest"
	FieldTenure         Field = "repaymentTenure"

	FieldInstitution Field = "institution"
	FieldEnquiryType Field = "enquiryType"
	FieldEnquiryDate Field = "date"
	FieldAmount      Field = "amount"
	FieldStatus      Field = "status"
)

// Bureau tables are flattened to text with wide gaps standing in for column
// separators; two or more spaces is the split point.
var columnSplit = regexp.MustCompile(`\s{2,}|\t+`)

// SplitColumns splits a flattened table line into its cells.
func SplitColumns(line string) []string {
	cells := columnSplit.Split(line, -1)
	out := cells[:0]
	for _, c := range cells {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

type fieldKeyword struct {
	field   Field
	pattern *regexp.Regexp
}

// Keyword tests for account-table headers. Order matters where keywords
// overlap: overdue before balance, sanction before generic amount.
var accountFieldKeywords = []fieldKeyword{
	{FieldLender, regexp.MustCompile(`(?i)lender|member|bank|institution`)},
	{FieldAccountType, regexp.MustCompile(`(?i)account\s*type|acct\s*type|type\s*of|product|portfolio`)},
	{FieldAccountNumber, regexp.MustCompile(`(?i)account\s*(?:no|num|number|#)|acct\s*(?:no|#)`)},
	{FieldOwnership, regexp.MustCompile(`(?i)ownership|holder`)},
	{FieldAccountStatus, regexp.MustCompile(`(?i)status`)},
	{FieldDateOpened, regexp.MustCompile(`(?i)open(?:ed)?\s*(?:date|on)?|date\s*open`)},
	{FieldDateReported, regexp.MustCompile(`(?i)report(?:ed)?\s*(?:date|on)?|date\s*report|last\s*updated`)},
	{FieldDateClosed, regexp.MustCompile(`(?i)clos(?:ed|ure)\s*(?:date|on)?|date\s*clos`)},
	{FieldSanctionAmount, regexp.MustCompile(`(?i)sanction|highest?\s*credit|high\s*credit|credit\s*limit|disbursed`)},
	{FieldCurrentBalance, regexp.MustCompile(`(?i)current\s*bal|balance|outstanding`)},
	{FieldAmountOverdue, regexp.MustCompile(`(?i)overdue|over\s*due|past\s*due`)},
	{FieldEMIAmount, regexp.MustCompile(`(?i)\bemi\b|instal?lment`)},
	{FieldSecurity, regexp.MustCompile(`(?i)security|collateral`)},
	{FieldDPDHistory, regexp.MustCompile(`(?i)\bdpd\b|payment\s*history|asset\s*class`)},
	{FieldInterestRate, regexp.MustCompile(`(?i)interest|\broi\b|\brate\b`)},
	{FieldTenure, regexp.MustCompile(`(?i)tenure|tenor|duration|repayment\s*period`)},
}

// Keyword tests for enquiry-table headers.
var enquiryFieldKeywords = []fieldKeyword{
	{FieldInstitution, regexp.MustCompile(`(?i)lender|member|bank|institution|enquired\s*by`)},
	{FieldEnquiryType, regexp.MustCompile(`(?i)purpose|type|product`)},
	{FieldEnquiryDate, regexp.MustCompile(`(?i)date`)},
	{FieldAmount, regexp.MustCompile(`(?i)amount|amt`)},
	{FieldStatus, regexp.MustCompile(`(?i)status|stage`)},
}

// ColumnMap maps canonical fields to cell indexes; -1 means the header has
// no such column.
type ColumnMap map[Field]int

func (m ColumnMap) Index(f Field) int {
	if i, ok := m[f]; ok {
		return i
	}
	return -1
}

// MapColumns resolves a header line against a keyword table. First match
// per field wins; if two fields land on the same cell the first assignment
// stands and the collision is logged, never raised.
func mapColumns(headerLine string, keywords []fieldKeyword, logger *slog.Logger) ColumnMap {
	if logger == nil {
		logger = slog.Default()
	}
	cells := SplitColumns(headerLine)
	out := make(ColumnMap, len(keywords))
	claimed := make(map[int]Field, len(cells))

	for _, kw := range keywords {
		out[kw.field] = -1
		for i, cell := range cells {
			if !kw.pattern.MatchString(cell) {
				continue
			}
			if prev, taken := claimed[i]; taken {
				// first assignment stands; keep looking for an unclaimed cell
				logger.Warn("parse.columns.collision",
					"cell", cell, "index", i,
					"kept", string(prev), "contender", string(kw.field))
				continue
			}
			out[kw.field] = i
			claimed[i] = kw.field
			break
		}
	}
	return out
}

// MapAccountColumns maps an account-table header line.
func MapAccountColumns(headerLine string, logger *slog.Logger) ColumnMap {
	return mapColumns(headerLine, accountFieldKeywords, logger)
}

// MapEnquiryColumns maps an enquiry-table header line.
func MapEnquiryColumns(headerLine string, logger *slog.Logger) ColumnMap {
	return mapColumns(headerLine, enquiryFieldKeywords, logger)
}
