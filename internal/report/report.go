package report

import (
	"encoding/json"
	"strconv"

	"github.com/creditlens/bureau-extract/constants"
)

// Totals is the aggregate exposure across the whole report. Bureaus print
// these once as summary figures; they are the preferred source of truth over
// any row-by-row resummation.
type Totals struct {
	LoanSanctioned  float64 `json:"loanSanctioned"`
	LoanOutstanding float64 `json:"loanOutstanding"`
	CardLimit       float64 `json:"cardLimit"`
	CardOutstanding float64 `json:"cardOutstanding"`
}

// Tenure carries both the normalized month count and the original bureau
// string. It marshals as a number when parseable, the raw string when not,
// and is omitted when neither exists.
type Tenure struct {
	Months int
	Raw    string
	Valid  bool // Months is meaningful
}

func (t Tenure) IsZero() bool { return !t.Valid && t.Raw == "" }

func (t Tenure) MarshalJSON() ([]byte, error) {
	if t.Valid {
		return []byte(strconv.Itoa(t.Months)), nil
	}
	if t.Raw != "" {
		return json.Marshal(t.Raw)
	}
	return []byte("null"), nil
}

func (t *Tenure) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		t.Months = n
		t.Valid = true
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		t.Raw = s
		return nil
	}
	// null or malformed: leave as absent
	*t = Tenure{}
	return nil
}

// LoanDetails is everything a bureau prints about one credit account.
// Dates stay opaque strings; bureau date formats are too inconsistent to
// parse into calendar types.
type LoanDetails struct {
	Lender               string   `json:"lender"`
	AccountType          string   `json:"accountType"`
	AccountNumber        string   `json:"accountNumber"`
	Ownership            string   `json:"ownership"`
	AccountStatus        string   `json:"accountStatus"`
	DateOpened           string   `json:"dateOpened"`
	DateReported         string   `json:"dateReported"`
	DateClosed           string   `json:"dateClosed"`
	SanctionAmount       float64  `json:"sanctionAmount"`
	CurrentBalance       float64  `json:"currentBalance"`
	AmountOverdue        float64  `json:"amountOverdue"`
	EMIAmount            float64  `json:"emiAmount"`
	SecurityOrCollateral string   `json:"securityOrCollateral"`
	DPDHistory           string   `json:"dpdHistory"`
	RateOfInterest       *float64 `json:"rateOfInterest,omitempty"`
	RepaymentTenure      Tenure   `json:"repaymentTenure,omitzero"`
	TotalWriteOffAmount  float64  `json:"totalWriteOffAmount"`
	PrincipalWriteOff    float64  `json:"principalWriteOff"`
	SettlementAmount     float64  `json:"settlementAmount"`
}

// LoanAccount is one credit account. Line is a human-readable one-line
// summary and doubles as the deduplication key.
type LoanAccount struct {
	Type    string                  `json:"type"`
	Status  constants.AccountStatus `json:"status"`
	Line    string                  `json:"line"`
	Details LoanDetails             `json:"details"`
}

// EnquiryRecord is one credit enquiry made against the applicant.
type EnquiryRecord struct {
	Institution string  `json:"institution"`
	EnquiryType string  `json:"enquiryType"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
}

// ExtractionResult is the canonical output record, created fresh per
// document and immutable once returned.
type ExtractionResult struct {
	Score        *int            `json:"score"`
	EnquiryCount int             `json:"enquiryCount"`
	DPD          string          `json:"dpd"`
	Totals       Totals          `json:"totals"`
	Loans        []LoanAccount   `json:"loans"`
	Enquiries    []EnquiryRecord `json:"enquiries"`
}

// ScoreValue returns the score or 0 when absent, for logging and storage.
func (r *ExtractionResult) ScoreValue() int {
	if r.Score == nil {
		return 0
	}
	return *r.Score
}
