// Package assemble produces the final canonical record: loans deduplicated
// by their summary line, every numeric coerced through the amount
// normalizer one last time, and every declared field present with its
// documented default.
package assemble

import (
	"math"

	"github.com/creditlens/bureau-extract/constants"
	"github.com/creditlens/bureau-extract/internal/parse"
	"github.com/creditlens/bureau-extract/internal/report"
)

// Assemble builds the ExtractionResult. Loans with an identical Line are
// duplicates; the first-seen entry wins and order is preserved.
func Assemble(
	loans []report.LoanAccount,
	enquiries []report.EnquiryRecord,
	score *int,
	enquiryCount int,
	dpd string,
	totals report.Totals,
) *report.ExtractionResult {
	deduped := make([]report.LoanAccount, 0, len(loans))
	seen := make(map[string]struct{}, len(loans))
	for _, l := range loans {
		l = scrubLoan(l)
		if _, dup := seen[l.Line]; dup {
			continue
		}
		seen[l.Line] = struct{}{}
		deduped = append(deduped, l)
	}

	cleanEnquiries := make([]report.EnquiryRecord, 0, len(enquiries))
	for _, e := range enquiries {
		e.Amount = scrubAmount(e.Amount)
		cleanEnquiries = append(cleanEnquiries, e)
	}

	if enquiryCount < 0 {
		enquiryCount = 0
	}
	if dpd == "" {
		dpd = parse.DPDClean
	}
	if score != nil && (*score < parse.ScoreMin || *score > parse.ScoreMax) {
		score = nil
	}

	return &report.ExtractionResult{
		Score:        score,
		EnquiryCount: enquiryCount,
		DPD:          dpd,
		Totals: report.Totals{
			LoanSanctioned:  scrubAmount(totals.LoanSanctioned),
			LoanOutstanding: scrubAmount(totals.LoanOutstanding),
			CardLimit:       scrubAmount(totals.CardLimit),
			CardOutstanding: scrubAmount(totals.CardOutstanding),
		},
		Loans:     deduped,
		Enquiries: cleanEnquiries,
	}
}

func scrubLoan(l report.LoanAccount) report.LoanAccount {
	d := &l.Details
	d.SanctionAmount = scrubAmount(d.SanctionAmount)
	d.CurrentBalance = scrubAmount(d.CurrentBalance)
	d.AmountOverdue = scrubAmount(d.AmountOverdue)
	d.EMIAmount = scrubAmount(d.EMIAmount)
	d.TotalWriteOffAmount = scrubAmount(d.TotalWriteOffAmount)
	d.PrincipalWriteOff = scrubAmount(d.PrincipalWriteOff)
	d.SettlementAmount = scrubAmount(d.SettlementAmount)
	if d.RateOfInterest != nil {
		r := scrubAmount(*d.RateOfInterest)
		if r == 0 {
			d.RateOfInterest = nil
		} else {
			d.RateOfInterest = &r
		}
	}
	if l.Status == "" {
		l.Status = constants.StatusUnknown
	}
	if l.Line == "" {
		l.Line = parse.SummaryLine(*d)
	}
	return l
}

// scrubAmount is the defensive re-normalization: finite and non-negative,
// or the documented default of 0.
func scrubAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
