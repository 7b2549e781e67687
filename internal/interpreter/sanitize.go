package interpreter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/creditlens/bureau-extract/constants"
	"github.com/creditlens/bureau-extract/internal/normalize"
)

// sanitizeReportJSON makes a model response schema-friendly before strict
// validation:
//   - renames known synonyms (credit_score -> score, accounts -> loans, ...)
//   - coerces stringy numbers ("7,50,000") through the amount normalizer
//   - clamps the score to its band, nulling anything outside it
//   - drops unknown top-level keys
func sanitizeReportJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 8)
	rename := func(from, to string) {
		if v, ok := m[from]; ok {
			if _, exists := m[to]; !exists {
				m[to] = v
			}
			delete(m, from)
			dropped = append(dropped, from+"->"+to)
		}
	}

	rename("credit_score", "score")
	rename("creditScore", "score")
	rename("enquiry_count", "enquiryCount")
	rename("enquiries_count", "enquiryCount")
	rename("totalEnquiries", "enquiryCount")
	rename("dpd_summary", "dpd")
	rename("dpdSummary", "dpd")
	rename("accounts", "loans")
	rename("loan_accounts", "loans")
	rename("inquiries", "enquiries")

	// score: accept number or numeric string; null out-of-band values
	if v, ok := m["score"]; ok {
		if s, bad := coerceScore(v); bad {
			m["score"] = nil
			dropped = append(dropped, "score(out_of_band)")
		} else {
			m["score"] = s
		}
	}

	if v, ok := m["enquiryCount"]; ok {
		m["enquiryCount"] = int(coerceNumber(v))
	}

	if totals, ok := m["totals"].(map[string]any); ok {
		for _, from := range []string{"loan_sanctioned", "loan_outstanding", "card_limit", "card_outstanding"} {
			to := snakeToCamel(from)
			if v, exists := totals[from]; exists {
				totals[to] = v
				delete(totals, from)
			}
		}
		keepKeys(totals, totalsKeys, &dropped, "totals.")
		for k, v := range totals {
			totals[k] = coerceNumber(v)
		}
	}

	if loans, ok := m["loans"].([]any); ok {
		for _, item := range loans {
			loan, ok := item.(map[string]any)
			if !ok {
				continue
			}
			keepKeys(loan, loanKeys, &dropped, "loan.")
			if s, ok := loan["status"].(string); ok {
				canon, _ := constants.CanonicalizeStatus(s)
				loan["status"] = string(canon)
			}
			if details, ok := loan["details"].(map[string]any); ok {
				keepKeys(details, detailKeys, &dropped, "details.")
				for _, k := range []string{
					"sanctionAmount", "currentBalance", "amountOverdue", "emiAmount",
					"totalWriteOffAmount", "principalWriteOff", "settlementAmount",
				} {
					if v, exists := details[k]; exists {
						details[k] = coerceNumber(v)
					}
				}
				if s, ok := details["repaymentTenure"].(string); ok {
					if months, parsed := normalize.TenureMonths(s); parsed {
						details["repaymentTenure"] = months
					}
				}
			}
		}
	}
	if enquiries, ok := m["enquiries"].([]any); ok {
		for _, item := range enquiries {
			if e, ok := item.(map[string]any); ok {
				keepKeys(e, enquiryKeys, &dropped, "enquiry.")
				if v, exists := e["amount"]; exists {
					e["amount"] = coerceNumber(v)
				}
			}
		}
	}

	allowed := map[string]struct{}{
		"score": {}, "enquiryCount": {}, "dpd": {}, "totals": {}, "loans": {}, "enquiries": {},
	}
	for k := range m {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	// the schema requires these even when the model omitted them
	if _, ok := m["totals"]; !ok {
		m["totals"] = map[string]any{}
	}
	if _, ok := m["loans"]; !ok {
		m["loans"] = []any{}
	}
	if _, ok := m["enquiries"]; !ok {
		m["enquiries"] = []any{}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("interp.sanitize", "adjusted", strings.Join(dropped, ","))
	}
	return out, dropped, nil
}

var (
	totalsKeys = map[string]struct{}{
		"loanSanctioned": {}, "loanOutstanding": {}, "cardLimit": {}, "cardOutstanding": {},
	}
	loanKeys = map[string]struct{}{
		"type": {}, "status": {}, "line": {}, "details": {},
	}
	detailKeys = map[string]struct{}{
		"lender": {}, "accountType": {}, "accountNumber": {}, "ownership": {},
		"accountStatus": {}, "dateOpened": {}, "dateReported": {}, "dateClosed": {},
		"sanctionAmount": {}, "currentBalance": {}, "amountOverdue": {}, "emiAmount": {},
		"securityOrCollateral": {}, "dpdHistory": {}, "rateOfInterest": {},
		"repaymentTenure": {}, "totalWriteOffAmount": {}, "principalWriteOff": {},
		"settlementAmount": {},
	}
	enquiryKeys = map[string]struct{}{
		"institution": {}, "enquiryType": {}, "date": {}, "amount": {}, "status": {},
	}
)

func keepKeys(m map[string]any, allowed map[string]struct{}, dropped *[]string, prefix string) {
	for k := range m {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			*dropped = append(*dropped, prefix+k+"(unknown)")
		}
	}
}

// coerceNumber turns whatever the model produced into a non-negative float.
func coerceNumber(v any) float64 {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
			return 0
		}
		return t
	case string:
		return normalize.Amount(t)
	case nil:
		return 0
	default:
		return 0
	}
}

func coerceScore(v any) (any, bool) {
	var s float64
	switch t := v.(type) {
	case float64:
		s = t
	case string:
		s = normalize.Amount(t)
	case nil:
		return nil, false
	default:
		return nil, true
	}
	n := int(math.Round(s))
	if n < 300 || n > 900 {
		return nil, true
	}
	return n, false
}

func snakeToCamel(s string) string {
	parts := strings.Split(s, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}
