package constants

import "strings"

// LoanType is the product family of a credit account.
type LoanType string

const (
	HomeLoan      LoanType = "Home Loan"
	AutoLoan      LoanType = "Auto Loan"
	PersonalLoan  LoanType = "Personal Loan"
	EducationLoan LoanType = "Education Loan"
	GoldLoan      LoanType = "Gold Loan"
	BusinessLoan  LoanType = "Business Loan"
	ConsumerLoan  LoanType = "Consumer Loan"
	CreditCard    LoanType = "Credit Card"
	Overdraft     LoanType = "Overdraft"
	OtherLoan     LoanType = "Other"
)

type loanTypeRule struct {
	keyword string
	typ     LoanType
}

// Ordered, first match wins. Specific products come before the generic
// "loan" catch-all so "home loan" never classifies as Other.
var loanTypeRules = []loanTypeRule{
	{"home loan", HomeLoan},
	{"housing loan", HomeLoan},
	{"housing", HomeLoan},
	{"mortgage", HomeLoan},
	{"auto loan", AutoLoan},
	{"car loan", AutoLoan},
	{"vehicle", AutoLoan},
	{"two-wheeler", AutoLoan},
	{"two wheeler", AutoLoan},
	{"personal loan", PersonalLoan},
	{"education loan", EducationLoan},
	{"student loan", EducationLoan},
	{"gold loan", GoldLoan},
	{"business loan", BusinessLoan},
	{"commercial", BusinessLoan},
	{"consumer durable", ConsumerLoan},
	{"consumer loan", ConsumerLoan},
	{"credit card", CreditCard},
	{"card", CreditCard},
	{"overdraft", Overdraft},
	{"od account", Overdraft},
	{"loan", OtherLoan},
}

// ClassifyLoanType resolves a bureau's free-text account type to a product
// family. Unrecognized input yields OtherLoan with ok=false.
func ClassifyLoanType(accountType string) (LoanType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(accountType))
	if normalized == "" {
		return OtherLoan, false
	}
	for _, r := range loanTypeRules {
		if strings.Contains(normalized, r.keyword) {
			return r.typ, true
		}
	}
	return OtherLoan, false
}

// IsCardType reports whether an account type belongs to the revolving-credit
// family, which feeds the card totals instead of the loan totals.
func IsCardType(accountType string) bool {
	t, _ := ClassifyLoanType(accountType)
	return t == CreditCard
}
