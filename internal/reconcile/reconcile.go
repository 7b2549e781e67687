// Package reconcile selects one final value per total field among the
// independently derived candidates: the bureau's printed anchor, the
// rule-based resummation, and the external interpreter's estimate.
package reconcile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Candidate sources, from most to least reliable by default: an explicitly
// printed aggregate beats any resummation, which is more auditable than an
// externally interpreted estimate.
const (
	SourceAnchor   = "anchor"
	SourceRuleSum  = "ruleSum"
	SourceExternal = "external"
)

// Total field names keyed by the output schema.
const (
	FieldLoanSanctioned  = "loanSanctioned"
	FieldLoanOutstanding = "loanOutstanding"
	FieldCardLimit       = "cardLimit"
	FieldCardOutstanding = "cardOutstanding"
)

var defaultOrder = []string{SourceAnchor, SourceRuleSum, SourceExternal}

// Candidate is one proposed value for a field. Absent candidates have
// OK == false; a present zero is a real candidate.
type Candidate struct {
	Value float64
	OK    bool
}

// Candidates holds every source's proposal for one field.
type Candidates struct {
	Anchor   Candidate
	RuleSum  Candidate
	External Candidate
}

func (c Candidates) bySource(source string) Candidate {
	switch source {
	case SourceAnchor:
		return c.Anchor
	case SourceRuleSum:
		return c.RuleSum
	case SourceExternal:
		return c.External
	}
	return Candidate{}
}

// Any reports whether at least one source proposed a value.
func (c Candidates) Any() bool {
	return c.Anchor.OK || c.RuleSum.OK || c.External.OK
}

// Strategy is the per-field precedence table. Fields not listed use the
// default anchor > ruleSum > external order. Precedence is applied per
// field, never globally: a report may anchor outstanding balance but not
// sanctioned amount.
type Strategy struct {
	orders map[string][]string
}

// DefaultStrategy applies the documented order to every field.
func DefaultStrategy() Strategy {
	return Strategy{}
}

// NewStrategy builds a strategy from explicit per-field source orders.
func NewStrategy(orders map[string][]string) (Strategy, error) {
	for field, order := range orders {
		for _, src := range order {
			switch src {
			case SourceAnchor, SourceRuleSum, SourceExternal:
			default:
				return Strategy{}, fmt.Errorf("strategy field %q: unknown source %q", field, src)
			}
		}
	}
	return Strategy{orders: orders}, nil
}

// LoadStrategyFile reads a YAML strategy table:
//
//	loanOutstanding: [anchor, external, ruleSum]
//	cardLimit: [ruleSum, anchor, external]
func LoadStrategyFile(path string) (Strategy, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Strategy{}, fmt.Errorf("read strategy file: %w", err)
	}
	var orders map[string][]string
	if err := yaml.Unmarshal(b, &orders); err != nil {
		return Strategy{}, fmt.Errorf("parse strategy file: %w", err)
	}
	return NewStrategy(orders)
}

func (s Strategy) orderFor(field string) []string {
	if order, ok := s.orders[field]; ok && len(order) > 0 {
		return order
	}
	return defaultOrder
}

// Resolve picks the final value for one field: the first present candidate
// in the field's precedence order, else def.
func (s Strategy) Resolve(field string, c Candidates, def float64) float64 {
	for _, src := range s.orderFor(field) {
		if cand := c.bySource(src); cand.OK {
			return cand.Value
		}
	}
	return def
}
