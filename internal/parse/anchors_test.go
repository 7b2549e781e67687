package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/creditlens/bureau-extract/internal/reconcile"
)

func TestAnchorTotals(t *testing.T) {
	text := `SUMMARY
Total Sanc. Amt: 10,50,000
Total Current Bal. amt 3,65,000
Total Credit Limit: 1,00,000`

	anchors := AnchorTotals(text)
	assert.Equal(t, 1050000.0, anchors[reconcile.FieldLoanSanctioned])
	assert.Equal(t, 365000.0, anchors[reconcile.FieldLoanOutstanding])
	assert.Equal(t, 100000.0, anchors[reconcile.FieldCardLimit])

	_, hasCardOut := anchors[reconcile.FieldCardOutstanding]
	assert.False(t, hasCardOut, "no card outstanding anchor printed")
}

func TestAnchorTotalsAlternatePhrasings(t *testing.T) {
	anchors := AnchorTotals("Total Outstanding Balance 4,20,000 and Total High Credit 9,00,000")
	assert.Equal(t, 420000.0, anchors[reconcile.FieldLoanOutstanding])
	assert.Equal(t, 900000.0, anchors[reconcile.FieldLoanSanctioned])
}

func TestAnchorTotalsNonePresent(t *testing.T) {
	assert.Empty(t, AnchorTotals("no aggregates printed in this report"))
}
