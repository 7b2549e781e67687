package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountIndianGrouping(t *testing.T) {
	assert.Equal(t, 750000.0, Amount("7,50,000"))
	assert.Equal(t, 12345678.0, Amount("1,23,45,678"))
	assert.Equal(t, 320000.0, Amount("3,20,000.00"))
}

func TestAmountStripsCurrencyAndText(t *testing.T) {
	assert.Equal(t, 50000.0, Amount("Rs. 50,000"))
	assert.Equal(t, 50000.0, Amount("INR 50,000/-"))
	assert.Equal(t, 50000.0, Amount("₹50,000"))
	assert.Equal(t, 1200.5, Amount("EMI of 1,200.50 per month"))
}

func TestAmountNoNumber(t *testing.T) {
	assert.Equal(t, 0.0, Amount(""))
	assert.Equal(t, 0.0, Amount("not reported"))
	assert.Equal(t, 0.0, Amount("N/A"))
}

func TestAmountNegativeClampsToZero(t *testing.T) {
	assert.Equal(t, 0.0, Amount("-5,000"))
}

func TestAmountIdempotent(t *testing.T) {
	for _, s := range []string{"7,50,000", "123.45", "0", "garbage"} {
		once := Amount(s)
		assert.Equal(t, once, Amount(AmountString(once)), "input %q", s)
	}
}
