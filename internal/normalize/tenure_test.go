package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTenureMonths(t *testing.T) {
	tests := []struct {
		raw    string
		months int
		ok     bool
	}{
		{"3 years", 36, true},
		{"3 Years", 36, true},
		{"1 yr", 12, true},
		{"2.5 years", 30, true},
		{"36 months", 36, true},
		{"36 Months", 36, true},
		{"18 m", 18, true},
		{"6 mo", 6, true},
		{"36", 36, true},
		{"approx 48.4", 48, true},
		{"", 0, false},
		{"   ", 0, false},
		{"not stated", 0, false},
	}
	for _, tc := range tests {
		months, ok := TenureMonths(tc.raw)
		assert.Equal(t, tc.ok, ok, "input %q", tc.raw)
		assert.Equal(t, tc.months, months, "input %q", tc.raw)
	}
}
