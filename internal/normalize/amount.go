// Package normalize turns the numeric and duration strings bureaus print
// into usable values. Bureau text is noisy: Indian digit grouping
// ("7,50,000"), currency markers ("Rs.", "INR", the rupee sign), and stray
// narrative around the digits are all common.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var amountPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// Amount extracts the first signed decimal number from raw and returns it
// as a non-negative float. Commas are discarded wholesale before matching,
// which handles Indian grouping without assuming 3-digit groups. A parse
// failure or a negative value yields 0, never NaN.
func Amount(raw string) float64 {
	if raw == "" {
		return 0
	}
	cleaned := strings.ReplaceAll(raw, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "₹", " ")
	match := amountPattern.FindString(cleaned)
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// AmountString formats a float back the way Amount parses it, so
// Amount(AmountString(v)) == v for finite non-negative v.
func AmountString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
