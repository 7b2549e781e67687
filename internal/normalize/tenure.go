package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	yearsPattern  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:years?|yrs?)\b`)
	monthsPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:months?|mon|mo|m)\b`)
	bareNumber    = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// TenureMonths normalizes a repayment-duration expression to whole months.
// "<n> years" is n*12, "<n> months"/"<n> m" is n, a bare integer is taken
// as months, and anything else falls back to the first embedded number
// rounded to nearest. ok is false when raw holds no recognizable number;
// callers keep the original string in that case rather than dropping it.
func TenureMonths(raw string) (months int, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if m := yearsPattern.FindStringSubmatch(s); m != nil {
		years, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return int(math.Round(years * 12)), true
		}
	}
	if m := monthsPattern.FindStringSubmatch(s); m != nil {
		n, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return int(math.Round(n)), true
		}
	}
	if m := bareNumber.FindString(s); m != "" {
		n, err := strconv.ParseFloat(m, 64)
		if err == nil {
			return int(math.Round(n)), true
		}
	}
	return 0, false
}
