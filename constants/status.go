package constants

import "strings"

// AccountStatus is the canonical lifecycle state of a credit account.
type AccountStatus string

// Stable values (these exact strings appear in the output schema).
const (
	StatusActive     AccountStatus = "Active"
	StatusClosed     AccountStatus = "Closed"
	StatusSettled    AccountStatus = "Settled"
	StatusWrittenOff AccountStatus = "WrittenOff"
	StatusUnknown    AccountStatus = "Unknown"
)

// CanonicalizeStatus maps the free-text status printed by a bureau to the
// closed status set. Order matters: "written off and settled" must resolve
// to WrittenOff, so write-off tokens are checked before settlement tokens.
func CanonicalizeStatus(input string) (AccountStatus, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return StatusUnknown, false
	}

	switch {
	case strings.Contains(normalized, "written off"),
		strings.Contains(normalized, "written-off"),
		strings.Contains(normalized, "writtenoff"),
		strings.Contains(normalized, "write off"),
		strings.Contains(normalized, "write-off"),
		strings.Contains(normalized, "wilful default"):
		return StatusWrittenOff, true
	case strings.Contains(normalized, "settled"),
		strings.Contains(normalized, "post (wo) settled"):
		return StatusSettled, true
	case strings.Contains(normalized, "closed"),
		strings.Contains(normalized, "paid"):
		return StatusClosed, true
	case strings.Contains(normalized, "active"),
		strings.Contains(normalized, "open"),
		strings.Contains(normalized, "current"):
		return StatusActive, true
	}
	return StatusUnknown, false
}
