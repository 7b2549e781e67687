package parse

import (
	"regexp"
	"strconv"
)

const (
	// Bureau scores live in this band; anything outside is a page number or
	// an amount fragment.
	ScoreMin = 300
	ScoreMax = 900

	// How far into the document the bare-3-digit fallback is allowed to
	// look. Scores print in the report masthead; deeper matches are noise.
	scoreTopWindow = 600
)

var (
	bureauScorePattern = regexp.MustCompile(`(?i)(?:experian|cibil|crif|equifax|transunion)[^0-9]{0,60}?\b(\d{3})\b`)
	creditScorePattern = regexp.MustCompile(`(?i)credit\s*score[^0-9]{0,60}?\b(\d{3})\b`)
	bareScorePattern   = regexp.MustCompile(`\b(\d{3})\b`)
)

// Score extracts the bureau score. Strategies are tried in order: bureau
// name adjacency, "credit score" adjacency, then a bare 3-digit token near
// the top of the document. Only values in [ScoreMin, ScoreMax] are accepted
// and the first hit wins. nil means "not found" and is distinct from a
// legitimately low score.
func Score(text string) *int {
	for _, pattern := range []*regexp.Regexp{bureauScorePattern, creditScorePattern} {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			if v, ok := inScoreBand(m[1]); ok {
				return &v
			}
		}
	}
	window := text
	if len(window) > scoreTopWindow {
		window = window[:scoreTopWindow]
	}
	for _, m := range bareScorePattern.FindAllStringSubmatch(window, -1) {
		if v, ok := inScoreBand(m[1]); ok {
			return &v
		}
	}
	return nil
}

func inScoreBand(token string) (int, bool) {
	v, err := strconv.Atoi(token)
	if err != nil || v < ScoreMin || v > ScoreMax {
		return 0, false
	}
	return v, true
}
