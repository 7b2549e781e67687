package reconcile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allThree(anchor, ruleSum, external float64) Candidates {
	return Candidates{
		Anchor:   Candidate{Value: anchor, OK: true},
		RuleSum:  Candidate{Value: ruleSum, OK: true},
		External: Candidate{Value: external, OK: true},
	}
}

func TestDefaultPrecedenceAnchorWins(t *testing.T) {
	s := DefaultStrategy()
	got := s.Resolve(FieldLoanOutstanding, allThree(100, 200, 300), 0)
	assert.Equal(t, 100.0, got)
}

func TestDefaultPrecedenceFallsThrough(t *testing.T) {
	s := DefaultStrategy()

	c := allThree(100, 200, 300)
	c.Anchor.OK = false
	assert.Equal(t, 200.0, s.Resolve(FieldLoanOutstanding, c, 0))

	c.RuleSum.OK = false
	assert.Equal(t, 300.0, s.Resolve(FieldLoanOutstanding, c, 0))

	c.External.OK = false
	assert.Equal(t, 0.0, s.Resolve(FieldLoanOutstanding, c, 0))
}

func TestPresentZeroBeatsDefault(t *testing.T) {
	s := DefaultStrategy()
	c := Candidates{Anchor: Candidate{Value: 0, OK: true}}
	assert.Equal(t, 0.0, s.Resolve(FieldCardLimit, c, 42))
}

func TestPerFieldIndependence(t *testing.T) {
	s := DefaultStrategy()

	// anchor only for outstanding; sanctioned must still use its rule sum
	outstanding := Candidates{
		Anchor:  Candidate{Value: 500, OK: true},
		RuleSum: Candidate{Value: 450, OK: true},
	}
	sanctioned := Candidates{
		RuleSum: Candidate{Value: 900, OK: true},
	}
	assert.Equal(t, 500.0, s.Resolve(FieldLoanOutstanding, outstanding, 0))
	assert.Equal(t, 900.0, s.Resolve(FieldLoanSanctioned, sanctioned, 0))
}

func TestCustomOrderPerField(t *testing.T) {
	s, err := NewStrategy(map[string][]string{
		FieldCardLimit: {SourceExternal, SourceAnchor, SourceRuleSum},
	})
	require.NoError(t, err)

	c := allThree(100, 200, 300)
	assert.Equal(t, 300.0, s.Resolve(FieldCardLimit, c, 0))
	// unlisted fields keep the default order
	assert.Equal(t, 100.0, s.Resolve(FieldLoanSanctioned, c, 0))
}

func TestNewStrategyRejectsUnknownSource(t *testing.T) {
	_, err := NewStrategy(map[string][]string{FieldCardLimit: {"vibes"}})
	assert.Error(t, err)
}

func TestLoadStrategyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strategy.yaml")
	content := "loanOutstanding: [external, anchor, ruleSum]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := LoadStrategyFile(path)
	require.NoError(t, err)
	assert.Equal(t, 300.0, s.Resolve(FieldLoanOutstanding, allThree(100, 200, 300), 0))
}

func TestLoadStrategyFileMissing(t *testing.T) {
	_, err := LoadStrategyFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestCandidatesAny(t *testing.T) {
	assert.False(t, Candidates{}.Any())
	assert.True(t, Candidates{External: Candidate{Value: 1, OK: true}}.Any())
}
