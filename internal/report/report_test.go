package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenureMarshalForms(t *testing.T) {
	b, err := json.Marshal(Tenure{Months: 36, Valid: true})
	require.NoError(t, err)
	assert.Equal(t, "36", string(b))

	b, err = json.Marshal(Tenure{Raw: "as per agreement"})
	require.NoError(t, err)
	assert.Equal(t, `"as per agreement"`, string(b))

	b, err = json.Marshal(Tenure{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestTenureOmittedWhenEmpty(t *testing.T) {
	b, err := json.Marshal(LoanDetails{Lender: "HDFC"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "repaymentTenure")

	b, err = json.Marshal(LoanDetails{Lender: "HDFC", RepaymentTenure: Tenure{Months: 24, Valid: true}})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"repaymentTenure":24`)
}

func TestTenureUnmarshal(t *testing.T) {
	var tn Tenure
	require.NoError(t, json.Unmarshal([]byte("48"), &tn))
	assert.True(t, tn.Valid)
	assert.Equal(t, 48, tn.Months)

	tn = Tenure{}
	require.NoError(t, json.Unmarshal([]byte(`"5 years"`), &tn))
	assert.False(t, tn.Valid)
	assert.Equal(t, "5 years", tn.Raw)

	tn = Tenure{Months: 12, Valid: true}
	require.NoError(t, json.Unmarshal([]byte("null"), &tn))
	assert.True(t, tn.IsZero())
}

func TestScoreValue(t *testing.T) {
	var r ExtractionResult
	assert.Equal(t, 0, r.ScoreValue())

	score := 742
	r.Score = &score
	assert.Equal(t, 742, r.ScoreValue())
}

func TestNilScoreMarshalsAsNull(t *testing.T) {
	b, err := json.Marshal(&ExtractionResult{DPD: "0 - Clean"})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"score":null`)
}
