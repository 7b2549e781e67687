package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditlens/bureau-extract/internal/report"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleResult() *report.ExtractionResult {
	score := 750
	return &report.ExtractionResult{
		Score:        &score,
		EnquiryCount: 3,
		DPD:          "0 - Clean",
		Loans: []report.LoanAccount{
			{Type: "Home Loan", Line: "HDFC Bank | Home Loan | Active"},
		},
		Enquiries: []report.EnquiryRecord{},
	}
}

func TestRecordSuccessAndSeenBefore(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sha := TextSHA("report body")

	seen, err := s.SeenBefore(ctx, sha)
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, s.RecordSuccess(ctx, "id-1", "report.pdf", sha, sampleResult()))

	seen, err = s.SeenBefore(ctx, sha)
	require.NoError(t, err)
	assert.True(t, seen)

	seen, err = s.SeenBefore(ctx, TextSHA("different body"))
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestFailuresDoNotCountAsSeen(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sha := TextSHA("unreadable scan")

	require.NoError(t, s.RecordFailure(ctx, "id-1", "scan.pdf", sha, "ACQUISITION_FAILED"))

	seen, err := s.SeenBefore(ctx, sha)
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestRecentReturnsEntries(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.RecordSuccess(ctx, "id-1", "a.pdf", TextSHA("a"), sampleResult()))
	require.NoError(t, s.RecordFailure(ctx, "id-2", "b.pdf", TextSHA("b"), "ACQUISITION_FAILED"))

	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byDoc := map[string]Entry{}
	for _, e := range entries {
		byDoc[e.DocName] = e
	}
	assert.Equal(t, 750, byDoc["a.pdf"].Score)
	assert.Equal(t, 1, byDoc["a.pdf"].LoanCount)
	assert.Equal(t, "", byDoc["a.pdf"].ErrorCode)
	assert.Equal(t, "ACQUISITION_FAILED", byDoc["b.pdf"].ErrorCode)
	assert.Equal(t, 0, byDoc["b.pdf"].Score)
}

func TestTextSHAStable(t *testing.T) {
	assert.Equal(t, TextSHA("same"), TextSHA("same"))
	assert.NotEqual(t, TextSHA("same"), TextSHA("other"))
}
