package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/creditlens/bureau-extract/internal/common"
	"github.com/creditlens/bureau-extract/internal/extract"
	"github.com/creditlens/bureau-extract/internal/reconcile"
	"github.com/creditlens/bureau-extract/internal/report"
)

type MockRecognizer struct {
	mock.Mock
}

func (m *MockRecognizer) RecognizeText(ctx context.Context, doc extract.Document) (extract.TextResult, error) {
	args := m.Called(ctx, doc)
	return args.Get(0).(extract.TextResult), args.Error(1)
}

type MockInterpreter struct {
	mock.Mock
}

func (m *MockInterpreter) InterpretReportText(ctx context.Context, text string) (*report.ExtractionResult, error) {
	args := m.Called(ctx, text)
	if r := args.Get(0); r != nil {
		return r.(*report.ExtractionResult), args.Error(1)
	}
	return nil, args.Error(1)
}

const syntheticReport = `EXPERIAN CREDIT INFORMATION REPORT

Experian Credit Score 750

ACCOUNT INFORMATION

Lender   Account Type   Account Status   Sanction Amt / Highest Credit   Current Balance
HDFC Bank   Home Loan   Active   7,50,000   3,20,000
ICICI Bank   Credit Card   Active   1,00,000   45,000

Total Current Bal. amt 3,65,000

ENQUIRY INFORMATION

Member   Enquiry Date   Purpose   Amount
SBI   05-01-2024   Personal Loan   2,00,000

END OF REPORT`

func defaultPipeline(recognizer extract.Recognizer, interp extract.Interpreter) *Pipeline {
	cfg := common.PipelineConfig{MinSufficientChars: 300, MinReadableChars: 100}
	return New(cfg, recognizer, interp, reconcile.DefaultStrategy(), nil)
}

func TestProcessEndToEndRuleBased(t *testing.T) {
	p := defaultPipeline(nil, nil)
	result, err := p.Process(context.Background(), extract.Document{Name: "r.txt", Text: syntheticReport})
	require.NoError(t, err)

	require.NotNil(t, result.Score)
	assert.Equal(t, 750, *result.Score)

	require.Len(t, result.Loans, 2)
	home := result.Loans[0]
	assert.Equal(t, "Home Loan", home.Type)
	assert.Equal(t, "Active", string(home.Status))
	assert.Equal(t, 750000.0, home.Details.SanctionAmount)
	assert.Equal(t, 320000.0, home.Details.CurrentBalance)

	// the printed aggregate outranks the row resummation (which would be
	// 3,20,000 for non-card accounts only)
	assert.Equal(t, 365000.0, result.Totals.LoanOutstanding)
	// no anchor for sanctioned: rule sum of the non-card rows wins
	assert.Equal(t, 750000.0, result.Totals.LoanSanctioned)
	// the card row feeds the card totals, not the loan totals
	assert.Equal(t, 100000.0, result.Totals.CardLimit)
	assert.Equal(t, 45000.0, result.Totals.CardOutstanding)

	assert.Equal(t, 1, result.EnquiryCount)
	require.Len(t, result.Enquiries, 1)
	assert.Equal(t, "SBI", result.Enquiries[0].Institution)
}

func TestProcessUnreadableIsTerminal(t *testing.T) {
	interp := new(MockInterpreter)
	p := defaultPipeline(nil, interp)

	_, err := p.Process(context.Background(), extract.Document{Name: "tiny.txt", Text: "too short"})
	require.Error(t, err)
	assert.True(t, common.IsAppCode(err, common.CodeAcquisitionFailed))

	var ae *common.AppError
	require.ErrorAs(t, err, &ae)
	assert.NotEmpty(t, ae.Remediation)

	// unreadable input must never spend an interpreter call
	interp.AssertNotCalled(t, "InterpretReportText", mock.Anything, mock.Anything)
}

func TestProcessOCRFallbackAdopted(t *testing.T) {
	recognizer := new(MockRecognizer)
	recognizer.On("RecognizeText", mock.Anything, mock.Anything).
		Return(extract.TextResult{Text: syntheticReport, Method: "pdf-ocr", Pages: 2}, nil)

	p := defaultPipeline(recognizer, nil)
	result, err := p.Process(context.Background(), extract.Document{Name: "scan.pdf", Text: "scanned, no text layer"})
	require.NoError(t, err)
	require.NotNil(t, result.Score)
	assert.Equal(t, 750, *result.Score)
	recognizer.AssertExpectations(t)
}

func TestProcessOCRFailureIsSoft(t *testing.T) {
	recognizer := new(MockRecognizer)
	recognizer.On("RecognizeText", mock.Anything, mock.Anything).
		Return(extract.TextResult{}, errors.New("tesseract exploded"))

	// original text is short of sufficient but above the readable floor,
	// so the pipeline proceeds with what it has
	text := strings.Repeat("Credit report content line. ", 8) // ~220 chars
	p := defaultPipeline(recognizer, nil)
	result, err := p.Process(context.Background(), extract.Document{Name: "r.txt", Text: text})
	require.NoError(t, err)
	assert.Nil(t, result.Score)
	recognizer.AssertExpectations(t)
}

func TestProcessOCRNoGainKeepsOriginal(t *testing.T) {
	recognizer := new(MockRecognizer)
	recognizer.On("RecognizeText", mock.Anything, mock.Anything).
		Return(extract.TextResult{Text: "tiny"}, nil)

	text := strings.Repeat("Readable but thin content. ", 8)
	p := defaultPipeline(recognizer, nil)
	_, err := p.Process(context.Background(), extract.Document{Name: "r.txt", Text: text})
	require.NoError(t, err)
}

func TestProcessInterpreterSoleQualitativeSource(t *testing.T) {
	score := 640
	external := &report.ExtractionResult{
		Score: &score,
		Totals: report.Totals{
			LoanSanctioned:  500000,
			LoanOutstanding: 420000,
		},
		Loans: []report.LoanAccount{{
			Type:   "Personal Loan",
			Status: "Active",
			Line:   "Axis Bank | Personal Loan | Active",
			Details: report.LoanDetails{
				Lender:         "Axis Bank",
				SanctionAmount: 500000,
				CurrentBalance: 420000,
			},
		}},
		Enquiries: []report.EnquiryRecord{{Institution: "Axis Bank", Date: "01-04-2024"}},
	}

	interp := new(MockInterpreter)
	interp.On("InterpretReportText", mock.Anything, mock.Anything).Return(external, nil)

	// narrative text with no tables, no anchors, no score phrase
	text := strings.Repeat("This document describes the applicant's borrowing history in prose form. ", 6)
	p := defaultPipeline(nil, interp)
	result, err := p.Process(context.Background(), extract.Document{Name: "prose.txt", Text: text})
	require.NoError(t, err)

	require.NotNil(t, result.Score)
	assert.Equal(t, 640, *result.Score)
	require.Len(t, result.Loans, 1)
	assert.Equal(t, "Axis Bank", result.Loans[0].Details.Lender)
	assert.Equal(t, 420000.0, result.Totals.LoanOutstanding)
	assert.Equal(t, 1, result.EnquiryCount)
	interp.AssertExpectations(t)
}

func TestProcessInterpreterFailurePartialSuccess(t *testing.T) {
	interp := new(MockInterpreter)
	interp.On("InterpretReportText", mock.Anything, mock.Anything).
		Return(nil, errors.New("model timeout"))

	p := defaultPipeline(nil, interp)
	result, err := p.Process(context.Background(), extract.Document{Name: "r.txt", Text: syntheticReport})
	require.NoError(t, err, "rule candidates still produce a usable partial result")
	require.NotNil(t, result.Score)
	assert.Equal(t, 750, *result.Score)
	assert.Equal(t, 365000.0, result.Totals.LoanOutstanding)
}

func TestProcessInterpreterFailureNoCandidates(t *testing.T) {
	interp := new(MockInterpreter)
	interp.On("InterpretReportText", mock.Anything, mock.Anything).
		Return(nil, errors.New("model timeout"))

	text := strings.Repeat("Nothing extractable lives in this prose paragraph at all. ", 6)
	p := defaultPipeline(nil, interp)
	_, err := p.Process(context.Background(), extract.Document{Name: "r.txt", Text: text})
	require.Error(t, err)
	assert.True(t, common.IsAppCode(err, common.CodeNoUsableCandidates))
}

func TestProcessDeduplicatesRepeatedRows(t *testing.T) {
	doc := syntheticReport + "\n" // unchanged
	p := defaultPipeline(nil, nil)
	first, err := p.Process(context.Background(), extract.Document{Name: "a", Text: doc})
	require.NoError(t, err)

	// duplicate the data row: same Line means one loan survives
	dup := strings.Replace(doc,
		"HDFC Bank   Home Loan   Active   7,50,000   3,20,000",
		"HDFC Bank   Home Loan   Active   7,50,000   3,20,000\nHDFC Bank   Home Loan   Active   7,50,000   3,20,000", 1)
	second, err := p.Process(context.Background(), extract.Document{Name: "b", Text: dup})
	require.NoError(t, err)
	assert.Equal(t, len(first.Loans), len(second.Loans))
}
