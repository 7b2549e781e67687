// Package pipeline sequences one document's journey: sufficiency gate, OCR
// fallback, the parallel rule-based and interpreter extraction attempts,
// per-field reconciliation, and final assembly.
package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/creditlens/bureau-extract/constants"
	"github.com/creditlens/bureau-extract/internal/assemble"
	"github.com/creditlens/bureau-extract/internal/common"
	"github.com/creditlens/bureau-extract/internal/extract"
	"github.com/creditlens/bureau-extract/internal/parse"
	"github.com/creditlens/bureau-extract/internal/reconcile"
	"github.com/creditlens/bureau-extract/internal/report"
)

// Account-table section markers across the four bureau layouts.
var (
	accountStartMarkers = []string{
		"credit account information",
		"account information",
		"account details",
		"credit facility details",
		"loan details",
	}
	accountEndMarkers = []string{
		"enquiry information",
		"enquiries",
		"enquiry details",
		"credit enquiries",
		"end of report",
		"disclaimer",
	}
)

type Pipeline struct {
	cfg        common.PipelineConfig
	recognizer extract.Recognizer  // optional OCR fallback
	interp     extract.Interpreter // optional external interpreter
	strategy   reconcile.Strategy
	logger     *slog.Logger
}

func New(cfg common.PipelineConfig, recognizer extract.Recognizer, interp extract.Interpreter, strategy reconcile.Strategy, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MinSufficientChars <= 0 {
		cfg.MinSufficientChars = 300
	}
	if cfg.MinReadableChars <= 0 {
		cfg.MinReadableChars = 100
	}
	return &Pipeline{
		cfg:        cfg,
		recognizer: recognizer,
		interp:     interp,
		strategy:   strategy,
		logger:     logger,
	}
}

// IsSufficient reports whether text is long enough to skip the OCR
// fallback.
func (p *Pipeline) IsSufficient(text string) bool {
	return len(strings.TrimSpace(text)) >= p.cfg.MinSufficientChars
}

// IsUnreadable reports whether text is below the hard floor even after any
// OCR substitution. Unreadable documents terminate the pipeline.
func (p *Pipeline) IsUnreadable(text string) bool {
	return len(strings.TrimSpace(text)) < p.cfg.MinReadableChars
}

type interpOutcome struct {
	result *report.ExtractionResult
	err    error
}

// Process runs the full pipeline for one document. The returned result is
// complete with defaults; errors are limited to acquisition failure and the
// no-usable-candidates case.
func (p *Pipeline) Process(ctx context.Context, doc extract.Document) (*report.ExtractionResult, error) {
	ctx = common.WithRequestID(ctx, "")
	reqID := common.RequestIDFromContext(ctx)

	text := p.acquireText(ctx, doc, reqID)
	if p.IsUnreadable(text) {
		p.logger.Warn("pipeline.unreadable",
			"req_id", reqID, "doc", doc.Name, "text_len", len(strings.TrimSpace(text)))
		// terminal: do not spend an interpreter call on unreadable input
		return nil, common.NewAcquisitionFailure(len(strings.TrimSpace(text)))
	}

	// The interpreter call and the rule-based pass are both read-only over
	// the same immutable buffer, so they run concurrently. Reconciliation
	// waits for both.
	var interpCh chan interpOutcome
	if p.interp != nil {
		interpCh = make(chan interpOutcome, 1)
		go func() {
			res, err := p.interp.InterpretReportText(ctx, text)
			interpCh <- interpOutcome{result: res, err: err}
		}()
	}

	ruleLoans := p.extractAccounts(text)
	anchors := parse.AnchorTotals(text)
	score := parse.Score(text)
	enquiries := parse.Enquiries(text, p.logger)

	var external *report.ExtractionResult
	var interpErr error
	if interpCh != nil {
		outcome := <-interpCh
		external, interpErr = outcome.result, outcome.err
		if interpErr != nil {
			p.logger.Warn("pipeline.interpreter.failed", "req_id", reqID, "doc", doc.Name, "error", interpErr)
		}
	}

	loans := ruleLoans
	if len(loans) == 0 && external != nil {
		// no segmentable table: the interpreter is the sole source of the
		// qualitative fields
		loans = external.Loans
	}
	if len(enquiries) == 0 && external != nil {
		enquiries = external.Enquiries
	}
	if score == nil && external != nil {
		score = external.Score
	}

	totals := p.reconcileTotals(ruleLoans, anchors, external)

	if interpErr != nil && score == nil && len(anchors) == 0 && len(ruleLoans) == 0 {
		return nil, common.NewNoUsableCandidates(interpErr)
	}

	dpd := parse.DPDSummary(text, loans)
	enquiryCount := parse.EnquiryCount(text, enquiries)

	result := assemble.Assemble(loans, enquiries, score, enquiryCount, dpd, totals)
	p.logger.Info("pipeline.done",
		"req_id", reqID,
		"doc", doc.Name,
		"score", result.ScoreValue(),
		"loans", len(result.Loans),
		"enquiries", len(result.Enquiries),
		"dpd", result.DPD,
	)
	return result, nil
}

// acquireText applies the sufficiency gate: when the native text is too
// short the OCR collaborator gets one shot, and its output is adopted only
// when it beats what we already hold. OCR failure is never fatal here.
func (p *Pipeline) acquireText(ctx context.Context, doc extract.Document, reqID string) string {
	text := doc.Text
	if p.IsSufficient(text) || p.recognizer == nil {
		return text
	}

	p.logger.Info("pipeline.ocr.fallback",
		"req_id", reqID, "doc", doc.Name, "text_len", len(strings.TrimSpace(text)))

	res, err := p.recognizer.RecognizeText(ctx, doc)
	if err != nil {
		p.logger.Warn("pipeline.ocr.failed", "req_id", reqID, "doc", doc.Name, "error", err)
		return text
	}
	if len(strings.TrimSpace(res.Text)) > len(strings.TrimSpace(text)) {
		p.logger.Info("pipeline.ocr.adopted",
			"req_id", reqID, "doc", doc.Name,
			"method", res.Method, "pages", res.Pages, "text_len", len(res.Text))
		return res.Text
	}
	p.logger.Warn("pipeline.ocr.no_gain", "req_id", reqID, "doc", doc.Name)
	return text
}

func (p *Pipeline) extractAccounts(text string) []report.LoanAccount {
	for _, start := range accountStartMarkers {
		block := parse.Segment(text, start, accountEndMarkers)
		if block == "" {
			continue
		}
		if loans := parse.ExtractAccountRows(block, p.logger); len(loans) > 0 {
			return loans
		}
	}
	// some layouts print the table without a section heading
	return parse.ExtractAccountRows(text, p.logger)
}

// reconcileTotals builds the per-field candidate sets and applies the
// precedence strategy independently for each field.
func (p *Pipeline) reconcileTotals(ruleLoans []report.LoanAccount, anchors map[string]float64, external *report.ExtractionResult) report.Totals {
	var ruleSum report.Totals
	haveRuleSum := len(ruleLoans) > 0
	for _, l := range ruleLoans {
		if constants.IsCardType(l.Details.AccountType) {
			ruleSum.CardLimit += l.Details.SanctionAmount
			ruleSum.CardOutstanding += l.Details.CurrentBalance
		} else {
			ruleSum.LoanSanctioned += l.Details.SanctionAmount
			ruleSum.LoanOutstanding += l.Details.CurrentBalance
		}
	}

	candidatesFor := func(field string, ruleVal float64, extVal float64) reconcile.Candidates {
		c := reconcile.Candidates{}
		if v, ok := anchors[field]; ok {
			c.Anchor = reconcile.Candidate{Value: v, OK: true}
		}
		if haveRuleSum {
			c.RuleSum = reconcile.Candidate{Value: ruleVal, OK: true}
		}
		if external != nil {
			c.External = reconcile.Candidate{Value: extVal, OK: true}
		}
		return c
	}

	var ext report.Totals
	if external != nil {
		ext = external.Totals
	}

	return report.Totals{
		LoanSanctioned: p.strategy.Resolve(reconcile.FieldLoanSanctioned,
			candidatesFor(reconcile.FieldLoanSanctioned, ruleSum.LoanSanctioned, ext.LoanSanctioned), 0),
		LoanOutstanding: p.strategy.Resolve(reconcile.FieldLoanOutstanding,
			candidatesFor(reconcile.FieldLoanOutstanding, ruleSum.LoanOutstanding, ext.LoanOutstanding), 0),
		CardLimit: p.strategy.Resolve(reconcile.FieldCardLimit,
			candidatesFor(reconcile.FieldCardLimit, ruleSum.CardLimit, ext.CardLimit), 0),
		CardOutstanding: p.strategy.Resolve(reconcile.FieldCardOutstanding,
			candidatesFor(reconcile.FieldCardOutstanding, ruleSum.CardOutstanding, ext.CardOutstanding), 0),
	}
}
