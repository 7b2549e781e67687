// Package extract declares the collaborator contracts the pipeline depends
// on. Production implementations live in internal/ocr and
// internal/interpreter; tests inject stubs.
package extract

import (
	"context"
	"time"

	"github.com/creditlens/bureau-extract/internal/report"
)

// Document is one bureau report to process. Text is whatever the native
// text layer yielded (possibly empty for scans); Path points at the source
// file for collaborators that need to re-read it.
type Document struct {
	Name string
	Path string
	Text string
}

// TextSourcer is the best-effort native text layer: file -> text. May
// return very short or empty text for scanned documents.
type TextSourcer interface {
	ExtractNativeText(ctx context.Context, path string) (TextResult, error)
}

// Recognizer is the OCR fallback. It may fail or return inadequate text;
// the pipeline treats both as "no additional text gained".
type Recognizer interface {
	RecognizeText(ctx context.Context, doc Document) (TextResult, error)
}

type TextResult struct {
	Text     string
	Pages    int
	Method   string // "pdf-text" | "pdf-ocr"
	Duration time.Duration
	Warnings []string
}

// Interpreter is the external free-form interpreter. It returns a
// candidate in the canonical schema, used only at the lowest reconciliation
// precedence and as the sole source for qualitative fields when no
// rule-based table is segmentable.
type Interpreter interface {
	InterpretReportText(ctx context.Context, text string) (*report.ExtractionResult, error)
}
