// Package ocr acquires plain text from bureau report PDFs: the embedded
// text layer via pdftotext when one exists, rasterization plus tesseract
// when it does not. It implements the pipeline's TextSourcer and Recognizer
// contracts.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/creditlens/bureau-extract/internal/common"
	"github.com/creditlens/bureau-extract/internal/extract"
)

type Extractor struct {
	cfg    common.OCRConfig
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg common.OCRConfig, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// WithRunner swaps the command runner; tests use this to stub binaries.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

// ExtractNativeText pulls the PDF's embedded text layer. Scanned reports
// yield little or nothing here; the caller decides whether to fall back.
func (e *Extractor) ExtractNativeText(ctx context.Context, path string) (extract.TextResult, error) {
	start := time.Now()
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return extract.TextResult{Warnings: []string{string(errb)}}, fmt.Errorf("pdftotext: %w", err)
	}
	text := string(out)
	return extract.TextResult{
		Text:     text,
		Pages:    1 + strings.Count(text, "\f"),
		Method:   "pdf-text",
		Duration: time.Since(start),
	}, nil
}

// RecognizeText rasterizes the PDF and OCRs each page. Per-page tesseract
// failures become warnings, not errors; the pipeline only cares whether the
// combined text beats what it already holds.
func (e *Extractor) RecognizeText(ctx context.Context, doc extract.Document) (extract.TextResult, error) {
	start := time.Now()

	tmpDir, err := os.MkdirTemp("", "bureau-ocr-*")
	if err != nil {
		return extract.TextResult{}, err
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			e.logger.Warn("ocr.tmpdir.remove_failed", "dir", tmpDir, "error", rmErr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", doc.Path, prefix)
	if err != nil {
		return extract.TextResult{Warnings: []string{string(errb)}}, fmt.Errorf("pdftoppm: %w", err)
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return extract.TextResult{}, fmt.Errorf("pdftoppm produced no images")
	}

	var b strings.Builder
	var warns []string
	for _, img := range matches {
		txt, pageWarns, ocrErr := e.tesseractPage(ctx, img)
		if ocrErr != nil {
			warns = append(warns, ocrErr.Error())
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\f\n")
		}
		b.WriteString(txt)
		warns = append(warns, pageWarns...)
	}

	return extract.TextResult{
		Text:     b.String(),
		Pages:    len(matches),
		Method:   "pdf-ocr",
		Duration: time.Since(start),
		Warnings: warns,
	}, nil
}

func (e *Extractor) tesseractPage(ctx context.Context, imgPath string) (string, []string, error) {
	args := []string{imgPath, "stdout", "-l", e.cfg.TesseractLang, "--psm", "6"}
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", nil, fmt.Errorf("tesseract %s: %w", filepath.Base(imgPath), err)
	}
	var warns []string
	if len(errb) > 0 {
		warns = append(warns, truncate(string(errb), 1<<10))
	}
	return string(out), warns, nil
}
