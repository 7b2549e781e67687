package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/creditlens/bureau-extract/internal/common"
	"github.com/creditlens/bureau-extract/internal/export"
	"github.com/creditlens/bureau-extract/internal/extract"
	"github.com/creditlens/bureau-extract/internal/interpreter"
	"github.com/creditlens/bureau-extract/internal/ocr"
	"github.com/creditlens/bureau-extract/internal/pipeline"
	"github.com/creditlens/bureau-extract/internal/reconcile"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	var (
		xlsxOut = flag.String("xlsx", "", "also write an XLSX workbook to this path")
		noLLM   = flag.Bool("no-llm", false, "skip the external interpreter")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		logger.Error("usage", "cmd", "bureauparse [-xlsx out.xlsx] [-no-llm] <report.pdf|report.txt>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("config invalid", "error", err)
		os.Exit(1)
	}

	strategy := reconcile.DefaultStrategy()
	if cfg.Pipeline.StrategyFile != "" {
		var err error
		strategy, err = reconcile.LoadStrategyFile(cfg.Pipeline.StrategyFile)
		if err != nil {
			logger.Error("load strategy file", "path", cfg.Pipeline.StrategyFile, "error", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ocrx := ocr.NewExtractor(cfg.OCR, logger)

	var interp extract.Interpreter
	if !*noLLM {
		if cfg.Interpreter.APIKey == "" {
			logger.Warn("OPENAI_API_KEY not set; proceeding without the interpreter")
		} else {
			interp = interpreter.NewClient(cfg.Interpreter, logger)
		}
	}

	doc, err := loadDocument(ctx, ocrx, path)
	if err != nil {
		logger.Error("read document", "path", path, "error", err)
		os.Exit(1)
	}

	p := pipeline.New(cfg.Pipeline, ocrx, interp, strategy, logger)
	result, err := p.Process(ctx, doc)
	if err != nil {
		var ae *common.AppError
		if errors.As(err, &ae) && ae.Remediation != "" {
			fmt.Fprintln(os.Stderr, ae.Remediation)
		}
		logger.Error("extraction failed", "doc", doc.Name, "error", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if *xlsxOut != "" {
		wb, err := export.NewService(logger).WorkbookBytes(doc.Name, result)
		if err != nil {
			logger.Error("export workbook", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsxOut, wb, 0o644); err != nil {
			logger.Error("write workbook", "path", *xlsxOut, "error", err)
			os.Exit(1)
		}
		logger.Info("workbook written", "path", *xlsxOut)
	}
}

// loadDocument reads plain text directly and runs the native text layer for
// PDFs. OCR substitution, if needed, happens inside the pipeline.
func loadDocument(ctx context.Context, ocrx *ocr.Extractor, path string) (extract.Document, error) {
	name := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		res, err := ocrx.ExtractNativeText(ctx, path)
		if err != nil {
			// scanned PDFs often have no text layer; let OCR try later
			slog.Warn("native text extraction failed", "path", path, "error", err)
			return extract.Document{Name: name, Path: path}, nil
		}
		return extract.Document{Name: name, Path: path, Text: res.Text}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return extract.Document{}, err
	}
	return extract.Document{Name: name, Path: path, Text: string(b)}, nil
}
