package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/creditlens/bureau-extract/internal/common"
	"github.com/creditlens/bureau-extract/internal/extract"
	"github.com/creditlens/bureau-extract/internal/history"
	"github.com/creditlens/bureau-extract/internal/interpreter"
	"github.com/creditlens/bureau-extract/internal/ocr"
	"github.com/creditlens/bureau-extract/internal/pipeline"
	"github.com/creditlens/bureau-extract/internal/reconcile"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	var (
		reprocess = flag.Bool("reprocess", false, "process documents already present in the history store")
		noLLM     = flag.Bool("no-llm", false, "skip the external interpreter")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		logger.Error("usage", "cmd", "bureaubatch [-reprocess] [-no-llm] <dir>")
		os.Exit(2)
	}
	root := flag.Arg(0)

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

	store, err := history.Open(cfg.History.DBPath, logger)
	if err != nil {
		logger.Error("open history store", "path", cfg.History.DBPath, "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("close history store", "error", cerr)
		}
	}()

	ocrx := ocr.NewExtractor(cfg.OCR, logger)
	var interp extract.Interpreter
	if !*noLLM && cfg.Interpreter.APIKey != "" {
		interp = interpreter.NewClient(cfg.Interpreter, logger)
	}
	p := pipeline.New(cfg.Pipeline, ocrx, interp, strategy, logger)

	ctx := context.Background()
	processed, skipped, failed := 0, 0, 0

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !supportedExt(path) {
			return nil
		}

		doc, err := loadDocument(ctx, ocrx, path)
		if err != nil {
			logger.Warn("batch.read_failed", "path", path, "error", err)
			failed++
			return nil
		}

		sha := history.TextSHA(doc.Text)
		if !*reprocess && doc.Text != "" {
			if seen, serr := store.SeenBefore(ctx, sha); serr == nil && seen {
				logger.Info("batch.skip_seen", "doc", doc.Name)
				skipped++
				return nil
			}
		}

		id := uuid.New().String()
		docCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		result, perr := p.Process(docCtx, doc)
		cancel()

		if perr != nil {
			failed++
			code := "ERROR"
			var ae *common.AppError
			if errors.As(perr, &ae) {
				code = ae.Code
			}
			if herr := store.RecordFailure(ctx, id, doc.Name, sha, code); herr != nil {
				logger.Warn("batch.record_failure", "doc", doc.Name, "error", herr)
			}
			logger.Error("batch.doc_failed", "doc", doc.Name, "code", code, "error", perr)
			return nil
		}

		if herr := store.RecordSuccess(ctx, id, doc.Name, sha, result); herr != nil {
			logger.Warn("batch.record_success", "doc", doc.Name, "error", herr)
		}
		processed++
		return nil
	})
	if walkErr != nil {
		logger.Error("batch.walk_failed", "root", root, "error", walkErr)
		os.Exit(1)
	}

	logger.Info("batch.done", "processed", processed, "skipped", skipped, "failed", failed)
	if failed > 0 && processed == 0 {
		os.Exit(1)
	}
}

func supportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".txt":
		return true
	}
	return false
}

func loadDocument(ctx context.Context, ocrx *ocr.Extractor, path string) (extract.Document, error) {
	name := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		res, err := ocrx.ExtractNativeText(ctx, path)
		if err != nil {
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
