// Package interpreter implements the external free-form interpreter
// collaborator on an OpenAI-style chat/completions endpoint. Responses are
// sanitized leniently, validated strictly against the report schema, and
// memoized by content hash so re-processing the same document does not
// re-spend a model call.
package interpreter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/creditlens/bureau-extract/constants"
	"github.com/creditlens/bureau-extract/internal/common"
	"github.com/creditlens/bureau-extract/internal/report"
)

type Client struct {
	cfg    common.InterpreterConfig
	http   *http.Client
	cache  *gocache.Cache
	logger *slog.Logger
}

func NewClient(cfg common.InterpreterConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 15 * time.Minute
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		cache:  gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		logger: logger,
	}
}

// InterpretReportText sends the report text to the model and returns the
// canonical-schema candidate. Any failure here is soft at the pipeline
// level; the caller proceeds without an external candidate.
func (c *Client) InterpretReportText(ctx context.Context, text string) (*report.ExtractionResult, error) {
	key := textHash(text)
	if cached, ok := c.cache.Get(key); ok {
		c.logger.Debug("interp.extract.cache_hit", "key", key[:12])
		return cached.(*report.ExtractionResult), nil
	}

	start := time.Now()
	c.logger.Info("interp.extract.start",
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(text),
	)

	schema := buildReportJSONSchema()
	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": buildSystemPrompt()},
			{"role": "user", "content": buildUserPrompt(text)},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(schema)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	raw, status, err := sendJSON(ctx, c.http, endpoint, body, headers, c.logger)
	if err != nil {
		return nil, common.NewAppError(common.CodeInterpreterFailed,
			fmt.Sprintf("interpreter request failed (status %d)", status), err)
	}

	content, err := chatContent(raw)
	if err != nil {
		return nil, common.NewAppError(common.CodeInterpreterFailed, "interpreter response unreadable", err)
	}

	sanitized, _, err := sanitizeReportJSON([]byte(content), c.logger)
	if err != nil {
		return nil, common.NewAppError(common.CodeInterpreterFailed, "interpreter returned non-JSON content", err)
	}
	if err := validateAgainstSchema(schema, sanitized); err != nil {
		return nil, common.NewAppError(common.CodeInterpreterFailed, "interpreter output does not conform to schema", err)
	}

	var result report.ExtractionResult
	if err := json.Unmarshal(sanitized, &result); err != nil {
		return nil, common.NewAppError(common.CodeInterpreterFailed, "interpreter output failed to decode", err)
	}
	normalizeLoans(&result)

	c.logger.Info("interp.extract.ok",
		"elapsed_ms", time.Since(start).Milliseconds(),
		"loans", len(result.Loans),
		"enquiries", len(result.Enquiries),
		"score", result.ScoreValue(),
	)

	c.cache.Set(key, &result, gocache.DefaultExpiration)
	return &result, nil
}

// normalizeLoans enforces the closed status set on whatever wording the
// model used and backfills missing summary lines.
func normalizeLoans(r *report.ExtractionResult) {
	for i := range r.Loans {
		l := &r.Loans[i]
		if status, ok := constants.CanonicalizeStatus(string(l.Status)); ok || l.Status == "" {
			l.Status = status
		}
		if l.Line == "" {
			l.Line = strings.TrimSpace(strings.Join([]string{l.Details.Lender, l.Type, string(l.Status)}, " | "))
		}
	}
}

// chatContent digs the message text out of a chat/completions response.
func chatContent(raw []byte) (string, error) {
	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty choices")
	}
	return stripCodeFence(resp.Choices[0].Message.Content), nil
}

func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	}
	return strings.TrimSpace(trimmed)
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

func textHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
