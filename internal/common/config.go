package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Pipeline    PipelineConfig
	OCR         OCRConfig
	Interpreter InterpreterConfig
	History     HistoryConfig
}

// PipelineConfig holds extraction-pipeline configuration.
type PipelineConfig struct {
	// MinSufficientChars is the trimmed-text length below which the OCR
	// fallback is attempted. MinReadableChars is the floor below which the
	// document is rejected outright. Defaults match long-standing behavior;
	// change them only with a migration reason.
	MinSufficientChars int
	MinReadableChars   int
	StrategyFile       string
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Pdftotext     string
	Pdftoppm      string
	Tesseract     string
	TesseractLang string
	DPI           int
	MaxPages      int
}

// InterpreterConfig holds external-interpreter configuration.
type InterpreterConfig struct {
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float32
	Timeout     time.Duration
	CacheTTL    time.Duration
}

// HistoryConfig holds the audit-store configuration.
type HistoryConfig struct {
	DBPath string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			MinSufficientChars: getEnvAsInt("MIN_SUFFICIENT_CHARS", 300),
			MinReadableChars:   getEnvAsInt("MIN_READABLE_CHARS", 100),
			StrategyFile:       getEnv("RECONCILE_STRATEGY_FILE", ""),
		},
		OCR: OCRConfig{
			Pdftotext:     getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:      getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
			DPI:           getEnvAsInt("OCR_DPI", 300),
			MaxPages:      getEnvAsInt("OCR_MAX_PAGES", 0),
		},
		Interpreter: InterpreterConfig{
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
			CacheTTL:    getEnvAsDuration("INTERP_CACHE_TTL", 15*time.Minute),
		},
		History: HistoryConfig{
			DBPath: getEnv("HISTORY_DB_PATH", "./bureau-history.db"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Pipeline.MinReadableChars <= 0 || c.Pipeline.MinSufficientChars < c.Pipeline.MinReadableChars {
		return NewAppError(CodeConfig, "MIN_SUFFICIENT_CHARS must be >= MIN_READABLE_CHARS > 0", ErrInvalidInput)
	}
	if c.Interpreter.Timeout <= 0 {
		return NewAppError(CodeConfig, "OPENAI_TIMEOUT must be positive", ErrInvalidInput)
	}
	return nil
}
