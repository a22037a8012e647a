// Package config loads runtime settings from the environment and builds the
// process logger.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the application configuration.
type Config struct {
	Seed       string `env:"DELVE_SEED" envDefault:"GEMINI_V1"`
	Store      string `env:"DELVE_STORE" envDefault:"yaml"`
	DataDir    string `env:"DELVE_DATA_DIR" envDefault:".delve"`
	SQLitePath string `env:"DELVE_SQLITE_PATH"`
	MaxDepth   int    `env:"DELVE_MAX_DEPTH" envDefault:"100"`
	LogLevel   string `env:"DELVE_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"DELVE_LOG_FORMAT" envDefault:"console"`

	// GeminiAPIKey is only needed by the Gemini autoplay strategist.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"DELVE_GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.Store {
	case "yaml", "sqlite", "memory":
	default:
		return Config{}, fmt.Errorf("DELVE_STORE must be yaml, sqlite or memory, got %q", cfg.Store)
	}
	if cfg.MaxDepth <= 0 {
		return Config{}, fmt.Errorf("DELVE_MAX_DEPTH must be positive, got %d", cfg.MaxDepth)
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = filepath.Join(cfg.DataDir, "delve.db")
	}
	return cfg, nil
}

// RequireGemini reports an error when no Gemini API key is configured.
func (c Config) RequireGemini() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	return nil
}

// NewLogger builds a zap logger writing to stderr. format "json" selects the
// production encoder; anything else gets a compact coloured console.
func NewLogger(levelName, format string) (*zap.Logger, error) {
	return NewLoggerTo(levelName, format, "stderr")
}

// NewLoggerTo is NewLogger writing to the given zap output paths instead.
func NewLoggerTo(levelName, format string, paths ...string) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = paths
	zapCfg.ErrorOutputPaths = paths
	return zapCfg.Build()
}

// Exitf prints a formatted message to stderr and exits with status 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
