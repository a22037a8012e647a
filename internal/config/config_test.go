package config

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DELVE_SEED", "DELVE_STORE", "DELVE_DATA_DIR", "DELVE_SQLITE_PATH", "DELVE_MAX_DEPTH", "DELVE_LOG_LEVEL", "DELVE_LOG_FORMAT", "GEMINI_API_KEY", "DELVE_GEMINI_MODEL"} {
		t.Setenv(key, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != "GEMINI_V1" {
		t.Errorf("Seed = %q", cfg.Seed)
	}
	if cfg.Store != "yaml" || cfg.DataDir != ".delve" || cfg.MaxDepth != 100 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.SQLitePath != filepath.Join(".delve", "delve.db") {
		t.Errorf("SQLitePath = %q", cfg.SQLitePath)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
	if err := cfg.RequireGemini(); err == nil {
		t.Error("RequireGemini succeeded without a key")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DELVE_SEED", "TEST_SEED")
	t.Setenv("DELVE_STORE", "sqlite")
	t.Setenv("DELVE_DATA_DIR", "/tmp/delve")
	t.Setenv("DELVE_SQLITE_PATH", "/tmp/other.db")
	t.Setenv("DELVE_MAX_DEPTH", "30")
	t.Setenv("GEMINI_API_KEY", "k")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != "TEST_SEED" || cfg.Store != "sqlite" || cfg.MaxDepth != 30 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.SQLitePath != "/tmp/other.db" {
		t.Errorf("SQLitePath = %q", cfg.SQLitePath)
	}
	if err := cfg.RequireGemini(); err != nil {
		t.Errorf("RequireGemini: %v", err)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"unknown store": {"DELVE_STORE", "redis"},
		"zero depth":    {"DELVE_MAX_DEPTH", "0"},
		"non-int depth": {"DELVE_MAX_DEPTH", "deep"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Errorf("%s=%s accepted", kv[0], kv[1])
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		log, err := NewLogger("debug", format)
		if err != nil {
			t.Fatalf("NewLogger(%s): %v", format, err)
		}
		if !log.Core().Enabled(zapcore.DebugLevel) {
			t.Errorf("%s logger: debug disabled", format)
		}
	}
	log, err := NewLogger("nonsense", "console")
	if err != nil {
		t.Fatal(err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("unknown level should fall back to info")
	}
}
