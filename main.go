package main

import (
	"os"
	"path/filepath"

	"github.com/tatianab/delve/internal/app"
	"github.com/tatianab/delve/internal/config"
	"github.com/tatianab/delve/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error loading config: %v", err)
	}

	// The shell owns the terminal, so logs go to a file beside the records.
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		config.Exitf("Error creating %s: %v", cfg.DataDir, err)
	}
	log, err := config.NewLoggerTo(cfg.LogLevel, "json", filepath.Join(cfg.DataDir, "delve.log"))
	if err != nil {
		config.Exitf("Error creating logger: %v", err)
	}

	a, err := app.Open(cfg, log)
	if err != nil {
		config.Exitf("Error opening game: %v", err)
	}
	defer a.Close()

	if err := tui.Run(a.Engine); err != nil {
		a.Close()
		config.Exitf("Error running TUI: %v", err)
	}
}
