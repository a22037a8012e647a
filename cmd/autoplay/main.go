// Command autoplay plays runs unattended and prints a tally.
//
// By default it plays against an in-memory store so a saved game is left
// alone; -store yaml or -store sqlite plays against the configured records
// and banks XP there.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/tatianab/delve/internal/app"
	"github.com/tatianab/delve/internal/autoplay"
	"github.com/tatianab/delve/internal/config"
	"github.com/tatianab/delve/internal/render"
	"go.uber.org/zap"
)

func main() {
	runs := flag.Int("runs", 1, "number of runs to play")
	strategy := flag.String("strategy", "heuristic", "heuristic or gemini")
	storeKind := flag.String("store", "memory", "record store: memory, yaml or sqlite")
	maxSteps := flag.Int("max-steps", autoplay.DefaultMaxSteps, "command cap per run")
	verbose := flag.Bool("v", false, "print every command and its output")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Failed to load config: %v", err)
	}
	cfg.Store = *storeKind

	log, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		config.Exitf("Failed to create logger: %v", err)
	}
	a, err := app.Open(cfg, log)
	if err != nil {
		config.Exitf("Failed to open game: %v", err)
	}
	defer a.Close()

	var strat autoplay.Strategist = autoplay.NewHeuristic(a.Engine.Catalog())
	switch *strategy {
	case "heuristic":
	case "gemini":
		if err := cfg.RequireGemini(); err != nil {
			config.Exitf("%v", err)
		}
		g, err := autoplay.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, strat, log)
		if err != nil {
			config.Exitf("Failed to create Gemini strategist: %v", err)
		}
		defer g.Close()
		strat = g
	default:
		config.Exitf("unknown strategy %q", *strategy)
	}

	r := &autoplay.Runner{
		Engine:     a.Engine,
		Strategist: strat,
		Log:        log,
		MaxSteps:   *maxSteps,
	}
	if *verbose {
		r.OnStep = printStep
	}

	rep, err := r.Run(ctx, *runs)
	fmt.Printf("--- %d runs: %d victories, %d defeats, %d stalled, deepest %d ---\n",
		rep.Runs, rep.Victories, rep.Defeats, rep.Stalled, rep.MaxDepth)
	if err != nil {
		log.Error("autoplay stopped", zap.Error(err))
		a.Close()
		os.Exit(1)
	}
}

func printStep(s autoplay.Step) {
	fmt.Printf("[run %d] > %s\n", s.Run, strings.Join(s.Args, " "))
	switch {
	case s.Out.Status != nil:
		fmt.Println(render.Status(*s.Out.Status))
	case len(s.Out.Result.Events) > 0:
		fmt.Println(render.Result(s.Out.Result))
	}
	if s.Err != nil {
		fmt.Println(render.Error(s.Err))
	}
}
