// Package autoplay drives the engine without a human: a strategist picks each
// command and a Runner plays whole runs and tallies how they ended.
package autoplay

import (
	"context"
	"errors"
	"fmt"

	"github.com/tatianab/delve/internal/command"
	"github.com/tatianab/delve/internal/engine"
	"go.uber.org/zap"
)

// Strategist chooses the next command for the given world.
type Strategist interface {
	Next(ctx context.Context, st engine.Status) ([]string, error)
}

// Defaults for Runner.
const (
	DefaultMaxSteps   = 20000
	DefaultMaxRejects = 5
)

// Step is one played command, reported to Runner.OnStep.
type Step struct {
	Run  int
	Args []string
	Out  command.Output
	Err  error
}

// Runner plays runs with a strategist.
type Runner struct {
	Engine     *engine.Engine
	Strategist Strategist
	Log        *zap.Logger

	// MaxSteps caps the commands of one run; MaxRejects caps consecutive
	// rejected commands. A run hitting either is counted as stalled.
	MaxSteps   int
	MaxRejects int

	OnStep func(Step)
}

// Report tallies played runs.
type Report struct {
	Runs      int
	Victories int
	Defeats   int
	Stalled   int
	MaxDepth  int
}

// Run plays the given number of runs. It stops early only when ctx is done
// or storage fails.
func (r *Runner) Run(ctx context.Context, runs int) (Report, error) {
	var rep Report
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	for i := 1; i <= runs; i++ {
		outcome, depth, err := r.play(ctx, i)
		if err != nil {
			return rep, fmt.Errorf("run %d: %w", i, err)
		}
		rep.Runs++
		rep.MaxDepth = max(rep.MaxDepth, depth)
		switch outcome {
		case engine.Victory:
			rep.Victories++
		case engine.Defeat:
			rep.Defeats++
		default:
			rep.Stalled++
		}
		log.Info("run finished", zap.Int("run", i), zap.String("outcome", string(outcome)), zap.Int("depth", depth))
	}
	return rep, nil
}

func (r *Runner) play(ctx context.Context, run int) (engine.Outcome, int, error) {
	maxSteps, maxRejects := r.MaxSteps, r.MaxRejects
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	if maxRejects <= 0 {
		maxRejects = DefaultMaxRejects
	}

	if _, err := r.Engine.Init(ctx); err != nil {
		return "", 0, err
	}
	depth, rejects := 0, 0
	for range maxSteps {
		if err := ctx.Err(); err != nil {
			return "", depth, err
		}
		st, err := r.Engine.Status(ctx)
		if err != nil {
			return "", depth, err
		}
		if st.Player != nil {
			depth = max(depth, st.Player.Depth)
		}
		args, err := r.Strategist.Next(ctx, st)
		if err != nil {
			return "", depth, err
		}
		out, err := command.Execute(ctx, r.Engine, args)
		if r.OnStep != nil {
			r.OnStep(Step{Run: run, Args: args, Out: out, Err: err})
		}
		if err == nil {
			rejects = 0
			continue
		}
		if errors.Is(err, engine.ErrTerminalCondition) {
			return out.Result.Outcome, depth, nil
		}
		var usage *command.UsageError
		if _, ok := engine.CodeOf(err); !ok && !errors.As(err, &usage) && !errors.Is(err, command.ErrUnknownCommand) {
			return "", depth, err
		}
		if rejects++; rejects >= maxRejects {
			return Stalled, depth, nil
		}
	}
	return Stalled, depth, nil
}

// Stalled marks a run abandoned by the Runner.
const Stalled engine.Outcome = "stalled"
