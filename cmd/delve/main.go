// Command delve runs one game command against the saved world and exits.
//
//	delve init
//	delve enter door_0_root
//	delve op MOV
//	delve status
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tatianab/delve/internal/app"
	"github.com/tatianab/delve/internal/command"
	"github.com/tatianab/delve/internal/config"
	"github.com/tatianab/delve/internal/engine"
	"github.com/tatianab/delve/internal/render"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout))
}

func run(ctx context.Context, args []string, stdout io.Writer) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintf(stdout, "usage: delve <command> [argument]\n\n%s", command.Help())
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}
	log, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		return 1
	}
	a, err := app.Open(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening game: %v\n", err)
		return 1
	}
	defer a.Close()

	out, err := command.Execute(ctx, a.Engine, args)
	switch {
	case out.Status != nil:
		fmt.Fprintln(stdout, render.Status(*out.Status))
	case len(out.Result.Events) > 0:
		fmt.Fprintln(stdout, render.Result(out.Result))
	}
	if err != nil {
		fmt.Fprintln(stdout, render.Error(err))
		if code := exitCode(err); code != 0 {
			log.Debug("command failed", zap.Strings("args", args), zap.Error(err))
			return code
		}
	}
	return 0
}

// exitCode maps a command error to the process status. Locked doors, usage
// mistakes and storage failures are errors; the other rejections are part
// of play.
func exitCode(err error) int {
	var usage *command.UsageError
	if errors.As(err, &usage) || errors.Is(err, command.ErrUnknownCommand) {
		return 2
	}
	code, ok := engine.CodeOf(err)
	if !ok || code == engine.CodeLockedWithoutKey {
		return 1
	}
	return 0
}
