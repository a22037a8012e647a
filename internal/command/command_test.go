package command

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/tatianab/delve/internal/engine"
	"github.com/tatianab/delve/internal/store"
	"go.uber.org/zap"
)

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return engine.New(store.New(store.NewMemory()), "GEMINI_V1",
		engine.WithRand(rand.New(rand.NewSource(3))),
		engine.WithLogger(zap.NewNop()),
	)
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"enter", "--enter", "ENTER", "backtrack", "skill", "purge-cmd"} {
		if _, ok := Lookup(name); !ok {
			t.Errorf("Lookup(%q) failed", name)
		}
	}
	if _, ok := Lookup("fly"); ok {
		t.Error("Lookup(fly) succeeded")
	}
}

func TestExecuteUsage(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	for _, args := range [][]string{
		nil,
		{"enter"},
		{"enter", "a", "b"},
		{"defrag", "now"},
	} {
		_, err := Execute(ctx, e, args)
		var usage *UsageError
		if !errors.As(err, &usage) {
			t.Errorf("Execute(%q) error = %v; want usage error", args, err)
		}
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	_, err := Execute(context.Background(), newEngine(t), []string{"fly"})
	if !errors.Is(err, ErrUnknownCommand) || !strings.Contains(err.Error(), "fly") {
		t.Errorf("error = %v", err)
	}
}

func TestExecuteInitThenStatus(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	out, err := Line(ctx, e, "init")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if len(out.Result.Events) == 0 || out.Status != nil {
		t.Errorf("init output = %+v", out)
	}

	out, err = Line(ctx, e, "  status ")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if out.Status == nil || out.Status.Player == nil {
		t.Fatalf("status output = %+v", out)
	}
	if out.Status.Player.Depth != 0 {
		t.Errorf("depth = %d", out.Status.Player.Depth)
	}
}

func TestExecuteSkillSymlinkForm(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	if _, err := Line(ctx, e, "init"); err != nil {
		t.Fatal(err)
	}
	// Rejected in the start room either way, but parsed as symlink.
	_, err := Line(ctx, e, "skill symlink")
	var usage *UsageError
	if errors.As(err, &usage) {
		t.Fatalf("skill symlink parsed as usage error: %v", err)
	}
	if code, _ := engine.CodeOf(err); code != engine.CodeInvalidReference {
		t.Errorf("error = %v; want an engine error", err)
	}
}

func TestEngineErrorsPassThrough(t *testing.T) {
	_, err := Line(context.Background(), newEngine(t), "enter door_0_root")
	if !errors.Is(err, engine.ErrInvalidReference) {
		t.Errorf("error = %v; want invalid reference", err)
	}
}

func TestHelpListsEveryCommand(t *testing.T) {
	h := Help()
	for _, s := range Defs {
		if !strings.Contains(h, s.Usage()) {
			t.Errorf("help lacks %q", s.Usage())
		}
	}
}
