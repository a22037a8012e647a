// Package command maps command words to engine operations. The CLI, the
// interactive shell and the autoplay runner all dispatch through it.
package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tatianab/delve/internal/engine"
)

// Output is what a command produced. Status is set only by status.
type Output struct {
	Result engine.Result
	Status *engine.Status
}

// ErrUnknownCommand is returned for a command word nothing handles.
var ErrUnknownCommand = errors.New("unknown command")

// UsageError reports a malformed command line.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string { return "usage: " + e.Usage }

// Def describes one command.
type Def struct {
	Name string
	Arg  string // empty when the command takes no argument
	Help string
	run  func(ctx context.Context, e *engine.Engine, arg string) (Output, error)
}

// Usage is the one-line synopsis.
func (s Def) Usage() string {
	if s.Arg == "" {
		return s.Name
	}
	return s.Name + " <" + s.Arg + ">"
}

// Defs lists every command in help order.
var Defs []Def

func init() {
	noArg := func(name, help string, pick func(*engine.Engine) func(context.Context) (engine.Result, error)) Def {
		return Def{Name: name, Help: help, run: func(ctx context.Context, e *engine.Engine, _ string) (Output, error) {
			res, err := pick(e)(ctx)
			return Output{Result: res}, err
		}}
	}
	withArg := func(name, arg, help string, pick func(*engine.Engine) func(context.Context, string) (engine.Result, error)) Def {
		return Def{Name: name, Arg: arg, Help: help, run: func(ctx context.Context, e *engine.Engine, a string) (Output, error) {
			res, err := pick(e)(ctx, a)
			return Output{Result: res}, err
		}}
	}
	Defs = []Def{
		noArg("init", "start a new run", func(e *engine.Engine) func(context.Context) (engine.Result, error) { return e.Init }),
		{Name: "status", Help: "show the run, the room and global progress", run: func(ctx context.Context, e *engine.Engine, _ string) (Output, error) {
			st, err := e.Status(ctx)
			if err != nil {
				return Output{}, err
			}
			return Output{Result: engine.Result{Outcome: engine.Continue}, Status: &st}, nil
		}},
		withArg("enter", "door", "walk through a door", func(e *engine.Engine) func(context.Context, string) (engine.Result, error) { return e.Enter }),
		noArg("back", "return to the previous room", func(e *engine.Engine) func(context.Context) (engine.Result, error) { return e.Back }),
		withArg("attack", "mob", "start a fight", func(e *engine.Engine) func(context.Context, string) (engine.Result, error) { return e.Attack }),
		withArg("op", "opcode", "play a combat opcode: MOV NOP ADD XOR LOCK", func(e *engine.Engine) func(context.Context, string) (engine.Result, error) { return e.Op }),
		noArg("purge", "execute a mob under 25% hp for all run XP", func(e *engine.Engine) func(context.Context) (engine.Result, error) { return e.Purge }),
		noArg("overclock", "2000 XP: freeze the enemy for 10 turns", func(e *engine.Engine) func(context.Context) (engine.Result, error) { return e.Overclock }),
		withArg("loot", "item", "pick up an item", func(e *engine.Engine) func(context.Context, string) (engine.Result, error) { return e.Loot }),
		withArg("use", "item", "consume an inventory item", func(e *engine.Engine) func(context.Context, string) (engine.Result, error) { return e.Use }),
		noArg("defrag", "50 XP: clear fragmentation", func(e *engine.Engine) func(context.Context) (engine.Result, error) { return e.Defrag }),
		noArg("symlink", "200 XP: shortcut from start to this room", func(e *engine.Engine) func(context.Context) (engine.Result, error) { return e.Symlink }),
		noArg("sell-key", "trade a key for 50 XP", func(e *engine.Engine) func(context.Context) (engine.Result, error) { return e.SellKey }),
		noArg("buy-key", "trade 100 XP for a key", func(e *engine.Engine) func(context.Context) (engine.Result, error) { return e.BuyKey }),
		withArg("upgrade", "stat", "200 global XP: raise base hp, atk, crit or dodge", func(e *engine.Engine) func(context.Context, string) (engine.Result, error) { return e.Upgrade }),
		noArg("panic", "500 XP: jump back to the start room", func(e *engine.Engine) func(context.Context) (engine.Result, error) { return e.Panic }),
	}
}

// aliases maps alternative spellings onto command names.
var aliases = map[string]string{
	"purge-cmd": "purge",
	"skill":     "symlink",
	"backtrack": "back",
}

// Lookup finds a command by name. Leading dashes are ignored, so "--enter"
// works like "enter".
func Lookup(name string) (Def, bool) {
	name = strings.ToLower(strings.TrimLeft(name, "-"))
	if a, ok := aliases[name]; ok {
		name = a
	}
	for _, s := range Defs {
		if s.Name == name {
			return s, true
		}
	}
	return Def{}, false
}

// Execute runs the command named by args[0].
func Execute(ctx context.Context, e *engine.Engine, args []string) (Output, error) {
	if len(args) == 0 {
		return Output{}, &UsageError{Usage: "<command> [argument]"}
	}
	def, ok := Lookup(args[0])
	if !ok {
		return Output{}, fmt.Errorf("%w %q", ErrUnknownCommand, args[0])
	}
	rest := args[1:]
	if def.Name == "symlink" && len(rest) == 1 && strings.EqualFold(rest[0], "symlink") {
		rest = nil
	}
	var arg string
	switch {
	case def.Arg == "" && len(rest) != 0, def.Arg != "" && len(rest) != 1:
		return Output{}, &UsageError{Usage: def.Usage()}
	case def.Arg != "":
		arg = rest[0]
	}
	return def.run(ctx, e, arg)
}

// Line splits and executes a typed command line.
func Line(ctx context.Context, e *engine.Engine, line string) (Output, error) {
	return Execute(ctx, e, strings.Fields(line))
}

// Help lists every command with its synopsis.
func Help() string {
	var b strings.Builder
	for _, s := range Defs {
		fmt.Fprintf(&b, "  %-18s %s\n", s.Usage(), s.Help)
	}
	return b.String()
}
