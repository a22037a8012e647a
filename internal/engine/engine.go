// Package engine runs delve commands against the persisted world.
//
// Every command follows the same cycle: load the records it needs, mutate
// copies of them, and commit all writes in one unit of work. A command that
// is rejected returns before committing, so the stored world is unchanged.
package engine

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/tatianab/delve/internal/catalog"
	"github.com/tatianab/delve/internal/generate"
	"github.com/tatianab/delve/internal/models"
	"github.com/tatianab/delve/internal/runlog"
	"github.com/tatianab/delve/internal/store"
	"go.uber.org/zap"
)

// DefaultMaxDepth is the depth whose boss kill wins the run.
const DefaultMaxDepth = 100

// RunRecorder receives an entry for every finished run.
type RunRecorder interface {
	Append(ctx context.Context, e runlog.Entry) error
}

// Engine executes commands. It is not safe for concurrent use: callers issue
// one command at a time.
type Engine struct {
	store    *store.Store
	catalog  *catalog.Catalog
	gen      *generate.Generator
	rng      *rand.Rand
	log      *zap.Logger
	runs     RunRecorder
	seed     string
	maxDepth int
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the source for combat, ambush and drop rolls.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithCatalog replaces the built-in content tables.
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// WithMaxDepth sets the final depth.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) { e.maxDepth = depth }
}

// WithRunLog records finished runs.
func WithRunLog(r RunRecorder) Option {
	return func(e *Engine) { e.runs = r }
}

// New returns an engine over s generating rooms from seed.
func New(s *store.Store, seed string, opts ...Option) *Engine {
	e := &Engine{
		store:    s,
		catalog:  catalog.Default(),
		log:      zap.NewNop(),
		seed:     seed,
		maxDepth: DefaultMaxDepth,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(newSeed()))
	}
	e.gen = &generate.Generator{Catalog: e.catalog, Seed: seed, MaxDepth: e.maxDepth}
	return e
}

func newSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// Catalog returns the content tables in use.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// MaxDepth returns the final depth.
func (e *Engine) MaxDepth() int { return e.maxDepth }

// Outcome says whether a command ended the run.
type Outcome string

const (
	Continue Outcome = "continue"
	Victory  Outcome = "victory"
	Defeat   Outcome = "defeat"
)

// EventKind tags a narrative line for presentation.
type EventKind string

const (
	EventInfo    EventKind = "info"
	EventGain    EventKind = "gain"
	EventDamage  EventKind = "damage"
	EventCombat  EventKind = "combat"
	EventWarning EventKind = "warning"
	EventLevel   EventKind = "level"
	EventSystem  EventKind = "system"
)

// Event is one line of what a command did.
type Event struct {
	Kind EventKind
	Text string
}

// Result is what a command reports back.
type Result struct {
	Events  []Event
	Outcome Outcome
}

// world is the state one command works on. Commands mutate it freely and
// commit it at the end.
type world struct {
	global   models.GlobalProgress
	player   models.PlayerState
	combat   models.CombatState
	inCombat bool
	room     models.RoomRecord
	res      Result
}

func (w *world) say(kind EventKind, format string, args ...any) {
	w.res.Events = append(w.res.Events, Event{Kind: kind, Text: fmt.Sprintf(format, args...)})
}

// load reads the world for a command that needs an active run.
func (e *Engine) load(ctx context.Context) (*world, error) {
	g, err := e.store.Global(ctx)
	if err != nil {
		return nil, err
	}
	p, ok, err := e.store.Player(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newError(CodeInvalidReference, "no active run; use init")
	}
	w := &world{global: g, player: p, res: Result{Outcome: Continue}}

	c, ok, err := e.store.Combat(ctx)
	if err != nil {
		return nil, err
	}
	if ok && c.Active {
		w.combat, w.inCombat = c, true
	}

	room, ok, err := e.store.Room(ctx, p.RoomPath)
	if err != nil {
		return nil, err
	}
	if !ok {
		e.log.Warn("room record missing, regenerating", zap.String("path", p.RoomPath))
		room = e.gen.Room(e.request(&p, p.RoomPath, catalog.DoorRoot, false))
	}
	w.room = room
	return w, nil
}

func (e *Engine) request(p *models.PlayerState, path, doorType string, backtrack bool) generate.Request {
	return generate.Request{
		Path:       path,
		DoorType:   doorType,
		Backtrack:  backtrack,
		Depth:      p.Depth,
		Corruption: p.Corruption,
		Symlinks:   p.Symlinks,
	}
}

// regenerate replaces the current room with a fresh generation of path.
func (e *Engine) regenerate(w *world, path, doorType string, backtrack bool) {
	w.room = e.gen.Room(e.request(&w.player, path, doorType, backtrack))
	e.log.Debug("room generated",
		zap.String("path", path),
		zap.String("door_type", doorType),
		zap.Int("depth", w.player.Depth),
		zap.Bool("backtrack", backtrack),
		zap.Int("mobs", len(w.room.Mobs)),
		zap.Int("items", len(w.room.Items)),
		zap.Int("doors", len(w.room.Doors)),
	)
	for _, m := range w.room.Mobs {
		if strings.HasPrefix(m.Name, generate.LeakMarker) {
			w.say(EventWarning, "Signal leakage detected: %s slipped through a symlink.", m.Name)
		}
	}
}

// commit writes the whole world back.
func (e *Engine) commit(ctx context.Context, w *world) (Result, error) {
	tx := e.store.Begin()
	tx.PutGlobal(w.global)
	tx.PutPlayer(w.player)
	tx.PutRoom(w.room)
	if w.inCombat {
		tx.PutCombat(w.combat)
	} else {
		tx.DeleteCombat()
	}
	if err := tx.Commit(ctx); err != nil {
		return Result{}, err
	}
	return w.res, nil
}

// terminate ends the run: the run's XP is banked and the player and combat
// records are removed in one commit.
func (e *Engine) terminate(ctx context.Context, w *world, outcome Outcome, cause string) (Result, error) {
	banked := w.player.XP
	w.global.TotalXP += banked
	w.inCombat = false
	w.res.Outcome = outcome

	if outcome == Victory {
		w.say(EventSystem, "CORE BREACH SUCCESSFUL: the labyrinth is conquered.")
	} else {
		w.say(EventSystem, "RUN TERMINATED: %s.", cause)
	}
	w.say(EventGain, "%d XP banked (global total %d).", banked, w.global.TotalXP)

	tx := e.store.Begin()
	tx.PutGlobal(w.global)
	tx.PutRoom(w.room)
	tx.DeletePlayer()
	tx.DeleteCombat()
	if err := tx.Commit(ctx); err != nil {
		return Result{}, err
	}

	e.log.Info("run ended",
		zap.String("outcome", string(outcome)),
		zap.String("cause", cause),
		zap.Int("depth", w.player.Depth),
		zap.Int("level", w.player.Level),
		zap.Int("xp_banked", banked),
	)
	if e.runs != nil {
		entry := runlog.Entry{
			Time:       e.now().UTC(),
			Seed:       e.seed,
			Outcome:    string(outcome),
			Cause:      cause,
			Depth:      w.player.Depth,
			Level:      w.player.Level,
			Class:      w.player.Class,
			XPBanked:   banked,
			BattlesWon: w.player.BattlesWon,
		}
		if err := e.runs.Append(ctx, entry); err != nil {
			e.log.Warn("run log append failed", zap.Error(err))
		}
	}

	return w.res, &Error{
		Code:     CodeTerminalCondition,
		Message:  fmt.Sprintf("run ended in %s: %s", outcome, cause),
		Metadata: map[string]string{"outcome": string(outcome), "cause": cause},
	}
}
