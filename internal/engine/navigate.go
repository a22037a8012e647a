package engine

import (
	"context"
	"crypto/md5"
	"encoding/hex"

	"github.com/tatianab/delve/internal/catalog"
	"github.com/tatianab/delve/internal/models"
	"go.uber.org/zap"
)

const (
	ambushChance = 0.4
	panicCost    = 500
)

// Init starts a fresh run from global progress and generates the start room.
// Any run in progress is discarded without banking.
func (e *Engine) Init(ctx context.Context) (Result, error) {
	g, err := e.store.Global(ctx)
	if err != nil {
		return Result{}, err
	}
	w := &world{global: g, player: models.NewRun(g), res: Result{Outcome: Continue}}
	e.regenerate(w, models.StartRoom, catalog.DoorRoot, false)
	w.say(EventSystem, "Init. New run at depth 0 with %d HP, %d ATK.", w.player.HP, w.player.Attack)
	e.log.Info("run started", zap.String("seed", e.seed), zap.Int("hp", w.player.HP), zap.Int("atk", w.player.Attack))
	return e.commit(ctx, w)
}

// roomPath derives the path reached through door from the current room.
func roomPath(current, door string) string {
	sum := md5.Sum([]byte(current + door))
	return "room_" + hex.EncodeToString(sum[:])[:6]
}

// Enter walks through a door of the current room.
func (e *Engine) Enter(ctx context.Context, doorID string) (Result, error) {
	w, err := e.load(ctx)
	if err != nil {
		return Result{}, err
	}
	if w.inCombat {
		return Result{}, newError(CodeCombatActive, "cannot leave while fighting %s", w.combat.MobName)
	}
	i := w.room.FindDoor(doorID)
	if i < 0 {
		return Result{}, invalidRef("door", doorID)
	}
	door := w.room.Doors[i]
	p := &w.player

	if door.Locked {
		if p.Keys == 0 {
			return Result{}, &Error{
				Code:     CodeLockedWithoutKey,
				Message:  "door " + doorID + " is locked and you have no keys",
				Metadata: map[string]string{"door": doorID},
			}
		}
		p.Keys--
		w.say(EventInfo, "Unlocked %s. %d keys left.", doorID, p.Keys)
	}

	if len(w.room.Mobs) > 0 && e.rng.Float64() < ambushChance {
		mob := w.room.Mobs[0]
		p.HP -= mob.Attack
		w.say(EventDamage, "Intercepted by %s! Took %d DMG (%d/%d HP).", mob.Name, mob.Attack, max(p.HP, 0), p.MaxHP)
		if p.HP <= 0 {
			return e.terminate(ctx, w, Defeat, "ambushed by "+mob.Name)
		}
	}

	next, doorType := roomPath(p.RoomPath, doorID), door.LeadsTo
	if door.Shortcut {
		next, doorType = door.Target, catalog.DoorRoot
		if prior, ok, err := e.store.Room(ctx, next); err != nil {
			return Result{}, err
		} else if ok {
			doorType = prior.DoorType
		}
	}
	p.PathHistory = append(p.PathHistory, p.RoomPath)
	p.RoomPath = next
	p.Depth++
	e.regenerate(w, next, doorType, false)
	w.say(EventInfo, "Depth %d reached.", p.Depth)
	if d, ok := e.catalog.Door(doorType); ok {
		w.say(EventInfo, "%s", d.Desc)
	}
	return e.commit(ctx, w)
}

// Back returns to the previous room, regenerating it as a revisit.
func (e *Engine) Back(ctx context.Context) (Result, error) {
	w, err := e.load(ctx)
	if err != nil {
		return Result{}, err
	}
	if w.inCombat {
		return Result{}, newError(CodeCombatActive, "cannot retreat while fighting %s", w.combat.MobName)
	}
	p := &w.player
	if len(p.PathHistory) == 0 {
		return Result{}, newError(CodeInvalidReference, "no previous room to return to")
	}
	prev := p.PathHistory[len(p.PathHistory)-1]
	p.PathHistory = p.PathHistory[:len(p.PathHistory)-1]
	p.Depth = max(0, p.Depth-1)
	p.RoomPath = prev

	doorType := catalog.DoorRoot
	if prior, ok, err := e.store.Room(ctx, prev); err != nil {
		return Result{}, err
	} else if ok && prior.DoorType != "" {
		doorType = prior.DoorType
	}
	e.regenerate(w, prev, doorType, true)
	w.say(EventWarning, "RE-ENTRY DETECTED. Back at depth %d.", p.Depth)
	return e.commit(ctx, w)
}

// Panic pays XP to jump straight back to the start room.
func (e *Engine) Panic(ctx context.Context) (Result, error) {
	w, err := e.load(ctx)
	if err != nil {
		return Result{}, err
	}
	if w.inCombat {
		return Result{}, newError(CodeCombatActive, "cannot panic while fighting %s", w.combat.MobName)
	}
	p := &w.player
	if p.XP < panicCost {
		return Result{}, insufficient("XP", p.XP, panicCost)
	}
	p.XP -= panicCost
	p.RoomPath = models.StartRoom
	p.Depth = 0
	p.PathHistory = []string{}
	e.regenerate(w, models.StartRoom, catalog.DoorRoot, false)
	w.say(EventSystem, "SYSTEM PANIC: emergency exit to the start sector.")
	return e.commit(ctx, w)
}

// Status is a read-only snapshot of the world.
type Status struct {
	Global models.GlobalProgress
	// Player, Combat and Room are nil without an active run or fight.
	Player   *models.PlayerState
	Combat   *models.CombatState
	Room     *models.RoomRecord
	RoomDesc string
}

// Status reports the world without changing it.
func (e *Engine) Status(ctx context.Context) (Status, error) {
	g, err := e.store.Global(ctx)
	if err != nil {
		return Status{}, err
	}
	st := Status{Global: g}
	p, ok, err := e.store.Player(ctx)
	if err != nil || !ok {
		return st, err
	}
	st.Player = &p
	if c, ok, err := e.store.Combat(ctx); err != nil {
		return Status{}, err
	} else if ok && c.Active {
		st.Combat = &c
	}
	if r, ok, err := e.store.Room(ctx, p.RoomPath); err != nil {
		return Status{}, err
	} else if ok {
		st.Room = &r
		if d, ok := e.catalog.Door(r.DoorType); ok {
			st.RoomDesc = d.Desc
		}
	}
	return st, nil
}
