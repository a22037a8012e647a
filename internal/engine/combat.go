package engine

import (
	"context"
	"slices"
	"strings"

	"github.com/tatianab/delve/internal/catalog"
	"github.com/tatianab/delve/internal/models"
	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"
)

// Opcode is a player combat action.
type Opcode string

const (
	MOV  Opcode = "MOV"
	NOP  Opcode = "NOP"
	ADD  Opcode = "ADD"
	XOR  Opcode = "XOR"
	LOCK Opcode = "LOCK"
)

// Opcodes lists the valid opcodes.
var Opcodes = []Opcode{MOV, NOP, ADD, XOR, LOCK}

// ParseOpcode accepts an opcode in any case.
func ParseOpcode(s string) (Opcode, bool) {
	op := Opcode(strings.ToUpper(strings.TrimSpace(s)))
	return op, slices.Contains(Opcodes, op)
}

const (
	addBonus       = 2
	xorShield      = 10
	lockTurns      = 3
	mobCritChance  = 0.25
	raceChance     = 0.3
	bonusKeyChance = 0.25
	PurgeThreshold = 0.25
	overclockCost  = 2000
	overclockStun  = 10
	// maxMultiplier bounds stacked NOPs.
	maxMultiplier = 1 << 10
)

// Attack starts a fight with a mob in the current room.
func (e *Engine) Attack(ctx context.Context, mobID string) (Result, error) {
	w, err := e.load(ctx)
	if err != nil {
		return Result{}, err
	}
	if w.inCombat {
		return Result{}, newError(CodeCombatActive, "already fighting %s", w.combat.MobName)
	}
	i := w.room.FindMob(mobID)
	if i < 0 {
		return Result{}, invalidRef("mob", mobID)
	}
	mob := w.room.Mobs[i]
	c := models.DefaultCombat()
	c.MobName = mob.Name
	c.MobHP = mob.HP
	c.MobMaxHP = mob.HP
	c.MobAttack = mob.Attack
	c.MobTraits = slices.Clone(mob.Traits)
	if c.MobTraits == nil {
		c.MobTraits = []string{}
	}
	c.MobXP = mob.XP
	c.MobID = mob.ID
	w.combat, w.inCombat = c, true

	w.say(EventCombat, "--- COMBAT INITIALIZED: %s (%d HP, %d ATK) ---", mob.Name, mob.HP, mob.Attack)
	w.say(EventInfo, "Queue opcode: MOV | NOP | ADD | XOR | LOCK")
	e.log.Debug("combat started", zap.String("mob", mob.ID), zap.Int("hp", mob.HP), zap.Int("atk", mob.Attack))
	return e.commit(ctx, w)
}

// loadFight loads the world and requires an active fight.
func (e *Engine) loadFight(ctx context.Context) (*world, error) {
	w, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	if !w.inCombat {
		return nil, newError(CodeInvalidReference, "no combat active")
	}
	return w, nil
}

// Op resolves one combat turn: the player's opcode, then the mob's reaction
// if it survived.
func (e *Engine) Op(ctx context.Context, opcode string) (Result, error) {
	op, ok := ParseOpcode(opcode)
	if !ok {
		return Result{}, invalidRef("opcode", opcode)
	}
	w, err := e.loadFight(ctx)
	if err != nil {
		return Result{}, err
	}
	p, c := &w.player, &w.combat

	switch op {
	case MOV:
		dmg := int(float64(p.Attack+c.AttackBonus) * c.Multiplier)
		if p.PercentDamage > 0 {
			dmg += dmg * p.PercentDamage / 100
		}
		if e.roll(p.Crit) {
			dmg *= 2
			w.say(EventCombat, "CRITICAL!")
		}
		c.MobHP -= dmg
		c.Multiplier = 1.0
		c.LastDealt = dmg
		w.say(EventCombat, "MOV: %d DMG to %s.", dmg, c.MobName)
	case NOP:
		c.Multiplier = min(c.Multiplier*2, maxMultiplier)
		w.say(EventCombat, "NOP: cycle skipped. Next MOV x%g.", c.Multiplier)
	case ADD:
		c.AttackBonus += addBonus
		w.say(EventCombat, "ADD: ATK +%d for this fight.", addBonus)
	case XOR:
		c.ShieldDR = xorShield
		c.ReflectArmed = true
		w.say(EventCombat, "XOR: +%d DR and reflective shell engaged.", xorShield)
	case LOCK:
		if p.Keys == 0 {
			return Result{}, insufficient("keys", 0, 1)
		}
		p.Keys--
		c.LockTurns = lockTurns
		if e.isDevourer(c) {
			if cause := e.feedDevourer(w); cause != "" {
				return e.terminate(ctx, w, Defeat, cause)
			}
		} else {
			w.say(EventCombat, "LOCK: enemy process throttled for %d turns.", lockTurns)
		}
	}

	if c.MobHP <= 0 {
		return e.win(ctx, w)
	}
	if killed := e.mobTurn(w); killed {
		return e.terminate(ctx, w, Defeat, "killed by "+w.combat.MobName)
	}
	if c.MobHP <= 0 {
		return e.win(ctx, w)
	}
	return e.commit(ctx, w)
}

// roll reports success for a percentage chance.
func (e *Engine) roll(percent int) bool {
	return e.rng.Float64() < float64(percent)/100
}

// mobTurn resolves the mob's reaction and reports whether it killed the
// player.
func (e *Engine) mobTurn(w *world) bool {
	p, c := &w.player, &w.combat
	traits := mapset.New[string]()
	for _, t := range c.MobTraits {
		traits.Put(t)
	}

	if e.isDevourer(c) && c.LockTurns > 0 {
		c.LockTurns--
		w.say(EventCombat, "STUNNED: the Devourer is busy eating (%d turns left).", c.LockTurns)
		return false
	}
	if traits.Has(catalog.TraitTrueDamage) {
		w.say(EventDamage, "UNAVOIDABLE!")
	} else if e.roll(p.Dodge) {
		w.say(EventCombat, "EVADED!")
		return false
	}

	dmg := max(1, c.MobAttack-(p.DR+c.ShieldDR))
	if c.LockTurns > 0 {
		dmg /= 2
		c.LockTurns--
		w.say(EventCombat, "THROTTLED: kernel lock active (%d turns left).", c.LockTurns)
	}
	if traits.Has(catalog.TraitCrit) && e.rng.Float64() < mobCritChance {
		dmg *= 2
		w.say(EventDamage, "ENEMY CRIT!")
	}
	if traits.Has(catalog.TraitRaceCondition) && e.rng.Float64() < raceChance {
		p.HP -= c.LastDealt
		w.say(EventDamage, "RACE CONDITION: you struck yourself for %d DMG!", c.LastDealt)
	}
	p.HP -= dmg
	w.say(EventDamage, "Took %d DMG (%d/%d HP).", dmg, max(p.HP, 0), p.MaxHP)

	if c.ReflectArmed {
		reflect := dmg / 2
		c.MobHP -= reflect
		c.ShieldDR = 0
		c.ReflectArmed = false
		w.say(EventCombat, "REFLECTED: %d DMG returned to %s.", reflect, c.MobName)
	}
	return p.HP <= 0
}

// win resolves a kill: XP, bonus key, and removal of the mob and the fight.
func (e *Engine) win(ctx context.Context, w *world) (Result, error) {
	p, c := &w.player, &w.combat
	w.say(EventGain, "Purged %s! +%d XP", c.MobName, c.MobXP)
	p.BattlesWon++
	w.gainXP(c.MobXP)
	e.log.Debug("combat won", zap.String("mob", c.MobID), zap.Int("depth", p.Depth))

	if p.Depth >= e.maxDepth {
		return e.terminate(ctx, w, Victory, "defeated "+c.MobName)
	}
	if e.rng.Float64() < bonusKeyChance {
		p.Keys++
		w.say(EventGain, "DATA LEAK: found a Sector Key in the wreckage.")
	}
	if i := w.room.FindMob(c.MobID); i >= 0 {
		w.room.Mobs = slices.Delete(w.room.Mobs, i, i+1)
	}
	w.inCombat = false
	return e.commit(ctx, w)
}

// Purge executes a mob below a quarter of its hp at the cost of all run XP.
func (e *Engine) Purge(ctx context.Context) (Result, error) {
	w, err := e.loadFight(ctx)
	if err != nil {
		return Result{}, err
	}
	c := &w.combat
	if float64(c.MobHP) >= float64(c.MobMaxHP)*PurgeThreshold {
		return Result{}, &Error{
			Code:     CodeInsufficientResource,
			Message:  "enemy hp too high for purge (need below 25%)",
			Metadata: map[string]string{"resource": "mob damage"},
		}
	}
	w.say(EventCombat, "ROOT PURGE: total system wipe on %s.", c.MobName)
	c.MobHP = 0
	w.player.XP = 0
	return e.win(ctx, w)
}

// Overclock pays XP to freeze the enemy: its attack drops to zero for the rest
// of the fight, so each hit that lands deals the 1 damage minimum, and it is
// throttled or stunned for ten turns.
func (e *Engine) Overclock(ctx context.Context) (Result, error) {
	w, err := e.loadFight(ctx)
	if err != nil {
		return Result{}, err
	}
	p, c := &w.player, &w.combat
	if p.XP < overclockCost {
		return Result{}, insufficient("XP", p.XP, overclockCost)
	}
	p.XP -= overclockCost
	c.LockTurns = overclockStun
	c.MobAttack = 0
	w.say(EventCombat, "SYSTEM OVERCLOCK: enemy core frozen for %d turns.", overclockStun)
	return e.commit(ctx, w)
}
