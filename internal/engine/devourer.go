package engine

import (
	"strings"

	"github.com/tatianab/delve/internal/catalog"
	"github.com/tatianab/delve/internal/models"
)

const (
	feedHeal   = 100
	feedAttack = 5
	// MaxFeeds is the last key the Devourer survives; one more and it bursts.
	MaxFeeds = 30
)

func (e *Engine) isDevourer(c *models.CombatState) bool {
	t, ok := e.catalog.Mob(catalog.KeyDevourerID)
	return ok && strings.Contains(c.MobName, t.Name)
}

// Backfire returns the feedback damage for the fed-th key, and whether the
// Devourer explodes instead.
func Backfire(fed int) (dmg int, explodes bool) {
	switch {
	case fed > MaxFeeds:
		return 0, true
	case fed > 20:
		return 41, false
	case fed > 15:
		return 60, false
	case fed > 8:
		return 30, false
	}
	return 10, false
}

var backfireText = []struct {
	above int
	text  string
}{
	{20, "DISGUST: the Devourer expels a corrupted memory block. It looks dangerously bloated."},
	{15, "REJECTION: the Devourer barfs uncompiled code. Its internal pressure is rising."},
	{8, "GASEOUS: a digital fart echoes through the sector."},
	{0, "SATIATED: the Devourer lets out a data-heavy burp."},
}

// feedDevourer resolves a LOCK against the Key Devourer: it eats the key,
// heals and grows stronger, and its digestion hits back. It returns the cause
// of death when the feeding ended the run.
func (e *Engine) feedDevourer(w *world) string {
	p, c := &w.player, &w.combat
	c.KeysFed++
	c.MobHP = min(c.MobMaxHP, c.MobHP+feedHeal)
	c.MobAttack += feedAttack
	w.say(EventCombat, "KEY FEED: the Devourer consumed key #%d. +%d HP, +%d ATK.", c.KeysFed, feedHeal, feedAttack)

	dmg, explodes := Backfire(c.KeysFed)
	if explodes {
		w.say(EventDamage, "CRITICAL OVERLOAD: the Devourer reaches capacity and EXPLODES.")
		return "vaporized by the Key Devourer's overload"
	}
	for _, b := range backfireText {
		if c.KeysFed > b.above {
			w.say(EventWarning, "%s", b.text)
			break
		}
	}
	if e.roll(p.Dodge) {
		w.say(EventCombat, "AVOIDED: you dodged the digital fallout.")
		return ""
	}
	p.HP -= dmg
	w.say(EventDamage, "FEEDBACK: took %d DMG from the boss's reaction (%d/%d HP).", dmg, max(p.HP, 0), p.MaxHP)
	if p.HP <= 0 {
		return "killed by the Key Devourer's feedback"
	}
	return ""
}
