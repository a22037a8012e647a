package engine

import "github.com/tatianab/delve/internal/models"

// Class labels, derived from the stat profile.
const (
	ClassTank   = "SysAdmin (Tank)"
	ClassRogue  = "Ghost (Rogue)"
	ClassDPS    = "Netrunner (DPS)"
	ClassNovice = models.DefaultClass
)

// Per-level bumps.
const (
	levelAttack   = 3
	levelHP       = 20
	levelDodge    = 2
	dodgeCap      = 75
	levelXPGrowth = 1.5
)

// DeriveClass labels p by its current stats.
func DeriveClass(p models.PlayerState) string {
	switch {
	case p.DR >= 5 || p.MaxHP > 200:
		return ClassTank
	case p.Dodge > 40 || p.Crit > 25:
		return ClassRogue
	case p.Attack > 40:
		return ClassDPS
	}
	return ClassNovice
}

// LevelUpOnce applies a single level-up if p has the XP for it.
func LevelUpOnce(p *models.PlayerState) bool {
	if p.XP < p.XPToNext {
		return false
	}
	p.XP -= p.XPToNext
	p.Level++
	p.XPToNext = int(float64(p.XPToNext) * levelXPGrowth)
	p.Attack += levelAttack
	p.MaxHP += levelHP
	p.HP += levelHP
	p.Dodge = min(dodgeCap, p.Dodge+levelDodge)
	p.Class = DeriveClass(*p)
	return true
}

// CheckLevelUp levels p up for as long as its XP allows and returns the
// number of levels gained.
func CheckLevelUp(p *models.PlayerState) int {
	n := 0
	for LevelUpOnce(p) {
		n++
	}
	return n
}

// gainXP adds xp and reports any level-ups.
func (w *world) gainXP(xp int) {
	w.player.XP += xp
	if CheckLevelUp(&w.player) > 0 {
		w.say(EventLevel, "KERNEL UPGRADED TO LVL %d! Class: %s", w.player.Level, w.player.Class)
	}
}
