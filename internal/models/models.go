package models

import "slices"

// StartRoom is the path of the room every run begins in.
const StartRoom = "start"

// DefaultClass is the label a player carries until a stat profile qualifies
// for a specialised one.
const DefaultClass = "Novice"

// GlobalProgress is the state that survives across runs.
type GlobalProgress struct {
	TotalXP    int `yaml:"total_xp"`
	BaseHP     int `yaml:"base_hp"`
	BaseAttack int `yaml:"base_atk"`
	BaseCrit   int `yaml:"base_crit"`
	BaseDodge  int `yaml:"base_dodge"`
}

// DefaultGlobal returns the progress record of a fresh install.
func DefaultGlobal() GlobalProgress {
	return GlobalProgress{
		BaseHP:     50,
		BaseAttack: 5,
		BaseCrit:   10,
		BaseDodge:  15,
	}
}

// Symlink is a purchased shortcut from the start room to a deeper room.
type Symlink struct {
	ID     string `yaml:"id"`
	Source string `yaml:"source"`
	Depth  int    `yaml:"depth"`
}

// PlayerState is the per-run player record.
type PlayerState struct {
	HP            int       `yaml:"hp"`
	MaxHP         int       `yaml:"max_hp"`
	Attack        int       `yaml:"atk"`
	Crit          int       `yaml:"crit"`
	Dodge         int       `yaml:"dodge"`
	DR            int       `yaml:"dr"`
	PercentDamage int       `yaml:"percent_dmg"`
	Level         int       `yaml:"lvl"`
	XP            int       `yaml:"xp"`
	XPToNext      int       `yaml:"xp_to_lvl"`
	Class         string    `yaml:"class"`
	RoomPath      string    `yaml:"room_path"`
	Depth         int       `yaml:"depth"`
	Corruption    int       `yaml:"corruption"`
	Inventory     []Item    `yaml:"inventory"`
	Keys          int       `yaml:"keys"`
	PathHistory   []string  `yaml:"path_history"`
	BattlesWon    int       `yaml:"battles_won"`
	MemCapacity   int       `yaml:"mem_capacity"`
	MemUsed       int       `yaml:"mem_used"`
	Fragmentation int       `yaml:"fragmentation"`
	Symlinks      []Symlink `yaml:"symlinks"`
}

// DefaultPlayer returns the documented defaults applied to fields missing
// from older player records.
func DefaultPlayer() PlayerState {
	return PlayerState{
		Level:       1,
		XPToNext:    200,
		Class:       DefaultClass,
		RoomPath:    StartRoom,
		MemCapacity: 256,
		Inventory:   []Item{},
		PathHistory: []string{},
		Symlinks:    []Symlink{},
	}
}

// NewRun builds the player record for a fresh run from global progress.
func NewRun(g GlobalProgress) PlayerState {
	p := DefaultPlayer()
	p.HP = g.BaseHP
	p.MaxHP = g.BaseHP
	p.Attack = g.BaseAttack
	p.Crit = g.BaseCrit
	p.Dodge = g.BaseDodge
	return p
}

// MemFree is the capacity left for new allocations.
func (p *PlayerState) MemFree() int {
	return p.MemCapacity - p.MemUsed - p.Fragmentation
}

// Clone returns a deep copy of p.
func (p PlayerState) Clone() PlayerState {
	out := p
	out.Inventory = make([]Item, len(p.Inventory))
	for i, it := range p.Inventory {
		out.Inventory[i] = it.Clone()
	}
	out.PathHistory = slices.Clone(p.PathHistory)
	out.Symlinks = slices.Clone(p.Symlinks)
	return out
}

// CombatState exists only while a fight is in progress.
type CombatState struct {
	MobName      string   `yaml:"mob_name"`
	MobHP        int      `yaml:"mob_hp"`
	MobMaxHP     int      `yaml:"mob_max_hp"`
	MobAttack    int      `yaml:"mob_atk"`
	MobTraits    []string `yaml:"mob_traits"`
	MobXP        int      `yaml:"mob_xp"`
	MobID        string   `yaml:"mob_id"`
	Multiplier   float64  `yaml:"multiplier"`
	Active       bool     `yaml:"active"`
	LockTurns    int      `yaml:"lock_turns"`
	KeysFed      int      `yaml:"keys_fed"`
	AttackBonus  int      `yaml:"atk_bonus"`
	ShieldDR     int      `yaml:"shield_dr"`
	ReflectArmed bool     `yaml:"reflect_armed"`
	LastDealt    int      `yaml:"last_dealt"`
}

// DefaultCombat returns the defaults applied to older combat records.
func DefaultCombat() CombatState {
	return CombatState{
		Multiplier: 1.0,
		Active:     true,
		MobTraits:  []string{},
	}
}

// Item is an inventory or room item instance.
type Item struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Kind   string `yaml:"type"`
	Stat   string `yaml:"stat,omitempty"`
	Value  int    `yaml:"value,omitempty"`
	DR     int    `yaml:"dr,omitempty"`
	Attack int    `yaml:"atk,omitempty"`
	Size   int    `yaml:"size"`
	Desc   string `yaml:"desc,omitempty"`
}

// Item kinds.
const (
	ItemHeal = "heal"
	ItemKey  = "key"
	ItemBuff = "buff"
)

// Clone returns a copy of it. Items hold no reference fields today; the
// method keeps call sites uniform with Mob.
func (it Item) Clone() Item { return it }

// Mob is an encounter-ready mob instance.
type Mob struct {
	ID     string   `yaml:"id"`
	Name   string   `yaml:"name"`
	HP     int      `yaml:"hp"`
	Attack int      `yaml:"atk"`
	XP     int      `yaml:"xp"`
	Traits []string `yaml:"traits,omitempty"`
	Rarity string   `yaml:"rarity,omitempty"`
	Ghost  bool     `yaml:"ghost,omitempty"`
	Boss   bool     `yaml:"boss,omitempty"`
}

// Clone returns a deep copy of m.
func (m Mob) Clone() Mob {
	out := m
	out.Traits = slices.Clone(m.Traits)
	return out
}

// Door is an exit from a room.
type Door struct {
	ID       string `yaml:"id"`
	LeadsTo  string `yaml:"leads_to"`
	Locked   bool   `yaml:"locked,omitempty"`
	Shortcut bool   `yaml:"shortcut,omitempty"`
	Target   string `yaml:"target,omitempty"`
}

// RoomRecord holds the generated contents of one room.
type RoomRecord struct {
	Path      string `yaml:"path"`
	DoorType  string `yaml:"door_type"`
	Depth     int    `yaml:"depth"`
	Backtrack bool   `yaml:"backtrack,omitempty"`
	Mobs      []Mob  `yaml:"mobs"`
	Items     []Item `yaml:"items"`
	Doors     []Door `yaml:"doors"`
}

// FindMob returns the index of the mob with the given id, or -1.
func (r *RoomRecord) FindMob(id string) int {
	return slices.IndexFunc(r.Mobs, func(m Mob) bool { return m.ID == id })
}

// FindItem returns the index of the item with the given id, or -1.
func (r *RoomRecord) FindItem(id string) int {
	return slices.IndexFunc(r.Items, func(it Item) bool { return it.ID == id })
}

// FindDoor returns the index of the door with the given id, or -1.
func (r *RoomRecord) FindDoor(id string) int {
	return slices.IndexFunc(r.Doors, func(d Door) bool { return d.ID == id })
}

// Clone returns a deep copy of r.
func (r RoomRecord) Clone() RoomRecord {
	out := r
	out.Mobs = make([]Mob, len(r.Mobs))
	for i, m := range r.Mobs {
		out.Mobs[i] = m.Clone()
	}
	out.Items = slices.Clone(r.Items)
	out.Doors = slices.Clone(r.Doors)
	return out
}
