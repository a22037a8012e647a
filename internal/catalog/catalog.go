// Package catalog holds the static content tables of the delve: mob and boss
// templates, item templates, door types and rarity tiers.
//
// A Catalog is immutable once built. Every accessor returns copies, so callers
// may freely mutate what they get back without touching the tables.
package catalog

import (
	"fmt"
	"io"
	"slices"

	"github.com/tatianab/delve/internal/models"
	"gopkg.in/yaml.v3"
)

// MobTemplate is the unscaled definition of a mob.
type MobTemplate struct {
	ID     int      `yaml:"id"`
	Name   string   `yaml:"name"`
	HP     int      `yaml:"hp"`
	Attack int      `yaml:"atk"`
	XP     int      `yaml:"xp"`
	Traits []string `yaml:"traits,omitempty"`
	Boss   bool     `yaml:"boss,omitempty"`
}

// ItemTemplate is the definition an item instance is copied from.
type ItemTemplate struct {
	Code int         `yaml:"code"`
	Item models.Item `yaml:",inline"`
}

// DoorType describes a kind of door and the loot its rooms favour.
type DoorType struct {
	Name      string `yaml:"name"`
	Desc      string `yaml:"desc"`
	LootTable []int  `yaml:"loot_table"`
}

// Rarity is a stat/XP multiplier bucket drawn per spawn.
type Rarity struct {
	Name     string  `yaml:"name"`
	Chance   float64 `yaml:"chance"`
	StatMult float64 `yaml:"stat_mult"`
	XPMult   float64 `yaml:"xp_mult"`
	MinDepth int     `yaml:"min_depth"`
	Marker   string  `yaml:"marker,omitempty"`
}

// Catalog is the read-only content table set.
type Catalog struct {
	mobs      map[int]MobTemplate
	items     map[int]ItemTemplate
	doors     []DoorType
	rarities  []Rarity
	basePool  []int
	elitePool []int
	generic   []int
	milestone []int
	leakMob   int
}

// file is the YAML layout accepted by Load.
type file struct {
	Mobs      []MobTemplate  `yaml:"mobs"`
	Items     []ItemTemplate `yaml:"items"`
	Doors     []DoorType     `yaml:"doors"`
	Rarities  []Rarity       `yaml:"rarities"`
	BasePool  []int          `yaml:"base_pool"`
	ElitePool []int          `yaml:"elite_pool"`
	Generic   []int          `yaml:"generic_loot"`
	Milestone []int          `yaml:"milestone_loot"`
	LeakMob   int            `yaml:"leak_mob"`
}

// Load reads a catalog from YAML and validates its cross references.
func Load(r io.Reader) (*Catalog, error) {
	var f file
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return build(f)
}

func build(f file) (*Catalog, error) {
	c := &Catalog{
		mobs:      make(map[int]MobTemplate, len(f.Mobs)),
		items:     make(map[int]ItemTemplate, len(f.Items)),
		doors:     f.Doors,
		rarities:  f.Rarities,
		basePool:  f.BasePool,
		elitePool: f.ElitePool,
		generic:   f.Generic,
		milestone: f.Milestone,
		leakMob:   f.LeakMob,
	}
	for _, m := range f.Mobs {
		c.mobs[m.ID] = m
	}
	for _, it := range f.Items {
		if it.Item.Size == 0 {
			it.Item.Size = models.DefaultItemSize
		}
		if it.Item.ID == "" {
			it.Item.ID = it.Item.Name
		}
		c.items[it.Code] = it
	}

	if len(c.doors) == 0 {
		return nil, fmt.Errorf("catalog has no door types")
	}
	if len(c.rarities) == 0 {
		return nil, fmt.Errorf("catalog has no rarities")
	}
	if len(c.basePool) == 0 {
		return nil, fmt.Errorf("catalog has an empty base mob pool")
	}
	for _, id := range slices.Concat(c.basePool, c.elitePool, []int{c.leakMob}) {
		if _, ok := c.mobs[id]; !ok {
			return nil, fmt.Errorf("catalog references unknown mob 0x%02X", id)
		}
	}
	loot := slices.Concat(c.generic, c.milestone)
	for _, d := range c.doors {
		loot = append(loot, d.LootTable...)
	}
	for _, id := range loot {
		if _, ok := c.items[id]; !ok {
			return nil, fmt.Errorf("catalog references unknown item 0x%02X", id)
		}
	}
	return c, nil
}

// Mob returns a copy of the template with the given id.
func (c *Catalog) Mob(id int) (MobTemplate, bool) {
	m, ok := c.mobs[id]
	if !ok {
		return MobTemplate{}, false
	}
	m.Traits = slices.Clone(m.Traits)
	return m, true
}

// Item returns a fresh instance of the item template with the given id.
func (c *Catalog) Item(id int) (models.Item, bool) {
	it, ok := c.items[id]
	if !ok {
		return models.Item{}, false
	}
	return it.Item.Clone(), true
}

// BossForDepth returns the boss guarding the given depth, if any.
func (c *Catalog) BossForDepth(depth int) (MobTemplate, bool) {
	if depth <= 0 || depth%10 != 0 {
		return MobTemplate{}, false
	}
	m, ok := c.Mob(0x10 * (depth / 10))
	if !ok || !m.Boss {
		return MobTemplate{}, false
	}
	return m, true
}

// Door returns the named door type.
func (c *Catalog) Door(name string) (DoorType, bool) {
	i := slices.IndexFunc(c.doors, func(d DoorType) bool { return d.Name == name })
	if i < 0 {
		return DoorType{}, false
	}
	d := c.doors[i]
	d.LootTable = slices.Clone(d.LootTable)
	return d, true
}

// DoorNames lists door types in catalog order.
func (c *Catalog) DoorNames() []string {
	names := make([]string, len(c.doors))
	for i, d := range c.doors {
		names[i] = d.Name
	}
	return names
}

// Rarities lists tiers in roll order.
func (c *Catalog) Rarities() []Rarity { return slices.Clone(c.rarities) }

// Rarity returns the named tier.
func (c *Catalog) Rarity(name string) (Rarity, bool) {
	i := slices.IndexFunc(c.rarities, func(r Rarity) bool { return r.Name == name })
	if i < 0 {
		return Rarity{}, false
	}
	return c.rarities[i], true
}

// BasePool lists the regular mob ids.
func (c *Catalog) BasePool() []int { return slices.Clone(c.basePool) }

// ElitePool lists the mob ids that join the pool deep in the delve.
func (c *Catalog) ElitePool() []int { return slices.Clone(c.elitePool) }

// GenericLoot lists the heal-or-key drop table.
func (c *Catalog) GenericLoot() []int { return slices.Clone(c.generic) }

// MilestoneLoot lists the items guaranteed in rooms just before a boss.
func (c *Catalog) MilestoneLoot() []int { return slices.Clone(c.milestone) }

// LeakMob is the template that bleeds through shortcuts.
func (c *Catalog) LeakMob() int { return c.leakMob }
