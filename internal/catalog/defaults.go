package catalog

import (
	"sync"

	"github.com/tatianab/delve/internal/models"
)

// Rarity names.
const (
	Common    = "COMMON"
	Rare      = "RARE"
	Elite     = "ELITE"
	Legendary = "LEGENDARY"
)

// Door type names.
const (
	DoorRoot     = "ROOT"
	DoorFirewall = "FIREWALL"
	DoorExploit  = "EXPLOIT"
)

// Mob traits with combat effects.
const (
	TraitTrueDamage    = "true_dmg"
	TraitCrit          = "crit"
	TraitRaceCondition = "race_condition"
)

// KeyDevourerID is the final boss, guarding the last depth.
const KeyDevourerID = 0xA0

var defaultTables = file{
	Mobs: []MobTemplate{
		{ID: 0x01, Name: "Minor Bug", HP: 10, Attack: 2, XP: 10},
		{ID: 0x02, Name: "Data Scavenger", HP: 15, Attack: 3, XP: 20},
		{ID: 0x03, Name: "Buffer Overflow", HP: 25, Attack: 5, XP: 50},

		{ID: 0x04, Name: "Null Pointer", HP: 40, Attack: 10, XP: 100, Traits: []string{TraitTrueDamage}},
		{ID: 0x05, Name: "Kernel Panic", HP: 50, Attack: 12, XP: 120, Traits: []string{TraitCrit}},

		{ID: 0x10, Name: "[BOSS] Stack Overflow", HP: 100, Attack: 8, XP: 250, Boss: true},
		{ID: 0x20, Name: "[BOSS] Garbage Collector", HP: 150, Attack: 12, XP: 400, Traits: []string{"drain"}, Boss: true},
		{ID: 0x30, Name: "[BOSS] Segmentation Fault", HP: 200, Attack: 15, XP: 600, Traits: []string{TraitCrit}, Boss: true},
		{ID: 0x40, Name: "[BOSS] Logic Bomb", HP: 100, Attack: 30, XP: 800, Boss: true},
		{ID: 0x50, Name: "[BOSS] Purge Sentinel", HP: 300, Attack: 25, XP: 1000, Boss: true},
		{ID: 0x60, Name: "[BOSS] Memory Leak", HP: 350, Attack: 30, XP: 1200, Traits: []string{"lifesteal"}, Boss: true},
		{ID: 0x70, Name: "[BOSS] Race Condition", HP: 400, Attack: 45, XP: 1500, Traits: []string{"multi_strike", TraitRaceCondition}, Boss: true},
		{ID: 0x80, Name: "[BOSS] Null Pointer Overlord", HP: 500, Attack: 50, XP: 2000, Traits: []string{TraitTrueDamage}, Boss: true},
		{ID: 0x90, Name: "[BOSS] Kernel Panic Archon", HP: 600, Attack: 60, XP: 3000, Traits: []string{TraitCrit, TraitTrueDamage}, Boss: true},
		{ID: KeyDevourerID, Name: "[BOSS] Key Devourer", HP: 2000, Attack: 150, XP: 10000, Traits: []string{TraitTrueDamage, "drain", TraitRaceCondition}, Boss: true},
	},
	Items: []ItemTemplate{
		{Code: 0x20, Item: models.Item{Name: "Cache_Patch", Kind: models.ItemHeal, Value: 15, Size: 16, Desc: "Restores 15 HP"}},
		{Code: 0x23, Item: models.Item{Name: "Sector_Key", Kind: models.ItemKey, Size: 8, Desc: "Unlocks encrypted doors."}},
		{Code: 0x30, Item: models.Item{Name: "Logic_Blade", Kind: models.ItemBuff, Stat: "atk", Value: 3, Size: 32, Desc: "+3 ATK (Root)"}},
		{Code: 0x31, Item: models.Item{Name: "Compiler_Loop", Kind: models.ItemBuff, Stat: "xp", Value: 50, Size: 24, Desc: "+50 Instant XP (Root)"}},
		{Code: 0x32, Item: models.Item{Name: "Syntax_Lens", Kind: models.ItemBuff, Stat: "crit", Value: 2, Size: 16, Desc: "+2% Crit (Root)"}},
		{Code: 0x40, Item: models.Item{Name: "Protocol_Shield", Kind: models.ItemBuff, Stat: "max_hp", Value: 15, DR: 1, Size: 48, Desc: "+15 Max HP & 1 DR (Firewall)"}},
		{Code: 0x41, Item: models.Item{Name: "Heavy_Kernel", Kind: models.ItemBuff, Stat: "max_hp", Value: 30, Size: 64, Desc: "+30 Max HP (Firewall)"}},
		{Code: 0x42, Item: models.Item{Name: "Iron_Clad_Mesh", Kind: models.ItemBuff, Stat: "dr", Value: 2, Size: 80, Desc: "+2 DR (Firewall)"}},
		{Code: 0x50, Item: models.Item{Name: "Reflex_Buffer", Kind: models.ItemBuff, Stat: "dodge", Value: 5, Size: 24, Desc: "+5% Dodge (Exploit)"}},
		{Code: 0x51, Item: models.Item{Name: "Zero_Day_Shiv", Kind: models.ItemBuff, Stat: "crit", Value: 5, Size: 32, Desc: "+5% Crit (Exploit)"}},
		{Code: 0x52, Item: models.Item{Name: "Ghost_Protocol", Kind: models.ItemBuff, Stat: "dodge", Value: 3, Attack: 1, Size: 40, Desc: "+3% Dodge & +1 ATK (Exploit)"}},
	},
	Doors: []DoorType{
		{Name: DoorRoot, Desc: "A pulsing data stream promising POWER.", LootTable: []int{0x30, 0x31, 0x32}},
		{Name: DoorFirewall, Desc: "A heavily reinforced blast door promising DEFENSE.", LootTable: []int{0x40, 0x41, 0x42}},
		{Name: DoorExploit, Desc: "A glitching, unstable rift promising AGILITY.", LootTable: []int{0x50, 0x51, 0x52}},
	},
	Rarities: []Rarity{
		{Name: Common, Chance: 0.70, StatMult: 1.0, XPMult: 1},
		{Name: Rare, Chance: 0.20, StatMult: 1.5, XPMult: 2, MinDepth: 10, Marker: "[RARE]"},
		{Name: Elite, Chance: 0.08, StatMult: 2.5, XPMult: 5, MinDepth: 20, Marker: "[ELITE]"},
		{Name: Legendary, Chance: 0.02, StatMult: 5.0, XPMult: 20, MinDepth: 40, Marker: "[LEGENDARY]"},
	},
	BasePool:  []int{0x01, 0x02, 0x03},
	ElitePool: []int{0x04, 0x05},
	Generic:   []int{0x20, 0x23},
	Milestone: []int{0x40, 0x23},
	LeakMob:   0x01,
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog. It is built once per process.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := build(defaultTables)
		if err != nil {
			panic("catalog: built-in tables are inconsistent: " + err.Error())
		}
		defaultCatalog = c
	})
	return defaultCatalog
}
