package catalog

import (
	"strings"
	"testing"
)

func TestDefaultCatalogIsConsistent(t *testing.T) {
	c := Default()
	if got := c.DoorNames(); len(got) != 3 || got[0] != DoorRoot {
		t.Errorf("DoorNames = %v; want ROOT first of three", got)
	}
	for depth := 10; depth <= 100; depth += 10 {
		if _, ok := c.BossForDepth(depth); !ok {
			t.Errorf("no boss for depth %d", depth)
		}
	}
	boss, _ := c.BossForDepth(100)
	if boss.ID != KeyDevourerID {
		t.Errorf("depth 100 boss = %q; want the Key Devourer", boss.Name)
	}
}

func TestBossForDepthRejectsNonMilestones(t *testing.T) {
	c := Default()
	for _, depth := range []int{0, 5, 11, 110} {
		if m, ok := c.BossForDepth(depth); ok {
			t.Errorf("depth %d returned boss %q", depth, m.Name)
		}
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := Default()

	m, _ := c.Mob(KeyDevourerID)
	m.Traits[0] = "mutated"
	m.HP = 1
	again, _ := c.Mob(KeyDevourerID)
	if again.Traits[0] != TraitTrueDamage || again.HP != 2000 {
		t.Errorf("template mutated through a copy: %+v", again)
	}

	d, _ := c.Door(DoorRoot)
	d.LootTable[0] = 0x20
	d2, _ := c.Door(DoorRoot)
	if d2.LootTable[0] != 0x30 {
		t.Errorf("door loot table mutated through a copy: %v", d2.LootTable)
	}

	it, _ := c.Item(0x20)
	it.Value = 999
	it2, _ := c.Item(0x20)
	if it2.Value != 15 {
		t.Errorf("item template mutated through a copy: %+v", it2)
	}
}

func TestItemInstancesCarryIDs(t *testing.T) {
	it, ok := Default().Item(0x23)
	if !ok {
		t.Fatal("Sector_Key missing")
	}
	if it.ID != "Sector_Key" || it.Size != 8 {
		t.Errorf("Sector_Key = %+v", it)
	}
}

const syntheticYAML = `
mobs:
  - {id: 1, name: Dummy, hp: 10, atk: 1, xp: 5}
  - {id: 16, name: Warden, hp: 100, atk: 10, xp: 100, boss: true}
items:
  - {code: 32, name: Patch, type: heal, value: 5}
doors:
  - {name: ROOT, desc: test, loot_table: [32]}
rarities:
  - {name: COMMON, chance: 1.0, stat_mult: 1.0, xp_mult: 1}
base_pool: [1]
generic_loot: [32]
milestone_loot: [32]
leak_mob: 1
`

func TestLoadSyntheticCatalog(t *testing.T) {
	c, err := Load(strings.NewReader(syntheticYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	it, ok := c.Item(32)
	if !ok {
		t.Fatal("item 32 missing")
	}
	if it.ID != "Patch" || it.Size != 16 {
		t.Errorf("item defaults not applied: %+v", it)
	}
	if b, ok := c.BossForDepth(10); !ok || b.Name != "Warden" {
		t.Errorf("BossForDepth(10) = %+v, %v", b, ok)
	}
}

func TestLoadRejectsDanglingReferences(t *testing.T) {
	bad := strings.Replace(syntheticYAML, "base_pool: [1]", "base_pool: [7]", 1)
	if _, err := Load(strings.NewReader(bad)); err == nil {
		t.Fatal("expected error for unknown mob in base pool")
	}
	bad = strings.Replace(syntheticYAML, "loot_table: [32]", "loot_table: [99]", 1)
	if _, err := Load(strings.NewReader(bad)); err == nil {
		t.Fatal("expected error for unknown item in loot table")
	}
}
