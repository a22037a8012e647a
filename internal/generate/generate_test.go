package generate

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/tatianab/delve/internal/catalog"
	"github.com/tatianab/delve/internal/models"
	"github.com/zyedidia/generic/mapset"
)

func newGenerator() *Generator {
	return &Generator{Catalog: catalog.Default(), Seed: "GEMINI_V1", MaxDepth: 100}
}

func TestNewRoomRandIsReproducible(t *testing.T) {
	a := NewRoomRand("GEMINI_V1", "room_abc123")
	b := NewRoomRand("GEMINI_V1", "room_abc123")
	for i := range 20 {
		if x, y := a.Int63(), b.Int63(); x != y {
			t.Fatalf("draw %d differs: %d != %d", i, x, y)
		}
	}
}

func TestNewRoomRandDependsOnBothInputs(t *testing.T) {
	base := NewRoomRand("GEMINI_V1", "start").Int63()
	if NewRoomRand("GEMINI_V2", "start").Int63() == base {
		t.Error("changing the seed did not change the stream")
	}
	if NewRoomRand("GEMINI_V1", "room_000001").Int63() == base {
		t.Error("changing the path did not change the stream")
	}
}

func TestRoomIsDeterministic(t *testing.T) {
	g := newGenerator()
	for _, depth := range []int{0, 3, 9, 10, 25, 59, 85, 100} {
		req := Request{Path: "room_4f2a1c", DoorType: catalog.DoorFirewall, Depth: depth, Corruption: 20}
		first := g.Room(req)
		second := g.Room(req)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("depth %d: rooms differ\nfirst:  %+v\nsecond: %+v", depth, first, second)
		}
	}
}

func TestRoomDoorsWithinBounds(t *testing.T) {
	g := newGenerator()
	for i := range 200 {
		path := "room_" + strings.Repeat("x", i%7) + string(rune('a'+i%26))
		room := g.Room(Request{Path: path, DoorType: catalog.DoorRoot, Depth: i % 99})
		if n := len(room.Doors); n < 1 || n > 3 {
			t.Fatalf("%s: %d doors; want 1..3", path, n)
		}
		ids := mapset.New[string]()
		for _, d := range room.Doors {
			if ids.Has(d.ID) {
				t.Fatalf("%s: duplicate door id %q", path, d.ID)
			}
			ids.Put(d.ID)
			if _, ok := g.Catalog.Door(d.LeadsTo); !ok {
				t.Fatalf("%s: door %q leads to unknown type %q", path, d.ID, d.LeadsTo)
			}
		}
	}
}

func TestBossRoomsPlaceDepthBossAndLockDoors(t *testing.T) {
	g := newGenerator()
	for depth := 10; depth <= 100; depth += 10 {
		room := g.Room(Request{Path: "room_boss", DoorType: catalog.DoorRoot, Depth: depth})
		boss, _ := g.Catalog.BossForDepth(depth)
		if len(room.Mobs) != 1 || !strings.Contains(room.Mobs[0].Name, boss.Name) {
			t.Errorf("depth %d: mobs = %+v; want %q", depth, room.Mobs, boss.Name)
			continue
		}
		if room.Mobs[0].Rarity != catalog.Common {
			t.Errorf("depth %d: boss rarity = %s; want COMMON", depth, room.Mobs[0].Rarity)
		}
		for _, d := range room.Doors {
			if !d.Locked {
				t.Errorf("depth %d: door %s not locked", depth, d.ID)
			}
		}
	}
}

func TestNoBossBeyondFinalDepth(t *testing.T) {
	g := newGenerator()
	g.MaxDepth = 50
	room := g.Room(Request{Path: "room_deep", DoorType: catalog.DoorRoot, Depth: 60})
	for _, m := range room.Mobs {
		if m.Boss {
			t.Errorf("boss %q spawned past the final depth", m.Name)
		}
	}
}

func TestMilestoneLoot(t *testing.T) {
	g := newGenerator()
	for _, depth := range []int{9, 19, 99} {
		room := g.Room(Request{Path: "room_milestone", DoorType: catalog.DoorExploit, Depth: depth})
		var names []string
		for _, it := range room.Items {
			names = append(names, it.Name)
		}
		if !reflect.DeepEqual(names, []string{"Protocol_Shield", "Sector_Key"}) {
			t.Errorf("depth %d: items = %v", depth, names)
		}
	}
}

func TestGhostsOnlyOnBacktrack(t *testing.T) {
	g := newGenerator()
	ghosts := 0
	for i := range 300 {
		path := "room_" + strings.Repeat("g", 1+i%5) + string(rune('a'+i%26)) + string(rune('a'+i/26))
		fwd := g.Room(Request{Path: path, DoorType: catalog.DoorRoot, Depth: 3})
		for _, m := range fwd.Mobs {
			if m.Ghost {
				t.Fatalf("%s: ghost on forward entry", path)
			}
		}
		back := g.Room(Request{Path: path, DoorType: catalog.DoorRoot, Depth: 3, Backtrack: true})
		for _, m := range back.Mobs {
			if m.Ghost {
				ghosts++
				if !strings.HasPrefix(m.Name, GhostMarker) {
					t.Errorf("ghost %q lacks marker", m.Name)
				}
			}
		}
	}
	if ghosts == 0 {
		t.Error("no ghosts spawned across 300 backtracks")
	}
}

func TestLeakMobsOnlyInStartRoom(t *testing.T) {
	g := newGenerator()
	links := make([]models.Symlink, 40)
	for i := range links {
		links[i] = models.Symlink{ID: "link_" + string(rune('a'+i%26)), Source: "room_abcdef"}
	}

	start := g.Room(Request{Path: models.StartRoom, DoorType: catalog.DoorRoot, Symlinks: links})
	leaks := 0
	for _, m := range start.Mobs {
		if strings.HasPrefix(m.Name, LeakMarker) {
			leaks++
		}
	}
	if leaks == 0 || leaks == len(links) {
		t.Errorf("leaks = %d of %d links; want some but not all", leaks, len(links))
	}
	shortcuts := 0
	for _, d := range start.Doors {
		if d.Shortcut {
			shortcuts++
		}
	}
	if shortcuts != len(links) {
		t.Errorf("shortcut doors = %d; want %d", shortcuts, len(links))
	}

	other := g.Room(Request{Path: "room_abcdef", DoorType: catalog.DoorRoot, Depth: 4, Symlinks: links})
	for _, m := range other.Mobs {
		if strings.HasPrefix(m.Name, LeakMarker) {
			t.Errorf("leak mob %q outside the start room", m.Name)
		}
	}
}

func TestScaleMobKnownValues(t *testing.T) {
	c := catalog.Default()
	overflow, _ := c.Mob(0x03)
	rng := rand.New(rand.NewSource(1))

	// depth 5: d = 1.1, common, no corruption below depth 20.
	m := ScaleMob(c, overflow, ScaleInput{Depth: 5, Rarity: catalog.Common}, rng)
	if m.HP != 27 || m.Attack != 5 || m.XP != 55 {
		t.Errorf("depth 5 overflow = %d/%d/%d; want 27/5/55", m.HP, m.Attack, m.XP)
	}
	if m.Name != "Buffer Overflow" {
		t.Errorf("name = %q", m.Name)
	}

	// depth 0 ghost: 25 * 1.2 = 30; xp untouched by the ghost factor.
	m = ScaleMob(c, overflow, ScaleInput{Rarity: catalog.Common, Ghost: true}, rng)
	if m.HP != 30 || m.Attack != 6 || m.XP != 50 {
		t.Errorf("ghost = %d/%d/%d; want 30/6/50", m.HP, m.Attack, m.XP)
	}

	// depth 0 rare: 25 * 1.5 = 37.5 truncated, xp doubled.
	m = ScaleMob(c, overflow, ScaleInput{Rarity: catalog.Rare}, rng)
	if m.HP != 37 || m.XP != 100 {
		t.Errorf("rare = hp %d xp %d; want 37/100", m.HP, m.XP)
	}

	m = ScaleMob(c, overflow, ScaleInput{Rarity: catalog.Rare, Ghost: true}, rng)
	if m.Name != "[GHOST] [RARE] Buffer Overflow" {
		t.Errorf("name = %q", m.Name)
	}
}

func TestScaleMobXPIgnoresCorruptionAndGhost(t *testing.T) {
	c := catalog.Default()
	bug, _ := c.Mob(0x02)
	rng := rand.New(rand.NewSource(1))

	plain := ScaleMob(c, bug, ScaleInput{Depth: 30, Rarity: catalog.Common}, rng)
	tainted := ScaleMob(c, bug, ScaleInput{Depth: 30, Corruption: 80, Ghost: true, Rarity: catalog.Common}, rng)
	if tainted.XP != plain.XP {
		t.Errorf("xp changed with corruption/ghost: %d != %d", tainted.XP, plain.XP)
	}
	if tainted.HP <= plain.HP || tainted.Attack < plain.Attack {
		t.Errorf("corruption/ghost should raise stats: plain %+v tainted %+v", plain, tainted)
	}
}

func TestDepthMultiplierBossCap(t *testing.T) {
	cases := []struct {
		depth int
		boss  bool
		want  float64
	}{
		{0, false, 1.0},
		{15, false, 1.3},
		{15, true, 1.3},
		{20, true, 1.5},
		{40, false, 2.0},
		{50, true, 2.0},
		{50, false, 2.7},
	}
	for _, tc := range cases {
		got := DepthMultiplier(tc.depth, tc.boss)
		if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("DepthMultiplier(%d, %v) = %v; want %v", tc.depth, tc.boss, got, tc.want)
		}
	}
}

func TestCorruptionMultiplierGatedByDepth(t *testing.T) {
	if got := CorruptionMultiplier(19, 100); got != 1.0 {
		t.Errorf("depth 19 = %v; want 1.0", got)
	}
	if got := CorruptionMultiplier(20, 100); got != 1.5 {
		t.Errorf("depth 20 = %v; want 1.5", got)
	}
}

func TestDrawRarityRespectsUnlocks(t *testing.T) {
	c := catalog.Default()
	rng := rand.New(rand.NewSource(99))
	for range 500 {
		if r := DrawRarity(c, 9, rng); r.Name != catalog.Common {
			t.Fatalf("depth 9 drew %s", r.Name)
		}
	}
	seen := mapset.New[string]()
	for range 2000 {
		seen.Put(DrawRarity(c, 45, rng).Name)
	}
	for _, name := range []string{catalog.Common, catalog.Rare, catalog.Elite, catalog.Legendary} {
		if !seen.Has(name) {
			t.Errorf("depth 45 never drew %s", name)
		}
	}
}

func TestRecordID(t *testing.T) {
	if got := RecordID("[BOSS] Key Devourer"); got != "BOSS_Key_Devourer" {
		t.Errorf("RecordID = %q", got)
	}
}
