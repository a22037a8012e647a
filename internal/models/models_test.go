package models

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDecodePlayerDefaultsMissingFields(t *testing.T) {
	// A record written before memory accounting and levels existed.
	old := []byte("hp: 30\nmax_hp: 50\natk: 5\nroom_path: room_abc123\ndepth: 4\n")

	p, err := DecodePlayer(old)
	if err != nil {
		t.Fatalf("DecodePlayer: %v", err)
	}
	if p.HP != 30 || p.Depth != 4 || p.RoomPath != "room_abc123" {
		t.Errorf("stored fields lost: %+v", p)
	}
	if p.Level != 1 {
		t.Errorf("Level = %d; want 1", p.Level)
	}
	if p.XPToNext != 200 {
		t.Errorf("XPToNext = %d; want 200", p.XPToNext)
	}
	if p.MemCapacity != 256 {
		t.Errorf("MemCapacity = %d; want 256", p.MemCapacity)
	}
	if p.Class != DefaultClass {
		t.Errorf("Class = %q; want %q", p.Class, DefaultClass)
	}
	if p.Inventory == nil || p.PathHistory == nil || p.Symlinks == nil {
		t.Errorf("expected empty, non-nil slices; got %+v", p)
	}
}

func TestDecodePlayerKeepsExplicitValues(t *testing.T) {
	p := NewRun(DefaultGlobal())
	p.Level = 4
	p.MemCapacity = 512
	p.Inventory = append(p.Inventory, Item{ID: "Cache_Patch", Name: "Cache_Patch", Kind: ItemHeal, Value: 15})

	data, err := Encode(p)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := DecodePlayer(data)
	if err != nil {
		t.Fatalf("DecodePlayer: %v", err)
	}
	if got.Level != 4 || got.MemCapacity != 512 {
		t.Errorf("explicit values overwritten: lvl=%d cap=%d", got.Level, got.MemCapacity)
	}
	if len(got.Inventory) != 1 || got.Inventory[0].Size != DefaultItemSize {
		t.Errorf("inventory = %+v; want one item defaulted to %d bytes", got.Inventory, DefaultItemSize)
	}
}

func TestDecodeGlobalDefaults(t *testing.T) {
	g, err := DecodeGlobal([]byte("total_xp: 420\n"))
	if err != nil {
		t.Fatalf("DecodeGlobal: %v", err)
	}
	want := DefaultGlobal()
	want.TotalXP = 420
	if g != want {
		t.Errorf("got %+v; want %+v", g, want)
	}
}

func TestDecodeCombatDefaults(t *testing.T) {
	c, err := DecodeCombat([]byte("mob_name: Minor Bug\nmob_hp: 10\n"))
	if err != nil {
		t.Fatalf("DecodeCombat: %v", err)
	}
	if c.Multiplier != 1.0 || !c.Active {
		t.Errorf("defaults not applied: %+v", c)
	}
	if c.LockTurns != 0 || c.KeysFed != 0 {
		t.Errorf("boss counters should start at zero: %+v", c)
	}
}

func TestDecodeRoomDefaultsDoorType(t *testing.T) {
	r, err := DecodeRoom([]byte("path: start\nitems:\n  - id: Sector_Key\n    name: Sector_Key\n    type: key\n"))
	if err != nil {
		t.Fatalf("DecodeRoom: %v", err)
	}
	if r.DoorType != "ROOT" {
		t.Errorf("DoorType = %q; want ROOT", r.DoorType)
	}
	if r.Items[0].Size != DefaultItemSize {
		t.Errorf("item size = %d; want %d", r.Items[0].Size, DefaultItemSize)
	}
}

func TestRecordsAreHumanReadable(t *testing.T) {
	data, err := Encode(DefaultGlobal())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var raw map[string]int
	if err := yaml.Unmarshal(data, &raw); err != nil {
		t.Fatalf("record is not a plain key/value document: %v", err)
	}
	if raw["base_hp"] != 50 {
		t.Errorf("base_hp = %d; want 50", raw["base_hp"])
	}
}

func TestCloneIsIndependent(t *testing.T) {
	r := RoomRecord{
		Path: "start",
		Mobs: []Mob{{ID: "m", Name: "Minor Bug", Traits: []string{"crit"}}},
	}
	c := r.Clone()
	c.Mobs[0].Traits[0] = "true_dmg"
	c.Mobs[0].HP = 99
	if r.Mobs[0].Traits[0] != "crit" || r.Mobs[0].HP != 0 {
		t.Errorf("mutating the clone changed the original: %+v", r.Mobs[0])
	}
}

func TestMemFree(t *testing.T) {
	p := PlayerState{MemCapacity: 256, MemUsed: 100, Fragmentation: 40}
	if got := p.MemFree(); got != 116 {
		t.Errorf("MemFree = %d; want 116", got)
	}
}
