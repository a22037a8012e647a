package models

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Record kinds as stored by a backend.
const (
	KindGlobal = "global"
	KindPlayer = "player"
	KindCombat = "combat"
	KindRoom   = "room"
)

// Encode serializes a record to YAML.
func Encode(v any) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return data, nil
}

// DecodeGlobal decodes a global progress record. Fields missing from data
// keep their DefaultGlobal values.
func DecodeGlobal(data []byte) (GlobalProgress, error) {
	g := DefaultGlobal()
	if err := yaml.Unmarshal(data, &g); err != nil {
		return GlobalProgress{}, fmt.Errorf("decode global: %w", err)
	}
	return g, nil
}

// DecodePlayer decodes a player record over DefaultPlayer.
func DecodePlayer(data []byte) (PlayerState, error) {
	p := DefaultPlayer()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return PlayerState{}, fmt.Errorf("decode player: %w", err)
	}
	if p.Inventory == nil {
		p.Inventory = []Item{}
	}
	if p.PathHistory == nil {
		p.PathHistory = []string{}
	}
	if p.Symlinks == nil {
		p.Symlinks = []Symlink{}
	}
	for i := range p.Inventory {
		if p.Inventory[i].Size == 0 {
			p.Inventory[i].Size = DefaultItemSize
		}
	}
	return p, nil
}

// DecodeCombat decodes a combat record over DefaultCombat.
func DecodeCombat(data []byte) (CombatState, error) {
	c := DefaultCombat()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return CombatState{}, fmt.Errorf("decode combat: %w", err)
	}
	if c.MobTraits == nil {
		c.MobTraits = []string{}
	}
	return c, nil
}

// DecodeRoom decodes a room record. A room without a recorded door type is
// treated as a ROOT room.
func DecodeRoom(data []byte) (RoomRecord, error) {
	r := RoomRecord{DoorType: "ROOT"}
	if err := yaml.Unmarshal(data, &r); err != nil {
		return RoomRecord{}, fmt.Errorf("decode room: %w", err)
	}
	for i := range r.Items {
		if r.Items[i].Size == 0 {
			r.Items[i].Size = DefaultItemSize
		}
	}
	return r, nil
}

// DefaultItemSize is the allocation assumed for items that predate sizes.
const DefaultItemSize = 16
