package generate

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/tatianab/delve/internal/catalog"
	"github.com/tatianab/delve/internal/models"
)

// LeakMarker prefixes mobs that followed a shortcut into the start room.
const LeakMarker = "[LEAK]"

// Generator populates rooms for one world.
type Generator struct {
	Catalog  *catalog.Catalog
	Seed     string
	MaxDepth int
}

// Request describes the room to (re)generate.
type Request struct {
	Path       string
	DoorType   string
	Backtrack  bool
	Depth      int
	Corruption int
	Symlinks   []models.Symlink
}

var idReplacer = strings.NewReplacer(" ", "_", "[", "", "]", "")

// RecordID turns a display name into the id a command addresses it by.
func RecordID(name string) string {
	return idReplacer.Replace(name)
}

// Room generates the full contents of the room described by req.
func (g *Generator) Room(req Request) models.RoomRecord {
	rng := NewRoomRand(g.Seed, req.Path)
	c := g.Catalog
	depth := req.Depth

	room := models.RoomRecord{
		Path:      req.Path,
		DoorType:  req.DoorType,
		Depth:     depth,
		Backtrack: req.Backtrack,
		Mobs:      []models.Mob{},
		Items:     []models.Item{},
		Doors:     []models.Door{},
	}
	scale := ScaleInput{Depth: depth, Corruption: req.Corruption}

	if req.Path == models.StartRoom {
		for i := range req.Symlinks {
			if rng.Float64() >= 0.3 {
				continue
			}
			t, _ := c.Mob(c.LeakMob())
			mob := ScaleMob(c, t, scale, rng)
			mob.Name = LeakMarker + " " + mob.Name
			mob.ID = fmt.Sprintf("%s_%d", RecordID(mob.Name), i)
			room.Mobs = append(room.Mobs, mob)
		}
	}

	if boss, ok := c.BossForDepth(depth); ok && depth <= g.MaxDepth {
		in := scale
		in.Rarity = catalog.Common
		mob := ScaleMob(c, boss, in, rng)
		mob.ID = RecordID(mob.Name)
		room.Mobs = append(room.Mobs, mob)
	} else if rng.Float64() > 0.4 {
		pool := c.BasePool()
		if depth >= 80 {
			pool = append(pool, c.ElitePool()...)
		}
		t, _ := c.Mob(pool[rng.Intn(len(pool))])
		in := scale
		in.Ghost = req.Backtrack && rng.Float64() < 0.5
		mob := ScaleMob(c, t, in, rng)
		mob.ID = RecordID(mob.Name)
		room.Mobs = append(room.Mobs, mob)
	}

	if depth%10 == 9 {
		for _, code := range c.MilestoneLoot() {
			it, _ := c.Item(code)
			room.Items = append(room.Items, it)
		}
	} else if rng.Float64() < 0.5 {
		table := c.GenericLoot()
		if dt, ok := c.Door(req.DoorType); ok && rng.Float64() < 0.8 {
			table = dt.LootTable
		} else if !ok {
			// Unknown door types still consume the affinity draw.
			rng.Float64()
		}
		it, _ := c.Item(table[rng.Intn(len(table))])
		room.Items = append(room.Items, it)
	}

	names := c.DoorNames()
	locked := depth > 0 && depth%10 == 0
	for i := range 1 + rng.Intn(3) {
		dt := names[rng.Intn(len(names))]
		room.Doors = append(room.Doors, models.Door{
			ID:      fmt.Sprintf("door_%d_%s", i, strings.ToLower(dt)),
			LeadsTo: dt,
			Locked:  locked,
		})
	}

	if req.Path == models.StartRoom {
		for _, link := range req.Symlinks {
			room.Doors = append(room.Doors, models.Door{
				ID:       link.ID,
				Shortcut: true,
				Target:   link.Source,
			})
		}
	}

	return room
}
