package autoplay

import (
	"context"
	"strings"

	"github.com/tatianab/delve/internal/catalog"
	"github.com/tatianab/delve/internal/engine"
	"github.com/tatianab/delve/internal/models"
)

// Heuristic plays greedily: take everything that fits, use every buff, heal
// when low, fight whatever is in the room and head down ROOT doors.
type Heuristic struct {
	devourer string
}

// NewHeuristic returns a heuristic strategist for the given content tables.
func NewHeuristic(c *catalog.Catalog) *Heuristic {
	h := &Heuristic{}
	if t, ok := c.Mob(catalog.KeyDevourerID); ok {
		h.devourer = t.Name
	}
	return h
}

// HealThreshold is the hp fraction below which the heuristic heals.
func HealThreshold(depth int) float64 {
	if depth >= 80 {
		return 0.9
	}
	return 0.7
}

// Next picks one command.
func (h *Heuristic) Next(_ context.Context, st engine.Status) ([]string, error) {
	return h.next(st), nil
}

func (h *Heuristic) next(st engine.Status) []string {
	p := st.Player
	if p == nil {
		return []string{"init"}
	}
	if st.Combat != nil {
		return h.fight(p, st.Combat)
	}

	for _, it := range p.Inventory {
		if it.Kind == models.ItemBuff || it.Kind == models.ItemKey {
			return []string{"use", it.ID}
		}
	}
	if float64(p.HP) < float64(p.MaxHP)*HealThreshold(p.Depth) {
		for _, it := range p.Inventory {
			if it.Kind == models.ItemHeal {
				return []string{"use", it.ID}
			}
		}
	}

	room := st.Room
	if room != nil {
		for _, it := range room.Items {
			if it.Size <= p.MemFree() {
				return []string{"loot", it.ID}
			}
			if it.Size <= p.MemCapacity-p.MemUsed && p.XP >= engine.DefragCost {
				return []string{"defrag"}
			}
		}
	}
	if p.Fragmentation > 100 && p.XP >= engine.DefragCost {
		return []string{"defrag"}
	}
	if room == nil {
		return []string{"back"}
	}
	if len(room.Mobs) > 0 {
		return []string{"attack", room.Mobs[0].ID}
	}
	return h.move(p, room)
}

func (h *Heuristic) fight(p *models.PlayerState, c *models.CombatState) []string {
	if h.devourer != "" && strings.Contains(c.MobName, h.devourer) {
		switch {
		case c.LockTurns <= 1 && p.Keys > 0:
			return []string{"op", string(engine.LOCK)}
		case float64(c.MobHP) < float64(c.MobMaxHP)*engine.PurgeThreshold:
			return []string{"purge"}
		}
	}
	return []string{"op", string(engine.MOV)}
}

// move picks a door, preferring unlocked ROOT doors. With nowhere to go it
// buys a key or backs out.
func (h *Heuristic) move(p *models.PlayerState, room *models.RoomRecord) []string {
	var pick *models.Door
	for i := range room.Doors {
		d := &room.Doors[i]
		if d.Shortcut || (d.Locked && p.Keys == 0) {
			continue
		}
		if pick == nil || (d.LeadsTo == catalog.DoorRoot && pick.LeadsTo != catalog.DoorRoot) {
			pick = d
		}
	}
	switch {
	case pick != nil:
		return []string{"enter", pick.ID}
	case len(room.Doors) > 0 && p.XP >= engine.KeyBuyCost:
		return []string{"buy-key"}
	case len(p.PathHistory) > 0:
		return []string{"back"}
	}
	return []string{"panic"}
}
