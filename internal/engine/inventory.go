package engine

import (
	"context"
	"slices"

	"github.com/tatianab/delve/internal/models"
)

// Loot moves an item from the room into the inventory if memory allows.
func (e *Engine) Loot(ctx context.Context, itemID string) (Result, error) {
	w, err := e.load(ctx)
	if err != nil {
		return Result{}, err
	}
	i := w.room.FindItem(itemID)
	if i < 0 {
		return Result{}, invalidRef("item", itemID)
	}
	it := w.room.Items[i]
	p := &w.player
	if p.MemUsed+p.Fragmentation+it.Size > p.MemCapacity {
		err := insufficient("memory", p.MemFree(), it.Size)
		err.Message = "MALLOC FAILURE: buffer too fragmented or full"
		return Result{}, err
	}
	p.Inventory = append(p.Inventory, it)
	p.MemUsed += it.Size
	w.room.Items = slices.Delete(w.room.Items, i, i+1)
	w.say(EventGain, "Buffer + %s (%d bytes).", it.Name, it.Size)
	return e.commit(ctx, w)
}

// findInventory matches by id, then by name.
func findInventory(inv []models.Item, ref string) int {
	if i := slices.IndexFunc(inv, func(it models.Item) bool { return it.ID == ref }); i >= 0 {
		return i
	}
	return slices.IndexFunc(inv, func(it models.Item) bool { return it.Name == ref })
}

// buffs maps a buff stat to the player field it raises.
var buffs = map[string]func(p *models.PlayerState, v int){
	"atk":         func(p *models.PlayerState, v int) { p.Attack += v },
	"crit":        func(p *models.PlayerState, v int) { p.Crit += v },
	"dodge":       func(p *models.PlayerState, v int) { p.Dodge += v },
	"dr":          func(p *models.PlayerState, v int) { p.DR += v },
	"percent_dmg": func(p *models.PlayerState, v int) { p.PercentDamage += v },
	"max_hp": func(p *models.PlayerState, v int) {
		p.MaxHP += v
		p.HP += v
	},
	// xp is handled by gainXP so level-ups fire.
	"xp": func(*models.PlayerState, int) {},
}

// Use consumes an inventory item. The memory it held becomes fragmentation.
func (e *Engine) Use(ctx context.Context, itemRef string) (Result, error) {
	w, err := e.load(ctx)
	if err != nil {
		return Result{}, err
	}
	p := &w.player
	i := findInventory(p.Inventory, itemRef)
	if i < 0 {
		return Result{}, invalidRef("inventory item", itemRef)
	}
	it := p.Inventory[i]
	var buff func(*models.PlayerState, int)
	if it.Kind == models.ItemBuff {
		var ok bool
		if buff, ok = buffs[it.Stat]; !ok {
			return Result{}, newError(CodeInvalidReference, "%s boosts unknown stat %q", it.Name, it.Stat)
		}
	}

	p.Inventory = slices.Delete(p.Inventory, i, i+1)
	p.MemUsed -= it.Size
	p.Fragmentation += it.Size

	switch it.Kind {
	case models.ItemHeal:
		before := p.HP
		p.HP = min(p.MaxHP, p.HP+it.Value)
		w.say(EventGain, "HP restored by %d (%d/%d).", p.HP-before, p.HP, p.MaxHP)
	case models.ItemKey:
		p.Keys++
		w.say(EventGain, "Sector key stored. %d keys held.", p.Keys)
	case models.ItemBuff:
		buff(p, it.Value)
		if it.DR > 0 {
			p.DR += it.DR
		}
		if it.Attack > 0 && it.Stat != "atk" {
			p.Attack += it.Attack
		}
		w.say(EventGain, "Applied %s.", it.Name)
		if it.Stat == "xp" {
			w.gainXP(it.Value)
		}
	default:
		w.say(EventInfo, "%s does nothing.", it.Name)
	}
	w.say(EventInfo, "Hole created: %d bytes.", it.Size)
	return e.commit(ctx, w)
}
