package engine

import (
	"context"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/tatianab/delve/internal/models"
)

// XP prices.
const (
	DefragCost  = 50
	symlinkCost = 200
	keySellXP   = 50
	KeyBuyCost  = 100
	upgradeCost = 200
)

// Defrag pays XP to reclaim all fragmented memory.
func (e *Engine) Defrag(ctx context.Context) (Result, error) {
	w, err := e.load(ctx)
	if err != nil {
		return Result{}, err
	}
	p := &w.player
	if p.XP < DefragCost {
		return Result{}, insufficient("XP", p.XP, DefragCost)
	}
	p.XP -= DefragCost
	reclaimed := p.Fragmentation
	p.Fragmentation = 0
	w.say(EventGain, "DEFRAG COMPLETE: %dB of address space consolidated.", reclaimed)
	return e.commit(ctx, w)
}

// Symlink pays XP for a shortcut from the start room to the current room.
func (e *Engine) Symlink(ctx context.Context) (Result, error) {
	w, err := e.load(ctx)
	if err != nil {
		return Result{}, err
	}
	p := &w.player
	if p.RoomPath == models.StartRoom {
		return Result{}, newError(CodeInvalidReference, "already in the start room")
	}
	if p.XP < symlinkCost {
		return Result{}, insufficient("XP", p.XP, symlinkCost)
	}
	p.XP -= symlinkCost
	link := models.Symlink{
		ID:     "link_" + strings.ToLower(ulid.Make().String()),
		Source: p.RoomPath,
		Depth:  p.Depth,
	}
	p.Symlinks = append(p.Symlinks, link)
	w.say(EventGain, "SYMLINK CREATED: %s -> %s", link.ID, link.Source)
	return e.commit(ctx, w)
}

// SellKey trades a key for XP.
func (e *Engine) SellKey(ctx context.Context) (Result, error) {
	w, err := e.load(ctx)
	if err != nil {
		return Result{}, err
	}
	if w.player.Keys == 0 {
		return Result{}, insufficient("keys", 0, 1)
	}
	w.player.Keys--
	w.say(EventGain, "Key -> %d XP.", keySellXP)
	w.gainXP(keySellXP)
	return e.commit(ctx, w)
}

// BuyKey trades XP for a key.
func (e *Engine) BuyKey(ctx context.Context) (Result, error) {
	w, err := e.load(ctx)
	if err != nil {
		return Result{}, err
	}
	p := &w.player
	if p.XP < KeyBuyCost {
		return Result{}, insufficient("XP", p.XP, KeyBuyCost)
	}
	p.XP -= KeyBuyCost
	p.Keys++
	w.say(EventGain, "%d XP -> Key. %d keys held.", KeyBuyCost, p.Keys)
	return e.commit(ctx, w)
}

// upgrades maps an upgradable stat to its effect on global progress.
var upgrades = map[string]func(g *models.GlobalProgress){
	"hp":    func(g *models.GlobalProgress) { g.BaseHP += 10 },
	"atk":   func(g *models.GlobalProgress) { g.BaseAttack += 2 },
	"crit":  func(g *models.GlobalProgress) { g.BaseCrit++ },
	"dodge": func(g *models.GlobalProgress) { g.BaseDodge++ },
}

// Upgrade spends banked XP on a permanent base stat. It needs no active run.
func (e *Engine) Upgrade(ctx context.Context, stat string) (Result, error) {
	apply, ok := upgrades[strings.ToLower(stat)]
	if !ok {
		return Result{}, invalidRef("upgrade", stat)
	}
	g, err := e.store.Global(ctx)
	if err != nil {
		return Result{}, err
	}
	if g.TotalXP < upgradeCost {
		return Result{}, insufficient("global XP", g.TotalXP, upgradeCost)
	}
	g.TotalXP -= upgradeCost
	apply(&g)

	tx := e.store.Begin()
	tx.PutGlobal(g)
	if err := tx.Commit(ctx); err != nil {
		return Result{}, err
	}
	res := Result{Outcome: Continue}
	res.Events = append(res.Events, Event{Kind: EventGain, Text: "Base " + strings.ToUpper(stat) + " up!"})
	return res, nil
}
