package generate

import (
	"math/rand"
	"strings"

	"github.com/tatianab/delve/internal/catalog"
	"github.com/tatianab/delve/internal/models"
)

// GhostMarker prefixes mobs spawned on a backtrack.
const GhostMarker = "[GHOST]"

// ScaleInput holds the context a template is scaled for.
type ScaleInput struct {
	Depth      int
	Corruption int
	Ghost      bool
	// Rarity forces a tier when set; no draw is consumed.
	Rarity string
}

// Multipliers is the breakdown ScaleMob applied.
type Multipliers struct {
	Depth      float64
	Rarity     catalog.Rarity
	Corruption float64
	Ghost      float64
}

// Stat is the combined hp/attack multiplier.
func (m Multipliers) Stat() float64 {
	return m.Depth * m.Rarity.StatMult * m.Corruption * m.Ghost
}

// XP is the reward multiplier. Corruption and ghost factors never apply.
func (m Multipliers) XP() float64 {
	return m.Depth * m.Rarity.XPMult
}

// DrawRarity rolls a tier among those unlocked at depth.
func DrawRarity(c *catalog.Catalog, depth int, rng *rand.Rand) catalog.Rarity {
	roll := rng.Float64()
	cumulative := 0.0
	tiers := c.Rarities()
	for _, r := range tiers {
		if depth < r.MinDepth {
			continue
		}
		cumulative += r.Chance
		if roll <= cumulative {
			return r
		}
	}
	return tiers[0]
}

// DepthMultiplier is the depth factor for a template.
func DepthMultiplier(depth int, boss bool) float64 {
	d := 1.0 + float64(depth/5)*0.1
	if boss && d > 1.3 {
		d = 1.3
	}
	if depth >= 20 {
		d += 0.2
	}
	if depth >= 50 {
		d += 0.5
	}
	return d
}

// CorruptionMultiplier is active only from depth 20.
func CorruptionMultiplier(depth, corruption int) float64 {
	if depth < 20 {
		return 1.0
	}
	return 1.0 + float64(corruption)/100.0*0.5
}

// ComputeMultipliers computes the factors for in, drawing a rarity from rng unless
// one is forced.
func ComputeMultipliers(c *catalog.Catalog, t catalog.MobTemplate, in ScaleInput, rng *rand.Rand) Multipliers {
	var rarity catalog.Rarity
	if forced, ok := c.Rarity(in.Rarity); ok && in.Rarity != "" {
		rarity = forced
	} else {
		rarity = DrawRarity(c, in.Depth, rng)
	}
	g := 1.0
	if in.Ghost {
		g = 1.2
	}
	return Multipliers{
		Depth:      DepthMultiplier(in.Depth, t.Boss),
		Rarity:     rarity,
		Corruption: CorruptionMultiplier(in.Depth, in.Corruption),
		Ghost:      g,
	}
}

// ScaleMob turns a template into an encounter-ready mob.
func ScaleMob(c *catalog.Catalog, t catalog.MobTemplate, in ScaleInput, rng *rand.Rand) models.Mob {
	m := ComputeMultipliers(c, t, in, rng)
	stat := m.Stat()

	var name []string
	if in.Ghost {
		name = append(name, GhostMarker)
	}
	if m.Rarity.Marker != "" {
		name = append(name, m.Rarity.Marker)
	}
	name = append(name, t.Name)

	return models.Mob{
		Name:   strings.Join(name, " "),
		HP:     int(float64(t.HP) * stat),
		Attack: int(float64(t.Attack) * stat),
		XP:     int(float64(t.XP) * m.XP()),
		Traits: append([]string(nil), t.Traits...),
		Rarity: m.Rarity.Name,
		Ghost:  in.Ghost,
		Boss:   t.Boss,
	}
}
