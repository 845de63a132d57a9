// Site placement: finds suitable settlement origins on a noise world and
// links them with roads.
package world

import (
	"math"
	"math/rand"
	"sort"

	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/terrain"
)

// Site is a candidate settlement origin.
type Site struct {
	Pos   geom.Vec2 `json:"pos"`
	Score float64   `json:"score"` // Desirability score
	Name  string    `json:"name"`
}

// SiteConfig controls site placement.
type SiteConfig struct {
	Count   int `yaml:"count"`   // Sites to place
	Extent  int `yaml:"extent"`  // Search square half-size in blocks
	Spacing int `yaml:"spacing"` // Minimum distance between sites in blocks
}

// DefaultSiteConfig returns settings that fit a handful of settlements.
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		Count:   8,
		Extent:  4096,
		Spacing: 1024,
	}
}

// PlaceSites scores a grid of candidate positions, picks the best ones that
// respect the minimum spacing, names them and joins each site to its nearest
// earlier site with a road.
// Returns the sites sorted by desirability.
func PlaceSites(w *NoiseWorld, cfg SiteConfig, seed int64) []Site {
	rng := rand.New(rand.NewSource(seed + 200))

	type scored struct {
		pos   geom.Vec2
		score float64
	}
	var candidates []scored

	step := max(cfg.Spacing/4, terrain.ChunkSize)
	for y := -cfg.Extent; y <= cfg.Extent; y += step {
		for x := -cfg.Extent; x <= cfg.Extent; x += step {
			pos := geom.Vec2{X: x, Y: y}
			if s := siteScore(w, pos); s > 0 {
				candidates = append(candidates, scored{pos, s})
			}
		}
	}

	// Sort by score descending; position breaks ties so the order is stable.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		if candidates[i].pos.Y != candidates[j].pos.Y {
			return candidates[i].pos.Y < candidates[j].pos.Y
		}
		return candidates[i].pos.X < candidates[j].pos.X
	})

	var sites []Site
	for _, c := range candidates {
		if len(sites) >= cfg.Count {
			break
		}
		if tooClose(c.pos, sites, cfg.Spacing) {
			continue
		}
		sites = append(sites, Site{Pos: c.pos, Score: c.score})
	}

	names := generateNames(rng, len(sites))
	for i := range sites {
		sites[i].Name = names[i]
	}

	for i := 1; i < len(sites); i++ {
		nearest := 0
		for j := 1; j < i; j++ {
			if sites[j].Pos.DistanceSquared(sites[i].Pos) < sites[nearest].Pos.DistanceSquared(sites[i].Pos) {
				nearest = j
			}
		}
		w.AddRoad(sites[nearest].Pos, sites[i].Pos)
	}

	return sites
}

// siteScore evaluates how desirable a position is for a settlement.
// Prefers flat dry land with water nearby.
func siteScore(w *NoiseWorld, pos geom.Vec2) float64 {
	if !w.CanHostSettlement(pos) {
		return 0
	}
	score := 1.0

	slope, _ := w.ApproxSlope(pos)
	score += (w.cfg.MaxSlope - float64(slope)) * 2

	// Bonus for hostable surroundings; the settlement needs room for farms.
	for _, d := range geom.Cardinals {
		if w.CanHostSettlement(pos.Add(d.Scale(256))) {
			score += 0.5
		}
	}

	// Bonus for water access.
	if v, ok := w.riverValue(pos); ok {
		score += math.Max(0, 0.5-v) * 0.5
	}

	return score
}

func tooClose(pos geom.Vec2, existing []Site, minDist int) bool {
	for _, s := range existing {
		if s.Pos.DistanceSquared(pos) < minDist*minDist {
			return true
		}
	}
	return false
}
