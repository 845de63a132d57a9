// Package settlement generates a settlement around a world position and
// answers the per-chunk queries terrain generation makes of it: painting
// blocks, adding entities, map colours and spawn rules.
//
// Generation runs once and is deterministic for a given random source and
// world. A generated Settlement is never modified afterwards, so its query
// methods may be called from several goroutines at once.
package settlement

import (
	"log/slog"
	"math/rand"

	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/land"
	"github.com/talgya/hamlet/internal/store"
	"github.com/talgya/hamlet/internal/town"
	"github.com/talgya/hamlet/internal/world"
)

// Params switches optional generation stages.
type Params struct {
	Walls            bool `yaml:"walls"`             // Boundary wall with towers
	Roads            bool `yaml:"roads"`             // Paths from fields to the town
	DistrictAltitude bool `yaml:"district_altitude"` // Level districts and blend their edges
}

// DefaultParams returns the stage selection used by Generate.
func DefaultParams() Params {
	return Params{}
}

// Settlement is a generated settlement.
type Settlement struct {
	name       string
	seed       uint32
	origin     geom.Vec2
	params     Params
	land       *land.Land
	farms      store.Store[land.Farm]
	structures []Structure
	town       *town.Town
	noise      geom.RandomField
}

// Generate builds a settlement at wpos with the default stages. oracle may be
// nil, in which case no land is ruled out by the world and every altitude is
// zero.
func Generate(wpos geom.Vec2, oracle world.Oracle, rng *rand.Rand) *Settlement {
	return GenerateWith(wpos, oracle, rng, DefaultParams())
}

// GenerateWith builds a settlement at wpos running the stages selected by
// params.
func GenerateWith(wpos geom.Vec2, oracle world.Oracle, rng *rand.Rand, params Params) *Settlement {
	s := &Settlement{
		name:   world.LocationName(rng),
		seed:   rng.Uint32(),
		origin: wpos,
		params: params,
	}
	s.land = land.New(rng)
	s.noise = geom.NewRandomField(rng.Uint32())

	g := &genCtx{oracle: oracle, rng: rng}

	if oracle != nil {
		s.designateFromWorld(g)
	}
	s.placeFarms(g)
	s.placeTown(g)
	if params.Walls {
		s.placeWalls()
	}
	if params.Roads {
		s.placeRoads(g)
	}
	s.placeBuildings(g)

	slog.Debug("settlement generated",
		"name", s.name,
		"origin", wpos,
		"tiles", s.land.TileCount(),
		"farms", s.farms.Len(),
		"structures", len(s.structures),
		"town", s.town != nil,
	)
	return s
}

// Name returns the settlement's name.
func (s *Settlement) Name() string { return s.name }

// Seed returns the seed used for per-position decisions.
func (s *Settlement) Seed() uint32 { return s.seed }

// Origin returns the world position the settlement is centred on.
func (s *Settlement) Origin() geom.Vec2 { return s.origin }

// Land returns the settlement's tile grid. Callers must not modify it.
func (s *Settlement) Land() *land.Land { return s.land }

// Farms returns the farms in creation order.
func (s *Settlement) Farms() []land.Farm { return s.farms.Values() }

// Structures returns the placed structures in placement order.
func (s *Settlement) Structures() []Structure {
	out := make([]Structure, len(s.structures))
	copy(out, s.structures)
	return out
}

// Town returns the town layout, if a town was placed.
func (s *Settlement) Town() (*town.Town, bool) { return s.town, s.town != nil }

// Radius returns the settlement's extent in blocks.
func (s *Settlement) Radius() float32 { return 400 }

// tileRadius is the settlement extent in tiles. Hazard designation covers
// tiles strictly inside it and tile searches never leave it.
func (s *Settlement) tileRadius() int { return int(s.Radius()) / land.AreaSize }

// SpawnRules says what world generation may place inside the settlement.
type SpawnRules struct {
	TreesAllowed bool
}

// SpawnRules returns the rules at a world position. Trees only grow on land
// the settlement left undesignated or marked as hazard.
func (s *Settlement) SpawnRules(wpos geom.Vec2) SpawnRules {
	p := s.land.SampleAt(wpos.Sub(s.origin)).Plot
	return SpawnRules{TreesAllowed: p == nil || p.Kind == land.PlotHazard}
}
