package settlement

import (
	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/land"
	"github.com/talgya/hamlet/internal/town"
)

// Snapshot is a plain-data copy of a generated settlement, suitable for
// comparison, JSON encoding and persistence.
type Snapshot struct {
	Name       string              `json:"name"`
	Seed       uint32              `json:"seed"`
	Origin     geom.Vec2           `json:"origin"`
	Plots      []land.Plot         `json:"plots"`
	Tiles      []land.TileEntry    `json:"tiles"`
	Farms      []land.Farm         `json:"farms"`
	Districts  []town.District     `json:"districts,omitempty"`
	TownBase   *geom.Vec2          `json:"town_base,omitempty"`
	Structures []StructureSnapshot `json:"structures"`
}

// StructureSnapshot records where a structure stands.
type StructureSnapshot struct {
	Kind   string    `json:"kind"`
	Bounds geom.Aabb `json:"bounds"`
}

// Snapshot copies the settlement's generated state. Tiles come out in a
// stable order.
func (s *Settlement) Snapshot() Snapshot {
	snap := Snapshot{
		Name:       s.name,
		Seed:       s.seed,
		Origin:     s.origin,
		Plots:      s.land.Plots(),
		Tiles:      s.land.Tiles(),
		Farms:      s.farms.Values(),
		Structures: make([]StructureSnapshot, 0, len(s.structures)),
	}
	if s.town != nil {
		base := s.town.BaseTile
		snap.TownBase = &base
		snap.Districts = s.town.Districts()
	}
	for _, st := range s.structures {
		snap.Structures = append(snap.Structures, StructureSnapshot{
			Kind:   st.Kind().String(),
			Bounds: st.Bounds(),
		})
	}
	return snap
}
