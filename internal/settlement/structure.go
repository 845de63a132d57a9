package settlement

import (
	"github.com/talgya/hamlet/internal/building"
	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/terrain"
)

// StructureKind says which building a Structure holds.
type StructureKind uint8

const (
	StructureHouse StructureKind = iota
	StructureKeep
)

// String returns the lowercase kind name.
func (k StructureKind) String() string {
	if k == StructureKeep {
		return "keep"
	}
	return "house"
}

// Structure is a building placed in the settlement. Exactly one of the
// building fields is meaningful, selected by kind.
type Structure struct {
	kind  StructureKind
	house building.House
	keep  building.Keep
}

func newHouse(h building.House) Structure { return Structure{kind: StructureHouse, house: h} }

func newKeep(k building.Keep) Structure { return Structure{kind: StructureKeep, keep: k} }

// Kind returns the structure kind.
func (s Structure) Kind() StructureKind { return s.kind }

// House returns the house, if this structure is one.
func (s Structure) House() (building.House, bool) {
	return s.house, s.kind == StructureHouse
}

// Keep returns the keep, if this structure is one.
func (s Structure) Keep() (building.Keep, bool) {
	return s.keep, s.kind == StructureKeep
}

// Bounds2D returns the ground footprint in settlement-relative blocks.
func (s Structure) Bounds2D() geom.Aabr {
	if s.kind == StructureKeep {
		return s.keep.Bounds2D()
	}
	return s.house.Bounds2D()
}

// Bounds returns the box the structure may write to.
func (s Structure) Bounds() geom.Aabb {
	if s.kind == StructureKeep {
		return s.keep.Bounds()
	}
	return s.house.Bounds()
}

// Sample returns the block at a settlement-relative position.
func (s Structure) Sample(index *Index, rpos geom.Vec3) (terrain.Block, bool) {
	colors := &index.Colors.Building
	if s.kind == StructureKeep {
		return s.keep.Sample(colors, rpos)
	}
	return s.house.Sample(colors, rpos)
}
