package land

import "github.com/talgya/hamlet/internal/geom"

// Partition carves the plane into irregular cells. Each square grid cell
// holds one centre, jittered deterministically away from the cell middle;
// points belong to whichever centre is closest.
type Partition struct {
	cellSize int
	spread   int
	field    geom.RandomField
}

// NewPartition creates a partition with square cells of cellSize blocks.
// Centres move at most spread/2 blocks from the cell middle, so every centre
// stays inside its own cell while spread < cellSize.
func NewPartition(seed uint32, cellSize, spread int) Partition {
	return Partition{
		cellSize: cellSize,
		spread:   max(spread, 1),
		field:    geom.NewRandomField(seed),
	}
}

// CellSize returns the grid cell edge length in blocks.
func (p Partition) CellSize() int { return p.cellSize }

// CellOf returns the grid cell containing pos.
func (p Partition) CellOf(pos geom.Vec2) geom.Vec2 {
	return pos.DivEuclid(p.cellSize)
}

// Center returns the jittered centre of cell.
func (p Partition) Center(cell geom.Vec2) geom.Vec2 {
	half := p.cellSize / 2
	jx := int(p.field.Get(cell.WithZ(0))%uint32(p.spread)) - p.spread/2
	jy := int(p.field.Get(cell.WithZ(1))%uint32(p.spread)) - p.spread/2
	return cell.Scale(p.cellSize).Add(geom.Vec2{X: half + jx, Y: half + jy})
}

// Neighborhood returns the centres of the 3x3 cells around the cell holding
// pos. Entry (dx+1)*3 + (dy+1) belongs to the cell offset by (dx, dy), so
// index 4 is pos's own cell.
func (p Partition) Neighborhood(pos geom.Vec2) [9]geom.Vec2 {
	cell := p.CellOf(pos)
	var out [9]geom.Vec2
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			out[(dx+1)*3+(dy+1)] = p.Center(cell.Add(geom.Vec2{X: dx, Y: dy}))
		}
	}
	return out
}
