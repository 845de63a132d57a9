// Package land provides the settlement's sparse tile grid. Tiles are coarse
// square cells of AreaSize blocks; each designated tile points at a plot in
// an append-only arena and may carry way and tower markers. Sampling at block
// resolution goes through a jittered partition so plot borders come out
// organic rather than square.
package land

import (
	"math/bits"
	"math/rand"
	"sort"

	"github.com/google/hilbert"

	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/store"
)

// AreaSize is the edge length of a tile in blocks.
const AreaSize = 32

// Land is the tile grid of one settlement. Positions passed to Land are
// tile coordinates unless a method says otherwise.
type Land struct {
	tiles     map[geom.Vec2]*Tile
	plots     store.Store[Plot]
	partition Partition
	hazard    PlotID
}

// New creates an empty Land. It draws one value from rng to seed the
// partition.
func New(rng *rand.Rand) *Land {
	l := &Land{
		tiles:     make(map[geom.Vec2]*Tile),
		partition: NewPartition(rng.Uint32(), AreaSize, AreaSize*2/5),
	}
	l.hazard = l.plots.Insert(Plot{Kind: PlotHazard})
	return l
}

// Hazard returns the shared hazard plot created with the Land.
func (l *Land) Hazard() PlotID { return l.hazard }

// Partition returns the partition used for block sampling.
func (l *Land) Partition() Partition { return l.partition }

// NewPlot adds p to the arena.
func (l *Land) NewPlot(p Plot) PlotID { return l.plots.Insert(p) }

// Plot returns the plot for id.
func (l *Land) Plot(id PlotID) Plot { return l.plots.Get(id) }

// Plots returns every plot in the arena; the index of each entry is its ID.
func (l *Land) Plots() []Plot { return l.plots.Values() }

// TileAt returns the tile at pos, or nil when pos is undesignated.
// Callers must not modify the returned tile.
func (l *Land) TileAt(pos geom.Vec2) *Tile { return l.tiles[pos] }

// PlotAt returns a copy of the plot at pos, or nil when pos is undesignated.
func (l *Land) PlotAt(pos geom.Vec2) *Plot {
	t, ok := l.tiles[pos]
	if !ok {
		return nil
	}
	p := l.plots.Get(t.Plot)
	return &p
}

// SetPlot designates pos with the given plot, replacing any tile already
// there. Ways and towers on a replaced tile are lost.
func (l *Land) SetPlot(pos geom.Vec2, id PlotID) {
	l.tiles[pos] = &Tile{Plot: id}
}

// SetTower places a tower on the tile at pos. It reports false when pos is
// undesignated.
func (l *Land) SetTower(pos geom.Vec2, tower Tower) bool {
	t, ok := l.tiles[pos]
	if !ok {
		return false
	}
	t.Tower = tower
	return true
}

// TileCount returns the number of designated tiles.
func (l *Land) TileCount() int { return len(l.tiles) }

// TileEntry pairs a tile with its position.
type TileEntry struct {
	Pos  geom.Vec2 `json:"pos"`
	Tile Tile      `json:"tile"`
}

// Tiles returns a copy of every designated tile ordered along a Hilbert
// curve over the occupied bounds, so neighbouring tiles stay close together
// in the result and the order never depends on map iteration.
func (l *Land) Tiles() []TileEntry {
	out := make([]TileEntry, 0, len(l.tiles))
	if len(l.tiles) == 0 {
		return out
	}

	lo := geom.Vec2{X: int(^uint(0) >> 1), Y: int(^uint(0) >> 1)}
	hi := geom.Vec2{X: -lo.X - 1, Y: -lo.Y - 1}
	for pos, t := range l.tiles {
		out = append(out, TileEntry{Pos: pos, Tile: *t})
		lo = geom.Vec2{X: min(lo.X, pos.X), Y: min(lo.Y, pos.Y)}
		hi = geom.Vec2{X: max(hi.X, pos.X), Y: max(hi.Y, pos.Y)}
	}

	keys := sortKeys(out, lo, max(hi.X-lo.X, hi.Y-lo.Y)+1)
	sort.Slice(out, func(i, j int) bool {
		return keys[out[i].Pos] < keys[out[j].Pos]
	})
	return out
}

// sortKeys orders tiles along a Hilbert curve, or row-major across the square
// of the given side if any tile falls off the curve.
func sortKeys(tiles []TileEntry, lo geom.Vec2, side int) map[geom.Vec2]int {
	if keys, ok := hilbertKeys(tiles, lo, side); ok {
		return keys
	}
	keys := make(map[geom.Vec2]int, len(tiles))
	for _, e := range tiles {
		rel := e.Pos.Sub(lo)
		keys[e.Pos] = rel.Y*side + rel.X
	}
	return keys
}

// hilbertKeys maps every tile to its index along a Hilbert curve covering
// the square of the given side at lo. It reports false if any tile could not
// be mapped.
func hilbertKeys(tiles []TileEntry, lo geom.Vec2, side int) (map[geom.Vec2]int, bool) {
	curve, err := hilbert.NewHilbert(1 << bits.Len(uint(side-1)))
	if err != nil {
		return nil, false
	}
	keys := make(map[geom.Vec2]int, len(tiles))
	for _, e := range tiles {
		rel := e.Pos.Sub(lo)
		d, err := curve.MapInverse(rel.X, rel.Y)
		if err != nil {
			return nil, false
		}
		keys[e.Pos] = d
	}
	return keys, true
}

// ToTile returns the tile holding the settlement-relative block position.
func ToTile(pos geom.Vec2) geom.Vec2 { return pos.DivEuclid(AreaSize) }

// TileCenter returns the block position at the middle of tile.
func TileCenter(tile geom.Vec2) geom.Vec2 {
	return tile.Scale(AreaSize).Add(geom.Vec2{X: AreaSize / 2, Y: AreaSize / 2})
}
