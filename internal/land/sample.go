package land

import "github.com/talgya/hamlet/internal/geom"

// WaySample is the way nearest to a sampled block.
type WaySample struct {
	Kind    WayKind    // WayNone when no way covers the block
	Dist    float32    // distance from the block to the way's centre line
	Nearest geom.Vec2f // projection of the block onto the centre line
}

// TowerSample is a tower covering a sampled block.
type TowerSample struct {
	Kind   Tower     // TowerNone when no tower covers the block
	Center geom.Vec2 // tower centre, settlement-relative blocks
}

// Sample describes the land at one settlement-relative block position.
type Sample struct {
	Plot  *Plot // nil on undesignated land; not the same as a hazard
	Way   WaySample
	Tower TowerSample

	// EdgeDist is how much closer the block is to its own cell centre than
	// to the next closest one. It falls to zero on cell borders.
	EdgeDist float32

	// SecondClosest is the tile of the next closest cell centre.
	SecondClosest geom.Vec2
}

// SampleAt resolves the plot, way and tower at a settlement-relative block
// position.
func (l *Land) SampleAt(pos geom.Vec2) Sample {
	var s Sample

	centers := l.partition.Neighborhood(pos)
	closest, second := 0, -1
	for i := 1; i < len(centers); i++ {
		d := centers[i].DistanceSquared(pos)
		switch {
		case d < centers[closest].DistanceSquared(pos):
			closest, second = i, closest
		case second < 0 || d < centers[second].DistanceSquared(pos):
			second = i
		}
	}

	home := centers[closest]
	posf := pos.Float()
	s.SecondClosest = ToTile(centers[second])
	s.EdgeDist = centers[second].Float().Distance(posf) - home.Float().Distance(posf)

	homeTile := ToTile(home)
	tile := l.tiles[homeTile]
	if tile == nil {
		return s
	}
	p := l.plots.Get(tile.Plot)
	s.Plot = &p

	if tile.Tower != TowerNone {
		r := tile.Tower.Radius()
		if float32(home.DistanceSquared(pos)) < r*r {
			s.Tower = TowerSample{Kind: tile.Tower, Center: home}
		}
	}

	for dir, way := range tile.Ways {
		if way == WayNone {
			continue
		}
		neighbor := l.partition.Center(homeTile.Add(geom.Cardinals[dir]))
		proj := geom.ProjectOntoSegment(posf, home.Float(), neighbor.Float())
		dist := proj.Distance(posf)
		if dist >= way.Width() {
			continue
		}
		if s.Way.Kind == WayNone || dist < s.Way.Dist {
			s.Way = WaySample{Kind: way, Dist: dist, Nearest: proj}
		}
	}

	return s
}
