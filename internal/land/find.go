package land

import "github.com/talgya/hamlet/internal/geom"

// FindTileNear walks outward from origin in spiral order and returns the
// first tile whose plot satisfies match. The plot passed to match is nil for
// undesignated tiles. The walk stops after the ring at Chebyshev distance
// maxRadius; ok is false when nothing within that radius matched.
func (l *Land) FindTileNear(origin geom.Vec2, maxRadius int, match func(*Plot) bool) (geom.Vec2, bool) {
	var spiral geom.Spiral
	for n := geom.SpiralCount(maxRadius); n > 0; n-- {
		pos := origin.Add(spiral.Next())
		if match(l.PlotAt(pos)) {
			return pos, true
		}
	}
	return geom.Vec2{}, false
}

// FindTileDir probes origin, origin+dir, origin+2*dir and so on, returning
// the first tile whose plot satisfies match within maxSteps steps.
func (l *Land) FindTileDir(origin geom.Vec2, dir geom.Dir, maxSteps int, match func(*Plot) bool) (geom.Vec2, bool) {
	step := dir.Vec()
	for i := 0; i <= maxSteps; i++ {
		pos := origin.Add(step.Scale(i))
		if match(l.PlotAt(pos)) {
			return pos, true
		}
	}
	return geom.Vec2{}, false
}
