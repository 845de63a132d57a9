package land

import (
	"github.com/talgya/hamlet/internal/astar"
	"github.com/talgya/hamlet/internal/geom"
)

// PathBudget is the number of tiles FindPath may expand before giving up.
const PathBudget = 250

// FindPath searches for a 4-connected tile path from origin to dest. cost
// prices a step between two adjacent tiles, either of which may be nil for
// undesignated land. The result includes both ends; ok is false when the
// search budget ran out first.
func (l *Land) FindPath(origin, dest geom.Vec2, cost func(from, to *Tile) float32) ([]geom.Vec2, bool) {
	destf := dest.Float()
	return astar.Search(
		origin,
		PathBudget,
		func(pos geom.Vec2) float32 { return pos.Float().Distance(destf) },
		func(pos geom.Vec2) []geom.Vec2 {
			n := pos.Neighbors()
			return n[:]
		},
		func(from, to geom.Vec2) float32 { return cost(l.tiles[from], l.tiles[to]) },
		func(pos geom.Vec2) bool { return pos == dest },
	)
}

// WritePath marks ways of the given kind along consecutive tiles of path.
//
// Each step must be an axis-aligned move; other steps are skipped. The first
// tile of a step is designated as hazard if it was undesignated. Each end of
// the step is then marked on the side facing the other end, provided admit
// accepts that tile's plot. An existing marker is only replaced when
// overwrite is set. Because both ends are filtered separately, a step can
// end up marked on one side only.
func (l *Land) WritePath(path []geom.Vec2, kind WayKind, admit func(Plot) bool, overwrite bool) {
	for i := 0; i+1 < len(path); i++ {
		from, to := path[i], path[i+1]
		dir, ok := geom.DirOf(to.Sub(from))
		if !ok {
			continue
		}
		if _, ok := l.tiles[from]; !ok {
			l.SetPlot(from, l.hazard)
		}

		l.markWay(to, dir.Opposite(), kind, admit, overwrite)
		l.markWay(from, dir, kind, admit, overwrite)
	}
}

func (l *Land) markWay(pos geom.Vec2, side geom.Dir, kind WayKind, admit func(Plot) bool, overwrite bool) {
	t, ok := l.tiles[pos]
	if !ok || !admit(l.plots.Get(t.Plot)) {
		return
	}
	if overwrite || t.Ways[side] == WayNone {
		t.Ways[side] = kind
	}
}
