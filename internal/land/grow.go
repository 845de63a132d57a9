package land

import "github.com/talgya/hamlet/internal/geom"

// growDirs is the order in which GrowRegion visits neighbours.
var growDirs = [4]geom.Vec2{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}

// GrowRegion floods outward from start over 4-connected tiles whose plot
// satisfies match, stopping once maxSize tiles have been collected or no
// admissible neighbour is left. start itself is always included without
// being tested. Tiles are returned in discovery order, so every tile after
// the first is adjacent to an earlier one.
func (l *Land) GrowRegion(start geom.Vec2, maxSize int, match func(*Plot) bool) []geom.Vec2 {
	if maxSize <= 0 {
		return nil
	}

	region := []geom.Vec2{start}
	seen := map[geom.Vec2]bool{start: true}

	for next := 0; next < len(region) && len(region) < maxSize; next++ {
		pos := region[next]
		for _, d := range growDirs {
			if len(region) >= maxSize {
				break
			}
			n := pos.Add(d)
			if seen[n] || !match(l.PlotAt(n)) {
				continue
			}
			seen[n] = true
			region = append(region, n)
		}
	}

	return region
}
