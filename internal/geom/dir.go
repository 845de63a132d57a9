package geom

// Dir is a cardinal direction on the tile grid.
type Dir uint8

const (
	North Dir = iota // +y
	East             // +x
	South            // -y
	West             // -x
)

// Cardinals lists the unit offsets indexed by Dir.
var Cardinals = [4]Vec2{
	{X: 0, Y: 1},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
}

// Vec returns the unit offset of d.
func (d Dir) Vec() Vec2 { return Cardinals[d] }

// Opposite returns the direction pointing the other way.
func (d Dir) Opposite() Dir { return (d + 2) % 4 }

// String returns a short name for d.
func (d Dir) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// DirOf returns the cardinal direction of an axis-aligned step.
// Diagonal and zero deltas report false.
func DirOf(delta Vec2) (Dir, bool) {
	switch {
	case delta.X == 0 && delta.Y > 0:
		return North, true
	case delta.Y == 0 && delta.X > 0:
		return East, true
	case delta.X == 0 && delta.Y < 0:
		return South, true
	case delta.Y == 0 && delta.X < 0:
		return West, true
	}
	return 0, false
}

// Neighbors returns the four 4-adjacent positions in Dir order.
func (v Vec2) Neighbors() [4]Vec2 {
	var result [4]Vec2
	for i, dir := range Cardinals {
		result[i] = v.Add(dir)
	}
	return result
}
