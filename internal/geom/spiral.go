package geom

// Spiral enumerates offsets around the origin: the origin first, then rings
// of increasing Chebyshev radius. Ring r holds 8r offsets, walked from
// (-r, -r) along +x, then +y, then -x, then -y.
//
// The zero value starts at the origin.
type Spiral struct {
	ring int
	i    int
}

// Next returns the next offset in spiral order.
func (s *Spiral) Next() Vec2 {
	if s.ring == 0 {
		s.ring = 1
		s.i = 0
		return Vec2{}
	}
	r := s.ring
	side := 2 * r
	k := s.i % side
	var pos Vec2
	switch s.i / side {
	case 0:
		pos = Vec2{X: -r + k, Y: -r}
	case 1:
		pos = Vec2{X: r, Y: -r + k}
	case 2:
		pos = Vec2{X: r - k, Y: r}
	default:
		pos = Vec2{X: -r, Y: r - k}
	}
	s.i++
	if s.i >= 8*r {
		s.ring++
		s.i = 0
	}
	return pos
}

// SpiralCount returns the number of offsets with Chebyshev radius <= r.
func SpiralCount(r int) int {
	if r < 0 {
		return 0
	}
	return (2*r + 1) * (2*r + 1)
}

// SpiralOffsets returns the first n offsets in spiral order.
func SpiralOffsets(n int) []Vec2 {
	out := make([]Vec2, 0, n)
	var s Spiral
	for len(out) < n {
		out = append(out, s.Next())
	}
	return out
}
