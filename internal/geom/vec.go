// Package geom provides the integer and float vector types, axis-aligned
// boxes, cardinal directions and spiral ordering shared by the generators.
package geom

import "math"

// Vec2 is an integer 2D position. Depending on context it is a world block
// position, a settlement-relative block position, or a tile coordinate.
type Vec2 struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale multiplies both components by k.
func (v Vec2) Scale(k int) Vec2 { return Vec2{X: v.X * k, Y: v.Y * k} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) int { return v.X*o.X + v.Y*o.Y }

// DistanceSquared returns the squared Euclidean distance between v and o.
func (v Vec2) DistanceSquared(o Vec2) int {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

// Float converts v to a float vector.
func (v Vec2) Float() Vec2f { return Vec2f{X: float32(v.X), Y: float32(v.Y)} }

// Chebyshev returns max(|x|, |y|), the ring index of v around the origin.
func (v Vec2) Chebyshev() int {
	return max(abs(v.X), abs(v.Y))
}

// Manhattan returns |x| + |y|.
func (v Vec2) Manhattan() int {
	return abs(v.X) + abs(v.Y)
}

// DivEuclid divides both components by d, rounding towards negative infinity.
func (v Vec2) DivEuclid(d int) Vec2 {
	return Vec2{X: DivEuclid(v.X, d), Y: DivEuclid(v.Y, d)}
}

// Vec3 is an integer 3D position; Z is up.
type Vec3 struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z} }

// XY drops the Z component.
func (v Vec3) XY() Vec2 { return Vec2{X: v.X, Y: v.Y} }

// WithZ lifts a 2D position to 3D.
func (v Vec2) WithZ(z int) Vec3 { return Vec3{X: v.X, Y: v.Y, Z: z} }

// Vec2f is a float 2D vector.
type Vec2f struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Add returns v + o.
func (v Vec2f) Add(o Vec2f) Vec2f { return Vec2f{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2f) Sub(o Vec2f) Vec2f { return Vec2f{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale multiplies both components by k.
func (v Vec2f) Scale(k float32) Vec2f { return Vec2f{X: v.X * k, Y: v.Y * k} }

// Dot returns the dot product of v and o.
func (v Vec2f) Dot(o Vec2f) float32 { return v.X*o.X + v.Y*o.Y }

// Len returns the Euclidean length of v.
func (v Vec2f) Len() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Distance returns the Euclidean distance between v and o.
func (v Vec2f) Distance(o Vec2f) float32 { return v.Sub(o).Len() }

// Normalized returns v scaled to unit length, or the zero vector.
func (v Vec2f) Normalized() Vec2f {
	l := v.Len()
	if l == 0 {
		return Vec2f{}
	}
	return v.Scale(1 / l)
}

// RotatedQuarter rotates v by +90 degrees around Z.
func (v Vec2f) RotatedQuarter() Vec2f { return Vec2f{X: -v.Y, Y: v.X} }

// ProjectOntoSegment returns the point on segment [a, b] closest to p.
func ProjectOntoSegment(p, a, b Vec2f) Vec2f {
	ab := b.Sub(a)
	den := ab.Dot(ab)
	if den == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / den
	t = min(max(t, 0), 1)
	return a.Add(ab.Scale(t))
}

// Vec3f is a float 3D position, used for entity placement.
type Vec3f struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// DivEuclid returns floor(a / b) for b > 0.
func DivEuclid(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// RemEuclid returns the non-negative remainder of a / b for b > 0.
func RemEuclid(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

// Lerp interpolates between a and b by t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
