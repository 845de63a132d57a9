package geom

// Aabr is an axis-aligned rectangle with inclusive Min and Max corners.
type Aabr struct {
	Min Vec2 `json:"min"`
	Max Vec2 `json:"max"`
}

// CollidesWith reports whether r and o share at least one point.
// Touching edges count as a collision.
func (r Aabr) CollidesWith(o Aabr) bool {
	return r.Max.X >= o.Min.X && r.Min.X <= o.Max.X &&
		r.Max.Y >= o.Min.Y && r.Min.Y <= o.Max.Y
}

// Contains reports whether p lies inside r.
func (r Aabr) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Size returns the extent of r along each axis.
func (r Aabr) Size() Vec2 { return r.Max.Sub(r.Min) }

// Center returns the integer midpoint of r.
func (r Aabr) Center() Vec2 {
	return Vec2{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Aabb is an axis-aligned box with inclusive Min and Max corners.
type Aabb struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// XY projects the box onto the ground plane.
func (b Aabb) XY() Aabr {
	return Aabr{Min: b.Min.XY(), Max: b.Max.XY()}
}

// Contains reports whether p lies inside b.
func (b Aabb) Contains(p Vec3) bool {
	return b.XY().Contains(p.XY()) && p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
