package building

import (
	"math/rand"

	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/terrain"
)

// Keep is a square stone tower topped with crenellations.
type Keep struct {
	Origin geom.Vec3 `json:"origin"`
	Extent int       `json:"extent"` // wall half extent on both axes
	Height int       `json:"height"` // wall height up to the battlements
	Door   geom.Dir  `json:"door"`
}

const merlonHeight = 2

// GenerateKeep draws a keep standing at pos.
func GenerateKeep(rng *rand.Rand, pos geom.Vec3) Keep {
	return Keep{
		Origin: pos,
		Extent: 5 + rng.Intn(4),
		Height: 14 + rng.Intn(7),
		Door:   geom.Dir(rng.Intn(4)),
	}
}

// Bounds2D returns the ground footprint.
func (k Keep) Bounds2D() geom.Aabr {
	return footprint(k.Origin.XY(), geom.Vec2{X: k.Extent, Y: k.Extent}, 0)
}

// Bounds returns the full box the keep may write to.
func (k Keep) Bounds() geom.Aabb {
	b := k.Bounds2D()
	return geom.Aabb{
		Min: b.Min.WithZ(k.Origin.Z - foundationDepth),
		Max: b.Max.WithZ(k.Origin.Z + k.Height + merlonHeight),
	}
}

// Sample returns the block the keep puts at rpos.
func (k Keep) Sample(colors *Colors, rpos geom.Vec3) (terrain.Block, bool) {
	if !k.Bounds().Contains(rpos) {
		return terrain.Block{}, false
	}
	l := rpos.Sub(k.Origin)
	ax, ay := abs(l.X), abs(l.Y)
	onWall := ax == k.Extent || ay == k.Extent
	stone := terrain.NewBlock(terrain.BlockRock, colors.KeepStone)

	switch {
	case l.Z < 0:
		return stone, true

	case l.Z < k.Height:
		if !onWall {
			if l.Z%5 == 4 {
				return terrain.NewBlock(terrain.BlockWood, colors.Floor), true
			}
			return air, true
		}
		if k.isDoor(l) {
			return air, true
		}
		if l.Z%5 == 2 && (ax+ay)%4 == 0 && !(ax == k.Extent && ay == k.Extent) {
			// Arrow slit
			return air, true
		}
		if l.Z == k.Height-1 {
			return terrain.NewBlock(terrain.BlockRock, colors.KeepTrim), true
		}
		return stone, true

	case l.Z == k.Height:
		// Roof deck
		return terrain.NewBlock(terrain.BlockRock, colors.KeepTrim), true
	}

	// Battlements alternate merlons and gaps along the parapet.
	if onWall && (l.X+l.Y)%2 == 0 {
		return stone, true
	}
	return air, true
}

func (k Keep) isDoor(l geom.Vec3) bool {
	if l.Z > 2 || k.Door.Vec().Dot(l.XY()) <= 0 {
		return false
	}
	if k.Door.Vec().X != 0 {
		return abs(l.X) == k.Extent && abs(l.Y) <= 1
	}
	return abs(l.Y) == k.Extent && abs(l.X) <= 1
}
