package building

import (
	"math/rand"

	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/terrain"
)

// House is a timber-framed house with a gabled roof.
type House struct {
	Origin  geom.Vec3 `json:"origin"`  // centre of the ground floor
	Extent  geom.Vec2 `json:"extent"`  // wall half extents
	Storeys int       `json:"storeys"` // 1 or 2
	Door    geom.Dir  `json:"door"`
	Roof    int       `json:"roof"` // palette index
}

const storeyHeight = 4

// GenerateHouse draws a house standing at pos, a settlement-relative block
// position whose Z is the ground altitude.
func GenerateHouse(rng *rand.Rand, pos geom.Vec3) House {
	return House{
		Origin:  pos,
		Extent:  geom.Vec2{X: 3 + rng.Intn(3), Y: 3 + rng.Intn(3)},
		Storeys: 1 + rng.Intn(2),
		Door:    geom.Dir(rng.Intn(4)),
		Roof:    rng.Intn(1 << 8),
	}
}

func (h House) wallHeight() int { return h.Storeys * storeyHeight }

// ridgeAlongX reports whether the roof ridge runs along the X axis.
func (h House) ridgeAlongX() bool { return h.Extent.X >= h.Extent.Y }

func (h House) roofHeight() int {
	return min(h.Extent.X, h.Extent.Y) + 2
}

// Bounds2D returns the ground footprint including the roof overhang.
func (h House) Bounds2D() geom.Aabr {
	return footprint(h.Origin.XY(), h.Extent, 1)
}

// Bounds returns the full box the house may write to.
func (h House) Bounds() geom.Aabb {
	b := h.Bounds2D()
	return geom.Aabb{
		Min: b.Min.WithZ(h.Origin.Z - foundationDepth),
		Max: b.Max.WithZ(h.Origin.Z + h.wallHeight() + h.roofHeight()),
	}
}

// Sample returns the block the house puts at rpos, a settlement-relative
// block position. ok is false where the house leaves terrain untouched.
func (h House) Sample(colors *Colors, rpos geom.Vec3) (b terrain.Block, ok bool) {
	if !h.Bounds().Contains(rpos) {
		return terrain.Block{}, false
	}
	l := rpos.Sub(h.Origin)
	ax, ay := abs(l.X), abs(l.Y)
	inWalls := ax <= h.Extent.X && ay <= h.Extent.Y
	onWall := inWalls && (ax == h.Extent.X || ay == h.Extent.Y)
	corner := ax == h.Extent.X && ay == h.Extent.Y
	top := h.wallHeight()

	switch {
	case l.Z < -1:
		if inWalls {
			return terrain.NewBlock(terrain.BlockRock, colors.Foundation), true
		}
		return terrain.Block{}, false

	case l.Z == -1:
		if onWall {
			return terrain.NewBlock(terrain.BlockRock, colors.Foundation), true
		}
		if inWalls {
			return terrain.NewBlock(terrain.BlockWood, colors.Floor), true
		}
		return terrain.Block{}, false

	case l.Z < top:
		if !inWalls {
			return terrain.Block{}, false
		}
		if !onWall {
			if l.Z > 0 && l.Z%storeyHeight == 0 {
				return terrain.NewBlock(terrain.BlockWood, colors.Floor), true
			}
			return air, true
		}
		if corner || l.Z%storeyHeight == storeyHeight-1 {
			return terrain.NewBlock(terrain.BlockWood, colors.Beam), true
		}
		if h.isDoor(l) {
			return air, true
		}
		if h.isWindow(l) {
			return air, true
		}
		return terrain.NewBlock(terrain.BlockMisc, colors.Wall), true
	}

	return h.sampleRoof(colors, l)
}

func (h House) isDoor(l geom.Vec3) bool {
	if l.Z > 1 || h.Door.Vec().Dot(l.XY()) <= 0 {
		return false
	}
	d := h.Door.Vec()
	switch {
	case d.X != 0:
		return abs(l.X) == h.Extent.X && abs(l.Y) == 0
	default:
		return abs(l.Y) == h.Extent.Y && abs(l.X) == 0
	}
}

func (h House) isWindow(l geom.Vec3) bool {
	along := l.X
	if abs(l.X) == h.Extent.X {
		along = l.Y
	}
	return l.Z%storeyHeight == 1 && abs(along)%3 == 2
}

// sampleRoof draws a gable roof over the walls, overhanging by one block.
func (h House) sampleRoof(colors *Colors, l geom.Vec3) (terrain.Block, bool) {
	rz := l.Z - h.wallHeight()
	across, along := abs(l.Y), abs(l.X)
	acrossExtent, alongExtent := h.Extent.Y, h.Extent.X
	if !h.ridgeAlongX() {
		across, along = along, across
		acrossExtent, alongExtent = alongExtent, acrossExtent
	}

	edge := acrossExtent + 1 - rz
	if edge < 0 || across > edge || along > alongExtent+1 {
		return terrain.Block{}, false
	}
	if across >= edge-1 {
		return terrain.NewBlock(terrain.BlockMisc, colors.roof(h.Roof)), true
	}
	if along == alongExtent {
		// Gable end
		return terrain.NewBlock(terrain.BlockMisc, colors.Wall), true
	}
	if along < alongExtent {
		return air, true
	}
	return terrain.Block{}, false
}
