// Package building generates the houses and keeps placed in a town. Each
// generated building is a small value describing its shape; Sample turns a
// block position into the block the building puts there.
package building

import (
	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/terrain"
)

// Colors is the building palette.
type Colors struct {
	Foundation terrain.Rgb   `yaml:"foundation"`
	Floor      terrain.Rgb   `yaml:"floor"`
	Beam       terrain.Rgb   `yaml:"beam"`
	Wall       terrain.Rgb   `yaml:"wall"`
	Roofs      []terrain.Rgb `yaml:"roofs"`
	KeepStone  terrain.Rgb   `yaml:"keep_stone"`
	KeepTrim   terrain.Rgb   `yaml:"keep_trim"`
}

// DefaultColors returns the built-in building palette.
func DefaultColors() Colors {
	return Colors{
		Foundation: terrain.NewRgb(70, 70, 70),
		Floor:      terrain.NewRgb(100, 75, 50),
		Beam:       terrain.NewRgb(65, 40, 20),
		Wall:       terrain.NewRgb(200, 180, 150),
		Roofs: []terrain.Rgb{
			terrain.NewRgb(150, 60, 40),
			terrain.NewRgb(90, 70, 50),
			terrain.NewRgb(60, 80, 110),
			terrain.NewRgb(120, 110, 60),
		},
		KeepStone: terrain.NewRgb(110, 110, 110),
		KeepTrim:  terrain.NewRgb(80, 80, 90),
	}
}

func (c *Colors) roof(i int) terrain.Rgb {
	if len(c.Roofs) == 0 {
		return c.Wall
	}
	return c.Roofs[i%len(c.Roofs)]
}

// foundationDepth is how far below the ground floor foundations reach.
const foundationDepth = 4

var air = terrain.Air(terrain.SpriteEmpty)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// footprint returns the rectangle of half extents he around origin, grown by
// pad on each side.
func footprint(origin geom.Vec2, he geom.Vec2, pad int) geom.Aabr {
	return geom.Aabr{
		Min: origin.Sub(he).Sub(geom.Vec2{X: pad, Y: pad}),
		Max: origin.Add(he).Add(geom.Vec2{X: pad, Y: pad}),
	}
}
