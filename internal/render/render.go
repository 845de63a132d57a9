// Package render draws settlement maps: the settlement's own map colours
// over a shaded rendition of the world around it.
package render

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/settlement"
	"github.com/talgya/hamlet/internal/world"
)

var water = color.RGBA{R: 40, G: 80, B: 160, A: 255}

// Map draws the square of side 2*Radius() blocks centred on the settlement,
// one pixel per scale blocks, north up.
func Map(s *settlement.Settlement, w *world.NoiseWorld, index *settlement.Index, scale int) *image.RGBA {
	scale = max(scale, 1)
	r := int(s.Radius())
	size := 2 * r / scale

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			wpos := s.Origin().Add(geom.Vec2{X: px*scale - r, Y: r - py*scale})
			img.SetRGBA(px, py, pixel(s, w, index, wpos))
		}
	}
	return img
}

// WritePNG encodes the map as PNG.
func WritePNG(out io.Writer, s *settlement.Settlement, w *world.NoiseWorld, index *settlement.Index, scale int) error {
	return png.Encode(out, Map(s, w, index, scale))
}

func pixel(s *settlement.Settlement, w *world.NoiseWorld, index *settlement.Index, wpos geom.Vec2) color.RGBA {
	if c, ok := s.GetColor(index, wpos); ok {
		return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	}
	col := w.Column(wpos)
	if col.WaterDist != nil && *col.WaterDist <= 0 {
		return water
	}
	cfg := w.Config()
	t := (float64(col.Alt) - cfg.BaseAltitude) / max(cfg.AltitudeScale, 1)
	shade := uint8(min(max(60+t*120, 0), 200))
	return color.RGBA{R: shade / 2, G: shade, B: shade / 3, A: 255}
}
