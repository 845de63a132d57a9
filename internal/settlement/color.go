package settlement

import (
	"github.com/talgya/hamlet/internal/building"
	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/land"
	"github.com/talgya/hamlet/internal/terrain"
)

// Colors is the settlement palette.
type Colors struct {
	Building building.Colors `yaml:"building"`

	PlotTownPath terrain.Rgb `yaml:"plot_town_path"`

	PlotFieldDirt  terrain.Rgb `yaml:"plot_field_dirt"`
	PlotFieldMound terrain.Rgb `yaml:"plot_field_mound"`

	WallLow  terrain.Rgb `yaml:"wall_low"`
	WallHigh terrain.Rgb `yaml:"wall_high"`

	TowerColor terrain.Rgb `yaml:"tower_color"`

	PlotDirt  terrain.Rgb `yaml:"plot_dirt"`
	PlotGrass terrain.Rgb `yaml:"plot_grass"`
	PlotWater terrain.Rgb `yaml:"plot_water"`
	PlotTown  terrain.Rgb `yaml:"plot_town"`
}

// DefaultColors returns the built-in palette.
func DefaultColors() Colors {
	return Colors{
		Building:       building.DefaultColors(),
		PlotTownPath:   terrain.NewRgb(80, 40, 20),
		PlotFieldDirt:  terrain.NewRgb(55, 20, 5),
		PlotFieldMound: terrain.NewRgb(40, 60, 10),
		WallLow:        terrain.NewRgb(130, 100, 0),
		WallHigh:       terrain.NewRgb(90, 70, 50),
		TowerColor:     terrain.NewRgb(50, 50, 50),
		PlotDirt:       terrain.NewRgb(90, 70, 50),
		PlotGrass:      terrain.NewRgb(100, 200, 0),
		PlotWater:      terrain.NewRgb(100, 150, 250),
		PlotTown:       terrain.NewRgb(80, 40, 20),
	}
}

// Index carries the shared, read-only resources painting needs.
type Index struct {
	Colors Colors
}

// NewIndex returns an index using the default palette.
func NewIndex() *Index {
	return &Index{Colors: DefaultColors()}
}

var furrowDirs = [4]geom.Vec2{{X: 1}, {Y: 1}, {X: 1, Y: 1}, {X: -1, Y: 1}}

// GetColor returns the map colour of the settlement at a world position, or
// false where the settlement leaves the world's own colour alone.
func (s *Settlement) GetColor(index *Index, wpos geom.Vec2) (terrain.Rgb, bool) {
	colors := &index.Colors
	sample := s.land.SampleAt(wpos.Sub(s.origin))
	if sample.Plot == nil {
		return terrain.Rgb{}, false
	}

	switch p := sample.Plot; p.Kind {
	case land.PlotDirt:
		return colors.PlotDirt, true
	case land.PlotGrass:
		return colors.PlotGrass, true
	case land.PlotWater:
		return colors.PlotWater, true
	case land.PlotTown:
		return colors.PlotTown.Map(func(e uint8, i int) uint8 {
			nz := s.noise.Get(geom.Vec3{X: wpos.X, Y: wpos.Y, Z: i * 5}) % 16
			return terrain.SaturatingSub(terrain.SaturatingAdd(e, nz), 8)
		}), true
	case land.PlotField:
		dir := furrowDirs[p.Seed%uint32(len(furrowDirs))]
		furrow := geom.RemEuclid(wpos.Dot(dir), 6) < 3
		seed := [4]uint8{uint8(p.Seed), uint8(p.Seed >> 8), uint8(p.Seed >> 16), uint8(p.Seed >> 24)}
		r := 32 + seed[0]%64
		if furrow {
			r = 100
		}
		return terrain.NewRgb(r, 64+seed[1]%128, 16+seed[2]%32), true
	}
	return terrain.Rgb{}, false
}
