package settlement

import (
	"math"

	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/land"
	"github.com/talgya/hamlet/internal/terrain"
)

// wallHeight is the height of boundary walls above the surface.
const wallHeight = 12

// ApplyTo paints the settlement into vol, a chunk whose column (0, 0) sits at
// world position chunkOrigin. columns supplies terrain for chunk-relative
// offsets; columns it cannot supply are left alone.
//
// Plots are painted first, then walls and towers, then every structure that
// reaches into the chunk. Later writes win.
func (s *Settlement) ApplyTo(index *Index, chunkOrigin geom.Vec2, columns terrain.ColumnSampler, vol terrain.Volume) {
	colors := &index.Colors
	size := vol.SizeXY()

	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			offs := geom.Vec2{X: x, Y: y}
			wpos := chunkOrigin.Add(offs)
			col, ok := columns(offs)
			if !ok {
				continue
			}
			sample := s.land.SampleAt(wpos.Sub(s.origin))

			landSurfaceZ := int(math.Floor(float64(col.RiverlessAlt)))
			surfaceZ := s.blendedSurface(sample, landSurfaceZ)

			if color, sprite, ok := s.surface(colors, sample, col, wpos); ok {
				s.paintColumn(vol, offs, wpos, col, color, sprite, surfaceZ, landSurfaceZ)
			}

			if sample.Way.Kind == land.WayWall {
				s.paintWall(colors, vol, offs, wpos, col, sample.Way.Dist, surfaceZ)
			}

			if sample.Tower.Kind == land.TowerWall {
				tower := terrain.NewBlock(terrain.BlockRock, colors.TowerColor)
				for z := -2; z < 16; z++ {
					vol.Set(offs.WithZ(surfaceZ+z), tower)
				}
			}
		}
	}

	s.paintStructures(index, chunkOrigin, columns, vol)
}

// blendedSurface levels town districts to their own altitude, easing towards
// the neighbouring district near cell borders. Without district levelling it
// returns the terrain surface unchanged.
func (s *Settlement) blendedSurface(sample land.Sample, surfaceZ int) int {
	alt, ok := s.plotDistrictAlt(sample.Plot)
	if !ok {
		return surfaceZ
	}
	other, ok := s.plotDistrictAlt(s.land.PlotAt(sample.SecondClosest))
	if !ok {
		other = surfaceZ
	}
	here, there := float32(alt), float32(other)
	diff := float32(math.Abs(float64(here - there)))
	t := float32(1)
	if diff > 0 {
		t = min(1.25*sample.EdgeDist/diff, 1)
	}
	return int(geom.Lerp((there+here)/2, here, t))
}

func (s *Settlement) plotDistrictAlt(p *land.Plot) (int, bool) {
	if !p.Is(land.PlotTown) {
		return 0, false
	}
	return s.districtAlt(*p)
}

// surface picks the ground colour and decoration sprite of a plot.
func (s *Settlement) surface(colors *Colors, sample land.Sample, col *terrain.ColumnSample, wpos geom.Vec2) (terrain.Rgb, terrain.SpriteKind, bool) {
	p := sample.Plot
	if p == nil {
		return terrain.Rgb{}, terrain.SpriteEmpty, false
	}
	roll := func(seed int, n uint32) uint32 {
		return s.noise.Get(geom.Vec3{X: wpos.X, Y: wpos.Y, Z: seed * 5}) % n
	}

	switch p.Kind {
	case land.PlotDirt:
		return colors.PlotDirt, terrain.SpriteEmpty, true
	case land.PlotGrass:
		return colors.PlotGrass, terrain.SpriteEmpty, true
	case land.PlotWater:
		return colors.PlotWater, terrain.SpriteEmpty, true

	case land.PlotTown:
		sprite := terrain.SpriteEmpty
		if col.Path != nil && s.streetLamp(col.Path, wpos, roll) {
			sprite = terrain.SpriteStreetLamp
		}
		color := colors.PlotTownPath.Map(func(e uint8, i int) uint8 {
			nz := s.noise.Get(geom.Vec3{X: wpos.X, Y: wpos.Y, Z: i * 5}) % 16
			return terrain.SaturatingSub(terrain.SaturatingAdd(e, nz), 8)
		})
		return color, sprite, true

	case land.PlotField:
		dir := furrowDirs[p.Seed%uint32(len(furrowDirs))]
		inFurrow := geom.RemEuclid(wpos.Dot(dir), 5) < 2

		dirtNoise := s.noise.Get(geom.Vec3{X: int(p.Seed % 4096), Y: int(p.Seed % 4096), Z: int(p.Seed % 4096)}) % 32
		moundNoise := s.noise.Get(geom.Vec3{X: int(p.Seed%4096 + 1), Y: int(p.Seed%4096 + 1), Z: int(p.Seed%4096 + 1)}) % 32

		sprite := terrain.SpriteEmpty
		if inFurrow {
			if roll(0, 5) == 0 {
				sprite = cropSprite(p.Crop, roll)
				if sprite == terrain.SpriteEmpty && roll(9, 400) == 0 {
					sprite = terrain.SpriteScarecrow
				}
			}
			return colors.PlotFieldDirt.Map(func(e uint8, _ int) uint8 {
				return terrain.SaturatingAdd(e, dirtNoise)
			}), sprite, true
		}

		switch {
		case roll(0, 20) == 0:
			sprite = terrain.SpriteShortGrass
		case roll(1, 30) == 0:
			sprite = terrain.SpriteMediumGrass
		}
		mound := roll(0, 8)
		return colors.PlotFieldMound.Map(func(e uint8, _ int) uint8 {
			return terrain.SaturatingAdd(terrain.SaturatingAdd(e, mound), moundNoise)
		}), sprite, true
	}

	return terrain.Rgb{}, terrain.SpriteEmpty, false
}

// streetLamp places lamps at intervals along the edge of nearby paths, and
// very rarely away from them.
func (s *Settlement) streetLamp(path *terrain.PathSample, wpos geom.Vec2, roll func(int, uint32) uint32) bool {
	pathDir := path.Nearest.Sub(wpos.Float()).RotatedQuarter().Normalized()
	var isLamp bool
	if abs32(pathDir.X) > abs32(pathDir.Y) {
		isLamp = float32(math.Mod(float64(wpos.X), 30))/abs32(pathDir.Y) <= 1
	} else {
		isLamp = float32(math.Mod(float64(wpos.Y+10), 30))/abs32(pathDir.X) <= 1
	}
	return (path.Dist > 6 && path.Dist < 7 && isLamp) || (roll(0, 2000) == 0 && path.Dist > 20)
}

// halfCrops grow on half of their furrow blocks; other crops map to empty.
var halfCrops = [land.CropCount]terrain.SpriteKind{
	land.CropCabbage: terrain.SpriteCabbage,
	land.CropPumpkin: terrain.SpritePumpkin,
	land.CropFlax:    terrain.SpriteFlax,
	land.CropCarrot:  terrain.SpriteCarrot,
	land.CropTomato:  terrain.SpriteTomato,
	land.CropRadish:  terrain.SpriteRadish,
	land.CropTurnip:  terrain.SpriteTurnip,
}

func cropSprite(crop land.Crop, roll func(int, uint32) uint32) terrain.SpriteKind {
	switch crop {
	case land.CropCorn:
		return terrain.SpriteCorn
	case land.CropWheat:
		if roll(1, 2) == 0 {
			return terrain.SpriteWheatYellow
		}
		return terrain.SpriteWheatGreen
	case land.CropSunflower:
		return terrain.SpriteSunflower
	}

	if int(crop) >= len(halfCrops) || roll(int(crop), 2) != 0 {
		return terrain.SpriteEmpty
	}
	return halfCrops[crop]
}

// paintColumn writes dithered earth below the surface, the decoration at the
// surface and clears the air above it. Columns near water or on a world path
// are skipped.
func (s *Settlement) paintColumn(vol terrain.Volume, offs, wpos geom.Vec2, col *terrain.ColumnSample, color terrain.Rgb, sprite terrain.SpriteKind, surfaceZ, landSurfaceZ int) {
	if col.WaterDist != nil && *col.WaterDist <= 2 {
		return
	}
	if col.Path != nil && col.Path.Dist < col.Path.Width {
		return
	}

	nz := s.noise.Get(wpos.WithZ(surfaceZ))
	earth := terrain.NewBlock(terrain.BlockEarth, color.Map(func(e uint8, _ int) uint8 {
		return noisyChannel(e, nz, 4)
	}))

	diff := surfaceZ - landSurfaceZ
	if diff < 0 {
		diff = -diff
	}
	for z := -8 - diff; z < 4+diff; z++ {
		pos := offs.WithZ(surfaceZ + z)
		block, ok := vol.Get(pos)
		if !ok {
			continue
		}

		switch {
		case z == 0 && sprite != terrain.SpriteEmpty:
			if block.IsFluid() {
				vol.Set(pos, block.WithSprite(sprite))
			} else {
				vol.Set(pos, terrain.Air(sprite))
			}
		case z >= 0:
			if block.Kind != terrain.BlockWater {
				vol.Set(pos, terrain.Air(terrain.SpriteEmpty))
			}
		default:
			vol.Set(pos, earth)
		}
	}
}

// noisyChannel shifts e by a noise-derived amount in [-factor, factor).
func noisyChannel(e uint8, nz, factor uint32) uint8 {
	v := uint32(e) + nz%(factor*2)
	if v < factor {
		return 0
	}
	return uint8(min(v-factor, 255))
}

// paintWall raises a tapering wall along a wall way. Near water the wall
// dips to form a water gate.
func (s *Settlement) paintWall(colors *Colors, vol terrain.Volume, offs, wpos geom.Vec2, col *terrain.ColumnSample, dist float32, surfaceZ int) {
	t := float32(geom.NewRandomField(0).Get(wpos.WithZ(0))%256) / 256
	color := terrain.Rgb{
		R: lerpChannel(colors.WallLow.R, colors.WallHigh.R, t),
		G: lerpChannel(colors.WallLow.G, colors.WallHigh.G, t),
		B: lerpChannel(colors.WallLow.B, colors.WallHigh.B, t),
	}
	wall := terrain.NewBlock(terrain.BlockWood, color)

	zOffset := 0
	if col.WaterDist != nil {
		wd := math.Max(float64(*col.WaterDist), 0)
		zOffset = int((math.Cos(math.Min(wd*0.45, math.Pi)) + 1) * 4)
	}

	width := land.WayWall.Width()
	for z := zOffset; z < wallHeight; z++ {
		if dist/width < min((1-float32(z)/wallHeight)*2, 1) {
			vol.Set(offs.WithZ(surfaceZ+z), wall)
		}
	}
}

func lerpChannel(a, b uint8, t float32) uint8 {
	return uint8(int(geom.Lerp(float32(a), float32(b), t)) % 256)
}

// paintStructures writes every structure whose footprint reaches the chunk.
func (s *Settlement) paintStructures(index *Index, chunkOrigin geom.Vec2, columns terrain.ColumnSampler, vol terrain.Volume) {
	rel := chunkOrigin.Sub(s.origin)
	chunk := geom.Aabr{Min: rel, Max: rel.Add(vol.SizeXY()).Add(geom.Vec2{X: 1, Y: 1})}

	for _, st := range s.structures {
		if !st.Bounds2D().CollidesWith(chunk) {
			continue
		}
		bounds := st.Bounds()
		for x := bounds.Min.X; x <= bounds.Max.X; x++ {
			for y := bounds.Min.Y; y <= bounds.Max.Y; y++ {
				offs := geom.Vec2{X: x, Y: y}.Sub(rel)
				col, ok := columns(offs)
				if !ok {
					continue
				}
				minZ := min(bounds.Min.Z, int(math.Floor(float64(col.Alt)))-1)
				for z := minZ; z <= bounds.Max.Z; z++ {
					if block, ok := st.Sample(index, geom.Vec3{X: x, Y: y, Z: z}); ok {
						vol.Set(offs.WithZ(z), block)
					}
				}
			}
		}
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
