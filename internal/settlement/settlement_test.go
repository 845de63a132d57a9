package settlement

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hamlet/internal/entity"
	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/land"
	"github.com/talgya/hamlet/internal/terrain"
	"github.com/talgya/hamlet/internal/world"
)

// rejectOracle rules out every position.
type rejectOracle struct{}

func (rejectOracle) CanHostSettlement(geom.Vec2) bool                 { return false }
func (rejectOracle) ApproxAltitude(geom.Vec2) (float32, bool)         { return 0, false }
func (rejectOracle) ApproxSlope(geom.Vec2) (float32, bool)            { return 0, false }
func (rejectOracle) NearestPath(geom.Vec2) (terrain.PathSample, bool) { return terrain.PathSample{}, false }

var testOrigin = geom.Vec2{X: 1000, Y: -2000}

func generate(t *testing.T, seed int64, oracle world.Oracle, params Params) *Settlement {
	t.Helper()
	return GenerateWith(testOrigin, oracle, rand.New(rand.NewSource(seed)), params)
}

func flatColumns(alt float32) terrain.ColumnSampler {
	return func(geom.Vec2) (*terrain.ColumnSample, bool) {
		return &terrain.ColumnSample{Alt: alt, RiverlessAlt: alt}, true
	}
}

func TestGenerateDeterministic(t *testing.T) {
	w := world.NewNoiseWorld(world.SmallTestConfig())
	for _, params := range []Params{DefaultParams(), {Walls: true, Roads: true, DistrictAltitude: true}} {
		a := generate(t, 7, w, params).Snapshot()
		b := generate(t, 7, w, params).Snapshot()
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("Snapshot mismatch for %+v (-first +second):\n%s", params, diff)
		}
	}

	a := generate(t, 7, nil, DefaultParams()).Snapshot()
	b := generate(t, 8, nil, DefaultParams()).Snapshot()
	require.NotEqual(t, a.Seed, b.Seed)
}

func TestGenerateWithoutOracle(t *testing.T) {
	s := generate(t, 3, nil, DefaultParams())

	require.NotEmpty(t, s.Name())
	require.Equal(t, testOrigin, s.Origin())
	require.Len(t, s.Farms(), FarmCount)

	tw, ok := s.Town()
	require.True(t, ok, "expected a town on open land")
	require.Equal(t, land.PlotTown, s.Land().PlotAt(tw.BaseTile).Kind)

	structures := s.Structures()
	require.NotEmpty(t, structures)
	require.Equal(t, StructureKeep, structures[0].Kind())
	for _, st := range structures[1:] {
		require.Equal(t, StructureHouse, st.Kind())
	}

	for _, e := range s.Land().Tiles() {
		require.NotEqual(t, land.PlotHazard, s.Land().Plot(e.Tile.Plot).Kind, "tile %v", e.Pos)
	}
}

func TestStructuresDoNotOverlap(t *testing.T) {
	w := world.NewNoiseWorld(world.SmallTestConfig())
	for seed := int64(1); seed <= 4; seed++ {
		structures := generate(t, seed, w, DefaultParams()).Structures()
		for i := range structures {
			for j := i + 1; j < len(structures); j++ {
				require.False(t, structures[i].Bounds2D().CollidesWith(structures[j].Bounds2D()),
					"seed %d: structures %d and %d overlap", seed, i, j)
			}
		}
	}
}

func TestStructuresStandOnTownLand(t *testing.T) {
	s := generate(t, 5, nil, DefaultParams())
	for _, st := range s.Structures() {
		center := st.Bounds2D().Center()
		require.Equal(t, land.PlotTown, s.Land().PlotAt(land.ToTile(center)).Kind)
	}
}

func TestGenerateRejectedEverywhere(t *testing.T) {
	s := generate(t, 11, rejectOracle{}, Params{Walls: true, Roads: true})

	r := s.tileRadius()
	require.Equal(t, geom.SpiralCount(r-1), s.Land().TileCount())
	for _, e := range s.Land().Tiles() {
		require.Less(t, e.Pos.Chebyshev(), r)
		require.Equal(t, land.PlotHazard, s.Land().Plot(e.Tile.Plot).Kind)
	}

	require.Empty(t, s.Farms())
	_, ok := s.Town()
	require.False(t, ok)
	require.Empty(t, s.Structures())
}

func TestPlotArenaIntegrity(t *testing.T) {
	w := world.NewNoiseWorld(world.SmallTestConfig())
	s := generate(t, 9, w, Params{Walls: true, Roads: true})
	plots := s.Land().Plots()
	farms := s.Farms()
	for _, e := range s.Land().Tiles() {
		require.Less(t, int(e.Tile.Plot), len(plots))
		p := plots[e.Tile.Plot]
		if p.Kind == land.PlotField {
			require.Less(t, int(p.Farm), len(farms))
		}
		if p.District != nil {
			tw, ok := s.Town()
			require.True(t, ok)
			require.Less(t, int(*p.District), tw.DistrictCount())
		}
	}
}

func TestOptionalStagesKeepEarlierStages(t *testing.T) {
	plain := generate(t, 12, nil, DefaultParams())
	walled := generate(t, 12, nil, Params{Walls: true})

	if diff := cmp.Diff(plain.Farms(), walled.Farms()); diff != "" {
		t.Errorf("Farms mismatch (-plain +walled):\n%s", diff)
	}
	a, _ := plain.Town()
	b, _ := walled.Town()
	require.Equal(t, a.BaseTile, b.BaseTile)
}

func townChunk(t *testing.T, s *Settlement) geom.Vec2 {
	t.Helper()
	tw, ok := s.Town()
	require.True(t, ok)
	return s.Origin().Add(tw.BaseTile.Scale(land.AreaSize))
}

func TestApplyToPaintsTown(t *testing.T) {
	s := generate(t, 3, nil, DefaultParams())
	chunkOrigin := townChunk(t, s)

	const ground = 10
	chunk := terrain.NewChunkWithGround(-16, 64, func(geom.Vec2) int { return ground })
	plainEarth := terrain.NewBlock(terrain.BlockEarth, terrain.NewRgb(96, 72, 40))
	isPlain := func(b terrain.Block) bool { return b == plainEarth }
	before := chunk.Count(isPlain)

	s.ApplyTo(NewIndex(), chunkOrigin, flatColumns(ground), chunk)

	require.Less(t, chunk.Count(isPlain), before, "town earth should be repainted")
	require.Positive(t, chunk.Count(func(b terrain.Block) bool {
		return b.Kind == terrain.BlockRock || b.Kind == terrain.BlockWood
	}), "the keep should reach into the town centre chunk")
}

func TestApplyToOutsideLeavesChunk(t *testing.T) {
	s := generate(t, 3, nil, DefaultParams())
	chunk := terrain.NewChunkWithGround(-16, 64, func(geom.Vec2) int { return 10 })
	want := terrain.NewChunkWithGround(-16, 64, func(geom.Vec2) int { return 10 })

	s.ApplyTo(NewIndex(), testOrigin.Add(geom.Vec2{X: 50000}), flatColumns(10), chunk)

	if diff := cmp.Diff(want, chunk, cmp.AllowUnexported(terrain.Chunk{})); diff != "" {
		t.Errorf("chunk mismatch (-want +got):\n%s", diff)
	}
}

func townSupplement(s *Settlement, tw geom.Vec2, seed int64) []entity.Info {
	var sup entity.ChunkSupplement
	for dy := -5; dy <= 5; dy++ {
		for dx := -5; dx <= 5; dx++ {
			chunkOrigin := s.Origin().Add(tw.Add(geom.Vec2{X: dx, Y: dy}).Scale(land.AreaSize))
			s.ApplySupplement(rand.New(rand.NewSource(seed)), chunkOrigin, flatColumns(10), &sup)
		}
	}
	return sup.Entities
}

func TestApplySupplementPlacesTownsfolk(t *testing.T) {
	s := generate(t, 3, nil, DefaultParams())
	tw, _ := s.Town()

	a := townSupplement(s, tw.BaseTile, 1)
	b := townSupplement(s, tw.BaseTile, 2)
	require.NotEmpty(t, a)
	require.Len(t, b, len(a))

	for i := range a {
		require.Equal(t, a[i].Pos, b[i].Pos, "presence depends only on the settlement")
		require.InDelta(t, 13, a[i].Pos.Z, 1e-6)
		wpos := geom.Vec2{X: int(a[i].Pos.X), Y: int(a[i].Pos.Y)}
		require.Equal(t, land.PlotTown, s.Land().SampleAt(wpos.Sub(s.Origin())).Plot.Kind)
	}
}

func TestGetColorAndSpawnRules(t *testing.T) {
	s := generate(t, 3, nil, DefaultParams())
	tw, _ := s.Town()
	center := s.Origin().Add(land.TileCenter(tw.BaseTile))
	far := s.Origin().Add(geom.Vec2{X: 50000, Y: 50000})
	index := NewIndex()

	_, ok := s.GetColor(index, center)
	require.True(t, ok)
	_, ok = s.GetColor(index, far)
	require.False(t, ok)

	require.False(t, s.SpawnRules(center).TreesAllowed)
	require.True(t, s.SpawnRules(far).TreesAllowed)
}

func TestWallsRingTheTown(t *testing.T) {
	w := world.NewNoiseWorld(world.SmallTestConfig())
	walled := 0
	for seed := int64(1); seed <= 10; seed++ {
		s := generate(t, seed, w, Params{Walls: true})
		walls, towers := 0, 0
		for _, e := range s.Land().Tiles() {
			if e.Tile.Contains(land.WayWall) {
				walls++
			}
			if e.Tile.Tower == land.TowerWall {
				towers++
				require.NotEqual(t, land.PlotWater, s.Land().Plot(e.Tile.Plot).Kind, "seed %d: tower on water at %v", seed, e.Pos)
			}
		}
		if walls > 0 {
			walled++
			require.Positive(t, towers, "seed %d: wall without towers", seed)
		}
	}
	require.Positive(t, walled, "no seed produced a wall")
}

func TestRoadsJoinFieldsToTown(t *testing.T) {
	w := world.NewNoiseWorld(world.SmallTestConfig())
	roaded := 0
	for seed := int64(1); seed <= 10; seed++ {
		s := generate(t, seed, w, Params{Roads: true})
		fieldEnds := 0
		for _, e := range s.Land().Tiles() {
			if e.Tile.Contains(land.WayPath) && s.Land().Plot(e.Tile.Plot).Kind == land.PlotField {
				fieldEnds++
			}
		}
		if fieldEnds == 0 {
			continue
		}
		roaded++
		tw, ok := s.Town()
		require.True(t, ok)
		require.True(t, s.Land().TileAt(tw.BaseTile).Contains(land.WayPath), "seed %d: roads should reach the town base", seed)
	}
	require.Positive(t, roaded, "no seed produced a road")
}

// woodLevels lists the z levels of wood blocks in column (0, 0).
func woodLevels(c *terrain.Chunk) []int {
	var zs []int
	for z := c.MinZ(); z <= c.MaxZ(); z++ {
		if b, ok := c.Get(geom.Vec3{Z: z}); ok && b.Kind == terrain.BlockWood {
			zs = append(zs, z)
		}
	}
	return zs
}

func TestPaintWallHeights(t *testing.T) {
	s := generate(t, 3, nil, DefaultParams())
	index := NewIndex()
	levels := func(lo, hi int) []int {
		var zs []int
		for z := lo; z <= hi; z++ {
			zs = append(zs, z)
		}
		return zs
	}
	noWater := &terrain.ColumnSample{}
	waterDist := float32(0)
	atWater := &terrain.ColumnSample{WaterDist: &waterDist}

	tests := []struct {
		name string
		col  *terrain.ColumnSample
		dist float32
		want []int
	}{
		{"centre line", noWater, 0, levels(0, wallHeight-1)},
		{"tapered edge", noWater, 1.5, levels(0, 8)},
		{"water gate", atWater, 0, levels(8, wallHeight-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := terrain.NewChunk(geom.Vec2{X: 1, Y: 1}, -4, 24, terrain.Air(terrain.SpriteEmpty))
			s.paintWall(&index.Colors, c, geom.Vec2{}, testOrigin, tt.col, tt.dist, 0)
			if diff := cmp.Diff(tt.want, woodLevels(c)); diff != "" {
				t.Errorf("wall levels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyToPaintsTowers(t *testing.T) {
	w := world.NewNoiseWorld(world.SmallTestConfig())
	index := NewIndex()
	tower := terrain.NewBlock(terrain.BlockRock, index.Colors.TowerColor)
	const ground = 10

	painted := 0
	for seed := int64(1); seed <= 10 && painted == 0; seed++ {
		s := generate(t, seed, w, Params{Walls: true})
		for _, e := range s.Land().Tiles() {
			if e.Tile.Tower != land.TowerWall || nearTown(s, e.Pos) {
				continue
			}
			center := s.Land().Partition().Center(e.Pos)
			chunk := terrain.NewChunkWithGround(-16, 64, func(geom.Vec2) int { return ground })
			s.ApplyTo(index, s.Origin().Add(center), flatColumns(ground), chunk)

			for z := ground - 2; z < ground+16; z++ {
				b, _ := chunk.Get(geom.Vec3{Z: z})
				require.Equal(t, tower, b, "seed %d: tower block at z %d", seed, z)
			}
			b, _ := chunk.Get(geom.Vec3{Z: ground + 16})
			require.NotEqual(t, terrain.BlockRock, b.Kind)
			painted++
			break
		}
	}
	require.Positive(t, painted, "no tower away from the town")
}

// nearTown reports whether tile or one of its neighbours is town land, where
// houses could cover a tower.
func nearTown(s *Settlement, tile geom.Vec2) bool {
	if s.Land().PlotAt(tile).Is(land.PlotTown) {
		return true
	}
	for _, n := range tile.Neighbors() {
		if s.Land().PlotAt(n).Is(land.PlotTown) {
			return true
		}
	}
	return false
}

func structureOrigin(st Structure) geom.Vec2 {
	if k, ok := st.Keep(); ok {
		return k.Origin.XY()
	}
	h, _ := st.House()
	return h.Origin.XY()
}

func TestBuildingsKeepClearOfPaths(t *testing.T) {
	placed := 0
	for seed := int64(1); seed <= 3; seed++ {
		plain := generate(t, seed, world.NewNoiseWorld(world.SmallTestConfig()), DefaultParams())
		tw, ok := plain.Town()
		if !ok {
			continue
		}
		center := plain.Origin().Add(land.TileCenter(tw.BaseTile))

		w := world.NewNoiseWorld(world.SmallTestConfig())
		w.AddRoad(center.Sub(geom.Vec2{X: 200}), center.Add(geom.Vec2{X: 200}))
		p, ok := w.NearestPath(center)
		require.True(t, ok)
		require.Less(t, p.Dist, float32(MinPathClearance))

		s := generate(t, seed, w, Params{Roads: true})
		for _, st := range s.Structures() {
			origin := structureOrigin(st)
			if p, ok := w.NearestPath(s.Origin().Add(origin)); ok {
				require.GreaterOrEqual(t, p.Dist, float32(MinPathClearance), "seed %d: %v too close to the road", seed, origin)
			}
			require.False(t, s.Land().TileAt(land.ToTile(origin)).Contains(land.WayPath), "seed %d: %v on a path tile", seed, origin)
			placed++
		}
	}
	require.Positive(t, placed)
}

func TestCropSprites(t *testing.T) {
	grow := func(int, uint32) uint32 { return 0 }
	skip := func(int, uint32) uint32 { return 1 }

	require.Equal(t, terrain.SpriteCorn, cropSprite(land.CropCorn, skip))
	require.Equal(t, terrain.SpriteSunflower, cropSprite(land.CropSunflower, skip))
	require.Equal(t, terrain.SpriteWheatYellow, cropSprite(land.CropWheat, grow))
	require.Equal(t, terrain.SpriteWheatGreen, cropSprite(land.CropWheat, skip))

	for crop := land.CropCabbage; crop <= land.CropTurnip; crop++ {
		require.NotEqual(t, terrain.SpriteEmpty, cropSprite(crop, grow), "crop %v", crop)
		require.Equal(t, terrain.SpriteEmpty, cropSprite(crop, skip), "crop %v", crop)
	}
}
