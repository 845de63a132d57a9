package settlement

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/talgya/hamlet/internal/building"
	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/land"
	"github.com/talgya/hamlet/internal/town"
	"github.com/talgya/hamlet/internal/world"
)

const (
	FarmCount     = 6
	FieldsPerFarm = 5
	MinFieldSize  = 5
	MaxFieldSize  = 24 // exclusive

	TownAttempts = 3

	RoadCount = 6

	BuildingSpiral   = 16 * 16 // tiles around the town centre
	BuildingAttempts = 25
	MinPathClearance = 28 // blocks between a building and a world path
)

// genCtx is threaded through the generation stages.
type genCtx struct {
	oracle world.Oracle
	rng    *rand.Rand
}

// searchRadius bounds tile searches to tiles strictly inside the settlement.
func (s *Settlement) searchRadius() int { return s.tileRadius() - 1 }

// designateFromWorld marks tiles the world rules out, plus one in sixteen at
// random, as hazard.
func (s *Settlement) designateFromWorld(g *genCtx) {
	hazard := s.land.Hazard()
	n := 0
	var spiral geom.Spiral
	for i := geom.SpiralCount(s.searchRadius()); i > 0; i-- {
		tile := spiral.Next()
		wpos := s.origin.Add(tile.Scale(land.AreaSize))

		blocked := false
		for _, offs := range [4]geom.Vec2{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}} {
			if !g.oracle.CanHostSettlement(wpos.Add(offs.Scale(land.AreaSize / 2))) {
				blocked = true
				break
			}
		}
		if blocked || g.rng.Intn(16) == 0 {
			s.land.SetPlot(tile, hazard)
			n++
		}
	}
	slog.Debug("designated hazards", "tiles", n)
}

func (s *Settlement) placeFarms(g *genCtx) {
	fields := 0
	for i := 0; i < FarmCount; i++ {
		base, ok := s.land.FindTileNear(geom.Vec2{}, s.searchRadius(), land.Undesignated)
		if !ok {
			continue
		}
		farm := s.farms.Insert(land.Farm{BaseTile: base})
		for j := 0; j < FieldsPerFarm; j++ {
			if _, ok := s.placeField(farm, base, g.rng); ok {
				fields++
			}
		}
	}
	slog.Debug("placed farms", "farms", s.farms.Len(), "fields", fields)
}

// placeField grows a field of random size and crop next to origin.
func (s *Settlement) placeField(farm land.FarmID, origin geom.Vec2, rng *rand.Rand) (land.PlotID, bool) {
	center, ok := s.land.FindTileNear(origin, s.searchRadius(), land.Undesignated)
	if !ok {
		return 0, false
	}
	seed := rng.Uint32()
	crop := land.Crop(rng.Intn(land.CropCount))
	field := s.land.NewPlot(land.FieldPlot(farm, seed, crop))

	size := MinFieldSize + rng.Intn(MaxFieldSize-MinFieldSize)
	for _, pos := range s.land.GrowRegion(center, size, land.Undesignated) {
		s.land.SetPlot(pos, field)
	}
	return field, true
}

func (s *Settlement) placeTown(g *genCtx) {
	origin := geom.Vec2{X: g.rng.Intn(5) - 2, Y: g.rng.Intn(5) - 2}

	for i := 0; i < TownAttempts && s.town == nil; i++ {
		base, ok := s.land.FindTileNear(origin, s.searchRadius(), land.OfKind(land.PlotField, land.PlotDirt))
		if !ok {
			continue
		}

		t := town.Generate(s.origin, base, land.AreaSize, g.oracle, g.rng)
		for idx, d := range t.Districts() {
			id := town.DistrictID(idx)
			plot := s.land.NewPlot(land.TownPlot(&id))
			for y := d.Aabr.Min.Y; y < d.Aabr.Max.Y; y++ {
				for x := d.Aabr.Min.X; x < d.Aabr.Max.X; x++ {
					pos := geom.Vec2{X: x, Y: y}
					if !s.land.PlotAt(pos).Is(land.PlotHazard) {
						s.land.SetPlot(pos, plot)
					}
				}
			}
		}
		s.town = t
		slog.Debug("placed town", "base", base, "districts", t.DistrictCount())
	}
}

// placeWalls rings the town with a wall: spokes run out from the town in
// the four cardinal directions, and paths between neighbouring spokes carry
// wall markers with a tower on every buildable tile.
func (s *Settlement) placeWalls() {
	if s.town == nil {
		return
	}
	center := s.town.BaseTile

	var spokes []geom.Vec2
	for dir := geom.North; dir <= geom.West; dir++ {
		spoke, ok := s.land.FindTileDir(center, dir, s.searchRadius(), func(p *land.Plot) bool {
			return !p.Is(land.PlotWater, land.PlotTown)
		})
		if ok {
			spokes = append(spokes, spoke)
		}
	}
	if len(spokes) < 2 {
		return
	}

	var wall []geom.Vec2
	for i := range spokes {
		path, ok := s.land.FindPath(spokes[i], spokes[(i+1)%len(spokes)], s.wallCost)
		if ok {
			wall = append(wall, path...)
		}
	}
	if len(wall) == 0 {
		return
	}

	grass := s.land.NewPlot(land.Plot{Kind: land.PlotGrass})
	buildable := func(p land.Plot) bool { return p.Kind != land.PlotWater }
	towers := 0
	for _, pos := range wall {
		if s.land.TileAt(pos) == nil {
			s.land.SetPlot(pos, grass)
		}
		if p := s.land.PlotAt(pos); p != nil && buildable(*p) {
			s.land.SetTower(pos, land.TowerWall)
			towers++
		}
	}
	wall = append(wall, wall[0])
	s.land.WritePath(wall, land.WayWall, buildable, true)
	slog.Debug("placed walls", "tiles", len(wall)-1, "towers", towers)
}

func (s *Settlement) wallCost(_, to *land.Tile) float32 {
	if to == nil {
		return 10
	}
	switch s.land.Plot(to.Plot).Kind {
	case land.PlotHazard:
		return 200
	case land.PlotWater:
		return 40
	case land.PlotTown:
		return 10000
	default:
		return 10
	}
}

// placeRoads runs paths from fields around the settlement to the town.
func (s *Settlement) placeRoads(g *genCtx) {
	if s.town == nil {
		return
	}

	var dir geom.Vec2f
	roads := 0
	reach := float32(s.tileRadius()) / 2
	for i := 0; i < RoadCount; i++ {
		x, y := g.rng.Float32(), g.rng.Float32()
		dir = geom.Vec2f{X: x - 0.5, Y: y - 0.5}.Scale(2).Sub(dir).Normalized()
		target := geom.Vec2{X: int(dir.X * reach), Y: int(dir.Y * reach)}

		origin, ok := s.land.FindTileNear(target, s.searchRadius(), land.OfKind(land.PlotField))
		if !ok {
			continue
		}
		path, ok := s.land.FindPath(origin, s.town.BaseTile, s.roadCost)
		if !ok {
			continue
		}
		s.land.WritePath(path, land.WayPath, func(land.Plot) bool { return true }, false)
		roads++
	}
	slog.Debug("placed roads", "roads", roads)
}

func (s *Settlement) roadCost(from, to *land.Tile) float32 {
	if to != nil {
		switch s.land.Plot(to.Plot).Kind {
		case land.PlotDirt:
			return 0
		case land.PlotWater:
			return 20
		case land.PlotHazard:
			return 50
		}
	}
	switch {
	case from != nil && to != nil && from.Contains(land.WayWall):
		if to.Contains(land.WayWall) {
			return 1000
		}
		return 10
	case from != nil && to != nil:
		return 1
	default:
		return 1000
	}
}

// placeBuildings fills the town with houses, with a keep at its centre.
func (s *Settlement) placeBuildings(g *genCtx) {
	if s.town == nil {
		return
	}
	center := s.town.BaseTile

	var spiral geom.Spiral
	for n := 0; n < BuildingSpiral; n++ {
		tile := center.Add(spiral.Next())
		count := g.rng.Intn(3) + 2
		for i := 0; i < count; i++ {
			for attempt := 0; attempt < BuildingAttempts; attempt++ {
				if s.tryPlaceBuilding(g, tile, tile == center && i == 0) {
					break
				}
			}
		}
	}
	slog.Debug("placed buildings", "structures", len(s.structures))
}

func (s *Settlement) tryPlaceBuilding(g *genCtx, tile geom.Vec2, keep bool) bool {
	const jitter = land.AreaSize / 4
	pos := land.TileCenter(tile).Add(geom.Vec2{
		X: g.rng.Intn(2*jitter) - jitter,
		Y: g.rng.Intn(2*jitter) - jitter,
	})
	tilePos := land.ToTile(pos)

	t := s.land.TileAt(tilePos)
	if t == nil || t.Contains(land.WayPath) {
		return false
	}
	if g.oracle != nil {
		if p, ok := g.oracle.NearestPath(s.origin.Add(pos)); ok && p.Dist < MinPathClearance {
			return false
		}
	}

	plot := s.land.Plot(t.Plot)
	if plot.Kind != land.PlotTown {
		return false
	}

	alt, ok := s.districtAlt(plot)
	if !ok {
		alt = s.worldAlt(g.oracle, pos)
	}

	var st Structure
	if keep {
		st = newKeep(building.GenerateKeep(g.rng, pos.WithZ(alt)))
	} else {
		st = newHouse(building.GenerateHouse(g.rng, pos.WithZ(alt)))
	}

	bounds := st.Bounds2D()
	for _, other := range s.structures {
		if other.Bounds2D().CollidesWith(bounds) {
			return false
		}
	}
	s.structures = append(s.structures, st)
	return true
}

// districtAlt returns the levelled altitude of a town plot's district when
// district levelling is enabled.
func (s *Settlement) districtAlt(p land.Plot) (int, bool) {
	if !s.params.DistrictAltitude || p.District == nil || s.town == nil {
		return 0, false
	}
	return s.town.District(*p.District).Alt, true
}

func (s *Settlement) worldAlt(oracle world.Oracle, rpos geom.Vec2) int {
	if oracle == nil {
		return 0
	}
	alt, ok := oracle.ApproxAltitude(s.origin.Add(rpos))
	if !ok {
		return 0
	}
	return int(math.Ceil(float64(alt)))
}
