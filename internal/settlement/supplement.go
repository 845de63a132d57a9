package settlement

import (
	"math/rand"

	"github.com/talgya/hamlet/internal/entity"
	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/land"
	"github.com/talgya/hamlet/internal/terrain"
)

const (
	spawnChance = 1.0 / 2000
	dummyChance = 1.0 / 15
)

// ApplySupplement adds the townsfolk standing on the chunk at chunkOrigin.
// Whether an entity appears at a column depends only on the settlement; what
// it is comes from dynamicRng.
func (s *Settlement) ApplySupplement(dynamicRng *rand.Rand, chunkOrigin geom.Vec2, columns terrain.ColumnSampler, sink entity.Supplement) {
	spawner := entity.NewSpawner(dynamicRng)
	spawnField := geom.NewRandomField(s.seed)
	dummyField := geom.NewRandomField(s.seed + 1)

	for y := 0; y < terrain.ChunkSize; y++ {
		for x := 0; x < terrain.ChunkSize; x++ {
			offs := geom.Vec2{X: x, Y: y}
			wpos := chunkOrigin.Add(offs)

			p := s.land.SampleAt(wpos.Sub(s.origin)).Plot
			if !p.Is(land.PlotTown) || !spawnField.Chance(wpos.WithZ(0), spawnChance) {
				continue
			}
			col, ok := columns(offs)
			if !ok {
				continue
			}

			pos := geom.Vec3f{X: float32(wpos.X), Y: float32(wpos.Y), Z: col.Alt + 3}
			dummy := dummyField.Chance(wpos.WithZ(0), dummyChance)
			sink.AddEntity(spawner.Spawn(pos, dummy))
		}
	}
}
