// Noise-driven world oracle using layered simplex noise.
// Altitude, river and lake layers are sampled lazily per position, so the
// world is unbounded and needs no pre-pass.
package world

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/terrain"
)

// GenConfig holds world generation parameters.
type GenConfig struct {
	Seed           int64   `yaml:"seed"`            // Noise seed
	BaseAltitude   float64 `yaml:"base_altitude"`   // Altitude of the lowest terrain
	AltitudeScale  float64 `yaml:"altitude_scale"`  // Height of the tallest hills above the base
	Frequency      float64 `yaml:"frequency"`       // Base frequency of the altitude layer (per block)
	SeaLevel       float64 `yaml:"sea_level"`       // Columns below this altitude are lakes
	RiverFrequency float64 `yaml:"river_frequency"` // Frequency of the river layer; 0 disables rivers
	RiverWidth     float64 `yaml:"river_width"`     // River band half-width in noise units
	MaxSlope       float64 `yaml:"max_slope"`       // Steepest gradient a settlement tolerates
	PathRange      float64 `yaml:"path_range"`      // Paths further than this are not reported
	PathWidth      float64 `yaml:"path_width"`      // Half-width of world roads
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Seed:           0,
		BaseAltitude:   64,
		AltitudeScale:  96,
		Frequency:      0.0015,
		SeaLevel:       70,
		RiverFrequency: 0.0008,
		RiverWidth:     0.025,
		MaxSlope:       0.75,
		PathRange:      64,
		PathWidth:      5,
	}
}

// SmallTestConfig returns gentle terrain without water, for tests.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Seed:          42,
		BaseAltitude:  64,
		AltitudeScale: 8,
		Frequency:     0.001,
		SeaLevel:      0,
		MaxSlope:      0.75,
		PathRange:     64,
		PathWidth:     5,
	}
}

// Road is a straight world path between two points.
type Road struct {
	From geom.Vec2 `json:"from"`
	To   geom.Vec2 `json:"to"`
}

// NoiseWorld is an Oracle backed by simplex noise layers.
type NoiseWorld struct {
	cfg   GenConfig
	elev  opensimplex.Noise
	river opensimplex.Noise
	roads []Road
}

// NewNoiseWorld builds the noise layers for cfg.
func NewNoiseWorld(cfg GenConfig) *NoiseWorld {
	return &NoiseWorld{
		cfg:   cfg,
		elev:  opensimplex.NewNormalized(cfg.Seed),
		river: opensimplex.New(cfg.Seed + 1),
	}
}

// Config returns the generation parameters.
func (w *NoiseWorld) Config() GenConfig { return w.cfg }

// AddRoad registers a world path between two world positions.
func (w *NoiseWorld) AddRoad(from, to geom.Vec2) {
	w.roads = append(w.roads, Road{From: from, To: to})
}

// Roads returns the registered world paths.
func (w *NoiseWorld) Roads() []Road { return w.roads }

// Altitude returns the terrain height at a world position.
func (w *NoiseWorld) Altitude(wpos geom.Vec2) float64 {
	x, y := float64(wpos.X), float64(wpos.Y)
	elev := octaveNoise(w.elev, x, y, 4, w.cfg.Frequency, 0.5)
	return w.cfg.BaseAltitude + elev*w.cfg.AltitudeScale
}

// riverValue is |noise| on the river layer; the river runs where it is
// below RiverWidth.
func (w *NoiseWorld) riverValue(wpos geom.Vec2) (float64, bool) {
	if w.cfg.RiverFrequency == 0 || w.cfg.RiverWidth == 0 {
		return 0, false
	}
	f := w.cfg.RiverFrequency
	return math.Abs(w.river.Eval2(float64(wpos.X)*f, float64(wpos.Y)*f)), true
}

// IsRiver reports whether wpos lies inside a river band.
func (w *NoiseWorld) IsRiver(wpos geom.Vec2) bool {
	v, ok := w.riverValue(wpos)
	return ok && v < w.cfg.RiverWidth
}

// IsLake reports whether wpos lies below sea level.
func (w *NoiseWorld) IsLake(wpos geom.Vec2) bool {
	return w.Altitude(wpos) < w.cfg.SeaLevel
}

// CanHostSettlement implements Oracle. The check is made at the centre of
// the chunk containing wpos.
func (w *NoiseWorld) CanHostSettlement(wpos geom.Vec2) bool {
	center := wpos.DivEuclid(terrain.ChunkSize).Scale(terrain.ChunkSize).
		Add(geom.Vec2{X: terrain.ChunkSize / 2, Y: terrain.ChunkSize / 2})
	if w.IsRiver(center) || w.IsLake(center) {
		return false
	}
	slope, _ := w.ApproxSlope(center)
	return float64(slope) < w.cfg.MaxSlope
}

// ApproxAltitude implements Oracle.
func (w *NoiseWorld) ApproxAltitude(wpos geom.Vec2) (float32, bool) {
	return float32(w.Altitude(wpos)), true
}

// ApproxSlope implements Oracle using central differences one chunk apart.
func (w *NoiseWorld) ApproxSlope(wpos geom.Vec2) (float32, bool) {
	const d = terrain.ChunkSize / 2
	dx := w.Altitude(wpos.Add(geom.Vec2{X: d})) - w.Altitude(wpos.Sub(geom.Vec2{X: d}))
	dy := w.Altitude(wpos.Add(geom.Vec2{Y: d})) - w.Altitude(wpos.Sub(geom.Vec2{Y: d}))
	return float32(math.Hypot(dx, dy) / (2 * d)), true
}

// NearestPath implements Oracle.
func (w *NoiseWorld) NearestPath(wpos geom.Vec2) (terrain.PathSample, bool) {
	p := wpos.Float()
	best := terrain.PathSample{Dist: float32(math.Inf(1))}
	for _, r := range w.roads {
		nearest := geom.ProjectOntoSegment(p, r.From.Float(), r.To.Float())
		if d := nearest.Distance(p); d < best.Dist {
			best = terrain.PathSample{Dist: d, Nearest: nearest, Width: float32(w.cfg.PathWidth)}
		}
	}
	if float64(best.Dist) > w.cfg.PathRange {
		return terrain.PathSample{}, false
	}
	return best, true
}

// Column samples the full terrain column at a world position.
func (w *NoiseWorld) Column(wpos geom.Vec2) terrain.ColumnSample {
	alt := w.Altitude(wpos)
	col := terrain.ColumnSample{
		Alt:          float32(alt),
		RiverlessAlt: float32(alt),
	}

	if alt < w.cfg.SeaLevel {
		zero := float32(0)
		col.WaterDist = &zero
	} else if v, ok := w.riverValue(wpos); ok && v < w.cfg.RiverWidth*4 {
		// Approximate block distance from the band edge; the band is
		// treated as roughly eight blocks wide.
		dist := float32((v - w.cfg.RiverWidth) / w.cfg.RiverWidth * 8)
		if dist < 0 {
			col.Alt -= 4
			dist = 0
		}
		col.WaterDist = &dist
	}

	if path, ok := w.NearestPath(wpos); ok {
		col.Path = &path
	}
	return col
}

// Sampler returns a ColumnSampler for the chunk whose minimum corner is
// chunkOrigin. Columns are computed on demand and cached.
func (w *NoiseWorld) Sampler(chunkOrigin geom.Vec2) terrain.ColumnSampler {
	cache := make(map[geom.Vec2]*terrain.ColumnSample)
	return func(offs geom.Vec2) (*terrain.ColumnSample, bool) {
		if col, ok := cache[offs]; ok {
			return col, true
		}
		col := w.Column(chunkOrigin.Add(offs))
		cache[offs] = &col
		return &col, true
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
