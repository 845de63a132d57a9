package terrain

import "github.com/talgya/hamlet/internal/geom"

// PathSample describes the nearest world path to a column.
type PathSample struct {
	Dist    float32    // distance from the column to the path centre line
	Nearest geom.Vec2f // closest point on the path, world coordinates
	Width   float32    // half-width of the path surface
}

// ColumnSample is the terrain information for one world column.
type ColumnSample struct {
	Alt          float32
	RiverlessAlt float32
	WaterDist    *float32 // nil when no water is nearby
	Path         *PathSample
}

// ColumnSampler returns the column at a chunk-relative offset. Offsets may
// fall outside the chunk; samplers report false where no data exists.
type ColumnSampler func(offs geom.Vec2) (*ColumnSample, bool)
