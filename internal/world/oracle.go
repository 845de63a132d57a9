// Package world provides the world oracle that settlements consult while
// generating: altitude, slope, water and existing paths.
package world

import (
	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/terrain"
)

// Oracle answers read-only questions about the simulated world at world
// block positions.
type Oracle interface {
	// CanHostSettlement reports whether the chunk containing wpos is free of
	// rivers and lakes and gentle enough to build on.
	CanHostSettlement(wpos geom.Vec2) bool

	// ApproxAltitude returns the terrain altitude near wpos.
	ApproxAltitude(wpos geom.Vec2) (float32, bool)

	// ApproxSlope returns the terrain gradient magnitude near wpos.
	ApproxSlope(wpos geom.Vec2) (float32, bool)

	// NearestPath returns the closest world path to wpos, if any is in range.
	NearestPath(wpos geom.Vec2) (terrain.PathSample, bool)
}
