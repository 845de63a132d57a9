// Package town lays out a town's districts around a base tile. A district
// is a rectangle of tiles sharing one altitude; the settlement paints each
// footprint as town land and places buildings on it.
package town

import (
	"math"
	"math/rand"

	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/store"
	"github.com/talgya/hamlet/internal/world"
)

// DistrictID identifies a district within its town.
type DistrictID = store.ID[District]

// District is a rectangular block of town tiles.
type District struct {
	Aabr geom.Aabr `json:"aabr"` // tile coordinates, Max exclusive
	Alt  int       `json:"alt"`  // ground altitude in blocks
}

// Center returns the district's middle tile.
func (d District) Center() geom.Vec2 {
	return geom.Vec2{
		X: d.Aabr.Min.X + (d.Aabr.Max.X-d.Aabr.Min.X)/2,
		Y: d.Aabr.Min.Y + (d.Aabr.Max.Y-d.Aabr.Min.Y)/2,
	}
}

// Area returns the number of tiles covered.
func (d District) Area() int {
	s := d.Aabr.Size()
	return s.X * s.Y
}

// Town is a generated town layout.
type Town struct {
	BaseTile  geom.Vec2
	Radius    int // tiles from BaseTile to the town edge
	districts store.Store[District]
}

const (
	minRadius       = 3
	maxRadius       = 5
	minDistrictSide = 2
	maxDistrictSide = 3
)

// Generate lays out a town centred on baseTile. origin is the settlement's
// world position and tileSize the edge length of a tile in blocks; together
// they place district altitude queries. oracle may be nil, in which case
// every district sits at altitude 0.
func Generate(origin, baseTile geom.Vec2, tileSize int, oracle world.Oracle, rng *rand.Rand) *Town {
	t := &Town{
		BaseTile: baseTile,
		Radius:   minRadius + rng.Intn(maxRadius-minRadius+1),
	}

	lo := baseTile.Sub(geom.Vec2{X: t.Radius, Y: t.Radius})
	hi := baseTile.Add(geom.Vec2{X: t.Radius + 1, Y: t.Radius + 1})

	// Rows of districts, each row cut into blocks of random width.
	for y := lo.Y; y < hi.Y; {
		h := min(minDistrictSide+rng.Intn(maxDistrictSide-minDistrictSide+1), hi.Y-y)
		for x := lo.X; x < hi.X; {
			w := min(minDistrictSide+rng.Intn(maxDistrictSide-minDistrictSide+1), hi.X-x)
			d := District{Aabr: geom.Aabr{
				Min: geom.Vec2{X: x, Y: y},
				Max: geom.Vec2{X: x + w, Y: y + h},
			}}
			d.Alt = districtAltitude(origin, d.Center(), tileSize, oracle)
			t.districts.Insert(d)
			x += w
		}
		y += h
	}

	return t
}

func districtAltitude(origin, tile geom.Vec2, tileSize int, oracle world.Oracle) int {
	if oracle == nil {
		return 0
	}
	wpos := origin.Add(tile.Scale(tileSize)).Add(geom.Vec2{X: tileSize / 2, Y: tileSize / 2})
	alt, ok := oracle.ApproxAltitude(wpos)
	if !ok {
		return 0
	}
	return int(math.Ceil(float64(alt)))
}

// District returns the district for id.
func (t *Town) District(id DistrictID) District {
	return t.districts.Get(id)
}

// DistrictCount returns how many districts the town has.
func (t *Town) DistrictCount() int {
	return t.districts.Len()
}

// Districts returns the districts in creation order; the index of each
// entry is its DistrictID.
func (t *Town) Districts() []District {
	return t.districts.Values()
}
