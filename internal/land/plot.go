package land

import (
	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/store"
	"github.com/talgya/hamlet/internal/town"
)

// PlotID identifies a plot in a Land's arena. IDs are never reused.
type PlotID = store.ID[Plot]

// FarmID identifies a farm in a settlement's farm registry.
type FarmID = store.ID[Farm]

// PlotKind classifies what a plot of land is used for.
type PlotKind uint8

const (
	PlotHazard PlotKind = iota // Unbuildable or dangerous
	PlotDirt
	PlotGrass
	PlotWater
	PlotTown
	PlotField
)

var plotKindNames = [...]string{"hazard", "dirt", "grass", "water", "town", "field"}

// String returns the lowercase kind name.
func (k PlotKind) String() string {
	if int(k) < len(plotKindNames) {
		return plotKindNames[k]
	}
	return "unknown"
}

// Crop is the crop growing on a field.
type Crop uint8

const (
	CropCorn Crop = iota
	CropWheat
	CropCabbage
	CropPumpkin
	CropFlax
	CropCarrot
	CropTomato
	CropRadish
	CropTurnip
	CropSunflower

	CropCount = int(CropSunflower) + 1
)

var cropNames = [...]string{
	"corn", "wheat", "cabbage", "pumpkin", "flax",
	"carrot", "tomato", "radish", "turnip", "sunflower",
}

// String returns the lowercase crop name.
func (c Crop) String() string {
	if int(c) < len(cropNames) {
		return cropNames[c]
	}
	return "unknown"
}

// Plot is the use assigned to one or more tiles. Town and field plots carry
// extra data; the other kinds ignore those fields.
type Plot struct {
	Kind PlotKind `json:"kind"`

	// Town
	District *town.DistrictID `json:"district,omitempty"`

	// Field
	Farm FarmID `json:"farm,omitempty"`
	Seed uint32 `json:"seed,omitempty"`
	Crop Crop   `json:"crop,omitempty"`
}

// TownPlot returns a town plot, optionally tied to a district.
func TownPlot(district *town.DistrictID) Plot {
	return Plot{Kind: PlotTown, District: district}
}

// FieldPlot returns a field plot belonging to farm.
func FieldPlot(farm FarmID, seed uint32, crop Crop) Plot {
	return Plot{Kind: PlotField, Farm: farm, Seed: seed, Crop: crop}
}

// Is reports whether p is present and of one of the given kinds.
// A nil plot (undesignated land) never matches.
func (p *Plot) Is(kinds ...PlotKind) bool {
	if p == nil {
		return false
	}
	for _, k := range kinds {
		if p.Kind == k {
			return true
		}
	}
	return false
}

// Undesignated matches tiles with no plot assigned.
func Undesignated(p *Plot) bool { return p == nil }

// OfKind returns a predicate matching present plots of the given kinds.
func OfKind(kinds ...PlotKind) func(*Plot) bool {
	return func(p *Plot) bool { return p.Is(kinds...) }
}

// Farm groups the fields grown around a base tile.
type Farm struct {
	BaseTile geom.Vec2 `json:"base_tile"`
}
