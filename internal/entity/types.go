// Package entity provides the creatures and NPCs a settlement adds to the
// chunks it covers, and the supplement sink that collects them.
package entity

import (
	"github.com/google/uuid"

	"github.com/talgya/hamlet/internal/geom"
)

// BodyKind is the broad body plan of an entity.
type BodyKind uint8

const (
	BodyTrainingDummy BodyKind = iota
	BodyQuadrupedSmall
	BodyBirdMedium
	BodyHumanoid
)

// Species narrows a body plan down to a specific creature.
type Species uint8

const (
	SpeciesNone Species = iota

	// Small quadrupeds
	SpeciesPig
	SpeciesSheep
	SpeciesCat

	// Medium birds
	SpeciesDuck
	SpeciesChicken
	SpeciesGoose
	SpeciesPeacock

	// Humanoids
	SpeciesHuman
	SpeciesElf
	SpeciesDwarf
	SpeciesOrc
)

var speciesNames = map[Species]string{
	SpeciesPig:     "Pig",
	SpeciesSheep:   "Sheep",
	SpeciesCat:     "Cat",
	SpeciesDuck:    "Duck",
	SpeciesChicken: "Chicken",
	SpeciesGoose:   "Goose",
	SpeciesPeacock: "Peacock",
	SpeciesHuman:   "Human",
	SpeciesElf:     "Elf",
	SpeciesDwarf:   "Dwarf",
	SpeciesOrc:     "Orc",
}

// String returns the display name of the species.
func (s Species) String() string {
	if n, ok := speciesNames[s]; ok {
		return n
	}
	return "Unknown"
}

// Sex is used for body variation only.
type Sex uint8

const (
	SexMale   Sex = 0
	SexFemale Sex = 1
)

// Body describes an entity's appearance.
type Body struct {
	Kind    BodyKind `json:"kind"`
	Species Species  `json:"species,omitempty"`
	Sex     Sex      `json:"sex"`
}

// Alignment is how an entity relates to players.
type Alignment uint8

const (
	AlignmentPassive Alignment = iota // Never reacts
	AlignmentNpc                      // Townsfolk
	AlignmentTame                     // Domestic animals
)

// Tool is an item an NPC carries in its main hand.
type Tool uint8

const (
	ToolNone Tool = iota
	ToolBroom
	ToolHoe
	ToolPickaxe
	ToolPitchfork
	ToolRake
	ToolShovel0
	ToolShovel1
)

var toolAssets = [...]string{
	ToolNone:      "",
	ToolBroom:     "common.items.npc_weapons.tool.broom",
	ToolHoe:       "common.items.npc_weapons.tool.hoe",
	ToolPickaxe:   "common.items.npc_weapons.tool.pickaxe",
	ToolPitchfork: "common.items.npc_weapons.tool.pitchfork",
	ToolRake:      "common.items.npc_weapons.tool.rake",
	ToolShovel0:   "common.items.npc_weapons.tool.shovel-0",
	ToolShovel1:   "common.items.npc_weapons.tool.shovel-1",
}

// Asset returns the item asset path for the tool.
func (t Tool) Asset() string {
	if int(t) < len(toolAssets) {
		return toolAssets[t]
	}
	return ""
}

// Info is an entity ready to be spawned into the world.
type Info struct {
	ID        uuid.UUID  `json:"id"`
	Pos       geom.Vec3f `json:"pos"`
	Body      Body       `json:"body"`
	Alignment Alignment  `json:"alignment"`
	Agency    bool       `json:"agency"` // false for objects that never act
	MainTool  Tool       `json:"main_tool,omitempty"`
	Name      string     `json:"name"`
}

// Supplement receives entities produced for a chunk.
type Supplement interface {
	AddEntity(Info)
}

// ChunkSupplement collects the entities added to one chunk.
type ChunkSupplement struct {
	Entities []Info `json:"entities"`
}

// AddEntity appends e.
func (s *ChunkSupplement) AddEntity(e Info) {
	s.Entities = append(s.Entities, e)
}
