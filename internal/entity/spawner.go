// Entity spawning: draws bodies, alignment, equipment and names for the
// townsfolk and animals a settlement places.
package entity

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/talgya/hamlet/internal/geom"
)

// Spawner creates entities. Every draw comes from rng, which is expected to
// be a non-reproducible source; callers that share it across goroutines must
// use a concurrency-safe one.
type Spawner struct {
	rng *rand.Rand
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(rng *rand.Rand) *Spawner {
	return &Spawner{rng: rng}
}

// Spawn creates a townsfolk entity at pos. A dummy becomes a passive
// training dummy; otherwise the body is a small quadruped, a medium bird or,
// most often, a humanoid. The body roll is drawn either way.
func (s *Spawner) Spawn(pos geom.Vec3f, dummy bool) Info {
	e := Info{Pos: pos}

	roll := s.rng.Intn(5)
	human := false
	switch {
	case dummy:
		e.Body = Body{Kind: BodyTrainingDummy}
	case roll == 0:
		species := [...]Species{SpeciesPig, SpeciesSheep, SpeciesCat}[s.rng.Intn(3)]
		e.Body = s.randomBody(BodyQuadrupedSmall, species)
	case roll == 1:
		species := [...]Species{SpeciesDuck, SpeciesChicken, SpeciesGoose, SpeciesPeacock}[s.rng.Intn(4)]
		e.Body = s.randomBody(BodyBirdMedium, species)
	default:
		species := [...]Species{SpeciesHuman, SpeciesElf, SpeciesDwarf, SpeciesOrc}[s.rng.Intn(4)]
		e.Body = s.randomBody(BodyHumanoid, species)
		human = true
	}

	e.Agency = !dummy
	switch {
	case dummy:
		e.Alignment = AlignmentPassive
	case human:
		e.Alignment = AlignmentNpc
	default:
		e.Alignment = AlignmentTame
	}

	if human && s.rng.Intn(2) == 0 {
		e.MainTool = ToolBroom + Tool(s.rng.Intn(7))
	}

	switch {
	case dummy:
		e.Name = "Training Dummy"
	case human:
		e.Name = s.generateName(e.Body.Sex)
	default:
		e.Name = e.Body.Species.String()
	}

	if id, err := uuid.NewRandomFromReader(s.rng); err == nil {
		e.ID = id
	}

	return e
}

func (s *Spawner) randomBody(kind BodyKind, species Species) Body {
	sex := SexMale
	if s.rng.Float32() < 0.5 {
		sex = SexFemale
	}
	return Body{Kind: kind, Species: species, Sex: sex}
}

func (s *Spawner) generateName(sex Sex) string {
	var firsts []string
	if sex == SexMale {
		firsts = maleNames
	} else {
		firsts = femaleNames
	}
	first := firsts[s.rng.Intn(len(firsts))]
	last := lastNames[s.rng.Intn(len(lastNames))]
	return first + " " + last
}

// Name pools for procedural generation.
var maleNames = []string{
	"Aldric", "Bram", "Cedric", "Doran", "Erik", "Finn", "Gareth",
	"Halvard", "Ivan", "Jasper", "Kael", "Leif", "Magnus", "Nils",
	"Oswin", "Per", "Quinn", "Rowan", "Stellan", "Theron", "Ulric",
	"Varen", "Wren", "Yorick", "Zander", "Arlen", "Beric", "Cade",
}

var femaleNames = []string{
	"Astrid", "Brenna", "Calla", "Daria", "Elara", "Freya", "Greta",
	"Helene", "Iris", "Juno", "Kira", "Lena", "Mira", "Nessa",
	"Olwen", "Petra", "Runa", "Senna", "Thea", "Una", "Vera",
	"Willa", "Yara", "Zara", "Ava", "Birgit", "Cora", "Dagny",
}

var lastNames = []string{
	"Voss", "Thornwood", "Blackwood", "Ashford", "Ironhand", "Dunmore",
	"Greenvale", "Stormcrow", "Frostborn", "Hearthstone", "Millward",
	"Copperfield", "Ravenmoor", "Silverdale", "Wolfsbane", "Stoneheart",
	"Deepwell", "Brightwater", "Redforge", "Windholm", "Marshwood",
	"Harper", "Mercer", "Ward", "Thatcher", "Caldwell", "Farrow",
}
