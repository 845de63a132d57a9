package world

import (
	"math/rand"
	"strconv"
)

var (
	namePrefixes = []string{
		"Iron", "Green", "Ash", "Stone", "Mill", "Cross", "Black",
		"Silver", "Red", "White", "Dark", "Bright", "High", "Low",
		"Old", "New", "Far", "Deep", "Long", "Broad", "Gold", "Frost",
		"Storm", "Thorn", "Elm", "Oak", "Pine", "Copper", "River",
	}
	nameSuffixes = []string{
		"haven", "ford", "hollow", "wick", "bridge", "gate", "keep",
		"stead", "wood", "field", "dale", "crest", "vale", "port",
		"town", "bury", "marsh", "well", "brook", "cliff", "moor",
		"ridge", "watch", "fall", "rest", "point", "reach", "helm",
	}
)

// LocationName draws a procedural place name by combining syllables.
// It consumes exactly two values from rng.
func LocationName(rng *rand.Rand) string {
	return namePrefixes[rng.Intn(len(namePrefixes))] + nameSuffixes[rng.Intn(len(nameSuffixes))]
}

// generateNames produces count distinct place names. Once every syllable
// pair is taken, further names carry a number: "Ashford 2", "Ashford 3".
func generateNames(rng *rand.Rand, count int) []string {
	pairs := len(namePrefixes) * len(nameSuffixes)
	used := make(map[string]bool)
	names := make([]string, 0, count)

	for len(names) < count {
		name := LocationName(rng)
		if round := len(names) / pairs; round > 0 {
			name += " " + strconv.Itoa(round+1)
		}
		if !used[name] {
			used[name] = true
			names = append(names, name)
		}
	}

	return names
}
