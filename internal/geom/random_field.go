package geom

// RandomField maps integer positions to well-mixed pseudo-random values.
// The same seed and position always produce the same value.
type RandomField struct {
	seed uint32
}

// NewRandomField creates a field for the given seed.
func NewRandomField(seed uint32) RandomField {
	return RandomField{seed: seed}
}

// Get returns the hash of p under the field's seed.
func (f RandomField) Get(p Vec3) uint32 {
	const k1 uint64 = 0xBF58476D1CE4E5B9 // splitmix64 step 1
	const k2 uint64 = 0x94D049BB133111EB // splitmix64 step 2
	h := uint64(f.seed)*0x9E3779B97F4A7C15 ^
		uint64(int64(p.X))*k1 ^
		uint64(int64(p.Y))*0xC2B2AE3D27D4EB4F ^
		uint64(int64(p.Z))*0x165667B19E3779F9
	h ^= h >> 30
	h *= k1
	h ^= h >> 27
	h *= k2
	h ^= h >> 31
	return uint32(h ^ h>>32)
}

// Chance reports true for roughly the given fraction of positions.
func (f RandomField) Chance(p Vec3, chance float32) bool {
	return float32(f.Get(p)%(1<<16))/float32(1<<16) < chance
}
