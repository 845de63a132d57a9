// Package terrain provides the voxel block model, the writable chunk volume
// that settlements paint into, and the per-column terrain samples they read.
package terrain

import "fmt"

// ChunkSize is the horizontal edge length of a terrain chunk in blocks.
const ChunkSize = 32

// Rgb is an 8-bit colour.
type Rgb struct {
	R uint8 `yaml:"r" json:"r"`
	G uint8 `yaml:"g" json:"g"`
	B uint8 `yaml:"b" json:"b"`
}

// NewRgb builds a colour from its channels.
func NewRgb(r, g, b uint8) Rgb { return Rgb{R: r, G: g, B: b} }

// Channel returns channel i (0 red, 1 green, 2 blue).
func (c Rgb) Channel(i int) uint8 {
	switch i {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}

// Map applies fn to every channel, passing the channel index.
func (c Rgb) Map(fn func(e uint8, i int) uint8) Rgb {
	return Rgb{R: fn(c.R, 0), G: fn(c.G, 1), B: fn(c.B, 2)}
}

// String formats c as a hex triplet.
func (c Rgb) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// SaturatingAdd adds b to a, clamping at 255.
func SaturatingAdd(a uint8, b uint32) uint8 {
	if uint32(a)+b > 255 {
		return 255
	}
	return a + uint8(b)
}

// SaturatingSub subtracts b from a, clamping at 0.
func SaturatingSub(a uint8, b uint8) uint8 {
	if b > a {
		return 0
	}
	return a - b
}

// BlockKind classifies a voxel.
type BlockKind uint8

const (
	BlockAir BlockKind = iota
	BlockWater
	BlockEarth
	BlockRock
	BlockWood
	BlockLeaves
	BlockMisc
)

// SpriteKind is a decoration occupying an otherwise non-solid block.
type SpriteKind uint8

const (
	SpriteEmpty SpriteKind = iota
	SpriteStreetLamp
	SpriteCorn
	SpriteWheatYellow
	SpriteWheatGreen
	SpriteCabbage
	SpritePumpkin
	SpriteFlax
	SpriteCarrot
	SpriteTomato
	SpriteRadish
	SpriteTurnip
	SpriteSunflower
	SpriteScarecrow
	SpriteShortGrass
	SpriteMediumGrass
)

// Block is a single voxel.
type Block struct {
	Kind   BlockKind  `json:"kind"`
	Color  Rgb        `json:"color"`
	Sprite SpriteKind `json:"sprite,omitempty"`
}

// Air returns an empty block carrying the given sprite.
func Air(sprite SpriteKind) Block {
	return Block{Kind: BlockAir, Sprite: sprite}
}

// NewBlock returns a solid block of the given kind and colour.
func NewBlock(kind BlockKind, color Rgb) Block {
	return Block{Kind: kind, Color: color}
}

// IsFluid reports whether the block is water.
func (b Block) IsFluid() bool { return b.Kind == BlockWater }

// IsSolid reports whether the block is neither air nor fluid.
func (b Block) IsSolid() bool { return b.Kind != BlockAir && b.Kind != BlockWater }

// WithSprite returns b carrying sprite.
func (b Block) WithSprite(sprite SpriteKind) Block {
	b.Sprite = sprite
	return b
}
