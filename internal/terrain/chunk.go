package terrain

import (
	"github.com/talgya/hamlet/internal/geom"
)

// Volume is a writable block volume addressed by chunk-local positions.
// Get and Set report false for positions outside the volume.
type Volume interface {
	SizeXY() geom.Vec2
	Get(pos geom.Vec3) (Block, bool)
	Set(pos geom.Vec3, b Block) bool
}

// Chunk is a dense Volume spanning a fixed vertical band [MinZ, MinZ+Height).
type Chunk struct {
	size   geom.Vec2
	minZ   int
	height int
	blocks []Block
}

// NewChunk allocates a chunk filled with fill.
func NewChunk(size geom.Vec2, minZ, height int, fill Block) *Chunk {
	c := &Chunk{
		size:   size,
		minZ:   minZ,
		height: height,
		blocks: make([]Block, size.X*size.Y*height),
	}
	for i := range c.blocks {
		c.blocks[i] = fill
	}
	return c
}

// NewChunkWithGround allocates a standard chunk whose columns are earth up
// to and including ground(x, y) and air above.
func NewChunkWithGround(minZ, height int, ground func(offs geom.Vec2) int) *Chunk {
	c := NewChunk(geom.Vec2{X: ChunkSize, Y: ChunkSize}, minZ, height, Air(SpriteEmpty))
	earth := NewBlock(BlockEarth, NewRgb(96, 72, 40))
	for y := 0; y < ChunkSize; y++ {
		for x := 0; x < ChunkSize; x++ {
			top := ground(geom.Vec2{X: x, Y: y})
			for z := minZ; z <= top && z < minZ+height; z++ {
				c.Set(geom.Vec3{X: x, Y: y, Z: z}, earth)
			}
		}
	}
	return c
}

// SizeXY returns the horizontal size.
func (c *Chunk) SizeXY() geom.Vec2 { return c.size }

// MinZ returns the lowest addressable Z.
func (c *Chunk) MinZ() int { return c.minZ }

// MaxZ returns the highest addressable Z.
func (c *Chunk) MaxZ() int { return c.minZ + c.height - 1 }

func (c *Chunk) index(pos geom.Vec3) (int, bool) {
	z := pos.Z - c.minZ
	if pos.X < 0 || pos.X >= c.size.X || pos.Y < 0 || pos.Y >= c.size.Y || z < 0 || z >= c.height {
		return 0, false
	}
	return (z*c.size.Y+pos.Y)*c.size.X + pos.X, true
}

// Get returns the block at pos.
func (c *Chunk) Get(pos geom.Vec3) (Block, bool) {
	i, ok := c.index(pos)
	if !ok {
		return Block{}, false
	}
	return c.blocks[i], true
}

// Set writes the block at pos.
func (c *Chunk) Set(pos geom.Vec3, b Block) bool {
	i, ok := c.index(pos)
	if !ok {
		return false
	}
	c.blocks[i] = b
	return true
}

// Count returns how many blocks satisfy fn.
func (c *Chunk) Count(fn func(Block) bool) int {
	n := 0
	for _, b := range c.blocks {
		if fn(b) {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of c.
func (c *Chunk) Clone() *Chunk {
	out := *c
	out.blocks = make([]Block, len(c.blocks))
	copy(out.blocks, c.blocks)
	return &out
}

// Diff returns how many blocks differ from o. Both chunks must have the same
// shape.
func (c *Chunk) Diff(o *Chunk) int {
	n := 0
	for i, b := range c.blocks {
		if b != o.blocks[i] {
			n++
		}
	}
	return n
}
