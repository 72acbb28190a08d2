package world

import (
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/OCharnyshevich/voxelstore/internal/gamedata"
)

const (
	// ChunkHeight is the number of cells in a chunk column.
	ChunkHeight = 256
	// SubChunkCount is the number of 16-high bands in a chunk.
	SubChunkCount = ChunkHeight / 16

	// BiomePlains is the biome every column of a new chunk starts with.
	BiomePlains byte = 1
)

// BlockLookup resolves block ids to their static properties.
type BlockLookup interface {
	Lookup(id uint16) (gamedata.Block, bool)
}

// Direction names one of the four horizontal neighbors of a chunk.
type Direction int

const (
	North Direction = iota // -Z
	South                  // +Z
	East                   // +X
	West                   // -X
)

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	return d ^ 1
}

// Offset returns the chunk coordinate delta of one step in d.
func (d Direction) Offset() (dx, dz int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	default:
		return -1, 0
	}
}

func (d Direction) String() string {
	return [...]string{"north", "south", "east", "west"}[d]
}

// Chunk is a 16×256×16 column of cells made of up to 16 lazily allocated
// sub-chunks.
//
// Block accessors are not synchronized: callers must serialize writers of
// the same chunk. The entity set has its own lock.
type Chunk struct {
	subs      [SubChunkCount]*SubChunk
	heightMap [256]int16
	biomes    [256]byte
	modified  bool
	generated bool

	// Maintained by the owning World; read lock-free by link maps.
	links [4]atomic.Pointer[Chunk]

	entityMu sync.Mutex
	entities map[uuid.UUID]Entity
}

// NewChunk returns an empty, modified chunk whose columns are plains.
func NewChunk() *Chunk {
	c := &Chunk{modified: true}
	for i := range c.biomes {
		c.biomes[i] = BiomePlains
	}
	return c
}

func checkChunk(x, y, z int) error {
	if uint(x) >= 16 || uint(y) >= ChunkHeight || uint(z) >= 16 {
		return &BoundsError{X: x, Y: y, Z: z, MaxY: ChunkHeight}
	}
	return nil
}

func checkColumn(x, z int) error {
	if uint(x) >= 16 || uint(z) >= 16 {
		return &BoundsError{X: x, Z: z, MaxY: ChunkHeight}
	}
	return nil
}

func cellIndex(x, y, z int) int {
	return (y&0xF)<<8 | z<<4 | x
}

// SubChunk returns the band at index i (y>>4), or nil if it is not allocated.
func (c *Chunk) SubChunk(i int) *SubChunk {
	if uint(i) >= SubChunkCount {
		return nil
	}
	return c.subs[i]
}

// CreateSubChunk returns the band at index i, allocating it if needed.
func (c *Chunk) CreateSubChunk(i int) *SubChunk {
	if uint(i) >= SubChunkCount {
		return nil
	}
	if c.subs[i] == nil {
		c.subs[i] = NewSubChunk()
	}
	return c.subs[i]
}

// writeBand returns the band holding y for a write. If the band is absent and
// skip is true, it returns nil and nothing is allocated.
func (c *Chunk) writeBand(y int, skip bool) *SubChunk {
	sub := c.subs[y>>4]
	if sub == nil {
		if skip {
			return nil
		}
		sub = NewSubChunk()
		c.subs[y>>4] = sub
	}
	c.modified = true
	return sub
}

// Modified reports whether the chunk was written since the flag was cleared.
func (c *Chunk) Modified() bool { return c.modified }

// SetModified sets or clears the modified flag.
func (c *Chunk) SetModified(v bool) { c.modified = v }

// Generated reports whether terrain generation has run on the chunk.
func (c *Chunk) Generated() bool { return c.generated }

// SetGenerated sets the generated flag.
func (c *Chunk) SetGenerated(v bool) { c.generated = v }

// ID returns the block id at (x, y, z).
func (c *Chunk) ID(x, y, z int) (uint16, error) {
	if err := checkChunk(x, y, z); err != nil {
		return 0, err
	}
	sub := c.subs[y>>4]
	if sub == nil {
		return 0, nil
	}
	return sub.id(cellIndex(x, y, z)), nil
}

// SetID sets the block id at (x, y, z) and resets its extra byte to 0.
func (c *Chunk) SetID(x, y, z int, id uint16) error {
	if err := checkChunk(x, y, z); err != nil {
		return err
	}
	if err := checkID(id); err != nil {
		return err
	}
	if sub := c.writeBand(y, id == 0); sub != nil {
		sub.setID(cellIndex(x, y, z), id, 0)
	}
	return nil
}

// Meta returns the sub-type at (x, y, z).
func (c *Chunk) Meta(x, y, z int) (uint8, error) {
	if err := checkChunk(x, y, z); err != nil {
		return 0, err
	}
	sub := c.subs[y>>4]
	if sub == nil {
		return 0, nil
	}
	return sub.meta.Get(cellIndex(x, y, z)), nil
}

// SetMeta sets the sub-type at (x, y, z). The band is always materialized.
func (c *Chunk) SetMeta(x, y, z int, v uint8) error {
	if err := checkChunk(x, y, z); err != nil {
		return err
	}
	if err := checkNibble("meta", v); err != nil {
		return err
	}
	c.writeBand(y, false).meta.Set(cellIndex(x, y, z), v)
	return nil
}

// BlockLight returns the block light level at (x, y, z).
func (c *Chunk) BlockLight(x, y, z int) (uint8, error) {
	if err := checkChunk(x, y, z); err != nil {
		return 0, err
	}
	sub := c.subs[y>>4]
	if sub == nil {
		return 0, nil
	}
	return sub.blockLight.Get(cellIndex(x, y, z)), nil
}

// SetBlockLight sets the block light level at (x, y, z). The band is always
// materialized.
func (c *Chunk) SetBlockLight(x, y, z int, v uint8) error {
	if err := checkChunk(x, y, z); err != nil {
		return err
	}
	if err := checkNibble("block light", v); err != nil {
		return err
	}
	c.writeBand(y, false).blockLight.Set(cellIndex(x, y, z), v)
	return nil
}

// SkyLight returns the sky light level at (x, y, z); absent bands read 15.
func (c *Chunk) SkyLight(x, y, z int) (uint8, error) {
	if err := checkChunk(x, y, z); err != nil {
		return 0, err
	}
	sub := c.subs[y>>4]
	if sub == nil {
		return DefaultSkyLight, nil
	}
	return sub.skyLight.Get(cellIndex(x, y, z)), nil
}

// SetSkyLight sets the sky light level at (x, y, z). The band is always
// materialized.
func (c *Chunk) SetSkyLight(x, y, z int, v uint8) error {
	if err := checkChunk(x, y, z); err != nil {
		return err
	}
	if err := checkNibble("sky light", v); err != nil {
		return err
	}
	c.writeBand(y, false).skyLight.Set(cellIndex(x, y, z), v)
	return nil
}

// Extra returns the auxiliary flag byte at (x, y, z).
func (c *Chunk) Extra(x, y, z int) (uint8, error) {
	if err := checkChunk(x, y, z); err != nil {
		return 0, err
	}
	sub := c.subs[y>>4]
	if sub == nil {
		return 0, nil
	}
	return sub.extra[cellIndex(x, y, z)], nil
}

// SetExtra sets the auxiliary flag byte at (x, y, z).
func (c *Chunk) SetExtra(x, y, z int, v uint8) error {
	if err := checkChunk(x, y, z); err != nil {
		return err
	}
	if sub := c.writeBand(y, v == 0); sub != nil {
		sub.extra[cellIndex(x, y, z)] = v
	}
	return nil
}

// IsCustom reports whether the cell at (x, y, z) holds a non-standard id.
func (c *Chunk) IsCustom(x, y, z int) (bool, error) {
	if err := checkChunk(x, y, z); err != nil {
		return false, err
	}
	sub := c.subs[y>>4]
	if sub == nil {
		return false, nil
	}
	return sub.isCustom(cellIndex(x, y, z)), nil
}

// Block returns every stored field of the cell at (x, y, z).
func (c *Chunk) Block(x, y, z int) (Block, error) {
	if err := checkChunk(x, y, z); err != nil {
		return Block{}, err
	}
	sub := c.subs[y>>4]
	if sub == nil {
		return EmptyBlock, nil
	}
	return sub.block(cellIndex(x, y, z)), nil
}

// SetBlock overwrites every stored field of the cell at (x, y, z). Writing
// EmptyBlock into an absent band allocates nothing.
func (c *Chunk) SetBlock(x, y, z int, b Block) error {
	if err := checkChunk(x, y, z); err != nil {
		return err
	}
	if err := b.validate(); err != nil {
		return err
	}
	if sub := c.writeBand(y, b == EmptyBlock); sub != nil {
		sub.setBlock(cellIndex(x, y, z), b)
	}
	return nil
}

// Place sets id, meta and extra at (x, y, z) without touching light levels.
// Placing air with no extra into an absent band allocates nothing.
func (c *Chunk) Place(x, y, z int, id uint16, meta, extra uint8) error {
	if err := checkChunk(x, y, z); err != nil {
		return err
	}
	if err := checkID(id); err != nil {
		return err
	}
	if err := checkNibble("meta", meta); err != nil {
		return err
	}
	if sub := c.writeBand(y, id == 0 && extra == 0); sub != nil {
		sub.place(cellIndex(x, y, z), id, meta, extra)
	}
	return nil
}

// Biome returns the biome id of column (x, z).
func (c *Chunk) Biome(x, z int) (byte, error) {
	if err := checkColumn(x, z); err != nil {
		return 0, err
	}
	return c.biomes[z<<4|x], nil
}

// SetBiome sets the biome id of column (x, z).
func (c *Chunk) SetBiome(x, z int, biome byte) error {
	if err := checkColumn(x, z); err != nil {
		return err
	}
	c.biomes[z<<4|x] = biome
	c.modified = true
	return nil
}

// Height returns the cached height of column (x, z): one above the topmost
// solid opaque cell, or 0.
func (c *Chunk) Height(x, z int) (int, error) {
	if err := checkColumn(x, z); err != nil {
		return 0, err
	}
	return int(c.heightMap[z<<4|x]), nil
}

// SetHeight overrides the cached height of column (x, z).
func (c *Chunk) SetHeight(x, z, h int) error {
	if err := checkColumn(x, z); err != nil {
		return err
	}
	if h < 0 || h > ChunkHeight {
		return &ValueError{Field: "height", Value: h, Max: ChunkHeight}
	}
	c.heightMap[z<<4|x] = int16(h)
	return nil
}

// RecalcHeight rescans column (x, z) from the top and stores its height.
// Ids unknown to reg count as neither solid nor opaque.
func (c *Chunk) RecalcHeight(reg BlockLookup, x, z int) (int, error) {
	if err := checkColumn(x, z); err != nil {
		return 0, err
	}
	h := c.scanHeight(reg, x, z)
	c.heightMap[z<<4|x] = int16(h)
	return h, nil
}

// RecalcHeightMap recomputes the height of every column. Writes never do
// this implicitly, so callers can batch it after an edit.
func (c *Chunk) RecalcHeightMap(reg BlockLookup) {
	for z := 0; z < 16; z++ {
		for x := 0; x < 16; x++ {
			c.heightMap[z<<4|x] = int16(c.scanHeight(reg, x, z))
		}
	}
}

func (c *Chunk) scanHeight(reg BlockLookup, x, z int) int {
	for band := SubChunkCount - 1; band >= 0; band-- {
		sub := c.subs[band]
		if sub == nil || sub.Empty() {
			continue
		}
		for ly := 15; ly >= 0; ly-- {
			id := sub.id(ly<<8 | z<<4 | x)
			if id == 0 {
				continue
			}
			if b, ok := reg.Lookup(id); ok && b.Solid() && b.Opaque() {
				return (band<<4 | ly) + 1
			}
		}
	}
	return 0
}

// Duplicate returns a deep copy of the chunk's sub-chunks and biomes. The
// height map, entities and neighbor links are not copied.
func (c *Chunk) Duplicate() *Chunk {
	d := NewChunk()
	for i, sub := range c.subs {
		if sub != nil {
			d.subs[i] = sub.Clone()
		}
	}
	d.biomes = c.biomes
	return d
}

// Digest returns a 64-bit hash of the chunk's block content and biomes.
// Chunks with the same allocated bands and cell values hash equal.
func (c *Chunk) Digest() uint64 {
	h := xxhash.New()
	var hdr [2]byte
	for i, sub := range c.subs {
		if sub == nil {
			continue
		}
		hdr[0] = byte(i)
		hdr[1] = 0
		if sub.addCount > 0 {
			hdr[1] = 1
		}
		_, _ = h.Write(hdr[:])
		_, _ = h.Write(sub.ids[:])
		if sub.addCount > 0 {
			_, _ = h.Write(sub.add[:])
		}
		_, _ = h.Write(sub.meta[:])
		_, _ = h.Write(sub.blockLight[:])
		_, _ = h.Write(sub.skyLight[:])
		_, _ = h.Write(sub.extra[:])
	}
	binary.BigEndian.PutUint16(hdr[:2], 0xFFFF)
	_, _ = h.Write(hdr[:])
	_, _ = h.Write(c.biomes[:])
	return h.Sum64()
}

// Neighbor returns the linked chunk in direction d, or nil.
func (c *Chunk) Neighbor(d Direction) *Chunk {
	return c.links[d].Load()
}

func (c *Chunk) setNeighbor(d Direction, n *Chunk) {
	c.links[d].Store(n)
}
