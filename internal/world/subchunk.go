package world

import "github.com/OCharnyshevich/voxelstore/internal/gamedata"

// SubChunkCells is the number of cells in a 16×16×16 sub-chunk.
const SubChunkCells = 16 * 16 * 16

// SubChunk holds the packed block data of one 16×16×16 band of a chunk.
//
// Cell (x, y, z) lives at index (y<<8)|(z<<4)|x. The low 8 bits of the block
// id are stored in ids; bits 8-11 go to the add nibble array, which is only
// allocated once some cell needs a nonzero extension and is never released.
type SubChunk struct {
	ids        [SubChunkCells]byte
	add        *NibbleArray
	meta       NibbleArray
	blockLight NibbleArray
	skyLight   NibbleArray
	extra      [SubChunkCells]byte

	// One bit per cell, set when the cell holds a non-standard id.
	custom [SubChunkCells / 32]uint32

	airCount int // cells with id 0
	addCount int // cells with a nonzero add nibble
}

// NewSubChunk returns an all-air sub-chunk with full sky light.
func NewSubChunk() *SubChunk {
	s := &SubChunk{airCount: SubChunkCells}
	s.skyLight.Fill(DefaultSkyLight)
	return s
}

// Clone returns a deep copy of s.
func (s *SubChunk) Clone() *SubChunk {
	c := *s
	if s.add != nil {
		add := *s.add
		c.add = &add
	}
	return &c
}

func subIndex(x, y, z int) (int, error) {
	if uint(x) >= 16 || uint(y) >= 16 || uint(z) >= 16 {
		return 0, &BoundsError{X: x, Y: y, Z: z, MaxY: 16}
	}
	return y<<8 | z<<4 | x, nil
}

// AirCount returns the number of cells whose id is 0.
func (s *SubChunk) AirCount() int { return s.airCount }

// ExtensionCount returns the number of cells whose id is above 255.
func (s *SubChunk) ExtensionCount() int { return s.addCount }

// HasExtension reports whether the add nibble array has been allocated.
func (s *SubChunk) HasExtension() bool { return s.add != nil }

// Empty reports whether every cell is air.
func (s *SubChunk) Empty() bool { return s.airCount == SubChunkCells }

// ID returns the block id at (x, y, z).
func (s *SubChunk) ID(x, y, z int) (uint16, error) {
	i, err := subIndex(x, y, z)
	if err != nil {
		return 0, err
	}
	return s.id(i), nil
}

// SetID sets the block id at (x, y, z). The cell's extra byte is reset to 0.
func (s *SubChunk) SetID(x, y, z int, id uint16) error {
	i, err := subIndex(x, y, z)
	if err != nil {
		return err
	}
	if err := checkID(id); err != nil {
		return err
	}
	s.setID(i, id, 0)
	return nil
}

// Meta returns the 4-bit sub-type at (x, y, z).
func (s *SubChunk) Meta(x, y, z int) (uint8, error) {
	i, err := subIndex(x, y, z)
	if err != nil {
		return 0, err
	}
	return s.meta.Get(i), nil
}

// SetMeta sets the 4-bit sub-type at (x, y, z).
func (s *SubChunk) SetMeta(x, y, z int, v uint8) error {
	i, err := subIndex(x, y, z)
	if err != nil {
		return err
	}
	if err := checkNibble("meta", v); err != nil {
		return err
	}
	s.meta.Set(i, v)
	return nil
}

// BlockLight returns the block light level at (x, y, z).
func (s *SubChunk) BlockLight(x, y, z int) (uint8, error) {
	i, err := subIndex(x, y, z)
	if err != nil {
		return 0, err
	}
	return s.blockLight.Get(i), nil
}

// SetBlockLight sets the block light level at (x, y, z).
func (s *SubChunk) SetBlockLight(x, y, z int, v uint8) error {
	i, err := subIndex(x, y, z)
	if err != nil {
		return err
	}
	if err := checkNibble("block light", v); err != nil {
		return err
	}
	s.blockLight.Set(i, v)
	return nil
}

// SkyLight returns the sky light level at (x, y, z).
func (s *SubChunk) SkyLight(x, y, z int) (uint8, error) {
	i, err := subIndex(x, y, z)
	if err != nil {
		return 0, err
	}
	return s.skyLight.Get(i), nil
}

// SetSkyLight sets the sky light level at (x, y, z).
func (s *SubChunk) SetSkyLight(x, y, z int, v uint8) error {
	i, err := subIndex(x, y, z)
	if err != nil {
		return err
	}
	if err := checkNibble("sky light", v); err != nil {
		return err
	}
	s.skyLight.Set(i, v)
	return nil
}

// Extra returns the auxiliary flag byte at (x, y, z).
func (s *SubChunk) Extra(x, y, z int) (uint8, error) {
	i, err := subIndex(x, y, z)
	if err != nil {
		return 0, err
	}
	return s.extra[i], nil
}

// SetExtra sets the auxiliary flag byte at (x, y, z).
func (s *SubChunk) SetExtra(x, y, z int, v uint8) error {
	i, err := subIndex(x, y, z)
	if err != nil {
		return err
	}
	s.extra[i] = v
	return nil
}

// IsCustom reports whether the cell at (x, y, z) holds a non-standard id.
func (s *SubChunk) IsCustom(x, y, z int) (bool, error) {
	i, err := subIndex(x, y, z)
	if err != nil {
		return false, err
	}
	return s.isCustom(i), nil
}

// Block returns every stored field of the cell at (x, y, z).
func (s *SubChunk) Block(x, y, z int) (Block, error) {
	i, err := subIndex(x, y, z)
	if err != nil {
		return Block{}, err
	}
	return s.block(i), nil
}

// SetBlock overwrites every stored field of the cell at (x, y, z).
func (s *SubChunk) SetBlock(x, y, z int, b Block) error {
	i, err := subIndex(x, y, z)
	if err != nil {
		return err
	}
	if err := b.validate(); err != nil {
		return err
	}
	s.setBlock(i, b)
	return nil
}

// Place sets id, meta and extra of the cell at (x, y, z), leaving light
// levels untouched.
func (s *SubChunk) Place(x, y, z int, id uint16, meta, extra uint8) error {
	i, err := subIndex(x, y, z)
	if err != nil {
		return err
	}
	if err := checkID(id); err != nil {
		return err
	}
	if err := checkNibble("meta", meta); err != nil {
		return err
	}
	s.place(i, id, meta, extra)
	return nil
}

func (s *SubChunk) id(i int) uint16 {
	id := uint16(s.ids[i])
	if s.add != nil {
		id |= uint16(s.add.Get(i)) << 8
	}
	return id
}

// setID is the only writer of ids, add, the counters and the custom bitmap.
func (s *SubChunk) setID(i int, id uint16, extra uint8) {
	lo := byte(id)
	hi := uint8(id >> 8)

	var prevHi uint8
	if s.add != nil {
		prevHi = s.add.Get(i)
	}
	prev := uint16(prevHi)<<8 | uint16(s.ids[i])

	s.ids[i] = lo
	if hi != 0 && s.add == nil {
		s.add = new(NibbleArray)
	}
	if s.add != nil {
		s.add.Set(i, hi)
	}

	switch {
	case prev != 0 && id == 0:
		s.airCount++
	case prev == 0 && id != 0:
		s.airCount--
	}
	switch {
	case prevHi != 0 && hi == 0:
		s.addCount--
	case prevHi == 0 && hi != 0:
		s.addCount++
	}

	word, bit := i>>5, uint32(1)<<(i&31)
	if gamedata.IsStandardID(id) {
		s.custom[word] &^= bit
	} else {
		s.custom[word] |= bit
	}

	s.extra[i] = extra
}

func (s *SubChunk) isCustom(i int) bool {
	return s.custom[i>>5]&(1<<(i&31)) != 0
}

func (s *SubChunk) block(i int) Block {
	return Block{
		ID:         s.id(i),
		Meta:       s.meta.Get(i),
		BlockLight: s.blockLight.Get(i),
		SkyLight:   s.skyLight.Get(i),
		Extra:      s.extra[i],
	}
}

func (s *SubChunk) setBlock(i int, b Block) {
	s.place(i, b.ID, b.Meta, b.Extra)
	s.blockLight.Set(i, b.BlockLight)
	s.skyLight.Set(i, b.SkyLight)
}

func (s *SubChunk) place(i int, id uint16, meta, extra uint8) {
	s.meta.Set(i, meta)
	s.setID(i, id, extra)
}
