package world

// ChunkSource is the chunk index a LinkMap falls back to when neighbor links
// run out. *World implements it.
type ChunkSource interface {
	ChunkInBounds(cx, cz int) bool
	Chunk(cx, cz int) (*Chunk, bool)
	// PutChunk must be an atomic create-if-absent: when a chunk is already
	// registered it returns that chunk and false.
	PutChunk(cx, cz int, c *Chunk) (*Chunk, bool)
	EdgeChunk() *Chunk
}

// LinkStats counts how a LinkMap resolved chunks.
type LinkStats struct {
	Hits    int // cursor already on the target chunk
	Steps   int // neighbor links followed
	Lookups int // fallbacks to the chunk index
	Created int // empty chunks registered by this map
}

type cursor struct {
	x, z int
	ch   *Chunk
}

// LinkMap resolves world coordinates to chunks for one bulk operation. It
// remembers the last chunk it visited and walks neighbor links to reach the
// next one, so runs of nearby cells cost no index lookups.
//
// A LinkMap is not safe for concurrent use. Build one per operation.
type LinkMap struct {
	src    ChunkSource
	center cursor
	last   cursor
	stats  LinkStats
}

// NewLinkMap returns a link map whose cursor starts on center at (cx, cz).
// center may be nil, in which case the first Follow looks the chunk up.
func NewLinkMap(src ChunkSource, center *Chunk, cx, cz int) *LinkMap {
	c := cursor{x: cx, z: cz, ch: center}
	return &LinkMap{src: src, center: c, last: c}
}

// Center returns the chunk coordinates the map was created on.
func (m *LinkMap) Center() (cx, cz int) {
	return m.center.x, m.center.z
}

// Stats returns the resolution counters accumulated so far.
func (m *LinkMap) Stats() LinkStats {
	return m.stats
}

// Follow returns the chunk at (cx, cz). Coordinates outside the world and
// the edge sentinel resolve to no chunk. A coordinate with no loaded chunk
// gets a new empty chunk registered with the source.
func (m *LinkMap) Follow(cx, cz int) (*Chunk, bool) {
	if !m.src.ChunkInBounds(cx, cz) {
		return nil, false
	}

	ch := m.last.ch
	if cx == m.last.x && cz == m.last.z && ch != nil {
		m.stats.Hits++
	} else {
		lx, lz := m.last.x, m.last.z
		for ch != nil && (lx != cx || lz != cz) {
			if lx != cx {
				d := East
				if lx > cx {
					d = West
				}
				if ch = m.step(ch, d); ch == nil {
					break
				}
				lx += sign(cx - lx)
			}
			if lz != cz {
				d := South
				if lz > cz {
					d = North
				}
				if ch = m.step(ch, d); ch == nil {
					break
				}
				lz += sign(cz - lz)
			}
		}

		if ch == nil {
			m.stats.Lookups++
			var ok bool
			if ch, ok = m.src.Chunk(cx, cz); !ok {
				var created bool
				ch, created = m.src.PutChunk(cx, cz, NewChunk())
				if created {
					m.stats.Created++
				}
				if ch == nil {
					return nil, false
				}
			}
		}
		m.last = cursor{x: cx, z: cz, ch: ch}
	}

	if ch == m.src.EdgeChunk() {
		return nil, false
	}
	return ch, true
}

func (m *LinkMap) step(ch *Chunk, d Direction) *Chunk {
	n := ch.Neighbor(d)
	if n != nil {
		m.stats.Steps++
	}
	return n
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}

func checkWorldY(x, y, z int) error {
	if uint(y) >= ChunkHeight {
		return &BoundsError{X: x & 0xF, Y: y, Z: z & 0xF, MaxY: ChunkHeight}
	}
	return nil
}

// Block returns the block at world coordinates (x, y, z).
func (m *LinkMap) Block(x, y, z int) (Block, error) {
	if err := checkWorldY(x, y, z); err != nil {
		return Block{}, err
	}
	ch, ok := m.Follow(x>>4, z>>4)
	if !ok {
		return EmptyBlock, nil
	}
	return ch.Block(x&0xF, y, z&0xF)
}

// ID returns the block id at world coordinates (x, y, z).
func (m *LinkMap) ID(x, y, z int) (uint16, error) {
	if err := checkWorldY(x, y, z); err != nil {
		return 0, err
	}
	ch, ok := m.Follow(x>>4, z>>4)
	if !ok {
		return 0, nil
	}
	return ch.ID(x&0xF, y, z&0xF)
}

// Meta returns the sub-type at world coordinates (x, y, z).
func (m *LinkMap) Meta(x, y, z int) (uint8, error) {
	if err := checkWorldY(x, y, z); err != nil {
		return 0, err
	}
	ch, ok := m.Follow(x>>4, z>>4)
	if !ok {
		return 0, nil
	}
	return ch.Meta(x&0xF, y, z&0xF)
}

// Extra returns the auxiliary flag byte at world coordinates (x, y, z).
func (m *LinkMap) Extra(x, y, z int) (uint8, error) {
	if err := checkWorldY(x, y, z); err != nil {
		return 0, err
	}
	ch, ok := m.Follow(x>>4, z>>4)
	if !ok {
		return 0, nil
	}
	return ch.Extra(x&0xF, y, z&0xF)
}

// BlockLight returns the block light at world coordinates (x, y, z).
func (m *LinkMap) BlockLight(x, y, z int) (uint8, error) {
	if err := checkWorldY(x, y, z); err != nil {
		return 0, err
	}
	ch, ok := m.Follow(x>>4, z>>4)
	if !ok {
		return 0, nil
	}
	return ch.BlockLight(x&0xF, y, z&0xF)
}

// SkyLight returns the sky light at world coordinates (x, y, z).
func (m *LinkMap) SkyLight(x, y, z int) (uint8, error) {
	if err := checkWorldY(x, y, z); err != nil {
		return 0, err
	}
	ch, ok := m.Follow(x>>4, z>>4)
	if !ok {
		return DefaultSkyLight, nil
	}
	return ch.SkyLight(x&0xF, y, z&0xF)
}

// SetBlock writes every field of the cell at world coordinates (x, y, z).
// Writes outside the world are dropped.
func (m *LinkMap) SetBlock(x, y, z int, b Block) error {
	if err := checkWorldY(x, y, z); err != nil {
		return err
	}
	ch, ok := m.Follow(x>>4, z>>4)
	if !ok {
		return nil
	}
	return ch.SetBlock(x&0xF, y, z&0xF, b)
}

// Place sets id, meta and extra at world coordinates (x, y, z), keeping the
// cell's light. Writes outside the world are dropped.
func (m *LinkMap) Place(x, y, z int, id uint16, meta, extra uint8) error {
	if err := checkWorldY(x, y, z); err != nil {
		return err
	}
	ch, ok := m.Follow(x>>4, z>>4)
	if !ok {
		return nil
	}
	return ch.Place(x&0xF, y, z&0xF, id, meta, extra)
}

// SetID sets the block id at world coordinates (x, y, z) and clears its
// extra byte. Writes outside the world are dropped.
func (m *LinkMap) SetID(x, y, z int, id uint16) error {
	if err := checkWorldY(x, y, z); err != nil {
		return err
	}
	ch, ok := m.Follow(x>>4, z>>4)
	if !ok {
		return nil
	}
	return ch.SetID(x&0xF, y, z&0xF, id)
}

// SetMeta sets the sub-type at world coordinates (x, y, z).
func (m *LinkMap) SetMeta(x, y, z int, v uint8) error {
	if err := checkWorldY(x, y, z); err != nil {
		return err
	}
	ch, ok := m.Follow(x>>4, z>>4)
	if !ok {
		return nil
	}
	return ch.SetMeta(x&0xF, y, z&0xF, v)
}

// SetExtra sets the auxiliary flag byte at world coordinates (x, y, z).
func (m *LinkMap) SetExtra(x, y, z int, v uint8) error {
	if err := checkWorldY(x, y, z); err != nil {
		return err
	}
	ch, ok := m.Follow(x>>4, z>>4)
	if !ok {
		return nil
	}
	return ch.SetExtra(x&0xF, y, z&0xF, v)
}
