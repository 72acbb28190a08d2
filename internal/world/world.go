package world

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ChunkPos identifies a chunk by its X and Z coordinates.
type ChunkPos struct{ X, Z int }

// Generator fills a freshly created chunk with terrain.
type Generator interface {
	Generate(c *Chunk, chunkX, chunkZ int)
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for chunk lifecycle events.
func WithLogger(log *slog.Logger) Option {
	return func(w *World) { w.log = log }
}

// WithGenerator sets the generator LoadChunk runs on missing chunks.
func WithGenerator(g Generator) Option {
	return func(w *World) { w.generator = g }
}

// WithRadius limits the world to chunks within radius of the origin on both
// axes. 0 means unbounded.
func WithRadius(radius int) Option {
	return func(w *World) { w.radius = radius }
}

// WithBlocks sets the registry used to build height maps of generated chunks.
func WithBlocks(reg BlockLookup) Option {
	return func(w *World) { w.blocks = reg }
}

// World owns the loaded chunks, keyed by chunk coordinate, and keeps the
// neighbor links between adjacent chunks up to date.
type World struct {
	mu     sync.RWMutex
	chunks map[ChunkPos]*Chunk
	edge   *Chunk

	radius    int
	generator Generator
	blocks    BlockLookup
	log       *slog.Logger

	loads singleflight.Group
}

// NewWorld creates an empty World.
func NewWorld(opts ...Option) *World {
	w := &World{
		chunks: make(map[ChunkPos]*Chunk),
		edge:   NewChunk(),
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Radius returns the world radius in chunks, 0 if unbounded.
func (w *World) Radius() int { return w.radius }

// ChunkInBounds reports whether (cx, cz) lies inside the world.
func (w *World) ChunkInBounds(cx, cz int) bool {
	if w.radius <= 0 {
		return true
	}
	return cx >= -w.radius && cx <= w.radius && cz >= -w.radius && cz <= w.radius
}

// EdgeChunk returns the sentinel standing for content outside the world. It
// is never registered and never linked.
func (w *World) EdgeChunk() *Chunk { return w.edge }

// Chunk returns the loaded chunk at (cx, cz).
func (w *World) Chunk(cx, cz int) (*Chunk, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.chunks[ChunkPos{cx, cz}]
	return c, ok
}

// PutChunk registers c at (cx, cz) and links it with its loaded neighbors.
// If a chunk is already registered there, that chunk is returned with false
// and c is discarded. Out-of-bounds coordinates return nil, false.
func (w *World) PutChunk(cx, cz int, c *Chunk) (*Chunk, bool) {
	if !w.ChunkInBounds(cx, cz) {
		return nil, false
	}
	pos := ChunkPos{cx, cz}

	w.mu.Lock()
	defer w.mu.Unlock()

	if existing, ok := w.chunks[pos]; ok {
		return existing, false
	}
	w.chunks[pos] = c

	for d := North; d <= West; d++ {
		dx, dz := d.Offset()
		if n, ok := w.chunks[ChunkPos{cx + dx, cz + dz}]; ok {
			c.setNeighbor(d, n)
			n.setNeighbor(d.Opposite(), c)
		}
	}

	w.log.Debug("chunk registered", "cx", cx, "cz", cz, "loaded", len(w.chunks))
	return c, true
}

// UnloadChunk removes the chunk at (cx, cz) and clears the links pointing at
// it. Link maps still holding the chunk keep a detached copy.
func (w *World) UnloadChunk(cx, cz int) bool {
	pos := ChunkPos{cx, cz}

	w.mu.Lock()
	defer w.mu.Unlock()

	c, ok := w.chunks[pos]
	if !ok {
		return false
	}
	delete(w.chunks, pos)

	for d := North; d <= West; d++ {
		if n := c.Neighbor(d); n != nil {
			n.setNeighbor(d.Opposite(), nil)
		}
		c.setNeighbor(d, nil)
	}

	w.log.Debug("chunk unloaded", "cx", cx, "cz", cz, "loaded", len(w.chunks))
	return true
}

// LoadChunk returns the chunk at (cx, cz), creating it with the generator if
// it is not loaded. Concurrent loads of one coordinate generate only once.
func (w *World) LoadChunk(cx, cz int) (*Chunk, error) {
	if !w.ChunkInBounds(cx, cz) {
		return nil, fmt.Errorf("load chunk (%d,%d): %w", cx, cz, ErrOutsideWorld)
	}
	if c, ok := w.Chunk(cx, cz); ok {
		return c, nil
	}

	key := strconv.Itoa(cx) + "," + strconv.Itoa(cz)
	v, _, _ := w.loads.Do(key, func() (any, error) {
		// Double-check: another load may have finished before this one started.
		if c, ok := w.Chunk(cx, cz); ok {
			return c, nil
		}

		c := NewChunk()
		if w.generator != nil {
			w.generator.Generate(c, cx, cz)
			c.SetGenerated(true)
			if w.blocks != nil {
				c.RecalcHeightMap(w.blocks)
			}
		}
		got, _ := w.PutChunk(cx, cz, c)
		return got, nil
	})
	return v.(*Chunk), nil
}

// PreloadRadius loads every chunk within radius of the origin and returns
// how many chunks are covered.
func (w *World) PreloadRadius(radius int) int {
	count := 0
	for cx := -radius; cx <= radius; cx++ {
		for cz := -radius; cz <= radius; cz++ {
			if _, err := w.LoadChunk(cx, cz); err == nil {
				count++
			}
		}
	}
	w.log.Info("preloaded chunks", "radius", radius, "count", count)
	return count
}

// Len returns the number of loaded chunks.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

// ForEachChunk calls fn for every loaded chunk under a read lock.
func (w *World) ForEachChunk(fn func(pos ChunkPos, c *Chunk)) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for pos, c := range w.chunks {
		fn(pos, c)
	}
}

// Block returns the block at world coordinates (x, y, z) with one index
// lookup. Cells of unloaded chunks read as EmptyBlock.
func (w *World) Block(x, y, z int) (Block, error) {
	c, ok := w.Chunk(x>>4, z>>4)
	if !ok {
		if uint(y) >= ChunkHeight {
			return Block{}, &BoundsError{X: x & 0xF, Y: y, Z: z & 0xF, MaxY: ChunkHeight}
		}
		return EmptyBlock, nil
	}
	return c.Block(x&0xF, y, z&0xF)
}

// SetBlock writes the block at world coordinates (x, y, z), loading the
// chunk if needed.
func (w *World) SetBlock(x, y, z int, b Block) error {
	c, err := w.LoadChunk(x>>4, z>>4)
	if err != nil {
		return err
	}
	return c.SetBlock(x&0xF, y, z&0xF, b)
}

// LinkMap returns a link map whose cursor starts on the chunk at (cx, cz),
// loading it if needed.
func (w *World) LinkMap(cx, cz int) (*LinkMap, error) {
	c, err := w.LoadChunk(cx, cz)
	if err != nil {
		return nil, err
	}
	return NewLinkMap(w, c, cx, cz), nil
}
