package world

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

// layerGenerator fills y=0 with stone and counts its calls.
type layerGenerator struct{ calls atomic.Int32 }

func (g *layerGenerator) Generate(c *Chunk, _, _ int) {
	g.calls.Add(1)
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			_ = c.SetID(x, 0, z, 1)
		}
	}
}

func TestWorldPutChunkLinksNeighbors(t *testing.T) {
	w := NewWorld()
	center := NewChunk()
	w.PutChunk(0, 0, center)

	east, north := NewChunk(), NewChunk()
	w.PutChunk(1, 0, east)
	w.PutChunk(0, -1, north)

	if center.Neighbor(East) != east || east.Neighbor(West) != center {
		t.Error("east link not set both ways")
	}
	if center.Neighbor(North) != north || north.Neighbor(South) != center {
		t.Error("north link not set both ways")
	}
	if center.Neighbor(South) != nil || center.Neighbor(West) != nil {
		t.Error("links set to unloaded neighbors")
	}
	if east.Neighbor(North) != nil {
		t.Error("diagonal chunks linked")
	}
}

func TestWorldPutChunkDuplicate(t *testing.T) {
	w := NewWorld()
	first := NewChunk()
	if got, created := w.PutChunk(2, 3, first); !created || got != first {
		t.Fatalf("first PutChunk = (%p, %v)", got, created)
	}
	if got, created := w.PutChunk(2, 3, NewChunk()); created || got != first {
		t.Errorf("duplicate PutChunk = (%p, %v), want (%p, false)", got, created, first)
	}
	if w.Len() != 1 {
		t.Errorf("Len() = %d, want 1", w.Len())
	}
}

func TestWorldUnloadClearsLinks(t *testing.T) {
	w := NewWorld()
	a, b := NewChunk(), NewChunk()
	w.PutChunk(0, 0, a)
	w.PutChunk(0, 1, b)

	if !w.UnloadChunk(0, 1) {
		t.Fatal("UnloadChunk(0,1) = false")
	}
	if a.Neighbor(South) != nil || b.Neighbor(North) != nil {
		t.Error("links survive unload")
	}
	if _, ok := w.Chunk(0, 1); ok {
		t.Error("unloaded chunk still indexed")
	}
	if w.UnloadChunk(0, 1) {
		t.Error("second UnloadChunk(0,1) = true")
	}
}

func TestWorldBounds(t *testing.T) {
	w := NewWorld(WithRadius(2))

	tests := []struct {
		cx, cz int
		want   bool
	}{
		{0, 0, true},
		{2, -2, true},
		{3, 0, false},
		{0, -3, false},
	}
	for _, tt := range tests {
		if got := w.ChunkInBounds(tt.cx, tt.cz); got != tt.want {
			t.Errorf("ChunkInBounds(%d,%d) = %v, want %v", tt.cx, tt.cz, got, tt.want)
		}
	}
	if c, created := w.PutChunk(3, 0, NewChunk()); c != nil || created {
		t.Error("PutChunk registered a chunk outside the world")
	}
	if _, err := w.LoadChunk(0, 5); !errors.Is(err, ErrOutsideWorld) {
		t.Errorf("LoadChunk(0,5) error = %v, want ErrOutsideWorld", err)
	}
	if !NewWorld().ChunkInBounds(1<<20, -(1 << 20)) {
		t.Error("unbounded world rejected a far chunk")
	}
}

func TestWorldLoadChunkGenerates(t *testing.T) {
	gen := &layerGenerator{}
	w := NewWorld(WithGenerator(gen), WithBlocks(registry))

	c, err := w.LoadChunk(-4, 9)
	if err != nil {
		t.Fatal(err)
	}
	if !c.Generated() {
		t.Error("generated chunk not flagged")
	}
	if h, _ := c.Height(3, 3); h != 1 {
		t.Errorf("Height() after generation = %d, want 1", h)
	}
	again, _ := w.LoadChunk(-4, 9)
	if again != c || gen.calls.Load() != 1 {
		t.Errorf("second LoadChunk regenerated: calls=%d", gen.calls.Load())
	}
}

func TestWorldLoadChunkConcurrent(t *testing.T) {
	gen := &layerGenerator{}
	w := NewWorld(WithGenerator(gen))

	const workers = 16
	got := make([]*Chunk, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := w.LoadChunk(7, 7)
			if err != nil {
				t.Error(err)
				return
			}
			got[i] = c
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if got[i] != got[0] {
			t.Fatal("concurrent loads returned different chunks")
		}
	}
	if w.Len() != 1 {
		t.Errorf("Len() = %d, want 1", w.Len())
	}
}

func TestPreloadRadius(t *testing.T) {
	w := NewWorld(WithGenerator(&layerGenerator{}))
	count := w.PreloadRadius(2)

	// Radius 2 → 5×5 = 25 chunks.
	if count != 25 {
		t.Errorf("PreloadRadius(2) returned %d, want 25", count)
	}
	seen := 0
	w.ForEachChunk(func(pos ChunkPos, c *Chunk) {
		seen++
		if c.Neighbor(East) == nil && pos.X < 2 {
			t.Errorf("chunk %v missing east link", pos)
		}
	})
	if seen != 25 {
		t.Errorf("ForEachChunk visited %d, want 25", seen)
	}
}

func TestWorldBlockAccessors(t *testing.T) {
	w := NewWorld()

	if b, err := w.Block(-100, 64, 300); err != nil || b != EmptyBlock {
		t.Errorf("Block() on unloaded chunk = %+v, %v", b, err)
	}
	if err := w.SetBlock(-17, 64, -1, Block{ID: 4, SkyLight: 15}); err != nil {
		t.Fatal(err)
	}
	if _, ok := w.Chunk(-2, -1); !ok {
		t.Fatal("SetBlock did not load chunk (-2,-1)")
	}
	if b, _ := w.Block(-17, 64, -1); b.ID != 4 {
		t.Errorf("Block(-17,64,-1).ID = %d, want 4", b.ID)
	}
	if _, err := w.Block(0, 300, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Block(y=300) error = %v, want ErrOutOfBounds", err)
	}
}
