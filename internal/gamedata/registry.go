package gamedata

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MaxBlockID is the largest id a block table may contain (12 bits).
const MaxBlockID = 0xFFF

// BlockRegistry is an immutable lookup table of block properties.
type BlockRegistry struct {
	byID   map[uint16]Block
	byName map[string]Block
}

// NewBlockRegistry builds a registry from blocks. Duplicate ids or names and
// ids above MaxBlockID are rejected.
func NewBlockRegistry(blocks []Block) (*BlockRegistry, error) {
	r := &BlockRegistry{
		byID:   make(map[uint16]Block, len(blocks)),
		byName: make(map[string]Block, len(blocks)),
	}
	for _, b := range blocks {
		if b.ID < 0 || b.ID > MaxBlockID {
			return nil, fmt.Errorf("block %q: id %d out of range", b.Name, b.ID)
		}
		if _, dup := r.byID[uint16(b.ID)]; dup {
			return nil, fmt.Errorf("duplicate block id %d", b.ID)
		}
		if _, dup := r.byName[b.Name]; dup {
			return nil, fmt.Errorf("duplicate block name %q", b.Name)
		}
		r.byID[uint16(b.ID)] = b
		r.byName[b.Name] = b
	}
	return r, nil
}

// Lookup returns the block registered under id.
func (r *BlockRegistry) Lookup(id uint16) (Block, bool) {
	b, ok := r.byID[id]
	return b, ok
}

// ByName returns the block registered under name.
func (r *BlockRegistry) ByName(name string) (Block, bool) {
	b, ok := r.byName[name]
	return b, ok
}

// All returns every registered block ordered by id.
func (r *BlockRegistry) All() []Block {
	out := make([]Block, 0, len(r.byID))
	for _, b := range r.byID {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of registered blocks.
func (r *BlockRegistry) Len() int {
	return len(r.byID)
}

// ParseBlock resolves a user supplied block such as "cobblestone", "4" or
// "wool:14" into an id and meta value.
func (r *BlockRegistry) ParseBlock(s string) (id uint16, meta uint8, err error) {
	name, metaStr, hasMeta := strings.Cut(strings.TrimSpace(s), ":")
	if hasMeta {
		m, err := strconv.ParseUint(metaStr, 10, 8)
		if err != nil || m > 0xF {
			return 0, 0, fmt.Errorf("invalid block meta %q", metaStr)
		}
		meta = uint8(m)
	}

	if n, err := strconv.ParseUint(name, 10, 16); err == nil {
		if n > MaxBlockID {
			return 0, 0, fmt.Errorf("block id %d out of range", n)
		}
		if _, ok := r.byID[uint16(n)]; !ok {
			return 0, 0, fmt.Errorf("unknown block id %d", n)
		}
		return uint16(n), meta, nil
	}

	b, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return 0, 0, fmt.Errorf("unknown block %q", name)
	}
	return uint16(b.ID), meta, nil
}
