package gamedata

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
)

//go:embed data/blocks.json
var defaultBlocksJSON []byte

// DefaultTable is the name of the block table compiled into the binary.
const DefaultTable = "pc-1.8"

var (
	tablesMu sync.RWMutex
	tables   = map[string]func() (*BlockRegistry, error){}
)

func init() {
	Register(DefaultTable, DefaultBlocks)
}

// Register makes a block table available to Load under name.
func Register(name string, factory func() (*BlockRegistry, error)) {
	tablesMu.Lock()
	defer tablesMu.Unlock()
	tables[name] = factory
}

// Load builds the block table registered under name.
func Load(name string) (*BlockRegistry, error) {
	tablesMu.RLock()
	f, ok := tables[name]
	tablesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown block table: %s", name)
	}
	return f()
}

// RegisteredTables returns the names of all registered block tables, sorted.
func RegisteredTables() []string {
	tablesMu.RLock()
	defer tablesMu.RUnlock()
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultBlocks parses the embedded block table.
func DefaultBlocks() (*BlockRegistry, error) {
	blocks, err := decodeBlocks(defaultBlocksJSON)
	if err != nil {
		return nil, fmt.Errorf("embedded block table: %w", err)
	}
	return NewBlockRegistry(blocks)
}

// LoadBlocks reads a minecraft-data blocks.json document from r.
func LoadBlocks(r io.Reader) (*BlockRegistry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read block table: %w", err)
	}
	blocks, err := decodeBlocks(data)
	if err != nil {
		return nil, err
	}
	return NewBlockRegistry(blocks)
}

// LoadBlocksFile reads a minecraft-data blocks.json file from disk.
func LoadBlocksFile(path string) (*BlockRegistry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open block table: %w", err)
	}
	defer f.Close()
	return LoadBlocks(f)
}

type blockJSON struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	Hardness    *float64 `json:"hardness"`
	StackSize   int      `json:"stackSize"`
	Diggable    bool     `json:"diggable"`
	BoundingBox string   `json:"boundingBox"`
	Transparent bool     `json:"transparent"`
	EmitLight   int      `json:"emitLight"`
	FilterLight int      `json:"filterLight"`
}

func decodeBlocks(data []byte) ([]Block, error) {
	var raw []blockJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse block table: %w", err)
	}
	blocks := make([]Block, len(raw))
	for i, b := range raw {
		blocks[i] = Block{
			ID:          b.ID,
			Name:        b.Name,
			DisplayName: b.DisplayName,
			Hardness:    b.Hardness,
			StackSize:   b.StackSize,
			Diggable:    b.Diggable,
			BoundingBox: b.BoundingBox,
			Transparent: b.Transparent,
			EmitLight:   b.EmitLight,
			FilterLight: b.FilterLight,
		}
	}
	return blocks, nil
}
