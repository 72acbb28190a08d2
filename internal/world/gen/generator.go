// Package gen holds terrain generators that fill freshly created chunks.
package gen

import (
	"fmt"

	"github.com/OCharnyshevich/voxelstore/internal/world"
)

// Block ids placed by the generators.
const (
	blockStone   = 1
	blockGrass   = 2
	blockDirt    = 3
	blockBedrock = 7
	blockWater   = 9 // stationary water
	blockSand    = 12

	seaLevel = 62
)

// Generator names accepted by New.
const (
	TypeFlat  = "flat"
	TypeHills = "hills"
	TypeEmpty = "empty"
)

// New returns the generator registered under name. TypeEmpty yields a nil
// generator, leaving new chunks all air.
func New(name string, seed int64) (world.Generator, error) {
	switch name {
	case TypeFlat, "flatgrass":
		return NewFlatGenerator(seed), nil
	case TypeHills:
		return NewHillsGenerator(seed), nil
	case TypeEmpty, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown generator %q", name)
	}
}

func fillColumn(c *world.Chunk, x, z, from, to int, id uint16) {
	for y := from; y <= to; y++ {
		// Coordinates are local and ids constant, so errors cannot occur.
		_ = c.SetID(x, y, z, id)
	}
}
