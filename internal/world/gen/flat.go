package gen

import "github.com/OCharnyshevich/voxelstore/internal/world"

// FlatGenerator generates flatgrass terrain:
// bedrock at y=0, stone y=1..2, dirt y=3, grass y=4.
type FlatGenerator struct {
	seed int64
}

// NewFlatGenerator creates a FlatGenerator. The seed is kept for reporting
// only; flat terrain does not depend on it.
func NewFlatGenerator(seed int64) *FlatGenerator {
	return &FlatGenerator{seed: seed}
}

// Name returns "flatgrass".
func (g *FlatGenerator) Name() string { return "flatgrass" }

// Seed returns the seed the generator was created with.
func (g *FlatGenerator) Seed() int64 { return g.seed }

func (g *FlatGenerator) Generate(c *world.Chunk, _, _ int) {
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			_ = c.SetID(x, 0, z, blockBedrock)
			fillColumn(c, x, z, 1, 2, blockStone)
			_ = c.SetID(x, 3, z, blockDirt)
			_ = c.SetID(x, 4, z, blockGrass)
			_ = c.SetBiome(x, z, world.BiomePlains)
		}
	}
}

// HeightAt returns the height map value of every flatgrass column.
func (g *FlatGenerator) HeightAt(_, _ int) int {
	return 5 // grass at y=4
}
