package gen

import "github.com/OCharnyshevich/voxelstore/internal/world"

// HillsGenerator generates rolling grassland from layered noise, flooding
// everything below sea level.
type HillsGenerator struct {
	seed    int64
	terrain *Noise
	detail  *Noise
}

// NewHillsGenerator creates a HillsGenerator from a seed.
func NewHillsGenerator(seed int64) *HillsGenerator {
	return &HillsGenerator{
		seed:    seed,
		terrain: NewNoise(seed),
		detail:  NewNoise(seed + 1),
	}
}

// Name returns "hills".
func (g *HillsGenerator) Name() string { return TypeHills }

// Seed returns the generator seed.
func (g *HillsGenerator) Seed() int64 { return g.seed }

func (g *HillsGenerator) Generate(c *world.Chunk, chunkX, chunkZ int) {
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			top := g.surface(chunkX*16+x, chunkZ*16+z)

			_ = c.SetID(x, 0, z, blockBedrock)
			fillColumn(c, x, z, 1, top-4, blockStone)
			if top < seaLevel+2 {
				fillColumn(c, x, z, top-3, top, blockSand)
				fillColumn(c, x, z, top+1, seaLevel, blockWater)
			} else {
				fillColumn(c, x, z, top-3, top-1, blockDirt)
				_ = c.SetID(x, top, z, blockGrass)
			}
			_ = c.SetBiome(x, z, world.BiomePlains)
		}
	}
}

// HeightAt returns the y of the topmost terrain block at world column (x, z).
// Water above it is not counted.
func (g *HillsGenerator) HeightAt(x, z int) int {
	return g.surface(x, z)
}

func (g *HillsGenerator) surface(x, z int) int {
	base := g.terrain.Octaves(float64(x)/128, float64(z)/128, 5, 0.5)
	detail := g.detail.Octaves(float64(x)/32, float64(z)/32, 3, 0.5)

	h := int(float64(seaLevel) + base*14 + detail*4)
	return max(8, min(h, 200))
}
