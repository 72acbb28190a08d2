package gen

import "math/rand/v2"

// Gradients for 2D simplex noise: the twelve cube edge midpoints projected
// onto the xz plane.
var grad2 = [12][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {1, 0}, {-1, 0},
	{0, 1}, {0, -1}, {0, 1}, {0, -1},
}

// Noise produces deterministic 2D simplex noise in [-1, 1] from a seed.
type Noise struct {
	perm [512]uint8
}

// NewNoise builds a noise source whose permutation table is shuffled by a
// PCG stream derived from seed.
func NewNoise(seed int64) *Noise {
	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9E3779B97F4A7C15))
	n := &Noise{}
	for i, v := range r.Perm(256) {
		n.perm[i] = uint8(v)
		n.perm[i+256] = uint8(v)
	}
	return n
}

const (
	skew2   = 0.36602540378443864676 // (sqrt(3) - 1) / 2
	unskew2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
)

// At returns the noise value at (x, z).
func (n *Noise) At(x, z float64) float64 {
	s := (x + z) * skew2
	i, j := floor(x+s), floor(z+s)
	t := float64(i+j) * unskew2

	x0 := x - (float64(i) - t)
	z0 := z - (float64(j) - t)

	i1, j1 := 0, 1
	if x0 > z0 {
		i1, j1 = 1, 0
	}

	ii, jj := i&255, j&255
	corners := [3]struct {
		dx, dz float64
		g      int
	}{
		{x0, z0, int(n.perm[ii+int(n.perm[jj])]) % 12},
		{x0 - float64(i1) + unskew2, z0 - float64(j1) + unskew2, int(n.perm[ii+i1+int(n.perm[jj+j1])]) % 12},
		{x0 - 1 + 2*unskew2, z0 - 1 + 2*unskew2, int(n.perm[ii+1+int(n.perm[jj+1])]) % 12},
	}

	var sum float64
	for _, c := range corners {
		f := 0.5 - c.dx*c.dx - c.dz*c.dz
		if f < 0 {
			continue
		}
		f *= f
		g := grad2[c.g]
		sum += f * f * (g[0]*c.dx + g[1]*c.dz)
	}
	return 70 * sum
}

// Octaves sums octaves of noise, each at twice the frequency and
// persistence times the amplitude of the previous one, normalized to [-1, 1].
func (n *Noise) Octaves(x, z float64, octaves int, persistence float64) float64 {
	var total, norm float64
	freq, amp := 1.0, 1.0
	for range octaves {
		total += n.At(x*freq, z*freq) * amp
		norm += amp
		amp *= persistence
		freq *= 2
	}
	return total / norm
}

func floor(v float64) int {
	i := int(v)
	if v < float64(i) {
		return i - 1
	}
	return i
}
