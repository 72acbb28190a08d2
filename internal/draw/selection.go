// Package draw places shapes of blocks into a world through a link map.
package draw

import "fmt"

// Pos is a world-absolute block position.
type Pos struct{ X, Y, Z int }

func (p Pos) String() string { return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z) }

// Add returns p shifted by (dx, dy, dz).
func (p Pos) Add(dx, dy, dz int) Pos { return Pos{p.X + dx, p.Y + dy, p.Z + dz} }

// Selection is the cuboid spanned by two corner points, both inclusive.
type Selection struct {
	A, B Pos
}

// NewSelection returns the cuboid with corners a and b.
func NewSelection(a, b Pos) Selection { return Selection{A: a, B: b} }

// Min returns the corner with the smallest coordinates.
func (s Selection) Min() Pos {
	return Pos{min(s.A.X, s.B.X), min(s.A.Y, s.B.Y), min(s.A.Z, s.B.Z)}
}

// Max returns the corner with the largest coordinates.
func (s Selection) Max() Pos {
	return Pos{max(s.A.X, s.B.X), max(s.A.Y, s.B.Y), max(s.A.Z, s.B.Z)}
}

// Contains reports whether (x, y, z) lies inside the selection.
func (s Selection) Contains(x, y, z int) bool {
	lo, hi := s.Min(), s.Max()
	return x >= lo.X && x <= hi.X &&
		y >= lo.Y && y <= hi.Y &&
		z >= lo.Z && z <= hi.Z
}

// Size returns the extent of the selection along each axis.
func (s Selection) Size() (dx, dy, dz int) {
	lo, hi := s.Min(), s.Max()
	return hi.X - lo.X + 1, hi.Y - lo.Y + 1, hi.Z - lo.Z + 1
}

// Volume returns the number of cells in the selection.
func (s Selection) Volume() int {
	dx, dy, dz := s.Size()
	return dx * dy * dz
}

// Expand grows the selection by dx, dy and dz cells on both sides of each
// axis.
func (s Selection) Expand(dx, dy, dz int) Selection {
	lo, hi := s.Min(), s.Max()
	return Selection{A: lo.Add(-dx, -dy, -dz), B: hi.Add(dx, dy, dz)}
}

// Contract shrinks the selection by dx, dy and dz cells on both sides of
// each axis. An axis never shrinks below its center cell.
func (s Selection) Contract(dx, dy, dz int) Selection {
	lo, hi := s.Min(), s.Max()
	shrink := func(a, b, d int) (int, int) {
		mid := a + (b-a)/2
		if a, b = a+d, b-d; a > b {
			return mid, mid
		}
		return a, b
	}
	lo.X, hi.X = shrink(lo.X, hi.X, dx)
	lo.Y, hi.Y = shrink(lo.Y, hi.Y, dy)
	lo.Z, hi.Z = shrink(lo.Z, hi.Z, dz)
	return Selection{A: lo, B: hi}
}

// Move shifts both corners by (dx, dy, dz).
func (s Selection) Move(dx, dy, dz int) Selection {
	return Selection{A: s.A.Add(dx, dy, dz), B: s.B.Add(dx, dy, dz)}
}

func (s Selection) String() string {
	return fmt.Sprintf("%s-%s", s.Min(), s.Max())
}
