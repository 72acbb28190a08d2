package draw

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/OCharnyshevich/voxelstore/internal/world"
)

// Drawer places one block type along shapes through a link map. Cells
// outside the world or outside [0,256) in y are skipped and not counted.
type Drawer struct {
	m     *world.LinkMap
	block world.Block
}

// NewDrawer returns a Drawer writing the id, meta and extra of b through m.
// Light levels of the touched cells are left as they are.
func NewDrawer(m *world.LinkMap, b world.Block) *Drawer {
	return &Drawer{m: m, block: b}
}

// shape collects distinct cells in insertion order.
type shape struct {
	seen map[Pos]struct{}
	pts  []Pos
}

func newShape() *shape {
	return &shape{seen: make(map[Pos]struct{})}
}

func (s *shape) add(p Pos) {
	if _, ok := s.seen[p]; ok {
		return
	}
	s.seen[p] = struct{}{}
	s.pts = append(s.pts, p)
}

// line adds the cells of the 3D Bresenham line from a to b, both included.
func (s *shape) line(a, b Pos) {
	dx, dy, dz := abs(b.X-a.X), abs(b.Y-a.Y), abs(b.Z-a.Z)
	sx, sy, sz := step(a.X, b.X), step(a.Y, b.Y), step(a.Z, b.Z)
	p := a
	s.add(p)

	switch {
	case dx >= dy && dx >= dz:
		e1, e2 := 2*dy-dx, 2*dz-dx
		for p.X != b.X {
			if e1 >= 0 {
				p.Y += sy
				e1 -= 2 * dx
			}
			if e2 >= 0 {
				p.Z += sz
				e2 -= 2 * dx
			}
			e1 += 2 * dy
			e2 += 2 * dz
			p.X += sx
			s.add(p)
		}
	case dy >= dx && dy >= dz:
		e1, e2 := 2*dx-dy, 2*dz-dy
		for p.Y != b.Y {
			if e1 >= 0 {
				p.X += sx
				e1 -= 2 * dy
			}
			if e2 >= 0 {
				p.Z += sz
				e2 -= 2 * dy
			}
			e1 += 2 * dx
			e2 += 2 * dz
			p.Y += sy
			s.add(p)
		}
	default:
		e1, e2 := 2*dy-dz, 2*dx-dz
		for p.Z != b.Z {
			if e1 >= 0 {
				p.Y += sy
				e1 -= 2 * dz
			}
			if e2 >= 0 {
				p.X += sx
				e2 -= 2 * dz
			}
			e1 += 2 * dy
			e2 += 2 * dx
			p.Z += sz
			s.add(p)
		}
	}
}

// polyline joins consecutive points with lines.
func (s *shape) polyline(pts []mgl64.Vec3) {
	for i := range pts {
		p := round(pts[i])
		if i == 0 {
			s.add(p)
			continue
		}
		s.line(round(pts[i-1]), p)
	}
}

// Line draws a straight line from a to b.
func (d *Drawer) Line(a, b Pos) (int, error) {
	s := newShape()
	s.line(a, b)
	return d.draw(s.pts)
}

// Fill fills every cell of sel.
func (d *Drawer) Fill(sel Selection) (int, error) {
	lo, hi := sel.Min(), sel.Max()
	n := 0
	for x := lo.X; x <= hi.X; x++ {
		for z := lo.Z; z <= hi.Z; z++ {
			for y := lo.Y; y <= hi.Y; y++ {
				ok, err := d.set(x, y, z)
				if err != nil {
					return n, err
				}
				if ok {
					n++
				}
			}
		}
	}
	return n, nil
}

// Walls fills the four vertical faces of sel, leaving floor and ceiling
// interiors untouched.
func (d *Drawer) Walls(sel Selection) (int, error) {
	lo, hi := sel.Min(), sel.Max()
	n := 0
	for x := lo.X; x <= hi.X; x++ {
		for z := lo.Z; z <= hi.Z; z++ {
			if x != lo.X && x != hi.X && z != lo.Z && z != hi.Z {
				continue
			}
			for y := lo.Y; y <= hi.Y; y++ {
				ok, err := d.set(x, y, z)
				if err != nil {
					return n, err
				}
				if ok {
					n++
				}
			}
		}
	}
	return n, nil
}

// Wireframe draws the twelve edges of sel.
func (d *Drawer) Wireframe(sel Selection) (int, error) {
	lo, hi := sel.Min(), sel.Max()
	s := newShape()
	for _, y := range []int{lo.Y, hi.Y} {
		for _, z := range []int{lo.Z, hi.Z} {
			s.line(Pos{lo.X, y, z}, Pos{hi.X, y, z})
		}
		for _, x := range []int{lo.X, hi.X} {
			s.line(Pos{x, y, lo.Z}, Pos{x, y, hi.Z})
		}
	}
	for _, x := range []int{lo.X, hi.X} {
		for _, z := range []int{lo.Z, hi.Z} {
			s.line(Pos{x, lo.Y, z}, Pos{x, hi.Y, z})
		}
	}
	return d.draw(s.pts)
}

// Ellipse draws the outline of a horizontal ellipse at center.Y with radius
// rx along x and rz along z.
func (d *Drawer) Ellipse(center Pos, rx, rz int) (int, error) {
	if rx < 0 || rz < 0 {
		return 0, fmt.Errorf("ellipse radii (%d, %d): %w", rx, rz, world.ErrInvalidValue)
	}
	c := mgl64.Vec3{float64(center.X), float64(center.Y), float64(center.Z)}

	// Enough samples that consecutive points are at most one cell apart.
	n := max(8, int(math.Ceil(2*math.Pi*float64(max(rx, rz)))))
	pts := make([]mgl64.Vec3, 0, n+1)
	for i := 0; i <= n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts = append(pts, c.Add(mgl64.Vec3{float64(rx) * math.Cos(a), 0, float64(rz) * math.Sin(a)}))
	}

	s := newShape()
	s.polyline(pts)
	return d.draw(s.pts)
}

// Curve draws a smooth curve passing through every point in order. Each
// span is a Catmull-Rom segment converted to a cubic Bezier.
func (d *Drawer) Curve(points []Pos) (int, error) {
	switch len(points) {
	case 0:
		return 0, nil
	case 1:
		return d.draw(points)
	}

	p := toVecs(points)
	s := newShape()
	for i := 0; i+1 < len(p); i++ {
		p0, p1, p2, p3 := p[max(i-1, 0)], p[i], p[i+1], p[min(i+2, len(p)-1)]
		c1 := p1.Add(p2.Sub(p0).Mul(1.0 / 6))
		c2 := p2.Sub(p3.Sub(p1).Mul(1.0 / 6))

		n := max(1, int(math.Ceil(p2.Sub(p1).Len())))
		seg := make([]mgl64.Vec3, 0, n+1)
		for j := 0; j <= n; j++ {
			seg = append(seg, mgl64.CubicBezierCurve3D(float64(j)/float64(n), p1, c1, c2, p2))
		}
		seg[0], seg[n] = p1, p2
		s.polyline(seg)
	}
	return d.draw(s.pts)
}

// Bezier draws the Bezier curve with the given control points. It starts at
// the first point and ends at the last; inner points only pull the curve.
func (d *Drawer) Bezier(points []Pos) (int, error) {
	switch len(points) {
	case 0:
		return 0, nil
	case 1:
		return d.draw(points)
	}

	ctrl := toVecs(points)
	length := 0.0
	for i := 1; i < len(ctrl); i++ {
		length += ctrl[i].Sub(ctrl[i-1]).Len()
	}

	s := newShape()
	s.polyline(mgl64.MakeBezierCurve3D(max(2, int(math.Ceil(length))+1), ctrl))
	return d.draw(s.pts)
}

func toVecs(points []Pos) []mgl64.Vec3 {
	v := make([]mgl64.Vec3, len(points))
	for i, p := range points {
		v[i] = mgl64.Vec3{float64(p.X), float64(p.Y), float64(p.Z)}
	}
	return v
}

func (d *Drawer) draw(pts []Pos) (int, error) {
	n := 0
	for _, p := range pts {
		ok, err := d.set(p.X, p.Y, p.Z)
		if err != nil {
			return n, fmt.Errorf("draw at %s: %w", p, err)
		}
		if ok {
			n++
		}
	}
	return n, nil
}

func (d *Drawer) set(x, y, z int) (bool, error) {
	if uint(y) >= world.ChunkHeight {
		return false, nil
	}
	if _, ok := d.m.Follow(x>>4, z>>4); !ok {
		return false, nil
	}
	if err := d.m.Place(x, y, z, d.block.ID, d.block.Meta, d.block.Extra); err != nil {
		return false, err
	}
	return true, nil
}

func round(v mgl64.Vec3) Pos {
	return Pos{int(math.Round(v.X())), int(math.Round(v.Y())), int(math.Round(v.Z()))}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func step(from, to int) int {
	if to < from {
		return -1
	}
	return 1
}
