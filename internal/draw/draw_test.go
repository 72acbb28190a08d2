package draw

import (
	"errors"
	"testing"

	"github.com/OCharnyshevich/voxelstore/internal/world"
)

var stone = world.Block{ID: 1}

func newTestDrawer(t *testing.T, b world.Block, opts ...world.Option) (*world.World, *Drawer) {
	t.Helper()
	w := world.NewWorld(opts...)
	m, err := w.LinkMap(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	return w, NewDrawer(m, b)
}

func idAt(t *testing.T, w *world.World, p Pos) uint16 {
	t.Helper()
	b, err := w.Block(p.X, p.Y, p.Z)
	if err != nil {
		t.Fatal(err)
	}
	return b.ID
}

func TestLine(t *testing.T) {
	tests := []struct {
		name string
		a, b Pos
		want int
	}{
		{"point", Pos{3, 64, 3}, Pos{3, 64, 3}, 1},
		{"axis", Pos{0, 64, 0}, Pos{10, 64, 0}, 11},
		{"shallow", Pos{0, 64, 0}, Pos{10, 64, 3}, 11},
		{"diagonal", Pos{0, 0, 0}, Pos{5, 5, 5}, 6},
		{"vertical", Pos{1, 100, 1}, Pos{1, 80, 2}, 21},
		{"across chunks", Pos{-20, 70, -20}, Pos{20, 70, 20}, 41},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, d := newTestDrawer(t, stone)
			n, err := d.Line(tt.a, tt.b)
			if err != nil {
				t.Fatal(err)
			}
			if n != tt.want {
				t.Errorf("Line(%v, %v) = %d, want %d", tt.a, tt.b, n, tt.want)
			}
			for _, p := range []Pos{tt.a, tt.b} {
				if id := idAt(t, w, p); id != stone.ID {
					t.Errorf("endpoint %v id = %d, want %d", p, id, stone.ID)
				}
			}
		})
	}
}

func TestLineSkipsOutsideWorld(t *testing.T) {
	w, d := newTestDrawer(t, stone, world.WithRadius(1))

	n, err := d.Line(Pos{0, 64, 0}, Pos{40, 64, 0})
	if err != nil {
		t.Fatal(err)
	}
	if n != 32 {
		t.Errorf("Line = %d, want 32 cells inside radius 1", n)
	}
	if w.Len() != 2 {
		t.Errorf("Len() = %d, want 2", w.Len())
	}
}

func TestFill(t *testing.T) {
	w, d := newTestDrawer(t, world.Block{ID: 35, Meta: 14})
	sel := NewSelection(Pos{-2, 60, -2}, Pos{1, 62, 1})

	n, err := d.Fill(sel)
	if err != nil {
		t.Fatal(err)
	}
	if n != sel.Volume() {
		t.Errorf("Fill = %d, want %d", n, sel.Volume())
	}
	b, _ := w.Block(-1, 61, 0)
	if b.ID != 35 || b.Meta != 14 || b.SkyLight != world.DefaultSkyLight {
		t.Errorf("Block(-1,61,0) = %+v", b)
	}
	if id := idAt(t, w, Pos{-3, 61, 0}); id != 0 {
		t.Errorf("cell outside selection = %d, want 0", id)
	}
}

func TestFillClipsHeight(t *testing.T) {
	_, d := newTestDrawer(t, stone)

	n, err := d.Fill(NewSelection(Pos{0, 254, 0}, Pos{1, 257, 1}))
	if err != nil {
		t.Fatal(err)
	}
	if n != 8 {
		t.Errorf("Fill = %d, want 8", n)
	}
}

func TestWalls(t *testing.T) {
	w, d := newTestDrawer(t, stone)
	sel := NewSelection(Pos{0, 10, 0}, Pos{4, 12, 4})

	n, err := d.Walls(sel)
	if err != nil {
		t.Fatal(err)
	}
	if n != 16*3 {
		t.Errorf("Walls = %d, want 48", n)
	}
	if id := idAt(t, w, Pos{2, 11, 2}); id != 0 {
		t.Errorf("interior id = %d, want 0", id)
	}
	if id := idAt(t, w, Pos{0, 12, 3}); id != stone.ID {
		t.Errorf("wall id = %d, want %d", id, stone.ID)
	}
}

func TestWireframe(t *testing.T) {
	w, d := newTestDrawer(t, stone)

	n, err := d.Wireframe(NewSelection(Pos{0, 0, 0}, Pos{2, 2, 2}))
	if err != nil {
		t.Fatal(err)
	}
	if n != 20 {
		t.Errorf("Wireframe = %d, want 20", n)
	}
	if id := idAt(t, w, Pos{1, 1, 1}); id != 0 {
		t.Error("wireframe filled the center")
	}
	if id := idAt(t, w, Pos{1, 0, 1}); id != 0 {
		t.Error("wireframe filled a face center")
	}
}

func TestEllipse(t *testing.T) {
	w, d := newTestDrawer(t, stone)
	center := Pos{0, 64, 0}

	n, err := d.Ellipse(center, 5, 3)
	if err != nil {
		t.Fatal(err)
	}
	if n == 0 {
		t.Fatal("Ellipse drew nothing")
	}
	for _, p := range []Pos{{5, 64, 0}, {-5, 64, 0}, {0, 64, 3}, {0, 64, -3}} {
		if id := idAt(t, w, p); id != stone.ID {
			t.Errorf("extreme %v id = %d, want %d", p, id, stone.ID)
		}
	}
	if id := idAt(t, w, center); id != 0 {
		t.Error("ellipse filled its center")
	}
	if id := idAt(t, w, Pos{5, 65, 0}); id != 0 {
		t.Error("ellipse left its plane")
	}
}

func TestEllipseDegenerate(t *testing.T) {
	_, d := newTestDrawer(t, stone)

	if n, err := d.Ellipse(Pos{1, 1, 1}, 0, 0); err != nil || n != 1 {
		t.Errorf("Ellipse(r=0) = %d, %v, want 1", n, err)
	}
	if _, err := d.Ellipse(Pos{}, -1, 2); !errors.Is(err, world.ErrInvalidValue) {
		t.Errorf("Ellipse(rx=-1) error = %v, want ErrInvalidValue", err)
	}
}

func TestCurvePassesThroughEveryPoint(t *testing.T) {
	tests := []struct {
		name string
		pts  []Pos
	}{
		{"arch", []Pos{{0, 64, 0}, {10, 64, 20}, {20, 64, 0}}},
		{"wave", []Pos{{-20, 70, -5}, {-8, 80, 6}, {3, 66, -9}, {17, 75, 12}}},
		{"two points", []Pos{{0, 10, 0}, {12, 14, -7}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, d := newTestDrawer(t, stone)
			n, err := d.Curve(tt.pts)
			if err != nil {
				t.Fatal(err)
			}
			if n < len(tt.pts) {
				t.Errorf("Curve = %d, want at least %d", n, len(tt.pts))
			}
			for _, p := range tt.pts {
				if id := idAt(t, w, p); id != stone.ID {
					t.Errorf("control point %v id = %d, want %d", p, id, stone.ID)
				}
			}
		})
	}
}

func TestCurveIsConnected(t *testing.T) {
	w, d := newTestDrawer(t, stone)
	if _, err := d.Curve([]Pos{{0, 64, 0}, {10, 64, 20}, {20, 64, 0}}); err != nil {
		t.Fatal(err)
	}
	// The arch spans x 0..20, so every x column holds at least one cell.
	for x := 0; x <= 20; x++ {
		found := false
		for z := -5; z <= 25 && !found; z++ {
			found = idAt(t, w, Pos{x, 64, z}) == stone.ID
		}
		if !found {
			t.Errorf("no curve cell at x=%d", x)
		}
	}
}

func TestBezier(t *testing.T) {
	w, d := newTestDrawer(t, stone)
	pts := []Pos{{0, 64, 0}, {10, 74, 10}, {20, 64, 0}}

	n, err := d.Bezier(pts)
	if err != nil {
		t.Fatal(err)
	}
	if n < 21 {
		t.Errorf("Bezier = %d, want at least 21", n)
	}
	for _, p := range []Pos{pts[0], pts[2]} {
		if id := idAt(t, w, p); id != stone.ID {
			t.Errorf("endpoint %v id = %d, want %d", p, id, stone.ID)
		}
	}
	if id := idAt(t, w, pts[1]); id != 0 {
		t.Error("Bezier passed through its middle control point")
	}
}

func TestCurveShort(t *testing.T) {
	_, d := newTestDrawer(t, stone)

	for name, fn := range map[string]func([]Pos) (int, error){"Curve": d.Curve, "Bezier": d.Bezier} {
		if n, err := fn(nil); err != nil || n != 0 {
			t.Errorf("%s(nil) = %d, %v", name, n, err)
		}
		if n, err := fn([]Pos{{1, 2, 3}}); err != nil || n != 1 {
			t.Errorf("%s(one point) = %d, %v", name, n, err)
		}
	}
}

func TestDrawInvalidBlock(t *testing.T) {
	_, d := newTestDrawer(t, world.Block{ID: 5000})

	n, err := d.Line(Pos{0, 1, 0}, Pos{3, 1, 0})
	if !errors.Is(err, world.ErrInvalidValue) {
		t.Errorf("Line error = %v, want ErrInvalidValue", err)
	}
	if n != 0 {
		t.Errorf("Line = %d, want 0", n)
	}
}
