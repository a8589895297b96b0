package render

import (
	"math"
	"math/rand"
	"testing"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

// covered returns the set of pixels in fb equal to c.
func covered(fb *Framebuffer, c Color) map[math3d.Vec2i]bool {
	set := make(map[math3d.Vec2i]bool)
	for y := range fb.Height {
		for x := range fb.Width {
			if fb.Pixel(x, y) == c {
				set[math3d.V2(x, y)] = true
			}
		}
	}
	return set
}

func TestLineSymmetric(t *testing.T) {
	tests := []struct {
		name string
		a, b math3d.Vec2i
	}{
		{"shallow", math3d.V2(13, 20), math3d.V2(80, 40)},
		{"steep", math3d.V2(20, 13), math3d.V2(40, 80)},
		{"steep descending", math3d.V2(40, 80), math3d.V2(13, 20)},
		{"negative slope", math3d.V2(5, 90), math3d.V2(95, 3)},
		{"diagonal", math3d.V2(0, 0), math3d.V2(99, 99)},
		{"horizontal", math3d.V2(10, 50), math3d.V2(60, 50)},
		{"vertical", math3d.V2(50, 10), math3d.V2(50, 60)},
		{"point", math3d.V2(7, 7), math3d.V2(7, 7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab := NewFramebuffer(100, 100, Black)
			ab.Line(tt.a, tt.b, White)
			ba := NewFramebuffer(100, 100, Black)
			ba.Line(tt.b, tt.a, White)

			s1, s2 := covered(ab, White), covered(ba, White)
			if len(s1) != len(s2) {
				t.Fatalf("line(a,b) plots %d pixels, line(b,a) plots %d", len(s1), len(s2))
			}
			for p := range s1 {
				if !s2[p] {
					t.Errorf("pixel %v only in line(a,b)", p)
				}
			}
			if !s1[tt.a] || !s1[tt.b] {
				t.Error("endpoints not plotted")
			}
		})
	}
}

func TestLineContinuous(t *testing.T) {
	fb := NewFramebuffer(100, 100, Black)
	a, b := math3d.V2(13, 20), math3d.V2(80, 40)
	fb.Line(a, b, White)
	// One pixel per column along the major axis.
	for x := a.X; x <= b.X; x++ {
		n := 0
		for y := range fb.Height {
			if fb.Pixel(x, y) == White {
				n++
			}
		}
		if n != 1 {
			t.Errorf("column %d has %d pixels, want 1", x, n)
		}
	}
	if got := len(covered(fb, White)); got != b.X-a.X+1 {
		t.Errorf("plotted %d pixels, want %d", got, b.X-a.X+1)
	}
}

func TestLineClipped(t *testing.T) {
	fb := NewFramebuffer(10, 10, Black)
	fb.Line(math3d.V2(-5, 5), math3d.V2(15, 5), White)
	if got := len(covered(fb, White)); got != 10 {
		t.Errorf("clipped line plotted %d pixels, want 10", got)
	}
}

func TestTriangleOutlineSorted(t *testing.T) {
	fb := NewFramebuffer(50, 50, Black)
	fb.TriangleOutlineSorted([3]math3d.Vec2i{{X: 30, Y: 40}, {X: 10, Y: 5}, {X: 5, Y: 20}})
	// Long edge (10,5)-(30,40) is drawn last in red.
	if got := fb.Pixel(20, 22); got != Red {
		t.Errorf("long edge pixel = %v, want red", got)
	}
	if got := fb.Pixel(5, 20); got != Green {
		t.Errorf("middle corner = %v, want green", got)
	}
}

func TestBarycentric(t *testing.T) {
	tri := [3]math3d.Vec2i{{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 0, Y: 30}}
	tests := []struct {
		name string
		p    math3d.Vec2f
		want math3d.Vec3f
	}{
		{"vertex 0", math3d.V2(0.0, 0), math3d.V3(1.0, 0, 0)},
		{"vertex 1", math3d.V2(30.0, 0), math3d.V3(0.0, 1, 0)},
		{"vertex 2", math3d.V2(0.0, 30), math3d.V3(0.0, 0, 1)},
		{"centroid", math3d.V2(10.0, 10), math3d.V3(1.0/3, 1.0/3, 1.0/3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bc := Barycentric(tri, tt.p)
			if math.Abs(bc.X-tt.want.X) > 1e-9 || math.Abs(bc.Y-tt.want.Y) > 1e-9 || math.Abs(bc.Z-tt.want.Z) > 1e-9 {
				t.Errorf("Barycentric(%v) = %v, want %v", tt.p, bc, tt.want)
			}
			if s := bc.X + bc.Y + bc.Z; math.Abs(s-1) > 1e-9 {
				t.Errorf("weights sum to %v", s)
			}
		})
	}

	t.Run("outside", func(t *testing.T) {
		if inside(Barycentric(tri, math3d.V2(-1.0, -1))) {
			t.Error("point outside triangle reported inside")
		}
	})
}

func TestBarycentricDegenerate(t *testing.T) {
	tests := []struct {
		name string
		tri  [3]math3d.Vec2i
	}{
		{"collinear", [3]math3d.Vec2i{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 20, Y: 20}}},
		{"coincident", [3]math3d.Vec2i{{X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}}},
		{"two equal", [3]math3d.Vec2i{{X: 1, Y: 2}, {X: 1, Y: 2}, {X: 30, Y: 9}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if bc := Barycentric(tt.tri, math3d.V2(10.5, 10.5)); bc != outside {
				t.Errorf("Barycentric = %v, want sentinel %v", bc, outside)
			}
			fb := NewFramebuffer(40, 40, Black)
			fb.FillBarycentric(tt.tri, White)
			if n := len(covered(fb, White)); n != 0 {
				t.Errorf("degenerate triangle filled %d pixels", n)
			}
			db := NewDepthBuffer(40, 40)
			fb.FillDepth([3]ScreenVertex{{P: tt.tri[0]}, {P: tt.tri[1]}, {P: tt.tri[2]}}, db, Solid(White))
			if n := len(covered(fb, White)); n != 0 {
				t.Errorf("degenerate triangle depth-filled %d pixels", n)
			}
		})
	}
}

// edgeDistance returns the distance from p to the nearest edge of t.
func edgeDistance(t [3]math3d.Vec2i, p math3d.Vec2f) float64 {
	best := math.Inf(1)
	for i := range 3 {
		a, b := math3d.ToFloat2(t[i]), math3d.ToFloat2(t[(i+1)%3])
		ab, ap := b.Sub(a), p.Sub(a)
		l2 := ab.X*ab.X + ab.Y*ab.Y
		s := 0.0
		if l2 > 0 {
			s = max(0, min(1, (ap.X*ab.X+ap.Y*ab.Y)/l2))
		}
		d := ap.Sub(ab.Scale(s))
		best = min(best, math.Hypot(d.X, d.Y))
	}
	return best
}

// boundarySlack is how far from an edge the two fill rules may disagree.
// Truncating a span end moves it by under one pixel horizontally, and the
// barycentric rule samples the pixel center half a pixel further along
// each axis.
const boundarySlack = 1 + math.Sqrt2/2

// compareFills reports pixels where the scanline and barycentric fills of
// tri disagree away from the triangle boundary.
func compareFills(t *testing.T, tri [3]math3d.Vec2i) (scanned, sampled int) {
	t.Helper()
	scan := NewFramebuffer(200, 200, Black)
	scan.FillScanline(tri, White)
	bary := NewFramebuffer(200, 200, Black)
	bary.FillBarycentric(tri, White)

	s, b := covered(scan, White), covered(bary, White)
	check := func(p math3d.Vec2i) {
		center := math3d.V2(float64(p.X)+0.5, float64(p.Y)+0.5)
		if d := edgeDistance(tri, center); d > boundarySlack {
			t.Errorf("triangle %v: interior pixel %v (%.2f from edge) differs", tri, p, d)
		}
	}
	for p := range s {
		if !b[p] {
			check(p)
		}
	}
	for p := range b {
		if !s[p] {
			check(p)
		}
	}
	return len(s), len(b)
}

func TestScanlineMatchesBarycentric(t *testing.T) {
	tests := []struct {
		name string
		tri  [3]math3d.Vec2i
	}{
		{"general", [3]math3d.Vec2i{{X: 10, Y: 70}, {X: 50, Y: 160}, {X: 70, Y: 80}}},
		{"tall", [3]math3d.Vec2i{{X: 180, Y: 50}, {X: 150, Y: 1}, {X: 70, Y: 180}}},
		{"small", [3]math3d.Vec2i{{X: 180, Y: 150}, {X: 120, Y: 160}, {X: 130, Y: 180}}},
		{"flat bottom", [3]math3d.Vec2i{{X: 20, Y: 20}, {X: 120, Y: 20}, {X: 60, Y: 150}}},
		{"flat top", [3]math3d.Vec2i{{X: 20, Y: 150}, {X: 120, Y: 150}, {X: 60, Y: 20}}},
		{"shallow edges", [3]math3d.Vec2i{{X: 0, Y: 90}, {X: 199, Y: 97}, {X: 3, Y: 104}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, b := compareFills(t, tt.tri)
			if s == 0 || b == 0 {
				t.Fatalf("empty fill (scanline %d, barycentric %d)", s, b)
			}
		})
	}

	t.Run("random", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		for range 300 {
			var tri [3]math3d.Vec2i
			for k := range tri {
				tri[k] = math3d.V2(rng.Intn(200), rng.Intn(200))
			}
			compareFills(t, tri)
		}
	})
}

func TestFillScanlineDegenerate(t *testing.T) {
	fb := NewFramebuffer(50, 50, Black)
	fb.FillScanline([3]math3d.Vec2i{{X: 1, Y: 10}, {X: 20, Y: 10}, {X: 40, Y: 10}}, White)
	if n := len(covered(fb, White)); n != 0 {
		t.Errorf("zero-height triangle filled %d pixels", n)
	}
}

func TestFillDepthOrderIndependent(t *testing.T) {
	// Two overlapping squares' worth of triangles at different depths.
	near := [3]ScreenVertex{
		{P: math3d.V2(5, 5), Depth: 10},
		{P: math3d.V2(35, 5), Depth: 10},
		{P: math3d.V2(5, 35), Depth: 10},
	}
	far := [3]ScreenVertex{
		{P: math3d.V2(15, 0), Depth: -3},
		{P: math3d.V2(39, 30), Depth: -3},
		{P: math3d.V2(0, 30), Depth: -3},
	}

	render := func(first, second [3]ScreenVertex, c1, c2 Color) *Framebuffer {
		fb := NewFramebuffer(40, 40, Black)
		db := NewDepthBuffer(40, 40)
		fb.FillDepth(first, db, Solid(c1))
		fb.FillDepth(second, db, Solid(c2))
		return fb
	}
	a := render(near, far, Red, Blue)
	b := render(far, near, Blue, Red)

	nearOnly := NewFramebuffer(40, 40, Black)
	nearOnly.FillDepth(near, NewDepthBuffer(40, 40), Solid(Red))
	nearSet := covered(nearOnly, Red)

	for i := range a.Pixels {
		if a.Pixels[i] != b.Pixels[i] {
			t.Fatalf("draw order changed pixel %d: %v vs %v", i, a.Pixels[i], b.Pixels[i])
		}
	}
	for p := range nearSet {
		if a.Pixel(p.X, p.Y) != Red {
			t.Errorf("pixel %v covered by the near triangle is %v", p, a.Pixel(p.X, p.Y))
		}
	}
	if len(covered(a, Blue)) == 0 {
		t.Error("far triangle should remain visible outside the near one")
	}
}

func TestFillDepthGatesShader(t *testing.T) {
	fb := NewFramebuffer(20, 20, Black)
	db := NewDepthBuffer(20, 20)
	tri := func(z float64) [3]ScreenVertex {
		return [3]ScreenVertex{
			{P: math3d.V2(0, 0), Depth: z},
			{P: math3d.V2(19, 0), Depth: z},
			{P: math3d.V2(0, 19), Depth: z},
		}
	}
	fb.FillDepth(tri(1), db, Solid(White))

	calls := 0
	fb.FillDepth(tri(0), db, ShaderFunc(func(math3d.Vec3f) Color {
		calls++
		return Red
	}))
	if calls != 0 {
		t.Errorf("occluded triangle invoked shader %d times", calls)
	}
	if len(covered(fb, Red)) != 0 {
		t.Error("occluded triangle was drawn")
	}
}

func TestFillDepthInterpolatesDepth(t *testing.T) {
	fb := NewFramebuffer(30, 30, Black)
	db := NewDepthBuffer(30, 30)
	fb.FillDepth([3]ScreenVertex{
		{P: math3d.V2(0, 0), Depth: 0},
		{P: math3d.V2(30, 0), Depth: 30},
		{P: math3d.V2(0, 30), Depth: 0},
	}, db, Solid(White))
	// Depth grows with x along the bottom edge.
	if d := db.At(20, 1); math.Abs(d-20.5) > 1e-9 {
		t.Errorf("depth at (20,1) = %v, want 20.5", d)
	}
	if !math.IsInf(db.At(29, 29), -1) {
		t.Error("pixel outside the triangle has a depth")
	}
}

func TestFillClipsOffscreen(t *testing.T) {
	tri := [3]math3d.Vec2i{{X: -20, Y: -20}, {X: 60, Y: 10}, {X: 10, Y: 60}}
	fb := NewFramebuffer(30, 30, Black)
	fb.FillScanline(tri, White)
	fb.FillBarycentric(tri, Red)
	db := NewDepthBuffer(30, 30)
	fb.FillDepth([3]ScreenVertex{{P: tri[0]}, {P: tri[1]}, {P: tri[2]}}, db, Solid(Green))
	if len(covered(fb, Green)) == 0 {
		t.Error("partially visible triangle drew nothing")
	}
}
