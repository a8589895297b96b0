package render

import (
	"math"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

// ScreenVertex is a projected triangle corner: an integer pixel position and
// the depth used for hidden surface removal.
type ScreenVertex struct {
	P     math3d.Vec2i
	Depth float64
}

// Shader computes the color of one covered pixel from its barycentric
// weights.
type Shader interface {
	Shade(bc math3d.Vec3f) Color
}

// ShaderFunc adapts a function to the Shader interface.
type ShaderFunc func(bc math3d.Vec3f) Color

// Shade calls f(bc).
func (f ShaderFunc) Shade(bc math3d.Vec3f) Color {
	return f(bc)
}

// Solid is a Shader that returns the same color for every pixel.
type Solid Color

// Shade returns the solid color.
func (s Solid) Shade(math3d.Vec3f) Color {
	return Color(s)
}

// outside is returned by Barycentric for degenerate triangles.
var outside = math3d.V3(-1.0, 1, 1)

// Barycentric returns the barycentric weights of p with respect to the
// triangle t. A point is inside when all three weights are non-negative.
//
// Triangles whose doubled signed area is below one square pixel are treated
// as degenerate and every point is reported outside. The threshold is in
// pixel units, so very thin triangles at high resolution are dropped too.
func Barycentric(t [3]math3d.Vec2i, p math3d.Vec2f) math3d.Vec3f {
	a := math3d.ToFloat2(t[0])
	b := math3d.ToFloat2(t[1])
	c := math3d.ToFloat2(t[2])
	u := math3d.V3(c.X-a.X, b.X-a.X, a.X-p.X).Cross(math3d.V3(c.Y-a.Y, b.Y-a.Y, a.Y-p.Y))
	if math.Abs(u.Z) < 1 {
		return outside
	}
	return math3d.V3(1-(u.X+u.Y)/u.Z, u.Y/u.Z, u.X/u.Z)
}

func inside(bc math3d.Vec3f) bool {
	return bc.X >= 0 && bc.Y >= 0 && bc.Z >= 0
}

// bbox returns the pixel bounding box of t clamped to
// [0, Width-1] × [0, Height-1].
func (fb *Framebuffer) bbox(t [3]math3d.Vec2i) (lo, hi math3d.Vec2i) {
	lo = math3d.V2(fb.Width-1, fb.Height-1)
	hi = math3d.V2(0, 0)
	for _, p := range t {
		lo.X = max(0, min(lo.X, p.X))
		lo.Y = max(0, min(lo.Y, p.Y))
		hi.X = min(fb.Width-1, max(hi.X, p.X))
		hi.Y = min(fb.Height-1, max(hi.Y, p.Y))
	}
	return lo, hi
}

// pixelCenter returns the sample point for pixel (x, y).
func pixelCenter(x, y int) math3d.Vec2f {
	return math3d.V2(float64(x)+0.5, float64(y)+0.5)
}

// FillScanline fills t with c one horizontal span at a time. Corners are
// sorted by y; each row is bounded by the long edge (y0 to y2) and the
// short edge of the current half. A triangle with zero height draws nothing.
func (fb *Framebuffer) FillScanline(t [3]math3d.Vec2i, c Color) {
	sortByY(&t)
	t0, t1, t2 := t[0], t[1], t[2]
	total := t2.Y - t0.Y
	if total == 0 {
		return
	}

	for y := t0.Y; y <= t2.Y; y++ {
		i := y - t0.Y
		// With a flat bottom (y0 == y1) the lower half is empty and every
		// row belongs to the upper half.
		upper := y > t1.Y || t1.Y == t0.Y
		alpha := float64(i) / float64(total)

		var bx int
		if upper {
			beta := float64(y-t1.Y) / float64(t2.Y-t1.Y)
			bx = t1.X + int(float64(t2.X-t1.X)*beta)
		} else {
			beta := float64(i) / float64(t1.Y-t0.Y)
			bx = t0.X + int(float64(t1.X-t0.X)*beta)
		}
		ax := t0.X + int(float64(t2.X-t0.X)*alpha)
		if ax > bx {
			ax, bx = bx, ax
		}
		for x := ax; x <= bx; x++ {
			fb.plot(x, y, c)
		}
	}
}

// FillBarycentric fills t with c by testing the center of every pixel in
// its bounding box.
func (fb *Framebuffer) FillBarycentric(t [3]math3d.Vec2i, c Color) {
	lo, hi := fb.bbox(t)
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			if inside(Barycentric(t, pixelCenter(x, y))) {
				fb.Pixels[x+y*fb.Width] = c
			}
		}
	}
}

// FillDepth rasterizes a triangle with depth testing. For each covered
// pixel the corner depths are interpolated with the barycentric weights;
// the pixel is written only if that depth is strictly greater than the one
// stored in db. The shader runs only for pixels that pass, so occluded
// surfaces are never sampled. It panics if db and fb differ in size.
func (fb *Framebuffer) FillDepth(pts [3]ScreenVertex, db *DepthBuffer, s Shader) {
	db.mustMatch(fb)
	t := [3]math3d.Vec2i{pts[0].P, pts[1].P, pts[2].P}
	lo, hi := fb.bbox(t)
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			bc := Barycentric(t, pixelCenter(x, y))
			if !inside(bc) {
				continue
			}
			z := bc.X*pts[0].Depth + bc.Y*pts[1].Depth + bc.Z*pts[2].Depth
			if db.Test(x, y, z) {
				fb.Pixels[x+y*fb.Width] = s.Shade(bc)
			}
		}
	}
}
