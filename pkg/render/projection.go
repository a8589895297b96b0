package render

import "github.com/taigrr/tinyrender/pkg/math3d"

// Projector maps a world-space triangle to screen space.
type Projector interface {
	Project(world [3]math3d.Vec3f) [3]ScreenVertex
}

// Orthographic maps world x and y from [-1, 1] to [0, Width] and
// [0, Height]. World z is carried through unchanged as the depth.
type Orthographic struct {
	Width, Height int
}

// Point maps a single world position to a pixel, dropping z.
func (o Orthographic) Point(v math3d.Vec3f) math3d.Vec2i {
	return math3d.Trunc2(math3d.V2(
		(v.X+1)*float64(o.Width)/2,
		(v.Y+1)*float64(o.Height)/2,
	))
}

// Triangle maps a world triangle to pixels, dropping z.
func (o Orthographic) Triangle(world [3]math3d.Vec3f) [3]math3d.Vec2i {
	return [3]math3d.Vec2i{o.Point(world[0]), o.Point(world[1]), o.Point(world[2])}
}

// Project implements Projector.
func (o Orthographic) Project(world [3]math3d.Vec3f) [3]ScreenVertex {
	var out [3]ScreenVertex
	for i, v := range world {
		out[i] = ScreenVertex{P: o.Point(v), Depth: v.Z}
	}
	return out
}

// Perspective transforms vertices by Matrix (typically
// viewport × projection × model-view) and divides by w.
type Perspective struct {
	Matrix math3d.Matrix
}

// Project implements Projector. Screen x and y are truncated to pixels;
// depth keeps the full precision of the transformed z.
func (p Perspective) Project(world [3]math3d.Vec3f) [3]ScreenVertex {
	var out [3]ScreenVertex
	for i, v := range world {
		s := p.Matrix.Transform(v)
		out[i] = ScreenVertex{P: math3d.Trunc2(s.XY()), Depth: s.Z}
	}
	return out
}

// WireframePoint maps world x and y from [-1, 1] to [0, Width-1] and
// [0, Height-1], so edges never land outside the framebuffer.
func WireframePoint(v math3d.Vec3f, width, height int) math3d.Vec2i {
	return math3d.Trunc2(math3d.V2(
		(v.X+1)*float64(width-1)/2,
		(v.Y+1)*float64(height-1)/2,
	))
}
