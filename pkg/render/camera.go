package render

import (
	"math"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

// Camera looks from Eye toward Center. Distance sets the strength of the
// perspective projection.
type Camera struct {
	Eye      math3d.Vec3f
	Center   math3d.Vec3f
	Up       math3d.Vec3f
	Distance float64
}

// NewCamera returns the default camera: eye (1, 1, 3) looking at the origin
// with +y up, projection distance 3.
func NewCamera() Camera {
	return Camera{
		Eye:      math3d.V3(1.0, 1, 3),
		Center:   math3d.V3(0.0, 0, 0),
		Up:       math3d.V3(0.0, 1, 0),
		Distance: 3,
	}
}

// ViewMatrix returns the look-at model-view matrix.
func (c Camera) ViewMatrix() math3d.Matrix {
	return math3d.LookAt(c.Eye, c.Center, c.Up)
}

// ProjectionMatrix returns the perspective matrix for c.Distance.
func (c Camera) ProjectionMatrix() math3d.Matrix {
	return math3d.Projection(c.Distance)
}

// Transform returns viewport × projection × view.
func (c Camera) Transform(viewport math3d.Matrix) math3d.Matrix {
	return viewport.Mul(c.ProjectionMatrix()).Mul(c.ViewMatrix())
}

// Orbit returns a copy of c with the eye rotated by yaw radians around the
// vertical axis through Center.
func (c Camera) Orbit(yaw float64) Camera {
	d := c.Eye.Sub(c.Center)
	sin, cos := math.Sincos(yaw)
	d = math3d.V3(d.X*cos+d.Z*sin, d.Y, -d.X*sin+d.Z*cos)
	c.Eye = c.Center.Add(d)
	return c
}

// CenteredViewport returns the viewport covering the middle three quarters
// of a width×height framebuffer.
func CenteredViewport(width, height int) math3d.Matrix {
	return math3d.Viewport(width/8, height/8, width*3/4, height*3/4)
}
