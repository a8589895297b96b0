package render

import "github.com/taigrr/tinyrender/pkg/math3d"

// FaceNormal returns the unit normal of the triangle v, computed as
// normalize((v2 - v0) × (v1 - v0)). With counter-clockwise winding it points
// away from a viewer on the +z side, so it is dotted with the direction the
// light travels rather than the direction toward the light.
func FaceNormal(v [3]math3d.Vec3f) math3d.Vec3f {
	return math3d.Normalize(math3d.Cross(math3d.Diff(v[2], v[0]), math3d.Diff(v[1], v[0])))
}

// FlatIntensity is the per-face light intensity: light · FaceNormal(v).
// Faces with intensity <= 0 face away from the light and are skipped.
func FlatIntensity(light math3d.Vec3f, v [3]math3d.Vec3f) float64 {
	return light.Dot(FaceNormal(v))
}

// VertexIntensities returns light · normalize(n) for each corner normal.
func VertexIntensities(light math3d.Vec3f, n [3]math3d.Vec3f) [3]float64 {
	var out [3]float64
	for i := range n {
		out[i] = light.Dot(math3d.Normalize(n[i]))
	}
	return out
}

// Lighting supplies the light intensity at a pixel.
type Lighting interface {
	Intensity(bc math3d.Vec3f) float64
}

// FlatLight is a constant intensity for the whole face.
type FlatLight float64

// Intensity returns l.
func (l FlatLight) Intensity(math3d.Vec3f) float64 {
	return float64(l)
}

// GouraudLight interpolates per-vertex intensities.
type GouraudLight [3]float64

// Intensity returns the barycentric blend of the corner intensities.
func (l GouraudLight) Intensity(bc math3d.Vec3f) float64 {
	return bc.X*l[0] + bc.Y*l[1] + bc.Z*l[2]
}

// GrayShader shades pixels with the gray level of the light intensity.
type GrayShader struct {
	Light Lighting
}

// Shade implements Shader. Unlit pixels get NoLight.
func (s GrayShader) Shade(bc math3d.Vec3f) Color {
	i := s.Light.Intensity(bc)
	if i <= 0 {
		return NoLight
	}
	return Gray(i)
}

// TextureShader samples Texture at the interpolated corner UVs and scales
// the texel by the light intensity.
type TextureShader struct {
	Texture *Texture
	UV      [3]math3d.Vec2f
	Light   Lighting
}

// Shade implements Shader. Unlit pixels get NoLight and the texture is not
// read.
func (s TextureShader) Shade(bc math3d.Vec3f) Color {
	i := s.Light.Intensity(bc)
	if i <= 0 {
		return NoLight
	}
	u := bc.X*s.UV[0].X + bc.Y*s.UV[1].X + bc.Z*s.UV[2].X
	v := bc.X*s.UV[0].Y + bc.Y*s.UV[1].Y + bc.Z*s.UV[2].Y
	return s.Texture.Sample(u, v).WithIntensity(i)
}
