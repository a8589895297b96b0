// Package models provides mesh loading and representation for tinyrender.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

// ErrIndexOutOfRange is returned by Validate when a face references a
// vertex, texture coordinate or normal that does not exist.
var ErrIndexOutOfRange = errors.New("index out of range")

// Mesh is a triangulated model. It is not modified by rendering and may be
// shared read-only between concurrent renders.
type Mesh struct {
	Name      string
	Vertices  []math3d.Vec3f
	TexCoords []math3d.Vec2f
	Normals   []math3d.Vec3f
	Faces     []Face
}

// Corner is one triangle corner: zero-based indices into the vertex,
// texture coordinate and normal lists.
type Corner struct {
	Vertex  int
	Texture int
	Normal  int
}

// Face is a triangle.
type Face [3]Corner

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// TriangleCount returns the number of faces.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertex positions.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceVertices returns the world positions of face i's corners.
func (m *Mesh) FaceVertices(i int) [3]math3d.Vec3f {
	f := m.Faces[i]
	return [3]math3d.Vec3f{
		m.Vertices[f[0].Vertex],
		m.Vertices[f[1].Vertex],
		m.Vertices[f[2].Vertex],
	}
}

// FaceTexCoords returns the texture coordinates of face i's corners.
func (m *Mesh) FaceTexCoords(i int) [3]math3d.Vec2f {
	f := m.Faces[i]
	return [3]math3d.Vec2f{
		m.TexCoords[f[0].Texture],
		m.TexCoords[f[1].Texture],
		m.TexCoords[f[2].Texture],
	}
}

// FaceNormals returns the stored normals of face i's corners.
func (m *Mesh) FaceNormals(i int) [3]math3d.Vec3f {
	f := m.Faces[i]
	return [3]math3d.Vec3f{
		m.Normals[f[0].Normal],
		m.Normals[f[1].Normal],
		m.Normals[f[2].Normal],
	}
}

// Validate checks that every face index is within bounds of its list.
func (m *Mesh) Validate() error {
	for i, f := range m.Faces {
		for j, c := range f {
			switch {
			case c.Vertex < 0 || c.Vertex >= len(m.Vertices):
				return fmt.Errorf("face %d corner %d: vertex %d of %d: %w",
					i, j, c.Vertex, len(m.Vertices), ErrIndexOutOfRange)
			case c.Texture < 0 || c.Texture >= len(m.TexCoords):
				return fmt.Errorf("face %d corner %d: texture coordinate %d of %d: %w",
					i, j, c.Texture, len(m.TexCoords), ErrIndexOutOfRange)
			case c.Normal < 0 || c.Normal >= len(m.Normals):
				return fmt.Errorf("face %d corner %d: normal %d of %d: %w",
					i, j, c.Normal, len(m.Normals), ErrIndexOutOfRange)
			}
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the vertex positions.
// An empty mesh has zero bounds.
func (m *Mesh) Bounds() (lo, hi math3d.Vec3f) {
	if len(m.Vertices) == 0 {
		return
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		lo = math3d.Min(lo, v)
		hi = math3d.Max(hi, v)
	}
	return lo, hi
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3f {
	lo, hi := m.Bounds()
	return lo.Add(hi).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3f {
	lo, hi := m.Bounds()
	return hi.Sub(lo)
}

// Normalize recenters the mesh on the origin and scales it uniformly so the
// largest dimension spans [-1, 1].
func (m *Mesh) Normalize() {
	size := m.Size()
	extent := max(size.X, size.Y, size.Z)
	if extent == 0 {
		return
	}
	c := m.Center()
	s := 2 / extent
	for i, v := range m.Vertices {
		m.Vertices[i] = v.Sub(c).Scale(s)
	}
}

// CalculateNormals replaces the normal list with area-weighted vertex
// normals, one per vertex, and points every corner's normal index at its
// vertex.
func (m *Mesh) CalculateNormals() {
	normals := make([]math3d.Vec3f, len(m.Vertices))
	for i := range m.Faces {
		v := m.FaceVertices(i)
		// Outward for counter-clockwise winding, matching OBJ vn data.
		n := v[1].Sub(v[0]).Cross(v[2].Sub(v[0]))
		for _, c := range m.Faces[i] {
			normals[c.Vertex] = normals[c.Vertex].Add(n)
		}
	}
	for i, n := range normals {
		if n != (math3d.Vec3f{}) {
			normals[i] = math3d.Normalize(n)
		}
	}
	m.Normals = normals
	for i := range m.Faces {
		for j := range m.Faces[i] {
			m.Faces[i][j].Normal = m.Faces[i][j].Vertex
		}
	}
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Name:      m.Name,
		Vertices:  append([]math3d.Vec3f(nil), m.Vertices...),
		TexCoords: append([]math3d.Vec2f(nil), m.TexCoords...),
		Normals:   append([]math3d.Vec3f(nil), m.Normals...),
		Faces:     append([]Face(nil), m.Faces...),
	}
}
