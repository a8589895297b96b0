// Package pipeline turns a mesh into a framebuffer: for every face it looks
// up the corners, computes lighting, projects to screen space and hands the
// triangle to the matching rasterizer.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/taigrr/tinyrender/pkg/math3d"
	"github.com/taigrr/tinyrender/pkg/models"
	"github.com/taigrr/tinyrender/pkg/render"
)

// Mode selects how faces are rasterized and colored.
type Mode int

const (
	// Wireframe draws every face edge as a line.
	Wireframe Mode = iota
	// RandomColors scanline-fills each face with a random color.
	RandomColors
	// Flat scanline-fills front-lit faces with their light intensity.
	Flat
	// ZBuffer is Flat with depth testing instead of painter's order.
	ZBuffer
	// Textured is ZBuffer with texture sampling scaled by face intensity.
	Textured
	// Gouraud is Textured with per-vertex intensities interpolated per pixel.
	Gouraud
)

var modeNames = [...]string{"wireframe", "random", "flat", "zbuffer", "textured", "gouraud"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode returns the mode with the given name.
func ParseMode(s string) (Mode, error) {
	for i, n := range modeNames {
		if strings.EqualFold(s, n) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown render mode %q", s)
}

var (
	// ErrNoTexture is returned when a textured mode has no texture.
	ErrNoTexture = errors.New("pipeline: mode needs a texture")
	// ErrNoRand is returned when RandomColors has no generator.
	ErrNoRand = errors.New("pipeline: mode needs a random source")
)

// Scene is everything a render call reads. The mesh and texture are only
// read, so a Scene's inputs may be shared between concurrent renders that
// each own their framebuffer and generator.
type Scene struct {
	Mesh    *models.Mesh
	Texture *render.Texture

	// Projector maps faces to screen space for the depth-tested modes.
	// Nil means orthographic over the whole framebuffer.
	Projector render.Projector

	// Light is the direction light travels, used by Flat, ZBuffer and
	// Textured.
	Light math3d.Vec3f
	// VertexLight is the direction toward the light, used by Gouraud.
	VertexLight math3d.Vec3f

	// Color is the wireframe line color.
	Color render.Color
	// Rand supplies RandomColors.
	Rand *rand.Rand

	// Logger receives per-render statistics. Nil disables logging.
	Logger *slog.Logger
}

// Stats counts what a render did with the mesh faces.
type Stats struct {
	Faces int // faces in the mesh
	Drawn int // faces handed to the rasterizer
	Unlit int // faces skipped because they face away from the light
}

// Render draws s into fb using mode.
func (s *Scene) Render(mode Mode, fb *render.Framebuffer) (Stats, error) {
	if s.Mesh == nil {
		return Stats{}, errors.New("pipeline: scene has no mesh")
	}

	var st Stats
	switch mode {
	case Wireframe:
		st = s.wireframe(fb)
	case RandomColors:
		if s.Rand == nil {
			return Stats{}, ErrNoRand
		}
		st = s.randomColors(fb)
	case Flat:
		st = s.flat(fb)
	case ZBuffer:
		st = s.depthTested(fb, func(int, float64) render.Shader { return nil })
	case Textured:
		if s.Texture == nil {
			return Stats{}, ErrNoTexture
		}
		st = s.depthTested(fb, func(face int, intensity float64) render.Shader {
			return render.TextureShader{
				Texture: s.Texture,
				UV:      s.Mesh.FaceTexCoords(face),
				Light:   render.FlatLight(intensity),
			}
		})
	case Gouraud:
		st = s.gouraud(fb)
	default:
		return Stats{}, fmt.Errorf("pipeline: unsupported mode %v", mode)
	}

	if s.Logger != nil {
		s.Logger.Debug("rendered",
			slog.String("mode", mode.String()),
			slog.Int("faces", st.Faces),
			slog.Int("drawn", st.Drawn),
			slog.Int("unlit", st.Unlit))
	}
	return st, nil
}

func (s *Scene) projector(fb *render.Framebuffer) render.Projector {
	if s.Projector != nil {
		return s.Projector
	}
	return render.Orthographic{Width: fb.Width, Height: fb.Height}
}

func (s *Scene) wireframe(fb *render.Framebuffer) Stats {
	st := Stats{Faces: len(s.Mesh.Faces)}
	for i := range s.Mesh.Faces {
		world := s.Mesh.FaceVertices(i)
		for j := range 3 {
			a := render.WireframePoint(world[j], fb.Width, fb.Height)
			b := render.WireframePoint(world[(j+1)%3], fb.Width, fb.Height)
			fb.Line(a, b, s.Color)
		}
		st.Drawn++
	}
	return st
}

func (s *Scene) randomColors(fb *render.Framebuffer) Stats {
	st := Stats{Faces: len(s.Mesh.Faces)}
	ortho := render.Orthographic{Width: fb.Width, Height: fb.Height}
	for i := range s.Mesh.Faces {
		fb.FillScanline(ortho.Triangle(s.Mesh.FaceVertices(i)), render.RandomColor(s.Rand))
		st.Drawn++
	}
	return st
}

func (s *Scene) flat(fb *render.Framebuffer) Stats {
	st := Stats{Faces: len(s.Mesh.Faces)}
	ortho := render.Orthographic{Width: fb.Width, Height: fb.Height}
	for i := range s.Mesh.Faces {
		world := s.Mesh.FaceVertices(i)
		intensity := render.FlatIntensity(s.Light, world)
		if intensity <= 0 {
			st.Unlit++
			continue
		}
		fb.FillScanline(ortho.Triangle(world), render.Gray(intensity))
		st.Drawn++
	}
	return st
}

// depthTested renders front-lit faces with a depth buffer. shader returns
// the pixel shader for a face; nil means a flat gray of the face intensity.
func (s *Scene) depthTested(fb *render.Framebuffer, shader func(face int, intensity float64) render.Shader) Stats {
	st := Stats{Faces: len(s.Mesh.Faces)}
	db := render.NewDepthBuffer(fb.Width, fb.Height)
	proj := s.projector(fb)
	for i := range s.Mesh.Faces {
		world := s.Mesh.FaceVertices(i)
		intensity := render.FlatIntensity(s.Light, world)
		if intensity <= 0 {
			st.Unlit++
			continue
		}
		sh := shader(i, intensity)
		if sh == nil {
			sh = render.Solid(render.Gray(intensity))
		}
		fb.FillDepth(proj.Project(world), db, sh)
		st.Drawn++
	}
	return st
}

func (s *Scene) gouraud(fb *render.Framebuffer) Stats {
	st := Stats{Faces: len(s.Mesh.Faces)}
	db := render.NewDepthBuffer(fb.Width, fb.Height)
	proj := s.projector(fb)
	light := math3d.Normalize(s.VertexLight)
	for i := range s.Mesh.Faces {
		lit := render.GouraudLight(render.VertexIntensities(light, s.Mesh.FaceNormals(i)))
		var sh render.Shader = render.GrayShader{Light: lit}
		if s.Texture != nil {
			sh = render.TextureShader{
				Texture: s.Texture,
				UV:      s.Mesh.FaceTexCoords(i),
				Light:   lit,
			}
		}
		fb.FillDepth(proj.Project(s.Mesh.FaceVertices(i)), db, sh)
		st.Drawn++
	}
	return st
}
