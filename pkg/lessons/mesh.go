package lessons

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"

	"github.com/taigrr/tinyrender/pkg/config"
	"github.com/taigrr/tinyrender/pkg/models"
	"github.com/taigrr/tinyrender/pkg/pipeline"
	"github.com/taigrr/tinyrender/pkg/render"
)

// Assets are the model and texture a mesh lesson reads. They are not
// modified by rendering, so one Assets may back many renders.
type Assets struct {
	Mesh    *models.Mesh
	Texture *render.Texture // nil unless loaded with a texture
}

// LoadAssets reads cfg.Model and, when textured is set, the texture. A
// glTF model's embedded image takes precedence over cfg.Texture.
func LoadAssets(cfg config.Config, textured bool) (*Assets, error) {
	ext := strings.ToLower(filepath.Ext(cfg.Model))
	if ext == ".glb" || ext == ".gltf" {
		mesh, img, err := models.LoadGLBWithTexture(cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		a := &Assets{Mesh: mesh}
		if textured && img != nil {
			tex, err := render.TextureFromImage(img)
			if err != nil {
				return nil, fmt.Errorf("embedded texture: %w", err)
			}
			a.Texture = tex
			return a, nil
		}
		return a.loadTexture(cfg, textured)
	}

	mesh, err := models.Load(cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	return (&Assets{Mesh: mesh}).loadTexture(cfg, textured)
}

func (a *Assets) loadTexture(cfg config.Config, textured bool) (*Assets, error) {
	if !textured {
		return a, nil
	}
	tex, err := render.LoadTexture(cfg.Texture)
	if err != nil {
		return nil, fmt.Errorf("load texture: %w", err)
	}
	a.Texture = tex
	return a, nil
}

// CameraFromConfig returns the camera described by cfg.Camera.
func CameraFromConfig(cfg config.Config) render.Camera {
	return render.Camera{
		Eye:      cfg.Camera.Eye.Vec(),
		Center:   cfg.Camera.Center.Vec(),
		Up:       cfg.Camera.Up.Vec(),
		Distance: cfg.Camera.Distance,
	}
}

func scene(cfg config.Config, a *Assets) *pipeline.Scene {
	return &pipeline.Scene{
		Mesh:        a.Mesh,
		Texture:     a.Texture,
		Light:       cfg.Light.Vec(),
		VertexLight: cfg.GouraudLight.Vec(),
		Color:       render.White,
		Logger:      models.Logger(),
	}
}

// draw renders s with mode into a fresh black framebuffer and flips it to
// a top-left origin.
func draw(cfg config.Config, s *pipeline.Scene, mode pipeline.Mode) (*render.Framebuffer, error) {
	fb := render.NewFramebuffer(cfg.Width, cfg.Height, render.Black)
	if _, err := s.Render(mode, fb); err != nil {
		return nil, fmt.Errorf("%v: %w", mode, err)
	}
	fb.FlipVertically()
	return fb, nil
}

// Wireframe draws every mesh edge in white.
func Wireframe(cfg config.Config, a *Assets) (*render.Framebuffer, error) {
	return draw(cfg, scene(cfg, a), pipeline.Wireframe)
}

// RandomColors fills every face with a color from a generator seeded with
// cfg.Seed.
func RandomColors(cfg config.Config, a *Assets) (*render.Framebuffer, error) {
	s := scene(cfg, a)
	s.Rand = rand.New(rand.NewSource(cfg.Seed))
	return draw(cfg, s, pipeline.RandomColors)
}

// FlatLight fills lit faces with their gray intensity in painter's order.
func FlatLight(cfg config.Config, a *Assets) (*render.Framebuffer, error) {
	return draw(cfg, scene(cfg, a), pipeline.Flat)
}

// ZBuffer is FlatLight with hidden surfaces removed by a depth buffer.
func ZBuffer(cfg config.Config, a *Assets) (*render.Framebuffer, error) {
	return draw(cfg, scene(cfg, a), pipeline.ZBuffer)
}

// Texture maps the diffuse texture onto the orthographic model.
func Texture(cfg config.Config, a *Assets) (*render.Framebuffer, error) {
	return draw(cfg, scene(cfg, a), pipeline.Textured)
}

// Perspective views the textured model from cfg.Camera.Distance along +z.
func Perspective(cfg config.Config, a *Assets) (*render.Framebuffer, error) {
	s := scene(cfg, a)
	s.Projector = render.Perspective{
		Matrix: render.CenteredViewport(cfg.Width, cfg.Height).Mul(CameraFromConfig(cfg).ProjectionMatrix()),
	}
	return draw(cfg, s, pipeline.Textured)
}

// Gouraud views the model through cam with per-vertex lighting. The
// texture is used when a has one.
func Gouraud(cfg config.Config, a *Assets, cam render.Camera) (*render.Framebuffer, error) {
	s := scene(cfg, a)
	s.Projector = render.Perspective{
		Matrix: cam.Transform(render.CenteredViewport(cfg.Width, cfg.Height)),
	}
	return draw(cfg, s, pipeline.Gouraud)
}
