package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/tinyrender/pkg/config"
	"github.com/taigrr/tinyrender/pkg/lessons"
	"github.com/taigrr/tinyrender/pkg/render"
)

// orbit is the camera yaw around the model, with a spring easing its
// velocity back to zero.
type orbit struct {
	Yaw      float64
	Velocity float64
	spring   harmonica.Spring
	accel    float64
}

func newOrbit(fps int) orbit {
	return orbit{spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

// Update advances the yaw and reports whether it moved noticeably.
func (o *orbit) Update() bool {
	o.Yaw += o.Velocity
	o.Velocity, o.accel = o.spring.Update(o.Velocity, o.accel, 0)
	return o.Velocity > 1e-4 || o.Velocity < -1e-4
}

// viewer shows one lesson at a time. Static lessons are rendered once and
// cached; the Gouraud lesson is re-rendered while the camera orbits.
type viewer struct {
	cfg      config.Config
	orbitCfg config.Config // cfg sized to the terminal
	list     []lessons.Lesson
	index    int
	cache    map[int]*render.Framebuffer
	assets   *lessons.Assets
	orbit    orbit
	fps      int

	// frame is what is currently on screen, before fitting to the terminal.
	frame *render.Framebuffer
	err   error
	dirty bool
}

func newViewer(cfg config.Config, list []lessons.Lesson, start string, fps int) (*viewer, error) {
	v := &viewer{
		cfg:      cfg,
		orbitCfg: cfg,
		list:     list,
		cache:    make(map[int]*render.Framebuffer),
		orbit:    newOrbit(fps),
		fps:      fps,
		dirty:    true,
	}
	if start == "" {
		return v, nil
	}
	for i, l := range list {
		if strings.EqualFold(l.Name, start) {
			v.index = i
			return v, nil
		}
	}
	return nil, fmt.Errorf("unknown lesson %q (try -list)", start)
}

func (v *viewer) current() lessons.Lesson {
	return v.list[v.index]
}

func (v *viewer) orbiting() bool {
	return v.current().Name == "Gouraud"
}

func (v *viewer) step(delta int) {
	v.index = (v.index + delta + len(v.list)) % len(v.list)
	v.dirty = true
}

func (v *viewer) nudge(yaw float64) {
	if v.orbiting() {
		v.orbit.Velocity += yaw
	}
}

// resize renders the orbiting lesson at the terminal's pixel resolution:
// one pixel per column and two per row, less the status line.
func (v *viewer) resize(cols, rows int) {
	side := max(1, min(cols, 2*(rows-1)))
	v.orbitCfg = v.cfg
	v.orbitCfg.Width, v.orbitCfg.Height = side, side
	v.dirty = true
}

func (v *viewer) reset() {
	v.orbit = newOrbit(v.fps)
	v.dirty = true
}

// refresh renders the current lesson if anything changed since the last
// frame and reports whether the screen needs redrawing. Render errors are
// shown instead of the image.
func (v *viewer) refresh() bool {
	moving := v.orbit.Update()
	if !v.dirty && !(v.orbiting() && moving) {
		return false
	}
	v.dirty = false

	if v.orbiting() {
		v.frame, v.err = v.renderOrbit()
		return true
	}
	if fb, ok := v.cache[v.index]; ok {
		v.frame, v.err = fb, nil
		return true
	}
	v.frame, v.err = v.current().Renderer.Render()
	if v.err == nil {
		v.cache[v.index] = v.frame
	}
	return true
}

func (v *viewer) renderOrbit() (*render.Framebuffer, error) {
	if v.assets == nil {
		a, err := lessons.LoadAssets(v.cfg, true)
		if err != nil {
			return nil, err
		}
		v.assets = a
	}
	cam := lessons.CameraFromConfig(v.orbitCfg).Orbit(v.orbit.Yaw)
	return lessons.Gouraud(v.orbitCfg, v.assets, cam)
}

// Draw implements uv.Drawable: the lesson image fitted to the area, with
// a status line at the bottom.
func (v *viewer) Draw(scr uv.Screen, area uv.Rectangle) {
	status := fmt.Sprintf(" %d/%d %s ", v.index+1, len(v.list), v.current().Name)
	img := area
	img.Max.Y--

	if v.err != nil {
		status += "error: " + v.err.Error()
	} else if v.frame != nil {
		v.frame.Fit(img.Dx(), img.Dy()).Draw(scr, img)
	}
	if v.orbiting() {
		status += " [←/→ orbit, r reset]"
	}

	x := area.Min.X
	for _, r := range status {
		if x >= area.Max.X {
			break
		}
		scr.SetCell(x, area.Max.Y-1, &uv.Cell{Content: string(r), Width: 1})
		x++
	}
}

func runViewer(cfg config.Config, list []lessons.Lesson, start string, fps int) error {
	fps = max(1, fps)
	v, err := newViewer(cfg, list, start, fps)
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	v.resize(width, height)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Events arrive on their own goroutine; the frame loop applies them.
	events := make(chan uv.Event, 16)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	const orbitStep = 0.05
	frame := time.NewTicker(time.Second / time.Duration(fps))
	defer frame.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				v.resize(width, height)
			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("q", "escape", "ctrl+c"):
					return nil
				case ev.MatchString("n"):
					v.step(1)
				case ev.MatchString("p"):
					v.step(-1)
				case ev.MatchString("a", "left"):
					v.nudge(-orbitStep)
				case ev.MatchString("d", "right"):
					v.nudge(orbitStep)
				case ev.MatchString("r"):
					v.reset()
				}
			}

		case <-frame.C:
			if !v.refresh() {
				continue
			}
			term.Erase()
			term.Draw(v)
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
