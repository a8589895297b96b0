package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/taigrr/tinyrender/pkg/lessons"
	"golang.org/x/sync/errgroup"
)

// batch renders lessons to files in Dir, Jobs at a time. Every lesson owns
// its framebuffer, so they run independently.
type batch struct {
	Dir     string
	Jobs    int
	PNG     bool
	Logger  *slog.Logger
	Monitor io.Writer // progress bar output
}

// selectLessons returns the named lessons, or all of them when names is
// empty.
func selectLessons(list []lessons.Lesson, names []string) ([]lessons.Lesson, error) {
	if len(names) == 0 {
		return list, nil
	}
	out := make([]lessons.Lesson, 0, len(names))
	for _, name := range names {
		l, ok := lessons.Find(list, name)
		if !ok {
			return nil, fmt.Errorf("unknown lesson %q (try -list)", name)
		}
		out = append(out, l)
	}
	return out, nil
}

func (b batch) run(list []lessons.Lesson) error {
	if err := os.MkdirAll(b.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	pb := progressbar.NewOptions(len(list),
		progressbar.OptionSetWriter(b.Monitor),
		progressbar.OptionSetDescription("rendering"),
		progressbar.OptionShowCount(),
	)
	defer pb.Close()

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(1, b.Jobs))
	for _, l := range list {
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err := b.render(l); err != nil {
				return err
			}
			pb.Add(1)
			return nil
		})
	}
	return g.Wait()
}

func (b batch) render(l lessons.Lesson) error {
	start := time.Now()
	fb, err := l.Renderer.Render()
	if err != nil {
		return fmt.Errorf("render %s: %w", l.Name, err)
	}

	path := filepath.Join(b.Dir, l.Name+".tga")
	if err := fb.SaveTGA(path); err != nil {
		return fmt.Errorf("write %s: %w", l.Name, err)
	}
	if b.PNG {
		if err := fb.SavePNG(filepath.Join(b.Dir, l.Name+".png")); err != nil {
			return fmt.Errorf("write %s: %w", l.Name, err)
		}
	}

	b.Logger.Info("rendered",
		slog.String("lesson", l.Name),
		slog.String("path", path),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}
