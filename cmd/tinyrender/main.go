// tinyrender - Software rasterizer lessons
// Renders each lesson to a TGA file, or shows one in the terminal.
//
// Viewer controls:
//
//	N/P         - Next/previous lesson
//	Left/Right  - Orbit the camera (Gouraud lesson)
//	A/D         - Orbit the camera (Gouraud lesson)
//	R           - Reset the camera
//	Q/Esc       - Quit
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/taigrr/tinyrender/pkg/config"
	"github.com/taigrr/tinyrender/pkg/lessons"
	"github.com/taigrr/tinyrender/pkg/models"
)

var (
	configPath = flag.String("config", "", "Path to YAML scene configuration")
	outDir     = flag.String("out", "", "Output directory (overrides config)")
	jobs       = flag.Int("j", runtime.GOMAXPROCS(0), "Lessons rendered in parallel")
	writePNG   = flag.Bool("png", false, "Also write a PNG next to each TGA")
	listOnly   = flag.Bool("list", false, "List lesson names and exit")
	verbose    = flag.Bool("v", false, "Verbose logging")
	view       = flag.Bool("view", false, "Show a lesson in the terminal")
	targetFPS  = flag.Int("fps", 30, "Viewer target FPS")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "tinyrender - Software rasterizer lessons\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tinyrender [options] [lesson ...]\n")
		fmt.Fprintf(os.Stderr, "       tinyrender -view [options] [lesson]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nViewer controls:\n")
		fmt.Fprintf(os.Stderr, "  N/P         - Next/previous lesson\n")
		fmt.Fprintf(os.Stderr, "  Arrows, A/D - Orbit camera (Gouraud)\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset camera\n")
		fmt.Fprintf(os.Stderr, "  Q/Esc       - Quit\n")
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if *outDir != "" {
		cfg.Output = *outDir
	}

	list := lessons.List(cfg)
	if *listOnly {
		for _, name := range lessons.Names(list) {
			fmt.Println(name)
		}
		return nil
	}

	// The viewer owns the terminal, so it only logs when asked to.
	if !*view || *verbose {
		level := slog.LevelInfo
		if *verbose {
			level = slog.LevelDebug
		}
		models.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	if *view {
		start := ""
		if flag.NArg() > 0 {
			start = flag.Arg(0)
		}
		return runViewer(cfg, list, start, *targetFPS)
	}

	selected, err := selectLessons(list, flag.Args())
	if err != nil {
		return err
	}
	b := batch{
		Dir:     cfg.Output,
		Jobs:    *jobs,
		PNG:     *writePNG,
		Logger:  models.Logger(),
		Monitor: os.Stdout,
	}
	return b.run(selected)
}
