package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"

	"forest-sim/internal/config"
	"forest-sim/internal/sims/forest"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	width := flag.Int("w", 0, "grid width (0 fits the terminal)")
	height := flag.Int("h", 0, "grid height (0 fits the terminal)")
	tps := flag.Int("tps", 0, "external ticks per second (0 = run.tps from config)")
	var overrides config.Overrides
	flag.Var(&overrides, "set", "config override in key=value form (repeatable)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Apply(overrides); err != nil {
		logger.Error("invalid override", "error", err)
		os.Exit(1)
	}
	if *tps > 0 {
		cfg.Run.TPS = *tps
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		logger.Error("creating screen", "error", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		logger.Error("initializing screen", "error", err)
		os.Exit(1)
	}
	screen.EnableMouse()

	engine := cfg.EngineConfig()
	engine.Width, engine.Height = fitGrid(screen, *width, *height)
	f, err := forest.NewWithConfig(engine)
	if err != nil {
		screen.Fini()
		logger.Error("creating forest", "error", err)
		os.Exit(1)
	}

	newViewer(screen, f, cfg.Run.TPS).run()
	screen.Fini()
	fmt.Printf("seed %d, %d generations\n", f.Seed(), f.Generation())
}

// fitGrid resolves zero dimensions to the terminal area below the status row.
// Each terminal row shows two grid rows.
func fitGrid(screen tcell.Screen, w, h int) (int, int) {
	sw, sh := screen.Size()
	if w <= 0 {
		w = max(sw, 1)
	}
	if h <= 0 {
		h = max((sh-1)*2, 1)
	}
	return w, h
}
