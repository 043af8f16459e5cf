//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"forest-sim/internal/app"
	"forest-sim/internal/core"
	_ "forest-sim/internal/sims/forest"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	sim, err := core.New(cfg.Sim, cfg.SimConfig())
	if err != nil {
		logger.Error("creating simulation", "sim", cfg.Sim, "error", err)
		os.Exit(1)
	}

	game := app.New(sim, cfg)
	w, h := app.WindowSize(sim.Size(), cfg.Scale, cfg.HUDWidth)

	ebiten.SetWindowTitle("forest-sim: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	logger.Info("starting", "sim", sim.Name(), "width", sim.Size().W, "height", sim.Size().H, "tps", cfg.TPS)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game loop failed", "error", err)
		os.Exit(1)
	}
}
