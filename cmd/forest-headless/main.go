package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"forest-sim/internal/config"
	"forest-sim/internal/render"
	"forest-sim/internal/sims/forest"
	"forest-sim/internal/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for census CSV, config snapshot and final PNG (overrides output.dir)")
	igniteCentre := flag.Bool("ignite", false, "Set the centre cell alight before the first tick")
	verbose := flag.Bool("v", false, "Log every census record")
	var overrides config.Overrides
	flag.Var(&overrides, "set", "config override in key=value form, e.g. spread_chance=0.9 (repeatable)")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Apply(overrides); err != nil {
		logger.Error("invalid override", "error", err)
		os.Exit(1)
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := run(ctx, cfg, *igniteCentre, logger); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// run advances the forest for cfg.Run.Ticks external ticks, recording a census
// every cfg.Run.CensusEvery generations. It stops early when ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, ignite bool, logger *slog.Logger) (summary telemetry.Summary, err error) {
	f, err := forest.NewWithConfig(cfg.EngineConfig())
	if err != nil {
		return telemetry.Summary{}, fmt.Errorf("creating forest: %w", err)
	}
	// Record the seed actually used so the snapshot replays the run.
	seed := f.Seed()
	cfg.Forest.Seed = &seed

	out, err := telemetry.NewWriter(cfg.Output.Dir)
	if err != nil {
		return telemetry.Summary{}, err
	}
	defer closeInto(out, &err, "census output")
	if err := out.WriteConfig(cfg); err != nil {
		return telemetry.Summary{}, err
	}

	if ignite {
		size := f.Size()
		f.Ignite(size.W/2, size.H/2)
	}

	logger.Info("starting headless simulation",
		"seed", seed,
		"width", cfg.Forest.Width,
		"height", cfg.Forest.Height,
		"ticks", cfg.Run.Ticks,
		"params", cfg.Forest.Params,
	)

	var records []telemetry.Record
	for tick := 0; tick < cfg.Run.Ticks; tick++ {
		if ctx.Err() != nil {
			logger.Warn("interrupted", "tick", tick, "generation", f.Generation())
			break
		}
		if !f.Tick() || f.Generation()%uint64(cfg.Run.CensusEvery) != 0 {
			continue
		}
		census := f.Census()
		rec := telemetry.FromCensus(census)
		records = append(records, rec)
		if err := out.WriteRecord(rec); err != nil {
			return telemetry.Summary{}, err
		}
		logger.Debug("census", "census", census)
	}

	summary = telemetry.Summarize(records)
	logger.Info("run complete", "generation", f.Generation(), "summary", summary, "census", f.Census())

	if cfg.Output.Snapshot && out != nil {
		path := out.Path("final.png")
		size := f.Size()
		if err := render.WritePNG(path, f.Cells(), size.W, size.H, f.Palette()); err != nil {
			return summary, err
		}
		logger.Info("snapshot written", "path", path)
	}
	return summary, nil
}

// closeInto closes c and stores its error in *err unless an earlier error is
// already set.
func closeInto(c io.Closer, err *error, what string) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("closing %s: %w", what, cerr)
	}
}
