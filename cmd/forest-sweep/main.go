package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"forest-sim/internal/sweep"
)

type floatList []float64

func (l *floatList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (l *floatList) Set(value string) error {
	*l = (*l)[:0]
	for _, part := range strings.Split(value, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", part, err)
		}
		*l = append(*l, v)
	}
	return nil
}

func main() {
	steps := flag.Int("steps", 2000, "generations to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	width := flag.Int("width", 200, "grid width for sweep runs")
	height := flag.Int("height", 200, "grid height for sweep runs")
	censusEvery := flag.Int("census-every", 10, "generations between census samples")
	seeds := flag.Int("seeds", 3, "replicate seeds per parameter set, starting at -seed")
	seed := flag.Uint64("seed", 1, "first replicate seed")
	out := flag.String("out", "", "write all results as CSV to this path")
	top := flag.Int("top", 5, "number of best results to print")

	grows := floatList{1e-4, 1e-3, 1e-2}
	strikes := floatList{1e-7, 1e-6, 1e-5}
	spreads := floatList{0.6, 0.75, 0.9}
	flag.Var(&grows, "grow", "comma-separated grow chances")
	flag.Var(&strikes, "strike", "comma-separated strike chances")
	flag.Var(&spreads, "spread", "comma-separated spread chances")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	seedList := make([]uint64, 0, *seeds)
	for i := 0; i < *seeds; i++ {
		seedList = append(seedList, *seed+uint64(i))
	}
	scenarios := sweep.Grid(grows, strikes, spreads, seedList)

	fmt.Printf("Sweeping %d scenarios (%d workers, %d generations on %dx%d)\n",
		len(scenarios), *workers, *steps, *width, *height)

	start := time.Now()
	results, err := sweep.Run(scenarios, sweep.Options{
		Width:       *width,
		Height:      *height,
		Steps:       *steps,
		CensusEvery: *censusEvery,
		Workers:     *workers,
	})
	if err != nil {
		logger.Error("sweep failed", "error", err)
		os.Exit(1)
	}

	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			logger.Error("creating results file", "path", *out, "error", err)
			os.Exit(1)
		}
		if err := sweep.WriteCSV(f, results); err != nil {
			f.Close()
			logger.Error("writing results", "path", *out, "error", err)
			os.Exit(1)
		}
		if err := f.Close(); err != nil {
			logger.Error("closing results file", "path", *out, "error", err)
			os.Exit(1)
		}
		logger.Info("results written", "path", *out, "rows", len(results))
	}

	fmt.Printf("\nTop %d results by mean tree cover (elapsed %s):\n", *top, time.Since(start).Round(time.Millisecond))
	for i, r := range sweep.Best(results, *top) {
		fmt.Printf("%d) cover=%.3f±%.3f burning=%.4f peak=%d@%d fireOut=%t | grow=%.3g strike=%.3g spread=%.3f seed=%d\n",
			i+1, r.MeanTreeCover, r.StdTreeCover, r.MeanBurning, r.PeakBurning, r.PeakGeneration, r.FireOutAtEnd,
			r.GrowChance, r.StrikeChance, r.SpreadChance, r.Seed)
	}
}
