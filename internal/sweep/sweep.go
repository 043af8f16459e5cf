// Package sweep runs the forest over a grid of tunables in parallel.
package sweep

import (
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"

	"github.com/gocarina/gocsv"

	"forest-sim/internal/sims/forest"
	"forest-sim/internal/telemetry"
)

// Scenario is one parameter set to simulate.
type Scenario struct {
	Params forest.Params
	Seed   uint64
}

func (s Scenario) String() string {
	return fmt.Sprintf("grow=%.3g strike=%.3g spread=%.4f seed=%d",
		s.Params.GrowChance, s.Params.StrikeChance, s.Params.SpreadChance, s.Seed)
}

// Result pairs a scenario with the summary of its census series.
type Result struct {
	GrowChance   float64 `csv:"grow_chance"`
	StrikeChance float64 `csv:"strike_chance"`
	SpreadChance float64 `csv:"spread_chance"`
	Seed         uint64  `csv:"seed"`
	telemetry.Summary
}

// Options controls a sweep.
type Options struct {
	Width, Height int
	Steps         int
	CensusEvery   int
	Workers       int
}

// Grid builds the cartesian product of the given tunables and seeds. The
// step divisor is irrelevant to sweeps, which call Step directly.
func Grid(grows, strikes, spreads []float64, seeds []uint64) []Scenario {
	var out []Scenario
	for _, grow := range grows {
		for _, strike := range strikes {
			for _, spread := range spreads {
				for _, seed := range seeds {
					out = append(out, Scenario{
						Params: forest.Params{
							GrowChance:   grow,
							StrikeChance: strike,
							SpreadChance: spread,
							StepDivisor:  1,
						},
						Seed: seed,
					})
				}
			}
		}
	}
	return out
}

// Run simulates every scenario on its own forest and returns the results in
// scenario order.
func Run(scenarios []Scenario, opts Options) ([]Result, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", forest.ErrInvalidSize, opts.Width, opts.Height)
	}
	if opts.CensusEvery <= 0 {
		opts.CensusEvery = 1
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	type job struct {
		idx      int
		scenario Scenario
	}
	type done struct {
		idx    int
		result Result
		err    error
	}

	jobs := make(chan job)
	results := make(chan done)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				res, err := runScenario(j.scenario, opts)
				results <- done{idx: j.idx, result: res, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for i, s := range scenarios {
			jobs <- job{idx: i, scenario: s}
		}
		close(jobs)
	}()

	type indexed struct {
		idx    int
		result Result
	}
	var all []indexed
	var firstErr error
	for d := range results {
		if d.err != nil {
			if firstErr == nil {
				firstErr = d.err
			}
			continue
		}
		all = append(all, indexed{idx: d.idx, result: d.result})
	}
	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(all, func(i, j int) bool { return all[i].idx < all[j].idx })
	out := make([]Result, len(all))
	for i, r := range all {
		out[i] = r.result
	}
	return out, nil
}

func runScenario(s Scenario, opts Options) (Result, error) {
	cfg := forest.DefaultConfig().WithSeed(s.Seed)
	cfg.Width = opts.Width
	cfg.Height = opts.Height
	cfg.Params = s.Params
	f, err := forest.NewWithConfig(cfg)
	if err != nil {
		return Result{}, fmt.Errorf("scenario %s: %w", s, err)
	}

	records := make([]telemetry.Record, 0, opts.Steps/opts.CensusEvery+1)
	for step := 1; step <= opts.Steps; step++ {
		f.Step()
		if step%opts.CensusEvery == 0 {
			records = append(records, telemetry.FromCensus(f.Census()))
		}
	}

	return Result{
		GrowChance:   s.Params.GrowChance,
		StrikeChance: s.Params.StrikeChance,
		SpreadChance: s.Params.SpreadChance,
		Seed:         s.Seed,
		Summary:      telemetry.Summarize(records),
	}, nil
}

// Best returns the n results with the highest mean tree cover.
func Best(results []Result, n int) []Result {
	sorted := append([]Result(nil), results...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].MeanTreeCover > sorted[j].MeanTreeCover })
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// WriteCSV writes results with a header row.
func WriteCSV(w io.Writer, results []Result) error {
	if err := gocsv.Marshal(results, w); err != nil {
		return fmt.Errorf("writing sweep results: %w", err)
	}
	return nil
}
