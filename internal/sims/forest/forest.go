package forest

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"

	"forest-sim/internal/core"
	pcore "forest-sim/pkg/core"
)

var (
	// ErrEntropyUnavailable reports that no seed was configured and none
	// could be drawn from the entropy source.
	ErrEntropyUnavailable = errors.New("forest: entropy source unavailable")
	// ErrInvalidSize reports non-positive grid dimensions.
	ErrInvalidSize = errors.New("forest: grid dimensions must be positive")
)

// entropy is the seed source for unseeded construction.
var entropy io.Reader = crand.Reader

var (
	_ core.Sim                       = (*Forest)(nil)
	_ core.Ticker                    = (*Forest)(nil)
	_ core.Clearer                   = (*Forest)(nil)
	_ core.Igniter                   = (*Forest)(nil)
	_ core.Paletted                  = (*Forest)(nil)
	_ core.ParameterProvider         = (*Forest)(nil)
	_ core.ParameterControlsProvider = (*Forest)(nil)
	_ core.FloatParameterSetter      = (*Forest)(nil)
	_ core.IntParameterSetter        = (*Forest)(nil)
)

// Forest is the fire/ash/regrowth automaton. It is not safe for concurrent
// use; every method runs to completion before the next may be called.
type Forest struct {
	w, h    int
	grid    buffers
	params  Params
	rng     *pcore.RNG
	seed    uint64
	initial uint64
	counter int

	generation uint64
	display    []uint8
}

// New returns a forest of the given size seeded from the entropy source.
func New(w, h int) (*Forest, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a forest configured from the provided options. With
// no explicit seed, construction fails if the entropy source is unavailable.
func NewWithConfig(cfg Config) (*Forest, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, cfg.Width, cfg.Height)
	}
	seed := cfg.Seed
	if !cfg.Seeded {
		drawn, err := pcore.EntropySeed(entropy)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
		}
		seed = drawn
	}
	f := &Forest{
		w:       cfg.Width,
		h:       cfg.Height,
		grid:    newBuffers(cfg.Width, cfg.Height),
		params:  cfg.Params.normalized(),
		rng:     pcore.NewRNG(seed),
		seed:    seed,
		initial: seed,
		display: make([]uint8, cfg.Width*cfg.Height),
	}
	return f, nil
}

// Name returns the simulation identifier.
func (f *Forest) Name() string { return "forest" }

// Size reports the grid dimensions.
func (f *Forest) Size() core.Size { return core.Size{W: f.w, H: f.h} }

// Cells exposes the display buffer: one byte per cell holding its State.
func (f *Forest) Cells() []uint8 { return f.display }

// Current returns a read-only view of the current generation. The view
// follows the forest: after a Step it shows the new generation.
func (f *Forest) Current() View { return f.grid.view() }

// Seed returns the seed the RNG stream started from.
func (f *Forest) Seed() uint64 { return f.seed }

// Generation counts the generations run since construction or Reset.
func (f *Forest) Generation() uint64 { return f.generation }

// Step advances the forest by one generation. Every cell reads the frozen
// current buffer and writes the next one; the buffers swap afterwards.
func (f *Forest) Step() {
	cur := f.grid.current()
	nxt := f.grid.next()
	view := f.grid.view()
	src := cur.Cells()
	dst := nxt.Cells()
	params := f.params

	for y := 0; y < f.h; y++ {
		row := y * f.w
		for x := 0; x < f.w; x++ {
			idx := row + x
			s := src[idx]
			pressure := 0.0
			if s.IsTree() {
				pressure = Pressure(view, x, y)
			}
			dst[idx] = Transition(s, pressure, params, f.rng)
		}
	}

	f.grid.swap()
	f.generation++
	f.rebuildDisplay()
}

// Tick records one external tick and runs a generation once StepDivisor
// ticks have accumulated. It reports whether a generation ran.
func (f *Forest) Tick() bool {
	f.counter++
	if f.counter < f.params.StepDivisor {
		return false
	}
	f.counter = 0
	f.Step()
	return true
}

// Clear resets every cell of the current generation to Empty.
func (f *Forest) Clear() {
	f.grid.clear()
	f.counter = 0
	f.rebuildDisplay()
}

// Reset clears the grid and restarts the RNG stream. A zero seed returns to
// the construction seed, even after earlier reseeds.
func (f *Forest) Reset(seed int64) {
	effective := f.initial
	if seed != 0 {
		effective = uint64(seed)
	}
	f.seed = effective
	f.rng.Reseed(effective)
	f.generation = 0
	f.Clear()
}

// Set stores s at (x, y) in the current generation. It reports false for
// coordinates off the grid or undeclared states.
func (f *Forest) Set(x, y int, s State) bool {
	cur := f.grid.current()
	if !cur.InBounds(x, y) || !s.Valid() {
		return false
	}
	cur.Set(x, y, s)
	f.display[cur.Index(x, y)] = uint8(s)
	return true
}

// Ignite sets the cell at (x, y) on fire.
func (f *Forest) Ignite(x, y int) bool { return f.Set(x, y, Ignite) }

// PressureMask evaluates the ignition pressure of every cell of the current
// generation.
func (f *Forest) PressureMask() []float32 {
	view := f.grid.view()
	mask := make([]float32, f.w*f.h)
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			mask[y*f.w+x] = float32(Pressure(view, x, y))
		}
	}
	return mask
}

// Params returns a copy of the current tunables.
func (f *Forest) Params() Params { return f.params }

// GrowChance returns the sprouting probability.
func (f *Forest) GrowChance() float64 { return f.params.GrowChance }

// StrikeChance returns the lightning probability.
func (f *Forest) StrikeChance() float64 { return f.params.StrikeChance }

// SpreadChance returns the neighbour pressure multiplier.
func (f *Forest) SpreadChance() float64 { return f.params.SpreadChance }

// StepDivisor returns the number of external ticks per generation.
func (f *Forest) StepDivisor() int { return f.params.StepDivisor }

// SetGrowChance updates the sprouting probability, clamped to its range.
func (f *Forest) SetGrowChance(v float64) { f.params.SetGrowChance(v) }

// SetStrikeChance updates the lightning probability, clamped to its range.
func (f *Forest) SetStrikeChance(v float64) { f.params.SetStrikeChance(v) }

// SetSpreadChance updates the pressure multiplier, clamped to its range.
func (f *Forest) SetSpreadChance(v float64) { f.params.SetSpreadChance(v) }

// SetStepDivisor updates the throttle, clamped to its range.
func (f *Forest) SetStepDivisor(v int) { f.params.SetStepDivisor(v) }

func (f *Forest) rebuildDisplay() {
	for i, s := range f.grid.current().Cells() {
		f.display[i] = uint8(s)
	}
}

func init() {
	core.Register("forest", func(cfg map[string]string) (core.Sim, error) {
		f, err := NewWithConfig(FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return f, nil
	})
}
