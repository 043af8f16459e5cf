package forest

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func newTestForest(t *testing.T, w, h int, seed uint64, params Params) *Forest {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Params = params
	f, err := NewWithConfig(cfg.WithSeed(seed))
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	return f
}

func quietParams() Params {
	return Params{GrowChance: 0, StrikeChance: 0, SpreadChance: 0.75, StepDivisor: 1}
}

func TestDecayChainTakesSixGenerations(t *testing.T) {
	want := []State{Flame2, Flame3, Flame4, Ember1, Ember2, Ash}
	for seed := uint64(1); seed <= 16; seed++ {
		f := newTestForest(t, 5, 5, seed, quietParams())
		f.Set(2, 2, Ignite)
		for gen, expected := range want {
			f.Step()
			if got := f.Current().At(2, 2); got != expected {
				t.Fatalf("seed %d: generation %d is %v, want %v", seed, gen+1, got, expected)
			}
		}
	}
}

func TestEmptyGridStaysEmptyWithoutGrowth(t *testing.T) {
	f := newTestForest(t, 16, 12, 42, quietParams())
	for i := 0; i < 200; i++ {
		f.Step()
	}
	for i, s := range f.Current().Snapshot() {
		if s != Empty {
			t.Fatalf("cell %d became %v with zero growth", i, s)
		}
	}
	if f.Generation() != 200 {
		t.Fatalf("expected generation 200, got %d", f.Generation())
	}
}

func TestSaplingPromotionIsGeometric(t *testing.T) {
	const trials = 4000
	total := 0
	for trial := 0; trial < trials; trial++ {
		f := newTestForest(t, 1, 1, uint64(trial)+1, quietParams())
		f.Set(0, 0, Sapling)
		steps := 0
		for f.Current().At(0, 0) == Sapling {
			f.Step()
			steps++
			if steps > 500 {
				t.Fatalf("trial %d: sapling never promoted", trial)
			}
		}
		if got := f.Current().At(0, 0); got != YoungTree {
			t.Fatalf("trial %d: sapling became %v, want young tree", trial, got)
		}
		total += steps
	}
	mean := float64(total) / trials
	if math.Abs(mean-4) > 0.3 {
		t.Fatalf("mean time to promotion %.3f, want about 4", mean)
	}
}

func TestPressureWeighting(t *testing.T) {
	tests := []struct {
		name    string
		sources map[[2]int]State
		want    float64
	}{
		{"orthogonal ignite", map[[2]int]State{{1, 0}: Ignite}, 1},
		{"diagonal ignite", map[[2]int]State{{0, 0}: Ignite}, 1 / math.Sqrt2},
		{"no fire", map[[2]int]State{{0, 0}: MatureTree, {2, 2}: Ash}, 0},
		{"maximum not sum", map[[2]int]State{{1, 2}: Flame2, {2, 1}: Flame2, {0, 2}: Ignite}, 1 / math.Sqrt2},
		{"orthogonal beats weaker diagonal", map[[2]int]State{{0, 1}: Flame3, {2, 2}: Flame3}, 0.25},
		{"ember", map[[2]int]State{{2, 1}: Ember2}, 0.03125},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestForest(t, 3, 3, 1, quietParams())
			for pos, s := range tt.sources {
				f.Set(pos[0], pos[1], s)
			}
			got := Pressure(f.Current(), 1, 1)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("Pressure = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPressureIgnoresOwnCell(t *testing.T) {
	f := newTestForest(t, 3, 3, 1, quietParams())
	f.Set(1, 1, Ignite)
	if got := Pressure(f.Current(), 1, 1); got != 0 {
		t.Fatalf("a cell must not pressure itself, got %v", got)
	}
}

func TestPressureOffGridIsZero(t *testing.T) {
	f := newTestForest(t, 3, 3, 1, quietParams())
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			f.Set(x, y, Ignite)
		}
	}
	for _, pos := range [][2]int{{3, 1}, {-1, 1}, {1, 3}, {1, -1}, {3, 3}, {100, 0}} {
		if got := Pressure(f.Current(), pos[0], pos[1]); got != 0 {
			t.Fatalf("Pressure at off-grid %v = %v, want 0", pos, got)
		}
	}
}

func TestViewFollowsGeneration(t *testing.T) {
	f := newTestForest(t, 2, 1, 1, quietParams())
	view := f.Current()
	f.Set(0, 0, Ignite)
	f.Step()
	if view.At(0, 0) != Flame2 {
		t.Fatalf("view held across a step shows %v, want flame2", view.At(0, 0))
	}
	f.Step()
	if got, want := view.Snapshot(), f.Current().Snapshot(); !slices.Equal(got, want) {
		t.Fatalf("view %v differs from current generation %v", got, want)
	}
	f.Clear()
	if view.At(0, 0) != Empty {
		t.Fatal("view should observe Clear")
	}
}

func TestBoundaryCellsStepSafely(t *testing.T) {
	const w, h = 5, 4
	positions := [][2]int{{0, 0}, {w - 1, 0}, {0, h - 1}, {w - 1, h - 1}, {2, 0}, {0, 2}, {w - 1, 1}, {3, h - 1}}
	for _, pos := range positions {
		f := newTestForest(t, w, h, 9, quietParams())
		f.Set(pos[0], pos[1], Ignite)
		f.Step()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				want := Empty
				if x == pos[0] && y == pos[1] {
					want = Flame2
				}
				if got := f.Current().At(x, y); got != want {
					t.Fatalf("ignite at %v: cell (%d,%d)=%v, want %v", pos, x, y, got, want)
				}
			}
		}
	}
}

func TestCornerFireReachesOnlyPresentNeighbours(t *testing.T) {
	params := quietParams()
	params.SpreadChance = 1
	f := newTestForest(t, 4, 3, 5, params)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			f.Set(x, y, MatureTree)
		}
	}
	f.Set(0, 0, Ignite)

	if got := Pressure(f.Current(), 1, 1); math.Abs(got-1/math.Sqrt2) > 1e-12 {
		t.Fatalf("diagonal neighbour of the corner saw pressure %v", got)
	}

	f.Step()
	view := f.Current()
	if view.At(0, 0) != Flame2 {
		t.Fatalf("corner should advance to flame2, got %v", view.At(0, 0))
	}
	if view.At(1, 0) != Ignite || view.At(0, 1) != Ignite {
		t.Fatalf("orthogonal neighbours must ignite at probability 1, got %v and %v", view.At(1, 0), view.At(0, 1))
	}
	for _, pos := range [][2]int{{2, 0}, {3, 0}, {2, 1}, {3, 1}, {0, 2}, {1, 2}, {2, 2}, {3, 2}} {
		if got := view.At(pos[0], pos[1]); got != MatureTree {
			t.Fatalf("cell %v out of reach became %v", pos, got)
		}
	}
}

func TestStepReadsOnlyPreviousGeneration(t *testing.T) {
	params := quietParams()
	params.SpreadChance = 1
	f := newTestForest(t, 8, 1, 3, params)
	for x := 1; x < 8; x++ {
		f.Set(x, 0, MatureTree)
	}
	f.Set(0, 0, Ignite)

	for gen := 1; gen <= 4; gen++ {
		f.Step()
		for x := gen + 1; x < 8; x++ {
			if got := f.Current().At(x, 0); got != MatureTree {
				t.Fatalf("generation %d: fire outran the front to x=%d (%v)", gen, x, got)
			}
		}
		if got := f.Current().At(gen, 0); got != Ignite {
			t.Fatalf("generation %d: front cell x=%d is %v, want ignite", gen, gen, got)
		}
	}
}

func TestStepIsReproducible(t *testing.T) {
	params := Params{GrowChance: 0.02, StrikeChance: 0.001, SpreadChance: 0.9, StepDivisor: 1}
	seedGrid := newTestForest(t, 24, 18, 77, params)
	for i := 0; i < 40; i++ {
		seedGrid.Step()
	}
	initial := seedGrid.Current().Snapshot()

	load := func() *Forest {
		f := newTestForest(t, 24, 18, 1234, params)
		for i, s := range initial {
			f.Set(i%24, i/24, s)
		}
		return f
	}
	a := load()
	b := load()
	for gen := 0; gen < 30; gen++ {
		a.Step()
		b.Step()
		if !slices.Equal(a.Current().Snapshot(), b.Current().Snapshot()) {
			t.Fatalf("generation %d diverged for identical grid and seed", gen+1)
		}
	}
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("display buffers diverged")
	}
}

func TestEndToEndThreeByThree(t *testing.T) {
	params := quietParams()
	params.SpreadChance = 0.5
	f := newTestForest(t, 3, 3, 2024, params)
	f.Set(1, 1, Ignite)

	check := func(gen int, center State) {
		t.Helper()
		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				want := Empty
				if x == 1 && y == 1 {
					want = center
				}
				if got := f.Current().At(x, y); got != want {
					t.Fatalf("after step %d cell (%d,%d)=%v, want %v", gen, x, y, got, want)
				}
			}
		}
	}

	f.Step()
	check(1, Flame2)
	for gen := 2; gen <= 6; gen++ {
		f.Step()
	}
	check(6, Ash)
}

func TestIgnitionAtCertainProbability(t *testing.T) {
	params := quietParams()
	params.SpreadChance = 1
	for seed := uint64(1); seed <= 8; seed++ {
		f := newTestForest(t, 1, 2, seed, params)
		f.Set(0, 0, MatureTree)
		f.Set(0, 1, Ignite)
		f.Step()
		if got := f.Current().At(0, 0); got != Ignite {
			t.Fatalf("seed %d: mature tree beside a spark became %v, want ignite", seed, got)
		}
		if got := f.Current().At(0, 1); got != Flame2 {
			t.Fatalf("seed %d: spark became %v, want flame2", seed, got)
		}
	}
}

func TestTickThrottlesGenerations(t *testing.T) {
	params := quietParams()
	params.StepDivisor = 3
	f := newTestForest(t, 4, 4, 1, params)

	pattern := []bool{false, false, true, false, false, true}
	for i, want := range pattern {
		if got := f.Tick(); got != want {
			t.Fatalf("tick %d stepped=%v, want %v", i+1, got, want)
		}
	}
	if f.Generation() != 2 {
		t.Fatalf("expected 2 generations after 6 ticks, got %d", f.Generation())
	}

	f.SetStepDivisor(1)
	if !f.Tick() {
		t.Fatal("divisor 1 should step on every tick")
	}

	f.SetStepDivisor(4)
	f.Tick()
	f.Tick()
	f.SetStepDivisor(2)
	if !f.Tick() {
		t.Fatal("lowering the divisor below the pending count should step immediately")
	}
}

func TestClearEmptiesCurrentGeneration(t *testing.T) {
	params := Params{GrowChance: 0.5, StrikeChance: 0, SpreadChance: 0.75, StepDivisor: 1}
	f := newTestForest(t, 10, 10, 8, params)
	for i := 0; i < 10; i++ {
		f.Step()
	}
	if f.Census().Count(Empty) == 100 {
		t.Fatal("expected growth before clearing")
	}

	f.Clear()
	for i, s := range f.Current().Snapshot() {
		if s != Empty {
			t.Fatalf("cell %d is %v after Clear", i, s)
		}
	}
	for i, v := range f.Cells() {
		if v != uint8(Empty) {
			t.Fatalf("display cell %d is %d after Clear", i, v)
		}
	}
}

func TestResetReplaysSequence(t *testing.T) {
	params := Params{GrowChance: 0.05, StrikeChance: 0.01, SpreadChance: 0.8, StepDivisor: 1}
	f := newTestForest(t, 12, 12, 99, params)
	for i := 0; i < 25; i++ {
		f.Step()
	}
	first := f.Current().Snapshot()

	f.Reset(0)
	if f.Generation() != 0 {
		t.Fatalf("Reset should rewind the generation counter, got %d", f.Generation())
	}
	for i := 0; i < 25; i++ {
		f.Step()
	}
	if !slices.Equal(first, f.Current().Snapshot()) {
		t.Fatal("Reset(0) should replay the construction seed")
	}

	f.Reset(5)
	if f.Seed() != 5 {
		t.Fatalf("Reset(5) should adopt seed 5, got %d", f.Seed())
	}
}

func TestResetZeroAfterReseedReturnsToConstructionSeed(t *testing.T) {
	params := Params{GrowChance: 0.05, StrikeChance: 0.01, SpreadChance: 0.8, StepDivisor: 1}
	f := newTestForest(t, 12, 12, 99, params)
	for i := 0; i < 25; i++ {
		f.Step()
	}
	first := f.Current().Snapshot()

	f.Reset(5)
	f.Reset(0)
	if f.Seed() != 99 {
		t.Fatalf("Reset(0) after Reset(5) should return to seed 99, got %d", f.Seed())
	}
	for i := 0; i < 25; i++ {
		f.Step()
	}
	if !slices.Equal(first, f.Current().Snapshot()) {
		t.Fatal("Reset(0) after a reseed should replay the construction seed")
	}
}

func TestConstructionErrors(t *testing.T) {
	if _, err := New(0, 10); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}

	saved := entropy
	entropy = failingReader{}
	defer func() { entropy = saved }()

	if _, err := New(4, 4); !errors.Is(err, ErrEntropyUnavailable) {
		t.Fatalf("expected ErrEntropyUnavailable, got %v", err)
	}

	f, err := NewWithConfig(DefaultConfig().WithSeed(3))
	if err != nil {
		t.Fatalf("explicit seed must not need entropy: %v", err)
	}
	if f.Seed() != 3 {
		t.Fatalf("expected seed 3, got %d", f.Seed())
	}
}

func TestEntropySeededForestsDiffer(t *testing.T) {
	a, err := New(4, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := New(4, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Seed() == b.Seed() {
		t.Fatal("entropy seeding produced identical seeds")
	}
}

func TestSetRejectsOffGridAndInvalidStates(t *testing.T) {
	f := newTestForest(t, 3, 3, 1, quietParams())
	if f.Set(3, 0, Ignite) || f.Set(0, -1, Ignite) {
		t.Fatal("Set must reject coordinates off the grid")
	}
	if f.Set(0, 0, State(200)) {
		t.Fatal("Set must reject undeclared states")
	}
	if !f.Ignite(2, 2) || f.Current().At(2, 2) != Ignite {
		t.Fatal("Ignite should set the cell on fire")
	}
	if f.Cells()[8] != uint8(Ignite) {
		t.Fatal("display buffer should track Set")
	}
}

func TestPressureMask(t *testing.T) {
	f := newTestForest(t, 3, 2, 1, quietParams())
	f.Set(0, 0, Ignite)
	mask := f.PressureMask()
	if len(mask) != 6 {
		t.Fatalf("expected 6 mask values, got %d", len(mask))
	}
	if mask[1] != 1 || mask[3] != 1 {
		t.Fatalf("orthogonal neighbours should read 1, got %v", mask)
	}
	if math.Abs(float64(mask[4])-1/math.Sqrt2) > 1e-6 {
		t.Fatalf("diagonal neighbour should read 1/sqrt2, got %v", mask[4])
	}
	if mask[0] != 0 || mask[2] != 0 || mask[5] != 0 {
		t.Fatalf("cells without burning neighbours should read 0, got %v", mask)
	}
}

func TestCensus(t *testing.T) {
	f := newTestForest(t, 4, 1, 1, quietParams())
	f.Set(0, 0, MatureTree)
	f.Set(1, 0, Flame3)
	f.Set(2, 0, Ash)

	c := f.Census()
	if c.Total != 4 || c.Trees() != 1 || c.Burning() != 1 || c.Residue() != 1 || c.Count(Empty) != 1 {
		t.Fatalf("unexpected census %+v", c)
	}
	if c.TreeCover() != 0.25 || c.BurningFraction() != 0.25 {
		t.Fatalf("unexpected fractions %v %v", c.TreeCover(), c.BurningFraction())
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }
