package forest

import "log/slog"

// Census counts the cells of one generation by state.
type Census struct {
	Generation uint64
	Total      int
	Counts     [stateCount]int
}

// Census tallies the current generation.
func (f *Forest) Census() Census {
	c := Census{Generation: f.generation}
	for _, s := range f.grid.current().Cells() {
		c.Counts[s]++
		c.Total++
	}
	return c
}

// Count returns the number of cells in state s.
func (c Census) Count(s State) int {
	if !s.Valid() {
		return 0
	}
	return c.Counts[s]
}

// Trees counts saplings, young and mature trees.
func (c Census) Trees() int {
	return c.Counts[Sapling] + c.Counts[YoungTree] + c.Counts[MatureTree]
}

// Burning counts cells anywhere on the flame/ember chain.
func (c Census) Burning() int {
	n := 0
	for s := Ignite; s <= Ember2; s++ {
		n += c.Counts[s]
	}
	return n
}

// Residue counts ash and char cells.
func (c Census) Residue() int { return c.Counts[Ash] + c.Counts[Char] }

// TreeCover is the fraction of the grid holding trees.
func (c Census) TreeCover() float64 { return c.fraction(c.Trees()) }

// BurningFraction is the fraction of the grid on fire.
func (c Census) BurningFraction() float64 { return c.fraction(c.Burning()) }

func (c Census) fraction(n int) float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(n) / float64(c.Total)
}

// LogValue implements slog.LogValuer for structured logging.
func (c Census) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("generation", c.Generation),
		slog.Int("empty", c.Counts[Empty]),
		slog.Int("trees", c.Trees()),
		slog.Int("mature", c.Counts[MatureTree]),
		slog.Int("burning", c.Burning()),
		slog.Int("residue", c.Residue()),
		slog.Float64("tree_cover", c.TreeCover()),
	)
}
