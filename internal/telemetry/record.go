// Package telemetry records forest census data for offline analysis.
package telemetry

import "forest-sim/internal/sims/forest"

// Record is one census row of census.csv.
type Record struct {
	Generation      uint64  `csv:"generation" json:"generation"`
	Empty           int     `csv:"empty" json:"empty"`
	Saplings        int     `csv:"saplings" json:"saplings"`
	YoungTrees      int     `csv:"young_trees" json:"young_trees"`
	MatureTrees     int     `csv:"mature_trees" json:"mature_trees"`
	Burning         int     `csv:"burning" json:"burning"`
	Ash             int     `csv:"ash" json:"ash"`
	Char            int     `csv:"char" json:"char"`
	TreeCover       float64 `csv:"tree_cover" json:"tree_cover"`
	BurningFraction float64 `csv:"burning_fraction" json:"burning_fraction"`
}

// FromCensus flattens a census into a CSV record.
func FromCensus(c forest.Census) Record {
	return Record{
		Generation:      c.Generation,
		Empty:           c.Count(forest.Empty),
		Saplings:        c.Count(forest.Sapling),
		YoungTrees:      c.Count(forest.YoungTree),
		MatureTrees:     c.Count(forest.MatureTree),
		Burning:         c.Burning(),
		Ash:             c.Count(forest.Ash),
		Char:            c.Count(forest.Char),
		TreeCover:       c.TreeCover(),
		BurningFraction: c.BurningFraction(),
	}
}
