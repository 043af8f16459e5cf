package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a series of census records.
type Summary struct {
	Samples        int     `csv:"samples"`
	MeanTreeCover  float64 `csv:"mean_tree_cover"`
	StdTreeCover   float64 `csv:"std_tree_cover"`
	MeanBurning    float64 `csv:"mean_burning_fraction"`
	StdBurning     float64 `csv:"std_burning_fraction"`
	PeakBurning    int     `csv:"peak_burning"`
	PeakGeneration uint64  `csv:"peak_generation"`
	FinalTreeCover float64 `csv:"final_tree_cover"`
	FireOutAtEnd   bool    `csv:"fire_out_at_end"`
}

// Summarize computes means, spreads and peaks over records.
func Summarize(records []Record) Summary {
	s := Summary{Samples: len(records)}
	if len(records) == 0 {
		return s
	}
	cover := make([]float64, len(records))
	burning := make([]float64, len(records))
	for i, r := range records {
		cover[i] = r.TreeCover
		burning[i] = r.BurningFraction
		if r.Burning > s.PeakBurning {
			s.PeakBurning = r.Burning
			s.PeakGeneration = r.Generation
		}
	}
	s.MeanTreeCover, s.StdTreeCover = meanStd(cover)
	s.MeanBurning, s.StdBurning = meanStd(burning)
	last := records[len(records)-1]
	s.FinalTreeCover = last.TreeCover
	s.FireOutAtEnd = last.Burning == 0
	return s
}

func meanStd(xs []float64) (float64, float64) {
	if len(xs) < 2 {
		return stat.Mean(xs, nil), 0
	}
	return stat.MeanStdDev(xs, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("samples", s.Samples),
		slog.Float64("mean_tree_cover", s.MeanTreeCover),
		slog.Float64("std_tree_cover", s.StdTreeCover),
		slog.Float64("mean_burning", s.MeanBurning),
		slog.Int("peak_burning", s.PeakBurning),
		slog.Uint64("peak_generation", s.PeakGeneration),
		slog.Float64("final_tree_cover", s.FinalTreeCover),
	)
}
