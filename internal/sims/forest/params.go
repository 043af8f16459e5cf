package forest

import "math"

// Declared ranges of the tunables. Setters clamp into them.
const (
	MinGrowChance   = 1e-7
	MaxGrowChance   = 1e-3
	MinStrikeChance = 1e-12
	MaxStrikeChance = 1e-4
	MinSpreadChance = 0.5
	MaxSpreadChance = 0.999999
	MinStepDivisor  = 1
	MaxStepDivisor  = 10
)

// Params holds the tunable probabilities and rates read by the rules every
// generation.
type Params struct {
	// GrowChance is the per-step chance an empty cell sprouts a sapling.
	GrowChance float64 `yaml:"grow_chance" json:"grow_chance"`
	// StrikeChance is the per-step chance a tree ignites with no burning
	// neighbour.
	StrikeChance float64 `yaml:"strike_chance" json:"strike_chance"`
	// SpreadChance scales the neighbour-derived ignition pressure.
	SpreadChance float64 `yaml:"spread_chance" json:"spread_chance"`
	// StepDivisor is the number of external ticks per generation.
	StepDivisor int `yaml:"step_divisor" json:"step_divisor"`
}

// DefaultParams returns the standard tunables.
func DefaultParams() Params {
	return Params{
		GrowChance:   1e-4,
		StrikeChance: 0.5e-6,
		SpreadChance: 0.75,
		StepDivisor:  1,
	}
}

// SetGrowChance clamps v into [MinGrowChance, MaxGrowChance].
func (p *Params) SetGrowChance(v float64) {
	p.GrowChance = clampFloat(v, MinGrowChance, MaxGrowChance)
}

// SetStrikeChance clamps v into [MinStrikeChance, MaxStrikeChance].
func (p *Params) SetStrikeChance(v float64) {
	p.StrikeChance = clampFloat(v, MinStrikeChance, MaxStrikeChance)
}

// SetSpreadChance clamps v into [MinSpreadChance, MaxSpreadChance].
func (p *Params) SetSpreadChance(v float64) {
	p.SpreadChance = clampFloat(v, MinSpreadChance, MaxSpreadChance)
}

// SetStepDivisor clamps v into [MinStepDivisor, MaxStepDivisor].
func (p *Params) SetStepDivisor(v int) {
	if v < MinStepDivisor {
		v = MinStepDivisor
	}
	if v > MaxStepDivisor {
		v = MaxStepDivisor
	}
	p.StepDivisor = v
}

// normalized keeps construction-time values inside the probability domain.
// Unlike the setters it admits 0 and 1, which scripted runs rely on.
func (p Params) normalized() Params {
	p.GrowChance = clampFloat(p.GrowChance, 0, 1)
	p.StrikeChance = clampFloat(p.StrikeChance, 0, 1)
	p.SpreadChance = clampFloat(p.SpreadChance, 0, 1)
	if p.StepDivisor < MinStepDivisor {
		p.StepDivisor = MinStepDivisor
	}
	return p
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
