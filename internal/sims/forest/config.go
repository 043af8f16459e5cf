package forest

import "strconv"

// Config controls the forest simulation dimensions, seeding and tunables.
type Config struct {
	Width  int
	Height int

	// Seed is used when Seeded is set; otherwise a seed is drawn from the
	// entropy source at construction.
	Seed   uint64
	Seeded bool

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  500,
		Height: 500,
		Params: DefaultParams(),
	}
}

// WithSeed returns a copy of c pinned to seed.
func (c Config) WithSeed(seed uint64) Config {
	c.Seed = seed
	c.Seeded = true
	return c
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Tunables go through the clamping setters.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c = c.WithSeed(parsed)
		}
	}
	if v, ok := cfg["grow_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.SetGrowChance(parsed)
		}
	}
	if v, ok := cfg["strike_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.SetStrikeChance(parsed)
		}
	}
	if v, ok := cfg["spread_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.SetSpreadChance(parsed)
		}
	}
	if v, ok := cfg["step_divisor"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Params.SetStepDivisor(parsed)
		}
	}
	return c
}
