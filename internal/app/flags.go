package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters for the GUI.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	Seed     int64
	Width    int
	Height   int
	HUDWidth int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "forest", Scale: 2, TPS: 60, HUDWidth: 240}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "external ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "simulation seed (0 draws one from the entropy source)")
	fs.IntVar(&c.Width, "w", c.Width, "grid width (0 keeps the simulation default)")
	fs.IntVar(&c.Height, "h", c.Height, "grid height (0 keeps the simulation default)")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "width of the parameter panel in pixels (0 hides it)")
}

// SimConfig returns the factory options implied by the flags.
func (c *Config) SimConfig() map[string]string {
	cfg := map[string]string{}
	if c.Width > 0 {
		cfg["w"] = strconv.Itoa(c.Width)
	}
	if c.Height > 0 {
		cfg["h"] = strconv.Itoa(c.Height)
	}
	if c.Seed != 0 {
		cfg["seed"] = strconv.FormatUint(uint64(c.Seed), 10)
	}
	return cfg
}
