package config

import (
	"flag"
	"testing"
)

func TestApplyOverrides(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	err = cfg.Apply([]string{
		"width=80",
		"forest.height=40",
		"seed=7",
		"spread_chance=0.9",
		"forest.params.strike_chance=1e-5",
		"run.census_every=5",
		"dir=out/run1",
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cfg.Forest.Width != 80 || cfg.Forest.Height != 40 {
		t.Fatalf("unexpected size %dx%d", cfg.Forest.Width, cfg.Forest.Height)
	}
	if cfg.Forest.Seed == nil || *cfg.Forest.Seed != 7 {
		t.Fatalf("seed not applied: %v", cfg.Forest.Seed)
	}
	p := cfg.Forest.Params
	if p.SpreadChance != 0.9 || p.StrikeChance != 1e-5 || p.GrowChance != 0.0001 {
		t.Fatalf("unexpected params %+v", p)
	}
	if cfg.Run.CensusEvery != 5 || cfg.Run.Ticks != 2000 {
		t.Fatalf("unexpected run config %+v", cfg.Run)
	}
	if cfg.Output.Dir != "out/run1" {
		t.Fatalf("unexpected output dir %q", cfg.Output.Dir)
	}
}

func TestApplyRejectsBadOverrides(t *testing.T) {
	tests := []struct {
		name string
		kv   string
	}{
		{"unknown key", "forest.wind=3"},
		{"missing value", "width"},
		{"wrong type", "width=wide"},
		{"invalid size", "height=0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			if err := cfg.Apply([]string{tt.kv}); err == nil {
				t.Fatalf("expected %q to be rejected", tt.kv)
			}
		})
	}
}

func TestOverridesFlag(t *testing.T) {
	var o Overrides
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&o, "set", "")
	if err := fs.Parse([]string{"-set", "ticks=10", "-set", "tps=30"}); err != nil {
		t.Fatal(err)
	}
	if len(o) != 2 || o.String() != "ticks=10,tps=30" {
		t.Fatalf("unexpected overrides %v", o)
	}
	if err := o.Set("novalue"); err == nil {
		t.Fatal("Set should require key=value")
	}
}
