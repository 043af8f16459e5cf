package config

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// aliases maps short override keys to their dotted config path.
var aliases = map[string]string{
	"width":         "forest.width",
	"height":        "forest.height",
	"seed":          "forest.seed",
	"grow_chance":   "forest.params.grow_chance",
	"strike_chance": "forest.params.strike_chance",
	"spread_chance": "forest.params.spread_chance",
	"step_divisor":  "forest.params.step_divisor",
	"ticks":         "run.ticks",
	"tps":           "run.tps",
	"census_every":  "run.census_every",
	"dir":           "output.dir",
	"addr":          "serve.addr",
}

// Overrides collects repeatable key=value flags.
type Overrides []string

func (o *Overrides) String() string {
	return strings.Join(*o, ",")
}

func (o *Overrides) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("override %q: expected key=value", value)
	}
	*o = append(*o, value)
	return nil
}

// Apply overlays key=value pairs onto c. Keys are dotted YAML paths such as
// forest.params.spread_chance, or one of the short aliases. Values are parsed
// as YAML scalars. Unknown keys are rejected.
func (c *Config) Apply(overrides []string) error {
	for _, kv := range overrides {
		key, raw, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("override %q: expected key=value", kv)
		}
		key = strings.TrimSpace(key)
		if full, ok := aliases[key]; ok {
			key = full
		}

		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			return fmt.Errorf("override %s: %w", key, err)
		}

		doc := nestedDoc(strings.Split(key, "."), value)
		data, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("override %s: %w", key, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil {
			return fmt.Errorf("override %s: %w", key, err)
		}
	}
	return c.validate()
}

func nestedDoc(path []string, value any) map[string]any {
	if len(path) == 1 {
		return map[string]any{path[0]: value}
	}
	return map[string]any{path[0]: nestedDoc(path[1:], value)}
}
