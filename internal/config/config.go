// Package config loads settings for the elastichashctl demo/REPL/bench
// tool from a JSON-with-comments (JWCC) file, so operators can annotate
// tuning choices inline without breaking the JSON parser.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// ErrInvalid wraps any parse or validation failure in Load.
var ErrInvalid = errors.New("config: invalid")

// Seed is a single preload key/value pair.
type Seed struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// Config holds the tunables accepted by the demo, repl, and bench
// subcommands. Zero values mean "not set"; CLI flags take precedence over
// whatever a config file supplies.
type Config struct {
	InitialCapacity int     `json:"initial_capacity"`
	Delta           float64 `json:"delta"`
	Seed            []Seed  `json:"seed"`
}

// Default returns the built-in defaults used when no config file and no
// flags override them.
func Default() Config {
	return Config{
		InitialCapacity: 1024,
		Delta:           0.125,
	}
}

// Load reads and parses a JWCC config file at path. A missing file is not
// an error: Load returns the zero Config so callers can merge over
// Default() unchanged.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: reading %s: %w", ErrInvalid, path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s is not valid JWCC: %w", ErrInvalid, path, err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}
	return cfg, nil
}

// Merge overlays non-zero fields of overlay onto base, returning the result.
func Merge(base, overlay Config) Config {
	out := base
	if overlay.InitialCapacity != 0 {
		out.InitialCapacity = overlay.InitialCapacity
	}
	if overlay.Delta != 0 {
		out.Delta = overlay.Delta
	}
	if len(overlay.Seed) != 0 {
		out.Seed = overlay.Seed
	}
	return out
}
