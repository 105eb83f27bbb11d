// Package config loads the optional .quickmatch/config.json defaults
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/asynkron/Asynkron.QuickMatch/match"
)

// Dir is the per-project directory holding config and outputs
const Dir = ".quickmatch"

// FileName is the config file inside Dir
const FileName = "config.json"

// Config holds the run defaults; command line flags override it.
// JSON uses snake_case and unknown fields are rejected.
type Config struct {
	Algorithm match.Algorithm `json:"algorithm"`
	MinLength int             `json:"min_length"`
	Top       int             `json:"top"`
	Workers   int             `json:"workers"`
	LogLevel  string          `json:"log_level"`
	Severity  Severity        `json:"severity"`
	Ignored   []string        `json:"ignored"` // match fingerprints hidden from output
}

// Severity holds the similarity percentages where the bands start
type Severity struct {
	Medium float64 `json:"medium"`
	High   float64 `json:"high"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Algorithm: match.Hashing,
		MinLength: match.DefaultMinMatchLength,
		Top:       10,
		Workers:   runtime.NumCPU(),
		LogLevel:  "warn",
		Severity:  Severity{Medium: 20, High: 50},
	}
}

// Path returns the config file location under dir
func Path(dir string) string {
	return filepath.Join(dir, Dir, FileName)
}

// Load reads the config file under dir over the defaults. A missing file
// is not an error.
func Load(dir string) (Config, error) {
	cfg := Defaults()
	f, err := os.Open(Path(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", Path(dir), err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects values the comparison cannot run with
func (c Config) Validate() error {
	var errs []error
	if c.MinLength < 1 {
		errs = append(errs, fmt.Errorf("min_length must be at least 1, got %d", c.MinLength))
	}
	if c.Top < 0 {
		errs = append(errs, fmt.Errorf("top must not be negative, got %d", c.Top))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.Severity.Medium < 0 || c.Severity.High > 100 || c.Severity.Medium > c.Severity.High {
		errs = append(errs, fmt.Errorf("severity bands must satisfy 0 <= medium <= high <= 100, got %.1f/%.1f",
			c.Severity.Medium, c.Severity.High))
	}
	for _, fp := range c.Ignored {
		if _, err := strconv.ParseUint(fp, 16, 64); err != nil {
			errs = append(errs, fmt.Errorf("ignored fingerprint %q is not hex", fp))
		}
	}
	return errors.Join(errs...)
}

// IgnoredSet returns the ignored fingerprints as a lookup set
func (c Config) IgnoredSet() map[uint64]bool {
	if len(c.Ignored) == 0 {
		return nil
	}
	ignored := make(map[uint64]bool, len(c.Ignored))
	for _, fp := range c.Ignored {
		if hash, err := strconv.ParseUint(fp, 16, 64); err == nil {
			ignored[hash] = true
		}
	}
	return ignored
}
