package checker

import (
	"os"

	"github.com/goccy/go-yaml"
)

// maxRefinementPassesHardCap is the absolute ceiling spec §3.4/§4.4
// mandate; Config.MaxRefinementPasses can lower it but never raise it.
const maxRefinementPassesHardCap = 10

// Config is the refiner's mode toggle (spec §9: "Union vs. strict
// refinement is a mode toggle... a configuration flag of the refiner").
type Config struct {
	// StrictContainers, when true (the shipped default), rejects a
	// heterogeneous container-slot write with Type mismatch. When false, a
	// disagreeing write widens the slot to a union instead.
	StrictContainers bool `yaml:"strictContainers"`

	// MaxRefinementPasses bounds the refiner's fixed-point loop. Values from
	// 1 to 10 are used as given; zero, a negative value or a value above 10
	// all mean 10.
	MaxRefinementPasses int `yaml:"maxRefinementPasses"`
}

// DefaultConfig is the configuration used when none is supplied: strict
// containers, the full 10-pass refinement budget.
func DefaultConfig() *Config {
	return &Config{StrictContainers: true, MaxRefinementPasses: maxRefinementPassesHardCap}
}

// LoadConfig reads a YAML configuration file and applies it over
// DefaultConfig. A missing MaxRefinementPasses or an out-of-range value
// falls back to the hard cap rather than erroring, since spec §5 treats the
// cap as a safety rail, not something a user-facing config mistake should
// be able to defeat.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.MaxRefinementPasses <= 0 || cfg.MaxRefinementPasses > maxRefinementPassesHardCap {
		cfg.MaxRefinementPasses = maxRefinementPassesHardCap
	}
	return cfg, nil
}
