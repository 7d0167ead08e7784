// Package config provides YAML configuration loading and validation for
// rollout runs: which environment to build, how it is wrapped, batch size,
// budgets and which listeners to attach.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Known environment names for Config.Environment.
const (
	EnvCartPole  = "cartpole"
	EnvChainWalk = "chainwalk"
)

// Config describes one rollout run.
type Config struct {
	// Environment selects the demo environment to drive.
	Environment string `yaml:"environment"`

	// BatchSize is the number of environment instances; zero means one.
	BatchSize int `yaml:"batch_size"`

	// MaxSteps and MaxEpisodes bound the run; zero means unbounded. At
	// least one must be set.
	MaxSteps    int `yaml:"max_steps"`
	MaxEpisodes int `yaml:"max_episodes"`

	// Seed initializes all sampling. Runs with equal seeds and configs
	// produce equal trajectories.
	Seed uint64 `yaml:"seed"`

	// TimeLimit, when positive, wraps the environment with a step limit.
	TimeLimit int `yaml:"time_limit"`

	// ActionRepeat, when greater than one, wraps the environment so each
	// action is applied that many times.
	ActionRepeat int `yaml:"action_repeat"`

	Metrics MetricsConfig `yaml:"metrics"`
	Replay  ReplayConfig  `yaml:"replay"`
}

// MetricsConfig controls the Prometheus listener.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	// Addr is the listen address for the /metrics endpoint, e.g. ":9090".
	Addr string `yaml:"addr"`
}

// ReplayConfig controls the SQLite trajectory store listener.
type ReplayConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns a runnable configuration: one chain-walk instance bounded
// at 10 episodes.
func Default() *Config {
	return &Config{
		Environment: EnvChainWalk,
		BatchSize:   1,
		MaxEpisodes: 10,
	}
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	cfg.MaxEpisodes = 0 // defaults must not mask a configured budget
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 1
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	switch c.Environment {
	case EnvCartPole, EnvChainWalk:
	default:
		return fmt.Errorf("unknown environment %q", c.Environment)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.MaxSteps < 0 || c.MaxEpisodes < 0 {
		return fmt.Errorf("budgets must be non-negative")
	}
	if c.MaxSteps == 0 && c.MaxEpisodes == 0 {
		return fmt.Errorf("at least one of max_steps or max_episodes must be set")
	}
	if c.TimeLimit < 0 {
		return fmt.Errorf("time_limit must be non-negative, got %d", c.TimeLimit)
	}
	if c.ActionRepeat < 0 {
		return fmt.Errorf("action_repeat must be non-negative, got %d", c.ActionRepeat)
	}
	if c.Replay.Enabled && c.Replay.Path == "" {
		return fmt.Errorf("replay.path is required when replay is enabled")
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr is required when metrics are enabled")
	}
	return nil
}
