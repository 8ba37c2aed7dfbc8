// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/match-insight/internal/types"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Candidate string `json:"candidate,omitempty"` // Path to candidate profile JSON
	Job       string `json:"job,omitempty"`       // Path to job posting JSON
	AuditDB   string `json:"audit_db,omitempty"`  // Path to the SQLite audit database

	// Scoring
	Weights       map[string]float64 `json:"weights,omitempty"`        // Factor weight overrides
	SemanticScore *float64           `json:"semantic_score,omitempty"` // Externally computed semantic similarity (0-1)
	Threshold     float64            `json:"threshold,omitempty"`      // Screening cutoff for threshold decisions (0-1)

	// Explainability
	LIMESamples int   `json:"lime_samples,omitempty"` // Perturbation samples per LIME explanation
	Seed        int64 `json:"seed,omitempty"`         // Seed for the stochastic explainers (0 = random)

	// Behavior
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information
	JSONOutput bool `json:"json_output,omitempty"` // Emit JSON instead of tables
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	for name, weight := range c.Weights {
		if weight < 0 {
			return fmt.Errorf("config error: weight %q must be non-negative", name)
		}
	}

	if c.SemanticScore != nil && (*c.SemanticScore < 0 || *c.SemanticScore > 1) {
		return fmt.Errorf("config error: 'semantic_score' must be in [0, 1]")
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("config error: 'threshold' must be in [0, 1]")
	}
	if c.LIMESamples < 0 {
		return fmt.Errorf("config error: 'lime_samples' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.Candidate != "" {
		if _, err := os.Stat(c.Candidate); os.IsNotExist(err) {
			return fmt.Errorf("config error: candidate file not found: %s", c.Candidate)
		}
	}
	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	return nil
}

// ScoringWeights returns the configured weights merged over the defaults.
// Unnamed factors keep their default weight.
func (c *Config) ScoringWeights() types.ScoringWeights {
	weights := types.DefaultScoringWeights()
	for name, weight := range c.Weights {
		weights[name] = weight
	}
	return weights
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Candidate == "" {
		result.Candidate = defaults.Candidate
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.AuditDB == "" {
		result.AuditDB = defaults.AuditDB
	}

	if result.Weights == nil {
		result.Weights = defaults.Weights
	}
	if result.SemanticScore == nil {
		result.SemanticScore = defaults.SemanticScore
	}

	// Numeric fields: use default if zero
	if result.Threshold == 0 {
		if defaults.Threshold > 0 {
			result.Threshold = defaults.Threshold
		} else {
			result.Threshold = types.FairThreshold
		}
	}
	if result.LIMESamples == 0 {
		result.LIMESamples = defaults.LIMESamples
	}
	if result.Seed == 0 {
		result.Seed = defaults.Seed
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
