package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"audit_db": "audit.db",
		"weights": {"skills_match": 0.5, "experience_match": 0.5},
		"threshold": 0.7,
		"lime_samples": 200,
		"seed": 42,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "audit.db", cfg.AuditDB)
	assert.Equal(t, 0.5, cfg.Weights["skills_match"])
	assert.Equal(t, 0.7, cfg.Threshold)
	assert.Equal(t, 200, cfg.LIMESamples)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_NegativeWeight(t *testing.T) {
	cfg := &Config{
		Weights: map[string]float64{"skills_match": -0.1},
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "skills_match")
}

func TestValidate_ThresholdOutOfRange(t *testing.T) {
	cfg := &Config{Threshold: 1.5}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "threshold")
}

func TestValidate_SemanticScoreOutOfRange(t *testing.T) {
	score := -0.2
	cfg := &Config{SemanticScore: &score}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "semantic_score")
}

func TestValidate_MissingCandidateFile(t *testing.T) {
	cfg := &Config{Candidate: "/nonexistent/candidate.json"}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "candidate file not found")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		Threshold:   0.7,
		LIMESamples: 100,
		Weights:     map[string]float64{"skills_match": 0.4},
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestScoringWeights_MergesOverDefaults(t *testing.T) {
	cfg := &Config{
		Weights: map[string]float64{"skills_match": 0.5},
	}

	weights := cfg.ScoringWeights()
	assert.Equal(t, 0.5, weights["skills_match"])
	assert.Equal(t, 0.25, weights["experience_match"])
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		Candidate:   "default_candidate.json",
		AuditDB:     "default.db",
		Threshold:   0.7,
		LIMESamples: 200,
	}

	partial := Config{
		Candidate: "custom_candidate.json",
		Job:       "job.json",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "custom_candidate.json", merged.Candidate)
	assert.Equal(t, "job.json", merged.Job)

	// Default values should fill in empty fields
	assert.Equal(t, "default.db", merged.AuditDB)
	assert.Equal(t, 0.7, merged.Threshold)
	assert.Equal(t, 200, merged.LIMESamples)
}

func TestMergeWithDefaults_ThresholdFallback(t *testing.T) {
	empty := Config{}
	merged := empty.MergeWithDefaults(Config{})
	assert.Equal(t, 0.5, merged.Threshold)
}
