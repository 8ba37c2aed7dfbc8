package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jonathan/match-insight/internal/audit"
	"github.com/jonathan/match-insight/internal/config"
	"github.com/jonathan/match-insight/internal/logger"
	"github.com/jonathan/match-insight/internal/matching"
	"github.com/jonathan/match-insight/internal/schemas"
	"github.com/jonathan/match-insight/internal/types"
)

// loadEffectiveConfig loads the optional config file, applies defaults, and
// folds in the persistent flags. Flags win over file values.
func loadEffectiveConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if flagConfig != "" {
		loaded, err := config.LoadConfig(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithDefaults(config.Config{})
	if flagAuditDB != "" {
		merged.AuditDB = flagAuditDB
	}
	if flagVerbose {
		merged.Verbose = true
	}
	if flagJSON {
		merged.JSONOutput = true
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.JSONOutput, cfg.Verbose)
}

// loadCandidate reads, schema-validates, and decodes a candidate profile.
func loadCandidate(path string) (*types.CandidateProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidate file: %w", err)
	}
	if err := schemas.ValidateCandidateProfile(data); err != nil {
		return nil, fmt.Errorf("candidate profile %s: %w", path, err)
	}

	var candidate types.CandidateProfile
	if err := json.Unmarshal(data, &candidate); err != nil {
		return nil, fmt.Errorf("failed to decode candidate profile: %w", err)
	}
	if err := candidate.Validate(); err != nil {
		return nil, fmt.Errorf("invalid candidate profile %s: %w", path, err)
	}
	return &candidate, nil
}

// loadJob reads, schema-validates, and decodes a job profile.
func loadJob(path string) (*types.JobProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	if err := schemas.ValidateJobProfile(data); err != nil {
		return nil, fmt.Errorf("job profile %s: %w", path, err)
	}

	var job types.JobProfile
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to decode job profile: %w", err)
	}
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job profile %s: %w", path, err)
	}
	return &job, nil
}

func buildEngine(cfg *config.Config) *matching.Engine {
	return matching.NewEngine(matching.WithWeights(cfg.ScoringWeights()))
}

// recordAudit stores results when an audit database is configured. Audit
// failures are logged, never fatal: the score already went to the user.
func recordAudit(log *zap.Logger, cfg *config.Config, action string, results ...*types.MatchResult) {
	if cfg.AuditDB == "" {
		return
	}

	store, err := audit.Open(cfg.AuditDB)
	if err != nil {
		log.Warn("audit database unavailable", zap.String("path", cfg.AuditDB), zap.Error(err))
		return
	}
	defer store.Close()

	ctx := context.Background()
	for _, result := range results {
		if err := store.RecordResult(ctx, action, result); err != nil {
			log.Warn("failed to record audit entry",
				zap.String("match_id", result.ID.String()), zap.Error(err))
		}
	}
}

// printJSON writes v to stdout with indentation.
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
