package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/match-insight/internal/explain"
)

var thresholdCmd = &cobra.Command{
	Use:   "threshold",
	Short: "Decide whether a match clears a screening cutoff",
	Long:  "Score a candidate against a job posting, compare the score to a threshold, and attribute the pass/fail outcome to the factors driving it.",
	RunE:  runThreshold,
}

var (
	thresholdCandidateFile string
	thresholdJobFile       string
	thresholdValue         float64
)

func init() {
	thresholdCmd.Flags().StringVarP(&thresholdCandidateFile, "candidate", "c", "", "Path to candidate profile JSON (required)")
	thresholdCmd.Flags().StringVarP(&thresholdJobFile, "job", "j", "", "Path to job posting JSON (required)")
	thresholdCmd.Flags().Float64VarP(&thresholdValue, "threshold", "t", 0, "Screening cutoff in [0,1] (defaults to the configured threshold)")
	_ = thresholdCmd.MarkFlagRequired("candidate")
	_ = thresholdCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(thresholdCmd)
}

func runThreshold(_ *cobra.Command, _ []string) error {
	cfg, err := loadEffectiveConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	cutoff := thresholdValue
	if cutoff == 0 {
		cutoff = cfg.Threshold
	}
	if cutoff < 0 || cutoff > 1 {
		return fmt.Errorf("threshold must be in [0, 1], got %g", cutoff)
	}

	candidate, err := loadCandidate(thresholdCandidateFile)
	if err != nil {
		return err
	}
	job, err := loadJob(thresholdJobFile)
	if err != nil {
		return err
	}

	engine := buildEngine(cfg)
	result := engine.Match(candidate, job)

	explainer := explain.NewMatchExplainer(
		explain.WithExplainerWeights(cfg.ScoringWeights()),
		explain.WithLogger(log),
	)
	decision := explainer.ExplainThresholdDecision(result, cutoff)

	if cfg.JSONOutput {
		return printJSON(decision)
	}

	fmt.Fprintf(os.Stdout, "%s: %s scored %.1f%% against a %.0f%% cutoff\n\n",
		decision.Decision, result.CandidateName, decision.Score*100, cutoff*100)
	fmt.Fprintf(os.Stdout, "%s\n", decision.Narrative)
	return nil
}
