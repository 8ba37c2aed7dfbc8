package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/match-insight/internal/audit"
	"github.com/jonathan/match-insight/internal/matching"
	"github.com/jonathan/match-insight/internal/observability"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score one candidate against one job posting",
	Long:  "Score a parsed candidate profile against a parsed job posting across the weighted factors and print the result with its per-factor breakdown.",
	RunE:  runMatch,
}

var (
	matchCandidateFile string
	matchJobFile       string
	matchSemantic      float64
)

func init() {
	matchCmd.Flags().StringVarP(&matchCandidateFile, "candidate", "c", "", "Path to candidate profile JSON (required)")
	matchCmd.Flags().StringVarP(&matchJobFile, "job", "j", "", "Path to job posting JSON (required)")
	matchCmd.Flags().Float64Var(&matchSemantic, "semantic", -1, "Externally computed semantic similarity in [0,1] (omit to fall back to keyword overlap)")
	_ = matchCmd.MarkFlagRequired("candidate")
	_ = matchCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, _ []string) error {
	cfg, err := loadEffectiveConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	candidate, err := loadCandidate(matchCandidateFile)
	if err != nil {
		return err
	}
	job, err := loadJob(matchJobFile)
	if err != nil {
		return err
	}

	engine := buildEngine(cfg)

	var opts []matching.MatchOption
	if matchSemantic >= 0 {
		opts = append(opts, matching.WithSemanticScore(matchSemantic))
	} else if cfg.SemanticScore != nil {
		opts = append(opts, matching.WithSemanticScore(*cfg.SemanticScore))
	}

	result := engine.Match(candidate, job, opts...)
	log.Debug("scored candidate",
		zap.String("candidate", result.CandidateName),
		zap.String("job", result.JobTitle),
		zap.Float64("score", result.OverallScore))

	recordAudit(log, cfg, audit.ActionScored, result)

	if cfg.JSONOutput {
		return printJSON(result)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintMatchResult(result)
	printer.PrintScoreBreakdown(result.ScoreBreakdown)
	return nil
}
