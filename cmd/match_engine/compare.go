package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/match-insight/internal/explain"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Explain the score difference between two candidates",
	Long:  "Score two candidates against the same job posting and attribute their score gap to per-factor weighted deltas.",
	RunE:  runCompare,
}

var (
	compareCandidateA string
	compareCandidateB string
	compareJobFile    string
)

func init() {
	compareCmd.Flags().StringVar(&compareCandidateA, "candidate-a", "", "Path to first candidate profile JSON (required)")
	compareCmd.Flags().StringVar(&compareCandidateB, "candidate-b", "", "Path to second candidate profile JSON (required)")
	compareCmd.Flags().StringVarP(&compareJobFile, "job", "j", "", "Path to job posting JSON (required)")
	_ = compareCmd.MarkFlagRequired("candidate-a")
	_ = compareCmd.MarkFlagRequired("candidate-b")
	_ = compareCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(_ *cobra.Command, _ []string) error {
	cfg, err := loadEffectiveConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	candidateA, err := loadCandidate(compareCandidateA)
	if err != nil {
		return err
	}
	candidateB, err := loadCandidate(compareCandidateB)
	if err != nil {
		return err
	}
	job, err := loadJob(compareJobFile)
	if err != nil {
		return err
	}

	engine := buildEngine(cfg)
	resultA := engine.Match(candidateA, job)
	resultB := engine.Match(candidateB, job)

	explainer := explain.NewMatchExplainer(
		explain.WithExplainerWeights(cfg.ScoringWeights()),
		explain.WithLogger(log),
	)
	diff := explainer.ExplainScoreDifference(resultA, resultB)

	if cfg.JSONOutput {
		return printJSON(diff)
	}

	fmt.Fprintf(os.Stdout, "%s\n\n", diff.Summary)
	fmt.Fprintf(os.Stdout, "%-24s %.1f%%\n", diff.CandidateA, diff.ScoreA*100)
	fmt.Fprintf(os.Stdout, "%-24s %.1f%%\n\n", diff.CandidateB, diff.ScoreB*100)
	for _, reason := range diff.LeadingReasons {
		fmt.Fprintf(os.Stdout, "  • %s\n", reason)
	}
	return nil
}
