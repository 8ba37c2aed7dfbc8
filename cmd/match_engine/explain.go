package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/match-insight/internal/audit"
	"github.com/jonathan/match-insight/internal/explain"
	"github.com/jonathan/match-insight/internal/observability"
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Score a match and explain it with feature attributions",
	Long:  "Score a candidate against a job posting and produce the full explanation bundle: weighted feature contributions, a LIME local surrogate, Shapley values, and a narrative with strengths, gaps, and recommendations.",
	RunE:  runExplain,
}

var (
	explainCandidateFile string
	explainJobFile       string
	explainSeed          int64
	explainSamples       int
)

func init() {
	explainCmd.Flags().StringVarP(&explainCandidateFile, "candidate", "c", "", "Path to candidate profile JSON (required)")
	explainCmd.Flags().StringVarP(&explainJobFile, "job", "j", "", "Path to job posting JSON (required)")
	explainCmd.Flags().Int64Var(&explainSeed, "seed", 0, "Seed for the LIME sampler (0 = random)")
	explainCmd.Flags().IntVar(&explainSamples, "samples", 0, "LIME perturbation samples (0 = default)")
	_ = explainCmd.MarkFlagRequired("candidate")
	_ = explainCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(explainCmd)
}

func runExplain(_ *cobra.Command, _ []string) error {
	cfg, err := loadEffectiveConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	candidate, err := loadCandidate(explainCandidateFile)
	if err != nil {
		return err
	}
	job, err := loadJob(explainJobFile)
	if err != nil {
		return err
	}

	engine := buildEngine(cfg)
	result := engine.Match(candidate, job)
	recordAudit(log, cfg, audit.ActionScored, result)

	weights := cfg.ScoringWeights()
	limeOpts := []explain.LIMEOption{explain.WithLIMEWeights(weights)}
	if seed := pickSeed(explainSeed, cfg.Seed); seed != 0 {
		limeOpts = append(limeOpts, explain.WithSeed(seed))
	}
	if samples := pickSamples(explainSamples, cfg.LIMESamples); samples > 0 {
		limeOpts = append(limeOpts, explain.WithNumSamples(samples))
	}

	explainer := explain.NewMatchExplainer(
		explain.WithExplainerWeights(weights),
		explain.WithLogger(log),
		explain.WithLIMEExplainer(explain.NewLIMEExplainer(limeOpts...)),
	)
	explanation := explainer.Explain(result)

	if cfg.JSONOutput {
		return printJSON(explanation)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintMatchResult(result)
	printer.PrintFeatureImportance(explanation.FeatureImportance)
	printer.PrintLIME(explanation.LIME)
	printer.PrintSHAP(explanation.SHAP)
	printer.PrintExplanation(explanation)
	return nil
}

func pickSeed(flag, cfg int64) int64 {
	if flag != 0 {
		return flag
	}
	return cfg
}

func pickSamples(flag, cfg int) int {
	if flag > 0 {
		return flag
	}
	return cfg
}
