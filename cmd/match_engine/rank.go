package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/match-insight/internal/audit"
	"github.com/jonathan/match-insight/internal/observability"
	"github.com/jonathan/match-insight/internal/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank multiple candidates against one job posting",
	Long:  "Score every candidate profile in a directory (or listed explicitly) against one job posting and print them best first. Ties keep their input order.",
	RunE:  runRank,
}

var (
	rankCandidateDir   string
	rankCandidateFiles []string
	rankJobFile        string
	rankTop            int
)

func init() {
	rankCmd.Flags().StringVarP(&rankCandidateDir, "dir", "d", "", "Directory of candidate profile JSON files")
	rankCmd.Flags().StringSliceVarP(&rankCandidateFiles, "candidate", "c", nil, "Candidate profile JSON file (repeatable)")
	rankCmd.Flags().StringVarP(&rankJobFile, "job", "j", "", "Path to job posting JSON (required)")
	rankCmd.Flags().IntVar(&rankTop, "top", 0, "Only print the top N candidates (0 = all)")
	_ = rankCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(rankCmd)
}

func runRank(_ *cobra.Command, _ []string) error {
	cfg, err := loadEffectiveConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	files := append([]string(nil), rankCandidateFiles...)
	if rankCandidateDir != "" {
		matches, err := filepath.Glob(filepath.Join(rankCandidateDir, "*.json"))
		if err != nil {
			return fmt.Errorf("failed to list candidate directory: %w", err)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no candidate files given: use --dir or --candidate")
	}

	job, err := loadJob(rankJobFile)
	if err != nil {
		return err
	}

	engine := buildEngine(cfg)

	results := make([]*types.MatchResult, 0, len(files))
	for _, file := range files {
		candidate, err := loadCandidate(file)
		if err != nil {
			return err
		}
		result := engine.Match(candidate, job)
		log.Debug("scored candidate",
			zap.String("file", file),
			zap.Float64("score", result.OverallScore))
		results = append(results, result)
	}

	ranked := engine.RankCandidates(results)
	if rankTop > 0 && rankTop < len(ranked) {
		ranked = ranked[:rankTop]
	}

	recordAudit(log, cfg, audit.ActionRanked, ranked...)

	if cfg.JSONOutput {
		return printJSON(ranked)
	}

	observability.NewPrinter(os.Stdout).PrintRanking(ranked)
	return nil
}
