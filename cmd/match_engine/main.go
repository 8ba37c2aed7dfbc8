// Package main provides the entry point for the match-insight CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "match_engine",
	Short: "Candidate-job matching and explainability engine",
	Long:  "match_engine scores parsed candidate profiles against job postings across weighted factors and explains every score with feature attributions, local surrogate models, and Shapley values.",
}

var (
	flagConfig  string
	flagVerbose bool
	flagJSON    bool
	flagAuditDB string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Emit JSON instead of tables")
	rootCmd.PersistentFlags().StringVar(&flagAuditDB, "audit-db", "", "Path to the SQLite audit database (disabled when empty)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
