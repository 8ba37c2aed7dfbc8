package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/match-insight/internal/audit"
	"github.com/jonathan/match-insight/internal/observability"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "List recent scoring decisions from the audit database",
	RunE:  runAudit,
}

var auditLimit int

func init() {
	auditCmd.Flags().IntVarP(&auditLimit, "limit", "n", 20, "Maximum records to list")

	rootCmd.AddCommand(auditCmd)
}

func runAudit(_ *cobra.Command, _ []string) error {
	cfg, err := loadEffectiveConfig()
	if err != nil {
		return err
	}
	if cfg.AuditDB == "" {
		return fmt.Errorf("no audit database configured: use --audit-db or the config file")
	}

	store, err := audit.Open(cfg.AuditDB)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.ListRecent(context.Background(), auditLimit)
	if err != nil {
		return err
	}

	if cfg.JSONOutput {
		return printJSON(records)
	}

	observability.NewPrinter(os.Stdout).PrintAuditRecords(records)
	return nil
}
