// Package audit persists scored match results to a local SQLite database so
// that screening decisions can be reviewed later.
package audit

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jonathan/match-insight/internal/types"
)

//go:embed migrations/001_initial.sql
var initialMigration string

// Audit actions recorded alongside each stored result.
const (
	ActionScored = "candidate_scored"
	ActionRanked = "candidate_ranked"
)

// Record is one stored audit row.
type Record struct {
	ID            string    `json:"id"`
	Action        string    `json:"action"`
	CandidateName string    `json:"candidate_name"`
	JobTitle      string    `json:"job_title"`
	OverallScore  float64   `json:"overall_score"`
	ScoreLevel    string    `json:"score_level"`
	CreatedAt     time.Time `json:"created_at"`
}

// Store wraps the SQL database connection
type Store struct {
	db *sql.DB
}

// Open opens or creates the audit database at the given path
func Open(path string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with common settings
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON", path)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	store := &Store{db: sqlDB}
	if err := store.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var tableCount int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name='match_records'
	`).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("failed to check migrations: %w", err)
	}

	if tableCount == 0 {
		if _, err := s.db.Exec(initialMigration); err != nil {
			return fmt.Errorf("failed to run initial migration: %w", err)
		}
	}

	return nil
}

// RecordResult stores a match result with the full result JSON for replay.
func (s *Store) RecordResult(ctx context.Context, action string, result *types.MatchResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal match result: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO match_records (id, action, candidate_name, job_title, overall_score, score_level, result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, result.ID.String(), action, result.CandidateName, result.JobTitle,
		result.OverallScore, string(result.ScoreLevel), string(payload), result.ScoredAt)
	if err != nil {
		return fmt.Errorf("failed to insert match record: %w", err)
	}
	return nil
}

// RecordRanking stores every result of a ranking run under ActionRanked.
func (s *Store) RecordRanking(ctx context.Context, results []*types.MatchResult) error {
	for _, result := range results {
		if err := s.RecordResult(ctx, ActionRanked, result); err != nil {
			return err
		}
	}
	return nil
}

// ListRecent returns the most recent audit records, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, action, candidate_name, job_title, overall_score, score_level, created_at
		FROM match_records
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query match records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Action, &r.CandidateName, &r.JobTitle,
			&r.OverallScore, &r.ScoreLevel, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetResult loads the stored match result JSON for one record.
func (s *Store) GetResult(ctx context.Context, id string) (*types.MatchResult, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT result_json FROM match_records WHERE id = ?
	`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("match record %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load match record: %w", err)
	}

	var result types.MatchResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("failed to decode match record %s: %w", id, err)
	}
	return &result, nil
}
