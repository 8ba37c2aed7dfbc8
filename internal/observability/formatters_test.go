package observability

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/match-insight/internal/audit"
	"github.com/jonathan/match-insight/internal/explain"
	"github.com/jonathan/match-insight/internal/types"
)

func TestPrintMatchResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.MatchResult{
		ID:              uuid.New(),
		CandidateName:   "Jane Doe",
		JobTitle:        "Backend Engineer",
		OverallScore:    0.76,
		ScoreLevel:      types.ScoreLevelGood,
		SkillsScore:     1.0,
		ExperienceScore: 0.8,
		EducationScore:  0.6,
		KeywordScore:    0.4,
		SkillMatches: []types.SkillMatch{
			{SkillName: "kubernetes", Required: true, CandidateHasSkill: false},
		},
	}

	p.PrintMatchResult(result)
	output := buf.String()

	assert.Contains(t, output, "MATCH RESULT")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Backend Engineer")
	assert.Contains(t, output, "76.0%")
	assert.Contains(t, output, "kubernetes")
}

func TestPrintMatchResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatchResult(nil)

	assert.Empty(t, buf.String())
}

func TestPrintScoreBreakdown(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScoreBreakdown(&types.ScoreBreakdown{
		SkillsScore: 1.0, SkillsWeight: 0.35, SkillsWeighted: 0.35,
		ExperienceScore: 0.8, ExperienceWeight: 0.25, ExperienceWeighted: 0.2,
		EducationScore: 0.6, EducationWeight: 0.15, EducationWeighted: 0.09,
		SemanticScore: 0.5, SemanticWeight: 0.20, SemanticWeighted: 0.1,
		KeywordScore: 0.4, KeywordWeight: 0.05, KeywordWeighted: 0.02,
	})
	output := buf.String()

	assert.Contains(t, output, "Skills")
	assert.Contains(t, output, "Semantic")
	assert.Contains(t, output, "0.760")
}

func TestPrintRanking(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRanking([]*types.MatchResult{
		{CandidateName: "Jane Doe", OverallScore: 0.9, ScoreLevel: types.ScoreLevelExcellent},
		{CandidateName: "John Smith", OverallScore: 0.6, ScoreLevel: types.ScoreLevelFair},
	})
	output := buf.String()

	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "John Smith")
	assert.Contains(t, output, "90.0%")
	assert.Contains(t, output, "excellent")
}

func TestPrintRanking_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRanking(nil)

	assert.Empty(t, buf.String())
}

func TestPrintFeatureImportance(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFeatureImportance(&explain.FeatureImportanceResult{
		TotalScore: 0.76,
		Features: []explain.FeatureContribution{
			{FeatureName: "Skills Match", RawScore: 1.0, WeightedContribution: 0.35, ContributionPercentage: 46.1, Direction: "positive"},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "Skills Match")
	assert.Contains(t, output, "positive")
	assert.Contains(t, output, "46.1%")
}

func TestPrintSHAP(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSHAP(&explain.SHAPExplanation{
		ExpectedValue:  0.5,
		PredictedValue: 0.76,
		ShapValues: []explain.SHAPValue{
			{FeatureName: "Skills Match", FeatureValue: 1.0, ShapValue: 0.175, Direction: "positive"},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "Base value")
	assert.Contains(t, output, "Skills Match")
	assert.Contains(t, output, "+0.1750")
}

func TestPrintExplanation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintExplanation(&explain.MatchExplanation{
		Summary:         "Jane Doe is a good match.",
		Strengths:       []string{"Skills Match (100%)"},
		Gaps:            []string{"Education Match (30%)"},
		Recommendations: []string{"Gain experience with kubernetes"},
	})
	output := buf.String()

	assert.Contains(t, output, "SUMMARY")
	assert.Contains(t, output, "STRENGTHS")
	assert.Contains(t, output, "GAPS")
	assert.Contains(t, output, "RECOMMENDATIONS")
	assert.Contains(t, output, "Jane Doe is a good match.")
}

func TestPrintAuditRecords(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAuditRecords([]audit.Record{
		{
			ID:            "0123456789abcdef",
			Action:        audit.ActionScored,
			CandidateName: "Jane Doe",
			JobTitle:      "Backend Engineer",
			OverallScore:  0.76,
			CreatedAt:     time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
	})
	output := buf.String()

	assert.Contains(t, output, "01234567")
	assert.Contains(t, output, "candidate_scored")
	assert.Contains(t, output, "2026-08-01 12:00")
}

func TestPrintAuditRecords_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAuditRecords(nil)

	assert.Contains(t, buf.String(), "No records found")
}
