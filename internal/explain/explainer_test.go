package explain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/match-insight/internal/matching"
	"github.com/jonathan/match-insight/internal/types"
)

func sampleMatchResult() *types.MatchResult {
	weights := types.DefaultScoringWeights()
	breakdown := &types.ScoreBreakdown{
		SkillsScore:    1.0,
		SkillsWeight:   weights[types.FactorSkills],
		SkillsWeighted: 1.0 * weights[types.FactorSkills],

		ExperienceScore:    0.8,
		ExperienceWeight:   weights[types.FactorExperience],
		ExperienceWeighted: 0.8 * weights[types.FactorExperience],

		EducationScore:    0.6,
		EducationWeight:   weights[types.FactorEducation],
		EducationWeighted: 0.6 * weights[types.FactorEducation],

		SemanticScore:    0.5,
		SemanticWeight:   weights[types.FactorSemantic],
		SemanticWeighted: 0.5 * weights[types.FactorSemantic],

		KeywordScore:    0.4,
		KeywordWeight:   weights[types.FactorKeyword],
		KeywordWeighted: 0.4 * weights[types.FactorKeyword],
	}

	score := breakdown.TotalScore()
	return &types.MatchResult{
		ID:              uuid.New(),
		CandidateName:   "Jane Doe",
		JobTitle:        "Backend Engineer",
		OverallScore:    score,
		ScoreLevel:      types.ScoreLevelFromScore(score),
		SkillsScore:     1.0,
		ExperienceScore: 0.8,
		EducationScore:  0.6,
		KeywordScore:    0.4,
		SkillMatches: []types.SkillMatch{
			{SkillName: "go", Required: true, CandidateHasSkill: true, MatchScore: 1.0},
			{SkillName: "kubernetes", Required: true, CandidateHasSkill: false},
		},
		ExperienceMatch: &types.ExperienceMatch{
			RequiredYears:   5.0,
			CandidateYears:  4.0,
			YearsDifference: -1.0,
			MeetsMinimum:    false,
			Score:           0.8,
		},
		ScoreBreakdown: breakdown,
		ScoredAt:       time.Now().UTC(),
	}
}

func TestExplainProducesAllArtifacts(t *testing.T) {
	explainer := NewMatchExplainer(
		WithLIMEExplainer(NewLIMEExplainer(WithSeed(42))),
	)
	result := sampleMatchResult()

	explanation := explainer.Explain(result)

	assert.Equal(t, result.ID.String(), explanation.MatchID)
	assert.Equal(t, "Jane Doe", explanation.CandidateName)
	require.NotNil(t, explanation.FeatureImportance)
	require.NotNil(t, explanation.LIME)
	require.NotNil(t, explanation.SHAP)
	assert.NotEmpty(t, explanation.Summary)
	assert.False(t, explanation.GeneratedAt.IsZero())
}

func TestExplainSummaryNamesCandidate(t *testing.T) {
	explainer := NewMatchExplainer()
	explanation := explainer.Explain(sampleMatchResult())

	assert.True(t, strings.Contains(explanation.Summary, "Jane Doe"), explanation.Summary)
	assert.True(t, strings.Contains(explanation.Summary, "Backend Engineer"), explanation.Summary)
}

func TestExplainStrengthsAndGaps(t *testing.T) {
	explainer := NewMatchExplainer()
	explanation := explainer.Explain(sampleMatchResult())

	assert.Contains(t, explanation.Strengths, "Skills Match (100%)")
	assert.Contains(t, explanation.Strengths, "Experience Match (80%)")

	require.NotEmpty(t, explanation.Gaps)
	assert.True(t, strings.Contains(explanation.Gaps[len(explanation.Gaps)-1], "kubernetes"))
}

func TestExplainRecommendations(t *testing.T) {
	explainer := NewMatchExplainer()
	explanation := explainer.Explain(sampleMatchResult())

	require.NotEmpty(t, explanation.Recommendations)
	assert.LessOrEqual(t, len(explanation.Recommendations), maxRecommendations)
	assert.Contains(t, explanation.Recommendations, "Gain experience with kubernetes")

	seen := make(map[string]bool)
	for _, rec := range explanation.Recommendations {
		assert.False(t, seen[rec], "duplicate recommendation: %s", rec)
		seen[rec] = true
	}
}

func TestExplainRecommendationsExperienceShortfall(t *testing.T) {
	explainer := NewMatchExplainer()
	result := sampleMatchResult()
	result.ScoreBreakdown.ExperienceScore = 0.3
	result.ScoreBreakdown.ExperienceWeighted = 0.3 * result.ScoreBreakdown.ExperienceWeight
	result.ExperienceScore = 0.3
	result.ExperienceMatch = &types.ExperienceMatch{
		RequiredYears:   5.0,
		CandidateYears:  3.0,
		YearsDifference: -2.0,
		MeetsMinimum:    false,
		Score:           0.3,
	}

	explanation := explainer.Explain(result)

	assert.Contains(t, explanation.Recommendations, "Build 2.0 more years of relevant experience")
}

func TestExplainRecommendationsFromEngineResult(t *testing.T) {
	engine := matching.NewEngine()
	candidate := &types.CandidateProfile{
		Contact:              &types.Contact{FullName: "Jo Smith"},
		Skills:               []types.CandidateSkill{{Name: "python"}},
		TotalExperienceYears: 3,
		ExtractedText:        "python backend services",
	}
	job := &types.JobProfile{
		Title:              "Backend Developer",
		RequiredSkills:     []string{"python"},
		ExperienceYearsMin: 5,
		Responsibilities:   []string{"build backend services using python"},
	}

	result := engine.Match(candidate, job)
	require.NotNil(t, result.ExperienceMatch)
	assert.InDelta(t, -2.0, result.ExperienceMatch.YearsDifference, 1e-9)

	explanation := NewMatchExplainer().Explain(result)

	assert.Contains(t, explanation.Recommendations, "Build 2.0 more years of relevant experience")
}

func TestExplainScoreDifference(t *testing.T) {
	explainer := NewMatchExplainer()

	a := sampleMatchResult()
	b := sampleMatchResult()
	b.CandidateName = "John Smith"
	b.ScoreBreakdown.SkillsScore = 0.5
	b.ScoreBreakdown.SkillsWeighted = 0.5 * b.ScoreBreakdown.SkillsWeight
	b.OverallScore = b.ScoreBreakdown.TotalScore()

	diff := explainer.ExplainScoreDifference(a, b)

	assert.InDelta(t, 0.175, diff.Difference, 1e-4)
	require.NotEmpty(t, diff.FactorDeltas)
	assert.Equal(t, "Skills Match", diff.FactorDeltas[0].FactorName)
	assert.InDelta(t, 0.175, diff.FactorDeltas[0].Impact, 1e-4)
	assert.True(t, strings.Contains(diff.Summary, "Jane Doe"), diff.Summary)
}

func TestExplainScoreDifferenceIdentical(t *testing.T) {
	explainer := NewMatchExplainer()
	diff := explainer.ExplainScoreDifference(sampleMatchResult(), sampleMatchResult())

	assert.Zero(t, diff.Difference)
	assert.Empty(t, diff.LeadingReasons)
	assert.True(t, strings.Contains(diff.Summary, "identically"), diff.Summary)
}

func TestExplainThresholdDecisionPass(t *testing.T) {
	explainer := NewMatchExplainer()
	decision := explainer.ExplainThresholdDecision(sampleMatchResult(), 0.6)

	assert.True(t, decision.Passed)
	assert.Equal(t, "PASS", decision.Decision)
	require.NotEmpty(t, decision.Helping)
	assert.Equal(t, "Skills Match", decision.Helping[0].Name)
	assert.NotEmpty(t, decision.Narrative)
}

func TestExplainThresholdDecisionFail(t *testing.T) {
	explainer := NewMatchExplainer()
	decision := explainer.ExplainThresholdDecision(sampleMatchResult(), 0.9)

	assert.False(t, decision.Passed)
	assert.Equal(t, "FAIL", decision.Decision)
	require.NotEmpty(t, decision.Hurting)
	assert.Equal(t, "Skills Match", decision.Hurting[0].Name)
	require.NotEmpty(t, decision.Helping)
	assert.Equal(t, "Keyword Match", decision.Helping[0].Name)
	assert.True(t, strings.Contains(decision.Narrative, "below threshold"), decision.Narrative)
}
