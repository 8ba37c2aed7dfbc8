package types

import (
	"time"

	"github.com/google/uuid"
)

// ScoreLevel is the categorical bucket derived from the numeric overall score.
type ScoreLevel string

// Score level values, ordered best to worst.
const (
	ScoreLevelExcellent ScoreLevel = "excellent"
	ScoreLevelGood      ScoreLevel = "good"
	ScoreLevelFair      ScoreLevel = "fair"
	ScoreLevelPoor      ScoreLevel = "poor"
)

// Score thresholds for the level buckets, inclusive at the lower edge.
const (
	ExcellentThreshold = 0.85
	GoodThreshold      = 0.70
	FairThreshold      = 0.50
)

// ScoreLevelFromScore buckets a numeric score into a ScoreLevel.
func ScoreLevelFromScore(score float64) ScoreLevel {
	switch {
	case score >= ExcellentThreshold:
		return ScoreLevelExcellent
	case score >= GoodThreshold:
		return ScoreLevelGood
	case score >= FairThreshold:
		return ScoreLevelFair
	default:
		return ScoreLevelPoor
	}
}

// SkillMatch is the match result for a single required or preferred skill.
type SkillMatch struct {
	SkillName         string  `json:"skill_name"` // normalized lowercase
	Required          bool    `json:"required"`
	CandidateHasSkill bool    `json:"candidate_has_skill"`
	MatchScore        float64 `json:"match_score"` // 0-1
	PartialMatch      bool    `json:"partial_match"`
	RelatedSkill      string  `json:"related_skill,omitempty"` // set when PartialMatch
}

// ExperienceMatch is the match result for the experience requirement.
// A MatchResult holds a nil *ExperienceMatch when the posting has no
// experience requirement.
type ExperienceMatch struct {
	RequiredYears   float64 `json:"required_years"`
	CandidateYears  float64 `json:"candidate_years"`
	YearsDifference float64 `json:"years_difference"`
	MeetsMinimum    bool    `json:"meets_minimum"`
	Score           float64 `json:"score"` // 0-1
}

// EducationMatch is the match result for the education requirement.
// A MatchResult holds a nil *EducationMatch when the posting has no
// education requirement.
type EducationMatch struct {
	RequiredDegree   string  `json:"required_degree"`
	CandidateDegree  string  `json:"candidate_degree,omitempty"`
	MeetsRequirement bool    `json:"meets_requirement"`
	Score            float64 `json:"score"` // 0-1
}

// KeywordMatch summarizes keyword overlap between the job text and the
// candidate's extracted text. Term lists are truncated for display.
type KeywordMatch struct {
	TotalKeywords   int      `json:"total_keywords"`
	MatchedKeywords int      `json:"matched_keywords"`
	MatchPercentage float64  `json:"match_percentage"`
	MatchedTerms    []string `json:"matched_terms,omitempty"` // at most 20
	MissingTerms    []string `json:"missing_terms,omitempty"` // at most 10
}

// ScoreBreakdown holds the per-factor (raw score, weight, weighted) triples.
// TotalScore over these triples is the authoritative overall score.
type ScoreBreakdown struct {
	SkillsScore    float64 `json:"skills_score"`
	SkillsWeight   float64 `json:"skills_weight"`
	SkillsWeighted float64 `json:"skills_weighted"`

	ExperienceScore    float64 `json:"experience_score"`
	ExperienceWeight   float64 `json:"experience_weight"`
	ExperienceWeighted float64 `json:"experience_weighted"`

	EducationScore    float64 `json:"education_score"`
	EducationWeight   float64 `json:"education_weight"`
	EducationWeighted float64 `json:"education_weighted"`

	SemanticScore    float64 `json:"semantic_score"`
	SemanticWeight   float64 `json:"semantic_weight"`
	SemanticWeighted float64 `json:"semantic_weighted"`

	KeywordScore    float64 `json:"keyword_score"`
	KeywordWeight   float64 `json:"keyword_weight"`
	KeywordWeighted float64 `json:"keyword_weighted"`
}

// TotalScore is the sum of the five weighted contributions.
func (b *ScoreBreakdown) TotalScore() float64 {
	return b.SkillsWeighted +
		b.ExperienceWeighted +
		b.EducationWeighted +
		b.SemanticWeighted +
		b.KeywordWeighted
}

// ExplanationFactor is a single factor in a template explanation.
type ExplanationFactor struct {
	FactorName  string  `json:"factor_name"`
	FactorType  string  `json:"factor_type"` // "positive", "negative", "neutral"
	Description string  `json:"description"`
	ImpactScore float64 `json:"impact_score"`
}

// Explanation is the template-generated, human-readable explanation of a
// match score. It involves no model calls; every sentence is derived from
// the match data itself.
type Explanation struct {
	Summary         string              `json:"summary"`
	Factors         []ExplanationFactor `json:"factors,omitempty"`
	Strengths       []string            `json:"strengths,omitempty"`
	Gaps            []string            `json:"gaps,omitempty"`
	Recommendations []string            `json:"recommendations,omitempty"`
}

// MatchResult is the aggregate result of matching one candidate against one
// job posting. It is created fresh per Match call and not mutated afterwards.
type MatchResult struct {
	ID            uuid.UUID `json:"id"`
	CandidateName string    `json:"candidate_name"`
	JobTitle      string    `json:"job_title"`

	OverallScore float64    `json:"overall_score"`
	ScoreLevel   ScoreLevel `json:"score_level"`

	SkillsScore     float64 `json:"skills_score"`
	ExperienceScore float64 `json:"experience_score"`
	EducationScore  float64 `json:"education_score"`
	KeywordScore    float64 `json:"keyword_score"`

	SkillMatches    []SkillMatch     `json:"skill_matches,omitempty"`
	ExperienceMatch *ExperienceMatch `json:"experience_match,omitempty"`
	EducationMatch  *EducationMatch  `json:"education_match,omitempty"`
	KeywordMatch    *KeywordMatch    `json:"keyword_match,omitempty"`

	ScoreBreakdown *ScoreBreakdown `json:"score_breakdown,omitempty"`
	Explanation    *Explanation    `json:"explanation,omitempty"`

	ScoredAt time.Time `json:"scored_at"`
}

// MatchedSkills returns the names of skills the candidate has.
func (m *MatchResult) MatchedSkills() []string {
	var out []string
	for _, s := range m.SkillMatches {
		if s.CandidateHasSkill {
			out = append(out, s.SkillName)
		}
	}
	return out
}

// MissingSkills returns the names of required skills the candidate lacks.
func (m *MatchResult) MissingSkills() []string {
	var out []string
	for _, s := range m.SkillMatches {
		if s.Required && !s.CandidateHasSkill {
			out = append(out, s.SkillName)
		}
	}
	return out
}
