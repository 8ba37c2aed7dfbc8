package explain

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/match-insight/internal/types"
)

// maxRecommendations caps the recommendation list in a full explanation.
const maxRecommendations = 5

// MatchExplanation aggregates every explanation artifact for one match.
// LIME and SHAP are nil when the corresponding explainer failed; the
// importance analysis and narrative fields are always populated.
type MatchExplanation struct {
	MatchID       string           `json:"match_id"`
	CandidateName string           `json:"candidate_name"`
	JobTitle      string           `json:"job_title"`
	OverallScore  float64          `json:"overall_score"`
	ScoreLevel    types.ScoreLevel `json:"score_level"`

	FeatureImportance *FeatureImportanceResult `json:"feature_importance"`
	LIME              *LIMEExplanation         `json:"lime,omitempty"`
	SHAP              *SHAPExplanation         `json:"shap,omitempty"`

	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths,omitempty"`
	Gaps            []string `json:"gaps,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// FactorDelta is one factor's contribution to a score difference between
// two candidates.
type FactorDelta struct {
	FactorName string  `json:"factor_name"`
	ScoreA     float64 `json:"score_a"`
	ScoreB     float64 `json:"score_b"`
	Impact     float64 `json:"impact"` // weighted (A - B)
}

// ScoreDifference compares two match results for the same job.
type ScoreDifference struct {
	CandidateA     string        `json:"candidate_a"`
	CandidateB     string        `json:"candidate_b"`
	ScoreA         float64       `json:"score_a"`
	ScoreB         float64       `json:"score_b"`
	Difference     float64       `json:"difference"`
	FactorDeltas   []FactorDelta `json:"factor_deltas"`
	LeadingReasons []string      `json:"leading_reasons,omitempty"`
	Summary        string        `json:"summary"`
}

// ThresholdDecision records whether a match clears a cutoff and which
// factors drove the outcome.
type ThresholdDecision struct {
	Threshold float64       `json:"threshold"`
	Score     float64       `json:"score"`
	Passed    bool          `json:"passed"`
	Decision  string        `json:"decision"` // "PASS" or "FAIL"
	Helping   []Contributor `json:"helping,omitempty"`
	Hurting   []Contributor `json:"hurting,omitempty"`
	Narrative string        `json:"narrative"`
}

// MatchExplainer orchestrates the importance calculator, the LIME
// explainer, and the SHAP explainer over a match result. Safe for
// concurrent use; each Explain call works on its own state.
type MatchExplainer struct {
	weights    types.ScoringWeights
	importance *ImportanceCalculator
	lime       *LIMEExplainer
	shap       *SHAPExplainer
	logger     *zap.Logger
}

// ExplainerOption configures a MatchExplainer.
type ExplainerOption func(*MatchExplainer)

// WithExplainerWeights sets the scoring weights for all sub-explainers.
func WithExplainerWeights(w types.ScoringWeights) ExplainerOption {
	return func(m *MatchExplainer) { m.weights = w.Clone() }
}

// WithLogger sets the logger used for explainer diagnostics.
func WithLogger(logger *zap.Logger) ExplainerOption {
	return func(m *MatchExplainer) { m.logger = logger }
}

// WithLIMEExplainer replaces the default LIME explainer, typically to pin a
// seed or sample count.
func WithLIMEExplainer(l *LIMEExplainer) ExplainerOption {
	return func(m *MatchExplainer) { m.lime = l }
}

// WithSHAPExplainer replaces the default SHAP explainer.
func WithSHAPExplainer(s *SHAPExplainer) ExplainerOption {
	return func(m *MatchExplainer) { m.shap = s }
}

// NewMatchExplainer creates an explainer with default weights, a no-op
// logger, and default sub-explainers unless overridden.
func NewMatchExplainer(opts ...ExplainerOption) *MatchExplainer {
	m := &MatchExplainer{
		weights: types.DefaultScoringWeights(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.importance == nil {
		m.importance = NewImportanceCalculator(WithImportanceWeights(m.weights))
	}
	if m.lime == nil {
		m.lime = NewLIMEExplainer(WithLIMEWeights(m.weights))
	}
	if m.shap == nil {
		m.shap = NewSHAPExplainer(WithSHAPWeights(m.weights))
	}
	return m
}

// Explain produces the full explanation bundle for a match result. A LIME
// or SHAP failure is logged and leaves the corresponding field nil; the
// importance analysis and narrative are always produced.
func (m *MatchExplainer) Explain(result *types.MatchResult) *MatchExplanation {
	values := m.featureValues(result)
	details := factorDetails(result)

	explanation := &MatchExplanation{
		MatchID:           result.ID.String(),
		CandidateName:     result.CandidateName,
		JobTitle:          result.JobTitle,
		OverallScore:      result.OverallScore,
		ScoreLevel:        result.ScoreLevel,
		FeatureImportance: m.importance.Calculate(values, details),
		GeneratedAt:       time.Now().UTC(),
	}

	lime, err := m.lime.Explain(values, nil)
	if err != nil {
		m.logger.Warn("lime explanation failed",
			zap.String("match_id", explanation.MatchID),
			zap.Error(err))
	} else {
		explanation.LIME = lime
	}

	shap, err := m.shap.Explain(values, nil)
	if err != nil {
		m.logger.Warn("shap explanation failed",
			zap.String("match_id", explanation.MatchID),
			zap.Error(err))
	} else {
		explanation.SHAP = shap
	}

	explanation.Summary = m.buildSummary(result)
	explanation.Strengths, explanation.Gaps = m.strengthsAndGaps(result, values)
	explanation.Recommendations = m.buildRecommendations(result, values)

	return explanation
}

// ExplainScoreDifference attributes the score gap between two candidates
// for the same job to per-factor weighted deltas, largest impact first.
func (m *MatchExplainer) ExplainScoreDifference(a, b *types.MatchResult) *ScoreDifference {
	valuesA := m.featureValues(a)
	valuesB := m.featureValues(b)

	deltas := make([]FactorDelta, 0, len(valuesA))
	for _, key := range orderedKeys(valuesA) {
		scoreA := valuesA[key]
		scoreB := valuesB[key]
		deltas = append(deltas, FactorDelta{
			FactorName: FormatFeatureName(key),
			ScoreA:     scoreA,
			ScoreB:     scoreB,
			Impact:     round4((scoreA - scoreB) * m.weights[key]),
		})
	}
	sort.SliceStable(deltas, func(i, j int) bool {
		return math.Abs(deltas[i].Impact) > math.Abs(deltas[j].Impact)
	})

	diff := &ScoreDifference{
		CandidateA:   a.CandidateName,
		CandidateB:   b.CandidateName,
		ScoreA:       a.OverallScore,
		ScoreB:       b.OverallScore,
		Difference:   round4(a.OverallScore - b.OverallScore),
		FactorDeltas: deltas,
	}

	leader, trailer := a.CandidateName, b.CandidateName
	if diff.Difference < 0 {
		leader, trailer = trailer, leader
	}

	for i, d := range deltas {
		if i == 3 || d.Impact == 0 {
			break
		}
		diff.LeadingReasons = append(diff.LeadingReasons,
			fmt.Sprintf("%s: %+.3f weighted impact", d.FactorName, d.Impact))
	}

	if diff.Difference == 0 {
		diff.Summary = fmt.Sprintf("%s and %s scored identically (%.2f).",
			a.CandidateName, b.CandidateName, a.OverallScore)
	} else {
		diff.Summary = fmt.Sprintf("%s scores %.3f higher than %s, driven mainly by %s.",
			leader, math.Abs(diff.Difference), trailer, deltas[0].FactorName)
	}
	return diff
}

// ExplainThresholdDecision reports whether a match clears a cutoff,
// attributing the outcome via Shapley contributions.
func (m *MatchExplainer) ExplainThresholdDecision(result *types.MatchResult, threshold float64) *ThresholdDecision {
	values := m.featureValues(result)

	decision := &ThresholdDecision{
		Threshold: threshold,
		Score:     result.OverallScore,
		Passed:    result.OverallScore >= threshold,
	}
	if decision.Passed {
		decision.Decision = "PASS"
	} else {
		decision.Decision = "FAIL"
	}

	shap, err := m.shap.Explain(values, nil)
	if err != nil {
		m.logger.Warn("shap explanation failed for threshold decision",
			zap.String("match_id", result.ID.String()),
			zap.Error(err))
		decision.Narrative = fmt.Sprintf("Score %.2f vs threshold %g: %s",
			result.OverallScore, threshold, decision.Decision)
		return decision
	}

	// Helping means pushing toward the decision outcome: positive
	// contributors on a PASS, negative contributors on a FAIL.
	if decision.Passed {
		decision.Helping = shap.PositiveContributors()
		decision.Hurting = shap.NegativeContributors()
	} else {
		decision.Helping = shap.NegativeContributors()
		decision.Hurting = shap.PositiveContributors()
	}
	decision.Narrative = shap.ExplainDifference(threshold)
	return decision
}

// featureValues extracts the five factor scores from a match result,
// preferring the breakdown when present since it carries the semantic
// score separately from the keyword fallback.
func (m *MatchExplainer) featureValues(result *types.MatchResult) FeatureValues {
	if b := result.ScoreBreakdown; b != nil {
		return FeatureValues{
			types.FactorSkills:     b.SkillsScore,
			types.FactorExperience: b.ExperienceScore,
			types.FactorEducation:  b.EducationScore,
			types.FactorSemantic:   b.SemanticScore,
			types.FactorKeyword:    b.KeywordScore,
		}
	}
	return FeatureValues{
		types.FactorSkills:     result.SkillsScore,
		types.FactorExperience: result.ExperienceScore,
		types.FactorEducation:  result.EducationScore,
		types.FactorSemantic:   result.KeywordScore,
		types.FactorKeyword:    result.KeywordScore,
	}
}

func factorDetails(result *types.MatchResult) *FactorDetails {
	details := &FactorDetails{}

	if len(result.SkillMatches) > 0 {
		sd := &SkillDetails{MissingSkills: result.MissingSkills()}
		for _, sm := range result.SkillMatches {
			if !sm.Required {
				continue
			}
			sd.TotalRequired++
			if sm.CandidateHasSkill {
				sd.MatchedCount++
			}
		}
		details.Skills = sd
	}
	if em := result.ExperienceMatch; em != nil {
		details.Experience = &ExperienceDetails{
			CandidateYears: em.CandidateYears,
			RequiredYears:  em.RequiredYears,
		}
	}
	if ed := result.EducationMatch; ed != nil {
		details.Education = &EducationDetails{
			CandidateDegree: ed.CandidateDegree,
			RequiredDegree:  ed.RequiredDegree,
		}
	}
	return details
}

func (m *MatchExplainer) buildSummary(result *types.MatchResult) string {
	candidate := result.CandidateName
	if candidate == "" {
		candidate = "The candidate"
	}
	switch result.ScoreLevel {
	case types.ScoreLevelExcellent:
		return fmt.Sprintf("%s is an excellent match for %s (%.0f%%), meeting or exceeding nearly every requirement.",
			candidate, result.JobTitle, result.OverallScore*100)
	case types.ScoreLevelGood:
		return fmt.Sprintf("%s is a good match for %s (%.0f%%), with strong alignment on the key requirements.",
			candidate, result.JobTitle, result.OverallScore*100)
	case types.ScoreLevelFair:
		return fmt.Sprintf("%s is a fair match for %s (%.0f%%); some requirements are met while notable gaps remain.",
			candidate, result.JobTitle, result.OverallScore*100)
	default:
		return fmt.Sprintf("%s is a weak match for %s (%.0f%%), with significant gaps across the main requirements.",
			candidate, result.JobTitle, result.OverallScore*100)
	}
}

func (m *MatchExplainer) strengthsAndGaps(result *types.MatchResult, values FeatureValues) (strengths, gaps []string) {
	for _, key := range orderedKeys(values) {
		score := values[key]
		name := FormatFeatureName(key)
		switch {
		case score >= positiveDirectionThreshold:
			strengths = append(strengths, fmt.Sprintf("%s (%.0f%%)", name, score*100))
		case score <= negativeDirectionThreshold:
			gaps = append(gaps, fmt.Sprintf("%s (%.0f%%)", name, score*100))
		}
	}
	if missing := result.MissingSkills(); len(missing) > 0 {
		gaps = append(gaps, fmt.Sprintf("Missing required skills: %s", strings.Join(missing, ", ")))
	}
	return strengths, gaps
}

// buildRecommendations suggests next steps keyed off weak factors and
// missing skills, deduplicated and capped at maxRecommendations.
func (m *MatchExplainer) buildRecommendations(result *types.MatchResult, values FeatureValues) []string {
	var recs []string
	seen := make(map[string]bool)
	add := func(rec string) {
		if !seen[rec] && len(recs) < maxRecommendations {
			seen[rec] = true
			recs = append(recs, rec)
		}
	}

	missing := result.MissingSkills()
	for i, skill := range missing {
		if i == 3 {
			break
		}
		add(fmt.Sprintf("Gain experience with %s", skill))
	}

	if values[types.FactorExperience] < positiveDirectionThreshold {
		if em := result.ExperienceMatch; em != nil && em.YearsDifference < 0 {
			add(fmt.Sprintf("Build %.1f more years of relevant experience", -em.YearsDifference))
		} else {
			add("Highlight relevant experience more prominently")
		}
	}
	if values[types.FactorEducation] < positiveDirectionThreshold {
		if ed := result.EducationMatch; ed != nil && !ed.MeetsRequirement {
			add(fmt.Sprintf("Consider pursuing a %s or equivalent certification", ed.RequiredDegree))
		}
	}
	if values[types.FactorKeyword] < positiveDirectionThreshold {
		add("Align resume terminology with the job posting's key terms")
	}
	return recs
}
