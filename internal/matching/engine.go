package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/match-insight/internal/types"
)

// Engine scores candidates against job postings using a multi-factor
// approach: skills, experience years, education level, and keyword overlap.
// Its configuration is fixed at construction; a configured Engine is safe
// for concurrent use.
type Engine struct {
	weights         types.ScoringWeights
	relatedGroups   []map[string]bool
	stopWords       map[string]bool
	educationLevels map[string]int
}

// Option configures an Engine.
type Option func(*Engine)

// WithWeights replaces the default scoring weights. The map is used as-is;
// no validation or normalization is applied.
func WithWeights(w types.ScoringWeights) Option {
	return func(e *Engine) { e.weights = w.Clone() }
}

// WithRelatedSkillGroups replaces the built-in related-skill table.
func WithRelatedSkillGroups(groups [][]string) Option {
	return func(e *Engine) { e.relatedGroups = buildRelatedGroups(groups) }
}

// WithStopWords replaces the built-in keyword stop-word list.
func WithStopWords(words []string) Option {
	return func(e *Engine) { e.stopWords = buildStopWords(words) }
}

// WithEducationLevels replaces the built-in degree-level ladder.
func WithEducationLevels(levels map[string]int) Option {
	return func(e *Engine) {
		clone := make(map[string]int, len(levels))
		for k, v := range levels {
			clone[strings.ToLower(k)] = v
		}
		e.educationLevels = clone
	}
}

// NewEngine creates a matching engine with default weights, related-skill
// groups, stop words, and education levels unless overridden by options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weights:         types.DefaultScoringWeights(),
		relatedGroups:   buildRelatedGroups(DefaultRelatedSkillGroups()),
		stopWords:       buildStopWords(DefaultStopWords()),
		educationLevels: DefaultEducationLevels(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Weights returns a copy of the engine's scoring weights.
func (e *Engine) Weights() types.ScoringWeights {
	return e.weights.Clone()
}

// MatchOption configures a single Match call.
type MatchOption func(*matchParams)

type matchParams struct {
	semanticScore    float64
	hasSemanticScore bool
}

// WithSemanticScore supplies the semantic-similarity score computed by the
// external embedding subsystem. When absent, the keyword score fills the
// semantic weight slot.
func WithSemanticScore(score float64) MatchOption {
	return func(p *matchParams) {
		p.semanticScore = score
		p.hasSemanticScore = true
	}
}

// Match scores a candidate against a job posting and returns the full match
// result including the weighted breakdown and a template explanation.
func (e *Engine) Match(candidate *types.CandidateProfile, job *types.JobProfile, opts ...MatchOption) *types.MatchResult {
	var params matchParams
	for _, opt := range opts {
		opt(&params)
	}

	result := &types.MatchResult{
		ID:            uuid.New(),
		CandidateName: candidate.DisplayName(),
		JobTitle:      job.DisplayTitle(),
		ScoredAt:      time.Now().UTC(),
	}

	result.SkillMatches, result.SkillsScore = e.matchSkills(candidate, job)
	result.ExperienceMatch, result.ExperienceScore = e.matchExperience(candidate, job)
	result.EducationMatch, result.EducationScore = e.matchEducation(candidate, job)
	result.KeywordMatch, result.KeywordScore = e.matchKeywords(candidate, job)

	semanticScore := result.KeywordScore
	if params.hasSemanticScore {
		semanticScore = params.semanticScore
	}

	result.ScoreBreakdown = e.calculateBreakdown(result, semanticScore)
	result.OverallScore = result.ScoreBreakdown.TotalScore()
	result.ScoreLevel = types.ScoreLevelFromScore(result.OverallScore)
	result.Explanation = e.generateExplanation(result)

	return result
}

// RankCandidates sorts match results by overall score, highest first.
// The sort is stable, so tied candidates keep their input order.
func (e *Engine) RankCandidates(results []*types.MatchResult) []*types.MatchResult {
	ranked := make([]*types.MatchResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].OverallScore > ranked[j].OverallScore
	})
	return ranked
}

func (e *Engine) calculateBreakdown(result *types.MatchResult, semanticScore float64) *types.ScoreBreakdown {
	return &types.ScoreBreakdown{
		SkillsScore:    result.SkillsScore,
		SkillsWeight:   e.weights[types.FactorSkills],
		SkillsWeighted: result.SkillsScore * e.weights[types.FactorSkills],

		ExperienceScore:    result.ExperienceScore,
		ExperienceWeight:   e.weights[types.FactorExperience],
		ExperienceWeighted: result.ExperienceScore * e.weights[types.FactorExperience],

		EducationScore:    result.EducationScore,
		EducationWeight:   e.weights[types.FactorEducation],
		EducationWeighted: result.EducationScore * e.weights[types.FactorEducation],

		SemanticScore:    semanticScore,
		SemanticWeight:   e.weights[types.FactorSemantic],
		SemanticWeighted: semanticScore * e.weights[types.FactorSemantic],

		KeywordScore:    result.KeywordScore,
		KeywordWeight:   e.weights[types.FactorKeyword],
		KeywordWeighted: result.KeywordScore * e.weights[types.FactorKeyword],
	}
}

// generateExplanation builds the template explanation from the match data.
// No model calls: strengths and gaps come straight from the sub-matches, the
// summary sentence from the score-level bucket.
func (e *Engine) generateExplanation(result *types.MatchResult) *types.Explanation {
	var (
		factors         []types.ExplanationFactor
		strengths       []string
		gaps            []string
		recommendations []string
	)

	matchedSkills := result.MatchedSkills()
	missingSkills := result.MissingSkills()

	if len(matchedSkills) > 0 {
		strengths = append(strengths, fmt.Sprintf(
			"Matches %d required skills: %s",
			len(matchedSkills), strings.Join(headOf(matchedSkills, 5), ", ")))

		factorType := "neutral"
		if result.SkillsScore > 0.5 {
			factorType = "positive"
		}
		factors = append(factors, types.ExplanationFactor{
			FactorName:  "Skills Match",
			FactorType:  factorType,
			Description: fmt.Sprintf("Candidate has %d of the required skills", len(matchedSkills)),
			ImpactScore: result.SkillsScore,
		})
	}

	if len(missingSkills) > 0 {
		gaps = append(gaps, "Missing skills: "+strings.Join(headOf(missingSkills, 5), ", "))
		recommendations = append(recommendations,
			"Consider candidates who also have: "+strings.Join(headOf(missingSkills, 3), ", "))
	}

	if exp := result.ExperienceMatch; exp != nil {
		if exp.MeetsMinimum {
			strengths = append(strengths, fmt.Sprintf(
				"Has %.1f years experience (required: %.1f)", exp.CandidateYears, exp.RequiredYears))
			factors = append(factors, types.ExplanationFactor{
				FactorName:  "Experience",
				FactorType:  "positive",
				Description: fmt.Sprintf("Meets experience requirement with %.1f years", exp.CandidateYears),
				ImpactScore: result.ExperienceScore,
			})
		} else {
			gaps = append(gaps, fmt.Sprintf(
				"Has %.1f years experience (required: %.1f)", exp.CandidateYears, exp.RequiredYears))
			factors = append(factors, types.ExplanationFactor{
				FactorName:  "Experience",
				FactorType:  "negative",
				Description: fmt.Sprintf("Below required experience (%.1f years short)", -exp.YearsDifference),
				ImpactScore: result.ExperienceScore,
			})
		}
	}

	if edu := result.EducationMatch; edu != nil {
		if edu.MeetsRequirement {
			strengths = append(strengths, fmt.Sprintf(
				"Has %s degree (required: %s)", edu.CandidateDegree, edu.RequiredDegree))
		} else {
			degree := edu.CandidateDegree
			if degree == "" {
				degree = "no degree listed"
			}
			gaps = append(gaps, fmt.Sprintf("Has %s (required: %s)", degree, edu.RequiredDegree))
		}
	}

	var summary string
	switch result.ScoreLevel {
	case types.ScoreLevelExcellent:
		summary = fmt.Sprintf("%s is an excellent match for %s", result.CandidateName, result.JobTitle)
	case types.ScoreLevelGood:
		summary = fmt.Sprintf("%s is a good match for %s", result.CandidateName, result.JobTitle)
	case types.ScoreLevelFair:
		summary = fmt.Sprintf("%s is a fair match for %s", result.CandidateName, result.JobTitle)
	default:
		summary = fmt.Sprintf("%s may not be the best fit for %s", result.CandidateName, result.JobTitle)
	}

	return &types.Explanation{
		Summary:         summary,
		Factors:         factors,
		Strengths:       strengths,
		Gaps:            gaps,
		Recommendations: recommendations,
	}
}

func buildStopWords(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	return set
}

func headOf(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// round3 rounds to three decimal places, matching the precision the factor
// scores are stored and displayed with.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
