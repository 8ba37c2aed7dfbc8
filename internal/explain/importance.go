// Package explain produces feature attributions and human-readable
// explanations for match scores, using weighted-contribution analysis, a
// LIME-style local surrogate model, and exact Shapley values.
package explain

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/jonathan/match-insight/internal/types"
)

// FeatureValues maps factor keys to their 0-1 scores for one prediction.
type FeatureValues map[string]float64

// PredictFn scores a feature-value map. The default implementations use the
// configured weighted sum, mirroring the matching engine's breakdown.
type PredictFn func(FeatureValues) float64

// Direction thresholds on the raw factor score.
const (
	positiveDirectionThreshold = 0.7
	negativeDirectionThreshold = 0.3
)

// FeatureContribution is the attribution of a single factor to the score.
type FeatureContribution struct {
	FeatureName            string  `json:"name"`
	RawScore               float64 `json:"raw_score"`
	Weight                 float64 `json:"weight"`
	WeightedContribution   float64 `json:"contribution"`
	ContributionPercentage float64 `json:"percentage"`
	Direction              string  `json:"direction"` // "positive", "negative", "neutral"
	Description            string  `json:"description"`
}

// FeatureImportanceResult is the complete weighted-contribution analysis.
type FeatureImportanceResult struct {
	TotalScore          float64               `json:"total_score"`
	Features            []FeatureContribution `json:"features"`
	TopPositiveFeatures []string              `json:"top_positive"`
	TopNegativeFeatures []string              `json:"top_negative"`
	FeatureRanking      []string              `json:"ranking"`
}

// SkillDetails carries optional skill-match context for descriptions.
type SkillDetails struct {
	MatchedCount  int
	TotalRequired int
	MissingSkills []string
}

// ExperienceDetails carries optional experience context for descriptions.
type ExperienceDetails struct {
	CandidateYears float64
	RequiredYears  float64
}

// EducationDetails carries optional education context for descriptions.
type EducationDetails struct {
	CandidateDegree string
	RequiredDegree  string
}

// FactorDetails bundles the optional per-factor context.
type FactorDetails struct {
	Skills     *SkillDetails
	Experience *ExperienceDetails
	Education  *EducationDetails
}

// ImportanceCalculator computes per-factor weighted contributions,
// percentages, and rankings for a match score.
type ImportanceCalculator struct {
	weights       types.ScoringWeights
	baselineScore float64
	rng           *rand.Rand
}

// ImportanceOption configures an ImportanceCalculator.
type ImportanceOption func(*ImportanceCalculator)

// WithImportanceWeights replaces the default scoring weights.
func WithImportanceWeights(w types.ScoringWeights) ImportanceOption {
	return func(c *ImportanceCalculator) { c.weights = w.Clone() }
}

// WithBaselineScore replaces the default 0.5 baseline used for marginal
// contributions.
func WithBaselineScore(baseline float64) ImportanceOption {
	return func(c *ImportanceCalculator) { c.baselineScore = baseline }
}

// WithImportanceRandSource seeds the generator used by permutation
// importance, for reproducible results.
func WithImportanceRandSource(src rand.Source) ImportanceOption {
	return func(c *ImportanceCalculator) { c.rng = rand.New(src) }
}

// NewImportanceCalculator creates a calculator with default weights and a
// 0.5 baseline unless overridden.
func NewImportanceCalculator(opts ...ImportanceOption) *ImportanceCalculator {
	c := &ImportanceCalculator{
		weights:       types.DefaultScoringWeights(),
		baselineScore: 0.5,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return c
}

// Calculate computes the weighted contribution, percentage share, direction,
// and ranking for each factor. A zero total contribution yields zero
// percentages rather than a division error.
func (c *ImportanceCalculator) Calculate(values FeatureValues, details *FactorDetails) *FeatureImportanceResult {
	totalWeighted := 0.0
	for key, score := range values {
		totalWeighted += score * c.weights[key]
	}

	features := make([]FeatureContribution, 0, len(values))
	for _, key := range orderedKeys(values) {
		rawScore := values[key]
		weight := c.weights[key]
		weighted := rawScore * weight

		percentage := 0.0
		if totalWeighted > 0 {
			percentage = weighted / totalWeighted * 100
		}

		features = append(features, FeatureContribution{
			FeatureName:            FormatFeatureName(key),
			RawScore:               rawScore,
			Weight:                 weight,
			WeightedContribution:   round4(weighted),
			ContributionPercentage: round1(percentage),
			Direction:              directionForScore(rawScore),
			Description:            c.describeFeature(key, rawScore, details),
		})
	}

	sort.SliceStable(features, func(i, j int) bool {
		return features[i].WeightedContribution > features[j].WeightedContribution
	})

	var topPositive, topNegative, ranking []string
	for _, f := range features {
		ranking = append(ranking, f.FeatureName)
		switch f.Direction {
		case "positive":
			if len(topPositive) < 3 {
				topPositive = append(topPositive, f.FeatureName)
			}
		case "negative":
			if len(topNegative) < 3 {
				topNegative = append(topNegative, f.FeatureName)
			}
		}
	}

	return &FeatureImportanceResult{
		TotalScore:          round4(totalWeighted),
		Features:            features,
		TopPositiveFeatures: topPositive,
		TopNegativeFeatures: topNegative,
		FeatureRanking:      ranking,
	}
}

// MarginalContributions returns (score - baseline) * weight per factor:
// how much each factor adds above the neutral baseline.
func (c *ImportanceCalculator) MarginalContributions(values FeatureValues) map[string]float64 {
	marginal := make(map[string]float64, len(values))
	for key, score := range values {
		marginal[key] = round4((score - c.baselineScore) * c.weights[key])
	}
	return marginal
}

// PermutationImportance replaces each factor with a uniform-random value
// across trials and reports the average score drop. A sanity check against
// the exact attribution methods, not a production scorer.
func (c *ImportanceCalculator) PermutationImportance(baseScore float64, values FeatureValues, trials int) map[string]float64 {
	if trials <= 0 {
		trials = 10
	}

	importance := make(map[string]float64, len(values))
	for _, key := range orderedKeys(values) {
		totalDrop := 0.0
		for t := 0; t < trials; t++ {
			perturbed := make(FeatureValues, len(values))
			for k, v := range values {
				perturbed[k] = v
			}
			perturbed[key] = c.rng.Float64()

			newScore := 0.0
			for k, v := range perturbed {
				newScore += v * c.weights[k]
			}
			totalDrop += baseScore - newScore
		}
		importance[key] = round4(totalDrop / float64(trials))
	}
	return importance
}

func (c *ImportanceCalculator) describeFeature(key string, score float64, details *FactorDetails) string {
	pct := int(score * 100)

	switch key {
	case types.FactorSkills:
		if details != nil && details.Skills != nil {
			return fmt.Sprintf("Matched %d/%d required skills (%d%%)",
				details.Skills.MatchedCount, details.Skills.TotalRequired, pct)
		}
		return fmt.Sprintf("Skills alignment score: %d%%", pct)

	case types.FactorExperience:
		if details != nil && details.Experience != nil {
			return fmt.Sprintf("%.1f years experience (required: %.1f)",
				details.Experience.CandidateYears, details.Experience.RequiredYears)
		}
		return fmt.Sprintf("Experience match score: %d%%", pct)

	case types.FactorEducation:
		if details != nil && details.Education != nil {
			candidate := details.Education.CandidateDegree
			if candidate == "" {
				candidate = "N/A"
			}
			required := details.Education.RequiredDegree
			if required == "" {
				required = "N/A"
			}
			return fmt.Sprintf("Has %s (required: %s)", candidate, required)
		}
		return fmt.Sprintf("Education match score: %d%%", pct)

	case types.FactorSemantic:
		switch {
		case score >= 0.8:
			return fmt.Sprintf("Strong semantic alignment (%d%%) with job description", pct)
		case score >= 0.5:
			return fmt.Sprintf("Moderate semantic alignment (%d%%) with job description", pct)
		default:
			return fmt.Sprintf("Low semantic alignment (%d%%) with job description", pct)
		}

	case types.FactorKeyword:
		return fmt.Sprintf("Keyword overlap score: %d%%", pct)
	}

	return fmt.Sprintf("%s: %d%%", key, pct)
}

// FormatFeatureName maps a factor key to its display name.
func FormatFeatureName(key string) string {
	switch key {
	case types.FactorSkills:
		return "Skills Match"
	case types.FactorExperience:
		return "Experience Match"
	case types.FactorEducation:
		return "Education Match"
	case types.FactorSemantic:
		return "Semantic Similarity"
	case types.FactorKeyword:
		return "Keyword Match"
	}
	return key
}

func directionForScore(score float64) string {
	switch {
	case score >= positiveDirectionThreshold:
		return "positive"
	case score <= negativeDirectionThreshold:
		return "negative"
	default:
		return "neutral"
	}
}

// orderedKeys returns the map keys in canonical factor order, with any
// non-factor keys appended alphabetically. Map iteration order must never
// leak into rankings or stored explanations.
func orderedKeys(values FeatureValues) []string {
	keys := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, key := range types.FactorNames() {
		if _, ok := values[key]; ok {
			keys = append(keys, key)
			seen[key] = true
		}
	}
	var extra []string
	for key := range values {
		if !seen[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
