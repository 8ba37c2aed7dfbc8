// Package types provides type definitions for structured data used throughout the match-insight system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Factor keys for the five scoring dimensions. These are the canonical names
// used in weight maps, feature-value maps, and stored explanations.
const (
	FactorSkills     = "skills_match"
	FactorExperience = "experience_match"
	FactorEducation  = "education_match"
	FactorSemantic   = "semantic_similarity"
	FactorKeyword    = "keyword_match"
)

// ScoringWeights maps factor keys to their weight in the overall score.
// By convention the weights sum to 1.0, but that is not enforced: callers may
// supply arbitrary non-negative weights and the engine uses them as-is.
type ScoringWeights map[string]float64

// DefaultScoringWeights returns a fresh copy of the default weight map.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		FactorSkills:     0.35,
		FactorExperience: 0.25,
		FactorEducation:  0.15,
		FactorSemantic:   0.20,
		FactorKeyword:    0.05,
	}
}

// FactorNames returns the factor keys in canonical display order.
func FactorNames() []string {
	return []string{
		FactorSkills,
		FactorExperience,
		FactorEducation,
		FactorSemantic,
		FactorKeyword,
	}
}

// Clone returns a copy of the weight map so that an engine can own its
// configuration without sharing mutable state with the caller.
func (w ScoringWeights) Clone() ScoringWeights {
	out := make(ScoringWeights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}
