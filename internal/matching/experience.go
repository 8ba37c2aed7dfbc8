package matching

import "github.com/jonathan/match-insight/internal/types"

// Experience fallback scores when the posting has no minimum. Historical
// calibration values, kept as-is.
const (
	noExperienceRequirementScore = 1.0
	noExperienceAtAllScore       = 0.5
)

// closeExperienceRatio is the candidate/required ratio at which partial
// credit switches from the proportional band to the 0.7-1.0 band.
const closeExperienceRatio = 0.7

// matchExperience scores candidate experience against the posting's minimum.
// Returns a nil ExperienceMatch when the posting specifies no minimum.
func (e *Engine) matchExperience(candidate *types.CandidateProfile, job *types.JobProfile) (*types.ExperienceMatch, float64) {
	candidateYears := candidate.TotalExperienceYears
	requiredYears := job.ExperienceYearsMin

	if requiredYears == 0 {
		if candidateYears > 0 {
			return nil, noExperienceRequirementScore
		}
		return nil, noExperienceAtAllScore
	}

	match := &types.ExperienceMatch{
		RequiredYears:   requiredYears,
		CandidateYears:  candidateYears,
		YearsDifference: candidateYears - requiredYears,
		MeetsMinimum:    candidateYears >= requiredYears,
	}

	ratio := candidateYears / requiredYears
	switch {
	case candidateYears >= requiredYears:
		match.Score = 1.0
	case ratio >= closeExperienceRatio:
		// Within 70-100% of the minimum: linear band from 0.7 to 1.0.
		match.Score = 0.7 + 0.3*ratio
	case candidateYears > 0:
		match.Score = 0.5 * ratio
	default:
		match.Score = 0.0
	}

	match.Score = round3(match.Score)
	return match, match.Score
}
