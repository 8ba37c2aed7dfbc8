package matching

import (
	"strings"

	"github.com/jonathan/match-insight/internal/types"
)

// Education fallback scores. Historical calibration values, kept as-is.
const (
	noEducationRequirementWithDegree = 1.0
	noEducationRequirementNoDegree   = 0.7
	oneEducationLevelBelowScore      = 0.7
	noEducationInfoScore             = 0.3
	educationScoreFloor              = 0.3
)

// DefaultEducationLevels returns the ordinal ladder used to compare degree
// levels. Unknown degrees map to 0.
func DefaultEducationLevels() map[string]int {
	return map[string]int{
		"high school": 1,
		"diploma":     2,
		"associate":   3,
		"bachelor":    4,
		"master":      5,
		"mba":         5,
		"phd":         6,
		"doctorate":   6,
	}
}

// matchEducation scores the candidate's highest degree against the posting's
// requirement. Returns a nil EducationMatch when the posting specifies none.
func (e *Engine) matchEducation(candidate *types.CandidateProfile, job *types.JobProfile) (*types.EducationMatch, float64) {
	requiredDegree := job.EducationRequirement
	candidateDegree := candidate.HighestEducation

	if requiredDegree == "" {
		if candidateDegree != "" {
			return nil, noEducationRequirementWithDegree
		}
		return nil, noEducationRequirementNoDegree
	}

	match := &types.EducationMatch{
		RequiredDegree:  requiredDegree,
		CandidateDegree: candidateDegree,
	}

	if candidateDegree == "" {
		match.Score = noEducationInfoScore
		return match, match.Score
	}

	requiredLevel := e.educationLevels[strings.ToLower(requiredDegree)]
	candidateLevel := e.educationLevels[strings.ToLower(candidateDegree)]

	switch {
	case candidateLevel >= requiredLevel:
		match.MeetsRequirement = true
		match.Score = 1.0
	case candidateLevel == requiredLevel-1:
		match.Score = oneEducationLevelBelowScore
	case requiredLevel > 0:
		match.Score = max(educationScoreFloor, float64(candidateLevel)/float64(requiredLevel))
	default:
		match.Score = educationScoreFloor
	}

	match.Score = round3(match.Score)
	return match, match.Score
}
