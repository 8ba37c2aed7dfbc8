package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/match-insight/internal/types"
)

func TestMatchEducation_NoRequirementWithDegree(t *testing.T) {
	e := NewEngine()
	candidate := &types.CandidateProfile{HighestEducation: "bachelor"}
	job := &types.JobProfile{}

	match, score := e.matchEducation(candidate, job)

	assert.Nil(t, match)
	assert.Equal(t, 1.0, score)
}

func TestMatchEducation_NoRequirementNoDegree(t *testing.T) {
	e := NewEngine()
	candidate := &types.CandidateProfile{}
	job := &types.JobProfile{}

	match, score := e.matchEducation(candidate, job)

	assert.Nil(t, match)
	assert.Equal(t, 0.7, score)
}

func TestMatchEducation_MeetsRequirement(t *testing.T) {
	e := NewEngine()
	candidate := &types.CandidateProfile{HighestEducation: "master"}
	job := &types.JobProfile{EducationRequirement: "bachelor"}

	match, score := e.matchEducation(candidate, job)

	assert.NotNil(t, match)
	assert.True(t, match.MeetsRequirement)
	assert.Equal(t, 1.0, score)
}

func TestMatchEducation_ExactLevel(t *testing.T) {
	e := NewEngine()
	candidate := &types.CandidateProfile{HighestEducation: "phd"}
	job := &types.JobProfile{EducationRequirement: "phd"}

	_, score := e.matchEducation(candidate, job)

	assert.Equal(t, 1.0, score)
}

func TestMatchEducation_OneLevelBelow(t *testing.T) {
	e := NewEngine()
	candidate := &types.CandidateProfile{HighestEducation: "bachelor"}
	job := &types.JobProfile{EducationRequirement: "master"}

	match, score := e.matchEducation(candidate, job)

	assert.False(t, match.MeetsRequirement)
	assert.Equal(t, 0.7, score)
}

func TestMatchEducation_MoreThanOneLevelBelow(t *testing.T) {
	e := NewEngine()
	// associate (3) vs phd (6): max(0.3, 3/6) = 0.5.
	candidate := &types.CandidateProfile{HighestEducation: "associate"}
	job := &types.JobProfile{EducationRequirement: "phd"}

	_, score := e.matchEducation(candidate, job)

	assert.Equal(t, 0.5, score)
}

func TestMatchEducation_FloorApplies(t *testing.T) {
	e := NewEngine()
	// high school (1) vs phd (6): 1/6 < 0.3, floor at 0.3.
	candidate := &types.CandidateProfile{HighestEducation: "high school"}
	job := &types.JobProfile{EducationRequirement: "phd"}

	_, score := e.matchEducation(candidate, job)

	assert.Equal(t, 0.3, score)
}

func TestMatchEducation_NoCandidateDegree(t *testing.T) {
	e := NewEngine()
	candidate := &types.CandidateProfile{}
	job := &types.JobProfile{EducationRequirement: "bachelor"}

	match, score := e.matchEducation(candidate, job)

	assert.NotNil(t, match)
	assert.Equal(t, 0.3, score)
}

func TestMatchEducation_MBAEquivalentToMaster(t *testing.T) {
	e := NewEngine()
	candidate := &types.CandidateProfile{HighestEducation: "mba"}
	job := &types.JobProfile{EducationRequirement: "master"}

	match, score := e.matchEducation(candidate, job)

	assert.True(t, match.MeetsRequirement)
	assert.Equal(t, 1.0, score)
}

func TestMatchEducation_UnknownRequiredDegree(t *testing.T) {
	e := NewEngine()
	// Unknown degrees map to level 0; candidate level >= 0 always meets it.
	candidate := &types.CandidateProfile{HighestEducation: "bachelor"}
	job := &types.JobProfile{EducationRequirement: "bootcamp"}

	match, score := e.matchEducation(candidate, job)

	assert.True(t, match.MeetsRequirement)
	assert.Equal(t, 1.0, score)
}

func TestMatchEducation_CaseInsensitiveDegrees(t *testing.T) {
	e := NewEngine()
	candidate := &types.CandidateProfile{HighestEducation: "Bachelor"}
	job := &types.JobProfile{EducationRequirement: "Master"}

	_, score := e.matchEducation(candidate, job)

	assert.Equal(t, 0.7, score)
}
