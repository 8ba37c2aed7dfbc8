package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/match-insight/internal/types"
)

func candidateWithSkills(names ...string) *types.CandidateProfile {
	skills := make([]types.CandidateSkill, 0, len(names))
	for _, n := range names {
		skills = append(skills, types.CandidateSkill{Name: n})
	}
	return &types.CandidateProfile{Skills: skills}
}

func TestMatchSkills_AllRequiredPresent(t *testing.T) {
	e := NewEngine()
	candidate := candidateWithSkills("Python", "Django", "SQL")
	job := &types.JobProfile{RequiredSkills: []string{"python", "django"}}

	matches, score := e.matchSkills(candidate, job)

	assert.Equal(t, 1.0, score)
	assert.Len(t, matches, 2)
	for _, m := range matches {
		assert.True(t, m.CandidateHasSkill)
		assert.Equal(t, 1.0, m.MatchScore)
	}
}

func TestMatchSkills_CaseInsensitive(t *testing.T) {
	e := NewEngine()
	candidate := candidateWithSkills("PYTHON")
	job := &types.JobProfile{RequiredSkills: []string{"Python"}}

	_, score := e.matchSkills(candidate, job)

	assert.Equal(t, 1.0, score)
}

func TestMatchSkills_RelatedSkillPartialCredit(t *testing.T) {
	e := NewEngine()
	// Candidate lacks python but has django, which is in the same group.
	candidate := candidateWithSkills("django")
	job := &types.JobProfile{RequiredSkills: []string{"python"}}

	matches, score := e.matchSkills(candidate, job)

	assert.Len(t, matches, 1)
	assert.False(t, matches[0].CandidateHasSkill)
	assert.True(t, matches[0].PartialMatch)
	assert.Equal(t, "django", matches[0].RelatedSkill)
	assert.Equal(t, 0.5, matches[0].MatchScore)
	assert.Equal(t, 0.5, score)
}

func TestMatchSkills_NoRelatedSkillScoresZero(t *testing.T) {
	e := NewEngine()
	candidate := candidateWithSkills("photoshop")
	job := &types.JobProfile{RequiredSkills: []string{"python"}}

	matches, score := e.matchSkills(candidate, job)

	assert.Equal(t, 0.0, score)
	assert.False(t, matches[0].PartialMatch)
	assert.Equal(t, 0.0, matches[0].MatchScore)
}

func TestMatchSkills_RequiredAndPreferredSplit(t *testing.T) {
	e := NewEngine()
	// All required matched, no preferred matched: 0.7*1.0 + 0.3*0.0 = 0.7.
	candidate := candidateWithSkills("python")
	job := &types.JobProfile{
		RequiredSkills:  []string{"python"},
		PreferredSkills: []string{"rust"},
	}

	_, score := e.matchSkills(candidate, job)

	assert.InDelta(t, 0.7, score, 1e-9)
}

func TestMatchSkills_PreferredOnlyRenormalizes(t *testing.T) {
	e := NewEngine()
	// Only a preferred list exists; its 0.3 weight renormalizes to 1.0.
	candidate := candidateWithSkills("rust")
	job := &types.JobProfile{PreferredSkills: []string{"rust", "zig"}}

	_, score := e.matchSkills(candidate, job)

	assert.InDelta(t, 0.5, score, 1e-9)
}

func TestMatchSkills_NoRequirementsWithCandidateSkills(t *testing.T) {
	e := NewEngine()
	candidate := candidateWithSkills("python")
	job := &types.JobProfile{}

	matches, score := e.matchSkills(candidate, job)

	assert.Empty(t, matches)
	assert.Equal(t, noSkillRequirementScore, score)
}

func TestMatchSkills_NoRequirementsNoSkills(t *testing.T) {
	e := NewEngine()
	candidate := &types.CandidateProfile{}
	job := &types.JobProfile{}

	_, score := e.matchSkills(candidate, job)

	assert.Equal(t, 0.0, score)
}

func TestMatchSkills_DuplicateRequiredSkillsDeduplicated(t *testing.T) {
	e := NewEngine()
	candidate := candidateWithSkills("python")
	job := &types.JobProfile{RequiredSkills: []string{"Python", "python", "PYTHON"}}

	matches, score := e.matchSkills(candidate, job)

	assert.Len(t, matches, 1)
	assert.Equal(t, 1.0, score)
}

func TestFindRelatedSkill_SameSkillDoesNotMatchItself(t *testing.T) {
	e := NewEngine()
	related := e.findRelatedSkill("python", map[string]bool{"python": true})
	assert.Equal(t, "", related)
}

func TestFindRelatedSkill_OutsideAnyGroup(t *testing.T) {
	e := NewEngine()
	related := e.findRelatedSkill("cobol", map[string]bool{"fortran": true})
	assert.Equal(t, "", related)
}

func TestMatchSkills_ScoreWithinUnitInterval(t *testing.T) {
	e := NewEngine()
	candidate := candidateWithSkills("python", "django", "aws", "sql")
	job := &types.JobProfile{
		RequiredSkills:  []string{"python", "go", "kafka"},
		PreferredSkills: []string{"aws", "terraform"},
	}

	matches, score := e.matchSkills(candidate, job)

	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.MatchScore, 0.0)
		assert.LessOrEqual(t, m.MatchScore, 1.0)
	}
}
