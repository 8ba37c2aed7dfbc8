// Package matching scores parsed candidates against parsed job postings.
package matching

import (
	"strings"

	"github.com/jonathan/match-insight/internal/types"
)

// Relative weights of required vs preferred skill coverage. They renormalize
// when the posting only lists one of the two.
const (
	requiredSkillWeight  = 0.7
	preferredSkillWeight = 0.3
)

// partialMatchCredit is the credit a required skill earns when the candidate
// lacks it but holds a related skill.
const partialMatchCredit = 0.5

// noSkillRequirementScore applies when the posting lists no skills at all but
// the candidate does: neither rewarded nor penalized.
const noSkillRequirementScore = 0.5

// DefaultRelatedSkillGroups returns the built-in related-skill table. Skills
// in the same group count as a partial match for each other.
func DefaultRelatedSkillGroups() [][]string {
	return [][]string{
		{"python", "django", "flask", "fastapi"},
		{"javascript", "typescript", "node.js", "react", "angular", "vue"},
		{"java", "spring", "hibernate", "kotlin"},
		{"c#", ".net", "asp.net"},
		{"sql", "mysql", "postgresql", "oracle"},
		{"aws", "gcp", "azure", "cloud"},
		{"docker", "kubernetes", "containerization"},
		{"machine learning", "deep learning", "tensorflow", "pytorch"},
	}
}

// buildRelatedGroups lowercases the configured groups into set form for
// membership lookups.
func buildRelatedGroups(groups [][]string) []map[string]bool {
	out := make([]map[string]bool, 0, len(groups))
	for _, group := range groups {
		set := make(map[string]bool, len(group))
		for _, skill := range group {
			set[strings.ToLower(skill)] = true
		}
		out = append(out, set)
	}
	return out
}

// matchSkills scores candidate skills against the posting's required and
// preferred skill lists. Returns one SkillMatch per distinct skill and the
// combined skills factor score.
func (e *Engine) matchSkills(candidate *types.CandidateProfile, job *types.JobProfile) ([]types.SkillMatch, float64) {
	candidateSkills := make(map[string]bool, len(candidate.Skills))
	for _, s := range candidate.Skills {
		candidateSkills[strings.ToLower(s.Name)] = true
	}

	requiredSkills := lowerSet(job.RequiredSkills)
	preferredSkills := lowerSet(job.PreferredSkills)

	skillMatches := make([]types.SkillMatch, 0, len(requiredSkills)+len(preferredSkills))

	requiredMatched := 0.0
	for _, skill := range requiredSkills {
		hasSkill := candidateSkills[skill]
		match := types.SkillMatch{
			SkillName:         skill,
			Required:          true,
			CandidateHasSkill: hasSkill,
		}
		if hasSkill {
			match.MatchScore = 1.0
			requiredMatched++
		} else if related := e.findRelatedSkill(skill, candidateSkills); related != "" {
			match.PartialMatch = true
			match.RelatedSkill = related
			match.MatchScore = partialMatchCredit
			requiredMatched += partialMatchCredit
		}
		skillMatches = append(skillMatches, match)
	}

	preferredMatched := 0.0
	for _, skill := range preferredSkills {
		hasSkill := candidateSkills[skill]
		match := types.SkillMatch{
			SkillName:         skill,
			Required:          false,
			CandidateHasSkill: hasSkill,
		}
		if hasSkill {
			match.MatchScore = 1.0
			preferredMatched++
		}
		skillMatches = append(skillMatches, match)
	}

	score := 0.0
	totalWeight := 0.0

	if len(requiredSkills) > 0 {
		score += requiredSkillWeight * (requiredMatched / float64(len(requiredSkills)))
		totalWeight += requiredSkillWeight
	}
	if len(preferredSkills) > 0 {
		score += preferredSkillWeight * (preferredMatched / float64(len(preferredSkills)))
		totalWeight += preferredSkillWeight
	}

	switch {
	case totalWeight > 0:
		score /= totalWeight
	case len(candidateSkills) > 0:
		score = noSkillRequirementScore
	}

	return skillMatches, round3(score)
}

// findRelatedSkill looks for a candidate skill in the same related group as
// the target. Returns "" when none is found.
func (e *Engine) findRelatedSkill(target string, candidateSkills map[string]bool) string {
	for _, group := range e.relatedGroups {
		if !group[target] {
			continue
		}
		for skill := range candidateSkills {
			if group[skill] && skill != target {
				return skill
			}
		}
	}
	return ""
}

// lowerSet lowercases and deduplicates a skill list, preserving first-seen order.
func lowerSet(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		lower := strings.ToLower(s)
		if !seen[lower] {
			seen[lower] = true
			out = append(out, lower)
		}
	}
	return out
}
