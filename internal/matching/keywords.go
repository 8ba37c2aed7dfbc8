package matching

import (
	"sort"
	"strings"

	"github.com/jonathan/match-insight/internal/types"
)

// Keyword matching constants. The term lists on a KeywordMatch are truncated
// for display; the score uses the full sets.
const (
	minKeywordLength    = 4
	maxMatchedTermsKept = 20
	maxMissingTermsKept = 10

	// noKeywordsScore applies when the posting text yields no usable keywords.
	noKeywordsScore = 0.5
)

// DefaultStopWords returns the words excluded from keyword extraction.
func DefaultStopWords() []string {
	return []string{
		"with", "have", "will", "that", "this", "from", "your", "they",
		"their", "what", "when", "where", "which", "would", "could",
		"should", "must", "able", "about", "experience", "work", "team",
	}
}

// matchKeywords extracts keywords from the posting's responsibilities and
// qualifications and checks each for presence in the candidate's text.
// Returns nil and 0.0 when no candidate text is available, nil and the
// neutral score when the posting yields no keywords.
func (e *Engine) matchKeywords(candidate *types.CandidateProfile, job *types.JobProfile) (*types.KeywordMatch, float64) {
	resumeText := strings.ToLower(candidate.FullText())
	if resumeText == "" {
		return nil, 0.0
	}

	keywords := make(map[string]bool)
	for _, line := range job.Responsibilities {
		collectKeywords(keywords, line, e.stopWords)
	}
	for _, line := range job.Qualifications {
		collectKeywords(keywords, line, e.stopWords)
	}

	if len(keywords) == 0 {
		return nil, noKeywordsScore
	}

	var matched, missing []string
	for kw := range keywords {
		if strings.Contains(resumeText, kw) {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}
	// Map iteration order is random; keep term lists deterministic.
	sort.Strings(matched)
	sort.Strings(missing)

	pct := float64(len(matched)) / float64(len(keywords))
	match := &types.KeywordMatch{
		TotalKeywords:   len(keywords),
		MatchedKeywords: len(matched),
		MatchPercentage: pct,
		MatchedTerms:    truncateTerms(matched, maxMatchedTermsKept),
		MissingTerms:    truncateTerms(missing, maxMissingTermsKept),
	}

	return match, round3(pct)
}

// collectKeywords splits a line into lowercase tokens and adds those long
// enough and not stop-listed to the set.
func collectKeywords(dst map[string]bool, line string, stopWords map[string]bool) {
	for _, word := range strings.Fields(strings.ToLower(line)) {
		if len(word) >= minKeywordLength && !stopWords[word] {
			dst[word] = true
		}
	}
}

func truncateTerms(terms []string, limit int) []string {
	if len(terms) > limit {
		return terms[:limit]
	}
	return terms
}
