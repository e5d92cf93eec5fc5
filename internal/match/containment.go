package match

import (
	"strings"

	"github.com/clausecheck/clausecheck/internal/model"
)

const (
	containExact   = 95
	containPartial = 70

	// containmentRelief widens the threshold for the word-overlap
	// heuristic, which scores lower than the ratio family would.
	containmentRelief = 20
)

// ContainmentMatcher is the similarity engine used when the ratio family is
// disabled: pure substring containment plus a word-overlap heuristic at a
// widened threshold.
type ContainmentMatcher struct{}

// NewContainmentMatcher creates the fallback engine.
func NewContainmentMatcher() *ContainmentMatcher {
	return &ContainmentMatcher{}
}

// Match implements Matcher.
func (m *ContainmentMatcher) Match(query string, candidates []string, threshold int) []model.MatchCandidate {
	lowerQuery := strings.ToLower(query)

	var matches []model.MatchCandidate
	for _, candidate := range candidates {
		lowerCandidate := strings.ToLower(candidate)

		score := 0
		switch {
		case lowerQuery == lowerCandidate:
			score = containExact
		case strings.Contains(lowerCandidate, lowerQuery) || strings.Contains(lowerQuery, lowerCandidate):
			score = containPartial
		default:
			overlapScore := int(wordOverlap(lowerQuery, lowerCandidate) * 100)
			if overlapScore >= threshold-containmentRelief {
				score = overlapScore
			}
		}

		if score > 0 {
			matches = append(matches, model.MatchCandidate{
				ClauseText: candidate,
				Confidence: score,
			})
		}
	}

	sortByConfidence(matches)
	return matches
}

var _ Matcher = (*ContainmentMatcher)(nil)
