package match

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/clausecheck/clausecheck/internal/model"
)

// FuzzyMatcher scores candidates with the ratio family (exact, partial,
// token-sort, token-set) plus containment and word-overlap bonuses.
type FuzzyMatcher struct{}

// NewFuzzyMatcher creates the default similarity engine.
func NewFuzzyMatcher() *FuzzyMatcher {
	return &FuzzyMatcher{}
}

// Match implements Matcher.
func (m *FuzzyMatcher) Match(query string, candidates []string, threshold int) []model.MatchCandidate {
	lowerQuery := strings.ToLower(query)
	accept := effectiveThreshold(lowerQuery, threshold)

	var matches []model.MatchCandidate
	for _, candidate := range candidates {
		lowerCandidate := strings.ToLower(candidate)

		score := bestRatio(lowerQuery, lowerCandidate)

		if strings.Contains(lowerCandidate, lowerQuery) || strings.Contains(lowerQuery, lowerCandidate) {
			score = clamp100(score + substringBonus)
		}

		if overlap := wordOverlap(lowerQuery, lowerCandidate); overlap > 0 {
			score = clamp100(score + int(overlap*wordOverlapScale))
		}

		if score >= accept {
			matches = append(matches, model.MatchCandidate{
				ClauseText: candidate,
				Confidence: score,
			})
		}
	}

	sortByConfidence(matches)
	return matches
}

// bestRatio is the maximum over the four string-similarity measures.
func bestRatio(a, b string) int {
	best := fuzzy.Ratio(a, b)
	if r := fuzzy.PartialRatio(a, b); r > best {
		best = r
	}
	if r := fuzzy.TokenSortRatio(a, b); r > best {
		best = r
	}
	if r := fuzzy.TokenSetRatio(a, b); r > best {
		best = r
	}
	return best
}

var _ Matcher = (*FuzzyMatcher)(nil)
