// Package match scores a procedure or query string against clause strings.
//
// Two engines implement the same contract: the ratio-family engine (default)
// and a pure containment engine kept for environments where the similarity
// behavior has to stay trivially auditable.
package match

import (
	"sort"
	"strings"

	"github.com/clausecheck/clausecheck/internal/model"
)

// Matcher scores a query against candidate clause strings and returns the
// candidates that clear the threshold, sorted by confidence descending with
// ties keeping the original candidate order.
type Matcher interface {
	Match(query string, candidates []string, threshold int) []model.MatchCandidate
}

// genericTerms dilute similarity scores; their presence widens the
// acceptance threshold.
var genericTerms = []string{"treatment", "surgery", "care", "therapy", "procedure"}

const (
	substringBonus   = 15
	wordOverlapScale = 20

	// genericRelief is subtracted from the threshold for generic queries,
	// bounded below by genericFloor.
	genericRelief = 25
	genericFloor  = 60
)

// hasGenericTerm reports whether the lowercased query contains a generic
// medical-action word.
func hasGenericTerm(lower string) bool {
	for _, term := range genericTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// effectiveThreshold lowers the threshold for generic queries.
func effectiveThreshold(lowerQuery string, threshold int) int {
	if !hasGenericTerm(lowerQuery) {
		return threshold
	}
	relieved := threshold - genericRelief
	if relieved < genericFloor {
		return genericFloor
	}
	return relieved
}

// wordOverlap returns |common words| / max(|a words|, |b words|), in [0,1].
func wordOverlap(a, b string) float64 {
	aWords := fields(a)
	bWords := fields(b)
	if len(aWords) == 0 || len(bWords) == 0 {
		return 0
	}

	common := 0
	for w := range aWords {
		if bWords[w] {
			common++
		}
	}

	max := len(aWords)
	if len(bWords) > max {
		max = len(bWords)
	}
	return float64(common) / float64(max)
}

func fields(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

func clamp100(n int) int {
	if n > 100 {
		return 100
	}
	return n
}

// sortByConfidence orders descending by confidence; equal confidences keep
// candidate order.
func sortByConfidence(matches []model.MatchCandidate) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
}
