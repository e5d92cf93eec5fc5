// Package decision reconciles extracted policy clauses with query entities
// into an approve/reject verdict. The precedence order is fixed: exclusions
// are checked first, then inclusions, then the waiting-period gate, then the
// broad fallbacks. Every decision is explainable from its own fields; no
// step consults anything outside the clause set and the query.
package decision

import (
	"fmt"
	"sort"
	"strings"

	"github.com/clausecheck/clausecheck/internal/match"
	"github.com/clausecheck/clausecheck/internal/model"
)

// generalMarkers flag coverage keys that act as catch-all medical benefits.
var generalMarkers = []string{"general", "medical", "health", "comprehensive"}

// fallbackKeywords gate the last-resort general-coverage search.
var fallbackKeywords = []string{"surgery", "treatment", "care", "procedure", "medical"}

const maxDiagnosticTerms = 10

// Engine applies the coverage precedence rules.
type Engine struct {
	matcher match.Matcher
	cfg     model.MatchingConfig
}

// NewEngine creates a decision engine over the given similarity backend.
func NewEngine(matcher match.Matcher, cfg model.MatchingConfig) *Engine {
	return &Engine{matcher: matcher, cfg: cfg}
}

// Decide renders a verdict for a query against a clause set. groundTruth,
// when non-nil, only adds the confusion-matrix label; it never influences
// the verdict.
func (e *Engine) Decide(clauses *model.ClauseSet, entities model.QueryEntities, query string, groundTruth *model.Verdict) model.Decision {
	procedure := entities.MatchedSynonym
	if procedure == "" {
		procedure = query
	}

	exclusion := e.checkExclusions(clauses, procedure)
	inclusion := e.checkInclusions(clauses, entities, procedure)

	var final model.Decision
	switch {
	case exclusion != nil && inclusion != nil:
		final = e.resolveConflict(*exclusion, *inclusion)
	case exclusion != nil:
		final = *exclusion
	case inclusion != nil:
		final = e.gateWaitingPeriod(clauses, entities, *inclusion)
	default:
		final = e.fallback(clauses, entities, procedure, query)
	}

	if groundTruth != nil {
		final.Classification = model.Classify(final.Verdict, *groundTruth)
	}

	return final
}

// checkExclusions fuzzy-matches the procedure against the exclusion list.
func (e *Engine) checkExclusions(clauses *model.ClauseSet, procedure string) *model.Decision {
	matches := e.matcher.Match(procedure, clauses.Exclusions, e.cfg.ExclusionThreshold)
	if len(matches) == 0 {
		return nil
	}

	top := matches[0]
	confidence := top.Confidence
	if confidence < 85 {
		confidence = 85
	}

	return &model.Decision{
		Verdict:         model.VerdictRejected,
		Amount:          0,
		Confidence:      confidence,
		Reason:          fmt.Sprintf("Procedure matches excluded item: %q", top.ClauseText),
		ClauseReference: "Exclusions section",
		ExclusionMatch:  top.ClauseText,
		MatchedTerms:    []string{top.ClauseText},
	}
}

// checkInclusions tries a direct category lookup first, then fuzzy-matches
// the procedure against the coverage keys.
func (e *Engine) checkInclusions(clauses *model.ClauseSet, entities model.QueryEntities, procedure string) *model.Decision {
	if amount, ok := clauses.Inclusions[entities.ProcedureCategory]; ok {
		return &model.Decision{
			Verdict:         model.VerdictApproved,
			Amount:          reportAmount(amount),
			Confidence:      95,
			Reason:          fmt.Sprintf("Direct coverage match for %q", entities.ProcedureCategory),
			ClauseReference: "Coverage section - " + entities.ProcedureCategory,
			CoverageMatch:   entities.ProcedureCategory,
		}
	}

	matches := e.matcher.Match(procedure, clauses.CoverageKeys(), e.cfg.InclusionThreshold)
	if len(matches) == 0 {
		return nil
	}

	top := matches[0]
	confidence := top.Confidence
	if confidence > 90 {
		confidence = 90
	}

	return &model.Decision{
		Verdict:         model.VerdictApproved,
		Amount:          reportAmount(clauses.Inclusions[top.ClauseText]),
		Confidence:      confidence,
		Reason:          fmt.Sprintf("Fuzzy match with covered benefit: %q", top.ClauseText),
		ClauseReference: "Coverage section - " + top.ClauseText,
		CoverageMatch:   top.ClauseText,
		MatchedTerms:    []string{top.ClauseText},
	}
}

// resolveConflict lets the exclusion win unless the inclusion's confidence
// reaches the override bar. The note records which confidences drove it.
func (e *Engine) resolveConflict(exclusion, inclusion model.Decision) model.Decision {
	if inclusion.Confidence >= e.cfg.InclusionOverride {
		inclusion.ConflictNote = fmt.Sprintf(
			"High-confidence inclusion overrides exclusion (confidence: %d%% vs %d%%)",
			inclusion.Confidence, exclusion.Confidence)
		return inclusion
	}

	exclusion.ConflictNote = fmt.Sprintf(
		"Exclusion takes precedence (confidence: %d%% vs %d%%)",
		exclusion.Confidence, inclusion.Confidence)
	return exclusion
}

// gateWaitingPeriod rejects an otherwise-approved inclusion when the policy
// has not been held long enough for the procedure category.
func (e *Engine) gateWaitingPeriod(clauses *model.ClauseSet, entities model.QueryEntities, inclusion model.Decision) model.Decision {
	required := waitingPeriodFor(clauses, entities.ProcedureCategory)
	if required <= 0 {
		return inclusion
	}

	if entities.PolicyTenureMonths == nil {
		return inclusion
	}
	tenure := *entities.PolicyTenureMonths

	if tenure > 0 && tenure < required {
		return model.Decision{
			Verdict:            model.VerdictRejected,
			Amount:             0,
			Confidence:         90,
			Reason:             fmt.Sprintf("Waiting period not met. Required: %d months, policy held: %d months", required, tenure),
			ClauseReference:    fmt.Sprintf("Waiting period requirement - %d months", required),
			WaitingPeriodIssue: true,
		}
	}

	if tenure >= required {
		inclusion.WaitingPeriodMet = fmt.Sprintf("Waiting period satisfied (%d months ≥ %d months required)", tenure, required)
	}
	return inclusion
}

// waitingPeriodFor finds the month-denominated waiting period registered for
// a category, matching the exact key first and then substring containment in
// sorted key order. Day-denominated periods are not compared against tenure.
func waitingPeriodFor(clauses *model.ClauseSet, category string) int {
	if category == "" {
		return 0
	}

	if wp, ok := clauses.WaitingPeriods[category]; ok {
		return wp.Months()
	}

	keys := make([]string, 0, len(clauses.WaitingPeriods))
	for k := range clauses.WaitingPeriods {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if strings.Contains(k, category) || strings.Contains(category, k) {
			return clauses.WaitingPeriods[k].Months()
		}
	}
	return 0
}

// fallback broadens the search when nothing matched directly: lower-threshold
// fuzzy over all coverage keys, then against the whole query, then a
// general-coverage marker, and finally a diagnostic rejection.
func (e *Engine) fallback(clauses *model.ClauseSet, entities model.QueryEntities, procedure, query string) model.Decision {
	coverageKeys := clauses.CoverageKeys()
	lowerQuery := strings.ToLower(query)

	broad := e.matcher.Match(procedure, coverageKeys, e.cfg.FallbackThreshold)
	if len(broad) == 0 && !strings.EqualFold(procedure, query) {
		broad = e.matcher.Match(query, coverageKeys, e.cfg.FallbackThreshold)
	}

	if len(broad) > 0 {
		top := broad[0]
		confidence := top.Confidence
		if confidence < 70 {
			confidence = 70
		}
		return model.Decision{
			Verdict:          model.VerdictApproved,
			Amount:           reportAmount(clauses.Inclusions[top.ClauseText]),
			Confidence:       confidence,
			Reason:           fmt.Sprintf("Broad coverage match found for %q → %q (%d%% confidence)", procedure, top.ClauseText, top.Confidence),
			ClauseReference:  "Broad coverage match - " + top.ClauseText,
			CoverageMatch:    top.ClauseText,
			MatchedTerms:     []string{top.ClauseText},
			FallbackCoverage: true,
		}
	}

	if containsAny(lowerQuery, fallbackKeywords) {
		if key, amount, ok := generalCoverage(clauses, coverageKeys); ok {
			return model.Decision{
				Verdict:          model.VerdictApproved,
				Amount:           reportAmount(amount),
				Confidence:       65,
				Reason:           fmt.Sprintf("Covered under general medical benefits: %q", key),
				ClauseReference:  "General coverage - " + key,
				CoverageMatch:    key,
				FallbackCoverage: true,
				GeneralCoverage:  true,
			}
		}

		return model.Decision{
			Verdict:           model.VerdictRejected,
			Amount:            0,
			Confidence:        80,
			Reason:            fmt.Sprintf("No coverage found for %q in the policy document. Searched %d coverage terms.", procedure, len(coverageKeys)),
			ClauseReference:   "No applicable coverage found",
			AvailableCoverage: truncate(coverageKeys, maxDiagnosticTerms),
		}
	}

	return model.Decision{
		Verdict:           model.VerdictRejected,
		Amount:            0,
		Confidence:        75,
		Reason:            fmt.Sprintf("Query %q does not appear to be a medical procedure or treatment covered by this policy", query),
		ClauseReference:   "Non-medical query",
		AvailableCoverage: truncate(coverageKeys, maxDiagnosticTerms),
	}
}

// generalCoverage finds the first coverage key carrying a general-medical
// marker with a real amount.
func generalCoverage(clauses *model.ClauseSet, coverageKeys []string) (string, int64, bool) {
	for _, key := range coverageKeys {
		amount, ok := clauses.Inclusions[key]
		if !ok || amount <= 0 {
			continue
		}
		if containsAny(key, generalMarkers) {
			return key, amount, true
		}
	}
	return "", 0, false
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// reportAmount renders the internal "covered, amount unspecified" marker
// (1) as 0 in decisions.
func reportAmount(amount int64) int64 {
	if amount <= 1 {
		return 0
	}
	return amount
}

func truncate(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
