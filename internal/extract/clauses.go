package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/clausecheck/clausecheck/internal/model"
)

const (
	minExclusionLen = 6
	maxExclusionLen = 199
	maxExclusions   = 50
	minServiceLen   = 4
)

// ClauseExtractor turns unstructured policy text into a ClauseSet. It is
// best-effort: a parse miss leaves the corresponding field empty, it never
// returns an error.
type ClauseExtractor struct{}

// NewClauseExtractor creates a new clause extractor.
func NewClauseExtractor() *ClauseExtractor {
	return &ClauseExtractor{}
}

// Extract parses inclusion, exclusion and waiting-period clauses from raw
// policy text.
func (e *ClauseExtractor) Extract(rawText string) *model.ClauseSet {
	clauses := model.NewClauseSet()

	if strings.TrimSpace(rawText) == "" {
		clauses.Classification = model.PolicyUnknown
		return clauses
	}

	lower := strings.ToLower(rawText)

	clauses.Exclusions = e.extractExclusions(lower)
	e.extractInclusions(rawText, clauses)
	e.sweepMedicalTerms(lower, clauses)
	e.extractWaitingPeriods(lower, clauses)
	clauses.Classification = classifyPolicy(lower)

	if m := policyNamePattern.FindStringSubmatch(rawText); m != nil {
		clauses.PolicyName = strings.TrimSpace(m[1])
	}

	// A service name never appears in both inclusions and exclusions
	// verbatim; the exclusion keeps precedence.
	for _, excl := range clauses.Exclusions {
		delete(clauses.Inclusions, excl)
		delete(clauses.CoverageAmounts, excl)
	}

	return clauses
}

// extractExclusions scans for trigger phrases and splits the captured runs
// into individual exclusion items, deduplicated and capped.
func (e *ClauseExtractor) extractExclusions(lower string) []string {
	seen := make(map[string]bool)
	var exclusions []string

	for _, trigger := range exclusionTriggers {
		for _, m := range trigger.FindAllStringSubmatch(lower, -1) {
			for _, item := range exclusionSplit.Split(m[1], -1) {
				item = strings.TrimSpace(item)
				item = strings.TrimRight(item, ".,;")
				if len(item) < minExclusionLen || len(item) > maxExclusionLen {
					continue
				}
				item = strings.TrimSpace(leadingFiller.ReplaceAllString(item, ""))
				if item == "" || seen[item] {
					continue
				}
				seen[item] = true
				exclusions = append(exclusions, item)
				if len(exclusions) >= maxExclusions {
					return exclusions
				}
			}
		}
	}

	return exclusions
}

// extractInclusions applies the pattern cascade in order. For a given
// service key the first pattern to match wins, so the amount-less catch-all
// at the end of the cascade never shadows an amount-bearing match.
func (e *ClauseExtractor) extractInclusions(text string, clauses *model.ClauseSet) {
	for _, p := range inclusionPatterns {
		for _, m := range p.regex.FindAllStringSubmatch(text, -1) {
			service, ok := normalizeService(m[p.serviceGroup])
			if !ok {
				continue
			}
			if _, exists := clauses.Inclusions[service]; exists {
				continue
			}

			amount := int64(1) // covered, amount unspecified
			if p.amountGroup > 0 {
				parsed, err := parseAmount(m[p.amountGroup])
				if err != nil {
					// Malformed amount: drop this candidate only,
					// extraction continues.
					continue
				}
				if parsed > 1 {
					amount = parsed
				}
			}

			clauses.Inclusions[service] = amount
			if amount > 1 {
				clauses.CoverageAmounts[service] = "₹" + groupDigits(amount)
			} else {
				clauses.CoverageAmounts[service] = "Covered"
			}
		}
	}
}

// sweepMedicalTerms records common medical terms that appear in a coverage
// context but matched none of the inclusion patterns.
func (e *ClauseExtractor) sweepMedicalTerms(lower string, clauses *model.ClauseSet) {
	for _, term := range medicalTerms {
		if !strings.Contains(lower, term) {
			continue
		}
		if _, exists := clauses.Inclusions[term]; exists {
			continue
		}
		if coverageContextPatterns[term].MatchString(lower) {
			clauses.Inclusions[term] = 1
			clauses.CoverageAmounts[term] = "Covered"
		}
	}
}

func (e *ClauseExtractor) extractWaitingPeriods(lower string, clauses *model.ClauseSet) {
	for i, pattern := range waitingPatterns {
		for _, m := range pattern.FindAllStringSubmatch(lower, -1) {
			var category, value, unit string
			if i == 0 {
				category, value, unit = "general", m[1], m[2]
			} else {
				category, value, unit = strings.TrimSpace(m[1]), m[2], m[3]
				if category == "" {
					category = "general"
				}
			}

			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				continue
			}

			clauses.WaitingPeriods[category] = normalizeDuration(n, unit)
		}
	}
}

// normalizeDuration converts years to months; days stay a distinct unit.
func normalizeDuration(n int, unit string) model.WaitingPeriod {
	switch {
	case strings.HasPrefix(unit, "year"):
		return model.WaitingPeriod{Value: n * 12, Unit: model.UnitMonths}
	case strings.HasPrefix(unit, "day"):
		return model.WaitingPeriod{Value: n, Unit: model.UnitDays}
	default:
		return model.WaitingPeriod{Value: n, Unit: model.UnitMonths}
	}
}

// classifyPolicy scores keyword presence per category. Standard carries a
// +1 bias and wins ties.
func classifyPolicy(lower string) model.PolicyClass {
	count := func(keywords []string) int {
		n := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				n++
			}
		}
		return n
	}

	fertility := count(fertilityKeywords)
	premium := count(premiumKeywords)
	standard := count(standardKeywords) + 1

	switch {
	case fertility > standard && fertility >= premium:
		return model.PolicyFertility
	case premium > standard && premium > fertility:
		return model.PolicyPremium
	default:
		return model.PolicyStandard
	}
}

// normalizeService trims, lowercases and cleans a captured service string.
// Returns false for strings too short to be a service name or in the stop
// word set.
func normalizeService(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = serviceTrim.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, " ")
	if len(s) < minServiceLen || serviceStopWords[s] {
		return "", false
	}
	return s, true
}

// parseAmount strips separators and currency marks and parses the residue.
func parseAmount(raw string) (int64, error) {
	cleaned := amountJunk.ReplaceAllString(raw, "")
	if cleaned == "" || !digitsOnly.MatchString(cleaned) {
		// Non-numeric residue reads as "no amount stated".
		return 0, nil
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	return n, nil
}

// groupDigits renders 500000 as "500,000".
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
