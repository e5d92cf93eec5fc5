package model

import "sort"

// ClauseSet is the structured view of one policy document. It is built once
// at ingestion and never mutated afterwards.
type ClauseSet struct {
	// Inclusions maps a normalized service name to its coverage limit.
	// Amount 1 means "covered, amount unspecified" (rendered as 0 in
	// decisions); amounts above 1 are monetary limits.
	Inclusions map[string]int64 `json:"inclusions"`

	// CoverageAmounts holds the display form of each covered service's
	// limit (e.g. "₹500,000" or "Covered"). Keys may differ from
	// Inclusions when a service was captured by the medical-term sweep.
	CoverageAmounts map[string]string `json:"coverage_amounts"`

	// Exclusions in the order they were found, deduplicated.
	Exclusions []string `json:"exclusions"`

	// WaitingPeriods maps a category to its required duration.
	WaitingPeriods map[string]WaitingPeriod `json:"waiting_periods"`

	Classification PolicyClass `json:"classification"`
	PolicyName     string      `json:"policy_name,omitempty"`
}

// NewClauseSet returns an empty but valid clause set. Extraction that finds
// nothing still returns one of these, never an error.
func NewClauseSet() *ClauseSet {
	return &ClauseSet{
		Inclusions:      make(map[string]int64),
		CoverageAmounts: make(map[string]string),
		Exclusions:      []string{},
		WaitingPeriods:  make(map[string]WaitingPeriod),
		Classification:  PolicyStandard,
	}
}

// CoverageKeys returns the union of inclusion and coverage-amount keys,
// sorted so matching and diagnostics stay deterministic. This is the
// candidate list the decision engine fuzzy-matches against.
func (c *ClauseSet) CoverageKeys() []string {
	seen := make(map[string]bool, len(c.Inclusions))
	var keys []string
	for k := range c.Inclusions {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for k := range c.CoverageAmounts {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// PolicyClass categorizes the overall policy by its dominant keyword set.
type PolicyClass string

const (
	PolicyStandard  PolicyClass = "standard"
	PolicyFertility PolicyClass = "fertility"
	PolicyPremium   PolicyClass = "premium"
	PolicyUnknown   PolicyClass = "unknown"
)

// DurationUnit is the unit a waiting period was expressed in. Years are
// normalized to months at extraction time; days are kept distinct and never
// converted.
type DurationUnit string

const (
	UnitMonths DurationUnit = "months"
	UnitDays   DurationUnit = "days"
)

// WaitingPeriod is a minimum policy tenure before a category is claimable.
type WaitingPeriod struct {
	Value int          `json:"value"`
	Unit  DurationUnit `json:"unit"`
}

// Months returns the duration in months, or 0 for day-denominated periods,
// which the waiting-period gate does not compare against tenure.
func (w WaitingPeriod) Months() int {
	if w.Unit == UnitMonths {
		return w.Value
	}
	return 0
}
