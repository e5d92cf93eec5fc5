package model

// Gender as extracted from a query.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// Urgency as extracted from a query.
type Urgency string

const (
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "high"
)

// QueryEntities is the structured view of one free-text coverage query.
// Every field except Urgency and Gender is optional; pointers mark absence
// explicitly. Created fresh per query, never stored.
type QueryEntities struct {
	// ProcedureCategory is a taxonomy category, or a free-text
	// "medical <word>" fallback label when no synonym matched.
	ProcedureCategory string `json:"procedure_category,omitempty"`

	// MatchedSynonym is the taxonomy synonym that selected the category.
	MatchedSynonym string `json:"matched_synonym,omitempty"`

	// MatchConfidence is the confidence of the procedure detection (0-100).
	MatchConfidence int `json:"match_confidence,omitempty"`

	// Age in years, valid range (0,120) exclusive.
	Age *int `json:"age,omitempty"`

	Gender Gender `json:"gender"`

	// PolicyTenureMonths is how long the policy has been held. Patterns
	// that name a unit convert explicitly; a bare number is treated as
	// years and multiplied by 12.
	PolicyTenureMonths *int `json:"policy_tenure_months,omitempty"`

	// RequestedAmount is a monetary figure mentioned in the query.
	RequestedAmount *int64 `json:"requested_amount,omitempty"`

	Urgency Urgency `json:"urgency"`
}

// HasProcedure reports whether any procedure was detected, including the
// generic fallback.
func (q *QueryEntities) HasProcedure() bool {
	return q.ProcedureCategory != ""
}
