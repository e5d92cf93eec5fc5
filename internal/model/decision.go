package model

// Verdict is the final coverage decision.
type Verdict string

const (
	VerdictApproved Verdict = "APPROVED"
	VerdictRejected Verdict = "REJECTED"
)

// ConfusionLabel classifies a verdict against a supplied ground-truth label.
type ConfusionLabel string

const (
	// LabelAA true positive: correctly approved.
	LabelAA ConfusionLabel = "AA"
	// LabelRR true negative: correctly rejected.
	LabelRR ConfusionLabel = "RR"
	// LabelAR false negative: should have approved, rejected.
	LabelAR ConfusionLabel = "AR"
	// LabelRA false positive: should have rejected, approved.
	LabelRA ConfusionLabel = "RA"
	// LabelUnknown is emitted when the ground-truth label is unrecognized.
	LabelUnknown ConfusionLabel = "UNKNOWN"
)

// ClauseKind distinguishes where a match candidate came from.
type ClauseKind string

const (
	KindInclusion ClauseKind = "inclusion"
	KindExclusion ClauseKind = "exclusion"
)

// MatchCandidate is one scored clause match. Produced and consumed within a
// single decision.
type MatchCandidate struct {
	ClauseText string     `json:"clause_text"`
	Confidence int        `json:"confidence"` // 0-100
	Kind       ClauseKind `json:"kind"`
	Amount     int64      `json:"amount,omitempty"`
}

// Decision is the outcome of reconciling a query against a clause set.
// Immutable once produced; returned to the caller, never stored.
type Decision struct {
	Verdict    Verdict `json:"verdict"`
	Amount     int64   `json:"amount"`
	Confidence int     `json:"confidence"`
	Reason     string  `json:"reason"`

	ClauseReference string `json:"clause_reference,omitempty"`

	// ConflictNote explains which confidence values drove the choice when
	// both an exclusion and an inclusion matched.
	ConflictNote string `json:"conflict_note,omitempty"`

	ExclusionMatch string `json:"exclusion_match,omitempty"`
	CoverageMatch  string `json:"coverage_match,omitempty"`

	// MatchedTerms are the clause strings that cleared the fuzzy threshold.
	MatchedTerms []string `json:"fuzzy_matched_terms,omitempty"`

	WaitingPeriodIssue bool   `json:"waiting_period_issue,omitempty"`
	WaitingPeriodMet   string `json:"waiting_period_met,omitempty"`

	FallbackCoverage bool `json:"fallback_coverage,omitempty"`
	GeneralCoverage  bool `json:"general_medical_coverage,omitempty"`

	// AvailableCoverage lists up to ten known coverage terms when the
	// query matched nothing, for diagnostics.
	AvailableCoverage []string `json:"available_coverage,omitempty"`

	// Classification is set only when a ground-truth label was supplied.
	Classification ConfusionLabel `json:"confusion_matrix,omitempty"`
}

// Classify returns the confusion-matrix label for a verdict against the
// supplied ground truth.
func Classify(verdict, truth Verdict) ConfusionLabel {
	switch {
	case verdict == VerdictApproved && truth == VerdictApproved:
		return LabelAA
	case verdict == VerdictRejected && truth == VerdictRejected:
		return LabelRR
	case verdict == VerdictRejected && truth == VerdictApproved:
		return LabelAR
	case verdict == VerdictApproved && truth == VerdictRejected:
		return LabelRA
	default:
		return LabelUnknown
	}
}
