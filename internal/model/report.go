package model

import "time"

// IngestReport summarizes what was extracted from one ingested document.
type IngestReport struct {
	DocumentID     string      `json:"document_id"`
	Source         string      `json:"source"` // file path, URL, or "stdin"
	PolicyName     string      `json:"policy_name,omitempty"`
	Classification PolicyClass `json:"classification"`

	InclusionCount     int `json:"inclusions_found"`
	ExclusionCount     int `json:"exclusions_found"`
	WaitingPeriodCount int `json:"waiting_periods_found"`

	TextExcerpt string    `json:"text_excerpt,omitempty"`
	TextSize    int       `json:"text_size"`
	IngestedAt  time.Time `json:"ingested_at"`
}

// QueryReport is the complete result of one coverage query.
type QueryReport struct {
	Query      string        `json:"query"`
	DocumentID string        `json:"document_id"`
	Entities   QueryEntities `json:"entities_extracted"`
	Decision   Decision      `json:"decision"`

	InclusionsChecked int       `json:"inclusions_checked"`
	ExclusionsChecked int       `json:"exclusions_checked"`
	ProcessedAt       time.Time `json:"processed_at"`

	// LLM holds the optional generated explanation. It is produced after
	// the decision and never affects it.
	LLM *Explanation `json:"llm,omitempty"`
}

// Explanation is an optional LLM-generated prose rendering of a decision.
// CRITICAL: it never affects the verdict and is clearly separated.
type Explanation struct {
	Enabled  bool   `json:"enabled"`
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	Text     string `json:"text,omitempty"`

	// Warnings surface generation problems without failing the query.
	Warnings []string `json:"warnings,omitempty"`
}
