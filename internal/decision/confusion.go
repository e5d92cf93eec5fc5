package decision

import (
	"fmt"

	"github.com/clausecheck/clausecheck/internal/model"
)

// Matrix tallies confusion-matrix labels across a batch of labeled queries.
type Matrix struct {
	AA int `json:"aa"` // true positive: correctly approved
	RR int `json:"rr"` // true negative: correctly rejected
	AR int `json:"ar"` // false negative: should have approved
	RA int `json:"ra"` // false positive: should have rejected
}

// Add records one classified decision.
func (m *Matrix) Add(label model.ConfusionLabel) {
	switch label {
	case model.LabelAA:
		m.AA++
	case model.LabelRR:
		m.RR++
	case model.LabelAR:
		m.AR++
	case model.LabelRA:
		m.RA++
	}
}

// Total returns the number of recorded decisions.
func (m *Matrix) Total() int {
	return m.AA + m.RR + m.AR + m.RA
}

// Accuracy returns the fraction of correct verdicts, 0 when empty.
func (m *Matrix) Accuracy() float64 {
	total := m.Total()
	if total == 0 {
		return 0
	}
	return float64(m.AA+m.RR) / float64(total)
}

// String renders the tally in one line.
func (m *Matrix) String() string {
	return fmt.Sprintf("AA=%d RR=%d AR=%d RA=%d accuracy=%.1f%%",
		m.AA, m.RR, m.AR, m.RA, m.Accuracy()*100)
}
