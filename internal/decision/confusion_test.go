package decision

import (
	"strings"
	"testing"

	"github.com/clausecheck/clausecheck/internal/model"
)

func TestMatrix_AddAndAccuracy(t *testing.T) {
	m := &Matrix{}
	m.Add(model.LabelAA)
	m.Add(model.LabelAA)
	m.Add(model.LabelRR)
	m.Add(model.LabelAR)
	m.Add(model.LabelRA)
	m.Add(model.LabelUnknown) // not tallied

	if m.Total() != 5 {
		t.Errorf("Expected total 5, got %d", m.Total())
	}
	if m.AA != 2 || m.RR != 1 || m.AR != 1 || m.RA != 1 {
		t.Errorf("Unexpected tallies: %+v", m)
	}
	if m.Accuracy() != 0.6 {
		t.Errorf("Expected accuracy 0.6, got %v", m.Accuracy())
	}
}

func TestMatrix_EmptyAccuracy(t *testing.T) {
	m := &Matrix{}
	if m.Accuracy() != 0 {
		t.Errorf("Expected accuracy 0 for empty matrix, got %v", m.Accuracy())
	}
}

func TestMatrix_String(t *testing.T) {
	m := &Matrix{AA: 3, RR: 1}
	s := m.String()
	if !strings.Contains(s, "AA=3") || !strings.Contains(s, "accuracy=100.0%") {
		t.Errorf("Unexpected string rendering: %q", s)
	}
}
