package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/clausecheck/clausecheck/internal/model"
)

// MockEvaluator implements the Evaluator interface for testing
type MockEvaluator struct {
	verdicts map[string]model.Verdict
	err      error
}

func (m *MockEvaluator) Query(ctx context.Context, documentID, query string, groundTruth *model.Verdict) (*model.QueryReport, error) {
	if m.err != nil {
		return nil, m.err
	}

	verdict, ok := m.verdicts[query]
	if !ok {
		verdict = model.VerdictRejected
	}

	decision := model.Decision{Verdict: verdict}
	if groundTruth != nil {
		decision.Classification = model.Classify(verdict, *groundTruth)
	}

	return &model.QueryReport{
		Query:      query,
		DocumentID: documentID,
		Decision:   decision,
	}, nil
}

func TestBatchEvaluator_Run(t *testing.T) {
	evaluator := &MockEvaluator{
		verdicts: map[string]model.Verdict{
			"cardiac surgery": model.VerdictApproved,
			"ivf treatment":   model.VerdictRejected,
		},
	}

	cases := []EvalCase{
		{Query: "cardiac surgery", Expected: "APPROVED"},
		{Query: "ivf treatment", Expected: "REJECTED"},
		{Query: "unknown procedure", Expected: "APPROVED"},
	}

	batch := NewBatchEvaluator(evaluator, 2)
	results := batch.Run(context.Background(), cases)

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	for _, r := range results {
		if r.Error != nil {
			t.Errorf("Unexpected error for %q: %v", r.Case.Query, r.Error)
		}
	}

	matrix := Summarize(results)
	if matrix.AA != 1 {
		t.Errorf("Expected 1 correct approval, got %d", matrix.AA)
	}
	if matrix.RR != 1 {
		t.Errorf("Expected 1 correct rejection, got %d", matrix.RR)
	}
	if matrix.AR != 1 {
		t.Errorf("Expected 1 false rejection, got %d", matrix.AR)
	}
	if matrix.Total() != 3 {
		t.Errorf("Expected 3 labeled results, got %d", matrix.Total())
	}
}

func TestBatchEvaluator_Run_Error(t *testing.T) {
	evaluator := &MockEvaluator{
		err: errors.New("no document ingested"),
	}

	cases := []EvalCase{
		{Query: "cardiac surgery", Expected: "APPROVED"},
	}

	batch := NewBatchEvaluator(evaluator, 1)
	results := batch.Run(context.Background(), cases)

	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Error == nil {
		t.Error("Expected error in result")
	}

	matrix := Summarize(results)
	if matrix.Total() != 0 {
		t.Errorf("Expected failed cases to be skipped, got total %d", matrix.Total())
	}
}

// Case counts far beyond the worker count must drain fully. An earlier
// revision queued every case before collecting results and stalled once
// the case count outgrew the channel buffers.
func TestBatchEvaluator_Run_ManyCases(t *testing.T) {
	evaluator := &MockEvaluator{
		verdicts: map[string]model.Verdict{"cardiac surgery": model.VerdictApproved},
	}

	count := 50
	cases := make([]EvalCase, count)
	for i := range cases {
		cases[i] = EvalCase{Query: "cardiac surgery", Expected: "APPROVED"}
	}

	batch := NewBatchEvaluator(evaluator, 2)

	done := make(chan []*EvalResult, 1)
	go func() {
		done <- batch.Run(context.Background(), cases)
	}()

	var results []*EvalResult
	select {
	case results = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not complete with cases exceeding the worker count")
	}

	if len(results) != count {
		t.Fatalf("Expected %d results, got %d", count, len(results))
	}

	matrix := Summarize(results)
	if matrix.AA != count {
		t.Errorf("Expected %d correct approvals, got %d", count, matrix.AA)
	}
}

// A cancelled context must stop the batch rather than hang it.
func TestBatchEvaluator_Run_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cases := make([]EvalCase, 40)
	for i := range cases {
		cases[i] = EvalCase{Query: "cardiac surgery", Expected: "APPROVED"}
	}

	batch := NewBatchEvaluator(&MockEvaluator{}, 2)

	done := make(chan []*EvalResult, 1)
	go func() {
		done <- batch.Run(ctx, cases)
	}()

	select {
	case results := <-done:
		if len(results) > len(cases) {
			t.Errorf("Got %d results for %d cases", len(results), len(cases))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestBatchEvaluator_Run_Empty(t *testing.T) {
	batch := NewBatchEvaluator(&MockEvaluator{}, 2)
	results := batch.Run(context.Background(), nil)

	if len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}

func TestEvalCase_Truth(t *testing.T) {
	tests := []struct {
		expected string
		want     *model.Verdict
	}{
		{"APPROVED", verdictPtr(model.VerdictApproved)},
		{"approved", verdictPtr(model.VerdictApproved)},
		{" Rejected ", verdictPtr(model.VerdictRejected)},
		{"", nil},
		{"MAYBE", nil},
	}

	for _, tt := range tests {
		got := EvalCase{Expected: tt.expected}.Truth()
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("Truth(%q) = %v, want nil", tt.expected, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("Truth(%q) = %v, want %v", tt.expected, got, *tt.want)
		}
	}
}

func verdictPtr(v model.Verdict) *model.Verdict {
	return &v
}

func TestReadCasesFromFile(t *testing.T) {
	content := `
- query: "45-year-old male, cardiac surgery"
  expected: APPROVED
- query: "ivf treatment for 30F"
  expected: REJECTED
  document_id: policy-1
- query: ""
  expected: APPROVED
`
	path := filepath.Join(t.TempDir(), "cases.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	cases, err := ReadCasesFromFile(path)
	if err != nil {
		t.Fatalf("ReadCasesFromFile failed: %v", err)
	}

	if len(cases) != 2 {
		t.Fatalf("Expected 2 cases (empty query skipped), got %d", len(cases))
	}
	if cases[1].DocumentID != "policy-1" {
		t.Errorf("Expected document_id policy-1, got %q", cases[1].DocumentID)
	}
}

func TestReadCasesFromFile_NonExistent(t *testing.T) {
	_, err := ReadCasesFromFile("/nonexistent/cases.yaml")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestReadCasesFromFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("not: [valid"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	_, err := ReadCasesFromFile(path)
	if err == nil {
		t.Error("Expected error for malformed YAML")
	}
}

func TestBatchEvaluator_RunFile(t *testing.T) {
	content := `
- query: "cardiac surgery"
  expected: APPROVED
`
	path := filepath.Join(t.TempDir(), "cases.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	evaluator := &MockEvaluator{
		verdicts: map[string]model.Verdict{"cardiac surgery": model.VerdictApproved},
	}

	batch := NewBatchEvaluator(evaluator, 1)
	results, err := batch.RunFile(context.Background(), path)
	if err != nil {
		t.Fatalf("RunFile failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Report.Decision.Classification != model.LabelAA {
		t.Errorf("Expected AA label, got %s", results[0].Report.Decision.Classification)
	}
}
