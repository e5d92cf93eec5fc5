package worker

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/clausecheck/clausecheck/internal/decision"
	"github.com/clausecheck/clausecheck/internal/model"
)

// Evaluator defines the interface for evaluating one coverage query
type Evaluator interface {
	Query(ctx context.Context, documentID, query string, groundTruth *model.Verdict) (*model.QueryReport, error)
}

// EvalCase is one labeled coverage query from a case file
type EvalCase struct {
	Query      string `yaml:"query"`
	Expected   string `yaml:"expected"` // "APPROVED" or "REJECTED"
	DocumentID string `yaml:"document_id,omitempty"`
}

// Truth parses the expected label, if present.
func (c EvalCase) Truth() *model.Verdict {
	switch strings.ToUpper(strings.TrimSpace(c.Expected)) {
	case string(model.VerdictApproved):
		v := model.VerdictApproved
		return &v
	case string(model.VerdictRejected):
		v := model.VerdictRejected
		return &v
	default:
		return nil
	}
}

// EvalJob represents one case evaluation job
type EvalJob struct {
	Case      EvalCase
	Evaluator Evaluator
}

// Execute executes the evaluation job
func (j *EvalJob) Execute(ctx context.Context) Result {
	report, err := j.Evaluator.Query(ctx, j.Case.DocumentID, j.Case.Query, j.Case.Truth())
	return &EvalResult{
		Case:   j.Case,
		Report: report,
		Error:  err,
	}
}

// EvalResult represents the result of one case evaluation
type EvalResult struct {
	Case   EvalCase
	Report *model.QueryReport
	Error  error
}

// GetError returns the error from the evaluation result
func (r *EvalResult) GetError() error {
	return r.Error
}

// BatchEvaluator runs labeled cases through an evaluator concurrently
type BatchEvaluator struct {
	evaluator   Evaluator
	concurrency int
}

// NewBatchEvaluator creates a new batch evaluator
func NewBatchEvaluator(evaluator Evaluator, concurrency int) *BatchEvaluator {
	return &BatchEvaluator{
		evaluator:   evaluator,
		concurrency: concurrency,
	}
}

// Run evaluates all cases concurrently
func (b *BatchEvaluator) Run(ctx context.Context, cases []EvalCase) []*EvalResult {
	if len(cases) == 0 {
		return []*EvalResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	// Submit from a goroutine so Wait can drain results concurrently.
	// Submitting inline would block once the queue fills.
	go func() {
		for _, c := range cases {
			pool.Submit(&EvalJob{
				Case:      c,
				Evaluator: b.evaluator,
			})
		}
		pool.Close()
	}()

	results := pool.Wait()

	evalResults := make([]*EvalResult, len(results))
	for i, result := range results {
		evalResults[i] = result.(*EvalResult)
	}

	return evalResults
}

// RunFile reads cases from a YAML file and evaluates them concurrently
func (b *BatchEvaluator) RunFile(ctx context.Context, filePath string) ([]*EvalResult, error) {
	cases, err := ReadCasesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read cases: %w", err)
	}

	return b.Run(ctx, cases), nil
}

// Summarize builds a confusion matrix from labeled results. Unlabeled or
// failed cases are skipped.
func Summarize(results []*EvalResult) *decision.Matrix {
	matrix := &decision.Matrix{}
	for _, r := range results {
		if r.Error != nil || r.Report == nil {
			continue
		}
		if r.Report.Decision.Classification != "" {
			matrix.Add(r.Report.Decision.Classification)
		}
	}
	return matrix
}

// ReadCasesFromFile reads labeled cases from a YAML file
func ReadCasesFromFile(filePath string) ([]EvalCase, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	var cases []EvalCase
	if err := yaml.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("parse cases: %w", err)
	}

	// Skip entries without a query
	filtered := cases[:0]
	for _, c := range cases {
		if strings.TrimSpace(c.Query) != "" {
			filtered = append(filtered, c)
		}
	}

	return filtered, nil
}
