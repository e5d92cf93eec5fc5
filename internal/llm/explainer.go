package llm

import (
	"context"
	"fmt"

	"github.com/clausecheck/clausecheck/internal/model"
)

// Explainer wraps a Provider and turns completed query reports into
// policyholder-facing explanations. A nil provider means explanations are
// disabled; every failure degrades to warnings instead of failing the query.
type Explainer struct {
	provider Provider
	config   Config
}

// NewExplainer creates an explainer from configuration. An empty provider
// name yields a disabled explainer, not an error.
func NewExplainer(config Config) (*Explainer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	return &Explainer{
		provider: provider,
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured.
func (e *Explainer) IsEnabled() bool {
	return e.provider != nil
}

// ProviderName returns the configured provider's name, or "" when disabled.
func (e *Explainer) ProviderName() string {
	if e.provider == nil {
		return ""
	}
	return e.provider.Name()
}

// Generate produces an explanation for a completed report. The decision in
// the report is final; generation failures never surface as errors, only as
// warnings on the returned Explanation.
func (e *Explainer) Generate(ctx context.Context, report model.QueryReport) (*model.Explanation, error) {
	if e.provider == nil {
		return nil, nil
	}

	if !e.provider.IsAvailable(ctx) {
		return &model.Explanation{
			Enabled:  false,
			Provider: e.provider.Name(),
			Warnings: []string{fmt.Sprintf("LLM provider %s is not available", e.provider.Name())},
		}, nil
	}

	resp, err := e.provider.Explain(ctx, ExplainRequest{
		Report:    report,
		Model:     e.config.Model,
		MaxTokens: e.config.MaxTokens,
	})
	if err != nil {
		return &model.Explanation{
			Enabled:  true,
			Provider: e.provider.Name(),
			Model:    e.config.Model,
			Warnings: []string{fmt.Sprintf("explanation generation failed: %v", err)},
		}, nil
	}

	return &model.Explanation{
		Enabled:  true,
		Provider: e.provider.Name(),
		Model:    resp.Model,
		Text:     resp.Text,
		Warnings: []string{fmt.Sprintf("Tokens used: %d", resp.TokensUsed)},
	}, nil
}
