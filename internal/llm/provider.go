package llm

import (
	"context"
	"fmt"

	"github.com/clausecheck/clausecheck/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Explain generates a prose explanation of a completed decision
	Explain(ctx context.Context, req ExplainRequest) (*ExplainResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// ExplainRequest contains the input for decision explanation
type ExplainRequest struct {
	// Report is the completed query report. The decision inside it is
	// final; the explanation must restate it, never revise it.
	Report model.QueryReport

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// ExplainResponse contains the LLM's explanation output
type ExplainResponse struct {
	// Text is the generated explanation
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 500,
	}
}

const systemPrompt = "You are a helpful assistant that explains insurance coverage decisions. You restate decisions that were already made; you never second-guess or revise them."

// BuildPrompt constructs the default prompt for explaining a decision.
// The decision is already final when this runs.
func BuildPrompt(report model.QueryReport) string {
	d := report.Decision

	prompt := fmt.Sprintf(`You are explaining a coverage decision made by a rule-based policy engine. The decision is FINAL.

CRITICAL RULES:
1. Restate the decision below in plain language. DO NOT change, question, or re-evaluate it.
2. Cite ONLY the clause text given here. DO NOT invent policy terms or cite external knowledge.
3. If the reasoning seems incomplete, say the policy text did not specify more, nothing else.

Decision:
- Verdict: %s
- Amount: %d
- Confidence: %d/100
- Reason: %s
`, d.Verdict, d.Amount, d.Confidence, d.Reason)

	if d.ClauseReference != "" {
		prompt += fmt.Sprintf("- Clause cited: %q\n", d.ClauseReference)
	}
	if d.ConflictNote != "" {
		prompt += fmt.Sprintf("- Conflict resolution: %s\n", d.ConflictNote)
	}
	if d.WaitingPeriodIssue {
		prompt += "- A waiting period requirement was not met.\n"
	}

	prompt += fmt.Sprintf(`
Query: %s
`, report.Query)

	if report.Entities.HasProcedure() {
		prompt += fmt.Sprintf("Detected procedure: %s\n", report.Entities.ProcedureCategory)
	}
	if len(d.MatchedTerms) > 0 {
		prompt += fmt.Sprintf("Matched clause terms: %s\n", joinTerms(d.MatchedTerms))
	}

	prompt += "\nProvide a 3-4 sentence explanation of this decision for the policyholder."

	return prompt
}

func joinTerms(terms []string) string {
	result := ""
	for i, term := range terms {
		if i >= 10 { // avoid token bloat
			result += fmt.Sprintf(" ... and %d more", len(terms)-10)
			break
		}
		if i > 0 {
			result += "; "
		}
		result += term
	}
	return result
}
