package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/clausecheck/clausecheck/internal/model"
	"github.com/clausecheck/clausecheck/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	docRef      string
	truthLabel  string
	outMD       string
	noFooter    bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
	// docID, outJSON, and the HTTP flags are defined in ingest.go and shared here
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Evaluate a coverage query against a policy document",
	Long: `Query ingests a policy document and decides whether the queried
procedure is covered:
- Extract the procedure, age, gender, and tenure from the query
- Check exclusions first, then inclusions, then waiting periods
- Produce an APPROVED or REJECTED verdict with amount and clause

Example:
  clausecheck query "45-year-old male, cardiac surgery" --doc policy.txt
  clausecheck query "IVF treatment for 30F" --doc https://example.com/policy.html --json report.json
  clausecheck query "knee surgery" --doc policy.txt --truth APPROVED
  clausecheck query "knee surgery" --doc policy.txt --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVar(&docRef, "doc", "", "policy document: file path, http(s) URL, or \"-\" for stdin (required)")
	_ = queryCmd.MarkFlagRequired("doc")
	queryCmd.Flags().StringVar(&truthLabel, "truth", "", "expected verdict (APPROVED or REJECTED) for confusion labeling")

	// Output flags
	queryCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	queryCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	queryCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// HTTP flags
	queryCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall timeout")
	queryCmd.Flags().StringVar(&userAgent, "ua", "clausecheck/0.1 (+https://github.com/clausecheck/clausecheck)", "HTTP User-Agent")
	queryCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	queryCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	queryCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	queryCmd.Flags().BoolVar(&noRobots, "no-robots", false, "ignore robots.txt when fetching")

	// LLM flags
	queryCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM explanation of the verdict")
	queryCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	queryCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runQuery(cmd *cobra.Command, args []string) error {
	query := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := buildConfig()
	cfg.Output.IncludeFooter = !noFooter

	if llmEnabled {
		if err := configureLLM(cfg); err != nil {
			return err
		}
	}

	truth, err := parseTruth(truthLabel)
	if err != nil {
		return err
	}

	eng, err := pipeline.NewEngine(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Document: %s\n", docRef)
		fmt.Fprintf(os.Stderr, "Query: %s\n", query)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "⚙️  Loading policy document...\n")
	}

	ingest, err := ingestDocument(ctx, eng, "", docRef)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d inclusions, %d exclusions, %d waiting periods\n",
			ingest.InclusionCount, ingest.ExclusionCount, ingest.WaitingPeriodCount)
	}

	report, err := eng.Query(ctx, ingest.DocumentID, query, truth)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Verdict: %s (confidence %d/100)\n", report.Decision.Verdict, report.Decision.Confidence)
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM explanation using %s\n", cfg.LLM.Provider)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := eng.RenderQueryReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// configureLLM fills the LLM config from flags and environment.
func configureLLM(cfg *model.Config) error {
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel

	// Get API key from environment
	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		baseURL := os.Getenv("OLLAMA_BASE_URL")
		if baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return nil
}

// parseTruth validates an optional expected-verdict label.
func parseTruth(label string) (*model.Verdict, error) {
	if label == "" {
		return nil, nil
	}
	switch label {
	case string(model.VerdictApproved):
		v := model.VerdictApproved
		return &v, nil
	case string(model.VerdictRejected):
		v := model.VerdictRejected
		return &v, nil
	default:
		return nil, fmt.Errorf("invalid --truth value %q (expected APPROVED or REJECTED)", label)
	}
}
