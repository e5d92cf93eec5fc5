package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/clausecheck/clausecheck/internal/pipeline"
	"github.com/clausecheck/clausecheck/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency int
	evalTimeout time.Duration
	// docRef is defined in query.go and shared here
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate <cases.yaml>",
	Short: "Evaluate labeled queries against a policy document in parallel",
	Long: `Evaluate runs a file of labeled coverage queries concurrently:
- Read cases from a YAML file (query + expected verdict)
- Evaluate cases in parallel with configurable worker count
- Tally a confusion matrix (AA, RR, AR, RA) and accuracy

Case file format:
  - query: "45-year-old male, cardiac surgery"
    expected: APPROVED
  - query: "IVF treatment for 30F"
    expected: REJECTED

Example:
  clausecheck evaluate cases.yaml --doc policy.txt
  clausecheck evaluate cases.yaml --doc policy.txt --concurrency 10
  clausecheck evaluate cases.yaml --doc https://example.com/policy.html --json results.json`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVar(&docRef, "doc", "", "policy document: file path, http(s) URL, or \"-\" for stdin (required)")
	_ = evaluateCmd.MarkFlagRequired("doc")

	// Concurrency flags
	evaluateCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	evaluateCmd.Flags().DurationVar(&evalTimeout, "timeout", 5*time.Minute, "total timeout for the evaluation run")

	// Output flags
	evaluateCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path for per-case results (optional)")

	// HTTP flags
	evaluateCmd.Flags().StringVar(&userAgent, "ua", "clausecheck/0.1 (+https://github.com/clausecheck/clausecheck)", "HTTP User-Agent")
	evaluateCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	evaluateCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	evaluateCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	evaluateCmd.Flags().BoolVar(&noRobots, "no-robots", false, "ignore robots.txt when fetching")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), evalTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  ClauseCheck Evaluation\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Case file:  %s\n", file)
	fmt.Fprintf(os.Stderr, "  Document:   %s\n", docRef)
	fmt.Fprintf(os.Stderr, "  Workers:    %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Timeout:    %v\n", evalTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	cfg := buildConfig()
	cfg.Concurrency.Workers = concurrency

	eng, err := pipeline.NewEngine(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "⚙️  Loading policy document...\n")
	ingest, err := ingestDocument(ctx, eng, "", docRef)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	fmt.Fprintf(os.Stderr, "✓ Extracted %d inclusions, %d exclusions, %d waiting periods\n",
		ingest.InclusionCount, ingest.ExclusionCount, ingest.WaitingPeriodCount)

	cases, err := worker.ReadCasesFromFile(file)
	if err != nil {
		return fmt.Errorf("read cases: %w", err)
	}
	fmt.Fprintf(os.Stderr, "✓ Loaded %d cases\n", len(cases))
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "⚙️  Evaluating with %d workers...\n", concurrency)
	fmt.Fprintf(os.Stderr, "\n")

	evaluator := worker.NewBatchEvaluator(eng, concurrency)
	results := evaluator.Run(ctx, cases)

	errorCount := 0
	for _, result := range results {
		if result.Error != nil {
			errorCount++
			fmt.Fprintf(os.Stderr, "✗ %q: %v\n", result.Case.Query, result.Error)
			continue
		}

		d := result.Report.Decision
		label := string(d.Classification)
		if label == "" {
			label = "--"
		}
		fmt.Fprintf(os.Stderr, "✓ [%s] %s  %q\n", label, d.Verdict, result.Case.Query)
	}

	matrix := worker.Summarize(results)

	if outJSON != "" {
		renderer := pipeline.NewRenderer(true)
		if err := renderer.RenderJSON(results, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Evaluation Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d cases\n", len(results))
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", errorCount)
	fmt.Fprintf(os.Stderr, "  Matrix:    %s\n", matrix)
	if outJSON != "" {
		fmt.Fprintf(os.Stderr, "  Output:    %s\n", outJSON)
	}
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}
