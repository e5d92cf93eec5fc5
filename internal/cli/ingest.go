package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/clausecheck/clausecheck/internal/model"
	"github.com/clausecheck/clausecheck/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	docID       string
	outJSON     string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	insecureTLS bool
	noRobots    bool
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest <file|url|->",
	Short: "Ingest a policy document and report its extracted clauses",
	Long: `Ingest reads one policy document and extracts:
- Coverage inclusions with their amounts
- Exclusions
- Waiting periods
- Policy name and classification

The argument is a local file path, an http(s) URL, or "-" for stdin.
PDF input is rejected; extract the text first.

Example:
  clausecheck ingest policy.txt
  clausecheck ingest https://example.com/policy.html --json clauses.json
  cat policy.txt | clausecheck ingest -`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&docID, "id", "", "document ID (generated if empty)")
	ingestCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (stdout summary by default)")

	// HTTP flags
	ingestCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "fetch timeout")
	ingestCmd.Flags().StringVar(&userAgent, "ua", "clausecheck/0.1 (+https://github.com/clausecheck/clausecheck)", "HTTP User-Agent")
	ingestCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	ingestCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	ingestCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	ingestCmd.Flags().BoolVar(&noRobots, "no-robots", false, "ignore robots.txt when fetching")
}

func runIngest(cmd *cobra.Command, args []string) error {
	ref := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := buildConfig()

	eng, err := pipeline.NewEngine(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Ingesting: %s\n", ref)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	report, err := ingestDocument(ctx, eng, docID, ref)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	if outJSON != "" {
		renderer := pipeline.NewRenderer(true)
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", outJSON)
		}
	}

	pipeline.NewRenderer(true).RenderIngestSummary(report)
	return nil
}

// buildConfig assembles runtime configuration from defaults and flags.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.HTTP.RespectRobots = !noRobots
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	return cfg
}

// ingestDocument loads one document: an http(s) URL is fetched, "-" is read
// from stdin, anything else is treated as a local file path.
func ingestDocument(ctx context.Context, eng *pipeline.Engine, id, ref string) (*model.IngestReport, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return eng.IngestURL(ctx, id, ref)
	}

	if ref == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return eng.IngestText(id, "stdin", string(data))
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return eng.IngestText(id, ref, string(data))
}
