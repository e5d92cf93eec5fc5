package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/clausecheck/clausecheck/internal/model"
)

const reportFooter = "Generated by clausecheck. Decisions are rule-based; review policy wording before relying on them."

// Renderer writes reports to files and the console.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes a report as indented JSON. An empty path writes to stdout.
func (r *Renderer) RenderJSON(report any, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// RenderMarkdown writes a query report as Markdown.
func (r *Renderer) RenderMarkdown(report *model.QueryReport, path string) error {
	var b strings.Builder
	d := report.Decision

	b.WriteString("# Coverage Decision\n\n")
	fmt.Fprintf(&b, "**Query:** %s\n\n", report.Query)
	fmt.Fprintf(&b, "**Document:** %s\n\n", report.DocumentID)
	fmt.Fprintf(&b, "## Verdict: %s\n\n", d.Verdict)
	fmt.Fprintf(&b, "- Amount: %d\n", d.Amount)
	fmt.Fprintf(&b, "- Confidence: %d/100\n", d.Confidence)
	fmt.Fprintf(&b, "- Reason: %s\n", d.Reason)
	if d.ClauseReference != "" {
		fmt.Fprintf(&b, "- Clause: %q\n", d.ClauseReference)
	}
	if d.ConflictNote != "" {
		fmt.Fprintf(&b, "- Conflict: %s\n", d.ConflictNote)
	}
	if d.Classification != "" {
		fmt.Fprintf(&b, "- Confusion label: %s\n", d.Classification)
	}
	b.WriteString("\n")

	if report.Entities.HasProcedure() {
		b.WriteString("## Extracted Entities\n\n")
		fmt.Fprintf(&b, "- Procedure: %s", report.Entities.ProcedureCategory)
		if report.Entities.MatchedSynonym != "" {
			fmt.Fprintf(&b, " (via %q)", report.Entities.MatchedSynonym)
		}
		b.WriteString("\n")
		if report.Entities.Age != nil {
			fmt.Fprintf(&b, "- Age: %d\n", *report.Entities.Age)
		}
		fmt.Fprintf(&b, "- Gender: %s\n", report.Entities.Gender)
		if report.Entities.PolicyTenureMonths != nil {
			fmt.Fprintf(&b, "- Policy tenure: %d months\n", *report.Entities.PolicyTenureMonths)
		}
		b.WriteString("\n")
	}

	if report.LLM != nil && report.LLM.Enabled && report.LLM.Text != "" {
		b.WriteString("## Explanation (LLM-generated, advisory only)\n\n")
		b.WriteString(report.LLM.Text)
		b.WriteString("\n\n")
	}

	if r.includeFooter {
		b.WriteString("---\n")
		b.WriteString(reportFooter)
		b.WriteString("\n")
	}

	if path == "" {
		_, err := os.Stdout.WriteString(b.String())
		return err
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// RenderSummary prints a one-screen summary of a query report to stdout.
func (r *Renderer) RenderSummary(report *model.QueryReport) {
	d := report.Decision

	fmt.Printf("\nVerdict: %s (confidence %d/100)\n", d.Verdict, d.Confidence)
	if d.Amount > 0 {
		fmt.Printf("Amount:  %d\n", d.Amount)
	}
	fmt.Printf("Reason:  %s\n", d.Reason)
	if d.ClauseReference != "" {
		fmt.Printf("Clause:  %q\n", d.ClauseReference)
	}
	if d.WaitingPeriodIssue {
		fmt.Println("Note:    waiting period not met")
	}
	if d.Classification != "" {
		fmt.Printf("Label:   %s\n", d.Classification)
	}
}

// RenderIngestSummary prints a one-screen summary of an ingest report.
func (r *Renderer) RenderIngestSummary(report *model.IngestReport) {
	fmt.Printf("\nIngested document %s\n", report.DocumentID)
	if report.PolicyName != "" {
		fmt.Printf("Policy:          %s\n", report.PolicyName)
	}
	fmt.Printf("Classification:  %s\n", report.Classification)
	fmt.Printf("Inclusions:      %d\n", report.InclusionCount)
	fmt.Printf("Exclusions:      %d\n", report.ExclusionCount)
	fmt.Printf("Waiting periods: %d\n", report.WaitingPeriodCount)
	fmt.Printf("Text size:       %d bytes\n", report.TextSize)
}

// RenderQueryReport renders a query report to the requested outputs.
func (e *Engine) RenderQueryReport(report *model.QueryReport, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := e.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := e.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	e.renderer.RenderSummary(report)
	return nil
}
