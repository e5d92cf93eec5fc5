package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clausecheck/clausecheck/internal/cache"
	"github.com/clausecheck/clausecheck/internal/decision"
	"github.com/clausecheck/clausecheck/internal/extract"
	"github.com/clausecheck/clausecheck/internal/llm"
	"github.com/clausecheck/clausecheck/internal/match"
	"github.com/clausecheck/clausecheck/internal/model"
	"github.com/clausecheck/clausecheck/internal/store"
	"github.com/clausecheck/clausecheck/internal/taxonomy"
)

// Engine orchestrates the complete ingest and query flow.
type Engine struct {
	fetcher         *Fetcher
	clauseExtractor *extract.ClauseExtractor
	entityExtractor *extract.EntityExtractor
	decider         *decision.Engine
	documents       *store.DocumentStore
	renderer        *Renderer
	explainer       *llm.Explainer // Optional LLM explainer (nil if disabled)
	config          *model.Config
}

// NewEngine creates an engine with the given configuration.
func NewEngine(cfg *model.Config) (*Engine, error) {
	tax := taxonomy.Default()
	if cfg.Taxonomy.Path != "" {
		loaded, err := taxonomy.LoadFile(cfg.Taxonomy.Path)
		if err != nil {
			return nil, fmt.Errorf("load taxonomy: %w", err)
		}
		tax = loaded
	}

	matcher, err := newMatcher(cfg.Matching.Engine)
	if err != nil {
		return nil, err
	}

	var textCache cache.Cache
	if cfg.Cache.Enabled {
		textCache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}

	// Create LLM explainer if configured
	var explainer *llm.Explainer
	if cfg.LLM.Provider != "" {
		e, err := llm.NewExplainer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Printf("Warning: Failed to initialize LLM provider: %v\n", err)
		} else {
			explainer = e
		}
	}

	return &Engine{
		fetcher:         NewFetcher(cfg.HTTP, textCache),
		clauseExtractor: extract.NewClauseExtractor(),
		entityExtractor: extract.NewEntityExtractor(tax),
		decider:         decision.NewEngine(matcher, cfg.Matching),
		documents:       store.New(),
		renderer:        NewRenderer(cfg.Output.IncludeFooter),
		explainer:       explainer,
		config:          cfg,
	}, nil
}

func newMatcher(engine string) (match.Matcher, error) {
	switch engine {
	case "", "fuzzy":
		return match.NewFuzzyMatcher(), nil
	case "containment":
		return match.NewContainmentMatcher(), nil
	default:
		return nil, fmt.Errorf("unknown matching engine: %s (supported: fuzzy, containment)", engine)
	}
}

// Documents exposes the underlying store for inspection.
func (e *Engine) Documents() *store.DocumentStore {
	return e.documents
}

// IngestText extracts clauses from raw policy text and stores the document.
// An empty id gets a generated one.
func (e *Engine) IngestText(id, source, rawText string) (*model.IngestReport, error) {
	if rawText == "" {
		return nil, fmt.Errorf("document text is empty")
	}
	if id == "" {
		id = uuid.NewString()
	}

	clauses := e.clauseExtractor.Extract(rawText)
	entry := e.documents.Put(id, source, rawText, clauses)

	return &model.IngestReport{
		DocumentID:         entry.ID,
		Source:             source,
		PolicyName:         clauses.PolicyName,
		Classification:     clauses.Classification,
		InclusionCount:     len(clauses.Inclusions),
		ExclusionCount:     len(clauses.Exclusions),
		WaitingPeriodCount: len(clauses.WaitingPeriods),
		TextExcerpt:        entry.TextExcerpt,
		TextSize:           entry.TextSize,
		IngestedAt:         entry.IngestedAt,
	}, nil
}

// IngestURL fetches a policy document and ingests its text.
func (e *Engine) IngestURL(ctx context.Context, id, rawURL string) (*model.IngestReport, error) {
	text, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}
	return e.IngestText(id, rawURL, text)
}

// Query evaluates a coverage query against a stored document. An empty
// documentID targets the most recently ingested document. groundTruth, when
// supplied, adds a confusion-matrix label to the decision.
func (e *Engine) Query(ctx context.Context, documentID, query string, groundTruth *model.Verdict) (*model.QueryReport, error) {
	entry, err := e.documents.Resolve(documentID)
	if err != nil {
		return nil, err
	}

	entities := e.entityExtractor.Extract(query)
	verdict := e.decider.Decide(entry.Clauses, entities, query, groundTruth)

	report := &model.QueryReport{
		Query:             query,
		DocumentID:        entry.ID,
		Entities:          entities,
		Decision:          verdict,
		InclusionsChecked: len(entry.Clauses.Inclusions),
		ExclusionsChecked: len(entry.Clauses.Exclusions),
		ProcessedAt:       time.Now().UTC(),
	}

	// Generate the LLM explanation if enabled (AFTER deciding, never
	// affects the verdict).
	if e.explainer != nil && e.explainer.IsEnabled() {
		explanation, err := e.explainer.Generate(ctx, *report)
		if err != nil {
			// Don't fail the query, just warn
			fmt.Printf("Warning: LLM explanation failed: %v\n", err)
		} else if explanation != nil {
			report.LLM = explanation
		}
	}

	return report, nil
}
