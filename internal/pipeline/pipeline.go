// Package pipeline runs one offline scoring batch: parse every query while
// collecting the terms they use, enumerate those terms, build the postings
// store in a single pass over the documents, evaluate the queries and write
// the relevance table.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/indexer/vocabulary"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/ingestion"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/ingestion/validator"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/submission"
	apperrors "github.com/Adithya-Monish-Kumar-K/Boolean-Search/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/pkg/metrics"
)

type Options struct {
	Workers            int
	SkipInvalidQueries bool
}

// Summary reports what a run processed.
type Summary struct {
	Queries        int
	InvalidQueries int
	Terms          int
	Documents      int
	Rows           map[string]int
}

type Pipeline struct {
	opts    Options
	metrics *metrics.Metrics
}

func New(opts Options, m *metrics.Metrics) *Pipeline {
	return &Pipeline{opts: opts, metrics: m}
}

// ParseQueries parses every record, adding the terms of each valid query to
// used. The result is ordered by ascending query id. With skipInvalid, a
// query that fails to parse is kept with its error set; otherwise the first
// syntax error aborts.
func (p *Pipeline) ParseQueries(ctx context.Context, records []ingestion.QueryRecord, used *vocabulary.TermSet) ([]parser.Query, int, error) {
	log := logger.WithComponent(ctx, "query-parser")
	if err := validator.ValidateQueries(records); err != nil {
		return nil, 0, fmt.Errorf("validating queries: %w", err)
	}
	queries := make([]parser.Query, 0, len(records))
	invalid := 0
	for _, rec := range records {
		tree, err := parser.Parse(rec.Text, used)
		if err != nil {
			p.metrics.QueriesParsedTotal.WithLabelValues("syntax_error").Inc()
			log.Error("query rejected",
				"query_id", rec.ID,
				"query", rec.Text,
				"offset", apperrors.Offset(err),
				"error", err,
			)
			if !p.opts.SkipInvalidQueries {
				return nil, 0, fmt.Errorf("parsing query %d: %w", rec.ID, err)
			}
			invalid++
			queries = append(queries, parser.Query{ID: rec.ID, Raw: rec.Text, Err: err})
			continue
		}
		p.metrics.QueriesParsedTotal.WithLabelValues("ok").Inc()
		queries = append(queries, parser.Query{ID: rec.ID, Raw: rec.Text, Tree: tree})
	}
	slices.SortFunc(queries, func(a, b parser.Query) int { return a.ID - b.ID })
	return queries, invalid, nil
}

// Run executes the whole batch and writes every query's rows to sinks in
// ascending query id order.
func (p *Pipeline) Run(ctx context.Context, queriesIn, docsIn io.Reader, sinks submission.Multi) (*Summary, error) {
	log := logger.WithComponent(ctx, "pipeline")
	summary := &Summary{Rows: make(map[string]int)}

	stage := time.Now()
	records, err := ingestion.ReadQueries(queriesIn)
	if err != nil {
		return nil, fmt.Errorf("reading queries: %w", err)
	}
	used := vocabulary.NewTermSet()
	queries, invalid, err := p.ParseQueries(ctx, records, used)
	if err != nil {
		return nil, err
	}
	summary.Queries = len(queries)
	summary.InvalidQueries = invalid
	p.observeStage(ctx, "parse", stage)
	log.Info("queries parsed", "queries", len(queries), "invalid", invalid, "terms", used.Len())

	vocab := vocabulary.Enumerate(used)
	summary.Terms = vocab.Len()
	p.metrics.VocabularySize.Set(float64(vocab.Len()))

	stage = time.Now()
	store, err := indexer.NewEngine(vocab, p.metrics).Build(ctx, ingestion.NewDocumentReader(docsIn))
	if err != nil {
		return nil, fmt.Errorf("building postings store: %w", err)
	}
	summary.Documents = store.DocumentsNumber()
	p.observeStage(ctx, "index", stage)

	stage = time.Now()
	results, err := executor.New(store, vocab, p.opts.Workers, p.metrics).Execute(ctx, queries)
	if err != nil {
		return nil, fmt.Errorf("evaluating queries: %w", err)
	}
	p.observeStage(ctx, "evaluate", stage)

	stage = time.Now()
	report := func(sink string, rows int) {
		summary.Rows[sink] += rows
		p.metrics.RowsWrittenTotal.WithLabelValues(sink).Add(float64(rows))
	}
	for i, res := range results {
		batch := submission.Batch{
			QueryID:  res.QueryID,
			Query:    queries[i].Raw,
			Postings: res.Postings,
			DocsNum:  store.DocumentsNumber(),
			Skipped:  res.Skipped,
		}
		if err := sinks.WriteEach(ctx, batch, report); err != nil {
			return nil, fmt.Errorf("writing results: %w", err)
		}
	}
	p.observeStage(ctx, "write", stage)
	log.Info("relevance table written",
		"queries", len(results),
		"documents", store.DocumentsNumber(),
		"rows", summary.Rows,
	)
	return summary, nil
}

func (p *Pipeline) observeStage(ctx context.Context, name string, start time.Time) {
	elapsed := time.Since(start)
	p.metrics.StageDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	logger.FromContext(logger.WithStage(ctx, name)).Debug("stage finished", "elapsed", elapsed)
}
