package executor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/searcher/merger"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/searcher/parser"
	apperrors "github.com/Adithya-Monish-Kumar-K/Boolean-Search/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/pkg/metrics"
)

// PostingsSource resolves a vocabulary id to its postings list.
type PostingsSource interface {
	PostingsOf(termID int) (index.PostingList, error)
}

// TermLookup resolves a term to its vocabulary id.
type TermLookup interface {
	ID(term string) (int, bool)
}

// Evaluate resolves expr against the store. Leaves return the store's own
// slice; internal nodes allocate fresh lists, so the store is never written.
func Evaluate(expr parser.Expr, store PostingsSource, vocab TermLookup) (index.PostingList, error) {
	switch n := expr.(type) {
	case *parser.Var:
		id, ok := vocab.ID(n.Term)
		if !ok {
			return nil, apperrors.Newf(apperrors.ErrUnknownTerm, "term %q was not enumerated before indexing", n.Term)
		}
		return store.PostingsOf(id)
	case *parser.BinaryOp:
		left, err := Evaluate(n.Left, store, vocab)
		if err != nil {
			return nil, err
		}
		right, err := Evaluate(n.Right, store, vocab)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case parser.OpAnd:
			return merger.Intersect(left, right), nil
		case parser.OpOr:
			return merger.Union(left, right), nil
		default:
			return nil, apperrors.Newf(apperrors.ErrInternal, "unknown operator %d", n.Op)
		}
	default:
		return nil, apperrors.Newf(apperrors.ErrInternal, "unknown expression node %T", expr)
	}
}

// Result is the evaluated postings list of one query.
type Result struct {
	QueryID  int
	Postings index.PostingList
	Skipped  bool
}

type Executor struct {
	store   PostingsSource
	vocab   TermLookup
	workers int
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func New(store PostingsSource, vocab TermLookup, workers int, m *metrics.Metrics) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{
		store:   store,
		vocab:   vocab,
		workers: workers,
		metrics: m,
		logger:  slog.Default().With("component", "query-executor"),
	}
}

// Execute evaluates every query and returns the results in the order of
// queries. Queries are independent, so up to workers of them run at once.
// Queries carrying a parse error yield an empty, skipped result.
func (e *Executor) Execute(ctx context.Context, queries []parser.Query) ([]Result, error) {
	results := make([]Result, len(queries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, q := range queries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if q.Err != nil || q.Tree == nil {
				results[i] = Result{QueryID: q.ID, Postings: index.PostingList{}, Skipped: true}
				return nil
			}
			start := time.Now()
			postings, err := Evaluate(q.Tree, e.store, e.vocab)
			if err != nil {
				return fmt.Errorf("evaluating query %d: %w", q.ID, err)
			}
			e.metrics.EvaluationLatency.Observe(time.Since(start).Seconds())
			e.metrics.ResultHits.Observe(float64(len(postings)))
			e.logger.Debug("query evaluated",
				"query_id", q.ID,
				"query", q.Raw,
				"hits", len(postings),
			)
			results[i] = Result{QueryID: q.ID, Postings: postings}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
