package indexer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/pkg/metrics"
)

// progressEvery is how many documents pass between progress log lines.
const progressEvery = 100_000

// DocumentSource yields documents until it returns io.EOF.
type DocumentSource interface {
	Next() (index.Document, error)
}

type Engine struct {
	vocab   index.TermLookup
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewEngine(vocab index.TermLookup, m *metrics.Metrics) *Engine {
	return &Engine{
		vocab:   vocab,
		metrics: m,
		logger:  slog.Default().With("component", "indexer"),
	}
}

// Build scans src once and returns the finished postings store.
func (e *Engine) Build(ctx context.Context, src DocumentSource) (*index.Store, error) {
	b := index.NewBuilder(e.vocab)
	docs := 0
	for {
		if docs%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("indexing interrupted after %d documents: %w", docs, err)
			}
		}
		doc, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading document %d: %w", docs+1, err)
		}
		if err := b.AddDocument(doc); err != nil {
			return nil, fmt.Errorf("indexing document %d: %w", doc.ID, err)
		}
		docs++
		e.metrics.DocsIndexedTotal.Inc()
		if docs%progressEvery == 0 {
			e.logger.Info("indexing progress", "documents", docs)
		}
	}
	store := b.Finish()
	e.metrics.PostingsTotal.Set(float64(store.TotalPostings()))
	e.logger.Info("postings store built",
		"documents", store.DocumentsNumber(),
		"terms", store.Terms(),
		"postings", store.TotalPostings(),
	)
	return store, nil
}
