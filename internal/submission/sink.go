// Package submission writes the relevance table to one or more sinks: a CSV
// submission file, a PostgreSQL table, or a Kafka topic.
package submission

import (
	"context"
	"errors"
	"fmt"

	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/indexer/index"
)

// Batch is the evaluated result of one query. Sinks receive batches in
// ascending query id order.
type Batch struct {
	QueryID  int
	Query    string
	Postings index.PostingList
	DocsNum  int
	Skipped  bool
}

// Sink persists relevance rows. Write returns the number of records written:
// relevance rows for tabular sinks, events for message sinks.
type Sink interface {
	Name() string
	Write(ctx context.Context, b Batch) (int, error)
	Close() error
}

// Multi writes every batch to all sinks in order.
type Multi []Sink

// WriteEach writes b to every sink and reports rows per sink name.
func (m Multi) WriteEach(ctx context.Context, b Batch, report func(sink string, rows int)) error {
	for _, s := range m {
		n, err := s.Write(ctx, b)
		if err != nil {
			return fmt.Errorf("sink %s, query %d: %w", s.Name(), b.QueryID, err)
		}
		if report != nil {
			report(s.Name(), n)
		}
	}
	return nil
}

// Close closes every sink and joins their errors.
func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing sink %s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}
