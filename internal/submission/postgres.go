package submission

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/searcher/relevance"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/pkg/postgres"
)

// PostgresSink copies relevance rows into a table keyed by run id, one
// transaction per query.
type PostgresSink struct {
	client *postgres.Client
	table  string
	runID  string
}

// NewPostgresSink creates the table if needed and deletes rows left by an
// earlier attempt of the same run.
func NewPostgresSink(ctx context.Context, client *postgres.Client, table, runID string) (*PostgresSink, error) {
	quoted := pq.QuoteIdentifier(table)
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	run_id    TEXT     NOT NULL,
	object_id BIGINT   NOT NULL,
	query_id  INTEGER  NOT NULL,
	relevance SMALLINT NOT NULL,
	PRIMARY KEY (run_id, object_id)
)`, quoted)
	if _, err := client.DB.ExecContext(ctx, ddl); err != nil {
		return nil, fmt.Errorf("creating relevance table %s: %w", table, err)
	}
	if _, err := client.DB.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE run_id = $1", quoted), runID); err != nil {
		return nil, fmt.Errorf("clearing previous rows for run %s: %w", runID, err)
	}
	return &PostgresSink{client: client, table: table, runID: runID}, nil
}

func (s *PostgresSink) Name() string {
	return "postgres"
}

var relevanceColumns = []string{"run_id", "object_id", "query_id", "relevance"}

func (s *PostgresSink) Write(ctx context.Context, b Batch) (int, error) {
	return s.client.CopyIn(ctx, s.table, relevanceColumns, func(add postgres.RowFunc) error {
		return relevance.Emit(b.QueryID, b.Postings, b.DocsNum, func(r relevance.Row) error {
			return add(s.runID, r.ObjectID, b.QueryID, r.Relevance)
		})
	})
}

// Close leaves the client open; it is owned by the caller.
func (s *PostgresSink) Close() error {
	return nil
}
