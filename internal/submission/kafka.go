package submission

import (
	"context"
	"strconv"

	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/searcher/relevance"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/pkg/kafka"
)

// Publisher is the subset of *kafka.Producer the sink needs.
type Publisher interface {
	Publish(ctx context.Context, events ...kafka.Event) error
	Close() error
}

// ResultEvent summarises one query: the object ids of its relevant rows.
// Every other object id of the query is implicitly not relevant.
type ResultEvent struct {
	RunID             string `json:"run_id"`
	QueryID           int    `json:"query_id"`
	Query             string `json:"query"`
	DocsNum           int    `json:"docs_num"`
	Hits              int    `json:"hits"`
	Skipped           bool   `json:"skipped,omitempty"`
	RelevantObjectIDs []int  `json:"relevant_object_ids"`
}

// KafkaSink publishes one ResultEvent per query keyed by query id. Write
// reports one record per published event.
type KafkaSink struct {
	pub   Publisher
	runID string
}

func NewKafkaSink(pub Publisher, runID string) *KafkaSink {
	return &KafkaSink{pub: pub, runID: runID}
}

func (s *KafkaSink) Name() string {
	return "kafka"
}

func (s *KafkaSink) Write(ctx context.Context, b Batch) (int, error) {
	ids := make([]int, 0, len(b.Postings))
	for _, docID := range b.Postings {
		if docID >= 1 && docID <= b.DocsNum {
			ids = append(ids, relevance.ObjectID(docID, b.QueryID, b.DocsNum))
		}
	}
	ev := ResultEvent{
		RunID:             s.runID,
		QueryID:           b.QueryID,
		Query:             b.Query,
		DocsNum:           b.DocsNum,
		Hits:              len(ids),
		Skipped:           b.Skipped,
		RelevantObjectIDs: ids,
	}
	if err := s.pub.Publish(ctx, kafka.Event{
		Key:     strconv.Itoa(b.QueryID),
		Value:   ev,
		Headers: map[string]string{"run_id": s.runID},
	}); err != nil {
		return 0, err
	}
	return 1, nil
}

func (s *KafkaSink) Close() error {
	return s.pub.Close()
}
