package submission

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/searcher/relevance"
)

// CSVSink writes the "ObjectId,Relevance" submission table.
type CSVSink struct {
	w      *csv.Writer
	closer io.Closer
	record []string
}

// NewCSVSink writes the header to w immediately.
func NewCSVSink(w io.Writer) (*CSVSink, error) {
	s := &CSVSink{w: csv.NewWriter(w), record: make([]string, 2)}
	if err := s.w.Write(relevance.Header); err != nil {
		return nil, fmt.Errorf("writing submission header: %w", err)
	}
	return s, nil
}

// CreateCSVFile creates (or truncates) path and returns a sink writing to it.
func CreateCSVFile(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating submission file: %w", err)
	}
	s, err := NewCSVSink(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	s.closer = f
	return s, nil
}

func (s *CSVSink) Name() string {
	return "csv"
}

func (s *CSVSink) Write(_ context.Context, b Batch) (int, error) {
	rows := 0
	err := relevance.Emit(b.QueryID, b.Postings, b.DocsNum, func(r relevance.Row) error {
		s.record[0] = strconv.Itoa(r.ObjectID)
		s.record[1] = strconv.Itoa(r.Relevance)
		rows++
		return s.w.Write(s.record)
	})
	if err != nil {
		return rows, fmt.Errorf("writing submission rows: %w", err)
	}
	return rows, nil
}

func (s *CSVSink) Close() error {
	s.w.Flush()
	err := s.w.Error()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
