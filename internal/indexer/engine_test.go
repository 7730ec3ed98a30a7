package indexer

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/indexer/vocabulary"
	apperrors "github.com/Adithya-Monish-Kumar-K/Boolean-Search/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/pkg/metrics"
)

type sliceSource struct {
	docs []index.Document
	err  error
}

func (s *sliceSource) Next() (index.Document, error) {
	if len(s.docs) == 0 {
		if s.err != nil {
			return index.Document{}, s.err
		}
		return index.Document{}, io.EOF
	}
	d := s.docs[0]
	s.docs = s.docs[1:]
	return d, nil
}

func TestEngineBuild(t *testing.T) {
	v := vocabulary.Enumerate(vocabulary.NewTermSet("cat", "dog"))
	src := &sliceSource{docs: []index.Document{
		{ID: 1, Title: "cat"},
		{ID: 2, Title: "cat", Body: "dog"},
	}}
	store, err := NewEngine(v, metrics.NewUnregistered()).Build(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, 2, store.DocumentsNumber())
	require.Equal(t, 3, store.TotalPostings())
}

func TestEngineBuildPropagatesReadError(t *testing.T) {
	v := vocabulary.Enumerate(vocabulary.NewTermSet("cat"))
	src := &sliceSource{
		docs: []index.Document{{ID: 1, Title: "cat"}},
		err:  apperrors.New(apperrors.ErrMalformedRecord, "line 2"),
	}
	_, err := NewEngine(v, metrics.NewUnregistered()).Build(context.Background(), src)
	require.ErrorIs(t, err, apperrors.ErrMalformedRecord)
	require.ErrorContains(t, err, "reading document 2")
}

func TestEngineBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	v := vocabulary.Enumerate(vocabulary.NewTermSet("cat"))
	_, err := NewEngine(v, metrics.NewUnregistered()).Build(ctx, &sliceSource{})
	require.True(t, errors.Is(err, context.Canceled))
}
