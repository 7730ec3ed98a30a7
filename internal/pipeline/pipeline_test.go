package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/indexer/vocabulary"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/ingestion"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/submission"
	apperrors "github.com/Adithya-Monish-Kumar-K/Boolean-Search/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/pkg/metrics"
)

func run(t *testing.T, opts Options, queries, docs string) (string, *Summary, error) {
	t.Helper()
	var buf bytes.Buffer
	csvSink, err := submission.NewCSVSink(&buf)
	require.NoError(t, err)
	sinks := submission.Multi{csvSink}
	summary, err := New(opts, metrics.NewUnregistered()).Run(context.Background(),
		strings.NewReader(queries), strings.NewReader(docs), sinks)
	require.NoError(t, sinks.Close())
	return buf.String(), summary, err
}

func TestRunTwoDocumentsTwoQueries(t *testing.T) {
	out, summary, err := run(t, Options{Workers: 1},
		"1\tcat\n2\tdog\n",
		"1\tcat\t\n2\tcat\tdog\n",
	)
	require.NoError(t, err)
	require.Equal(t, "ObjectId,Relevance\n1,1\n2,1\n3,0\n4,1\n", out)
	require.Equal(t, 2, summary.Queries)
	require.Equal(t, 2, summary.Terms)
	require.Equal(t, 2, summary.Documents)
	require.Equal(t, map[string]int{"csv": 4}, summary.Rows)
}

func TestRunBooleanQueries(t *testing.T) {
	docs := "1\ta\tx\n" +
		"2\ta b\t\n" +
		"3\ta\tc\n" +
		"4\tc\t\n" +
		"5\tb\tc d\n"
	queries := "2\ta (b | c)\n" +
		"1\ta | b\n" +
		"3\tb c\n"
	for _, workers := range []int{1, 3} {
		out, _, err := run(t, Options{Workers: workers}, queries, docs)
		require.NoError(t, err)
		// query 1: a|b = {1,2,3,5}; query 2: a(b|c) = {2,3}; query 3: b c = {5}
		want := "ObjectId,Relevance\n" +
			"1,1\n2,1\n3,1\n4,0\n5,1\n" +
			"6,0\n7,1\n8,1\n9,0\n10,0\n" +
			"11,0\n12,0\n13,0\n14,0\n15,1\n"
		require.Equal(t, want, out)
	}
}

func TestRunAbortsOnSyntaxError(t *testing.T) {
	_, _, err := run(t, Options{Workers: 1}, "1\tcat\n2\t(dog\n", "1\tcat\t\n")
	require.ErrorIs(t, err, apperrors.ErrSyntax)
	require.ErrorContains(t, err, "query 2")
}

func TestRunSkipsInvalidQueries(t *testing.T) {
	out, summary, err := run(t, Options{Workers: 2, SkipInvalidQueries: true},
		"1\tcat)\n2\tdog\n", "1\tcat\t\n2\tdog\t\n")
	require.NoError(t, err)
	require.Equal(t, 1, summary.InvalidQueries)
	require.Equal(t, 1, summary.Terms)
	require.Equal(t, "ObjectId,Relevance\n1,0\n2,0\n3,0\n4,1\n", out)
}

func TestRunRejectsDuplicateQueryIDs(t *testing.T) {
	_, _, err := run(t, Options{Workers: 1}, "1\tcat\n1\tdog\n", "1\tcat\t\n")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestRunMalformedDocuments(t *testing.T) {
	_, _, err := run(t, Options{Workers: 1}, "1\tcat\n", "x\tcat\t\n")
	require.ErrorIs(t, err, apperrors.ErrMalformedRecord)
}

func TestParseQueriesSortsByID(t *testing.T) {
	p := New(Options{}, metrics.NewUnregistered())
	used := vocabulary.NewTermSet()
	queries, invalid, err := p.ParseQueries(context.Background(), []ingestion.QueryRecord{
		{ID: 3, Text: "c", Line: 1},
		{ID: 1, Text: "a b", Line: 2},
		{ID: 2, Text: "b", Line: 3},
	}, used)
	require.NoError(t, err)
	require.Zero(t, invalid)
	require.Equal(t, []int{1, 2, 3}, []int{queries[0].ID, queries[1].ID, queries[2].ID})
	require.Equal(t, "(a AND b)", queries[0].Tree.String())
	require.Equal(t, []string{"a", "b", "c"}, used.Terms())
}
