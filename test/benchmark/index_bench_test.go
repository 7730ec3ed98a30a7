// Package benchmark contains Go benchmarks for postings store construction,
// query parsing, merge evaluation and relevance resolution.
package benchmark

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/indexer/vocabulary"
)

var words = []string{
	"distributed", "search", "analytics", "platform", "indexing", "query",
	"processing", "ranking", "caching", "sharding", "postings", "merge",
}

func corpus(numDocs int, seed int64) []index.Document {
	r := rand.New(rand.NewSource(seed))
	docs := make([]index.Document, numDocs)
	for i := range docs {
		var title, body strings.Builder
		for j := 0; j < 3; j++ {
			title.WriteString(words[r.Intn(len(words))])
			title.WriteByte(' ')
		}
		for j := 0; j < 40; j++ {
			body.WriteString(words[r.Intn(len(words))])
			body.WriteByte(' ')
		}
		docs[i] = index.Document{ID: i + 1, Title: title.String(), Body: body.String()}
	}
	return docs
}

// BenchmarkBuild measures one-pass store construction at several corpus
// sizes, with half of the words in the vocabulary.
func BenchmarkBuild(b *testing.B) {
	vocab := vocabulary.Enumerate(vocabulary.NewTermSet(words[:len(words)/2]...))
	for _, numDocs := range []int{1000, 10000} {
		docs := corpus(numDocs, 1)
		b.Run(fmt.Sprintf("docs_%d", numDocs), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := index.Build(docs, vocab); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
