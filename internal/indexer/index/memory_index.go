package index

import (
	"slices"

	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/indexer/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/Boolean-Search/pkg/errors"
)

// Builder scans documents once and accumulates postings for the vocabulary
// terms only. Tokens outside the vocabulary are ignored: the vocabulary is
// derived from the queries, so no other term can ever be looked up.
type Builder struct {
	vocab    TermLookup
	postings []PostingList
	docCount int
}

func NewBuilder(vocab TermLookup) *Builder {
	return &Builder{
		vocab:    vocab,
		postings: make([]PostingList, vocab.Len()),
	}
}

// AddDocument appends doc.ID to the postings of every vocabulary term that
// occurs in the document's title or body.
func (b *Builder) AddDocument(doc Document) error {
	if doc.ID <= 0 {
		return apperrors.Newf(apperrors.ErrInvalidInput, "document id must be positive, got %d", doc.ID)
	}
	for _, token := range tokenizer.Tokenize(doc.Title, doc.Body) {
		id, ok := b.vocab.ID(token)
		if !ok {
			continue
		}
		pl := b.postings[id]
		if n := len(pl); n > 0 && pl[n-1] == doc.ID {
			continue
		}
		b.postings[id] = append(pl, doc.ID)
	}
	b.docCount++
	return nil
}

// Finish sorts and deduplicates every postings list and returns the
// read-only Store. The Builder must not be used afterwards.
func (b *Builder) Finish() *Store {
	total := 0
	for id, pl := range b.postings {
		if !slices.IsSorted(pl) {
			slices.Sort(pl)
		}
		pl = slices.Compact(pl)
		if pl == nil {
			pl = PostingList{}
		}
		b.postings[id] = pl
		total += len(pl)
	}
	s := &Store{
		postings:      b.postings,
		docCount:      b.docCount,
		totalPostings: total,
	}
	b.postings = nil
	return s
}

// Build is a convenience wrapper that indexes docs in order.
func Build(docs []Document, vocab TermLookup) (*Store, error) {
	b := NewBuilder(vocab)
	for _, doc := range docs {
		if err := b.AddDocument(doc); err != nil {
			return nil, err
		}
	}
	return b.Finish(), nil
}

// Store holds one postings list per vocabulary id. It is immutable after
// Finish and safe for concurrent reads.
type Store struct {
	postings      []PostingList
	docCount      int
	totalPostings int
}

// PostingsOf returns the postings list for termID. The returned slice is
// shared with the store and must not be modified.
func (s *Store) PostingsOf(termID int) (PostingList, error) {
	if termID < 0 || termID >= len(s.postings) {
		return nil, apperrors.Newf(apperrors.ErrUnknownTerm,
			"term id %d outside vocabulary range [0, %d)", termID, len(s.postings))
	}
	return s.postings[termID], nil
}

// DocumentsNumber is the number of documents scanned during construction.
func (s *Store) DocumentsNumber() int {
	return s.docCount
}

func (s *Store) Terms() int {
	return len(s.postings)
}

func (s *Store) TotalPostings() int {
	return s.totalPostings
}
