// Package vocabulary collects the distinct terms referenced by a batch of
// queries and enumerates them into dense integer ids. The id space is fixed
// before the postings store is built, so the store only allocates lists for
// terms that some query actually uses.
package vocabulary

import (
	"github.com/emirpasic/gods/sets/treeset"
)

// TermSet accumulates distinct terms in sorted order. It is threaded through
// every parse call of a batch; it is not safe for concurrent writers.
type TermSet struct {
	set *treeset.Set
}

func NewTermSet(terms ...string) *TermSet {
	ts := &TermSet{set: treeset.NewWithStringComparator()}
	for _, t := range terms {
		ts.Add(t)
	}
	return ts
}

func (ts *TermSet) Add(term string) {
	ts.set.Add(term)
}

func (ts *TermSet) Len() int {
	return ts.set.Size()
}

// Terms returns the accumulated terms in ascending byte order.
func (ts *TermSet) Terms() []string {
	out := make([]string, 0, ts.set.Size())
	it := ts.set.Iterator()
	for it.Next() {
		out = append(out, it.Value().(string))
	}
	return out
}

// Vocabulary is a read-only bijection between terms and ids in [0, Len()).
type Vocabulary struct {
	ids   map[string]int
	terms []string
}

// Enumerate assigns ids to the terms of ts in ascending order, so the same
// query batch always produces the same ids.
func Enumerate(ts *TermSet) *Vocabulary {
	terms := ts.Terms()
	ids := make(map[string]int, len(terms))
	for id, term := range terms {
		ids[term] = id
	}
	return &Vocabulary{ids: ids, terms: terms}
}

func (v *Vocabulary) ID(term string) (int, bool) {
	id, ok := v.ids[term]
	return id, ok
}

func (v *Vocabulary) Len() int {
	return len(v.terms)
}
