// Package relevance turns evaluated postings lists into the per (query,
// document) relevance table.
package relevance

import (
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/indexer/index"
)

// Header is the first line of the relevance table.
var Header = []string{"ObjectId", "Relevance"}

// Row is one line of the relevance table.
type Row struct {
	ObjectID  int
	Relevance int
}

// IsRelevant reports whether docID occurs in the sorted postings list.
func IsRelevant(postings index.PostingList, docID int) bool {
	lo, hi := 0, len(postings)-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		switch {
		case postings[mid] == docID:
			return true
		case postings[mid] < docID:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return false
}

// ObjectID numbers the (document, query) pair. Query ids and document ids
// both start at 1.
func ObjectID(docID, queryID, docsNum int) int {
	return docID + (queryID-1)*docsNum
}

// Emit calls fn for documents 1..docsNum of queryID in ascending order and
// stops at the first error.
func Emit(queryID int, postings index.PostingList, docsNum int, fn func(Row) error) error {
	for docID := 1; docID <= docsNum; docID++ {
		row := Row{ObjectID: ObjectID(docID, queryID, docsNum)}
		if IsRelevant(postings, docID) {
			row.Relevance = 1
		}
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}
