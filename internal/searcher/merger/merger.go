// Package merger implements the linear two-cursor merges used to combine
// postings lists. Both inputs must be sorted ascending and duplicate-free;
// the output keeps that property.
package merger

import (
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/indexer/index"
)

// Intersect returns the documents present in both x and y.
func Intersect(x, y index.PostingList) index.PostingList {
	result := make(index.PostingList, 0, min(len(x), len(y)))
	i, j := 0, 0
	for i < len(x) && j < len(y) {
		switch {
		case x[i] < y[j]:
			i++
		case x[i] > y[j]:
			j++
		default:
			result = append(result, x[i])
			i++
			j++
		}
	}
	return result
}

// Union returns the documents present in x, y or both.
func Union(x, y index.PostingList) index.PostingList {
	result := make(index.PostingList, 0, len(x)+len(y))
	i, j := 0, 0
	for i < len(x) && j < len(y) {
		switch {
		case x[i] < y[j]:
			result = append(result, x[i])
			i++
		case x[i] > y[j]:
			result = append(result, y[j])
			j++
		default:
			result = append(result, x[i])
			i++
			j++
		}
	}
	result = append(result, x[i:]...)
	result = append(result, y[j:]...)
	return result
}
