package index

// PostingList is a strictly increasing sequence of document ids that contain
// a term.
type PostingList []int

// Document is one record of the collection. Title and Body are
// whitespace-tokenized free text.
type Document struct {
	ID    int
	Title string
	Body  string
}

// TermLookup resolves a term to its dense vocabulary id.
type TermLookup interface {
	ID(term string) (int, bool)
	Len() int
}
