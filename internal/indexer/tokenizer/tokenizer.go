// Package tokenizer splits document fields into the exact-match tokens looked
// up in the vocabulary. Tokens are whitespace-delimited and compared verbatim:
// no case folding, stemming or stop-word removal is applied, because query
// terms are matched by exact string equality.
package tokenizer

import (
	"strings"
)

// Tokenize returns the whitespace-delimited tokens of every field, in field
// order. Fields are tokenized independently, so the last token of one field
// never merges with the first token of the next.
func Tokenize(fields ...string) []string {
	n := 0
	for _, f := range fields {
		n += len(f) / 6
	}
	tokens := make([]string, 0, n)
	for _, f := range fields {
		tokens = append(tokens, strings.Fields(f)...)
	}
	return tokens
}
