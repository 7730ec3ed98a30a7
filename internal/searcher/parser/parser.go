// Package parser turns boolean query strings into expression trees.
//
// Grammar, lowest to highest precedence:
//
//	OrExpr  := AndExpr ( '|' AndExpr )*
//	AndExpr := Atom ( ' ' Atom )*
//	Atom    := '(' OrExpr ')' | Term
//	Term    := one or more letters or digits
//
// A run of spaces between two atoms is a single AND. Spaces next to '|', '(',
// ')' or at either end of the query carry no meaning.
package parser

import (
	"unicode"
	"unicode/utf8"

	apperrors "github.com/Adithya-Monish-Kumar-K/Boolean-Search/pkg/errors"
)

// TermRecorder receives every term of a successfully parsed query.
type TermRecorder interface {
	Add(term string)
}

// Parse parses query into an expression tree. On success every leaf term is
// added to used; on failure used is left untouched and the returned error
// wraps apperrors.ErrSyntax with the byte offset of the problem.
func Parse(query string, used TermRecorder) (Expr, error) {
	if query == "" {
		return nil, apperrors.Syntaxf(0, "empty query")
	}
	p := &parser{input: query}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		r, _ := utf8.DecodeRuneInString(p.input[p.pos:])
		return nil, apperrors.Syntaxf(p.pos, "unexpected %q", r)
	}
	for _, term := range p.terms {
		used.Add(term)
	}
	return expr, nil
}

type parser struct {
	input string
	pos   int
	terms []string
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) skipSpaces() {
	for !p.eof() && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) parseOr() (Expr, error) {
	p.skipSpaces()
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for !p.eof() && p.input[p.pos] == '|' {
		p.pos++
		p.skipSpaces()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Op: OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		start := p.pos
		p.skipSpaces()
		if p.pos == start || p.eof() {
			return left, nil
		}
		if c := p.input[p.pos]; c == '|' || c == ')' {
			return left, nil
		}
		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Op: OpAnd, Left: left, Right: right}
	}
}

func (p *parser) parseAtom() (Expr, error) {
	if p.eof() {
		return nil, apperrors.Syntaxf(p.pos, "unexpected end of query, expected term or '('")
	}
	if p.input[p.pos] != '(' {
		return p.parseTerm()
	}
	open := p.pos
	p.pos++
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.eof() {
		return nil, apperrors.Syntaxf(p.pos, "missing ')' for '(' at offset %d", open)
	}
	if p.input[p.pos] != ')' {
		r, _ := utf8.DecodeRuneInString(p.input[p.pos:])
		return nil, apperrors.Syntaxf(p.pos, "expected ')', found %q", r)
	}
	p.pos++
	return expr, nil
}

func (p *parser) parseTerm() (Expr, error) {
	start := p.pos
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.input[p.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		p.pos += size
	}
	if p.pos == start {
		r, _ := utf8.DecodeRuneInString(p.input[p.pos:])
		return nil, apperrors.Syntaxf(start, "expected term, found %q", r)
	}
	term := p.input[start:p.pos]
	p.terms = append(p.terms, term)
	return &Var{Term: term}, nil
}
