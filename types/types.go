package types

import (
	"fmt"
)

type Position struct {
	Line     int
	Column   int
	Filename string
}

type Span struct {
	From Position
	To   Position
}

type TokenKind int

const (
	EOF TokenKind = iota
	UNKNOWN

	KEYWORD
	IDENT
	NUMBER
	SYMBOL
)

func (t TokenKind) String() string {
	data := map[TokenKind]string{
		EOF:     "EOF",
		UNKNOWN: "UNKNOWN",
		KEYWORD: "KEYWORD",
		IDENT:   "IDENTIFIER",
		NUMBER:  "NUMBER",
		SYMBOL:  "SYMBOL",
	}
	return data[t]
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.From, s.To.Line, s.To.Column)
}

func SingleCharSpan(p Position) Span {
	return Span{p, p}
}

type Token struct {
	Kind     TokenKind
	Literal  string
	Location Span
}

// Is reports whether the token has the given kind and literal text.
func (t Token) Is(k TokenKind, lit string) bool {
	return t.Kind == k && t.Literal == lit
}

// String renders the token the way diagnostics quote it, for example
// Token(SYMBOL, ";", 3, 14).
func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %q, %d, %d)", t.Kind, t.Literal, t.Location.From.Line, t.Location.From.Column)
}
