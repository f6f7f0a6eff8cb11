package lexer

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/cts/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/cts", "lexer")

var keywords = map[string]bool{
	"fn":     true,
	"let":    true,
	"return": true,
	"int":    true,
}

var symbols = map[rune]bool{
	'=': true,
	'+': true,
	'-': true,
	'*': true,
	'/': true,
	'(': true,
	')': true,
	'{': true,
	'}': true,
	',': true,
	':': true,
	';': true,
}

type Lexer struct {
	pos    types.Position
	reader *bufio.Reader
	peeked *types.Token
	err    error

	// set when the last read was a byte that is not valid UTF-8
	rawByte bool
}

func NewLexer(reader io.Reader, filename string) *Lexer {
	return &Lexer{
		pos:    types.Position{Line: 1, Column: 0, Filename: filename},
		reader: bufio.NewReader(reader),
	}
}

// Tokenize lexes the whole of src. It never fails: characters outside the
// language come back as UNKNOWN tokens.
func Tokenize(src string) []types.Token {
	l := NewLexer(strings.NewReader(src), "")
	return l.LexToEOF()
}

// Err returns the first read error other than io.EOF.
func (l *Lexer) Err() error {
	return l.err
}

func (l *Lexer) newline() {
	l.pos.Line++
	l.pos.Column = 0
}

func (l *Lexer) read() (rune, bool) {
	r, size, err := l.reader.ReadRune()
	if err != nil {
		if err != io.EOF && l.err == nil {
			l.err = err
		}
		return 0, false
	}
	l.pos.Column++
	l.rawByte = r == utf8.RuneError && size == 1
	return r, true
}

func (l *Lexer) backup() {
	if err := l.reader.UnreadRune(); err != nil {
		panic(err)
	}

	l.pos.Column--
}

func (l *Lexer) peekByte() byte {
	byt, err := l.reader.Peek(1)
	if err != nil || len(byt) == 0 {
		return 0
	}
	return byt[0]
}

func (l *Lexer) kinded(t types.TokenKind, lit string) types.Token {
	return types.Token{
		Kind:     t,
		Literal:  lit,
		Location: types.SingleCharSpan(l.pos),
	}
}

// Identifiers, numbers and whitespace are ASCII only; any other rune lexes as UNKNOWN.

func firstChar(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func otherChar(r rune) bool {
	return firstChar(r) || digit(r)
}

func digit(r rune) bool {
	return r >= '0' && r <= '9'
}

func space(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// lexRun reads the longest run of runes matching ok, starting with first,
// which has already been consumed.
func (l *Lexer) lexRun(first rune, ok func(rune) bool) (types.Span, string) {
	var lit strings.Builder
	lit.WriteRune(first)
	from := l.pos
	to := l.pos

	for {
		r, more := l.read()
		if !more {
			return types.Span{From: from, To: to}, lit.String()
		}
		if !ok(r) {
			l.backup()
			return types.Span{From: from, To: to}, lit.String()
		}
		lit.WriteRune(r)
		to = l.pos
	}
}

func (l *Lexer) skipComment() {
	for {
		r, more := l.read()
		if !more {
			return
		}
		if r == '\n' {
			l.newline()
			return
		}
	}
}

func (l *Lexer) Peek() types.Token {
	if l.peeked != nil {
		return *l.peeked
	}

	tok := l.Lex()
	l.peeked = &tok

	return tok
}

func (l *Lexer) PeekIs(k types.TokenKind, lit string) bool {
	return l.Peek().Is(k, lit)
}

func (l *Lexer) Lex() types.Token {
	if l.peeked != nil {
		defer func() { l.peeked = nil }()
		return *l.peeked
	}

	for {
		r, more := l.read()
		if !more {
			return l.kinded(types.EOF, "")
		}

		switch {
		case r == '/' && l.peekByte() == '/':
			l.skipComment()
			continue
		case r == '\n':
			l.newline()
			continue
		case space(r):
			continue
		case symbols[r]:
			return l.kinded(types.SYMBOL, string(r))
		case firstChar(r):
			span, lit := l.lexRun(r, otherChar)
			if keywords[lit] {
				return types.Token{Kind: types.KEYWORD, Literal: lit, Location: span}
			}
			return types.Token{Kind: types.IDENT, Literal: lit, Location: span}
		case digit(r):
			span, lit := l.lexRun(r, digit)
			return types.Token{Kind: types.NUMBER, Literal: lit, Location: span}
		}

		lit := string(r)
		if l.rawByte {
			// keep the offending byte itself so the token still spans the input
			if err := l.reader.UnreadRune(); err != nil {
				panic(err)
			}
			b, _ := l.reader.ReadByte()
			lit = string([]byte{b})
		}
		plog.Debugf("unknown character %q at %s", lit, l.pos)
		return l.kinded(types.UNKNOWN, lit)
	}
}

func (l *Lexer) LexToEOF() (ret []types.Token) {
	t := l.Lex()
	for t.Kind != types.EOF {
		ret = append(ret, t)
		t = l.Lex()
	}
	return
}
