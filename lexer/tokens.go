package lexer

import "github.com/pontaoski/cts/types"

// Tokens replays an already lexed sequence with the same Peek/Lex interface
// as Lexer. After the last token it keeps returning EOF.
type Tokens struct {
	toks []types.Token
	idx  int
	eof  types.Token
}

func FromTokens(toks []types.Token) *Tokens {
	end := types.Position{Line: 1}
	if len(toks) > 0 {
		end = toks[len(toks)-1].Location.To
	}
	return &Tokens{
		toks: toks,
		eof:  types.Token{Kind: types.EOF, Location: types.SingleCharSpan(end)},
	}
}

func (t *Tokens) Peek() types.Token {
	if t.idx < len(t.toks) {
		return t.toks[t.idx]
	}
	return t.eof
}

func (t *Tokens) PeekIs(k types.TokenKind, lit string) bool {
	return t.Peek().Is(k, lit)
}

func (t *Tokens) Lex() types.Token {
	tok := t.Peek()
	if t.idx < len(t.toks) {
		t.idx++
	}
	return tok
}

func (t *Tokens) Err() error {
	return nil
}
