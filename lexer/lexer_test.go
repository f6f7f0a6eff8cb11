package lexer

import (
	"strings"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/pontaoski/cts/types"
)

type testToken struct {
	Kind   types.TokenKind
	Lit    string
	Line   int
	Column int
}

func simplify(toks []types.Token) (ret []testToken) {
	for _, t := range toks {
		ret = append(ret, testToken{t.Kind, t.Literal, t.Location.From.Line, t.Location.From.Column})
	}
	return
}

func TestLexer(t *testing.T) {
	got := simplify(Tokenize("fn main() {\n  let x: int = 42;\n  return x;\n}"))
	want := []testToken{
		{types.KEYWORD, "fn", 1, 1},
		{types.IDENT, "main", 1, 4},
		{types.SYMBOL, "(", 1, 8},
		{types.SYMBOL, ")", 1, 9},
		{types.SYMBOL, "{", 1, 11},
		{types.KEYWORD, "let", 2, 3},
		{types.IDENT, "x", 2, 7},
		{types.SYMBOL, ":", 2, 8},
		{types.KEYWORD, "int", 2, 10},
		{types.SYMBOL, "=", 2, 14},
		{types.NUMBER, "42", 2, 16},
		{types.SYMBOL, ";", 2, 18},
		{types.KEYWORD, "return", 3, 3},
		{types.IDENT, "x", 3, 10},
		{types.SYMBOL, ";", 3, 11},
		{types.SYMBOL, "}", 4, 1},
	}
	if repr.String(got) != repr.String(want) {
		t.Fatalf("got %s\nwant %s", repr.String(got, repr.Indent("  ")), repr.String(want, repr.Indent("  ")))
	}
}

func TestLexerClassification(t *testing.T) {
	cases := []struct {
		input string
		want  []testToken
	}{
		{"_a1 b_2", []testToken{{types.IDENT, "_a1", 1, 1}, {types.IDENT, "b_2", 1, 5}}},
		{"letter lets", []testToken{{types.IDENT, "letter", 1, 1}, {types.IDENT, "lets", 1, 8}}},
		{"007x", []testToken{{types.NUMBER, "007", 1, 1}, {types.IDENT, "x", 1, 4}}},
		{"1.5", []testToken{{types.NUMBER, "1", 1, 1}, {types.UNKNOWN, ".", 1, 2}, {types.NUMBER, "5", 1, 3}}},
		{"a/b", []testToken{{types.IDENT, "a", 1, 1}, {types.SYMBOL, "/", 1, 2}, {types.IDENT, "b", 1, 3}}},
		{"$#", []testToken{{types.UNKNOWN, "$", 1, 1}, {types.UNKNOWN, "#", 1, 2}}},
		{"\v\fa\r", []testToken{{types.IDENT, "a", 1, 3}}},
		{"π", []testToken{{types.UNKNOWN, "π", 1, 1}}},
		{"x٣y", []testToken{{types.IDENT, "x", 1, 1}, {types.UNKNOWN, "٣", 1, 2}, {types.IDENT, "y", 1, 3}}},
		{"a\u00a0b", []testToken{{types.IDENT, "a", 1, 1}, {types.UNKNOWN, "\u00a0", 1, 2}, {types.IDENT, "b", 1, 3}}},
		{"a b\u0085c", []testToken{{types.IDENT, "a", 1, 1}, {types.IDENT, "b", 1, 3}, {types.UNKNOWN, "\u0085", 1, 4}, {types.IDENT, "c", 1, 5}}},
		{"été", []testToken{{types.UNKNOWN, "é", 1, 1}, {types.IDENT, "t", 1, 2}, {types.UNKNOWN, "é", 1, 3}}},
		{"=+-*/(){},:;", []testToken{
			{types.SYMBOL, "=", 1, 1}, {types.SYMBOL, "+", 1, 2}, {types.SYMBOL, "-", 1, 3},
			{types.SYMBOL, "*", 1, 4}, {types.SYMBOL, "/", 1, 5}, {types.SYMBOL, "(", 1, 6},
			{types.SYMBOL, ")", 1, 7}, {types.SYMBOL, "{", 1, 8}, {types.SYMBOL, "}", 1, 9},
			{types.SYMBOL, ",", 1, 10}, {types.SYMBOL, ":", 1, 11}, {types.SYMBOL, ";", 1, 12},
		}},
	}
	for _, c := range cases {
		got := simplify(Tokenize(c.input))
		if repr.String(got) != repr.String(c.want) {
			t.Errorf("%q: got %s, want %s", c.input, repr.String(got), repr.String(c.want))
		}
	}
}

func TestLexerComments(t *testing.T) {
	got := simplify(Tokenize("// header\nfn // trailing\n  main"))
	want := []testToken{
		{types.KEYWORD, "fn", 2, 1},
		{types.IDENT, "main", 3, 3},
	}
	if repr.String(got) != repr.String(want) {
		t.Fatalf("got %s, want %s", repr.String(got), repr.String(want))
	}

	if toks := Tokenize("// only a comment"); len(toks) != 0 {
		t.Fatalf("expected no tokens, got %s", repr.String(toks))
	}
}

func TestLexerInvalidUTF8(t *testing.T) {
	got := simplify(Tokenize("a\xffb"))
	want := []testToken{
		{types.IDENT, "a", 1, 1},
		{types.UNKNOWN, "\xff", 1, 2},
		{types.IDENT, "b", 1, 3},
	}
	if repr.String(got) != repr.String(want) {
		t.Fatalf("got %s, want %s", repr.String(got), repr.String(want))
	}
}

func stripCommentsAndSpace(src string) string {
	var out strings.Builder
	for _, line := range strings.SplitAfter(src, "\n") {
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		for _, r := range line {
			if !space(r) {
				out.WriteRune(r)
			}
		}
	}
	return out.String()
}

func TestLexerReconstructsInput(t *testing.T) {
	inputs := []string{
		"fn main() { return 42; }",
		"fn f(){let  a=(1+2)*b/ 4-c;return a;}",
		"let x = 1 // comment ; here\nreturn @x ~ 3;",
		"\t\r\n  weird ü chars € 12ab",
		"",
	}
	for _, input := range inputs {
		var got strings.Builder
		for _, tok := range Tokenize(input) {
			got.WriteString(tok.Literal)
		}
		if want := stripCommentsAndSpace(input); got.String() != want {
			t.Errorf("%q: reconstructed %q, want %q", input, got.String(), want)
		}
	}
}

func TestPeek(t *testing.T) {
	l := NewLexer(strings.NewReader("let x"), "test.cts")

	if !l.PeekIs(types.KEYWORD, "let") {
		t.Fatalf("peek returned %s", l.Peek())
	}
	if tok := l.Lex(); !tok.Is(types.KEYWORD, "let") {
		t.Fatalf("lex after peek returned %s", tok)
	}
	tok := l.Lex()
	if !tok.Is(types.IDENT, "x") {
		t.Fatalf("got %s", tok)
	}
	if tok.Location.From.Filename != "test.cts" {
		t.Fatalf("filename not recorded: %s", tok.Location)
	}
	if tok := l.Lex(); tok.Kind != types.EOF {
		t.Fatalf("expected EOF, got %s", tok)
	}
	if tok := l.Lex(); tok.Kind != types.EOF {
		t.Fatalf("expected EOF to repeat, got %s", tok)
	}
	if l.Err() != nil {
		t.Fatal(l.Err())
	}
}

func TestTokensReplay(t *testing.T) {
	toks := Tokenize("let x")
	s := FromTokens(toks)

	if !s.PeekIs(types.KEYWORD, "let") {
		t.Fatalf("peek returned %s", s.Peek())
	}
	if tok := s.Lex(); !tok.Is(types.KEYWORD, "let") {
		t.Fatalf("got %s", tok)
	}
	if tok := s.Lex(); !tok.Is(types.IDENT, "x") {
		t.Fatalf("got %s", tok)
	}
	eof := s.Lex()
	if eof.Kind != types.EOF || eof.Location.From.Column != 5 {
		t.Fatalf("got %s", eof)
	}
	if s.Lex().Kind != types.EOF {
		t.Fatal("EOF does not repeat")
	}
}
