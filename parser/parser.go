package parser

import (
	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/cts/ast"
	"github.com/pontaoski/cts/errors"
	"github.com/pontaoski/cts/lexer"
	"github.com/pontaoski/cts/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/cts", "parser")

// TokenSource is a token stream with one token of lookahead, such as
// *lexer.Lexer or *lexer.Tokens.
type TokenSource interface {
	Peek() types.Token
	PeekIs(k types.TokenKind, lit string) bool
	Lex() types.Token
	Err() error
}

var (
	_ TokenSource = (*lexer.Lexer)(nil)
	_ TokenSource = (*lexer.Tokens)(nil)
)

type Parser struct {
	l TokenSource
}

func NewParser(l TokenSource) *Parser {
	return &Parser{l}
}

// Parse reads exactly one function followed by end of input. The first
// grammar violation ends parsing; no partial tree is returned.
func (p *Parser) Parse() (ast.Function, error) {
	fn, err := p.parseFunction()
	if err != nil {
		return ast.Function{}, err
	}

	if tok := p.l.Peek(); tok.Kind != types.EOF {
		return ast.Function{}, errors.TrailingInput{Got: tok}
	}
	if err := p.l.Err(); err != nil {
		return ast.Function{}, err
	}

	return fn, nil
}

func (p *Parser) expect(k types.TokenKind, lit string) (types.Token, error) {
	tok := p.l.Lex()
	if tok.Kind != k || (lit != "" && tok.Literal != lit) {
		return tok, errors.UnexpectedToken{Got: tok}
	}
	return tok, nil
}

func (p *Parser) expectKind(k types.TokenKind, what string) (types.Token, error) {
	tok := p.l.Lex()
	if tok.Kind != k {
		return tok, errors.Expected{What: what, Got: tok}
	}
	return tok, nil
}

func (p *Parser) parseFunction() (fn ast.Function, err error) {
	start, err := p.expect(types.KEYWORD, "fn")
	if err != nil {
		return
	}

	name, err := p.expectKind(types.IDENT, "function name")
	if err != nil {
		return
	}

	for _, sym := range []string{"(", ")", "{"} {
		if _, err = p.expect(types.SYMBOL, sym); err != nil {
			return
		}
	}

	fn.Name = name.Literal
	for !p.l.PeekIs(types.SYMBOL, "}") {
		var stmt ast.Statement
		stmt, err = p.parseStatement()
		if err != nil {
			return
		}
		fn.Body = append(fn.Body, stmt)
	}

	end, err := p.expect(types.SYMBOL, "}")
	if err != nil {
		return
	}
	fn.Pos = types.Span{From: start.Location.From, To: end.Location.To}

	return
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok := p.l.Peek()

	switch {
	case tok.Is(types.KEYWORD, "return"):
		return p.parseReturnStatement()
	case tok.Is(types.KEYWORD, "let"):
		return p.parseVariableDeclaration()
	}

	return nil, errors.UnknownStatement{Got: tok}
}

// parseVariableDeclaration reads `let IDENT (: TYPE)? = Expression ;`.
func (p *Parser) parseVariableDeclaration() (ast.Statement, error) {
	plog.Debug("Parsing variable declaration")
	start, err := p.expect(types.KEYWORD, "let")
	if err != nil {
		return nil, err
	}

	name, err := p.expectKind(types.IDENT, "variable name")
	if err != nil {
		return nil, err
	}

	decl := ast.VariableDeclaration{Name: name.Literal}
	if p.l.PeekIs(types.SYMBOL, ":") {
		p.l.Lex()
		kind, err := p.expectKind(types.KEYWORD, "type")
		if err != nil {
			return nil, err
		}
		decl.Type = &ast.TypeName{Name: kind.Literal, Pos: kind.Location}
	}

	if _, err := p.expect(types.SYMBOL, "="); err != nil {
		return nil, err
	}

	plog.Debug("Parsing expression")
	decl.Value, err = p.parseExpression()
	if err != nil {
		return nil, err
	}

	end, err := p.expect(types.SYMBOL, ";")
	if err != nil {
		return nil, err
	}
	decl.Pos = types.Span{From: start.Location.From, To: end.Location.To}

	return decl, nil
}

// parseReturnStatement reads `return (NUMBER | IDENT) ;`. Return takes a
// single token, never an arithmetic expression.
func (p *Parser) parseReturnStatement() (ast.Statement, error) {
	start, err := p.expect(types.KEYWORD, "return")
	if err != nil {
		return nil, err
	}

	value := p.l.Lex()
	var expr ast.Expression
	switch value.Kind {
	case types.NUMBER:
		expr = ast.Literal{Value: value.Literal, Pos: value.Location}
	case types.IDENT:
		expr = ast.Variable{Name: value.Literal, Pos: value.Location}
	default:
		return nil, errors.Expected{What: "value after return", Got: value}
	}

	end, err := p.expect(types.SYMBOL, ";")
	if err != nil {
		return nil, err
	}

	return ast.ReturnStatement{
		Value: expr,
		Pos:   types.Span{From: start.Location.From, To: end.Location.To},
	}, nil
}
