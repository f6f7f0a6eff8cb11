package parser

import (
	"github.com/pontaoski/cts/ast"
	"github.com/pontaoski/cts/errors"
	"github.com/pontaoski/cts/types"
)

// peekOperator reports the binary operator at the head of the stream, if any.
// Statement terminators and keywords never qualify.
func (p *Parser) peekOperator() (ast.Operator, bool) {
	tok := p.l.Peek()
	if tok.Kind != types.SYMBOL {
		return 0, false
	}
	return ast.LookupOperator(tok.Literal)
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseBinaryOpRHS(1, left)
}

// parseBinaryOpRHS folds operators of at least minPrec into left. The right
// operand is parsed at one above the operator's own precedence, which makes
// every level left-associative.
func (p *Parser) parseBinaryOpRHS(minPrec int, left ast.Expression) (ast.Expression, error) {
	for {
		op, ok := p.peekOperator()
		if !ok || op.Precedence() < minPrec {
			return left, nil
		}
		p.l.Lex()

		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}

		if next, ok := p.peekOperator(); ok && next.Precedence() > op.Precedence() {
			right, err = p.parseBinaryOpRHS(op.Precedence()+1, right)
			if err != nil {
				return nil, err
			}
		}

		left = ast.BinaryOp{
			Op:    op,
			Left:  left,
			Right: right,
			Pos:   types.Span{From: ast.PosOf(left).From, To: ast.PosOf(right).To},
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	if p.l.PeekIs(types.SYMBOL, "(") {
		p.l.Lex()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(types.SYMBOL, ")"); err != nil {
			return nil, err
		}
		return expr, nil
	}

	tok := p.l.Lex()
	switch tok.Kind {
	case types.IDENT:
		return ast.Variable{Name: tok.Literal, Pos: tok.Location}, nil
	case types.NUMBER:
		return ast.Literal{Value: tok.Literal, Pos: tok.Location}, nil
	}

	return nil, errors.Expected{What: "identifier, number, or parenthesis", Got: tok}
}
