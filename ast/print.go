package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes the tree one node per line, children indented two spaces
// under their parent:
//
//	Function: main
//	  ReturnStatement
//	    Literal: 42
func Fprint(w io.Writer, fn Function) error {
	p := printer{w: w}
	p.line(0, "Function", fn.Name)
	for _, stmt := range fn.Body {
		p.statement(1, stmt)
	}
	return p.err
}

// String is Fprint into a string.
func String(fn Function) string {
	var b strings.Builder
	_ = Fprint(&b, fn)
	return b.String()
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(depth int, kind, value string) {
	if p.err != nil {
		return
	}
	text := kind
	if value != "" {
		text += ": " + value
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", depth), text)
}

func (p *printer) statement(depth int, s Statement) {
	switch stmt := s.(type) {
	case VariableDeclaration:
		p.line(depth, "VariableDeclaration", stmt.Name)
		if stmt.Type != nil {
			p.line(depth+1, "Type", stmt.Type.Name)
		}
		p.expression(depth+1, stmt.Value)
	case ReturnStatement:
		p.line(depth, "ReturnStatement", "")
		p.expression(depth+1, stmt.Value)
	default:
		p.line(depth, fmt.Sprintf("%T", s), "")
	}
}

func (p *printer) expression(depth int, e Expression) {
	switch expr := e.(type) {
	case Literal:
		p.line(depth, "Literal", expr.Value)
	case Variable:
		p.line(depth, "Variable", expr.Name)
	case BinaryOp:
		p.line(depth, "BinaryOp", expr.Op.String())
		p.expression(depth+1, expr.Left)
		p.expression(depth+1, expr.Right)
	case nil:
	default:
		p.line(depth, fmt.Sprintf("%T", e), "")
	}
}
