// Package ast holds the syntax tree of a cts program. The statement and
// expression sum types are generated from ast.adt; the rest is written by
// hand.
package ast

//go:generate go run -C ../tool . ../ast/ast.adt ../ast/ast_gen.go ast

import "github.com/pontaoski/cts/types"

type Span = types.Span

// Function is the root of every tree: the grammar has exactly one function.
type Function struct {
	Name string
	Body []Statement
	Pos  Span
}

// TypeName is an explicit annotation such as the int in `let x: int = 1;`.
type TypeName struct {
	Name string
	Pos  Span
}

const (
	Add Operator = iota + 1
	Sub
	Mul
	Div
)

var operators = map[string]Operator{
	"+": Add,
	"-": Sub,
	"*": Mul,
	"/": Div,
}

// LookupOperator maps operator text to an Operator.
func LookupOperator(s string) (Operator, bool) {
	op, ok := operators[s]
	return op, ok
}

func (o Operator) String() string {
	for s, op := range operators {
		if op == o {
			return s
		}
	}
	return "?"
}

// Precedence is 1 for + and -, 2 for * and /, 0 for anything else.
func (o Operator) Precedence() int {
	switch o {
	case Add, Sub:
		return 1
	case Mul, Div:
		return 2
	}
	return 0
}

// PosOf returns the source span of an expression.
func PosOf(e Expression) Span {
	switch v := e.(type) {
	case Literal:
		return v.Pos
	case Variable:
		return v.Pos
	case BinaryOp:
		return v.Pos
	}
	return Span{}
}
