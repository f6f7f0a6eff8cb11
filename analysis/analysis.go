package analysis

import (
	"fmt"

	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/cts/ast"
	"github.com/pontaoski/cts/errors"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/cts", "analysis")

// Analyze validates fn and returns a fresh symbol table holding the function
// and every variable it declares. The tree itself is not modified.
func Analyze(fn ast.Function) (*SymbolTable, error) {
	a := analyzer{symbols: NewSymbolTable()}
	if err := a.function(fn); err != nil {
		return nil, err
	}
	return a.symbols, nil
}

type analyzer struct {
	symbols *SymbolTable
}

func (a *analyzer) function(fn ast.Function) error {
	err := a.symbols.AddSymbol(Symbol{Name: fn.Name, Type: Void, Kind: FunctionSymbol, Location: fn.Pos})
	if err != nil {
		return err
	}

	for _, stmt := range fn.Body {
		if err := a.statement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (a *analyzer) statement(s ast.Statement) error {
	switch stmt := s.(type) {
	case ast.VariableDeclaration:
		return a.declaration(stmt)
	case ast.ReturnStatement:
		switch stmt.Value.(type) {
		case ast.Literal, ast.Variable:
		default:
			return errors.InvalidReturn{Location: stmt.Pos}
		}
		return a.resolve(stmt.Value)
	}

	return errors.UnknownNode{Node: fmt.Sprintf("%T", s)}
}

func (a *analyzer) declaration(decl ast.VariableDeclaration) error {
	if decl.Value == nil {
		return errors.UninferableType{Name: decl.Name, Location: decl.Pos}
	}

	if err := a.resolve(decl.Value); err != nil {
		return err
	}

	var kind Type
	if decl.Type != nil {
		t, ok := ParseType(decl.Type.Name)
		if !ok {
			return errors.UnsupportedType{Name: decl.Type.Name, Location: decl.Type.Pos}
		}
		kind = t
	} else {
		t, err := a.infer(decl)
		if err != nil {
			return err
		}
		kind = t
	}

	plog.Debugf("declared %s: %s", decl.Name, kind)
	return a.symbols.AddSymbol(Symbol{Name: decl.Name, Type: kind, Kind: VariableSymbol, Location: decl.Pos})
}

// infer only understands a bare integer literal or a copy of another
// variable. Arithmetic initializers need an explicit annotation.
func (a *analyzer) infer(decl ast.VariableDeclaration) (Type, error) {
	switch v := decl.Value.(type) {
	case ast.Literal:
		if isDigits(v.Value) {
			return Int, nil
		}
	case ast.Variable:
		sym, err := a.symbols.GetSymbol(v.Name, v.Pos)
		if err != nil {
			return Void, err
		}
		return sym.Type, nil
	}

	return Void, errors.UninferableType{Name: decl.Name, Location: decl.Pos}
}

// resolve checks that every variable referenced by e names a declared value.
func (a *analyzer) resolve(e ast.Expression) error {
	switch v := e.(type) {
	case ast.Literal:
		return nil
	case ast.Variable:
		sym, err := a.symbols.GetSymbol(v.Name, v.Pos)
		if err != nil {
			return err
		}
		if sym.Kind != VariableSymbol {
			return errors.NotAValue{Name: v.Name, Location: v.Pos}
		}
		return nil
	case ast.BinaryOp:
		if err := a.resolve(v.Left); err != nil {
			return err
		}
		return a.resolve(v.Right)
	}

	return errors.UnknownNode{Node: fmt.Sprintf("%T", e)}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
