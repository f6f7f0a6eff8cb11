package analysis

import (
	"github.com/pontaoski/cts/errors"
	"github.com/pontaoski/cts/types"
)

// Type is the resolved type tag of a symbol.
type Type int

const (
	Void Type = iota
	Int
)

func (t Type) String() string {
	switch t {
	case Void:
		return "void"
	case Int:
		return "int"
	}
	return "unknown"
}

// ParseType maps an annotation to a value type. Only int can be written.
func ParseType(name string) (Type, bool) {
	if name == "int" {
		return Int, true
	}
	return Void, false
}

type SymbolKind int

const (
	FunctionSymbol SymbolKind = iota
	VariableSymbol
)

type Symbol struct {
	Name     string
	Type     Type
	Kind     SymbolKind
	Location types.Span
}

// SymbolTable is flat: the language has one function and no nested blocks, so
// there is nothing to shadow. Nested constructs need a scope stack first.
type SymbolTable struct {
	table map[string]Symbol
	order []string
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{table: make(map[string]Symbol)}
}

func (s *SymbolTable) AddSymbol(sym Symbol) error {
	if _, ok := s.table[sym.Name]; ok {
		return errors.DuplicateSymbol{Name: sym.Name, Location: sym.Location}
	}
	s.table[sym.Name] = sym
	s.order = append(s.order, sym.Name)
	return nil
}

func (s *SymbolTable) GetSymbol(name string, at types.Span) (Symbol, error) {
	sym, ok := s.table[name]
	if !ok {
		return Symbol{}, errors.SymbolNotFound{Name: name, Location: at}
	}
	return sym, nil
}

func (s *SymbolTable) Len() int {
	return len(s.table)
}

// Symbols returns every symbol in declaration order.
func (s *SymbolTable) Symbols() []Symbol {
	ret := make([]Symbol, 0, len(s.order))
	for _, name := range s.order {
		ret = append(ret, s.table[name])
	}
	return ret
}
