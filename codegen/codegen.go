package codegen

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"
	"github.com/coreos/pkg/capnslog"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/pontaoski/cts/analysis"
	"github.com/pontaoski/cts/ast"
	"github.com/pontaoski/cts/errors"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/cts", "codegen")

const defaultModuleName = "cts_module"

type Settings struct {
	// ModuleName becomes the module's source_filename.
	ModuleName string
	// TypeInfo embeds a JSON description of the generated functions.
	TypeInfo bool
}

// Generator owns one IR module. Each compilation gets its own Generator, so
// any number of them can run side by side.
type Generator struct {
	module   *ir.Module
	settings Settings
	typeInfo TypeInfo
}

func NewGenerator(s Settings) *Generator {
	m := ir.NewModule()
	m.SourceFilename = s.ModuleName
	if m.SourceFilename == "" {
		m.SourceFilename = defaultModuleName
	}

	return &Generator{
		module:   m,
		settings: s,
		typeInfo: newTypeInfo(),
	}
}

func (g *Generator) Module() *ir.Module {
	return g.module
}

// ctx is the state of the function being lowered.
type ctx struct {
	fn      *ir.Func
	block   *ir.Block
	slots   map[string]*ir.InstAlloca
	symbols *analysis.SymbolTable
}

// Generate lowers a validated function into the module. On any error the
// function is removed from the module again.
func (g *Generator) Generate(fn ast.Function, symbols *analysis.SymbolTable) (f *ir.Func, err error) {
	for _, existing := range g.module.Funcs {
		if existing.Name() == fn.Name {
			return nil, errors.DuplicateSymbol{Name: fn.Name, Location: fn.Pos}
		}
	}

	plog.Debugf("Defining function: %s", fn.Name)
	f = g.module.NewFunc(fn.Name, Int.Type)
	defer func() {
		if err != nil {
			g.abandon(f)
			f = nil
		}
	}()

	c := &ctx{
		fn:      f,
		block:   f.NewBlock("entry"),
		slots:   make(map[string]*ir.InstAlloca),
		symbols: symbols,
	}

	for _, stmt := range fn.Body {
		if err = c.statement(stmt); err != nil {
			return
		}
	}

	if c.block.Term == nil {
		c.block.NewRet(constant.NewInt(types.I32, 0))
		plog.Debugf("Added fallback return terminator for function: %s", fn.Name)
	}

	if err = Verify(f); err != nil {
		plog.Errorf("LLVM function verification failed for: %s", fn.Name)
		return
	}
	plog.Debugf("Function verified successfully: %s", fn.Name)

	g.typeInfo.add(fn.Name, symbols)
	if g.settings.TypeInfo {
		if err = g.registerTypeInfo(); err != nil {
			return
		}
	}

	return f, nil
}

func (g *Generator) abandon(f *ir.Func) {
	funcs := g.module.Funcs[:0]
	for _, fn := range g.module.Funcs {
		if fn != f {
			funcs = append(funcs, fn)
		}
	}
	g.module.Funcs = funcs
}

func (c *ctx) statement(s ast.Statement) error {
	if c.block.Term != nil {
		return errors.UnreachableStatement{Location: statementPos(s)}
	}

	switch stmt := s.(type) {
	case ast.VariableDeclaration:
		if stmt.Value == nil {
			return errors.UnknownNode{Node: "VariableDeclaration without initializer"}
		}

		kind := Int.Type
		if c.symbols != nil {
			sym, err := c.symbols.GetSymbol(stmt.Name, stmt.Pos)
			if err != nil {
				return err
			}
			kind = llvmType(sym.Type)
		}

		slot := c.block.NewAlloca(kind)
		if stmt.Name == c.block.Name() {
			slot.SetName(stmt.Name + ".addr")
		} else {
			slot.SetName(stmt.Name)
		}

		val, err := c.expression(stmt.Value)
		if err != nil {
			return err
		}
		c.block.NewStore(val, slot)
		c.slots[stmt.Name] = slot

		return nil
	case ast.ReturnStatement:
		if stmt.Value == nil {
			return errors.UnknownNode{Node: "ReturnStatement without value"}
		}

		val, err := c.expression(stmt.Value)
		if err != nil {
			return err
		}
		c.block.NewRet(val)

		return nil
	}

	return errors.UnknownNode{Node: fmt.Sprintf("%T", s)}
}

func (c *ctx) expression(e ast.Expression) (value.Value, error) {
	switch expr := e.(type) {
	case ast.Literal:
		n, err := parseLiteral(expr)
		if err != nil {
			return nil, err
		}
		return constant.NewInt(types.I32, int64(n)), nil
	case ast.Variable:
		slot, ok := c.slots[expr.Name]
		if !ok {
			return nil, errors.UnresolvedVariable{Name: expr.Name, Location: expr.Pos}
		}
		return c.block.NewLoad(slot.ElemType, slot), nil
	case ast.BinaryOp:
		lhs, err := c.expression(expr.Left)
		if err != nil {
			return nil, err
		}
		rhs, err := c.expression(expr.Right)
		if err != nil {
			return nil, err
		}

		switch expr.Op {
		case ast.Add:
			return c.block.NewAdd(lhs, rhs), nil
		case ast.Sub:
			return c.block.NewSub(lhs, rhs), nil
		case ast.Mul:
			return c.block.NewMul(lhs, rhs), nil
		case ast.Div:
			return c.block.NewSDiv(lhs, rhs), nil
		}
		return nil, errors.UnknownOperator{Op: expr.Op.String(), Location: expr.Pos}
	}

	return nil, errors.UnknownNode{Node: fmt.Sprintf("%T", e)}
}

func parseLiteral(lit ast.Literal) (int32, error) {
	if !isDigits(lit.Value) {
		return 0, errors.InvalidLiteral{Value: lit.Value, Location: lit.Pos}
	}

	u, err := strconv.ParseUint(lit.Value, 10, 64)
	if err != nil {
		return 0, errors.InvalidLiteral{Value: lit.Value, Reason: "out of range", Location: lit.Pos}
	}

	n, err := safecast.Conv[int32](u)
	if err != nil {
		return 0, errors.InvalidLiteral{Value: lit.Value, Reason: "does not fit in i32", Location: lit.Pos}
	}

	return n, nil
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

func statementPos(s ast.Statement) ast.Span {
	switch stmt := s.(type) {
	case ast.VariableDeclaration:
		return stmt.Pos
	case ast.ReturnStatement:
		return stmt.Pos
	}
	return ast.Span{}
}
