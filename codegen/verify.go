package codegen

import (
	"fmt"

	"github.com/llir/llvm/asm"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/pontaoski/cts/errors"
)

type verifier struct {
	fn       *ir.Func
	defined  map[ir.Instruction]bool
	problems []string
}

func (v *verifier) fail(format string, args ...interface{}) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

// Verify checks the structural well-formedness of a generated function: every
// block ends in a terminator, operands are defined before use, and operand
// types agree. Blocks are checked in order, which is exact for the single
// linear block the generator emits.
func Verify(fn *ir.Func) error {
	v := &verifier{fn: fn, defined: make(map[ir.Instruction]bool)}

	if len(fn.Blocks) == 0 {
		v.fail("function has no basic blocks")
	}

	for _, block := range fn.Blocks {
		for _, inst := range block.Insts {
			v.instruction(inst)
			v.defined[inst] = true
		}
		if block.Term == nil {
			v.fail("block %s has no terminator", block.Name())
			continue
		}
		v.terminator(block.Term)
	}

	if len(v.problems) == 0 {
		if err := fn.AssignIDs(); err != nil {
			v.fail("%s", err)
		}
	}

	if len(v.problems) != 0 {
		return errors.VerificationFailed{Function: fn.Name(), Problems: v.problems}
	}
	return nil
}

func (v *verifier) use(inst string, op value.Value) {
	if op == nil {
		v.fail("%s has a missing operand", inst)
		return
	}
	if def, ok := op.(ir.Instruction); ok && !v.defined[def] {
		v.fail("%s uses %s before its definition", inst, op.Ident())
	}
}

func pointee(t types.Type) (types.Type, bool) {
	ptr, ok := t.(*types.PointerType)
	if !ok {
		return nil, false
	}
	return ptr.ElemType, true
}

func (v *verifier) binary(name string, x, y value.Value) {
	v.use(name, x)
	v.use(name, y)
	if x == nil || y == nil {
		return
	}
	if _, ok := x.Type().(*types.IntType); !ok {
		v.fail("%s operand has non-integer type %s", name, x.Type())
		return
	}
	if !x.Type().Equal(y.Type()) {
		v.fail("%s operands differ in type: %s and %s", name, x.Type(), y.Type())
	}
}

func (v *verifier) instruction(inst ir.Instruction) {
	switch i := inst.(type) {
	case *ir.InstAlloca:
		if i.ElemType == nil {
			v.fail("alloca without element type")
		}
	case *ir.InstLoad:
		v.use("load", i.Src)
		if i.Src == nil {
			return
		}
		if elem, ok := pointee(i.Src.Type()); !ok || !elem.Equal(i.ElemType) {
			v.fail("load of %s from %s", i.ElemType, i.Src.Type())
		}
	case *ir.InstStore:
		v.use("store", i.Src)
		v.use("store", i.Dst)
		if i.Src == nil || i.Dst == nil {
			return
		}
		if elem, ok := pointee(i.Dst.Type()); !ok || !elem.Equal(i.Src.Type()) {
			v.fail("store of %s into %s", i.Src.Type(), i.Dst.Type())
		}
	case *ir.InstAdd:
		v.binary("add", i.X, i.Y)
	case *ir.InstSub:
		v.binary("sub", i.X, i.Y)
	case *ir.InstMul:
		v.binary("mul", i.X, i.Y)
	case *ir.InstSDiv:
		v.binary("sdiv", i.X, i.Y)
	default:
		v.fail("unexpected instruction %T", inst)
	}
}

func (v *verifier) terminator(term ir.Terminator) {
	ret, ok := term.(*ir.TermRet)
	if !ok {
		v.fail("unexpected terminator %T", term)
		return
	}

	want := v.fn.Sig.RetType
	if types.IsVoid(want) {
		if ret.X != nil {
			v.fail("void function returns a value")
		}
		return
	}
	if ret.X == nil {
		v.fail("return without a value in a function returning %s", want)
		return
	}
	v.use("ret", ret.X)
	if !ret.X.Type().Equal(want) {
		v.fail("return of %s in a function returning %s", ret.X.Type(), want)
	}
}

// VerifyModule re-reads the serialized module with the LLVM assembly parser,
// which rejects anything that is not well-formed IR.
func VerifyModule(m *ir.Module) error {
	if _, err := asm.ParseString(m.SourceFilename, m.String()); err != nil {
		return errors.VerificationFailed{Function: m.SourceFilename, Problems: []string{err.Error()}}
	}
	return nil
}
