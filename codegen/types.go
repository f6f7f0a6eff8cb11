package codegen

import (
	"github.com/llir/llvm/ir/types"
	"github.com/pontaoski/cts/analysis"
)

type LLVMType struct {
	types.Type
}

var (
	Int  = LLVMType{Type: types.I32}
	Void = LLVMType{Type: types.Void}
)

var typeMap = map[analysis.Type]LLVMType{
	analysis.Int:  Int,
	analysis.Void: Void,
}

// llvmType lowers a resolved symbol type. Anything unmapped is lowered as the
// integer type every function returns.
func llvmType(t analysis.Type) types.Type {
	if kind, ok := typeMap[t]; ok {
		return kind.Type
	}
	return Int.Type
}
