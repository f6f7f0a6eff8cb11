// Package reader recovers the embedded type information from a compiled
// module, either LLVM assembly or a shared object.
package reader

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/llir/llvm/asm"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
)

// TypeInfoSymbol is the global holding the JSON type information.
const TypeInfoSymbol = "__cts_types"

func ReadTypeInfo(from string) (string, error) {
	if strings.HasSuffix(from, ".ll") {
		m, err := asm.ParseFile(from)
		if err != nil {
			return "", err
		}
		return TypeInfoFromModule(m)
	}

	return readSharedObject(from)
}

func TypeInfoFromModule(m *ir.Module) (string, error) {
	for _, glob := range m.Globals {
		if glob.Name() != TypeInfoSymbol {
			continue
		}

		arr, ok := glob.Init.(*constant.CharArray)
		if !ok {
			return "", fmt.Errorf("%s is a %T, not a character array", TypeInfoSymbol, glob.Init)
		}
		return string(bytes.TrimRight(arr.X, "\x00")), nil
	}

	return "", fmt.Errorf("module has no %s global", TypeInfoSymbol)
}
