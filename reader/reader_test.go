package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

func TestReadTypeInfoFromAssembly(t *testing.T) {
	m := ir.NewModule()
	g := m.NewGlobalDef(TypeInfoSymbol, constant.NewCharArray(append([]byte(`{"functions":{}}`), 0)))
	g.Immutable = true
	fn := m.NewFunc("main", types.I32)
	fn.NewBlock("entry").NewRet(constant.NewInt(types.I32, 0))

	path := filepath.Join(t.TempDir(), "out.ll")
	if err := os.WriteFile(path, []byte(m.String()), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := ReadTypeInfo(path)
	if err != nil {
		t.Fatal(err)
	}
	if data != `{"functions":{}}` {
		t.Fatalf("got %q", data)
	}
}

func TestTypeInfoMissing(t *testing.T) {
	if _, err := TypeInfoFromModule(ir.NewModule()); err == nil {
		t.Fatal("expected an error for a module without type info")
	}
}
