package compiler

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/pontaoski/cts/analysis"
	"github.com/pontaoski/cts/ast"
	"github.com/pontaoski/cts/errors"
)

func stageOf(t *testing.T, err error) errors.StageError {
	t.Helper()
	var se errors.StageError
	if !stderrors.As(err, &se) {
		t.Fatalf("%v (%T) is not a StageError", err, err)
	}
	return se
}

func returnedConstant(t *testing.T, res *Result) int64 {
	t.Helper()
	funcs := res.Generator.Module().Funcs
	if len(funcs) != 1 {
		t.Fatalf("module has %d functions", len(funcs))
	}
	ret := funcs[0].Blocks[0].Term.(*ir.TermRet)
	c, ok := ret.X.(*constant.Int)
	if !ok {
		t.Fatalf("return value is %T, not a constant", ret.X)
	}
	return c.X.Int64()
}

func TestScenarioReturnLiteral(t *testing.T) {
	res, err := Compile("fn main() { return 42; }", Options{Filename: "main.cts"})
	if err != nil {
		t.Fatal(err)
	}
	if res.AST.Name != "main" {
		t.Fatalf("root is %s", res.AST.Name)
	}
	ret := res.AST.Body[0].(ast.ReturnStatement)
	if lit := ret.Value.(ast.Literal); lit.Value != "42" {
		t.Fatalf("returns %s", lit.Value)
	}
	if got := returnedConstant(t, res); got != 42 {
		t.Fatalf("returns %d", got)
	}
}

func TestScenarioReturnVariable(t *testing.T) {
	res, err := Compile("fn main() { let x: int = 5; return x; }", Options{})
	if err != nil {
		t.Fatal(err)
	}
	sym, err := res.Symbols.GetSymbol("x", ast.Span{})
	if err != nil || sym.Type != analysis.Int {
		t.Fatalf("x resolved to %v (%v)", sym, err)
	}

	fn := res.Generator.Module().Funcs[0]
	ret := fn.Blocks[0].Term.(*ir.TermRet)
	load, ok := ret.X.(*ir.InstLoad)
	if !ok {
		t.Fatalf("returns %T, want a load", ret.X)
	}
	store := fn.Blocks[0].Insts[1].(*ir.InstStore)
	if store.Dst != load.Src {
		t.Fatal("load does not read the slot x was stored to")
	}
	if c := store.Src.(*constant.Int); c.X.Int64() != 5 {
		t.Fatalf("stored %d", c.X.Int64())
	}
}

func TestScenarioUninferableArithmetic(t *testing.T) {
	_, err := Compile("fn main() { let x = 2 + 3 * 4; return x; }", Options{})
	se := stageOf(t, err)
	if se.Stage != errors.Analysis {
		t.Fatalf("failed in %s", se.Stage)
	}
	if _, ok := se.Cause().(errors.UninferableType); !ok {
		t.Fatalf("cause is %T", se.Cause())
	}
}

func TestScenarioSymbolNotFound(t *testing.T) {
	_, err := Compile("fn main() { let y: int = 1; return z; }", Options{})
	se := stageOf(t, err)
	if se.Stage != errors.Analysis || se.Cause().Error() != "Symbol not found: z" {
		t.Fatalf("got %s", err)
	}
	if err.Error() != "Analysis Error: Symbol not found: z" {
		t.Fatalf("got %q", err)
	}
}

func TestScenarioMissingSemicolon(t *testing.T) {
	_, err := Compile("fn main() { let x: int = 1 let y: int = 2; return x; }", Options{})
	se := stageOf(t, err)
	if se.Stage != errors.Parsing {
		t.Fatalf("failed in %s", se.Stage)
	}
	if !strings.HasPrefix(se.Cause().Error(), "Unexpected token") {
		t.Fatalf("got %s", se.Cause())
	}
}

func TestScenarioNoReturn(t *testing.T) {
	res, err := Compile("fn main() { let x: int = 1; }", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := returnedConstant(t, res); got != 0 {
		t.Fatalf("fallback returns %d", got)
	}
}

func TestCodegenStage(t *testing.T) {
	_, err := Compile("fn main() { return 1; return 2; }", Options{})
	if se := stageOf(t, err); se.Stage != errors.Codegen {
		t.Fatalf("failed in %s", se.Stage)
	}
}

func TestBuildFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.cts")
	out := filepath.Join(dir, "output.ll")

	if err := os.WriteFile(src, []byte("fn main() {\n  let x: int = 6 * 7;\n  return x;\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := BuildFile(src, out, Options{}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "define i32 @main()") || !strings.Contains(string(data), "mul i32 6, 7") {
		t.Fatalf("unexpected module:\n%s", data)
	}

	// a broken build removes the earlier artifact
	if err := os.WriteFile(src, []byte("fn main() { return z; }"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := BuildFile(src, out, Options{}); err == nil {
		t.Fatal("expected an error")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("stale artifact left behind: %v", err)
	}
}

func TestBuildFileMissingSource(t *testing.T) {
	if _, err := BuildFile(filepath.Join(t.TempDir(), "nope.cts"), "out.ll", Options{}); err == nil {
		t.Fatal("expected an error")
	}
}

func TestBuildFiles(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, src := range []string{
		"fn one() { return 1; }",
		"fn two() { let a: int = 2; return a; }",
		"fn three() { }",
	} {
		path := filepath.Join(dir, string(rune('a'+i))+".cts")
		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}

	if err := BuildFiles(context.Background(), paths, Options{}); err != nil {
		t.Fatal(err)
	}
	for _, path := range paths {
		if _, err := os.Stat(OutputFor(path)); err != nil {
			t.Errorf("%s: %s", path, err)
		}
	}

	bad := filepath.Join(dir, "bad.cts")
	if err := os.WriteFile(bad, []byte("fn main() { let x = 1 + 2; }"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := BuildFiles(context.Background(), append(paths, bad), Options{}); err == nil {
		t.Fatal("expected the bad file to fail the build")
	}
}

func TestOutputFor(t *testing.T) {
	if got := OutputFor("dir/main.cts"); got != "dir/main.ll" {
		t.Fatalf("got %s", got)
	}
	if got := OutputFor("noext"); got != "noext.ll" {
		t.Fatalf("got %s", got)
	}
}

func TestOutputIsSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.ll")
	other := filepath.Join(dir, "b.cts")
	for _, path := range []string{src, other} {
		if err := os.WriteFile(path, []byte("fn main() { return 1; }"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	err := BuildFiles(context.Background(), []string{src, other}, Options{})
	if se := stageOf(t, err); se.Stage != errors.Output {
		t.Fatalf("failed in %s", se.Stage)
	}
	if _, err := os.Stat(OutputFor(other)); !os.IsNotExist(err) {
		t.Fatalf("b.ll was built: %v", err)
	}

	_, err = BuildFile(other, other, Options{})
	var clobber errors.OutputIsSource
	if !stderrors.As(err, &clobber) {
		t.Fatalf("got %v", err)
	}

	for _, path := range []string{src, other} {
		data, err := os.ReadFile(path)
		if err != nil || string(data) != "fn main() { return 1; }" {
			t.Fatalf("%s changed: %q %v", path, data, err)
		}
	}
}

func TestScenarioNonASCIIRejected(t *testing.T) {
	for _, src := range []string{
		"fn main() {\r\n let π: int = 3;\r\n return π; }",
		"fn main() {\u00a0return 1; }",
	} {
		_, err := Compile(src, Options{})
		if se := stageOf(t, err); se.Stage != errors.Parsing {
			t.Errorf("%q failed in %s", src, se.Stage)
		}
	}
}
