// Package compiler runs the whole pipeline: lexing, parsing, semantic
// analysis and IR generation. Every stage stops at its first error, which is
// returned as an errors.StageError.
package compiler

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/cts/analysis"
	"github.com/pontaoski/cts/ast"
	"github.com/pontaoski/cts/codegen"
	"github.com/pontaoski/cts/errors"
	"github.com/pontaoski/cts/lexer"
	"github.com/pontaoski/cts/parser"
	"github.com/pontaoski/cts/types"
	"github.com/ztrue/tracerr"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/cts", "compiler")

type Options struct {
	// Filename is recorded in token positions and as the module source.
	Filename string
	// TypeInfo embeds the symbol table in the module.
	TypeInfo bool
}

// Result holds the output of every stage of a successful compilation.
type Result struct {
	Tokens    []types.Token
	AST       ast.Function
	Symbols   *analysis.SymbolTable
	Generator *codegen.Generator
}

func fail(stage errors.Stage, err error) error {
	return errors.StageError{Stage: stage, Err: tracerr.Wrap(err)}
}

// Compile translates src into an IR module.
func Compile(src string, opts Options) (*Result, error) {
	plog.Debug("Tokenizing file")
	l := lexer.NewLexer(strings.NewReader(src), opts.Filename)
	toks := l.LexToEOF()
	if err := l.Err(); err != nil {
		return nil, fail(errors.Lexing, err)
	}
	if plog.LevelAt(capnslog.DEBUG) {
		for _, tok := range toks {
			plog.Debug(tok.String())
		}
	}

	fn, err := parser.NewParser(lexer.FromTokens(toks)).Parse()
	if err != nil {
		return nil, fail(errors.Parsing, err)
	}
	if plog.LevelAt(capnslog.DEBUG) {
		plog.Debugf("AST:\n%s", ast.String(fn))
		plog.Tracef("%s", repr.String(fn, repr.Indent("  ")))
	}

	symbols, err := analysis.Analyze(fn)
	if err != nil {
		return nil, fail(errors.Analysis, err)
	}
	plog.Debug("Semantic analysis completed")

	gen := codegen.NewGenerator(codegen.Settings{
		ModuleName: opts.Filename,
		TypeInfo:   opts.TypeInfo,
	})
	if _, err := gen.Generate(fn, symbols); err != nil {
		return nil, fail(errors.Codegen, err)
	}
	if err := codegen.VerifyModule(gen.Module()); err != nil {
		return nil, fail(errors.Codegen, err)
	}
	plog.Debug("LLVM IR generated")

	return &Result{
		Tokens:    toks,
		AST:       fn,
		Symbols:   symbols,
		Generator: gen,
	}, nil
}

// BuildFile compiles the source file at path and writes the module to
// output. When compilation fails any artifact already at output is removed,
// so a failed build never leaves a stale module behind.
func BuildFile(path, output string, opts Options) (*Result, error) {
	if samePath(path, output) {
		return nil, fail(errors.Output, errors.OutputIsSource{Path: path})
	}

	plog.Debugf("Trying to read file: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		plog.Errorf("Failed to open file: %s", path)
		return nil, err
	}

	if opts.Filename == "" {
		opts.Filename = path
	}

	res, err := Compile(string(data), opts)
	if err != nil {
		if rerr := codegen.RemoveStale(output); rerr != nil {
			plog.Warningf("could not remove stale %s: %s", output, rerr)
		}
		return nil, err
	}

	if err := res.Generator.WriteFile(output); err != nil {
		return nil, fail(errors.Output, err)
	}

	return res, nil
}

func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
