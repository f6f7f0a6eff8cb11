package errors

import (
	"fmt"
	"strings"

	"github.com/pontaoski/cts/types"
	"github.com/ztrue/tracerr"
)

type Stage int

const (
	Lexing Stage = iota
	Parsing
	Analysis
	Codegen
	Output
)

func (s Stage) String() string {
	data := map[Stage]string{
		Lexing:   "Lexing",
		Parsing:  "Parsing",
		Analysis: "Analysis",
		Codegen:  "Codegen",
		Output:   "Output",
	}
	return data[s]
}

// StageError tags a failure with the pipeline stage that produced it. Err is
// usually a tracerr-wrapped cause.
type StageError struct {
	Stage Stage
	Err   error
}

func (e StageError) Error() string {
	return fmt.Sprintf("%s Error: %s", e.Stage, e.Err)
}

func (e StageError) Unwrap() error {
	return e.Err
}

// Cause returns the diagnostic underneath any stack trace wrapping.
func (e StageError) Cause() error {
	return tracerr.Unwrap(e.Err)
}

// Parsing

type UnexpectedToken struct {
	Got types.Token
}

func (e UnexpectedToken) Error() string {
	return fmt.Sprintf("Unexpected token: %s", e.Got)
}

type Expected struct {
	What string
	Got  types.Token
}

func (e Expected) Error() string {
	return fmt.Sprintf("Expected %s, got: %s", e.What, e.Got)
}

type UnknownStatement struct {
	Got types.Token
}

func (e UnknownStatement) Error() string {
	return fmt.Sprintf("Unknown statement: %s", e.Got)
}

type TrailingInput struct {
	Got types.Token
}

func (e TrailingInput) Error() string {
	return fmt.Sprintf("Unexpected input after function body: %s", e.Got)
}

// Analysis

type SymbolNotFound struct {
	Name     string
	Location types.Span
}

func (e SymbolNotFound) Error() string {
	return fmt.Sprintf("Symbol not found: %s", e.Name)
}

type DuplicateSymbol struct {
	Name     string
	Location types.Span
}

func (e DuplicateSymbol) Error() string {
	return fmt.Sprintf("Symbol already defined: %s", e.Name)
}

type UninferableType struct {
	Name     string
	Location types.Span
}

func (e UninferableType) Error() string {
	return fmt.Sprintf("Unable to infer type for variable: %s", e.Name)
}

type InvalidReturn struct {
	Location types.Span
}

func (e InvalidReturn) Error() string {
	return "Invalid return statement"
}

type UnsupportedType struct {
	Name     string
	Location types.Span
}

func (e UnsupportedType) Error() string {
	return fmt.Sprintf("Unsupported type: %s. %s", e.Name, e.Location)
}

type NotAValue struct {
	Name     string
	Location types.Span
}

func (e NotAValue) Error() string {
	return fmt.Sprintf("Symbol is not a value: %s. %s", e.Name, e.Location)
}

// Codegen

type UnresolvedVariable struct {
	Name     string
	Location types.Span
}

func (e UnresolvedVariable) Error() string {
	return fmt.Sprintf("Unresolved variable: %s. %s", e.Name, e.Location)
}

type InvalidLiteral struct {
	Value    string
	Reason   string
	Location types.Span
}

func (e InvalidLiteral) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("Invalid integer literal: %s. %s", e.Value, e.Location)
	}
	return fmt.Sprintf("Invalid integer literal: %s (%s). %s", e.Value, e.Reason, e.Location)
}

type UnknownOperator struct {
	Op       string
	Location types.Span
}

func (e UnknownOperator) Error() string {
	return fmt.Sprintf("Unknown binary operator: %s. %s", e.Op, e.Location)
}

type UnknownNode struct {
	Node string
}

func (e UnknownNode) Error() string {
	return fmt.Sprintf("Unhandled AST node: %s", e.Node)
}

type UnreachableStatement struct {
	Location types.Span
}

func (e UnreachableStatement) Error() string {
	return fmt.Sprintf("Unreachable statement after return. %s", e.Location)
}

type VerificationFailed struct {
	Function string
	Problems []string
}

func (e VerificationFailed) Error() string {
	return fmt.Sprintf("LLVM function verification failed for: %s: %s", e.Function, strings.Join(e.Problems, "; "))
}

// Output

type OutputIsSource struct {
	Path string
}

func (e OutputIsSource) Error() string {
	return fmt.Sprintf("Refusing to overwrite source file with module: %s", e.Path)
}
