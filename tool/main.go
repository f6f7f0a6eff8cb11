// Command adtGen turns a file of sum type declarations into Go marker
// interfaces, one struct or named type per case:
//
//	type Expression = | Literal of `struct { Value string }` | Variable of Ident;
//
// Usage: adtGen <in.adt> <out.go> <package>
package main

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

type TypeDecls struct {
	Declarations []*Declaration `@@*`
}

type TCase struct {
	Name string `@Ident "of"`
	Kind string `(@Ident | @String | @RawString)`
}

type Declaration struct {
	Name  string   `"type" @Ident "="`
	Plain *string  `(  (@Ident | @String | @RawString)`
	Many  *[]TCase ` | ("|" (@@))*)`
	I     struct{} `";"`
}

func (t *TypeDecls) IsSumType(name string) bool {
	for _, decls := range t.Declarations {
		if decls.Name == name && decls.Many != nil {
			return true
		}
	}
	return false
}

func NewParser() *participle.Parser {
	return participle.MustBuild(&TypeDecls{})
}

func GenerateDecls(pkgname, source string, t *TypeDecls) ([]byte, error) {
	f := NewFile(pkgname)
	f.HeaderComment(fmt.Sprintf("Code generated by adtGen from %s. DO NOT EDIT.", source))

	for _, decl := range t.Declarations {

		if decl.Plain != nil {
			f.Type().Id(decl.Name).Id(*decl.Plain)
		} else if decl.Many != nil {
			f.Type().Id(decl.Name).Interface(
				Id("is_" + decl.Name).Params(),
			)

			for _, it := range *decl.Many {
				if t.IsSumType(it.Kind) {
					f.Type().Id(it.Name).Struct(Id(it.Kind))
				} else {
					f.Type().Id(it.Name).Id(it.Kind)
				}

				f.Func().Params(Id("v").Id(it.Name)).Id("is_" + decl.Name).Params().Block()
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: adtGen <in.adt> <out.go> <package>")
		os.Exit(2)
	}
	in := os.Args[1]
	out := os.Args[2]
	pkgname := os.Args[3]

	inData, err := ioutil.ReadFile(in)
	if err != nil {
		panic(err)
	}

	ast := TypeDecls{}
	err = NewParser().ParseBytes(inData, &ast)
	if err != nil {
		panic(err)
	}

	src, err := GenerateDecls(pkgname, filepath.Base(in), &ast)
	if err != nil {
		panic(err)
	}

	err = ioutil.WriteFile(out, src, 0o644)
	if err != nil {
		panic(err)
	}
}
