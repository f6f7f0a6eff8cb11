package codegen

import (
	"encoding/json"

	"github.com/llir/llvm/ir/constant"
	"github.com/pontaoski/cts/analysis"
	"github.com/pontaoski/cts/reader"
)

// TypeInfo describes the functions of a module and the variables each one
// declares. It is embedded as a JSON string in reader.TypeInfoSymbol.
type TypeInfo struct {
	Functions map[string]string            `json:"functions"`
	Variables map[string]map[string]string `json:"variables"`
}

func newTypeInfo() TypeInfo {
	return TypeInfo{
		Functions: map[string]string{},
		Variables: map[string]map[string]string{},
	}
}

func (t TypeInfo) add(fn string, symbols *analysis.SymbolTable) {
	t.Functions[fn] = "fn() " + Int.Type.String()
	vars := map[string]string{}
	if symbols != nil {
		for _, sym := range symbols.Symbols() {
			if sym.Kind == analysis.VariableSymbol {
				vars[sym.Name] = sym.Type.String()
			}
		}
	}
	t.Variables[fn] = vars
}

func (g *Generator) registerTypeInfo() error {
	data, err := json.Marshal(g.typeInfo)
	if err != nil {
		return err
	}

	globals := g.module.Globals[:0]
	for _, glob := range g.module.Globals {
		if glob.Name() != reader.TypeInfoSymbol {
			globals = append(globals, glob)
		}
	}
	g.module.Globals = globals

	glob := g.module.NewGlobalDef(reader.TypeInfoSymbol, constant.NewCharArray(append(data, 0)))
	glob.Immutable = true
	return nil
}

// TypeInfo returns what Generate has recorded so far.
func (g *Generator) TypeInfo() TypeInfo {
	return g.typeInfo
}

func GetTypeInfoFromFile(f string) (t TypeInfo, err error) {
	data, err := reader.ReadTypeInfo(f)
	if err != nil {
		return TypeInfo{}, err
	}

	err = json.Unmarshal([]byte(data), &t)
	return
}
