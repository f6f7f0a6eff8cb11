package codegen

import (
	"os"
	"path/filepath"
)

// DefaultOutput is where the serialized module goes unless told otherwise.
const DefaultOutput = "output.ll"

// WriteFile serializes the whole module to path. The text goes to a temporary
// file in the same directory first, so path never holds a partial module.
func (g *Generator) WriteFile(path string) error {
	plog.Debugf("Printing LLVM IR to file: %s", path)

	tmp, err := os.CreateTemp(filepath.Dir(path), ".cts-*.ll")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(g.module.String()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// RemoveStale deletes an artifact left at path by an earlier compilation.
func RemoveStale(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
