// Package config reads and writes the project file created by `cts init`.
package config

import (
	"io/ioutil"
	"os"

	"github.com/pontaoski/cts/codegen"
	"gopkg.in/yaml.v2"
)

// Filename is the project file looked up in the working directory.
const Filename = "CTS Module Information"

type Module struct {
	Package string `yaml:"Package"`
	Source  string `yaml:"Source,omitempty"`
	Output  string `yaml:"Output,omitempty"`
}

// Default is the configuration used when there is no project file.
func Default() Module {
	return Module{Output: codegen.DefaultOutput}
}

// Load reads the project file at path. A missing file is not an error: the
// defaults are returned with found set to false.
func Load(path string) (m Module, found bool, err error) {
	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), false, nil
	}
	if err != nil {
		return Module{}, false, err
	}

	m = Default()
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Module{}, true, err
	}
	if m.Output == "" {
		m.Output = codegen.DefaultOutput
	}
	return m, true, nil
}

func Save(path string, m Module) error {
	out, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, out, 0o644)
}
