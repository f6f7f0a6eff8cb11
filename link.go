package main

import (
	"os"
	"os/exec"
)

// link hands the module to clang. The generated main returns i32, so the
// C runtime's entry point can call it directly.
func link(module, out string, library bool) error {
	if library {
		out += ".so"
	}

	cmd := exec.Command("clang", "-o", out)
	if library {
		cmd.Args = append(cmd.Args, "-shared", "-fPIC")
	}
	cmd.Args = append(cmd.Args, module)

	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	plog.Debugf("running %v", cmd.Args)
	return cmd.Run()
}
