//go:build !cgo

package reader

import "fmt"

func readSharedObject(from string) (string, error) {
	return "", fmt.Errorf("reading %s: shared objects need a cgo build", from)
}
