//go:build cgo

package reader

import "github.com/coreos/pkg/dlopen"

import "C"

func readSharedObject(from string) (string, error) {
	handle, err := dlopen.GetHandle([]string{from})
	if err != nil {
		return "", err
	}
	defer handle.Close()

	sym, err := handle.GetSymbolPointer(TypeInfoSymbol)
	if err != nil {
		return "", err
	}

	str := C.GoString((*C.char)(sym))
	return str, nil
}
