//go:build !unix && !windows

package mmap

import (
	"io"
	"os"
)

// osMap reads the file into heap memory. The nil unmap func marks the result
// as non-direct, so Release leaves it to the garbage collector.
func osMap(f *os.File, size int) ([]byte, func([]byte) error, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, nil, err
	}
	return data, nil, nil
}

func osMapAnon(size int) ([]byte, func([]byte) error, error) {
	return make([]byte, size), nil, nil
}

func osProbe() (Capability, error) {
	return CapabilityUnavailable, ErrUnsupported
}

func osAdvise([]byte, AccessPattern) error {
	return nil
}
