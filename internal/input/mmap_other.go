//go:build !unix

package input

import (
	"errors"
	"os"
)

var errNoMmap = errors.New("memory mapping not supported")

func mmap(*os.File, int64) ([]byte, error) {
	return nil, errNoMmap
}

func munmap([]byte) error {
	return nil
}
