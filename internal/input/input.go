// Package input acquires the complete input of a run as one byte buffer.
package input

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/jyt/debug"
)

// Input is the buffered or mapped content of a file or of stdin.
type Input struct {
	name   string
	data   []byte
	mapped bool
	f      *os.File
}

// Open reads the input named by path. An empty path or "-" reads stdin to
// its end. A regular file is mapped read-only where the platform allows
// and read into memory otherwise.
func Open(path string, stdin io.Reader) (*Input, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		if debug.Input() {
			debug.Logf("read %d bytes from stdin\n", len(data))
		}
		return &Input{name: "-", data: data}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	in := &Input{name: path, f: f}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if fi.Mode().IsRegular() && fi.Size() > 0 {
		data, err := mmap(f, fi.Size())
		if err == nil {
			in.data = data
			in.mapped = true
			if debug.Input() {
				debug.Logf("mapped %d bytes of %s\n", len(data), path)
			}
			return in, nil
		}
		if debug.Input() {
			debug.Logf("mapping %s: %v, reading instead\n", path, err)
		}
	}
	data, err := io.ReadAll(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	in.data = data
	if debug.Input() {
		debug.Logf("read %d bytes from %s\n", len(data), path)
	}
	return in, nil
}

// Bytes returns the content. It must not be used after Close.
func (in *Input) Bytes() []byte {
	return in.data
}

// Name returns the path the input was opened with, "-" for stdin.
func (in *Input) Name() string {
	return in.name
}

// Mapped reports whether the content is a memory mapping of the file.
func (in *Input) Mapped() bool {
	return in.mapped
}

// Close releases the mapping and the file.
func (in *Input) Close() error {
	var err error
	if in.mapped {
		err = munmap(in.data)
		in.mapped = false
	}
	in.data = nil
	if in.f != nil {
		if cerr := in.f.Close(); err == nil {
			err = cerr
		}
		in.f = nil
	}
	return err
}
