package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// StdinArg is the argument that selects standard input.
const StdinArg = "-"

// ErrInputTooLarge reports a non-seekable input that exceeds the buffer limit.
var ErrInputTooLarge = errors.New("input exceeds buffer limit")

// Input is a seekable source opened from a command-line argument.
type Input struct {
	io.ReadSeeker
	// Name is the path, or "stdin".
	Name   string
	closer io.Closer
}

// Close releases the underlying file, if any.
func (in *Input) Close() error {
	if in == nil || in.closer == nil {
		return nil
	}
	return in.closer.Close()
}

// OpenArg opens arg as a file, or buffers stdin when arg is StdinArg.
func OpenArg(arg string, stdin io.Reader, limit int64) (*Input, error) {
	if arg == StdinArg {
		buffered, err := Buffer(stdin, limit)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return &Input{ReadSeeker: buffered, Name: "stdin"}, nil
	}
	file, err := Open(arg)
	if err != nil {
		return nil, err
	}
	return &Input{ReadSeeker: file, Name: arg, closer: file}, nil
}

// Open opens a regular file for repeated sequential reads.
func Open(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat source: %w", err)
	}
	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("open source: %s is a directory", path)
	}
	adviseSequential(file)
	return file, nil
}

// Buffer reads r fully into memory. Inputs longer than limit bytes fail with
// ErrInputTooLarge; a non-positive limit disables the bound.
func Buffer(r io.Reader, limit int64) (*bytes.Reader, error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}
	if limit <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w (%d bytes)", ErrInputTooLarge, limit)
	}
	return bytes.NewReader(data), nil
}
