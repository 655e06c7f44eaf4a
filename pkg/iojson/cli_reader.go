package iojson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ErrNoInput is returned when neither a file nor piped stdin is available.
var ErrNoInput = errors.New("no input provided (stdin is a terminal); pass a file or pipe JSON input")

// FileReader decodes a JSON document of type T from the --file flag or
// from piped stdin.
type FileReader[T any] struct {
	fileFlagValue string

	stdin      io.Reader
	isTerminal func() bool
}

// NewFileReader creates a reader over os.Stdin.
func NewFileReader[T any]() *FileReader[T] {
	return &FileReader[T]{
		stdin:      os.Stdin,
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
	}
}

// WithStdin replaces stdin, for tests and for callers that already hold
// the input.
func (fr *FileReader[T]) WithStdin(r io.Reader) *FileReader[T] {
	fr.stdin = r
	fr.isTerminal = func() bool { return false }
	return fr
}

// Flag returns the --file flag bound to this reader.
func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file (reads from stdin if not provided)",
		Destination: &fr.fileFlagValue,
	}
}

// HasFile reports whether --file was given.
func (fr *FileReader[T]) HasFile() bool {
	return fr.fileFlagValue != ""
}

// Piped reports whether stdin carries data rather than a terminal.
func (fr *FileReader[T]) Piped() bool {
	return fr.stdin != nil && !fr.isTerminal()
}

// Read decodes the input.
func (fr *FileReader[T]) Read() (T, error) {
	var input T

	reader := fr.stdin
	if fr.fileFlagValue != "" {
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	} else if !fr.Piped() {
		return input, ErrNoInput
	}

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}
