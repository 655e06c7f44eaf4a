// Package iojson holds utilities for reading and writing JSON from a
// command line interface perspective.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Error is the JSON shape written to stderr when a command fails in JSON
// output mode.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

func fallbackError(msg string, jsonErr error) string {
	msgBytes, _ := json.Marshal(msg)
	errBytes, _ := json.Marshal(jsonErr.Error())
	return fmt.Sprintf(`{"message":%s,"data":{"json_error":%s}}`, msgBytes, errBytes)
}

// MarshalError renders msg and data as an Error. If data cannot be
// marshalled a hand-built object carrying the marshal error is returned.
func MarshalError(msg string, data map[string]any) string {
	bits, err := json.Marshal(Error{Message: msg, Data: data})
	if err != nil {
		return fallbackError(msg, err)
	}
	return string(bits)
}

// WriteError writes an Error line to ew.
func WriteError(ew io.Writer, msg string, data map[string]any) error {
	_, err := fmt.Fprintln(ew, MarshalError(msg, data))
	return err
}

// WriteLine writes obj as a single compact JSON line.
func WriteLine(w io.Writer, obj any) error {
	bits, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal json line: %w", err)
	}
	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// WriteLines writes every item of items as its own JSON line.
func WriteLines[T any](w io.Writer, items []T) error {
	for _, it := range items {
		if err := WriteLine(w, it); err != nil {
			return err
		}
	}
	return nil
}

// Write pretty-prints obj to stdout.
func Write(obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return WriteError(os.Stderr, "error marshaling output", map[string]any{"json_error": err.Error()})
	}
	_, err = fmt.Fprintln(os.Stdout, string(bits))
	return err
}
