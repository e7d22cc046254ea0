// src/models/errors.go
package models

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat marks a field that could not be converted to the required type.
	ErrFormat = errors.New("format error")
	// ErrNotFound marks an input path that does not exist or cannot be read.
	ErrNotFound = errors.New("input not found")
	// ErrUnknownShape is returned for a shape with no row constructor.
	ErrUnknownShape = errors.New("unknown shape")
	// ErrInputTooLarge is returned when an input exceeds the configured size limit.
	ErrInputTooLarge = errors.New("input too large")
	// ErrNotText is returned when an input does not look like a text file.
	ErrNotText = errors.New("input is not text")
)

// FormatError describes a line of input that could not be parsed.
type FormatError struct {
	Line  int    // 1-based line (or CSV record) number
	Text  string // offending raw input, as read
	Field string // field that failed, if known
	Err   error  // underlying conversion failure
}

func (e *FormatError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("line %d: invalid %s: %v", e.Line, e.Field, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }
