package split

import (
	"errors"
	"fmt"
)

// Split errors.
var (
	// ErrInvalidArgument indicates a request that cannot be executed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPathDerivation indicates the source name cannot produce output names.
	ErrPathDerivation = errors.New("cannot derive output path")

	// ErrIO indicates a failure opening, reading, creating or writing a file.
	ErrIO = errors.New("io failure")
)

// IOError describes a failed file operation.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// NewIOError creates an IOError for the given operation and path.
func NewIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}
