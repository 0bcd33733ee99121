package core

import (
	"errors"
	"fmt"
)

// InputError reports that the input file could not be opened, read or parsed.
// It aborts the run before any validation.
type InputError struct {
	Path string // Input path as given
	Err  error  // Underlying cause
}

func (e *InputError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// NewInputError wraps err as an InputError for path.
func NewInputError(path string, err error) error {
	if err == nil {
		return nil
	}
	return &InputError{Path: path, Err: err}
}

// InternalError reports any failure that is not an input problem, such as an
// export that cannot be written.
type InternalError struct {
	Op  string // What was being done, e.g. "export csv"
	Err error
}

func (e *InternalError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

// NewInternalError wraps err as an InternalError for op.
func NewInternalError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &InternalError{Op: op, Err: err}
}

// IsInputError reports whether err is, or wraps, an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
