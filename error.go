package avrx

import "github.com/pkg/errors"

// RuntimeErr marks a programming error, e.g. a nil callback handed to an
// observer registry. It is raised with panic, never returned to consumers.
type RuntimeErr struct {
	err error
}

func RuntimeError(v interface{}) error {
	if err, ok := v.(error); ok {
		return RuntimeErr{err}
	}
	return RuntimeErr{errors.Errorf("runtime-error: %v", v)}
}

func (e RuntimeErr) Error() string {
	return e.err.Error()
}

func (e RuntimeErr) Unwrap() error {
	return e.err
}

// Cause lets errors.Cause see through the wrapper.
func (e RuntimeErr) Cause() error {
	return e.err
}

// IsRuntimeError reports whether a recovered panic value is a RuntimeErr.
func IsRuntimeError(v interface{}) bool {
	err, ok := v.(error)
	if !ok {
		return false
	}
	var rt RuntimeErr
	return errors.As(err, &rt)
}
