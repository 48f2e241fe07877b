package service

import "fmt"

// ValidationError carries the first violated form rule, phrased for the
// user. It is always produced before any database or storage call.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
