package notices

import (
	"errors"
	"fmt"
)

// ErrEmptyExpression is returned when a filter expression is blank.
var ErrEmptyExpression = errors.New("empty notice filter expression")

// CompilationError indicates a hide expression could not be compiled
type CompilationError struct {
	Expression string
	Err        error
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("compile notice filter '%s': %v", e.Expression, e.Err)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}
