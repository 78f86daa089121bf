package interp

import (
	"fmt"

	"github.com/shadowCow/nettopo/ast"
)

// ExecutionError wraps a topology.RuntimeError (or any other failure
// surfaced while executing a statement) with the source location of
// the statement that triggered it.
type ExecutionError struct {
	Line, Col int
	Err       error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", e.Line, e.Col, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

func wrapErr(pos ast.Position, err error) error {
	if err == nil {
		return nil
	}
	return &ExecutionError{Line: pos.Line, Col: pos.Col, Err: err}
}
