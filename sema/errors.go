package sema

import (
	"fmt"

	"github.com/shadowCow/nettopo/ast"
)

// SemanticError reports a resolution or type failure found while
// analyzing the AST. Analysis is fail-fast: the first SemanticError
// found aborts the pass.
type SemanticError struct {
	Line, Col int
	Reason    string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", e.Line, e.Col, e.Reason)
}

func newSemanticError(pos ast.Position, format string, args ...interface{}) error {
	return &SemanticError{Line: pos.Line, Col: pos.Col, Reason: fmt.Sprintf(format, args...)}
}
