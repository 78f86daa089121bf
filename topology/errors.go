package topology

import "fmt"

// RuntimeError reports a violated topology invariant encountered while
// executing a statement.
type RuntimeError struct {
	Reason string
}

func (e *RuntimeError) Error() string { return e.Reason }

func newRuntimeError(format string, args ...interface{}) error {
	return &RuntimeError{Reason: fmt.Sprintf(format, args...)}
}
