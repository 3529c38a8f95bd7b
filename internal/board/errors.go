package board

import (
	"errors"
	"fmt"
)

// ErrInvalidMove indicates a requested move fails the legality checks.
// The position is never modified when it is returned.
var ErrInvalidMove = errors.New("invalid move")

// InvariantError reports a broken rules-engine contract, such as an
// overflowing move list or an unmake without a matching make. It is raised
// with panic because continuing would mean silently incorrect play.
type InvariantError struct {
	Op     string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("board invariant violated in %s: %s", e.Op, e.Detail)
}

func invariant(op, format string, args ...any) {
	panic(&InvariantError{Op: op, Detail: fmt.Sprintf(format, args...)})
}
