package game

import (
	"errors"
	"fmt"
)

var (
	// ErrNothingToObserve means no object is currently observable. It is the
	// expected steady state once every reachable object has been observed.
	ErrNothingToObserve = errors.New("game: nothing to observe")

	// ErrPrecondition is wrapped by every PreconditionError.
	ErrPrecondition = errors.New("game: precondition failed")

	// ErrNotImplemented is returned by hooks that have no selection rule yet.
	ErrNotImplemented = errors.New("game: not implemented")
)

// PreconditionError reports a mutation rejected because the state did not
// allow it. It signals a sequencing bug in the caller.
type PreconditionError struct {
	Op     string // Operation that was rejected
	Key    string // Object key involved
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("game: %s %q: %s", e.Op, e.Key, e.Reason)
}

// Unwrap lets errors.Is match ErrPrecondition.
func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}
