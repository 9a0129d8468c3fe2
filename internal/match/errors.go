package match

import (
	"errors"
	"fmt"
)

// ErrMoveTimeout is wrapped by InvalidMoveError when an agent exceeds its
// per-move budget.
var ErrMoveTimeout = errors.New("move timed out")

// ErrOutOfRange is wrapped by InvalidMoveError for deltas outside [-2, 2].
var ErrOutOfRange = errors.New("delta out of range")

// InvalidMoveError is an agent answer the driver refuses to play. It
// crashes that seat only.
type InvalidMoveError struct {
	Seat  int
	Turn  int
	Value int
	Err   error
}

func (e *InvalidMoveError) Error() string {
	if errors.Is(e.Err, ErrOutOfRange) {
		return fmt.Sprintf("player %d turn %d: delta %d out of range", e.Seat+1, e.Turn, e.Value)
	}
	return fmt.Sprintf("player %d turn %d: invalid move: %v", e.Seat+1, e.Turn, e.Err)
}

func (e *InvalidMoveError) Unwrap() error {
	return e.Err
}
