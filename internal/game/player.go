package game

import (
	"fmt"

	"github.com/lox/hexatron/internal/hex"
)

// Status is the per-player result of the latest turn.
type Status int

const (
	Valid Status = iota
	CrashedIntoWall
	CrashedIntoTrail
	CrashedIntoOpponent
	InvalidMove
)

func (s Status) String() string {
	switch s {
	case Valid:
		return "valid"
	case CrashedIntoWall:
		return "crashed-into-wall"
	case CrashedIntoTrail:
		return "crashed-into-trail"
	case CrashedIntoOpponent:
		return "crashed-into-opponent"
	case InvalidMove:
		return "invalid-move"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Crashed reports whether s ends the player's game.
func (s Status) Crashed() bool {
	return s != Valid
}

// PlayerState is a player's mutable state. Only Engine changes it, and it is
// frozen once Alive is false.
type PlayerState struct {
	Position    hex.Cell
	Orientation hex.Orientation
	Alive       bool
	Status      Status
}

// Start pins a player's initial cell and facing.
type Start struct {
	Position    hex.Cell
	Orientation hex.Orientation
}
