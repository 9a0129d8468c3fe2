package game

import (
	"context"

	"github.com/lox/hexatron/internal/hex"
)

const (
	// MinDelta is the sharpest left turn an agent may request.
	MinDelta = -2
	// MaxDelta is the sharpest right turn an agent may request.
	MaxDelta = 2
)

// Channels is the depth of the observation board.
const Channels = 3

// Observation board channels.
const (
	ChannelSelf = iota
	ChannelOpponent
	ChannelOutOfBounds
)

// Position is a cell as agents see it: x is the column, y the row.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Cell converts p back to a board coordinate.
func (p Position) Cell() hex.Cell {
	return hex.Cell{Col: p.X, Row: p.Y}
}

// PositionOf converts a board coordinate to the agent representation.
func PositionOf(c hex.Cell) Position {
	return Position{X: c.Col, Y: c.Row}
}

// Observation is the read-only view handed to an agent. Index 0 of
// Positions and Orientations is always the observing player.
type Observation struct {
	Turn         int                 `json:"turn"`
	Size         int                 `json:"size"`
	Board        [][][Channels]uint8 `json:"board"`
	Positions    [2]Position         `json:"positions"`
	Orientations [2]int              `json:"orientations"`
}

// Free reports whether the cell at col,row is playable and unoccupied in
// the observation.
func (o Observation) Free(col, row int) bool {
	if row < 0 || row >= len(o.Board) || col < 0 || col >= len(o.Board[row]) {
		return false
	}
	ch := o.Board[row][col]
	return ch[ChannelSelf] == 0 && ch[ChannelOpponent] == 0 && ch[ChannelOutOfBounds] == 0
}

// Agent represents anything that can steer a player. Agents receive an
// immutable observation and return a delta in [MinDelta, MaxDelta].
type Agent interface {
	// GenerateMove returns the orientation delta for this turn.
	GenerateMove(ctx context.Context, obs Observation) (int, error)
}

// AgentFunc adapts a plain function to Agent.
type AgentFunc func(ctx context.Context, obs Observation) (int, error)

func (f AgentFunc) GenerateMove(ctx context.Context, obs Observation) (int, error) {
	return f(ctx, obs)
}
