package game

import "github.com/lox/hexatron/internal/hex"

// Observe projects the current state for the player in seat. The result
// shares no memory with the engine.
func (e *Engine) Observe(seat int) Observation {
	return Project(e.board, e.players, e.turn, seat)
}

// Project builds the observation for seat from a board and both player
// states, putting seat first.
func Project(board *hex.Board, players [2]PlayerState, turn, seat int) Observation {
	size := board.Size()
	self, opponent := hex.Wall(seat), hex.Wall(1-seat)

	grid := make([][][Channels]uint8, size)
	for row := range grid {
		grid[row] = make([][Channels]uint8, size)
	}
	board.Cells(func(c hex.Cell, occ hex.Occupancy) {
		switch occ {
		case self:
			grid[c.Row][c.Col][ChannelSelf] = 1
		case opponent:
			grid[c.Row][c.Col][ChannelOpponent] = 1
		case hex.OutOfBounds:
			grid[c.Row][c.Col][ChannelOutOfBounds] = 1
		}
	})

	me, them := players[seat], players[1-seat]
	return Observation{
		Turn:         turn,
		Size:         size,
		Board:        grid,
		Positions:    [2]Position{PositionOf(me.Position), PositionOf(them.Position)},
		Orientations: [2]int{int(me.Orientation), int(them.Orientation)},
	}
}
