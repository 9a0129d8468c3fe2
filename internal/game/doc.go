// Package game implements the Hexatron turn transition.
//
// The main type is Engine, which owns the board and both players' state for
// a single match and advances it one simultaneous turn at a time.
//
// # Basic Usage
//
//	e, err := game.NewEngine(game.Config{Size: 13, MaxTurns: 200, Rand: rng})
//	// ask agents for a delta each
//	res, err := e.Step([2]game.Action{{Delta: 0}, {Delta: -1}})
//	if res.Outcome.Terminal() {
//	    // Player1Wins, Player2Wins, Draw or TurnLimit
//	}
//
// # Turn Resolution
//
// Both candidate cells are computed from the same pre-turn board, legality
// is checked per player, and only then are survivors moved. Two players
// entering the same cell both crash, which makes the turn a draw whatever
// the seat order.
//
// # Deterministic Testing
//
// Start positions are drawn from Config.Rand unless Config.Starts pins them:
//
//	starts := [2]game.Start{
//	    {Position: hex.Cell{Col: 0, Row: 4}, Orientation: hex.NorthEast},
//	    {Position: hex.Cell{Col: 4, Row: 0}, Orientation: hex.SouthWest},
//	}
//	e, err := game.NewEngine(game.Config{Size: 5, Starts: &starts})
package game
