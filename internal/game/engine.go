package game

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/hexatron/internal/hex"
)

// ErrGameOver is returned when stepping a finished game.
var ErrGameOver = errors.New("game is over")

// DefaultSize is used when Config.Size is zero.
const DefaultSize = 13

// maxStartOffset bounds how far from the corners random starts are placed.
const maxStartOffset = 4

// Outcome is the game-level state.
type Outcome int

const (
	InProgress Outcome = iota
	Player1Wins
	Player2Wins
	Draw
	TurnLimit
)

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in-progress"
	case Player1Wins:
		return "player1-wins"
	case Player2Wins:
		return "player2-wins"
	case Draw:
		return "draw"
	case TurnLimit:
		return "turn-limit"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Terminal reports whether no further turns can be played.
func (o Outcome) Terminal() bool {
	return o != InProgress
}

// Winner returns the winning seat, or -1 when there is none.
func (o Outcome) Winner() int {
	switch o {
	case Player1Wins:
		return 0
	case Player2Wins:
		return 1
	default:
		return -1
	}
}

// Swapped returns the outcome seen from the other seat order.
func (o Outcome) Swapped() Outcome {
	switch o {
	case Player1Wins:
		return Player2Wins
	case Player2Wins:
		return Player1Wins
	default:
		return o
	}
}

// Config configures a single game.
type Config struct {
	Size     int
	MaxTurns int // 0 means no turn cap
	Starts   *[2]Start
	Rand     *rand.Rand
}

// Action is a seat's input for one turn. A non-nil Err means the agent's
// answer was rejected and the seat crashes with InvalidMove.
type Action struct {
	Delta int
	Err   error
}

// TurnResult describes one resolved turn.
type TurnResult struct {
	Turn         int
	Attempted    [2]hex.Cell
	Orientations [2]hex.Orientation
	Statuses     [2]Status
	Outcome      Outcome
}

// Engine runs one game. It is not safe for concurrent use.
type Engine struct {
	board    *hex.Board
	players  [2]PlayerState
	turn     int
	maxTurns int
	outcome  Outcome
}

// NewEngine creates a game with both players placed and their start cells
// marked.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Size == 0 {
		cfg.Size = DefaultSize
	}
	if cfg.MaxTurns < 0 {
		return nil, fmt.Errorf("max turns must not be negative, got %d", cfg.MaxTurns)
	}
	board, err := hex.NewBoard(cfg.Size)
	if err != nil {
		return nil, err
	}

	var starts [2]Start
	if cfg.Starts != nil {
		starts = *cfg.Starts
	} else {
		rng := cfg.Rand
		if rng == nil {
			rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
		starts = RandomStarts(cfg.Size, rng)
	}
	if err := validateStarts(board, starts); err != nil {
		return nil, err
	}

	e := &Engine{board: board, maxTurns: cfg.MaxTurns}
	for seat, s := range starts {
		e.players[seat] = PlayerState{Position: s.Position, Orientation: s.Orientation, Alive: true}
		if err := board.MarkOccupied(s.Position, seat); err != nil {
			return nil, fmt.Errorf("placing player %d: %w", seat+1, err)
		}
	}
	return e, nil
}

// RandomStarts places player 1 near the bottom-left corner heading up-right
// and player 2 near the top-right corner heading down-left.
func RandomStarts(size int, rng *rand.Rand) [2]Start {
	spread := min(maxStartOffset, size/2)
	if spread < 1 {
		spread = 1
	}
	v := rng.IntN(spread)
	h := rng.IntN(spread)
	return [2]Start{
		{
			Position:    hex.Cell{Col: h, Row: size - 1 - v},
			Orientation: hex.Orientation(1 + rng.IntN(2)),
		},
		{
			Position:    hex.Cell{Col: size - 1 - h, Row: v},
			Orientation: hex.Orientation(4 + rng.IntN(2)),
		},
	}
}

func validateStarts(board *hex.Board, starts [2]Start) error {
	for seat, s := range starts {
		if !board.IsInBounds(s.Position) {
			return fmt.Errorf("player %d start %s is out of bounds", seat+1, s.Position)
		}
		if !s.Orientation.Valid() {
			return fmt.Errorf("player %d start orientation %d is invalid", seat+1, s.Orientation)
		}
	}
	if starts[0].Position == starts[1].Position {
		return fmt.Errorf("players share start cell %s", starts[0].Position)
	}
	return nil
}

// Step resolves one simultaneous turn.
func (e *Engine) Step(actions [2]Action) (TurnResult, error) {
	if e.outcome.Terminal() {
		return TurnResult{}, ErrGameOver
	}

	res := TurnResult{Turn: e.turn}

	// Everything up to the collision check reads the pre-turn board only.
	for seat := range e.players {
		p := e.players[seat]
		res.Orientations[seat] = p.Orientation.Turn(actions[seat].Delta)
		res.Attempted[seat] = e.board.Neighbor(p.Position, res.Orientations[seat])
		res.Statuses[seat] = e.legality(res.Attempted[seat], actions[seat])
	}

	if !res.Statuses[0].Crashed() && !res.Statuses[1].Crashed() &&
		res.Attempted[0] == res.Attempted[1] {
		res.Statuses[0] = CrashedIntoOpponent
		res.Statuses[1] = CrashedIntoOpponent
	}

	for seat := range e.players {
		p := &e.players[seat]
		if res.Statuses[seat].Crashed() {
			p.Alive = false
			p.Status = res.Statuses[seat]
			continue
		}
		p.Position = res.Attempted[seat]
		p.Orientation = res.Orientations[seat]
		if err := e.board.MarkOccupied(p.Position, seat); err != nil {
			return res, fmt.Errorf("turn %d player %d: %w", e.turn, seat+1, err)
		}
	}

	e.turn++
	e.outcome = e.resolve()
	res.Outcome = e.outcome
	return res, nil
}

func (e *Engine) legality(candidate hex.Cell, action Action) Status {
	if action.Err != nil {
		return InvalidMove
	}
	if !e.board.IsInBounds(candidate) {
		return CrashedIntoWall
	}
	if !e.board.IsFree(candidate) {
		return CrashedIntoTrail
	}
	return Valid
}

func (e *Engine) resolve() Outcome {
	crashed1, crashed2 := !e.players[0].Alive, !e.players[1].Alive
	switch {
	case crashed1 && crashed2:
		return Draw
	case crashed1:
		return Player2Wins
	case crashed2:
		return Player1Wins
	case e.maxTurns > 0 && e.turn >= e.maxTurns:
		return TurnLimit
	default:
		return InProgress
	}
}

// Outcome returns the current game state.
func (e *Engine) Outcome() Outcome {
	return e.outcome
}

// Turn returns the number of turns played so far.
func (e *Engine) Turn() int {
	return e.turn
}

// Size returns the grid size.
func (e *Engine) Size() int {
	return e.board.Size()
}

// Player returns a copy of the state of seat.
func (e *Engine) Player(seat int) PlayerState {
	return e.players[seat]
}

// Players returns a copy of both player states.
func (e *Engine) Players() [2]PlayerState {
	return e.players
}

// Board returns a copy of the board.
func (e *Engine) Board() *hex.Board {
	return e.board.Clone()
}
