// Package match drives Hexatron games between two agents.
package match

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/hexatron/internal/game"
	"github.com/lox/hexatron/internal/gameid"
	"github.com/lox/hexatron/internal/randutil"
	"github.com/lox/hexatron/internal/replay"
)

// Config holds configuration for a single match.
type Config struct {
	Size        int
	MaxTurns    int
	MoveTimeout time.Duration // 0 disables the budget
	Seed        int64
	Starts      *[2]game.Start
	Names       [2]string
	Clock       quartz.Clock
	Logger      *log.Logger
}

// Result is the outcome of a finished match.
type Result struct {
	ID       string
	Seed     int64
	Outcome  game.Outcome
	Turns    int
	Statuses [2]game.Status
	Errors   [2]error // the InvalidMoveError that crashed a seat, if any
	Replay   *replay.Replay
}

// Driver runs one match. Agents are called one after the other, never
// concurrently.
type Driver struct {
	config Config
	agents [2]game.Agent
	logger *log.Logger
}

// New creates a driver for the two agents, seat 0 first.
func New(config Config, agents [2]game.Agent) *Driver {
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if config.Size == 0 {
		config.Size = game.DefaultSize
	}
	for seat, name := range config.Names {
		if name == "" {
			config.Names[seat] = fmt.Sprintf("player%d", seat+1)
		}
	}
	config.Seed = randutil.Resolve(config.Seed)

	return &Driver{
		config: config,
		agents: agents,
		logger: config.Logger.WithPrefix("match"),
	}
}

// Run plays the match to a terminal outcome. Agent failures end up as
// crashes in the result; the returned error is reserved for engine
// invariant violations and ctx cancellation.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	engine, err := game.NewEngine(game.Config{
		Size:     d.config.Size,
		MaxTurns: d.config.MaxTurns,
		Starts:   d.config.Starts,
		Rand:     randutil.New(d.config.Seed),
	})
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	id := gameid.Generate()
	logger := d.logger.With("match", id)
	recorder := replay.NewRecorder(engine.Size(), engine.Players())
	result := &Result{ID: id, Seed: d.config.Seed}

	logger.Info("Starting match",
		"player1", d.config.Names[0],
		"player2", d.config.Names[1],
		"size", engine.Size(),
		"seed", d.config.Seed)

	for !engine.Outcome().Terminal() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		turn := engine.Turn()
		var actions [2]game.Action
		for seat := range d.agents {
			actions[seat] = d.ask(ctx, seat, turn, engine.Observe(seat))
			// A cancelled match is not a crash for whoever was thinking.
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if actions[seat].Err != nil {
				result.Errors[seat] = actions[seat].Err
				logger.Warn("Rejected move", "player", seat+1, "turn", turn, "error", actions[seat].Err)
			}
		}

		res, err := engine.Step(actions)
		if err != nil {
			return nil, fmt.Errorf("match %s: %w", id, err)
		}
		players := engine.Players()
		recorder.Record(res, players)

		logger.Debug("Turn",
			"turn", turn,
			"p1", players[0].Position,
			"p2", players[1].Position,
			"status1", res.Statuses[0],
			"status2", res.Statuses[1])
	}

	players := engine.Players()
	result.Outcome = engine.Outcome()
	result.Turns = engine.Turn()
	result.Statuses = [2]game.Status{players[0].Status, players[1].Status}
	result.Replay = recorder.Document(d.config.Names, result.Outcome, result.Statuses)
	result.Replay.ID = id
	result.Replay.Seed = d.config.Seed

	logger.Info("Match finished",
		"outcome", result.Outcome,
		"turns", result.Turns,
		"status1", result.Statuses[0],
		"status2", result.Statuses[1])
	return result, nil
}

// ask gets one validated delta from the agent in seat.
func (d *Driver) ask(ctx context.Context, seat, turn int, obs game.Observation) game.Action {
	delta, err := d.call(ctx, d.agents[seat], obs)
	if err != nil {
		return game.Action{Err: &InvalidMoveError{Seat: seat, Turn: turn, Err: err}}
	}
	if delta < game.MinDelta || delta > game.MaxDelta {
		return game.Action{Err: &InvalidMoveError{Seat: seat, Turn: turn, Value: delta, Err: ErrOutOfRange}}
	}
	return game.Action{Delta: delta}
}

type answer struct {
	delta int
	err   error
}

// call invokes the agent, bounded by the move budget when one is set.
func (d *Driver) call(ctx context.Context, agent game.Agent, obs game.Observation) (int, error) {
	if d.config.MoveTimeout <= 0 {
		return safeMove(ctx, agent, obs)
	}

	moveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The budget starts before the agent sees the observation.
	timeoutFired := make(chan struct{})
	timer := d.config.Clock.AfterFunc(d.config.MoveTimeout, func() {
		close(timeoutFired)
	}, "match", "move")
	defer timer.Stop()

	answers := make(chan answer, 1)
	go func() {
		delta, err := safeMove(moveCtx, agent, obs)
		answers <- answer{delta: delta, err: err}
	}()

	select {
	case a := <-answers:
		return a.delta, a.err
	case <-timeoutFired:
		return 0, fmt.Errorf("%w after %s", ErrMoveTimeout, d.config.MoveTimeout)
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// safeMove turns an agent panic into an error.
func safeMove(ctx context.Context, agent game.Agent, obs game.Observation) (delta int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("agent panicked: %v", r)
		}
	}()
	return agent.GenerateMove(ctx, obs)
}

