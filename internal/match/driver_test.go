package match

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/hexatron/internal/game"
	"github.com/lox/hexatron/internal/gameid"
	"github.com/lox/hexatron/internal/hex"
	"github.com/lox/hexatron/internal/randutil"
	"github.com/lox/hexatron/internal/replay"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func straightAgent() game.Agent {
	return game.AgentFunc(func(context.Context, game.Observation) (int, error) {
		return 0, nil
	})
}

// parallelStarts keeps both players on separate rows heading in opposite
// directions on a 13x13 board.
func parallelStarts() *[2]game.Start {
	return &[2]game.Start{
		{Position: hex.Cell{Col: 3, Row: 6}, Orientation: hex.East},
		{Position: hex.Cell{Col: 9, Row: 3}, Orientation: hex.West},
	}
}

func TestStraightDrawOnFiveByFive(t *testing.T) {
	p1, p2 := game.CollisionCourse(5)
	d := New(Config{
		Size:   5,
		Seed:   7,
		Starts: &[2]game.Start{p1, p2},
		Names:  [2]string{"straight", "straight"},
		Logger: quietLogger(),
	}, [2]game.Agent{straightAgent(), straightAgent()})

	result, err := d.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, game.Draw, result.Outcome)
	assert.Equal(t, 2, result.Turns)
	assert.Equal(t, [2]game.Status{game.CrashedIntoOpponent, game.CrashedIntoOpponent}, result.Statuses)
	assert.Equal(t, [2]error{}, result.Errors)
	assert.NoError(t, gameid.Validate(result.ID))

	require.NotNil(t, result.Replay)
	assert.Equal(t, result.ID, result.Replay.ID)
	assert.Equal(t, int64(7), result.Replay.Seed)
	assert.Equal(t, "draw", result.Replay.Outcome)
	assert.Len(t, result.Replay.Trajectories[0], 3)
	assert.Len(t, result.Replay.Trajectories[1], 3)
	assert.Equal(t, replay.Frame{X: 2, Y: 2, Orientation: int(hex.NorthEast)}, result.Replay.Trajectories[0][2])
}

func TestOutOfRangeDeltaCrashesOnlyThatAgent(t *testing.T) {
	cheater := game.NewScriptedAgent(0, 0, 0, 7)
	honest := game.NewScriptedAgent()

	d := New(Config{Size: 13, Starts: parallelStarts(), Logger: quietLogger()},
		[2]game.Agent{cheater, honest})
	result, err := d.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, game.Player2Wins, result.Outcome)
	assert.Equal(t, 4, result.Turns)
	assert.Equal(t, [2]game.Status{game.InvalidMove, game.Valid}, result.Statuses)
	assert.Nil(t, result.Errors[1])

	var invalid *InvalidMoveError
	require.ErrorAs(t, result.Errors[0], &invalid)
	assert.Equal(t, 0, invalid.Seat)
	assert.Equal(t, 3, invalid.Turn)
	assert.Equal(t, 7, invalid.Value)
	assert.ErrorIs(t, result.Errors[0], ErrOutOfRange)
	assert.Equal(t, "player 1 turn 3: delta 7 out of range", invalid.Error())

	// The crashed player stays on its last cell with its old heading.
	last := result.Replay.Trajectories[0][4]
	assert.Equal(t, replay.Frame{X: 6, Y: 6, Orientation: int(hex.East)}, last)
}

func TestAgentErrorsAndPanicsBecomeCrashes(t *testing.T) {
	tests := map[string]game.Agent{
		"error": game.AgentFunc(func(context.Context, game.Observation) (int, error) {
			return 0, errors.New("broken pipe")
		}),
		"panic": game.AgentFunc(func(context.Context, game.Observation) (int, error) {
			panic("boom")
		}),
	}
	for name, agent := range tests {
		t.Run(name, func(t *testing.T) {
			d := New(Config{Size: 13, Starts: parallelStarts(), Logger: quietLogger()},
				[2]game.Agent{straightAgent(), agent})
			result, err := d.Run(context.Background())
			require.NoError(t, err)

			assert.Equal(t, game.Player1Wins, result.Outcome)
			assert.Equal(t, 1, result.Turns)
			assert.Equal(t, game.InvalidMove, result.Statuses[1])
			require.Error(t, result.Errors[1])
			assert.Contains(t, result.Errors[1].Error(), "player 2 turn 0")
		})
	}
}

func TestMoveTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clock := quartz.NewMock(t)
	started := make(chan struct{})
	cancelled := make(chan struct{})
	slow := game.AgentFunc(func(agentCtx context.Context, _ game.Observation) (int, error) {
		close(started)
		<-agentCtx.Done()
		close(cancelled)
		return 0, agentCtx.Err()
	})

	d := New(Config{
		Size:        13,
		Starts:      parallelStarts(),
		MoveTimeout: 500 * time.Millisecond,
		Clock:       clock,
		Logger:      quietLogger(),
	}, [2]game.Agent{slow, straightAgent()})

	type outcome struct {
		result *Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := d.Run(ctx)
		done <- outcome{result, err}
	}()

	select {
	case <-started:
	case <-ctx.Done():
		t.Fatal("agent was never called")
	}
	clock.Advance(500 * time.Millisecond).MustWait(ctx)

	var got outcome
	select {
	case got = <-done:
	case <-ctx.Done():
		t.Fatal("match did not finish after the timeout")
	}
	require.NoError(t, got.err)
	assert.Equal(t, game.Player2Wins, got.result.Outcome)
	assert.Equal(t, game.InvalidMove, got.result.Statuses[0])
	assert.ErrorIs(t, got.result.Errors[0], ErrMoveTimeout)

	select {
	case <-cancelled:
	case <-ctx.Done():
		t.Fatal("timed out agent context was not cancelled")
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	agent := game.AgentFunc(func(context.Context, game.Observation) (int, error) {
		calls++
		if calls == 4 {
			cancel()
		}
		return 0, nil
	})

	d := New(Config{Size: 13, Starts: parallelStarts(), Logger: quietLogger()},
		[2]game.Agent{agent, straightAgent()})
	_, err := d.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 4, calls)
}

func TestCancellationDuringMoveIsNotACrash(t *testing.T) {
	for _, timeout := range []time.Duration{0, time.Second} {
		t.Run(fmt.Sprintf("timeout %s", timeout), func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			second := game.NewScriptedAgent()
			interrupted := game.AgentFunc(func(agentCtx context.Context, _ game.Observation) (int, error) {
				cancel()
				<-agentCtx.Done()
				return 0, agentCtx.Err()
			})

			d := New(Config{Size: 13, Starts: parallelStarts(), MoveTimeout: timeout, Logger: quietLogger()},
				[2]game.Agent{interrupted, second})
			result, err := d.Run(ctx)

			assert.ErrorIs(t, err, context.Canceled)
			assert.Nil(t, result)
		})
	}
}

func TestTurnLimit(t *testing.T) {
	d := New(Config{Size: 13, MaxTurns: 3, Starts: parallelStarts(), Logger: quietLogger()},
		[2]game.Agent{straightAgent(), straightAgent()})
	result, err := d.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, game.TurnLimit, result.Outcome)
	assert.Equal(t, 3, result.Turns)
	assert.Equal(t, [2]game.Status{game.Valid, game.Valid}, result.Statuses)
	assert.Len(t, result.Replay.Trajectories[0], 4)
}

func TestSeatSwapSymmetry(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		starts := game.RandomStarts(9, randutil.New(seed))
		scriptA := []int{0, 1, 1, -1, 0, 2, 0, -1}
		scriptB := []int{-1, 0, 0, 1, -2, 0, 1}

		forward := New(Config{Size: 9, Seed: seed, Starts: &starts, Logger: quietLogger()},
			[2]game.Agent{game.NewScriptedAgent(scriptA...), game.NewScriptedAgent(scriptB...)})
		r1, err := forward.Run(context.Background())
		require.NoError(t, err)

		swapped := [2]game.Start{starts[1], starts[0]}
		backward := New(Config{Size: 9, Seed: seed, Starts: &swapped, Logger: quietLogger()},
			[2]game.Agent{game.NewScriptedAgent(scriptB...), game.NewScriptedAgent(scriptA...)})
		r2, err := backward.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, r1.Outcome, r2.Outcome.Swapped(), "seed %d", seed)
		assert.Equal(t, r1.Turns, r2.Turns, "seed %d", seed)
		assert.Equal(t, r1.Statuses[0], r2.Statuses[1], "seed %d", seed)
		assert.Equal(t, r1.Statuses[1], r2.Statuses[0], "seed %d", seed)
		assert.Equal(t, r1.Replay.Trajectories[0], r2.Replay.Trajectories[1], "seed %d", seed)
	}
}
