package match

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/hexatron/internal/game"
	"github.com/lox/hexatron/internal/randutil"
	"github.com/lox/hexatron/internal/statistics"
)

// AgentSource builds a fresh agent for one game. Each game gets its own
// instances so that stateful or out-of-process agents are never shared.
type AgentSource func(seed int64) (game.Agent, error)

// SeriesConfig holds configuration for a series of matches between A and B.
type SeriesConfig struct {
	Games       int
	Parallel    int
	Size        int
	MaxTurns    int
	MoveTimeout time.Duration
	Seed        int64
	Names       [2]string // A, B
	Sources     [2]AgentSource
	Clock       quartz.Clock
	Logger      *log.Logger

	// OnGame is called after each game, from the goroutine that played it.
	OnGame func(game int, result *Result)
}

// RunSeries plays the configured number of games. Odd games swap seats so
// that A plays second, and each game i uses seed Seed+i.
func RunSeries(ctx context.Context, config SeriesConfig) (*statistics.Series, error) {
	if config.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", config.Games)
	}
	if config.Parallel <= 0 {
		config.Parallel = 1
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	base := randutil.Resolve(config.Seed)
	logger := config.Logger.WithPrefix("series")

	var (
		mu     sync.Mutex
		series = &statistics.Series{}
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(config.Parallel)

	for i := 0; i < config.Games; i++ {
		seed := base + int64(i)
		swapped := i%2 == 1
		g.Go(func() error {
			result, err := playSeriesGame(ctx, config, seed, swapped)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
			}
			if config.OnGame != nil {
				config.OnGame(i, result)
			}

			mu.Lock()
			series.Add(gameResult(result, swapped))
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	logger.Info("Series finished",
		"games", series.Games,
		"a", config.Names[0],
		"b", config.Names[1],
		"a_wins", series.WinsA,
		"b_wins", series.WinsB,
		"draws", series.Draws,
		"turn_limits", series.Limits)
	return series, nil
}

func playSeriesGame(ctx context.Context, config SeriesConfig, seed int64, swapped bool) (*Result, error) {
	var agents [2]game.Agent
	for i, source := range config.Sources {
		agent, err := source(randutil.Derive(seed, i))
		if err != nil {
			return nil, err
		}
		if closer, ok := agent.(io.Closer); ok {
			defer closer.Close()
		}
		agents[i] = agent
	}

	names := config.Names
	if swapped {
		agents[0], agents[1] = agents[1], agents[0]
		names[0], names[1] = names[1], names[0]
	}

	driver := New(Config{
		Size:        config.Size,
		MaxTurns:    config.MaxTurns,
		MoveTimeout: config.MoveTimeout,
		Seed:        seed,
		Names:       names,
		Clock:       config.Clock,
		Logger:      config.Logger,
	}, agents)
	return driver.Run(ctx)
}

// gameResult maps a seat based outcome back onto agents A and B.
func gameResult(r *Result, swapped bool) statistics.GameResult {
	outcome := r.Outcome
	if swapped {
		outcome = outcome.Swapped()
	}

	gr := statistics.GameResult{
		Seed:      r.Seed,
		Swapped:   swapped,
		TurnLimit: outcome == game.TurnLimit,
		Turns:     r.Turns,
	}
	switch outcome {
	case game.Player1Wins:
		gr.Winner = statistics.AgentA
	case game.Player2Wins:
		gr.Winner = statistics.AgentB
	}
	return gr
}
