package main

import (
	"fmt"
	"time"

	"github.com/lox/hexatron/internal/game"
	"github.com/lox/hexatron/internal/match"
)

type SeriesCmd struct {
	Agent1 string `arg:"" help:"Agent A"`
	Agent2 string `arg:"" help:"Agent B"`

	MatchFlags `embed:""`

	Games    int `short:"n" default:"100" help:"Number of matches"`
	Parallel int `short:"p" default:"4" help:"Matches played at once"`
}

func (c *SeriesCmd) Run(g *Globals) error {
	s, err := loadSettings(g, c.MatchFlags)
	if err != nil {
		return err
	}
	ctx, cancel := setupSignalHandler(s.logger)
	defer cancel()

	ids := [2]string{c.Agent1, c.Agent2}
	var sources [2]match.AgentSource
	for i, id := range ids {
		sources[i] = func(seed int64) (game.Agent, error) {
			return loadAgent(id, seed, s.logger)
		}
	}

	m := s.config.Match
	fmt.Printf("Starting series: %d games %s vs %s (seed: %d)\n", c.Games, ids[0], ids[1], m.Seed)
	start := time.Now()

	series, err := match.RunSeries(ctx, match.SeriesConfig{
		Games:       c.Games,
		Parallel:    c.Parallel,
		Size:        m.Size,
		MaxTurns:    m.MaxTurns,
		MoveTimeout: s.timeout,
		Seed:        m.Seed,
		Names:       ids,
		Sources:     sources,
		Logger:      s.logger,
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	low, high := series.ConfidenceInterval95()
	fmt.Printf("=== %d GAMES COMPLETED in %s ===\n", series.Games, elapsed.Round(time.Millisecond))
	fmt.Printf("%-12s %d wins (%.1f%%)\n", ids[0], series.WinsA, 100*series.WinRate())
	fmt.Printf("%-12s %d wins\n", ids[1], series.WinsB)
	fmt.Printf("%-12s %d\n", "draws", series.Draws)
	fmt.Printf("%-12s %d\n", "turn limits", series.Limits)
	fmt.Printf("Score for %s: %.4f ± %.4f SE\n", ids[0], series.Mean(), series.StdError())
	fmt.Printf("95%% CI: [%.4f, %.4f]\n", low, high)
	fmt.Printf("By seat: %.4f as player 1, %.4f as player 2\n", series.SeatMean(0), series.SeatMean(1))
	fmt.Printf("Turns: mean %.1f, median %.0f, p90 %.0f\n",
		series.MeanTurns(), series.TurnPercentile(0.5), series.TurnPercentile(0.9))
	return nil
}
