package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/hexatron/internal/game"
)

// StraightBot never turns.
type StraightBot struct {
	logger *log.Logger
}

func NewStraightBot(logger *log.Logger) *StraightBot {
	return &StraightBot{logger: logger}
}

func (s *StraightBot) GenerateMove(_ context.Context, _ game.Observation) (int, error) {
	return 0, nil
}

// StochasticBot goes straight most of the time and turns left or right
// with 10% probability each.
type StochasticBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

func NewStochasticBot(rng *rand.Rand, logger *log.Logger) *StochasticBot {
	return &StochasticBot{rng: rng, logger: logger}
}

func (s *StochasticBot) GenerateMove(_ context.Context, _ game.Observation) (int, error) {
	r := s.rng.Float64()
	switch {
	case r < 0.1:
		return -1, nil
	case r > 0.9:
		return 1, nil
	default:
		return 0, nil
	}
}

// RandBot picks a uniformly random delta, safe or not.
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) GenerateMove(_ context.Context, _ game.Observation) (int, error) {
	return game.MinDelta + r.rng.IntN(game.MaxDelta-game.MinDelta+1), nil
}
