package statistics

import (
	"math"
	"testing"
)

func TestSeries_Empty(t *testing.T) {
	s := &Series{}

	if s.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty series, got %f", s.Mean())
	}
	if s.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty series, got %f", s.Variance())
	}
	if s.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty series, got %f", s.StdError())
	}
	if s.MeanTurns() != 0 {
		t.Errorf("Expected mean turns of 0 for empty series, got %f", s.MeanTurns())
	}
	if s.TurnPercentile(0.5) != 0 {
		t.Errorf("Expected percentile of 0 for empty series, got %f", s.TurnPercentile(0.5))
	}
	if err := s.Validate(); err == nil {
		t.Error("Expected empty series to fail validation")
	}
}

func TestSeries_Outcomes(t *testing.T) {
	s := &Series{}
	results := []GameResult{
		{Seed: 1, Winner: AgentA, Turns: 10},
		{Seed: 2, Winner: AgentB, Swapped: true, Turns: 20},
		{Seed: 3, Winner: AgentA, Swapped: true, Turns: 30},
		{Seed: 4, Turns: 5},
		{Seed: 5, TurnLimit: true, Turns: 40},
	}
	for _, r := range results {
		s.Add(r)
	}

	if s.Games != 5 {
		t.Fatalf("Expected 5 games, got %d", s.Games)
	}
	if s.WinsA != 2 || s.WinsB != 1 || s.Draws != 1 || s.Limits != 1 {
		t.Errorf("Unexpected counters: A=%d B=%d draws=%d limits=%d", s.WinsA, s.WinsB, s.Draws, s.Limits)
	}
	if got := s.Mean(); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("Expected mean 0.2, got %f", got)
	}
	if got := s.WinRate(); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("Expected win rate 0.4, got %f", got)
	}
	if got := s.MeanTurns(); got != 21 {
		t.Errorf("Expected mean turns 21, got %f", got)
	}
	if got := s.TurnPercentile(0.5); got != 20 {
		t.Errorf("Expected median turns 20, got %f", got)
	}
	if s.Seats[0].Games != 3 || s.Seats[1].Games != 2 {
		t.Errorf("Unexpected seat split %d/%d", s.Seats[0].Games, s.Seats[1].Games)
	}
	if got := s.SeatMean(1); got != 0 {
		t.Errorf("Expected seat 2 mean 0, got %f", got)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}

	low, high := s.ConfidenceInterval95()
	if low >= s.Mean() || high <= s.Mean() {
		t.Errorf("Confidence interval [%f, %f] does not bracket mean %f", low, high, s.Mean())
	}
}

func TestSeries_Merge(t *testing.T) {
	a, b, all := &Series{}, &Series{}, &Series{}
	for i := 0; i < 10; i++ {
		r := GameResult{Seed: int64(i), Winner: Winner(i % 3), Swapped: i%2 == 1, Turns: i}
		all.Add(r)
		if i < 4 {
			a.Add(r)
		} else {
			b.Add(r)
		}
	}

	a.Merge(b)
	if a.Games != all.Games || a.Sum != all.Sum || a.Sum2 != all.Sum2 {
		t.Errorf("Merged totals differ: %+v vs %+v", a, all)
	}
	if a.Seats != all.Seats {
		t.Errorf("Merged seats differ: %+v vs %+v", a.Seats, all.Seats)
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestSeries_ValidateDetectsMismatch(t *testing.T) {
	s := &Series{}
	s.Add(GameResult{Winner: AgentA, Turns: 3})
	s.WinsA = 2

	if err := s.Validate(); err == nil {
		t.Error("Expected mismatched counters to fail validation")
	}
}
