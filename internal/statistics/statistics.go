// Package statistics aggregates the results of a series of matches between
// two agents, A and B. Scores are from A's point of view.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// Winner identifies which agent won a game, independent of seat.
type Winner int

const (
	NoWinner Winner = iota
	AgentA
	AgentB
)

// GameResult is the outcome of a single match in a series.
type GameResult struct {
	Seed      int64  // RNG seed for this game (for replay)
	Swapped   bool   // A played in seat 2
	Winner    Winner // NoWinner for draws and turn limits
	TurnLimit bool   // ended by the turn cap
	Turns     int
}

// Score is +1 when A won, -1 when B won, 0 otherwise.
func (r GameResult) Score() float64 {
	switch r.Winner {
	case AgentA:
		return 1
	case AgentB:
		return -1
	}
	return 0
}

// SeatStats tracks A's results from one seat.
type SeatStats struct {
	Games int
	Wins  int
	Sum   float64
}

// Series tracks aggregate statistics over many games.
type Series struct {
	Games  int
	Sum    float64
	Sum2   float64 // sum of squares for variance
	Turns  []int
	Seeds  []int64
	WinsA  int
	WinsB  int
	Draws  int
	Limits int // turn limit outcomes, not counted in Draws

	Seats [2]SeatStats // A's results by seat
}

// Add incorporates a game result.
func (s *Series) Add(r GameResult) {
	score := r.Score()
	s.Games++
	s.Sum += score
	s.Sum2 += score * score
	s.Turns = append(s.Turns, r.Turns)
	s.Seeds = append(s.Seeds, r.Seed)

	switch {
	case r.Winner == AgentA:
		s.WinsA++
	case r.Winner == AgentB:
		s.WinsB++
	case r.TurnLimit:
		s.Limits++
	default:
		s.Draws++
	}

	seat := 0
	if r.Swapped {
		seat = 1
	}
	s.Seats[seat].Games++
	s.Seats[seat].Sum += score
	if r.Winner == AgentA {
		s.Seats[seat].Wins++
	}
}

// Merge folds other into s.
func (s *Series) Merge(other *Series) {
	s.Games += other.Games
	s.Sum += other.Sum
	s.Sum2 += other.Sum2
	s.Turns = append(s.Turns, other.Turns...)
	s.Seeds = append(s.Seeds, other.Seeds...)
	s.WinsA += other.WinsA
	s.WinsB += other.WinsB
	s.Draws += other.Draws
	s.Limits += other.Limits
	for i := range s.Seats {
		s.Seats[i].Games += other.Seats[i].Games
		s.Seats[i].Wins += other.Seats[i].Wins
		s.Seats[i].Sum += other.Seats[i].Sum
	}
}

// Mean returns A's mean score per game.
func (s *Series) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.Sum / float64(s.Games)
}

// Variance returns the sample variance of the scores.
func (s *Series) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of the scores.
func (s *Series) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean score.
func (s *Series) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean score.
func (s *Series) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of games A won.
func (s *Series) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.WinsA) / float64(s.Games)
}

// MeanTurns returns the average game length.
func (s *Series) MeanTurns() float64 {
	if len(s.Turns) == 0 {
		return 0
	}
	total := 0
	for _, t := range s.Turns {
		total += t
	}
	return float64(total) / float64(len(s.Turns))
}

// TurnPercentile returns the game length at percentile p (0.0 to 1.0).
func (s *Series) TurnPercentile(p float64) float64 {
	if len(s.Turns) == 0 {
		return 0
	}
	sorted := make([]int, len(s.Turns))
	copy(sorted, s.Turns)
	sort.Ints(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return float64(sorted[len(sorted)-1])
	}

	weight := index - float64(lower)
	return float64(sorted[lower])*(1-weight) + float64(sorted[upper])*weight
}

// SeatMean returns A's mean score from seat (0 or 1).
func (s *Series) SeatMean(seat int) float64 {
	if seat < 0 || seat > 1 {
		return 0
	}
	st := s.Seats[seat]
	if st.Games == 0 {
		return 0
	}
	return st.Sum / float64(st.Games)
}

// Validate checks the counters agree with each other.
func (s *Series) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if outcomes := s.WinsA + s.WinsB + s.Draws + s.Limits; outcomes != s.Games {
		return fmt.Errorf("outcome total (%d) does not match games (%d)", outcomes, s.Games)
	}
	if len(s.Turns) != s.Games {
		return fmt.Errorf("turns length (%d) does not match games (%d)", len(s.Turns), s.Games)
	}
	if seats := s.Seats[0].Games + s.Seats[1].Games; seats != s.Games {
		return fmt.Errorf("seat games total (%d) does not match games (%d)", seats, s.Games)
	}
	if want := float64(s.WinsA - s.WinsB); math.Abs(s.Sum-want) > 1e-9 {
		return fmt.Errorf("score sum %.3f does not match wins difference %.0f", s.Sum, want)
	}
	return nil
}
