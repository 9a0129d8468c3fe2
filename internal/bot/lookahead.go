package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/hexatron/internal/game"
	"github.com/lox/hexatron/internal/hex"
)

// preference is the order deltas are tried in when scores tie.
var preference = [...]int{0, -1, 1, -2, 2}

// target returns the cell the observing player reaches with delta.
func target(obs game.Observation, delta int) (hex.Cell, hex.Orientation) {
	o := hex.Orientation(obs.Orientations[0]).Turn(delta)
	return hex.Neighbor(obs.Positions[0].Cell(), o), o
}

func free(obs game.Observation, c hex.Cell) bool {
	return obs.Free(c.Col, c.Row)
}

// contested reports whether the opponent can also reach c next turn.
func contested(obs game.Observation, c hex.Cell) bool {
	head := obs.Positions[1].Cell()
	facing := hex.Orientation(obs.Orientations[1])
	for _, d := range preference {
		if hex.Neighbor(head, facing.Turn(d)) == c {
			return true
		}
	}
	return false
}

// SurvivorBot takes the first delta in preference order that does not
// crash immediately, avoiding cells the opponent could also enter.
type SurvivorBot struct {
	logger *log.Logger
}

func NewSurvivorBot(logger *log.Logger) *SurvivorBot {
	return &SurvivorBot{logger: logger.WithPrefix("survivor")}
}

func (s *SurvivorBot) GenerateMove(_ context.Context, obs game.Observation) (int, error) {
	fallback, found := 0, false
	for _, d := range preference {
		c, _ := target(obs, d)
		if !free(obs, c) {
			continue
		}
		if !contested(obs, c) {
			return d, nil
		}
		if !found {
			fallback, found = d, true
		}
	}
	if !found {
		s.logger.Debug("No safe move", "turn", obs.Turn)
	}
	return fallback, nil
}

// FloodBot moves towards the largest region it can still reach.
type FloodBot struct {
	logger *log.Logger
}

func NewFloodBot(logger *log.Logger) *FloodBot {
	return &FloodBot{logger: logger.WithPrefix("flood")}
}

func (f *FloodBot) GenerateMove(_ context.Context, obs game.Observation) (int, error) {
	best, bestScore := 0, -1
	for _, d := range preference {
		c, _ := target(obs, d)
		if !free(obs, c) {
			continue
		}
		score := reachable(obs, c) * 2
		if contested(obs, c) {
			score--
		}
		if score > bestScore {
			best, bestScore = d, score
		}
	}
	f.logger.Debug("Flood choice", "turn", obs.Turn, "delta", best, "score", bestScore)
	return best, nil
}

// reachable counts free cells connected to start, start included.
func reachable(obs game.Observation, start hex.Cell) int {
	seen := map[hex.Cell]bool{start: true}
	queue := []hex.Cell{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for o := hex.Orientation(0); o < hex.Directions; o++ {
			n := hex.Neighbor(c, o)
			if seen[n] || !free(obs, n) {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return len(seen)
}
