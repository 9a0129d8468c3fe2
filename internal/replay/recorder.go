// Package replay records per-player trajectories during a match and turns
// them into the artifact consumed by the visualizer.
package replay

import (
	"github.com/lox/hexatron/internal/game"
	"github.com/lox/hexatron/internal/hex"
)

// Frame is one player's recorded state for one turn.
type Frame struct {
	X           int `json:"x"`
	Y           int `json:"y"`
	Orientation int `json:"orientation"`
}

// Cell returns the frame position as a board coordinate.
func (f Frame) Cell() hex.Cell {
	return hex.Cell{Col: f.X, Row: f.Y}
}

func frameOf(c hex.Cell, o hex.Orientation) Frame {
	return Frame{X: c.Col, Y: c.Row, Orientation: int(o)}
}

// Recorder is an append-only log of both players' frames. Frame 0 is the
// start position; frame t+1 is the state after turn t.
type Recorder struct {
	size    int
	frames  [2][]Frame
	crashed [2]bool
}

// NewRecorder starts a recording from the players' initial states.
func NewRecorder(size int, players [2]game.PlayerState) *Recorder {
	r := &Recorder{size: size}
	for seat, p := range players {
		r.frames[seat] = []Frame{frameOf(p.Position, p.Orientation)}
	}
	return r
}

// Record appends one frame per player for a resolved turn. players is the
// post-turn state. A crashed player's frame shows the attempted cell when
// it is inside the raw grid and its last valid cell otherwise; InvalidMove
// keeps the pre-turn orientation as no turn was taken.
func (r *Recorder) Record(res game.TurnResult, players [2]game.PlayerState) {
	for seat, p := range players {
		if r.crashed[seat] {
			continue
		}
		status := res.Statuses[seat]
		if !status.Crashed() {
			r.frames[seat] = append(r.frames[seat], frameOf(p.Position, p.Orientation))
			continue
		}

		r.crashed[seat] = true
		frame := frameOf(p.Position, p.Orientation)
		if status != game.InvalidMove {
			frame.Orientation = int(res.Orientations[seat])
			if r.drawable(res.Attempted[seat]) {
				frame.X, frame.Y = res.Attempted[seat].Col, res.Attempted[seat].Row
			}
		}
		r.frames[seat] = append(r.frames[seat], frame)
	}
}

func (r *Recorder) drawable(c hex.Cell) bool {
	return c.Col >= 0 && c.Col < r.size && c.Row >= 0 && c.Row < r.size
}

// Len returns the number of frames recorded per player.
func (r *Recorder) Len() int {
	return len(r.frames[0])
}

// Crashed reports which players have a final crash frame.
func (r *Recorder) Crashed() [2]bool {
	return r.crashed
}

// Trajectories returns a copy of both frame sequences, index-aligned by turn.
func (r *Recorder) Trajectories() [2][]Frame {
	var out [2][]Frame
	for seat := range r.frames {
		out[seat] = append([]Frame(nil), r.frames[seat]...)
	}
	return out
}

// Document assembles the replay artifact.
func (r *Recorder) Document(agents [2]string, outcome game.Outcome, statuses [2]game.Status) *Replay {
	return &Replay{
		GridSize:     r.size,
		Agents:       agents,
		Outcome:      outcome.String(),
		Turns:        r.Len() - 1,
		Statuses:     [2]string{statuses[0].String(), statuses[1].String()},
		Crashed:      r.crashed,
		Trajectories: r.Trajectories(),
	}
}
