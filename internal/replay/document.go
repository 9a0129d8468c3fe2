package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/hexatron/internal/fileutil"
	"github.com/lox/hexatron/internal/gameid"
	"github.com/lox/hexatron/internal/hex"
)

// Template placeholders substituted by WriteHTML.
const (
	PlaceholderAgent1     = "{{AGENT_1}}"
	PlaceholderAgent2     = "{{AGENT_2}}"
	PlaceholderTrajectory = "{{GENERATED_TRAJECTORY}}"
)

// ErrMalformed is returned for replay documents that cannot describe a game.
var ErrMalformed = errors.New("malformed replay")

// Replay is the serialized record of one match.
type Replay struct {
	ID           string     `json:"id,omitempty"`
	Seed         int64      `json:"seed,omitempty"`
	GridSize     int        `json:"grid_size"`
	Agents       [2]string  `json:"agents"`
	Outcome      string     `json:"outcome"`
	Turns        int        `json:"turns"`
	Statuses     [2]string  `json:"statuses"`
	Crashed      [2]bool    `json:"crashed"`
	Trajectories [2][]Frame `json:"trajectories"`
}

// Validate checks the shape invariants a visualizer relies on.
func (r *Replay) Validate() error {
	if r.GridSize < hex.MinSize || r.GridSize > hex.MaxSize {
		return fmt.Errorf("%w: grid size %d", ErrMalformed, r.GridSize)
	}
	if r.ID != "" {
		if err := gameid.Validate(r.ID); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	if len(r.Trajectories[0]) == 0 || len(r.Trajectories[0]) != len(r.Trajectories[1]) {
		return fmt.Errorf("%w: trajectory lengths %d and %d", ErrMalformed,
			len(r.Trajectories[0]), len(r.Trajectories[1]))
	}
	return nil
}

// WriteJSON encodes the full document.
func (r *Replay) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteHTML fills the page template with agent names and the bare
// trajectory array.
func (r *Replay) WriteHTML(w io.Writer, template string) error {
	trajectories, err := json.Marshal(r.Trajectories)
	if err != nil {
		return fmt.Errorf("encode trajectories: %w", err)
	}
	page := strings.NewReplacer(
		PlaceholderAgent1, r.Agents[0],
		PlaceholderAgent2, r.Agents[1],
		PlaceholderTrajectory, string(trajectories),
	).Replace(template)
	_, err = io.WriteString(w, page)
	return err
}

// Save writes the document to path atomically, as HTML when template is
// not empty and as JSON otherwise.
func (r *Replay) Save(path, template string) error {
	return fileutil.WriteAtomic(path, 0644, func(w io.Writer) error {
		if template != "" {
			return r.WriteHTML(w, template)
		}
		return r.WriteJSON(w)
	})
}

// Load reads a JSON replay document.
func Load(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r Replay
	if err := json.NewDecoder(f).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Rebuild replays the trajectories onto an empty board. A crashed player's
// last frame is its failed attempt and is skipped.
func Rebuild(r *Replay) (*hex.Board, error) {
	return RebuildUntil(r, len(r.Trajectories[0])-1)
}

// RebuildUntil replays frames 0..frame inclusive.
func RebuildUntil(r *Replay, frame int) (*hex.Board, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	board, err := hex.NewBoard(r.GridSize)
	if err != nil {
		return nil, err
	}
	for seat, frames := range r.Trajectories {
		last := min(frame, len(frames)-1)
		if r.Crashed[seat] && last == len(frames)-1 {
			last--
		}
		for i := 0; i <= last; i++ {
			if err := board.MarkOccupied(frames[i].Cell(), seat); err != nil {
				return nil, fmt.Errorf("player %d frame %d: %w", seat+1, i, err)
			}
		}
	}
	return board, nil
}
