// Package render draws boards and replay frames for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/hexatron/internal/hex"
	"github.com/lox/hexatron/internal/replay"
)

// Glyphs used for each cell kind.
const (
	GlyphEmpty  = "·"
	GlyphMasked = " "
	GlyphCrash  = "X"
	cellWidth   = 2
)

var (
	trailGlyphs = [2]string{"1", "2"}
	headGlyphs  = [2]string{"A", "B"}
)

// Styles holds the lipgloss styles for every cell kind.
type Styles struct {
	Empty  lipgloss.Style
	Masked lipgloss.Style
	Trails [2]lipgloss.Style
	Heads  [2]lipgloss.Style
	Crash  lipgloss.Style
	Header lipgloss.Style
	Frame  lipgloss.Style
}

// PlainStyles renders without colour or borders.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Empty:  plain,
		Masked: plain,
		Trails: [2]lipgloss.Style{plain, plain},
		Heads:  [2]lipgloss.Style{plain, plain},
		Crash:  plain,
		Header: plain,
		Frame:  plain,
	}
}

// DefaultStyles returns the coloured terminal styles.
func DefaultStyles() Styles {
	s := PlainStyles()
	s.Empty = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
	s.Trails[0] = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
	s.Trails[1] = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	s.Heads[0] = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#1A8F88")).Bold(true)
	s.Heads[1] = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#C23B3B")).Bold(true)
	s.Crash = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	s.Header = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Padding(0, 1)
	s.Frame = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7D56F4")).
		Padding(0, 1)
	return s
}

// Marker is a highlighted cell drawn over the board.
type Marker struct {
	Cell  hex.Cell
	Seat  int
	Crash bool
}

// Board draws b as a hexagon: row r is shifted right by r columns so
// that NW and NE neighbours sit diagonally above.
func Board(b *hex.Board, markers []Marker, styles Styles) string {
	size := b.Size()
	overlay := make(map[hex.Cell]Marker, len(markers))
	for _, m := range markers {
		overlay[m.Cell] = m
	}

	var sb strings.Builder
	for row := 0; row < size; row++ {
		sb.WriteString(strings.Repeat(" ", row))
		for col := 0; col < size; col++ {
			c := hex.Cell{Col: col, Row: row}
			sb.WriteString(cell(b, c, overlay, styles))
			if col < size-1 {
				sb.WriteString(strings.Repeat(" ", cellWidth-1))
			}
		}
		if row < size-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func cell(b *hex.Board, c hex.Cell, overlay map[hex.Cell]Marker, styles Styles) string {
	if m, ok := overlay[c]; ok {
		if m.Crash {
			return styles.Crash.Render(GlyphCrash)
		}
		return styles.Heads[m.Seat].Render(headGlyphs[m.Seat])
	}
	occ, err := b.Occupancy(c)
	if err != nil {
		return GlyphMasked
	}
	switch occ {
	case hex.WallPlayer1:
		return styles.Trails[0].Render(trailGlyphs[0])
	case hex.WallPlayer2:
		return styles.Trails[1].Render(trailGlyphs[1])
	case hex.OutOfBounds:
		return styles.Masked.Render(GlyphMasked)
	default:
		return styles.Empty.Render(GlyphEmpty)
	}
}

// Frame draws the replay as it stood after turn frame. A negative frame or
// one past the end shows the final position.
func Frame(r *replay.Replay, frame int, styles Styles) (string, error) {
	last := len(r.Trajectories[0]) - 1
	if frame < 0 || frame > last {
		frame = last
	}
	board, err := replay.RebuildUntil(r, frame)
	if err != nil {
		return "", err
	}

	var markers []Marker
	for seat, frames := range r.Trajectories {
		f := frames[min(frame, len(frames)-1)]
		crash := r.Crashed[seat] && frame == len(frames)-1
		markers = append(markers, Marker{Cell: f.Cell(), Seat: seat, Crash: crash})
	}

	filled := board.CountOwned(0) + board.CountOwned(1)
	header := fmt.Sprintf("%s vs %s  turn %d/%d  %d/%d cells",
		r.Agents[0], r.Agents[1], frame, r.Turns, filled, board.Playable())
	if frame == last {
		header += "  " + r.Outcome
	}
	body := styles.Frame.Render(Board(board, markers, styles))
	return lipgloss.JoinVertical(lipgloss.Left, styles.Header.Render(header), body), nil
}
