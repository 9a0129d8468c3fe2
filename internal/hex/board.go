package hex

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned for indices outside the raw N×N array.
	ErrOutOfRange = errors.New("cell outside grid")
	// ErrIllegalWrite is returned when marking a cell that cannot hold a wall.
	ErrIllegalWrite = errors.New("illegal board write")
)

// Grid size limits. MaxSize keeps a JSON observation of the whole board
// within one protocol line.
const (
	MinSize = 3
	MaxSize = 255
)

// Occupancy is the state of a single cell.
type Occupancy uint8

const (
	Empty Occupancy = iota
	WallPlayer1
	WallPlayer2
	OutOfBounds
)

func (o Occupancy) String() string {
	switch o {
	case Empty:
		return "empty"
	case WallPlayer1:
		return "wall-1"
	case WallPlayer2:
		return "wall-2"
	case OutOfBounds:
		return "out-of-bounds"
	default:
		return fmt.Sprintf("Occupancy(%d)", uint8(o))
	}
}

// Wall returns the occupancy written by the player in seat (0 or 1).
func Wall(seat int) Occupancy {
	if seat == 0 {
		return WallPlayer1
	}
	return WallPlayer2
}

// Board owns the cell grid. It is not safe for concurrent use.
type Board struct {
	size     int
	halfSize int
	cells    []Occupancy
}

// NewBoard creates an empty board of the given size with the corner
// triangles marked out of bounds.
func NewBoard(size int) (*Board, error) {
	if size < MinSize {
		return nil, fmt.Errorf("board size %d below minimum %d", size, MinSize)
	}
	if size > MaxSize {
		return nil, fmt.Errorf("board size %d above maximum %d", size, MaxSize)
	}

	b := &Board{
		size:     size,
		halfSize: size / 2,
		cells:    make([]Occupancy, size*size),
	}
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if !b.IsInBounds(Cell{Col: col, Row: row}) {
				b.cells[row*size+col] = OutOfBounds
			}
		}
	}
	return b, nil
}

// Size returns N.
func (b *Board) Size() int {
	return b.size
}

// InGrid reports whether c indexes the raw N×N array, playable or not.
func (b *Board) InGrid(c Cell) bool {
	return c.Col >= 0 && c.Col < b.size && c.Row >= 0 && c.Row < b.size
}

// IsInBounds reports whether c lies in the playable diamond.
func (b *Board) IsInBounds(c Cell) bool {
	if !b.InGrid(c) {
		return false
	}
	sum := c.Col + c.Row
	return sum >= b.halfSize && sum < b.size+b.halfSize
}

// Occupancy returns the state of c.
func (b *Board) Occupancy(c Cell) (Occupancy, error) {
	if !b.InGrid(c) {
		return OutOfBounds, fmt.Errorf("%w: %s on %dx%d", ErrOutOfRange, c, b.size, b.size)
	}
	return b.cells[c.Row*b.size+c.Col], nil
}

// IsFree reports whether c is playable and not yet part of any trail.
func (b *Board) IsFree(c Cell) bool {
	return b.InGrid(c) && b.cells[c.Row*b.size+c.Col] == Empty
}

// MarkOccupied turns c into the wall of the player in seat. Re-marking a
// cell the same player already owns is a no-op.
func (b *Board) MarkOccupied(c Cell, seat int) error {
	current, err := b.Occupancy(c)
	if err != nil {
		return err
	}
	wall := Wall(seat)
	switch current {
	case Empty:
		b.cells[c.Row*b.size+c.Col] = wall
		return nil
	case wall:
		return nil
	case OutOfBounds:
		return fmt.Errorf("%w: %s is out of bounds", ErrIllegalWrite, c)
	default:
		return fmt.Errorf("%w: %s already owned (%s)", ErrIllegalWrite, c, current)
	}
}

// Neighbor returns the cell one step from c in direction o.
func (b *Board) Neighbor(c Cell, o Orientation) Cell {
	return Neighbor(c, o)
}

// Playable returns the number of cells inside the diamond.
func (b *Board) Playable() int {
	n := 0
	for _, occ := range b.cells {
		if occ != OutOfBounds {
			n++
		}
	}
	return n
}

// CountOwned returns the number of cells in the trail of seat.
func (b *Board) CountOwned(seat int) int {
	wall := Wall(seat)
	n := 0
	for _, occ := range b.cells {
		if occ == wall {
			n++
		}
	}
	return n
}

// Cells calls fn for every cell of the raw grid in row-major order.
func (b *Board) Cells(fn func(c Cell, occ Occupancy)) {
	for i, occ := range b.cells {
		fn(Cell{Col: i % b.size, Row: i / b.size}, occ)
	}
}

// Clone returns a deep copy of b.
func (b *Board) Clone() *Board {
	out := &Board{size: b.size, halfSize: b.halfSize, cells: make([]Occupancy, len(b.cells))}
	copy(out.cells, b.cells)
	return out
}

// Equal reports whether both boards have the same size and cell states.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}
