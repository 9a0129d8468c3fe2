// Package hex models the Hexatron playing field: an N×N offset grid whose
// top-left and bottom-right triangles are masked out, leaving a diamond of
// playable cells.
package hex

import "fmt"

// Cell is an offset coordinate on the square grid.
type Cell struct {
	Col int
	Row int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Orientation is one of the six movement directions, cyclic modulo 6.
type Orientation int

const (
	NorthWest Orientation = iota
	NorthEast
	East
	SouthEast
	SouthWest
	West
)

// Directions is the number of distinct orientations.
const Directions = 6

// steps holds the (row, col) offset for every orientation.
var steps = [Directions][2]int{
	{-1, 0}, // NW
	{-1, 1}, // NE
	{0, 1},  // E
	{1, 0},  // SE
	{1, -1}, // SW
	{0, -1}, // W
}

// Turn returns the orientation reached by rotating o by delta steps.
// The result is always in [0, 5], also for negative deltas.
func (o Orientation) Turn(delta int) Orientation {
	return Orientation(((int(o)+delta)%Directions + Directions) % Directions)
}

// Valid reports whether o is one of the six directions.
func (o Orientation) Valid() bool {
	return o >= 0 && o < Directions
}

func (o Orientation) String() string {
	switch o {
	case NorthWest:
		return "NW"
	case NorthEast:
		return "NE"
	case East:
		return "E"
	case SouthEast:
		return "SE"
	case SouthWest:
		return "SW"
	case West:
		return "W"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// Neighbor returns the cell one step from c in direction o. It does not
// check bounds.
func Neighbor(c Cell, o Orientation) Cell {
	step := steps[o.Turn(0)]
	return Cell{Col: c.Col + step[1], Row: c.Row + step[0]}
}
