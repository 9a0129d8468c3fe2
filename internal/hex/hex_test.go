package hex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTurnStaysInRange(t *testing.T) {
	for o := Orientation(0); o < Directions; o++ {
		for delta := -2; delta <= 2; delta++ {
			got := o.Turn(delta)
			assert.True(t, got.Valid(), "%d%+d = %d", o, delta, got)
			assert.Equal(t, Orientation(((int(o)+delta)%6+6)%6), got)
		}
	}

	assert.Equal(t, West, NorthWest.Turn(-1))
	assert.Equal(t, SouthWest, NorthWest.Turn(-2))
	assert.Equal(t, NorthWest, West.Turn(1))
	assert.Equal(t, NorthEast, SouthWest.Turn(3))
}

func TestNeighborSteps(t *testing.T) {
	origin := Cell{Col: 5, Row: 5}
	tests := []struct {
		o    Orientation
		want Cell
	}{
		{NorthWest, Cell{Col: 5, Row: 4}},
		{NorthEast, Cell{Col: 6, Row: 4}},
		{East, Cell{Col: 6, Row: 5}},
		{SouthEast, Cell{Col: 5, Row: 6}},
		{SouthWest, Cell{Col: 4, Row: 6}},
		{West, Cell{Col: 4, Row: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.o.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Neighbor(origin, tt.o))
		})
	}
}

func TestOppositeDirectionsCancel(t *testing.T) {
	origin := Cell{Col: 3, Row: 7}
	for o := Orientation(0); o < Directions; o++ {
		back := Neighbor(Neighbor(origin, o), o.Turn(3))
		assert.Equal(t, origin, back, "direction %s", o)
	}
}
