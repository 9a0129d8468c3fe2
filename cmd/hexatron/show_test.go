package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/hexatron/internal/replay"
)

func TestDescribeMatch(t *testing.T) {
	assert.Equal(t, "seed 42", describeMatch(&replay.Replay{Seed: 42}))

	// The first 48 bits, 0x01890a5dac96, are 2023-06-30T03:34:18.518Z.
	r := &replay.Replay{ID: "01890a5d-ac96-774b-bcce-b302099a8057", Seed: 7}
	assert.Equal(t, "match 01890a5d-ac96-774b-bcce-b302099a8057  seed 7  played 2023-06-30T03:34:18Z", describeMatch(r))
}
