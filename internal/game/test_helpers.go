package game

import (
	"context"

	"github.com/lox/hexatron/internal/hex"
	"github.com/lox/hexatron/internal/randutil"
)

// TestEngineOption configures test engine creation
type TestEngineOption func(*testEngineBuilder)

type testEngineBuilder struct {
	seed   int64
	config Config
}

func WithSeed(seed int64) TestEngineOption {
	return func(b *testEngineBuilder) { b.seed = seed }
}

func WithSize(size int) TestEngineOption {
	return func(b *testEngineBuilder) { b.config.Size = size }
}

func WithMaxTurns(turns int) TestEngineOption {
	return func(b *testEngineBuilder) { b.config.MaxTurns = turns }
}

func WithStarts(p1, p2 Start) TestEngineOption {
	return func(b *testEngineBuilder) {
		starts := [2]Start{p1, p2}
		b.config.Starts = &starts
	}
}

// NewTestEngine creates an engine for testing with sensible defaults. It
// panics on invalid options.
func NewTestEngine(opts ...TestEngineOption) *Engine {
	builder := &testEngineBuilder{
		seed:   42,
		config: Config{Size: DefaultSize},
	}
	for _, opt := range opts {
		opt(builder)
	}
	builder.config.Rand = randutil.New(builder.seed)

	e, err := NewEngine(builder.config)
	if err != nil {
		panic(err)
	}
	return e
}

// CollisionCourse returns starts on a size×size board where both players
// face each other along the long diagonal of the diamond.
func CollisionCourse(size int) (Start, Start) {
	return Start{Position: hex.Cell{Col: 0, Row: size - 1}, Orientation: hex.NorthEast},
		Start{Position: hex.Cell{Col: size - 1, Row: 0}, Orientation: hex.SouthWest}
}

// ScriptedAgent replays a fixed list of deltas, then repeats Fallback.
type ScriptedAgent struct {
	Deltas   []int
	Fallback int
	calls    int
}

func NewScriptedAgent(deltas ...int) *ScriptedAgent {
	return &ScriptedAgent{Deltas: deltas}
}

func (s *ScriptedAgent) GenerateMove(_ context.Context, _ Observation) (int, error) {
	defer func() { s.calls++ }()
	if s.calls < len(s.Deltas) {
		return s.Deltas[s.calls], nil
	}
	return s.Fallback, nil
}
