// Package bot provides the built-in Hexatron agents and resolves agent
// identifiers into game.Agent values.
package bot

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/hexatron/internal/game"
)

// ExecPrefix marks an identifier that names an external command.
const ExecPrefix = "exec:"

// ErrUnknownAgent is wrapped by AgentLoadError for unregistered identifiers.
var ErrUnknownAgent = errors.New("unknown agent")

// AgentLoadError reports an identifier that could not be turned into an
// agent. It is fatal for the match.
type AgentLoadError struct {
	ID  string
	Err error
}

func (e *AgentLoadError) Error() string {
	return fmt.Sprintf("load agent %q: %v", e.ID, e.Err)
}

func (e *AgentLoadError) Unwrap() error {
	return e.Err
}

// Deps are handed to every agent constructor.
type Deps struct {
	Rand   *rand.Rand
	Logger *log.Logger
}

// Factory builds a compiled-in agent.
type Factory func(deps Deps) game.Agent

var registry = map[string]Factory{
	"straight":   func(d Deps) game.Agent { return NewStraightBot(d.Logger) },
	"stochastic": func(d Deps) game.Agent { return NewStochasticBot(d.Rand, d.Logger) },
	"random":     func(d Deps) game.Agent { return NewRandBot(d.Rand, d.Logger) },
	"survivor":   func(d Deps) game.Agent { return NewSurvivorBot(d.Logger) },
	"flood":      func(d Deps) game.Agent { return NewFloodBot(d.Logger) },
}

// Names returns the registered built-in identifiers, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsBuiltin reports whether id names a compiled-in agent.
func IsBuiltin(id string) bool {
	_, ok := registry[strings.ToLower(strings.TrimSpace(id))]
	return ok
}

// New resolves id into an agent. Identifiers are either a built-in name, an
// "exec:" command line, or a path to an executable. The returned agent may
// implement io.Closer and should then be closed after the match.
func New(id string, deps Deps) (game.Agent, error) {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	name := strings.TrimSpace(id)
	switch {
	case strings.HasPrefix(name, ExecPrefix):
		return startCommand(id, strings.Fields(strings.TrimPrefix(name, ExecPrefix)), deps.Logger)
	case strings.Contains(name, "/"):
		return startCommand(id, strings.Fields(name), deps.Logger)
	}

	factory, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, &AgentLoadError{ID: id, Err: fmt.Errorf("%w (available: %s)", ErrUnknownAgent, strings.Join(Names(), ", "))}
	}
	return factory(deps), nil
}

func startCommand(id string, argv []string, logger *log.Logger) (game.Agent, error) {
	if len(argv) == 0 {
		return nil, &AgentLoadError{ID: id, Err: errors.New("empty command")}
	}
	agent, err := StartSubprocess(argv[0], argv[1:], logger)
	if err != nil {
		return nil, &AgentLoadError{ID: id, Err: err}
	}
	return agent, nil
}
