package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/hexatron/internal/bot"
	"github.com/lox/hexatron/internal/config"
	"github.com/lox/hexatron/internal/game"
	"github.com/lox/hexatron/internal/randutil"
)

// MatchFlags override the match block of the config file.
type MatchFlags struct {
	Size        int    `help:"Board size (overrides config)"`
	MaxTurns    int    `help:"Turn cap (overrides config, defaults to size squared)"`
	MoveTimeout string `help:"Per-move budget such as 500ms, 0 disables (overrides config)"`
	Seed        int64  `help:"Seed for deterministic play (0 for random)"`
}

// settings is the resolved configuration for a run.
type settings struct {
	config  *config.Config
	timeout time.Duration
	logger  *log.Logger
}

func loadSettings(g *Globals, flags MatchFlags) (*settings, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}

	m := cfg.Match
	if flags.Size != 0 {
		m.Resize(flags.Size)
	}
	if flags.MaxTurns != 0 {
		m.MaxTurns = flags.MaxTurns
	}
	if flags.MoveTimeout != "" {
		m.MoveTimeout = flags.MoveTimeout
	}
	if flags.Seed != 0 {
		m.Seed = flags.Seed
	}
	m.Seed = randutil.Resolve(m.Seed)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}

	return &settings{
		config:  cfg,
		timeout: timeout,
		logger:  setupLogger(os.Stderr, cfg.LogLevel, g.Debug),
	}, nil
}

// loadAgent builds the agent for identifier id with its own seeded RNG.
func loadAgent(id string, seed int64, logger *log.Logger) (game.Agent, error) {
	return bot.New(id, bot.Deps{
		Rand:   randutil.New(seed),
		Logger: logger,
	})
}
