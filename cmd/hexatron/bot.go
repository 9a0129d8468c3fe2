package main

import (
	"fmt"
	"os"

	"github.com/lox/hexatron/internal/bot"
	"github.com/lox/hexatron/internal/randutil"
)

type BotCmd struct {
	Name string `arg:"" help:"Built-in agent to serve"`
	Seed int64  `help:"Seed for the agent's RNG (0 for random)"`
}

// Run serves the agent on stdin/stdout. Logs go to stderr so they never
// mix with protocol lines.
func (c *BotCmd) Run(g *Globals) error {
	logger := setupLogger(os.Stderr, "warn", g.Debug).WithPrefix("bot")
	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	if err := lookupBuiltin(c.Name); err != nil {
		return err
	}
	agent, err := loadAgent(c.Name, randutil.Resolve(c.Seed), logger)
	if err != nil {
		return err
	}

	logger.Debug("Serving agent", "name", c.Name)
	return bot.Serve(ctx, agent, os.Stdin, os.Stdout)
}

// lookupBuiltin rejects anything but a built-in name.
func lookupBuiltin(name string) error {
	if bot.IsBuiltin(name) {
		return nil
	}
	return &bot.AgentLoadError{ID: name, Err: fmt.Errorf("%w: only built-in agents can be served", bot.ErrUnknownAgent)}
}
