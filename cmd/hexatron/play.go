package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/hexatron/internal/game"
	"github.com/lox/hexatron/internal/match"
	"github.com/lox/hexatron/internal/randutil"
)

type PlayCmd struct {
	Agent1 string `arg:"" help:"First agent (built-in name, exec:<command> or executable path)"`
	Agent2 string `arg:"" help:"Second agent"`

	MatchFlags `embed:""`

	Output   string `short:"o" help:"Replay output path (overrides config)"`
	Template string `type:"path" help:"HTML page template; writes HTML instead of JSON"`
}

func (c *PlayCmd) Run(g *Globals) error {
	s, err := loadSettings(g, c.MatchFlags)
	if err != nil {
		return err
	}
	ctx, cancel := setupSignalHandler(s.logger)
	defer cancel()

	m := s.config.Match
	ids := [2]string{c.Agent1, c.Agent2}
	var agents [2]game.Agent
	for seat, id := range ids {
		agent, err := loadAgent(id, randutil.Derive(m.Seed, seat), s.logger)
		if err != nil {
			return err
		}
		if closer, ok := agent.(io.Closer); ok {
			defer closer.Close()
		}
		agents[seat] = agent
	}

	driver := match.New(match.Config{
		Size:        m.Size,
		MaxTurns:    m.MaxTurns,
		MoveTimeout: s.timeout,
		Seed:        m.Seed,
		Names:       ids,
		Logger:      s.logger,
	}, agents)

	result, err := driver.Run(ctx)
	if err != nil {
		return err
	}

	output := s.config.Replay.Output
	if c.Output != "" {
		output = c.Output
	}
	templatePath := s.config.Replay.Template
	if c.Template != "" {
		templatePath = c.Template
	}
	var template string
	if templatePath != "" {
		data, err := os.ReadFile(templatePath)
		if err != nil {
			return fmt.Errorf("read template: %w", err)
		}
		template = string(data)
	}
	if err := result.Replay.Save(output, template); err != nil {
		return fmt.Errorf("save replay: %w", err)
	}

	fmt.Printf("%s vs %s: %s after %d turns (seed: %d)\n",
		ids[0], ids[1], result.Outcome, result.Turns, result.Seed)
	for seat, status := range result.Statuses {
		line := fmt.Sprintf("  player %d %-10s %s", seat+1, ids[seat], status)
		if result.Errors[seat] != nil {
			line += fmt.Sprintf(" (%v)", result.Errors[seat])
		}
		fmt.Println(line)
	}
	fmt.Printf("Replay written to %s\n", output)
	return nil
}
