package main

import (
	"fmt"
	"time"

	"github.com/lox/hexatron/internal/gameid"
	"github.com/lox/hexatron/internal/render"
	"github.com/lox/hexatron/internal/replay"
)

type ShowCmd struct {
	Replay string `arg:"" type:"existingfile" help:"Replay JSON file"`
	Turn   int    `short:"t" default:"-1" help:"Frame to show (-1 for the final position)"`
	Plain  bool   `help:"Disable colours"`
}

func (c *ShowCmd) Run() error {
	r, err := replay.Load(c.Replay)
	if err != nil {
		return err
	}

	styles := render.DefaultStyles()
	if c.Plain {
		styles = render.PlainStyles()
	}
	out, err := render.Frame(r, c.Turn, styles)
	if err != nil {
		return err
	}
	fmt.Println(describeMatch(r))
	fmt.Println(out)
	return nil
}

// describeMatch summarises where a replay came from. Load has already
// validated the ID.
func describeMatch(r *replay.Replay) string {
	if r.ID == "" {
		return fmt.Sprintf("seed %d", r.Seed)
	}
	started, err := gameid.Timestamp(r.ID)
	if err != nil {
		return fmt.Sprintf("match %s  seed %d", r.ID, r.Seed)
	}
	return fmt.Sprintf("match %s  seed %d  played %s", r.ID, r.Seed, started.UTC().Format(time.RFC3339))
}
