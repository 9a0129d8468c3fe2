package main

import (
	"fmt"

	"github.com/lox/hexatron/internal/bot"
)

type BotsCmd struct{}

var botDescriptions = map[string]string{
	"straight":   "never turns",
	"stochastic": "10% left, 10% right, otherwise straight",
	"random":     "uniform random delta",
	"survivor":   "avoids immediately fatal moves",
	"flood":      "maximizes the area it can still reach",
}

func (c *BotsCmd) Run() error {
	fmt.Println("Built-in agents:")
	for _, name := range bot.Names() {
		fmt.Printf("  %-12s %s\n", name, botDescriptions[name])
	}
	fmt.Println()
	fmt.Printf("External agents: %s<command> [args] or a path to an executable.\n", bot.ExecPrefix)
	fmt.Println("They read one JSON observation per line on stdin and answer {\"move\": <delta>}.")
	return nil
}
