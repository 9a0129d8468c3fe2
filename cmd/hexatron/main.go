package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/lox/hexatron/internal/bot"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config  string           `type:"path" default:"hexatron.hcl" help:"HCL configuration file (missing file uses defaults)"`
	Debug   bool             `help:"Enable debug logging"`
	Version kong.VersionFlag `short:"v" help:"Show version"`
}

type CLI struct {
	Globals

	Play   PlayCmd   `cmd:"" default:"withargs" help:"Play one match and write its replay"`
	Series SeriesCmd `cmd:"" help:"Play many matches and print aggregate statistics"`
	Bot    BotCmd    `cmd:"" help:"Serve a built-in agent over the stdio protocol"`
	Bots   BotsCmd   `cmd:"" help:"List agent identifiers"`
	Show   ShowCmd   `cmd:"" help:"Preview a replay in the terminal"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("hexatron"),
		kong.Description("Two-player Tron on a hexagonal grid"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)

	var loadErr *bot.AgentLoadError
	if errors.As(err, &loadErr) {
		fmt.Fprintf(os.Stderr, "hexatron: error: %v\n", err)
		os.Exit(2)
	}
	ctx.FatalIfErrorf(err)
}
