// Package config loads match settings from HCL files.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/hexatron/internal/game"
	"github.com/lox/hexatron/internal/hex"
)

// Defaults used when the file omits a value.
const (
	DefaultOutput      = "replay.json"
	DefaultMoveTimeout = time.Second
	DefaultLogLevel    = "info"
)

// Config is the complete file layout:
//
//	match {
//	  size         = 13
//	  max_turns    = 200
//	  move_timeout = "1s"
//	  seed         = 42
//	}
//
//	replay {
//	  output   = "replay.json"
//	  template = "html.template"
//	}
type Config struct {
	Match    *MatchSettings  `hcl:"match,block"`
	Replay   *ReplaySettings `hcl:"replay,block"`
	LogLevel string          `hcl:"log_level,optional"`
}

// MatchSettings configures a single game.
type MatchSettings struct {
	Size        int    `hcl:"size,optional"`
	MaxTurns    int    `hcl:"max_turns,optional"`
	MoveTimeout string `hcl:"move_timeout,optional"`
	Seed        int64  `hcl:"seed,optional"`

	maxTurnsDefaulted bool
}

// Resize changes the board size. A turn cap the file left unset follows
// the new size.
func (m *MatchSettings) Resize(size int) {
	m.Size = size
	if m.maxTurnsDefaulted {
		m.MaxTurns = size * size
	}
}

// ReplaySettings configures the replay artifact.
type ReplaySettings struct {
	Output   string `hcl:"output,optional"`
	Template string `hcl:"template,optional"`
}

// Default returns the configuration used without a file.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads filename, falling back to defaults when it does not exist.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Match == nil {
		c.Match = &MatchSettings{}
	}
	if c.Replay == nil {
		c.Replay = &ReplaySettings{}
	}
	if c.Match.Size == 0 {
		c.Match.Size = game.DefaultSize
	}
	if c.Match.MaxTurns == 0 {
		// Two moves per turn fill the board long before this.
		c.Match.MaxTurns = c.Match.Size * c.Match.Size
		c.Match.maxTurnsDefaulted = true
	}
	if c.Match.MoveTimeout == "" {
		c.Match.MoveTimeout = DefaultMoveTimeout.String()
	}
	if c.Replay.Output == "" {
		c.Replay.Output = DefaultOutput
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Match.Size < hex.MinSize || c.Match.Size > hex.MaxSize {
		return fmt.Errorf("size must be between %d and %d, got %d", hex.MinSize, hex.MaxSize, c.Match.Size)
	}
	if c.Match.MaxTurns < 0 {
		return fmt.Errorf("max_turns must not be negative, got %d", c.Match.MaxTurns)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	return nil
}

// Timeout parses the per-move budget. Zero disables it.
func (c *Config) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Match.MoveTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid move_timeout %q: %w", c.Match.MoveTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("move_timeout must not be negative, got %s", d)
	}
	return d, nil
}
