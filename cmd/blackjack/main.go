package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command
type Globals struct {
	Debug  bool   `help:"Enable debug logging"`
	Config string `short:"c" default:"blackjack.hcl" type:"path" help:"Table configuration file (defaults apply when missing)"`
}

// Logger builds the logger for the selected verbosity
func (g *Globals) Logger() *log.Logger {
	return shared.SetupLogger(g.Debug)
}

// LoadConfig reads and validates the table file
func (g *Globals) LoadConfig(logger *log.Logger) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Loaded config", "path", g.Config, "seats", len(cfg.Seats), "decks", cfg.Table.Decks)
	return cfg, nil
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play at the table from the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Run bot seats through many rounds and report results"`
	Check    CheckCmd         `cmd:"config-check" help:"Validate a table configuration file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("A rules-faithful blackjack table for the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
