package main

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/simulator"
)

type SimulateCmd struct {
	Rounds   int    `default:"10000" help:"Rounds per session"`
	Sessions int    `default:"8" help:"Independent tables to simulate"`
	Workers  int    `help:"Parallel sessions (0 uses every CPU)"`
	Seed     int64  `help:"Run seed (0 uses the config seed, then the clock)"`
	Strategy string `default:"basic" help:"Strategy for seats configured as human"`
	Wallet   int    `help:"Override every seat's starting bankroll"`
	Output   string `short:"o" type:"path" help:"Also write a JSON summary to this file"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	logger := g.Logger()
	cfg, err := g.LoadConfig(logger)
	if err != nil {
		return err
	}

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	return c.simulate(ctx, cfg, os.Stdout, logger)
}

func (c *SimulateCmd) simulate(ctx context.Context, cfg *config.Config, out io.Writer, logger *log.Logger) error {
	seed := c.Seed
	if seed == 0 {
		seed = cfg.Table.Seed
	}

	seats := make([]simulator.Seat, len(cfg.Seats))
	for i, s := range cfg.Seats {
		strategy := s.Strategy
		if strategy == config.Human {
			strategy = c.Strategy
		}
		wallet := *s.Wallet
		if c.Wallet > 0 {
			wallet = c.Wallet
		}
		seats[i] = simulator.Seat{
			Strategy: strategy,
			Bet:      max(s.Bet, 1),
			Wallet:   wallet,
			Insure:   s.Insure,
		}
	}

	sim, err := simulator.New(simulator.Config{
		Seats:       seats,
		NumDecks:    cfg.Table.Decks,
		TableMin:    *cfg.Table.TableMin,
		TableMax:    cfg.Table.TableMax,
		Rounds:      c.Rounds,
		Sessions:    c.Sessions,
		Workers:     c.Workers,
		Seed:        seed,
		MaxAttempts: cfg.Table.MaxAttempts,
		Logger:      logger,
		Progress: func(done, total int) {
			logger.Debug("Session finished", "done", done, "total", total)
		},
	})
	if err != nil {
		return err
	}

	resolved := sim.Config()
	logger.Info("Starting simulation", "sessions", resolved.Sessions, "rounds", resolved.Rounds, "workers", resolved.Workers, "seed", resolved.Seed)

	report, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	simulator.WriteSummary(out, report)

	if c.Output != "" {
		if err := fileutil.WriteJSON(c.Output, report.Summary()); err != nil {
			return err
		}
		logger.Info("Wrote report", "path", c.Output)
	}
	return nil
}
