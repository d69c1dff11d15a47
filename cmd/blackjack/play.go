package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/sanity-io/litter"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/randutil"
)

type PlayCmd struct {
	Seed   int64 `help:"Shoe seed (0 uses the config seed, then the clock)"`
	Rounds int   `help:"Stop after this many rounds (0 plays until every human quits; bot-only tables play one)"`
	Plain  bool  `help:"Disable colour output"`
}

func (c *PlayCmd) Run(g *Globals) error {
	logger := g.Logger()
	cfg, err := g.LoadConfig(logger)
	if err != nil {
		return err
	}
	return c.play(cfg, os.Stdin, os.Stdout, logger)
}

func (c *PlayCmd) play(cfg *config.Config, in io.Reader, out io.Writer, logger *log.Logger) error {
	seed := c.Seed
	if seed == 0 {
		seed = cfg.Table.Seed
	}
	seed = randutil.ResolveSeed(seed)
	logger.Debug("Opening table", "seed", seed)

	gc := cfg.GameConfig()
	gc.Rand = randutil.New(seed)
	gc.Logger = logger
	game, err := blackjack.NewGame(gc)
	if err != nil {
		return err
	}

	names := make([]string, len(cfg.Seats))
	for i, s := range cfg.Seats {
		names[i] = s.Name
	}
	var opts []display.Option
	opts = append(opts, display.WithNames(names))
	if c.Plain {
		opts = append(opts, display.WithPlain())
	}
	printer := display.New(out, game, opts...)

	scanner := bufio.NewScanner(in)
	agents := make([]blackjack.Agent, len(cfg.Seats))
	var humans []*terminalAgent
	for i, s := range cfg.Seats {
		if s.Strategy == config.Human {
			h := newTerminalAgent(i, scanner, out, printer, game)
			humans = append(humans, h)
			agents[i] = h
			continue
		}
		b, err := bot.New(s.Strategy, bot.Options{
			Bet:    max(s.Bet, 1),
			Insure: s.Insure,
			Rand:   randutil.New(randutil.Derive(seed, i+1)),
			Logger: logger,
		})
		if err != nil {
			return fmt.Errorf("seat %s: %w", s.Name, err)
		}
		agents[i] = b
	}

	bus := blackjack.NewEventBus()
	bus.Subscribe(printer)
	engine, err := blackjack.NewEngine(game, agents, logger,
		blackjack.WithEventBus(bus),
		blackjack.WithMaxAttempts(cfg.Table.MaxAttempts),
	)
	if err != nil {
		return err
	}

	rounds := c.Rounds
	if rounds == 0 && len(humans) == 0 {
		rounds = 1
	}

	for rounds == 0 || engine.Rounds() < rounds {
		result, err := engine.PlayRound()
		if errors.Is(err, blackjack.ErrNoPlayers) {
			fmt.Fprintln(out, "Nobody at the table can cover the minimum bet.")
			break
		}
		if err != nil {
			return err
		}
		if logger.GetLevel() <= log.DebugLevel {
			logger.Debug("Round result", "round", engine.Rounds(), "dump", litter.Sdump(result))
		}
		if len(humans) > 0 && allQuit(humans) {
			break
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, printer.Styles().SubHeader.Render(fmt.Sprintf("After %d rounds", engine.Rounds())))
	printer.Table()
	return nil
}

func allQuit(humans []*terminalAgent) bool {
	for _, h := range humans {
		if !h.Quit() {
			return false
		}
	}
	return true
}
