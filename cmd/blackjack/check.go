package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/display"
)

type CheckCmd struct{}

func (c *CheckCmd) Run(g *Globals) error {
	logger := g.Logger()
	cfg, err := g.LoadConfig(logger)
	if err != nil {
		return fmt.Errorf("%s: %w", g.Config, err)
	}
	describe(os.Stdout, g.Config, cfg)
	return nil
}

func describe(w io.Writer, path string, cfg *config.Config) {
	t := cfg.Table
	fmt.Fprintf(w, "%s is valid\n", path)
	fmt.Fprintf(w, "Table: %d decks, bets %s-%s", t.Decks, display.Money(*t.TableMin), display.Money(t.TableMax))
	if t.Seed != 0 {
		fmt.Fprintf(w, ", seed %d", t.Seed)
	}
	fmt.Fprintln(w)
	for _, s := range cfg.Seats {
		fmt.Fprintf(w, "Seat %s: %s, wallet %s, bet %s", s.Name, s.Strategy, display.Money(*s.Wallet), display.Money(s.Bet))
		if s.Insure {
			fmt.Fprint(w, ", takes insurance")
		}
		fmt.Fprintln(w)
	}
}
