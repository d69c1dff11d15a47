// Package config loads table configuration from HCL files.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/bot"
)

// Human marks a seat played from the terminal
const Human = "human"

const (
	defaultDecks    = 6
	defaultTableMin = 10
	defaultTableMax = 10000
	defaultWallet   = 500
)

// Config is a complete table file
type Config struct {
	Table *TableBlock `hcl:"table,block"`
	Seats []SeatBlock `hcl:"seat,block"`
}

// TableBlock holds the table rules
type TableBlock struct {
	Decks    int  `hcl:"decks,optional"`
	TableMin *int `hcl:"table_min,optional"`
	TableMax int  `hcl:"table_max,optional"`

	// Seed fixes the shoe order; 0 picks one from the clock
	Seed int64 `hcl:"seed,optional"`

	// MaxAttempts bounds re-prompts after a rejected bet or action
	MaxAttempts int `hcl:"max_attempts,optional"`
}

// SeatBlock configures one seat, in table order
type SeatBlock struct {
	Name     string `hcl:"name,label"`
	Wallet   *int   `hcl:"wallet,optional"`
	Strategy string `hcl:"strategy,optional"`
	Bet      int    `hcl:"bet,optional"`
	Insure   bool   `hcl:"insure,optional"`
}

// Default returns the classic table: one $500 seat at a six deck
// $10-$10,000 table.
func Default() *Config {
	cfg := &Config{
		Seats: []SeatBlock{{Name: "player", Strategy: Human}},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads the table file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, path)
}

// Parse decodes an HCL table file and fills in defaults
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if len(cfg.Seats) == 0 {
		cfg.Seats = []SeatBlock{{Name: "player", Strategy: Human}}
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Table == nil {
		c.Table = &TableBlock{}
	}
	t := c.Table
	if t.Decks == 0 {
		t.Decks = defaultDecks
	}
	if t.TableMin == nil {
		t.TableMin = ptr(defaultTableMin)
	}
	if t.TableMax == 0 {
		t.TableMax = max(defaultTableMax, *t.TableMin)
	}

	for i := range c.Seats {
		s := &c.Seats[i]
		if s.Strategy == "" {
			s.Strategy = Human
		}
		s.Strategy = strings.ToLower(s.Strategy)
		if s.Wallet == nil {
			s.Wallet = ptr(defaultWallet)
		}
		if s.Bet == 0 {
			s.Bet = *t.TableMin
		}
	}
}

// Validate checks the table rules and every seat
func (c *Config) Validate() error {
	if c.Table == nil {
		return errors.New("table block is required")
	}
	if len(c.Seats) == 0 {
		return errors.New("at least one seat must be configured")
	}
	if c.Table.MaxAttempts < 0 {
		return fmt.Errorf("max_attempts must not be negative, got %d", c.Table.MaxAttempts)
	}

	valid := append(bot.Names(), Human)
	seen := make(map[string]bool, len(c.Seats))
	for _, s := range c.Seats {
		if seen[s.Name] {
			return fmt.Errorf("seat %q is declared twice", s.Name)
		}
		seen[s.Name] = true
		if !slices.Contains(valid, s.Strategy) {
			return fmt.Errorf("seat %s: invalid strategy %s (want one of %s)", s.Name, s.Strategy, strings.Join(valid, ", "))
		}
		if s.Bet < 0 {
			return fmt.Errorf("seat %s: bet must not be negative", s.Name)
		}
	}

	if err := c.GameConfig().Validate(); err != nil {
		return fmt.Errorf("table: %w", err)
	}
	return nil
}

// GameConfig converts the file into engine table parameters. Randomness and
// logging are left for the caller.
func (c *Config) GameConfig() blackjack.Config {
	wallets := make([]int, len(c.Seats))
	for i, s := range c.Seats {
		if s.Wallet != nil {
			wallets[i] = *s.Wallet
		}
	}
	gc := blackjack.Config{
		NumPlayers: len(c.Seats),
		NumDecks:   c.Table.Decks,
		TableMax:   c.Table.TableMax,
		Wallets:    wallets,
	}
	if c.Table.TableMin != nil {
		gc.TableMin = *c.Table.TableMin
	}
	return gc
}

// HumanSeats returns the indices of seats played from the terminal
func (c *Config) HumanSeats() []int {
	var seats []int
	for i, s := range c.Seats {
		if s.Strategy == Human {
			seats = append(seats, i)
		}
	}
	return seats
}

func ptr[T any](v T) *T {
	return &v
}
