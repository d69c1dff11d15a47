// Package bot provides computer players for the blackjack engine. Bots
// only decide; the engine validates and applies every decision.
package bot

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/blackjack"
)

// IntN is the slice of a random source the bots need
type IntN interface {
	IntN(n int) int
}

// Strategy names accepted by New
const (
	Basic    = "basic"
	Mimic    = "mimic"
	Cautious = "cautious"
	Random   = "random"
	Timid    = "timid"
)

// Options configures a bot built by New
type Options struct {
	// Bet is the flat opening wager; it is clamped to what the table allows
	Bet int

	// Insure takes the maximum insurance whenever it is offered
	Insure bool

	// Rand is required by the random bot
	Rand IntN

	Logger *log.Logger
}

type constructor func(Options) blackjack.Policy

var registry = map[string]constructor{
	Basic:    func(Options) blackjack.Policy { return BasicStrategy{} },
	Mimic:    func(Options) blackjack.Policy { return blackjack.DealerPolicy },
	Cautious: func(Options) blackjack.Policy { return Careful{} },
	Timid:    func(Options) blackjack.Policy { return blackjack.PolicyFunc(standPat) },
	Random:   func(o Options) blackjack.Policy { return NewRandBot(o.Rand) },
}

// Names lists the registered strategies in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New builds the named bot
func New(name string, opts Options) (*Bot, error) {
	name = strings.ToLower(name)
	build, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
	if name == Random && opts.Rand == nil {
		return nil, fmt.Errorf("strategy %q needs a random source", name)
	}
	if opts.Bet <= 0 {
		return nil, fmt.Errorf("strategy %q needs a positive bet, got %d", name, opts.Bet)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Bot{
		name:   name,
		policy: build(opts),
		bet:    opts.Bet,
		insure: opts.Insure,
		logger: opts.Logger.WithPrefix("bot"),
	}, nil
}

func standPat(blackjack.HandState) blackjack.Action {
	return blackjack.Stand
}

// Bot pairs a playing policy with a flat betting plan. It satisfies
// blackjack.Agent.
type Bot struct {
	name   string
	policy blackjack.Policy
	bet    int
	insure bool
	logger *log.Logger
}

// Name returns the strategy name
func (b *Bot) Name() string {
	return b.name
}

// Wager bets the flat amount, raised to the table minimum and capped at what
// the seat can afford. A seat that cannot reach the minimum sits out.
func (b *Bot) Wager(view blackjack.SeatView) int {
	if view.Limit < view.TableMin {
		return 0
	}
	return min(max(b.bet, view.TableMin), view.Limit)
}

// Insure takes the largest allowed insurance when configured to, as long as
// it still meets the table minimum.
func (b *Bot) Insure(view blackjack.SeatView) int {
	if !b.insure || view.Limit < view.TableMin {
		return 0
	}
	return view.Limit
}

// Decide delegates to the playing policy
func (b *Bot) Decide(state blackjack.HandState) blackjack.Action {
	a := b.policy.Decide(state)
	b.logger.Debug("Decision", "strategy", b.name, "total", state.Total(), "soft", state.Soft(), "action", a)
	return a
}
