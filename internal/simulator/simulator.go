package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
)

// Seat configures one simulated player
type Seat struct {
	Strategy string
	Bet      int
	Wallet   int
	Insure   bool
}

// Config holds configuration for running simulations
type Config struct {
	Seats    []Seat
	NumDecks int
	TableMin int
	TableMax int

	// Rounds is the number of rounds per session. A session ends early once
	// no seat can cover the table minimum.
	Rounds int

	// Sessions are independent tables, each with its own shoe and seed
	Sessions int
	Workers  int
	Seed     int64

	// MaxAttempts bounds rejected decisions per prompt; 0 keeps the engine
	// default
	MaxAttempts int

	// Progress, when set, is called after each session with the number of
	// sessions finished so far. It may be called from several goroutines.
	Progress func(done, total int)

	Clock  quartz.Clock
	Logger *log.Logger
}

// SeatReport aggregates one seat across every session
type SeatReport struct {
	Strategy string
	Stats    *statistics.Statistics

	// Broke counts sessions this seat finished unable to cover the minimum
	Broke int
}

// Report is the outcome of a simulation run
type Report struct {
	Seats    []SeatReport
	Rounds   int
	Sessions int
	Shuffles int
	Seed     int64
	Elapsed  time.Duration
}

// RoundsPerSecond returns the simulation throughput
func (r *Report) RoundsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Rounds) / r.Elapsed.Seconds()
}

// Simulator runs blackjack sessions between bots
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration, filling in
// defaults for the clock, logger, worker count and seed.
func New(config Config) (*Simulator, error) {
	if len(config.Seats) == 0 {
		return nil, errors.New("simulator: at least one seat is required")
	}
	if config.Rounds <= 0 {
		return nil, fmt.Errorf("simulator: rounds must be positive, got %d", config.Rounds)
	}
	if config.Sessions <= 0 {
		config.Sessions = 1
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	config.Seed = randutil.ResolveSeed(config.Seed)

	if _, err := tableConfig(config, nil); err != nil {
		return nil, err
	}
	for i, seat := range config.Seats {
		if _, err := bot.New(seat.Strategy, bot.Options{Bet: seat.Bet, Rand: randutil.New(0)}); err != nil {
			return nil, fmt.Errorf("seat %d: %w", i, err)
		}
	}
	return &Simulator{config: config}, nil
}

// Config returns the resolved configuration
func (s *Simulator) Config() Config {
	return s.config
}

type sessionResult struct {
	stats    []*statistics.Statistics
	broke    []bool
	rounds   int
	shuffles int
}

// Run plays every session, spreading them over the worker pool. Sessions
// are seeded from the run seed and merged in order, so a given seed always
// produces the same report.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	cfg := s.config
	logger := cfg.Logger.WithPrefix("simulator")
	start := cfg.Clock.Now()

	results := make([]sessionResult, cfg.Sessions)
	var done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := range cfg.Sessions {
		g.Go(func() error {
			res, err := s.playSession(ctx, i, logger)
			if err != nil {
				return fmt.Errorf("session %d: %w", i, err)
			}
			results[i] = res
			if cfg.Progress != nil {
				cfg.Progress(int(done.Add(1)), cfg.Sessions)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Seats:    make([]SeatReport, len(cfg.Seats)),
		Sessions: cfg.Sessions,
		Seed:     cfg.Seed,
	}
	for i, seat := range cfg.Seats {
		report.Seats[i] = SeatReport{Strategy: seat.Strategy, Stats: &statistics.Statistics{}}
	}
	for _, res := range results {
		report.Rounds += res.rounds
		report.Shuffles += res.shuffles
		for i := range cfg.Seats {
			report.Seats[i].Stats.Merge(res.stats[i])
			if res.broke[i] {
				report.Seats[i].Broke++
			}
		}
	}
	report.Elapsed = cfg.Clock.Since(start)

	for i, seat := range report.Seats {
		if seat.Stats.Rounds == 0 {
			continue
		}
		if err := seat.Stats.Validate(); err != nil {
			return nil, fmt.Errorf("seat %d statistics validation failed: %w", i, err)
		}
	}

	logger.Info("Simulation complete", "rounds", report.Rounds, "sessions", report.Sessions, "elapsed", report.Elapsed)
	return report, nil
}

func (s *Simulator) playSession(ctx context.Context, session int, logger *log.Logger) (sessionResult, error) {
	cfg := s.config
	seed := randutil.Derive(cfg.Seed, session)
	logger = logger.With("session", uuid.NewString()[:8], "seed", seed)

	tc, err := tableConfig(cfg, randutil.New(seed))
	if err != nil {
		return sessionResult{}, err
	}
	tc.Logger = logger
	game, err := blackjack.NewGame(tc)
	if err != nil {
		return sessionResult{}, err
	}

	agents := make([]blackjack.Agent, len(cfg.Seats))
	for i, seat := range cfg.Seats {
		b, err := bot.New(seat.Strategy, bot.Options{
			Bet:    seat.Bet,
			Insure: seat.Insure,
			Rand:   randutil.New(randutil.Derive(seed, i+1)),
			Logger: logger,
		})
		if err != nil {
			return sessionResult{}, err
		}
		agents[i] = b
	}
	engine, err := blackjack.NewEngine(game, agents, logger,
		blackjack.WithClock(cfg.Clock),
		blackjack.WithMaxAttempts(cfg.MaxAttempts),
	)
	if err != nil {
		return sessionResult{}, err
	}

	res := sessionResult{
		stats: make([]*statistics.Statistics, len(cfg.Seats)),
		broke: make([]bool, len(cfg.Seats)),
	}
	for i := range res.stats {
		res.stats[i] = &statistics.Statistics{}
	}

	for range cfg.Rounds {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		round, err := engine.PlayRound()
		if errors.Is(err, blackjack.ErrNoPlayers) {
			logger.Debug("Every seat is broke", "rounds", res.rounds)
			break
		}
		if err != nil {
			return res, err
		}
		res.rounds++
		for i := range cfg.Seats {
			res.stats[i].Add(seatResult(round, i))
		}
	}

	for i := range cfg.Seats {
		res.broke[i] = !game.HasEnoughToPlay(i, 0)
	}
	res.shuffles = game.Shuffles()
	return res, nil
}

func tableConfig(cfg Config, rng deck.Rand) (blackjack.Config, error) {
	wallets := make([]int, len(cfg.Seats))
	for i, seat := range cfg.Seats {
		wallets[i] = seat.Wallet
	}
	tc := blackjack.Config{
		NumPlayers: len(cfg.Seats),
		NumDecks:   cfg.NumDecks,
		TableMin:   cfg.TableMin,
		TableMax:   cfg.TableMax,
		Wallets:    wallets,
		Rand:       rng,
	}
	return tc, tc.Validate()
}

// seatResult condenses a round into seat i's statistics entry
func seatResult(round *blackjack.RoundResult, i int) statistics.RoundResult {
	r := statistics.RoundResult{
		Net:      round.Net[i],
		Bet:      round.Bets[i],
		Outcomes: round.Outcomes[i],
		Insured:  round.Insurance[i] > 0,
	}
	for _, a := range round.Actions {
		if a.Seat != i {
			continue
		}
		switch a.Action {
		case blackjack.DoubleDown:
			r.Doubled = true
		case blackjack.Split:
			r.Split = true
		}
	}
	return r
}
