package blackjack

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/blackjack/internal/deck"
)

// SeatView is what an agent sees when asked for a wager
type SeatView struct {
	Seat     int
	Wealth   int
	Bet      int
	TableMin int
	TableMax int

	// Limit is the largest amount the engine will accept
	Limit int

	DealerUp    deck.Card
	HasDealerUp bool
}

// Agent makes every decision for one seat. Agents only decide; the engine
// applies the decision and re-prompts when it is rejected.
type Agent interface {
	Policy

	// Wager returns the opening bet. Zero sits the round out.
	Wager(view SeatView) int

	// Insure returns the insurance bet. Zero declines.
	Insure(view SeatView) int
}

// ActionRecord is one applied player action
type ActionRecord struct {
	Seat      int
	Hand      int
	Action    Action
	Drawn     []deck.Card
	ShuffleAt int
}

// RoundResult contains the results of a completed round
type RoundResult struct {
	RoundID string

	Bets            []int
	Insurance       []int
	Dealt           []deck.Card
	DealShuffleAt   int
	Actions         []ActionRecord
	DealerDrew      []deck.Card
	DealerShuffleAt int
	DealerScore     int

	// Outcomes holds each seat's outcomes, one per hand; nil for seats
	// that sat the round out.
	Outcomes [][]Outcome

	// Net is each seat's bankroll change over the round
	Net []int
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithClock sets the clock used to timestamp events
func WithClock(clock quartz.Clock) EngineOption {
	return func(e *Engine) { e.clock = clock }
}

// WithEventBus publishes round events on bus
func WithEventBus(bus EventBus) EngineOption {
	return func(e *Engine) { e.bus = bus }
}

// WithMaxAttempts bounds how many rejected decisions an agent may make for
// a single prompt before the engine falls back.
func WithMaxAttempts(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.attempts = n
		}
	}
}

// Engine runs complete rounds on a Game, asking one agent per seat for
// decisions.
type Engine struct {
	game     *Game
	agents   []Agent
	bus      EventBus
	clock    quartz.Clock
	logger   *log.Logger
	attempts int
	rounds   int
}

// NewEngine creates an engine for game with one agent per seat
func NewEngine(game *Game, agents []Agent, logger *log.Logger, opts ...EngineOption) (*Engine, error) {
	if game == nil {
		return nil, fmt.Errorf("%w: engine needs a game", ErrInvalidArgument)
	}
	if len(agents) != game.NumPlayers() {
		return nil, fmt.Errorf("%w: %d agents for %d seats", ErrInvalidArgument, len(agents), game.NumPlayers())
	}
	for i, a := range agents {
		if a == nil {
			return nil, fmt.Errorf("%w: seat %d has no agent", ErrInvalidArgument, i)
		}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	e := &Engine{
		game:     game,
		agents:   agents,
		bus:      NewEventBus(),
		clock:    quartz.NewReal(),
		logger:   logger,
		attempts: 3,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Game returns the table the engine is driving
func (e *Engine) Game() *Game {
	return e.game
}

// EventBus returns the bus round events are published on
func (e *Engine) EventBus() EventBus {
	return e.bus
}

// Rounds returns how many rounds have been played
func (e *Engine) Rounds() int {
	return e.rounds
}

// PlayRound runs one round from betting to cleanup. It returns ErrNoPlayers
// without touching the table when nobody can cover the minimum, and
// ErrShoeExhausted if the shoe runs dry.
func (e *Engine) PlayRound() (*RoundResult, error) {
	g := e.game
	n := g.NumPlayers()

	funded := false
	for i := range n {
		if g.HasEnoughToPlay(i, 0) {
			funded = true
			break
		}
	}
	if !funded {
		return nil, ErrNoPlayers
	}

	result := &RoundResult{
		RoundID:   uuid.NewString(),
		Bets:      make([]int, n),
		Insurance: make([]int, n),
		Outcomes:  make([][]Outcome, n),
		Net:       make([]int, n),
	}
	start := make([]int, n)
	for i := range n {
		start[i] = g.Wealth(i) + g.BetOn(i, 0)
	}
	logger := e.logger.With("round", result.RoundID[:8])
	logger.Debug("Starting round")

	e.takeBets(result, logger)
	e.publish(RoundStartEvent{RoundID: result.RoundID, Bets: result.Bets, At: e.clock.Now()})

	dealt, err := g.DealInitialCards()
	if err != nil {
		return nil, e.abort(err)
	}
	result.Dealt = dealt
	result.DealShuffleAt = ShuffleIndex(len(dealt), g.DrawsSinceShuffle())
	e.publish(CardsDealtEvent{Cards: dealt, ShuffleAt: result.DealShuffleAt, At: e.clock.Now()})

	if g.InsuranceOffered() {
		e.takeInsurance(result, logger)
	}

	if !g.DealerHasBlackjack() {
		if err := e.playSeats(result, logger); err != nil {
			return nil, e.abort(err)
		}
	}

	// with a natural the dealer stands at once; the call only reveals the
	// hole card
	drew, err := g.DealerTurn()
	if err != nil {
		return nil, e.abort(err)
	}
	result.DealerDrew = drew
	result.DealerShuffleAt = ShuffleIndex(len(drew), g.DrawsSinceShuffle())
	result.DealerScore = g.Score(DealerID, 0)
	e.publish(DealerTurnEvent{Drawn: drew, ShuffleAt: result.DealerShuffleAt, Score: result.DealerScore, At: e.clock.Now()})

	hands := make([]int, n)
	for i := range n {
		hands[i] = g.NumHands(i)
	}
	outcomes := g.ResolveAllBets()
	g.ResolveAllInsuranceBets()

	k := 0
	for i := range n {
		seat := outcomes[k : k+hands[i]]
		k += hands[i]
		if result.Bets[i] > 0 {
			result.Outcomes[i] = seat
		}
		result.Net[i] = g.Wealth(i) - start[i]
	}

	g.EndTurn()
	e.rounds++
	logger.Debug("Round complete", "dealer", result.DealerScore, "net", result.Net)
	e.publish(RoundEndEvent{Result: result, At: e.clock.Now()})
	return result, nil
}

func (e *Engine) takeBets(result *RoundResult, logger *log.Logger) {
	g := e.game
	for i, agent := range e.agents {
		if !g.HasEnoughToPlay(i, 0) {
			continue
		}
		err := e.retry(func() error {
			amount := agent.Wager(e.view(i, g.WagerLimit(i)))
			if amount == 0 {
				return nil
			}
			return g.PlaceInitialBet(i, amount)
		})
		if err != nil {
			logger.Warn("Seat sits out after rejected bets", "seat", i, "error", err)
		}
		result.Bets[i] = g.BetOn(i, 0)
	}
}

func (e *Engine) takeInsurance(result *RoundResult, logger *log.Logger) {
	g := e.game
	for i, agent := range e.agents {
		if result.Bets[i] == 0 {
			continue
		}
		err := e.retry(func() error {
			return g.PlayerInsuranceBet(i, agent.Insure(e.view(i, g.InsuranceLimit(i))))
		})
		if err != nil {
			logger.Warn("Insurance declined after rejected bets", "seat", i, "error", err)
		}
		result.Insurance[i] = g.Insurance(i)
	}
}

func (e *Engine) playSeats(result *RoundResult, logger *log.Logger) error {
	g := e.game
	for i, agent := range e.agents {
		if result.Bets[i] == 0 {
			continue
		}
		// a split appends a hand, so the bound is re-read every pass
		for j := 0; j < g.NumHands(i); j++ {
			if err := e.playHand(result, logger, agent, i, j); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) playHand(result *RoundResult, logger *log.Logger, agent Agent, i, j int) error {
	g := e.game
	failures := 0
	for g.IsNotStandingOrBusted(i, j) {
		action := Stand
		if g.Score(i, j) != BlackjackScore && failures < e.attempts {
			action = agent.Decide(g.HandState(i, j))
		}

		drawn, err := g.PlayerAction(i, j, action)
		if errors.Is(err, ErrShoeExhausted) {
			return err
		}
		if err != nil {
			failures++
			logger.Debug("Rejected action", "seat", i, "hand", j, "action", action, "error", err)
			if action == Stand {
				return fmt.Errorf("seat %d hand %d cannot stand: %w", i, j, err)
			}
			continue
		}
		failures = 0

		rec := ActionRecord{
			Seat:      i,
			Hand:      j,
			Action:    action,
			Drawn:     drawn,
			ShuffleAt: ShuffleIndex(len(drawn), g.DrawsSinceShuffle()),
		}
		result.Actions = append(result.Actions, rec)
		e.publish(PlayerActionEvent{
			Seat:      i,
			Hand:      j,
			Action:    action,
			Drawn:     drawn,
			ShuffleAt: rec.ShuffleAt,
			Score:     g.Score(i, j),
			At:        e.clock.Now(),
		})
	}
	return nil
}

func (e *Engine) view(i, limit int) SeatView {
	up, ok := e.game.dealer.UpCard()
	return SeatView{
		Seat:        i,
		Wealth:      e.game.Wealth(i),
		Bet:         e.game.BetOn(i, 0),
		TableMin:    e.game.TableMin(),
		TableMax:    e.game.TableMax(),
		Limit:       limit,
		DealerUp:    up,
		HasDealerUp: ok,
	}
}

// retry runs fn until it succeeds or the attempt budget is spent, and
// returns the last error.
func (e *Engine) retry(fn func() error) error {
	var err error
	for range e.attempts {
		if err = fn(); err == nil {
			return nil
		}
	}
	return err
}

func (e *Engine) abort(err error) error {
	e.logger.Error("Round aborted", "error", err)
	return err
}

func (e *Engine) publish(event GameEvent) {
	if e.bus != nil {
		e.bus.Publish(event)
	}
}

// ShuffleIndex locates a reshuffle within a batch of draws. draws is the
// shoe's DrawsSinceShuffle read straight after the batch. The result is the
// index of the card that brought out the cut card, or -1 when the batch
// didn't reach it.
func ShuffleIndex(batch, draws int) int {
	if draws >= batch {
		return -1
	}
	return batch - draws - 1
}
