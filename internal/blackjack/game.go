package blackjack

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/blackjack/internal/deck"
)

// DealerID addresses the dealer wherever a player index is expected
const DealerID = -1

// Phase is a step of the round life cycle
type Phase int

const (
	Betting Phase = iota
	Dealing
	Insurance
	PlayerTurns
	DealerTurn
	Resolution
	Cleanup
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case Betting:
		return "betting"
	case Dealing:
		return "dealing"
	case Insurance:
		return "insurance"
	case PlayerTurns:
		return "player turns"
	case DealerTurn:
		return "dealer turn"
	case Resolution:
		return "resolution"
	case Cleanup:
		return "cleanup"
	default:
		return "unknown"
	}
}

// Config holds the construction parameters of a table
type Config struct {
	NumPlayers int
	NumDecks   int
	TableMin   int
	TableMax   int

	// Wallets is the starting bankroll of each seat, one per player
	Wallets []int

	// Rand drives shuffles and cut card placement; nil seeds from the clock
	Rand deck.Rand

	Logger *log.Logger
}

// DefaultConfig returns a single $500 seat at a six-deck $10-$10,000 table
func DefaultConfig() Config {
	return Config{
		NumPlayers: 1,
		NumDecks:   6,
		TableMin:   10,
		TableMax:   10000,
		Wallets:    []int{500},
	}
}

// Validate checks the table rules, including the shoe sizing rule that
// keeps a round from exhausting the shoe. No hand can hold more than 11
// cards without busting, so 12 per seat plus the dealer is the ceiling.
func (c Config) Validate() error {
	switch {
	case c.NumPlayers <= 0:
		return fmt.Errorf("%w: need at least one player, got %d", ErrInvalidArgument, c.NumPlayers)
	case c.NumDecks <= 0:
		return fmt.Errorf("%w: need at least one deck, got %d", ErrInvalidArgument, c.NumDecks)
	case c.TableMin < 0:
		return fmt.Errorf("%w: negative table minimum %d", ErrInvalidArgument, c.TableMin)
	case c.TableMin > c.TableMax:
		return fmt.Errorf("%w: table minimum $%d over maximum $%d", ErrInvalidArgument, c.TableMin, c.TableMax)
	case len(c.Wallets) != c.NumPlayers:
		return fmt.Errorf("%w: %d wallets for %d players", ErrInvalidArgument, len(c.Wallets), c.NumPlayers)
	case (12*(c.NumPlayers+1))/52 >= c.NumDecks:
		return fmt.Errorf("%w: %d decks is too few for %d players", ErrInvalidArgument, c.NumDecks, c.NumPlayers)
	}
	for i, w := range c.Wallets {
		if w < 0 {
			return fmt.Errorf("%w: seat %d has negative wallet %d", ErrInvalidArgument, i, w)
		}
	}
	return nil
}

// Game is one blackjack table: a shoe, a dealer and the seated players.
// It is not safe for concurrent use.
type Game struct {
	id       string
	tableMin int
	tableMax int

	shoe    *deck.Shoe
	dealer  *Dealer
	players []*Holder

	phase  Phase
	logger *log.Logger
}

// NewGame validates cfg and seats the players
func NewGame(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	shoe, err := deck.NewShoe(cfg.NumDecks, cfg.Rand)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	dealer, err := NewDealer(shoe, DealerPolicy)
	if err != nil {
		return nil, err
	}

	players := make([]*Holder, cfg.NumPlayers)
	for i, w := range cfg.Wallets {
		if players[i], err = NewHolder(shoe, w); err != nil {
			return nil, err
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g := &Game{
		id:       uuid.NewString(),
		tableMin: cfg.TableMin,
		tableMax: cfg.TableMax,
		shoe:     shoe,
		dealer:   dealer,
		players:  players,
		phase:    Betting,
	}
	g.logger = logger.With("game", g.id[:8])
	g.logger.Debug("Table opened", "players", cfg.NumPlayers, "decks", cfg.NumDecks, "min", cfg.TableMin, "max", cfg.TableMax)
	return g, nil
}

func (g *Game) player(i int) (*Holder, error) {
	if i < 0 || i >= len(g.players) {
		return nil, fmt.Errorf("%w: no player %d", ErrInvalidArgument, i)
	}
	return g.players[i], nil
}

func (g *Game) holder(i int) *Holder {
	if i == DealerID {
		return g.dealer.Holder
	}
	if i < 0 || i >= len(g.players) {
		return nil
	}
	return g.players[i]
}

// PlaceInitialBet wagers amount on player i's first hand
func (g *Game) PlaceInitialBet(i, amount int) error {
	p, err := g.player(i)
	if err != nil {
		return err
	}
	if amount < g.tableMin || amount > g.tableMax {
		return fmt.Errorf("%w: bet $%d outside table limits $%d-$%d", ErrInvalidArgument, amount, g.tableMin, g.tableMax)
	}
	if err := p.Bet(0, amount); err != nil {
		return err
	}
	g.phase = Betting
	g.logger.Debug("Bet placed", "player", i, "amount", amount)
	return nil
}

// DealInitialCards deals two rounds of one card to every funded player and
// then the dealer, and returns the cards in the order they were dealt.
func (g *Game) DealInitialCards() ([]deck.Card, error) {
	g.phase = Dealing

	var seats []*Holder
	for i, p := range g.players {
		if g.HasEnoughToPlay(i, 0) {
			seats = append(seats, p)
		}
	}
	seats = append(seats, g.dealer.Holder)

	dealt := make([]deck.Card, 0, 2*len(seats))
	for range 2 {
		for _, h := range seats {
			c, err := h.Draw(0)
			if err != nil {
				return dealt, err
			}
			dealt = append(dealt, c)
		}
	}

	if g.InsuranceOffered() {
		g.phase = Insurance
	} else {
		g.phase = PlayerTurns
	}
	g.logger.Debug("Dealt initial cards", "cards", len(dealt), "insurance", g.phase == Insurance)
	return dealt, nil
}

// InsuranceOffered reports whether the dealer's face-up card is an ace
func (g *Game) InsuranceOffered() bool {
	up, ok := g.dealer.UpCard()
	return ok && up.IsAce()
}

// PlayerInsuranceBet places player i's insurance. Zero declines; any other
// amount must respect the table limits and the half-bet cap.
func (g *Game) PlayerInsuranceBet(i, amount int) error {
	p, err := g.player(i)
	if err != nil {
		return err
	}
	if amount != 0 && (amount < g.tableMin || amount > g.tableMax) {
		return fmt.Errorf("%w: insurance $%d outside table limits $%d-$%d", ErrInvalidArgument, amount, g.tableMin, g.tableMax)
	}
	if err := p.PlaceInsurance(amount); err != nil {
		return err
	}
	if amount > 0 {
		g.logger.Debug("Insurance placed", "player", i, "amount", amount)
	}
	return nil
}

// PlayerAction applies action a to hand j of player i and returns the cards
// drawn. A second split is ErrUnsupported; every other illegal move is
// ErrInvalidArgument and leaves the table unchanged.
func (g *Game) PlayerAction(i, j int, a Action) ([]deck.Card, error) {
	p, err := g.player(i)
	if err != nil {
		return nil, err
	}
	if j < 0 || j >= p.NumHands() {
		return nil, fmt.Errorf("%w: player %d has no hand %d", ErrInvalidArgument, i, j)
	}
	if a == Split && p.NumHands() >= MaxHands {
		return nil, ErrUnsupported
	}

	bet := p.BetOn(j)
	switch {
	case a == DoubleDown && bet*2 > g.tableMax:
		return nil, fmt.Errorf("%w: doubling $%d exceeds the $%d table maximum", ErrInvalidArgument, bet, g.tableMax)
	case bet < g.tableMin:
		return nil, fmt.Errorf("%w: hand %d has no table bet", ErrInvalidArgument, j)
	case !g.IsNotStandingOrBusted(i, j):
		return nil, fmt.Errorf("%w: hand %d is finished", ErrInvalidArgument, j)
	}

	drawn, err := p.TakeAction(j, a)
	if err != nil {
		return drawn, err
	}
	g.phase = PlayerTurns
	g.logger.Debug("Player action", "player", i, "hand", j, "action", a, "drawn", len(drawn))
	return drawn, nil
}

// DealerTurn plays out the dealer's hand and returns the cards drawn
func (g *Game) DealerTurn() ([]deck.Card, error) {
	g.phase = DealerTurn
	drawn, err := g.dealer.DrawUntilSatisfied()
	if err != nil {
		return drawn, err
	}
	g.logger.Debug("Dealer stands", "drawn", len(drawn), "score", g.Score(DealerID, 0))
	return drawn, nil
}

// ResolveAllBets judges every hand of every player against the dealer, in
// seat order and left to right, settles each bet and returns the outcomes.
func (g *Game) ResolveAllBets() []Outcome {
	g.phase = Resolution
	dealerScore := g.Score(DealerID, 0)

	var outcomes []Outcome
	for i, p := range g.players {
		splitAces := p.SplitAces()
		for j := range p.NumHands() {
			o := Judge(Score(p.hands[j].cards), dealerScore, splitAces)
			if err := p.ResolveBet(j, o); err != nil {
				g.logger.Error("Failed to resolve bet", "player", i, "hand", j, "error", err)
				continue
			}
			outcomes = append(outcomes, o)
		}
	}
	g.logger.Debug("Bets resolved", "dealer", dealerScore, "outcomes", outcomes)
	return outcomes
}

// ResolveAllInsuranceBets settles every player's insurance
func (g *Game) ResolveAllInsuranceBets() {
	bj := g.DealerHasBlackjack()
	for _, p := range g.players {
		p.ResolveInsurance(bj)
	}
}

// EndTurn stands everyone down and sends every card to the discard pile
func (g *Game) EndTurn() {
	g.phase = Cleanup
	for _, p := range g.players {
		p.Sit()
		p.Discard()
	}
	g.dealer.Sit()
	g.dealer.Discard()
	g.phase = Betting
}

// DealerHasBlackjack reports whether the dealer holds a natural
func (g *Game) DealerHasBlackjack() bool {
	return g.Score(DealerID, 0) == BlackjackScore
}

// Score values hand j of player i, or the dealer's hand for DealerID
func (g *Game) Score(i, j int) int {
	if i == DealerID {
		j = 0
	}
	return Score(g.Hand(i, j))
}

// IsNotStandingOrBusted reports whether hand j of player i can still act
func (g *Game) IsNotStandingOrBusted(i, j int) bool {
	h := g.holder(i)
	if h == nil || j < 0 || j >= h.NumHands() {
		return false
	}
	return !h.IsStanding(j) && Score(h.hands[j].cards) != Busted
}

// IsStanding reports whether hand j of player i is marked standing
func (g *Game) IsStanding(i, j int) bool {
	h := g.holder(i)
	return h != nil && h.IsStanding(j)
}

// HasEnoughToPlay reports whether player i can cover the table minimum,
// either from the bankroll or with the bet already on hand j.
func (g *Game) HasEnoughToPlay(i, j int) bool {
	p, err := g.player(i)
	if err != nil {
		return false
	}
	return p.Wealth() >= g.tableMin || p.BetOn(j) >= g.tableMin
}

// Hand returns a copy of hand j of player i, or the dealer's for DealerID
func (g *Game) Hand(i, j int) []deck.Card {
	h := g.holder(i)
	if h == nil {
		return nil
	}
	return h.Hand(j)
}

// HandState describes hand j of player i for a policy
func (g *Game) HandState(i, j int) HandState {
	h := g.holder(i)
	if h == nil {
		return HandState{}
	}
	cards := h.Hand(j)
	s := NewHandState(cards)
	s.Bet = h.BetOn(j)
	s.Wealth = h.Wealth()

	if i != DealerID {
		pair := len(cards) == 2 && cards[0].Rank() == cards[1].Rank()
		affordable := s.Bet > 0 && s.Bet <= s.Wealth
		s.CanDouble = len(cards) == 2 && affordable && s.Bet*2 <= g.tableMax
		s.CanSplit = pair && affordable && h.NumHands() < MaxHands
		s.DealerUp, s.HasDealerUp = g.dealer.UpCard()
	}
	return s
}

// NumHands returns how many hands player i holds
func (g *Game) NumHands(i int) int {
	h := g.holder(i)
	if h == nil {
		return 0
	}
	return h.NumHands()
}

// Wealth returns player i's bankroll
func (g *Game) Wealth(i int) int {
	p, err := g.player(i)
	if err != nil {
		return 0
	}
	return p.Wealth()
}

// BetOn returns the bet on hand j of player i
func (g *Game) BetOn(i, j int) int {
	p, err := g.player(i)
	if err != nil {
		return 0
	}
	return p.BetOn(j)
}

// Insurance returns player i's insurance bet
func (g *Game) Insurance(i int) int {
	p, err := g.player(i)
	if err != nil {
		return 0
	}
	return p.Insurance()
}

// WagerLimit returns the largest opening bet player i can place
func (g *Game) WagerLimit(i int) int {
	return min(g.tableMax, g.Wealth(i))
}

// InsuranceLimit returns the largest insurance player i can place
func (g *Game) InsuranceLimit(i int) int {
	return min(g.tableMax, g.Wealth(i), g.BetOn(i, 0)/2)
}

// Render returns a printable view of player i, or of the dealer for
// DealerID with the hole card hidden until the dealer stands.
func (g *Game) Render(i int) string {
	if i == DealerID {
		return g.dealer.String()
	}
	p, err := g.player(i)
	if err != nil {
		return ""
	}
	return p.String()
}

// DrawsSinceShuffle reports how many cards have left the shoe since the
// last reshuffle.
func (g *Game) DrawsSinceShuffle() int {
	return g.shoe.DrawsSinceShuffle()
}

// Shuffles reports how many times the cut card has come out
func (g *Game) Shuffles() int {
	return g.shoe.Shuffles()
}

func (g *Game) NumPlayers() int { return len(g.players) }
func (g *Game) TableMin() int   { return g.tableMin }
func (g *Game) TableMax() int   { return g.tableMax }
func (g *Game) Phase() Phase    { return g.phase }
func (g *Game) ID() string      { return g.id }
