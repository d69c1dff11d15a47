package blackjack

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// MaxHands is the most hands a holder can play in one round. A single split
// takes a holder from one hand to two.
const MaxHands = 2

type seat struct {
	cards    []deck.Card
	standing bool
	bet      int
}

// Holder owns the hands, bets and bankroll of one participant at the table.
// Every mutator either succeeds or leaves the holder untouched.
type Holder struct {
	shoe      *deck.Shoe
	hands     []seat
	insurance int
	wealth    int
}

// NewHolder creates a holder drawing from shoe with a starting bankroll
func NewHolder(shoe *deck.Shoe, wealth int) (*Holder, error) {
	if shoe == nil {
		return nil, fmt.Errorf("%w: holder needs a shoe", ErrInvalidArgument)
	}
	if wealth < 0 {
		return nil, fmt.Errorf("%w: negative wealth %d", ErrInvalidArgument, wealth)
	}
	return &Holder{
		shoe:   shoe,
		hands:  make([]seat, 1),
		wealth: wealth,
	}, nil
}

func (h *Holder) valid(i int) bool {
	return i >= 0 && i < len(h.hands)
}

// Draw deals one card from the shoe into hand i
func (h *Holder) Draw(i int) (deck.Card, error) {
	if !h.valid(i) {
		return deck.Card{}, fmt.Errorf("%w: no hand %d", ErrInvalidArgument, i)
	}
	c, err := h.shoe.Draw()
	if err != nil {
		return deck.Card{}, fmt.Errorf("%w: %w", ErrShoeExhausted, err)
	}
	h.hands[i].cards = append(h.hands[i].cards, c)
	return c, nil
}

// Bet moves amount from the bankroll onto hand i
func (h *Holder) Bet(i, amount int) error {
	if !h.valid(i) {
		return fmt.Errorf("%w: no hand %d", ErrInvalidArgument, i)
	}
	if amount < 0 || amount > h.wealth {
		return fmt.Errorf("%w: bet $%d with $%d available", ErrInvalidArgument, amount, h.wealth)
	}
	h.wealth -= amount
	h.hands[i].bet += amount
	return nil
}

// PlaceInsurance moves amount from the bankroll onto the insurance side bet.
// Insurance is capped at half the first hand's bet.
func (h *Holder) PlaceInsurance(amount int) error {
	limit := h.hands[0].bet / 2
	switch {
	case amount < 0 || amount > h.wealth:
		return fmt.Errorf("%w: insurance $%d with $%d available", ErrInvalidArgument, amount, h.wealth)
	case amount > limit:
		return fmt.Errorf("%w: insurance $%d over the $%d cap", ErrInvalidArgument, amount, limit)
	}
	h.wealth -= amount
	h.insurance += amount
	return nil
}

// TakeAction applies a to hand i and returns the cards it drew, in order.
// Hit leaves the hand active even if it busts; judging the total is the
// caller's job.
func (h *Holder) TakeAction(i int, a Action) ([]deck.Card, error) {
	if !h.valid(i) {
		return nil, fmt.Errorf("%w: no hand %d", ErrInvalidArgument, i)
	}

	switch a {
	case Hit:
		c, err := h.Draw(i)
		if err != nil {
			return nil, err
		}
		return []deck.Card{c}, nil

	case Stand:
		h.hands[i].standing = true
		return nil, nil

	case DoubleDown:
		return h.doubleDown(i)

	case Split:
		return h.split(i)

	default:
		return nil, fmt.Errorf("%w: unknown action %d", ErrInvalidArgument, a)
	}
}

func (h *Holder) doubleDown(i int) ([]deck.Card, error) {
	s := &h.hands[i]
	if len(s.cards) != 2 {
		return nil, fmt.Errorf("%w: double down needs exactly two cards, hand has %d", ErrInvalidArgument, len(s.cards))
	}
	bet := s.bet
	if err := h.Bet(i, bet); err != nil {
		return nil, err
	}
	s.standing = true
	c, err := h.Draw(i)
	if err != nil {
		s.standing = false
		s.bet -= bet
		h.wealth += bet
		return nil, err
	}
	return []deck.Card{c}, nil
}

func (h *Holder) split(i int) ([]deck.Card, error) {
	if len(h.hands) >= MaxHands {
		return nil, ErrUnsupported
	}
	src := h.hands[i]
	if len(src.cards) != 2 || src.cards[0].Rank() != src.cards[1].Rank() {
		return nil, fmt.Errorf("%w: split needs a pair", ErrInvalidArgument)
	}
	if src.bet > h.wealth {
		return nil, fmt.Errorf("%w: split needs $%d with $%d available", ErrInvalidArgument, src.bet, h.wealth)
	}

	h.hands = append(h.hands, seat{cards: []deck.Card{src.cards[1]}})
	j := len(h.hands) - 1
	h.hands[i].cards = src.cards[:1:1]
	if err := h.Bet(j, src.bet); err != nil {
		return nil, err
	}

	drawn := make([]deck.Card, 0, 2)
	for _, k := range []int{i, j} {
		c, err := h.Draw(k)
		if err != nil {
			return drawn, err
		}
		drawn = append(drawn, c)
	}

	if src.cards[0].IsAce() {
		h.hands[i].standing = true
		h.hands[j].standing = true
	}
	return drawn, nil
}

// Discard returns every card to the shoe's discard pile and leaves a single
// empty hand. Bets still riding on split hands go back to the bankroll.
func (h *Holder) Discard() {
	for i := range h.hands {
		h.shoe.DiscardHand(&h.hands[i].cards)
		if i > 0 {
			h.wealth += h.hands[i].bet
		}
	}
	h.hands = h.hands[:1]
}

// Sit clears every standing flag ahead of a new round
func (h *Holder) Sit() {
	for i := range h.hands {
		h.hands[i].standing = false
	}
}

// ResolveBet pays hand i according to outcome and clears its bet
func (h *Holder) ResolveBet(i int, o Outcome) error {
	if !h.valid(i) {
		return fmt.Errorf("%w: no hand %d", ErrInvalidArgument, i)
	}
	h.wealth += o.Payout(h.hands[i].bet)
	h.hands[i].bet = 0
	return nil
}

// ResolveInsurance pays 2:1 on the side bet when the dealer had a natural,
// and clears it either way.
func (h *Holder) ResolveInsurance(dealerBlackjack bool) {
	if dealerBlackjack {
		h.wealth += h.insurance * 3
	}
	h.insurance = 0
}

// NumHands returns the number of hands in play
func (h *Holder) NumHands() int {
	return len(h.hands)
}

// Hand returns a copy of hand i's cards, or nil when there is no such hand
func (h *Holder) Hand(i int) []deck.Card {
	if !h.valid(i) {
		return nil
	}
	return append([]deck.Card(nil), h.hands[i].cards...)
}

// IsStanding reports whether hand i has finished acting
func (h *Holder) IsStanding(i int) bool {
	return h.valid(i) && h.hands[i].standing
}

// BetOn returns the wager riding on hand i
func (h *Holder) BetOn(i int) int {
	if !h.valid(i) {
		return 0
	}
	return h.hands[i].bet
}

// Insurance returns the insurance side bet
func (h *Holder) Insurance() int {
	return h.insurance
}

// Wealth returns the bankroll not currently wagered
func (h *Holder) Wealth() int {
	return h.wealth
}

// SplitAces reports whether the holder's hands came from splitting aces
func (h *Holder) SplitAces() bool {
	return len(h.hands) > 1 && len(h.hands[0].cards) > 0 && h.hands[0].cards[0].IsAce()
}

// String renders every hand with its bet, then the side bet and bankroll
func (h *Holder) String() string {
	var sb strings.Builder
	for i, s := range h.hands {
		fmt.Fprintf(&sb, "HAND %d: %s\n", i+1, joinCards(s.cards))
		fmt.Fprintf(&sb, "BET %d: $%d\n", i+1, s.bet)
	}
	fmt.Fprintf(&sb, "INSURANCE BET: $%d\n", h.insurance)
	fmt.Fprintf(&sb, "WEALTH: $%d\n", h.wealth)
	return sb.String()
}

func joinCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "EMPTY"
	}
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.Name()
	}
	return strings.Join(names, ", ")
}
