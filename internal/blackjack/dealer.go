package blackjack

import (
	"fmt"

	"github.com/lox/blackjack/internal/deck"
)

// Dealer is a holder with no bankroll whose single hand is played by a
// fixed policy.
type Dealer struct {
	*Holder
	policy Policy
}

// NewDealer creates a dealer drawing from shoe. A nil policy selects
// DealerPolicy.
func NewDealer(shoe *deck.Shoe, policy Policy) (*Dealer, error) {
	h, err := NewHolder(shoe, 0)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		policy = DealerPolicy
	}
	return &Dealer{Holder: h, policy: policy}, nil
}

// DrawUntilSatisfied plays the dealer's hand to completion, marks it
// standing, and returns the cards drawn in order.
func (d *Dealer) DrawUntilSatisfied() ([]deck.Card, error) {
	var drawn []deck.Card
	for d.policy.Decide(NewHandState(d.Hand(0))) == Hit {
		c, err := d.Draw(0)
		if err != nil {
			return drawn, err
		}
		drawn = append(drawn, c)
	}
	d.hands[0].standing = true
	return drawn, nil
}

// UpCard returns the dealer's face-up card, the second one dealt
func (d *Dealer) UpCard() (deck.Card, bool) {
	cards := d.hands[0].cards
	if len(cards) < 2 {
		return deck.Card{}, false
	}
	return cards[1], true
}

// String shows the hole card only once the dealer has finished drawing
func (d *Dealer) String() string {
	s := d.hands[0]
	if !s.standing && len(s.cards) >= 2 {
		return fmt.Sprintf("HAND: hidden card, %s\n", joinCards(s.cards[1:]))
	}
	return fmt.Sprintf("HAND: %s\n", joinCards(s.cards))
}
