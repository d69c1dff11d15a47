package blackjack

import "github.com/lox/blackjack/internal/deck"

// HandState is everything a policy may look at when deciding on one hand
type HandState struct {
	Cards []deck.Card
	Low   int
	High  int
	Score int
	Bet   int

	// Wealth is the bankroll not yet wagered
	Wealth int

	CanDouble bool
	CanSplit  bool

	// DealerUp is the dealer's visible card; HasDealerUp is false for the
	// dealer's own decisions.
	DealerUp    deck.Card
	HasDealerUp bool
}

// Soft reports whether an ace is being counted as 11
func (s HandState) Soft() bool {
	return s.High != NoAce && s.High <= bustLimit && s.Low != BlackjackScore
}

// Total returns the best non-busted count, or the low count once busted
func (s HandState) Total() int {
	if s.Soft() {
		return s.High
	}
	return s.Low
}

// NewHandState values cards and fills in the derived fields
func NewHandState(cards []deck.Card) HandState {
	low, high := Values(cards)
	return HandState{
		Cards: cards,
		Low:   low,
		High:  high,
		Score: Score(cards),
	}
}

// Policy decides the next action for a hand
type Policy interface {
	Decide(state HandState) Action
}

// PolicyFunc adapts a function to the Policy interface
type PolicyFunc func(HandState) Action

// Decide calls f(state)
func (f PolicyFunc) Decide(state HandState) Action {
	return f(state)
}

// DealerPolicy is the house rule: draw while the best non-busted total is
// under 17, standing on every 17 including soft ones.
var DealerPolicy Policy = PolicyFunc(func(s HandState) Action {
	if (s.Low < 17 && s.High < 17) || (s.Low < 17 && s.High > bustLimit) {
		return Hit
	}
	return Stand
})
