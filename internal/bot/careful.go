package bot

import "github.com/lox/blackjack/internal/blackjack"

// Careful never takes a card that could bust the hand. Soft hands are safe
// to hit and are drawn to 18.
type Careful struct{}

func (Careful) Decide(s blackjack.HandState) blackjack.Action {
	if s.Soft() {
		return standIf(s.High >= 18)
	}
	return standIf(s.Low > 11)
}
