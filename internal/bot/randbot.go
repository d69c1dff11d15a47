package bot

import "github.com/lox/blackjack/internal/blackjack"

// RandBot picks uniformly among the actions the hand allows
type RandBot struct {
	rng IntN
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng IntN) *RandBot {
	return &RandBot{rng: rng}
}

func (r *RandBot) Decide(s blackjack.HandState) blackjack.Action {
	actions := []blackjack.Action{blackjack.Hit, blackjack.Stand}
	if s.CanDouble {
		actions = append(actions, blackjack.DoubleDown)
	}
	if s.CanSplit {
		actions = append(actions, blackjack.Split)
	}
	return actions[r.rng.IntN(len(actions))]
}
