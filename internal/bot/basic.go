package bot

import (
	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/deck"
)

// BasicStrategy plays the standard multi-deck chart for a dealer who stands
// on soft 17. Doubles it cannot afford become hits, except soft 18 which
// stands.
type BasicStrategy struct{}

// Decide looks up the chart for the hand against the dealer's up card
func (BasicStrategy) Decide(s blackjack.HandState) blackjack.Action {
	if s.Score == blackjack.Busted || s.Score == blackjack.BlackjackScore {
		return blackjack.Stand
	}
	up := upValue(s)

	if s.CanSplit && splitPair(s.Cards[0], up) {
		return blackjack.Split
	}
	if s.Soft() {
		return soft(s, up)
	}
	return hard(s, up)
}

// upValue counts the dealer's ace as 11 so the chart reads 2 through 11
func upValue(s blackjack.HandState) int {
	if !s.HasDealerUp {
		return 10
	}
	if s.DealerUp.IsAce() {
		return 11
	}
	return s.DealerUp.Points()
}

func splitPair(c deck.Card, up int) bool {
	switch {
	case c.IsAce():
		return true
	case c.IsTenValued():
		return false
	}
	switch c.Points() {
	case 8:
		return true
	case 2, 3, 7:
		return up <= 7
	case 4:
		return up == 5 || up == 6
	case 6:
		return up <= 6
	case 9:
		return up <= 9 && up != 7
	default:
		return false
	}
}

func soft(s blackjack.HandState, up int) blackjack.Action {
	total := s.High
	switch {
	case total >= 19:
		return blackjack.Stand
	case total == 18:
		if up >= 3 && up <= 6 && s.CanDouble {
			return blackjack.DoubleDown
		}
		if up <= 8 {
			return blackjack.Stand
		}
		return blackjack.Hit
	case total == 17:
		return doubleOr(s, up >= 3 && up <= 6)
	case total >= 15:
		return doubleOr(s, up >= 4 && up <= 6)
	default:
		return doubleOr(s, up == 5 || up == 6)
	}
}

func hard(s blackjack.HandState, up int) blackjack.Action {
	total := s.Low
	switch {
	case total >= 17:
		return blackjack.Stand
	case total >= 13:
		return standIf(up <= 6)
	case total == 12:
		return standIf(up >= 4 && up <= 6)
	case total == 11:
		return doubleOr(s, up <= 10)
	case total == 10:
		return doubleOr(s, up <= 9)
	case total == 9:
		return doubleOr(s, up >= 3 && up <= 6)
	default:
		return blackjack.Hit
	}
}

func doubleOr(s blackjack.HandState, double bool) blackjack.Action {
	if double && s.CanDouble {
		return blackjack.DoubleDown
	}
	return blackjack.Hit
}

func standIf(stand bool) blackjack.Action {
	if stand {
		return blackjack.Stand
	}
	return blackjack.Hit
}
