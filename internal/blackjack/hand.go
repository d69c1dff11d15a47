package blackjack

import "github.com/lox/blackjack/internal/deck"

const (
	// BlackjackScore ranks a natural above any counted total
	BlackjackScore = 600

	// Busted is the score of any hand over 21
	Busted = -1

	// NoAce fills the high slot of Values for hands without an ace
	NoAce = -1

	bustLimit = 21
)

// IsBlackjack reports whether cards are a two-card natural: an ace with a
// ten or royal, in either order.
func IsBlackjack(cards []deck.Card) bool {
	if len(cards) != 2 {
		return false
	}
	a, b := cards[0], cards[1]
	return (a.IsAce() && b.IsTenValued()) || (b.IsAce() && a.IsTenValued())
}

// Values returns the two totals worth tracking for a hand. low counts every
// ace as 1. high counts the first ace as 11 and is NoAce when the hand has
// no ace; a second 11 would always bust, so it is never counted. A natural
// short-circuits to (BlackjackScore, NoAce).
func Values(cards []deck.Card) (low, high int) {
	if IsBlackjack(cards) {
		return BlackjackScore, NoAce
	}

	high = NoAce
	for _, c := range cards {
		if c.IsAce() && high == NoAce {
			high = low + 11
			low++
			continue
		}
		p := c.Points()
		low += p
		if high != NoAce {
			high += p
		}
	}
	return low, high
}

// Score returns the best interpretation of a hand: BlackjackScore for a
// natural, Busted when every total is over 21, otherwise the highest legal
// total.
func Score(cards []deck.Card) int {
	low, high := Values(cards)
	return max(bustCheck(low), bustCheck(high))
}

// IsSoft reports whether an ace is currently counted as 11
func IsSoft(cards []deck.Card) bool {
	low, high := Values(cards)
	return low != BlackjackScore && high != NoAce && high <= bustLimit
}

func bustCheck(total int) int {
	if total > bustLimit && total != BlackjackScore {
		return Busted
	}
	return total
}

// Judge compares a hand's score with the dealer's. Busted hands lose even
// when the dealer busts too; a natural made from split aces is paid as an
// ordinary win.
func Judge(handScore, dealerScore int, splitAces bool) Outcome {
	switch {
	case handScore == BlackjackScore && dealerScore != BlackjackScore && !splitAces:
		return Blackjack
	case handScore > dealerScore:
		return Win
	case handScore == Busted || handScore < dealerScore:
		return Loss
	default:
		return Push
	}
}
