package blackjack

import (
	"fmt"
	"strings"
)

// Action is a move a player makes on one hand
type Action int

const (
	Hit Action = iota + 1
	Stand
	DoubleDown
	Split
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case DoubleDown:
		return "double down"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// ParseAction accepts the command words a player types at the table
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hit", "h":
		return Hit, nil
	case "stand", "s":
		return Stand, nil
	case "dd", "double", "double down", "d":
		return DoubleDown, nil
	case "split", "p":
		return Split, nil
	default:
		return 0, fmt.Errorf("%w: unrecognized action %q", ErrInvalidArgument, s)
	}
}

// Outcome is the result of one hand against the dealer
type Outcome int

const (
	Loss Outcome = iota - 1
	Push
	Win
	Blackjack
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case Loss:
		return "LOSS"
	case Push:
		return "PUSH"
	case Win:
		return "WIN"
	case Blackjack:
		return "BLACKJACK"
	default:
		return "UNKNOWN"
	}
}

// Payout returns what is credited back to the player for a bet with this
// outcome, stake included. Blackjack pays 3:2, truncated to whole dollars.
func (o Outcome) Payout(bet int) int {
	switch o {
	case Blackjack:
		return bet * 5 / 2
	case Win:
		return bet * 2
	case Push:
		return bet
	default:
		return 0
	}
}
