package blackjack

import "errors"

var (
	// ErrInvalidArgument marks a rejected bet, action or construction
	// parameter. State is unchanged and the caller may retry.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupported marks a split attempted by a player who already split.
	ErrUnsupported = errors.New("unsupported: player already has two hands")

	// ErrShoeExhausted means the shoe ran dry mid-round. The table sizing
	// rule makes this impossible, so it indicates a bookkeeping bug.
	ErrShoeExhausted = errors.New("shoe exhausted")
)

// ErrNoPlayers is returned by a round when no seat can cover the table
// minimum.
var ErrNoPlayers = errors.New("no seat can cover the table minimum")
