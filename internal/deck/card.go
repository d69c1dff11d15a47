package deck

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCard is returned when a rank/suit pair does not describe a card.
var ErrInvalidCard = errors.New("deck: invalid card")

// Suit represents a card suit. The numeric codes define the suit-major
// ordering used by Compare and Sort.
type Suit int

const (
	Diamonds Suit = iota + 1
	Clubs
	Hearts
	Spades
	JokerSuit
)

// String returns the suit symbol
func (s Suit) String() string {
	switch s {
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	case JokerSuit:
		return "★"
	default:
		return "?"
	}
}

// Name returns the long suit name
func (s Suit) Name() string {
	switch s {
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	case Hearts:
		return "hearts"
	case Spades:
		return "spades"
	case JokerSuit:
		return "joker"
	default:
		return "invalid suit"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

func (s Suit) valid() bool {
	return s >= Diamonds && s <= JokerSuit
}

// Rank represents a card rank. Aces are low (1); numbered cards carry
// their face value.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Joker
)

// String returns the short rank label
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Joker:
		return "JK"
	default:
		if r >= Two && r <= Ten {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// Name returns the long rank name
func (r Rank) Name() string {
	switch r {
	case Ace:
		return "ace"
	case Jack:
		return "jack"
	case Queen:
		return "queen"
	case King:
		return "king"
	case Joker:
		return "joker"
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

func (r Rank) valid() bool {
	return r >= Ace && r <= Joker
}

// Card is an immutable playing card. The zero value is not a valid card;
// use NewCard or one of the parse helpers.
type Card struct {
	rank Rank
	suit Suit
}

// NewCard creates a card, rejecting out-of-range values and any joker that
// is not paired with JokerSuit (and vice versa).
func NewCard(rank Rank, suit Suit) (Card, error) {
	if !rank.valid() || !suit.valid() {
		return Card{}, fmt.Errorf("%w: rank %d suit %d", ErrInvalidCard, rank, suit)
	}
	if (rank == Joker) != (suit == JokerSuit) {
		return Card{}, fmt.Errorf("%w: %s must pair with the joker suit", ErrInvalidCard, rank.Name())
	}
	return Card{rank: rank, suit: suit}, nil
}

// MustCard is like NewCard but panics on invalid input
func MustCard(rank Rank, suit Suit) Card {
	c, err := NewCard(rank, suit)
	if err != nil {
		panic(err)
	}
	return c
}

// Rank returns the card's rank
func (c Card) Rank() Rank { return c.rank }

// Suit returns the card's suit
func (c Card) Suit() Suit { return c.suit }

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.rank == Ace
}

// IsRoyal returns true if the card is a face card (J, Q, K)
func (c Card) IsRoyal() bool {
	return c.rank >= Jack && c.rank <= King
}

// IsJoker returns true for either joker
func (c Card) IsJoker() bool {
	return c.rank == Joker
}

// IsTenValued returns true for tens and royals
func (c Card) IsTenValued() bool {
	return c.rank == Ten || c.IsRoyal()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.suit.IsRed()
}

// Points returns the blackjack point value with aces counted low.
// Jokers are worth nothing.
func (c Card) Points() int {
	switch {
	case c.IsRoyal():
		return 10
	case c.rank == Joker:
		return 0
	default:
		return int(c.rank)
	}
}

// String returns the short form of the card (e.g. "A♠", "10♥", "JK")
func (c Card) String() string {
	if c.rank == Joker {
		return "JK"
	}
	return c.rank.String() + c.suit.String()
}

// Name returns the long form of the card (e.g. "ace of spades")
func (c Card) Name() string {
	if c.rank == Joker {
		return "joker"
	}
	return c.rank.Name() + " of " + c.suit.Name()
}

// Compare orders cards by suit and then by rank. Jokers sort last.
func Compare(a, b Card) int {
	if a.suit != b.suit {
		return cmpInt(int(a.suit), int(b.suit))
	}
	return cmpInt(int(a.rank), int(b.rank))
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ParseCard parses compact notation such as "As", "Th", "10d" or "JK".
// Suits may be given as letters (c, d, h, s) or symbols.
func ParseCard(s string) (Card, error) {
	if strings.EqualFold(s, "JK") || strings.EqualFold(s, "joker") {
		return Card{rank: Joker, suit: JokerSuit}, nil
	}

	runes := []rune(s)
	if len(runes) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	suitPart := runes[len(runes)-1]
	rankPart := strings.ToUpper(string(runes[:len(runes)-1]))

	var rank Rank
	switch rankPart {
	case "A":
		rank = Ace
	case "2", "3", "4", "5", "6", "7", "8", "9":
		rank = Rank(rankPart[0] - '0')
	case "T", "10":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	default:
		return Card{}, fmt.Errorf("%w: rank %q", ErrInvalidCard, rankPart)
	}

	var suit Suit
	switch suitPart {
	case 'd', 'D', '♦':
		suit = Diamonds
	case 'c', 'C', '♣':
		suit = Clubs
	case 'h', 'H', '♥':
		suit = Hearts
	case 's', 'S', '♠':
		suit = Spades
	default:
		return Card{}, fmt.Errorf("%w: suit %q", ErrInvalidCard, string(suitPart))
	}

	return Card{rank: rank, suit: suit}, nil
}

// ParseCards parses a whitespace or comma separated list of cards
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})

	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
