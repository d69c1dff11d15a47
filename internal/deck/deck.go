package deck

import (
	"errors"
	"slices"
	"strings"
)

// ErrEmptyDeck is returned when drawing from a deck with no cards left
var ErrEmptyDeck = errors.New("deck: empty")

// Rand is the randomness a deck needs. *rand.Rand from math/rand/v2
// satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Deck is an ordered pile of cards. Draw and StackOn both work on the top.
type Deck struct {
	// cards[len-1] is the top of the deck
	cards []Card
}

// NewDeck creates a standard 52-card deck in sorted order, optionally with
// two jokers at the bottom.
func NewDeck(jokers bool) *Deck {
	topFirst := make([]Card, 0, 54)
	for suit := Diamonds; suit <= Spades; suit++ {
		for rank := Ace; rank <= King; rank++ {
			topFirst = append(topFirst, Card{rank: rank, suit: suit})
		}
	}
	if jokers {
		joker := Card{rank: Joker, suit: JokerSuit}
		topFirst = append(topFirst, joker, joker)
	}
	return newDeckTopFirst(topFirst)
}

// NewEmptyDeck creates a deck with no cards
func NewEmptyDeck() *Deck {
	return &Deck{}
}

// NewDeckFromCards creates a deck whose draw order matches cards
func NewDeckFromCards(cards []Card) *Deck {
	return newDeckTopFirst(slices.Clone(cards))
}

func newDeckTopFirst(topFirst []Card) *Deck {
	slices.Reverse(topFirst)
	return &Deck{cards: topFirst}
}

// Size returns the number of cards in the deck
func (d *Deck) Size() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle(r Rand) {
	r.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Sort orders the deck so cards are drawn in ascending Compare order
func (d *Deck) Sort() {
	slices.SortFunc(d.cards, func(a, b Card) int {
		return Compare(b, a)
	})
}

// Draw removes and returns the top card from the deck
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	top := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return top, nil
}

// Peek returns the top card without removing it from the deck
func (d *Deck) Peek() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	return d.cards[len(d.cards)-1], true
}

// StackOn puts a card on top of the deck
func (d *Deck) StackOn(c Card) {
	d.cards = append(d.cards, c)
}

// StackOnDeck moves every card of other onto the top of d. Cards keep the
// order they had in other, so the next draws from d return other's cards in
// the order other would have dealt them. other is left empty.
func (d *Deck) StackOnDeck(other *Deck) {
	if other == nil || other == d {
		return
	}
	d.cards = append(d.cards, other.cards...)
	other.cards = nil
}

// AddToBottom puts a card at the bottom of the deck
func (d *Deck) AddToBottom(c Card) {
	d.cards = slices.Insert(d.cards, 0, c)
}

// Cards returns a copy of the deck in draw order
func (d *Deck) Cards() []Card {
	out := slices.Clone(d.cards)
	slices.Reverse(out)
	return out
}

// String lists the cards in draw order, one per line
func (d *Deck) String() string {
	if len(d.cards) == 0 {
		return "empty deck"
	}
	names := make([]string, 0, len(d.cards))
	for _, c := range d.Cards() {
		names = append(names, c.Name())
	}
	return strings.Join(names, "\n")
}
