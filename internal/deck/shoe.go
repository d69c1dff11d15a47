package deck

import (
	"errors"
	"fmt"
	"time"

	"github.com/lox/blackjack/internal/randutil"
)

// ErrInvalidArgument is returned for shoe construction parameters out of range
var ErrInvalidArgument = errors.New("deck: invalid argument")

// Shoe is a multi-deck dispenser with a discard pile and a hidden cut card.
// When the draw that reaches the cut card completes, the discard pile is
// returned to the shoe and everything is reshuffled.
type Shoe struct {
	Deck

	discard *Deck
	rng     Rand

	// cards remaining above the cut card
	cutIndex          int
	drawsSinceShuffle int
	shuffles          int
}

// NewShoe builds a shuffled shoe holding numDecks standard decks without
// jokers. A nil rng falls back to a time-seeded source.
func NewShoe(numDecks int, rng Rand) (*Shoe, error) {
	if numDecks < 1 {
		return nil, fmt.Errorf("%w: shoe needs at least one deck, got %d", ErrInvalidArgument, numDecks)
	}
	if rng == nil {
		rng = randutil.New(time.Now().UnixNano())
	}

	s := &Shoe{
		discard: NewEmptyDeck(),
		rng:     rng,
	}
	for range numDecks {
		s.StackOnDeck(NewDeck(false))
	}
	s.Shuffle(rng)
	s.placeCutCard()
	return s, nil
}

// Draw deals the top card. The draw that brings the cut card to the top
// still returns a card from the current order; the reshuffle only affects
// later draws.
func (s *Shoe) Draw() (Card, error) {
	s.cutIndex--
	s.drawsSinceShuffle++

	card, err := s.Deck.Draw()
	if err != nil {
		s.cutIndex++
		s.drawsSinceShuffle--
		return Card{}, err
	}

	if s.cutIndex == 0 {
		s.StackOnDeck(s.discard)
		s.Shuffle(s.rng)
		s.placeCutCard()
		s.drawsSinceShuffle = 0
		s.shuffles++
	}
	return card, nil
}

// DiscardHand moves every card of hand, oldest first, onto the discard pile
// and leaves hand empty.
func (s *Shoe) DiscardHand(hand *[]Card) {
	for _, c := range *hand {
		s.discard.StackOn(c)
	}
	*hand = nil
}

// DrawsSinceShuffle returns how many cards were drawn since the last
// reshuffle. The draw that triggers a reshuffle counts toward the old
// epoch, so the counter reads 0 immediately after it.
func (s *Shoe) DrawsSinceShuffle() int {
	return s.drawsSinceShuffle
}

// CutIndex returns the number of draws left before the cut card
func (s *Shoe) CutIndex() int {
	return s.cutIndex
}

// DiscardSize returns the number of cards waiting in the discard pile
func (s *Shoe) DiscardSize() int {
	return s.discard.Size()
}

// Shuffles returns how many cut-card reshuffles have happened
func (s *Shoe) Shuffles() int {
	return s.shuffles
}

// placeCutCard puts the cut card uniformly in the last quarter of the shoe,
// never on top: cutIndex ∈ [floor(0.75·n)+1, n].
func (s *Shoe) placeCutCard() {
	n := s.Size()
	if n == 0 {
		s.cutIndex = 0
		return
	}
	lower := n * 3 / 4
	s.cutIndex = s.rng.IntN(n-lower) + lower + 1
}
