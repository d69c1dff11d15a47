package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/randutil"
)

func TestNewDeck(t *testing.T) {
	d := NewDeck(false)
	assert.Equal(t, 52, d.Size())

	first, err := d.Draw()
	require.NoError(t, err)
	assert.Equal(t, MustCard(Ace, Diamonds), first, "fresh decks deal in sorted order")

	withJokers := NewDeck(true)
	assert.Equal(t, 54, withJokers.Size())
	cards := withJokers.Cards()
	assert.True(t, cards[52].IsJoker())
	assert.True(t, cards[53].IsJoker())

	seen := make(map[Card]bool)
	for _, c := range NewDeck(false).Cards() {
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
}

func TestDrawEmpty(t *testing.T) {
	d := NewEmptyDeck()
	_, err := d.Draw()
	require.ErrorIs(t, err, ErrEmptyDeck)

	_, ok := d.Peek()
	assert.False(t, ok)
}

func TestStackOnIsLIFO(t *testing.T) {
	d := NewEmptyDeck()
	a, b := MustCard(Two, Hearts), MustCard(Three, Hearts)
	d.StackOn(a)
	d.StackOn(b)

	top, ok := d.Peek()
	require.True(t, ok)
	assert.Equal(t, b, top)

	got, err := d.Draw()
	require.NoError(t, err)
	assert.Equal(t, b, got)
	got, err = d.Draw()
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestStackOnDeckPreservesOrder(t *testing.T) {
	d := NewDeckFromCards(MustParseCards("2c 3c"))
	other := NewDeckFromCards(MustParseCards("As Ks Qs"))

	d.StackOnDeck(other)

	assert.Equal(t, 0, other.Size())
	assert.Equal(t, MustParseCards("As Ks Qs 2c 3c"), d.Cards())

	d.StackOnDeck(d)
	assert.Equal(t, 5, d.Size(), "stacking a deck on itself is a no-op")
}

func TestAddToBottom(t *testing.T) {
	d := NewDeckFromCards(MustParseCards("As Ks"))
	d.AddToBottom(MustCard(Two, Clubs))
	assert.Equal(t, MustParseCards("As Ks 2c"), d.Cards())
}

func TestShuffleAndSort(t *testing.T) {
	d := NewDeck(true)
	sorted := d.Cards()

	d.Shuffle(randutil.New(7))
	shuffled := d.Cards()
	assert.ElementsMatch(t, sorted, shuffled)
	assert.NotEqual(t, sorted, shuffled)

	d.Sort()
	assert.Equal(t, sorted, d.Cards())
}

func TestShuffleIsDeterministicForSeed(t *testing.T) {
	a := NewDeck(false)
	b := NewDeck(false)
	a.Shuffle(randutil.New(11))
	b.Shuffle(randutil.New(11))
	assert.Equal(t, a.Cards(), b.Cards())
}

func TestDeckString(t *testing.T) {
	assert.Equal(t, "empty deck", NewEmptyDeck().String())
	d := NewDeckFromCards(MustParseCards("As 10h"))
	assert.Equal(t, "ace of spades\n10 of hearts", d.String())
}
