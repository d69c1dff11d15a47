package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
)

func newTestShoe(t *testing.T, top string) *deck.Shoe {
	t.Helper()
	shoe, err := deck.NewShoe(1, deck.OrderedRand{})
	require.NoError(t, err)
	shoe.StackTop(deck.MustParseCards(top)...)
	return shoe
}

// dealt returns a holder with hand 0 holding the given cards and bet
func dealt(t *testing.T, wealth, bet int, cards string, next string) *Holder {
	t.Helper()
	shoe := newTestShoe(t, cards+" "+next)
	h, err := NewHolder(shoe, wealth)
	require.NoError(t, err)
	require.NoError(t, h.Bet(0, bet))
	for range deck.MustParseCards(cards) {
		_, err := h.Draw(0)
		require.NoError(t, err)
	}
	return h
}

func TestNewHolder(t *testing.T) {
	_, err := NewHolder(nil, 100)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewHolder(newTestShoe(t, ""), -1)
	require.ErrorIs(t, err, ErrInvalidArgument)

	h, err := NewHolder(newTestShoe(t, ""), 100)
	require.NoError(t, err)
	assert.Equal(t, 1, h.NumHands())
	assert.Empty(t, h.Hand(0))
	assert.Equal(t, 100, h.Wealth())
}

func TestBet(t *testing.T) {
	h, err := NewHolder(newTestShoe(t, ""), 100)
	require.NoError(t, err)

	require.ErrorIs(t, h.Bet(0, -1), ErrInvalidArgument)
	require.ErrorIs(t, h.Bet(0, 101), ErrInvalidArgument)
	require.ErrorIs(t, h.Bet(1, 10), ErrInvalidArgument)
	assert.Equal(t, 100, h.Wealth(), "rejected bets leave wealth alone")
	assert.Equal(t, 0, h.BetOn(0))

	require.NoError(t, h.Bet(0, 60))
	require.NoError(t, h.Bet(0, 40))
	assert.Equal(t, 0, h.Wealth())
	assert.Equal(t, 100, h.BetOn(0))
}

func TestPlaceInsurance(t *testing.T) {
	h, err := NewHolder(newTestShoe(t, ""), 100)
	require.NoError(t, err)
	require.NoError(t, h.Bet(0, 50))

	require.ErrorIs(t, h.PlaceInsurance(26), ErrInvalidArgument, "over half the bet")
	require.ErrorIs(t, h.PlaceInsurance(-1), ErrInvalidArgument)
	assert.Equal(t, 50, h.Wealth())

	require.NoError(t, h.PlaceInsurance(25))
	assert.Equal(t, 25, h.Insurance())
	assert.Equal(t, 25, h.Wealth())

	h.ResolveInsurance(true)
	assert.Equal(t, 0, h.Insurance())
	assert.Equal(t, 100, h.Wealth())

	require.NoError(t, h.PlaceInsurance(10))
	h.ResolveInsurance(false)
	assert.Equal(t, 0, h.Insurance())
	assert.Equal(t, 90, h.Wealth())
}

func TestHitAndStand(t *testing.T) {
	h := dealt(t, 100, 10, "9h 7c", "Kd")

	drawn, err := h.TakeAction(0, Hit)
	require.NoError(t, err)
	assert.Equal(t, deck.MustParseCards("Kd"), drawn)
	assert.Equal(t, Busted, Score(h.Hand(0)))
	assert.False(t, h.IsStanding(0), "hit never stands, even on a bust")

	drawn, err = h.TakeAction(0, Stand)
	require.NoError(t, err)
	assert.Empty(t, drawn)
	assert.True(t, h.IsStanding(0))
}

func TestDoubleDown(t *testing.T) {
	h := dealt(t, 100, 30, "5h 6c", "Td 2s")

	drawn, err := h.TakeAction(0, DoubleDown)
	require.NoError(t, err)
	assert.Equal(t, deck.MustParseCards("Td"), drawn)
	assert.Equal(t, 60, h.BetOn(0))
	assert.Equal(t, 40, h.Wealth())
	assert.True(t, h.IsStanding(0))
	assert.Equal(t, 21, Score(h.Hand(0)))

	_, err = h.TakeAction(0, DoubleDown)
	require.ErrorIs(t, err, ErrInvalidArgument, "three cards")
}

func TestDoubleDownUnaffordable(t *testing.T) {
	h := dealt(t, 100, 60, "5h 6c", "Td")

	_, err := h.TakeAction(0, DoubleDown)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 60, h.BetOn(0))
	assert.Equal(t, 40, h.Wealth())
	assert.False(t, h.IsStanding(0))
	assert.Len(t, h.Hand(0), 2)
}

func TestSplit(t *testing.T) {
	h := dealt(t, 100, 20, "8h 8c", "3d 8s 9s")

	drawn, err := h.TakeAction(0, Split)
	require.NoError(t, err)
	assert.Equal(t, deck.MustParseCards("3d 8s"), drawn, "first hand draws first")
	require.Equal(t, 2, h.NumHands())
	assert.Equal(t, deck.MustParseCards("8h 3d"), h.Hand(0))
	assert.Equal(t, deck.MustParseCards("8c 8s"), h.Hand(1))
	assert.Equal(t, 20, h.BetOn(0))
	assert.Equal(t, 20, h.BetOn(1))
	assert.Equal(t, 60, h.Wealth())
	assert.False(t, h.IsStanding(0))
	assert.False(t, h.IsStanding(1))
	assert.False(t, h.SplitAces())

	_, err = h.TakeAction(1, Split)
	require.ErrorIs(t, err, ErrUnsupported, "second hand is another pair of eights")
	assert.Equal(t, 2, h.NumHands())
	assert.Equal(t, 60, h.Wealth())
}

func TestSplitRejectsNonPairs(t *testing.T) {
	h := dealt(t, 100, 20, "8h 9c", "3d")
	_, err := h.TakeAction(0, Split)
	require.ErrorIs(t, err, ErrInvalidArgument)

	ten := dealt(t, 100, 20, "Th Kc", "3d")
	_, err = ten.TakeAction(0, Split)
	require.ErrorIs(t, err, ErrInvalidArgument, "ten-valued cards of different rank are not a pair")

	broke := dealt(t, 30, 20, "8h 8c", "3d 4d")
	_, err = broke.TakeAction(0, Split)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 1, broke.NumHands())
	assert.Equal(t, deck.MustParseCards("8h 8c"), broke.Hand(0))
}

func TestSplitAcesStandsBothHands(t *testing.T) {
	h := dealt(t, 100, 10, "Ah As", "Kd 5c")

	drawn, err := h.TakeAction(0, Split)
	require.NoError(t, err)
	assert.Len(t, drawn, 2)
	assert.True(t, h.IsStanding(0))
	assert.True(t, h.IsStanding(1))
	assert.True(t, h.SplitAces())
	assert.Equal(t, BlackjackScore, Score(h.Hand(0)), "scores as a natural; the table demotes it")
}

func TestResolveBet(t *testing.T) {
	for _, tt := range []struct {
		outcome Outcome
		wealth  int
	}{
		{Blackjack, 150},
		{Win, 140},
		{Push, 120},
		{Loss, 100},
	} {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			h, err := NewHolder(newTestShoe(t, ""), 120)
			require.NoError(t, err)
			require.NoError(t, h.Bet(0, 20))
			require.NoError(t, h.ResolveBet(0, tt.outcome))
			assert.Equal(t, 0, h.BetOn(0))
			assert.Equal(t, tt.wealth, h.Wealth())
		})
	}
}

func TestDiscard(t *testing.T) {
	shoe := newTestShoe(t, "8h 8c 3d 4d")
	h, err := NewHolder(shoe, 100)
	require.NoError(t, err)
	require.NoError(t, h.Bet(0, 10))
	for range 2 {
		_, err := h.Draw(0)
		require.NoError(t, err)
	}
	_, err = h.TakeAction(0, Split)
	require.NoError(t, err)
	require.NoError(t, h.ResolveBet(0, Win))

	h.Discard()
	assert.Equal(t, 1, h.NumHands())
	assert.Empty(t, h.Hand(0))
	assert.Equal(t, 4, shoe.DiscardSize())
	assert.Equal(t, 110, h.Wealth(), "the unresolved split bet comes back")
}

func TestSit(t *testing.T) {
	h := dealt(t, 100, 10, "9h 9c", "")
	_, err := h.TakeAction(0, Stand)
	require.NoError(t, err)
	h.Sit()
	assert.False(t, h.IsStanding(0))
}

func TestHolderString(t *testing.T) {
	h := dealt(t, 100, 10, "Jd 8h", "")
	assert.Equal(t, "HAND 1: jack of diamonds, 8 of hearts\nBET 1: $10\nINSURANCE BET: $0\nWEALTH: $90\n", h.String())
}
