package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
)

func newTestGame(t *testing.T, wallets ...int) *Game {
	t.Helper()
	cfg := DefaultConfig()
	if len(wallets) > 0 {
		cfg.NumPlayers = len(wallets)
		cfg.Wallets = wallets
	}
	cfg.Rand = deck.OrderedRand{}
	g, err := NewGame(cfg)
	require.NoError(t, err)
	return g
}

// stack puts cards on top of the game's shoe in deal order
func stack(g *Game, cards string) {
	g.shoe.StackTop(deck.MustParseCards(cards)...)
}

func TestNewGameValidation(t *testing.T) {
	base := DefaultConfig()
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"no players", func(c *Config) { c.NumPlayers, c.Wallets = 0, nil }, false},
		{"no decks", func(c *Config) { c.NumDecks = 0 }, false},
		{"negative minimum", func(c *Config) { c.TableMin = -1 }, false},
		{"minimum over maximum", func(c *Config) { c.TableMin, c.TableMax = 50, 40 }, false},
		{"equal limits", func(c *Config) { c.TableMin, c.TableMax = 25, 25 }, true},
		{"wallet count mismatch", func(c *Config) { c.Wallets = []int{100, 100} }, false},
		{"negative wallet", func(c *Config) { c.Wallets = []int{-5} }, false},
		{"three players on one deck", func(c *Config) {
			c.NumDecks, c.NumPlayers, c.Wallets = 1, 3, []int{1, 1, 1}
		}, true},
		{"four players need two decks", func(c *Config) {
			c.NumDecks, c.NumPlayers, c.Wallets = 1, 4, []int{1, 1, 1, 1}
		}, false},
		{"four players on two decks", func(c *Config) {
			c.NumDecks, c.NumPlayers, c.Wallets = 2, 4, []int{1, 1, 1, 1}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.Wallets = append([]int(nil), base.Wallets...)
			tt.mutate(&cfg)
			g, err := NewGame(cfg)
			if tt.ok {
				require.NoError(t, err)
				assert.NotEmpty(t, g.ID())
				assert.Equal(t, Betting, g.Phase())
				return
			}
			require.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestPlaceInitialBet(t *testing.T) {
	g := newTestGame(t, 500)

	require.ErrorIs(t, g.PlaceInitialBet(0, 5), ErrInvalidArgument, "under the minimum")
	require.ErrorIs(t, g.PlaceInitialBet(0, 10001), ErrInvalidArgument, "over the maximum")
	require.ErrorIs(t, g.PlaceInitialBet(0, 600), ErrInvalidArgument, "more than the wallet")
	require.ErrorIs(t, g.PlaceInitialBet(1, 10), ErrInvalidArgument, "no such seat")
	assert.Equal(t, 500, g.Wealth(0))

	require.NoError(t, g.PlaceInitialBet(0, 100))
	assert.Equal(t, 400, g.Wealth(0))
	assert.Equal(t, 100, g.BetOn(0, 0))
}

func TestBlackjackRoundPaysThreeToTwo(t *testing.T) {
	g := newTestGame(t, 500)
	stack(g, "Ah 9c Kd 6s")

	require.NoError(t, g.PlaceInitialBet(0, 100))
	dealt, err := g.DealInitialCards()
	require.NoError(t, err)
	assert.Equal(t, deck.MustParseCards("Ah 9c Kd 6s"), dealt, "player, dealer, player, dealer")

	assert.Equal(t, BlackjackScore, g.Score(0, 0))
	assert.Equal(t, 15, g.Score(DealerID, 0))
	assert.False(t, g.InsuranceOffered())
	assert.False(t, g.DealerHasBlackjack())
	assert.Equal(t, PlayerTurns, g.Phase())

	_, err = g.DealerTurn()
	require.NoError(t, err)

	assert.Equal(t, []Outcome{Blackjack}, g.ResolveAllBets())
	assert.Equal(t, 650, g.Wealth(0))
	assert.Equal(t, 0, g.BetOn(0, 0))
}

func TestSecondSplitIsUnsupported(t *testing.T) {
	g := newTestGame(t, 500)
	stack(g, "8h 9c 8c 7s 8d 5h")

	require.NoError(t, g.PlaceInitialBet(0, 50))
	_, err := g.DealInitialCards()
	require.NoError(t, err)

	drawn, err := g.PlayerAction(0, 0, Split)
	require.NoError(t, err)
	assert.Equal(t, deck.MustParseCards("8d 5h"), drawn)
	require.Equal(t, 2, g.NumHands(0))
	assert.Equal(t, deck.MustParseCards("8h 8d"), g.Hand(0, 0))
	assert.Equal(t, deck.MustParseCards("8c 5h"), g.Hand(0, 1))
	assert.Equal(t, 50, g.BetOn(0, 0))
	assert.Equal(t, 50, g.BetOn(0, 1))
	assert.Equal(t, 400, g.Wealth(0))

	_, err = g.PlayerAction(0, 0, Split)
	require.ErrorIs(t, err, ErrUnsupported)
	assert.Equal(t, 2, g.NumHands(0))
	assert.Equal(t, 400, g.Wealth(0))
	assert.Equal(t, deck.MustParseCards("8h 8d"), g.Hand(0, 0))
}

func TestPlayerActionPreconditions(t *testing.T) {
	t.Run("no bet", func(t *testing.T) {
		g := newTestGame(t, 500)
		stack(g, "9h 9c 7d 7s")
		_, err := g.DealInitialCards()
		require.NoError(t, err)
		_, err = g.PlayerAction(0, 0, Hit)
		require.ErrorIs(t, err, ErrInvalidArgument)
		assert.Len(t, g.Hand(0, 0), 2)
	})

	t.Run("double over the table maximum", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.TableMax = 100
		cfg.Rand = deck.OrderedRand{}
		g, err := NewGame(cfg)
		require.NoError(t, err)
		stack(g, "5h 9c 6d 7s")
		require.NoError(t, g.PlaceInitialBet(0, 60))
		_, err = g.DealInitialCards()
		require.NoError(t, err)

		_, err = g.PlayerAction(0, 0, DoubleDown)
		require.ErrorIs(t, err, ErrInvalidArgument)
		assert.Equal(t, 60, g.BetOn(0, 0))
		assert.False(t, g.IsStanding(0, 0))
	})

	t.Run("standing and busted hands", func(t *testing.T) {
		g := newTestGame(t, 500, 500)
		stack(g, "Th 9h 9c 6d 7d 7s Kd")
		require.NoError(t, g.PlaceInitialBet(0, 10))
		require.NoError(t, g.PlaceInitialBet(1, 10))
		_, err := g.DealInitialCards()
		require.NoError(t, err)

		_, err = g.PlayerAction(0, 0, Stand)
		require.NoError(t, err)
		assert.False(t, g.IsNotStandingOrBusted(0, 0))
		_, err = g.PlayerAction(0, 0, Hit)
		require.ErrorIs(t, err, ErrInvalidArgument)

		_, err = g.PlayerAction(1, 0, Hit)
		require.NoError(t, err)
		assert.Equal(t, Busted, g.Score(1, 0))
		assert.False(t, g.IsNotStandingOrBusted(1, 0))
		_, err = g.PlayerAction(1, 0, Stand)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("bad indexes", func(t *testing.T) {
		g := newTestGame(t, 500)
		_, err := g.PlayerAction(3, 0, Hit)
		require.ErrorIs(t, err, ErrInvalidArgument)
		_, err = g.PlayerAction(0, 1, Hit)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestInsurance(t *testing.T) {
	g := newTestGame(t, 500)
	stack(g, "9h Kc 7d Ad")
	require.NoError(t, g.PlaceInitialBet(0, 100))
	_, err := g.DealInitialCards()
	require.NoError(t, err)

	require.True(t, g.InsuranceOffered())
	assert.Equal(t, Insurance, g.Phase())
	assert.Equal(t, 50, g.InsuranceLimit(0))

	require.ErrorIs(t, g.PlayerInsuranceBet(0, 5), ErrInvalidArgument, "under the table minimum")
	require.ErrorIs(t, g.PlayerInsuranceBet(0, 51), ErrInvalidArgument, "over half the bet")
	require.NoError(t, g.PlayerInsuranceBet(0, 0), "declining is always allowed")
	require.NoError(t, g.PlayerInsuranceBet(0, 50))
	assert.Equal(t, 350, g.Wealth(0))

	assert.True(t, g.DealerHasBlackjack())
	assert.Equal(t, []Outcome{Loss}, g.ResolveAllBets())
	g.ResolveAllInsuranceBets()
	assert.Equal(t, 500, g.Wealth(0), "insurance pays 2:1 and covers the lost bet")
	assert.Equal(t, 0, g.Insurance(0))
}

func TestInsuranceLostWithoutDealerBlackjack(t *testing.T) {
	g := newTestGame(t, 500)
	stack(g, "Th 9c Tc Ad")
	require.NoError(t, g.PlaceInitialBet(0, 100))
	_, err := g.DealInitialCards()
	require.NoError(t, err)
	require.NoError(t, g.PlayerInsuranceBet(0, 20))

	assert.False(t, g.DealerHasBlackjack())
	g.ResolveAllInsuranceBets()
	assert.Equal(t, 380, g.Wealth(0))
	assert.Equal(t, 0, g.Insurance(0))
}

func TestDealSkipsUnfundedSeats(t *testing.T) {
	g := newTestGame(t, 500, 5)
	require.NoError(t, g.PlaceInitialBet(0, 10))
	assert.False(t, g.HasEnoughToPlay(1, 0))

	dealt, err := g.DealInitialCards()
	require.NoError(t, err)
	assert.Len(t, dealt, 4)
	assert.Len(t, g.Hand(0, 0), 2)
	assert.Empty(t, g.Hand(1, 0))
	assert.Len(t, g.Hand(DealerID, 0), 2)
}

func TestHasEnoughToPlayCountsTheBet(t *testing.T) {
	g := newTestGame(t, 10)
	require.NoError(t, g.PlaceInitialBet(0, 10))
	assert.Equal(t, 0, g.Wealth(0))
	assert.True(t, g.HasEnoughToPlay(0, 0))
}

func TestSplitAcesPaidAsWin(t *testing.T) {
	g := newTestGame(t, 500)
	stack(g, "Ah 9c As 8s Kd Qc")
	require.NoError(t, g.PlaceInitialBet(0, 10))
	_, err := g.DealInitialCards()
	require.NoError(t, err)

	_, err = g.PlayerAction(0, 0, Split)
	require.NoError(t, err)
	assert.False(t, g.IsNotStandingOrBusted(0, 0))
	assert.False(t, g.IsNotStandingOrBusted(0, 1))
	_, err = g.PlayerAction(0, 1, Hit)
	require.ErrorIs(t, err, ErrInvalidArgument, "split aces take one card each")

	_, err = g.DealerTurn()
	require.NoError(t, err)
	require.Equal(t, 17, g.Score(DealerID, 0))

	assert.Equal(t, []Outcome{Win, Win}, g.ResolveAllBets())
	assert.Equal(t, 520, g.Wealth(0))
}

func TestResolveAllBetsOrder(t *testing.T) {
	g := newTestGame(t, 500, 500)
	// p0 8,8 splits into 8,3 and 8,Q; p1 stands on 19; dealer 10,8
	stack(g, "8h 9c Tc 8d Td 8s 3h Qh")
	require.NoError(t, g.PlaceInitialBet(0, 10))
	require.NoError(t, g.PlaceInitialBet(1, 20))
	_, err := g.DealInitialCards()
	require.NoError(t, err)

	_, err = g.PlayerAction(0, 0, Split)
	require.NoError(t, err)
	for j := range 2 {
		_, err = g.PlayerAction(0, j, Stand)
		require.NoError(t, err)
	}
	_, err = g.PlayerAction(1, 0, Stand)
	require.NoError(t, err)

	_, err = g.DealerTurn()
	require.NoError(t, err)
	require.Equal(t, 18, g.Score(DealerID, 0))

	assert.Equal(t, []Outcome{Loss, Push, Win}, g.ResolveAllBets())
	assert.Equal(t, 480+0+10, g.Wealth(0))
	assert.Equal(t, 520, g.Wealth(1))
}

func TestPushConservesMoney(t *testing.T) {
	g := newTestGame(t, 300)
	stack(g, "Th Tc Kc Kd")
	require.NoError(t, g.PlaceInitialBet(0, 75))
	assert.Equal(t, 300, g.Wealth(0)+g.BetOn(0, 0))
	_, err := g.DealInitialCards()
	require.NoError(t, err)
	_, err = g.PlayerAction(0, 0, Stand)
	require.NoError(t, err)
	_, err = g.DealerTurn()
	require.NoError(t, err)

	assert.Equal(t, []Outcome{Push}, g.ResolveAllBets())
	assert.Equal(t, 300, g.Wealth(0))
}

func TestEndTurn(t *testing.T) {
	g := newTestGame(t, 500)
	stack(g, "8h 9c 8c 7s 8d 5h")
	require.NoError(t, g.PlaceInitialBet(0, 50))
	_, err := g.DealInitialCards()
	require.NoError(t, err)
	_, err = g.PlayerAction(0, 0, Split)
	require.NoError(t, err)
	_, err = g.DealerTurn()
	require.NoError(t, err)
	g.ResolveAllBets()

	g.EndTurn()
	assert.Equal(t, Betting, g.Phase())
	assert.Equal(t, 1, g.NumHands(0))
	assert.Empty(t, g.Hand(0, 0))
	assert.Empty(t, g.Hand(DealerID, 0))
	assert.False(t, g.IsStanding(DealerID, 0))
	assert.GreaterOrEqual(t, g.shoe.DiscardSize(), 6)
}

func TestHandStateFlags(t *testing.T) {
	g := newTestGame(t, 100)
	stack(g, "8h 9c 8c 7s")
	require.NoError(t, g.PlaceInitialBet(0, 40))
	_, err := g.DealInitialCards()
	require.NoError(t, err)

	s := g.HandState(0, 0)
	assert.Equal(t, 16, s.Score)
	assert.Equal(t, 40, s.Bet)
	assert.Equal(t, 60, s.Wealth)
	assert.True(t, s.CanDouble)
	assert.True(t, s.CanSplit)
	require.True(t, s.HasDealerUp)
	assert.Equal(t, deck.MustCard(deck.Seven, deck.Spades), s.DealerUp)

	_, err = g.PlayerAction(0, 0, Split)
	require.NoError(t, err)
	s = g.HandState(0, 0)
	assert.False(t, s.CanSplit)
	assert.False(t, s.CanDouble, "$20 left cannot cover another $40")
}

func TestRender(t *testing.T) {
	g := newTestGame(t, 500)
	stack(g, "Jd 9c 8h 7s")
	require.NoError(t, g.PlaceInitialBet(0, 10))
	_, err := g.DealInitialCards()
	require.NoError(t, err)

	assert.Equal(t, "HAND: hidden card, 7 of spades\n", g.Render(DealerID))
	assert.Contains(t, g.Render(0), "HAND 1: jack of diamonds, 8 of hearts\n")
	assert.Contains(t, g.Render(0), "WEALTH: $490\n")
	assert.Empty(t, g.Render(4))
}

func TestShuffleDuringDeal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumDecks = 1
	cfg.Rand = &deck.ScriptedRand{Ints: []int{0}}
	g, err := NewGame(cfg)
	require.NoError(t, err)
	require.Equal(t, 40, g.shoe.CutIndex())

	for range 37 {
		_, err := g.shoe.Draw()
		require.NoError(t, err)
	}
	require.NoError(t, g.PlaceInitialBet(0, 10))
	dealt, err := g.DealInitialCards()
	require.NoError(t, err)

	assert.Equal(t, 1, g.Shuffles())
	assert.Equal(t, 1, g.DrawsSinceShuffle())
	assert.Equal(t, 2, ShuffleIndex(len(dealt), g.DrawsSinceShuffle()), "the third card brought out the cut card")
}

func TestShuffleIndex(t *testing.T) {
	assert.Equal(t, -1, ShuffleIndex(4, 10))
	assert.Equal(t, -1, ShuffleIndex(4, 4))
	assert.Equal(t, 3, ShuffleIndex(4, 0), "last card triggered")
	assert.Equal(t, 0, ShuffleIndex(4, 3), "first card triggered")
	assert.Equal(t, -1, ShuffleIndex(0, 0))
}
