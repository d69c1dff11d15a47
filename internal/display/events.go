package display

import (
	"fmt"

	"github.com/lox/blackjack/internal/blackjack"
)

// OnEvent prints a line for each round event. Events are delivered while
// the round runs, so hands are read straight from the game.
func (p *Printer) OnEvent(event blackjack.GameEvent) {
	switch e := event.(type) {
	case blackjack.RoundStartEvent:
		p.bets = e.Bets
		fmt.Fprintln(p.w)
		fmt.Fprintln(p.w, p.styles.Header.Render("ROUND "+shortID(e.RoundID)))
		for i, bet := range e.Bets {
			if bet > 0 {
				fmt.Fprintf(p.w, "%s bets %s\n", p.SeatName(i), p.Money(bet))
			}
		}

	case blackjack.CardsDealtEvent:
		if e.ShuffleAt >= 0 {
			fmt.Fprintln(p.w, p.styles.Shuffle.Render("Shuffling the shoe"))
		}
		for i, bet := range p.bets {
			if bet > 0 {
				fmt.Fprintf(p.w, "%s: %s\n", p.SeatName(i), p.Hand(i, 0))
			}
		}
		fmt.Fprintf(p.w, "%s: %s\n", p.SeatName(blackjack.DealerID), p.DealerHand(false))

	case blackjack.PlayerActionEvent:
		line := fmt.Sprintf("%s %s", p.handLabel(e.Seat, e.Hand), p.styles.Action.Render(e.Action.String()))
		if len(e.Drawn) > 0 {
			line += ": " + p.Cards(e.Drawn, e.ShuffleAt)
		}
		fmt.Fprintf(p.w, "%s (%s)\n", line, p.Score(e.Score))

	case blackjack.DealerTurnEvent:
		fmt.Fprintf(p.w, "%s: %s\n", p.SeatName(blackjack.DealerID), p.DealerHand(true))
		if e.ShuffleAt >= 0 {
			fmt.Fprintln(p.w, p.styles.Shuffle.Render("Shuffling the shoe"))
		}

	case blackjack.RoundEndEvent:
		r := e.Result
		for i, outcomes := range r.Outcomes {
			if outcomes == nil {
				continue
			}
			for j, o := range outcomes {
				label := p.SeatName(i)
				if len(outcomes) > 1 {
					label = fmt.Sprintf("%s hand %d", label, j+1)
				}
				fmt.Fprintf(p.w, "%s: %s\n", label, p.Outcome(o))
			}
			if r.Insurance[i] > 0 {
				fmt.Fprintf(p.w, "%s insured %s\n", p.SeatName(i), p.Money(r.Insurance[i]))
			}
			fmt.Fprintf(p.w, "%s %s, now %s\n", p.SeatName(i), p.Net(r.Net[i]), p.Money(p.game.Wealth(i)))
		}
		p.bets = nil
	}
}

func (p *Printer) handLabel(i, j int) string {
	if p.game.NumHands(i) > 1 {
		return fmt.Sprintf("%s hand %d", p.SeatName(i), j+1)
	}
	return p.SeatName(i)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
