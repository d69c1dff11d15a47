package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/display"
)

var errNotAmount = errors.New("enter a whole dollar amount, like 25 or $25")

// parseBet accepts "25", "$25", "25 dollars" and "$1,000"
func parseBet(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, "dollars")
	s = strings.TrimSuffix(s, "dollar")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errNotAmount
	}
	return n, nil
}

func isQuit(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "q", "quit", "exit":
		return true
	}
	return false
}

// terminalAgent plays a seat from line-based input. It only collects
// decisions; the engine applies them and re-prompts when one is rejected.
type terminalAgent struct {
	seat    int
	in      *bufio.Scanner
	out     io.Writer
	printer *display.Printer
	game    *blackjack.Game

	quit bool
}

func newTerminalAgent(seat int, in *bufio.Scanner, out io.Writer, printer *display.Printer, game *blackjack.Game) *terminalAgent {
	return &terminalAgent{seat: seat, in: in, out: out, printer: printer, game: game}
}

// Quit reports whether the player has left the table
func (a *terminalAgent) Quit() bool {
	return a.quit
}

func (a *terminalAgent) prompt(msg string) (string, bool) {
	fmt.Fprint(a.out, msg)
	if !a.in.Scan() {
		fmt.Fprintln(a.out)
		return "", false
	}
	return a.in.Text(), true
}

func (a *terminalAgent) Wager(view blackjack.SeatView) int {
	if a.quit {
		return 0
	}
	name := a.printer.SeatName(a.seat)
	for {
		line, ok := a.prompt(fmt.Sprintf("%s, you have %s. Bet %s-%s (0 sits out, q quits): ",
			name, a.printer.Money(view.Wealth), a.printer.Money(view.TableMin), a.printer.Money(view.Limit)))
		if !ok || isQuit(line) {
			a.quit = true
			return 0
		}
		amount, err := parseBet(line)
		if err != nil {
			fmt.Fprintln(a.out, err)
			continue
		}
		return amount
	}
}

func (a *terminalAgent) Insure(view blackjack.SeatView) int {
	if a.quit {
		return 0
	}
	for {
		line, ok := a.prompt(fmt.Sprintf("%s, the dealer shows an ace. Insurance up to %s (0 declines): ",
			a.printer.SeatName(a.seat), a.printer.Money(view.Limit)))
		if !ok {
			a.quit = true
			return 0
		}
		amount, err := parseBet(line)
		if err != nil {
			fmt.Fprintln(a.out, err)
			continue
		}
		return amount
	}
}

func (a *terminalAgent) Decide(state blackjack.HandState) blackjack.Action {
	if a.quit {
		return blackjack.Stand
	}

	options := []string{"(h)it", "(s)tand"}
	if state.CanDouble {
		options = append(options, "(d)ouble down")
	}
	if state.CanSplit {
		options = append(options, "s(p)lit")
	}

	for {
		fmt.Fprintf(a.out, "Dealer shows %s. Your hand: %s (%s)\n",
			a.printer.Card(state.DealerUp), a.printer.Cards(state.Cards, -1), a.printer.Score(state.Score))
		line, ok := a.prompt(strings.Join(options, ", ") + "? ")
		if !ok {
			a.quit = true
			return blackjack.Stand
		}
		action, err := blackjack.ParseAction(line)
		if err != nil {
			fmt.Fprintf(a.out, "Sorry, %q is not an action\n", strings.TrimSpace(line))
			continue
		}
		return action
	}
}
