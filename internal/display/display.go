// Package display renders cards, hands and round events for the terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/deck"
)

// Styles contains styling for table output
type Styles struct {
	Header    lipgloss.Style
	SubHeader lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Hidden    lipgloss.Style
	Action    lipgloss.Style
	Money     lipgloss.Style
	Shuffle   lipgloss.Style
	Win       lipgloss.Style
	Push      lipgloss.Style
	Loss      lipgloss.Style
	Info      lipgloss.Style
}

// NewStyles creates the table palette bound to renderer r
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#1E7B4A")).
			Padding(0, 1).
			Bold(true),
		SubHeader: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		RedCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		Hidden: r.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Italic(true),
		Action: r.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		Money: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Shuffle: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Win: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Push: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")),
		Loss: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// Option configures a Printer
type Option func(*Printer)

// WithPlain disables colour and text attributes
func WithPlain() Option {
	return func(p *Printer) { p.plain = true }
}

// WithNames labels seats in output; unnamed seats print as "seat N"
func WithNames(names []string) Option {
	return func(p *Printer) { p.names = names }
}

// Printer writes a running commentary of a table to w
type Printer struct {
	w      io.Writer
	game   *blackjack.Game
	styles Styles
	names  []string
	plain  bool

	// bets of the round in progress, for seats that are playing
	bets []int
}

// New creates a printer for game. Colour follows the writer's terminal
// and NO_COLOR unless WithPlain is given.
func New(w io.Writer, game *blackjack.Game, opts ...Option) *Printer {
	p := &Printer{w: w, game: game}
	for _, opt := range opts {
		opt(p)
	}

	r := lipgloss.NewRenderer(w)
	if p.plain || termenv.EnvNoColor() {
		r.SetColorProfile(termenv.Ascii)
	}
	p.styles = NewStyles(r)
	return p
}

// Styles returns the printer's palette
func (p *Printer) Styles() Styles {
	return p.styles
}

// SeatName returns the label of seat i
func (p *Printer) SeatName(i int) string {
	if i == blackjack.DealerID {
		return "dealer"
	}
	if i >= 0 && i < len(p.names) && p.names[i] != "" {
		return p.names[i]
	}
	return fmt.Sprintf("seat %d", i+1)
}

// Card renders a single card in its suit colour
func (p *Printer) Card(c deck.Card) string {
	if c.IsRed() {
		return p.styles.RedCard.Render(c.String())
	}
	return p.styles.BlackCard.Render(c.String())
}

// Cards renders a run of cards. A non-negative shuffleAt places a shuffle
// marker after that card.
func (p *Printer) Cards(cards []deck.Card, shuffleAt int) string {
	if len(cards) == 0 {
		return p.styles.Info.Render("none")
	}
	parts := make([]string, 0, len(cards)+1)
	for i, c := range cards {
		parts = append(parts, p.Card(c))
		if i == shuffleAt {
			parts = append(parts, p.styles.Shuffle.Render("[shuffle]"))
		}
	}
	return strings.Join(parts, " ")
}

// Score renders a hand score
func (p *Printer) Score(score int) string {
	switch score {
	case blackjack.BlackjackScore:
		return p.styles.Win.Render("blackjack")
	case blackjack.Busted:
		return p.styles.Loss.Render("bust")
	default:
		return fmt.Sprint(score)
	}
}

// Outcome renders a settled hand
func (p *Printer) Outcome(o blackjack.Outcome) string {
	switch o {
	case blackjack.Blackjack, blackjack.Win:
		return p.styles.Win.Render(o.String())
	case blackjack.Push:
		return p.styles.Push.Render(o.String())
	default:
		return p.styles.Loss.Render(o.String())
	}
}

// Money renders a dollar amount
func (p *Printer) Money(n int) string {
	return p.styles.Money.Render(Money(n))
}

// Net renders a bankroll change with an explicit sign
func (p *Printer) Net(n int) string {
	switch {
	case n > 0:
		return p.styles.Win.Render("+" + Money(n))
	case n < 0:
		return p.styles.Loss.Render(Money(n))
	default:
		return p.styles.Push.Render(Money(0))
	}
}

// Hand renders hand j of seat i with its score
func (p *Printer) Hand(i, j int) string {
	return fmt.Sprintf("%s (%s)", p.Cards(p.game.Hand(i, j), -1), p.Score(p.game.Score(i, j)))
}

// DealerHand renders the dealer's hand, hiding the hole card until the
// dealer has played.
func (p *Printer) DealerHand(reveal bool) string {
	cards := p.game.Hand(blackjack.DealerID, 0)
	if reveal || len(cards) < 2 {
		return fmt.Sprintf("%s (%s)", p.Cards(cards, -1), p.Score(p.game.Score(blackjack.DealerID, 0)))
	}
	parts := []string{p.styles.Hidden.Render("hidden")}
	for _, c := range cards[1:] {
		parts = append(parts, p.Card(c))
	}
	return strings.Join(parts, " ")
}

// Table prints every seat's bankroll
func (p *Printer) Table() {
	for i := range p.game.NumPlayers() {
		fmt.Fprintf(p.w, "%s: %s\n", p.SeatName(i), p.Money(p.game.Wealth(i)))
	}
}

// Money formats a dollar amount with thousands separators, e.g. "$1,250"
// or "-$20".
func Money(n int) string {
	mp := message.NewPrinter(language.English)
	if n < 0 {
		return mp.Sprintf("-$%d", -n)
	}
	return mp.Sprintf("$%d", n)
}
