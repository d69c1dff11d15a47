package simulator

import (
	"fmt"
	"io"
)

// WriteSummary prints a per-seat breakdown of a simulation report
func WriteSummary(w io.Writer, r *Report) {
	fmt.Fprintf(w, "\n=== SIMULATION ===\n")
	fmt.Fprintf(w, "Sessions: %d, rounds: %d, shuffles: %d, seed: %d\n", r.Sessions, r.Rounds, r.Shuffles, r.Seed)
	fmt.Fprintf(w, "Elapsed: %s (%.0f rounds/sec)\n", r.Elapsed.Round(1e6), r.RoundsPerSecond())

	for i, seat := range r.Seats {
		stats := seat.Stats
		fmt.Fprintf(w, "\n=== SEAT %d: %s ===\n", i, seat.Strategy)
		if stats.Rounds == 0 {
			fmt.Fprintf(w, "No rounds played\n")
			continue
		}

		low, high := stats.ConfidenceInterval95()
		fmt.Fprintf(w, "Rounds bet: %d, hands: %d, broke in %d/%d sessions\n", stats.Rounds, stats.Hands, seat.Broke, r.Sessions)
		fmt.Fprintf(w, "Net: $%d on $%d wagered (house edge %.2f%%)\n", stats.NetDollars, stats.Wagered, stats.HouseEdge()*100)
		fmt.Fprintf(w, "Mean: %.4f bets/round, median %.4f, std dev %.4f\n", stats.Mean(), stats.Median(), stats.StdDev())
		fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] bets/round\n", low, high)
		fmt.Fprintf(w, "Percentiles: P5=%.2f, P25=%.2f, P75=%.2f, P95=%.2f\n",
			stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

		fmt.Fprintf(w, "Outcomes: %d blackjack, %d win, %d push, %d loss\n", stats.Blackjacks, stats.Wins, stats.Pushes, stats.Losses)
		fmt.Fprintf(w, "Doubles: %d, splits: %d, insured: %d\n", stats.Doubles, stats.Splits, stats.Insured)
		fmt.Fprintf(w, "Biggest win: $%d, biggest loss: $%d\n", stats.BiggestWin, -stats.BiggestLoss)
	}
}

// SeatSummary is the headline figures for one seat, for machine-readable
// reports
type SeatSummary struct {
	Seat       int     `json:"seat"`
	Strategy   string  `json:"strategy"`
	Rounds     int     `json:"rounds"`
	Hands      int     `json:"hands"`
	Net        int     `json:"net"`
	Wagered    int     `json:"wagered"`
	HouseEdge  float64 `json:"house_edge"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	CILow      float64 `json:"ci_low"`
	CIHigh     float64 `json:"ci_high"`
	Blackjacks int     `json:"blackjacks"`
	Wins       int     `json:"wins"`
	Pushes     int     `json:"pushes"`
	Losses     int     `json:"losses"`
	Doubles    int     `json:"doubles"`
	Splits     int     `json:"splits"`
	Insured    int     `json:"insured"`
	Broke      int     `json:"broke_sessions"`
}

// Summary is a Report without the per-round samples
type Summary struct {
	Seed            int64         `json:"seed"`
	Sessions        int           `json:"sessions"`
	Rounds          int           `json:"rounds"`
	Shuffles        int           `json:"shuffles"`
	ElapsedSeconds  float64       `json:"elapsed_seconds"`
	RoundsPerSecond float64       `json:"rounds_per_second"`
	Seats           []SeatSummary `json:"seats"`
}

// Summary condenses the report for export
func (r *Report) Summary() Summary {
	s := Summary{
		Seed:            r.Seed,
		Sessions:        r.Sessions,
		Rounds:          r.Rounds,
		Shuffles:        r.Shuffles,
		ElapsedSeconds:  r.Elapsed.Seconds(),
		RoundsPerSecond: r.RoundsPerSecond(),
		Seats:           make([]SeatSummary, len(r.Seats)),
	}
	for i, seat := range r.Seats {
		st := seat.Stats
		low, high := st.ConfidenceInterval95()
		s.Seats[i] = SeatSummary{
			Seat:       i,
			Strategy:   seat.Strategy,
			Rounds:     st.Rounds,
			Hands:      st.Hands,
			Net:        st.NetDollars,
			Wagered:    st.Wagered,
			HouseEdge:  st.HouseEdge(),
			Mean:       st.Mean(),
			StdDev:     st.StdDev(),
			CILow:      low,
			CIHigh:     high,
			Blackjacks: st.Blackjacks,
			Wins:       st.Wins,
			Pushes:     st.Pushes,
			Losses:     st.Losses,
			Doubles:    st.Doubles,
			Splits:     st.Splits,
			Insured:    st.Insured,
			Broke:      seat.Broke,
		}
	}
	return s
}
