package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack/internal/blackjack"
)

// RoundResult is one seat's view of a settled round
type RoundResult struct {
	Net      int                 // bankroll change in dollars
	Bet      int                 // opening wager, the unit results are measured in
	Outcomes []blackjack.Outcome // one per hand played
	Doubled  bool
	Split    bool
	Insured  bool
}

// Units returns the net result in opening bets
func (r RoundResult) Units() float64 {
	if r.Bet == 0 {
		return 0
	}
	return float64(r.Net) / float64(r.Bet)
}

// Statistics accumulates per-round results for one seat
type Statistics struct {
	Rounds   int
	SumUnits float64
	SumSq    float64   // sum of squares for variance
	Values   []float64 // every result, for median and percentiles

	NetDollars int
	Wagered    int

	// Ledger buckets; they must always sum to NetDollars
	WonDollars  int
	LostDollars int

	Hands      int
	Blackjacks int
	Wins       int
	Pushes     int
	Losses     int

	Doubles int
	Splits  int
	Insured int

	BiggestWin  int
	BiggestLoss int
}

// Add incorporates one round. Rounds the seat sat out carry no bet and are
// ignored.
func (s *Statistics) Add(r RoundResult) {
	if r.Bet == 0 {
		return
	}
	u := r.Units()
	s.Rounds++
	s.SumUnits += u
	s.SumSq += u * u
	s.Values = append(s.Values, u)

	s.NetDollars += r.Net
	s.Wagered += r.Bet
	if r.Net > 0 {
		s.WonDollars += r.Net
		s.BiggestWin = max(s.BiggestWin, r.Net)
	} else {
		s.LostDollars += r.Net
		s.BiggestLoss = min(s.BiggestLoss, r.Net)
	}

	for _, o := range r.Outcomes {
		s.Hands++
		switch o {
		case blackjack.Blackjack:
			s.Blackjacks++
		case blackjack.Win:
			s.Wins++
		case blackjack.Push:
			s.Pushes++
		case blackjack.Loss:
			s.Losses++
		}
	}
	if r.Doubled {
		s.Doubles++
	}
	if r.Split {
		s.Splits++
	}
	if r.Insured {
		s.Insured++
	}
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.SumUnits += other.SumUnits
	s.SumSq += other.SumSq
	s.Values = append(s.Values, other.Values...)
	s.NetDollars += other.NetDollars
	s.Wagered += other.Wagered
	s.WonDollars += other.WonDollars
	s.LostDollars += other.LostDollars
	s.Hands += other.Hands
	s.Blackjacks += other.Blackjacks
	s.Wins += other.Wins
	s.Pushes += other.Pushes
	s.Losses += other.Losses
	s.Doubles += other.Doubles
	s.Splits += other.Splits
	s.Insured += other.Insured
	s.BiggestWin = max(s.BiggestWin, other.BiggestWin)
	s.BiggestLoss = min(s.BiggestLoss, other.BiggestLoss)
}

// Mean returns the average result in opening bets per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumUnits / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// HouseEdge returns the seat's loss as a fraction of the money wagered
func (s *Statistics) HouseEdge() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return -float64(s.NetDollars) / float64(s.Wagered)
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks that the counters agree with each other
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)", len(s.Values), s.Rounds)
	}
	if s.WonDollars+s.LostDollars != s.NetDollars {
		return fmt.Errorf("ledger mismatch: won=%d lost=%d net=%d", s.WonDollars, s.LostDollars, s.NetDollars)
	}
	if total := s.Blackjacks + s.Wins + s.Pushes + s.Losses; total != s.Hands {
		return fmt.Errorf("outcome total (%d) does not match hands (%d)", total, s.Hands)
	}
	if s.Hands < s.Rounds {
		return fmt.Errorf("fewer hands (%d) than rounds (%d)", s.Hands, s.Rounds)
	}
	return nil
}
