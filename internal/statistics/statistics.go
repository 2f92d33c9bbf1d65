package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/cardtable/blackjack/internal/game"
)

// RoundResult represents the outcome of a single blackjack round from the
// tracked seat's point of view
type RoundResult struct {
	Net        int   // Net chips won/lost this round
	Seed       int64 // RNG seed for this round (for replay)
	Wins       int   // Hands settled as 1:1 wins
	Losses     int   // Hands lost to the dealer
	Pushes     int   // Hands pushed
	Blackjacks int   // Natural blackjacks paid at 3:2
	Busts      int   // Hands that went over 21
	Split      bool  // Did the seat split this round?
	Doubled    bool  // Did the seat double down?
	Insured    bool  // Did the seat take insurance?
}

// Statistics tracks aggregate results across many blackjack rounds
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Store all values for median/percentile calculation

	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int
	Busts      int
	Splits     int
	Doubles    int
	Insured    int

	MaxWin  int // Largest single-round gain
	MaxLoss int // Largest single-round loss (negative)
}

// Mean returns the arithmetic mean net result per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of all round results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all round results
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

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	net := float64(result.Net)
	s.Rounds++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)

	s.Wins += result.Wins
	s.Losses += result.Losses
	s.Pushes += result.Pushes
	s.Blackjacks += result.Blackjacks
	s.Busts += result.Busts

	if result.Split {
		s.Splits++
	}
	if result.Doubled {
		s.Doubles++
	}
	if result.Insured {
		s.Insured++
	}

	if result.Net > s.MaxWin {
		s.MaxWin = result.Net
	}
	if result.Net < s.MaxLoss {
		s.MaxLoss = result.Net
	}
}

// Median returns the median net result of all rounds
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
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

// WinRate returns the fraction of settled hands the seat won outright,
// counting naturals as wins
func (s *Statistics) WinRate() float64 {
	settled := s.Wins + s.Losses + s.Pushes + s.Blackjacks
	if settled == 0 {
		return 0
	}
	return float64(s.Wins+s.Blackjacks) / float64(settled)
}

// Validate performs consistency checks on the accumulated data
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	settled := s.Wins + s.Losses + s.Pushes + s.Blackjacks
	if settled < s.Rounds {
		return fmt.Errorf("settled hands (%d) below rounds count (%d)", settled, s.Rounds)
	}

	// Every bust is settled as a loss
	if s.Busts > s.Losses {
		return fmt.Errorf("busts (%d) exceed losses (%d)", s.Busts, s.Losses)
	}

	if s.MaxLoss > 0 || s.MaxWin < 0 {
		return fmt.Errorf("max win/loss inverted: win=%d loss=%d", s.MaxWin, s.MaxLoss)
	}

	return nil
}

// Collector builds a RoundResult for one seat by watching the engine's
// event stream. Subscribe it before StartRound and call Finish after the
// round settles.
type Collector struct {
	seat *game.Seat

	wins       int
	losses     int
	pushes     int
	blackjacks int
	busts      int
	split      bool
	doubled    bool
	insured    bool
}

// NewCollector creates a collector tracking the given seat
func NewCollector(seat *game.Seat) *Collector {
	return &Collector{seat: seat}
}

// OnEvent implements game.EventSubscriber
func (c *Collector) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.HandOutcomeEvent:
		if e.Seat != c.seat {
			return
		}
		switch event.EventType() {
		case game.EventTypePlayerWins:
			c.wins++
		case game.EventTypeDealerWins:
			c.losses++
		case game.EventTypePush:
			c.pushes++
		case game.EventTypeBlackjack:
			c.blackjacks++
		}
	case game.PlayerBustedEvent:
		if e.Seat == c.seat {
			c.busts++
		}
	case game.HandSplitEvent:
		if e.Seat == c.seat {
			c.split = true
		}
	case game.DoubleDownEvent:
		if e.Seat == c.seat {
			c.doubled = true
		}
	case game.InsuranceAcceptedEvent:
		if e.Seat == c.seat {
			c.insured = true
		}
	}
}

// Finish produces the round result given the seat's balance before the
// round and the seed it was played with, and resets the collector for the
// next round.
func (c *Collector) Finish(startBalance int, seed int64) RoundResult {
	result := RoundResult{
		Net:        c.seat.Balance - startBalance,
		Seed:       seed,
		Wins:       c.wins,
		Losses:     c.losses,
		Pushes:     c.pushes,
		Blackjacks: c.blackjacks,
		Busts:      c.busts,
		Split:      c.split,
		Doubled:    c.doubled,
		Insured:    c.insured,
	}
	*c = Collector{seat: c.seat}
	return result
}
