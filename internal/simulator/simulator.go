package simulator

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/cardtable/blackjack/internal/game"
	"github.com/cardtable/blackjack/internal/randutil"
	"github.com/cardtable/blackjack/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds    int      // Total rounds to play
	Strategy  string   // Strategy driving the tracked seat
	Opponents []string // Strategies for the other seats at the table
	Balance   int      // Starting balance per round
	Decks     int      // Shoe size in 52-card decks
	Seed      int64    // Base seed; round i plays with Seed+i
	Workers   int      // Parallel tables; 1 when zero
	Logger    *log.Logger
}

// Simulator plays blackjack rounds against the house and aggregates the
// tracked seat's results
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.Decks <= 0 {
		config.Decks = 4
	}
	return &Simulator{config: config}
}

// Run executes the simulation and returns aggregate statistics. Rounds are
// split across workers; each round is seeded independently so any single
// round can be replayed from its recorded seed.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	strategy, ok := game.StrategyByName(s.config.Strategy)
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q", s.config.Strategy)
	}
	for _, name := range s.config.Opponents {
		if _, ok := game.StrategyByName(name); !ok {
			return nil, fmt.Errorf("unknown opponent strategy %q", name)
		}
	}

	results := make(chan statistics.RoundResult, s.config.Workers)
	group, ctx := errgroup.WithContext(ctx)

	for worker := 0; worker < s.config.Workers; worker++ {
		worker := worker
		group.Go(func() error {
			for round := worker; round < s.config.Rounds; round += s.config.Workers {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				result, err := s.playRound(strategy, s.config.Seed+int64(round))
				if err != nil {
					return fmt.Errorf("round %d: %w", round+1, err)
				}
				results <- result
			}
			return nil
		})
	}

	done := make(chan struct{})
	stats := &statistics.Statistics{}
	go func() {
		defer close(done)
		for result := range results {
			stats.Add(result)
		}
	}()

	if err := group.Wait(); err != nil {
		close(results)
		<-done
		return nil, err
	}
	close(results)
	<-done

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// playRound plays one fully automated round on a fresh table
func (s *Simulator) playRound(strategy game.Strategy, seed int64) (statistics.RoundResult, error) {
	rng := randutil.New(seed)

	human := game.NewSeat("Player", game.Human, s.config.Balance)
	var opponents []*game.Seat
	for i, name := range s.config.Opponents {
		opponent, _ := game.StrategyByName(name)
		opponents = append(opponents, game.NewAISeat(fmt.Sprintf("Opp%d", i+1), s.config.Balance, opponent))
	}

	tm := game.NewTurnManager(rng, s.config.Logger, human, opponents, game.WithDecks(s.config.Decks))

	collector := statistics.NewCollector(human)
	tm.EventBus().Subscribe(collector)

	bet := strategy.BetAmount(rng, human.Balance)
	if !tm.StartRound(bet) {
		return statistics.RoundResult{}, fmt.Errorf("round start rejected with bet %d", bet)
	}

	if tm.InsuranceOffered() {
		if strategy.ShouldTakeInsurance(rng) {
			tm.TakeInsurance()
		} else {
			tm.DeclineInsurance()
		}
	}

	for tm.State() == game.PlayerTurn {
		hand := human.Hand(tm.CurrentHandIndex())

		if len(hand.Cards) == 2 && strategy.ShouldSplitHand(hand) && human.CanSplit(tm.CurrentHandIndex()) {
			if tm.SplitHand() {
				continue
			}
		}
		if len(hand.Cards) == 2 && strategy.ShouldPlayDoubleDown(hand) && human.CanDoubleDown(tm.CurrentHandIndex()) {
			if tm.DoubleDown() {
				continue
			}
		}
		if hand.Value() < 21 && strategy.ShouldDraw(hand.Value()) {
			tm.PlayerHit()
			continue
		}
		tm.PlayerStand()
	}

	if tm.State() != game.RoundOver {
		return statistics.RoundResult{}, fmt.Errorf("round finished in state %s", tm.State())
	}

	return collector.Finish(s.config.Balance, seed), nil
}

// RunSimulation is a convenience function for running a simulation with
// basic parameters
func RunSimulation(ctx context.Context, rounds int, strategy string, seed int64, logger *log.Logger) (*statistics.Statistics, error) {
	config := Config{
		Rounds:   rounds,
		Strategy: strategy,
		Balance:  1000,
		Decks:    4,
		Seed:     seed,
		Workers:  1,
		Logger:   logger,
	}
	return New(config).Run(ctx)
}

// PrintSummary prints a summary of simulation results
func PrintSummary(stats *statistics.Statistics, strategy string) {
	mean := stats.Mean()
	low, high := stats.ConfidenceInterval95()

	fmt.Printf("\n=== RESULTS: %s strategy ===\n", strategy)
	fmt.Printf("Rounds played: %d\n", stats.Rounds)
	fmt.Printf("Mean: %.2f chips/round\n", mean)
	fmt.Printf("Median: %.2f chips/round\n", stats.Median())
	fmt.Printf("Std Dev: %.2f chips\n", stats.StdDev())
	fmt.Printf("95%% CI: [%.2f, %.2f] chips/round\n", low, high)
	fmt.Printf("Percentiles: P5=%.1f, P25=%.1f, P75=%.1f, P95=%.1f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Printf("\n=== HAND OUTCOMES ===\n")
	fmt.Printf("Wins: %d  Blackjacks: %d  Losses: %d  Pushes: %d  Busts: %d\n",
		stats.Wins, stats.Blackjacks, stats.Losses, stats.Pushes, stats.Busts)
	fmt.Printf("Win rate: %.1f%%\n", stats.WinRate()*100)
	fmt.Printf("Splits: %d  Doubles: %d  Insurance taken: %d\n", stats.Splits, stats.Doubles, stats.Insured)
	fmt.Printf("Best round: %+d chips  Worst round: %+d chips\n", stats.MaxWin, stats.MaxLoss)
}
