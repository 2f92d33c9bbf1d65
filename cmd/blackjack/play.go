package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cardtable/blackjack/internal/config"
	"github.com/cardtable/blackjack/internal/display"
	"github.com/cardtable/blackjack/internal/game"
	"github.com/cardtable/blackjack/internal/randutil"
)

// PlayCmd runs an interactive table on stdin/stdout
type PlayCmd struct {
	Config string `short:"c" default:"table.hcl" help:"Table configuration file (HCL)"`
	Name   string `default:"You" help:"Your seat name"`
	Seed   int64  `help:"RNG seed; 0 seeds from the clock"`
	Debug  bool   `short:"d" help:"Enable debug logging"`
}

func (cmd *PlayCmd) Run() error {
	cfg, err := config.LoadTableConfig(cmd.Config)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.Table.LogLevel, cmd.Debug)

	seed := cmd.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)

	human := game.NewSeat(cmd.Name, game.Human, cfg.Table.StartingBalance)
	var opponents []*game.Seat
	for _, seat := range cfg.Seats {
		strategy, ok := game.StrategyByName(seat.Strategy)
		if !ok {
			return fmt.Errorf("seat %q: unknown strategy %q", seat.Name, seat.Strategy)
		}
		opponents = append(opponents, game.NewAISeat(seat.Name, seat.Balance, strategy))
	}

	tm := game.NewTurnManager(rng, logger, human, opponents, game.WithDecks(cfg.Table.Decks))
	tm.EventBus().Subscribe(display.NewEventFormatter(os.Stdout))

	logger.Debug("Table ready", "seed", seed, "decks", cfg.Table.Decks, "opponents", len(opponents))
	fmt.Printf("Welcome to the table. Balance: %d\n", human.Balance)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if human.Balance <= 0 {
			fmt.Println("You are out of chips. Table closed.")
			return nil
		}

		bet, quit := promptBet(scanner, human.Balance)
		if quit {
			return nil
		}
		if !tm.StartRound(bet) {
			fmt.Println("Bet rejected.")
			continue
		}

		for tm.State() == game.PlayerTurn {
			fmt.Println()
			fmt.Print(display.RenderTable(tm))
			if quit := promptAction(scanner, tm); quit {
				return nil
			}
		}

		fmt.Println()
		fmt.Print(display.RenderTable(tm))
		fmt.Printf("Balance: %d\n\n", human.Balance)
	}
}

func promptBet(scanner *bufio.Scanner, balance int) (int, bool) {
	for {
		fmt.Printf("Bet (1-%d, q to quit): ", balance)
		if !scanner.Scan() {
			return 0, true
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "q" || input == "quit" {
			return 0, true
		}

		bet, err := strconv.Atoi(input)
		if err != nil || bet <= 0 || bet > balance {
			fmt.Println("Enter a number within your balance.")
			continue
		}
		return bet, false
	}
}

func promptAction(scanner *bufio.Scanner, tm *game.TurnManager) bool {
	human := tm.HumanSeat()
	index := tm.CurrentHandIndex()

	options := []string{"(h)it", "(s)tand"}
	if human.CanDoubleDown(index) {
		options = append(options, "(d)ouble")
	}
	if human.CanSplit(index) {
		options = append(options, "s(p)lit")
	}
	if tm.InsuranceOffered() {
		options = append(options, "(i)nsure", "(n)o insurance")
	}

	fmt.Printf("Hand %d: %s? ", index+1, strings.Join(options, ", "))
	if !scanner.Scan() {
		return true
	}

	switch strings.TrimSpace(strings.ToLower(scanner.Text())) {
	case "h", "hit":
		tm.PlayerHit()
	case "s", "stand":
		tm.PlayerStand()
	case "d", "double":
		if !tm.DoubleDown() {
			fmt.Println("Cannot double down.")
		}
	case "p", "split":
		if !tm.SplitHand() {
			fmt.Println("Cannot split.")
		}
	case "i", "insure":
		if !tm.TakeInsurance() {
			fmt.Println("Insurance not available.")
		}
	case "n", "no":
		tm.DeclineInsurance()
	case "q", "quit":
		return true
	default:
		fmt.Println("Unknown command.")
	}
	return false
}
