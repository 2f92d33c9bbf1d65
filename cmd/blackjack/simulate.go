package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/cardtable/blackjack/internal/simulator"
)

// SimulateCmd runs automated rounds and prints aggregate statistics
type SimulateCmd struct {
	Rounds    int      `short:"n" default:"10000" help:"Number of rounds to play"`
	Strategy  string   `default:"balanced" enum:"aggressive,conservative,balanced" help:"Strategy for the tracked seat"`
	Opponents []string `help:"Strategies for additional AI seats"`
	Balance   int      `default:"1000" help:"Starting balance per round"`
	Decks     int      `default:"4" help:"Decks in the shoe"`
	Seed      int64    `help:"Base RNG seed; 0 seeds from the clock"`
	Workers   int      `short:"w" help:"Parallel tables; defaults to GOMAXPROCS"`
	Debug     bool     `short:"d" help:"Enable debug logging"`
}

func (cmd *SimulateCmd) Run() error {
	logger := setupLogger("warn", cmd.Debug)

	seed := cmd.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	workers := cmd.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := simulator.New(simulator.Config{
		Rounds:    cmd.Rounds,
		Strategy:  cmd.Strategy,
		Opponents: cmd.Opponents,
		Balance:   cmd.Balance,
		Decks:     cmd.Decks,
		Seed:      seed,
		Workers:   workers,
		Logger:    logger,
	})

	logger.Info("Starting simulation", "rounds", cmd.Rounds, "strategy", cmd.Strategy, "seed", seed, "workers", workers)
	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	simulator.PrintSummary(stats, cmd.Strategy)
	logger.Info("Simulation complete", "elapsed", time.Since(start))
	return nil
}
