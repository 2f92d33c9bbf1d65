// Package config loads table configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// TableConfig is the complete configuration for a blackjack table
type TableConfig struct {
	Table TableSettings `hcl:"table,block"`
	Seats []SeatConfig  `hcl:"seat,block"`
}

// TableSettings contains table-level configuration
type TableSettings struct {
	Decks           int    `hcl:"decks,optional"`
	StartingBalance int    `hcl:"starting_balance,optional"`
	LogLevel        string `hcl:"log_level,optional"`
}

// SeatConfig defines one AI seat at the table
type SeatConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy"`
	Balance  int    `hcl:"balance,optional"`
}

// DefaultTableConfig returns the configuration used when no file is given:
// a four-deck shoe and two AI seats.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		Table: TableSettings{
			Decks:           4,
			StartingBalance: 1000,
			LogLevel:        "info",
		},
		Seats: []SeatConfig{
			{Name: "Avery", Strategy: "aggressive", Balance: 1000},
			{Name: "Casey", Strategy: "balanced", Balance: 1000},
		},
	}
}

// LoadTableConfig loads table configuration from an HCL file, falling back
// to defaults when the file does not exist.
func LoadTableConfig(filename string) (*TableConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultTableConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config TableConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Table.Decks == 0 {
		config.Table.Decks = 4
	}
	if config.Table.StartingBalance == 0 {
		config.Table.StartingBalance = 1000
	}
	if config.Table.LogLevel == "" {
		config.Table.LogLevel = "info"
	}

	for i := range config.Seats {
		if config.Seats[i].Strategy == "" {
			config.Seats[i].Strategy = "balanced"
		}
		if config.Seats[i].Balance == 0 {
			config.Seats[i].Balance = config.Table.StartingBalance
		}
	}

	if err := validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func validate(config *TableConfig) error {
	if config.Table.Decks < 1 || config.Table.Decks > 8 {
		return fmt.Errorf("decks must be between 1 and 8, got %d", config.Table.Decks)
	}
	for _, seat := range config.Seats {
		switch seat.Strategy {
		case "aggressive", "conservative", "balanced":
		default:
			return fmt.Errorf("seat %q: unknown strategy %q", seat.Name, seat.Strategy)
		}
	}
	return nil
}
