package analyzer

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the session configuration for an analyzer.
type Config struct {
	Table    TableSettings    `hcl:"table,block"`
	Analysis AnalysisSettings `hcl:"analysis,block"`
}

// TableSettings describes the table being observed.
type TableSettings struct {
	SmallBlind int `hcl:"small_blind,optional"`
	BigBlind   int `hcl:"big_blind,optional"`
}

// AnalysisSettings tunes the probability engine and the fallback opponent
// estimates used when seat recognition cannot establish a live count.
type AnalysisSettings struct {
	MaxSimulations   int `hcl:"max_simulations,optional"`
	PreflopOpponents int `hcl:"preflop_opponents,optional"`
	FlopOpponents    int `hcl:"flop_opponents,optional"`
	TurnOpponents    int `hcl:"turn_opponents,optional"`
	RiverOpponents   int `hcl:"river_opponents,optional"`
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() *Config {
	return &Config{
		Table: TableSettings{
			SmallBlind: 10,
			BigBlind:   20,
		},
		Analysis: AnalysisSettings{
			MaxSimulations:   200,
			PreflopOpponents: 6,
			FlopOpponents:    4,
			TurnOpponents:    3,
			RiverOpponents:   3,
		},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file yields
// the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(config *Config) {
	defaults := DefaultConfig()
	if config.Table.SmallBlind == 0 {
		config.Table.SmallBlind = defaults.Table.SmallBlind
	}
	if config.Table.BigBlind == 0 {
		config.Table.BigBlind = defaults.Table.BigBlind
	}
	if config.Analysis.MaxSimulations == 0 {
		config.Analysis.MaxSimulations = defaults.Analysis.MaxSimulations
	}
	if config.Analysis.PreflopOpponents == 0 {
		config.Analysis.PreflopOpponents = defaults.Analysis.PreflopOpponents
	}
	if config.Analysis.FlopOpponents == 0 {
		config.Analysis.FlopOpponents = defaults.Analysis.FlopOpponents
	}
	if config.Analysis.TurnOpponents == 0 {
		config.Analysis.TurnOpponents = defaults.Analysis.TurnOpponents
	}
	if config.Analysis.RiverOpponents == 0 {
		config.Analysis.RiverOpponents = defaults.Analysis.RiverOpponents
	}
}

// Validate checks configuration bounds.
func (c *Config) Validate() error {
	if c.Table.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive, got %d", c.Table.SmallBlind)
	}
	if c.Table.BigBlind <= c.Table.SmallBlind {
		return fmt.Errorf("big blind %d must be greater than small blind %d",
			c.Table.BigBlind, c.Table.SmallBlind)
	}
	if c.Analysis.MaxSimulations < 1 || c.Analysis.MaxSimulations > 10000 {
		return fmt.Errorf("max simulations must be between 1 and 10000, got %d",
			c.Analysis.MaxSimulations)
	}
	for _, n := range []int{
		c.Analysis.PreflopOpponents,
		c.Analysis.FlopOpponents,
		c.Analysis.TurnOpponents,
		c.Analysis.RiverOpponents,
	} {
		if n < 1 || n > 8 {
			return fmt.Errorf("fallback opponent counts must be between 1 and 8, got %d", n)
		}
	}
	return nil
}
