package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/tablesight/internal/analyzer"
	"github.com/lox/tablesight/internal/feed"
)

var CLI struct {
	Config   string `short:"c" default:"tablesight.hcl" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" default:"info" help:"Log level (debug, info, warn, error)"`

	Analyze AnalyzeCmd `cmd:"" help:"Analyze recorded snapshot sessions"`
	Odds    OddsCmd    `cmd:"" help:"Estimate equity for a hand against opponents"`
	Serve   ServeCmd   `cmd:"" help:"Serve analysis to recognizer feeds over WebSocket"`
}

// RunContext carries shared dependencies into subcommands.
type RunContext struct {
	Config *analyzer.Config
	Logger *log.Logger
}

func main() {
	ctx := kong.Parse(&CLI)

	cfg, err := analyzer.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		ctx.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		ctx.Exit(1)
	}

	logger := log.New(os.Stderr)
	switch CLI.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	err = ctx.Run(&RunContext{Config: cfg, Logger: logger})
	ctx.FatalIfErrorf(err)
}

// ServeCmd runs the WebSocket feed server.
type ServeCmd struct {
	Addr string `short:"a" default:"localhost:8089" help:"Address to bind to"`
}

func (c *ServeCmd) Run(run *RunContext) error {
	server := feed.NewServer(c.Addr, run.Config, run.Logger)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		run.Logger.Info("shutting down")
		_ = server.Stop()
		os.Exit(0)
	}()

	return server.Start()
}

// newRand builds the simulation source, seedable for reproducible runs.
func newRand(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
