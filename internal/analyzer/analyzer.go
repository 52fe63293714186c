// Package analyzer orchestrates one recognition pass end to end: card
// parsing, stage classification, tournament bookkeeping and probability
// analysis, producing a single Result per Snapshot.
package analyzer

import (
	"errors"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/tablesight/internal/deck"
	"github.com/lox/tablesight/internal/evaluator"
	"github.com/lox/tablesight/internal/probability"
	"github.com/lox/tablesight/internal/stage"
	"github.com/lox/tablesight/internal/tournament"
)

// DeckAnalysis summarizes card visibility and table occupancy for one pass.
type DeckAnalysis struct {
	KnownCards    int
	UnknownCards  int
	Seated        int
	SittingOut    int
	DealtPlayers  int
	RemainingDeck int
}

// Result is the full analysis of one snapshot.
type Result struct {
	Stage      stage.Info
	Transition stage.Transition
	HandCount  int
	Elapsed    time.Duration

	HeroCards      []deck.Card
	CommunityCards []deck.Card
	InvalidSlots   []string

	Hand    *evaluator.Evaluation
	Preflop *evaluator.PreflopEvaluation

	Probability *probability.Analysis
	Opponents   int

	Pot          *int
	Eliminations []tournament.Elimination
	Metrics      tournament.Metrics
	Deck         DeckAnalysis
}

// Analyzer holds the per-session state that persists across snapshots:
// the card tracker, the stage machine and the tournament ledger.
type Analyzer struct {
	cfg     *Config
	tracker *deck.Tracker
	stages  *stage.Tracker
	ledger  *tournament.Ledger
	engine  *probability.Engine
	clock   quartz.Clock
	logger  *log.Logger
}

// New creates an analyzer session. Nil arguments select production
// defaults: wall clock, time-seeded randomness, discarded logs.
func New(cfg *Config, clock quartz.Clock, rng *rand.Rand, logger *log.Logger) *Analyzer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	engine := probability.New(rng, logger)
	engine.SetMaxSamples(cfg.Analysis.MaxSimulations)

	return &Analyzer{
		cfg:     cfg,
		tracker: deck.NewTracker(),
		stages:  stage.NewTracker(logger),
		ledger:  tournament.NewLedger(cfg.Table.SmallBlind, cfg.Table.BigBlind, clock, logger),
		engine:  engine,
		clock:   clock,
		logger:  logger,
	}
}

// Ledger exposes the session's tournament state.
func (a *Analyzer) Ledger() *tournament.Ledger {
	return a.ledger
}

// HandCount reports how many hands the session has seen complete.
func (a *Analyzer) HandCount() int {
	return a.stages.HandCount()
}

// Analyze processes one snapshot. It never returns an error: unreadable
// inputs are logged, recorded on the Result, and skipped.
func (a *Analyzer) Analyze(snap Snapshot) *Result {
	started := a.clock.Now()
	a.tracker.Reset()
	result := &Result{}

	result.HeroCards = a.parseSlots(snap.HeroCards, "hero", result)
	result.CommunityCards = a.parseSlots(snap.CommunityCards, "community", result)

	result.Stage = stage.Classify(len(result.CommunityCards))
	result.Transition = a.stages.Advance(result.Stage.Stage)
	result.HandCount = a.stages.HandCount()

	result.Eliminations = a.ledger.Update(snap.Seats)
	result.Metrics = a.ledger.Metrics()
	result.Pot = ParsePot(snap.Pot)
	result.Opponents = a.opponents(snap, result.Stage.Stage)

	seated := tournament.CountSeated(snap.Seats)
	sittingOut := tournament.CountSittingOut(snap.Seats)
	// Every opponent plus the hero was dealt in, whatever the seat
	// recognition managed to read.
	dealt := seated - sittingOut
	if dealt < result.Opponents+1 {
		dealt = result.Opponents + 1
	}
	result.Deck = DeckAnalysis{
		KnownCards:    a.tracker.KnownCount(),
		UnknownCards:  a.tracker.UnknownCount(),
		Seated:        seated,
		SittingOut:    sittingOut,
		DealtPlayers:  dealt,
		RemainingDeck: 52 - len(result.CommunityCards) - 2*dealt,
	}

	if len(result.HeroCards) == 2 {
		a.evaluateHand(result)

		analysis := a.engine.Calculate(result.HeroCards, result.CommunityCards, result.Opponents, dealt)
		result.Probability = &analysis
	}

	result.Elapsed = a.clock.Now().Sub(started)
	return result
}

// parseSlots converts raw card texts to cards. Empty slots mean the
// recognizer saw nothing there; parse failures and duplicate sightings are
// logged and dropped.
func (a *Analyzer) parseSlots(texts []string, label string, result *Result) []deck.Card {
	var cards []deck.Card
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		card, err := deck.ParseCard(text)
		if err != nil {
			var invalid *deck.InvalidCardError
			if errors.As(err, &invalid) {
				a.logger.Warn("unreadable card slot", "slot", label, "text", invalid.Text, "reason", invalid.Reason)
			} else {
				a.logger.Warn("unreadable card slot", "slot", label, "text", text, "err", err)
			}
			result.InvalidSlots = append(result.InvalidSlots, text)
			continue
		}
		if a.tracker.IsKnown(card) {
			a.logger.Warn("duplicate card sighting", "slot", label, "card", card.String())
			result.InvalidSlots = append(result.InvalidSlots, text)
			continue
		}
		a.tracker.MarkKnown(card)
		cards = append(cards, card)
	}
	return cards
}

func (a *Analyzer) evaluateHand(result *Result) {
	if len(result.HeroCards)+len(result.CommunityCards) >= 5 {
		all := append(append([]deck.Card{}, result.HeroCards...), result.CommunityCards...)
		eval, err := evaluator.Evaluate(all)
		if err != nil {
			a.logger.Warn("hand evaluation failed", "err", err)
			return
		}
		result.Hand = &eval
		return
	}

	pre, err := evaluator.EvaluatePreflop(result.HeroCards)
	if err != nil {
		a.logger.Warn("preflop evaluation failed", "err", err)
		return
	}
	result.Preflop = &pre
}

// opponents resolves the opponent count for probability analysis: an
// explicit recognizer count wins, then live ledger occupancy, then the
// per-stage fallback estimate.
func (a *Analyzer) opponents(snap Snapshot, current stage.Stage) int {
	if snap.ActiveOpponents != nil && *snap.ActiveOpponents > 0 {
		return *snap.ActiveOpponents
	}
	if active := a.ledger.ActiveCount(); active >= 2 {
		return active - 1
	}

	switch current {
	case stage.Flop:
		return a.cfg.Analysis.FlopOpponents
	case stage.Turn:
		return a.cfg.Analysis.TurnOpponents
	case stage.River:
		return a.cfg.Analysis.RiverOpponents
	default:
		return a.cfg.Analysis.PreflopOpponents
	}
}
