// Package probability estimates win/tie/lose equity, board texture and
// drawing outs from the cards one observer can see. Estimates are
// best-effort under recognition noise: the engine never fails a pass, it
// degrades to coarser numbers.
package probability

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/tablesight/internal/deck"
	"github.com/lox/tablesight/internal/evaluator"
)

const (
	defaultMaxSamples      = 200
	strengthSampleLimit    = 100
	multiOpponentTieFactor = 0.5
)

// Engine samples opponent holdings from the unknown-card pool. The random
// source is injectable so tests are deterministic; production passes nil
// for a time-seeded source.
type Engine struct {
	rng        *rand.Rand
	maxSamples int
	logger     *log.Logger
}

// New creates an engine. A nil rng seeds from the wall clock; a nil logger
// discards output.
func New(rng *rand.Rand, logger *log.Logger) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{rng: rng, maxSamples: defaultMaxSamples, logger: logger}
}

// SetMaxSamples bounds the river sampling loop. Non-positive values are
// ignored.
func (e *Engine) SetMaxSamples(n int) {
	if n > 0 {
		e.maxSamples = n
	}
}

// Equity is the showdown outcome estimate. Percentages always sum to 100
// within rounding and each lies in [0,100].
type Equity struct {
	WinPercent  float64
	TiePercent  float64
	LosePercent float64

	// Simulated is false when the numbers come from the pre-river
	// opponent-count heuristic rather than sampling.
	Simulated             bool
	Simulations           int
	SingleOpponentWinRate float64
}

// OpponentStrength summarizes sampled opponent holdings against the board.
type OpponentStrength struct {
	AverageScore float64
	SampleSize   int
}

// Analysis is the engine's full per-pass output.
type Analysis struct {
	Equity           Equity
	Texture          Texture
	Outs             Outs
	Opponents        int
	DealtPlayers     int
	RemainingDeck    int
	OpponentStrength *OpponentStrength
}

// Calculate estimates equity for the hero's two hole cards against the
// given number of opponents. dealtPlayers is every seated player dealt into
// the hand, not only those still betting; it sizes the remaining deck.
func (e *Engine) Calculate(hero []deck.Card, community []deck.Card, opponents, dealtPlayers int) Analysis {
	if opponents < 1 {
		opponents = 1
	}
	if dealtPlayers < opponents+1 {
		dealtPlayers = opponents + 1
	}

	analysis := Analysis{
		Opponents:     opponents,
		DealtPlayers:  dealtPlayers,
		RemainingDeck: 52 - len(community) - 2*dealtPlayers,
		Texture:       AnalyzeTexture(community, opponents),
		Outs:          CountOuts(hero, community),
	}

	if len(community) == 5 && len(hero) == 2 {
		analysis.Equity = e.riverEquity(hero, community, opponents)
	} else {
		analysis.Equity = estimateEquity(community, opponents)
	}

	if len(community) >= 3 && len(hero) == 2 {
		analysis.OpponentStrength = e.sampleOpponentStrength(hero, community)
	}

	return analysis
}

// riverEquity evaluates the hero's made hand once, then samples possible
// opponent holdings from the unknown pool and tallies outcomes against a
// single opponent. The probability of beating all n opponents is
// approximated as singleWinRate^n; this deliberately ignores card-removal
// correlation between opponents' hands.
func (e *Engine) riverEquity(hero, community []deck.Card, opponents int) Equity {
	heroEval, err := evaluator.Evaluate(append(append([]deck.Card{}, hero...), community...))
	if err != nil {
		e.logger.Warn("hero hand evaluation failed, falling back to estimate", "err", err)
		return estimateEquity(community, opponents)
	}

	pool := unknownPool(hero, community)
	combos := e.sampleCombos(pool, e.maxSamples)

	var wins, ties, losses, simulations int
	board := append([]deck.Card{}, community...)
	for _, combo := range combos {
		oppEval, err := evaluator.Evaluate(append([]deck.Card{combo[0], combo[1]}, board...))
		if err != nil {
			continue // never let one bad sample fail the pass
		}
		switch {
		case heroEval.Score > oppEval.Score:
			wins++
		case heroEval.Score == oppEval.Score:
			ties++
		default:
			losses++
		}
		simulations++
	}

	if simulations == 0 {
		return estimateEquity(community, opponents)
	}

	singleWin := float64(wins) / float64(simulations)
	adjustedWin := 1.0
	for i := 0; i < opponents; i++ {
		adjustedWin *= singleWin
	}
	adjustedTie := float64(ties) / float64(simulations) * multiOpponentTieFactor

	win := clampPercent(adjustedWin * 100)
	tie := clampPercent(adjustedTie * 100)
	lose := clampPercent(100 - win - tie)

	e.logger.Debug("river equity",
		"single_win_rate", singleWin,
		"opponents", opponents,
		"adjusted_win", win,
		"simulations", simulations)

	return Equity{
		WinPercent:            win,
		TiePercent:            tie,
		LosePercent:           lose,
		Simulated:             true,
		Simulations:           simulations,
		SingleOpponentWinRate: singleWin * 100,
	}
}

// estimateEquity covers incomplete boards with an opponent-count bucket
// heuristic. Not simulated; the Simulated flag tells consumers so.
func estimateEquity(community []deck.Card, opponents int) Equity {
	var baseWin float64
	switch {
	case opponents == 1:
		baseWin = 45.0
	case opponents == 2:
		baseWin = 30.0
	case opponents <= 4:
		baseWin = 20.0
	case opponents <= 6:
		baseWin = 15.0
	default:
		baseWin = 10.0
	}

	// A developed board makes the estimate slightly less pessimistic.
	if len(community) >= 3 {
		baseWin *= 1.1
	}

	win := clampPercent(baseWin)
	tie := 3.0
	lose := clampPercent(100 - win - tie)

	return Equity{
		WinPercent:  win,
		TiePercent:  tie,
		LosePercent: lose,
	}
}

// sampleOpponentStrength averages evaluated scores over a bounded sample of
// possible opponent holdings.
func (e *Engine) sampleOpponentStrength(hero, community []deck.Card) *OpponentStrength {
	pool := unknownPool(hero, community)
	combos := e.sampleCombos(pool, strengthSampleLimit)

	var total float64
	var samples int
	board := append([]deck.Card{}, community...)
	for _, combo := range combos {
		oppEval, err := evaluator.Evaluate(append([]deck.Card{combo[0], combo[1]}, board...))
		if err != nil {
			continue
		}
		total += float64(oppEval.Score)
		samples++
	}

	if samples == 0 {
		return nil
	}
	return &OpponentStrength{AverageScore: total / float64(samples), SampleSize: samples}
}

// unknownPool returns every card not visible to the hero.
func unknownPool(hero, community []deck.Card) []deck.Card {
	tracker := deck.NewTracker()
	tracker.MarkKnown(hero...)
	tracker.MarkKnown(community...)
	return tracker.Unknown()
}

// sampleCombos enumerates all two-card combinations of the pool, shuffles
// them, and returns at most limit of them.
func (e *Engine) sampleCombos(pool []deck.Card, limit int) [][2]deck.Card {
	combos := make([][2]deck.Card, 0, len(pool)*(len(pool)-1)/2)
	for i := 0; i < len(pool); i++ {
		for j := i + 1; j < len(pool); j++ {
			combos = append(combos, [2]deck.Card{pool[i], pool[j]})
		}
	}

	e.rng.Shuffle(len(combos), func(i, j int) {
		combos[i], combos[j] = combos[j], combos[i]
	})

	if len(combos) > limit {
		combos = combos[:limit]
	}
	return combos
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
