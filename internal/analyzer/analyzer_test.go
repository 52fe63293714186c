package analyzer

import (
	"math/rand"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/tablesight/internal/evaluator"
	"github.com/lox/tablesight/internal/stage"
	"github.com/lox/tablesight/internal/tournament"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	return New(nil, quartz.NewMock(t), rand.New(rand.NewSource(1)), nil)
}

func threeSeats() map[tournament.Position]tournament.SeatInput {
	return map[tournament.Position]tournament.SeatInput{
		tournament.Hero:      {Name: "HeroPlayer", Stack: "1,500"},
		tournament.Position1: {Name: "Villain_1", Stack: "2,200"},
		tournament.Position2: {Name: "Villain_2", Stack: "800"},
	}
}

func TestAnalyzeRiverSnapshot(t *testing.T) {
	a := newTestAnalyzer(t)

	result := a.Analyze(Snapshot{
		HeroCards:      []string{"A♠", "K♠"},
		CommunityCards: []string{"Q♠", "J♠", "10♠", "2♥", "7♦"},
		Pot:            "Pot: $1,250",
		Seats:          threeSeats(),
	})

	assert.Equal(t, stage.River, result.Stage.Stage)
	assert.Equal(t, 1.0, result.Stage.Confidence)

	require.NotNil(t, result.Hand)
	assert.Equal(t, evaluator.RoyalFlush, result.Hand.Category)
	assert.Nil(t, result.Preflop)

	require.NotNil(t, result.Probability)
	assert.True(t, result.Probability.Equity.Simulated)
	assert.Equal(t, 100.0, result.Probability.Equity.WinPercent)

	require.NotNil(t, result.Pot)
	assert.Equal(t, 1250, *result.Pot)

	assert.Equal(t, 3, result.Metrics.ActivePlayers)
	assert.Equal(t, 2, result.Opponents)
}

func TestAnalyzePreflopSnapshot(t *testing.T) {
	a := newTestAnalyzer(t)

	result := a.Analyze(Snapshot{
		HeroCards: []string{"A♥", "A♦"},
		Seats:     threeSeats(),
	})

	assert.Equal(t, stage.PreFlop, result.Stage.Stage)
	assert.Equal(t, stage.TransitionNewHand, result.Transition.Kind)
	assert.Equal(t, 1, result.HandCount)

	assert.Nil(t, result.Hand)
	require.NotNil(t, result.Preflop)
	assert.Equal(t, "AA", result.Preflop.Category)

	require.NotNil(t, result.Probability)
	assert.False(t, result.Probability.Equity.Simulated)
}

func TestAnalyzeUnreadableCardSlot(t *testing.T) {
	a := newTestAnalyzer(t)

	result := a.Analyze(Snapshot{
		HeroCards: []string{"A♠", "%%"},
		Seats:     threeSeats(),
	})

	assert.Len(t, result.HeroCards, 1)
	assert.Equal(t, []string{"%%"}, result.InvalidSlots)
	assert.Nil(t, result.Hand)
	assert.Nil(t, result.Preflop)
	assert.Nil(t, result.Probability)
}

func TestAnalyzeEmptySlotsAreNotErrors(t *testing.T) {
	a := newTestAnalyzer(t)

	result := a.Analyze(Snapshot{
		HeroCards:      []string{"A♠", "K♦"},
		CommunityCards: []string{"", "", "", "", ""},
		Seats:          threeSeats(),
	})

	assert.Empty(t, result.InvalidSlots)
	assert.Empty(t, result.CommunityCards)
	assert.Equal(t, stage.PreFlop, result.Stage.Stage)
}

func TestAnalyzeDuplicateSightingDropped(t *testing.T) {
	a := newTestAnalyzer(t)

	result := a.Analyze(Snapshot{
		HeroCards:      []string{"A♠", "K♦"},
		CommunityCards: []string{"A♠", "9♣", "2♥"},
		Seats:          threeSeats(),
	})

	assert.Len(t, result.CommunityCards, 2)
	assert.Contains(t, result.InvalidSlots, "A♠")
}

func TestAnalyzeHandLifecycleAcrossSnapshots(t *testing.T) {
	a := newTestAnalyzer(t)
	seats := threeSeats()

	a.Analyze(Snapshot{HeroCards: []string{"A♥", "A♦"}, Seats: seats})
	flop := a.Analyze(Snapshot{
		HeroCards:      []string{"A♥", "A♦"},
		CommunityCards: []string{"9♣", "6♦", "2♠"},
		Seats:          seats,
	})
	assert.Equal(t, stage.TransitionProgressed, flop.Transition.Kind)

	next := a.Analyze(Snapshot{HeroCards: []string{"K♥", "Q♦"}, Seats: seats})
	assert.Equal(t, stage.TransitionHandFinished, next.Transition.Kind)
	assert.Equal(t, "Early Finish (Flop)", next.Transition.FinishReason)
	assert.Equal(t, 2, next.HandCount)
}

func TestOpponentCountPrecedence(t *testing.T) {
	a := newTestAnalyzer(t)
	explicit := 5

	result := a.Analyze(Snapshot{
		HeroCards:       []string{"A♥", "A♦"},
		Seats:           threeSeats(),
		ActiveOpponents: &explicit,
	})
	assert.Equal(t, 5, result.Opponents)

	result = a.Analyze(Snapshot{HeroCards: []string{"A♥", "A♦"}, Seats: threeSeats()})
	assert.Equal(t, 2, result.Opponents, "ledger occupancy minus hero")
}

func TestOpponentCountStageFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		community []string
		want      int
	}{
		{"preflop", nil, 6},
		{"flop", []string{"9♣", "6♦", "2♠"}, 4},
		{"turn", []string{"9♣", "6♦", "2♠", "K♥"}, 3},
		{"river", []string{"9♣", "6♦", "2♠", "K♥", "4♦"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAnalyzer(t)
			result := a.Analyze(Snapshot{
				HeroCards:      []string{"A♥", "A♦"},
				CommunityCards: tt.community,
			})
			assert.Equal(t, tt.want, result.Opponents)
		})
	}
}

func TestAnalyzeReportsEliminations(t *testing.T) {
	a := newTestAnalyzer(t)

	a.Analyze(Snapshot{HeroCards: []string{"A♥", "A♦"}, Seats: threeSeats()})

	seats := threeSeats()
	seats[tournament.Position2] = tournament.SeatInput{Name: "Villain_2", Stack: "0"}
	result := a.Analyze(Snapshot{
		HeroCards:      []string{"A♥", "A♦"},
		CommunityCards: []string{"9♣", "6♦", "2♠"},
		Seats:          seats,
	})

	require.Len(t, result.Eliminations, 1)
	assert.Equal(t, "Villain_2", result.Eliminations[0].Name)
	assert.Equal(t, 2, result.Metrics.ActivePlayers)
}

func TestAnalyzeRiverPairVector(t *testing.T) {
	a := newTestAnalyzer(t)

	result := a.Analyze(Snapshot{
		HeroCards:      []string{"8♠", "4♥"},
		CommunityCards: []string{"K♣", "4♣", "A♥", "5♦", "7♦"},
		Seats:          threeSeats(),
	})

	require.NotNil(t, result.Hand)
	assert.Equal(t, evaluator.OnePair, result.Hand.Category)
	assert.Equal(t, "Pair of 4s", result.Hand.Description)

	require.NotNil(t, result.Probability)
	assert.True(t, result.Probability.Equity.Simulated)
	assert.Less(t, result.Probability.Equity.WinPercent, 50.0)
}

func TestAnalyzeDeckAnalysis(t *testing.T) {
	a := newTestAnalyzer(t)

	seats := threeSeats()
	seats[tournament.Position3] = tournament.SeatInput{Name: "AwayGuy (Sitting Out)", Stack: ""}
	result := a.Analyze(Snapshot{
		HeroCards:      []string{"A♠", "K♠"},
		CommunityCards: []string{"Q♠", "J♠", "10♠"},
		Seats:          seats,
	})

	assert.Equal(t, 5, result.Deck.KnownCards)
	assert.Equal(t, 47, result.Deck.UnknownCards)
	assert.Equal(t, 4, result.Deck.Seated)
	assert.Equal(t, 1, result.Deck.SittingOut)
	assert.Equal(t, 3, result.Deck.DealtPlayers)
	// 52 minus 3 community minus two hole cards per dealt player.
	assert.Equal(t, 43, result.Deck.RemainingDeck)
}

func TestDeckAnalysisAgreesWithProbability(t *testing.T) {
	a := newTestAnalyzer(t)
	explicit := 5

	// More reported opponents than readable seats: the dealt-in count
	// still covers every opponent plus the hero.
	result := a.Analyze(Snapshot{
		HeroCards: []string{"A♥", "A♦"},
		Seats: map[tournament.Position]tournament.SeatInput{
			tournament.Hero: {Name: "HeroPlayer", Stack: "1,500"},
		},
		ActiveOpponents: &explicit,
	})

	require.NotNil(t, result.Probability)
	assert.Equal(t, 6, result.Deck.DealtPlayers)
	assert.Equal(t, 52-2*6, result.Deck.RemainingDeck)
	assert.Equal(t, result.Deck.RemainingDeck, result.Probability.RemainingDeck)
	assert.Equal(t, result.Deck.DealtPlayers, result.Probability.DealtPlayers)
}

func TestParsePot(t *testing.T) {
	tests := []struct {
		text string
		want *int
	}{
		{"Pot: $1,250", intPtr(1250)},
		{"1500", intPtr(1500)},
		{"$75", intPtr(75)},
		{"", nil},
		{"Pot: --", nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ParsePot(tt.text)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func intPtr(v int) *int { return &v }
