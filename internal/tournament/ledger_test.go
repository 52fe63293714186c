package tournament

import (
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) (*Ledger, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	return NewLedger(50, 100, clock, nil), clock
}

func TestLedgerAppliesConfidentCandidates(t *testing.T) {
	ledger, _ := newTestLedger(t)

	elims := ledger.Update(map[Position]SeatInput{
		Hero:      {Name: "HeroPlayer", Stack: "2,000"},
		Position1: {Name: "Bob", Stack: "1,500"},
		Position2: {Name: "??", Stack: ""}, // too little signal
	})
	assert.Empty(t, elims)

	hero := ledger.Seat(Hero)
	require.NotNil(t, hero.Chips)
	assert.Equal(t, 2000, *hero.Chips)
	assert.InDelta(t, 1.0, hero.Confidence, 0.001)

	bob := ledger.Seat(Position1)
	assert.Equal(t, "Bob", bob.Name)
	require.NotNil(t, bob.Chips)
	assert.Equal(t, 1500, *bob.Chips)

	// Below the overwrite threshold: the seat stays Empty.
	assert.Equal(t, EmptyName, ledger.Seat(Position2).Name)
	assert.Equal(t, 3500, ledger.State().TotalChips)
}

func TestLedgerNameOnlyCandidateDoesNotOverwrite(t *testing.T) {
	ledger, _ := newTestLedger(t)

	// Name alone scores 0.3, below the 0.5 overwrite threshold.
	ledger.Update(map[Position]SeatInput{
		Position1: {Name: "Carol", Stack: "unreadable"},
	})
	assert.Equal(t, EmptyName, ledger.Seat(Position1).Name)
}

func TestEliminationOnAbsentSeat(t *testing.T) {
	ledger, _ := newTestLedger(t)

	ledger.Update(map[Position]SeatInput{
		Position1: {Name: "Bob", Stack: "1,500"},
	})
	require.True(t, ledger.Seat(Position1).Active())

	elims := ledger.Update(map[Position]SeatInput{})
	require.Len(t, elims, 1)
	assert.Equal(t, "Bob", elims[0].Name)
	assert.Equal(t, 1500, elims[0].LastStack)
	assert.Equal(t, Position1, elims[0].Position)

	seat := ledger.Seat(Position1)
	assert.Equal(t, EmptyName, seat.Name)
	assert.Nil(t, seat.Chips)
	assert.Equal(t, 0, ledger.State().TotalChips)
}

func TestEliminationOnZeroChips(t *testing.T) {
	ledger, _ := newTestLedger(t)

	ledger.Update(map[Position]SeatInput{
		Position1: {Name: "Bob", Stack: "1,500"},
	})

	elims := ledger.Update(map[Position]SeatInput{
		Position1: {Name: "Bob", Stack: "0"},
	})
	require.Len(t, elims, 1)
	assert.Equal(t, "Bob", elims[0].Name)
	assert.Equal(t, EmptyName, ledger.Seat(Position1).Name)
}

func TestEliminationOnEmptySeatSignature(t *testing.T) {
	ledger, _ := newTestLedger(t)

	ledger.Update(map[Position]SeatInput{
		Position1: {Name: "Bob", Stack: "1,500"},
	})

	// Background noise with no usable name reads as an empty seat.
	elims := ledger.Update(map[Position]SeatInput{
		Position1: {Name: "##", Stack: "2,100"},
	})
	require.Len(t, elims, 1)
	assert.Equal(t, EmptyName, ledger.Seat(Position1).Name,
		"the noisy candidate must not resurrect the seat")
}

func TestUnparseableStackDoesNotEliminate(t *testing.T) {
	ledger, _ := newTestLedger(t)

	ledger.Update(map[Position]SeatInput{
		Position1: {Name: "Bob", Stack: "1,500"},
	})

	// A good name with an unreadable stack is recognition noise, not a
	// bust-out.
	elims := ledger.Update(map[Position]SeatInput{
		Position1: {Name: "Bob", Stack: "#@!"},
	})
	assert.Empty(t, elims)
	assert.Equal(t, "Bob", ledger.Seat(Position1).Name)
	require.NotNil(t, ledger.Seat(Position1).Chips)
	assert.Equal(t, 1500, *ledger.Seat(Position1).Chips, "stale stack retained")
}

func TestMetrics(t *testing.T) {
	ledger, _ := newTestLedger(t)

	ledger.Update(map[Position]SeatInput{
		Hero:      {Name: "HeroPlayer", Stack: "2,000"},
		Position1: {Name: "Bob", Stack: "4,000"},
		Position2: {Name: "Carol", Stack: "1,000"},
	})

	metrics := ledger.Metrics()
	assert.Equal(t, 3, metrics.ActivePlayers)
	assert.Equal(t, 7000, metrics.TotalChips)
	assert.InDelta(t, 7000.0/3.0, metrics.AverageStack, 0.001)
	assert.Equal(t, "Bob", metrics.ChipLeader.Name)
	assert.Equal(t, "Carol", metrics.ShortStack.Name)
	assert.Equal(t, 2, metrics.HeroRank)
	assert.InDelta(t, 2000.0/7000.0*100, metrics.HeroChipShare, 0.001)
}

func TestMetricsTiesResolveBySeatOrder(t *testing.T) {
	ledger, _ := newTestLedger(t)

	ledger.Update(map[Position]SeatInput{
		Position1: {Name: "Bob", Stack: "1,000"},
		Position2: {Name: "Carol", Stack: "1,000"},
	})

	metrics := ledger.Metrics()
	assert.Equal(t, "Bob", metrics.ChipLeader.Name)
	assert.Equal(t, "Carol", metrics.ShortStack.Name)
}

func TestMetricsAfterElimination(t *testing.T) {
	ledger, _ := newTestLedger(t)

	ledger.Update(map[Position]SeatInput{
		Hero:      {Name: "HeroPlayer", Stack: "2,000"},
		Position1: {Name: "Bob", Stack: "1,500"},
	})

	ledger.Update(map[Position]SeatInput{
		Hero: {Name: "HeroPlayer", Stack: "3,500"},
	})

	metrics := ledger.Metrics()
	assert.Equal(t, 1, metrics.ActivePlayers)
	assert.Equal(t, 3500, metrics.TotalChips)
	assert.Equal(t, 1, metrics.HeroRank)
	assert.InDelta(t, 100.0, metrics.HeroChipShare, 0.001)
}

func TestMetricsEmptyLedger(t *testing.T) {
	ledger, _ := newTestLedger(t)
	assert.Equal(t, Metrics{}, ledger.Metrics())
}

func TestSeatTimestampsUseInjectedClock(t *testing.T) {
	clock := quartz.NewMock(t)
	ledger := NewLedger(50, 100, clock, nil)

	start := clock.Now()
	ledger.Update(map[Position]SeatInput{
		Position1: {Name: "Bob", Stack: "1,500"},
	})
	assert.Equal(t, start, ledger.Seat(Position1).LastUpdated)

	clock.Advance(5 * time.Second)
	ledger.Update(map[Position]SeatInput{
		Position1: {Name: "Bob", Stack: "1,400"},
	})
	assert.Equal(t, start.Add(5*time.Second), ledger.Seat(Position1).LastUpdated)
}

func TestCountSeatedAndSittingOut(t *testing.T) {
	inputs := map[Position]SeatInput{
		Hero:      {Name: "HeroPlayer", Stack: "2,000"},
		Position1: {Name: "Bob", Stack: "1,500"},
		Position2: {Name: "Dave", Stack: "Sitting Out"},
		Position3: {Name: "Erin", Stack: ""},
		Position4: {Name: "afk_guy", Stack: "900"},
		Position5: {Name: "", Stack: ""},
	}

	assert.Equal(t, 5, CountSeated(inputs))
	assert.Equal(t, 3, CountSittingOut(inputs))
}
