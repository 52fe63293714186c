package tournament

import (
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

const (
	nameConfidence  = 0.3
	stackConfidence = 0.7

	// overwriteThreshold gates how confident a candidate must be before it
	// replaces the stored record for its seat.
	overwriteThreshold = 0.5

	// emptySeatThreshold marks candidates too uncertain to represent a
	// seated player.
	emptySeatThreshold = 0.3
)

// Ledger maintains tournament state for one session. It must be updated
// serially; independent sessions use independent ledgers.
type Ledger struct {
	state  State
	clock  quartz.Clock
	logger *log.Logger
}

// NewLedger creates a ledger with every seat empty. A nil clock uses the
// real clock; a nil logger discards output.
func NewLedger(smallBlind, bigBlind int, clock quartz.Clock, logger *log.Logger) *Ledger {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	seats := make(map[Position]*SeatRecord, len(Positions()))
	for _, pos := range Positions() {
		seats[pos] = &SeatRecord{Name: EmptyName, Position: pos}
	}

	return &Ledger{
		state: State{
			Seats:      seats,
			SmallBlind: smallBlind,
			BigBlind:   bigBlind,
		},
		clock:  clock,
		logger: logger,
	}
}

// State returns the ledger's current tournament state. The caller must not
// mutate it.
func (l *Ledger) State() *State {
	return &l.state
}

// Seat returns the stored record for a position.
func (l *Ledger) Seat(pos Position) *SeatRecord {
	return l.state.Seats[pos]
}

// parseCandidate builds a candidate record from a seat's recognized text.
// Confidence accumulates from the parts that parsed: a usable name and a
// parsed chip count.
func (l *Ledger) parseCandidate(pos Position, input SeatInput) *SeatRecord {
	candidate := &SeatRecord{
		Name:        "Unknown",
		Position:    pos,
		LastUpdated: l.clock.Now(),
	}

	if cleaned := CleanName(input.Name); cleaned != "" {
		candidate.Name = cleaned
		candidate.Confidence += nameConfidence
	}

	chips, bbSize := ParseStack(input.Stack)
	if chips != nil {
		candidate.Chips = chips
		candidate.BBSize = bbSize
		candidate.Confidence += stackConfidence
	}

	return candidate
}

// isEmptySeat reports whether a candidate looks like table background
// rather than a player.
func isEmptySeat(candidate *SeatRecord) bool {
	if candidate == nil {
		return true
	}
	switch candidate.Name {
	case "", "Unknown", EmptyName:
		return true
	}
	return candidate.Confidence < emptySeatThreshold
}

// Update applies one pass's recognized seat texts to the ledger. It detects
// eliminations first, then overwrites seats whose candidates cleared the
// confidence threshold, and finally refreshes the chip total.
func (l *Ledger) Update(inputs map[Position]SeatInput) []Elimination {
	now := l.clock.Now()

	candidates := make(map[Position]*SeatRecord, len(inputs))
	for pos, input := range inputs {
		if input.Name == "" && input.Stack == "" {
			continue
		}
		candidates[pos] = l.parseCandidate(pos, input)
	}

	eliminations := l.detectEliminations(candidates, now)

	for pos, candidate := range candidates {
		if candidate.Confidence > overwriteThreshold {
			l.state.Seats[pos] = candidate
		}
	}
	l.state.LastUpdate = now

	total := 0
	for _, pos := range Positions() {
		if seat := l.state.Seats[pos]; seat.Active() {
			total += *seat.Chips
		}
	}
	l.state.TotalChips = total

	if len(eliminations) > 0 {
		l.logger.Info("tournament update", "remaining", l.activeSeats())
		for _, elim := range eliminations {
			l.logger.Info("player eliminated", "name", elim.Name, "position", elim.Position, "last_stack", elim.LastStack)
		}
	}

	return eliminations
}

// detectEliminations runs before updates are applied: a seat that held an
// active player and now shows no credible candidate produces an elimination
// event and reverts to Empty.
func (l *Ledger) detectEliminations(candidates map[Position]*SeatRecord, now time.Time) []Elimination {
	var eliminations []Elimination

	for _, pos := range Positions() {
		current := l.state.Seats[pos]
		if !current.Active() {
			continue
		}

		candidate, present := candidates[pos]
		bustedStack := present && candidate.Chips != nil && *candidate.Chips <= 0
		if present && !bustedStack && !isEmptySeat(candidate) {
			continue
		}

		eliminations = append(eliminations, Elimination{
			Position:  pos,
			Name:      current.Name,
			LastStack: *current.Chips,
			At:        now,
		})
		l.state.Seats[pos] = &SeatRecord{Name: EmptyName, Position: pos, LastUpdated: now}
		delete(candidates, pos)
	}

	return eliminations
}

// activeSeats counts seats holding a player with chips.
func (l *Ledger) activeSeats() int {
	count := 0
	for _, seat := range l.state.Seats {
		if seat.Active() {
			count++
		}
	}
	return count
}

// ActiveCount returns the number of seats currently holding an active
// player.
func (l *Ledger) ActiveCount() int {
	return l.activeSeats()
}

// Metrics derives the standings summary from the seats that are currently
// active (chip count known, name not Empty). Ties on chip counts resolve by
// seat-table order.
func (l *Ledger) Metrics() Metrics {
	var active []*SeatRecord
	for _, pos := range Positions() {
		seat := l.state.Seats[pos]
		if seat.Name != EmptyName && seat.Chips != nil {
			active = append(active, seat)
		}
	}

	if len(active) == 0 {
		return Metrics{}
	}

	total := 0
	for _, seat := range active {
		total += *seat.Chips
	}

	ranked := make([]*SeatRecord, len(active))
	copy(ranked, active)
	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].Chips > *ranked[j].Chips
	})

	metrics := Metrics{
		ActivePlayers: len(active),
		TotalChips:    total,
		AverageStack:  float64(total) / float64(len(active)),
		ChipLeader:    ranked[0],
		ShortStack:    ranked[len(ranked)-1],
	}

	hero := l.state.Seats[Hero]
	if hero.Chips != nil && hero.Name != EmptyName {
		for i, seat := range ranked {
			if seat.Position == Hero {
				metrics.HeroRank = i + 1
				break
			}
		}
		if total > 0 {
			metrics.HeroChipShare = float64(*hero.Chips) / float64(total) * 100
		}
	}

	return metrics
}

// CountSeated counts seats whose recognized name text indicates a player is
// present, hero included when its input is present.
func CountSeated(inputs map[Position]SeatInput) int {
	count := 0
	for _, input := range inputs {
		if strings.TrimSpace(input.Name) != "" {
			count++
		}
	}
	return count
}

// CountSittingOut counts seats whose text shows a player that is present
// but not dealt in ("Sitting Out", "away", a named seat with no stack).
func CountSittingOut(inputs map[Position]SeatInput) int {
	count := 0
	for _, input := range inputs {
		if strings.TrimSpace(input.Name) == "" {
			continue
		}
		if looksSittingOut(input.Name, input.Stack) {
			count++
		}
	}
	return count
}
