// Package tournament tracks per-seat stacks and names across analysis
// passes, infers eliminations from partial snapshots, and derives standings.
package tournament

import (
	"fmt"
	"time"
)

// EmptyName is the sentinel name for a seat with no player.
const EmptyName = "Empty"

// Position identifies one of the nine chairs at the table. Position 0 is
// the observer ("Hero"); the rest run clockwise from the hero's left.
type Position int

const (
	Hero Position = iota
	Position1
	Position2
	Position3
	Position4
	Position5
	Position6
	Position7
	Position8
)

// Positions returns all seat positions in table order.
func Positions() []Position {
	return []Position{Hero, Position1, Position2, Position3, Position4,
		Position5, Position6, Position7, Position8}
}

// String returns the seat identifier used by the recognizer regions
func (p Position) String() string {
	if p == Hero {
		return "Hero"
	}
	return fmt.Sprintf("Position_%d", int(p))
}

// SeatInput is the raw recognized text for one seat in a snapshot. Empty
// strings mean the recognizer produced nothing for that region.
type SeatInput struct {
	Name  string `json:"name"`
	Stack string `json:"stack"`
}

// SeatRecord is the ledger's view of one seat. Chips and BBSize are nil
// when never successfully parsed; nil is distinct from zero.
type SeatRecord struct {
	Name        string
	Chips       *int
	BBSize      *float64
	Position    Position
	LastUpdated time.Time
	Confidence  float64
}

// Active reports whether the seat holds a player with a known stack.
func (r *SeatRecord) Active() bool {
	return r != nil && r.Name != EmptyName && r.Chips != nil && *r.Chips > 0
}

// Elimination records a player busting out of the tournament.
type Elimination struct {
	Position  Position
	Name      string
	LastStack int
	At        time.Time
}

// State is the full cross-pass tournament state for one session. Seats are
// never removed; eliminated seats revert to the Empty sentinel.
type State struct {
	Seats      map[Position]*SeatRecord
	TotalChips int
	BigBlind   int
	SmallBlind int
	LastUpdate time.Time
}

// Metrics is the per-pass standings summary, recomputed from active seats.
type Metrics struct {
	ActivePlayers int
	TotalChips    int
	AverageStack  float64
	ChipLeader    *SeatRecord
	ShortStack    *SeatRecord
	HeroRank      int // 1-based, 0 when hero's stack is unknown
	HeroChipShare float64
}
