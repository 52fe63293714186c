package analyzer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lox/tablesight/internal/tournament"
)

// Snapshot is one recognizer pass over the table: raw card texts, the pot
// label, and the per-seat name/stack strings. Every field may be noisy or
// missing; analysis degrades rather than fails.
type Snapshot struct {
	HeroCards       []string                                     `json:"hero_cards"`
	CommunityCards  []string                                     `json:"community_cards"`
	Pot             string                                       `json:"pot"`
	Seats           map[tournament.Position]tournament.SeatInput `json:"seats"`
	ActiveOpponents *int                                         `json:"active_opponents,omitempty"`
}

var potPattern = regexp.MustCompile(`\d+`)

// ParsePot extracts a chip amount from a pot label such as "Pot: $1,250".
// Returns nil when no number is present.
func ParsePot(text string) *int {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(text)
	match := potPattern.FindString(cleaned)
	if match == "" {
		return nil
	}
	value, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	return &value
}
