package probability

import (
	"fmt"
	"sort"

	"github.com/lox/tablesight/internal/deck"
)

// Wetness grades how coordinated the community cards are.
type Wetness int

const (
	Dry Wetness = iota
	ModeratelyWet
	Wet
	VeryWet
)

func (w Wetness) String() string {
	switch w {
	case Dry:
		return "Dry"
	case ModeratelyWet:
		return "Moderately Wet"
	case Wet:
		return "Wet"
	case VeryWet:
		return "Very Wet"
	default:
		return "Unknown"
	}
}

// Texture describes the threats a board offers to opponents' ranges.
type Texture struct {
	FlushDrawPossible    bool
	StraightDrawPossible bool
	PairedBoard          bool

	// DangerScore counts the raw threats; EffectiveDanger scales it by
	// how many opponents could be holding a piece of the board.
	DangerScore     float64
	Multiplier      float64
	EffectiveDanger float64
	Wetness         Wetness
	Warnings        []string
}

// AnalyzeTexture grades the community cards. Fewer than three cards is
// always a dry board.
func AnalyzeTexture(community []deck.Card, opponents int) Texture {
	texture := Texture{Multiplier: 1.0, Wetness: Dry}
	if len(community) < 3 {
		return texture
	}

	suitCounts := make(map[deck.Suit]int)
	for _, c := range community {
		suitCounts[c.Suit]++
	}
	for _, n := range suitCounts {
		if n >= 3 {
			texture.FlushDrawPossible = true
			break
		}
	}

	texture.StraightDrawPossible = straightThreat(community)
	texture.PairedBoard = pairedBoard(community)

	if texture.FlushDrawPossible {
		texture.DangerScore++
	}
	if texture.StraightDrawPossible {
		texture.DangerScore++
	}
	if texture.PairedBoard {
		texture.DangerScore++
	}

	switch {
	case opponents >= 7:
		texture.Multiplier = 2.0
	case opponents >= 4:
		texture.Multiplier = 1.5
	case opponents >= 2:
		texture.Multiplier = 1.2
	}
	texture.EffectiveDanger = texture.DangerScore * texture.Multiplier

	switch {
	case texture.EffectiveDanger >= 3.0:
		texture.Wetness = VeryWet
	case texture.EffectiveDanger >= 2.0:
		texture.Wetness = Wet
	case texture.EffectiveDanger >= 1.0:
		texture.Wetness = ModeratelyWet
	}

	if texture.FlushDrawPossible && opponents >= 4 {
		texture.Warnings = append(texture.Warnings,
			fmt.Sprintf("flush possible against %d opponents", opponents))
	}
	if texture.StraightDrawPossible && opponents >= 5 {
		texture.Warnings = append(texture.Warnings,
			fmt.Sprintf("straight possible against %d opponents", opponents))
	}
	if texture.PairedBoard && opponents >= 3 {
		texture.Warnings = append(texture.Warnings,
			fmt.Sprintf("paired board against %d opponents", opponents))
	}

	return texture
}

// straightThreat reports whether four distinct board ranks sit in a
// four-rank window. The ace also plays low, so 2-3-4 plus an ace counts as
// a wheel threat.
func straightThreat(community []deck.Card) bool {
	seen := make(map[deck.Rank]bool)
	for _, c := range community {
		seen[c.Rank] = true
	}
	ranks := make([]int, 0, len(seen))
	for r := range seen {
		ranks = append(ranks, int(r))
	}
	if seen[deck.Ace] {
		ranks = append(ranks, 1)
	}
	sort.Ints(ranks)

	for i := 0; i+3 < len(ranks); i++ {
		if ranks[i+3]-ranks[i] == 3 {
			return true
		}
	}
	return false
}

func pairedBoard(community []deck.Card) bool {
	seen := make(map[deck.Rank]bool)
	for _, c := range community {
		if seen[c.Rank] {
			return true
		}
		seen[c.Rank] = true
	}
	return false
}
