package probability

import (
	"sort"

	"github.com/lox/tablesight/internal/deck"
)

// Outs counts the unseen cards that improve the hero's hand, with the
// standard rule-of-two conversion to a completion percentage.
type Outs struct {
	FlushOuts    int
	StraightOuts int
	TotalOuts    int
	CardsToCome  int
	DrawPercent  float64
}

// CountOuts inspects the hero's hole cards together with the board. A
// four-card flush contributes nine outs; four connected ranks contribute
// eight. The counts overlap rather than dedupe, which matches how players
// quote draws at the table.
func CountOuts(hero, community []deck.Card) Outs {
	outs := Outs{CardsToCome: 5 - len(community)}
	if outs.CardsToCome < 0 {
		outs.CardsToCome = 0
	}

	all := append(append([]deck.Card{}, hero...), community...)

	suitCounts := make(map[deck.Suit]int)
	for _, c := range all {
		suitCounts[c.Suit]++
	}
	for _, n := range suitCounts {
		if n == 4 {
			outs.FlushOuts += 9
		}
	}

	if openStraightDraw(all) {
		outs.StraightOuts = 8
	}

	outs.TotalOuts = outs.FlushOuts + outs.StraightOuts
	outs.DrawPercent = clampPercent(float64(outs.TotalOuts) * 2 * float64(outs.CardsToCome))
	return outs
}

// openStraightDraw reports four consecutive distinct ranks among the
// visible cards, counting the ace both high and low.
func openStraightDraw(cards []deck.Card) bool {
	seen := make(map[int]bool)
	for _, c := range cards {
		seen[int(c.Rank)] = true
		if c.Rank == deck.Ace {
			seen[1] = true
		}
	}
	ranks := make([]int, 0, len(seen))
	for r := range seen {
		ranks = append(ranks, r)
	}
	sort.Ints(ranks)

	run := 1
	for i := 1; i < len(ranks); i++ {
		if ranks[i] == ranks[i-1]+1 {
			run++
			if run >= 4 {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}
