package evaluator

import (
	"fmt"

	"github.com/lox/tablesight/internal/deck"
)

// PreflopEvaluation classifies a two-card starting hand. Its Score uses its
// own scale and is not comparable to Evaluation.Score; it is only meaningful
// before the flop.
type PreflopEvaluation struct {
	Pair        bool
	HighRank    deck.Rank
	LowRank     deck.Rank
	Suited      bool
	Score       int
	Category    string // starting-hand notation, e.g. "AA", "AKs", "72o"
	Description string
}

const suitedBonus = 50

// EvaluatePreflop classifies exactly two hole cards.
func EvaluatePreflop(cards []deck.Card) (PreflopEvaluation, error) {
	if len(cards) != 2 {
		return PreflopEvaluation{}, fmt.Errorf("preflop evaluation requires exactly 2 cards, got %d", len(cards))
	}
	if cards[0] == cards[1] {
		return PreflopEvaluation{}, fmt.Errorf("%w: %s", ErrDuplicateCard, cards[0])
	}

	high, low := cards[0].Rank, cards[1].Rank
	if high < low {
		high, low = low, high
	}

	if high == low {
		return PreflopEvaluation{
			Pair:        true,
			HighRank:    high,
			LowRank:     low,
			Score:       2000 + int(high)*100,
			Category:    notation(high) + notation(low),
			Description: fmt.Sprintf("Pocket %ss", high),
		}, nil
	}

	suited := cards[0].Suit == cards[1].Suit
	eval := PreflopEvaluation{
		HighRank: high,
		LowRank:  low,
		Suited:   suited,
		Score:    1000 + int(high)*15 + int(low),
	}
	if suited {
		eval.Score += suitedBonus
		eval.Category = notation(high) + notation(low) + "s"
		eval.Description = fmt.Sprintf("%s%s suited", high, low)
	} else {
		eval.Category = notation(high) + notation(low) + "o"
		eval.Description = fmt.Sprintf("%s%s offsuit", high, low)
	}
	return eval, nil
}

// notation renders a rank in starting-hand chart form, with "T" for ten.
func notation(rank deck.Rank) string {
	if rank == deck.Ten {
		return "T"
	}
	return rank.String()
}
