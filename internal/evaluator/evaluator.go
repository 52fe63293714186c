// Package evaluator ranks Texas Hold'em hands. It evaluates the best
// five-card hand from five to seven known cards and produces a score that is
// totally ordered across all hands, so any two evaluations compare with
// plain ">".
package evaluator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lox/tablesight/internal/deck"
)

// Category represents a poker hand category, ordered weakest to strongest.
type Category int

const (
	HighCard Category = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the readable name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

var (
	// ErrInsufficientCards is returned when fewer than five cards are given
	// to Evaluate. A correctly wired caller never triggers it.
	ErrInsufficientCards = errors.New("need at least 5 cards to evaluate a hand")

	// ErrDuplicateCard is returned when the same card appears twice in the
	// input. A correctly wired caller never triggers it.
	ErrDuplicateCard = errors.New("duplicate card in hand")
)

// Evaluation is the immutable result of ranking a hand.
type Evaluation struct {
	Category    Category
	Score       int
	Tiebreak    []deck.Rank
	Name        string
	Description string
	BestFive    []deck.Card
}

// Beats reports whether e outranks other.
func (e Evaluation) Beats(other Evaluation) bool {
	return e.Score > other.Score
}

// String returns a readable summary like "Full House [K♠ K♥ K♦ 4♣ 4♠]".
func (e Evaluation) String() string {
	cards := make([]string, len(e.BestFive))
	for i, card := range e.BestFive {
		cards[i] = card.String()
	}
	return fmt.Sprintf("%s [%s]", e.Name, strings.Join(cards, " "))
}

// score packs (category, tiebreak ranks) into a single int: the category in
// the high bits, then up to five 4-bit ranks, most significant first. The
// packing is strictly monotonic within and across categories.
func score(category Category, tiebreak []deck.Rank) int {
	s := int(category) << 20
	for i, rank := range tiebreak {
		if i >= 5 {
			break
		}
		s |= int(rank) << (16 - 4*i)
	}
	return s
}

// Evaluate finds the best five-card hand from 5, 6 or 7 distinct cards.
func Evaluate(cards []deck.Card) (Evaluation, error) {
	if len(cards) < 5 {
		return Evaluation{}, ErrInsufficientCards
	}
	if len(cards) > 7 {
		return Evaluation{}, fmt.Errorf("cannot evaluate %d cards, maximum is 7", len(cards))
	}

	seen := make(map[deck.Card]struct{}, len(cards))
	for _, card := range cards {
		if _, dup := seen[card]; dup {
			return Evaluation{}, fmt.Errorf("%w: %s", ErrDuplicateCard, card)
		}
		seen[card] = struct{}{}
	}

	if len(cards) == 5 {
		return evaluateFive(cards), nil
	}

	// Evaluate every five-card subset and keep the maximum by score.
	var best Evaluation
	combo := make([]deck.Card, 5)
	n := len(cards)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						combo[0], combo[1], combo[2], combo[3], combo[4] = cards[a], cards[b], cards[c], cards[d], cards[e]
						eval := evaluateFive(combo)
						if eval.Score > best.Score {
							best = eval
						}
					}
				}
			}
		}
	}
	return best, nil
}

// evaluateFive ranks exactly five distinct cards.
func evaluateFive(cards []deck.Card) Evaluation {
	sorted := make([]deck.Card, 5)
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Rank > sorted[j].Rank })

	ranks := make([]deck.Rank, 5)
	for i, card := range sorted {
		ranks[i] = card.Rank
	}

	isFlush := true
	for _, card := range sorted[1:] {
		if card.Suit != sorted[0].Suit {
			isFlush = false
			break
		}
	}

	isStraight, straightHigh := checkStraight(ranks)

	counts := make(map[deck.Rank]int, 5)
	for _, rank := range ranks {
		counts[rank]++
	}

	switch {
	case isStraight && isFlush:
		if straightHigh == deck.Ace {
			return newEvaluation(RoyalFlush, []deck.Rank{deck.Ace}, sorted,
				fmt.Sprintf("Royal Flush in %s", sorted[0].Suit))
		}
		return newEvaluation(StraightFlush, []deck.Rank{straightHigh}, sorted,
			fmt.Sprintf("Straight Flush, %s high", straightHigh))

	case hasCount(counts, 4):
		quad := rankWithCount(counts, 4)
		kicker := rankWithCount(counts, 1)
		return newEvaluation(FourOfAKind, []deck.Rank{quad, kicker}, sorted,
			fmt.Sprintf("Four %ss", quad))

	case hasCount(counts, 3) && hasCount(counts, 2):
		trips := rankWithCount(counts, 3)
		pair := rankWithCount(counts, 2)
		return newEvaluation(FullHouse, []deck.Rank{trips, pair}, sorted,
			fmt.Sprintf("Full House, %ss over %ss", trips, pair))

	case isFlush:
		return newEvaluation(Flush, ranks, sorted,
			fmt.Sprintf("Flush, %s high", ranks[0]))

	case isStraight:
		return newEvaluation(Straight, []deck.Rank{straightHigh}, sorted,
			fmt.Sprintf("Straight, %s high", straightHigh))

	case hasCount(counts, 3):
		trips := rankWithCount(counts, 3)
		kickers := ranksWithCountDesc(counts, 1)
		return newEvaluation(ThreeOfAKind, append([]deck.Rank{trips}, kickers...), sorted,
			fmt.Sprintf("Three %ss", trips))

	case len(ranksWithCountDesc(counts, 2)) == 2:
		pairs := ranksWithCountDesc(counts, 2)
		kicker := rankWithCount(counts, 1)
		return newEvaluation(TwoPair, []deck.Rank{pairs[0], pairs[1], kicker}, sorted,
			fmt.Sprintf("Two Pair, %ss and %ss", pairs[0], pairs[1]))

	case hasCount(counts, 2):
		pair := rankWithCount(counts, 2)
		kickers := ranksWithCountDesc(counts, 1)
		return newEvaluation(OnePair, append([]deck.Rank{pair}, kickers...), sorted,
			fmt.Sprintf("Pair of %ss", pair))

	default:
		return newEvaluation(HighCard, ranks, sorted,
			fmt.Sprintf("%s high", ranks[0]))
	}
}

func newEvaluation(category Category, tiebreak []deck.Rank, bestFive []deck.Card, description string) Evaluation {
	five := make([]deck.Card, len(bestFive))
	copy(five, bestFive)
	return Evaluation{
		Category:    category,
		Score:       score(category, tiebreak),
		Tiebreak:    tiebreak,
		Name:        category.String(),
		Description: description,
		BestFive:    five,
	}
}

// checkStraight reports whether five distinct-or-not ranks (sorted
// descending) form a straight, and the straight's high rank. The wheel
// A-2-3-4-5 counts as a Five-high straight.
func checkStraight(ranks []deck.Rank) (bool, deck.Rank) {
	unique := make([]deck.Rank, 0, 5)
	for i, rank := range ranks {
		if i == 0 || rank != ranks[i-1] {
			unique = append(unique, rank)
		}
	}
	if len(unique) < 5 {
		return false, 0
	}

	if unique[0]-unique[4] == 4 {
		return true, unique[0]
	}

	// Wheel: A-5-4-3-2 sorted descending.
	if unique[0] == deck.Ace && unique[1] == deck.Five && unique[4] == deck.Two {
		return true, deck.Five
	}

	return false, 0
}

func hasCount(counts map[deck.Rank]int, n int) bool {
	for _, count := range counts {
		if count == n {
			return true
		}
	}
	return false
}

func rankWithCount(counts map[deck.Rank]int, n int) deck.Rank {
	best := deck.Rank(0)
	for rank, count := range counts {
		if count == n && rank > best {
			best = rank
		}
	}
	return best
}

func ranksWithCountDesc(counts map[deck.Rank]int, n int) []deck.Rank {
	var ranks []deck.Rank
	for rank, count := range counts {
		if count == n {
			ranks = append(ranks, rank)
		}
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })
	return ranks
}
