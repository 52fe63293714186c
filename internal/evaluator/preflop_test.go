package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/tablesight/internal/deck"
)

func TestEvaluatePreflop(t *testing.T) {
	tests := []struct {
		name     string
		cards    []string
		pair     bool
		suited   bool
		category string
	}{
		{name: "pocket aces", cards: []string{"A♠", "A♥"}, pair: true, category: "AA"},
		{name: "pocket twos", cards: []string{"2♦", "2♣"}, pair: true, category: "22"},
		{name: "big slick suited", cards: []string{"A♠", "K♠"}, suited: true, category: "AKs"},
		{name: "big slick offsuit", cards: []string{"A♠", "K♥"}, category: "AKo"},
		{name: "order independent", cards: []string{"K♥", "A♠"}, category: "AKo"},
		{name: "ten uses chart notation", cards: []string{"10♠", "9♠"}, suited: true, category: "T9s"},
		{name: "worst hand", cards: []string{"7♦", "2♣"}, category: "72o"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval, err := EvaluatePreflop(deck.MustParseCards(tt.cards...))
			require.NoError(t, err)
			assert.Equal(t, tt.pair, eval.Pair)
			assert.Equal(t, tt.suited, eval.Suited)
			assert.Equal(t, tt.category, eval.Category)
		})
	}
}

func TestPreflopScoreOrdering(t *testing.T) {
	aces, err := EvaluatePreflop(deck.MustParseCards("A♠", "A♥"))
	require.NoError(t, err)
	kings, err := EvaluatePreflop(deck.MustParseCards("K♠", "K♥"))
	require.NoError(t, err)
	akSuited, err := EvaluatePreflop(deck.MustParseCards("A♠", "K♠"))
	require.NoError(t, err)
	akOffsuit, err := EvaluatePreflop(deck.MustParseCards("A♠", "K♥"))
	require.NoError(t, err)

	// Pairs rank by pair rank; suitedness breaks ties between unpaired hands.
	assert.Greater(t, aces.Score, kings.Score)
	assert.Greater(t, akSuited.Score, akOffsuit.Score)
	assert.Greater(t, kings.Score, akSuited.Score)
}

func TestEvaluatePreflopErrors(t *testing.T) {
	_, err := EvaluatePreflop(deck.MustParseCards("A♠"))
	assert.Error(t, err)

	_, err = EvaluatePreflop([]deck.Card{deck.MustParseCard("A♠"), deck.MustParseCard("A♠")})
	assert.ErrorIs(t, err, ErrDuplicateCard)
}
