package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Aces are high (14).
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case King:
		return "K"
	case Queen:
		return "Q"
	case Jack:
		return "J"
	case Ten:
		return "10"
	default:
		if r >= Two && r <= Nine {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// Card represents a playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the string representation of a card (e.g., "A♠", "10♦").
// ParseCard is its exact inverse.
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// InvalidCardError reports card text that could not be parsed.
type InvalidCardError struct {
	Text   string
	Reason string
}

func (e *InvalidCardError) Error() string {
	return fmt.Sprintf("invalid card %q: %s", e.Text, e.Reason)
}

var suitTokens = map[string]Suit{
	"♠": Spades, "S": Spades,
	"♥": Hearts, "H": Hearts,
	"♦": Diamonds, "D": Diamonds,
	"♣": Clubs, "C": Clubs,
}

var rankTokens = map[string]Rank{
	"A": Ace, "K": King, "Q": Queen, "J": Jack,
	"10": Ten, "T": Ten,
	"9": Nine, "8": Eight, "7": Seven, "6": Six,
	"5": Five, "4": Four, "3": Three, "2": Two,
}

// ParseCard parses recognizer card text. It accepts Unicode suits ("A♠",
// "10♦") and letter suits ("Kh", "Td"), case-insensitive.
func ParseCard(text string) (Card, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Card{}, &InvalidCardError{Text: text, Reason: "empty"}
	}

	runes := []rune(strings.ToUpper(trimmed))
	if len(runes) < 2 {
		return Card{}, &InvalidCardError{Text: text, Reason: "too short"}
	}

	suitTok := string(runes[len(runes)-1])
	rankTok := string(runes[:len(runes)-1])

	suit, ok := suitTokens[suitTok]
	if !ok {
		return Card{}, &InvalidCardError{Text: text, Reason: fmt.Sprintf("unknown suit %q", suitTok)}
	}

	rank, ok := rankTokens[rankTok]
	if !ok {
		return Card{}, &InvalidCardError{Text: text, Reason: fmt.Sprintf("unknown rank %q", rankTok)}
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// ParseCards parses a sequence of card texts. Any unparseable entry fails
// the whole parse.
func ParseCards(texts []string) ([]Card, error) {
	cards := make([]Card, 0, len(texts))
	for _, text := range texts {
		card, err := ParseCard(text)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// ParseHand parses compact card text such as "AsKs", "Td7s8h" or
// "10♦ A♠". Whitespace and commas between cards are ignored.
func ParseHand(text string) ([]Card, error) {
	var cards []Card
	var current []rune
	for _, r := range text {
		if r == ' ' || r == '\t' || r == ',' {
			if len(current) > 0 {
				return nil, &InvalidCardError{Text: text, Reason: fmt.Sprintf("incomplete card %q", string(current))}
			}
			continue
		}
		current = append(current, r)
		if _, ok := suitTokens[strings.ToUpper(string(r))]; ok {
			card, err := ParseCard(string(current))
			if err != nil {
				return nil, err
			}
			cards = append(cards, card)
			current = current[:0]
		}
	}
	if len(current) > 0 {
		return nil, &InvalidCardError{Text: text, Reason: fmt.Sprintf("incomplete card %q", string(current))}
	}
	return cards, nil
}

// MustParseCard parses card text and panics on failure. Intended for tests
// and constant data.
func MustParseCard(text string) Card {
	card, err := ParseCard(text)
	if err != nil {
		panic(err)
	}
	return card
}

// MustParseCards parses multiple card texts and panics on failure.
func MustParseCards(texts ...string) []Card {
	cards := make([]Card, 0, len(texts))
	for _, text := range texts {
		cards = append(cards, MustParseCard(text))
	}
	return cards
}
