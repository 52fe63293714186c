package deck

// FullDeck returns all 52 cards in suit-major order.
func FullDeck() []Card {
	cards := make([]Card, 0, 52)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// Tracker partitions the 52-card universe into cards known to one observer
// and cards still unknown. It is reset at the start of every analysis pass;
// nothing leaks between passes.
type Tracker struct {
	known map[Card]struct{}
}

// NewTracker creates a tracker with all 52 cards unknown.
func NewTracker() *Tracker {
	return &Tracker{known: make(map[Card]struct{}, 52)}
}

// Reset restores the full-52-unknown state.
func (t *Tracker) Reset() {
	clear(t.known)
}

// MarkKnown moves cards from the unknown to the known partition. Marking an
// already-known card is a no-op.
func (t *Tracker) MarkKnown(cards ...Card) {
	for _, card := range cards {
		t.known[card] = struct{}{}
	}
}

// IsKnown reports whether a card has been marked known this pass.
func (t *Tracker) IsKnown(card Card) bool {
	_, ok := t.known[card]
	return ok
}

// KnownCount returns the number of known cards.
func (t *Tracker) KnownCount() int {
	return len(t.known)
}

// UnknownCount returns the number of unknown cards.
func (t *Tracker) UnknownCount() int {
	return 52 - len(t.known)
}

// Unknown returns the unknown cards in deterministic suit-major order. The
// returned slice is freshly allocated and safe for the caller to shuffle.
func (t *Tracker) Unknown() []Card {
	cards := make([]Card, 0, t.UnknownCount())
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			card := NewCard(rank, suit)
			if _, ok := t.known[card]; !ok {
				cards = append(cards, card)
			}
		}
	}
	return cards
}
