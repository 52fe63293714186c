// Package stage classifies the betting round from the recognized
// community-card count and tracks hand boundaries across analysis passes.
package stage

import "fmt"

// Stage represents a betting round inferred from the community-card count.
type Stage int

const (
	PreFlop Stage = iota
	Flop
	Turn
	River
	Unknown
)

// String returns the display name of the stage
func (s Stage) String() string {
	switch s {
	case PreFlop:
		return "Pre-Flop"
	case Flop:
		return "Flop"
	case Turn:
		return "Turn"
	case River:
		return "River"
	default:
		return "Unknown"
	}
}

// ExpectedCards returns the community-card count the stage implies, or -1
// for Unknown.
func (s Stage) ExpectedCards() int {
	switch s {
	case PreFlop:
		return 0
	case Flop:
		return 3
	case Turn:
		return 4
	case River:
		return 5
	default:
		return -1
	}
}

// order returns the forward-progression rank of a stage, -1 for Unknown.
func (s Stage) order() int {
	if s >= PreFlop && s <= River {
		return int(s)
	}
	return -1
}

// Info describes one pass's stage classification.
type Info struct {
	Stage         Stage
	CardCount     int
	ExpectedCount int
	Confidence    float64
}

// Classify maps a community-card count to a stage. Counts that match no
// stage (1, 2, or >5 cards, partial recognition) classify as Unknown.
// Confidence is 1.0 on an exact count match and decays linearly with the
// absolute mismatch.
func Classify(cardCount int) Info {
	var s Stage
	switch cardCount {
	case 0:
		s = PreFlop
	case 3:
		s = Flop
	case 4:
		s = Turn
	case 5:
		s = River
	default:
		s = Unknown
	}

	expected := s.ExpectedCards()
	// Unknown has no expected count; confidence decays from zero cards.
	reference := expected
	if reference < 0 {
		reference = 0
	}
	confidence := 1.0
	if cardCount != reference {
		mismatch := cardCount - reference
		if mismatch < 0 {
			mismatch = -mismatch
		}
		confidence = 1.0 - float64(mismatch)/5.0
		if confidence < 0 {
			confidence = 0
		}
	}

	return Info{
		Stage:         s,
		CardCount:     cardCount,
		ExpectedCount: expected,
		Confidence:    confidence,
	}
}

// TransitionKind classifies what a stage change means for the hand
// lifecycle.
type TransitionKind int

const (
	// TransitionNone: the stage did not change.
	TransitionNone TransitionKind = iota
	// TransitionProgressed: ordinary forward progression within a hand.
	TransitionProgressed
	// TransitionNewHand: a hand started from an unknown state.
	TransitionNewHand
	// TransitionHandFinished: the previous hand ended and a new one began.
	TransitionHandFinished
	// TransitionBackward: an anomalous backward move, logged but not counted.
	TransitionBackward
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionNone:
		return "none"
	case TransitionProgressed:
		return "progressed"
	case TransitionNewHand:
		return "new hand"
	case TransitionHandFinished:
		return "hand finished"
	case TransitionBackward:
		return "backward"
	default:
		return "unknown"
	}
}

// Transition reports the outcome of advancing the tracker by one pass.
type Transition struct {
	Kind         TransitionKind
	From         Stage
	To           Stage
	HandCount    int
	FinishReason string
}

func (t Transition) String() string {
	return fmt.Sprintf("%s → %s (%s)", t.From, t.To, t.Kind)
}
