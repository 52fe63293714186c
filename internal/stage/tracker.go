package stage

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Tracker carries stage state across analysis passes for one session. It
// must be driven serially; independent sessions use independent trackers.
type Tracker struct {
	current      Stage
	previous     Stage
	handCount    int
	finishReason string
	logger       *log.Logger
}

// NewTracker creates a tracker starting in the Unknown stage.
func NewTracker(logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Tracker{current: Unknown, previous: Unknown, logger: logger}
}

// Current returns the stage observed on the most recent pass.
func (t *Tracker) Current() Stage {
	return t.current
}

// HandCount returns the number of hand boundaries seen this session.
func (t *Tracker) HandCount() int {
	return t.handCount
}

// FinishReason returns how the most recently finished hand ended, or "".
func (t *Tracker) FinishReason() string {
	return t.finishReason
}

// Advance feeds the stage observed this pass into the state machine and
// returns the lifecycle transition it implies.
func (t *Tracker) Advance(newStage Stage) Transition {
	if newStage == t.current {
		return Transition{Kind: TransitionNone, From: t.current, To: newStage, HandCount: t.handCount}
	}

	prev := t.current
	t.previous = prev
	t.current = newStage

	trans := Transition{From: prev, To: newStage}

	switch {
	// A board that emptied back to pre-flop means the previous hand ended.
	case newStage == PreFlop && (prev == Flop || prev == Turn || prev == River):
		t.handCount++
		if prev == River {
			t.finishReason = "Completed (River)"
		} else {
			t.finishReason = fmt.Sprintf("Early Finish (%s)", prev)
		}
		trans.Kind = TransitionHandFinished
		trans.FinishReason = t.finishReason
		t.logger.Info("hand finished", "from", prev, "reason", t.finishReason, "hand", t.handCount)

	case newStage == PreFlop && prev == Unknown:
		t.handCount++
		trans.Kind = TransitionNewHand
		t.logger.Info("new hand detected", "hand", t.handCount)

	case prev.order() >= 0 && newStage.order() == prev.order()+1:
		trans.Kind = TransitionProgressed
		t.logger.Debug("hand progression", "from", prev, "to", newStage)

	case prev.order() > newStage.order() && newStage.order() >= 0 && newStage != PreFlop:
		trans.Kind = TransitionBackward
		t.logger.Warn("unusual backward stage transition", "from", prev, "to", newStage)

	default:
		trans.Kind = TransitionNone
	}

	trans.HandCount = t.handCount
	return trans
}
