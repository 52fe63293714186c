package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		count      int
		stage      Stage
		confidence float64
	}{
		{count: 0, stage: PreFlop, confidence: 1.0},
		{count: 3, stage: Flop, confidence: 1.0},
		{count: 4, stage: Turn, confidence: 1.0},
		{count: 5, stage: River, confidence: 1.0},
		// Unrecognized counts decay from an empty board.
		{count: 1, stage: Unknown, confidence: 0.8},
		{count: 2, stage: Unknown, confidence: 0.6},
		{count: 6, stage: Unknown, confidence: 0.0},
	}

	for _, tt := range tests {
		info := Classify(tt.count)
		assert.Equal(t, tt.stage, info.Stage, "count %d", tt.count)
		assert.Equal(t, tt.count, info.CardCount)
		assert.InDelta(t, tt.confidence, info.Confidence, 0.0001, "count %d", tt.count)
	}
}

func TestEarlyFinishFromFlop(t *testing.T) {
	tracker := NewTracker(nil)
	tracker.Advance(PreFlop) // Unknown → PreFlop counts hand #1
	tracker.Advance(Flop)

	trans := tracker.Advance(PreFlop)
	assert.Equal(t, TransitionHandFinished, trans.Kind)
	assert.Equal(t, 2, trans.HandCount)
	assert.Equal(t, "Early Finish (Flop)", trans.FinishReason)
}

func TestCompletedHandFromRiver(t *testing.T) {
	tracker := NewTracker(nil)
	tracker.Advance(PreFlop)
	tracker.Advance(Flop)
	tracker.Advance(Turn)
	tracker.Advance(River)
	assert.Equal(t, 1, tracker.HandCount())

	trans := tracker.Advance(PreFlop)
	assert.Equal(t, TransitionHandFinished, trans.Kind)
	assert.Equal(t, 2, trans.HandCount)
	assert.Equal(t, "Completed (River)", trans.FinishReason)
}

func TestNewHandFromUnknown(t *testing.T) {
	tracker := NewTracker(nil)
	trans := tracker.Advance(PreFlop)
	assert.Equal(t, TransitionNewHand, trans.Kind)
	assert.Equal(t, 1, trans.HandCount)
}

func TestForwardProgressionDoesNotCount(t *testing.T) {
	tracker := NewTracker(nil)
	tracker.Advance(PreFlop)

	for _, next := range []Stage{Flop, Turn, River} {
		trans := tracker.Advance(next)
		assert.Equal(t, TransitionProgressed, trans.Kind, "to %s", next)
	}
	assert.Equal(t, 1, tracker.HandCount())
}

func TestBackwardTransitionLoggedNotCounted(t *testing.T) {
	tracker := NewTracker(nil)
	tracker.Advance(PreFlop)
	tracker.Advance(Flop)
	tracker.Advance(Turn)

	trans := tracker.Advance(Flop)
	assert.Equal(t, TransitionBackward, trans.Kind)
	assert.Equal(t, 1, tracker.HandCount())
}

func TestRepeatedStageIsNoop(t *testing.T) {
	tracker := NewTracker(nil)
	tracker.Advance(PreFlop)
	trans := tracker.Advance(PreFlop)
	assert.Equal(t, TransitionNone, trans.Kind)
	assert.Equal(t, 1, tracker.HandCount())
}
