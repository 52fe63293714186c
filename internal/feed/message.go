package feed

import (
	"encoding/json"

	"github.com/lox/tablesight/internal/analyzer"
	"github.com/lox/tablesight/internal/deck"
	"github.com/lox/tablesight/internal/tournament"
)

// MessageType identifies the kind of frame on the wire.
type MessageType string

const (
	MessageTypeSnapshot MessageType = "snapshot"
	MessageTypeAnalysis MessageType = "analysis"
	MessageTypeError    MessageType = "error"
)

func (t MessageType) String() string {
	return string(t)
}

// Message is the envelope for all frames in both directions.
type Message struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a message with a JSON-encoded payload.
func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{Type: msgType, Data: data}, nil
}

// ErrorData is the payload of an error frame.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HandData describes the hero's evaluated hand in an analysis frame.
type HandData struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Score       int    `json:"score"`
}

// EquityData carries the win/tie/lose estimate.
type EquityData struct {
	WinPercent  float64 `json:"win_percent"`
	TiePercent  float64 `json:"tie_percent"`
	LosePercent float64 `json:"lose_percent"`
	Simulated   bool    `json:"simulated"`
	Simulations int     `json:"simulations,omitempty"`
}

// AnalysisData is the payload of an analysis frame: one Result flattened
// into a stable wire shape.
type AnalysisData struct {
	Stage           string                   `json:"stage"`
	StageConfidence float64                  `json:"stage_confidence"`
	HandCount       int                      `json:"hand_count"`
	HeroCards       []string                 `json:"hero_cards"`
	CommunityCards  []string                 `json:"community_cards"`
	InvalidSlots    []string                 `json:"invalid_slots,omitempty"`
	Hand            *HandData                `json:"hand,omitempty"`
	Equity          *EquityData              `json:"equity,omitempty"`
	Texture         string                   `json:"texture,omitempty"`
	Warnings        []string                 `json:"warnings,omitempty"`
	Outs            int                      `json:"outs"`
	DrawPercent     float64                  `json:"draw_percent"`
	Opponents       int                      `json:"opponents"`
	Pot             *int                     `json:"pot,omitempty"`
	Eliminations    []tournament.Elimination `json:"eliminations,omitempty"`
	ActivePlayers   int                      `json:"active_players"`
	HeroRank        int                      `json:"hero_rank,omitempty"`
}

// analysisData flattens a Result for the wire.
func analysisData(result *analyzer.Result) AnalysisData {
	data := AnalysisData{
		Stage:           result.Stage.Stage.String(),
		StageConfidence: result.Stage.Confidence,
		HandCount:       result.HandCount,
		HeroCards:       cardTexts(result.HeroCards),
		CommunityCards:  cardTexts(result.CommunityCards),
		InvalidSlots:    result.InvalidSlots,
		Opponents:       result.Opponents,
		Pot:             result.Pot,
		Eliminations:    result.Eliminations,
		ActivePlayers:   result.Metrics.ActivePlayers,
		HeroRank:        result.Metrics.HeroRank,
	}

	switch {
	case result.Hand != nil:
		data.Hand = &HandData{
			Name:        result.Hand.Name,
			Description: result.Hand.Description,
			Score:       result.Hand.Score,
		}
	case result.Preflop != nil:
		data.Hand = &HandData{
			Name:        result.Preflop.Category,
			Description: result.Preflop.Description,
			Score:       result.Preflop.Score,
		}
	}

	if result.Probability != nil {
		eq := result.Probability.Equity
		data.Equity = &EquityData{
			WinPercent:  eq.WinPercent,
			TiePercent:  eq.TiePercent,
			LosePercent: eq.LosePercent,
			Simulated:   eq.Simulated,
			Simulations: eq.Simulations,
		}
		data.Texture = result.Probability.Texture.Wetness.String()
		data.Warnings = result.Probability.Texture.Warnings
		data.Outs = result.Probability.Outs.TotalOuts
		data.DrawPercent = result.Probability.Outs.DrawPercent
	}

	return data
}

func cardTexts(cards []deck.Card) []string {
	texts := make([]string, len(cards))
	for i, c := range cards {
		texts[i] = c.String()
	}
	return texts
}
