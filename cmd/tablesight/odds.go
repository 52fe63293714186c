package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/lox/tablesight/internal/deck"
	"github.com/lox/tablesight/internal/evaluator"
	"github.com/lox/tablesight/internal/probability"
)

// OddsCmd answers a one-off equity question without a session.
type OddsCmd struct {
	Hand      string `arg:"" help:"Hero hole cards (e.g. 'AsKs' or 'A♠ K♠')"`
	Board     string `short:"b" help:"Community cards (e.g. 'Td7s8h')"`
	Opponents int    `short:"o" default:"1" help:"Number of opponents"`
	Seed      *int64 `help:"Random seed for reproducible results"`
}

func (c *OddsCmd) Run(run *RunContext) error {
	hero, err := deck.ParseHand(c.Hand)
	if err != nil {
		return fmt.Errorf("parsing hand: %w", err)
	}
	if len(hero) != 2 {
		return fmt.Errorf("hand must contain exactly 2 cards, got %d", len(hero))
	}

	var board []deck.Card
	if c.Board != "" {
		board, err = deck.ParseHand(c.Board)
		if err != nil {
			return fmt.Errorf("parsing board: %w", err)
		}
		if len(board) > 5 {
			return fmt.Errorf("board cannot have more than 5 cards")
		}
	}

	seen := make(map[deck.Card]bool)
	for _, card := range append(append([]deck.Card{}, hero...), board...) {
		if seen[card] {
			return fmt.Errorf("duplicate card: %s", card)
		}
		seen[card] = true
	}

	engine := probability.New(newRand(c.Seed), run.Logger)
	engine.SetMaxSamples(run.Config.Analysis.MaxSimulations)
	analysis := engine.Calculate(hero, board, c.Opponents, c.Opponents+1)

	displayOdds(hero, board, analysis)
	return nil
}

func displayOdds(hero, board []deck.Card, analysis probability.Analysis) {
	fmt.Printf("%s %s\n", headerStyle.Render("hand"), handStyle.Render(formatCards(hero)))
	if len(board) > 0 {
		fmt.Printf("%s %s\n", headerStyle.Render("board"), formatCards(board))
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		headerStyle.Render("win"),
		headerStyle.Render("tie"),
		headerStyle.Render("lose"))
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		winStyle.Render(fmt.Sprintf("%.1f%%", analysis.Equity.WinPercent)),
		tieStyle.Render(fmt.Sprintf("%.1f%%", analysis.Equity.TiePercent)),
		fmt.Sprintf("%.1f%%", analysis.Equity.LosePercent))
	w.Flush()

	if analysis.Equity.Simulated {
		fmt.Printf("\n%d samples\n", analysis.Equity.Simulations)
	} else {
		fmt.Printf("\nestimate (%d opponents, board incomplete)\n", analysis.Opponents)
	}

	if len(board) >= 3 {
		fmt.Printf("board texture: %s\n", analysis.Texture.Wetness)
		for _, warning := range analysis.Texture.Warnings {
			fmt.Printf("%s %s\n", warnStyle.Render("!"), warning)
		}
	}
	if analysis.Outs.TotalOuts > 0 {
		fmt.Printf("outs: %d (%.0f%% to improve)\n",
			analysis.Outs.TotalOuts, analysis.Outs.DrawPercent)
	}

	if len(hero)+len(board) >= 5 {
		all := append(append([]deck.Card{}, hero...), board...)
		if eval, err := evaluator.Evaluate(all); err == nil {
			fmt.Printf("made hand: %s\n", handStyle.Render(eval.Description))
		}
	}
}

func formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}
