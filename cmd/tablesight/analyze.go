package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/lox/tablesight/internal/analyzer"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// AnalyzeCmd replays recorded snapshot sessions. Each file is a JSON array
// of snapshots; files are replayed concurrently, one analyzer session per
// file.
type AnalyzeCmd struct {
	Files []string `arg:"" type:"existingfile" help:"Snapshot session files (JSON arrays)"`
	Seed  *int64   `help:"Random seed for reproducible results"`
}

type sessionReport struct {
	File      string
	Snapshots int
	Hands     int
	Last      *analyzer.Result
}

func (c *AnalyzeCmd) Run(run *RunContext) error {
	reports := make([]*sessionReport, len(c.Files))
	var mu sync.Mutex

	var g errgroup.Group
	for i, file := range c.Files {
		i, file := i, file
		g.Go(func() error {
			report, err := c.replay(run, file)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			mu.Lock()
			reports[i] = report
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	displayReports(reports)
	return nil
}

func (c *AnalyzeCmd) replay(run *RunContext, file string) (*sessionReport, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var snapshots []analyzer.Snapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}

	session := analyzer.New(run.Config, nil, newRand(c.Seed), run.Logger)
	report := &sessionReport{File: file, Snapshots: len(snapshots)}
	for _, snap := range snapshots {
		report.Last = session.Analyze(snap)
	}
	report.Hands = session.HandCount()

	return report, nil
}

func displayReports(reports []*sessionReport) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("session"),
		headerStyle.Render("snapshots"),
		headerStyle.Render("hands"),
		headerStyle.Render("stage"),
		headerStyle.Render("hand"),
		headerStyle.Render("win"))

	for _, report := range reports {
		stage, hand, win := "-", "-", "-"
		if last := report.Last; last != nil {
			stage = last.Stage.Stage.String()
			switch {
			case last.Hand != nil:
				hand = last.Hand.Name
			case last.Preflop != nil:
				hand = last.Preflop.Category
			}
			if last.Probability != nil {
				win = fmt.Sprintf("%.1f%%", last.Probability.Equity.WinPercent)
			}
		}

		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\n",
			report.File,
			report.Snapshots,
			report.Hands,
			stage,
			handStyle.Render(hand),
			winStyle.Render(win))
	}
	w.Flush()

	for _, report := range reports {
		if report.Last == nil || report.Last.Probability == nil {
			continue
		}
		warnings := report.Last.Probability.Texture.Warnings
		if len(warnings) == 0 {
			continue
		}
		fmt.Printf("\n%s %s: %s\n",
			warnStyle.Render("!"),
			report.File,
			strings.Join(warnings, "; "))
	}
}
