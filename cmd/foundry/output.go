package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/napolitain/solver-foundry/internal/solver"
	"github.com/napolitain/solver-foundry/internal/store"
)

var bannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("6")).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("6")).
	Padding(0, 2)

func printBanner(w io.Writer) {
	fmt.Fprintln(w, bannerStyle.Render("Robot Foundry\nBlueprint Optimizer"))
	fmt.Fprintln(w)
}

func printResults(w io.Writer, results []solver.Result, withQuality bool) {
	header := []string{"Blueprint", "Geodes", "States", "Duplicates", "Elapsed"}
	if withQuality {
		header = []string{"Blueprint", "Geodes", "Quality", "States", "Duplicates", "Elapsed"}
	}
	table := tablewriter.NewTable(w, tablewriter.WithHeader(header))

	for _, r := range results {
		row := []string{fmt.Sprintf("%d", r.BlueprintID), fmt.Sprintf("%d", r.Best)}
		if withQuality {
			row = append(row, fmt.Sprintf("%d", solver.QualityLevel(r)))
		}
		row = append(row,
			humanize.Comma(int64(r.Stats.Expanded)),
			humanize.Comma(int64(r.Stats.Duplicates)),
			r.Elapsed.Round(time.Millisecond).String(),
		)
		_ = table.Append(row)
	}

	_ = table.Render()
}

func printStats(w io.Writer, r solver.Result) {
	table := tablewriter.NewTable(w, tablewriter.WithHeader([]string{"Metric", "Value"}))

	rows := [][]string{
		{"Best", fmt.Sprintf("%d", r.Best)},
		{"States expanded", humanize.Comma(int64(r.Stats.Expanded))},
		{"Duplicates skipped", humanize.Comma(int64(r.Stats.Duplicates))},
		{"Terminal states", humanize.Comma(int64(r.Stats.Terminal))},
		{"Branches pushed", humanize.Comma(int64(r.Stats.Branches))},
		{"Peak work-list", humanize.Comma(int64(r.Stats.MaxFrontier))},
		{"Elapsed", r.Elapsed.Round(time.Millisecond).String()},
	}
	for _, row := range rows {
		_ = table.Append(row)
	}

	_ = table.Render()
}

func printHistory(w io.Writer, runs []store.Run) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Run", "Mode", "Minutes", "Score", "Started", "Elapsed"}),
	)

	for _, run := range runs {
		_ = table.Append([]string{
			run.ID,
			run.Mode,
			fmt.Sprintf("%d", run.Horizon),
			humanize.Comma(int64(run.Score)),
			humanize.Time(run.StartedAt),
			run.Elapsed.Round(time.Millisecond).String(),
		})
	}

	_ = table.Render()
}

func printRun(w io.Writer, run *store.Run) {
	fmt.Fprintf(w, "Run %s: %s at %d minutes, score %s (%s, %s)\n\n",
		run.ID, run.Mode, run.Horizon, humanize.Comma(int64(run.Score)),
		humanize.Time(run.StartedAt), run.Elapsed.Round(time.Millisecond))

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Blueprint", "Geodes", "States", "Elapsed"}),
	)
	for _, r := range run.Results {
		_ = table.Append([]string{
			fmt.Sprintf("%d", r.BlueprintID),
			fmt.Sprintf("%d", r.Best),
			humanize.Comma(int64(r.Expanded)),
			r.Elapsed.Round(time.Millisecond).String(),
		})
	}

	_ = table.Render()
}
