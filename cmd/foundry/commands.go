package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/napolitain/solver-foundry/internal/config"
	"github.com/napolitain/solver-foundry/internal/ctxlog"
	"github.com/napolitain/solver-foundry/internal/loader"
	"github.com/napolitain/solver-foundry/internal/models"
	"github.com/napolitain/solver-foundry/internal/solver"
	"github.com/napolitain/solver-foundry/internal/store"
)

var errNoHistory = errors.New("no history database configured, pass --db or set history_db")

func (a *app) qualityCmd() *cobra.Command {
	var horizon int

	cmd := &cobra.Command{
		Use:   "quality",
		Short: "Sum the quality level of every blueprint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("horizon") {
				a.cfg.QualityHorizon = horizon
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			blueprints, err := a.loadBlueprints(cmd)
			if err != nil {
				return err
			}
			return a.evaluate(cmd, "quality", blueprints, a.cfg.QualityHorizon, solver.QualitySum)
		},
	}

	cmd.Flags().IntVarP(&horizon, "horizon", "t", config.DefaultQualityHorizon, "Minutes to search (overrides quality_horizon)")
	return cmd
}

func (a *app) productCmd() *cobra.Command {
	var (
		horizon int
		count   int
	)

	cmd := &cobra.Command{
		Use:   "product",
		Short: "Multiply the best outputs of the first blueprints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("horizon") {
				a.cfg.ProductHorizon = horizon
			}
			if cmd.Flags().Changed("count") {
				a.cfg.ProductCount = count
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			blueprints, err := a.loadBlueprints(cmd)
			if err != nil {
				return err
			}
			subset := solver.FirstN(blueprints, a.cfg.ProductCount)
			k := len(subset)
			return a.evaluate(cmd, "product", subset, a.cfg.ProductHorizon, func(results []solver.Result) int {
				return solver.TopProduct(results, k)
			})
		},
	}

	cmd.Flags().IntVarP(&horizon, "horizon", "t", config.DefaultProductHorizon, "Minutes to search (overrides product_horizon)")
	cmd.Flags().IntVarP(&count, "count", "n", config.DefaultProductCount, "Number of leading blueprints (overrides product_count)")
	return cmd
}

func (a *app) solveCmd() *cobra.Command {
	var horizon int

	cmd := &cobra.Command{
		Use:   "solve <id>",
		Short: "Search a single blueprint and show search statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid blueprint id %q", args[0])
			}
			if !cmd.Flags().Changed("horizon") {
				horizon = a.cfg.QualityHorizon
			}
			if horizon < 0 {
				return fmt.Errorf("%w: horizon must not be negative, got %d", config.ErrInvalidConfig, horizon)
			}

			blueprints, err := a.loadBlueprints(cmd)
			if err != nil {
				return err
			}
			var bp *models.Blueprint
			for _, b := range blueprints {
				if b.ID == id {
					bp = b
					break
				}
			}
			if bp == nil {
				return fmt.Errorf("blueprint %d not found in %s", id, a.cfg.Input)
			}

			results, err := solver.Evaluate(cmd.Context(), []*models.Blueprint{bp}, horizon, solver.Options{Workers: 1})
			if err != nil {
				return err
			}
			r := results[0]

			out := cmd.OutOrStdout()
			if a.quiet {
				fmt.Fprintln(out, r.Best)
				return nil
			}

			fmt.Fprintln(out, bp.String())
			fmt.Fprintln(out)
			printStats(out, r)
			color.New(color.FgGreen, color.Bold).Fprintf(out, "\n✓ Blueprint %d opens %d geodes in %d minutes\n",
				bp.ID, r.Best, horizon)
			return nil
		},
	}

	cmd.Flags().IntVarP(&horizon, "horizon", "t", config.DefaultQualityHorizon, "Minutes to search (defaults to quality_horizon)")
	return cmd
}

func (a *app) historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recent runs, or show one run in detail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.HistoryDB == "" {
				return errNoHistory
			}
			db, err := store.Open(a.cfg.HistoryDB)
			if err != nil {
				return err
			}
			defer db.Close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				run, err := db.Run(args[0])
				if err != nil {
					return err
				}
				printRun(out, run)
				return nil
			}

			runs, err := db.RecentRuns(limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if len(runs) == 0 {
				color.New(color.FgYellow).Fprintln(out, "No runs recorded yet")
				return nil
			}
			printHistory(out, runs)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of runs to list")
	return cmd
}

func (a *app) loadBlueprints(cmd *cobra.Command) ([]*models.Blueprint, error) {
	blueprints, err := loader.LoadBlueprints(a.cfg.Input)
	if err != nil {
		return nil, err
	}
	if !a.quiet {
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "📦 Loaded %d blueprints from %s\n\n", len(blueprints), a.cfg.Input)
	}
	return blueprints, nil
}

// evaluate runs every blueprint, prints the table and the aggregate score, and
// records the run when a history database is configured.
func (a *app) evaluate(cmd *cobra.Command, mode string, blueprints []*models.Blueprint, horizon int, score func([]solver.Result) int) error {
	out := cmd.OutOrStdout()

	start := time.Now()
	results, err := solver.Evaluate(cmd.Context(), blueprints, horizon, solver.Options{Workers: a.cfg.Workers})
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	total := score(results)
	elapsed := time.Since(start)

	if a.quiet {
		fmt.Fprintln(out, total)
	} else {
		printResults(out, results, mode == "quality")
		label := "Quality sum"
		if mode == "product" {
			label = "Product"
		}
		color.New(color.FgGreen, color.Bold).Fprintf(out, "\n✓ %s at %d minutes: %d (%s)\n",
			label, horizon, total, elapsed.Round(time.Millisecond))
	}

	return a.record(cmd, mode, horizon, total, start, elapsed, results)
}

func (a *app) record(cmd *cobra.Command, mode string, horizon, total int, start time.Time, elapsed time.Duration, results []solver.Result) error {
	if a.cfg.HistoryDB == "" {
		return nil
	}

	db, err := store.Open(a.cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer db.Close()

	run := &store.Run{
		Mode:      mode,
		Horizon:   horizon,
		Score:     total,
		StartedAt: start.UTC(),
		Elapsed:   elapsed,
	}
	for _, r := range results {
		run.Results = append(run.Results, store.RunResult{
			BlueprintID: r.BlueprintID,
			Best:        r.Best,
			Expanded:    r.Stats.Expanded,
			Elapsed:     r.Elapsed,
		})
	}
	if err := db.SaveRun(run); err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	ctxlog.FromContext(cmd.Context()).Info("run saved", "id", run.ID, "mode", mode, "db", a.cfg.HistoryDB)
	if !a.quiet {
		color.New(color.FgCyan).Fprintf(cmd.OutOrStdout(), "💾 Saved run %s\n", run.ID)
	}
	return nil
}
