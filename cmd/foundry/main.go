package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/napolitain/solver-foundry/internal/config"
	"github.com/napolitain/solver-foundry/internal/ctxlog"
)

// app holds the persistent flags and the configuration they resolve to
type app struct {
	configFile string
	input      string
	workers    int
	logLevel   string
	logFormat  string
	dbPath     string
	quiet      bool

	cfg config.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "foundry",
		Short: "Robot Foundry Blueprint Optimizer",
		Long: `A branch-and-bound search that finds the most geodes each factory
blueprint can open within a fixed number of minutes.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.configFile, "config", "c", "", "Path to YAML config file")
	pf.StringVarP(&a.input, "input", "i", "", "Blueprint file (.txt or .json)")
	pf.IntVarP(&a.workers, "workers", "w", 0, "Concurrent searches (0 = one per CPU)")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&a.logFormat, "log-format", "", "Log format: text or json")
	pf.StringVar(&a.dbPath, "db", "", "SQLite file for run history")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "Minimal output")

	rootCmd.AddCommand(
		a.qualityCmd(),
		a.productCmd(),
		a.solveCmd(),
		a.historyCmd(),
	)
	return rootCmd
}

// setup resolves the configuration (defaults, then file, then flags) and puts the
// logger in the command context.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if a.configFile != "" {
		loaded, err := config.Load(a.configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = a.input
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	} else if a.quiet {
		cfg.Log.Level = "warn"
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if flags.Changed("db") {
		cfg.HistoryDB = a.dbPath
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := ctxlog.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.cfg = cfg
	cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))

	if !a.quiet {
		printBanner(cmd.OutOrStdout())
	}
	return nil
}
