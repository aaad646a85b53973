package solver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/napolitain/solver-foundry/internal/ctxlog"
	"github.com/napolitain/solver-foundry/internal/models"
	"github.com/napolitain/solver-foundry/internal/solver/foundry"
)

// ErrNilBlueprint is returned when the blueprint list holds a nil entry
var ErrNilBlueprint = errors.New("nil blueprint")

// Result is the outcome of searching one blueprint
type Result struct {
	BlueprintID int
	Horizon     int
	Best        int
	Stats       foundry.Stats
	Elapsed     time.Duration
}

// Options tunes an evaluation run
type Options struct {
	Workers int // concurrent searches, 0 = one per CPU
}

// Evaluate searches every blueprint at the given horizon, running up to opts.Workers
// searches at once. Results come back in input order.
//
// A search cannot be interrupted once started. Cancelling ctx stops new searches from
// starting; Evaluate then returns ctx.Err() after the running ones finish.
// A nil entry is rejected before any search starts.
func Evaluate(ctx context.Context, blueprints []*models.Blueprint, horizon int, opts Options) ([]Result, error) {
	for i, bp := range blueprints {
		if bp == nil {
			return nil, fmt.Errorf("entry %d: %w", i, ErrNilBlueprint)
		}
	}

	logger := ctxlog.FromContext(ctx)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, len(blueprints))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, bp := range blueprints {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			logger.Debug("blueprint started", "blueprint", bp.ID, "horizon", horizon)
			start := time.Now()
			solution := foundry.NewSolver(bp, horizon).Solve()
			elapsed := time.Since(start)

			results[i] = Result{
				BlueprintID: bp.ID,
				Horizon:     horizon,
				Best:        solution.Best,
				Stats:       solution.Stats,
				Elapsed:     elapsed,
			}

			logger.Info("blueprint solved",
				"blueprint", bp.ID,
				"horizon", horizon,
				"best", solution.Best,
				"expanded", solution.Stats.Expanded,
				"elapsed", elapsed.Round(time.Millisecond),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
