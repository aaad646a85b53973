package solver

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napolitain/solver-foundry/internal/ctxlog"
	"github.com/napolitain/solver-foundry/internal/models"
	"github.com/napolitain/solver-foundry/internal/solver/foundry"
)

func testBlueprints() []*models.Blueprint {
	return []*models.Blueprint{
		models.NewStandardBlueprint(1, 4, 2, 3, 14, 2, 7),
		models.NewStandardBlueprint(2, 2, 3, 3, 8, 3, 12),
		models.NewStandardBlueprint(3, 1, 1, 1, 1, 1, 1),
		models.NewStandardBlueprint(4, 2, 2, 2, 2, 2, 2),
	}
}

func TestEvaluateMatchesDirectSearch(t *testing.T) {
	blueprints := testBlueprints()

	results, err := Evaluate(context.Background(), blueprints, 14, Options{Workers: 3})
	require.NoError(t, err)
	require.Len(t, results, len(blueprints))

	var gotIDs, wantIDs []int
	for i, r := range results {
		gotIDs = append(gotIDs, r.BlueprintID)
		wantIDs = append(wantIDs, blueprints[i].ID)

		assert.Equal(t, 14, r.Horizon)
		assert.Equal(t, foundry.Search(blueprints[i], 14), r.Best, "blueprint %d", r.BlueprintID)
		assert.Positive(t, r.Stats.Terminal)
	}
	if diff := cmp.Diff(wantIDs, gotIDs); diff != "" {
		t.Errorf("results out of input order (-want +got):\n%s", diff)
	}
}

func TestEvaluateWorkerCountDoesNotChangeResults(t *testing.T) {
	blueprints := testBlueprints()

	serial, err := Evaluate(context.Background(), blueprints, 13, Options{Workers: 1})
	require.NoError(t, err)
	parallel, err := Evaluate(context.Background(), blueprints, 13, Options{})
	require.NoError(t, err)

	best := func(rs []Result) []int {
		var out []int
		for _, r := range rs {
			out = append(out, r.Best)
		}
		return out
	}
	assert.Equal(t, best(serial), best(parallel))
	assert.Equal(t, QualitySum(serial), QualitySum(parallel))
}

func TestEvaluateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Evaluate(ctx, testBlueprints(), 12, Options{Workers: 1})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestEvaluateEmpty(t *testing.T) {
	results, err := Evaluate(context.Background(), nil, 24, Options{})
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, QualitySum(results))
}

func TestEvaluateLogsEachBlueprint(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	_, err := Evaluate(ctx, testBlueprints()[2:], 10, Options{Workers: 1})
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "msg=\"blueprint started\""))
	assert.Equal(t, 2, strings.Count(out, "msg=\"blueprint solved\""))
	assert.Contains(t, out, "blueprint=3")
	assert.Contains(t, out, "blueprint=4")
}

func TestEvaluateRejectsNilBlueprint(t *testing.T) {
	blueprints := []*models.Blueprint{testBlueprints()[0], nil}

	results, err := Evaluate(context.Background(), blueprints, 8, Options{Workers: 2})
	assert.ErrorIs(t, err, ErrNilBlueprint)
	assert.Contains(t, err.Error(), "entry 1")
	assert.Nil(t, results)
}
