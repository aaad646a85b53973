package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndLoadRun(t *testing.T) {
	db := openTestDB(t)

	started := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	run := &Run{
		Mode:      "quality",
		Horizon:   24,
		Score:     33,
		StartedAt: started,
		Elapsed:   1500 * time.Millisecond,
		Results: []RunResult{
			{BlueprintID: 2, Best: 12, Expanded: 4853674, Elapsed: 900 * time.Millisecond},
			{BlueprintID: 1, Best: 9, Expanded: 4286371, Elapsed: 600 * time.Millisecond},
		},
	}

	require.NoError(t, db.SaveRun(run))
	require.NotEmpty(t, run.ID, "SaveRun assigns an id")

	loaded, err := db.Run(run.ID)
	require.NoError(t, err)

	assert.Equal(t, run.ID, loaded.ID)
	assert.Equal(t, "quality", loaded.Mode)
	assert.Equal(t, 24, loaded.Horizon)
	assert.Equal(t, 33, loaded.Score)
	assert.True(t, started.Equal(loaded.StartedAt), "started_at: got %v", loaded.StartedAt)
	assert.Equal(t, 1500*time.Millisecond, loaded.Elapsed)

	require.Len(t, loaded.Results, 2)
	assert.Equal(t, 1, loaded.Results[0].BlueprintID, "results are ordered by blueprint id")
	assert.Equal(t, 9, loaded.Results[0].Best)
	assert.Equal(t, 4286371, loaded.Results[0].Expanded)
	assert.Equal(t, run.ID, loaded.Results[1].RunID)
}

func TestRunNotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Run("does-not-exist")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestRecentRunsNewestFirst(t *testing.T) {
	db := openTestDB(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		require.NoError(t, db.SaveRun(&Run{
			Mode:      "product",
			Horizon:   32,
			Score:     i,
			StartedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	runs, err := db.RecentRuns(3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, 3, runs[0].Score)
	assert.Equal(t, 2, runs[1].Score)
	assert.Equal(t, 1, runs[2].Score)
	assert.Empty(t, runs[0].Results)
}

func TestSaveRunRejectsDuplicateID(t *testing.T) {
	db := openTestDB(t)

	run := &Run{ID: "fixed", Mode: "quality", StartedAt: time.Now().UTC()}
	require.NoError(t, db.SaveRun(run))

	err := db.SaveRun(&Run{ID: "fixed", Mode: "quality", StartedAt: time.Now().UTC()})
	assert.Error(t, err)

	runs, err := db.RecentRuns(10)
	require.NoError(t, err)
	assert.Len(t, runs, 1, "failed insert leaves no partial run behind")
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.SaveRun(&Run{ID: "kept", Mode: "quality", StartedAt: time.Now().UTC()}))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	run, err := db.Run("kept")
	require.NoError(t, err)
	assert.Equal(t, "kept", run.ID)
}
