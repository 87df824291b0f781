package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/gridsweep/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func job(index int, lr string) model.JobSpec {
	return model.JobSpec{
		Sweep:       "gbrt",
		Index:       index,
		JobType:     "gbrt",
		Command:     "gbrt",
		Args:        []string{"--learning-rate", lr},
		Combination: model.NewCombination(index, []string{"learning_rate"}, []model.Literal{model.Number(lr)}),
	}
}

func TestLedger_RecordAndList(t *testing.T) {
	ctx := context.Background()
	l := openTemp(t)
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	runID, err := l.BeginRun(ctx, []string{"sweeps/gbrt.hcl"})
	require.NoError(t, err)
	_, err = uuid.Parse(runID)
	require.NoError(t, err, "run ids are UUIDs")

	require.NoError(t, l.RecordJob(ctx, runID, job(1, "0.9")))
	require.NoError(t, l.RecordJob(ctx, runID, job(0, "1.0")))

	entries, err := l.Jobs(ctx, runID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, Entry{
		RunID:       runID,
		Sweep:       "gbrt",
		Index:       0,
		JobType:     "gbrt",
		CommandLine: "gbrt --learning-rate 1.0",
		Combination: map[string]string{"learning_rate": "1.0"},
		SubmittedAt: fixed,
	}, entries[0])
	assert.Equal(t, 1, entries[1].Index)

	runs, err := l.Runs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{runID}, runs)
}

func TestLedger_DuplicateJobIsRejected(t *testing.T) {
	ctx := context.Background()
	l := openTemp(t)

	runID, err := l.BeginRun(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, l.RecordJob(ctx, runID, job(0, "1.0")))
	require.Error(t, l.RecordJob(ctx, runID, job(0, "1.0")))
}

func TestLedger_ReopenKeepsRuns(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	l, err := Open(path)
	require.NoError(t, err)
	runID, err := l.BeginRun(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, l.Close())

	l, err = Open(path)
	require.NoError(t, err)
	defer l.Close()

	runs, err := l.Runs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{runID}, runs)
}
