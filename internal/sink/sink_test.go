package sink

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/gridsweep/internal/ledger"
	"github.com/specialistvlad/gridsweep/internal/model"
	"github.com/specialistvlad/gridsweep/internal/sweep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleJob() model.JobSpec {
	return model.JobSpec{
		Sweep:   "dbn",
		Index:   7,
		JobType: "dbn",
		Command: "python",
		Args:    []string{"train.py", "--layers", "1000 500", "--learning-rate", "0.9"},
		Combination: model.NewCombination(7,
			[]string{"layers", "learning_rate"},
			[]model.Literal{model.String("1000 500"), model.Number("0.9")}),
	}
}

func TestScheduler_Argv(t *testing.T) {
	job := sampleJob()

	var none *Scheduler
	assert.Equal(t, job.Argv(), none.Argv(job))

	s := &Scheduler{
		Command: []string{"bsub", "-q", "long"},
		Output:  "logs/{sweep}-{index}.out",
		Error:   "logs/{job_type}-{index}.err",
	}
	assert.Equal(t, []string{
		"bsub", "-q", "long",
		"-o", "logs/dbn-7.out",
		"-e", "logs/dbn-7.err",
		"python", "train.py", "--layers", "1000 500", "--learning-rate", "0.9",
	}, s.Argv(job))

	s = &Scheduler{Command: []string{"sbatch"}, OutputFlag: "--output", Output: "out.log"}
	assert.Equal(t, []string{"sbatch", "--output", "out.log", "python"}, s.Argv(job)[:4])
}

func TestPrint(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewPrint(buf, nil).Submit(context.Background(), sampleJob()))
	assert.Equal(t, "python train.py --layers '1000 500' --learning-rate 0.9\n", buf.String())

	buf.Reset()
	sched := &Scheduler{Command: []string{"qsub"}, Output: "o.log", Error: "e.log"}
	require.NoError(t, NewPrint(buf, sched).Submit(context.Background(), sampleJob()))
	assert.Equal(t, "qsub -o o.log -e e.log python train.py --layers '1000 500' --learning-rate 0.9\n", buf.String())
}

func TestExec(t *testing.T) {
	var gotName string
	var gotArgs []string
	e := NewExec(&Scheduler{Command: []string{"bsub"}, Output: "o", Error: "e"})
	e.run = func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		return []byte("Job <123> is submitted to default queue.\n"), nil
	}

	require.NoError(t, e.Submit(context.Background(), sampleJob()))
	assert.Equal(t, "bsub", gotName)
	assert.Equal(t, []string{"-o", "o", "-e", "e", "python", "train.py", "--layers", "1000 500", "--learning-rate", "0.9"}, gotArgs)
}

func TestExec_FailureCarriesOutput(t *testing.T) {
	e := NewExec(&Scheduler{Command: []string{"qsub"}})
	e.run = func(context.Context, string, ...string) ([]byte, error) {
		return []byte("qsub: Unknown queue\n"), errors.New("exit status 1")
	}

	err := e.Submit(context.Background(), sampleJob())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "qsub failed: exit status 1")
	assert.Contains(t, err.Error(), "qsub: Unknown queue")
}

func TestExec_RunsRealScheduler(t *testing.T) {
	job := model.JobSpec{Command: "python", Args: []string{"train.py"}}

	require.NoError(t, NewExec(&Scheduler{Command: []string{"true"}}).Submit(context.Background(), job))
	require.Error(t, NewExec(&Scheduler{Command: []string{"false"}}).Submit(context.Background(), job))
}

func TestExec_RequiresScheduler(t *testing.T) {
	called := false
	e := NewExec(nil)
	e.run = func(context.Context, string, ...string) ([]byte, error) {
		called = true
		return nil, nil
	}

	err := e.Submit(context.Background(), model.JobSpec{Command: "sleep", Args: []string{"2"}})
	require.ErrorIs(t, err, ErrNoScheduler)
	assert.False(t, called, "the job itself must never be run by the exec sink")

	err = NewExec(&Scheduler{}).Submit(context.Background(), model.JobSpec{Command: "sleep"})
	require.ErrorIs(t, err, ErrNoScheduler)
}

type failingSink struct{ closed bool }

func (f *failingSink) Name() string                                { return "failing" }
func (f *failingSink) Submit(context.Context, model.JobSpec) error { return errors.New("down") }
func (f *failingSink) Close() error                                { f.closed = true; return nil }

func TestTee(t *testing.T) {
	buf := &bytes.Buffer{}
	failing := &failingSink{}
	tee := NewTee(failing, NewPrint(buf, nil))

	assert.Equal(t, "tee(failing,print)", tee.Name())

	err := tee.Submit(context.Background(), sampleJob())
	require.EqualError(t, err, "failing: down")
	assert.NotEmpty(t, buf.String(), "later sinks still receive the job")

	require.NoError(t, tee.Close())
	assert.True(t, failing.closed)
}

func TestLedgerSink(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	l, err := NewLedger(ctx, path, []string{"dbn.hcl"})
	require.NoError(t, err)

	s := &model.Sweep{
		Name: "et",
		Grid: model.NewGrid(model.Axis("max_features", model.Number("2500"), model.Number("3000"))),
		Template: model.CommandTemplate{
			JobType: "et",
			Slots:   []model.Slot{model.AxisSlot("max_features")},
		},
	}
	report, err := sweep.Run(ctx, s, l, sweep.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Dispatched)
	require.NoError(t, l.Close())

	db, err := ledger.Open(path)
	require.NoError(t, err)
	defer db.Close()

	entries, err := db.Jobs(ctx, l.RunID())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "et 2500", entries[0].CommandLine)
	assert.Equal(t, "et 3000", entries[1].CommandLine)
}

func TestPayload(t *testing.T) {
	p := Payload(sampleJob())
	assert.Equal(t, "dbn", p["sweep"])
	assert.Equal(t, 7, p["index"])
	assert.Equal(t, "python train.py --layers '1000 500' --learning-rate 0.9", p["line"])
	assert.Equal(t, map[string]string{"layers": "1000 500", "learning_rate": "0.9"}, p["combination"])
	assert.Equal(t, map[string]any{"layers": "1000 500", "learning_rate": 0.9}, p["parameters"])
}
