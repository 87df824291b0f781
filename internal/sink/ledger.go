package sink

import (
	"context"

	"github.com/specialistvlad/gridsweep/internal/ledger"
	"github.com/specialistvlad/gridsweep/internal/model"
)

// Ledger records every job in the ledger database under one run.
type Ledger struct {
	ledger *ledger.Ledger
	runID  string
}

// NewLedger opens the database at path and starts a run recording sources.
func NewLedger(ctx context.Context, path string, sources []string) (*Ledger, error) {
	l, err := ledger.Open(path)
	if err != nil {
		return nil, err
	}
	runID, err := l.BeginRun(ctx, sources)
	if err != nil {
		l.Close()
		return nil, err
	}
	return &Ledger{ledger: l, runID: runID}, nil
}

// RunID returns the id of the run jobs are recorded under.
func (l *Ledger) RunID() string {
	return l.runID
}

// Name implements sweep.Sink.
func (l *Ledger) Name() string {
	return "ledger"
}

// Submit implements sweep.Sink.
func (l *Ledger) Submit(ctx context.Context, job model.JobSpec) error {
	return l.ledger.RecordJob(ctx, l.runID, job)
}

// Close closes the database.
func (l *Ledger) Close() error {
	return l.ledger.Close()
}
