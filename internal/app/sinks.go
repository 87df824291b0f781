package app

import (
	"context"
	"errors"
	"io"

	"github.com/specialistvlad/gridsweep/internal/config"
	"github.com/specialistvlad/gridsweep/internal/sink"
	"github.com/specialistvlad/gridsweep/internal/sweep"
)

// buildSink constructs every configured sink in the order given. More than one
// sink is combined with a tee. The returned func closes whatever was opened.
func (a *App) buildSink(ctx context.Context, m *config.Model) (sweep.Sink, func() error, error) {
	sched := a.scheduler()

	var sinks []sweep.Sink
	closeAll := func() error {
		var errs []error
		for _, s := range sinks {
			if c, ok := s.(io.Closer); ok {
				errs = append(errs, c.Close())
			}
		}
		return errors.Join(errs...)
	}

	for _, name := range a.config.Sinks {
		var s sweep.Sink
		switch name {
		case SinkPrint:
			s = sink.NewPrint(a.outW, sched)
		case SinkExec:
			s = sink.NewExec(sched)
		case SinkSocketIO:
			sio, err := sink.DialSocketIO(ctx, sink.SocketIOConfig{
				URL:       a.config.SocketIOURL,
				Namespace: a.config.SocketIONamespace,
				Event:     a.config.SocketIOEvent,
			})
			if err != nil {
				_ = closeAll()
				return nil, nil, err
			}
			s = sio
		case SinkLedger:
			l, err := sink.NewLedger(ctx, a.config.LedgerPath, sources(m))
			if err != nil {
				_ = closeAll()
				return nil, nil, err
			}
			a.logger.Info("Recording jobs to ledger.", "path", a.config.LedgerPath, "run_id", l.RunID())
			s = l
		}
		sinks = append(sinks, s)
	}

	if len(sinks) == 1 {
		return sinks[0], closeAll, nil
	}
	return sink.NewTee(sinks...), closeAll, nil
}

func (a *App) scheduler() *sink.Scheduler {
	if len(a.config.Scheduler) == 0 {
		return nil
	}
	return &sink.Scheduler{
		Command:    a.config.Scheduler,
		OutputFlag: a.config.OutputFlag,
		ErrorFlag:  a.config.ErrorFlag,
		Output:     a.config.Stdout,
		Error:      a.config.Stderr,
	}
}

// sources lists the distinct source of every loaded sweep.
func sources(m *config.Model) []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range m.Sweeps {
		if !seen[s.Source] {
			seen[s.Source] = true
			out = append(out, s.Source)
		}
	}
	return out
}
