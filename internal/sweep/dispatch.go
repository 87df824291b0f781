package sweep

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/gridsweep/internal/ctxlog"
	"github.com/specialistvlad/gridsweep/internal/model"
)

// Sink consumes rendered jobs. Implementations live in the sink package.
type Sink interface {
	Name() string
	Submit(ctx context.Context, job model.JobSpec) error
}

// SinkErrorPolicy selects what Run does after a sink rejects a job.
type SinkErrorPolicy string

const (
	// ContinueOnSinkError records the failure and moves on to the next job.
	ContinueOnSinkError SinkErrorPolicy = "continue"
	// AbortOnSinkError stops the sweep at the first rejected job.
	AbortOnSinkError SinkErrorPolicy = "abort"
)

// Options tunes a single Run.
type Options struct {
	OnSinkError SinkErrorPolicy
	// Limit caps the number of combinations visited. Zero means no limit.
	Limit int
}

// Report summarizes a Run.
type Report struct {
	Sweep          string
	Total          int
	Visited        int
	Dispatched     int
	TemplateErrors int
	SinkErrors     int
	Errors         []error
}

// Failed reports whether any job could not be rendered or dispatched.
func (r *Report) Failed() bool {
	return r.TemplateErrors > 0 || r.SinkErrors > 0
}

// Err joins every per-job error, or returns nil.
func (r *Report) Err() error {
	return errors.Join(r.Errors...)
}

// Dispatch hands a single job to the sink, wrapping a rejection in a
// *model.SinkError.
func Dispatch(ctx context.Context, job model.JobSpec, sink Sink) error {
	if err := sink.Submit(ctx, job); err != nil {
		return &model.SinkError{Sink: sink.Name(), Index: job.Index, Err: err}
	}
	return nil
}

// Run validates the sweep, then renders and dispatches every combination of
// its grid in order.
//
// A configuration error is returned before anything is enumerated. Template
// errors are counted in the report and the sweep continues. Sink errors are
// counted and, with AbortOnSinkError, end the sweep; the returned error is
// then the sink error. Cancelling ctx stops the sweep between two jobs.
func Run(ctx context.Context, s *model.Sweep, sink Sink, opts Options) (*Report, error) {
	ctx = ctxlog.With(ctx, "sweep", s.Name)
	logger := ctxlog.FromContext(ctx)

	if err := s.Validate(); err != nil {
		return nil, err
	}

	report := &Report{Sweep: s.Name, Total: Count(s.Grid)}
	logger.Debug("Sweep validated.", "axes", s.Grid.Names(), "combinations", report.Total)

	for c := range Enumerate(s.Grid) {
		if opts.Limit > 0 && report.Visited >= opts.Limit {
			logger.Info("Job limit reached, stopping sweep.", "limit", opts.Limit)
			break
		}
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("sweep %q interrupted after %d jobs: %w", s.Name, report.Visited, err)
		}
		report.Visited++

		job, err := Render(s.Name, c, s.Template)
		if err != nil {
			logger.Error("Failed to render job.", "index", c.Index(), "combination", c.String(), "error", err)
			report.TemplateErrors++
			report.Errors = append(report.Errors, err)
			continue
		}

		if err := Dispatch(ctx, job, sink); err != nil {
			logger.Error("Failed to dispatch job.", "index", job.Index, "error", err)
			report.SinkErrors++
			report.Errors = append(report.Errors, err)
			if opts.OnSinkError == AbortOnSinkError {
				return report, err
			}
			continue
		}

		report.Dispatched++
		logger.Debug("Job dispatched.", "index", job.Index, "sink", sink.Name(), "combination", c.String())
	}

	logger.Info("Sweep finished.",
		"dispatched", report.Dispatched,
		"template_errors", report.TemplateErrors,
		"sink_errors", report.SinkErrors,
	)
	return report, nil
}
