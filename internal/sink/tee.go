package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/gridsweep/internal/model"
	"github.com/specialistvlad/gridsweep/internal/sweep"
)

// Tee hands every job to several sinks in order. All sinks are tried even if
// one fails; the failures are joined.
type Tee struct {
	sinks []sweep.Sink
}

// NewTee creates a Tee over the given sinks.
func NewTee(sinks ...sweep.Sink) *Tee {
	return &Tee{sinks: sinks}
}

// Name implements sweep.Sink.
func (t *Tee) Name() string {
	names := make([]string, len(t.sinks))
	for i, s := range t.sinks {
		names[i] = s.Name()
	}
	return "tee(" + strings.Join(names, ",") + ")"
}

// Submit implements sweep.Sink.
func (t *Tee) Submit(ctx context.Context, job model.JobSpec) error {
	var errs []error
	for _, s := range t.sinks {
		if err := s.Submit(ctx, job); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink that holds resources.
func (t *Tee) Close() error {
	var errs []error
	for _, s := range t.sinks {
		if c, ok := s.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
