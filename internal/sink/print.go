package sink

import (
	"context"
	"fmt"
	"io"

	"github.com/kballard/go-shellquote"
	"github.com/specialistvlad/gridsweep/internal/model"
)

// Print writes one shell-quoted line per job. With a scheduler, the line is
// the submission command that Exec would run.
type Print struct {
	w         io.Writer
	scheduler *Scheduler
}

// NewPrint creates a Print sink. scheduler may be nil.
func NewPrint(w io.Writer, scheduler *Scheduler) *Print {
	return &Print{w: w, scheduler: scheduler}
}

// Name implements sweep.Sink.
func (p *Print) Name() string {
	return "print"
}

// Submit implements sweep.Sink.
func (p *Print) Submit(_ context.Context, job model.JobSpec) error {
	_, err := fmt.Fprintln(p.w, shellquote.Join(p.scheduler.Argv(job)...))
	return err
}
