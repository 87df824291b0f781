package sink

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/specialistvlad/gridsweep/internal/ctxlog"
	"github.com/specialistvlad/gridsweep/internal/model"
)

// runFunc runs a command and returns its combined output.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Exec submits each job by running the scheduler command. It waits for the
// submission command only, never for the scheduled job.
type Exec struct {
	scheduler *Scheduler
	run       runFunc
}

// ErrNoScheduler is returned by Exec when no scheduler command is configured.
var ErrNoScheduler = errors.New("exec sink has no scheduler command")

// NewExec creates an Exec sink. A scheduler command is required: the sink
// never runs the job itself.
func NewExec(scheduler *Scheduler) *Exec {
	return &Exec{scheduler: scheduler, run: runCommand}
}

// Name implements sweep.Sink.
func (e *Exec) Name() string {
	return "exec"
}

// Submit implements sweep.Sink.
func (e *Exec) Submit(ctx context.Context, job model.JobSpec) error {
	if !e.scheduler.Enabled() {
		return ErrNoScheduler
	}
	logger := ctxlog.FromContext(ctx).With("index", job.Index)
	argv := e.scheduler.Argv(job)

	logger.Debug("Running submission command.", "argv", argv)
	out, err := e.run(ctx, argv[0], argv[1:]...)
	output := strings.TrimSpace(string(out))
	if err != nil {
		return fmt.Errorf("%s failed: %w (output: %q)", argv[0], err, output)
	}

	logger.Info("Job submitted.", "command", argv[0], "output", output)
	return nil
}
