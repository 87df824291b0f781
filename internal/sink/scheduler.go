package sink

import (
	"strconv"
	"strings"

	"github.com/specialistvlad/gridsweep/internal/model"
)

// Default redirection flags, understood by qsub, bsub and sbatch alike.
const (
	DefaultOutputFlag = "-o"
	DefaultErrorFlag  = "-e"
)

// Scheduler describes how a job is wrapped into a batch submission command.
//
// Output and Error are the two redirection targets handed to the scheduler.
// They may contain the placeholders {sweep}, {index} and {job_type}, which
// are replaced per job.
type Scheduler struct {
	Command    []string
	OutputFlag string
	ErrorFlag  string
	Output     string
	Error      string
}

// Enabled reports whether a scheduler command is configured.
func (s *Scheduler) Enabled() bool {
	return s != nil && len(s.Command) > 0
}

// Argv returns the full submission command for a job. Without a scheduler
// command the job's own command is returned unchanged.
func (s *Scheduler) Argv(job model.JobSpec) []string {
	if !s.Enabled() {
		return job.Argv()
	}

	argv := append([]string{}, s.Command...)
	if s.Output != "" {
		argv = append(argv, orDefault(s.OutputFlag, DefaultOutputFlag), expand(s.Output, job))
	}
	if s.Error != "" {
		argv = append(argv, orDefault(s.ErrorFlag, DefaultErrorFlag), expand(s.Error, job))
	}
	return append(argv, job.Argv()...)
}

func expand(target string, job model.JobSpec) string {
	return strings.NewReplacer(
		"{sweep}", job.Sweep,
		"{index}", strconv.Itoa(job.Index),
		"{job_type}", job.JobType,
	).Replace(target)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
