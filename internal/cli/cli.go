package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/specialistvlad/gridsweep/internal/app"
	"github.com/specialistvlad/gridsweep/internal/presets"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// listFlag collects a comma separated list; repeating the flag appends.
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("gridsweep", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
gridsweep - Enumerate hyperparameter grids and submit one batch job per combination.

Usage:
  gridsweep [options] [SWEEP_PATH...]

Arguments:
  SWEEP_PATH
    Path to a .hcl/.yaml sweep file or a directory containing them.

Options:
`)
		flagSet.PrintDefaults()
	}

	var sweepPaths, presetNames, only, sinks listFlag
	flagSet.Var(&sweepPaths, "sweep", "Path to a sweep file or directory. Repeatable.")
	flagSet.Var(&sweepPaths, "s", "Path to a sweep file or directory (shorthand).")
	flagSet.Var(&presetNames, "preset", "Built-in sweep(s) to run, comma separated: "+strings.Join(presets.Names(), ", ")+".")
	flagSet.Var(&only, "only", "Only run the named sweep(s), comma separated.")
	flagSet.Var(&sinks, "sink", "Where jobs go, comma separated: 'print', 'exec', 'socketio', 'ledger'. Default 'print'.")

	schedulerFlag := flagSet.String("scheduler", "", `Submission command prepended to each job, e.g. "bsub -q long".`)
	outputFlagFlag := flagSet.String("output-flag", "-o", "Scheduler flag for the stdout target.")
	errorFlagFlag := flagSet.String("error-flag", "-e", "Scheduler flag for the stderr target.")
	stdoutFlag := flagSet.String("stdout", "", "Stdout target passed to the scheduler. Supports {sweep}, {index} and {job_type}.")
	stderrFlag := flagSet.String("stderr", "", "Stderr target passed to the scheduler. Supports {sweep}, {index} and {job_type}.")

	socketURLFlag := flagSet.String("socketio-url", "", "URL of the socket.io submission relay.")
	socketNSFlag := flagSet.String("socketio-namespace", "/", "socket.io namespace of the relay.")
	socketEventFlag := flagSet.String("socketio-event", "submit", "Event name jobs are emitted under.")

	ledgerFlag := flagSet.String("ledger", app.DefaultLedgerPath, "Path of the SQLite ledger used by the 'ledger' sink.")
	limitFlag := flagSet.Int("limit", 0, "Maximum number of jobs per sweep. 0 is unlimited.")
	onSinkErrorFlag := flagSet.String("on-sink-error", "continue", "What to do when a job cannot be submitted. Options: 'continue' or 'abort'.")

	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	sweepPaths = append(sweepPaths, flagSet.Args()...)
	if len(sweepPaths) == 0 && len(presetNames) == 0 {
		slog.Debug("No sweep path or preset provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	scheduler, err := shellquote.Split(*schedulerFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid scheduler command: %v", err)}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		SweepPaths:        sweepPaths,
		Presets:           presetNames,
		Only:              only,
		Sinks:             sinks,
		Limit:             *limitFlag,
		OnSinkError:       strings.ToLower(*onSinkErrorFlag),
		Scheduler:         scheduler,
		OutputFlag:        *outputFlagFlag,
		ErrorFlag:         *errorFlagFlag,
		Stdout:            *stdoutFlag,
		Stderr:            *stderrFlag,
		SocketIOURL:       *socketURLFlag,
		SocketIONamespace: *socketNSFlag,
		SocketIOEvent:     *socketEventFlag,
		LedgerPath:        *ledgerFlag,
		LogFormat:         logFormat,
		LogLevel:          logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
