package app

import (
	"errors"
	"fmt"
	"strings"
)

// Sink names accepted in Config.Sinks.
const (
	SinkPrint    = "print"
	SinkExec     = "exec"
	SinkSocketIO = "socketio"
	SinkLedger   = "ledger"
)

// DefaultLedgerPath is used when the ledger sink is selected without a path.
const DefaultLedgerPath = "gridsweep.db"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SweepPaths []string // .hcl / .yaml files or directories
	Presets    []string
	Only       []string // sweep names to run; empty runs all

	Sinks       []string
	Limit       int
	OnSinkError string

	// Scheduler submission.
	Scheduler  []string
	OutputFlag string
	ErrorFlag  string
	Stdout     string
	Stderr     string

	// Relay submission.
	SocketIOURL       string
	SocketIONamespace string
	SocketIOEvent     string

	LedgerPath string

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.SweepPaths) == 0 && len(cfg.Presets) == 0 {
		return nil, errors.New("at least one sweep path or preset is required")
	}

	if len(cfg.Sinks) == 0 {
		cfg.Sinks = []string{SinkPrint}
	}
	seen := make(map[string]bool, len(cfg.Sinks))
	for _, s := range cfg.Sinks {
		switch s {
		case SinkPrint, SinkExec, SinkSocketIO, SinkLedger:
		default:
			return nil, fmt.Errorf("unknown sink %q: must be one of %s", s, strings.Join([]string{SinkPrint, SinkExec, SinkSocketIO, SinkLedger}, ", "))
		}
		if seen[s] {
			return nil, fmt.Errorf("sink %q selected more than once", s)
		}
		seen[s] = true
	}

	if cfg.HasSink(SinkExec) && len(cfg.Scheduler) == 0 {
		return nil, errors.New("the exec sink requires -scheduler")
	}
	if cfg.HasSink(SinkSocketIO) && cfg.SocketIOURL == "" {
		return nil, errors.New("the socketio sink requires a relay URL")
	}
	if cfg.HasSink(SinkLedger) && cfg.LedgerPath == "" {
		cfg.LedgerPath = DefaultLedgerPath
	}

	switch cfg.OnSinkError {
	case "":
		cfg.OnSinkError = "continue"
	case "continue", "abort":
	default:
		return nil, fmt.Errorf("invalid on-sink-error %q: must be 'continue' or 'abort'", cfg.OnSinkError)
	}

	if cfg.Limit < 0 {
		return nil, fmt.Errorf("limit must not be negative, got %d", cfg.Limit)
	}

	return &cfg, nil
}

// HasSink reports whether the named sink is selected.
func (c *Config) HasSink(name string) bool {
	for _, s := range c.Sinks {
		if s == name {
			return true
		}
	}
	return false
}
