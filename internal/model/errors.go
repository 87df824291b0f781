// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the three failure kinds of a sweep.
//
//   - ConfigError is fatal and raised before any combination is produced.
//   - TemplateError affects one combination; the sweep moves on.
//   - SinkError affects one job; the caller decides whether to keep going.
package model

import (
	"fmt"
	"strings"
)

// ConfigError reports a malformed sweep or grid.
type ConfigError struct {
	Source string
	Sweep  string
	Axis   string
	Reason string
	// Position is the axis index the error refers to, or -1.
	Position int
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("invalid sweep")
	if e.Sweep != "" {
		fmt.Fprintf(&b, " %q", e.Sweep)
	}
	if e.Source != "" {
		fmt.Fprintf(&b, " in %s", e.Source)
	}
	if e.Axis != "" {
		fmt.Fprintf(&b, ": axis %q", e.Axis)
	} else if e.Position >= 0 {
		fmt.Fprintf(&b, ": axis #%d", e.Position)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

// TemplateError reports a slot referring to an axis the combination lacks.
type TemplateError struct {
	Axis  string
	Slot  int
	Index int
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("combination %d: slot %d references unknown axis %q", e.Index, e.Slot, e.Axis)
}

// SinkError reports a job the sink could not accept.
type SinkError struct {
	Sink  string
	Index int
	Err   error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("sink %s rejected job %d: %v", e.Sink, e.Index, e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}
