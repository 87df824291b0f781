// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import (
	"github.com/kballard/go-shellquote"
)

// JobSpec is a rendered job: a command and its ordered arguments, derived
// from one Combination. It is handed to a sink and then discarded.
type JobSpec struct {
	Sweep       string
	Index       int
	JobType     string
	Command     string
	Args        []string
	Combination Combination
}

// Argv returns the command followed by its arguments.
func (j JobSpec) Argv() []string {
	argv := make([]string, 0, len(j.Args)+1)
	argv = append(argv, j.Command)
	return append(argv, j.Args...)
}

// Line returns the job as a single shell-quoted command line.
func (j JobSpec) Line() string {
	return shellquote.Join(j.Argv()...)
}
