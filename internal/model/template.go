// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the CommandTemplate, the recipe that turns a Combination
// into a command line.
//
// A template is an ordered list of Slots. Each Slot produces one token, or two
// for a flag slot (`--flag value`). Slot order is argument order; nothing is
// reordered during rendering.
package model

// Slot is one argument position of a CommandTemplate.
type Slot struct {
	// Flag, when set, is emitted before the value, as a separate token or
	// joined with it when Joined is true.
	Flag   string
	Joined bool

	// Exactly one of Literal or Axis provides the value. Axis takes
	// precedence when both are set.
	Literal Literal
	Axis    string
}

// LiteralSlot binds a slot to a constant.
func LiteralSlot(l Literal) Slot {
	return Slot{Literal: l}
}

// AxisSlot binds a slot to the value of the named axis.
func AxisSlot(axis string) Slot {
	return Slot{Axis: axis}
}

// FlagSlot emits a flag followed by the value of the named axis.
func FlagSlot(flag, axis string) Slot {
	return Slot{Flag: flag, Axis: axis}
}

// IsAxis reports whether the slot takes its value from a combination.
func (s Slot) IsAxis() bool {
	return s.Axis != ""
}

// CommandTemplate describes the command rendered for every combination.
type CommandTemplate struct {
	// JobType identifies the job family, for example a model family name.
	JobType string
	// Command is the executable and any fixed leading arguments. When empty,
	// JobType is used as the executable.
	Command []string
	Slots   []Slot
}

// Executable returns the command name used in rendered jobs.
func (t CommandTemplate) Executable() string {
	if len(t.Command) > 0 {
		return t.Command[0]
	}
	return t.JobType
}

// Axes returns the axis names referenced by the template, in slot order.
func (t CommandTemplate) Axes() []string {
	var out []string
	for _, s := range t.Slots {
		if s.IsAxis() {
			out = append(out, s.Axis)
		}
	}
	return out
}
