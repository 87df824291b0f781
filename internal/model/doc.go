// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the in-memory representation of a parameter sweep.
//
// # Core Concepts
//
//   - Literal: a single axis value, kept exactly as it was written in the
//     source file. A learning rate written as `1.0` is rendered as `1.0`, never
//     as `1`.
//
//   - ParameterAxis and Grid: an axis is one hyperparameter with its ordered
//     candidate values. A Grid is the ordered list of axes; the first axis is
//     the outermost loop and the last axis is the innermost.
//
//   - Combination: one point of the Cartesian product, assigning a Literal to
//     every axis of the Grid.
//
//   - CommandTemplate and Slot: the shape of the command line to produce for
//     every Combination. A Slot is either a constant or a reference to an axis.
//
//   - JobSpec: the fully rendered command for one Combination, ready to be
//     handed to a sink.
//
//   - Sweep: a named Grid plus its CommandTemplate, as declared in one `sweep`
//     block of a configuration file.
//
// The package is format-agnostic. Loaders for HCL and YAML translate their
// files into these types; the sweep package enumerates and renders them.
package model
