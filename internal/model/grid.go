// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Grid, the ordered set of axes a sweep iterates over.
//
// Declaration order is the nesting order: the first axis is the outermost
// loop, the last axis varies fastest. Value order inside an axis is kept as
// declared. Nothing is sorted or deduplicated.
package model

import "math"

// ParameterAxis is one hyperparameter and its ordered candidate values.
type ParameterAxis struct {
	Name   string
	Values []Literal
}

// Axis is a shorthand constructor used by loaders, presets and tests.
func Axis(name string, values ...Literal) ParameterAxis {
	return ParameterAxis{Name: name, Values: values}
}

// Grid is the ordered collection of axes that defines a sweep.
type Grid struct {
	Axes []ParameterAxis
}

// NewGrid creates a Grid from the given axes, keeping their order.
func NewGrid(axes ...ParameterAxis) Grid {
	return Grid{Axes: axes}
}

// Size returns the number of combinations the grid produces. An empty grid
// has exactly one (empty) combination. A product larger than math.MaxInt is
// reported as math.MaxInt.
func (g Grid) Size() int {
	n := 1
	for _, axis := range g.Axes {
		k := len(axis.Values)
		if k == 0 {
			return 0
		}
		if n > math.MaxInt/k {
			return math.MaxInt
		}
		n *= k
	}
	return n
}

// Names returns the axis names in declaration order.
func (g Grid) Names() []string {
	names := make([]string, len(g.Axes))
	for i, axis := range g.Axes {
		names[i] = axis.Name
	}
	return names
}

// Has reports whether the grid declares an axis with the given name.
func (g Grid) Has(name string) bool {
	for _, axis := range g.Axes {
		if axis.Name == name {
			return true
		}
	}
	return false
}

// Validate checks the structural invariants of the grid. It returns a
// *ConfigError for the first violation found.
func (g Grid) Validate() error {
	seen := make(map[string]struct{}, len(g.Axes))
	for i, axis := range g.Axes {
		if axis.Name == "" {
			return &ConfigError{Reason: "axis name must not be empty", Position: i}
		}
		if _, dup := seen[axis.Name]; dup {
			return &ConfigError{Axis: axis.Name, Reason: "axis declared more than once", Position: i}
		}
		seen[axis.Name] = struct{}{}
		if len(axis.Values) == 0 {
			return &ConfigError{Axis: axis.Name, Reason: "axis has no values", Position: i}
		}
	}
	return nil
}
