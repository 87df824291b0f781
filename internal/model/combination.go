// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import "strings"

// Combination is one point of a grid's Cartesian product. It is immutable:
// every accessor returns copies, and the enumerator builds a fresh value for
// each point.
type Combination struct {
	index  int
	names  []string
	values []Literal
}

// NewCombination builds a Combination from parallel name and value slices.
// The slices are copied.
func NewCombination(index int, names []string, values []Literal) Combination {
	n := make([]string, len(names))
	copy(n, names)
	v := make([]Literal, len(values))
	copy(v, values)
	return Combination{index: index, names: n, values: v}
}

// Index is the ordinal of the combination in enumeration order.
func (c Combination) Index() int {
	return c.index
}

// Len returns the number of axes assigned.
func (c Combination) Len() int {
	return len(c.names)
}

// Get returns the value assigned to the named axis.
func (c Combination) Get(name string) (Literal, bool) {
	for i, n := range c.names {
		if n == name {
			return c.values[i], true
		}
	}
	return Literal{}, false
}

// Names returns the axis names in grid order.
func (c Combination) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Values returns the assigned values in grid order.
func (c Combination) Values() []Literal {
	out := make([]Literal, len(c.values))
	copy(out, c.values)
	return out
}

// Map returns the assignment as a name to raw text map.
func (c Combination) Map() map[string]string {
	m := make(map[string]string, len(c.names))
	for i, n := range c.names {
		m[n] = c.values[i].Raw
	}
	return m
}

// String renders the combination as `a=1 b=2`, in grid order.
func (c Combination) String() string {
	parts := make([]string, len(c.names))
	for i, n := range c.names {
		parts[i] = n + "=" + c.values[i].Raw
	}
	return strings.Join(parts, " ")
}
