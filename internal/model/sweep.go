// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

// Sweep is a named grid plus the template rendered for each of its points.
type Sweep struct {
	Name     string
	Grid     Grid
	Template CommandTemplate
	// Source is the file the sweep was declared in, empty for sweeps built
	// in code.
	Source string
}

// Validate checks the grid and that the sweep is named.
func (s *Sweep) Validate() error {
	if s.Name == "" {
		return &ConfigError{Source: s.Source, Reason: "sweep name must not be empty", Position: -1}
	}
	if err := s.Grid.Validate(); err != nil {
		if ce, ok := err.(*ConfigError); ok {
			ce.Sweep = s.Name
			ce.Source = s.Source
		}
		return err
	}
	return nil
}
