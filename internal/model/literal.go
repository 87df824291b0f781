// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Literal, the value type carried by every axis.
//
// Numeric-looking values are never re-parsed for rendering. Two entries such as
// `1` and `0.9` may live in the same axis, and each is rendered with its
// original spelling. The cty type is kept only to describe what kind of value
// the source contained.
package model

import (
	"fmt"
	"strconv"

	"github.com/zclconf/go-cty/cty"
)

// Literal is a single value as written in a sweep definition.
type Literal struct {
	// Raw is the source text of the value, without quotes for strings.
	Raw string
	// Type is the primitive type of the source literal: cty.String,
	// cty.Number or cty.Bool.
	Type cty.Type
}

// String builds a string literal.
func String(s string) Literal {
	return Literal{Raw: s, Type: cty.String}
}

// Number builds a number literal from its source spelling.
func Number(raw string) Literal {
	return Literal{Raw: raw, Type: cty.Number}
}

// Bool builds a bool literal.
func Bool(b bool) Literal {
	if b {
		return Literal{Raw: "true", Type: cty.Bool}
	}
	return Literal{Raw: "false", Type: cty.Bool}
}

// String implements fmt.Stringer and returns the raw source text.
func (l Literal) String() string {
	return l.Raw
}

// Value converts the literal into a cty.Value of its declared type.
func (l Literal) Value() (cty.Value, error) {
	switch l.Type {
	case cty.Number:
		v, err := cty.ParseNumberVal(l.Raw)
		if err != nil {
			return cty.NilVal, fmt.Errorf("literal %q is not a number: %w", l.Raw, err)
		}
		return v, nil
	case cty.Bool:
		b, err := strconv.ParseBool(l.Raw)
		if err != nil {
			return cty.NilVal, fmt.Errorf("literal %q is not a bool", l.Raw)
		}
		return cty.BoolVal(b), nil
	case cty.NilType, cty.String:
		return cty.StringVal(l.Raw), nil
	}
	return cty.NilVal, fmt.Errorf("literal %q has unsupported type %s", l.Raw, l.Type.FriendlyName())
}

// Native returns the literal as a plain Go value: string, float64 or bool.
func (l Literal) Native() (any, error) {
	v, err := l.Value()
	if err != nil {
		return nil, err
	}
	switch v.Type() {
	case cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return f, nil
	case cty.Bool:
		return v.True(), nil
	}
	return v.AsString(), nil
}
