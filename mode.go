// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package execbatch

import (
	"errors"
)

// Mode defines the scheduling policy for a batch of commands.
// It can be set to Sequential or Parallel.
type Mode int

const (
	// Sequential means commands are dispatched one at a time, in input order,
	// each waiting for the previous one to finish.
	Sequential Mode = iota
	// Parallel means all commands are dispatched immediately and concurrently.
	Parallel
)

const (
	sequentialStr  = "sequential"
	parallelStr    = "parallel"
	modeUnknownStr = "unknown"
)

var (
	// ErrModeUnknown is returned when an unknown Mode value is encountered.
	ErrModeUnknown = errors.New("unknown Mode value")
)

// String returns the string representation of the Mode.
func (m Mode) String() string {
	switch m {
	case Sequential:
		return sequentialStr
	case Parallel:
		return parallelStr
	default:
		return modeUnknownStr
	}
}

// NewMode creates a Mode from a string.
func NewMode(s string) (Mode, error) {
	switch s {
	case sequentialStr:
		return Sequential, nil
	case parallelStr:
		return Parallel, nil
	default:
		return Mode(-1), ErrModeUnknown
	}
}
