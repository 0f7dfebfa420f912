// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package execbatch

import (
	"io"
	"os"
	"slices"
)

// ExitInfo is the outcome of one spawned process. It is produced exactly once
// per command, whether the process ran to completion or failed to launch.
type ExitInfo struct {
	ExitCode int    // Exit code of the process, -1 if it could not be determined.
	Errored  bool   // True if the command failed before or outside of a normal exit.
	Err      error  // Launch, kill or capture error, nil when nothing went wrong.
	Stdout   []byte // Captured stdout, capped at maxBufferSize.
	Stderr   []byte // Captured stderr, capped at maxBufferSize.
	Line     string // The command line this result belongs to.
}

// BatchResult is the ordered outcome of a batch: one ExitInfo per input
// command, in input order, regardless of scheduling mode or completion order.
type BatchResult []ExitInfo

// HasError reports whether any command errored or exited non-zero.
func (r BatchResult) HasError() bool {
	for v := range slices.Values(r) {
		if v.Errored || v.ExitCode != 0 {
			return true
		}
	}

	return false
}

// Print outputs the results to stdout with default options.
func (r BatchResult) Print() error {
	return WriteResults(os.Stdout, r, nil)
}

// Write outputs the results to the specified writer with default options.
func (r BatchResult) Write(w io.Writer) error {
	return WriteResults(w, r, nil)
}

// WriteWithOptions outputs the results to the specified writer with the
// specified options.
func (r BatchResult) WriteWithOptions(w io.Writer, options *OutputOptions) error {
	return WriteResults(w, r, options)
}
