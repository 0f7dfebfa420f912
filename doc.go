// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package execbatch runs one or more shell-style commands as child processes,
// streaming their output to caller-supplied callbacks and collecting the exit
// code of every command.
// Commands can be run sequentially (the default) or in parallel, and in both
// cases the returned results are ordered by input position, not by completion
// time.
// A failing child process is a normal outcome, reported as data in its slot of
// the result collection; the batch itself fails only for structurally invalid
// input.
package execbatch
