// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package execbatch

import (
	"fmt"
	"io"
	"maps"
)

// Command describes a single command to run, together with any per-command
// option overrides. Only Line is required.
type Command struct {
	Line          string            // The literal command line, e.g. `echo "hello world"`.
	Cwd           string            // Working directory for the command.
	Env           map[string]string // Additional environment variables for the command.
	Stdin         io.Reader         // Standard input for the command, defaults to the parent's stdin.
	Detached      *bool             // Run the command in its own session.
	UID           *int              // User id to run the command as.
	GID           *int              // Group id to run the command as.
	Shell         *string           // Nil runs the executable directly; empty string uses the host default shell; otherwise the shell executable to use.
	OnOutput      func(string)      // Called once per stdout chunk, in arrival order.
	OnErrorOutput func(string)      // Called once per stderr chunk, in arrival order.
	OnComplete    func(ExitInfo)    // Called once when the process closes or fails to launch.
}

// Options holds batch-wide defaults for every field of Command (except Line)
// plus the orchestration-only settings. Any zero/nil field falls back to the
// built-in defaults; any field set on an individual Command wins over the
// value here.
type Options struct {
	Cwd           string
	Env           map[string]string
	Stdin         io.Reader
	Detached      *bool
	UID           *int
	GID           *int
	Shell         *string
	OnOutput      func(string)
	OnErrorOutput func(string)
	OnComplete    func(ExitInfo)

	// Verbose logs the command line before each spawn and every output chunk
	// via Logger, in addition to the normal callback delivery.
	Verbose bool
	// Logger receives verbose trace lines. Defaults to a line printer on stdout.
	Logger func(string)
	// Mode selects the scheduling policy. Defaults to Sequential.
	Mode Mode
}

// resolvedOptions is the effective configuration for one command, computed
// fresh at dispatch time by overlaying defaults, batch options and the
// command's own fields. Never mutated after resolve.
type resolvedOptions struct {
	line          string
	cwd           string
	env           map[string]string
	stdin         io.Reader
	detached      bool
	uid           *int
	gid           *int
	shell         *string
	onOutput      func(string)
	onErrorOutput func(string)
	onComplete    func(ExitInfo)
	verbose       bool
	logger        func(string)
}

// defaultLogger prints one line per message to stdout.
func defaultLogger(msg string) {
	fmt.Println(msg)
}

// resolve overlays the three option layers for a single command: built-in
// defaults first, then the batch options, then the command's own fields.
// The last non-absent value wins, field by field.
func resolve(cmd Command, opts *Options, defaultCwd string) resolvedOptions {
	r := resolvedOptions{
		line:    cmd.Line,
		cwd:     defaultCwd,
		verbose: opts.Verbose,
		logger:  defaultLogger,
	}

	if opts.Logger != nil {
		r.logger = opts.Logger
	}

	if opts.Cwd != "" {
		r.cwd = opts.Cwd
	}

	if cmd.Cwd != "" {
		r.cwd = cmd.Cwd
	}

	r.env = maps.Clone(opts.Env)
	if cmd.Env != nil {
		r.env = maps.Clone(cmd.Env)
	}

	r.stdin = opts.Stdin
	if cmd.Stdin != nil {
		r.stdin = cmd.Stdin
	}

	if opts.Detached != nil {
		r.detached = *opts.Detached
	}

	if cmd.Detached != nil {
		r.detached = *cmd.Detached
	}

	r.uid = opts.UID
	if cmd.UID != nil {
		r.uid = cmd.UID
	}

	r.gid = opts.GID
	if cmd.GID != nil {
		r.gid = cmd.GID
	}

	r.shell = opts.Shell
	if cmd.Shell != nil {
		r.shell = cmd.Shell
	}

	r.onOutput = opts.OnOutput
	if cmd.OnOutput != nil {
		r.onOutput = cmd.OnOutput
	}

	r.onErrorOutput = opts.OnErrorOutput
	if cmd.OnErrorOutput != nil {
		r.onErrorOutput = cmd.OnErrorOutput
	}

	r.onComplete = opts.OnComplete
	if cmd.OnComplete != nil {
		r.onComplete = cmd.OnComplete
	}

	return r
}
