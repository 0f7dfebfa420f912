// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package execbatch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/execbatch/internal/ctxlog"
)

var (
	// ErrInvalidInput is returned when the commands argument has an
	// unsupported shape. It is the only way a batch can fail as a whole:
	// individual command failures are reported inside their ExitInfo slot.
	ErrInvalidInput = errors.New("invalid commands argument")
	// ErrNotDispatched is the ExitInfo error for commands that were never
	// dispatched because the context was cancelled mid-batch.
	ErrNotDispatched = errors.New("command not dispatched")
)

// getwd and spawn are stubbed in tests.
var (
	getwd = os.Getwd
	spawn = execute
)

// Run executes commands under the scheduling policy in opts and returns one
// ExitInfo per command, ordered by input position.
//
// commands may be a string, a Command, a *Command, or a slice of any mix of
// those ([]string, []Command and []any are all accepted). Any other shape
// fails with ErrInvalidInput before anything is spawned.
//
// A nil opts runs everything with the defaults: sequential scheduling,
// the parent's working directory and no callbacks.
func Run(ctx context.Context, commands any, opts *Options) (BatchResult, error) {
	cmds, err := normalize(commands)
	if err != nil {
		return nil, err
	}

	if opts == nil {
		opts = &Options{}
	}

	// The cwd default is snapshotted once per batch, so commands without an
	// explicit cwd share one value even if the parent chdirs mid-run.
	defaultCwd, err := getwd()
	if err != nil {
		defaultCwd = ""
	}

	logger := ctxlog.Logger(ctx).With("mode", opts.Mode.String())
	logger.Debug("running batch", "commands", len(cmds))

	if opts.Mode == Parallel {
		return runParallel(ctx, cmds, opts, defaultCwd), nil
	}

	return runSequential(ctx, cmds, opts, defaultCwd), nil
}

// normalize turns the loosely-shaped commands argument into a []Command.
func normalize(commands any) ([]Command, error) {
	switch v := commands.(type) {
	case string:
		return []Command{{Line: v}}, nil
	case Command:
		return []Command{v}, nil
	case *Command:
		if v == nil {
			return nil, fmt.Errorf("%w: nil *Command", ErrInvalidInput)
		}

		return []Command{*v}, nil
	case []string:
		cmds := make([]Command, 0, len(v))
		for _, s := range v {
			cmds = append(cmds, Command{Line: s})
		}

		return cmds, nil
	case []Command:
		return v, nil
	case []any:
		return normalizeSlice(v)
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrInvalidInput)
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrInvalidInput, commands)
	}
}

// normalizeSlice normalizes a heterogeneous slice element-wise, aggregating
// the shape errors so the caller sees every bad element at once.
func normalizeSlice(elems []any) ([]Command, error) {
	var errs *multierror.Error

	cmds := make([]Command, 0, len(elems))

	for i, e := range elems {
		switch v := e.(type) {
		case string:
			cmds = append(cmds, Command{Line: v})
		case Command:
			cmds = append(cmds, v)
		case *Command:
			if v == nil {
				errs = multierror.Append(errs, fmt.Errorf("%w: element %d is a nil *Command", ErrInvalidInput, i))
				continue
			}

			cmds = append(cmds, *v)
		default:
			errs = multierror.Append(errs, fmt.Errorf("%w: element %d has unsupported type %T", ErrInvalidInput, i, e))
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return cmds, nil
}

// runSequential dispatches commands strictly one at a time, in input order.
// The next command is not dispatched until the previous one has resolved,
// whatever its outcome.
func runSequential(ctx context.Context, cmds []Command, opts *Options, defaultCwd string) BatchResult {
	results := make(BatchResult, 0, len(cmds))

	for _, cmd := range cmds {
		select {
		case <-ctx.Done():
			results = append(results, ExitInfo{
				ExitCode: -1,
				Errored:  true,
				Err:      errors.Join(ErrNotDispatched, ctx.Err()),
				Line:     cmd.Line,
			})
		default:
			results = append(results, spawn(ctx, resolve(cmd, opts, defaultCwd)))
		}
	}

	return results
}

// runParallel dispatches every command concurrently, in input order, and
// waits for all of them. Results are placed by input index, so the returned
// order is positional even though completion order is OS-scheduled.
func runParallel(ctx context.Context, cmds []Command, opts *Options, defaultCwd string) BatchResult {
	results := make(BatchResult, len(cmds))
	wg := &sync.WaitGroup{}

	for i, cmd := range cmds {
		resolved := resolve(cmd, opts, defaultCwd)

		wg.Add(1)

		go func(i int, r resolvedOptions) {
			defer wg.Done()

			results[i] = spawn(ctx, r)
		}(i, resolved)
	}

	wg.Wait()

	return results
}
