// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/execbatch/internal/ctxlog"
)

// exit is stubbed in tests.
var exit = os.Exit

// Watch monitors the signal channel and handles signals.
// The first signal of a given type cancels the context so running commands
// are killed and their results reported. A second signal of the same type
// terminates the process immediately.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	sigMap := make(map[os.Signal]struct{})

	for sig := range sigCh {
		if _, ok := sigMap[sig]; ok {
			ctxlog.Logger(ctx).Info("watchdog", "detail", "received second signal of type, terminating", "signal", sig.String())
			exit(1)

			return
		}

		ctxlog.Logger(ctx).Info("watchdog", "detail", "received first signal of type, cancelling", "signal", sig.String())

		sigMap[sig] = struct{}{}

		cancel()
	}
}
