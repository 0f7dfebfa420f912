// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package execbatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/matt-FFFFFF/execbatch/internal/cmdline"
	"github.com/matt-FFFFFF/execbatch/internal/ctxlog"
)

const maxBufferSize = 8 * 1024 * 1024 // 8MB

var (
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrFailedToReadBuffer is returned when the buffer from the operating system pipe could not be read.
	ErrFailedToReadBuffer = errors.New("failed to read buffer")
	// ErrBufferOverflow is returned when the captured output exceeds the max size.
	ErrBufferOverflow = fmt.Errorf("output exceeds max size of %d bytes", maxBufferSize)
	// ErrKilled is returned when the process was killed due to context cancellation.
	ErrKilled = errors.New("process killed, context cancelled")
)

// execute spawns the process described by r, streams its output and resolves
// with its ExitInfo. A failed launch or tokenization failure resolves as an
// errored ExitInfo, never as a panic or batch failure.
func execute(ctx context.Context, r resolvedOptions) ExitInfo {
	logger := ctxlog.Logger(ctx).With("line", r.line)

	res := ExitInfo{
		Line: r.line,
	}

	if r.verbose {
		r.logger(r.line)
	}

	path, args, err := buildArgv(ctx, r)
	if err != nil {
		return complete(r, errored(res, err))
	}

	logger.Debug("command info", "path", path, "cwd", r.cwd, "args", args[1:])

	rOut, wOut, err := os.Pipe()
	if err != nil {
		return complete(r, errored(res, errors.Join(ErrFailedToCreatePipe, err)))
	}

	rErr, wErr, err := os.Pipe()
	if err != nil {
		closeAll(rOut, wOut)

		return complete(r, errored(res, errors.Join(ErrFailedToCreatePipe, err)))
	}

	stdin, closeStdin, err := stdinFile(r.stdin)
	if err != nil {
		closeAll(rOut, wOut, rErr, wErr)

		return complete(r, errored(res, err))
	}

	env := os.Environ()
	for k, v := range r.env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}

	// Only the allow-listed fields reach the OS: cwd, env, stdio, detached,
	// uid and gid. Callbacks, logger and mode stay on the orchestration side.
	attr := &os.ProcAttr{
		Dir:   r.cwd,
		Env:   env,
		Files: []*os.File{stdin, wOut, wErr},
		Sys:   sysProcAttr(r),
	}

	ps, err := os.StartProcess(path, args, attr)
	if err != nil {
		closeAll(rOut, wOut, rErr, wErr)
		closeStdin()

		return complete(r, errored(res, errors.Join(ErrCouldNotStartProcess, err)))
	}

	logger.Debug("process started", "pid", ps.Pid)

	// The child holds its own copies of the write ends; closing ours lets the
	// readers see EOF as soon as the child exits.
	_ = wOut.Close()
	_ = wErr.Close()

	outCh := make(chan streamResult, 1)
	errCh := make(chan streamResult, 1)

	go streamPipe(rOut, r.onOutput, r, outCh)
	go streamPipe(rErr, r.onErrorOutput, r, errCh)

	// Watchdog: kill the process if the context is cancelled before it exits.
	// It is the sole writer of killed and closes it on exit, so the receive
	// below synchronizes with it instead of racing it.
	done := make(chan struct{})
	killed := make(chan error, 1)

	go func() {
		defer close(killed)

		select {
		case <-ctx.Done():
			if killPs(ctx, ps) {
				killed <- errors.Join(ErrKilled, ctx.Err())
			}
		case <-done:
		}
	}()

	logger.Debug("waiting for process to finish")

	state, psErr := ps.Wait()
	close(done)
	closeStdin()

	out := <-outCh
	errOut := <-errCh
	killErr := <-killed

	res.ExitCode = state.ExitCode()
	res.Stdout = out.data
	res.Stderr = errOut.data
	res.Err = errors.Join(psErr, killErr, out.err, errOut.err)

	logger.Debug("process finished", "exitCode", res.ExitCode)

	if res.Err != nil {
		res.Errored = true
	}

	// A capture-side problem alone leaves the child's real exit code intact;
	// after a wait failure or a kill there is no meaningful code to report.
	if psErr != nil || killErr != nil {
		res.ExitCode = -1
	}

	return complete(r, res)
}

// buildArgv turns the resolved command line into an executable path and an
// argument vector. With a shell requested the line is handed to the shell
// verbatim; otherwise it is tokenized and the executable looked up in PATH.
func buildArgv(ctx context.Context, r resolvedOptions) (string, []string, error) {
	if r.shell != nil {
		shell := *r.shell
		if shell == "" {
			shell = defaultShell(ctx)
		}

		return shell, []string{shell, shellCommandSwitch, r.line}, nil
	}

	tokens, err := cmdline.Split(r.line)
	if err != nil {
		return "", nil, err
	}

	path := tokens[0]
	if !strings.ContainsRune(path, os.PathSeparator) {
		p, err := exec.LookPath(path)
		if err != nil {
			return "", nil, errors.Join(ErrCouldNotStartProcess, err)
		}

		path = p
	}

	return path, tokens, nil
}

// stdinFile maps the resolved stdin reader onto an *os.File for the spawn
// call. A non-file reader is bridged through a pipe; the returned closer
// releases whatever this created.
func stdinFile(stdin io.Reader) (*os.File, func(), error) {
	switch v := stdin.(type) {
	case nil:
		return os.Stdin, func() {}, nil
	case *os.File:
		return v, func() {}, nil
	default:
		rd, wr, err := os.Pipe()
		if err != nil {
			return nil, nil, errors.Join(ErrFailedToCreatePipe, err)
		}

		go func() {
			_, _ = io.Copy(wr, v)
			_ = wr.Close()
		}()

		return rd, func() { _ = rd.Close() }, nil
	}
}

type streamResult struct {
	data []byte
	err  error
}

// streamPipe reads pr until EOF, delivering every non-empty chunk to the
// callback (and the verbose logger) in arrival order, while keeping a capped
// capture of the whole stream. It always drains to EOF so the child never
// blocks on a full pipe.
func streamPipe(pr *os.File, deliver func(string), r resolvedOptions, ch chan<- streamResult) {
	var sr streamResult

	buf := make([]byte, 32*1024)

	for {
		n, err := pr.Read(buf)
		if n > 0 {
			chunk := string(buf[:n])

			if r.verbose {
				r.logger(chunk)
			}

			if deliver != nil {
				deliver(chunk)
			}

			switch {
			case len(sr.data)+n <= maxBufferSize:
				sr.data = append(sr.data, buf[:n]...)
			case len(sr.data) < maxBufferSize:
				sr.data = append(sr.data, buf[:maxBufferSize-len(sr.data)]...)
				sr.err = ErrBufferOverflow
			}
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				sr.err = errors.Join(sr.err, ErrFailedToReadBuffer, err)
			}

			break
		}
	}

	_ = pr.Close()
	ch <- sr
}

// complete fires the OnComplete callback, if any, and returns res.
func complete(r resolvedOptions, res ExitInfo) ExitInfo {
	if r.onComplete != nil {
		r.onComplete(res)
	}

	return res
}

func errored(res ExitInfo, err error) ExitInfo {
	res.ExitCode = -1
	res.Errored = true
	res.Err = err

	return res
}

func closeAll(files ...*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}

// killPs kills the process, tolerating one that has already finished, and
// reports whether the kill was actually delivered. A process that beat the
// cancellation to a normal exit must not be reported as killed.
func killPs(ctx context.Context, ps *os.Process) bool {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Logger(ctx).Debug("process already done", "pid", ps.Pid)
			return false
		}

		ctxlog.Logger(ctx).Error("process kill error", "pid", ps.Pid, "error", err)

		return false
	}

	ctxlog.Logger(ctx).Info("process killed", "pid", ps.Pid)

	return true
}
