// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package execbatch

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteResults_Success(t *testing.T) {
	var buf bytes.Buffer

	results := BatchResult{
		{Line: "echo hello", ExitCode: 0},
	}

	require.NoError(t, WriteResults(&buf, results, nil))

	out := buf.String()
	assert.Contains(t, out, "echo hello")
	assert.NotContains(t, out, "exit code")
}

func TestWriteResults_NonZeroExit(t *testing.T) {
	var buf bytes.Buffer

	results := BatchResult{
		{Line: "false", ExitCode: 1, Stderr: []byte("went wrong\n")},
	}

	require.NoError(t, WriteResults(&buf, results, nil))

	out := buf.String()
	assert.Contains(t, out, "false")
	assert.Contains(t, out, "(exit code: 1)")
	assert.Contains(t, out, "went wrong")
}

func TestWriteResults_Errored(t *testing.T) {
	var buf bytes.Buffer

	results := BatchResult{
		{Line: "nope", ExitCode: -1, Errored: true, Err: errors.New("could not start")},
	}

	require.NoError(t, WriteResults(&buf, results, nil))

	out := buf.String()
	assert.Contains(t, out, "could not start")
	assert.Contains(t, out, "(exit code: -1)")
}

func TestWriteResults_SuccessDetails(t *testing.T) {
	var buf bytes.Buffer

	results := BatchResult{
		{Line: "echo hi", ExitCode: 0, Stdout: []byte("hi\n")},
	}

	opts := &OutputOptions{
		IncludeStdOut:      true,
		ShowSuccessDetails: true,
	}

	require.NoError(t, WriteResults(&buf, results, opts))
	assert.Contains(t, buf.String(), "hi")
	assert.Contains(t, buf.String(), "Output:")
}

func TestWriteResults_OmitsDetailsForSuccessByDefault(t *testing.T) {
	var buf bytes.Buffer

	results := BatchResult{
		{Line: "echo hi", ExitCode: 0, Stdout: []byte("hi\n"), Stderr: []byte("warn\n")},
	}

	require.NoError(t, WriteResults(&buf, results, nil))
	assert.NotContains(t, buf.String(), "warn")
}

func TestBatchResultHasError(t *testing.T) {
	assert.False(t, BatchResult{{ExitCode: 0}}.HasError())
	assert.True(t, BatchResult{{ExitCode: 0}, {ExitCode: 2}}.HasError())
	assert.True(t, BatchResult{{Errored: true, ExitCode: -1}}.HasError())
}
