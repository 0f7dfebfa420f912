// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"github.com/matt-FFFFFF/execbatch"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDefinition = `
mode: parallel
cwd: /tmp
env:
  FOO: bar
verbose: true
commands:
  - echo one
  - command_line: echo two
    cwd: /var
  - command_line: echo three
    shell: ""
`

func TestParse_Valid(t *testing.T) {
	cmds, opts, err := Parse([]byte(validDefinition))
	require.NoError(t, err)

	require.Len(t, cmds, 3)
	assert.Equal(t, "echo one", cmds[0].Line)
	assert.Empty(t, cmds[0].Cwd)
	assert.Equal(t, "echo two", cmds[1].Line)
	assert.Equal(t, "/var", cmds[1].Cwd)
	require.NotNil(t, cmds[2].Shell)
	assert.Equal(t, "", *cmds[2].Shell)

	assert.Equal(t, execbatch.Parallel, opts.Mode)
	assert.Equal(t, "/tmp", opts.Cwd)
	assert.Equal(t, map[string]string{"FOO": "bar"}, opts.Env)
	assert.True(t, opts.Verbose)
}

func TestParse_DefaultsToSequential(t *testing.T) {
	_, opts, err := Parse([]byte("commands:\n  - echo one\n"))
	require.NoError(t, err)
	assert.Equal(t, execbatch.Sequential, opts.Mode)
}

func TestParse_InvalidMode(t *testing.T) {
	_, _, err := Parse([]byte("mode: sideways\ncommands:\n  - echo one\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, execbatch.ErrModeUnknown)
}

func TestParse_NoCommands(t *testing.T) {
	_, _, err := Parse([]byte("mode: sequential\n"))
	assert.ErrorIs(t, err, ErrNoCommands)
}

func TestParse_AggregatesValidationErrors(t *testing.T) {
	def := `
mode: sideways
commands:
  - command_line: ""
  - echo ok
  - command_line: ""
`

	_, _, err := Parse([]byte(def))
	require.Error(t, err)
	assert.ErrorIs(t, err, execbatch.ErrModeUnknown)
	assert.ErrorIs(t, err, ErrEmptyCommandLine)
	assert.Contains(t, err.Error(), "command 0")
	assert.Contains(t, err.Error(), "command 2")
}

func TestParse_NotYAML(t *testing.T) {
	_, _, err := Parse([]byte("{{nope"))
	assert.ErrorIs(t, err, ErrUnmarshal)
}

func TestLoad(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/batch.yaml", []byte(validDefinition), 0o644))

	cmds, opts, err := Load(fsys, "/batch.yaml")
	require.NoError(t, err)
	assert.Len(t, cmds, 3)
	assert.Equal(t, execbatch.Parallel, opts.Mode)
}

func TestLoad_MissingFile(t *testing.T) {
	fsys := afero.NewMemMapFs()

	_, _, err := Load(fsys, "/missing.yaml")
	assert.ErrorIs(t, err, ErrReadFile)
}
