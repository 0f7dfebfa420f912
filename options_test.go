// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package execbatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func TestResolve_CwdOverlay(t *testing.T) {
	tests := []struct {
		name       string
		cmd        Command
		opts       Options
		defaultCwd string
		expected   string
	}{
		{
			name:       "default_when_nothing_set",
			cmd:        Command{Line: "true"},
			opts:       Options{},
			defaultCwd: "/home/someone",
			expected:   "/home/someone",
		},
		{
			name:       "global_overrides_default",
			cmd:        Command{Line: "true"},
			opts:       Options{Cwd: "/tmp"},
			defaultCwd: "/home/someone",
			expected:   "/tmp",
		},
		{
			name:       "command_overrides_global",
			cmd:        Command{Line: "true", Cwd: "/var"},
			opts:       Options{Cwd: "/tmp"},
			defaultCwd: "/home/someone",
			expected:   "/var",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := resolve(tt.cmd, &tt.opts, tt.defaultCwd)
			assert.Equal(t, tt.expected, r.cwd)
		})
	}
}

func TestResolve_LastNonAbsentWins(t *testing.T) {
	globalOut := func(string) {}
	localErr := func(string) {}

	opts := &Options{
		Env:           map[string]string{"A": "global"},
		Detached:      boolPtr(false),
		UID:           intPtr(1000),
		Shell:         strPtr("/bin/bash"),
		OnOutput:      globalOut,
		OnErrorOutput: nil,
	}

	cmd := Command{
		Line:          "true",
		Env:           map[string]string{"A": "local"},
		Detached:      boolPtr(true),
		Shell:         strPtr(""),
		OnErrorOutput: localErr,
	}

	r := resolve(cmd, opts, "/")

	assert.Equal(t, map[string]string{"A": "local"}, r.env)
	assert.True(t, r.detached, "command Detached should override the global value")
	assert.Equal(t, 1000, *r.uid, "global UID should apply when the command has none")
	assert.Equal(t, "", *r.shell, "command Shell should override the global value")
	assert.NotNil(t, r.onOutput, "global OnOutput should apply when the command has none")
	assert.NotNil(t, r.onErrorOutput)
}

func TestResolve_Defaults(t *testing.T) {
	r := resolve(Command{Line: "true"}, &Options{}, "/somewhere")

	assert.Equal(t, "/somewhere", r.cwd)
	assert.False(t, r.detached)
	assert.False(t, r.verbose)
	assert.Nil(t, r.shell)
	assert.Nil(t, r.uid)
	assert.Nil(t, r.gid)
	assert.NotNil(t, r.logger, "logger always resolves to a usable function")
}

func TestResolve_VerboseAndLogger(t *testing.T) {
	var got []string

	opts := &Options{
		Verbose: true,
		Logger:  func(s string) { got = append(got, s) },
	}

	r := resolve(Command{Line: "true"}, opts, "/")

	assert.True(t, r.verbose)

	r.logger("hello")
	assert.Equal(t, []string{"hello"}, got)
}
