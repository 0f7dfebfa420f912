// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config builds a batch of commands from a YAML definition file.
// The commands list is heterogeneous: an entry is either a bare string or a
// mapping with a command_line and per-command option overrides.
package config

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/execbatch"
	"github.com/spf13/afero"
)

var (
	// ErrReadFile is returned when the definition file cannot be read.
	ErrReadFile = errors.New("failed to read file")
	// ErrUnmarshal is returned when the definition file is not valid YAML.
	ErrUnmarshal = errors.New("failed to unmarshal definition")
	// ErrNoCommands is returned when the definition contains no commands.
	ErrNoCommands = errors.New("definition contains no commands")
	// ErrEmptyCommandLine is returned when a structured entry has no command_line.
	ErrEmptyCommandLine = errors.New("command_line must not be empty")
)

// Definition is the YAML definition for a batch.
type Definition struct {
	// Mode selects the scheduling policy, "sequential" or "parallel".
	Mode string `yaml:"mode,omitempty"`
	// Cwd is the default working directory for every command.
	Cwd string `yaml:"cwd,omitempty"`
	// Env holds additional environment variables for every command.
	Env map[string]string `yaml:"env,omitempty"`
	// Shell runs the commands through a shell; empty string means the host default.
	Shell *string `yaml:"shell,omitempty"`
	// Verbose echoes each command line and output chunk while running.
	Verbose bool `yaml:"verbose,omitempty"`
	// Commands is the list of commands to run.
	Commands []CommandDefinition `yaml:"commands"`
}

// CommandDefinition is one entry in the commands list. In YAML it may be a
// bare string (just the command line) or a mapping with overrides.
type CommandDefinition struct {
	CommandLine string            `yaml:"command_line"`
	Cwd         string            `yaml:"cwd,omitempty"`
	Env         map[string]string `yaml:"env,omitempty"`
	Shell       *string           `yaml:"shell,omitempty"`
	Detached    *bool             `yaml:"detached,omitempty"`
}

// UnmarshalYAML accepts either a scalar command line or the full mapping.
func (c *CommandDefinition) UnmarshalYAML(unmarshal func(any) error) error {
	var line string
	if err := unmarshal(&line); err == nil {
		c.CommandLine = line
		return nil
	}

	type plain CommandDefinition

	var p plain
	if err := unmarshal(&p); err != nil {
		return fmt.Errorf("%w: %w", ErrUnmarshal, err)
	}

	*c = CommandDefinition(p)

	return nil
}

// Load reads and parses the definition file at path.
func Load(fsys afero.Fs, path string) ([]execbatch.Command, *execbatch.Options, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, nil, errors.Join(ErrReadFile, err)
	}

	return Parse(data)
}

// Parse parses a YAML definition into the commands and options for
// execbatch.Run. Validation problems are aggregated so every bad entry is
// reported at once.
func Parse(data []byte) ([]execbatch.Command, *execbatch.Options, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUnmarshal, err)
	}

	var errs *multierror.Error

	opts := &execbatch.Options{
		Cwd:     def.Cwd,
		Env:     def.Env,
		Shell:   def.Shell,
		Verbose: def.Verbose,
	}

	if def.Mode != "" {
		mode, err := execbatch.NewMode(def.Mode)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%w: %q", err, def.Mode))
		} else {
			opts.Mode = mode
		}
	}

	if len(def.Commands) == 0 {
		errs = multierror.Append(errs, ErrNoCommands)
	}

	cmds := make([]execbatch.Command, 0, len(def.Commands))

	for i, entry := range def.Commands {
		if entry.CommandLine == "" {
			errs = multierror.Append(errs, fmt.Errorf("command %d: %w", i, ErrEmptyCommandLine))
			continue
		}

		cmds = append(cmds, execbatch.Command{
			Line:     entry.CommandLine,
			Cwd:      entry.Cwd,
			Env:      entry.Env,
			Shell:    entry.Shell,
			Detached: entry.Detached,
		})
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, nil, err
	}

	return cmds, opts, nil
}
