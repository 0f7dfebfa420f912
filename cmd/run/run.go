// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run implements the run subcommand.
package run

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/execbatch"
	"github.com/matt-FFFFFF/execbatch/internal/config"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	fileArg                  = "file"
	parallelFlag             = "parallel"
	verboseFlag              = "verbose"
	outputStdErrFlag         = "output-stderr"
	outputStdOutFlag         = "output-stdout"
	outputSuccessDetailsFlag = "output-success-details"
)

// fs is stubbed in tests.
var fs = afero.NewOsFs()

// RunCmd is the command that runs a batch of commands defined in a YAML file.
var RunCmd = &cli.Command{
	Name:        "run",
	Description: "Run a command or batch of commands defined in a YAML file.",
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      fileArg,
			UsageText: "YAMLFILE",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
	},
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:        parallelFlag,
			Aliases:     []string{"p"},
			Usage:       "Run all commands concurrently instead of one at a time",
			DefaultText: "false",
			Value:       false,
		},
		&cli.BoolFlag{
			Name:        verboseFlag,
			Aliases:     []string{"v"},
			Usage:       "Echo each command line and output chunk while running",
			DefaultText: "false",
			Value:       false,
		},
		&cli.BoolFlag{
			Name:        outputSuccessDetailsFlag,
			Aliases:     []string{"success"},
			Usage:       "Include successful results in the output",
			DefaultText: "false",
			Value:       false,
		},
		&cli.BoolFlag{
			Name:        outputStdErrFlag,
			Aliases:     []string{"stderr"},
			Usage:       "Include stderr output in the results",
			Value:       true,
			DefaultText: "true",
		},
		&cli.BoolFlag{
			Name:        outputStdOutFlag,
			Aliases:     []string{"stdout"},
			Usage:       "Include stdout output in the results",
			DefaultText: "false",
			Value:       false,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	yamlFileName := cmd.StringArg(fileArg)
	if yamlFileName == "" {
		return cli.Exit("Please provide a YAML file to run", 1)
	}

	cmds, opts, err := config.Load(fs, yamlFileName)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to load batch from %s: %s", yamlFileName, err.Error()), 1)
	}

	if cmd.Bool(parallelFlag) {
		opts.Mode = execbatch.Parallel
	}

	if cmd.Bool(verboseFlag) {
		opts.Verbose = true
	}

	res, err := execbatch.Run(ctx, cmds, opts)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to run batch: %s", err.Error()), 1)
	}

	outOpts := execbatch.DefaultOutputOptions()
	outOpts.IncludeStdErr = cmd.Bool(outputStdErrFlag)
	outOpts.IncludeStdOut = cmd.Bool(outputStdOutFlag)
	outOpts.ShowSuccessDetails = cmd.Bool(outputSuccessDetailsFlag)

	if err := res.WriteWithOptions(cmd.Root().Writer, outOpts); err != nil {
		return cli.Exit(fmt.Sprintf("failed to write results: %s", err.Error()), 1)
	}

	if res.HasError() {
		return cli.Exit("batch finished with failures", 1)
	}

	return nil
}
