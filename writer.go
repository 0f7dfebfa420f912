// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package execbatch

import (
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/execbatch/internal/color"
)

// OutputOptions controls what is included in the output.
type OutputOptions struct {
	IncludeStdOut      bool // Whether to include captured stdout in the output
	IncludeStdErr      bool // Whether to include captured stderr in the output
	ShowSuccessDetails bool // Whether to show details for successful commands
}

// DefaultOutputOptions returns a default set of output options.
func DefaultOutputOptions() *OutputOptions {
	return &OutputOptions{
		IncludeStdOut:      false,
		IncludeStdErr:      true,
		ShowSuccessDetails: false,
	}
}

// WriteResults writes one formatted status line per command to w, with
// optional captured output for failed (or, when asked, all) commands.
func WriteResults(w io.Writer, results BatchResult, options *OutputOptions) error {
	if options == nil {
		options = DefaultOutputOptions()
	}

	for _, res := range results {
		if err := writeResult(w, res, options); err != nil {
			return err
		}
	}

	return nil
}

func writeResult(w io.Writer, res ExitInfo, options *OutputOptions) error {
	var statusStr, labelPrefix string

	switch {
	case res.Errored:
		statusStr = color.Colorize("✗", color.FgRed)
		labelPrefix = color.ControlString(color.Bold, color.FgRed)
	case res.ExitCode != 0:
		statusStr = color.Colorize("✗", color.FgYellow)
		labelPrefix = color.ControlString(color.Bold, color.FgYellow)
	default:
		statusStr = color.Colorize("✓", color.FgGreen)
		labelPrefix = color.ControlString(color.Bold, color.FgGreen)
	}

	label := res.Line
	if label == "" {
		label = "[unnamed]"
	}

	if _, err := fmt.Fprintf(
		w,
		"%s %s%s%s",
		statusStr,
		labelPrefix,
		label,
		color.ControlString(color.Reset),
	); err != nil {
		return err
	}

	if res.ExitCode != 0 {
		fmt.Fprintf(w, " (exit code: %d)", res.ExitCode) // nolint:errcheck
	}

	fmt.Fprintln(w) // nolint:errcheck

	if res.Err != nil {
		fmt.Fprintf( // nolint:errcheck
			w,
			"  %s %s%s\n",
			color.ColorizeNoReset("➜ Error:", color.FgRed),
			res.Err.Error(),
			color.ControlString(color.Reset),
		)
	}

	showDetails := res.Errored || res.ExitCode != 0 || options.ShowSuccessDetails

	if showDetails && options.IncludeStdOut && len(res.Stdout) > 0 {
		fmt.Fprint(w, "  ➜ Output:\n")                   // nolint:errcheck
		fmt.Fprint(w, formatOutput(res.Stdout, "     ")) // nolint:errcheck
	}

	if showDetails && options.IncludeStdErr && len(res.Stderr) > 0 {
		fmt.Fprintf(w, "  %s\n", color.Colorize("➜ Error Output:", color.FgHiRed)) // nolint:errcheck
		fmt.Fprint(w, formatOutput(res.Stderr, "     "))                           // nolint:errcheck
	}

	return nil
}

// formatOutput formats multi-line output with proper indentation.
func formatOutput(output []byte, indent string) string {
	sb := strings.Builder{}
	lines := strings.Split(string(output), "\n")
	sb.Grow(len(output) + len(lines)*len(indent))

	for _, line := range lines {
		if line == "" {
			sb.WriteString("\n")
			continue
		}

		sb.WriteString(indent)
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}
