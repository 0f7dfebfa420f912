// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdline splits a shell-style command line into tokens.
// A token is either a maximal run of non-whitespace, non-quote characters, or
// a double-quoted span. Quotes wrapping a span are stripped; a quote escaped
// with a backslash inside a span is kept literally. No other shell syntax is
// interpreted: no pipes, redirects, globbing or variable expansion.
package cmdline

import (
	"errors"
	"unicode"
)

var (
	// ErrEmptyCommand is returned when the command line contains no tokens.
	ErrEmptyCommand = errors.New("command line is empty")
	// ErrUnterminatedQuote is returned when a double-quoted span is not closed.
	ErrUnterminatedQuote = errors.New("unterminated double quote")
)

// Split tokenizes line. The first token is the executable name, the rest are
// its arguments.
func Split(line string) ([]string, error) {
	var tokens []string

	runes := []rune(line)

	for i := 0; i < len(runes); {
		switch {
		case unicode.IsSpace(runes[i]):
			i++

		case runes[i] == '"':
			token, next, err := quotedSpan(runes, i)
			if err != nil {
				return nil, err
			}

			tokens = append(tokens, token)
			i = next

		default:
			start := i
			for i < len(runes) && !unicode.IsSpace(runes[i]) && runes[i] != '"' {
				i++
			}

			tokens = append(tokens, string(runes[start:i]))
		}
	}

	if len(tokens) == 0 {
		return nil, ErrEmptyCommand
	}

	return tokens, nil
}

// quotedSpan reads the double-quoted span starting at the opening quote at
// runes[start]. It returns the span's text with the wrapping quotes stripped
// and the index just past the closing quote.
func quotedSpan(runes []rune, start int) (string, int, error) {
	var sb []rune

	for i := start + 1; i < len(runes); i++ {
		switch {
		case runes[i] == '\\' && i+1 < len(runes) && runes[i+1] == '"':
			sb = append(sb, '"')
			i++

		case runes[i] == '"':
			return string(sb), i + 1, nil

		default:
			sb = append(sb, runes[i])
		}
	}

	return "", 0, ErrUnterminatedQuote
}
