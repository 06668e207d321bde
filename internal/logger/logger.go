// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package logger provides the structured logger used throughout mapviewer.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps a slog.Logger so that packages depend on a single logger type.
type Logger struct {
	*slog.Logger
}

// New returns a Logger writing text records to stderr.
func New(level slog.Level) *Logger {
	return NewLogger(level, os.Stderr)
}

// NewLogger returns a Logger writing text records to the first given output. If no
// output is given, stderr is used.
func NewLogger(level slog.Level, output ...io.Writer) *Logger {
	var out io.Writer = os.Stderr
	if len(output) > 0 && output[0] != nil {
		out = output[0]
	}
	return &Logger{slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))}
}

// Err returns a slog attribute for the given error.
func Err(err error) slog.Attr {
	return slog.Any("error", err)
}
