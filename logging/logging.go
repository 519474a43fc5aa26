// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging provides the leveled logger used by the simulation
// driver, the recorder and the run store.  The numerical packages never log.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// LevelTrace is below Debug, for per-stimulus and per-sample detail
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps a level name to a slog.Level.
// Supported values: "error", "warn", "info", "debug", "trace" (case-insensitive).
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "error":
		return slog.LevelError
	case "warn":
		return slog.LevelWarn
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// ValidLevel reports whether s names a level ("" counts as info)
func ValidLevel(s string) bool {
	switch strings.ToLower(s) {
	case "", "error", "warn", "info", "debug", "trace":
		return true
	}
	return false
}

// NewLogger returns a leveled text logger writing to w
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// OrDiscard returns lg, or a logger that drops everything if lg is nil
func OrDiscard(lg *slog.Logger) *slog.Logger {
	if lg != nil {
		return lg
	}
	return slog.New(slog.DiscardHandler)
}
