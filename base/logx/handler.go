// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// levelColors are the ANSI colors used for level labels.
var levelColors = map[slog.Level]string{
	slog.LevelDebug: "8",
	slog.LevelInfo:  "4",
	slog.LevelWarn:  "3",
	slog.LevelError: "1",
}

// NewHandler returns a new text [slog.Handler] writing to w at
// [UserLevel], with level labels colored when w is a terminal
// that supports color.
func NewHandler(w io.Writer) slog.Handler {
	out := termenv.NewOutput(w)
	colored := out.ColorProfile() != termenv.Ascii
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: UserLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if !colored || len(groups) > 0 || a.Key != slog.LevelKey {
				return a
			}
			lvl, ok := a.Value.Any().(slog.Level)
			if !ok {
				return a
			}
			c, ok := levelColors[lvl]
			if !ok {
				return a
			}
			return slog.String(a.Key, out.String(lvl.String()).Foreground(out.Color(c)).Bold().String())
		},
	})
}

// SetDefaultLogger sets the default logger to one writing to
// [os.Stderr] at [UserLevel], as returned by [NewHandler].
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr)))
}
