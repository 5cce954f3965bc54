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

// SetDefaultLogger sets the default logger to one that writes
// to [os.Stderr] at [UserLevel], with colored level names
// when stderr is a terminal.
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(termenv.NewOutput(os.Stderr))))
}

// NewHandler returns a text [slog.Handler] writing to the given
// termenv output at [UserLevel]. Level names are colored according
// to the color profile of the output; a plain writer can be used
// through [NewPlainHandler].
func NewHandler(out *termenv.Output) slog.Handler {
	return slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: UserLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key != slog.LevelKey || len(groups) > 0 {
				return a
			}
			if l, ok := a.Value.Any().(slog.Level); ok {
				a.Value = slog.StringValue(LevelString(out, l))
			}
			return a
		},
	})
}

// NewPlainHandler returns a handler like [NewHandler] without any colors.
func NewPlainHandler(w io.Writer) slog.Handler {
	return NewHandler(termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii)))
}

// LevelString returns the name of the given level, styled for the output.
func LevelString(out *termenv.Output, l slog.Level) string {
	s := out.String(l.String())
	switch {
	case l >= slog.LevelError:
		s = s.Foreground(termenv.ANSIRed).Bold()
	case l >= slog.LevelWarn:
		s = s.Foreground(termenv.ANSIYellow)
	case l >= slog.LevelInfo:
		s = s.Foreground(termenv.ANSICyan)
	default:
		s = s.Foreground(termenv.ANSIBrightBlack)
	}
	return s.String()
}
