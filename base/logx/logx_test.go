// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, true))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, false))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestLevelFromString(t *testing.T) {
	l, err := LevelFromString("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)
	_, err = LevelFromString("loud")
	assert.Error(t, err)
}

func TestPlainHandler(t *testing.T) {
	defer UserLevel.Set(UserLevel.Level())
	UserLevel.Set(slog.LevelInfo)

	var buf bytes.Buffer
	logger := slog.New(NewPlainHandler(&buf))
	logger.Debug("hidden")
	logger.Warn("shown", "node", "T1")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "node=T1")
}
