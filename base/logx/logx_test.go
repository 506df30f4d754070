// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, false))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, true))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestHandler(t *testing.T) {
	prev := UserLevel
	t.Cleanup(func() { UserLevel = prev })
	UserLevel = slog.LevelInfo

	var buf bytes.Buffer
	lg := slog.New(NewHandler(&buf))
	lg.Debug("this is debug")
	lg.Info("this is info")
	lg.Warn("this is warn")

	out := buf.String()
	assert.NotContains(t, out, "this is debug")
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "level=WARN")
}
