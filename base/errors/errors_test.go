// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLog(t *testing.T) {
	buf := captureLog(t)
	assert.NoError(t, Log(nil))
	assert.Empty(t, buf.String())

	err := fmt.Errorf("wrapped: %w", New("boom"))
	assert.Equal(t, err, Log(err))
	assert.Contains(t, buf.String(), "wrapped: boom")
	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestLog1(t *testing.T) {
	buf := captureLog(t)
	assert.Equal(t, 3, Log1(3, nil))
	assert.Equal(t, 0, Log1(0, New("bad")))
	assert.Contains(t, buf.String(), "bad")
}

func TestWarn(t *testing.T) {
	buf := captureLog(t)
	Warn(New("careful"))
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestMust(t *testing.T) {
	assert.Panics(t, func() { Must(New("x")) })
	assert.NotPanics(t, func() { Must(nil) })
	assert.Equal(t, "ok", Must1("ok", nil))
}
