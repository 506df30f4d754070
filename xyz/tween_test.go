// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"testing"
	"time"

	"github.com/hepvis/eventdisplay/math32"
	"github.com/stretchr/testify/assert"
)

func TestTweens(t *testing.T) {
	var ts Tweens
	v := math32.Vec3(0, 0, 0)
	ts.Start(&v, math32.Vec3(10, 0, 0), time.Second)
	assert.Equal(t, 1, ts.Len())

	ts.Update(250 * time.Millisecond)
	assert.InDelta(t, 2.5, v.X, 1e-5)
	ts.Update(250 * time.Millisecond)
	assert.InDelta(t, 5, v.X, 1e-5)

	// a new tween on the same field starts from where the old one was
	tw := ts.Start(&v, math32.Vec3(5, 10, 0), time.Second)
	assert.Equal(t, 1, ts.Len())
	assert.Equal(t, math32.Vec3(5, 0, 0), tw.From)

	ts.Update(2 * time.Second)
	assert.Equal(t, math32.Vec3(5, 10, 0), v)
	assert.Equal(t, 0, ts.Len())
}

func TestTweenZeroDuration(t *testing.T) {
	var ts Tweens
	var v math32.Vector3
	ts.Start(&v, math32.Vec3(1, 2, 3), 0)
	ts.Update(0)
	assert.Equal(t, math32.Vec3(1, 2, 3), v)
	assert.Equal(t, 0, ts.Len())
}
