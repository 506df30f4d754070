// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEngineDefaults(t *testing.T) {
	e := NewEngine(Options{})
	assert.Equal(t, 1280, e.Options.Width)
	assert.Equal(t, 720, e.Options.Height)
	assert.Equal(t, float32(DefaultLinePrecision), e.Options.LinePrecision)
	assert.Equal(t, float32(DefaultDampingFactor), e.ActiveControls().DampingFactor)
	assert.False(t, e.IsOrthographic())
	assert.Equal(t, 3, e.Scene.Lights.Len())
	assert.Nil(t, e.Scene.Root.ChildByName(AxesName))
	assert.False(t, e.ClippingEnabled())
}

func TestPost(t *testing.T) {
	e := NewEngine(Options{})
	var wg sync.WaitGroup
	var ran []int
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Post(func() { ran = append(ran, i) })
		}()
	}
	wg.Wait()
	assert.Empty(t, ran)
	e.Step(frame)
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, ran)
	e.Step(frame)
	assert.Len(t, ran, 4)
}
