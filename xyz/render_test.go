// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image"
	"image/color"
	"testing"

	"github.com/hepvis/eventdisplay/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	e := NewEngine(Options{Width: 64, Height: 48})
	nd := NewMeshNode("Box", NewBox(50, 50, 50), NewBasicMaterial(red))
	e.Register(nd)

	img := e.Tick(frame)
	require.Equal(t, image.Pt(64, 48), img.Bounds().Size())
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(32, 24))
	assert.Equal(t, LightBackground, img.RGBAAt(0, 0))

	e.DarkBackground(true)
	img = e.Render()
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(0, 0))

	require.NoError(t, e.SetVisibility("Box", false))
	img = e.Render()
	assert.Equal(t, DarkBackground, img.RGBAAt(32, 24))
}

func TestRenderLowerResolution(t *testing.T) {
	e := NewEngine(Options{Width: 64, Height: 48})
	e.Register(NewMeshNode("Box", NewBox(50, 50, 50), NewBasicMaterial(red)))
	e.LowerResolution(true)
	img := e.Render()
	assert.Equal(t, image.Pt(64, 48), img.Bounds().Size())
	c := img.RGBAAt(32, 24)
	assert.Greater(t, c.R, c.G)
}

func TestRenderShaded(t *testing.T) {
	e := NewEngine(Options{Width: 64, Height: 48})
	nd := NewMeshNode("Box", NewBox(50, 50, 50), NewPhongMaterial(color.RGBA{255, 255, 255, 255}))
	e.Register(nd)
	img := e.Render()
	c := img.RGBAAt(32, 24)
	// the front face is lit by the ambient light and the first
	// directional light, but is not saturated
	assert.Less(t, c.R, uint8(255))
	assert.Greater(t, c.R, uint8(0x40))
	assert.Equal(t, c.R, c.G)
}

func TestRenderClipping(t *testing.T) {
	e := NewEngine(Options{Width: 64, Height: 48})
	nd := NewMeshNode("Box", NewBox(50, 50, 50), NewBasicMaterial(red))
	nd.Material.ClipPlanes = e.ClipPlanes()
	nd.Material.ClipIntersection = true
	nd.Pose.Pos = math32.Vec3(-30, 30, 0)
	e.Register(nd)
	e.SetCameraPosition([3]float32{-30, 30, 200})()
	e.ActiveControls().Target = math32.Vec3(-30, 30, 0)
	e.Step(CameraTweenDuration)

	img := e.Render()
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(32, 24))
	e.SetClippingEnabled(true)
	img = e.Render()
	assert.Equal(t, LightBackground, img.RGBAAt(32, 24))
}

func TestSetAxis(t *testing.T) {
	e := NewEngine(Options{AllowShowAxes: true})
	axes := e.Scene.Root.ChildByName(AxesName)
	require.NotNil(t, axes)
	assert.True(t, axes.Visible)
	assert.Len(t, axes.Children, 3)
	e.SetAxis(false)
	assert.Same(t, axes, e.Scene.Root.ChildByName(AxesName))
	assert.False(t, axes.Visible)
	assert.Nil(t, e.Object(AxesName))
}
