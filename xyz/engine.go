// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xyz is the scene engine of the event display: a scene graph of
// detector geometry and event data addressed by name, procedural detector
// geometry, mesh import, perspective and orthographic cameras with orbit
// controls, clipping planes, picking and software rendering.
//
// All engine state lives in an [Engine]. Frames are produced by calling
// [Engine.Tick] on a single goroutine; other goroutines hand work to that
// goroutine with [Engine.Post].
package xyz

import (
	"image"
	"sync"
	"time"

	"github.com/hepvis/eventdisplay/base/iox/imagex"
	"github.com/hepvis/eventdisplay/colors"
	"github.com/hepvis/eventdisplay/math32"
)

// Options are the settings of an [Engine].
type Options struct {

	// Width and Height are the size of the rendered frames in pixels.
	Width, Height int

	// LinePrecision is the maximum distance in world units between
	// a pick ray and a line for the line to be picked.
	LinePrecision float32

	// DampingFactor is the damping factor of the orbit controls.
	DampingFactor float32

	// DisableSelecting turns picking off.
	DisableSelecting bool

	// AllowShowAxes shows the axes helper from the start.
	AllowShowAxes bool
}

// Defaults sets the default options.
func (o *Options) Defaults() {
	o.Width = 1280
	o.Height = 720
	o.LinePrecision = DefaultLinePrecision
	o.DampingFactor = DefaultDampingFactor
}

// AxesName is the name of the axes helper node.
const AxesName = "Axes"

// AxesLength is the length of each axis of the axes helper.
const AxesLength = 2000

// Engine holds the whole state of an event display scene.
// Its methods are safe to call from multiple goroutines:
// scene changes and rendering are mutually exclusive.
type Engine struct {

	// Options are the engine settings.
	Options Options

	// Scene is the scene graph, replaced when importing a scene document.
	Scene *Scene

	// Registry indexes the addressable objects of the scene by name.
	Registry Registry

	// Fetcher fetches mesh files for [Engine.ImportByPath].
	Fetcher Fetcher

	// OnImport, if set, is called when a mesh import completes,
	// with a nil node and the error if it failed.
	OnImport func(name string, nd *Node, err error)

	// RenderMu guards the scene, the registry and the cameras.
	RenderMu sync.RWMutex

	perspControls   *OrbitControls
	orthoControls   *OrbitControls
	activeControls  *OrbitControls
	clipPlanes      [3]*ClipPlane
	clippingEnabled bool
	tweens          Tweens
	eventData       *Node
	detectorCount   int
	axes            *Node
	lowerResolution bool
	renderer        Renderer

	postMu sync.Mutex
	posted []func()
}

// NewEngine returns a new engine with the given options, an empty
// scene with default lights, and the perspective camera active.
func NewEngine(opts Options) *Engine {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.LinePrecision <= 0 {
		opts.LinePrecision = DefaultLinePrecision
	}
	if opts.DampingFactor <= 0 {
		opts.DampingFactor = DefaultDampingFactor
	}
	e := &Engine{Options: opts, Scene: NewScene(), clipPlanes: newClipPlanes()}
	w, h := float32(opts.Width), float32(opts.Height)
	e.perspControls = NewOrbitControls(NewPerspectiveCamera(w, h))
	e.orthoControls = NewOrbitControls(NewOrthographicCamera(w, h))
	for _, oc := range []*OrbitControls{e.perspControls, e.orthoControls} {
		oc.DampingFactor = opts.DampingFactor
	}
	e.activeControls = e.perspControls
	e.renderer.Clip = e.isClipped
	if opts.AllowShowAxes {
		e.SetAxis(true)
	}
	return e
}

// Post queues the given function to run on the goroutine calling
// [Engine.Tick], at the start of the next tick. It can be called
// from any goroutine.
func (e *Engine) Post(fun func()) {
	e.postMu.Lock()
	e.posted = append(e.posted, fun)
	e.postMu.Unlock()
}

// runPosted runs and removes the queued functions.
func (e *Engine) runPosted() {
	e.postMu.Lock()
	funs := e.posted
	e.posted = nil
	e.postMu.Unlock()
	for _, fun := range funs {
		fun()
	}
}

// Step advances the engine by the given elapsed time without rendering:
// it runs posted functions, advances camera transitions and applies
// orbit control motion.
func (e *Engine) Step(dt time.Duration) {
	e.runPosted()
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	e.tweens.Update(dt)
	e.activeControls.Update(dt)
}

// Tick advances the engine by the given elapsed time as [Engine.Step]
// does, then renders one frame from the active camera.
func (e *Engine) Tick(dt time.Duration) *image.RGBA {
	e.Step(dt)
	return e.Render()
}

// Render renders one frame of the scene from the active camera.
func (e *Engine) Render() *image.RGBA {
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	full := image.Pt(e.Options.Width, e.Options.Height)
	e.renderer.Size = full
	e.renderer.LineScale = 1
	if e.lowerResolution {
		e.renderer.Size = image.Pt(full.X/2, full.Y/2)
		e.renderer.LineScale = 0.5
	}
	e.Scene.UpdateWorldMatrices()
	img := e.renderer.Render(e.Scene, e.activeControls.Camera)
	if e.lowerResolution && img.Bounds().Size() != full {
		return imagex.Resize(img, full)
	}
	return img
}

// LowerResolution sets rendering at half resolution, upscaled
// to the full frame size.
func (e *Engine) LowerResolution(on bool) {
	e.RenderMu.Lock()
	e.lowerResolution = on
	e.RenderMu.Unlock()
}

// DarkBackground sets a dark background if on, and the default
// light background otherwise.
func (e *Engine) DarkBackground(on bool) {
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	e.Scene.BackgroundColor = LightBackground
	if on {
		e.Scene.BackgroundColor = DarkBackground
	}
}

// SetAxis shows or hides the axes helper, creating it the first time.
func (e *Engine) SetAxis(on bool) {
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	if e.axes == nil || e.axes.Parent != e.Scene.Root {
		e.axes = NewAxes(AxesLength)
		e.Scene.Add(e.axes)
	}
	e.axes.Visible = on
}

// NewAxes returns a group of three lines of the given length along
// the positive X, Y and Z axes, colored red, green and blue.
func NewAxes(length float32) *Node {
	gp := NewGroup(AxesName)
	axes := []struct {
		name string
		dir  math32.Vector3
		clr  uint32
	}{
		{"X", math32.Vec3(1, 0, 0), 0xff0000},
		{"Y", math32.Vec3(0, 1, 0), 0x00ff00},
		{"Z", math32.Vec3(0, 0, 1), 0x0000ff},
	}
	for _, ax := range axes {
		ms := &Mesh{Name: AxesName + ax.name, Mode: Lines, Positions: []math32.Vector3{{}, ax.dir.MulScalar(length)}}
		gp.AddChild(NewLineNode(AxesName+ax.name, ms, NewLineBasicMaterial(colors.FromInt(ax.clr), 1)))
	}
	return gp
}

// ReplaceScene replaces the scene and the registered objects with
// the given scene and objects, keeping the cameras and clip planes.
// The event data node is found by name among the scene children.
func (e *Engine) ReplaceScene(sc *Scene, objects []*Node) {
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	e.Scene = sc
	e.Registry.Reset()
	e.eventData = nil
	e.axes = nil
	for _, obj := range objects {
		e.register(obj)
	}
}
