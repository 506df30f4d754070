// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image/color"
	"log/slog"

	"github.com/hepvis/eventdisplay/base/ordmap"
	"github.com/hepvis/eventdisplay/colors"
)

// Background colors of the scene.
var (
	LightBackground = colors.White
	DarkBackground  = colors.FromInt(0x000000)
)

// Scene is the overall scenegraph, with a root group node holding
// the registered objects and the EventData subtree as children,
// plus the lights, which are not part of the graph.
type Scene struct {

	// Root is the root node of the graph.
	Root *Node

	// BackgroundColor is the color behind all rendered geometry.
	BackgroundColor color.RGBA

	// all lights used in the scene
	Lights ordmap.Map[string, Light]
}

// NewScene returns a new empty scene with default lights
// and a light background.
func NewScene() *Scene {
	sc := &Scene{}
	sc.Defaults()
	return sc
}

// Defaults resets the root, lights and background of the scene.
func (sc *Scene) Defaults() {
	sc.Root = NewGroup("Scene")
	sc.BackgroundColor = LightBackground
	sc.SetDefaultLights()
}

// AddLight adds given light to lights
// see NewX for convenience methods to add specific lights
func (sc *Scene) AddLight(lt Light) {
	if sc.Lights.Map == nil {
		sc.Lights.Init()
	}
	sc.Lights.Add(lt.AsLightBase().Name, lt)
}

// Add adds the given node as a top-level child of the scene.
func (sc *Scene) Add(nd *Node) {
	sc.Root.AddChild(nd)
}

// UpdateWorldMatrices updates the world matrices of all nodes.
func (sc *Scene) UpdateWorldMatrices() {
	sc.Root.UpdateWorldMatrix(nil)
}

// FindByName returns the first node with the given name in
// breadth-first order, or nil.
func (sc *Scene) FindByName(name string) *Node {
	nd := sc.Root.FindByName(name)
	if nd == nil {
		slog.Debug("xyz.Scene: node not found", "name", name)
	}
	return nd
}
