// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image/color"
)

// MaterialKind is the shading model of a [Material].
type MaterialKind int32

const (
	// MaterialBasic is an unlit solid color, used for detector
	// modules and event data elements.
	MaterialBasic MaterialKind = iota

	// MaterialPhong is shaded by the scene lights, used for
	// imported meshes.
	MaterialPhong

	// MaterialLineBasic is an unlit line color.
	MaterialLineBasic
)

func (mk MaterialKind) String() string {
	switch mk {
	case MaterialBasic:
		return "Basic"
	case MaterialPhong:
		return "Phong"
	case MaterialLineBasic:
		return "LineBasic"
	}
	return "Unknown"
}

// Side is which faces of triangles are rendered.
type Side int32

const (
	// SideFront renders only front (counter-clockwise) faces.
	SideFront Side = iota

	// SideBack renders only back faces.
	SideBack

	// SideDouble renders both faces.
	SideDouble
)

// Material describes how the primitives of a node are drawn.
// A single Material may be shared by many nodes, in which case
// changing it changes all of them.
type Material struct {

	// Kind is the shading model.
	Kind MaterialKind

	// Color is the main color of the surface or line. Its alpha is
	// not used: see Opacity.
	Color color.RGBA

	// Opacity in 0-1, used when Transparent is set.
	Opacity float32

	// Transparent enables blending with Opacity.
	Transparent bool

	// Side is which faces are rendered.
	Side Side

	// LineWidth is the width of lines in pixels.
	LineWidth float32

	// ClipPlanes are the planes clipping this material when
	// clipping is enabled on the engine.
	ClipPlanes []*ClipPlane

	// ClipIntersection clips only the points clipped by all planes,
	// instead of the points clipped by any plane.
	ClipIntersection bool

	// ClipShadows applies the clip planes to shadows.
	ClipShadows bool
}

// Defaults sets default material parameters.
func (mt *Material) Defaults() {
	mt.Color = color.RGBA{255, 255, 255, 255}
	mt.Opacity = 1
	mt.LineWidth = 1
}

// NewBasicMaterial returns a new unlit material with the given color.
func NewBasicMaterial(clr color.RGBA) *Material {
	mt := &Material{Kind: MaterialBasic}
	mt.Defaults()
	mt.Color = clr
	return mt
}

// NewPhongMaterial returns a new shaded material with the given color.
func NewPhongMaterial(clr color.RGBA) *Material {
	mt := &Material{Kind: MaterialPhong}
	mt.Defaults()
	mt.Color = clr
	return mt
}

// NewLineBasicMaterial returns a new line material with the given
// color and line width.
func NewLineBasicMaterial(clr color.RGBA, width float32) *Material {
	mt := &Material{Kind: MaterialLineBasic}
	mt.Defaults()
	mt.Color = clr
	mt.LineWidth = width
	return mt
}

// Alpha returns the effective opacity of the material.
func (mt *Material) Alpha() float32 {
	if mt.Transparent {
		return mt.Opacity
	}
	return 1
}
