// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"image/color"

	"github.com/hepvis/eventdisplay/colors"
	"github.com/hepvis/eventdisplay/math32"
)

// Light represents a light that illuminates a scene.
// These are stored on the [Scene] object and not within the tree.
type Light interface {

	// AsLightBase returns the [LightBase] for this Light,
	// which provides the core functionality of a light.
	AsLightBase() *LightBase
}

// LightBase provides the core implementation of the [Light] interface.
type LightBase struct {

	// Name is the name of the light, which matters since lights are accessed by name.
	Name string

	// On is whether the light is turned on.
	On bool

	// Lumens is the brightness/intensity/strength of the light in normalized 0-1 units.
	// It is just multiplied by the color.
	Lumens float32

	// Color is the color of the light at full intensity.
	Color color.RGBA
}

func (lb *LightBase) AsLightBase() *LightBase {
	return lb
}

// Radiance returns the color of the light scaled by Lumens,
// as linear 0-1 components. It is zero when the light is off.
func (lb *LightBase) Radiance() math32.Vector3 {
	if !lb.On {
		return math32.Vector3{}
	}
	r, g, b, _ := colors.Float32(lb.Color)
	return math32.Vec3(r, g, b).MulScalar(lb.Lumens)
}

// AmbientLight provides diffuse uniform lighting; typically only one of these in a [Scene].
type AmbientLight struct {
	LightBase
}

// NewAmbientLight adds Ambient to given scene, with given name, color, and lumens (0-1 normalized)
func NewAmbientLight(sc *Scene, name string, lumens float32, clr color.RGBA) *AmbientLight {
	lt := &AmbientLight{}
	lt.Name = name
	lt.On = true
	lt.Color = clr
	lt.Lumens = lumens
	sc.AddLight(lt)
	return lt
}

// DirLight is directional light, which is assumed to project light toward
// the origin based on its position, with no attenuation, like the Sun.
// For rendering, the position is negated and normalized to get the direction
// vector (i.e., absolute distance doesn't matter)
type DirLight struct {
	LightBase

	// position of direct light -- assumed to point at the origin so this determines direction
	Pos math32.Vector3
}

// NewDirLight adds direct light to given scene, with given name, color, lumens (0-1 normalized)
// and position.
func NewDirLight(sc *Scene, name string, lumens float32, clr color.RGBA, pos math32.Vector3) *DirLight {
	lt := &DirLight{}
	lt.Name = name
	lt.On = true
	lt.Color = clr
	lt.Lumens = lumens
	lt.Pos = pos
	sc.AddLight(lt)
	return lt
}

// ToLight returns the unit vector from a lit surface toward the light.
func (dl *DirLight) ToLight() math32.Vector3 {
	return dl.Pos.Normal()
}

// Default light colors and positions of an event display scene.
var (
	AmbientLightColor     = colors.FromInt(0x404040)
	DirectionalLightColor = colors.FromInt(0xBFBFBF)
	DirectionalLight1Pos  = math32.Vec3(-100, -50, 100)
	DirectionalLight2Pos  = math32.Vec3(100, 50, -100)
)

// SetDefaultLights replaces the lights of the scene with an ambient
// light and two opposed directional lights.
func (sc *Scene) SetDefaultLights() {
	sc.Lights.Reset()
	NewAmbientLight(sc, "ambient", 1, AmbientLightColor)
	NewDirLight(sc, "directional1", 1, DirectionalLightColor, DirectionalLight1Pos)
	NewDirLight(sc, "directional2", 1, DirectionalLightColor, DirectionalLight2Pos)
}
