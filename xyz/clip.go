// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"github.com/hepvis/eventdisplay/math32"
)

// ClipPlane is a plane clipping the geometry on its negative side,
// used for cross-sectional views. Callers mutate the plane offset
// directly through the pointer returned by the engine.
type ClipPlane struct {
	math32.Plane
}

// newClipPlanes returns the three clip planes of an engine, facing
// +X, -Y and -Z through the origin.
func newClipPlanes() [3]*ClipPlane {
	return [3]*ClipPlane{
		{Plane: math32.Plane{Norm: math32.Vec3(1, 0, 0)}},
		{Plane: math32.Plane{Norm: math32.Vec3(0, -1, 0)}},
		{Plane: math32.Plane{Norm: math32.Vec3(0, 0, -1)}},
	}
}

// Clipped returns whether the given world point is removed by the
// given planes. With intersection set, a point is clipped only when it
// is on the negative side of all the planes; otherwise it is clipped
// when it is on the negative side of any of them.
func Clipped(planes []*ClipPlane, intersection bool, point math32.Vector3) bool {
	if len(planes) == 0 {
		return false
	}
	for _, p := range planes {
		neg := p.DistanceToPoint(point) < 0
		if intersection && !neg {
			return false
		}
		if !intersection && neg {
			return true
		}
	}
	return intersection
}

// XClipPlane returns the clip plane facing the X axis.
func (e *Engine) XClipPlane() *ClipPlane { return e.clipPlanes[0] }

// YClipPlane returns the clip plane facing the Y axis.
func (e *Engine) YClipPlane() *ClipPlane { return e.clipPlanes[1] }

// ZClipPlane returns the clip plane facing the Z axis.
func (e *Engine) ZClipPlane() *ClipPlane { return e.clipPlanes[2] }

// ClipPlanes returns the three clip planes, shared by imported meshes.
func (e *Engine) ClipPlanes() []*ClipPlane {
	return e.clipPlanes[:]
}

// SetClippingEnabled sets whether clip planes are applied at all
// when rendering and picking.
func (e *Engine) SetClippingEnabled(on bool) {
	e.RenderMu.Lock()
	e.clippingEnabled = on
	e.RenderMu.Unlock()
}

// ClippingEnabled returns whether clip planes are applied.
func (e *Engine) ClippingEnabled() bool {
	e.RenderMu.RLock()
	defer e.RenderMu.RUnlock()
	return e.clippingEnabled
}

// isClipped returns whether the given world point on a node with the
// given material is clipped under the current engine settings.
func (e *Engine) isClipped(mat *Material, point math32.Vector3) bool {
	if !e.clippingEnabled || mat == nil {
		return false
	}
	return Clipped(mat.ClipPlanes, mat.ClipIntersection, point)
}
