// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"

	"github.com/hepvis/eventdisplay/base/errors"
	"github.com/hepvis/eventdisplay/math32"
)

// ActiveCamera returns the camera used for rendering and picking.
func (e *Engine) ActiveCamera() *Camera {
	e.RenderMu.RLock()
	defer e.RenderMu.RUnlock()
	return e.activeControls.Camera
}

// ActiveControls returns the orbit controls of the active camera.
func (e *Engine) ActiveControls() *OrbitControls {
	e.RenderMu.RLock()
	defer e.RenderMu.RUnlock()
	return e.activeControls
}

// IsOrthographic returns whether the orthographic camera is active.
func (e *Engine) IsOrthographic() bool {
	e.RenderMu.RLock()
	defer e.RenderMu.RUnlock()
	return e.activeControls == e.orthoControls
}

// Swap activates the orthographic camera if useOrthographic is set,
// and the perspective camera otherwise. The position and orbit target
// of the previously active camera are copied, so the view does not jump,
// and pending motion of the newly active controls is discarded.
func (e *Engine) Swap(useOrthographic bool) {
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	from := e.activeControls
	to := e.perspControls
	if useOrthographic {
		to = e.orthoControls
	}
	if to != from {
		to.Stop()
	}
	to.Camera.Pose.Pos = from.Camera.Pose.Pos
	to.Target = from.Target
	e.activeControls = to
	to.Update(0)
}

// axisVectors are the world axes accepted by AlignWithAxis.
var axisVectors = map[string]math32.Vector3{
	"x": math32.Vec3(1, 0, 0), "X": math32.Vec3(1, 0, 0),
	"y": math32.Vec3(0, 1, 0), "Y": math32.Vec3(0, 1, 0),
	"z": math32.Vec3(0, 0, 1), "Z": math32.Vec3(0, 0, 1),
}

// AlignWithAxis moves the orbit target so that the camera looks along
// the named world axis (x, y or z in either case), toward the side the
// camera was already facing, keeping the distance to the target.
// The camera itself does not move.
func (e *Engine) AlignWithAxis(axis string) error {
	vec, ok := axisVectors[axis]
	if !ok {
		return errors.Warn(fmt.Errorf("xyz.Engine.AlignWithAxis: invalid axis %q (use x, y or z): %w", axis, ErrUserInput))
	}
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	oc := e.activeControls
	pos := oc.Camera.Pose.Pos
	orbitTarget := oc.Target.Sub(pos)
	direction := orbitTarget.Dot(vec)
	vec = vec.Normal().MulScalar(orbitTarget.Length())
	if direction < 0 {
		vec = vec.Negate()
	}
	oc.Target = vec.Add(pos)
	return nil
}

// SetCameraPosition returns an action that moves the active camera to
// the given position over [CameraTweenDuration]. The action can be
// called any number of times, and supersedes a running move of the
// same camera.
func (e *Engine) SetCameraPosition(pos [3]float32) func() {
	to := math32.Vector3FromArray(pos)
	return func() {
		e.RenderMu.Lock()
		defer e.RenderMu.Unlock()
		cam := e.activeControls.Camera
		e.tweens.Start(&cam.Pose.Pos, to, CameraTweenDuration)
	}
}

// SetAutoRotate sets auto rotation on the controls of both cameras.
func (e *Engine) SetAutoRotate(on bool) {
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	e.perspControls.AutoRotate = on
	e.orthoControls.AutoRotate = on
}

// SetCameraRange sets the clipping range of both cameras, and their
// vertical field of view in degrees if fov is positive.
func (e *Engine) SetCameraRange(fov, near, far float32) {
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	for _, oc := range []*OrbitControls{e.perspControls, e.orthoControls} {
		if fov > 0 {
			oc.Camera.FOV = fov
		}
		oc.Camera.Near, oc.Camera.Far = near, far
	}
}

// SetSize sets the size in pixels of the rendered frames, updating
// the projections of both cameras.
func (e *Engine) SetSize(width, height int) {
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	e.Options.Width, e.Options.Height = width, height
	e.perspControls.Camera.SetAspect(float32(width), float32(height))
	e.orthoControls.Camera.SetAspect(float32(width), float32(height))
}
