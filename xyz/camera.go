// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"github.com/hepvis/eventdisplay/base/errors"
	"github.com/hepvis/eventdisplay/math32"
)

// Projection is the kind of projection of a [Camera].
type Projection int32

const (
	// Perspective projects through a frustum with a vertical field of view.
	Perspective Projection = iota

	// Orthographic projects in parallel onto a box of fixed size.
	Orthographic
)

func (pj Projection) String() string {
	if pj == Orthographic {
		return "Orthographic"
	}
	return "Perspective"
}

// Default camera parameters.
const (
	DefaultFOV      = 75
	DefaultNear     = 0.1
	DefaultFar      = 100000
	DefaultDistance = 200
)

// Camera defines the properties of the camera
type Camera struct {

	// overall orientation and direction of the camera, relative to pointing at negative Z axis with up (positive Y) direction.
	// The camera is not part of the scene graph, so Pose.Matrix is its world matrix.
	Pose Pose

	// UpDir is the up direction of the camera, the positive Y axis by default.
	UpDir math32.Vector3

	// Projection is perspective or orthographic.
	Projection Projection

	// field of view in degrees, for a perspective camera
	FOV float32

	// aspect ratio (width/height), for a perspective camera
	Aspect float32

	// Left, Right, Top, Bottom are the bounds of an orthographic camera.
	Left, Right, Top, Bottom float32

	// Zoom scales the bounds of an orthographic camera.
	Zoom float32

	// near plane z coordinate
	Near float32

	// far plane z coordinate
	Far float32

	// view matrix (inverse of the Pose.Matrix)
	ViewMatrix math32.Matrix4

	// projection matrix, defining the camera perspective / ortho transform
	PrjnMatrix math32.Matrix4

	// inverse of the projection matrix
	InvPrjnMatrix math32.Matrix4
}

// NewPerspectiveCamera returns a perspective camera for a viewport of
// the given size, at the default distance on the Z axis looking at the origin.
func NewPerspectiveCamera(width, height float32) *Camera {
	cm := &Camera{Projection: Perspective, FOV: DefaultFOV}
	cm.Defaults()
	cm.SetAspect(width, height)
	return cm
}

// NewOrthographicCamera returns an orthographic camera spanning a viewport
// of the given size, at the default distance on the Z axis looking at the origin.
func NewOrthographicCamera(width, height float32) *Camera {
	cm := &Camera{Projection: Orthographic}
	cm.Defaults()
	cm.SetAspect(width, height)
	return cm
}

// Defaults sets the default clipping distances and pose.
func (cm *Camera) Defaults() {
	cm.Near = DefaultNear
	cm.Far = DefaultFar
	cm.Zoom = 1
	cm.Aspect = 1
	cm.DefaultPose()
}

// DefaultPose resets the camera pose to default location and orientation, looking
// at the origin from 0,0,DefaultDistance, with up Y axis
func (cm *Camera) DefaultPose() {
	cm.Pose.Defaults()
	cm.Pose.Pos.Set(0, 0, DefaultDistance)
	cm.LookAt(math32.Vector3{}, math32.Vec3(0, 1, 0))
}

// SetAspect sets the projection for a viewport of the given size in pixels.
func (cm *Camera) SetAspect(width, height float32) {
	if height > 0 {
		cm.Aspect = width / height
	}
	cm.Left, cm.Right = -width/2, width/2
	cm.Top, cm.Bottom = height/2, -height/2
	cm.UpdateMatrix()
}

// UpdateMatrix updates the view and prjn matricies
func (cm *Camera) UpdateMatrix() {
	cm.Pose.UpdateMatrix()
	cm.Pose.UpdateWorldMatrix(nil)
	if inv, err := cm.Pose.Matrix.Inverse(); err == nil {
		cm.ViewMatrix = *inv
	}
	switch cm.Projection {
	case Orthographic:
		zoom := cm.Zoom
		if zoom <= 0 {
			zoom = 1
		}
		dx := (cm.Right - cm.Left) / (2 * zoom)
		dy := (cm.Top - cm.Bottom) / (2 * zoom)
		cx := (cm.Right + cm.Left) / 2
		cy := (cm.Top + cm.Bottom) / 2
		cm.PrjnMatrix.SetOrthographic(cx-dx, cx+dx, cy+dy, cy-dy, cm.Near, cm.Far)
	default:
		cm.PrjnMatrix.SetPerspective(cm.FOV, cm.Aspect, cm.Near, cm.Far)
	}
	if inv := errors.Log1(cm.PrjnMatrix.Inverse()); inv != nil {
		cm.InvPrjnMatrix = *inv
	}
}

// LookAt points the camera at given target location, using given up direction.
func (cm *Camera) LookAt(target, upDir math32.Vector3) {
	if upDir.IsNil() {
		upDir = math32.Vec3(0, 1, 0)
	}
	cm.UpDir = upDir
	cm.Pose.LookAt(target, upDir)
	cm.UpdateMatrix()
}

// ViewDir returns the unit vector the camera is looking along.
func (cm *Camera) ViewDir() math32.Vector3 {
	return math32.Vec3(0, 0, -1).MulQuat(cm.Pose.Quat)
}

// ViewProjection returns the combined projection and view matrix,
// mapping world points to normalized device coordinates.
func (cm *Camera) ViewProjection() math32.Matrix4 {
	var vp math32.Matrix4
	vp.MulMatrices(&cm.PrjnMatrix, &cm.ViewMatrix)
	return vp
}

// Project returns the normalized device coordinates of the given world point.
func (cm *Camera) Project(point math32.Vector3) math32.Vector3 {
	return point.MulMatrix4(&cm.ViewMatrix).MulMatrix4(&cm.PrjnMatrix)
}

// Unproject returns the world point of the given normalized device coordinates.
func (cm *Camera) Unproject(ndc math32.Vector3) math32.Vector3 {
	return ndc.MulMatrix4(&cm.InvPrjnMatrix).MulMatrix4(&cm.Pose.Matrix)
}

// Ray returns the world ray through the given normalized device
// coordinates: from the camera position for a perspective camera,
// and from the near plane along the view direction for an
// orthographic one.
func (cm *Camera) Ray(ndc math32.Vector2) math32.Ray {
	switch cm.Projection {
	case Orthographic:
		z := (cm.Near + cm.Far) / (cm.Near - cm.Far)
		origin := cm.Unproject(math32.Vec3(ndc.X, ndc.Y, z))
		dir := math32.Vec3(0, 0, -1).TransformDirection(&cm.Pose.Matrix)
		return math32.Ray{Origin: origin, Dir: dir}
	default:
		origin := cm.Pose.Pos
		dir := cm.Unproject(math32.Vec3(ndc.X, ndc.Y, 0.5)).Sub(origin).Normal()
		return math32.Ray{Origin: origin, Dir: dir}
	}
}
