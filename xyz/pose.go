// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"github.com/hepvis/eventdisplay/math32"
)

// Pose contains the full specification of position and orientation,
// always relevant to the parent element.
type Pose struct {

	// Pos is the position of center of element (relative to parent)
	Pos math32.Vector3

	// Scale is the scale (relative to parent)
	Scale math32.Vector3

	// Quat is the node rotation specified as a Quat (relative to parent)
	Quat math32.Quat

	// Matrix is the local matrix, containing all position / rotation / scale
	// information (relative to parent).
	Matrix math32.Matrix4

	// MatrixManual means that Matrix was set directly with [Pose.SetMatrix]
	// and is not recomputed from Pos, Quat and Scale.
	MatrixManual bool

	// WorldMatrix contains all absolute position / rotation / scale
	// information (i.e. relative to very top parent, generally the scene)
	WorldMatrix math32.Matrix4
}

// Defaults sets defaults only if current values are nil
func (ps *Pose) Defaults() {
	if ps.Scale.IsNil() {
		ps.Scale.Set(1, 1, 1)
	}
	if ps.Quat.IsNil() {
		ps.Quat.SetIdentity()
	}
}

// UpdateMatrix updates the local transform matrix based on its position, quaternion, and scale.
// Also checks for degenerate nil values. A manual matrix is left untouched.
func (ps *Pose) UpdateMatrix() {
	if ps.MatrixManual {
		return
	}
	ps.Defaults()
	ps.Matrix.SetTransform(ps.Pos, ps.Quat, ps.Scale)
}

// SetMatrix sets the local transformation matrix directly and updates
// Pos, Scale, Quat from it. The matrix is then kept as given.
func (ps *Pose) SetMatrix(m *math32.Matrix4) {
	ps.Matrix = *m
	ps.MatrixManual = true
	ps.Pos, ps.Quat, ps.Scale = ps.Matrix.Decompose()
}

// UpdateWorldMatrix updates the world transform matrix based on Matrix and
// the given parent's world matrix, which is the identity when nil.
// Does NOT call UpdateMatrix so that can include other factors as needed.
func (ps *Pose) UpdateWorldMatrix(parWorld *math32.Matrix4) {
	if parWorld == nil {
		ps.WorldMatrix = ps.Matrix
		return
	}
	ps.WorldMatrix.MulMatrices(parWorld, &ps.Matrix)
}

// SetEulerRotationRad sets the rotation in Euler angles (radians).
func (ps *Pose) SetEulerRotationRad(x, y, z float32) {
	ps.Quat.SetFromEuler(math32.Vec3(x, y, z))
}

// EulerRotationRad returns the current rotation in Euler angles (radians).
func (ps *Pose) EulerRotationRad() math32.Vector3 {
	return ps.Quat.ToEuler()
}

// LookAt orients the element so that its local negative Z axis points
// at the given target location, using given up direction, as for a camera.
func (ps *Pose) LookAt(target, upDir math32.Vector3) {
	var m math32.Matrix4
	m.SetLookAt(ps.Pos, target, upDir)
	ps.Quat.SetFromRotationMatrix(&m)
}

// WorldPos returns the current world position.
func (ps *Pose) WorldPos() math32.Vector3 {
	pos := math32.Vector3{}
	pos.SetFromMatrixPos(&ps.WorldMatrix)
	return pos
}
