// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"time"

	"github.com/hepvis/eventdisplay/math32"
)

// Default orbit control parameters.
const (
	DefaultDampingFactor   = 0.25
	DefaultAutoRotateSpeed = 2
)

// orbitEpsilon is the size below which damped motion stops, and the
// margin kept between the polar angle and the poles.
const orbitEpsilon = 1e-6

// OrbitControls moves a [Camera] around a target point using
// spherical coordinates around the Y axis. Rotate, Pan and Zoom
// accumulate motion that is applied by Update, spread over several
// updates when damping is enabled.
type OrbitControls struct {

	// Camera is the controlled camera.
	Camera *Camera

	// Target is the point the camera orbits around and looks at.
	Target math32.Vector3

	// EnableDamping spreads motion over several updates.
	EnableDamping bool

	// DampingFactor is the fraction of the pending motion applied per update.
	DampingFactor float32

	// EnableZoom allows Zoom to change the distance or the orthographic zoom.
	EnableZoom bool

	// AutoRotate rotates the camera around the target on every update.
	AutoRotate bool

	// AutoRotateSpeed is in orbits per minute, so 2 is 30 seconds per orbit.
	AutoRotateSpeed float32

	// MinDistance and MaxDistance bound the distance to the target.
	MinDistance, MaxDistance float32

	deltaTheta, deltaPhi float32
	scale                float32
	panOffset            math32.Vector3
}

// NewOrbitControls returns damped orbit controls for the given
// camera, targeting the origin.
func NewOrbitControls(cam *Camera) *OrbitControls {
	return &OrbitControls{
		Camera:          cam,
		EnableDamping:   true,
		DampingFactor:   DefaultDampingFactor,
		EnableZoom:      true,
		AutoRotateSpeed: DefaultAutoRotateSpeed,
		MaxDistance:     math32.Infinity,
		scale:           1,
	}
}

// RotateLeft orbits the camera to the left around the target by the given angle in radians.
func (oc *OrbitControls) RotateLeft(angle float32) {
	oc.deltaTheta -= angle
}

// RotateUp orbits the camera up around the target by the given angle in radians.
func (oc *OrbitControls) RotateUp(angle float32) {
	oc.deltaPhi -= angle
}

// Pan moves the camera and the target together by the given distances
// along the view plane, with positive values moving the view content
// to the right and up.
func (oc *OrbitControls) Pan(delX, delY float32) {
	q := oc.Camera.Pose.Quat
	dx := math32.Vec3(-delX, 0, 0).MulQuat(q)
	dy := math32.Vec3(0, -delY, 0).MulQuat(q)
	oc.panOffset.SetAdd(dx.Add(dy))
}

// Zoom zooms in by the given factor, or out for a factor below 1.
// A perspective camera moves closer to the target, and an
// orthographic camera scales its projection.
func (oc *OrbitControls) Zoom(factor float32) {
	if !oc.EnableZoom || factor <= 0 {
		return
	}
	cam := oc.Camera
	switch cam.Projection {
	case Orthographic:
		cam.Zoom *= factor
		cam.UpdateMatrix()
	default:
		oc.scale /= factor
	}
}

func (oc *OrbitControls) autoRotationAngle(dt time.Duration) float32 {
	return 2 * math32.Pi / 60 * oc.AutoRotateSpeed * float32(dt.Seconds())
}

// Stop discards any pending motion.
func (oc *OrbitControls) Stop() {
	oc.deltaTheta, oc.deltaPhi = 0, 0
	oc.panOffset = math32.Vector3{}
	oc.scale = 1
}

// moving returns whether there is any pending motion.
func (oc *OrbitControls) moving() bool {
	return oc.deltaTheta != 0 || oc.deltaPhi != 0 || oc.scale != 1 || !oc.panOffset.IsNil()
}

// Update applies pending motion and auto rotation for the given elapsed
// time and points the camera at the target. The camera position is
// only changed when there is motion, returning true in that case.
func (oc *OrbitControls) Update(dt time.Duration) bool {
	cam := oc.Camera
	if oc.AutoRotate {
		oc.RotateLeft(oc.autoRotationAngle(dt))
	}
	moved := oc.moving()
	if moved {
		offset := cam.Pose.Pos.Sub(oc.Target)
		radius := offset.Length()
		var theta, phi float32
		if radius > 0 {
			theta = math32.Atan2(offset.X, offset.Z)
			phi = math32.Acos(math32.Clamp(offset.Y/radius, -1, 1))
		}
		f := float32(1)
		if oc.EnableDamping {
			f = oc.DampingFactor
		}
		theta += oc.deltaTheta * f
		phi += oc.deltaPhi * f
		phi = math32.Clamp(phi, orbitEpsilon, math32.Pi-orbitEpsilon)
		radius = math32.Clamp(radius*oc.scale, oc.MinDistance, oc.MaxDistance)
		oc.Target.SetAdd(oc.panOffset.MulScalar(f))

		sinPhiRadius := math32.Sin(phi) * radius
		offset.Set(sinPhiRadius*math32.Sin(theta), math32.Cos(phi)*radius, sinPhiRadius*math32.Cos(theta))
		cam.Pose.Pos = oc.Target.Add(offset)
	}
	cam.LookAt(oc.Target, math32.Vec3(0, 1, 0))
	if oc.EnableDamping {
		decay := 1 - oc.DampingFactor
		oc.deltaTheta = damp(oc.deltaTheta * decay)
		oc.deltaPhi = damp(oc.deltaPhi * decay)
		oc.panOffset.Set(damp(oc.panOffset.X*decay), damp(oc.panOffset.Y*decay), damp(oc.panOffset.Z*decay))
	} else {
		oc.deltaTheta, oc.deltaPhi = 0, 0
		oc.panOffset = math32.Vector3{}
	}
	oc.scale = 1
	return moved
}

func damp(v float32) float32 {
	if math32.Abs(v) < orbitEpsilon {
		return 0
	}
	return v
}
