// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit the event display.

package math32

// Plane represents a plane in 3D space by its normal vector and a constant offset.
// When the the normal vector is the unit vector the offset is the distance from the origin.
type Plane struct {
	Norm Vector3
	Off  float32
}

// NewPlane creates and returns a new plane from a normal vector and a offset.
func NewPlane(normal Vector3, offset float32) *Plane {
	return &Plane{Norm: normal, Off: offset}
}

// SetFromCoplanarPoints sets this plane from three coplanar points.
func (p *Plane) SetFromCoplanarPoints(a, b, c Vector3) {
	p.Norm = Normal(a, b, c)
	p.Off = -p.Norm.Dot(a)
}

// DistanceToPoint returns the signed distance from this plane to the specified point.
func (p *Plane) DistanceToPoint(point Vector3) float32 {
	return p.Norm.Dot(point) + p.Off
}

// Negate negates this plane normal and offset.
func (p *Plane) Negate() {
	p.Off = -p.Off
	p.Norm = p.Norm.Negate()
}
