// Copyright 2024 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRayIntersectTriangle(t *testing.T) {
	ray := NewRay(Vec3(0.2, 0.2, 10), Vec3(0, 0, -1))
	a, b, c := Vec3(0, 0, 0), Vec3(1, 0, 0), Vec3(0, 1, 0)

	d, ok := ray.IntersectTriangle(a, b, c, false)
	assert.True(t, ok)
	assert.InDelta(t, 10, d, standardTol)

	// reversed winding faces away from the ray
	_, ok = ray.IntersectTriangle(a, c, b, true)
	assert.False(t, ok)
	d, ok = ray.IntersectTriangle(a, c, b, false)
	assert.True(t, ok)
	assert.InDelta(t, 10, d, standardTol)

	miss := NewRay(Vec3(2, 2, 10), Vec3(0, 0, -1))
	_, ok = miss.IntersectTriangle(a, b, c, false)
	assert.False(t, ok)

	behind := NewRay(Vec3(0.2, 0.2, 10), Vec3(0, 0, 1))
	_, ok = behind.IntersectTriangle(a, b, c, false)
	assert.False(t, ok)
}

func TestRayDistanceSqToSegment(t *testing.T) {
	ray := NewRay(Vec3(0, 0, 10), Vec3(0, 0, -1))

	d, onRay, onSeg := ray.DistanceSqToSegment(Vec3(-5, 3, 0), Vec3(5, 3, 0))
	assert.InDelta(t, 9, d, standardTol)
	assertVector3(t, Vec3(0, 0, 0), onRay)
	assertVector3(t, Vec3(0, 3, 0), onSeg)

	// closest point clamps at the segment end
	d, _, onSeg = ray.DistanceSqToSegment(Vec3(2, 0, 0), Vec3(6, 0, 0))
	assert.InDelta(t, 4, d, standardTol)
	assertVector3(t, Vec3(2, 0, 0), onSeg)

	// parallel segment
	d, _, _ = ray.DistanceSqToSegment(Vec3(1, 0, 5), Vec3(1, 0, 0))
	assert.InDelta(t, 1, d, standardTol)
}

func TestRayIntersectBox(t *testing.T) {
	box := B3(-1, -1, -1, 1, 1, 1)
	ray := NewRay(Vec3(0, 0, 10), Vec3(0, 0, -1))
	p, ok := ray.IntersectBox(box)
	assert.True(t, ok)
	assertVector3(t, Vec3(0, 0, 1), p)

	assert.False(t, NewRay(Vec3(3, 0, 10), Vec3(0, 0, -1)).IntersectsBox(box))
	assert.False(t, NewRay(Vec3(0, 0, 10), Vec3(0, 0, 1)).IntersectsBox(box))
	assert.True(t, NewRay(Vector3{}, Vec3(1, 0, 0)).IntersectsBox(box))
}

func TestBox3MulMatrix4(t *testing.T) {
	box := B3(0, 0, 0, 1, 2, 3)
	var m Matrix4
	m.SetTranslation(1, 1, 1)
	nb := box.MulMatrix4(&m)
	assertVector3(t, Vec3(1, 1, 1), nb.Min)
	assertVector3(t, Vec3(2, 3, 4), nb.Max)
	assert.True(t, B3Empty().IsEmpty())
	assertVector3(t, Vec3(0.5, 1, 1.5), box.Center())
}
