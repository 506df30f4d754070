// Copyright 2021 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standardTol = 1.0e-4

func assertVector3(t *testing.T, want, got Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, standardTol, "X")
	assert.InDelta(t, want.Y, got.Y, standardTol, "Y")
	assert.InDelta(t, want.Z, got.Z, standardTol, "Z")
}

func TestMatrix4Inverse(t *testing.T) {
	var m Matrix4
	m.SetTransform(Vec3(1, 2, 3), NewQuatEuler(Vec3(0.3, -0.2, 1.1)), Vec3(2, 3, 4))
	inv, err := m.Inverse()
	require.NoError(t, err)
	id := m.Mul(inv)
	want := Identity4()
	for i := range id {
		assert.InDelta(t, want[i], id[i], standardTol)
	}

	var zero Matrix4
	_, err = zero.Inverse()
	assert.ErrorIs(t, err, ErrSingular)
}

func TestMatrix4Determinant(t *testing.T) {
	var m Matrix4
	m.SetTransform(Vec3(5, 0, 0), NewQuatIdentity(), Vec3(2, 3, 4))
	assert.InDelta(t, 24, m.Determinant(), standardTol)
	assert.InDelta(t, 1, Identity4().Determinant(), standardTol)
}

func TestMatrix4Decompose(t *testing.T) {
	q := NewQuatEuler(Vec3(0, 0, Pi/3))
	var m Matrix4
	m.SetTransform(Vec3(1, -2, 3), q, Vec3(1, 2, 3))
	pos, rq, scale := m.Decompose()
	assertVector3(t, Vec3(1, -2, 3), pos)
	assertVector3(t, Vec3(1, 2, 3), scale)
	assertVector3(t, Vec3(0, 0, Pi/3), rq.ToEuler())
}

func TestEulerMatrixMatchesQuat(t *testing.T) {
	euler := Vec3(0.4, 0.1, -0.7)
	var rm Matrix4
	rm.SetRotationFromEuler(euler)
	var qm Matrix4
	qm.SetTransform(Vector3{}, NewQuatEuler(euler), Vector3Scalar(1))
	for i := range rm {
		assert.InDelta(t, rm[i], qm[i], standardTol)
	}
}

func TestLookAt(t *testing.T) {
	var m Matrix4
	m.SetLookAt(Vec3(0, 0, 10), Vector3{}, Vec3(0, 1, 0))
	id := Identity4()
	for i := range m {
		assert.InDelta(t, id[i], m[i], standardTol)
	}

	m.SetLookAt(Vec3(10, 0, 0), Vector3{}, Vec3(0, 1, 0))
	// camera looks down its local -Z
	fwd := Vec3(0, 0, -1).MulMatrix4AsVector4(&m, 0)
	assertVector3(t, Vec3(-1, 0, 0), fwd)
}

func TestProjection(t *testing.T) {
	var m Matrix4
	m.SetPerspective(90, 1, 1, 100)
	p := Vec3(0, 0, -1).MulMatrix4(&m)
	assert.InDelta(t, -1, p.Z, standardTol)
	p = Vec3(0, 0, -100).MulMatrix4(&m)
	assert.InDelta(t, 1, p.Z, standardTol)
	p = Vec3(1, 1, -1).MulMatrix4(&m)
	assertVector3(t, Vec3(1, 1, -1), p)

	m.SetOrthographic(-10, 10, 5, -5, 1, 11)
	p = Vec3(10, -5, -11).MulMatrix4(&m)
	assertVector3(t, Vec3(1, -1, 1), p)
}

func TestQuatMulQuatVector(t *testing.T) {
	qz := NewQuatAxisAngle(Vec3(0, 0, 1), Pi/2)
	assertVector3(t, Vec3(0, 1, 0), Vec3(1, 0, 0).MulQuat(qz))
	q2 := qz.Mul(qz)
	assertVector3(t, Vec3(-1, 0, 0), Vec3(1, 0, 0).MulQuat(q2))
	assertVector3(t, Vec3(1, 0, 0), Vec3(1, 0, 0).MulQuat(q2).MulQuat(q2.Inverse()))

	var q Quat
	q.SetFromUnitVectors(Vec3(0, 1, 0), Vec3(0, 1, 0))
	assert.True(t, q.IsIdentity())
}

func TestNDC(t *testing.T) {
	assert.Equal(t, Vec2(0, 0), NDC(50, 50, 100, 100))
	assert.Equal(t, Vec2(-1, 1), NDC(0, 0, 100, 100))
	assert.Equal(t, Vec2(1, -1), NDC(100, 100, 100, 100))
}
