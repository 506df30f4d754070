// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit the event display.

package math32

import "errors"

// Matrix4 is 4x4 matrix organized internally as column matrix.
// Element i+4*j is row i, column j.
type Matrix4 [16]float32

// ErrSingular is returned by [Matrix4.Inverse] for a non-invertible matrix.
var ErrSingular = errors.New("math32: cannot invert singular matrix")

// Identity4 returns a new identity [Matrix4] matrix.
func Identity4() *Matrix4 {
	m := &Matrix4{}
	m.SetIdentity()
	return m
}

// Set sets all the elements of this matrix row by row starting at row1, column1,
// row1, column2, row1, column3 and so forth.
func (m *Matrix4) Set(n11, n12, n13, n14, n21, n22, n23, n24, n31, n32, n33, n34, n41, n42, n43, n44 float32) {
	m[0] = n11
	m[4] = n12
	m[8] = n13
	m[12] = n14
	m[1] = n21
	m[5] = n22
	m[9] = n23
	m[13] = n24
	m[2] = n31
	m[6] = n32
	m[10] = n33
	m[14] = n34
	m[3] = n41
	m[7] = n42
	m[11] = n43
	m[15] = n44
}

// SetIdentity sets this matrix as the identity matrix.
func (m *Matrix4) SetIdentity() {
	m.Set(
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	)
}

// IsIdentity returns true if this matrix is the identity matrix.
func (m *Matrix4) IsIdentity() bool {
	return *m == *Identity4()
}

// Copy returns a copy of this matrix.
func (m *Matrix4) Copy() *Matrix4 {
	nm := *m
	return &nm
}

// Mul returns this matrix times other matrix (this matrix is unchanged).
func (m *Matrix4) Mul(other *Matrix4) *Matrix4 {
	nm := &Matrix4{}
	nm.MulMatrices(m, other)
	return nm
}

// MulMatrices sets this matrix as the multiplication of the specified matrices a*b.
// The receiver may alias a or b.
func (m *Matrix4) MulMatrices(a, b *Matrix4) {
	var r Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var s float32
			for k := 0; k < 4; k++ {
				s += a[i+4*k] * b[k+4*j]
			}
			r[i+4*j] = s
		}
	}
	*m = r
}

// SetTranslation sets this matrix to a translation matrix from the specified x, y and z values.
func (m *Matrix4) SetTranslation(x, y, z float32) {
	m.Set(
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	)
}

// SetPosition sets the translation of this matrix to the given position,
// leaving the rotation and scale elements unchanged.
func (m *Matrix4) SetPosition(pos Vector3) {
	m[12] = pos.X
	m[13] = pos.Y
	m[14] = pos.Z
}

// SetRotationFromEuler sets this matrix to a rotation matrix from the
// specified euler angles, applied in XYZ order.
func (m *Matrix4) SetRotationFromEuler(euler Vector3) {
	a := Cos(euler.X)
	b := Sin(euler.X)
	c := Cos(euler.Y)
	d := Sin(euler.Y)
	e := Cos(euler.Z)
	f := Sin(euler.Z)

	ae := a * e
	af := a * f
	be := b * e
	bf := b * f

	m[0] = c * e
	m[4] = -c * f
	m[8] = d

	m[1] = af + be*d
	m[5] = ae - bf*d
	m[9] = -b * c

	m[2] = bf - ae*d
	m[6] = be + af*d
	m[10] = a * c

	m[3] = 0
	m[7] = 0
	m[11] = 0
	m[12] = 0
	m[13] = 0
	m[14] = 0
	m[15] = 1
}

// SetTransform sets this matrix to a transformation matrix for the specified
// position, rotation specified by the quaternion and scale.
func (m *Matrix4) SetTransform(pos Vector3, quat Quat, scale Vector3) {
	x, y, z, w := quat.X, quat.Y, quat.Z, quat.W
	x2 := x + x
	y2 := y + y
	z2 := z + z
	xx := x * x2
	xy := x * y2
	xz := x * z2
	yy := y * y2
	yz := y * z2
	zz := z * z2
	wx := w * x2
	wy := w * y2
	wz := w * z2

	m[0] = (1 - (yy + zz)) * scale.X
	m[1] = (xy + wz) * scale.X
	m[2] = (xz - wy) * scale.X
	m[3] = 0

	m[4] = (xy - wz) * scale.Y
	m[5] = (1 - (xx + zz)) * scale.Y
	m[6] = (yz + wx) * scale.Y
	m[7] = 0

	m[8] = (xz + wy) * scale.Z
	m[9] = (yz - wx) * scale.Z
	m[10] = (1 - (xx + yy)) * scale.Z
	m[11] = 0

	m[12] = pos.X
	m[13] = pos.Y
	m[14] = pos.Z
	m[15] = 1
}

// Determinant returns the determinant of this matrix, computed from the
// pivots of a Gaussian elimination.
func (m *Matrix4) Determinant() float32 {
	a := *m
	det := float32(1)
	for c := 0; c < 4; c++ {
		p := c
		for r := c + 1; r < 4; r++ {
			if Abs(a[r+4*c]) > Abs(a[p+4*c]) {
				p = r
			}
		}
		if a[p+4*c] == 0 {
			return 0
		}
		if p != c {
			for k := 0; k < 4; k++ {
				a[c+4*k], a[p+4*k] = a[p+4*k], a[c+4*k]
			}
			det = -det
		}
		piv := a[c+4*c]
		det *= piv
		for r := c + 1; r < 4; r++ {
			f := a[r+4*c] / piv
			for k := c; k < 4; k++ {
				a[r+4*k] -= f * a[c+4*k]
			}
		}
	}
	return det
}

// Inverse returns the inverse of this matrix, computed by Gauss-Jordan
// elimination with partial pivoting. It returns [ErrSingular] if the
// matrix cannot be inverted.
func (m *Matrix4) Inverse() (*Matrix4, error) {
	a := *m
	inv := *Identity4()
	for c := 0; c < 4; c++ {
		p := c
		for r := c + 1; r < 4; r++ {
			if Abs(a[r+4*c]) > Abs(a[p+4*c]) {
				p = r
			}
		}
		if Abs(a[p+4*c]) < 1e-12 {
			return Identity4(), ErrSingular
		}
		if p != c {
			for k := 0; k < 4; k++ {
				a[c+4*k], a[p+4*k] = a[p+4*k], a[c+4*k]
				inv[c+4*k], inv[p+4*k] = inv[p+4*k], inv[c+4*k]
			}
		}
		piv := 1 / a[c+4*c]
		for k := 0; k < 4; k++ {
			a[c+4*k] *= piv
			inv[c+4*k] *= piv
		}
		for r := 0; r < 4; r++ {
			if r == c {
				continue
			}
			f := a[r+4*c]
			if f == 0 {
				continue
			}
			for k := 0; k < 4; k++ {
				a[r+4*k] -= f * a[c+4*k]
				inv[r+4*k] -= f * inv[c+4*k]
			}
		}
	}
	return &inv, nil
}

// SetPerspective sets this matrix to a perspective projection matrix
// with the specified vertical field of view in degrees,
// aspect ratio (width/height) and near and far planes.
func (m *Matrix4) SetPerspective(fov, aspect, near, far float32) {
	top := near * Tan(DegToRad(0.5*fov))
	height := 2 * top
	width := aspect * height
	left := -0.5 * width
	m.SetFrustum(left, left+width, top-height, top, near, far)
}

// SetFrustum sets this matrix to a projection frustum matrix
// bounded by the specified planes.
func (m *Matrix4) SetFrustum(left, right, bottom, top, near, far float32) {
	x := 2 * near / (right - left)
	y := 2 * near / (top - bottom)
	a := (right + left) / (right - left)
	b := (top + bottom) / (top - bottom)
	c := -(far + near) / (far - near)
	d := -2 * far * near / (far - near)
	m.Set(
		x, 0, a, 0,
		0, y, b, 0,
		0, 0, c, d,
		0, 0, -1, 0,
	)
}

// SetOrthographic sets this matrix to an orthographic projection matrix
// bounded by the specified planes.
func (m *Matrix4) SetOrthographic(left, right, top, bottom, near, far float32) {
	w := 1 / (right - left)
	h := 1 / (top - bottom)
	p := 1 / (far - near)
	x := (right + left) * w
	y := (top + bottom) * h
	z := (far + near) * p
	m.Set(
		2*w, 0, 0, -x,
		0, 2*h, 0, -y,
		0, 0, -2*p, -z,
		0, 0, 0, 1,
	)
}

// SetLookAt sets this matrix to a rotation matrix which orients an object
// at eye to look toward target, with the given up direction.
func (m *Matrix4) SetLookAt(eye, target, up Vector3) {
	z := eye.Sub(target)
	if z.LengthSquared() == 0 {
		z.Z = 1
	}
	z = z.Normal()
	x := up.Cross(z)
	if x.LengthSquared() == 0 {
		// up and z are parallel
		if Abs(up.Z) == 1 {
			z.X += 0.0001
		} else {
			z.Z += 0.0001
		}
		z = z.Normal()
		x = up.Cross(z)
	}
	x = x.Normal()
	y := z.Cross(x)
	m.Set(
		x.X, y.X, z.X, 0,
		x.Y, y.Y, z.Y, 0,
		x.Z, y.Z, z.Z, 0,
		0, 0, 0, 1,
	)
}

// Decompose updates the position vector, quaternion and scale from this transformation matrix.
func (m *Matrix4) Decompose() (pos Vector3, quat Quat, scale Vector3) {
	sx := Vec3(m[0], m[1], m[2]).Length()
	sy := Vec3(m[4], m[5], m[6]).Length()
	sz := Vec3(m[8], m[9], m[10]).Length()

	// if determinant is negative, we need to invert one scale
	if m.Determinant() < 0 {
		sx = -sx
	}
	pos = Vec3(m[12], m[13], m[14])

	r := *m
	if sx != 0 {
		r[0] /= sx
		r[1] /= sx
		r[2] /= sx
	}
	if sy != 0 {
		r[4] /= sy
		r[5] /= sy
		r[6] /= sy
	}
	if sz != 0 {
		r[8] /= sz
		r[9] /= sz
		r[10] /= sz
	}
	quat.SetFromRotationMatrix(&r)
	scale = Vec3(sx, sy, sz)
	return
}
