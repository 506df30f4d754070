// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit the event display.

package math32

// Ray represents an oriented 3D line segment defined by an origin point and a direction vector.
type Ray struct {
	Origin Vector3
	Dir    Vector3
}

// NewRay creates and returns a pointer to a Ray object with
// the specified origin and direction vectors.
func NewRay(origin, dir Vector3) *Ray {
	return &Ray{Origin: origin, Dir: dir}
}

// At returns the point along the ray at the given distance t from its origin.
func (ray *Ray) At(t float32) Vector3 {
	return ray.Dir.MulScalar(t).Add(ray.Origin)
}

// ApplyMatrix4 returns the ray transformed by the given matrix.
func (ray *Ray) ApplyMatrix4(m *Matrix4) Ray {
	origin := ray.Origin.MulMatrix4(m)
	dir := ray.Origin.Add(ray.Dir).MulMatrix4(m).Sub(origin).Normal()
	return Ray{Origin: origin, Dir: dir}
}

// DistanceSqToPoint returns the smallest squared distance
// from the ray to the specified point.
func (ray *Ray) DistanceSqToPoint(point Vector3) float32 {
	dirDist := point.Sub(ray.Origin).Dot(ray.Dir)
	if dirDist < 0 {
		return ray.Origin.DistanceToSquared(point)
	}
	return ray.At(dirDist).DistanceToSquared(point)
}

// DistanceSqToSegment returns the smallest squared distance
// from this ray to the line segment from v0 to v1.
// It also returns the closest point on the ray and on the segment.
func (ray *Ray) DistanceSqToSegment(v0, v1 Vector3) (sqrDist float32, onRay, onSegment Vector3) {
	segCenter := v0.Add(v1).MulScalar(0.5)
	segDir := v1.Sub(v0).Normal()
	diff := ray.Origin.Sub(segCenter)

	segExtent := v0.DistanceTo(v1) * 0.5
	a01 := -ray.Dir.Dot(segDir)
	b0 := diff.Dot(ray.Dir)
	b1 := -diff.Dot(segDir)
	c := diff.LengthSquared()
	det := Abs(1 - a01*a01)

	var s0, s1 float32
	clampSeg := func(v float32) float32 {
		return Min(Max(-segExtent, v), segExtent)
	}

	if det > 0 {
		// the ray and segment are not parallel
		s0 = a01*b1 - b0
		s1 = a01*b0 - b1
		extDet := segExtent * det

		switch {
		case s0 >= 0 && s1 >= -extDet && s1 <= extDet:
			// minimum at interior points of ray and segment
			invDet := 1 / det
			s0 *= invDet
			s1 *= invDet
			sqrDist = s0*(s0+a01*s1+2*b0) + s1*(a01*s0+s1+2*b1) + c
		case s0 >= 0 && s1 > extDet:
			s1 = segExtent
			s0 = Max(0, -(a01*s1 + b0))
			sqrDist = -s0*s0 + s1*(s1+2*b1) + c
		case s0 >= 0:
			s1 = -segExtent
			s0 = Max(0, -(a01*s1 + b0))
			sqrDist = -s0*s0 + s1*(s1+2*b1) + c
		case s1 <= -extDet:
			s0 = Max(0, -(-a01*segExtent + b0))
			if s0 > 0 {
				s1 = -segExtent
			} else {
				s1 = clampSeg(-b1)
			}
			sqrDist = -s0*s0 + s1*(s1+2*b1) + c
		case s1 <= extDet:
			s0 = 0
			s1 = clampSeg(-b1)
			sqrDist = s1*(s1+2*b1) + c
		default:
			s0 = Max(0, -(a01*segExtent + b0))
			if s0 > 0 {
				s1 = segExtent
			} else {
				s1 = clampSeg(-b1)
			}
			sqrDist = -s0*s0 + s1*(s1+2*b1) + c
		}
	} else {
		// parallel ray and segment
		if a01 > 0 {
			s1 = -segExtent
		} else {
			s1 = segExtent
		}
		s0 = Max(0, -(a01*s1 + b0))
		sqrDist = -s0*s0 + s1*(s1+2*b1) + c
	}

	onRay = ray.At(s0)
	onSegment = segDir.MulScalar(s1).Add(segCenter)
	return
}

// IntersectBox returns the first point where the ray enters the box,
// or the origin when it starts inside. The bool is false if the ray misses.
func (ray *Ray) IntersectBox(box Box3) (Vector3, bool) {
	var tmin, tmax, tymin, tymax, tzmin, tzmax float32

	invdirx := 1 / ray.Dir.X
	invdiry := 1 / ray.Dir.Y
	invdirz := 1 / ray.Dir.Z

	origin := ray.Origin
	if invdirx >= 0 {
		tmin = (box.Min.X - origin.X) * invdirx
		tmax = (box.Max.X - origin.X) * invdirx
	} else {
		tmin = (box.Max.X - origin.X) * invdirx
		tmax = (box.Min.X - origin.X) * invdirx
	}
	if invdiry >= 0 {
		tymin = (box.Min.Y - origin.Y) * invdiry
		tymax = (box.Max.Y - origin.Y) * invdiry
	} else {
		tymin = (box.Max.Y - origin.Y) * invdiry
		tymax = (box.Min.Y - origin.Y) * invdiry
	}
	if tmin > tymax || tymin > tmax {
		return Vector3{}, false
	}
	// NaN checks handle 0 * Infinity
	if tymin > tmin || IsNaN(tmin) {
		tmin = tymin
	}
	if tymax < tmax || IsNaN(tmax) {
		tmax = tymax
	}

	if invdirz >= 0 {
		tzmin = (box.Min.Z - origin.Z) * invdirz
		tzmax = (box.Max.Z - origin.Z) * invdirz
	} else {
		tzmin = (box.Max.Z - origin.Z) * invdirz
		tzmax = (box.Min.Z - origin.Z) * invdirz
	}
	if tmin > tzmax || tzmin > tmax {
		return Vector3{}, false
	}
	if tzmin > tmin || IsNaN(tmin) {
		tmin = tzmin
	}
	if tzmax < tmax || IsNaN(tmax) {
		tmax = tzmax
	}

	// box is behind the ray
	if tmax < 0 {
		return Vector3{}, false
	}
	if tmin >= 0 {
		return ray.At(tmin), true
	}
	return ray.At(tmax), true
}

// IntersectsBox returns if this ray intersects the specified box.
func (ray *Ray) IntersectsBox(box Box3) bool {
	_, ok := ray.IntersectBox(box)
	return ok
}

// IntersectTriangle returns the distance along the ray to the intersection
// with the triangle a, b, c, using the Moller-Trumbore test.
// If backfaceCulling is true, triangles facing away from the ray are ignored.
// The bool is false if there is no intersection.
func (ray *Ray) IntersectTriangle(a, b, c Vector3, backfaceCulling bool) (float32, bool) {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	normal := edge1.Cross(edge2)

	// Solve Q + t*D = b1*E1 + b2*E2 (Q = kDiff, D = ray direction,
	// E1 = kEdge1, E2 = kEdge2, N = Cross(E1,E2)) by
	//   |Dot(D,N)|*b1 = sign(Dot(D,N))*Dot(D,Cross(Q,E2))
	//   |Dot(D,N)|*b2 = sign(Dot(D,N))*Dot(D,Cross(E1,Q))
	//   |Dot(D,N)|*t = -sign(Dot(D,N))*Dot(Q,N)
	DdN := ray.Dir.Dot(normal)
	var sign float32
	switch {
	case DdN > 0:
		if backfaceCulling {
			return 0, false
		}
		sign = 1
	case DdN < 0:
		sign = -1
		DdN = -DdN
	default:
		return 0, false
	}

	diff := ray.Origin.Sub(a)
	DdQxE2 := sign * ray.Dir.Dot(diff.Cross(edge2))
	if DdQxE2 < 0 {
		return 0, false
	}
	DdE1xQ := sign * ray.Dir.Dot(edge1.Cross(diff))
	if DdE1xQ < 0 {
		return 0, false
	}
	if DdQxE2+DdE1xQ > DdN {
		return 0, false
	}

	// line intersects triangle, check if ray does
	QdN := -sign * diff.Dot(normal)
	if QdN < 0 {
		return 0, false
	}
	return QdN / DdN, true
}
