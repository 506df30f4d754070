// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"github.com/hepvis/eventdisplay/base/errors"
	"github.com/hepvis/eventdisplay/math32"
	"github.com/jinzhu/copier"
)

// PrimitiveMode is how the vertices of a [Mesh] are assembled into primitives.
type PrimitiveMode int32

const (
	// Triangles uses each group of three indices as a triangle.
	Triangles PrimitiveMode = iota

	// Lines uses each pair of indices as an independent segment.
	Lines

	// LineStrip connects every index to the next one.
	LineStrip
)

func (pm PrimitiveMode) String() string {
	switch pm {
	case Triangles:
		return "Triangles"
	case Lines:
		return "Lines"
	case LineStrip:
		return "LineStrip"
	}
	return "Unknown"
}

// Mesh holds the vertex geometry of a mesh or line node, in the
// local coordinates of the node.
type Mesh struct {

	// Name is an optional name, e.g. the object name from a mesh file.
	Name string

	// Mode is how the vertices are assembled into primitives.
	Mode PrimitiveMode

	// Positions are the vertex positions.
	Positions []math32.Vector3

	// Indices into Positions. When empty, the positions are
	// used in order.
	Indices []uint32
}

// NumIndices returns the number of vertices referenced by the primitives.
func (ms *Mesh) NumIndices() int {
	if len(ms.Indices) > 0 {
		return len(ms.Indices)
	}
	return len(ms.Positions)
}

// Vertex returns the position of the i-th referenced vertex.
func (ms *Mesh) Vertex(i int) math32.Vector3 {
	if len(ms.Indices) > 0 {
		return ms.Positions[ms.Indices[i]]
	}
	return ms.Positions[i]
}

// Triangles returns the triangles of a [Triangles] mode mesh.
func (ms *Mesh) Triangles() []math32.Triangle {
	if ms.Mode != Triangles {
		return nil
	}
	n := ms.NumIndices() / 3
	tris := make([]math32.Triangle, n)
	for i := range tris {
		tris[i] = math32.NewTriangle(ms.Vertex(3*i), ms.Vertex(3*i+1), ms.Vertex(3*i+2))
	}
	return tris
}

// Segments returns the line segments of a [Lines] or [LineStrip] mode mesh.
func (ms *Mesh) Segments() [][2]math32.Vector3 {
	n := ms.NumIndices()
	switch ms.Mode {
	case Lines:
		segs := make([][2]math32.Vector3, n/2)
		for i := range segs {
			segs[i] = [2]math32.Vector3{ms.Vertex(2 * i), ms.Vertex(2*i + 1)}
		}
		return segs
	case LineStrip:
		if n < 2 {
			return nil
		}
		segs := make([][2]math32.Vector3, n-1)
		for i := range segs {
			segs[i] = [2]math32.Vector3{ms.Vertex(i), ms.Vertex(i + 1)}
		}
		return segs
	}
	return nil
}

// BBox returns the bounding box of the mesh positions.
func (ms *Mesh) BBox() math32.Box3 {
	bb := math32.B3Empty()
	for _, p := range ms.Positions {
		bb.ExpandByPoint(p)
	}
	return bb
}

// Clone returns a deep copy of the mesh, so that the copy's
// vertex data can be changed independently.
func (ms *Mesh) Clone() *Mesh {
	nm := &Mesh{}
	errors.Log(copier.CopyWithOption(nm, ms, copier.Option{DeepCopy: true}))
	return nm
}

// NewBox returns a new box mesh of the given size, centered
// at the origin, with outward facing triangles.
func NewBox(width, height, depth float32) *Mesh {
	hw, hh, hd := width/2, height/2, depth/2
	ms := &Mesh{Name: "Box", Mode: Triangles}
	// corner i has bit 0 = +x, bit 1 = +y, bit 2 = +z
	for i := 0; i < 8; i++ {
		p := math32.Vec3(-hw, -hh, -hd)
		if i&1 != 0 {
			p.X = hw
		}
		if i&2 != 0 {
			p.Y = hh
		}
		if i&4 != 0 {
			p.Z = hd
		}
		ms.Positions = append(ms.Positions, p)
	}
	ms.Indices = []uint32{
		0, 4, 6, 0, 6, 2, // -x
		1, 3, 7, 1, 7, 5, // +x
		0, 1, 5, 0, 5, 4, // -y
		2, 6, 7, 2, 7, 3, // +y
		0, 2, 3, 0, 3, 1, // -z
		4, 5, 7, 4, 7, 6, // +z
	}
	return ms
}

// EdgeThresholdAngle is the minimum angle in degrees between the normals of
// two adjacent faces for their shared edge to be included by [EdgesMesh].
const EdgeThresholdAngle = 1

// EdgesMesh returns a [Lines] mesh with the edges of the given triangle mesh:
// boundary edges plus the edges between faces that are not coplanar.
// The diagonals of flat quads are thus not included.
func EdgesMesh(ms *Mesh) *Mesh {
	type edgeKey [2]math32.Vector3
	type edgeInfo struct {
		normal math32.Vector3
		keep   bool
	}
	thresh := math32.Cos(math32.DegToRad(EdgeThresholdAngle))
	var order []edgeKey
	edges := map[edgeKey]*edgeInfo{}
	less := func(a, b math32.Vector3) bool {
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	}
	for _, tri := range ms.Triangles() {
		n := tri.Normal()
		vs := [3]math32.Vector3{tri.A, tri.B, tri.C}
		for j := 0; j < 3; j++ {
			a, b := vs[j], vs[(j+1)%3]
			if a == b {
				continue
			}
			if less(b, a) {
				a, b = b, a
			}
			k := edgeKey{a, b}
			if ei, has := edges[k]; has {
				ei.keep = ei.normal.Dot(n) <= thresh
				continue
			}
			edges[k] = &edgeInfo{normal: n, keep: true}
			order = append(order, k)
		}
	}
	em := &Mesh{Name: "Edges", Mode: Lines}
	for _, k := range order {
		if edges[k].keep {
			em.Positions = append(em.Positions, k[0], k[1])
		}
	}
	return em
}
