// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"testing"

	"github.com/hepvis/eventdisplay/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxOutwardNormals(t *testing.T) {
	ms := NewBox(2, 4, 6)
	tris := ms.Triangles()
	require.Len(t, tris, 12)
	for _, tri := range tris {
		// the center of the box is behind every face
		assert.Greater(t, tri.Normal().Dot(tri.Midpoint()), float32(0))
	}
	bb := ms.BBox()
	assert.Equal(t, math32.Vec3(-1, -2, -3), bb.Min)
	assert.Equal(t, math32.Vec3(1, 2, 3), bb.Max)
}

func TestEdgesMesh(t *testing.T) {
	em := EdgesMesh(NewBox(1, 1, 1))
	assert.Equal(t, Lines, em.Mode)
	segs := em.Segments()
	assert.Len(t, segs, 12)
	for _, s := range segs {
		assert.InDelta(t, 1, s[1].Sub(s[0]).Length(), 1e-6)
	}
}

func TestSegments(t *testing.T) {
	pts := []math32.Vector3{{}, math32.Vec3(1, 0, 0), math32.Vec3(1, 1, 0)}
	strip := &Mesh{Mode: LineStrip, Positions: pts}
	assert.Len(t, strip.Segments(), 2)
	lines := &Mesh{Mode: Lines, Positions: pts}
	assert.Len(t, lines.Segments(), 1)
	assert.Nil(t, strip.Triangles())
	assert.Nil(t, (&Mesh{Mode: LineStrip, Positions: pts[:1]}).Segments())
}

func TestMeshClone(t *testing.T) {
	ms := NewBox(1, 1, 1)
	cl := ms.Clone()
	require.Equal(t, ms.Positions, cl.Positions)
	require.Equal(t, ms.Indices, cl.Indices)
	cl.Positions[0] = math32.Vec3(9, 9, 9)
	cl.Indices[0] = 7
	assert.NotEqual(t, ms.Positions[0], cl.Positions[0])
	assert.Equal(t, uint32(0), ms.Indices[0])
}

func TestFlatten(t *testing.T) {
	e := NewEngine(Options{})
	imp := newImported(e, "Coil")
	meshes := imp.Filter(func(n *Node) bool { return n.Kind == KindMesh })
	require.Len(t, meshes, 2)
	mat := meshes[0].Material
	for _, m := range meshes {
		assert.Equal(t, "Coil", m.Name)
		assert.Same(t, imp.UserData, m.UserData)
		assert.Same(t, mat, m.Material)
		assert.False(t, m.CastShadow)
		assert.False(t, m.ReceiveShadow)
	}
	assert.Equal(t, MaterialPhong, mat.Kind)
	assert.Equal(t, SideFront, mat.Side)
	assert.Equal(t, DefaultMeshColor, mat.Color)
	assert.True(t, mat.ClipIntersection)
	assert.False(t, mat.ClipShadows)
	assert.Equal(t, e.ClipPlanes(), mat.ClipPlanes)
	assert.Equal(t, InfoFile, meshes[1].Info())

	gp := NewGroup("Double")
	gp.AddChild(NewMeshNode("a", NewBox(1, 1, 1), nil))
	Flatten(gp, DefaultMeshColor, true, nil)
	assert.Equal(t, SideDouble, gp.Children[0].Material.Side)
}
