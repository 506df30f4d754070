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

func testParams() DetectorParams {
	return DetectorParams{
		Name:     "Pixel",
		Radius:   100,
		MinZ:     -50,
		MaxZ:     50,
		NumZEl:   4,
		NumPhiEl: 8,
		XDim:     10,
		YDim:     2,
		ZDim:     20,
		Colour:   0x356aa0,
	}
}

func countKinds(nodes []*Node) (meshes, lines int) {
	for _, n := range nodes {
		switch n.Kind {
		case KindMesh:
			meshes++
		case KindLine:
			lines++
		}
	}
	return
}

func TestBuildGeometryCounts(t *testing.T) {
	tests := []struct {
		numZ, numPhi int
	}{
		{1, 1}, {4, 8}, {3, 5}, {0, 8}, {4, 0},
	}
	for _, tt := range tests {
		e := NewEngine(Options{})
		p := testParams()
		p.NumZEl, p.NumPhiEl = tt.numZ, tt.numPhi
		gp := e.BuildGeometryFromParameters(p)
		meshes, lines := countKinds(gp.Children)
		n := tt.numZ * tt.numPhi
		assert.Equal(t, n, meshes, "boxes for %d x %d", tt.numZ, tt.numPhi)
		assert.Equal(t, n, lines, "edges for %d x %d", tt.numZ, tt.numPhi)
		assert.Same(t, gp, e.Object("Pixel"))
	}
}

func TestBuildGeometryZPlacement(t *testing.T) {
	p := testParams()
	nodes := DetectorModules(p, DefaultMeshColor)
	require.Len(t, nodes, 2*p.NumZEl*p.NumPhiEl)
	zStep := (p.MaxZ - p.MinZ) / float32(p.NumZEl)
	for iz := 0; iz < p.NumZEl; iz++ {
		want := p.MinZ + zStep/2 + float32(iz)*zStep
		for ip := 0; ip < p.NumPhiEl; ip++ {
			cube := nodes[2*(iz*p.NumPhiEl+ip)]
			egh := nodes[2*(iz*p.NumPhiEl+ip)+1]
			assert.Equal(t, KindMesh, cube.Kind)
			assert.InDelta(t, want, cube.Pose.Pos.Z, 1e-3)
			assert.InDelta(t, p.Radius, math32.Vec3(cube.Pose.Pos.X, cube.Pose.Pos.Y, 0).Length(), 1e-3)
			assert.Equal(t, cube.Pose.Matrix, egh.Pose.Matrix)
		}
	}
}

func TestBuildGeometryPhiStartsOneStepPastOffset(t *testing.T) {
	p := testParams()
	p.PhiOffset = 0
	p.NumPhiEl = 4
	p.NumZEl = 1
	nodes := DetectorModules(p, DefaultMeshColor)
	first := nodes[0].Pose.Pos
	assert.InDelta(t, math32.Pi/2, math32.Atan2(first.Y, first.X), 1e-5)
	assert.InDelta(t, 0, first.X, 1e-4)
	assert.InDelta(t, p.Radius, first.Y, 1e-4)

	last := nodes[len(nodes)-2].Pose.Pos
	assert.InDelta(t, p.Radius, last.X, 1e-4)
	assert.InDelta(t, 0, last.Y, 1e-4)
}

func TestBuildGeometryMaterials(t *testing.T) {
	p := testParams()
	p.NumZEl, p.NumPhiEl = 1, 2
	nodes := DetectorModules(p, DefaultMeshColor)
	cube, egh := nodes[0], nodes[1]
	assert.Equal(t, MaterialBasic, cube.Material.Kind)
	assert.True(t, cube.Material.Transparent)
	assert.Equal(t, float32(ModuleOpacity), cube.Material.Opacity)
	assert.Equal(t, MaterialLineBasic, egh.Material.Kind)
	assert.Equal(t, float32(ModuleEdgeWidth), egh.Material.LineWidth)
	assert.Equal(t, cube.Material.Color, egh.Material.Color)
	assert.Len(t, egh.Mesh.Segments(), 12)

	// each module has its own copy of the geometry
	assert.NotSame(t, cube.Mesh, nodes[2].Mesh)
	cube.Mesh.Positions[0].X = 1000
	assert.NotEqual(t, cube.Mesh.Positions[0], nodes[2].Mesh.Positions[0])
}

func TestBuildGeometryDefaultNames(t *testing.T) {
	e := NewEngine(Options{})
	p := testParams()
	p.Name = ""
	a := e.BuildGeometryFromParameters(p)
	b := e.BuildGeometryFromParameters(p)
	assert.Equal(t, "Detector1", a.Name)
	assert.Equal(t, "Detector2", b.Name)
	assert.Equal(t, []string{"Detector1", "Detector2"}, e.GeometryNames())
}
