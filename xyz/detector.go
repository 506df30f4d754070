// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hepvis/eventdisplay/colors"
	"github.com/hepvis/eventdisplay/math32"
)

// DetectorParams are the layout parameters of a detector made of
// identical box modules on a cylindrical grid around the Z axis.
type DetectorParams struct {

	// Name of the group holding the modules. A name is generated if empty.
	Name string `json:"name,omitempty" toml:"name" yaml:"name"`

	// Radius is the distance of the module centers from the Z axis.
	Radius float32 `json:"radius" toml:"radius" yaml:"radius"`

	// MinZ and MaxZ bound the Z range covered by the modules.
	MinZ float32 `json:"minZ" toml:"minZ" yaml:"minZ"`
	MaxZ float32 `json:"maxZ" toml:"maxZ" yaml:"maxZ"`

	// NumZEl is the number of modules along Z.
	NumZEl int `json:"numZEl" toml:"numZEl" yaml:"numZEl"`

	// NumPhiEl is the number of modules around the Z axis.
	NumPhiEl int `json:"numPhiEl" toml:"numPhiEl" yaml:"numPhiEl"`

	// PhiOffset is the azimuth in radians the placement starts from.
	// The first module is one step past it.
	PhiOffset float32 `json:"phiOffset" toml:"phiOffset" yaml:"phiOffset"`

	// TiltAngle is an extra rotation of each module around Z, in radians.
	TiltAngle float32 `json:"tiltAngle" toml:"tiltAngle" yaml:"tiltAngle"`

	// XDim, YDim and ZDim are the size of each module.
	XDim float32 `json:"xDim" toml:"xDim" yaml:"xDim"`
	YDim float32 `json:"yDim" toml:"yDim" yaml:"yDim"`
	ZDim float32 `json:"zDim" toml:"zDim" yaml:"zDim"`

	// Colour is the color of the modules, any value accepted by [colors.FromAny].
	Colour any `json:"colour" toml:"colour" yaml:"colour"`
}

// Detector module materials.
const (
	ModuleOpacity   = 0.5
	ModuleEdgeWidth = 2
)

// BuildGeometryFromParameters adds the modules described by the given
// parameters to the scene, each as a translucent box and a line overlay
// of its edges, under a registered group named after the parameters.
// Zero counts produce an empty group.
func (e *Engine) BuildGeometryFromParameters(p DetectorParams) *Node {
	clr, err := colors.FromAny(p.Colour)
	if err != nil {
		slog.Warn("xyz.Engine.BuildGeometryFromParameters: using default color", "err", err)
		clr = DefaultMeshColor
	}
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	if p.Name == "" {
		e.detectorCount++
		p.Name = fmt.Sprintf("Detector%d", e.detectorCount)
	}
	gp := NewGroup(p.Name)
	for _, nd := range DetectorModules(p, clr) {
		gp.AddChild(nd)
	}
	e.register(gp)
	return gp
}

// DetectorModules returns the box and edge nodes of the modules
// described by the given parameters, in placement order: for each Z
// slice from MinZ up, each module around Z from PhiOffset, with the
// box of each module followed by its edges.
func DetectorModules(p DetectorParams, clr color.RGBA) []*Node {
	if p.NumZEl <= 0 || p.NumPhiEl <= 0 {
		return nil
	}
	box := NewBox(p.XDim, p.YDim, p.ZDim)
	edges := EdgesMesh(box)
	mat := NewBasicMaterial(clr)
	mat.Opacity = ModuleOpacity
	mat.Transparent = true

	zStep := (p.MaxZ - p.MinZ) / float32(p.NumZEl)
	phiStep := 2 * math32.Pi / float32(p.NumPhiEl)
	nodes := make([]*Node, 0, 2*p.NumZEl*p.NumPhiEl)
	z := p.MinZ + zStep/2
	for iz := 0; iz < p.NumZEl; iz++ {
		phi := p.PhiOffset
		for ip := 0; ip < p.NumPhiEl; ip++ {
			phi += phiStep
			center := math32.Vec3(p.Radius*math32.Cos(phi), p.Radius*math32.Sin(phi), z)
			var m math32.Matrix4
			m.SetRotationFromEuler(math32.Vec3(0, 0, math32.Pi/2+phi+p.TiltAngle))
			m.SetPosition(center)

			name := fmt.Sprintf("%s_%d_%d", p.Name, iz, ip)
			cube := NewMeshNode(name, box.Clone(), mat)
			cube.Pose.SetMatrix(&m)
			egh := NewLineNode(name+"_edges", edges.Clone(), NewLineBasicMaterial(clr, ModuleEdgeWidth))
			egh.Pose.SetMatrix(&m)
			nodes = append(nodes, cube, egh)
		}
		z += zStep
	}
	return nodes
}
