// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenedoc

import (
	"encoding/json"
	"fmt"

	"github.com/hepvis/eventdisplay/colors"
	"github.com/hepvis/eventdisplay/xyz"
	"github.com/hepvis/eventdisplay/xyz/gltf"
)

// Keys of the extras of exported nodes and materials.
const (
	extraVisible          = "visible"
	extraKind             = "kind"
	extraUserData         = "userData"
	extraCastShadow       = "castShadow"
	extraReceiveShadow    = "receiveShadow"
	extraSide             = "side"
	extraTransparent      = "transparent"
	extraLineWidth        = "lineWidth"
	extraClipped          = "clipped"
	extraClipIntersection = "clipIntersection"
	extraDocumentVersion  = "documentVersion"
)

// Export returns a document with the manifest and the full scene graph
// of the given engine. The axes helper is not exported.
func Export(e *xyz.Engine) (*Document, error) {
	man := Manifest{EventData: e.EventDataManifest(), Geometries: e.GeometryNames()}

	e.RenderMu.RLock()
	ex := newExporter()
	for _, c := range e.Scene.Root.Children {
		if c.Name == xyz.AxesName {
			continue
		}
		ex.roots = append(ex.roots, ex.addNode(c))
	}
	e.RenderMu.RUnlock()

	payload, err := json.Marshal(ex.finish())
	if err != nil {
		return nil, fmt.Errorf("scenedoc.Export: %w: %w", xyz.ErrSerialization, err)
	}
	return &Document{Manifest: man, Scene: payload}, nil
}

// exporter accumulates the glTF payload of a scene graph.
type exporter struct {
	b         *gltf.Builder
	materials map[*xyz.Material]int64
	roots     []int64
}

func newExporter() *exporter {
	b := gltf.NewBuilder(Generator)
	b.GLTF.Asset.Extras = map[string]any{extraDocumentVersion: FormatVersion}
	return &exporter{b: b, materials: map[*xyz.Material]int64{}}
}

func (ex *exporter) finish() *gltf.GLTF {
	f := ex.b.Finish()
	f.Scenes = []gltf.Scene{{Name: "Scene", Nodes: ex.roots}}
	f.Scene = gltf.Index(0)
	return f
}

// addNode adds the given node and its descendants, returning its index.
// Nodes are added parents first, so that indices are assigned in
// depth-first order.
func (ex *exporter) addNode(nd *xyz.Node) int64 {
	f := ex.b.GLTF
	gn := gltf.Node{Name: nd.Name, Extras: map[string]any{
		extraVisible: nd.Visible,
		extraKind:    nd.Kind.String(),
	}}
	if nd.CastShadow {
		gn.Extras[extraCastShadow] = true
	}
	if nd.ReceiveShadow {
		gn.Extras[extraReceiveShadow] = true
	}
	if nd.UserData != nil && nd.UserData.Len() > 0 {
		// pairs keep the key order, which an object would lose
		pairs := make([][2]any, 0, nd.UserData.Len())
		for _, kv := range nd.UserData.Order {
			pairs = append(pairs, [2]any{kv.Key, kv.Value})
		}
		gn.Extras[extraUserData] = pairs
	}
	setTransform(&gn, &nd.Pose)
	if nd.Mesh != nil && nd.Mesh.NumIndices() > 0 && nd.Kind != xyz.KindGroup {
		gn.Mesh = gltf.Index(int(ex.addMesh(nd)))
	}
	f.Nodes = append(f.Nodes, gn)
	idx := int64(len(f.Nodes) - 1)
	for _, c := range nd.Children {
		ci := ex.addNode(c)
		f.Nodes[idx].Children = append(f.Nodes[idx].Children, ci)
	}
	return idx
}

// setTransform sets the transform of the given glTF node from the pose,
// as a matrix for a manual matrix and as TRS components otherwise.
func setTransform(gn *gltf.Node, ps *xyz.Pose) {
	if ps.MatrixManual {
		m := [16]float32(ps.Matrix)
		gn.Matrix = &m
		return
	}
	if !ps.Pos.IsNil() {
		gn.Translation = &[3]float32{ps.Pos.X, ps.Pos.Y, ps.Pos.Z}
	}
	q := ps.Quat
	if !q.IsNil() && !(q.X == 0 && q.Y == 0 && q.Z == 0 && q.W == 1) {
		gn.Rotation = &[4]float32{q.X, q.Y, q.Z, q.W}
	}
	s := ps.Scale
	if !s.IsNil() && !(s.X == 1 && s.Y == 1 && s.Z == 1) {
		gn.Scale = &[3]float32{s.X, s.Y, s.Z}
	}
}

// primitiveModes are the glTF primitive modes of the mesh modes.
var primitiveModes = map[xyz.PrimitiveMode]int64{
	xyz.Triangles: gltf.TRIANGLES,
	xyz.Lines:     gltf.LINES,
	xyz.LineStrip: gltf.LINE_STRIP,
}

func (ex *exporter) addMesh(nd *xyz.Node) int64 {
	ms := nd.Mesh
	prim := gltf.Primitive{
		Attributes: map[string]int64{gltf.POSITION: ex.b.AddPositions(ms.Positions)},
		Mode:       gltf.Index(int(primitiveModes[ms.Mode])),
	}
	if len(ms.Indices) > 0 {
		idx := ex.b.AddIndices(ms.Indices)
		prim.Indices = &idx
	}
	if nd.Material != nil {
		mi := ex.addMaterial(nd.Material)
		prim.Material = &mi
	}
	f := ex.b.GLTF
	f.Meshes = append(f.Meshes, gltf.Mesh{Name: ms.Name, Primitives: []gltf.Primitive{prim}})
	return int64(len(f.Meshes) - 1)
}

// addMaterial adds the given material once, returning its index,
// so that shared materials stay shared.
func (ex *exporter) addMaterial(mat *xyz.Material) int64 {
	if mi, has := ex.materials[mat]; has {
		return mi
	}
	r, g, b, _ := colors.Float32(mat.Color)
	metal, rough := float32(0), float32(1)
	gm := gltf.Material{
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{r, g, b, mat.Alpha()},
			MetallicFactor:  &metal,
			RoughnessFactor: &rough,
		},
		AlphaMode:   gltf.OPAQUE,
		DoubleSided: mat.Side == xyz.SideDouble,
		Extras: map[string]any{
			extraKind: mat.Kind.String(),
			extraSide: int(mat.Side),
		},
	}
	if mat.Transparent {
		gm.AlphaMode = gltf.BLEND
		gm.Extras[extraTransparent] = true
	}
	if mat.Kind == xyz.MaterialLineBasic {
		gm.Extras[extraLineWidth] = mat.LineWidth
	}
	if len(mat.ClipPlanes) > 0 {
		gm.Extras[extraClipped] = true
		gm.Extras[extraClipIntersection] = mat.ClipIntersection
	}
	f := ex.b.GLTF
	f.Materials = append(f.Materials, gm)
	mi := int64(len(f.Materials) - 1)
	ex.materials[mat] = mi
	return mi
}
