// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenedoc

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/Masterminds/semver/v3"
	"github.com/hepvis/eventdisplay/base/errors"
	"github.com/hepvis/eventdisplay/base/ordmap"
	"github.com/hepvis/eventdisplay/colors"
	"github.com/hepvis/eventdisplay/math32"
	"github.com/hepvis/eventdisplay/xyz"
	"github.com/hepvis/eventdisplay/xyz/gltf"
)

// Import replaces the scene of the given engine with the scene of the
// given document, registering the objects named in its manifest.
// Lights are reapplied and the background is reset to the default.
// If the document cannot be decoded, or a name in the manifest does
// not resolve in the payload, nothing is changed and an error wrapping
// [xyz.ErrSerialization] is returned.
func Import(e *xyz.Engine, doc *Document) error {
	sc, objects, err := decode(e, doc)
	if err != nil {
		return errors.Log(fmt.Errorf("scenedoc.Import: %w: %w", xyz.ErrSerialization, err))
	}
	e.ReplaceScene(sc, objects)
	slog.Info("scenedoc.Import: scene imported", "objects", len(objects))
	return nil
}

// decode builds a new scene from the document and returns it with the
// nodes to register, without changing the engine.
func decode(e *xyz.Engine, doc *Document) (*xyz.Scene, []*xyz.Node, error) {
	f, err := gltf.Decode(bytes.NewReader(doc.Scene))
	if err != nil {
		return nil, nil, err
	}
	if err := checkVersion(f); err != nil {
		return nil, nil, err
	}
	if err := f.Check(); err != nil {
		return nil, nil, err
	}
	bufs, err := f.LoadBuffers()
	if err != nil {
		return nil, nil, err
	}
	im := &importer{f: f, bufs: bufs, clipPlanes: e.ClipPlanes(), materials: map[int64]*xyz.Material{}}
	nodes := make([]*xyz.Node, len(f.Nodes))
	for i := range f.Nodes {
		if nodes[i], err = im.node(&f.Nodes[i]); err != nil {
			return nil, nil, err
		}
	}
	for i := range f.Nodes {
		for _, c := range f.Nodes[i].Children {
			nodes[i].AddChild(nodes[c])
		}
	}

	sc := xyz.NewScene()
	if len(f.Scenes) > 0 {
		si := int64(0)
		if f.Scene != nil {
			si = *f.Scene
		}
		for _, r := range f.Scenes[si].Nodes {
			sc.Add(nodes[r])
		}
	}
	sc.SetDefaultLights()
	sc.BackgroundColor = xyz.LightBackground

	objects, err := resolve(sc, &doc.Manifest)
	if err != nil {
		return nil, nil, err
	}
	return sc, objects, nil
}

// checkVersion checks that the document format version of the
// payload satisfies [Compatibility].
func checkVersion(f *gltf.GLTF) error {
	vs, ok := f.Asset.Extras[extraDocumentVersion].(string)
	if !ok {
		return fmt.Errorf("payload has no %s", extraDocumentVersion)
	}
	v, err := semver.NewVersion(vs)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", extraDocumentVersion, vs, err)
	}
	c := errors.Must1(semver.NewConstraint(Compatibility))
	if !c.Check(v) {
		return fmt.Errorf("%s %s does not satisfy %s", extraDocumentVersion, vs, Compatibility)
	}
	return nil
}

// resolve returns the nodes of the scene named in the manifest, in
// order, followed by the event data node if there is one. Every event
// data type and collection in the manifest must also resolve.
func resolve(sc *xyz.Scene, man *Manifest) ([]*xyz.Node, error) {
	var objects []*xyz.Node
	for _, name := range man.Geometries {
		nd := sc.Root.FindByName(name)
		if nd == nil || nd == sc.Root {
			return nil, fmt.Errorf("geometry %q is not in the scene", name)
		}
		objects = append(objects, nd)
	}
	ed := sc.Root.ChildByName(xyz.EventDataName)
	if man.EventData != nil && man.EventData.Len() > 0 && ed == nil {
		return nil, fmt.Errorf("the scene has no %s", xyz.EventDataName)
	}
	if man.EventData != nil {
		for _, kv := range man.EventData.Order {
			var groups []*xyz.Node
			for _, tg := range ed.Children {
				if tg.Name == kv.Key {
					groups = append(groups, tg)
				}
			}
			if len(groups) == 0 {
				return nil, fmt.Errorf("event data type %q is not in the scene", kv.Key)
			}
			for _, coll := range kv.Value {
				if !hasCollection(groups, coll) {
					return nil, fmt.Errorf("event data collection %q of type %q is not in the scene", coll, kv.Key)
				}
			}
		}
	}
	if ed != nil {
		objects = append(objects, ed)
	}
	return objects, nil
}

// hasCollection returns whether any of the given type groups, which
// may share a name, holds a collection with the given name.
func hasCollection(groups []*xyz.Node, name string) bool {
	for _, tg := range groups {
		if tg.ChildByName(name) != nil {
			return true
		}
	}
	return false
}

// importer converts glTF nodes to scene nodes.
type importer struct {
	f          *gltf.GLTF
	bufs       [][]byte
	clipPlanes []*xyz.ClipPlane
	materials  map[int64]*xyz.Material
}

var nodeKinds = map[string]xyz.NodeKind{
	xyz.KindGroup.String(): xyz.KindGroup,
	xyz.KindMesh.String():  xyz.KindMesh,
	xyz.KindLine.String():  xyz.KindLine,
}

var meshModes = map[int64]xyz.PrimitiveMode{
	gltf.TRIANGLES:  xyz.Triangles,
	gltf.LINES:      xyz.Lines,
	gltf.LINE_STRIP: xyz.LineStrip,
}

// node returns a new scene node for the given glTF node, without children.
func (im *importer) node(gn *gltf.Node) (*xyz.Node, error) {
	nd := xyz.NewGroup(gn.Name)
	if v, ok := gn.Extras[extraVisible].(bool); ok {
		nd.Visible = v
	}
	nd.CastShadow, _ = gn.Extras[extraCastShadow].(bool)
	nd.ReceiveShadow, _ = gn.Extras[extraReceiveShadow].(bool)
	if pairs, ok := gn.Extras[extraUserData].([]any); ok {
		nd.UserData = ordmap.New[string, any]()
		for _, p := range pairs {
			kv, ok := p.([]any)
			if !ok || len(kv) != 2 {
				return nil, fmt.Errorf("node %q has invalid userData", gn.Name)
			}
			key, ok := kv[0].(string)
			if !ok {
				return nil, fmt.Errorf("node %q has a non-string userData key", gn.Name)
			}
			nd.UserData.Add(key, kv[1])
		}
	}
	setPose(&nd.Pose, gn)
	if gn.Mesh == nil {
		return nd, nil
	}
	gm := &im.f.Meshes[*gn.Mesh]
	if len(gm.Primitives) != 1 {
		return nil, fmt.Errorf("mesh %q has %d primitives, not 1", gm.Name, len(gm.Primitives))
	}
	prim := &gm.Primitives[0]
	mode, ok := meshModes[prim.ModeOf()]
	if !ok {
		return nil, fmt.Errorf("mesh %q has unsupported mode %d", gm.Name, prim.ModeOf())
	}
	pos, err := im.f.ReadPositions(im.bufs, prim.Attributes[gltf.POSITION])
	if err != nil {
		return nil, err
	}
	ms := &xyz.Mesh{Name: gm.Name, Mode: mode, Positions: pos}
	if prim.Indices != nil {
		if ms.Indices, err = im.f.ReadIndices(im.bufs, *prim.Indices); err != nil {
			return nil, err
		}
		for _, i := range ms.Indices {
			if int(i) >= len(pos) {
				return nil, fmt.Errorf("mesh %q has an index out of range", gm.Name)
			}
		}
	}
	nd.Mesh = ms
	nd.Kind = xyz.KindMesh
	if mode != xyz.Triangles {
		nd.Kind = xyz.KindLine
	}
	if k, ok := nodeKinds[fmt.Sprint(gn.Extras[extraKind])]; ok && k != xyz.KindGroup {
		nd.Kind = k
	}
	if prim.Material != nil {
		nd.Material = im.material(*prim.Material, nd.Kind)
	} else if nd.Kind == xyz.KindLine {
		nd.Material = xyz.NewLineBasicMaterial(colors.White, 1)
	} else {
		nd.Material = xyz.NewPhongMaterial(colors.White)
	}
	return nd, nil
}

// setPose sets the pose from the matrix or the TRS components of the node.
func setPose(ps *xyz.Pose, gn *gltf.Node) {
	if gn.Matrix != nil {
		m := math32.Matrix4(*gn.Matrix)
		ps.SetMatrix(&m)
		return
	}
	if t := gn.Translation; t != nil {
		ps.Pos = math32.Vec3(t[0], t[1], t[2])
	}
	if r := gn.Rotation; r != nil {
		ps.Quat = math32.NewQuat(r[0], r[1], r[2], r[3])
	}
	if s := gn.Scale; s != nil {
		ps.Scale = math32.Vec3(s[0], s[1], s[2])
	}
	ps.UpdateMatrix()
}

var materialKinds = map[string]xyz.MaterialKind{
	xyz.MaterialBasic.String():     xyz.MaterialBasic,
	xyz.MaterialPhong.String():     xyz.MaterialPhong,
	xyz.MaterialLineBasic.String(): xyz.MaterialLineBasic,
}

// material returns the material with the given index, creating it the
// first time, so that shared materials stay shared. The kind defaults
// to shaded for meshes and unlit for lines.
func (im *importer) material(mi int64, kind xyz.NodeKind) *xyz.Material {
	if mat, has := im.materials[mi]; has {
		return mat
	}
	gm := &im.f.Materials[mi]
	mat := &xyz.Material{}
	mat.Defaults()
	mat.Kind = xyz.MaterialPhong
	if kind == xyz.KindLine {
		mat.Kind = xyz.MaterialLineBasic
	}
	if mk, ok := materialKinds[fmt.Sprint(gm.Extras[extraKind])]; ok {
		mat.Kind = mk
	}
	mat.Color = colors.White
	if pbr := gm.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
		c := pbr.BaseColorFactor
		mat.Color = colors.FromFloat32(c[0], c[1], c[2], 1)
		mat.Opacity = c[3]
	}
	mat.Transparent = gm.AlphaMode == gltf.BLEND
	if gm.DoubleSided {
		mat.Side = xyz.SideDouble
	} else if s, ok := gm.Extras[extraSide].(float64); ok && xyz.Side(s) == xyz.SideBack {
		mat.Side = xyz.SideBack
	}
	if w, ok := gm.Extras[extraLineWidth].(float64); ok {
		mat.LineWidth = float32(w)
	}
	if clipped, _ := gm.Extras[extraClipped].(bool); clipped {
		mat.ClipPlanes = im.clipPlanes
		mat.ClipIntersection, _ = gm.Extras[extraClipIntersection].(bool)
	}
	im.materials[mi] = mat
	return mat
}
