// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"sort"

	"github.com/hepvis/eventdisplay/math32"
)

// DefaultLinePrecision is the default maximum distance in world units
// between a pick ray and a line for the line to be hit.
const DefaultLinePrecision = 20

// Attribute is one key-value pair of the metadata of a picked object.
type Attribute struct {
	Name  string
	Value any
}

// PickResult is the object under a picked point and its metadata.
type PickResult struct {

	// Name is the name of the picked object.
	Name string

	// Attributes are the user data entries of the picked node, in order.
	Attributes []Attribute
}

// Hit is an intersection of a pick ray with a node.
type Hit struct {

	// Node is the intersected mesh or line node.
	Node *Node

	// Object is the registered top-level object containing Node.
	Object *Node

	// Distance is the distance from the ray origin.
	Distance float32

	// Point is the intersection point in world coordinates,
	// the closest point on the ray for lines.
	Point math32.Vector3
}

// Pick returns the nearest object under the given pointer position
// in a viewport of the given size, if any.
func (e *Engine) Pick(x, y, width, height float32) (*PickResult, bool) {
	res := &PickResult{}
	if !e.PickInto(x, y, width, height, res) {
		return nil, false
	}
	return res, true
}

// PickInto fills the given result with the nearest object under the
// given pointer position in a viewport of the given size. The result
// is not modified when nothing is hit, or picking is disabled.
func (e *Engine) PickInto(x, y, width, height float32, res *PickResult) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	if e.Options.DisableSelecting {
		return false
	}
	ray := e.activeControls.Camera.Ray(math32.NDC(x, y, width, height))
	hits := e.intersect(ray)
	if len(hits) == 0 {
		return false
	}
	h := hits[0]
	res.Name = h.Object.Name
	if h.Object.Name == EventDataName {
		res.Name = h.Node.Name
	}
	res.Attributes = res.Attributes[:0]
	if ud := hitUserData(h); ud != nil {
		for _, kv := range ud.Order {
			res.Attributes = append(res.Attributes, Attribute{Name: kv.Key, Value: kv.Value})
		}
	}
	return true
}

// hitUserData returns the user data of the nearest node from the hit
// node up to its owning object that has any. Event data elements
// carry their own attributes, so the search stops at the element.
func hitUserData(h Hit) *UserData {
	if h.Object.Name == EventDataName {
		return h.Node.UserData
	}
	for n := h.Node; n != nil; n = n.Parent {
		if n.UserData != nil {
			return n.UserData
		}
		if n == h.Object {
			break
		}
	}
	return nil
}

// Intersect returns the hits of the given world ray with the visible
// geometry of all registered objects, nearest first.
func (e *Engine) Intersect(ray math32.Ray) []Hit {
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	return e.intersect(ray)
}

func (e *Engine) intersect(ray math32.Ray) []Hit {
	e.Scene.UpdateWorldMatrices()
	var hits []Hit
	prec := e.Options.LinePrecision
	for _, obj := range e.Registry.Nodes() {
		if obj.Parent == nil || !obj.IsVisible() {
			continue
		}
		nodes := obj.Filter(func(n *Node) bool {
			return n.Mesh != nil && n.IsVisible()
		})
		for _, n := range nodes {
			for _, h := range e.intersectNode(ray, n, prec) {
				h.Object = obj
				hits = append(hits, h)
			}
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// intersectNode returns the unclipped hits of the ray with the
// primitives of the given mesh or line node.
func (e *Engine) intersectNode(ray math32.Ray, n *Node, prec float32) []Hit {
	var hits []Hit
	wm := &n.Pose.WorldMatrix
	switch n.Kind {
	case KindMesh:
		side := SideFront
		if n.Material != nil {
			side = n.Material.Side
		}
		for _, tri := range n.Mesh.Triangles() {
			wt := tri.MulMatrix4(wm)
			var t float32
			var ok bool
			switch side {
			case SideBack:
				t, ok = ray.IntersectTriangle(wt.C, wt.B, wt.A, true)
			case SideDouble:
				t, ok = ray.IntersectTriangle(wt.A, wt.B, wt.C, false)
			default:
				t, ok = ray.IntersectTriangle(wt.A, wt.B, wt.C, true)
			}
			if !ok {
				continue
			}
			pt := ray.At(t)
			if e.isClipped(n.Material, pt) {
				continue
			}
			hits = append(hits, Hit{Node: n, Distance: t, Point: pt})
		}
	case KindLine:
		precSq := prec * prec
		for _, seg := range n.Mesh.Segments() {
			v0 := seg[0].MulMatrix4(wm)
			v1 := seg[1].MulMatrix4(wm)
			distSq, onRay, _ := ray.DistanceSqToSegment(v0, v1)
			if distSq > precSq {
				continue
			}
			if e.isClipped(n.Material, onRay) {
				continue
			}
			hits = append(hits, Hit{Node: n, Distance: ray.Origin.DistanceTo(onRay), Point: onRay})
		}
	}
	return hits
}
