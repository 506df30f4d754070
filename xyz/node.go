// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"slices"

	"github.com/hepvis/eventdisplay/base/ordmap"
	"github.com/hepvis/eventdisplay/math32"
)

// NodeKind is the kind of a scene [Node], determining which
// of its fields are used.
type NodeKind int32

const (
	// KindGroup is a container with no geometry of its own.
	KindGroup NodeKind = iota

	// KindMesh is a triangle mesh.
	KindMesh

	// KindLine is a set of line segments or a line strip.
	KindLine
)

func (nk NodeKind) String() string {
	switch nk {
	case KindGroup:
		return "Group"
	case KindMesh:
		return "Mesh"
	case KindLine:
		return "Line"
	}
	return "Unknown"
}

// UserData is the ordered key-value metadata of a node, shown
// as the attributes of a pick.
type UserData = ordmap.Map[string, any]

// Node is a node in the scene graph. A parent exclusively owns
// its children.
type Node struct {

	// Name of the node. Names are unique among registered objects
	// but not among deeper descendants.
	Name string

	// Kind determines whether Mesh and Material are used.
	Kind NodeKind

	// Pose is the transform of the node relative to its parent.
	Pose Pose

	// Visible is whether the node and its children are rendered and pickable.
	Visible bool

	// CastShadow and ReceiveShadow are the shadow flags of the node.
	CastShadow, ReceiveShadow bool

	// UserData is picking metadata and provenance, such as "info".
	// It can be shared between nodes.
	UserData *UserData

	// Mesh is the geometry of a mesh or line node.
	Mesh *Mesh

	// Material is the material of a mesh or line node.
	// It can be shared between nodes.
	Material *Material

	// Parent is the parent of the node, nil for a root.
	Parent *Node

	// Children are the children of the node, in order.
	Children []*Node
}

// NewGroup returns a new group node with the given name.
func NewGroup(name string) *Node {
	return newNode(name, KindGroup)
}

// NewMeshNode returns a new mesh node with the given name, mesh and material.
func NewMeshNode(name string, ms *Mesh, mat *Material) *Node {
	nd := newNode(name, KindMesh)
	nd.Mesh = ms
	nd.Material = mat
	return nd
}

// NewLineNode returns a new line node with the given name, mesh and material.
func NewLineNode(name string, ms *Mesh, mat *Material) *Node {
	nd := newNode(name, KindLine)
	nd.Mesh = ms
	nd.Material = mat
	return nd
}

func newNode(name string, kind NodeKind) *Node {
	nd := &Node{Name: name, Kind: kind, Visible: true}
	nd.Pose.Defaults()
	nd.Pose.UpdateMatrix()
	return nd
}

func (nd *Node) String() string {
	return fmt.Sprintf("%s %q", nd.Kind, nd.Name)
}

// AddChild adds the given node as the last child of this node,
// detaching it from any previous parent.
func (nd *Node) AddChild(child *Node) {
	child.Detach()
	child.Parent = nd
	nd.Children = append(nd.Children, child)
}

// RemoveChild removes the given child, returning false if it is
// not a child of this node.
func (nd *Node) RemoveChild(child *Node) bool {
	idx := slices.Index(nd.Children, child)
	if idx < 0 {
		return false
	}
	nd.Children = slices.Delete(nd.Children, idx, idx+1)
	child.Parent = nil
	return true
}

// Detach removes the node from its parent, if any.
func (nd *Node) Detach() {
	if nd.Parent != nil {
		nd.Parent.RemoveChild(nd)
	}
}

// Descendants returns this node and all of its descendants in
// depth-first pre-order. It uses an explicit stack and returns the
// full list before any caller mutation.
func (nd *Node) Descendants() []*Node {
	var nodes []*Node
	stack := []*Node{nd}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodes = append(nodes, n)
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return nodes
}

// Filter returns the nodes of [Node.Descendants] for which fun returns true.
func (nd *Node) Filter(fun func(n *Node) bool) []*Node {
	var nodes []*Node
	for _, n := range nd.Descendants() {
		if fun(n) {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// FindByName returns the first node with the given name in
// breadth-first order starting at this node, or nil if none.
func (nd *Node) FindByName(name string) *Node {
	queue := []*Node{nd}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n.Name == name {
			return n
		}
		queue = append(queue, n.Children...)
	}
	return nil
}

// ChildByName returns the direct child with the given name, or nil.
func (nd *Node) ChildByName(name string) *Node {
	for _, c := range nd.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Root returns the top-most ancestor of the node.
func (nd *Node) Root() *Node {
	n := nd
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// IsVisible returns whether the node and all of its ancestors are visible.
func (nd *Node) IsVisible() bool {
	for n := nd; n != nil; n = n.Parent {
		if !n.Visible {
			return false
		}
	}
	return true
}

// SetUserData sets the given user data key, creating
// the user data map if needed.
func (nd *Node) SetUserData(key string, val any) {
	if nd.UserData == nil {
		nd.UserData = ordmap.New[string, any]()
	}
	nd.UserData.Add(key, val)
}

// Info returns the "info" provenance text of the node, if any.
func (nd *Node) Info() string {
	s, _ := nd.UserData.ValueByKey("info").(string)
	return s
}

// UpdateWorldMatrix updates the local and world matrices of this node
// and all of its descendants, given the world matrix of its parent
// (nil for a root).
func (nd *Node) UpdateWorldMatrix(parWorld *math32.Matrix4) {
	type item struct {
		n   *Node
		par *math32.Matrix4
	}
	stack := []item{{nd, parWorld}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		it.n.Pose.UpdateMatrix()
		it.n.Pose.UpdateWorldMatrix(it.par)
		for _, c := range it.n.Children {
			stack = append(stack, item{c, &it.n.Pose.WorldMatrix})
		}
	}
}

// WorldBBox returns the bounding box in world coordinates of the
// geometry of this node and its descendants. World matrices must be
// up to date.
func (nd *Node) WorldBBox() math32.Box3 {
	bb := math32.B3Empty()
	for _, n := range nd.Descendants() {
		if n.Mesh == nil {
			continue
		}
		bb.ExpandByBox(n.Mesh.BBox().MulMatrix4(&n.Pose.WorldMatrix))
	}
	return bb
}
