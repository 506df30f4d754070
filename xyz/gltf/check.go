// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltf

import (
	"errors"
	"fmt"
)

func newErr(reason string) error {
	return errors.New("gltf: " + reason)
}

func validIndex(idx int64, n int) bool {
	return idx >= 0 && idx < int64(n)
}

// Check checks that f is valid glTF, as far as it is used for
// scene documents: all indices resolve, the node hierarchy is a
// forest and accessors fit in their buffer views.
func (f *GLTF) Check() error {
	if f.Asset.Version != Version {
		return newErr(fmt.Sprintf("unsupported asset version %q", f.Asset.Version))
	}
	if s := f.Scene; s != nil && !validIndex(*s, len(f.Scenes)) {
		return newErr("invalid GLTF.Scene index")
	}
	for i := range f.BufferViews {
		bv := &f.BufferViews[i]
		if !validIndex(bv.Buffer, len(f.Buffers)) {
			return newErr("invalid BufferView.Buffer index")
		}
		if bv.ByteOffset < 0 || bv.ByteLength < 1 || bv.ByteOffset+bv.ByteLength > f.Buffers[bv.Buffer].ByteLength {
			return newErr("invalid BufferView range")
		}
	}
	for i := range f.Accessors {
		if err := f.Accessors[i].Check(f); err != nil {
			return err
		}
	}
	for i := range f.Meshes {
		for _, p := range f.Meshes[i].Primitives {
			if err := p.Check(f); err != nil {
				return err
			}
		}
	}
	parent := make([]int, len(f.Nodes))
	for i := range parent {
		parent[i] = -1
	}
	for i := range f.Nodes {
		nd := &f.Nodes[i]
		if nd.Mesh != nil && !validIndex(*nd.Mesh, len(f.Meshes)) {
			return newErr("invalid Node.Mesh index")
		}
		for _, c := range nd.Children {
			if !validIndex(c, len(f.Nodes)) || c == int64(i) {
				return newErr("invalid Node.Children index")
			}
			if parent[c] >= 0 {
				return newErr("node with more than one parent")
			}
			parent[c] = i
		}
	}
	for _, s := range f.Scenes {
		for _, r := range s.Nodes {
			if !validIndex(r, len(f.Nodes)) {
				return newErr("invalid Scene.Nodes index")
			}
			if parent[r] >= 0 {
				return newErr("scene root node with a parent")
			}
		}
	}
	// every node must reach a root without a cycle
	for i := range f.Nodes {
		steps := 0
		for p := parent[i]; p >= 0; p = parent[p] {
			steps++
			if steps > len(f.Nodes) {
				return newErr("cycle in node hierarchy")
			}
		}
	}
	return nil
}

// Check checks that a is valid glTF.accessors' element.
func (a *Accessor) Check(gltf *GLTF) error {
	if a.BufferView == nil {
		return newErr("Accessor without BufferView")
	}
	if !validIndex(*a.BufferView, len(gltf.BufferViews)) {
		return newErr("invalid Accessor.BufferView index")
	}
	size := ComponentSize(a.ComponentType)
	if size == 0 {
		return newErr("invalid Accessor.ComponentType value")
	}
	n := NumComponents(a.Type)
	if n == 0 {
		return newErr("invalid Accessor.Type value")
	}
	if a.Count < 1 {
		return newErr("invalid Accessor.Count value")
	}
	bv := &gltf.BufferViews[*a.BufferView]
	if a.ByteOffset < 0 || a.ByteOffset+a.Count*int64(n*size) > bv.ByteLength {
		return newErr("Accessor exceeds its BufferView")
	}
	return nil
}

// Check checks that p is a valid mesh.primitives' element.
func (p *Primitive) Check(gltf *GLTF) error {
	pos, ok := p.Attributes[POSITION]
	if !ok || !validIndex(pos, len(gltf.Accessors)) {
		return newErr("Primitive without valid POSITION")
	}
	if p.Indices != nil && !validIndex(*p.Indices, len(gltf.Accessors)) {
		return newErr("invalid Primitive.Indices index")
	}
	if p.Material != nil && !validIndex(*p.Material, len(gltf.Materials)) {
		return newErr("invalid Primitive.Material index")
	}
	if m := p.ModeOf(); m < POINTS || m > TRIANGLE_FAN {
		return newErr("invalid Primitive.Mode value")
	}
	return nil
}

// ComponentSize returns the size in bytes of the given component
// type, or 0 if it is not valid.
func ComponentSize(componentType int64) int {
	switch componentType {
	case BYTE, UNSIGNED_BYTE:
		return 1
	case SHORT, UNSIGNED_SHORT:
		return 2
	case UNSIGNED_INT, FLOAT:
		return 4
	}
	return 0
}

// NumComponents returns the number of components of the given
// accessor type, or 0 if it is not valid.
func NumComponents(typ string) int {
	switch typ {
	case SCALAR:
		return 1
	case VEC2:
		return 2
	case VEC3:
		return 3
	case VEC4, MAT2:
		return 4
	case MAT3:
		return 9
	case MAT4:
		return 16
	}
	return 0
}
