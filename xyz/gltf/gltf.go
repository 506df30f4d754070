// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gltf implements the subset of glTF 2.0 serialization used for
// scene documents: nodes, triangle and line meshes, materials and
// embedded buffers. Unknown properties are carried in Extras.
package gltf

import (
	"encoding/json"
	"io"
)

// Version is the glTF version written to [Asset.Version].
const Version = "2.0"

// GLTF is the root glTF object.
type GLTF struct {
	ExtensionsUsed []string     `json:"extensionsUsed,omitempty"`
	Accessors      []Accessor   `json:"accessors,omitempty"`
	Asset          Asset        `json:"asset"`
	Buffers        []Buffer     `json:"buffers,omitempty"`
	BufferViews    []BufferView `json:"bufferViews,omitempty"`
	Materials      []Material   `json:"materials,omitempty"`
	Meshes         []Mesh       `json:"meshes,omitempty"`
	Nodes          []Node       `json:"nodes,omitempty"`
	Scene          *int64       `json:"scene,omitempty"`
	Scenes         []Scene      `json:"scenes,omitempty"`
	Extras         any          `json:"extras,omitempty"`
}

// Asset is the metadata of a glTF payload.
type Asset struct {
	Copyright  string         `json:"copyright,omitempty"`
	Generator  string         `json:"generator,omitempty"`
	Version    string         `json:"version"`
	MinVersion string         `json:"minVersion,omitempty"`
	Extras     map[string]any `json:"extras,omitempty"`
}

// Accessor is a typed view into a buffer view.
type Accessor struct {
	BufferView    *int64    `json:"bufferView,omitempty"`
	ByteOffset    int64     `json:"byteOffset,omitempty"` // Default is 0.
	ComponentType int64     `json:"componentType"`
	Normalized    bool      `json:"normalized,omitempty"`
	Count         int64     `json:"count"`
	Type          string    `json:"type"`
	Max           []float32 `json:"max,omitempty"`
	Min           []float32 `json:"min,omitempty"`
	Name          string    `json:"name,omitempty"`
	Extras        any       `json:"extras,omitempty"`
}

// accessor.*.componentType values.
const (
	BYTE           = 5120
	UNSIGNED_BYTE  = 5121
	SHORT          = 5122
	UNSIGNED_SHORT = 5123
	UNSIGNED_INT   = 5125
	FLOAT          = 5126
)

// accessor.type values.
const (
	SCALAR = "SCALAR"
	VEC2   = "VEC2"
	VEC3   = "VEC3"
	VEC4   = "VEC4"
	MAT2   = "MAT2"
	MAT3   = "MAT3"
	MAT4   = "MAT4"
)

// Buffer is a block of binary data, embedded as a data URI.
type Buffer struct {
	URI        string `json:"uri,omitempty"`
	ByteLength int64  `json:"byteLength"`
	Name       string `json:"name,omitempty"`
	Extras     any    `json:"extras,omitempty"`
}

// BufferView is a contiguous slice of a buffer.
type BufferView struct {
	Buffer     int64  `json:"buffer"`
	ByteOffset int64  `json:"byteOffset,omitempty"` // Default is 0.
	ByteLength int64  `json:"byteLength"`
	ByteStride int64  `json:"byteStride,omitempty"` // 0 for tightly packed.
	Target     int64  `json:"target,omitempty"`     // 0 for no hint.
	Name       string `json:"name,omitempty"`
	Extras     any    `json:"extras,omitempty"`
}

// bufferView.target values.
const (
	ARRAY_BUFFER = iota + 34962
	ELEMENT_ARRAY_BUFFER
)

// Material is the appearance of a mesh primitive.
type Material struct {
	PBRMetallicRoughness *PBRMetallicRoughness `json:"pbrMetallicRoughness,omitempty"`
	AlphaMode            string                `json:"alphaMode,omitempty"`   // Default is "OPAQUE".
	DoubleSided          bool                  `json:"doubleSided,omitempty"` // Default is false.
	Name                 string                `json:"name,omitempty"`
	Extras               map[string]any        `json:"extras,omitempty"`
}

// PBRMetallicRoughness is the metallic-roughness model of a material.
type PBRMetallicRoughness struct {
	BaseColorFactor *[4]float32 `json:"baseColorFactor,omitempty"` // Default is [1, 1, 1, 1].
	MetallicFactor  *float32    `json:"metallicFactor,omitempty"`  // Default is 1.
	RoughnessFactor *float32    `json:"roughnessFactor,omitempty"` // Default is 1.
}

// material.alphaMode values.
const (
	OPAQUE = "OPAQUE"
	MASK   = "MASK"
	BLEND  = "BLEND"
)

// Mesh is a set of primitives to be rendered.
type Mesh struct {
	Primitives []Primitive `json:"primitives"`
	Name       string      `json:"name,omitempty"`
	Extras     any         `json:"extras,omitempty"`
}

// Primitive is geometry to be rendered with a material.
type Primitive struct {
	Attributes map[string]int64 `json:"attributes"`
	Indices    *int64           `json:"indices,omitempty"`
	Material   *int64           `json:"material,omitempty"`
	Mode       *int64           `json:"mode,omitempty"` // Default is 4.
	Extras     any              `json:"extras,omitempty"`
}

// mesh.primitive.mode values.
const (
	POINTS = iota
	LINES
	LINE_LOOP
	LINE_STRIP
	TRIANGLES
	TRIANGLE_STRIP
	TRIANGLE_FAN
)

// POSITION is the primitive attribute holding vertex positions.
const POSITION = "POSITION"

// ModeOf returns the mode of the primitive, with its default applied.
func (p *Primitive) ModeOf() int64 {
	if p.Mode == nil {
		return TRIANGLES
	}
	return *p.Mode
}

// Node is a node of the scene hierarchy, with either a matrix
// or translation, rotation and scale.
type Node struct {
	Children    []int64        `json:"children,omitempty"`
	Matrix      *[16]float32   `json:"matrix,omitempty"` // Default is identity.
	Mesh        *int64         `json:"mesh,omitempty"`
	Rotation    *[4]float32    `json:"rotation,omitempty"`    // Default is [0, 0, 0, 1].
	Scale       *[3]float32    `json:"scale,omitempty"`       // Default is [1, 1, 1].
	Translation *[3]float32    `json:"translation,omitempty"` // Default is [0, 0, 0].
	Name        string         `json:"name,omitempty"`
	Extras      map[string]any `json:"extras,omitempty"`
}

// Scene is a set of root nodes.
type Scene struct {
	Nodes  []int64 `json:"nodes,omitempty"`
	Name   string  `json:"name,omitempty"`
	Extras any     `json:"extras,omitempty"`
}

// Index returns a pointer to the given index, for the optional
// index fields.
func Index(i int) *int64 {
	v := int64(i)
	return &v
}

// Encode encodes gltf into w.
func Encode(w io.Writer, gltf *GLTF) error {
	return json.NewEncoder(w).Encode(gltf)
}

// Decode decodes r into a new GLTF instance.
func Decode(r io.Reader) (*GLTF, error) {
	var gltf GLTF
	if err := json.NewDecoder(r).Decode(&gltf); err != nil {
		return nil, err
	}
	return &gltf, nil
}
