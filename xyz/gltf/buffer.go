// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltf

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/hepvis/eventdisplay/math32"
)

// DataURIPrefix is the prefix of embedded buffer URIs.
const DataURIPrefix = "data:application/octet-stream;base64,"

// Builder accumulates the binary data of a payload into a single
// buffer, adding a buffer view and accessor for each array.
type Builder struct {
	GLTF *GLTF
	bin  []byte
}

// NewBuilder returns a builder of a new payload with the given generator.
func NewBuilder(generator string) *Builder {
	f := &GLTF{}
	f.Asset.Version = Version
	f.Asset.Generator = generator
	return &Builder{GLTF: f}
}

// addView appends the given bytes as a new buffer view, 4-byte aligned,
// returning its index.
func (b *Builder) addView(data []byte, target int64) int64 {
	for len(b.bin)%4 != 0 {
		b.bin = append(b.bin, 0)
	}
	bv := BufferView{ByteOffset: int64(len(b.bin)), ByteLength: int64(len(data)), Target: target}
	b.bin = append(b.bin, data...)
	b.GLTF.BufferViews = append(b.GLTF.BufferViews, bv)
	return int64(len(b.GLTF.BufferViews) - 1)
}

// AddPositions adds a VEC3 float accessor holding the given positions,
// with their bounds, returning the accessor index.
func (b *Builder) AddPositions(pos []math32.Vector3) int64 {
	data := make([]byte, 0, 12*len(pos))
	mn := [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	mx := [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for _, p := range pos {
		for i, v := range [3]float32{p.X, p.Y, p.Z} {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(v))
			mn[i] = min(mn[i], v)
			mx[i] = max(mx[i], v)
		}
	}
	bv := b.addView(data, ARRAY_BUFFER)
	b.GLTF.Accessors = append(b.GLTF.Accessors, Accessor{
		BufferView: &bv, ComponentType: FLOAT, Count: int64(len(pos)), Type: VEC3,
		Min: mn[:], Max: mx[:],
	})
	return int64(len(b.GLTF.Accessors) - 1)
}

// AddIndices adds a SCALAR unsigned int accessor holding the given
// indices, returning the accessor index.
func (b *Builder) AddIndices(idx []uint32) int64 {
	data := make([]byte, 0, 4*len(idx))
	for _, v := range idx {
		data = binary.LittleEndian.AppendUint32(data, v)
	}
	bv := b.addView(data, ELEMENT_ARRAY_BUFFER)
	b.GLTF.Accessors = append(b.GLTF.Accessors, Accessor{
		BufferView: &bv, ComponentType: UNSIGNED_INT, Count: int64(len(idx)), Type: SCALAR,
	})
	return int64(len(b.GLTF.Accessors) - 1)
}

// Finish embeds the accumulated data as the single buffer of the
// payload and returns it.
func (b *Builder) Finish() *GLTF {
	if len(b.bin) > 0 {
		b.GLTF.Buffers = []Buffer{{
			URI:        DataURIPrefix + base64.StdEncoding.EncodeToString(b.bin),
			ByteLength: int64(len(b.bin)),
		}}
	}
	return b.GLTF
}

// LoadBuffers decodes the embedded data of all buffers.
// Only base64 data URIs are supported.
func (f *GLTF) LoadBuffers() ([][]byte, error) {
	bufs := make([][]byte, len(f.Buffers))
	for i, buf := range f.Buffers {
		_, enc, ok := strings.Cut(buf.URI, ";base64,")
		if !ok || !strings.HasPrefix(buf.URI, "data:") {
			return nil, newErr(fmt.Sprintf("buffer %d is not an embedded base64 data URI", i))
		}
		data, err := base64.StdEncoding.DecodeString(enc)
		if err != nil {
			return nil, newErr(fmt.Sprintf("buffer %d: %v", i, err))
		}
		if int64(len(data)) < buf.ByteLength {
			return nil, newErr(fmt.Sprintf("buffer %d is shorter than its byteLength", i))
		}
		bufs[i] = data
	}
	return bufs, nil
}

// accessorData returns the bytes of the given accessor and its element stride.
func (f *GLTF) accessorData(bufs [][]byte, ai int64, typ string, componentTypes ...int64) ([]byte, int, *Accessor, error) {
	if !validIndex(ai, len(f.Accessors)) {
		return nil, 0, nil, newErr("invalid accessor index")
	}
	a := &f.Accessors[ai]
	if err := a.Check(f); err != nil {
		return nil, 0, nil, err
	}
	if a.Type != typ {
		return nil, 0, nil, newErr(fmt.Sprintf("accessor %d has type %s, not %s", ai, a.Type, typ))
	}
	ok := false
	for _, ct := range componentTypes {
		ok = ok || a.ComponentType == ct
	}
	if !ok {
		return nil, 0, nil, newErr(fmt.Sprintf("accessor %d has unsupported component type %d", ai, a.ComponentType))
	}
	bv := &f.BufferViews[*a.BufferView]
	elem := NumComponents(a.Type) * ComponentSize(a.ComponentType)
	stride := elem
	if bv.ByteStride > 0 {
		stride = int(bv.ByteStride)
	}
	start := bv.ByteOffset + a.ByteOffset
	end := start + int64(stride)*(a.Count-1) + int64(elem)
	buf := bufs[bv.Buffer]
	if end > bv.ByteOffset+bv.ByteLength || end > int64(len(buf)) {
		return nil, 0, nil, newErr(fmt.Sprintf("accessor %d exceeds its buffer", ai))
	}
	return buf[start:end], stride, a, nil
}

// ReadPositions returns the VEC3 float data of the given accessor.
func (f *GLTF) ReadPositions(bufs [][]byte, ai int64) ([]math32.Vector3, error) {
	data, stride, a, err := f.accessorData(bufs, ai, VEC3, FLOAT)
	if err != nil {
		return nil, err
	}
	pos := make([]math32.Vector3, a.Count)
	for i := range pos {
		o := i * stride
		pos[i] = math32.Vec3(
			math.Float32frombits(binary.LittleEndian.Uint32(data[o:])),
			math.Float32frombits(binary.LittleEndian.Uint32(data[o+4:])),
			math.Float32frombits(binary.LittleEndian.Uint32(data[o+8:])))
	}
	return pos, nil
}

// ReadIndices returns the SCALAR unsigned integer data of the given accessor.
func (f *GLTF) ReadIndices(bufs [][]byte, ai int64) ([]uint32, error) {
	data, stride, a, err := f.accessorData(bufs, ai, SCALAR, UNSIGNED_BYTE, UNSIGNED_SHORT, UNSIGNED_INT)
	if err != nil {
		return nil, err
	}
	idx := make([]uint32, a.Count)
	for i := range idx {
		o := i * stride
		switch a.ComponentType {
		case UNSIGNED_BYTE:
			idx[i] = uint32(data[o])
		case UNSIGNED_SHORT:
			idx[i] = uint32(binary.LittleEndian.Uint16(data[o:]))
		default:
			idx[i] = binary.LittleEndian.Uint32(data[o:])
		}
	}
	return idx, nil
}
