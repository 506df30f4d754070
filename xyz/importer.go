// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/hepvis/eventdisplay/colors"
)

// DefaultMeshColor is the color of imported meshes when none is given.
var DefaultMeshColor = colors.FromInt(0x41a6f4)

// Provenance of imported meshes, stored as the "info" user data.
const (
	InfoFile    = "OBJ file"
	InfoContent = "OBJ file loaded from the client."
)

// Decoder parses 3D object file(s) and imports them into a group.
// This interface is implemented by the different format-specific decoders.
type Decoder interface {
	// New returns a new instance of the decoder used for a specific decoding
	New() Decoder

	// Desc returns the description of this decoder
	Desc() string

	// Decode reads the given data and decodes it into the decoder.
	// Some formats (e.g., Wavefront .obj) have separate .obj and .mtl files
	// which are passed as two reader args.
	Decode(rs []io.Reader) error

	// SetGroup adds the decoded objects as children of the given group.
	SetGroup(gp *Node)
}

// Decoders is the master list of decoders, indexed by the primary extension.
// .obj = Wavefront object file -- only has mesh data, not scene info.
var Decoders = map[string]Decoder{}

// DecodeReaders decodes the given readers using a decoder based on the
// extension of the given file name, returning a new group named after
// the file that holds the decoded objects.
func DecodeReaders(fname string, rs ...io.Reader) (*Node, error) {
	ext := strings.ToLower(filepath.Ext(fname))
	dt, has := Decoders[ext]
	if !has {
		return nil, fmt.Errorf("xyz.DecodeReaders: file extension %q not found in Decoders list for file %q: %w", ext, fname, ErrAsset)
	}
	dec := dt.New()
	if err := dec.Decode(rs); err != nil {
		return nil, fmt.Errorf("xyz.DecodeReaders: decoding %q: %w: %w", fname, ErrAsset, err)
	}
	_, fn := filepath.Split(fname)
	gp := NewGroup(fn)
	dec.SetGroup(gp)
	return gp, nil
}

// Fetcher fetches the content of mesh files by path or URL.
// Fetch is called on its own goroutine and may block.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// ImportByPath starts importing the mesh file at the given path through
// the engine Fetcher, registering it under the given name once fetched.
// The colour is any value accepted by [colors.FromAny], with nil meaning
// [DefaultMeshColor]. The import is completed by a later Tick, which
// calls [Engine.OnImport]. The returned error only reports failures
// detected before fetching.
func (e *Engine) ImportByPath(ctx context.Context, path, name string, colour any, doubleSided bool) error {
	if e.Fetcher == nil {
		return e.importDone(name, nil, fmt.Errorf("xyz.Engine.ImportByPath: no fetcher for %q: %w", path, ErrAsset))
	}
	clr, err := importColor(colour)
	if err != nil {
		return e.importDone(name, nil, err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if _, has := Decoders[ext]; !has {
		return e.importDone(name, nil, fmt.Errorf("xyz.Engine.ImportByPath: no decoder for %q: %w", path, ErrAsset))
	}
	go func() {
		data, err := e.Fetcher.Fetch(ctx, path)
		e.Post(func() {
			if err != nil {
				e.importDone(name, nil, fmt.Errorf("xyz.Engine.ImportByPath: fetching %q: %w: %w", path, ErrAsset, err))
				return
			}
			nd, err := e.importContent(path, data, name, clr, doubleSided, InfoFile)
			e.importDone(name, nd, err)
		})
	}()
	return nil
}

// ImportFromContent imports the given Wavefront OBJ text and registers
// it under the given name, with the default color and front faces only.
func (e *Engine) ImportFromContent(text, name string) (*Node, error) {
	nd, err := e.importContent(name+".obj", []byte(text), name, DefaultMeshColor, false, InfoContent)
	return nd, e.importDone(name, nd, err)
}

func (e *Engine) importContent(fname string, data []byte, name string, clr color.RGBA, doubleSided bool, info string) (*Node, error) {
	gp, err := DecodeReaders(fname, strings.NewReader(string(data)))
	if err != nil {
		return nil, err
	}
	gp.Name = name
	gp.SetUserData("info", info)
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	Flatten(gp, clr, doubleSided, e.ClipPlanes())
	e.register(gp)
	return gp, nil
}

func (e *Engine) importDone(name string, nd *Node, err error) error {
	if err != nil {
		slog.Error("xyz.Engine: import failed", "name", name, "err", err)
	}
	if e.OnImport != nil {
		e.OnImport(name, nd, err)
	}
	return err
}

func importColor(colour any) (color.RGBA, error) {
	if colour == nil {
		return DefaultMeshColor, nil
	}
	clr, err := colors.FromAny(colour)
	if err != nil {
		return clr, fmt.Errorf("xyz.Engine: %w: %w", ErrUserInput, err)
	}
	return clr, nil
}

// Flatten gives every mesh below the given node the node's name and
// user data, and a single shared shaded material of the given color
// clipped by the given planes, without shadows.
func Flatten(nd *Node, clr color.RGBA, doubleSided bool, planes []*ClipPlane) {
	mat := NewPhongMaterial(clr)
	mat.ClipPlanes = planes
	mat.ClipIntersection = true
	mat.ClipShadows = false
	if doubleSided {
		mat.Side = SideDouble
	}
	meshes := nd.Filter(func(n *Node) bool {
		return n.Kind == KindMesh
	})
	for _, m := range meshes {
		m.Name = nd.Name
		m.UserData = nd.UserData
		m.Material = mat
		m.CastShadow = false
		m.ReceiveShadow = false
	}
}
