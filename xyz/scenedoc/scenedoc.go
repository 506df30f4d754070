// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scenedoc saves and restores the scene of an [xyz.Engine] as
// a text document: a manifest of the addressable names of the scene
// and a glTF 2.0 payload with its geometry, materials and transforms.
package scenedoc

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hepvis/eventdisplay/base/iox/jsonx"
	"github.com/hepvis/eventdisplay/base/ordmap"
	"github.com/hepvis/eventdisplay/xyz"
)

// FormatVersion is the version of the document format written by [Export],
// stored in the payload asset extras.
const FormatVersion = "1.0.0"

// Compatibility is the constraint on the format version of the
// documents accepted by [Import].
const Compatibility = "^1.0.0"

// Generator is the glTF asset generator of exported payloads.
const Generator = "hepvis eventdisplay"

// Manifest lists the addressable names of a scene.
type Manifest struct {

	// EventData maps each event data type to the names of its collections.
	EventData *ordmap.Map[string, []string] `json:"eventData"`

	// Geometries are the names of the registered objects other than
	// the event data, in registration order.
	Geometries []string `json:"geometries"`
}

// Document is a saved scene.
type Document struct {

	// Manifest lists the names that must be addressable after import.
	Manifest Manifest

	// Scene is the glTF payload.
	Scene json.RawMessage
}

// document is the JSON form of a [Document]. Manifest is accepted
// on input as an alias of SceneConfiguration.
type document struct {
	SceneConfiguration *Manifest       `json:"sceneConfiguration,omitempty"`
	Manifest           *Manifest       `json:"manifest,omitempty"`
	Scene              json.RawMessage `json:"scene"`
}

func (d Document) MarshalJSON() ([]byte, error) {
	man := d.Manifest
	if man.EventData == nil {
		man.EventData = ordmap.New[string, []string]()
	}
	if man.Geometries == nil {
		man.Geometries = []string{}
	}
	return json.Marshal(document{SceneConfiguration: &man, Scene: d.Scene})
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	man := doc.SceneConfiguration
	if man == nil {
		man = doc.Manifest
	}
	if man == nil {
		return fmt.Errorf("scenedoc: document has no sceneConfiguration: %w", xyz.ErrSerialization)
	}
	if len(doc.Scene) == 0 {
		return fmt.Errorf("scenedoc: document has no scene: %w", xyz.ErrSerialization)
	}
	d.Manifest = *man
	if d.Manifest.EventData == nil {
		d.Manifest.EventData = ordmap.New[string, []string]()
	}
	d.Scene = doc.Scene
	return nil
}

// Write writes the document as indented JSON.
func (d *Document) Write(w io.Writer) error {
	return jsonx.Write(d, w)
}

// Save saves the document to the given file as indented JSON.
func (d *Document) Save(filename string) error {
	return jsonx.Save(d, filename)
}

// Read reads a document from the given reader.
func Read(r io.Reader) (*Document, error) {
	d := &Document{}
	if err := jsonx.Read(d, r); err != nil {
		return nil, fmt.Errorf("scenedoc.Read: %w: %w", xyz.ErrSerialization, err)
	}
	return d, nil
}

// Open reads a document from the given file.
func Open(filename string) (*Document, error) {
	d := &Document{}
	if err := jsonx.Open(d, filename); err != nil {
		return nil, fmt.Errorf("scenedoc.Open: %w: %w", xyz.ErrSerialization, err)
	}
	return d, nil
}
