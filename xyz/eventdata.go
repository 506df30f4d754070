// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"

	"github.com/hepvis/eventdisplay/base/errors"
	"github.com/hepvis/eventdisplay/base/ordmap"
	"github.com/hepvis/eventdisplay/colors"
	"github.com/hepvis/eventdisplay/math32"
)

// EventDataName is the name of the node holding the event data,
// organized as type groups holding collections holding elements.
const EventDataName = "EventData"

// EventData returns the event data node, creating and registering
// it if it is not part of the scene.
func (e *Engine) EventData() *Node {
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	return e.eventDataNode()
}

func (e *Engine) eventDataNode() *Node {
	if e.eventData != nil && e.eventData.Parent == e.Scene.Root {
		return e.eventData
	}
	if nd := e.Scene.Root.ChildByName(EventDataName); nd != nil {
		e.eventData = nd
	} else {
		e.eventData = NewGroup(EventDataName)
	}
	e.register(e.eventData)
	return e.eventData
}

// AddEventDataTypeGroup adds a new group for the given type of
// physics object, such as "Tracks" or "Jets", to the event data.
// Each call adds a new group, even if one with the same name exists.
func (e *Engine) AddEventDataTypeGroup(typeName string) *Node {
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	tg := NewGroup(typeName)
	e.eventDataNode().AddChild(tg)
	return tg
}

// AddEventDataCollection adds a new named collection to the given type group.
func (e *Engine) AddEventDataCollection(typeGroup *Node, name string) *Node {
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	coll := NewGroup(name)
	typeGroup.AddChild(coll)
	return coll
}

// AddTrack adds a line strip element through the given points to the
// given collection, with the given color and pick attributes.
func (e *Engine) AddTrack(collection *Node, name string, points []math32.Vector3, clr any, attrs *UserData) (*Node, error) {
	c, err := colors.FromAny(clr)
	if err != nil {
		return nil, errors.Warn(fmt.Errorf("xyz.Engine.AddTrack: %w: %w", ErrUserInput, err))
	}
	ms := &Mesh{Name: name, Mode: LineStrip, Positions: points}
	nd := NewLineNode(name, ms, NewLineBasicMaterial(c, 2))
	nd.UserData = attrs
	e.RenderMu.Lock()
	collection.AddChild(nd)
	e.RenderMu.Unlock()
	return nd, nil
}

// AddBoxElement adds a box element of the given size centered at
// the given position to the given collection, such as a jet cone or
// a calorimeter cluster, with the given color and pick attributes.
func (e *Engine) AddBoxElement(collection *Node, name string, center, size math32.Vector3, clr any, attrs *UserData) (*Node, error) {
	c, err := colors.FromAny(clr)
	if err != nil {
		return nil, errors.Warn(fmt.Errorf("xyz.Engine.AddBoxElement: %w: %w", ErrUserInput, err))
	}
	nd := NewMeshNode(name, NewBox(size.X, size.Y, size.Z), NewBasicMaterial(c))
	nd.Pose.Pos = center
	nd.UserData = attrs
	e.RenderMu.Lock()
	collection.AddChild(nd)
	e.RenderMu.Unlock()
	return nd, nil
}

// ClearEventData removes all the contents of the event data, leaving
// an empty event data node. Other objects are not affected.
func (e *Engine) ClearEventData() {
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	ed := e.eventDataNode()
	for _, c := range ed.Children {
		c.Parent = nil
	}
	ed.Children = nil
}

// EventDataManifest returns the names of the collections of each event
// data type, in order. Unnamed groups are skipped, and a later type
// group with the same name as an earlier one replaces its collections.
func (e *Engine) EventDataManifest() *ordmap.Map[string, []string] {
	e.RenderMu.RLock()
	defer e.RenderMu.RUnlock()
	man := ordmap.New[string, []string]()
	ed := e.Scene.Root.ChildByName(EventDataName)
	if ed == nil {
		return man
	}
	for _, tg := range ed.Children {
		if tg.Name == "" {
			continue
		}
		colls := []string{}
		for _, c := range tg.Children {
			if c.Name != "" {
				colls = append(colls, c.Name)
			}
		}
		man.Add(tg.Name, colls)
	}
	return man
}

// GeometryNames returns the names of the registered objects other
// than the event data node, in order.
func (e *Engine) GeometryNames() []string {
	e.RenderMu.RLock()
	defer e.RenderMu.RUnlock()
	names := []string{}
	for _, n := range e.Registry.Names() {
		if n != EventDataName {
			names = append(names, n)
		}
	}
	return names
}
