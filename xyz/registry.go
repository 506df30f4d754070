// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hepvis/eventdisplay/base/errors"
	"github.com/hepvis/eventdisplay/base/ordmap"
	"github.com/hepvis/eventdisplay/colors"
	"github.com/hepvis/eventdisplay/math32"
)

// Registry is the ordered name index of the top-level addressable
// objects of a scene. Its order is the order objects were added,
// which is also the order used for picking and iteration.
type Registry struct {
	objects ordmap.Map[string, *Node]
}

// Add adds the given node under its name. If a node is already
// registered under that name it is replaced in place and returned.
func (rg *Registry) Add(nd *Node) (replaced *Node) {
	old, has := rg.objects.ValueByKeyTry(nd.Name)
	rg.objects.Add(nd.Name, nd)
	if has && old != nd {
		return old
	}
	return nil
}

// Get returns the node registered under the given name, or nil.
func (rg *Registry) Get(name string) *Node {
	return rg.objects.ValueByKey(name)
}

// Delete removes the given name, returning false if not registered.
func (rg *Registry) Delete(name string) bool {
	return rg.objects.DeleteKey(name)
}

// Len returns the number of registered objects.
func (rg *Registry) Len() int {
	return rg.objects.Len()
}

// Names returns the registered names in order.
func (rg *Registry) Names() []string {
	return rg.objects.Keys()
}

// Nodes returns the registered nodes in order.
func (rg *Registry) Nodes() []*Node {
	return rg.objects.Values()
}

// Reset removes all registered objects.
func (rg *Registry) Reset() {
	rg.objects.Reset()
}

// Register adds the given node as a top-level object of the scene and
// registers it under its name. A node previously registered under the
// same name is detached from the scene and replaced.
func (e *Engine) Register(nd *Node) {
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	e.register(nd)
}

func (e *Engine) register(nd *Node) {
	if old := e.Registry.Add(nd); old != nil {
		slog.Warn("xyz.Engine: replacing registered object", "name", nd.Name)
		old.Detach()
	}
	if nd.Parent != e.Scene.Root {
		e.Scene.Add(nd)
	}
}

// Objects returns the addressable objects in registration order.
func (e *Engine) Objects() []*Node {
	e.RenderMu.RLock()
	defer e.RenderMu.RUnlock()
	return e.Registry.Nodes()
}

// Object returns the registered object with the given name, or nil.
func (e *Engine) Object(name string) *Node {
	e.RenderMu.RLock()
	defer e.RenderMu.RUnlock()
	return e.Registry.Get(name)
}

// resolve returns the registered object with the given name, falling
// back on a breadth-first search of the scene graph, which reaches
// the EventData types and collections.
func (e *Engine) resolve(name string) *Node {
	if nd := e.Registry.Get(name); nd != nil {
		return nd
	}
	return e.Scene.FindByName(name)
}

// SetVisibility sets the visibility of the named object. An unresolved
// name is logged and ignored.
func (e *Engine) SetVisibility(name string, visible bool) error {
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	nd := e.resolve(name)
	if nd == nil {
		return errors.Warn(fmt.Errorf("xyz.Engine.SetVisibility: no object named %q: %w", name, ErrUserInput))
	}
	nd.Visible = visible
	return nil
}

// SetColor sets the color of every shaded mesh below the named object,
// including the object itself. The value is any color accepted by
// [colors.FromAny], such as 0x41a6f4 or "#ff0000".
func (e *Engine) SetColor(name string, value any) error {
	clr, err := colors.FromAny(value)
	if err != nil {
		return errors.Warn(fmt.Errorf("xyz.Engine.SetColor: %w: %w", ErrUserInput, err))
	}
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	nd := e.resolve(name)
	if nd == nil {
		return errors.Warn(fmt.Errorf("xyz.Engine.SetColor: no object named %q: %w", name, ErrUserInput))
	}
	meshes := nd.Filter(func(n *Node) bool {
		return n.Kind == KindMesh && n.Material != nil && n.Material.Kind == MaterialPhong
	})
	if len(meshes) == 0 {
		slog.Debug("xyz.Engine.SetColor: no shaded meshes", "name", name, "err", ErrTypeMismatch)
	}
	for _, m := range meshes {
		m.Material.Color = clr
	}
	return nil
}

// SetCollectionColor sets the color of every line and mesh element of
// the named event data collection that has an unlit material.
// Other children are skipped.
func (e *Engine) SetCollectionColor(collectionName string, value any) error {
	clr, err := colors.FromAny(value)
	if err != nil {
		return errors.Warn(fmt.Errorf("xyz.Engine.SetCollectionColor: %w: %w", ErrUserInput, err))
	}
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	coll := e.resolve(collectionName)
	if coll == nil {
		return errors.Warn(fmt.Errorf("xyz.Engine.SetCollectionColor: no collection named %q: %w", collectionName, ErrUserInput))
	}
	for _, child := range coll.Children {
		if err := setElementColor(child, clr); err != nil {
			slog.Debug("xyz.Engine.SetCollectionColor: skipping element", "element", child.Name, "err", err)
		}
	}
	return nil
}

// setElementColor sets the color of an event data element, which must
// be a line or mesh with an unlit material.
func setElementColor(nd *Node, clr color.RGBA) error {
	switch nd.Kind {
	case KindLine, KindMesh:
		if nd.Material == nil {
			return fmt.Errorf("%v has no material: %w", nd, ErrTypeMismatch)
		}
		switch nd.Material.Kind {
		case MaterialBasic, MaterialLineBasic:
			nd.Material.Color = clr
			return nil
		case MaterialPhong:
			return fmt.Errorf("%v has a %v material: %w", nd, nd.Material.Kind, ErrTypeMismatch)
		}
		return fmt.Errorf("%v has an unknown material kind: %w", nd, ErrTypeMismatch)
	case KindGroup:
		return fmt.Errorf("%v is a group: %w", nd, ErrTypeMismatch)
	}
	return fmt.Errorf("%v has an unknown kind: %w", nd, ErrTypeMismatch)
}

// Remove detaches the named object from the scene and removes it
// from the registry.
func (e *Engine) Remove(name string) error {
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	nd := e.resolve(name)
	if nd == nil {
		return errors.Warn(fmt.Errorf("xyz.Engine.Remove: no object named %q: %w", name, ErrUserInput))
	}
	nd.Detach()
	if e.Registry.Get(name) == nd {
		e.Registry.Delete(name)
	}
	return nil
}

// Position returns the local position of the named registered object.
func (e *Engine) Position(name string) (math32.Vector3, bool) {
	e.RenderMu.RLock()
	defer e.RenderMu.RUnlock()
	nd := e.Registry.Get(name)
	if nd == nil {
		return math32.Vector3{}, false
	}
	return nd.Pose.Pos, true
}
