// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hepvis/eventdisplay/base/ordmap"
	"github.com/hepvis/eventdisplay/config"
	"github.com/hepvis/eventdisplay/loader"
	"github.com/hepvis/eventdisplay/math32"
	"github.com/hepvis/eventdisplay/xyz"
	_ "github.com/hepvis/eventdisplay/xyz/io/obj"
)

// frameDuration is the time step of each tick when settling the scene.
const frameDuration = time.Second / 60

// openConfig returns the config named by the flags, or the defaults.
func openConfig(f *flags) (*config.Config, error) {
	if f.config == "" {
		return config.New(), nil
	}
	return config.Open(f.config)
}

// newEngine returns an engine with the settings of the given config,
// fetching geometries through a [loader.Loader].
func newEngine(c *config.Config) *xyz.Engine {
	e := c.NewEngine()
	e.Fetcher = &loader.Loader{Dir: c.Dir}
	return e
}

// buildScene builds the scene of the given config, waiting for the
// geometry imports to complete, and moves the camera to the view
// named by the flags.
func buildScene(ctx context.Context, f *flags, c *config.Config, e *xyz.Engine) error {
	pending := 0
	e.OnImport = func(name string, nd *xyz.Node, err error) {
		pending--
		if err == nil {
			slog.Info("imported geometry", "name", name)
		}
	}
	pending = c.Build(ctx, e)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(f.timeout)*time.Second)
	defer cancel()
	for pending > 0 {
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %d geometry imports: %w", pending, ctx.Err())
		case <-time.After(10 * time.Millisecond):
		}
		e.Step(0)
	}
	if f.demo {
		if err := addDemoEvent(e); err != nil {
			return err
		}
	}
	return moveToView(f, c, e)
}

// moveToView moves the camera to the preset view named by the flags.
func moveToView(f *flags, c *config.Config, e *xyz.Engine) error {
	if f.view == "" {
		return nil
	}
	v, ok := c.PresetView(f.view)
	if !ok {
		return fmt.Errorf("no preset view named %q", f.view)
	}
	v.Action(e)()
	for t := time.Duration(0); t <= xyz.CameraTweenDuration; t += frameDuration {
		e.Step(frameDuration)
	}
	return nil
}

// addDemoEvent adds a small sample event: muon tracks and jets.
func addDemoEvent(e *xyz.Engine) error {
	tracks := e.AddEventDataTypeGroup("Tracks")
	muons := e.AddEventDataCollection(tracks, "Muons")
	for i, phi := range []float32{0.3, 2.1, 4.4} {
		dir := math32.Vec3(math32.Cos(phi), math32.Sin(phi), 0.2*float32(i-1))
		pts := make([]math32.Vector3, 0, 10)
		for s := range 10 {
			r := float32(s) * 150
			bend := math32.Vec3(-dir.Y, dir.X, 0).MulScalar(r * r * 1e-4)
			pts = append(pts, dir.MulScalar(r).Add(bend))
		}
		attrs := ordmap.New[string, any]()
		attrs.Add("pT", fmt.Sprintf("%.1f GeV", 20+7.5*float32(i)))
		attrs.Add("phi", phi)
		if _, err := e.AddTrack(muons, fmt.Sprintf("Muon %d", i), pts, "#ff0000", attrs); err != nil {
			return err
		}
	}
	jets := e.AddEventDataTypeGroup("Jets")
	antiKt := e.AddEventDataCollection(jets, "AntiKt4")
	for i, phi := range []float32{1.2, 3.9} {
		center := math32.Vec3(math32.Cos(phi), math32.Sin(phi), 0).MulScalar(900)
		attrs := ordmap.New[string, any]()
		attrs.Add("energy", fmt.Sprintf("%d GeV", 80+40*i))
		if _, err := e.AddBoxElement(antiKt, fmt.Sprintf("Jet %d", i), center, math32.Vec3(200, 200, 400), 0xf2be41, attrs); err != nil {
			return err
		}
	}
	return nil
}
