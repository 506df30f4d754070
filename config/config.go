// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of the event display:
// the engine settings, the preset camera views, and the geometries
// and detectors that make up the scene, read from TOML or YAML files.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/hepvis/eventdisplay/base/errors"
	"github.com/hepvis/eventdisplay/base/fsx"
	"github.com/hepvis/eventdisplay/base/iox/tomlx"
	"github.com/hepvis/eventdisplay/base/iox/yamlx"
	"github.com/hepvis/eventdisplay/math32"
	"github.com/hepvis/eventdisplay/xyz"
)

// Config is the main config struct that contains all of the
// configuration options of the event display.
type Config struct {

	// Render contains the frame settings.
	Render Render `toml:"render" yaml:"render"`

	// Camera contains the camera settings.
	Camera Camera `toml:"camera" yaml:"camera"`

	// Controls contains the orbit controls settings.
	Controls Controls `toml:"controls" yaml:"controls"`

	// Picking contains the picking settings.
	Picking Picking `toml:"picking" yaml:"picking"`

	// Options contains the optional features.
	Options Options `toml:"options" yaml:"options"`

	// PresetViews are the named camera positions offered to the user.
	PresetViews []PresetView `toml:"presetViews" yaml:"presetViews"`

	// Geometries are the mesh files imported into the scene.
	Geometries []Geometry `toml:"geometries" yaml:"geometries"`

	// Detectors are the detectors built from parameters.
	Detectors []xyz.DetectorParams `toml:"detectors" yaml:"detectors"`

	// Dir is the directory of the config file, which relative
	// geometry paths are resolved from.
	Dir string `toml:"-" yaml:"-"`
}

type Render struct {

	// Width and Height are the size of the frames in pixels.
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`

	// DarkBackground uses the dark background color.
	DarkBackground bool `toml:"darkBackground" yaml:"darkBackground"`

	// LowerResolution renders at half resolution.
	LowerResolution bool `toml:"lowerResolution" yaml:"lowerResolution"`

	// Clipping enables the clip planes.
	Clipping bool `toml:"clipping" yaml:"clipping"`
}

type Camera struct {

	// FOV is the field of view of the perspective camera in degrees.
	FOV float32 `toml:"fov" yaml:"fov"`

	// Near and Far are the clipping distances of both cameras.
	Near float32 `toml:"near" yaml:"near"`
	Far  float32 `toml:"far" yaml:"far"`

	// Distance is the starting distance of the cameras from the origin, on the Z axis.
	Distance float32 `toml:"distance" yaml:"distance"`

	// Orthographic starts with the orthographic camera.
	Orthographic bool `toml:"orthographic" yaml:"orthographic"`
}

type Controls struct {

	// DampingFactor is the damping factor of the orbit controls.
	DampingFactor float32 `toml:"dampingFactor" yaml:"dampingFactor"`

	// AutoRotate rotates the cameras around their target.
	AutoRotate bool `toml:"autoRotate" yaml:"autoRotate"`
}

type Picking struct {

	// LinePrecision is the distance within which lines are picked.
	LinePrecision float32 `toml:"linePrecision" yaml:"linePrecision"`
}

type Options struct {

	// AllowShowAxes shows the axes from the start.
	AllowShowAxes bool `toml:"allowShowAxes" yaml:"allowShowAxes"`

	// AllowSelecting enables picking.
	AllowSelecting bool `toml:"allowSelecting" yaml:"allowSelecting"`
}

// PresetView is a named camera position.
type PresetView struct {
	Name     string     `toml:"name" yaml:"name"`
	Position [3]float32 `toml:"position" yaml:"position"`

	// Icon is the name of the icon shown for the view.
	Icon string `toml:"icon" yaml:"icon"`
}

// Geometry is a mesh file imported into the scene.
type Geometry struct {

	// Path is the file path or URL of the mesh file.
	Path string `toml:"path" yaml:"path"`

	// Name is the name the mesh is registered under.
	Name string `toml:"name" yaml:"name"`

	// Colour is any color value accepted by colors.FromAny.
	Colour any `toml:"colour" yaml:"colour"`

	// DoubleSided renders both sides of the faces.
	DoubleSided bool `toml:"doubleSided" yaml:"doubleSided"`
}

// Defaults sets the default values of the config.
func (c *Config) Defaults() {
	c.Render.Width = 1280
	c.Render.Height = 720
	c.Camera.FOV = xyz.DefaultFOV
	c.Camera.Near = xyz.DefaultNear
	c.Camera.Far = xyz.DefaultFar
	c.Camera.Distance = xyz.DefaultDistance
	c.Controls.DampingFactor = xyz.DefaultDampingFactor
	c.Picking.LinePrecision = xyz.DefaultLinePrecision
	c.Options.AllowSelecting = true
}

// New returns a new config with default values.
func New() *Config {
	c := &Config{}
	c.Defaults()
	return c
}

// Open returns the config in the given TOML or YAML file, with the
// default values for the settings it does not contain. A leading ~
// in the file name is expanded to the home directory.
func Open(filename string) (*Config, error) {
	fn, err := fsx.Expand(filename)
	if err != nil {
		return nil, fmt.Errorf("config.Open: %w", err)
	}
	c := New()
	switch ext := strings.ToLower(filepath.Ext(fn)); ext {
	case ".toml":
		err = tomlx.Open(c, fn)
	case ".yaml", ".yml":
		err = yamlx.Open(c, fn)
	default:
		return nil, fmt.Errorf("config.Open: unsupported config file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("config.Open: %s: %w", filename, err)
	}
	c.Dir = filepath.Dir(fn)
	return c, c.Validate()
}

// Save writes the config to the given TOML or YAML file.
func (c *Config) Save(filename string) error {
	fn, err := fsx.Expand(filename)
	if err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(fn)); ext {
	case ".toml":
		return tomlx.Save(c, fn)
	case ".yaml", ".yml":
		return yamlx.Save(c, fn)
	default:
		return fmt.Errorf("config.Save: unsupported config file extension %q", ext)
	}
}

// Validate returns an error for settings that cannot be applied.
func (c *Config) Validate() error {
	var errs []error
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid frame size %dx%d", c.Render.Width, c.Render.Height))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("invalid camera range %g to %g", c.Camera.Near, c.Camera.Far))
	}
	names := map[string]bool{}
	for i, g := range c.Geometries {
		if g.Path == "" || g.Name == "" {
			errs = append(errs, fmt.Errorf("geometry %d needs a path and a name", i))
		}
		if names[g.Name] {
			errs = append(errs, fmt.Errorf("duplicate geometry name %q", g.Name))
		}
		names[g.Name] = true
	}
	for _, v := range c.PresetViews {
		if v.Name == "" {
			errs = append(errs, fmt.Errorf("preset view at %v needs a name", v.Position))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config.Validate: %w", err)
	}
	return nil
}

// EngineOptions returns the engine options of the config.
func (c *Config) EngineOptions() xyz.Options {
	return xyz.Options{
		Width:            c.Render.Width,
		Height:           c.Render.Height,
		LinePrecision:    c.Picking.LinePrecision,
		DampingFactor:    c.Controls.DampingFactor,
		DisableSelecting: !c.Options.AllowSelecting,
		AllowShowAxes:    c.Options.AllowShowAxes,
	}
}

// NewEngine returns a new engine with the settings of the config.
// The scene is empty; see [Config.Build].
func (c *Config) NewEngine() *xyz.Engine {
	e := xyz.NewEngine(c.EngineOptions())
	c.Apply(e)
	return e
}

// Apply applies the frame, camera and controls settings to the
// given engine.
func (c *Config) Apply(e *xyz.Engine) {
	e.DarkBackground(c.Render.DarkBackground)
	e.LowerResolution(c.Render.LowerResolution)
	e.SetClippingEnabled(c.Render.Clipping)
	e.SetAutoRotate(c.Controls.AutoRotate)
	if c.Camera.Orthographic != e.IsOrthographic() {
		e.Swap(c.Camera.Orthographic)
	}
	e.SetCameraRange(c.Camera.FOV, c.Camera.Near, c.Camera.Far)
	cam, oc := e.ActiveCamera(), e.ActiveControls()
	e.RenderMu.Lock()
	defer e.RenderMu.Unlock()
	if c.Camera.Distance > 0 {
		cam.Pose.Pos = math32.Vec3(0, 0, c.Camera.Distance)
	}
	cam.LookAt(oc.Target, cam.UpDir)
}

// Build adds the detectors of the config to the given engine and
// starts importing its geometries, which complete on later ticks.
// It returns the number of imports started. A geometry that cannot
// be imported is logged and skipped.
func (c *Config) Build(ctx context.Context, e *xyz.Engine) int {
	for _, d := range c.Detectors {
		e.BuildGeometryFromParameters(d)
	}
	n := 0
	for _, g := range c.Geometries {
		if err := e.ImportByPath(ctx, c.GeometryPath(g), g.Name, g.Colour, g.DoubleSided); err != nil {
			slog.Warn("config.Build: skipping geometry", "name", g.Name, "err", err)
			continue
		}
		n++
	}
	return n
}

// GeometryPath returns the path of the given geometry, relative
// to the directory of the config if it is a relative file path.
func (c *Config) GeometryPath(g Geometry) string {
	if c.Dir == "" || strings.Contains(g.Path, "://") || strings.HasPrefix(g.Path, "~") || filepath.IsAbs(g.Path) {
		return g.Path
	}
	return filepath.Join(c.Dir, g.Path)
}

// PresetView returns the preset view with the given name.
func (c *Config) PresetView(name string) (PresetView, bool) {
	for _, v := range c.PresetViews {
		if v.Name == name {
			return v, true
		}
	}
	return PresetView{}, false
}

// Action returns the action moving the active camera of the
// given engine to the position of the view.
func (v PresetView) Action(e *xyz.Engine) func() {
	return e.SetCameraPosition(v.Position)
}
