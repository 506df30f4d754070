// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/hepvis/eventdisplay/base/iox/imagex"
	"github.com/hepvis/eventdisplay/xyz/scenedoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tracker = `
[render]
width = 640
height = 480

[camera]
orthographic = true

[options]
allowSelecting = true

[[presetViews]]
name = "Front"
position = [0, 0, 500]

[[detectors]]
name = "Pixel"
radius = 100
minZ = -50
maxZ = 50
numZEl = 2
numPhiEl = 8
xDim = 10
yDim = 2
zDim = 20
colour = 0x356aa0

[[geometries]]
path = "coil.obj"
name = "Coil"
colour = "#8c8c8c"
`

const coil = `o Coil
v 250 -10 0
v 270 -10 0
v 270 10 0
v 250 10 0
f 1 2 3 4
`

func setup(t *testing.T) string {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tracker.toml"), []byte(tracker), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "coil.obj"), []byte(coil), 0o644))
	return dir
}

func run(t *testing.T, args ...string) string {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(append(args, "-q"))
	root.SetOut(&out)
	root.SetErr(&out)
	require.NoError(t, root.ExecuteContext(context.Background()), out.String())
	return out.String()
}

func TestRender(t *testing.T) {
	dir := setup(t)
	for _, name := range []string{"snapshot.png", "snapshot.webp"} {
		fn := filepath.Join(dir, name)
		run(t, "render", "--config", filepath.Join(dir, "tracker.toml"), "--view", "Front", "-o", fn)
		img, _, err := imagex.Open(fn)
		require.NoError(t, err)
		assert.Equal(t, image.Pt(640, 480), img.Bounds().Size())
	}
}

func TestExportImportPick(t *testing.T) {
	dir := setup(t)
	cfg := filepath.Join(dir, "tracker.toml")
	doc := filepath.Join(dir, "scene.json")
	run(t, "export", "--config", cfg, "--demo", "-o", doc)

	d, err := scenedoc.Open(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pixel", "Coil"}, d.Manifest.Geometries)
	assert.Equal(t, []string{"Tracks", "Jets"}, d.Manifest.EventData.Keys())
	assert.Equal(t, []string{"Muons"}, d.Manifest.EventData.ValueByKey("Tracks"))

	snap := filepath.Join(dir, "imported.png")
	run(t, "import", doc, "--config", cfg, "-o", snap)
	_, _, err = imagex.Open(snap)
	assert.NoError(t, err)

	// the module at 90 degrees is centered at (0, 100)
	out := run(t, "pick", "--config", cfg, "--scene", doc, "320", "140")
	assert.Contains(t, out, "Pixel")
	out = run(t, "pick", "--config", cfg, "--scene", doc, "580", "240")
	assert.Contains(t, out, "Coil")
	assert.Contains(t, out, "info: OBJ file")
	out = run(t, "pick", "--config", cfg, "--scene", doc, "5", "5")
	assert.Contains(t, out, "nothing picked")
}

func TestErrors(t *testing.T) {
	dir := setup(t)
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"render", "--config", filepath.Join(dir, "tracker.toml"), "--view", "Top", "-q"})
	assert.ErrorContains(t, root.ExecuteContext(context.Background()), `no preset view named "Top"`)

	root.SetArgs([]string{"pick", "x", "1", "-q"})
	assert.ErrorContains(t, root.ExecuteContext(context.Background()), "invalid x")

	root.SetArgs([]string{"import", filepath.Join(dir, "missing.json"), "-q"})
	assert.Error(t, root.ExecuteContext(context.Background()))
}
