// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenedoc_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hepvis/eventdisplay/base/ordmap"
	"github.com/hepvis/eventdisplay/colors"
	"github.com/hepvis/eventdisplay/math32"
	"github.com/hepvis/eventdisplay/xyz"
	"github.com/hepvis/eventdisplay/xyz/gltf"
	_ "github.com/hepvis/eventdisplay/xyz/io/obj"
	"github.com/hepvis/eventdisplay/xyz/scenedoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const magnet = `o Magnet
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
f 1 2 3 4
`

func newScene(t *testing.T) *xyz.Engine {
	e := xyz.NewEngine(xyz.Options{Width: 320, Height: 240})
	e.BuildGeometryFromParameters(xyz.DetectorParams{
		Name: "Pixel", Radius: 100, MinZ: -50, MaxZ: 50, NumZEl: 2, NumPhiEl: 4,
		XDim: 10, YDim: 2, ZDim: 20, Colour: 0x356aa0,
	})
	_, err := e.ImportFromContent(magnet, "Toroid")
	require.NoError(t, err)
	require.NoError(t, e.SetColor("Toroid", 0x00ff00))

	tracks := e.AddEventDataTypeGroup("Tracks")
	muons := e.AddEventDataCollection(tracks, "Muons")
	e.AddEventDataCollection(tracks, "Electrons")
	attrs := ordmap.New[string, any]()
	attrs.Add("pT", "25.3 GeV")
	attrs.Add("charge", "-1")
	_, err = e.AddTrack(muons, "mu1", []math32.Vector3{math32.Vec3(0, 0, 0), math32.Vec3(50, 50, 0)}, "#ff0000", attrs)
	require.NoError(t, err)
	jets := e.AddEventDataTypeGroup("Jets")
	e.AddEventDataCollection(jets, "AntiKt4")

	require.NoError(t, e.SetVisibility("Pixel", false))
	e.SetAxis(true)
	e.DarkBackground(true)
	return e
}

func visibility(e *xyz.Engine) map[string]bool {
	vis := map[string]bool{}
	for _, nd := range e.Objects() {
		vis[nd.Name] = nd.Visible
	}
	return vis
}

func roundTrip(t *testing.T, doc *scenedoc.Document) *scenedoc.Document {
	var buf bytes.Buffer
	require.NoError(t, doc.Write(&buf))
	got, err := scenedoc.Read(&buf)
	require.NoError(t, err)
	return got
}

func TestRoundTrip(t *testing.T) {
	src := newScene(t)
	doc, err := scenedoc.Export(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pixel", "Toroid"}, doc.Manifest.Geometries)
	assert.Equal(t, []string{"Tracks", "Jets"}, doc.Manifest.EventData.Keys())

	dst := xyz.NewEngine(xyz.Options{Width: 320, Height: 240})
	require.NoError(t, scenedoc.Import(dst, roundTrip(t, doc)))

	assert.Equal(t, src.GeometryNames(), dst.GeometryNames())
	assert.Equal(t, src.EventDataManifest(), dst.EventDataManifest())
	assert.Equal(t, visibility(src), visibility(dst))
	assert.Nil(t, dst.Scene.Root.ChildByName(xyz.AxesName))
	assert.Equal(t, xyz.LightBackground, dst.Scene.BackgroundColor)
	assert.Equal(t, 3, dst.Scene.Lights.Len())

	toroid := dst.Object("Toroid")
	require.NotNil(t, toroid)
	meshes := toroid.Filter(func(n *xyz.Node) bool { return n.Kind == xyz.KindMesh })
	require.Len(t, meshes, 1)
	assert.Equal(t, colors.FromInt(0x00ff00), meshes[0].Material.Color)
	assert.Equal(t, xyz.MaterialPhong, meshes[0].Material.Kind)
	assert.Equal(t, dst.ClipPlanes(), meshes[0].Material.ClipPlanes)
	assert.True(t, meshes[0].Material.ClipIntersection)
	assert.Equal(t, xyz.InfoContent, toroid.Info())

	// module transforms and shared materials survive
	srcPixel, dstPixel := src.Object("Pixel"), dst.Object("Pixel")
	require.Len(t, dstPixel.Children, len(srcPixel.Children))
	for i, c := range srcPixel.Children {
		d := dstPixel.Children[i]
		assert.Equal(t, c.Name, d.Name)
		assert.Equal(t, c.Kind, d.Kind)
		assert.Equal(t, c.Pose.Matrix, d.Pose.Matrix)
		assert.Equal(t, c.Material.Color, d.Material.Color)
		assert.Equal(t, c.Material.Alpha(), d.Material.Alpha())
	}
	assert.Same(t, dstPixel.Children[0].Material, dstPixel.Children[2].Material)

	// event data elements keep their pick attributes in order
	mu := dst.Scene.FindByName("mu1")
	require.NotNil(t, mu)
	assert.Equal(t, xyz.KindLine, mu.Kind)
	assert.Equal(t, []string{"pT", "charge"}, mu.UserData.Keys())
	assert.Equal(t, "25.3 GeV", mu.UserData.ValueByKey("pT"))
	assert.Equal(t, float32(2), mu.Material.LineWidth)

	// registry operations work on the imported scene
	require.NoError(t, dst.SetVisibility("Pixel", true))
	require.NoError(t, dst.SetCollectionColor("Muons", "#0000ff"))
	assert.Equal(t, colors.FromInt(0x0000ff), mu.Material.Color)
	dst.ClearEventData()
	assert.Empty(t, dst.EventData().Children)
}

func TestDuplicateTypeGroups(t *testing.T) {
	src := xyz.NewEngine(xyz.Options{})
	src.AddEventDataCollection(src.AddEventDataTypeGroup("Tracks"), "Muons")
	src.AddEventDataCollection(src.AddEventDataTypeGroup("Tracks"), "Electrons")
	doc, err := scenedoc.Export(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"Electrons"}, doc.Manifest.EventData.ValueByKey("Tracks"))

	dst := xyz.NewEngine(xyz.Options{})
	require.NoError(t, scenedoc.Import(dst, roundTrip(t, doc)))
	groups := dst.EventData().Children
	require.Len(t, groups, 2)
	assert.Equal(t, "Muons", groups[0].Children[0].Name)
	assert.Equal(t, "Electrons", groups[1].Children[0].Name)
	assert.Equal(t, src.EventDataManifest(), dst.EventDataManifest())
}

func TestDocumentKeys(t *testing.T) {
	doc, err := scenedoc.Export(xyz.NewEngine(xyz.Options{}))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, doc.Write(&buf))
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Contains(t, raw, "sceneConfiguration")
	assert.Contains(t, raw, "scene")
	assert.JSONEq(t, `{"eventData": {}, "geometries": []}`, string(raw["sceneConfiguration"]))

	alias := `{"manifest": {"eventData": {"Tracks": ["Muons"]}, "geometries": ["A"]}, "scene": {"asset": {"version": "2.0"}}}`
	got, err := scenedoc.Read(strings.NewReader(alias))
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, got.Manifest.Geometries)
	assert.Equal(t, []string{"Muons"}, got.Manifest.EventData.ValueByKey("Tracks"))

	_, err = scenedoc.Read(strings.NewReader(`{"scene": {}}`))
	assert.ErrorIs(t, err, xyz.ErrSerialization)
	_, err = scenedoc.Read(strings.NewReader(`not json`))
	assert.ErrorIs(t, err, xyz.ErrSerialization)
}

func TestSaveOpen(t *testing.T) {
	src := newScene(t)
	doc, err := scenedoc.Export(src)
	require.NoError(t, err)
	fn := filepath.Join(t.TempDir(), "scene.gltf")
	require.NoError(t, doc.Save(fn))
	got, err := scenedoc.Open(fn)
	require.NoError(t, err)
	assert.Equal(t, doc.Manifest, got.Manifest)
	assert.JSONEq(t, string(doc.Scene), string(got.Scene))
}

func TestImportAllOrNothing(t *testing.T) {
	src := newScene(t)
	doc, err := scenedoc.Export(src)
	require.NoError(t, err)

	dst := newScene(t)
	sc := dst.Scene
	names := dst.Registry.Names()

	missingGeometry := *doc
	missingGeometry.Manifest.Geometries = append([]string{"Muon Spectrometer"}, doc.Manifest.Geometries...)
	missingCollection := *doc
	missingCollection.Manifest.EventData = ordmap.New[string, []string]()
	missingCollection.Manifest.EventData.Add("Tracks", []string{"Muons", "Taus"})
	corrupt := *doc
	corrupt.Scene = json.RawMessage(`{"asset": {"version": "2.0"}, "nodes": [{"children": [0]}]}`)

	for _, d := range []*scenedoc.Document{&missingGeometry, &missingCollection, &corrupt} {
		assert.ErrorIs(t, scenedoc.Import(dst, d), xyz.ErrSerialization)
		assert.Same(t, sc, dst.Scene)
		assert.Equal(t, names, dst.Registry.Names())
		assert.Equal(t, xyz.DarkBackground, dst.Scene.BackgroundColor)
	}
}

func TestImportVersion(t *testing.T) {
	doc, err := scenedoc.Export(newScene(t))
	require.NoError(t, err)
	f, err := gltf.Decode(bytes.NewReader(doc.Scene))
	require.NoError(t, err)

	for _, v := range []string{"2.0.0", "0.9.0", "one"} {
		f.Asset.Extras["documentVersion"] = v
		payload, err := json.Marshal(f)
		require.NoError(t, err)
		bad := &scenedoc.Document{Manifest: doc.Manifest, Scene: payload}
		assert.ErrorIs(t, scenedoc.Import(xyz.NewEngine(xyz.Options{}), bad), xyz.ErrSerialization, v)
	}
	f.Asset.Extras["documentVersion"] = "1.4.2"
	payload, err := json.Marshal(f)
	require.NoError(t, err)
	ok := &scenedoc.Document{Manifest: doc.Manifest, Scene: payload}
	assert.NoError(t, scenedoc.Import(xyz.NewEngine(xyz.Options{}), ok))
}
