// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obj_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/hepvis/eventdisplay/colors"
	"github.com/hepvis/eventdisplay/xyz"
	"github.com/hepvis/eventdisplay/xyz/io/obj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cube = `# unit cube
mtllib cube.mtl
o Cube
v -1 -1 -1
v 1 -1 -1
v 1 1 -1
v -1 1 -1
v -1 -1 1
v 1 -1 1
v 1 1 1
v -1 1 1
usemtl steel
f 1 4 3 2
f 5 6 7 8
f 1 2 6 5
f 4 8 7 3
f 1 5 8 4
f 2 3 7 6
o Beam
v 0 0 -10
v 0 0 10
l -2 -1
`

const cubeMtl = `newmtl steel
Kd 1 0 0
d 0.5
`

func decode(t *testing.T, rs ...io.Reader) *obj.Decoder {
	dec := (&obj.Decoder{}).New().(*obj.Decoder)
	require.NoError(t, dec.Decode(rs))
	return dec
}

func TestDecode(t *testing.T) {
	dec := decode(t, strings.NewReader(cube))
	assert.Len(t, dec.Vertices, 10)
	assert.Equal(t, "cube.mtl", dec.Matlib)
	require.Len(t, dec.Objects, 2)
	assert.Equal(t, "Cube", dec.Objects[0].Name)
	assert.Len(t, dec.Objects[0].Faces, 6)
	assert.Equal(t, []int{8, 9}, dec.Objects[1].Lines[0].Vertices)

	gp := xyz.NewGroup("cube.obj")
	dec.SetGroup(gp)
	require.Len(t, gp.Children, 2)
	meshes := gp.Children[0].Children
	require.Len(t, meshes, 1)
	ms := meshes[0].Mesh
	assert.Len(t, ms.Positions, 8)
	assert.Len(t, ms.Triangles(), 12)
	assert.Equal(t, xyz.SideDouble, meshes[0].Material.Side)

	beam := gp.Children[1].Children
	require.Len(t, beam, 1)
	assert.Equal(t, xyz.KindLine, beam[0].Kind)
	assert.Len(t, beam[0].Mesh.Segments(), 1)
}

func TestDecodeMaterials(t *testing.T) {
	dec := decode(t, strings.NewReader(cube), strings.NewReader(cubeMtl))
	gp := xyz.NewGroup("cube.obj")
	dec.SetGroup(gp)
	mat := gp.Children[0].Children[0].Material
	assert.Equal(t, colors.FromInt(0xff0000), mat.Color)
	assert.Equal(t, float32(0.5), mat.Opacity)
	assert.True(t, mat.Transparent)
}

func TestDecodeErrors(t *testing.T) {
	bad := []string{
		"v 1 2\n",
		"v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 x\n",
		"v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n",
		"v 0 0 0\nf 0 1 1\n",
		"this is not a mesh\n",
	}
	for _, src := range bad {
		dec := (&obj.Decoder{}).New()
		assert.Error(t, dec.Decode([]io.Reader{strings.NewReader(src)}), src)
	}
}

func TestImportFromContent(t *testing.T) {
	e := xyz.NewEngine(xyz.Options{})
	nd, err := e.ImportFromContent(cube, "Magnet")
	require.NoError(t, err)
	assert.Same(t, nd, e.Object("Magnet"))
	assert.Equal(t, xyz.InfoContent, nd.Info())
	meshes := nd.Filter(func(n *xyz.Node) bool { return n.Kind == xyz.KindMesh })
	require.Len(t, meshes, 1)
	assert.Equal(t, "Magnet", meshes[0].Name)
	assert.Equal(t, xyz.DefaultMeshColor, meshes[0].Material.Color)
	assert.Equal(t, xyz.SideFront, meshes[0].Material.Side)

	res := xyz.PickResult{}
	require.True(t, e.PickInto(641, 360, 1280, 720, &res))
	assert.Equal(t, "Magnet", res.Name)
	assert.Equal(t, []xyz.Attribute{{Name: "info", Value: xyz.InfoContent}}, res.Attributes)
}

func TestImportFromContentMalformed(t *testing.T) {
	e := xyz.NewEngine(xyz.Options{})
	_, err := e.ImportFromContent("f 1 2 3\n", "Broken")
	assert.ErrorIs(t, err, xyz.ErrAsset)
	assert.Nil(t, e.Object("Broken"))
	assert.Equal(t, 0, e.Registry.Len())
}

type fetcher map[string]string

func (f fetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	s, ok := f[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return []byte(s), nil
}

type result struct {
	name string
	nd   *xyz.Node
	err  error
}

func TestImportByPath(t *testing.T) {
	e := xyz.NewEngine(xyz.Options{})
	e.Fetcher = fetcher{"geom/cube.obj": cube}
	done := make(chan result, 1)
	e.OnImport = func(name string, nd *xyz.Node, err error) {
		done <- result{name, nd, err}
	}

	require.NoError(t, e.ImportByPath(context.Background(), "geom/cube.obj", "Toroid", "#00ff00", true))
	var res result
	require.Eventually(t, func() bool {
		e.Step(time.Millisecond)
		select {
		case res = <-done:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, res.err)
	assert.Equal(t, "Toroid", res.name)
	assert.Same(t, res.nd, e.Object("Toroid"))
	assert.Equal(t, xyz.InfoFile, res.nd.Info())
	mesh := res.nd.Filter(func(n *xyz.Node) bool { return n.Kind == xyz.KindMesh })[0]
	assert.Equal(t, colors.FromInt(0x00ff00), mesh.Material.Color)
	assert.Equal(t, xyz.SideDouble, mesh.Material.Side)
}

func TestImportByPathErrors(t *testing.T) {
	e := xyz.NewEngine(xyz.Options{})
	done := make(chan error, 1)
	e.OnImport = func(name string, nd *xyz.Node, err error) {
		assert.Nil(t, nd)
		done <- err
	}
	assert.ErrorIs(t, e.ImportByPath(context.Background(), "cube.obj", "A", nil, false), xyz.ErrAsset)
	<-done

	e.Fetcher = fetcher{}
	assert.ErrorIs(t, e.ImportByPath(context.Background(), "cube.stl", "A", nil, false), xyz.ErrAsset)
	<-done
	assert.ErrorIs(t, e.ImportByPath(context.Background(), "cube.obj", "A", "notacolor", false), xyz.ErrUserInput)
	<-done

	require.NoError(t, e.ImportByPath(context.Background(), "missing.obj", "A", nil, false))
	var err error
	require.Eventually(t, func() bool {
		e.Step(time.Millisecond)
		select {
		case err = <-done:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, err, xyz.ErrAsset)
	assert.Nil(t, e.Object("A"))
}
