// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/hepvis/eventdisplay/xyz"
	_ "github.com/hepvis/eventdisplay/xyz/io/obj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangle = `o Coil
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

const square = `o Coil
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func writeFile(t *testing.T, dir, name, content string) string {
	fp := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(fp, []byte(content), 0o644))
	return fp
}

func TestFetchFile(t *testing.T) {
	dir := t.TempDir()
	fp := writeFile(t, dir, "coil.obj", triangle)
	ld := &Loader{Dir: dir}
	ctx := context.Background()

	data, err := ld.Fetch(ctx, "coil.obj")
	require.NoError(t, err)
	assert.Equal(t, triangle, string(data))

	data, err = ld.Fetch(ctx, fp)
	require.NoError(t, err)
	assert.Equal(t, triangle, string(data))

	data, err = ld.Fetch(ctx, "file://"+fp)
	require.NoError(t, err)
	assert.Equal(t, triangle, string(data))

	_, err = ld.Fetch(ctx, "missing.obj")
	assert.ErrorIs(t, err, ErrNotFound)

	p, err := ld.Path("coil.obj")
	require.NoError(t, err)
	assert.Equal(t, fp, p)
}

func TestFetchFS(t *testing.T) {
	ld := &Loader{FS: fstest.MapFS{
		"geometries/coil.obj": {Data: []byte(triangle)},
	}}
	ctx := context.Background()
	data, err := ld.Fetch(ctx, "geometries/coil.obj")
	require.NoError(t, err)
	assert.Equal(t, triangle, string(data))

	_, err = ld.Fetch(ctx, "geometries/magnet.obj")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = ld.Fetch(ctx, "geometries")
	assert.ErrorIs(t, err, ErrNotFound)

	p, err := ld.Path("geometries/coil.obj")
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestFetchURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/coil.obj":
			w.Write([]byte(triangle))
		case "/image.obj":
			w.Write(pngHeader)
		case "/broken.obj":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ld := &Loader{Client: srv.Client()}
	ctx := context.Background()
	data, err := ld.Fetch(ctx, srv.URL+"/coil.obj")
	require.NoError(t, err)
	assert.Equal(t, triangle, string(data))

	_, err = ld.Fetch(ctx, srv.URL+"/missing.obj")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = ld.Fetch(ctx, srv.URL+"/broken.obj")
	assert.ErrorContains(t, err, "500")
	_, err = ld.Fetch(ctx, srv.URL+"/image.obj")
	assert.ErrorIs(t, err, ErrBinary)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = ld.Fetch(canceled, srv.URL+"/coil.obj")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchLimits(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "coil.obj", triangle)
	writeFile(t, dir, "image.obj", string(pngHeader))

	ld := &Loader{Dir: dir, MaxSize: 8}
	_, err := ld.Fetch(context.Background(), "coil.obj")
	assert.ErrorContains(t, err, "larger than 8 bytes")

	ld.MaxSize = 0
	_, err = ld.Fetch(context.Background(), "image.obj")
	assert.ErrorIs(t, err, ErrBinary)
}

func TestCheckText(t *testing.T) {
	assert.NoError(t, CheckText(nil))
	assert.NoError(t, CheckText([]byte(triangle)))
	assert.ErrorIs(t, CheckText(pngHeader), ErrBinary)
	assert.ErrorIs(t, CheckText([]byte("PK\x03\x04\x14\x00\x00\x00")), ErrBinary)
}

// importer registers a loader on a new engine and collects the
// names of successful imports. A watched file can be seen while it
// is being written, so failed imports are skipped.
func importer(dir string) (*xyz.Engine, chan string) {
	e := xyz.NewEngine(xyz.Options{Width: 320, Height: 240})
	e.Fetcher = &Loader{Dir: dir}
	done := make(chan string, 16)
	e.OnImport = func(name string, nd *xyz.Node, err error) {
		if err != nil {
			return
		}
		select {
		case done <- name:
		default:
		}
	}
	return e, done
}

func waitImport(t *testing.T, e *xyz.Engine, done chan string, name string) {
	require.Eventually(t, func() bool {
		e.Step(0)
		select {
		case got := <-done:
			return got == name
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
}

func triangleCount(e *xyz.Engine, name string) int {
	n := 0
	for _, m := range e.Object(name).Filter(func(n *xyz.Node) bool { return n.Kind == xyz.KindMesh }) {
		n += len(m.Mesh.Triangles())
	}
	return n
}

func TestImportByPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "coil.obj", triangle)
	e, done := importer(dir)

	require.NoError(t, e.ImportByPath(context.Background(), "coil.obj", "Coil", 0xff0000, true))
	waitImport(t, e, done, "Coil")
	assert.Equal(t, xyz.InfoFile, e.Object("Coil").Info())
	assert.Equal(t, 1, triangleCount(e, "Coil"))
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	fp := writeFile(t, dir, "coil.obj", triangle)
	e, done := importer(dir)

	w, err := NewWatcher(e)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(fp, "Coil", nil, false))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	writeFile(t, dir, "other.obj", triangle)
	writeFile(t, dir, "coil.obj", square)
	waitImport(t, e, done, "Coil")
	require.NotNil(t, e.Object("Coil"))
	assert.Nil(t, e.Object("other"))
	require.Eventually(t, func() bool {
		e.Step(0)
		return triangleCount(e, "Coil") == 2
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatcherReportsFailures(t *testing.T) {
	dir := t.TempDir()
	fp := writeFile(t, dir, "coil.stl", "solid coil")
	e := xyz.NewEngine(xyz.Options{})
	e.Fetcher = &Loader{Dir: dir}
	errs := make(chan error, 16)
	e.OnImport = func(name string, nd *xyz.Node, err error) {
		select {
		case errs <- err:
		default:
		}
	}

	w, err := NewWatcher(e)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Add(fp, "Coil", nil, false))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	writeFile(t, dir, "coil.stl", "solid coil\nendsolid coil")
	select {
	case err := <-errs:
		assert.ErrorIs(t, err, xyz.ErrAsset)
	case <-time.After(5 * time.Second):
		t.Fatal("no import reported")
	}
	assert.Nil(t, e.Object("Coil"))
}
