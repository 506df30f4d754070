// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fsx

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)
	p, err := Expand("~/geometries/toroid.obj")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "geometries", "toroid.obj"), p)

	p, err = Expand("toroid.obj")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(p))
}

func TestResolveFrom(t *testing.T) {
	dir := t.TempDir()
	p, err := ResolveFrom(dir, "geometries/toroid.obj")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "geometries", "toroid.obj"), p)

	p, err = ResolveFrom(dir, "/tmp/toroid.obj")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/tmp/toroid.obj"), p)
}

func TestFileExistsFS(t *testing.T) {
	fsys := fstest.MapFS{"a/b.obj": {Data: []byte("v 0 0 0")}}
	ok, err := FileExistsFS(fsys, "a/b.obj")
	assert.NoError(t, err)
	assert.True(t, ok)
	ok, err = FileExistsFS(fsys, "a")
	assert.NoError(t, err)
	assert.False(t, ok)
	ok, err = FileExistsFS(fsys, "c.obj")
	assert.NoError(t, err)
	assert.False(t, ok)
}
