// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iox_test

import (
	"path/filepath"
	"testing"

	"github.com/hepvis/eventdisplay/base/iox/jsonx"
	"github.com/hepvis/eventdisplay/base/iox/tomlx"
	"github.com/hepvis/eventdisplay/base/iox/yamlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type view struct {
	Name     string    `json:"name" toml:"name" yaml:"name"`
	Position []float32 `json:"position" toml:"position" yaml:"position"`
}

type settings struct {
	Width int    `json:"width" toml:"width" yaml:"width"`
	Views []view `json:"views" toml:"views" yaml:"views"`
}

func testSettings() *settings {
	return &settings{
		Width: 800,
		Views: []view{{Name: "Left", Position: []float32{0, 0, -12000}}},
	}
}

func TestTOML(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, tomlx.Save(testSettings(), fn))

	var s settings
	require.NoError(t, tomlx.Open(&s, fn))
	assert.Equal(t, testSettings(), &s)

	b, err := tomlx.WriteBytes(testSettings())
	require.NoError(t, err)
	var s2 settings
	require.NoError(t, tomlx.ReadBytes(&s2, b))
	assert.Equal(t, testSettings(), &s2)

	assert.Error(t, tomlx.OpenFiles(&s2, filepath.Join(t.TempDir(), "missing.toml")))
}

func TestYAML(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, yamlx.Save(testSettings(), fn))

	var s settings
	require.NoError(t, yamlx.Open(&s, fn))
	assert.Equal(t, testSettings(), &s)

	b, err := yamlx.WriteBytes(testSettings())
	require.NoError(t, err)
	assert.Contains(t, string(b), "width: 800")
}

func TestJSON(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, jsonx.Save(testSettings(), fn))

	var s settings
	require.NoError(t, jsonx.Open(&s, fn))
	assert.Equal(t, testSettings(), &s)

	b, err := jsonx.WriteBytes(testSettings())
	require.NoError(t, err)
	assert.Contains(t, string(b), "\n  \"width\": 800")
	var s2 settings
	require.NoError(t, jsonx.ReadBytes(&s2, b))
	assert.Equal(t, testSettings(), &s2)
}
