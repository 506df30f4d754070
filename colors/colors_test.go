// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colors

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAny(t *testing.T) {
	tests := []struct {
		val  any
		want color.RGBA
	}{
		{0x41a6f4, color.RGBA{0x41, 0xa6, 0xf4, 255}},
		{float64(0xff0000), color.RGBA{255, 0, 0, 255}},
		{int64(0x00ff00), color.RGBA{0, 255, 0, 255}},
		{"#0000ff", color.RGBA{0, 0, 255, 255}},
		{"#fff", White},
		{"0x404040", color.RGBA{0x40, 0x40, 0x40, 255}},
		{"BFBFBF", color.RGBA{0xbf, 0xbf, 0xbf, 255}},
		{"red", color.RGBA{255, 0, 0, 255}},
		{"rgb(10, 20, 30)", color.RGBA{10, 20, 30, 255}},
		{"hsl(0, 0%, 100%)", White},
		{"hsl(120, 100%, 50%)", color.RGBA{0, 255, 0, 255}},
		{color.Gray{Y: 128}, color.RGBA{128, 128, 128, 255}},
	}
	for _, tt := range tests {
		c, err := FromAny(tt.val)
		require.NoError(t, err, "%v", tt.val)
		assert.Equal(t, tt.want, c, "%v", tt.val)
	}

	for _, bad := range []any{"nope", "#12", "rgb(1,2)", 1.5, struct{}{}} {
		_, err := FromAny(bad)
		assert.Error(t, err, "%v", bad)
	}
}

func TestConversions(t *testing.T) {
	c := FromInt(0x41a6f4)
	assert.Equal(t, uint32(0x41a6f4), AsInt(c))
	assert.Equal(t, "#41a6f4", AsHex(c))
	r, g, b, a := Float32(c)
	assert.Equal(t, c, FromFloat32(r, g, b, a))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, FromFloat32(2, 2, 2, 1))
	assert.Equal(t, color.RGBA{64, 64, 64, 255}, Scale(color.RGBA{128, 128, 128, 255}, 0.5))
	assert.Equal(t, color.RGBA{128, 128, 128, 255}, Blend(0.5, Black, White))
}
