// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colors parses the colour values accepted by the event display:
// integer hex values such as 0x41a6f4, CSS hex strings, "rgb(...)",
// "hsl(...)" and a small set of color names.
package colors

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Standard colors.
var (
	White = color.RGBA{255, 255, 255, 255}
	Black = color.RGBA{0, 0, 0, 255}
)

// Map is the map of supported color names.
var Map = map[string]color.RGBA{
	"white":   White,
	"black":   Black,
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"lime":    {0, 255, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"cyan":    {0, 255, 255, 255},
	"magenta": {255, 0, 255, 255},
	"orange":  {255, 165, 0, 255},
	"grey":    {128, 128, 128, 255},
	"gray":    {128, 128, 128, 255},
}

// AsRGBA returns the given color as an RGBA color
func AsRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// FromInt returns the opaque color with the given 0xRRGGBB value.
func FromInt(v uint32) color.RGBA {
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
}

// AsInt returns the 0xRRGGBB value of the given color, ignoring alpha.
func AsInt(c color.Color) uint32 {
	r := AsRGBA(c)
	return uint32(r.R)<<16 | uint32(r.G)<<8 | uint32(r.B)
}

// AsHex returns the color as a standard 2-hexadecimal-digits-per-component
// string: #RRGGBB.
func AsHex(c color.Color) string {
	r := AsRGBA(c)
	return fmt.Sprintf("#%02x%02x%02x", r.R, r.G, r.B)
}

// Float32 returns the red, green, blue and alpha components of c in [0, 1].
func Float32(c color.Color) (r, g, b, a float32) {
	rc := AsRGBA(c)
	return float32(rc.R) / 255, float32(rc.G) / 255, float32(rc.B) / 255, float32(rc.A) / 255
}

// FromFloat32 returns the color with the given components in [0, 1],
// clamped and rounded to 8 bits.
func FromFloat32(r, g, b, a float32) color.RGBA {
	cv := func(v float32) uint8 {
		return uint8(math.Round(float64(min(max(v, 0), 1)) * 255))
	}
	return color.RGBA{cv(r), cv(g), cv(b), cv(a)}
}

// FromHex parses the given hex color string and returns the resulting color.
// It accepts #RGB, #RRGGBB and 0xRRGGBB forms, with or without the prefix.
func FromHex(hex string) (color.RGBA, error) {
	h := strings.TrimSpace(hex)
	switch {
	case strings.HasPrefix(h, "0x"), strings.HasPrefix(h, "0X"):
		h = h[2:]
	default:
		h = strings.TrimPrefix(h, "#")
	}
	if len(h) == 6 || len(h) == 3 {
		c, err := colorful.Hex("#" + h)
		if err == nil {
			r, g, b := c.RGB255()
			return color.RGBA{r, g, b, 255}, nil
		}
	}
	return color.RGBA{}, fmt.Errorf("colors.FromHex: invalid hex color %q", hex)
}

// FromString returns a color value from the given string: a hex value,
// a color name, "rgb(r, g, b)" with 0-255 components or
// "hsl(h, s%, l%)" with the hue in degrees.
func FromString(str string) (color.RGBA, error) {
	s := strings.ToLower(strings.TrimSpace(str))
	if s == "" {
		return color.RGBA{}, errors.New("colors.FromString: empty color")
	}
	if c, ok := Map[s]; ok {
		return c, nil
	}
	switch {
	case strings.HasPrefix(s, "hsl(") && strings.HasSuffix(s, ")"):
		v, err := parseComponents(s[4 : len(s)-1])
		if err != nil {
			return color.RGBA{}, fmt.Errorf("colors.FromString: %q: %w", str, err)
		}
		c := colorful.Hsl(v[0], v[1]/100, v[2]/100).Clamped()
		r, g, b := c.RGB255()
		return color.RGBA{r, g, b, 255}, nil
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		v, err := parseComponents(s[4 : len(s)-1])
		if err != nil {
			return color.RGBA{}, fmt.Errorf("colors.FromString: %q: %w", str, err)
		}
		c := colorful.Color{R: v[0] / 255, G: v[1] / 255, B: v[2] / 255}.Clamped()
		r, g, b := c.RGB255()
		return color.RGBA{r, g, b, 255}, nil
	}
	return FromHex(s)
}

// parseComponents parses three comma separated numbers,
// ignoring percent signs.
func parseComponents(s string) ([3]float64, error) {
	var v [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return v, fmt.Errorf("expected 3 components, got %d", len(parts))
	}
	for i, p := range parts {
		p = strings.TrimSuffix(strings.TrimSpace(p), "%")
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

// FromAny returns a color from the given value of any type:
// a [color.Color], an integer 0xRRGGBB value, a float holding one
// (as decoded from JSON), or a string as accepted by [FromString].
func FromAny(val any) (color.RGBA, error) {
	switch v := val.(type) {
	case color.RGBA:
		return v, nil
	case color.Color:
		return AsRGBA(v), nil
	case int:
		return FromInt(uint32(v)), nil
	case int32:
		return FromInt(uint32(v)), nil
	case int64:
		return FromInt(uint32(v)), nil
	case uint32:
		return FromInt(v), nil
	case uint64:
		return FromInt(uint32(v)), nil
	case float64:
		if v < 0 || v != math.Trunc(v) {
			return color.RGBA{}, fmt.Errorf("colors.FromAny: invalid color value %v", v)
		}
		return FromInt(uint32(v)), nil
	case string:
		return FromString(v)
	}
	return color.RGBA{}, fmt.Errorf("colors.FromAny: could not get color from value %v of type %T", val, val)
}

// Scale returns the color with its red, green and blue components
// multiplied by the given factor, clamped to the valid range.
func Scale(c color.Color, f float32) color.RGBA {
	r, g, b, a := Float32(c)
	return FromFloat32(r*f, g*f, b*f, a)
}

// Blend returns a color that is the given proportion between
// x and y in RGB space (0 = x, 1 = y). The alpha of x is kept.
func Blend(t float32, x, y color.Color) color.RGBA {
	xc, _ := colorful.MakeColor(opaque(x))
	yc, _ := colorful.MakeColor(opaque(y))
	r, g, b := xc.BlendRgb(yc, float64(t)).Clamped().RGB255()
	return color.RGBA{r, g, b, AsRGBA(x).A}
}

func opaque(c color.Color) color.Color {
	r := AsRGBA(c)
	r.A = 255
	return r
}
