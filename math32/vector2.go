// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Vector2 is a 2D vector/point with X and Y components.
// It is used for normalized device coordinates in picking.
type Vector2 struct {
	X float32
	Y float32
}

// Vec2 returns a new [Vector2] with the given x and y components.
func Vec2(x, y float32) Vector2 {
	return Vector2{X: x, Y: y}
}

// Set sets this vector X and Y components.
func (v *Vector2) Set(x, y float32) {
	v.X = x
	v.Y = y
}

// NDC converts the given pointer pixel coordinates within a viewport of
// size w x h into normalized device coordinates, with Y pointing up.
func NDC(x, y, w, h float32) Vector2 {
	return Vector2{X: 2*x/w - 1, Y: -(2*y/h - 1)}
}
