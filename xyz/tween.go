// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"slices"
	"time"

	"github.com/hepvis/eventdisplay/math32"
)

// CameraTweenDuration is the duration of camera position transitions.
const CameraTweenDuration = 1000 * time.Millisecond

// Tween is a linear interpolation of a vector field over time.
type Tween struct {

	// Field is the interpolated vector.
	Field *math32.Vector3

	// From is the value of the field when the tween started.
	From math32.Vector3

	// To is the final value of the field.
	To math32.Vector3

	// Duration is the total time of the interpolation.
	Duration time.Duration

	// Elapsed is the time interpolated so far.
	Elapsed time.Duration
}

// Done returns whether the tween has reached its end.
func (tw *Tween) Done() bool {
	return tw.Elapsed >= tw.Duration
}

// Tweens is the list of active interpolations, advanced by Update.
type Tweens struct {
	list []*Tween
}

// Start starts interpolating the given field from its current value
// to the given value over the given duration. A running tween on the
// same field is superseded.
func (ts *Tweens) Start(field *math32.Vector3, to math32.Vector3, dur time.Duration) *Tween {
	ts.list = slices.DeleteFunc(ts.list, func(tw *Tween) bool {
		return tw.Field == field
	})
	tw := &Tween{Field: field, From: *field, To: to, Duration: dur}
	ts.list = append(ts.list, tw)
	return tw
}

// Update advances all tweens by the given time, setting their fields,
// and removes the finished ones.
func (ts *Tweens) Update(dt time.Duration) {
	for _, tw := range ts.list {
		tw.Elapsed += dt
		if tw.Done() || tw.Duration <= 0 {
			*tw.Field = tw.To
			continue
		}
		t := float32(tw.Elapsed) / float32(tw.Duration)
		*tw.Field = tw.From.Lerp(tw.To, t)
	}
	ts.list = slices.DeleteFunc(ts.list, func(tw *Tween) bool {
		return tw.Done() || tw.Duration <= 0
	})
}

// Len returns the number of active tweens.
func (ts *Tweens) Len() int {
	return len(ts.list)
}
