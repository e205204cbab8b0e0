// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package anim provides keyframe animations of camera state: [Rotation],
// which moves a camera orientation along great-circle arcs through any
// number of keyframes, and [Matrix], which interpolates a transform.
// Both implement [Animator], and a [Player] drives either from a clock.
package anim

// Animator is the capability shared by all animations: it is prepared
// once per activation with the default origin and destination values
// (typically the current value of the animated property), and then
// sampled with a raw progress value in [0, 1] on every clock tick.
type Animator[T any] interface {

	// Prepare sets the default origin and destination used for any
	// endpoint that has not been set explicitly.
	Prepare(origin, destination T)

	// Sample returns the animated value at the given progress.
	// Progress outside [0, 1] is clamped.
	Sample(progress float32) T
}
