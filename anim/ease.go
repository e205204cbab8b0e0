// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import "cogentcore.org/pano/math32"

// EaseFunc transforms a linear progress value in [0, 1] into an eased one.
type EaseFunc func(t float32) float32

// Linear is the identity easing.
func Linear(t float32) float32 { return t }

// InQuad accelerates from zero velocity.
func InQuad(t float32) float32 { return t * t }

// OutQuad decelerates to zero velocity.
func OutQuad(t float32) float32 { return t * (2 - t) }

// InOutQuad accelerates until halfway, then decelerates.
func InOutQuad(t float32) float32 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// InOutCubic is a steeper [InOutQuad].
func InOutCubic(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 2*t - 2
	return 0.5*u*u*u + 1
}

// InOutSine follows half a cosine wave.
func InOutSine(t float32) float32 {
	return 0.5 * (1 - math32.Cos(math32.Pi*t))
}

// ease applies fun to the clamped progress and clamps the result,
// so that overshooting easings never extrapolate past the keyframes.
func ease(fun EaseFunc, progress float32) float32 {
	progress = math32.Clamp(progress, 0, 1)
	if fun == nil {
		return progress
	}
	return math32.Clamp(fun(progress), 0, 1)
}
