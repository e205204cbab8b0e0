// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package camera provides the perspective camera rig that views the panorama
// sphere from its center, and the [Orientation] value used as an animation
// keyframe and camera state sample.
package camera

import (
	"fmt"

	"cogentcore.org/pano/math32"
)

// WorldUpReference is the fixed reference direction from which camera up
// vectors are re-derived after a rotation: up = (ref x look) x look.
// With this reference a horizontal look direction yields a +Y up.
var WorldUpReference = math32.Vec3(0, -1, 0)

// Orientation is a camera look direction together with its up direction.
// It is an immutable value: equality is exact per component, so plain ==
// comparison is meaningful.
type Orientation struct {

	// Look is the direction from the camera toward its focal point.
	// It need not be normalized.
	Look math32.Vector3

	// Up is the vertical axis of the camera, orthogonal to Look by
	// construction but not necessarily of unit length.
	Up math32.Vector3
}

// NewOrientation returns a new [Orientation] with the given look and up directions.
func NewOrientation(look, up math32.Vector3) Orientation {
	return Orientation{Look: look, Up: up}
}

// IsEqual returns whether the two orientations are exactly equal.
func (o Orientation) IsEqual(other Orientation) bool {
	return o == other
}

// IsEqualTol returns whether the two orientations are equal within
// tol on every component.
func (o Orientation) IsEqualTol(other Orientation, tol float32) bool {
	return o.Look.IsEqualTol(other.Look, tol) && o.Up.IsEqualTol(other.Up, tol)
}

// IsZero returns whether both directions are zero, which is the value
// of an unset orientation.
func (o Orientation) IsZero() bool {
	return o.Look.IsZero() && o.Up.IsZero()
}

func (o Orientation) String() string {
	return fmt.Sprintf("Look:%v Up:%v", o.Look, o.Up)
}

// UpFromLook re-derives an up direction for look from the world reference:
// (ref x look) x look. The result is orthogonal to look but not normalized.
// When look is parallel to ref (to within [ParallelTol] in sine of the
// angle) the cross product vanishes; ok is then false and the returned
// vector is zero.
func UpFromLook(ref, look math32.Vector3) (up math32.Vector3, ok bool) {
	horizontal := ref.Cross(look)
	scale := ref.LengthSquared() * look.LengthSquared()
	if scale == 0 || horizontal.LengthSquared() <= ParallelTol*ParallelTol*scale {
		return math32.Vector3{}, false
	}
	return horizontal.Cross(look), true
}

// ParallelTol is the sine of the angle below which two directions are
// treated as parallel when re-deriving an up vector.
const ParallelTol = 1e-5
