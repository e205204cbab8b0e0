// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import (
	"cogentcore.org/pano/math32"
)

// Rig is a perspective camera positioned at the center of the panorama
// sphere. Only the field of view and the look / up directions are owned
// here; the rendering backend reads them each frame.
//
// A Rig is not safe for concurrent use: all mutations must happen on the
// goroutine that owns it. Other goroutines observe changes through
// [Rig.Changes].
type Rig struct {

	// FOV is the vertical field of view in degrees.
	FOV float32

	// Look is the look direction.
	Look math32.Vector3

	// Up is the up direction.
	Up math32.Vector3

	// WorldUp is the reference from which Up is re-derived after rotations.
	// It defaults to [WorldUpReference].
	WorldUp math32.Vector3

	subs    []func(ev Event)
	changes chan Event
}

// NewRig returns a new [Rig] with the given field of view, looking down
// the negative Z axis with +Y up.
func NewRig(fov float32) *Rig {
	rg := &Rig{}
	rg.Defaults()
	rg.FOV = fov
	return rg
}

// Defaults sets the default orientation and reference.
func (rg *Rig) Defaults() {
	rg.FOV = 30
	rg.Look = math32.Vec3(0, 0, -1)
	rg.Up = math32.Vector3Y
	rg.WorldUp = WorldUpReference
}

// FieldOfView returns the current field of view in degrees.
func (rg *Rig) FieldOfView() float32 {
	return rg.FOV
}

// LookDirection returns the current look direction.
func (rg *Rig) LookDirection() math32.Vector3 {
	return rg.Look
}

// UpDirection returns the current up direction.
func (rg *Rig) UpDirection() math32.Vector3 {
	return rg.Up
}

// Orientation returns the current look and up directions as an [Orientation].
func (rg *Rig) Orientation() Orientation {
	return Orientation{Look: rg.Look, Up: rg.Up}
}

// SetOrientation sets the look and up directions, as done each tick by
// a running rotation animation.
func (rg *Rig) SetOrientation(o Orientation) {
	rg.Look = o.Look
	rg.Up = o.Up
	rg.publish(Oriented)
}

// SetFOV sets the field of view directly, without clamping.
func (rg *Rig) SetFOV(fov float32) {
	rg.FOV = fov
	rg.publish(Zoomed)
}

// Zoom changes the field of view by delta degrees, clamping the result
// into [minFOV, maxFOV] before it is applied, so that a delta exceeding
// the full range lands exactly on the boundary.
func (rg *Rig) Zoom(delta, minFOV, maxFOV float32) {
	fov := math32.Clamp(rg.FOV+delta, minFOV, maxFOV)
	if fov == rg.FOV {
		return
	}
	rg.FOV = fov
	rg.publish(Zoomed)
}

// RotateAroundAxis rotates the look direction about axis by angle degrees
// (right-hand rule) and re-derives the up direction from [Rig.WorldUp]
// rather than rotating the old one, which keeps the horizon level.
// When the new look direction is parallel to the world reference the
// previous up direction is kept.
func (rg *Rig) RotateAroundAxis(axis math32.Vector3, angle float32) {
	rg.Look = rg.Look.RotateAxisAngle(axis, math32.DegToRad(angle))
	if up, ok := UpFromLook(rg.Reference(), rg.Look); ok {
		rg.Up = up
	}
	rg.publish(Rotated)
}

// VerticalRotateInSitu tilts the camera up or down by angle degrees,
// rotating about look x up.
func (rg *Rig) VerticalRotateInSitu(angle float32) {
	rg.RotateAroundAxis(rg.Look.Cross(rg.Up), angle)
}

// HorizontalRotateInSitu pans the camera left or right by angle degrees,
// rotating about the world Y axis.
func (rg *Rig) HorizontalRotateInSitu(angle float32) {
	rg.RotateAroundAxis(math32.Vector3Y, angle)
}

// Reference returns the world up reference of the rig: WorldUp, or
// [WorldUpReference] when it is zero.
func (rg *Rig) Reference() math32.Vector3 {
	if rg.WorldUp.IsZero() {
		return WorldUpReference
	}
	return rg.WorldUp
}
