// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pick

import (
	"fmt"

	"cogentcore.org/pano/camera"
	"cogentcore.org/pano/math32"
)

// Modes are the ways a [Dragger] turns pointer motion into rotation.
type Modes int32

const (
	// RayPick casts the previous and the current pointer positions onto
	// the sphere and rotates the camera so that the sphere follows the
	// pointer.
	RayPick Modes = iota

	// InSitu rotates in place by the raw pointer delta: vertically about
	// look x up or horizontally about the world Y axis, whichever delta
	// is larger.
	InSitu
)

func (m Modes) String() string {
	switch m {
	case RayPick:
		return "RayPick"
	case InSitu:
		return "InSitu"
	}
	return fmt.Sprintf("Modes(%d)", int32(m))
}

// Dragger is the pointer state machine of a panorama: press, move and
// release rotate the camera; the wheel zooms it. A Dragger must be used
// on the goroutine that owns its rig.
type Dragger struct {

	// Rig is the camera that is rotated and zoomed.
	Rig *camera.Rig

	// Caster casts screen points onto the sphere in [RayPick] mode.
	// Without a Caster, RayPick falls back to [InSitu].
	Caster RayCaster

	// Mode is the rotation mode.
	Mode Modes

	// Sensitivity is the [InSitu] rotation in degrees per pixel.
	Sensitivity float32

	// ZoomStep is the field of view change in degrees per wheel event.
	ZoomStep float32

	// MinFOV and MaxFOV bound the zoom.
	MinFOV, MaxFOV float32

	// OnChanging is called after every pointer sample that rotated
	// the camera during a drag.
	OnChanging func()

	// OnChanged is called once on release if the drag rotated the camera,
	// and after every wheel event that changed the field of view.
	OnChanged func()

	pressed bool
	last    math32.Vector2
	rotated bool
}

// NewDragger returns a new [Dragger] with default settings for the given
// rig, ray caster and mode.
func NewDragger(rg *camera.Rig, caster RayCaster, mode Modes) *Dragger {
	dr := &Dragger{Rig: rg, Caster: caster, Mode: mode}
	dr.Defaults()
	return dr
}

// Defaults sets one degree per pixel, one degree per wheel event, and
// a field of view range of [5, 150].
func (dr *Dragger) Defaults() {
	dr.Sensitivity = 1
	dr.ZoomStep = 1
	dr.MinFOV = 5
	dr.MaxFOV = 150
}

// IsDragging returns whether the pointer is pressed.
func (dr *Dragger) IsDragging() bool { return dr.pressed }

// Press starts a drag at the given screen point.
func (dr *Dragger) Press(p math32.Vector2) {
	dr.pressed = true
	dr.rotated = false
	dr.last = p
}

// Move continues a drag to the given screen point, returning whether
// the camera rotated. Moves without a press are ignored.
func (dr *Dragger) Move(p math32.Vector2) bool {
	if !dr.pressed {
		return false
	}
	prev := dr.last
	dr.last = p
	var done bool
	if dr.Mode == RayPick && dr.Caster != nil {
		done = dr.rayPick(prev, p)
	} else {
		done = dr.inSitu(p.Sub(prev))
	}
	if !done {
		return false
	}
	dr.rotated = true
	if dr.OnChanging != nil {
		dr.OnChanging()
	}
	return true
}

// Release ends a drag, returning whether any rotation happened during it.
func (dr *Dragger) Release() bool {
	if !dr.pressed {
		return false
	}
	dr.pressed = false
	rotated := dr.rotated
	dr.rotated = false
	if rotated && dr.OnChanged != nil {
		dr.OnChanged()
	}
	return rotated
}

// Wheel zooms in by ZoomStep for a positive delta and out for a
// negative one, returning whether the field of view changed.
func (dr *Dragger) Wheel(delta float32) bool {
	if delta == 0 {
		return false
	}
	step := dr.ZoomStep
	if delta > 0 {
		step = -step
	}
	fov := dr.Rig.FOV
	dr.Rig.Zoom(step, dr.MinFOV, dr.MaxFOV)
	if dr.Rig.FOV == fov {
		return false
	}
	if dr.OnChanged != nil {
		dr.OnChanged()
	}
	return true
}

// rayPick rotates by the arc between the sphere points under the previous
// and current pointer positions. A sample where either cast misses is
// skipped; the next sample starts from the current position.
func (dr *Dragger) rayPick(prev, cur math32.Vector2) bool {
	h1, ok := dr.Caster.CastRay(prev)
	if !ok {
		return false
	}
	h2, ok := dr.Caster.CastRay(cur)
	if !ok {
		return false
	}
	axis := h1.Cross(h2)
	if axis.IsZero() {
		return false
	}
	dr.Rig.RotateAroundAxis(axis, -math32.RadToDeg(h1.AngleTo(h2)))
	return true
}

func (dr *Dragger) inSitu(d math32.Vector2) bool {
	ad := d.Abs()
	switch {
	case ad.Y > ad.X:
		dr.Rig.VerticalRotateInSitu(d.Y * dr.Sensitivity)
	case ad.X > 0:
		dr.Rig.HorizontalRotateInSitu(d.X * dr.Sensitivity)
	default:
		return false
	}
	return true
}
