// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import (
	"slices"

	"cogentcore.org/pano/camera"
	"cogentcore.org/pano/math32"
)

// Rotation animates a camera [camera.Orientation] through a sequence of
// keyframes. Each section between two keyframes rotates the look direction
// along the great circle joining them, and progress is distributed over
// the sections in proportion to their arc length, so the camera turns at
// a constant angular speed across the whole path.
//
// The keyframe set is derived lazily from the explicit endpoints (see
// [Rotation.SetFrom], [Rotation.SetTo], [Rotation.SetTos]) and the defaults
// passed to [Rotation.Prepare], and is cached until one of them changes.
type Rotation struct {

	// Ease is an optional easing applied to progress before lookup.
	Ease EaseFunc

	// WorldUp is the reference from which sampled up directions are
	// re-derived. Zero means [camera.WorldUpReference].
	WorldUp math32.Vector3

	from *camera.Orientation
	to   *camera.Orientation
	tos  []camera.Orientation

	origin      camera.Orientation
	destination camera.Orientation

	keyframes []camera.Orientation
	sections  Sections
	dirty     bool
}

// Sections is the table derived from a keyframe set. Axis and Angle have
// one entry per section; ProgressBegin has one entry per keyframe and is
// monotonically non-decreasing, from 0 to 1.
type Sections struct {

	// Axis is the rotation axis of each section: the cross product of its
	// start and end look directions.
	Axis []math32.Vector3

	// Angle is the rotation angle of each section in radians.
	Angle []float32

	// ProgressBegin is the cumulative angle up to each keyframe divided
	// by the total angle. It is all 0 when the total angle is 0.
	ProgressBegin []float32

	// Total is the sum of all section angles.
	Total float32
}

var _ Animator[camera.Orientation] = (*Rotation)(nil)

// NewRotation returns a new [Rotation] from the given orientation through
// each of the given destinations in order.
func NewRotation(from camera.Orientation, tos ...camera.Orientation) *Rotation {
	r := &Rotation{}
	r.SetFrom(from)
	r.SetTos(tos...)
	return r
}

// SetFrom sets the explicit starting keyframe.
func (r *Rotation) SetFrom(o camera.Orientation) *Rotation {
	r.from = &o
	r.dirty = true
	return r
}

// SetTo sets the explicit single destination keyframe.
// It takes precedence over any list set with [Rotation.SetTos].
func (r *Rotation) SetTo(o camera.Orientation) *Rotation {
	r.to = &o
	r.dirty = true
	return r
}

// SetTos sets the list of destination keyframes visited in order.
func (r *Rotation) SetTos(os ...camera.Orientation) *Rotation {
	r.tos = slices.Clone(os)
	r.dirty = true
	return r
}

// ClearFrom removes the explicit starting keyframe, so that the default
// origin is used.
func (r *Rotation) ClearFrom() *Rotation {
	r.from = nil
	r.dirty = true
	return r
}

// ClearTo removes the explicit destinations set by [Rotation.SetTo] and
// [Rotation.SetTos], so that the default destination is used.
func (r *Rotation) ClearTo() *Rotation {
	r.to = nil
	r.tos = nil
	r.dirty = true
	return r
}

// Prepare sets the default origin and destination. It only invalidates
// the cached keyframes when either actually differs from before.
func (r *Rotation) Prepare(origin, destination camera.Orientation) {
	if origin == r.origin && destination == r.destination && r.keyframes != nil {
		return
	}
	r.origin = origin
	r.destination = destination
	r.dirty = true
}

// Keyframes returns the current keyframe set, which always has at least
// two entries.
func (r *Rotation) Keyframes() []camera.Orientation {
	r.update()
	return r.keyframes
}

// Sections returns the section table derived from the keyframes.
func (r *Rotation) Sections() Sections {
	r.update()
	return r.sections
}

func (r *Rotation) update() {
	if !r.dirty && r.keyframes != nil {
		return
	}
	r.keyframes = r.buildKeyframes()
	r.sections = NewSections(r.keyframes)
	r.dirty = false
}

// buildKeyframes applies the endpoint precedence: an explicit from, else
// the default origin; then an explicit to, else the explicit list, else
// the default destination.
func (r *Rotation) buildKeyframes() []camera.Orientation {
	from := r.origin
	if r.from != nil {
		from = *r.from
	}
	switch {
	case r.to != nil:
		return []camera.Orientation{from, *r.to}
	case len(r.tos) > 0:
		return append([]camera.Orientation{from}, r.tos...)
	default:
		return []camera.Orientation{from, r.destination}
	}
}

// NewSections computes the [Sections] table for the given keyframes.
// Zero-length sections are legal and get a zero-width progress interval.
func NewSections(keys []camera.Orientation) Sections {
	n := len(keys)
	s := Sections{
		Axis:          make([]math32.Vector3, max(n-1, 0)),
		Angle:         make([]float32, max(n-1, 0)),
		ProgressBegin: make([]float32, n),
	}
	cum := make([]float32, n)
	for i := 1; i < n; i++ {
		from, to := keys[i-1].Look, keys[i].Look
		s.Angle[i-1] = from.AngleTo(to)
		s.Axis[i-1] = sectionAxis(from, to, s.Angle[i-1])
		cum[i] = cum[i-1] + s.Angle[i-1]
	}
	if n > 0 {
		s.Total = cum[n-1]
	}
	if s.Total == 0 {
		return s
	}
	for i := 1; i < n; i++ {
		s.ProgressBegin[i] = cum[i] / s.Total
	}
	s.ProgressBegin[n-1] = 1
	return s
}

// sectionAxis returns from x to, except for opposite directions where the
// cross product vanishes and any axis perpendicular to from is used.
func sectionAxis(from, to math32.Vector3, angle float32) math32.Vector3 {
	axis := from.Cross(to)
	if angle <= math32.HalfPi {
		return axis
	}
	tol := camera.ParallelTol * camera.ParallelTol * from.LengthSquared() * to.LengthSquared()
	if axis.LengthSquared() <= tol {
		return from.Perpendicular()
	}
	return axis
}

// Section returns the index of the section containing progress, which
// must already be in [0, 1], and the local progress within it.
// The first section whose closed interval contains progress wins, and
// progress 1 always selects the last section. The local progress is 0
// for a section of zero width.
func (s *Sections) Section(progress float32) (index int, local float32) {
	n := len(s.ProgressBegin)
	if n < 2 {
		return 0, 0
	}
	if progress >= 1 {
		index = n - 2
	} else {
		for i := 0; i < n-1; i++ {
			if s.ProgressBegin[i] <= progress && progress <= s.ProgressBegin[i+1] {
				index = i
				break
			}
		}
	}
	width := s.ProgressBegin[index+1] - s.ProgressBegin[index]
	if width == 0 {
		return index, 0
	}
	return index, (progress - s.ProgressBegin[index]) / width
}

// Sample returns the orientation at the given raw progress. The look
// direction is the section start rotated toward the section end, and the
// up direction is re-derived from [Rotation.WorldUp]: it is
// orthogonal to the look direction but not normalized. When the look
// direction is parallel to the reference, the section start up direction,
// rotated along with the look, is used instead.
func (r *Rotation) Sample(progress float32) camera.Orientation {
	r.update()
	progress = ease(r.Ease, progress)
	if r.sections.Total == 0 {
		return r.withUp(r.keyframes[0].Look, r.keyframes[0].Up)
	}
	i, t := r.sections.Section(progress)
	key := r.keyframes[i]
	axis, angle := r.sections.Axis[i], r.sections.Angle[i]*t
	look := key.Look.RotateAxisAngle(axis, angle)
	return r.withUp(look, key.Up.RotateAxisAngle(axis, angle))
}

func (r *Rotation) withUp(look, fallback math32.Vector3) camera.Orientation {
	ref := r.WorldUp
	if ref.IsZero() {
		ref = camera.WorldUpReference
	}
	up, ok := camera.UpFromLook(ref, look)
	if !ok {
		up = fallback
	}
	return camera.Orientation{Look: look, Up: up}
}
