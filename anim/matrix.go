// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import "cogentcore.org/pano/math32"

// Matrix animates a [math32.Matrix4] by component-wise linear
// interpolation, for transforms such as the model matrix of the sphere.
//
// The endpoints follow the usual From / To / By rules: From defaults to
// the prepared origin; To defaults to the prepared destination, or to
// the start plus By when By is set.
type Matrix struct {

	// Ease is an optional easing applied to progress before interpolation.
	Ease EaseFunc

	// From is the optional explicit start value.
	From *math32.Matrix4

	// To is the optional explicit end value. It takes precedence over By.
	To *math32.Matrix4

	// By is the optional offset added to the start value to give the end value.
	By *math32.Matrix4

	origin      math32.Matrix4
	destination math32.Matrix4
}

var _ Animator[math32.Matrix4] = (*Matrix)(nil)

// Prepare sets the default origin and destination.
func (m *Matrix) Prepare(origin, destination math32.Matrix4) {
	m.origin = origin
	m.destination = destination
}

// Endpoints returns the start and end matrices after applying the
// From / To / By rules.
func (m *Matrix) Endpoints() (from, to *math32.Matrix4) {
	from = &m.origin
	if m.From != nil {
		from = m.From
	}
	switch {
	case m.To != nil:
		to = m.To
	case m.By != nil:
		to = from.Add(m.By)
	default:
		to = &m.destination
	}
	return
}

// Sample returns the interpolated matrix at the given progress.
func (m *Matrix) Sample(progress float32) math32.Matrix4 {
	from, to := m.Endpoints()
	return *from.Lerp(to, ease(m.Ease, progress))
}
