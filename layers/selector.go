// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layers

import (
	"cogentcore.org/pano/math32"
)

// Selector maps a field of view onto a 1-based layer index, splitting
// the field of view range into equal spans, one per layer, with layer 1
// (the coarsest) at the widest span. The zero value has no layers and
// never selects nor switches.
type Selector struct {
	count    int
	min, max float32

	// span is the field of view angle covered by each layer.
	span float32
}

// Configure sets the number of layers and the field of view range.
func (s *Selector) Configure(count int, minFOV, maxFOV float32) {
	s.count = max(count, 0)
	s.min = minFOV
	s.max = maxFOV
	s.span = 0
	if s.count > 0 {
		s.span = (maxFOV - minFOV) / float32(s.count)
	}
}

// Count returns the number of layers.
func (s *Selector) Count() int { return s.count }

// Span returns the field of view range covered by the given layer,
// from narrowest to widest.
func (s *Selector) Span(index int) (lo, hi float32) {
	i := float32(s.count - index)
	return s.min + i*s.span, s.min + (i+1)*s.span
}

// Select returns the layer index for the given field of view: 1 at or
// beyond the maximum, the layer count at the minimum. A field of view
// outside of the range selects the boundary layer. It returns 0 when
// there are no layers.
func (s *Selector) Select(fov float32) int {
	if s.count == 0 {
		return 0
	}
	if fov >= s.max {
		return 1
	}
	if s.span <= 0 {
		return s.count
	}
	idx := s.count - int(math32.Floor((fov-s.min)/s.span))
	return math32.Clamp(idx, 1, s.count)
}

// ShouldSwitch returns whether the view should rebuild for the newly
// selected layer: true only for a valid index that differs from the
// current one.
func (s *Selector) ShouldSwitch(index, current int) bool {
	return s.count > 0 && index >= 1 && index <= s.count && index != current
}
