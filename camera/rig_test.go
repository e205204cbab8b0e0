// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import (
	"testing"

	"cogentcore.org/pano/math32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-5

func assertVector(t *testing.T, want, have math32.Vector3) {
	t.Helper()
	assert.True(t, want.IsEqualTol(have, tol), "want %v, have %v", want, have)
}

func TestZoomClamps(t *testing.T) {
	rg := NewRig(60)
	deltas := []float32{-10, -100, 3, 500, -1, 1e6, -1e6, 0.5}
	for _, d := range deltas {
		rg.Zoom(d, 5, 120)
		assert.GreaterOrEqual(t, rg.FOV, float32(5))
		assert.LessOrEqual(t, rg.FOV, float32(120))
	}
	rg.Zoom(1000, 5, 120)
	assert.Equal(t, float32(120), rg.FOV)
	rg.Zoom(-1000, 5, 120)
	assert.Equal(t, float32(5), rg.FOV)
	rg.Zoom(2, 5, 120)
	assert.Equal(t, float32(7), rg.FOV)
}

func TestHorizontalRotate(t *testing.T) {
	rg := NewRig(60)
	rg.HorizontalRotateInSitu(90)
	assertVector(t, math32.Vec3(-1, 0, 0), rg.Look)
	assertVector(t, math32.Vec3(0, 1, 0), rg.Up)
	rg.HorizontalRotateInSitu(-90)
	assertVector(t, math32.Vec3(0, 0, -1), rg.Look)
}

func TestVerticalRotate(t *testing.T) {
	rg := NewRig(60)
	rg.VerticalRotateInSitu(30)
	assert.Greater(t, rg.Look.Y, float32(0))
	assert.InDelta(t, 0, rg.Look.Dot(rg.Up), tol)
	// up keeps pointing to the upper hemisphere
	assert.Greater(t, rg.Up.Y, float32(0))
}

func TestRotateArbitraryAxisKeepsHorizon(t *testing.T) {
	rg := NewRig(60)
	rg.RotateAroundAxis(math32.Vec3(1, 1, 0), 40)
	assert.InDelta(t, 0, rg.Look.Dot(rg.Up), tol)
	// the horizontal camera axis never tilts
	right := rg.Look.Cross(rg.Up)
	assert.InDelta(t, 0, right.Y, tol)
}

func TestGimbalKeepsPreviousUp(t *testing.T) {
	rg := NewRig(60)
	rg.VerticalRotateInSitu(90)
	assertVector(t, math32.Vec3(0, 1, 0), rg.Look)
	assert.False(t, rg.Up.IsNaN())
	assert.False(t, rg.Up.IsZero())
	assertVector(t, math32.Vec3(0, 1, 0), rg.Up)
}

func TestUpFromLook(t *testing.T) {
	up, ok := UpFromLook(WorldUpReference, math32.Vec3(0, 0, -1))
	assert.True(t, ok)
	assertVector(t, math32.Vec3(0, 1, 0), up)

	// not normalized: scales with the look length squared
	up, ok = UpFromLook(WorldUpReference, math32.Vec3(0, 0, -2))
	assert.True(t, ok)
	assertVector(t, math32.Vec3(0, 4, 0), up)

	_, ok = UpFromLook(WorldUpReference, math32.Vec3(0, 3, 0))
	assert.False(t, ok)
}

func TestOrientationEquality(t *testing.T) {
	a := NewOrientation(math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0))
	b := NewOrientation(math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0))
	c := NewOrientation(math32.Vec3(1, 0, 1e-7), math32.Vec3(0, 1, 0))
	assert.True(t, a == b)
	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
	assert.True(t, a.IsEqualTol(c, tol))
	assert.Equal(t, "Look:(1, 0, 0) Up:(0, 1, 0)", a.String())
}

func TestChangeEvents(t *testing.T) {
	rg := NewRig(60)
	var kinds []EventKinds
	rg.OnChange(func(ev Event) {
		kinds = append(kinds, ev.Kind)
	})
	ch := rg.Changes()

	rg.Zoom(-5, 5, 120)
	rg.Zoom(0, 5, 120) // no change, no event
	rg.HorizontalRotateInSitu(10)
	rg.SetOrientation(NewOrientation(math32.Vec3(1, 0, 0), math32.Vector3Y))

	assert.Equal(t, []EventKinds{Zoomed, Rotated, Oriented}, kinds)
	assert.Len(t, ch, 3)
	ev := <-ch
	assert.Equal(t, Zoomed, ev.Kind)
	assert.Equal(t, float32(55), ev.FOV)
}

func TestChangesNeverBlock(t *testing.T) {
	rg := NewRig(60)
	ch := rg.Changes()
	for range ChangesBuffer + 10 {
		rg.HorizontalRotateInSitu(1)
	}
	assert.Len(t, ch, ChangesBuffer)
}
