// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import (
	"testing"
	"time"

	"cogentcore.org/pano/camera"
	"cogentcore.org/pano/math32"
	"github.com/stretchr/testify/assert"
)

func translation(x, y, z float32) math32.Matrix4 {
	m := math32.Identity4()
	m.SetTranslation(x, y, z)
	return *m
}

func TestMatrixFromTo(t *testing.T) {
	from := translation(0, 0, 0)
	to := translation(4, 0, -2)
	m := &Matrix{From: &from, To: &to}
	half := m.Sample(0.5)
	assert.Equal(t, math32.Vec3(2, 0, -1), half.MulVector3AsPoint(math32.Vector3{}))
	assert.Equal(t, to, m.Sample(1))
	assert.Equal(t, from, m.Sample(-1))
}

func TestMatrixDefaultsAndBy(t *testing.T) {
	origin := translation(1, 0, 0)
	dest := translation(3, 0, 0)
	m := &Matrix{}
	m.Prepare(origin, dest)
	assert.Equal(t, origin, m.Sample(0))
	assert.Equal(t, dest, m.Sample(1))

	by := math32.Matrix4{}
	by.SetTranslation(0, 10, 0)
	m.By = &by
	end := m.Sample(1)
	assert.Equal(t, math32.Vec3(1, 10, 0), end.MulVector3AsPoint(math32.Vector3{}))

	// To beats By
	m.To = &dest
	assert.Equal(t, dest, m.Sample(1))
}

func TestPlayer(t *testing.T) {
	k0 := orient(0, 0, -1)
	k1 := orient(-1, 0, 0)
	rg := camera.NewRig(60)
	p := NewPlayer[camera.Orientation](&Rotation{}, 2*time.Second)
	p.Apply = rg.SetOrientation

	now := time.Unix(100, 0)
	p.Start(now, k0, k1)
	assert.True(t, p.IsRunning())

	v, done := p.Tick(now)
	assert.False(t, done)
	assertOrient(t, k0, v)

	v, done = p.Tick(now.Add(time.Second))
	assert.False(t, done)
	assert.InDelta(t, 0.5, p.Progress(now.Add(time.Second)), tol)
	assert.Equal(t, v, rg.Orientation())

	v, done = p.Tick(now.Add(3 * time.Second))
	assert.True(t, done)
	assert.False(t, p.IsRunning())
	assertOrient(t, k1, v)
	assertOrient(t, k1, rg.Orientation())
}

func TestPlayerZeroDuration(t *testing.T) {
	p := NewPlayer[camera.Orientation](NewRotation(orient(0, 0, -1), orient(1, 0, 0)), 0)
	p.Start(time.Now(), camera.Orientation{}, camera.Orientation{})
	v, done := p.Tick(time.Now())
	assert.True(t, done)
	assertOrient(t, orient(1, 0, 0), v)
}
