// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pick turns pointer input into camera rotations and zooms,
// either by ray casting onto the panorama sphere so that the sphere
// follows the pointer, or by rotating in place by the raw pointer delta.
package pick

import (
	"cogentcore.org/pano/camera"
	"cogentcore.org/pano/math32"
)

// RayCaster casts the view ray through a screen point onto the sphere.
// It returns false when the ray misses.
type RayCaster interface {
	CastRay(screen math32.Vector2) (math32.Vector3, bool)
}

// RayCasterFunc is a function that implements [RayCaster], typically
// provided by the rendering backend.
type RayCasterFunc func(screen math32.Vector2) (math32.Vector3, bool)

func (f RayCasterFunc) CastRay(screen math32.Vector2) (math32.Vector3, bool) {
	return f(screen)
}

// SphereCaster casts rays from the camera of a [camera.Rig] sitting at
// the center of a sphere of the given radius, for a Width x Height pixel
// viewport with the origin at the top left.
type SphereCaster struct {
	Rig *camera.Rig

	// Width and Height are the viewport size in pixels.
	Width, Height float32

	// Radius is the sphere radius; zero means 1.
	Radius float32
}

// basis returns the camera forward, right and up unit vectors and the
// tangent of half the vertical field of view.
func (sc *SphereCaster) basis() (fwd, right, up math32.Vector3, tanHalf float32, ok bool) {
	if sc.Rig == nil || sc.Width <= 0 || sc.Height <= 0 {
		return
	}
	fwd = sc.Rig.Look.Normal()
	right = fwd.Cross(sc.Rig.Up).Normal()
	if fwd.IsZero() || right.IsZero() {
		return
	}
	up = right.Cross(fwd)
	tanHalf = math32.Tan(math32.DegToRad(sc.Rig.FOV) / 2)
	return fwd, right, up, tanHalf, true
}

// Ray returns the view ray through the given screen point, using the
// vertical field of view of the rig and the aspect ratio of the viewport.
func (sc *SphereCaster) Ray(screen math32.Vector2) (math32.Ray, bool) {
	fwd, right, up, tanHalf, ok := sc.basis()
	if !ok {
		return math32.Ray{}, false
	}
	// NDC in [-1, 1], +y up
	xn := 2*screen.X/sc.Width - 1
	yn := 1 - 2*screen.Y/sc.Height
	aspect := sc.Width / sc.Height

	dir := fwd.Add(right.MulScalar(xn * tanHalf * aspect)).Add(up.MulScalar(yn * tanHalf))
	return math32.Ray{Dir: dir.Normal()}, true
}

// Project returns the screen point at which the given world point is
// seen, the inverse of [SphereCaster.Ray]. It returns false for points
// behind the camera, which a marker overlay should hide. Points in front
// of the camera but outside the view give screen points outside the
// viewport.
func (sc *SphereCaster) Project(world math32.Vector3) (math32.Vector2, bool) {
	fwd, right, up, tanHalf, ok := sc.basis()
	if !ok {
		return math32.Vector2{}, false
	}
	z := world.Dot(fwd)
	if z <= 0 || tanHalf <= 0 {
		return math32.Vector2{}, false
	}
	aspect := sc.Width / sc.Height
	xn := world.Dot(right) / (z * tanHalf * aspect)
	yn := world.Dot(up) / (z * tanHalf)
	return math32.Vec2((xn+1)*sc.Width/2, (1-yn)*sc.Height/2), true
}

// CastRay returns the point of the sphere seen at the given screen point.
func (sc *SphereCaster) CastRay(screen math32.Vector2) (math32.Vector3, bool) {
	ray, ok := sc.Ray(screen)
	if !ok {
		return math32.Vector3{}, false
	}
	r := sc.Radius
	if r == 0 {
		r = 1
	}
	return ray.IntersectSphere(math32.Vector3{}, r)
}
