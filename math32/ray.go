// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit panorama functionality.

package math32

// Ray represents an oriented 3D line segment defined by an origin point and a direction vector.
type Ray struct {
	Origin Vector3
	Dir    Vector3
}

// NewRay creates and returns a pointer to a Ray object with
// the specified origin and direction vectors.
func NewRay(origin, dir Vector3) *Ray {
	return &Ray{Origin: origin, Dir: dir}
}

// At calculates the point in the ray which is at the specified t distance from the origin
// along its direction.
func (ray *Ray) At(t float32) Vector3 {
	return ray.Dir.MulScalar(t).Add(ray.Origin)
}

// IntersectSphere returns the first point at or in front of the origin
// where the ray crosses the sphere. A ray starting inside of the sphere
// always hits it on the way out. ok is false when the ray misses, points
// away from the sphere, or has no direction.
func (ray *Ray) IntersectSphere(center Vector3, radius float32) (Vector3, bool) {
	a := ray.Dir.LengthSquared()
	if a == 0 {
		return Vector3{}, false
	}
	oc := ray.Origin.Sub(center)
	b := oc.Dot(ray.Dir)
	c := oc.LengthSquared() - radius*radius
	det := b*b - a*c
	if det < 0 {
		return Vector3{}, false
	}
	sq := Sqrt(det)
	t := (-b - sq) / a
	if t < 0 {
		t = (-b + sq) / a
	}
	if t < 0 {
		return Vector3{}, false
	}
	return ray.At(t), true
}
