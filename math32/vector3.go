// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit panorama functionality.

package math32

import "fmt"

// Vector3 is a 3D vector/point with X, Y and Z components.
// Directions in this package are not required to be normalized.
type Vector3 struct {
	X float32
	Y float32
	Z float32
}

var (
	// Vector3X is the unit X axis.
	Vector3X = Vector3{1, 0, 0}

	// Vector3Y is the unit Y axis, the world up axis of the panorama.
	Vector3Y = Vector3{0, 1, 0}

	// Vector3Z is the unit Z axis.
	Vector3Z = Vector3{0, 0, 1}
)

// Vec3 returns a new [Vector3] with the given x, y and z components.
func Vec3(x, y, z float32) Vector3 {
	return Vector3{x, y, z}
}

// String implements the [fmt.Stringer] interface.
func (v Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Set sets this vector X, Y and Z components.
func (v *Vector3) Set(x, y, z float32) {
	v.X = x
	v.Y = y
	v.Z = z
}

// SetScalar sets all vector X, Y and Z components to same scalar value.
func (v *Vector3) SetScalar(scalar float32) {
	v.X = scalar
	v.Y = scalar
	v.Z = scalar
}

// IsZero returns true if all values are 0.
func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// IsNaN returns true if any component is NaN.
func (v Vector3) IsNaN() bool {
	return IsNaN(v.X) || IsNaN(v.Y) || IsNaN(v.Z)
}

// Add adds other vector to this one and returns result in a new vector.
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub subtracts other vector from this one and returns result in new vector.
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// MulScalar returns the vector multiplied by the given scalar.
func (v Vector3) MulScalar(s float32) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// DivScalar returns the vector divided by the given scalar.
func (v Vector3) DivScalar(s float32) Vector3 {
	return Vector3{v.X / s, v.Y / s, v.Z / s}
}

// Negate returns the vector with each component negated.
func (v Vector3) Negate() Vector3 {
	return Vector3{-v.X, -v.Y, -v.Z}
}

// Abs returns the vector with each component set to its absolute value.
func (v Vector3) Abs() Vector3 {
	return Vector3{Abs(v.X), Abs(v.Y), Abs(v.Z)}
}

// Dot returns the dot product of this vector with the given other vector.
func (v Vector3) Dot(other Vector3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of this vector with other.
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// LengthSquared returns the length squared of this vector.
// LengthSquared can be used to compare the lengths of vectors.
func (v Vector3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the length of this vector.
func (v Vector3) Length() float32 {
	return Sqrt(v.LengthSquared())
}

// Normal returns this vector divided by its length (its unit vector).
// A zero vector is returned unchanged.
func (v Vector3) Normal() Vector3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.DivScalar(l)
}

// Lerp returns vector with each component as the linear interpolated value of
// alpha between itself and the corresponding other component.
func (v Vector3) Lerp(other Vector3, alpha float32) Vector3 {
	return Vector3{v.X + (other.X-v.X)*alpha, v.Y + (other.Y-v.Y)*alpha, v.Z + (other.Z-v.Z)*alpha}
}

// AngleTo returns the angle between this vector and other, in radians,
// in [0, Pi]. It is 0 when either vector has zero length.
// It uses the arc tangent of |v x other| / (v . other), which stays
// accurate for nearly parallel vectors where an arc cosine does not.
func (v Vector3) AngleTo(other Vector3) float32 {
	if v.IsZero() || other.IsZero() {
		return 0
	}
	return Atan2(v.Cross(other).Length(), v.Dot(other))
}

// Perpendicular returns some vector orthogonal to this one,
// built from the coordinate axis least aligned with it.
func (v Vector3) Perpendicular() Vector3 {
	a := v.Abs()
	switch {
	case a.X <= a.Y && a.X <= a.Z:
		return v.Cross(Vector3X)
	case a.Y <= a.Z:
		return v.Cross(Vector3Y)
	default:
		return v.Cross(Vector3Z)
	}
}

// MulQuat returns vector multiplied by specified quaternion and
// then by the quaternion inverse.
// It basically applies the rotation encoded in the quaternion to this vector.
func (v Vector3) MulQuat(q Quat) Vector3 {
	qx := q.X
	qy := q.Y
	qz := q.Z
	qw := q.W
	// calculate quat * vector
	ix := qw*v.X + qy*v.Z - qz*v.Y
	iy := qw*v.Y + qz*v.X - qx*v.Z
	iz := qw*v.Z + qx*v.Y - qy*v.X
	iw := -qx*v.X - qy*v.Y - qz*v.Z
	// calculate result * inverse quat
	return Vector3{
		ix*qw + iw*-qx + iy*-qz - iz*-qy,
		iy*qw + iw*-qy + iz*-qx - ix*-qz,
		iz*qw + iw*-qz + ix*-qy - iy*-qx,
	}
}

// RotateAxisAngle returns this vector rotated about the given axis by angle
// radians, counter-clockwise looking down the axis toward the origin
// (right-hand rule). The axis need not be normalized. A zero axis leaves
// the vector unchanged.
func (v Vector3) RotateAxisAngle(axis Vector3, angle float32) Vector3 {
	if axis.IsZero() || angle == 0 {
		return v
	}
	return v.MulQuat(NewQuatAxisAngle(axis, angle))
}

// IsEqualTol returns if this vector is equal to other within the given tolerance
// on each component.
func (v Vector3) IsEqualTol(other Vector3, tol float32) bool {
	return IsEqualTol(v.X, other.X, tol) && IsEqualTol(v.Y, other.Y, tol) && IsEqualTol(v.Z, other.Z, tol)
}
