// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Rotation is an axis-angle rotation, with the angle in radians
// about the (unit length) axis, following the right-hand rule.
type Rotation struct {
	Axis  Vector3
	Angle float32
}

// Rot returns a new [Rotation] about the axis (x, y, z) by angle radians.
// The axis is not normalized.
func Rot(x, y, z, angle float32) Rotation {
	return Rotation{Axis: Vector3{x, y, z}, Angle: angle}
}

// IdentityRotation is the zero rotation about the z axis, the default
// value for rotations.
var IdentityRotation = Rot(0, 0, 1, 0)

// Normalized returns the rotation with a unit length axis.
func (r Rotation) Normalized() Rotation {
	return Rotation{Axis: r.Axis.Normal(), Angle: r.Angle}
}

// Quat returns the rotation as a unit [Quat].
func (r Rotation) Quat() Quat {
	return NewQuatAxisAngle(r.Axis.Normal(), r.Angle)
}

// Slerp returns the spherical linear interpolation between r and
// other at t, taking the shortest path.
func (r Rotation) Slerp(other Rotation, t float32) Rotation {
	q := r.Quat()
	q.Slerp(other.Quat(), t)
	return q.Rotation()
}

// Quat is a quaternion with X, Y, Z and W components.
type Quat struct {
	X float32
	Y float32
	Z float32
	W float32
}

// NewQuatAxisAngle returns a new [Quat] for the given unit axis and angle.
func NewQuatAxisAngle(axis Vector3, angle float32) Quat {
	halfAngle := angle / 2
	s := Sin(halfAngle)
	return Quat{axis.X * s, axis.Y * s, axis.Z * s, Cos(halfAngle)}
}

// Length returns the length of this quaternion.
func (q Quat) Length() float32 {
	return Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize normalizes this quaternion.
func (q *Quat) Normalize() {
	l := q.Length()
	if l == 0 {
		*q = Quat{0, 0, 0, 1}
		return
	}
	l = 1 / l
	q.X *= l
	q.Y *= l
	q.Z *= l
	q.W *= l
}

// Mul returns the product of this quaternion and other.
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		q.X*other.W + q.W*other.X + q.Y*other.Z - q.Z*other.Y,
		q.Y*other.W + q.W*other.Y + q.Z*other.X - q.X*other.Z,
		q.Z*other.W + q.W*other.Z + q.X*other.Y - q.Y*other.X,
		q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Rotation returns this (unit) quaternion as an axis-angle [Rotation].
func (q Quat) Rotation() Rotation {
	q.Normalize()
	angle := 2 * Acos(Clamp(q.W, -1, 1))
	s := Sqrt(1 - q.W*q.W)
	if s < Epsilon {
		return Rotation{Axis: Vector3{0, 0, 1}, Angle: angle}
	}
	return Rotation{Axis: Vector3{q.X / s, q.Y / s, q.Z / s}, Angle: angle}
}

// Slerp sets this quaternion to the spherical linear interpolation
// between itself and other at t.
func (q *Quat) Slerp(other Quat, t float32) {
	if t == 0 {
		return
	}
	if t == 1 {
		*q = other
		return
	}

	x, y, z, w := q.X, q.Y, q.Z, q.W

	cosHalfTheta := w*other.W + x*other.X + y*other.Y + z*other.Z
	if cosHalfTheta < 0 {
		*q = Quat{-other.X, -other.Y, -other.Z, -other.W}
		cosHalfTheta = -cosHalfTheta
	} else {
		*q = other
	}

	if cosHalfTheta >= 1.0 {
		*q = Quat{x, y, z, w}
		return
	}

	sqrSinHalfTheta := 1.0 - cosHalfTheta*cosHalfTheta
	if sqrSinHalfTheta < 0.001 {
		s := 1 - t
		*q = Quat{s*x + t*q.X, s*y + t*q.Y, s*z + t*q.Z, s*w + t*q.W}
		q.Normalize()
		return
	}

	sinHalfTheta := Sqrt(sqrSinHalfTheta)
	halfTheta := Atan2(sinHalfTheta, cosHalfTheta)
	ratioA := Sin((1-t)*halfTheta) / sinHalfTheta
	ratioB := Sin(t*halfTheta) / sinHalfTheta

	*q = Quat{
		x*ratioA + q.X*ratioB,
		y*ratioA + q.Y*ratioB,
		z*ratioA + q.Z*ratioB,
		w*ratioA + q.W*ratioB,
	}
}
