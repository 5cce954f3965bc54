// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Matrix4 is a 4x4 matrix of float32 values in column-major order.
type Matrix4 [16]float32

// Identity4 returns a new identity [Matrix4].
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation4 returns a matrix that translates by v.
func Translation4(v Vector3) Matrix4 {
	m := Identity4()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// Scale4 returns a matrix that scales by v.
func Scale4(v Vector3) Matrix4 {
	m := Identity4()
	m[0], m[5], m[10] = v.X, v.Y, v.Z
	return m
}

// Rotation4 returns a matrix that applies the rotation r.
func Rotation4(r Rotation) Matrix4 {
	q := r.Quat()
	x2, y2, z2 := q.X+q.X, q.Y+q.Y, q.Z+q.Z
	xx, xy, xz := q.X*x2, q.X*y2, q.X*z2
	yy, yz, zz := q.Y*y2, q.Y*z2, q.Z*z2
	wx, wy, wz := q.W*x2, q.W*y2, q.W*z2
	return Matrix4{
		1 - (yy + zz), xy + wz, xz - wy, 0,
		xy - wz, 1 - (xx + zz), yz + wx, 0,
		xz + wy, yz - wx, 1 - (xx + yy), 0,
		0, 0, 0, 1,
	}
}

// Mul returns the product m * other.
func (m Matrix4) Mul(other Matrix4) Matrix4 {
	var r Matrix4
	for c := 0; c < 4; c++ {
		for row := 0; row < 4; row++ {
			var s float32
			for k := 0; k < 4; k++ {
				s += m[k*4+row] * other[c*4+k]
			}
			r[c*4+row] = s
		}
	}
	return r
}

// MulPoint returns the point p transformed by m.
func (m Matrix4) MulPoint(p Vector3) Vector3 {
	return Vector3{
		m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
}

// Transform4 returns the composite transformation used by
// transform grouping nodes:
//
//	T * C * R * SR * S * -SR * -C
//
// where T is the translation, C the center, R the rotation, SR the scale
// orientation and S the scale.
func Transform4(translation, center Vector3, rotation Rotation, scale Vector3, scaleOrientation Rotation) Matrix4 {
	negSR := scaleOrientation
	negSR.Angle = -negSR.Angle
	return Translation4(translation).
		Mul(Translation4(center)).
		Mul(Rotation4(rotation)).
		Mul(Rotation4(scaleOrientation)).
		Mul(Scale4(scale)).
		Mul(Rotation4(negSR)).
		Mul(Translation4(center.Negate()))
}
