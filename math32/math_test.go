// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector3(t *testing.T) {
	a := Vec3(1, 0, 0)
	b := Vec3(0, 1, 0)
	assert.Equal(t, Vec3(0, 0, 1), a.Cross(b))
	assert.Equal(t, float32(0), a.Dot(b))
	assert.Equal(t, Vec3(0.5, 0.5, 0), a.Lerp(b, 0.5))
	assert.Equal(t, float32(1), Vec3(0, 3, 4).Normal().Length())
	assert.True(t, Vector3{}.IsZero())
}

func TestRotationSlerp(t *testing.T) {
	a := Rot(0, 1, 0, 0)
	b := Rot(0, 1, 0, Pi/2)
	r := a.Slerp(b, 0.5)
	assert.InDelta(t, Pi/4, r.Angle, 1e-5)
	assert.InDelta(t, 1, r.Axis.Y, 1e-5)
}

func TestColorHSV(t *testing.T) {
	c := NewColor(1, 0, 0)
	h, s, v := c.HSV()
	assert.Equal(t, float32(0), h)
	assert.Equal(t, float32(1), s)
	assert.Equal(t, float32(1), v)
	assert.Equal(t, c, ColorFromHSV(h, s, v))

	mid := NewColor(1, 0, 0).LerpHSV(NewColor(0, 0, 1), 0.5)
	assert.InDelta(t, 1, mid.R, 1e-5)
	assert.InDelta(t, 0, mid.G, 1e-5)
	assert.InDelta(t, 1, mid.B, 1e-5)
}

func TestTransform4(t *testing.T) {
	m := Transform4(Vec3(1, 2, 3), Vector3{}, IdentityRotation, Vec3(2, 2, 2), IdentityRotation)
	p := m.MulPoint(Vec3(1, 1, 1))
	assert.InDelta(t, 3, p.X, 1e-5)
	assert.InDelta(t, 4, p.Y, 1e-5)
	assert.InDelta(t, 5, p.Z, 1e-5)

	r := Rotation4(Rot(0, 0, 1, Pi/2)).MulPoint(Vec3(1, 0, 0))
	assert.InDelta(t, 0, r.X, 1e-5)
	assert.InDelta(t, 1, r.Y, 1e-5)
}
