// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"cogentcore.org/vrml/field"
	"cogentcore.org/vrml/math32"
)

// Interpolator is a node that sends the value for a fraction received
// on set_fraction, interpolated linearly between the keyValue entries
// of the enclosing key entries.
type Interpolator[T any] struct {
	NodeBase

	lerp func(a, b T, t float32) T
}

func interpolatorClass[T any](name string, values field.Type, lerp func(a, b T, t float32) T) *BuiltinClass {
	return newBuiltinClass(name, func() Node { return &Interpolator[T]{lerp: lerp} },
		eventIn(field.SFFloat, "set_fraction"),
		exposedField(field.MFFloat, "key", ""),
		exposedField(values, "keyValue", ""),
		eventOut(values.Scalar(), "value_changed"),
	)
}

func scalarInterpolatorClass() *BuiltinClass {
	return interpolatorClass("ScalarInterpolator", field.MFFloat, math32.Lerp)
}

func positionInterpolatorClass() *BuiltinClass {
	return interpolatorClass("PositionInterpolator", field.MFVec3f, math32.Vector3.Lerp)
}

func colorInterpolatorClass() *BuiltinClass {
	return interpolatorClass("ColorInterpolator", field.MFColor, math32.Color.LerpHSV)
}

func orientationInterpolatorClass() *BuiltinClass {
	return interpolatorClass("OrientationInterpolator", field.MFRotation, math32.Rotation.Slerp)
}

// Value returns the interpolated value at the given fraction, and
// false if there are no keys.
func (ip *Interpolator[T]) Value(fraction float32) (T, bool) {
	keys := fieldsOf[float32](&ip.NodeBase, "key")
	values := fieldsOf[T](&ip.NodeBase, "keyValue")
	n := min(len(keys), len(values))
	var zv T
	switch {
	case n == 0:
		return zv, false
	case fraction <= keys[0]:
		return values[0], true
	case fraction >= keys[n-1]:
		return values[n-1], true
	}
	for i := 1; i < n; i++ {
		if fraction <= keys[i] {
			span := keys[i] - keys[i-1]
			if span <= 0 {
				return values[i], true
			}
			return ip.lerp(values[i-1], values[i], (fraction-keys[i-1])/span), true
		}
	}
	return values[n-1], true
}

func (ip *Interpolator[T]) HandleEvent(name string, v field.Value, ts float64) error {
	if name != "set_fraction" {
		return nil
	}
	value, ok := ip.Value(field.Get[float32](v))
	if !ok {
		return nil
	}
	ip.sendEvent("value_changed", &field.SF[T]{Value: value}, ts)
	return nil
}
