// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package math32 is a float32 based vector, rotation, color and matrix
// package for the values carried by scene graph fields.
package math32

import (
	"math"

	"github.com/chewxy/math32"
)

// These are mostly just wrappers around chewxy/math32, which has
// some optimized implementations.

// Mathematical constants.
const (
	Pi = math.Pi

	// DegToRadFactor is the number of radians per degree.
	DegToRadFactor = Pi / 180
)

// Epsilon is the tolerance used for approximate comparisons.
const Epsilon = 1e-6

// Abs returns the absolute value of x.
func Abs(x float32) float32 { return math32.Abs(x) }

// Sqrt returns the square root of x.
func Sqrt(x float32) float32 { return math32.Sqrt(x) }

// Sin returns the sine of the radian argument x.
func Sin(x float32) float32 { return math32.Sin(x) }

// Cos returns the cosine of the radian argument x.
func Cos(x float32) float32 { return math32.Cos(x) }

// Acos returns the arccosine, in radians, of x.
func Acos(x float32) float32 { return math32.Acos(x) }

// Atan2 returns the arc tangent of y/x, using the signs of the two
// to determine the quadrant of the return value.
func Atan2(y, x float32) float32 { return math32.Atan2(y, x) }

// Mod returns the floating-point remainder of x/y.
func Mod(x, y float32) float32 { return math32.Mod(x, y) }

// Floor returns the greatest integer value less than or equal to x.
func Floor(x float32) float32 { return math32.Floor(x) }

// IsNaN reports whether x is an IEEE 754 "not-a-number" value.
func IsNaN(x float32) bool { return math32.IsNaN(x) }

// Clamp clamps x to the provided closed interval [a, b].
func Clamp(x, a, b float32) float32 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}

// Lerp returns the linear interpolation between a and b at t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// ApproxEqual returns whether a and b are within [Epsilon] of each other.
func ApproxEqual(a, b float32) bool {
	return Abs(a-b) <= Epsilon
}
