// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Color is an RGB color with components in the [0, 1] range.
type Color struct {
	R float32
	G float32
	B float32
}

// NewColor returns a new [Color] with the given components.
func NewColor(r, g, b float32) Color {
	return Color{r, g, b}
}

// InRange returns whether all of the components are in [0, 1].
func (c Color) InRange() bool {
	return c.R >= 0 && c.R <= 1 && c.G >= 0 && c.G <= 1 && c.B >= 0 && c.B <= 1
}

// HSV returns the hue (in [0, 6)), saturation and value of the color.
func (c Color) HSV() (h, s, v float32) {
	maxc := max(c.R, c.G, c.B)
	minc := min(c.R, c.G, c.B)
	v = maxc
	if maxc > 0 {
		s = (maxc - minc) / maxc
	}
	if s == 0 {
		return 0, s, v
	}
	d := maxc - minc
	switch maxc {
	case c.R:
		h = (c.G - c.B) / d
	case c.G:
		h = 2 + (c.B-c.R)/d
	default:
		h = 4 + (c.R-c.G)/d
	}
	if h < 0 {
		h += 6
	}
	return h, s, v
}

// ColorFromHSV returns the color for the given hue (in [0, 6)),
// saturation and value.
func ColorFromHSV(h, s, v float32) Color {
	if s == 0 {
		return Color{v, v, v}
	}
	h = Mod(h, 6)
	if h < 0 {
		h += 6
	}
	i := Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		return Color{v, t, p}
	case 1:
		return Color{q, v, p}
	case 2:
		return Color{p, v, t}
	case 3:
		return Color{p, q, v}
	case 4:
		return Color{t, p, v}
	default:
		return Color{v, p, q}
	}
}

// LerpHSV interpolates between c and other at t in HSV space,
// taking the shorter way around the hue circle.
func (c Color) LerpHSV(other Color, t float32) Color {
	h1, s1, v1 := c.HSV()
	h2, s2, v2 := other.HSV()
	if h2-h1 > 3 {
		h1 += 6
	} else if h1-h2 > 3 {
		h2 += 6
	}
	return ColorFromHSV(Lerp(h1, h2, t), Lerp(s1, s2, t), Lerp(v1, v2, t))
}
