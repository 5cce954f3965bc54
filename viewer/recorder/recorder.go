// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package recorder provides a [vrml.Viewer] that records the calls
// made to it as text, for tests and for dumping what a world draws.
package recorder

import (
	"fmt"
	"io"
	"strings"

	"cogentcore.org/vrml/math32"
	"cogentcore.org/vrml/vrml"
)

// Viewer is a [vrml.Viewer] that records each call as one line of text.
// Lines are indented by the depth of BeginObject nesting.
type Viewer struct {

	// Ops are the recorded calls.
	Ops []string

	// Rate is the frame rate returned by FrameRate.
	Rate float64

	depth int
}

// New returns a new recording viewer.
func New() *Viewer {
	return &Viewer{Rate: 60}
}

func (v *Viewer) record(format string, args ...any) {
	v.Ops = append(v.Ops, strings.Repeat("  ", v.depth)+fmt.Sprintf(format, args...))
}

// Reset discards the recorded calls.
func (v *Viewer) Reset() {
	v.Ops = nil
	v.depth = 0
}

// Contains returns whether a recorded call, without indentation,
// starts with prefix.
func (v *Viewer) Contains(prefix string) bool {
	for _, op := range v.Ops {
		if strings.HasPrefix(strings.TrimSpace(op), prefix) {
			return true
		}
	}
	return false
}

// WriteTo writes the recorded calls, one per line.
func (v *Viewer) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, op := range v.Ops {
		c, err := fmt.Fprintln(w, op)
		n += int64(c)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func (v *Viewer) ResetUserNavigation() {
	v.record("ResetUserNavigation")
}

func (v *Viewer) InsertLight(l vrml.Light) {
	switch l.Kind {
	case vrml.DirectionalLightKind:
		v.record("InsertLight directional %v %v %g", l.Color, l.Direction, l.Intensity)
	case vrml.PointLightKind:
		v.record("InsertLight point %v %v %g", l.Color, l.Location, l.Intensity)
	default:
		v.record("InsertLight spot %v %v %v %g", l.Color, l.Location, l.Direction, l.Intensity)
	}
}

func (v *Viewer) SetViewpoint(position math32.Vector3, orientation math32.Rotation, fieldOfView, avatarSize, visibilityLimit float32) {
	v.record("SetViewpoint %v %v %g %g %g", position, orientation, fieldOfView, avatarSize, visibilityLimit)
}

func (v *Viewer) BeginObject(id string) {
	v.record("BeginObject %s", id)
	v.depth++
}

func (v *Viewer) EndObject() {
	if v.depth > 0 {
		v.depth--
	}
	v.record("EndObject")
}

func (v *Viewer) Transform(m math32.Matrix4) {
	v.record("Transform %v", m)
}

func (v *Viewer) SetMaterial(m vrml.MaterialParams) {
	v.record("SetMaterial %v %g", m.DiffuseColor, m.Transparency)
}

func (v *Viewer) InsertBox(size math32.Vector3) {
	v.record("InsertBox %v", size)
}

func (v *Viewer) InsertSphere(radius float32) {
	v.record("InsertSphere %g", radius)
}

func (v *Viewer) FrameRate() float64 { return v.Rate }
