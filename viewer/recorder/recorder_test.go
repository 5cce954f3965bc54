// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recorder_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/vrml/math32"
	"cogentcore.org/vrml/viewer/recorder"
	"cogentcore.org/vrml/vrml"
)

var _ vrml.Viewer = (*recorder.Viewer)(nil)

func TestNesting(t *testing.T) {
	v := recorder.New()
	v.BeginObject("a")
	v.InsertSphere(2)
	v.EndObject()
	require.Len(t, v.Ops, 3)
	assert.Equal(t, "BeginObject a", v.Ops[0])
	assert.Equal(t, "  InsertSphere 2", v.Ops[1])
	assert.Equal(t, "EndObject", v.Ops[2])
	assert.True(t, v.Contains("InsertSphere"))
	assert.False(t, v.Contains("InsertBox"))

	var b strings.Builder
	_, err := v.WriteTo(&b)
	require.NoError(t, err)
	assert.Equal(t, "BeginObject a\n  InsertSphere 2\nEndObject\n", b.String())

	v.Reset()
	assert.Empty(t, v.Ops)
}

func TestLights(t *testing.T) {
	v := recorder.New()
	v.InsertLight(vrml.Light{Kind: vrml.PointLightKind, Color: math32.NewColor(1, 1, 1), Intensity: 1})
	assert.True(t, v.Contains("InsertLight point"))
	assert.Equal(t, 60.0, v.FrameRate())
}
