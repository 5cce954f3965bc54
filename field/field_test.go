// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/vrml/base/errors"
	. "cogentcore.org/vrml/field"
	"cogentcore.org/vrml/math32"
)

type testNode struct {
	id string
}

func (n *testNode) ID() string       { return n.id }
func (n *testNode) TypeName() string { return "Group" }

type testScope map[string]Node

func (s testScope) ResolveNode(id string) (Node, bool) {
	n, ok := s[id]
	return n, ok
}

func TestTypeNames(t *testing.T) {
	for _, ty := range Types() {
		assert.Equal(t, ty, TypeFromString(ty.String()))
	}
	assert.Equal(t, InvalidType, TypeFromString("SFMatrix"))
	assert.Equal(t, SFColor, MFColor.Scalar())
	assert.Equal(t, MFVec3f, SFVec3f.Multi())
	assert.Equal(t, InvalidType, SFImage.Multi())
	assert.True(t, MFNode.IsMulti())
	assert.True(t, MFNode.IsNode())
	assert.False(t, SFTime.IsMulti())
}

func TestDefaults(t *testing.T) {
	for _, ty := range Types() {
		v := New(ty)
		require.NotNil(t, v, ty.String())
		assert.Equal(t, ty, v.Type())
	}
	assert.Equal(t, "0.0 0.0 1.0 0.0", New(SFRotation).String())
	assert.Equal(t, "[]", New(MFString).String())
	assert.Equal(t, "NULL", New(SFNode).String())
	assert.Equal(t, "0 0 0", New(SFImage).String())
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		ty   Type
		text string
	}{
		{SFBool, "TRUE"},
		{SFColor, "1.0 0.5 0.25"},
		{SFFloat, "3.25"},
		{SFFloat, "-1e+25"},
		{SFFloat, "0.001"},
		{SFImage, "2 1 3 0xFF0000 0x00FF00"},
		{SFInt32, "-42"},
		{SFRotation, "0.0 1.0 0.0 1.57"},
		{SFString, `"say \"hi\" \\ bye"`},
		{SFTime, "1234567890.5"},
		{SFVec2f, "1.0 2.0"},
		{SFVec3f, "1.5 -2.0 3.0"},
		{MFColor, "1.0 1.0 1.0 0.5 0.5 0.5"},
		{MFFloat, "1.0 2.5 3.0"},
		{MFInt32, "1 2 3"},
		{MFRotation, "1.0 0.0 0.0 0.5 0.0 0.0 1.0 3.0"},
		{MFString, `"a" "b c"`},
		{MFTime, "0.0 10.0"},
		{MFVec2f, "0.0 1.0 2.0 3.0"},
		{MFVec3f, "[]"},
	}
	for _, tt := range tests {
		v, err := Parse(tt.ty, tt.text, nil)
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.text, v.String())
		w, err := Parse(tt.ty, v.String(), nil)
		require.NoError(t, err)
		assert.True(t, v.Equal(w), tt.text)
	}
}

func TestColorsRoundTrip(t *testing.T) {
	v := &MF[math32.Color]{Values: []math32.Color{{R: 1, G: 1, B: 1}, {R: 0.5, G: 0.5, B: 0.5}}}
	assert.Equal(t, "1.0 1.0 1.0 0.5 0.5 0.5", v.String())

	for _, text := range []string{
		"1.0 1.0 1.0 0.5 0.5 0.5",
		"1.0, 1.0, 1.0, 0.5, 0.5, 0.5",
		"[ 1 1 1, 0.5 0.5 0.5 ]",
		"[1,1,1 # white\n 0.5,0.5,0.5]",
	} {
		w, err := Parse(MFColor, text, nil)
		require.NoError(t, err, text)
		assert.True(t, v.Equal(w), text)
	}
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		ty   Type
		text string
	}{
		{SFColor, "2.0 0.5 0.5"},
		{SFColor, "-0.1 0 0"},
		{SFColor, "1 1"},
		{SFRotation, "0 0 0 1"},
		{SFBool, "true"},
		{SFInt32, "4294967296"},
		{SFInt32, "1.5"},
		{SFFloat, "1 2"},
		{SFString, `"open`},
		{SFImage, "2 2 1 0xFF 0xFF 0xFF"},
		{SFImage, "1 1 1 0x100"},
		{SFImage, "1 1 5 0"},
		{MFFloat, "[1 2"},
		{MFVec3f, "1 2 3 4"},
		{SFNode, "USE A"},
		{SFNode, "Group {}"},
	}
	for _, tt := range tests {
		_, err := Parse(tt.ty, tt.text, nil)
		assert.Error(t, err, "%v %q", tt.ty, tt.text)
		var pe *ParseError
		assert.True(t, errors.As(err, &pe))
	}
}

func TestParseKeepsValueOnError(t *testing.T) {
	v := NewFloat(1)
	assert.Error(t, v.Parse("2 3"))
	assert.Equal(t, float32(1), Get[float32](v))
}

func TestRotationNormalized(t *testing.T) {
	v, err := Parse(SFRotation, "0 2 0 1", nil)
	require.NoError(t, err)
	assert.Equal(t, math32.Rot(0, 1, 0, 1), Get[math32.Rotation](v))
}

func TestHexInt(t *testing.T) {
	v, err := Parse(MFInt32, "0x10 -0x1 0xFFFFFFFF", nil)
	require.NoError(t, err)
	assert.Equal(t, []int32{16, -1, -1}, GetAll[int32](v))
}

func TestNodes(t *testing.T) {
	a, b := &testNode{id: "A"}, &testNode{}
	scope := testScope{"A": a}

	v, err := Parse(MFNode, "[USE A NULL USE A]", scope)
	require.NoError(t, err)
	assert.Equal(t, []Node{a, nil, a}, GetAll[Node](v))
	assert.Equal(t, "USE A NULL USE A", v.String())
	assert.Equal(t, []Node{a, a}, Nodes(v))

	assert.Equal(t, "Group {}", NewNode(b).String())

	cp := v.Clone()
	assert.True(t, cp.Equal(v))
	assert.Same(t, a, GetAll[Node](cp)[0])
}

func TestAssign(t *testing.T) {
	v := New(SFFloat)
	require.NoError(t, v.Assign(NewFloat(2)))
	assert.Equal(t, float32(2), Get[float32](v))

	err := v.Assign(NewTime(2))
	assert.ErrorIs(t, err, ErrTypeMismatch)
	var tm *TypeMismatchError
	require.True(t, errors.As(err, &tm))
	assert.Equal(t, SFFloat, tm.Want)
	assert.Equal(t, SFTime, tm.Got)

	assert.ErrorIs(t, New(MFFloat).Assign(New(SFFloat)), ErrTypeMismatch)
}

func TestCloneIsDeep(t *testing.T) {
	im, err := Parse(SFImage, "1 2 1 0x01 0x02", nil)
	require.NoError(t, err)
	cp := im.Clone()
	cp.(*Image).Pixels[0] = 9
	assert.Equal(t, uint32(1), im.(*Image).Pixels[0])

	mf := &MF[float32]{Values: []float32{1, 2}}
	mcp := mf.Clone()
	mcp.(*MF[float32]).Values[0] = 5
	assert.Equal(t, float32(1), mf.Values[0])
	assert.False(t, mf.Equal(mcp))
}
