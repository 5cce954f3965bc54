// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/vrml/field"
	"cogentcore.org/vrml/vrml"
)

func TestInterfaceSetNames(t *testing.T) {
	s, err := vrml.NewInterfaceSet(
		vrml.Interface{Direction: vrml.ExposedField, Type: field.SFVec3f, Name: "translation"},
		vrml.Interface{Direction: vrml.EventIn, Type: field.MFNode, Name: "addChildren"},
		vrml.Interface{Direction: vrml.EventOut, Type: field.SFBool, Name: "isActive"},
		vrml.Interface{Direction: vrml.Field, Type: field.SFFloat, Name: "radius"},
	)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Len())

	i, ok := s.FindEventIn("set_translation")
	require.True(t, ok)
	assert.Equal(t, "translation", i.Name)
	_, ok = s.FindEventIn("translation")
	assert.True(t, ok)
	i, ok = s.FindEventOut("translation_changed")
	require.True(t, ok)
	assert.Equal(t, vrml.ExposedField, i.Direction)

	_, ok = s.FindField("addChildren")
	assert.False(t, ok)
	_, ok = s.FindEventOut("radius")
	assert.False(t, ok)
	_, ok = s.FindEventIn("isActive")
	assert.False(t, ok)

	assert.Error(t, s.Add(vrml.Interface{Direction: vrml.EventIn, Type: field.SFVec3f, Name: "set_translation"}))
	assert.Error(t, s.Add(vrml.Interface{Direction: vrml.ExposedField, Type: field.SFBool, Name: "isActive"}))
	assert.Error(t, s.Add(vrml.Interface{Direction: vrml.Field, Type: field.InvalidType, Name: "x"}))
	assert.Contains(t, s.Names(), "translation_changed")
}

func TestDirection(t *testing.T) {
	assert.True(t, vrml.ExposedField.IsField())
	assert.True(t, vrml.ExposedField.IsEventIn())
	assert.True(t, vrml.ExposedField.IsEventOut())
	assert.False(t, vrml.EventIn.IsField())
	assert.Equal(t, "eventOut", vrml.EventOut.String())
}

func TestUnsupportedInterfaceSuggestion(t *testing.T) {
	b := newBrowser(t, nil)
	g := create(t, b, "Group", nil)
	err := g.AsNode().SetField("childern", field.NewNodes())
	require.ErrorIs(t, err, vrml.ErrUnsupportedInterface)
	var ue *vrml.UnsupportedInterfaceError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "children", ue.Suggestion)
	assert.Contains(t, err.Error(), `did you mean "children"?`)

	_, err = g.AsNode().Field("zzz")
	require.ErrorAs(t, err, &ue)
	assert.Empty(t, ue.Suggestion)

	s := create(t, b, "Sphere", nil)
	err = s.AsNode().ProcessEvent("radius", field.NewFloat(2), 1)
	require.ErrorAs(t, err, &ue)
	assert.Empty(t, ue.Suggestion)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestFieldTypeChecked(t *testing.T) {
	b := newBrowser(t, nil)
	s := create(t, b, "Sphere", nil)
	err := s.AsNode().SetField("radius", field.NewString("big"))
	assert.ErrorIs(t, err, field.ErrTypeMismatch)
	assert.Equal(t, float32(1), field.Get[float32](must(s.AsNode().Field("radius"))))

	require.NoError(t, s.AsNode().SetField("radius", field.NewFloat(2)))
	assert.Equal(t, float32(2), field.Get[float32](must(s.AsNode().Field("radius"))))

	err = s.AsNode().ProcessEvent("set_radius", field.NewFloat(3), 0)
	assert.ErrorIs(t, err, vrml.ErrUnsupportedInterface)
}

func TestCreateTypeSubset(t *testing.T) {
	b := newBrowser(t, nil)
	c, ok := b.Classes().Lookup(vrml.ClassURN("Sphere"))
	require.True(t, ok)
	_, err := c.CreateType("Sphere", []vrml.Interface{{Direction: vrml.Field, Type: field.SFFloat, Name: "diameter"}})
	assert.ErrorIs(t, err, vrml.ErrUnsupportedInterface)

	nt, err := c.CreateType("Sphere", []vrml.Interface{{Direction: vrml.Field, Type: field.SFFloat, Name: "radius"}})
	require.NoError(t, err)
	assert.Len(t, nt.Interfaces(), 1)
	assert.Equal(t, c, nt.Class())
}
