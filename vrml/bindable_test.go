// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cogentcore.org/vrml/field"
	"cogentcore.org/vrml/vrml"
)

func TestBindStackPush(t *testing.T) {
	b := newBrowser(t, nil)
	a := create(t, b, "Viewpoint", nil)
	c := create(t, b, "Viewpoint", nil)
	changes := 0
	s := &vrml.BindStack{OnChange: func() { changes++ }}
	s.Push(a)
	s.Push(c)
	s.Push(a)
	assert.Equal(t, []vrml.Node{a, c}, s.Nodes())
	assert.Equal(t, a, s.Top())
	assert.Equal(t, 3, changes)

	assert.True(t, s.Remove(a))
	assert.False(t, s.Remove(a))
	assert.Equal(t, c, s.Top())
	assert.Equal(t, 1, s.Len())
}

func TestViewpointBinding(t *testing.T) {
	b := newBrowser(t, nil)
	v1 := create(t, b, "Viewpoint", map[string]string{"position": "0 0 5"})
	v2 := create(t, b, "Viewpoint", map[string]string{"position": "1 2 3"})
	b.ReplaceWorld([]vrml.Node{v1, v2})
	assert.Equal(t, b.DefaultViewpoint(), b.ActiveViewpoint())
	assert.Len(t, b.Viewpoints(), 2)

	assert.NoError(t, v2.AsNode().ProcessEvent("set_bind", field.NewBool(true), 1))
	assert.Equal(t, v2, b.ActiveViewpoint())
	assert.True(t, field.Get[bool](must(v2.AsNode().EventOut("isBound"))))

	assert.NoError(t, v1.AsNode().ProcessEvent("set_bind", field.NewBool(true), 2))
	assert.Equal(t, v1, b.ActiveViewpoint())
	assert.False(t, field.Get[bool](must(v2.AsNode().EventOut("isBound"))))
	assert.Equal(t, 2.0, field.Get[float64](must(v1.AsNode().EventOut("bindTime"))))

	assert.NoError(t, v1.AsNode().ProcessEvent("set_bind", field.NewBool(false), 3))
	assert.Equal(t, v2, b.ActiveViewpoint())
	assert.True(t, field.Get[bool](must(v2.AsNode().EventOut("isBound"))))
	assert.Equal(t, []vrml.Node{v2}, b.ViewpointStack().Nodes())
}

func TestNavigationInfoDefaults(t *testing.T) {
	b := newBrowser(t, nil)
	assert.True(t, b.HeadlightOn())
	assert.Equal(t, float32(1), b.CurrentSpeed())
	assert.Nil(t, b.ActiveNavigationInfo())

	nav := create(t, b, "NavigationInfo", map[string]string{"headlight": "FALSE", "speed": "2"})
	b.ReplaceWorld([]vrml.Node{nav})
	assert.NoError(t, nav.AsNode().ProcessEvent("set_bind", field.NewBool(true), 1))
	assert.False(t, b.HeadlightOn())
	assert.Equal(t, float32(2), b.CurrentSpeed())
}

func must(v field.Value, err error) field.Value {
	if err != nil {
		panic(err)
	}
	return v
}
