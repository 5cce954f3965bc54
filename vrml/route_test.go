// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/vrml/field"
	"cogentcore.org/vrml/math32"
	"cogentcore.org/vrml/vrml"
)

func TestAddRouteValidates(t *testing.T) {
	b := newBrowser(t, nil)
	ts := create(t, b, "TimeSensor", nil)
	tr := create(t, b, "Transform", nil)

	err := b.AddRoute(ts, "fraction_changed", tr, "set_translation")
	assert.ErrorIs(t, err, field.ErrTypeMismatch)
	err = b.AddRoute(ts, "fraction", tr, "set_translation")
	assert.ErrorIs(t, err, vrml.ErrUnsupportedInterface)
	err = b.AddRoute(tr, "translation_changed", ts, "isActive")
	assert.ErrorIs(t, err, vrml.ErrUnsupportedInterface)

	require.NoError(t, b.AddRoute(tr, "translation_changed", tr, "center"))
	require.NoError(t, b.AddRoute(tr, "translation", tr, "set_center"))
	routes := tr.AsNode().Routes()
	require.Len(t, routes, 1)
	assert.Equal(t, "translation", routes[0].EventOut)
	assert.Equal(t, "center", routes[0].EventIn)
	assert.Equal(t, tr, routes[0].To())

	assert.True(t, b.DeleteRoute(tr, "translation_changed", tr, "set_center"))
	assert.False(t, b.DeleteRoute(tr, "translation_changed", tr, "set_center"))
	assert.Empty(t, tr.AsNode().Routes())
}

func TestRouteDelivery(t *testing.T) {
	b := newBrowser(t, nil)
	a := create(t, b, "Transform", nil)
	c := create(t, b, "Transform", nil)
	b.ReplaceWorld([]vrml.Node{a, c})
	require.NoError(t, b.AddRoute(a, "translation_changed", c, "set_translation"))

	v := field.NewVec3f(math32.Vec3(1, 2, 3))
	require.NoError(t, a.AsNode().ProcessEvent("set_translation", v, 1))
	assert.Equal(t, 1, b.EventsPending())
	assert.Equal(t, math32.Vector3{}, field.Get[math32.Vector3](must(c.AsNode().Field("translation"))))

	b.Update(1)
	assert.Equal(t, 0, b.EventsPending())
	assert.Equal(t, math32.Vec3(1, 2, 3), field.Get[math32.Vector3](must(c.AsNode().Field("translation"))))
}

func TestRouteLoopBreaks(t *testing.T) {
	b := newBrowser(t, nil)
	a := create(t, b, "Transform", nil)
	c := create(t, b, "Transform", nil)
	b.ReplaceWorld([]vrml.Node{a, c})
	require.NoError(t, b.AddRoute(a, "translation_changed", c, "set_translation"))
	require.NoError(t, b.AddRoute(c, "translation_changed", a, "set_translation"))

	require.NoError(t, a.AsNode().ProcessEvent("set_translation", field.NewVec3f(math32.Vec3(4, 5, 6)), 1))
	b.Update(1)
	assert.Equal(t, 0, b.EventsPending())
	assert.Equal(t, math32.Vec3(4, 5, 6), field.Get[math32.Vector3](must(c.AsNode().Field("translation"))))

	// a later timestamp goes around the loop once more
	require.NoError(t, c.AsNode().ProcessEvent("set_translation", field.NewVec3f(math32.Vec3(7, 8, 9)), 2))
	b.Update(2)
	assert.Equal(t, 0, b.EventsPending())
	assert.Equal(t, math32.Vec3(7, 8, 9), field.Get[math32.Vector3](must(a.AsNode().Field("translation"))))
}

func TestRouteDestinationIsWeak(t *testing.T) {
	b := newBrowser(t, nil)
	from := create(t, b, "Transform", nil)
	to := create(t, b, "Transform", nil)
	require.NoError(t, b.AddRoute(from, "translation_changed", to, "set_translation"))
	route := from.AsNode().Routes()[0]
	require.NotNil(t, route.To())

	to = nil
	for range 10 {
		runtime.GC()
		if route.To() == nil {
			break
		}
	}
	assert.Nil(t, route.To())
	assert.Contains(t, route.String(), "<deleted>")
	runtime.KeepAlive(from)
}

func TestFindNode(t *testing.T) {
	b := newBrowser(t, nil)
	box := create(t, b, "Box", nil)
	shape := create(t, b, "Shape", nil)
	require.NoError(t, shape.AsNode().SetField("geometry", field.NewNode(box)))
	tr := create(t, b, "Transform", nil)
	require.NoError(t, tr.AsNode().SetField("children", field.NewNodes(shape)))
	g := create(t, b, "Group", nil)
	require.NoError(t, g.AsNode().SetField("children", field.NewNodes(tr)))
	b.ReplaceWorld([]vrml.Node{g})

	assert.Equal(t, []vrml.Node{g, tr, shape, box}, b.FindNode(box))
	assert.Nil(t, b.FindNode(create(t, b, "Box", nil)))
	assert.Equal(t, []vrml.Node{g}, b.RootNodes())
	assert.True(t, box.AsNode().Initialized())
}
