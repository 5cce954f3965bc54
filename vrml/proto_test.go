// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/vrml/field"
	"cogentcore.org/vrml/math32"
	"cogentcore.org/vrml/vrml"
)

func implNode(t *testing.T, pb *vrml.ProtoBuilder, b *vrml.Browser, typ, id string) vrml.Node {
	t.Helper()
	n, err := b.Scene().CreateNode(pb.Scope(), typ, nil)
	require.NoError(t, err)
	n.AsNode().SetID(id)
	return n
}

func TestProtoCloneKeepsCycles(t *testing.T) {
	b := newBrowser(t, nil)
	pb := b.NewProtoBuilder("Cycle", b.Scene().Scope())
	a := implNode(t, pb, b, "Group", "A")
	c := implNode(t, pb, b, "Group", "B")
	require.NoError(t, a.AsNode().SetField("children", field.NewNodes(c)))
	require.NoError(t, c.AsNode().SetField("children", field.NewNodes(a)))
	pb.AddImplNode(a)
	p, err := pb.Build()
	require.NoError(t, err)

	inst, err := p.CreateNode(b.Scene().Scope(), nil)
	require.NoError(t, err)
	impl := inst.(*vrml.ProtoInstance).ImplementationNodes()
	require.Len(t, impl, 1)
	ca := impl[0].(vrml.GroupingNode)
	require.Len(t, ca.ChildNodes(), 1)
	cb := ca.ChildNodes()[0].(vrml.GroupingNode)
	assert.NotSame(t, a, ca)
	assert.NotSame(t, c, cb)
	assert.Equal(t, "A", ca.ID())
	assert.Equal(t, "B", cb.ID())
	require.Len(t, cb.ChildNodes(), 1)
	assert.Same(t, ca, cb.ChildNodes()[0])

	_, ok := b.Classes().Lookup(p.ID())
	assert.True(t, ok)
}

func TestProtoSharedNodesStayShared(t *testing.T) {
	b := newBrowser(t, nil)
	pb := b.NewProtoBuilder("Shared", nil)
	box := implNode(t, pb, b, "Box", "")
	s1 := implNode(t, pb, b, "Shape", "")
	s2 := implNode(t, pb, b, "Shape", "")
	require.NoError(t, s1.AsNode().SetField("geometry", field.NewNode(box)))
	require.NoError(t, s2.AsNode().SetField("geometry", field.NewNode(box)))
	pb.AddImplNode(s1)
	pb.AddImplNode(s2)
	p, err := pb.Build()
	require.NoError(t, err)

	inst, err := p.CreateNode(nil, nil)
	require.NoError(t, err)
	impl := inst.(*vrml.ProtoInstance).ImplementationNodes()
	require.Len(t, impl, 2)
	g1 := field.Get[field.Node](must(impl[0].AsNode().Field("geometry")))
	g2 := field.Get[field.Node](must(impl[1].AsNode().Field("geometry")))
	assert.Same(t, g1, g2)
	assert.NotSame(t, box, g1)
}

// moverProto builds a PROTO whose eventIn set_pos moves a Transform
// that routes its translation to a second Transform, whose translation
// is sent as pos_changed.
func moverProto(t *testing.T, b *vrml.Browser) *vrml.ProtoDefinition {
	t.Helper()
	pb := b.NewProtoBuilder("Mover", b.Scene().Scope())
	require.NoError(t, pb.AddInterface(vrml.Interface{Direction: vrml.EventIn, Type: field.SFVec3f, Name: "set_pos"}, nil))
	require.NoError(t, pb.AddInterface(vrml.Interface{Direction: vrml.EventOut, Type: field.SFVec3f, Name: "pos_changed"}, nil))
	require.NoError(t, pb.AddInterface(vrml.Interface{Direction: vrml.Field, Type: field.SFFloat, Name: "radius"}, field.NewFloat(5)))
	t1 := implNode(t, pb, b, "Transform", "T1")
	t2 := implNode(t, pb, b, "Transform", "T2")
	sphere := implNode(t, pb, b, "Sphere", "")
	shape := implNode(t, pb, b, "Shape", "")
	require.NoError(t, shape.AsNode().SetField("geometry", field.NewNode(sphere)))
	require.NoError(t, t1.AsNode().SetField("children", field.NewNodes(t2, shape)))
	pb.AddImplNode(t1)
	require.NoError(t, pb.AddRoute(t1, "translation_changed", t2, "set_translation"))
	require.NoError(t, pb.IS("set_pos", t1, "set_translation"))
	require.NoError(t, pb.IS("pos_changed", t2, "translation_changed"))
	require.NoError(t, pb.IS("radius", sphere, "radius"))
	p, err := pb.Build()
	require.NoError(t, err)
	return p
}

func TestProtoRoutesPerInstance(t *testing.T) {
	b := newBrowser(t, nil)
	p := moverProto(t, b)
	x, err := p.CreateNode(nil, nil)
	require.NoError(t, err)
	y, err := p.CreateNode(nil, nil)
	require.NoError(t, err)
	b.ReplaceWorld([]vrml.Node{x, y})
	assert.Equal(t, 2, b.InterestCounts().Protos)

	v := math32.Vec3(1, 1, 1)
	require.NoError(t, x.AsNode().ProcessEvent("set_pos", field.NewVec3f(v), 1))
	b.Update(1)
	assert.Equal(t, v, field.Get[math32.Vector3](must(x.AsNode().EventOut("pos_changed"))))
	assert.Equal(t, math32.Vector3{}, field.Get[math32.Vector3](must(y.AsNode().EventOut("pos_changed"))))

	yt2 := y.(*vrml.ProtoInstance).ImplementationNodes()[0].(vrml.GroupingNode).ChildNodes()[0]
	assert.Equal(t, "T2", yt2.ID())
	assert.Equal(t, math32.Vector3{}, field.Get[math32.Vector3](must(yt2.AsNode().Field("translation"))))
}

func TestProtoEventOutIsRouted(t *testing.T) {
	b := newBrowser(t, nil)
	p := moverProto(t, b)
	x, err := p.CreateNode(nil, nil)
	require.NoError(t, err)
	sink := create(t, b, "Transform", nil)
	b.ReplaceWorld([]vrml.Node{x, sink})
	require.NoError(t, b.AddRoute(x, "pos_changed", sink, "set_translation"))

	v := math32.Vec3(2, 0, 0)
	require.NoError(t, x.AsNode().ProcessEvent("set_pos", field.NewVec3f(v), 1))
	b.Update(1)
	assert.Equal(t, 1, b.EventsPending())
	b.Update(2)
	assert.Equal(t, v, field.Get[math32.Vector3](must(sink.AsNode().Field("translation"))))
}

func TestProtoFieldIS(t *testing.T) {
	b := newBrowser(t, nil)
	p := moverProto(t, b)
	def, err := p.CreateNode(nil, nil)
	require.NoError(t, err)
	big, err := p.CreateNode(nil, map[string]field.Value{"radius": field.NewFloat(3)})
	require.NoError(t, err)

	sphereRadius := func(n vrml.Node) float32 {
		var r float32
		vrml.Walk(n.(*vrml.ProtoInstance).ImplementationNodes(), func(n vrml.Node) bool {
			if s, ok := n.(*vrml.Sphere); ok {
				r = field.Get[float32](must(s.Field("radius")))
			}
			return vrml.Continue
		})
		return r
	}
	assert.Equal(t, float32(5), sphereRadius(def))
	assert.Equal(t, float32(3), sphereRadius(big))
	assert.Equal(t, float32(3), field.Get[float32](must(big.AsNode().Field("radius"))))

	d, ok := p.Default("radius")
	require.True(t, ok)
	assert.Equal(t, float32(5), field.Get[float32](d))

	grp, ok := vrml.ToGrouping(def)
	require.True(t, ok)
	assert.Len(t, grp.ChildNodes(), 2)
}

func TestProtoExposedFieldIS(t *testing.T) {
	b := newBrowser(t, nil)
	pb := b.NewProtoBuilder("Mover2", nil)
	require.NoError(t, pb.AddInterface(vrml.Interface{Direction: vrml.ExposedField, Type: field.SFVec3f, Name: "translation"}, field.NewVec3f(math32.Vec3(0, 1, 0))))
	tr := implNode(t, pb, b, "Transform", "")
	pb.AddImplNode(tr)
	require.NoError(t, pb.IS("translation", tr, "translation"))
	p, err := pb.Build()
	require.NoError(t, err)

	inst, err := p.CreateNode(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, math32.Vec3(0, 1, 0), field.Get[math32.Vector3](must(inst.AsNode().Field("translation"))))
	b.ReplaceWorld([]vrml.Node{inst})

	v := math32.Vec3(3, 2, 1)
	require.NoError(t, inst.AsNode().ProcessEvent("set_translation", field.NewVec3f(v), 1))
	assert.Equal(t, v, field.Get[math32.Vector3](must(inst.AsNode().Field("translation"))))
	b.Update(1)
	assert.Equal(t, v, field.Get[math32.Vector3](must(inst.AsNode().EventOut("translation_changed"))))
}

func TestProtoInterfaceMapsToSeveralTargets(t *testing.T) {
	b := newBrowser(t, nil)
	pb := b.NewProtoBuilder("Pair", nil)
	require.NoError(t, pb.AddInterface(vrml.Interface{Direction: vrml.ExposedField, Type: field.SFVec3f, Name: "pos"}, field.NewVec3f(math32.Vector3{})))
	require.NoError(t, pb.AddInterface(vrml.Interface{Direction: vrml.Field, Type: field.SFFloat, Name: "r"}, field.NewFloat(1)))
	t1 := implNode(t, pb, b, "Transform", "T1")
	t2 := implNode(t, pb, b, "Transform", "T2")
	s1 := implNode(t, pb, b, "Sphere", "S1")
	s2 := implNode(t, pb, b, "Sphere", "S2")
	shape1 := implNode(t, pb, b, "Shape", "")
	shape2 := implNode(t, pb, b, "Shape", "")
	require.NoError(t, shape1.AsNode().SetField("geometry", field.NewNode(s1)))
	require.NoError(t, shape2.AsNode().SetField("geometry", field.NewNode(s2)))
	require.NoError(t, t2.AsNode().SetField("children", field.NewNodes(shape2)))
	require.NoError(t, t1.AsNode().SetField("children", field.NewNodes(t2, shape1)))
	pb.AddImplNode(t1)
	require.NoError(t, pb.IS("pos", t1, "translation"))
	require.NoError(t, pb.IS("pos", t2, "center"))
	require.NoError(t, pb.IS("r", s1, "radius"))
	require.NoError(t, pb.IS("r", s2, "radius"))
	p, err := pb.Build()
	require.NoError(t, err)

	inst, err := p.CreateNode(nil, map[string]field.Value{"r": field.NewFloat(7)})
	require.NoError(t, err)
	b.ReplaceWorld([]vrml.Node{inst})
	impl := map[string]vrml.Node{}
	vrml.Walk(inst.(*vrml.ProtoInstance).ImplementationNodes(), func(n vrml.Node) bool {
		if n.ID() != "" {
			impl[n.ID()] = n
		}
		return vrml.Continue
	})
	require.Len(t, impl, 4)
	assert.Equal(t, "7.0", fieldString(t, impl["S1"], "radius"))
	assert.Equal(t, "7.0", fieldString(t, impl["S2"], "radius"))

	require.NoError(t, inst.AsNode().ProcessEvent("set_pos", field.NewVec3f(math32.Vec3(1, 2, 3)), 1))
	b.Update(1)
	assert.Equal(t, "1.0 2.0 3.0", fieldString(t, impl["T1"], "translation"))
	assert.Equal(t, "1.0 2.0 3.0", fieldString(t, impl["T2"], "center"))
	assert.Equal(t, "1.0 2.0 3.0", eventOutString(t, inst, "pos_changed"))
}

func TestProtoISValidation(t *testing.T) {
	b := newBrowser(t, nil)
	pb := b.NewProtoBuilder("Bad", nil)
	require.NoError(t, pb.AddInterface(vrml.Interface{Direction: vrml.ExposedField, Type: field.SFVec3f, Name: "size"}, nil))
	require.NoError(t, pb.AddInterface(vrml.Interface{Direction: vrml.Field, Type: field.SFFloat, Name: "r"}, nil))
	box := implNode(t, pb, b, "Box", "")

	assert.ErrorIs(t, pb.IS("nope", box, "size"), vrml.ErrUnsupportedInterface)
	assert.ErrorIs(t, pb.IS("size", box, "nope"), vrml.ErrUnsupportedInterface)
	assert.ErrorIs(t, pb.IS("r", box, "size"), field.ErrTypeMismatch)
	assert.ErrorIs(t, pb.IS("size", box, "size"), vrml.ErrInterfaceTypeMismatch)

	_, err := pb.Build()
	assert.Error(t, err)

	err = pb.AddInterface(vrml.Interface{Direction: vrml.Field, Type: field.SFFloat, Name: "x"}, field.NewString("a"))
	assert.ErrorIs(t, err, field.ErrTypeMismatch)
}

func TestProtoMappedNodeMustBeReachable(t *testing.T) {
	b := newBrowser(t, nil)
	pb := b.NewProtoBuilder("Loose", nil)
	require.NoError(t, pb.AddInterface(vrml.Interface{Direction: vrml.Field, Type: field.SFFloat, Name: "r"}, nil))
	pb.AddImplNode(implNode(t, pb, b, "Group", ""))
	require.NoError(t, pb.IS("r", implNode(t, pb, b, "Sphere", ""), "radius"))
	_, err := pb.Build()
	assert.Error(t, err)
}
