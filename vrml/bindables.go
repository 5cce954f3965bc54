// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"cogentcore.org/vrml/field"
	"cogentcore.org/vrml/math32"
)

// bind handles a set_bind event for the node n on the stack s.
// Binding moves n to the top, sending isBound FALSE to the node it
// replaces; unbinding the top node sends isBound TRUE to the next.
func bind(n Node, s *BindStack, bound bool, ts float64) {
	nb := n.AsNode()
	old := s.Top()
	if bound {
		if old == n {
			return
		}
		if old != nil {
			old.AsNode().sendEvent("isBound", field.NewBool(false), ts)
		}
		s.Push(n)
		nb.sendEvent("isBound", field.NewBool(true), ts)
		nb.sendEvent("bindTime", field.NewTime(ts), ts)
		return
	}
	if !s.Remove(n) || old != n {
		return
	}
	nb.sendEvent("isBound", field.NewBool(false), ts)
	if top := s.Top(); top != nil {
		top.AsNode().sendEvent("isBound", field.NewBool(true), ts)
		top.AsNode().sendEvent("bindTime", field.NewTime(ts), ts)
	}
}

func isBound(n Node, s *BindStack) bool {
	return s != nil && s.Top() == n
}

// Viewpoint is a bindable camera position.
type Viewpoint struct {
	NodeBase
}

func viewpointClass() *BuiltinClass {
	c := newBuiltinClass("Viewpoint", func() Node { return &Viewpoint{} },
		eventIn(field.SFBool, "set_bind"),
		exposedField(field.SFFloat, "fieldOfView", "0.785398"),
		exposedField(field.SFBool, "jump", "TRUE"),
		exposedField(field.SFRotation, "orientation", "0 0 1 0"),
		exposedField(field.SFVec3f, "position", "0 0 10"),
		fieldDecl(field.SFString, "description", ""),
		eventOut(field.SFTime, "bindTime"),
		eventOut(field.SFBool, "isBound"),
	)
	// The viewpoint selected by the URL fragment is bound first,
	// and otherwise the first viewpoint in the world.
	c.OnInitialize = func(c *BuiltinClass, initial ViewpointNode, ts float64) {
		b := c.browser
		if initial == nil {
			if vps := b.Viewpoints(); len(vps) > 0 {
				initial = vps[0]
			}
		}
		if initial != nil {
			logEventError(initial.AsNode().ProcessEvent("set_bind", field.NewBool(true), ts), initial, "set_bind")
		}
	}
	return c
}

func (vp *Viewpoint) Position() math32.Vector3 {
	return fieldOf[math32.Vector3](&vp.NodeBase, "position")
}

func (vp *Viewpoint) Orientation() math32.Rotation {
	return fieldOf[math32.Rotation](&vp.NodeBase, "orientation")
}

func (vp *Viewpoint) FieldOfView() float32 {
	return fieldOf[float32](&vp.NodeBase, "fieldOfView")
}

func (vp *Viewpoint) Description() string {
	return fieldOf[string](&vp.NodeBase, "description")
}

func (vp *Viewpoint) IsBound() bool {
	b := vp.Browser()
	return b != nil && isBound(vp, b.viewpointStack)
}

func (vp *Viewpoint) HandleEvent(name string, v field.Value, ts float64) error {
	b := vp.Browser()
	if b == nil {
		return nil
	}
	switch name {
	case "set_bind":
		bind(vp, b.viewpointStack, field.Get[bool](v), ts)
	case "position", "orientation", "fieldOfView":
		if vp.IsBound() {
			b.SetModified()
		}
	}
	return nil
}

func (vp *Viewpoint) OnInitialize(ts float64) {
	vp.Browser().AddViewpoint(vp)
}

func (vp *Viewpoint) OnShutdown(ts float64) {
	b := vp.Browser()
	b.viewpointStack.Remove(vp)
	b.RemoveViewpoint(vp)
}

// NavigationInfo is a bindable set of navigation parameters.
type NavigationInfo struct {
	NodeBase
}

func navigationInfoClass() *BuiltinClass {
	c := newBuiltinClass("NavigationInfo", func() Node { return &NavigationInfo{} },
		eventIn(field.SFBool, "set_bind"),
		exposedField(field.MFFloat, "avatarSize", "0.25 1.6 0.75"),
		exposedField(field.SFBool, "headlight", "TRUE"),
		exposedField(field.SFFloat, "speed", "1.0"),
		exposedField(field.MFString, "type", `"WALK" "ANY"`),
		exposedField(field.SFFloat, "visibilityLimit", "0.0"),
		eventOut(field.SFBool, "isBound"),
	)
	c.OnInitialize = func(c *BuiltinClass, _ ViewpointNode, ts float64) {
		if navs := c.browser.navigationInfos.items; len(navs) > 0 {
			logEventError(navs[0].AsNode().ProcessEvent("set_bind", field.NewBool(true), ts), navs[0], "set_bind")
		}
	}
	return c
}

func (ni *NavigationInfo) AvatarSize() []float32 {
	return fieldsOf[float32](&ni.NodeBase, "avatarSize")
}

func (ni *NavigationInfo) Headlight() bool {
	return fieldOf[bool](&ni.NodeBase, "headlight")
}

func (ni *NavigationInfo) Speed() float32 {
	return fieldOf[float32](&ni.NodeBase, "speed")
}

func (ni *NavigationInfo) VisibilityLimit() float32 {
	return fieldOf[float32](&ni.NodeBase, "visibilityLimit")
}

// Types returns the navigation types, such as WALK.
func (ni *NavigationInfo) Types() []string {
	return fieldsOf[string](&ni.NodeBase, "type")
}

func (ni *NavigationInfo) IsBound() bool {
	b := ni.Browser()
	return b != nil && isBound(ni, b.navigationStack)
}

func (ni *NavigationInfo) HandleEvent(name string, v field.Value, ts float64) error {
	b := ni.Browser()
	if b == nil {
		return nil
	}
	switch name {
	case "set_bind":
		bind(ni, b.navigationStack, field.Get[bool](v), ts)
	default:
		if ni.IsBound() {
			b.SetModified()
		}
	}
	return nil
}

func (ni *NavigationInfo) OnInitialize(ts float64) {
	ni.Browser().AddNavigationInfo(ni)
}

func (ni *NavigationInfo) OnShutdown(ts float64) {
	b := ni.Browser()
	b.navigationStack.Remove(ni)
	b.RemoveNavigationInfo(ni)
}
