// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"log/slog"
	"slices"

	"cogentcore.org/vrml/base/errors"
	"cogentcore.org/vrml/field"
	"cogentcore.org/vrml/math32"
)

func groupingDecls() []decl {
	return []decl{
		eventIn(field.MFNode, "addChildren"),
		eventIn(field.MFNode, "removeChildren"),
		exposedField(field.MFNode, "children", ""),
		fieldDecl(field.SFVec3f, "bboxCenter", "0 0 0"),
		fieldDecl(field.SFVec3f, "bboxSize", "-1 -1 -1"),
	}
}

// Group is a grouping node.
type Group struct {
	NodeBase
}

func groupClass() *BuiltinClass {
	return newBuiltinClass("Group", func() Node { return &Group{} }, groupingDecls()...)
}

// ChildNodes returns the children of the group.
func (g *Group) ChildNodes() []Node {
	var ns []Node
	for _, n := range fieldsOf[field.Node](&g.NodeBase, "children") {
		if cn, ok := n.(Node); ok {
			ns = append(ns, cn)
		}
	}
	return ns
}

func (g *Group) HandleEvent(name string, v field.Value, ts float64) error {
	children := fieldsOf[field.Node](&g.NodeBase, "children")
	switch name {
	case "addChildren":
		var added []Node
		for _, n := range field.GetAll[field.Node](v) {
			cn, ok := n.(Node)
			if ok && !slices.Contains(children, n) {
				children = append(children, n)
				added = append(added, cn)
			}
		}
		if len(added) == 0 {
			return nil
		}
		g.setChildren(children, ts)
		if s := g.Scene(); s != nil {
			s.initializeNodes(added, ts)
		}
	case "removeChildren":
		remove := field.GetAll[field.Node](v)
		kept := slices.DeleteFunc(slices.Clone(children), func(n field.Node) bool {
			return slices.Contains(remove, n)
		})
		if len(kept) == len(children) {
			return nil
		}
		g.setChildren(kept, ts)
		if s := g.Scene(); s != nil {
			var removed []Node
			for _, n := range children {
				if rn, ok := n.(Node); ok && slices.Contains(remove, n) {
					removed = append(removed, rn)
				}
			}
			s.shutdownUnreachable(removed, ts)
		}
	case "children":
		if s := g.Scene(); s != nil {
			s.initializeNodes(g.ChildNodes(), ts)
		}
	}
	return nil
}

func (g *Group) setChildren(children []field.Node, ts float64) {
	v := field.NewNodes(children...)
	g.DoSetField("children", v)
	g.sendEvent("children", v, ts)
	if b := g.Browser(); b != nil {
		b.SetModified()
	}
}

func (g *Group) Render(v Viewer) {
	v.BeginObject(g.ID())
	renderChildren(g.ChildNodes(), v)
	v.EndObject()
}

// renderChildren inserts the unscoped lights among the children,
// which light their siblings, and then renders the children.
func renderChildren(children []Node, v Viewer) {
	for _, c := range children {
		if l, ok := ToLight(c); ok && !l.Scoped() && l.On() {
			v.InsertLight(l.Light())
		}
	}
	for _, c := range children {
		renderNode(c, v)
	}
}

// Transform is a grouping node that transforms its children.
type Transform struct {
	Group
}

func transformClass() *BuiltinClass {
	decls := append(groupingDecls(),
		exposedField(field.SFVec3f, "center", "0 0 0"),
		exposedField(field.SFRotation, "rotation", "0 0 1 0"),
		exposedField(field.SFVec3f, "scale", "1 1 1"),
		exposedField(field.SFRotation, "scaleOrientation", "0 0 1 0"),
		exposedField(field.SFVec3f, "translation", "0 0 0"),
	)
	return newBuiltinClass("Transform", func() Node { return &Transform{} }, decls...)
}

// Matrix returns the transformation of the children.
func (t *Transform) Matrix() math32.Matrix4 {
	nb := &t.NodeBase
	return math32.Transform4(
		fieldOf[math32.Vector3](nb, "translation"),
		fieldOf[math32.Vector3](nb, "center"),
		fieldOf[math32.Rotation](nb, "rotation"),
		fieldOf[math32.Vector3](nb, "scale"),
		fieldOf[math32.Rotation](nb, "scaleOrientation"),
	)
}

func (t *Transform) Render(v Viewer) {
	v.BeginObject(t.ID())
	v.Transform(t.Matrix())
	renderChildren(t.ChildNodes(), v)
	v.EndObject()
}

// Inline is a grouping node whose children are the root nodes of a
// child scene loaded from its url.
type Inline struct {
	NodeBase
	child *Scene
}

func inlineClass() *BuiltinClass {
	return newBuiltinClass("Inline", func() Node { return &Inline{} },
		exposedField(field.MFString, "url", ""),
		fieldDecl(field.SFVec3f, "bboxCenter", "0 0 0"),
		fieldDecl(field.SFVec3f, "bboxSize", "-1 -1 -1"),
	)
}

// ChildScene returns the loaded child scene, or nil.
func (in *Inline) ChildScene() *Scene { return in.child }

// ChildNodes returns the root nodes of the child scene.
func (in *Inline) ChildNodes() []Node {
	if in.child == nil {
		return nil
	}
	return in.child.Nodes()
}

func (in *Inline) OnInitialize(ts float64) {
	in.load(ts)
}

func (in *Inline) load(ts float64) {
	s := in.Scene()
	if s == nil {
		return
	}
	child := NewScene(s.browser, s)
	if err := child.Load(fieldsOf[string](&in.NodeBase, "url"), nil); err != nil {
		errors.Warn(err, "node", in.String())
	}
	child.Initialize(ts)
	in.child = child
	s.browser.SetModified()
}

func (in *Inline) OnShutdown(ts float64) {
	if in.child != nil {
		in.child.Shutdown(ts)
		in.child = nil
	}
}

func (in *Inline) HandleEvent(name string, v field.Value, ts float64) error {
	if name == "url" && in.Initialized() {
		slog.Info("vrml: reloading inline", "node", in.String(), "url", v.String())
		in.OnShutdown(ts)
		in.load(ts)
	}
	return nil
}

func (in *Inline) Render(v Viewer) {
	v.BeginObject(in.ID())
	renderChildren(in.ChildNodes(), v)
	v.EndObject()
}

// WorldInfo holds the title and other information about a world.
type WorldInfo struct {
	NodeBase
}

func worldInfoClass() *BuiltinClass {
	return newBuiltinClass("WorldInfo", func() Node { return &WorldInfo{} },
		fieldDecl(field.MFString, "info", ""),
		fieldDecl(field.SFString, "title", ""),
	)
}

// Title returns the title of the world.
func (w *WorldInfo) Title() string {
	return fieldOf[string](&w.NodeBase, "title")
}
