// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"log/slog"

	"cogentcore.org/vrml/math32"
)

// Role interfaces are implemented by the node types that take part in
// browser level behavior. Use [As] or one of the To functions to query
// a node for a role: a PROTO instance answers with its principal
// (first) implementation node.

// LightNode is a light source.
type LightNode interface {
	Node
	Light() Light
	On() bool

	// Scoped returns whether the light illuminates the whole scene
	// rather than only its siblings.
	Scoped() bool
}

// ViewpointNode is a bindable camera position.
type ViewpointNode interface {
	Node
	Position() math32.Vector3
	Orientation() math32.Rotation
	FieldOfView() float32
	Description() string
}

// NavigationInfoNode is a bindable set of navigation parameters.
type NavigationInfoNode interface {
	Node
	AvatarSize() []float32
	Headlight() bool
	Speed() float32
	VisibilityLimit() float32
}

// BindableNode is a node kind with at most one active instance.
type BindableNode interface {
	Node
	IsBound() bool
}

// TimeDependentNode is updated by the browser once per frame.
type TimeDependentNode interface {
	Node
	UpdateTime(now float64)
}

// GroupingNode is a node with child nodes.
type GroupingNode interface {
	Node
	ChildNodes() []Node
}

// SensorNode is a node that generates events from the environment.
type SensorNode interface {
	Node
	IsActive() bool
}

// InlineNode is a node that loads a child scene.
type InlineNode interface {
	GroupingNode
	ChildScene() *Scene
}

// GeometryNode is a node that draws geometry.
type GeometryNode interface {
	Node
	InsertGeometry(v Viewer)
}

// MaterialNode is a node that provides a material.
type MaterialNode interface {
	Node
	Params() MaterialParams
}

// Renderer is a node that draws itself.
type Renderer interface {
	Render(v Viewer)
}

// As returns n as the role T, and whether n has that role.
// A PROTO instance is queried through its principal node.
func As[T any](n Node) (T, bool) {
	for n != nil {
		if t, ok := n.(T); ok {
			return t, true
		}
		p, ok := n.(*ProtoInstance)
		if !ok {
			break
		}
		n = p.principal()
	}
	var zv T
	return zv, false
}

// ToLight returns n as a [LightNode].
func ToLight(n Node) (LightNode, bool) { return As[LightNode](n) }

// ToViewpoint returns n as a [ViewpointNode].
func ToViewpoint(n Node) (ViewpointNode, bool) { return As[ViewpointNode](n) }

// ToNavigationInfo returns n as a [NavigationInfoNode].
func ToNavigationInfo(n Node) (NavigationInfoNode, bool) { return As[NavigationInfoNode](n) }

// ToBindable returns n as a [BindableNode].
func ToBindable(n Node) (BindableNode, bool) { return As[BindableNode](n) }

// ToTimeDependent returns n as a [TimeDependentNode].
func ToTimeDependent(n Node) (TimeDependentNode, bool) { return As[TimeDependentNode](n) }

// ToGrouping returns n as a [GroupingNode].
func ToGrouping(n Node) (GroupingNode, bool) { return As[GroupingNode](n) }

// ToSensor returns n as a [SensorNode].
func ToSensor(n Node) (SensorNode, bool) { return As[SensorNode](n) }

// ToInline returns n as an [InlineNode].
func ToInline(n Node) (InlineNode, bool) { return As[InlineNode](n) }

// ToScript returns n as a [Script].
func ToScript(n Node) (*Script, bool) { return As[*Script](n) }

// ToGeometry returns n as a [GeometryNode].
func ToGeometry(n Node) (GeometryNode, bool) { return As[GeometryNode](n) }

// ToMaterial returns n as a [MaterialNode].
func ToMaterial(n Node) (MaterialNode, bool) { return As[MaterialNode](n) }

// renderNode renders n if it draws itself. A node that contains
// itself is not rendered again inside itself; shared nodes are
// rendered once for each place they appear.
func renderNode(n Node, v Viewer) {
	if n == nil {
		return
	}
	r, ok := n.(Renderer)
	if !ok {
		return
	}
	nb := n.AsNode()
	if nb.rendering {
		slog.Debug("vrml: skipped node contained in itself", "node", nb.String())
		return
	}
	nb.rendering = true
	defer func() { nb.rendering = false }()
	r.Render(v)
}
