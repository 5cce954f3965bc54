// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"cogentcore.org/vrml/field"
)

// NodeType is the shape of a kind of node: its id and interfaces.
// A NodeType is created by [NodeClass.CreateType] and is immutable;
// every node created from it shares it.
type NodeType struct {
	class      NodeClass
	id         string
	interfaces *InterfaceSet
	create     func(t *NodeType, scope *Scope) Node
}

func newNodeType(class NodeClass, id string, ifaces *InterfaceSet, create func(t *NodeType, scope *Scope) Node) *NodeType {
	return &NodeType{class: class, id: id, interfaces: ifaces.clone(), create: create}
}

// Class returns the class the type belongs to.
func (t *NodeType) Class() NodeClass { return t.class }

// ID returns the type name.
func (t *NodeType) ID() string { return t.id }

// Interfaces returns the interfaces of the type.
func (t *NodeType) Interfaces() []Interface { return t.interfaces.Interfaces() }

// Interface returns the interface with exactly the given name.
func (t *NodeType) Interface(name string) (Interface, bool) {
	return t.interfaces.Find(name)
}

// HasInterface returns whether the type has the given interface.
func (t *NodeType) HasInterface(i Interface) bool {
	return t.interfaces.Contains(i)
}

// CreateNode returns a new node of this type in the given scope.
// Fields not in initial get their default values. The node is not
// initialized until its scene is.
func (t *NodeType) CreateNode(scope *Scope, initial map[string]field.Value) (Node, error) {
	n := t.create(t, scope)
	nb := n.AsNode()
	for name, v := range initial {
		if err := nb.SetField(name, v); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (t *NodeType) unsupported(name, kind string) error {
	return newUnsupportedInterface(t.id, name, kind, t.interfaces.Names())
}

func (t *NodeType) findField(name string) (Interface, error) {
	if i, ok := t.interfaces.FindField(name); ok {
		return i, nil
	}
	return Interface{}, t.unsupported(name, "field")
}

func (t *NodeType) findEventIn(name string) (Interface, error) {
	if i, ok := t.interfaces.FindEventIn(name); ok {
		return i, nil
	}
	return Interface{}, t.unsupported(name, "eventIn")
}

func (t *NodeType) findEventOut(name string) (Interface, error) {
	if i, ok := t.interfaces.FindEventOut(name); ok {
		return i, nil
	}
	return Interface{}, t.unsupported(name, "eventOut")
}
