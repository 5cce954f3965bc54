// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"cogentcore.org/vrml/base/errors"
	"cogentcore.org/vrml/base/keylist"
	"cogentcore.org/vrml/field"
)

// Scope is a lexical namespace of node ids and type names. Each scene
// has a root scope, and each PROTO definition and instance has a
// scope nested in the scope it was created in.
type Scope struct {
	id     string
	parent *Scope
	nodes  keylist.List[string, Node]
	types  keylist.List[string, *NodeType]
}

// NewScope returns a new scope with the given id and parent,
// which may be nil.
func NewScope(id string, parent *Scope) *Scope {
	return &Scope{id: id, parent: parent}
}

// ID returns the id of the scope, typically a URI or PROTO name.
func (s *Scope) ID() string { return s.id }

// Parent returns the enclosing scope, or nil.
func (s *Scope) Parent() *Scope { return s.parent }

// AddNode registers n under id. A later definition of the same id
// replaces the earlier one.
func (s *Scope) AddNode(id string, n Node) {
	s.nodes.Set(id, n)
}

// FindNode returns the node registered under id in this scope.
// Enclosing scopes are not searched: node ids do not cross
// PROTO boundaries.
func (s *Scope) FindNode(id string) (Node, bool) {
	return s.nodes.AtTry(id)
}

// ResolveNode implements [field.Resolver].
func (s *Scope) ResolveNode(id string) (field.Node, bool) {
	return s.FindNode(id)
}

// Nodes returns the named nodes in definition order.
func (s *Scope) Nodes() []Node {
	return s.nodes.Values
}

// AddType registers a named type, such as a PROTO, in this scope.
// It fails if the name is already defined in this scope.
func (s *Scope) AddType(id string, t *NodeType) error {
	if err := s.types.Add(id, t); err != nil {
		return errors.Errorf("vrml: type %q is already defined in scope %q", id, s.id)
	}
	return nil
}

// FindType returns the type with the given name, searching this
// scope and then its enclosing scopes.
func (s *Scope) FindType(id string) (*NodeType, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if t, ok := sc.types.AtTry(id); ok {
			return t, true
		}
	}
	return nil, false
}
