// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"slices"
	"strings"

	"golang.org/x/exp/maps"

	"cogentcore.org/vrml/base/errors"
	"cogentcore.org/vrml/field"
)

// NodeClass is the factory for one kind of node, either built in or
// defined by a PROTO. There is one NodeClass per kind per [Browser].
type NodeClass interface {

	// ID returns the identifier of the class, such as
	// urn:X-openvrml:node:Group.
	ID() string

	// Browser returns the browser the class belongs to.
	Browser() *Browser

	// CreateType returns a node type with the given id exposing the
	// requested interfaces, or all of the interfaces of the class if
	// requested is empty. It fails with an [UnsupportedInterfaceError]
	// if the class does not offer one of the requested interfaces.
	CreateType(id string, requested []Interface) (*NodeType, error)

	// Initialize is called once per load, after the scene is
	// initialized, with the viewpoint selected by the URL fragment.
	Initialize(initialViewpoint ViewpointNode, ts float64)

	// Render is called once per frame before the scene is rendered.
	Render(v Viewer)
}

// ClassURN returns the class id for the built-in node kind with the
// given name.
func ClassURN(name string) string {
	return "urn:X-openvrml:node:" + name
}

// BuiltinClass is the [NodeClass] of a built-in node kind.
type BuiltinClass struct {

	// Name is the name of the node kind, such as Transform.
	Name string

	// Interfaces are the interfaces the kind offers.
	Interfaces *InterfaceSet

	// Defaults are the default values of the fields and exposedFields.
	Defaults map[string]field.Value

	// New returns a new uninitialized node of the kind.
	New func() Node

	// OnInitialize, if set, is called by [BuiltinClass.Initialize].
	OnInitialize func(c *BuiltinClass, initialViewpoint ViewpointNode, ts float64)

	// OnRender, if set, is called by [BuiltinClass.Render].
	OnRender func(c *BuiltinClass, v Viewer)

	// AnyInterface allows types with interfaces the class does not
	// declare, as Script nodes do.
	AnyInterface bool

	browser *Browser
	types   map[string]*NodeType
}

func (c *BuiltinClass) ID() string { return ClassURN(c.Name) }

func (c *BuiltinClass) Browser() *Browser { return c.browser }

func (c *BuiltinClass) CreateType(id string, requested []Interface) (*NodeType, error) {
	key := typeKey(id, requested)
	if t, ok := c.types[key]; ok {
		return t, nil
	}
	ifaces := c.Interfaces
	if len(requested) > 0 {
		var err error
		ifaces, err = c.subset(id, requested)
		if err != nil {
			return nil, err
		}
	}
	t := newNodeType(c, id, ifaces, c.newNode)
	if c.types == nil {
		c.types = map[string]*NodeType{}
	}
	c.types[key] = t
	return t, nil
}

func (c *BuiltinClass) subset(id string, requested []Interface) (*InterfaceSet, error) {
	s := &InterfaceSet{}
	if c.AnyInterface {
		s = c.Interfaces.clone()
	}
	for _, r := range requested {
		if c.Interfaces.Contains(r) && s.Contains(r) {
			continue
		}
		if !c.AnyInterface && !c.Interfaces.Contains(r) {
			return nil, newUnsupportedInterface(id, r.Name, r.Direction.String(), c.Interfaces.Names())
		}
		if err := s.Add(r); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// typeKey identifies a requested interface subset.
func typeKey(id string, requested []Interface) string {
	var b strings.Builder
	b.WriteString(id)
	for _, r := range requested {
		b.WriteString("|")
		b.WriteString(r.String())
	}
	return b.String()
}

func (c *BuiltinClass) newNode(t *NodeType, scope *Scope) Node {
	n := c.New()
	n.AsNode().init(n, t, scope, c.Defaults)
	return n
}

func (c *BuiltinClass) Initialize(initialViewpoint ViewpointNode, ts float64) {
	if c.OnInitialize != nil {
		c.OnInitialize(c, initialViewpoint, ts)
	}
}

func (c *BuiltinClass) Render(v Viewer) {
	if c.OnRender != nil {
		c.OnRender(c, v)
	}
}

// ClassRegistry maps class ids to the node classes of a [Browser].
type ClassRegistry struct {
	classes map[string]NodeClass
}

// Register adds the class, failing if its id is already registered.
func (r *ClassRegistry) Register(c NodeClass) error {
	if r.classes == nil {
		r.classes = map[string]NodeClass{}
	}
	if _, ok := r.classes[c.ID()]; ok {
		return errors.Errorf("vrml: node class %q is already registered", c.ID())
	}
	r.classes[c.ID()] = c
	return nil
}

// Lookup returns the class with the given id. A bare built-in node
// name such as Group is also accepted.
func (r *ClassRegistry) Lookup(id string) (NodeClass, bool) {
	if c, ok := r.classes[id]; ok {
		return c, true
	}
	c, ok := r.classes[ClassURN(id)]
	return c, ok
}

// IDs returns the sorted class ids.
func (r *ClassRegistry) IDs() []string {
	ids := maps.Keys(r.classes)
	slices.Sort(ids)
	return ids
}

// Len returns the number of classes.
func (r *ClassRegistry) Len() int { return len(r.classes) }

// Clear removes all of the classes.
func (r *ClassRegistry) Clear() {
	clear(r.classes)
}

// Initialize initializes every class, in id order.
func (r *ClassRegistry) Initialize(initialViewpoint ViewpointNode, ts float64) {
	for _, id := range r.IDs() {
		r.classes[id].Initialize(initialViewpoint, ts)
	}
}

// Render renders every class, in id order.
func (r *ClassRegistry) Render(v Viewer) {
	for _, id := range r.IDs() {
		r.classes[id].Render(v)
	}
}
