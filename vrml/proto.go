// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"cogentcore.org/vrml/base/errors"
	"cogentcore.org/vrml/field"
)

// isMapping connects an interface of a PROTO to an interface of
// one of its implementation nodes.
type isMapping struct {
	proto Interface
	node  Node

	// iface is the canonical name of the implementation interface,
	// and dir the direction it was mapped with: an exposedField named
	// with set_ or _changed maps as an eventIn or eventOut.
	iface string
	dir   Direction
}

// ProtoBuilder builds a [ProtoDefinition]. Interfaces, implementation
// nodes, IS mappings and routes are all validated as they are added,
// and the definition is immutable once built.
type ProtoBuilder struct {
	browser    *Browser
	id         string
	scope      *Scope
	interfaces InterfaceSet
	defaults   map[string]field.Value
	impl       []Node
	is         []isMapping
}

// NewProtoBuilder returns a builder for a PROTO with the given name,
// defined in the given scope, which may be nil.
func (b *Browser) NewProtoBuilder(id string, outer *Scope) *ProtoBuilder {
	return &ProtoBuilder{browser: b, id: id, scope: NewScope(id, outer), defaults: map[string]field.Value{}}
}

// Scope returns the scope the implementation nodes must be created in.
func (pb *ProtoBuilder) Scope() *Scope { return pb.scope }

// AddInterface adds an interface to the PROTO. Fields and
// exposedFields take a default value, which may be nil for the
// default of their type.
func (pb *ProtoBuilder) AddInterface(i Interface, def field.Value) error {
	if i.Direction.IsField() {
		if def == nil {
			def = field.New(i.Type)
		}
		if err := checkType(i, def); err != nil {
			return err
		}
	}
	if err := pb.interfaces.Add(i); err != nil {
		return err
	}
	if i.Direction.IsField() {
		pb.defaults[i.Name] = def.Clone()
	}
	return nil
}

// AddImplNode adds a root node of the implementation. The first one
// is the principal node, which determines what kind of node the PROTO
// is and is the only one rendered.
func (pb *ProtoBuilder) AddImplNode(n Node) {
	pb.impl = append(pb.impl, n)
}

// IS maps the PROTO interface protoIface to the interface implIface
// of the implementation node n. An interface may be mapped to any
// number of implementation interfaces.
//
// It fails with an [UnsupportedInterfaceError] if either interface
// does not exist, a [FieldValueTypeMismatchError] if their types
// differ, and an [InterfaceTypeMismatchError] if their directions are
// incompatible: only an implementation exposedField may be mapped from
// an interface with another direction.
func (pb *ProtoBuilder) IS(protoIface string, n Node, implIface string) error {
	pi, ok := pb.interfaces.Find(protoIface)
	if !ok {
		return newUnsupportedInterface(pb.id, protoIface, "interface", pb.interfaces.Names())
	}
	t := n.AsNode().typ
	ii, dir, ok := resolveInterface(t.interfaces, implIface)
	if !ok {
		return t.unsupported(implIface, "interface")
	}
	if pi.Type != ii.Type {
		return &FieldValueTypeMismatchError{Interface: protoIface + " IS " + implIface, Want: ii.Type, Got: pi.Type}
	}
	if dir != ExposedField && dir != pi.Direction {
		return &InterfaceTypeMismatchError{From: pi, To: Interface{dir, ii.Type, implIface}}
	}
	pb.is = append(pb.is, isMapping{proto: pi, node: n, iface: ii.Name, dir: dir})
	return nil
}

// resolveInterface returns the interface named name, and the direction
// the name refers to.
func resolveInterface(s *InterfaceSet, name string) (Interface, Direction, bool) {
	if i, ok := s.Find(name); ok {
		return i, i.Direction, true
	}
	if i, ok := s.FindEventIn(name); ok {
		return i, EventIn, true
	}
	if i, ok := s.FindEventOut(name); ok {
		return i, EventOut, true
	}
	return Interface{}, 0, false
}

// AddRoute adds a route between two implementation nodes.
// Every instance gets its own copy of the route.
func (pb *ProtoBuilder) AddRoute(from Node, eventOut string, to Node, eventIn string) error {
	return AddRoute(from, eventOut, to, eventIn)
}

// Build returns the PROTO definition and registers it with the
// browser. It fails if there are no implementation nodes or if a
// mapped node is not part of the implementation.
func (pb *ProtoBuilder) Build() (*ProtoDefinition, error) {
	if len(pb.impl) == 0 {
		return nil, errors.Errorf("vrml: PROTO %q has no implementation nodes", pb.id)
	}
	reachable := map[Node]bool{}
	Walk(pb.impl, func(n Node) bool {
		reachable[n] = true
		return Continue
	})
	for _, m := range pb.is {
		if !reachable[m.node] {
			return nil, errors.Errorf("vrml: PROTO %q maps %s to %v, which is not part of its implementation", pb.id, m.proto.Name, m.node)
		}
	}
	p := &ProtoDefinition{
		browser:    pb.browser,
		id:         pb.id,
		scope:      pb.scope,
		interfaces: pb.interfaces.clone(),
		defaults:   pb.defaults,
		impl:       pb.impl,
		is:         pb.is,
	}
	if pb.browser != nil {
		errors.Log(pb.browser.classes.Register(p))
	}
	return p, nil
}

// ProtoDefinition is a PROTO: a node kind defined by an interface and
// an implementation subgraph. It is the [NodeClass] of its instances.
// The implementation nodes are an archetype that is never initialized
// or rendered; each instance gets its own clone.
type ProtoDefinition struct {
	browser    *Browser
	id         string
	scope      *Scope
	interfaces *InterfaceSet
	defaults   map[string]field.Value
	impl       []Node
	is         []isMapping
	types      map[string]*NodeType
}

// ID returns the class id of the PROTO: its scope id and name.
func (p *ProtoDefinition) ID() string {
	if outer := p.scope.Parent(); outer != nil && outer.ID() != "" {
		return outer.ID() + "#" + p.id
	}
	return p.id
}

// Name returns the name of the PROTO.
func (p *ProtoDefinition) Name() string { return p.id }

func (p *ProtoDefinition) Browser() *Browser { return p.browser }

// Interfaces returns the interfaces of the PROTO.
func (p *ProtoDefinition) Interfaces() []Interface { return p.interfaces.Interfaces() }

// Default returns the default value of a field or exposedField.
func (p *ProtoDefinition) Default(name string) (field.Value, bool) {
	v, ok := p.defaults[name]
	return v, ok
}

// ImplementationNodes returns the archetype implementation nodes.
func (p *ProtoDefinition) ImplementationNodes() []Node { return p.impl }

func (p *ProtoDefinition) CreateType(id string, requested []Interface) (*NodeType, error) {
	key := typeKey(id, requested)
	if t, ok := p.types[key]; ok {
		return t, nil
	}
	ifaces := p.interfaces
	if len(requested) > 0 {
		ifaces = &InterfaceSet{}
		for _, r := range requested {
			if !p.interfaces.Contains(r) {
				return nil, newUnsupportedInterface(id, r.Name, r.Direction.String(), p.interfaces.Names())
			}
			if err := ifaces.Add(r); err != nil {
				return nil, err
			}
		}
	}
	t := newNodeType(p, id, ifaces, p.newInstance)
	if p.types == nil {
		p.types = map[string]*NodeType{}
	}
	p.types[key] = t
	return t, nil
}

// Type returns the node type with all of the PROTO's interfaces.
func (p *ProtoDefinition) Type() *NodeType {
	return errors.Must1(p.CreateType(p.id, nil))
}

// CreateNode returns a new instance in the given scope, with the
// initial values overriding the PROTO defaults.
func (p *ProtoDefinition) CreateNode(scope *Scope, initial map[string]field.Value) (Node, error) {
	return p.Type().CreateNode(scope, initial)
}

func (p *ProtoDefinition) Initialize(initialViewpoint ViewpointNode, ts float64) {}

func (p *ProtoDefinition) Render(v Viewer) {}

// newInstance creates an instance with its own clone of the
// implementation, in three passes: the node graph, then the routes
// between the cloned nodes, then the IS mappings.
func (p *ProtoDefinition) newInstance(t *NodeType, scope *Scope) Node {
	inst := &ProtoInstance{proto: p, is: map[string][]isTarget{}}
	inst.init(inst, t, scope, nil)

	c := &cloner{scope: NewScope(p.id, scope), visited: map[Node]Node{}}
	for _, n := range p.impl {
		inst.impl = append(inst.impl, c.clone(n))
	}
	c.copyRoutes()

	for _, i := range t.Interfaces() {
		if i.Direction.IsField() {
			inst.NodeBase.DoSetField(i.Name, c.cloneValue(p.defaults[i.Name]))
		}
	}
	for _, m := range p.is {
		if !t.HasInterface(m.proto) {
			continue
		}
		target := isTarget{node: c.visited[m.node], iface: m.iface, dir: m.dir}
		inst.is[m.proto.Name] = append(inst.is[m.proto.Name], target)
		if m.proto.Direction.IsField() && target.dir.IsField() {
			target.node.DoSetField(target.iface, inst.NodeBase.DoField(m.proto.Name))
		}
		if m.proto.Direction.IsEventOut() && target.dir.IsEventOut() {
			name := m.proto.Name
			errors.Log(target.node.AsNode().OnEventOut(target.iface, func(v field.Value, ts float64) {
				errors.Log(inst.SetEventOut(name, v))
			}))
		}
	}
	return inst
}

// cloner clones a node graph, visiting each source node once so that
// shared references and cycles are reproduced in the clone.
type cloner struct {
	scope   *Scope
	visited map[Node]Node

	// order is the source nodes in the order they were cloned.
	order []Node
}

func (c *cloner) clone(n Node) Node {
	if n == nil {
		return nil
	}
	if cp, ok := c.visited[n]; ok {
		return cp
	}
	nb := n.AsNode()
	cp := nb.typ.create(nb.typ, c.scope)
	c.visited[n] = cp
	c.order = append(c.order, n)
	if nb.id != "" {
		cp.AsNode().SetID(nb.id)
	}
	for _, i := range nb.typ.Interfaces() {
		if i.Direction.IsField() {
			cp.DoSetField(i.Name, c.cloneValue(n.DoField(i.Name)))
		}
	}
	return cp
}

func (c *cloner) cloneNode(n field.Node) field.Node {
	vn, ok := n.(Node)
	if !ok {
		return nil
	}
	return c.clone(vn)
}

// cloneValue clones a field value, cloning the nodes it refers to.
func (c *cloner) cloneValue(v field.Value) field.Value {
	switch v := v.(type) {
	case *field.SF[field.Node]:
		return field.NewNode(c.cloneNode(v.Value))
	case *field.MF[field.Node]:
		ns := make([]field.Node, len(v.Values))
		for i, n := range v.Values {
			ns[i] = c.cloneNode(n)
		}
		return field.NewNodes(ns...)
	}
	return v.Clone()
}

// copyRoutes adds a copy of every route between cloned nodes.
func (c *cloner) copyRoutes() {
	for _, src := range c.order {
		cp := c.visited[src]
		for _, r := range src.AsNode().routes {
			to, ok := c.visited[r.To()]
			if !ok {
				continue
			}
			errors.Log(AddRoute(cp, r.EventOut, to, r.EventIn))
		}
	}
}
