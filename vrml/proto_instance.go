// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"cogentcore.org/vrml/base/errors"
	"cogentcore.org/vrml/field"
)

// isTarget is an implementation interface an instance interface
// is mapped to.
type isTarget struct {
	node  Node
	iface string
	dir   Direction
}

// ProtoInstance is a node of a kind defined by a [ProtoDefinition].
// Its fields and events are forwarded to the interfaces of its own
// clone of the implementation that they are mapped to with IS, and
// unmapped ones are kept in its own field table. Implementation
// eventOuts mapped to its eventOuts are sent from the instance once
// per frame.
type ProtoInstance struct {
	NodeBase

	proto *ProtoDefinition
	impl  []Node
	is    map[string][]isTarget
}

// Proto returns the definition of the instance.
func (pi *ProtoInstance) Proto() *ProtoDefinition { return pi.proto }

// ImplementationNodes returns the root nodes of the instance's clone
// of the implementation.
func (pi *ProtoInstance) ImplementationNodes() []Node { return pi.impl }

// principal returns the first implementation node.
func (pi *ProtoInstance) principal() Node {
	if len(pi.impl) == 0 {
		return nil
	}
	return pi.impl[0]
}

func (pi *ProtoInstance) DoField(name string) field.Value {
	for _, t := range pi.is[name] {
		if t.dir.IsField() {
			return t.node.DoField(t.iface)
		}
	}
	return pi.NodeBase.DoField(name)
}

func (pi *ProtoInstance) DoSetField(name string, v field.Value) {
	pi.NodeBase.DoSetField(name, v)
	for _, t := range pi.is[name] {
		if t.dir.IsField() {
			t.node.DoSetField(t.iface, v)
		}
	}
}

func (pi *ProtoInstance) DoProcessEvent(i Interface, v field.Value, ts float64) error {
	var targets []isTarget
	for _, t := range pi.is[i.Name] {
		if t.dir.IsEventIn() {
			targets = append(targets, t)
		}
	}
	if len(targets) == 0 {
		return pi.NodeBase.DoProcessEvent(i, v, ts)
	}
	if i.Direction == ExposedField {
		pi.NodeBase.DoSetField(i.Name, v)
	}
	var errs []error
	for _, t := range targets {
		errs = append(errs, t.node.AsNode().ProcessEvent(t.iface, v, ts))
	}
	return errors.Join(errs...)
}

func (pi *ProtoInstance) OnInitialize(ts float64) {
	pi.Browser().AddProto(pi)
}

func (pi *ProtoInstance) OnShutdown(ts float64) {
	pi.Browser().RemoveProto(pi)
}

// flush sends the eventOuts set by the implementation.
func (pi *ProtoInstance) flush(ts float64) {
	if pi.HasChangedEventOuts() {
		pi.FlushEventOuts(ts)
	}
}

func (pi *ProtoInstance) Render(v Viewer) {
	renderNode(pi.principal(), v)
}
