// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vrml provides a declarative scene graph runtime: typed node
// fields and events, routes between nodes, a bounded event queue
// driven once per frame by a [Browser], bindable node stacks, and
// PROTO templates that are cloned per instance.
package vrml

import (
	"log/slog"
	"slices"

	"cogentcore.org/vrml/base/errors"
	"cogentcore.org/vrml/field"
)

// Node is the interface that all scene graph nodes satisfy. The core
// functionality is defined on [NodeBase], which all node types must
// embed. This interface only contains the functionality that
// higher-level node types may need to override.
type Node interface {
	field.Node

	// AsNode returns the [NodeBase] of this Node.
	AsNode() *NodeBase

	// DoField returns the value of the field or exposedField with the
	// given canonical name. The default implementation reads the
	// node's own field table.
	DoField(name string) field.Value

	// DoSetField sets the field or exposedField with the given
	// canonical name to a value of the correct type.
	DoSetField(name string, v field.Value)

	// DoProcessEvent delivers a value of the correct type to the
	// eventIn side of the given interface.
	DoProcessEvent(i Interface, v field.Value, ts float64) error

	// OnInitialize is called when the node's scene is initialized.
	// It is where nodes register with the browser's interest lists.
	OnInitialize(ts float64)

	// OnShutdown is called when the node's scene is shut down.
	// It must undo everything OnInitialize did.
	OnShutdown(ts float64)
}

// EventHandler is implemented by nodes that react to events.
// HandleEvent is called by the default [Node.DoProcessEvent] after
// the value of an exposedField has been stored and before
// [NodeBase.ProcessEvent] returns.
type EventHandler interface {
	HandleEvent(name string, v field.Value, ts float64) error
}

// Walk callback return values.
const (
	// Continue continues the walk into the children of the node.
	Continue = true

	// Break does not descend into the children of the node.
	Break = false
)

// nodeRef is held strongly by its node only, so that weak
// pointers to it expire with the node.
type nodeRef struct {
	node Node
}

// eventOutState is the cached state of one eventOut.
type eventOutState struct {
	value field.Value

	// changed is set by SetEventOut until the value is flushed.
	changed bool

	// sent is the timestamp of the last emission, for loop breaking.
	sent    float64
	hasSent bool

	listeners []func(v field.Value, ts float64)
}

// NodeBase implements the core functionality of [Node].
// It must be embedded in all node types, and nodes must be created
// with [NodeType.CreateNode] so that it is initialized.
type NodeBase struct {

	// This is the value of this Node as its true underlying type.
	// It allows methods defined on NodeBase to call methods defined
	// on higher-level types.
	This Node

	id    string
	typ   *NodeType
	scope *Scope
	scene *Scene
	ref   *nodeRef

	fields    map[string]field.Value
	eventOuts map[string]*eventOutState
	routes    []*Route

	initialized bool

	// rendering is set while the node renders.
	rendering bool
}

func (nb *NodeBase) init(this Node, t *NodeType, scope *Scope, defaults map[string]field.Value) {
	nb.This = this
	nb.typ = t
	nb.scope = scope
	nb.ref = &nodeRef{node: this}
	nb.fields = map[string]field.Value{}
	nb.eventOuts = map[string]*eventOutState{}
	for _, i := range t.Interfaces() {
		var v field.Value
		if d, ok := defaults[i.Name]; ok && d.Type() == i.Type {
			v = d.Clone()
		} else {
			v = field.New(i.Type)
		}
		if i.Direction.IsField() {
			nb.fields[i.Name] = v
		}
		if i.Direction.IsEventOut() {
			nb.eventOuts[i.Name] = &eventOutState{value: v.Clone()}
		}
	}
}

// AsNode returns the NodeBase of the node.
func (nb *NodeBase) AsNode() *NodeBase { return nb }

// ID returns the identifier (DEF name) of the node, which may be empty.
func (nb *NodeBase) ID() string { return nb.id }

// SetID sets the identifier of the node and registers it in the
// node's scope under that name.
func (nb *NodeBase) SetID(id string) {
	nb.id = id
	if nb.scope != nil && id != "" {
		nb.scope.AddNode(id, nb.This)
	}
}

// Type returns the node type.
func (nb *NodeBase) Type() *NodeType { return nb.typ }

// TypeName returns the id of the node type.
func (nb *NodeBase) TypeName() string {
	if nb.typ == nil {
		return ""
	}
	return nb.typ.ID()
}

// Scope returns the scope the node was created in.
func (nb *NodeBase) Scope() *Scope { return nb.scope }

// Scene returns the scene the node belongs to. It is nil until the
// scene is initialized and after it is shut down.
func (nb *NodeBase) Scene() *Scene { return nb.scene }

// Browser returns the browser of the node's scene, or nil.
func (nb *NodeBase) Browser() *Browser {
	if nb.scene == nil {
		return nil
	}
	return nb.scene.browser
}

// Initialized returns whether the node has been initialized.
func (nb *NodeBase) Initialized() bool { return nb.initialized }

// String returns the type name and id of the node.
func (nb *NodeBase) String() string {
	if nb.id == "" {
		return nb.TypeName()
	}
	return nb.TypeName() + " " + nb.id
}

////////  Fields

// Field returns the value of the field or exposedField with the given
// name. The returned value must not be modified; use [NodeBase.SetField].
func (nb *NodeBase) Field(name string) (field.Value, error) {
	i, err := nb.typ.findField(name)
	if err != nil {
		return nil, err
	}
	return nb.This.DoField(i.Name), nil
}

// SetField sets the field or exposedField with the given name to a
// copy of v. It does not send any events.
func (nb *NodeBase) SetField(name string, v field.Value) error {
	i, err := nb.typ.findField(name)
	if err != nil {
		return err
	}
	if err := checkType(i, v); err != nil {
		return err
	}
	nb.This.DoSetField(i.Name, v)
	return nil
}

func (nb *NodeBase) DoField(name string) field.Value {
	return nb.fields[name]
}

func (nb *NodeBase) DoSetField(name string, v field.Value) {
	errors.Log(nb.fields[name].Assign(v))
}

func checkType(i Interface, v field.Value) error {
	if v == nil || v.Type() != i.Type {
		got := field.InvalidType
		if v != nil {
			got = v.Type()
		}
		return &FieldValueTypeMismatchError{Interface: i.Name, Want: i.Type, Got: got}
	}
	return nil
}

// fieldValue returns the value of the field with the given canonical
// name, without the interface lookup of [NodeBase.Field].
func (nb *NodeBase) fieldValue(name string) field.Value {
	return nb.This.DoField(name)
}

// Fields returns the current values of all of the fields and
// exposedFields, keyed by name.
func (nb *NodeBase) Fields() map[string]field.Value {
	fs := map[string]field.Value{}
	for _, i := range nb.typ.Interfaces() {
		if i.Direction.IsField() {
			fs[i.Name] = nb.This.DoField(i.Name)
		}
	}
	return fs
}

////////  Events

// ProcessEvent delivers v to the eventIn with the given name, which
// may be the set_ form or plain name of an exposedField. Any reaction
// of the node runs before ProcessEvent returns.
func (nb *NodeBase) ProcessEvent(name string, v field.Value, ts float64) error {
	i, err := nb.typ.findEventIn(name)
	if err != nil {
		return err
	}
	if err := checkType(i, v); err != nil {
		return err
	}
	return nb.This.DoProcessEvent(i, v, ts)
}

// DoProcessEvent stores the value of an exposedField and sends it
// as <name>_changed, and calls [EventHandler.HandleEvent] if the node
// implements it.
func (nb *NodeBase) DoProcessEvent(i Interface, v field.Value, ts float64) error {
	if i.Direction == ExposedField {
		nb.This.DoSetField(i.Name, v)
	}
	if h, ok := nb.This.(EventHandler); ok {
		if err := h.HandleEvent(i.Name, v, ts); err != nil {
			return err
		}
	}
	if i.Direction == ExposedField {
		nb.emit(i.Name, nb.This.DoField(i.Name), ts)
	}
	return nil
}

// EventOut returns the last value sent by the eventOut with the given
// name, which may be the _changed form or plain name of an exposedField.
func (nb *NodeBase) EventOut(name string) (field.Value, error) {
	i, err := nb.typ.findEventOut(name)
	if err != nil {
		return nil, err
	}
	return nb.eventOuts[i.Name].value, nil
}

// EmitEvent sets the eventOut with the given name to v and sends v
// along every route from it. An eventOut sends at most one event per
// timestamp; later emissions with the same timestamp are dropped,
// which breaks routing loops.
func (nb *NodeBase) EmitEvent(name string, v field.Value, ts float64) error {
	i, err := nb.typ.findEventOut(name)
	if err != nil {
		return err
	}
	if err := checkType(i, v); err != nil {
		return err
	}
	nb.emit(i.Name, v, ts)
	return nil
}

func (nb *NodeBase) emit(name string, v field.Value, ts float64) {
	eo := nb.eventOuts[name]
	if eo.hasSent && eo.sent == ts {
		slog.Debug("vrml: dropped event in routing loop", "node", nb.String(), "eventOut", name, "time", ts)
		return
	}
	eo.sent, eo.hasSent = ts, true
	eo.changed = false
	errors.Log(eo.value.Assign(v))
	for _, l := range eo.listeners {
		l(eo.value, ts)
	}
	b := nb.Browser()
	for _, r := range nb.routes {
		if r.EventOut != name {
			continue
		}
		to := r.To()
		if to == nil || b == nil {
			continue
		}
		b.QueueEvent(Event{Timestamp: ts, Value: eo.value.Clone(), To: to, EventIn: r.EventIn})
	}
}

// SetEventOut sets the value of the eventOut with the given name
// without sending it, and marks it changed. Changed eventOuts are
// sent by [NodeBase.FlushEventOuts], which the browser calls once per
// frame for scripts and PROTO instances.
func (nb *NodeBase) SetEventOut(name string, v field.Value) error {
	i, err := nb.typ.findEventOut(name)
	if err != nil {
		return err
	}
	if err := checkType(i, v); err != nil {
		return err
	}
	eo := nb.eventOuts[i.Name]
	errors.Log(eo.value.Assign(v))
	eo.changed = true
	return nil
}

// HasChangedEventOuts returns whether any eventOut has been set by
// [NodeBase.SetEventOut] since the last flush.
func (nb *NodeBase) HasChangedEventOuts() bool {
	for _, eo := range nb.eventOuts {
		if eo.changed {
			return true
		}
	}
	return false
}

// FlushEventOuts sends every changed eventOut, in interface order,
// and clears the changed flags.
func (nb *NodeBase) FlushEventOuts(ts float64) {
	for _, i := range nb.typ.Interfaces() {
		if eo, ok := nb.eventOuts[i.Name]; ok && eo.changed {
			eo.changed = false
			nb.emit(i.Name, eo.value, ts)
		}
	}
}

// OnEventOut adds a function called with every value sent by the
// eventOut with the given name.
func (nb *NodeBase) OnEventOut(name string, fun func(v field.Value, ts float64)) error {
	i, err := nb.typ.findEventOut(name)
	if err != nil {
		return err
	}
	eo := nb.eventOuts[i.Name]
	eo.listeners = append(eo.listeners, fun)
	return nil
}

// Routes returns the routes whose source is this node.
func (nb *NodeBase) Routes() []*Route {
	return slices.Clone(nb.routes)
}

////////  Lifecycle

func (nb *NodeBase) OnInitialize(ts float64) {}

func (nb *NodeBase) OnShutdown(ts float64) {}

// initialize moves the node into the scene, and initializes it if it
// has not been initialized yet.
func (nb *NodeBase) initialize(s *Scene, ts float64) {
	nb.scene = s
	if nb.initialized {
		return
	}
	nb.initialized = true
	nb.This.OnInitialize(ts)
}

func (nb *NodeBase) shutdown(ts float64) {
	if !nb.initialized {
		return
	}
	nb.This.OnShutdown(ts)
	nb.initialized = false
	nb.scene = nil
}

////////  Typed field access for node implementations

func fieldOf[T any](nb *NodeBase, name string) T {
	return field.Get[T](nb.fieldValue(name))
}

func fieldsOf[T any](nb *NodeBase, name string) []T {
	return field.GetAll[T](nb.fieldValue(name))
}

// sendEvent is EmitEvent for interfaces the node type is known to have.
func (nb *NodeBase) sendEvent(name string, v field.Value, ts float64) {
	if _, ok := nb.eventOuts[name]; !ok {
		return
	}
	nb.emit(name, v, ts)
}
