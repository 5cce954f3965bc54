// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"slices"
	"weak"
)

// Route connects an eventOut of one node to an eventIn of another.
// Routes are stored on their source node. The destination is held
// weakly: a route does not keep its destination alive.
type Route struct {

	// From is the source node.
	From Node

	// EventOut is the canonical name of the source eventOut.
	EventOut string

	// EventIn is the canonical name of the destination eventIn.
	EventIn string

	to weak.Pointer[nodeRef]
}

// To returns the destination node, or nil if it no longer exists.
func (r *Route) To() Node {
	ref := r.to.Value()
	if ref == nil {
		return nil
	}
	return ref.node
}

func (r *Route) String() string {
	to := "<deleted>"
	if n := r.To(); n != nil {
		to = n.AsNode().String()
	}
	return r.From.AsNode().String() + "." + r.EventOut + " TO " + to + "." + r.EventIn
}

// AddRoute adds a route from the eventOut of from to the eventIn of to.
// It fails with an [UnsupportedInterfaceError] if either interface does
// not exist and a [FieldValueTypeMismatchError] if their types differ.
// Adding a route that already exists does nothing.
func AddRoute(from Node, eventOut string, to Node, eventIn string) error {
	out, err := from.AsNode().typ.findEventOut(eventOut)
	if err != nil {
		return err
	}
	in, err := to.AsNode().typ.findEventIn(eventIn)
	if err != nil {
		return err
	}
	if out.Type != in.Type {
		return &FieldValueTypeMismatchError{Interface: eventOut + " TO " + eventIn, Want: in.Type, Got: out.Type}
	}
	fb := from.AsNode()
	if fb.findRoute(out.Name, to, in.Name) >= 0 {
		return nil
	}
	fb.routes = append(fb.routes, &Route{From: from, EventOut: out.Name, EventIn: in.Name, to: weak.Make(to.AsNode().ref)})
	return nil
}

// DeleteRoute removes the route from the eventOut of from to the
// eventIn of to, returning whether it existed.
func DeleteRoute(from Node, eventOut string, to Node, eventIn string) bool {
	fb := from.AsNode()
	out, err := fb.typ.findEventOut(eventOut)
	if err != nil {
		return false
	}
	in, err := to.AsNode().typ.findEventIn(eventIn)
	if err != nil {
		return false
	}
	idx := fb.findRoute(out.Name, to, in.Name)
	if idx < 0 {
		return false
	}
	fb.routes = slices.Delete(fb.routes, idx, idx+1)
	return true
}

func (nb *NodeBase) findRoute(eventOut string, to Node, eventIn string) int {
	return slices.IndexFunc(nb.routes, func(r *Route) bool {
		return r.EventOut == eventOut && r.EventIn == eventIn && r.To() == to
	})
}
