// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field provides the typed values carried by scene graph
// node fields and events: booleans, colors, numbers, strings, times,
// vectors, rotations, images and node references, together with
// their multiple valued (array) counterparts.
//
// Every value knows its [Type], and supports cloning, assignment,
// equality and a text round trip through [Value.String] and [Parse].
package field

import (
	"cogentcore.org/vrml/base/errors"
	"cogentcore.org/vrml/math32"
)

// Node is the view of a scene graph node that node valued fields need.
type Node interface {

	// ID returns the identifier of the node in its scope,
	// which is empty for unnamed nodes.
	ID() string

	// TypeName returns the name of the type of the node.
	TypeName() string
}

// Resolver resolves node identifiers for USE references
// in node valued field text.
type Resolver interface {
	ResolveNode(id string) (Node, bool)
}

// Value is a field value. The set of implementations is closed:
// values are one of the [SF], [MF] and [Image] instantiations
// returned by [New].
type Value interface {

	// Type returns the type of the value.
	Type() Type

	// Clone returns a copy of the value. The copy is deep for data
	// and shallow for node references: a cloned node valued field
	// refers to the same nodes.
	Clone() Value

	// Assign sets the value to a copy of other. It returns a
	// [TypeMismatchError] if other is of a different type.
	Assign(other Value) error

	// Equal returns whether other has the same type and content.
	Equal(other Value) bool

	// String formats the value as scene file text.
	String() string

	// Parse sets the value from scene file text. Node valued fields
	// only accept NULL here; use [Parse] with a [Resolver] for USE.
	Parse(s string) error

	decode(s *scanner, r Resolver) error
}

// New returns the default value of the given type.
// It returns nil for an invalid type.
func New(t Type) Value {
	switch t {
	case SFBool:
		return &SF[bool]{}
	case SFColor:
		return &SF[math32.Color]{}
	case SFFloat:
		return &SF[float32]{}
	case SFImage:
		return &Image{}
	case SFInt32:
		return &SF[int32]{}
	case SFNode:
		return &SF[Node]{}
	case SFRotation:
		return &SF[math32.Rotation]{Value: math32.IdentityRotation}
	case SFString:
		return &SF[string]{}
	case SFTime:
		return &SF[float64]{}
	case SFVec2f:
		return &SF[math32.Vector2]{}
	case SFVec3f:
		return &SF[math32.Vector3]{}
	case MFColor:
		return &MF[math32.Color]{}
	case MFFloat:
		return &MF[float32]{}
	case MFInt32:
		return &MF[int32]{}
	case MFNode:
		return &MF[Node]{}
	case MFRotation:
		return &MF[math32.Rotation]{}
	case MFString:
		return &MF[string]{}
	case MFTime:
		return &MF[float64]{}
	case MFVec2f:
		return &MF[math32.Vector2]{}
	case MFVec3f:
		return &MF[math32.Vector3]{}
	}
	return nil
}

// Parse returns a new value of the given type parsed from s,
// resolving USE references with r, which may be nil.
func Parse(t Type, s string, r Resolver) (Value, error) {
	v := New(t)
	if v == nil {
		return nil, errors.Errorf("field: invalid type %v", t)
	}
	if err := parse(v, s, r); err != nil {
		return nil, err
	}
	return v, nil
}

// MustParse is like [Parse] but panics on an error.
// It is used for the built-in default values of node interfaces.
func MustParse(t Type, s string) Value {
	return errors.Must1(Parse(t, s, nil))
}

func parse(v Value, s string, r Resolver) error {
	sc := &scanner{src: s}
	if err := v.decode(sc, r); err != nil {
		return &ParseError{Type: v.Type(), Text: s, Err: err}
	}
	if !sc.atEnd() {
		return &ParseError{Type: v.Type(), Text: s, Err: errors.Errorf("unexpected trailing text %q", sc.src[sc.pos:])}
	}
	return nil
}

// Nodes returns the nodes referenced by a node valued field, skipping
// NULL entries. It returns nil for other types.
func Nodes(v Value) []Node {
	switch v := v.(type) {
	case *SF[Node]:
		if v.Value != nil {
			return []Node{v.Value}
		}
	case *MF[Node]:
		var ns []Node
		for _, n := range v.Values {
			if n != nil {
				ns = append(ns, n)
			}
		}
		return ns
	}
	return nil
}
