// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"slices"
	"strings"

	"cogentcore.org/vrml/base/errors"
	"cogentcore.org/vrml/math32"
)

// SF is a single valued field of element type T. The valid element
// types are those of the single valued kinds: bool, [math32.Color],
// float32, int32, [Node], [math32.Rotation], string, float64 (time),
// [math32.Vector2] and [math32.Vector3].
type SF[T any] struct {
	Value T
}

// MF is a multiple valued field: an ordered list of elements of
// the same types as [SF].
type MF[T any] struct {
	Values []T
}

func typeOf(v Value) Type {
	if v == nil {
		return InvalidType
	}
	return v.Type()
}

// Type returns the single valued type for T.
func (f *SF[T]) Type() Type { return codecOf[T]().sf }

func (f *SF[T]) Clone() Value {
	return &SF[T]{Value: f.Value}
}

func (f *SF[T]) Assign(other Value) error {
	o, ok := other.(*SF[T])
	if !ok {
		return &TypeMismatchError{Want: f.Type(), Got: typeOf(other)}
	}
	f.Value = o.Value
	return nil
}

func (f *SF[T]) Equal(other Value) bool {
	o, ok := other.(*SF[T])
	return ok && codecOf[T]().equal(f.Value, o.Value)
}

func (f *SF[T]) String() string {
	return codecOf[T]().format(f.Value)
}

func (f *SF[T]) Parse(s string) error {
	return parseInto(f, s, nil)
}

func (f *SF[T]) decode(s *scanner, r Resolver) error {
	v, err := codecOf[T]().read(s, r)
	if err != nil {
		return err
	}
	f.Value = v
	return nil
}

// Type returns the multiple valued type for T.
func (f *MF[T]) Type() Type { return codecOf[T]().mf }

func (f *MF[T]) Clone() Value {
	return &MF[T]{Values: slices.Clone(f.Values)}
}

func (f *MF[T]) Assign(other Value) error {
	o, ok := other.(*MF[T])
	if !ok {
		return &TypeMismatchError{Want: f.Type(), Got: typeOf(other)}
	}
	f.Values = slices.Clone(o.Values)
	return nil
}

func (f *MF[T]) Equal(other Value) bool {
	o, ok := other.(*MF[T])
	return ok && slices.EqualFunc(f.Values, o.Values, codecOf[T]().equal)
}

func (f *MF[T]) String() string {
	if len(f.Values) == 0 {
		return "[]"
	}
	c := codecOf[T]()
	strs := make([]string, len(f.Values))
	for i, v := range f.Values {
		strs[i] = c.format(v)
	}
	return strings.Join(strs, " ")
}

func (f *MF[T]) Parse(s string) error {
	return parseInto(f, s, nil)
}

// decode reads a bracketed or bare list of elements.
func (f *MF[T]) decode(s *scanner, r Resolver) error {
	c := codecOf[T]()
	bracket := s.accept('[')
	var vals []T
	for {
		if bracket {
			if s.accept(']') {
				break
			}
			if s.atEnd() {
				return errors.New("missing ']'")
			}
		} else if s.atEnd() {
			break
		}
		v, err := c.read(s, r)
		if err != nil {
			return err
		}
		vals = append(vals, v)
	}
	f.Values = vals
	return nil
}

// parseInto parses s into a copy of v and assigns it to v only if
// the whole of s is valid.
func parseInto(v Value, s string, r Resolver) error {
	tmp := v.Clone()
	if err := parse(tmp, s, r); err != nil {
		return err
	}
	return v.Assign(tmp)
}

// Get returns the content of v if it is an [SF] of T,
// and the zero value otherwise.
func Get[T any](v Value) T {
	if f, ok := v.(*SF[T]); ok {
		return f.Value
	}
	var zv T
	return zv
}

// GetAll returns the elements of v if it is an [MF] of T,
// and nil otherwise.
func GetAll[T any](v Value) []T {
	if f, ok := v.(*MF[T]); ok {
		return f.Values
	}
	return nil
}

// NewBool returns a new SFBool value.
func NewBool(b bool) Value { return &SF[bool]{Value: b} }

// NewFloat returns a new SFFloat value.
func NewFloat(f float32) Value { return &SF[float32]{Value: f} }

// NewInt32 returns a new SFInt32 value.
func NewInt32(i int32) Value { return &SF[int32]{Value: i} }

// NewTime returns a new SFTime value.
func NewTime(t float64) Value { return &SF[float64]{Value: t} }

// NewString returns a new SFString value.
func NewString(s string) Value { return &SF[string]{Value: s} }

// NewColor returns a new SFColor value.
func NewColor(c math32.Color) Value { return &SF[math32.Color]{Value: c} }

// NewRotation returns a new SFRotation value.
func NewRotation(r math32.Rotation) Value { return &SF[math32.Rotation]{Value: r} }

// NewVec2f returns a new SFVec2f value.
func NewVec2f(v math32.Vector2) Value { return &SF[math32.Vector2]{Value: v} }

// NewVec3f returns a new SFVec3f value.
func NewVec3f(v math32.Vector3) Value { return &SF[math32.Vector3]{Value: v} }

// NewNode returns a new SFNode value referring to n, which may be nil.
func NewNode(n Node) Value { return &SF[Node]{Value: n} }

// NewNodes returns a new MFNode value referring to ns.
func NewNodes(ns ...Node) Value { return &MF[Node]{Values: ns} }

// NewStrings returns a new MFString value.
func NewStrings(ss ...string) Value { return &MF[string]{Values: ss} }
