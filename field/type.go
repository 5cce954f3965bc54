// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import "strings"

// Type is the kind of a field value.
type Type int32

// The field value kinds. Each single valued kind (SF) other than
// SFImage has a multiple valued (MF) counterpart.
const (
	InvalidType Type = iota
	SFBool
	SFColor
	SFFloat
	SFImage
	SFInt32
	SFNode
	SFRotation
	SFString
	SFTime
	SFVec2f
	SFVec3f
	MFColor
	MFFloat
	MFInt32
	MFNode
	MFRotation
	MFString
	MFTime
	MFVec2f
	MFVec3f

	typesN
)

var typeNames = [...]string{
	"<invalid field type>",
	"SFBool", "SFColor", "SFFloat", "SFImage", "SFInt32", "SFNode",
	"SFRotation", "SFString", "SFTime", "SFVec2f", "SFVec3f",
	"MFColor", "MFFloat", "MFInt32", "MFNode", "MFRotation",
	"MFString", "MFTime", "MFVec2f", "MFVec3f",
}

// String returns the name of the type as written in scene files.
func (t Type) String() string {
	if t < 0 || t >= typesN {
		return typeNames[InvalidType]
	}
	return typeNames[t]
}

// TypeFromString returns the type with the given name, and
// [InvalidType] if there is none.
func TypeFromString(s string) Type {
	for t := SFBool; t < typesN; t++ {
		if typeNames[t] == s {
			return t
		}
	}
	return InvalidType
}

// Types returns all of the valid field types.
func Types() []Type {
	ts := make([]Type, 0, typesN-1)
	for t := SFBool; t < typesN; t++ {
		ts = append(ts, t)
	}
	return ts
}

// IsValid returns whether the type is a valid field type.
func (t Type) IsValid() bool {
	return t > InvalidType && t < typesN
}

// IsMulti returns whether the type is a multiple valued (MF) type.
func (t Type) IsMulti() bool {
	return t >= MFColor && t < typesN
}

// IsNode returns whether values of the type hold node references.
func (t Type) IsNode() bool {
	return t == SFNode || t == MFNode
}

// Scalar returns the single valued counterpart of a multiple valued
// type, and the type itself otherwise.
func (t Type) Scalar() Type {
	if !t.IsMulti() {
		return t
	}
	return TypeFromString("SF" + strings.TrimPrefix(t.String(), "MF"))
}

// Multi returns the multiple valued counterpart of a single valued
// type, and [InvalidType] if there is none.
func (t Type) Multi() Type {
	if t.IsMulti() {
		return t
	}
	if !t.IsValid() {
		return InvalidType
	}
	return TypeFromString("MF" + strings.TrimPrefix(t.String(), "SF"))
}
