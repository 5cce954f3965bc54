// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"strconv"
	"strings"

	"cogentcore.org/vrml/base/errors"
	"cogentcore.org/vrml/math32"
)

// codec holds the per element type behavior of [SF] and [MF].
type codec[T any] struct {
	sf, mf Type
	read   func(s *scanner, r Resolver) (T, error)
	format func(v T) string
	equal  func(a, b T) bool
}

func eq[T comparable](a, b T) bool { return a == b }

func codecOf[T any]() *codec[T] {
	var c any
	switch any((*T)(nil)).(type) {
	case *bool:
		c = boolCodec
	case *math32.Color:
		c = colorCodec
	case *float32:
		c = floatCodec
	case *int32:
		c = int32Codec
	case *Node:
		c = nodeCodec
	case *math32.Rotation:
		c = rotationCodec
	case *string:
		c = stringCodec
	case *float64:
		c = timeCodec
	case *math32.Vector2:
		c = vec2fCodec
	case *math32.Vector3:
		c = vec3fCodec
	default:
		panic("field: invalid element type")
	}
	return c.(*codec[T])
}

var boolCodec = &codec[bool]{
	sf: SFBool, mf: InvalidType,
	read: func(s *scanner, _ Resolver) (bool, error) { return s.bool() },
	format: func(v bool) string {
		if v {
			return "TRUE"
		}
		return "FALSE"
	},
	equal: eq[bool],
}

var colorCodec = &codec[math32.Color]{
	sf: SFColor, mf: MFColor,
	read: func(s *scanner, _ Resolver) (math32.Color, error) {
		fs, err := s.floats(3)
		if err != nil {
			return math32.Color{}, err
		}
		c := math32.NewColor(fs[0], fs[1], fs[2])
		if !c.InRange() {
			return math32.Color{}, errors.Errorf("color component out of range [0, 1]: %v %v %v", fs[0], fs[1], fs[2])
		}
		return c, nil
	},
	format: func(v math32.Color) string {
		return formatFloats(v.R, v.G, v.B)
	},
	equal: eq[math32.Color],
}

var floatCodec = &codec[float32]{
	sf: SFFloat, mf: MFFloat,
	read:   func(s *scanner, _ Resolver) (float32, error) { return s.float32() },
	format: func(v float32) string { return formatFloat(float64(v), 32) },
	equal:  eq[float32],
}

var int32Codec = &codec[int32]{
	sf: SFInt32, mf: MFInt32,
	read:   func(s *scanner, _ Resolver) (int32, error) { return s.int32() },
	format: func(v int32) string { return strconv.FormatInt(int64(v), 10) },
	equal:  eq[int32],
}

var nodeCodec = &codec[Node]{
	sf: SFNode, mf: MFNode,
	read: func(s *scanner, r Resolver) (Node, error) {
		w, err := s.word()
		if err != nil {
			return nil, err
		}
		switch w {
		case "NULL":
			return nil, nil
		case "USE":
			id, err := s.word()
			if err != nil {
				return nil, err
			}
			if r == nil {
				return nil, errors.Errorf("no scope to resolve USE %s", id)
			}
			n, ok := r.ResolveNode(id)
			if !ok {
				return nil, errors.Errorf("node %q is not defined", id)
			}
			return n, nil
		}
		return nil, errors.Errorf("expected NULL or USE, got %q", w)
	},
	format: func(v Node) string {
		switch {
		case v == nil:
			return "NULL"
		case v.ID() != "":
			return "USE " + v.ID()
		}
		return v.TypeName() + " {}"
	},
	equal: func(a, b Node) bool { return a == b },
}

var rotationCodec = &codec[math32.Rotation]{
	sf: SFRotation, mf: MFRotation,
	read: func(s *scanner, _ Resolver) (math32.Rotation, error) {
		fs, err := s.floats(4)
		if err != nil {
			return math32.Rotation{}, err
		}
		r := math32.Rot(fs[0], fs[1], fs[2], fs[3])
		if r.Axis.IsZero() {
			return math32.Rotation{}, errors.New("rotation axis is zero")
		}
		return r.Normalized(), nil
	},
	format: func(v math32.Rotation) string {
		return formatFloats(v.Axis.X, v.Axis.Y, v.Axis.Z, v.Angle)
	},
	equal: eq[math32.Rotation],
}

var stringCodec = &codec[string]{
	sf: SFString, mf: MFString,
	read:   func(s *scanner, _ Resolver) (string, error) { return s.quoted() },
	format: formatString,
	equal:  eq[string],
}

var timeCodec = &codec[float64]{
	sf: SFTime, mf: MFTime,
	read:   func(s *scanner, _ Resolver) (float64, error) { return s.float64() },
	format: func(v float64) string { return formatFloat(v, 64) },
	equal:  eq[float64],
}

var vec2fCodec = &codec[math32.Vector2]{
	sf: SFVec2f, mf: MFVec2f,
	read: func(s *scanner, _ Resolver) (math32.Vector2, error) {
		fs, err := s.floats(2)
		if err != nil {
			return math32.Vector2{}, err
		}
		return math32.Vec2(fs[0], fs[1]), nil
	},
	format: func(v math32.Vector2) string { return formatFloats(v.X, v.Y) },
	equal:  eq[math32.Vector2],
}

var vec3fCodec = &codec[math32.Vector3]{
	sf: SFVec3f, mf: MFVec3f,
	read: func(s *scanner, _ Resolver) (math32.Vector3, error) {
		fs, err := s.floats(3)
		if err != nil {
			return math32.Vector3{}, err
		}
		return math32.Vec3(fs[0], fs[1], fs[2]), nil
	},
	format: func(v math32.Vector3) string { return formatFloats(v.X, v.Y, v.Z) },
	equal:  eq[math32.Vector3],
}

func formatFloats(fs ...float32) string {
	strs := make([]string, len(fs))
	for i, f := range fs {
		strs[i] = formatFloat(float64(f), 32)
	}
	return strings.Join(strs, " ")
}
