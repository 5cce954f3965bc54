// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"cogentcore.org/vrml/base/errors"
	"cogentcore.org/vrml/field"
)

// decl declares one interface of a built-in class, with the text of
// its default value for fields and exposedFields.
type decl struct {
	Interface
	def string
}

func exposedField(t field.Type, name, def string) decl {
	return decl{Interface{ExposedField, t, name}, def}
}

func fieldDecl(t field.Type, name, def string) decl {
	return decl{Interface{Field, t, name}, def}
}

func eventIn(t field.Type, name string) decl {
	return decl{Interface: Interface{EventIn, t, name}}
}

func eventOut(t field.Type, name string) decl {
	return decl{Interface: Interface{EventOut, t, name}}
}

// newBuiltinClass returns a class for the node kind with the given
// name, interfaces and constructor. It panics on invalid declarations.
func newBuiltinClass(name string, newNode func() Node, decls ...decl) *BuiltinClass {
	c := &BuiltinClass{Name: name, Interfaces: &InterfaceSet{}, Defaults: map[string]field.Value{}, New: newNode}
	for _, d := range decls {
		errors.Must(c.Interfaces.Add(d.Interface))
		if d.Direction.IsField() && d.def != "" {
			c.Defaults[d.Name] = field.MustParse(d.Type, d.def)
		}
	}
	return c
}

// builtinClasses returns new classes for all of the built-in node kinds.
func builtinClasses() []*BuiltinClass {
	return []*BuiltinClass{
		groupClass(),
		transformClass(),
		inlineClass(),
		worldInfoClass(),
		shapeClass(),
		appearanceClass(),
		materialClass(),
		boxClass(),
		sphereClass(),
		viewpointClass(),
		navigationInfoClass(),
		directionalLightClass(),
		pointLightClass(),
		spotLightClass(),
		timeSensorClass(),
		scalarInterpolatorClass(),
		positionInterpolatorClass(),
		colorInterpolatorClass(),
		orientationInterpolatorClass(),
		audioClipClass(),
		movieTextureClass(),
		scriptClass(),
	}
}

// registerBuiltins registers the built-in classes with the browser.
func (b *Browser) registerBuiltins() {
	for _, c := range builtinClasses() {
		c.browser = b
		errors.Log(b.classes.Register(c))
	}
}
