// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"cogentcore.org/vrml/field"
	"cogentcore.org/vrml/math32"
)

// Shape draws a geometry node with an appearance.
type Shape struct {
	NodeBase
}

func shapeClass() *BuiltinClass {
	return newBuiltinClass("Shape", func() Node { return &Shape{} },
		exposedField(field.SFNode, "appearance", "NULL"),
		exposedField(field.SFNode, "geometry", "NULL"),
	)
}

func (s *Shape) nodeField(name string) Node {
	n, _ := fieldOf[field.Node](&s.NodeBase, name).(Node)
	return n
}

// DefaultMaterial is the material of shapes without one.
var DefaultMaterial = MaterialParams{
	AmbientIntensity: 0.2,
	DiffuseColor:     math32.NewColor(0.8, 0.8, 0.8),
	Shininess:        0.2,
}

func (s *Shape) Render(v Viewer) {
	geom, ok := ToGeometry(s.nodeField("geometry"))
	if !ok {
		return
	}
	v.BeginObject(s.ID())
	mat := DefaultMaterial
	if app, ok := As[*Appearance](s.nodeField("appearance")); ok {
		if m, ok := ToMaterial(app.nodeField("material")); ok {
			mat = m.Params()
		}
	}
	v.SetMaterial(mat)
	geom.InsertGeometry(v)
	v.EndObject()
}

// Appearance holds the material and texture of a [Shape].
type Appearance struct {
	NodeBase
}

func appearanceClass() *BuiltinClass {
	return newBuiltinClass("Appearance", func() Node { return &Appearance{} },
		exposedField(field.SFNode, "material", "NULL"),
		exposedField(field.SFNode, "texture", "NULL"),
		exposedField(field.SFNode, "textureTransform", "NULL"),
	)
}

func (a *Appearance) nodeField(name string) Node {
	n, _ := fieldOf[field.Node](&a.NodeBase, name).(Node)
	return n
}

// Material is the surface material of a [Shape].
type Material struct {
	NodeBase
}

func materialClass() *BuiltinClass {
	return newBuiltinClass("Material", func() Node { return &Material{} },
		exposedField(field.SFFloat, "ambientIntensity", "0.2"),
		exposedField(field.SFColor, "diffuseColor", "0.8 0.8 0.8"),
		exposedField(field.SFColor, "emissiveColor", "0 0 0"),
		exposedField(field.SFFloat, "shininess", "0.2"),
		exposedField(field.SFColor, "specularColor", "0 0 0"),
		exposedField(field.SFFloat, "transparency", "0"),
	)
}

// Params returns the material parameters for a [Viewer].
func (m *Material) Params() MaterialParams {
	nb := &m.NodeBase
	return MaterialParams{
		AmbientIntensity: fieldOf[float32](nb, "ambientIntensity"),
		DiffuseColor:     fieldOf[math32.Color](nb, "diffuseColor"),
		EmissiveColor:    fieldOf[math32.Color](nb, "emissiveColor"),
		Shininess:        fieldOf[float32](nb, "shininess"),
		SpecularColor:    fieldOf[math32.Color](nb, "specularColor"),
		Transparency:     fieldOf[float32](nb, "transparency"),
	}
}

// Box is a box geometry centered at the origin.
type Box struct {
	NodeBase
}

func boxClass() *BuiltinClass {
	return newBuiltinClass("Box", func() Node { return &Box{} },
		fieldDecl(field.SFVec3f, "size", "2 2 2"),
	)
}

func (b *Box) InsertGeometry(v Viewer) {
	v.InsertBox(fieldOf[math32.Vector3](&b.NodeBase, "size"))
}

// Sphere is a sphere geometry centered at the origin.
type Sphere struct {
	NodeBase
}

func sphereClass() *BuiltinClass {
	return newBuiltinClass("Sphere", func() Node { return &Sphere{} },
		fieldDecl(field.SFFloat, "radius", "1"),
	)
}

func (s *Sphere) InsertGeometry(v Viewer) {
	v.InsertSphere(fieldOf[float32](&s.NodeBase, "radius"))
}
