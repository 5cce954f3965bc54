// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml

import (
	"cogentcore.org/vrml/field"
	"cogentcore.org/vrml/math32"
)

func lightDecls() []decl {
	return []decl{
		exposedField(field.SFFloat, "ambientIntensity", "0"),
		exposedField(field.SFColor, "color", "1 1 1"),
		exposedField(field.SFFloat, "intensity", "1"),
		exposedField(field.SFBool, "on", "TRUE"),
	}
}

// lightBase is the common part of the light nodes.
type lightBase struct {
	NodeBase
}

func (l *lightBase) On() bool {
	return fieldOf[bool](&l.NodeBase, "on")
}

func (l *lightBase) light(kind LightKind) Light {
	nb := &l.NodeBase
	return Light{
		Kind:             kind,
		AmbientIntensity: fieldOf[float32](nb, "ambientIntensity"),
		Intensity:        fieldOf[float32](nb, "intensity"),
		Color:            fieldOf[math32.Color](nb, "color"),
		Direction:        fieldOf[math32.Vector3](nb, "direction"),
		Location:         fieldOf[math32.Vector3](nb, "location"),
		Attenuation:      fieldOf[math32.Vector3](nb, "attenuation"),
		Radius:           fieldOf[float32](nb, "radius"),
		BeamWidth:        fieldOf[float32](nb, "beamWidth"),
		CutOffAngle:      fieldOf[float32](nb, "cutOffAngle"),
	}
}

func (l *lightBase) HandleEvent(name string, v field.Value, ts float64) error {
	if b := l.Browser(); b != nil {
		b.SetModified()
	}
	return nil
}

// DirectionalLight lights its siblings from a direction.
type DirectionalLight struct {
	lightBase
}

func directionalLightClass() *BuiltinClass {
	decls := append(lightDecls(), exposedField(field.SFVec3f, "direction", "0 0 -1"))
	return newBuiltinClass("DirectionalLight", func() Node { return &DirectionalLight{} }, decls...)
}

func (l *DirectionalLight) Light() Light { return l.light(DirectionalLightKind) }

func (l *DirectionalLight) Scoped() bool { return false }

// scopedLight is the common part of the lights that light the whole
// scene. They are registered with the browser while initialized.
type scopedLight struct {
	lightBase
}

func (l *scopedLight) Scoped() bool { return true }

func (l *scopedLight) OnInitialize(ts float64) {
	if ln, ok := l.This.(LightNode); ok {
		l.Browser().AddScopedLight(ln)
	}
}

func (l *scopedLight) OnShutdown(ts float64) {
	if ln, ok := l.This.(LightNode); ok {
		l.Browser().RemoveScopedLight(ln)
	}
}

func pointDecls() []decl {
	return append(lightDecls(),
		exposedField(field.SFVec3f, "attenuation", "1 0 0"),
		exposedField(field.SFVec3f, "location", "0 0 0"),
		exposedField(field.SFFloat, "radius", "100"),
	)
}

// PointLight lights the scene from a point in all directions.
type PointLight struct {
	scopedLight
}

func pointLightClass() *BuiltinClass {
	return newBuiltinClass("PointLight", func() Node { return &PointLight{} }, pointDecls()...)
}

func (l *PointLight) Light() Light { return l.light(PointLightKind) }

// SpotLight lights the scene from a point in a cone.
type SpotLight struct {
	scopedLight
}

func spotLightClass() *BuiltinClass {
	decls := append(pointDecls(),
		exposedField(field.SFFloat, "beamWidth", "1.570796"),
		exposedField(field.SFFloat, "cutOffAngle", "0.785398"),
		exposedField(field.SFVec3f, "direction", "0 0 -1"),
	)
	return newBuiltinClass("SpotLight", func() Node { return &SpotLight{} }, decls...)
}

func (l *SpotLight) Light() Light { return l.light(SpotLightKind) }
